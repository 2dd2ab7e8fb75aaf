package state

import (
	"encoding/json"
	"fmt"
)

// This file gives the small enum types their spec §6 wire form: lowercase
// strings ("home", "prone", "blizzard") rather than Go's default bare ints.
// Each type already has a String() method for logging; these just route
// JSON through it in both directions.

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "home":
		*s = Home
	case "away":
		*s = Away
	default:
		return fmt.Errorf("state: unknown side %q", str)
	}
	return nil
}

func (st PlayerLifecycleState) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.String())
}

func (st *PlayerLifecycleState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "standing":
		*st = Standing
	case "prone":
		*st = Prone
	case "stunned":
		*st = Stunned
	case "ko":
		*st = KO
	case "injured":
		*st = Injured
	case "ejected":
		*st = Ejected
	case "off_pitch":
		*st = OffPitch
	default:
		return fmt.Errorf("state: unknown player state %q", str)
	}
	return nil
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "setup":
		*p = PhaseSetup
	case "kickoff":
		*p = PhaseKickoff
	case "play":
		*p = PhasePlay
	case "touchdown":
		*p = PhaseTouchdown
	case "half_time":
		*p = PhaseHalfTime
	case "game_over":
		*p = PhaseGameOver
	default:
		return fmt.Errorf("state: unknown phase %q", str)
	}
	return nil
}

func (w Weather) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weather) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "nice":
		*w = Nice
	case "very_sunny":
		*w = VerySunny
	case "pouring_rain":
		*w = PouringRain
	case "blizzard":
		*w = Blizzard
	case "sweltering_heat":
		*w = SwelteringHeat
	default:
		return fmt.Errorf("state: unknown weather %q", str)
	}
	return nil
}
