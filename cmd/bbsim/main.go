// Command bbsim runs a scripted demo match through the engine with a
// seeded dice source, logging every event via zerolog — the CLI harness
// analogue of the teacher's cmd/server bring-up sequence (load config,
// announce startup, run the loop), adapted from a Kick-stream server
// bootstrap to a one-shot deterministic simulation.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"gridbowl/internal/actions"
	"gridbowl/internal/config"
	"gridbowl/internal/dice"
	"gridbowl/internal/engine"
	"gridbowl/internal/state"
)

func newDemoState() *state.GameState {
	home := []*state.Player{
		{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 12, Y: 7}, State: state.Standing, Stats: state.Stats{MA: 6, ST: 3, AG: 3, AV: 8}},
		{ID: 2, Side: state.Home, OnPitch: true, Pos: state.Position{X: 11, Y: 6}, State: state.Standing, Stats: state.Stats{MA: 6, ST: 3, AG: 3, AV: 8}},
	}
	away := []*state.Player{
		{ID: 11, Side: state.Away, OnPitch: true, Pos: state.Position{X: 13, Y: 7}, State: state.Standing, Stats: state.Stats{MA: 6, ST: 3, AG: 3, AV: 8}},
		{ID: 12, Side: state.Away, OnPitch: true, Pos: state.Position{X: 14, Y: 6}, State: state.Standing, Stats: state.Stats{MA: 6, ST: 3, AG: 3, AV: 8}},
	}

	players := make(map[int]*state.Player, len(home)+len(away))
	for _, p := range home {
		players[p.ID] = p
	}
	for _, p := range away {
		players[p.ID] = p
	}

	return &state.GameState{
		Phase:      state.PhasePlay,
		ActiveTeam: state.Home,
		Half:       1,
		Weather:    state.Nice,
		Players:    players,
		Home:       &state.TeamState{ID: "home", Name: "Reikland Reavers", Race: "human", Rerolls: 3},
		Away:       &state.TeamState{ID: "away", Name: "Bad Moon Boyz", Race: "orc", Rerolls: 3},
		Ball:       state.Carried(state.Position{X: 12, Y: 7}, 1),
	}
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.Sim.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	seed := cfg.Dice.Seed
	if seed == 0 {
		seed = 1
	}
	src := dice.NewRandom(seed)

	var limiter *rate.Limiter
	if cfg.Sim.PacePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Sim.PacePerSec), 1)
	}

	g := newDemoState()
	log.Info().Int("turns", cfg.Sim.Turns).Int64("seed", seed).Msg("starting scripted demo match")

	script := []actions.Params{
		{PlayerID: 2, X: 12, Y: 6},
		{PlayerID: 1, X: 12, Y: 7},
	}

	for i := 0; i < cfg.Sim.Turns && g.Phase != state.PhaseGameOver; i++ {
		if limiter != nil {
			_ = limiter.Wait(context.Background())
		}

		action := actions.Move
		params := script[i%len(script)]

		next, events := engine.Resolve(g, src, action, params)
		for _, e := range events {
			log.Info().Str("type", string(e.Type)).Str("description", e.Description).Interface("data", e.Data).Msg("event")
		}
		g = next

		if g.TurnoverPending || action == actions.EndTurn {
			g, events = engine.Resolve(g, src, actions.EndTurn, actions.Params{})
			for _, e := range events {
				log.Info().Str("type", string(e.Type)).Msg("event")
			}
		}
	}

	log.Info().Int("home_score", g.Home.Score).Int("away_score", g.Away.Score).Str("phase", g.Phase.String()).Msg("match ended")
}
