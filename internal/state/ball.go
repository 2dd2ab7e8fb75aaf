package state

import "encoding/json"

// BallStatus tags the three shapes a Ball can take (spec §3).
type BallStatus int

const (
	BallOnGround BallStatus = iota
	BallCarried
	BallOffPitch
)

// Ball is a tagged variant: OnGround(pos), Carried(pos, carrierId), OffPitch.
// Invariant: if Status==BallCarried, Pos equals the carrier's position —
// every component that moves a carrier must move the ball with it in the
// same rebuild.
type Ball struct {
	Status    BallStatus `json:"-"`
	Pos       Position   `json:"pos,omitempty"`
	CarrierID int        `json:"carrierId,omitempty"`
}

// MarshalJSON renders Ball as spec §6's {x, y, isHeld, carrierId}. Off-pitch
// positions are omitted per the same section.
func (b Ball) MarshalJSON() ([]byte, error) {
	type wire struct {
		X         *int `json:"x,omitempty"`
		Y         *int `json:"y,omitempty"`
		IsHeld    bool `json:"isHeld"`
		CarrierID *int `json:"carrierId"`
	}
	w := wire{IsHeld: b.Status == BallCarried}
	if b.Status != BallOffPitch {
		x, y := b.Pos.X, b.Pos.Y
		w.X, w.Y = &x, &y
	}
	if b.Status == BallCarried {
		id := b.CarrierID
		w.CarrierID = &id
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores Ball from the wire shape above.
func (b *Ball) UnmarshalJSON(data []byte) error {
	type wire struct {
		X         *int `json:"x"`
		Y         *int `json:"y"`
		IsHeld    bool `json:"isHeld"`
		CarrierID *int `json:"carrierId"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.IsHeld && w.CarrierID != nil:
		b.Status = BallCarried
		b.CarrierID = *w.CarrierID
		if w.X != nil && w.Y != nil {
			b.Pos = Position{X: *w.X, Y: *w.Y}
		}
	case w.X != nil && w.Y != nil:
		b.Status = BallOnGround
		b.Pos = Position{X: *w.X, Y: *w.Y}
		b.CarrierID = 0
	default:
		b.Status = BallOffPitch
		b.CarrierID = 0
	}
	return nil
}

// OnGround constructs a ball lying at pos.
func OnGround(pos Position) Ball {
	return Ball{Status: BallOnGround, Pos: pos}
}

// Carried constructs a ball held by carrierID at pos.
func Carried(pos Position, carrierID int) Ball {
	return Ball{Status: BallCarried, Pos: pos, CarrierID: carrierID}
}

// OffPitch constructs a ball that has left the pitch.
func OffPitch() Ball {
	return Ball{Status: BallOffPitch}
}
