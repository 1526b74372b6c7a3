package navigation

import (
	"encoding/json"
	"fmt"
	"math"
)

// Direction is the sign of the most recent input delta.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	}
	return "none"
}

// MarshalJSON encodes the direction as its name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "forward", "backward" or "none".
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "forward":
		*d = DirectionForward
	case "backward":
		*d = DirectionBackward
	case "none", "":
		*d = DirectionNone
	default:
		return fmt.Errorf("navigation: unknown direction %q", s)
	}
	return nil
}

func directionOf(delta float64) Direction {
	switch {
	case delta > 0:
		return DirectionForward
	case delta < 0:
		return DirectionBackward
	}
	return DirectionNone
}

// Position is where the viewer is along the closed loop of walls.
// CurrentPosition is the smoothed value the renderer uses; TargetPosition is what input drives toward.
// CurrentWall and Progress are the integer and fractional parts of the coordinate last moved:
// input operations report the destination, Tick reports the rendered position.
type Position struct {
	CurrentPosition float64   `json:"currentPosition"`
	TargetPosition  float64   `json:"targetPosition"`
	CurrentWall     int       `json:"currentWall"`
	Progress        float64   `json:"progress"`
	Direction       Direction `json:"direction"`
}

// Settled reports whether the current position has caught up with the target.
func (p Position) Settled() bool {
	return math.Abs(p.TargetPosition-p.CurrentPosition) < Epsilon
}

// split returns floor(x) mod n in [0, n) and the fractional part of x in [0, 1).
func split(x float64, n int) (wall int, progress float64) {
	fl := math.Floor(x)
	progress = x - fl
	if progress >= 1 {
		// x a hair below an integer can round up to exactly 1
		progress = 0
		fl++
	}
	if progress < 0 {
		progress = 0
	}
	wall = int(math.Mod(math.Mod(fl, float64(n))+float64(n), float64(n)))
	return wall, progress
}
