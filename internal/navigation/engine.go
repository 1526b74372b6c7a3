package navigation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Epsilon is the distance below which smoothing snaps to the target, and the gap kept below
// the wall count when clamping.
const Epsilon = 1e-3

var (
	// ErrInvalidConfig is returned for a bad wall count, sensitivity or initial wall.
	ErrInvalidConfig = errors.New("navigation: invalid config")
	// ErrOutOfRange is returned when a wall index is outside [0, N).
	ErrOutOfRange = errors.New("navigation: wall index out of range")
)

// Boundary decides what happens when navigating past the first or last wall.
type Boundary int

const (
	// Wrap treats the walls as a cycle: wall N-1 is followed by wall 0.
	Wrap Boundary = iota
	// Clamp stops at the first and last wall.
	Clamp
)

func (b Boundary) String() string {
	if b == Clamp {
		return "clamp"
	}
	return "wrap"
}

// ParseBoundary parses "wrap" or "clamp" (case-insensitive). Empty means wrap.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return Wrap, nil
	case "clamp":
		return Clamp, nil
	}
	return Wrap, fmt.Errorf("%w: unknown boundary %q", ErrInvalidConfig, s)
}

// Variant selects how discrete swipes interact with a transition still in flight.
type Variant int

const (
	// Free lets swipes queue additively onto the target.
	Free Variant = iota
	// Locked ignores swipes until the current position has settled on the target.
	Locked
)

func (v Variant) String() string {
	if v == Locked {
		return "locked"
	}
	return "free"
}

// ParseVariant parses "free" or "locked" (case-insensitive). Empty means free.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free":
		return Free, nil
	case "locked":
		return Locked, nil
	}
	return Free, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// Config is fixed for the lifetime of a navigation session.
type Config struct {
	WallCount   int
	Sensitivity float64 // position units per unit of raw wheel delta
	Boundary    Boundary
	Variant     Variant
	SnapJumps   bool // JumpToWall moves the current position immediately
}

// Engine applies input to Position values. It holds no position state of its own;
// every operation returns a new Position and leaves the argument untouched.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.WallCount < 1 {
		return nil, fmt.Errorf("%w: wall count %d, need at least 1", ErrInvalidConfig, cfg.WallCount)
	}
	if math.IsNaN(cfg.Sensitivity) || math.IsInf(cfg.Sensitivity, 0) {
		return nil, fmt.Errorf("%w: sensitivity %v", ErrInvalidConfig, cfg.Sensitivity)
	}
	return &Engine{cfg: cfg}, nil
}

// Initialize builds an Engine from cfg and the starting Position at initialWall.
func Initialize(cfg Config, initialWall int) (*Engine, Position, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, Position{}, err
	}
	p, err := e.Initialize(initialWall)
	if err != nil {
		return nil, Position{}, err
	}
	return e, p, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// WallCount returns N.
func (e *Engine) WallCount() int {
	return e.cfg.WallCount
}

// Initialize returns a settled Position at initialWall.
func (e *Engine) Initialize(initialWall int) (Position, error) {
	if initialWall < 0 || initialWall >= e.cfg.WallCount {
		return Position{}, fmt.Errorf("%w: initial wall %d not in [0, %d)", ErrInvalidConfig, initialWall, e.cfg.WallCount)
	}
	x := float64(initialWall)
	return Position{CurrentPosition: x, TargetPosition: x, CurrentWall: initialWall}, nil
}

// ApplyContinuousDelta scales rawDelta (e.g. wheel delta-Y) by the sensitivity and adds it to
// the target. A zero delta leaves the position alone and resets the direction.
func (e *Engine) ApplyContinuousDelta(p Position, rawDelta float64) (Position, error) {
	if math.IsNaN(rawDelta) || math.IsInf(rawDelta, 0) {
		return p, fmt.Errorf("%w: delta %v", ErrInvalidConfig, rawDelta)
	}
	delta := rawDelta * e.cfg.Sensitivity
	if delta == 0 {
		p.Direction = DirectionNone
		return p, nil
	}
	p.TargetPosition = e.bound(p.TargetPosition + delta)
	p.Direction = directionOf(delta)
	p.CurrentWall, p.Progress = split(p.TargetPosition, e.cfg.WallCount)
	return p, nil
}

// ApplyDiscreteSwipe advances the target by one wall in the sign of swipeDistancePx.
// Swipes shorter than thresholdPx are taps: only the direction is reset.
// In the Locked variant a swipe arriving before the previous transition settles is ignored.
func (e *Engine) ApplyDiscreteSwipe(p Position, swipeDistancePx, thresholdPx float64) (Position, error) {
	if math.Abs(swipeDistancePx) < thresholdPx {
		p.Direction = DirectionNone
		return p, nil
	}
	if e.cfg.Variant == Locked && !p.Settled() {
		return p, nil
	}
	step := 1.0
	if swipeDistancePx < 0 {
		step = -1
	}
	target := p.TargetPosition + step
	if e.cfg.Boundary == Clamp {
		last := float64(e.cfg.WallCount - 1)
		// at either end a swipe outward does nothing
		if (step > 0 && p.TargetPosition >= last) || (step < 0 && p.TargetPosition <= 0) {
			return p, nil
		}
		// swipes stop on whole walls
		target = math.Max(0, math.Min(last, target))
	}
	p.TargetPosition = target
	p.Direction = directionOf(step)
	p.CurrentWall, p.Progress = split(p.TargetPosition, e.cfg.WallCount)
	return p, nil
}

// Tick moves the current position a lerpFactor share of the way to the target. Call once per
// frame. When the gap drops below Epsilon the current position snaps onto the target.
// A non-positive dt does nothing.
func (e *Engine) Tick(p Position, dt, lerpFactor float64) Position {
	if dt <= 0 || math.IsNaN(lerpFactor) {
		return p
	}
	lerpFactor = math.Max(0, math.Min(1, lerpFactor))
	if !p.Settled() {
		p.CurrentPosition += (p.TargetPosition - p.CurrentPosition) * lerpFactor
	}
	if p.Settled() {
		p.CurrentPosition = p.TargetPosition
		p = e.rebase(p)
	}
	p.CurrentWall, p.Progress = split(p.CurrentPosition, e.cfg.WallCount)
	return p
}

// JumpToWall sets the target to wallIndex. With SnapJumps the current position follows at once;
// otherwise Tick carries it there. In wrap mode the current position is first moved into [0, N),
// which shows the same view, so the camera never travels more than one loop.
func (e *Engine) JumpToWall(p Position, wallIndex int) (Position, error) {
	if wallIndex < 0 || wallIndex >= e.cfg.WallCount {
		return p, fmt.Errorf("%w: wall %d not in [0, %d)", ErrOutOfRange, wallIndex, e.cfg.WallCount)
	}
	if e.cfg.Boundary == Wrap {
		n := float64(e.cfg.WallCount)
		p.CurrentPosition -= math.Floor(p.CurrentPosition/n) * n
	}
	x := float64(wallIndex)
	p.TargetPosition = x
	p.Direction = DirectionNone
	if e.cfg.SnapJumps {
		p.CurrentPosition = x
	}
	p.CurrentWall, p.Progress = wallIndex, 0
	return p, nil
}

// RenderPosition returns the coordinate a camera should be placed at. In clamp mode it stops at
// the last wall instead of leaning toward a wall that does not exist.
func (e *Engine) RenderPosition(p Position) float64 {
	if e.cfg.Boundary == Clamp {
		return math.Max(0, math.Min(float64(e.cfg.WallCount-1), p.CurrentPosition))
	}
	return p.CurrentPosition
}

// NextWall returns the wall after k in the loop.
func (e *Engine) NextWall(k int) int {
	n := e.cfg.WallCount
	return ((k+1)%n + n) % n
}

// PrevWall returns the wall before k in the loop.
func (e *Engine) PrevWall(k int) int {
	n := e.cfg.WallCount
	return ((k-1)%n + n) % n
}

// bound applies the boundary policy to a target coordinate.
func (e *Engine) bound(x float64) float64 {
	if e.cfg.Boundary != Clamp {
		return x
	}
	hi := float64(e.cfg.WallCount) - Epsilon
	if x < 0 {
		return 0
	}
	if x > hi {
		return hi
	}
	return x
}

// rebase shifts a settled wrap-mode position back into [0, N) so long sessions do not
// accumulate an ever larger coordinate. Both coordinates move by the same whole number of loops.
func (e *Engine) rebase(p Position) Position {
	if e.cfg.Boundary != Wrap {
		return p
	}
	n := float64(e.cfg.WallCount)
	loops := math.Floor(p.CurrentPosition / n)
	if loops == 0 {
		return p
	}
	p.CurrentPosition -= loops * n
	p.TargetPosition -= loops * n
	return p
}
