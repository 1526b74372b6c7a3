package navigation

// EventKind identifies a raw pointer or wheel event.
type EventKind int

const (
	EventWheel EventKind = iota
	EventTouchStart
	EventTouchMove
	EventTouchEnd
)

// Event is a raw input event as delivered by the host window. DeltaY is used by wheel events,
// X and Y by touch events (screen pixels).
type Event struct {
	Kind   EventKind
	DeltaY float64
	X, Y   float64
}

// Capability lists the input modalities an adapter drives.
type Capability struct {
	Continuous bool
	Discrete   bool
}

// Adapter turns raw events into engine operations. Events an adapter does not consume return
// the position unchanged.
type Adapter interface {
	Capability() Capability
	Handle(e *Engine, p Position, ev Event) (Position, error)
}

// WheelAdapter feeds wheel and trackpad deltas to ApplyContinuousDelta.
type WheelAdapter struct{}

// Capability implements Adapter.
func (WheelAdapter) Capability() Capability {
	return Capability{Continuous: true}
}

// Handle implements Adapter.
func (WheelAdapter) Handle(e *Engine, p Position, ev Event) (Position, error) {
	if ev.Kind != EventWheel {
		return p, nil
	}
	return e.ApplyContinuousDelta(p, ev.DeltaY)
}

// DefaultSwipeThresholdPx is the shortest horizontal drag counted as a swipe.
const DefaultSwipeThresholdPx = 50

// SwipeAdapter tracks one touch from start to end and applies it as a discrete swipe.
// A drag to the left (start X greater than end X) advances to the next wall.
type SwipeAdapter struct {
	ThresholdPx float64

	active bool
	moved  bool
	startX float64
	lastX  float64
}

// NewSwipeAdapter returns a SwipeAdapter; a non-positive threshold uses DefaultSwipeThresholdPx.
func NewSwipeAdapter(thresholdPx float64) *SwipeAdapter {
	if thresholdPx <= 0 {
		thresholdPx = DefaultSwipeThresholdPx
	}
	return &SwipeAdapter{ThresholdPx: thresholdPx}
}

// Capability implements Adapter.
func (s *SwipeAdapter) Capability() Capability {
	return Capability{Discrete: true}
}

// Handle implements Adapter. A touch that ends without moving is a tap and does not navigate.
func (s *SwipeAdapter) Handle(e *Engine, p Position, ev Event) (Position, error) {
	switch ev.Kind {
	case EventTouchStart:
		s.active, s.moved = true, false
		s.startX, s.lastX = ev.X, ev.X
	case EventTouchMove:
		if s.active {
			s.lastX = ev.X
			s.moved = true
		}
	case EventTouchEnd:
		if !s.active {
			return p, nil
		}
		s.active = false
		distance := 0.0
		if s.moved {
			distance = s.startX - s.lastX
		}
		return e.ApplyDiscreteSwipe(p, distance, s.ThresholdPx)
	}
	return p, nil
}

// Composite forwards every event to each adapter in order. It backs devices with both a
// wheel and a touch surface.
type Composite []Adapter

// Capability implements Adapter.
func (c Composite) Capability() Capability {
	var out Capability
	for _, a := range c {
		ac := a.Capability()
		out.Continuous = out.Continuous || ac.Continuous
		out.Discrete = out.Discrete || ac.Discrete
	}
	return out
}

// Handle implements Adapter. The first error stops the chain and the original position is kept.
func (c Composite) Handle(e *Engine, p Position, ev Event) (Position, error) {
	next := p
	for _, a := range c {
		var err error
		next, err = a.Handle(e, next, ev)
		if err != nil {
			return p, err
		}
	}
	return next, nil
}

// Device describes what the host found the current device supports.
type Device struct {
	Touch bool
	Wheel bool
}

// SelectAdapter picks the adapter for a device. A device reporting neither gets a wheel adapter
// since mouse wheel is the desktop default.
func SelectAdapter(d Device, thresholdPx float64) Adapter {
	switch {
	case d.Touch && d.Wheel:
		return Composite{WheelAdapter{}, NewSwipeAdapter(thresholdPx)}
	case d.Touch:
		return NewSwipeAdapter(thresholdPx)
	}
	return WheelAdapter{}
}
