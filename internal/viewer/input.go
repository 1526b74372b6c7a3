package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/navigation"
	"gallery3d/internal/pose"
	"gallery3d/internal/ui"
)

const (
	// wheelPixels is the delta of one wheel notch, in the pixel units the sensitivity is tuned for.
	wheelPixels = 100
	scrollLines = 3
	pageLines   = 12
)

// pointer tracks the primary button or touch between press and release.
type pointer struct {
	down   bool
	startX float32
	startY float32
	lastX  float32
	lastY  float32
}

// travel is how far the pointer moved since it went down.
func (p pointer) travel() float64 {
	return math.Hypot(float64(p.lastX-p.startX), float64(p.lastY-p.startY))
}

// update runs once per frame before drawing.
func (v *Viewer) update(dt float32) {
	v.detectDevice()
	mouse := v.pointerPosition()

	v.handleKeys()
	v.handleWheel()
	v.handlePointer(mouse)

	v.pos = v.engine.Tick(v.pos, float64(dt), v.lerp)
	v.session = v.session.SetTransitioning(!v.pos.Settled())
	v.gallery.SetPose(pose.Camera(v.engine.RenderPosition(v.pos), v.engine.WallCount(), v.room))

	roomActive := !v.session.IntroVisible && !v.hud.Panel.Visible() && !v.hud.Covers(mouse.X, mouse.Y)
	v.gallery.Update(mouse, roomActive)
	if _, ok := v.gallery.Hovered(); ok && roomActive {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}

	v.hud.Update(ui.State{
		Title:        v.scene.Name,
		WallNames:    v.wallNames(),
		CurrentWall:  v.pos.CurrentWall,
		IntroVisible: v.session.IntroVisible,
	})
	v.debug.SetNavigation(v.pos, v.session)
}

func (v *Viewer) draw() {
	v.gallery.Draw()
	v.hud.Draw()
	v.debug.Draw()
}

// detectDevice upgrades to the combined wheel and swipe adapter the first time a touch is seen.
func (v *Viewer) detectDevice() {
	if v.device.Touch || rl.GetTouchPointCount() == 0 {
		return
	}
	v.device.Touch = true
	v.adapter = navigation.SelectAdapter(v.device, v.threshold)
	v.log.Log("viewer: touch input detected")
}

func (v *Viewer) pointerPosition() rl.Vector2 {
	if rl.GetTouchPointCount() > 0 {
		return rl.GetTouchPosition(0)
	}
	return rl.GetMousePosition()
}

// feed passes a navigation event through the adapter when the session allows it.
func (v *Viewer) feed(ev navigation.Event) {
	if !v.session.AllowsNavigation() {
		return
	}
	next, err := v.adapter.Handle(v.engine, v.pos, ev)
	if err != nil {
		v.log.Logf("viewer: %v", err)
		return
	}
	v.pos = next
}

func (v *Viewer) jump(wall int) {
	if !v.session.AllowsNavigation() {
		return
	}
	next, err := v.engine.JumpToWall(v.pos, wall)
	if err != nil {
		v.log.Logf("viewer: %v", err)
		return
	}
	v.pos = next
}

// step moves one wall like a swipe of exactly the threshold length.
func (v *Viewer) step(forward bool) {
	if !v.session.AllowsNavigation() {
		return
	}
	t := v.threshold
	if t <= 0 {
		t = navigation.DefaultSwipeThresholdPx
	}
	d := t
	if !forward {
		d = -t
	}
	next, err := v.engine.ApplyDiscreteSwipe(v.pos, d, t)
	if err != nil {
		v.log.Logf("viewer: %v", err)
		return
	}
	v.pos = next
}

func (v *Viewer) handleKeys() {
	switch {
	case v.session.IntroVisible:
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) || rl.IsKeyPressed(rl.KeySpace) {
			v.session = v.session.DismissIntro()
		}
	case v.session.ModalOpen:
		switch {
		case rl.IsKeyPressed(rl.KeyEscape):
			v.closeProject()
		case rl.IsKeyPressed(rl.KeyDown):
			v.hud.Panel.Scroll(1)
		case rl.IsKeyPressed(rl.KeyUp):
			v.hud.Panel.Scroll(-1)
		case rl.IsKeyPressed(rl.KeyPageDown):
			v.hud.Panel.Scroll(pageLines)
		case rl.IsKeyPressed(rl.KeyPageUp):
			v.hud.Panel.Scroll(-pageLines)
		}
	default:
		switch {
		case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressed(rl.KeyD):
			v.step(true)
		case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressed(rl.KeyA):
			v.step(false)
		}
		for i := 0; i < min(9, v.engine.WallCount()); i++ {
			if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
				v.jump(i)
			}
		}
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		on := !v.debug.ShowNav
		v.debug.ShowFPS, v.debug.ShowMemAlloc, v.debug.ShowNav = on, on, on
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		v.debug.ShowLog = !v.debug.ShowLog
	}
}

func (v *Viewer) handleWheel() {
	move := rl.GetMouseWheelMove()
	if move == 0 {
		return
	}
	if v.session.ModalOpen {
		v.hud.Panel.Scroll(-int(move * scrollLines))
		return
	}
	// wheel up reads as scrolling back, like a browser's negative deltaY
	v.feed(navigation.Event{Kind: navigation.EventWheel, DeltaY: -float64(move) * wheelPixels})
}

func (v *Viewer) handlePointer(pt rl.Vector2) {
	pressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	released := rl.IsMouseButtonReleased(rl.MouseButtonLeft)

	if pressed {
		v.input = pointer{down: true, startX: pt.X, startY: pt.Y, lastX: pt.X, lastY: pt.Y}
		v.feed(navigation.Event{Kind: navigation.EventTouchStart, X: float64(pt.X), Y: float64(pt.Y)})
	}
	if v.input.down && !pressed && (pt.X != v.input.lastX || pt.Y != v.input.lastY) {
		v.input.lastX, v.input.lastY = pt.X, pt.Y
		v.feed(navigation.Event{Kind: navigation.EventTouchMove, X: float64(pt.X), Y: float64(pt.Y)})
	}
	if !released || !v.input.down {
		return
	}
	v.input.down = false
	v.feed(navigation.Event{Kind: navigation.EventTouchEnd, X: float64(pt.X), Y: float64(pt.Y)})

	limit := v.threshold
	if limit <= 0 {
		limit = navigation.DefaultSwipeThresholdPx
	}
	if v.input.travel() >= limit {
		// a drag, not a click
		return
	}
	v.click(pt)
}

// click handles a press and release without a drag.
func (v *Viewer) click(pt rl.Vector2) {
	if v.session.IntroVisible {
		v.session = v.session.DismissIntro()
		return
	}
	switch action, arg := v.hud.Click(pt.X, pt.Y); action {
	case ui.ActionJump:
		v.jump(arg)
		return
	case ui.ActionCloseModal:
		v.closeProject()
		return
	case ui.ActionDismissIntro:
		v.session = v.session.DismissIntro()
		return
	}
	if v.session.ModalOpen {
		if !v.hud.Covers(pt.X, pt.Y) {
			v.closeProject()
		}
		return
	}
	if f, ok := v.gallery.Hovered(); ok {
		v.openProject(f.ProjectID)
	}
}
