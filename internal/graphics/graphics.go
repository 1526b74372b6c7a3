package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool // size of monitor 0; Width and Height are ignored
	TargetFPS  int
	Background color.RGBA
	// OnInit runs once the window exists, before the first frame. GPU resources load here.
	OnInit func()
	// OnClose runs after the last frame while the window still exists.
	OnClose func()
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// with the frame time in seconds (e.g. input), then clears the screen and calls draw.
// Esc is left to the caller; close via the window button.
func Run(o Options, update func(dt float32), draw func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if o.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := int32(o.Width), int32(o.Height)
	if o.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, o.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := o.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	if o.OnInit != nil {
		o.OnInit()
	}
	if o.OnClose != nil {
		defer o.OnClose()
	}
	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(o.Background)
		draw()
		rl.EndDrawing()
	}
}
