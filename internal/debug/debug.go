package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/logger"
	"gallery3d/internal/navigation"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	logFontSize   = 14
	logLines      = 8
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime debugging overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowNav      bool
	ShowLog      bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	log          *logger.Logger
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	navLines     []string
}

// New returns a Debug system with all overlays hidden. log feeds the log tail overlay.
func New(log *logger.Logger) *Debug {
	return &Debug{log: log}
}

// SetFont sets the font used to draw the overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetNavigation records the navigation state shown by the ShowNav overlay.
func (d *Debug) SetNavigation(p navigation.Position, s navigation.Session) {
	d.navLines = NavigationLines(p, s)
}

// NavigationLines formats a navigation snapshot for display.
func NavigationLines(p navigation.Position, s navigation.Session) []string {
	return []string{
		fmt.Sprintf("current %.3f  target %.3f", p.CurrentPosition, p.TargetPosition),
		fmt.Sprintf("wall %d  progress %.2f  %s", p.CurrentWall, p.Progress, p.Direction),
		fmt.Sprintf("intro %t  modal %t  moving %t", s.IntroVisible, s.ModalOpen, s.Transitioning),
	}
}

// Draw renders the enabled overlays: FPS, memory and navigation at the top-right in green,
// the log tail at the bottom-left. Call last in the draw loop.
// FPS and memory text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, y)
		y += fpsLineHeight
	}
	if d.ShowNav {
		for _, line := range d.navLines {
			d.drawRight(line, y)
			y += fpsLineHeight
		}
	}
	if d.ShowLog {
		tail := d.log.Tail(logLines)
		ly := int32(rl.GetScreenHeight()) - int32(len(tail))*(logFontSize+2) - fpsPadding
		for _, line := range tail {
			rl.DrawText(line, fpsPadding, ly, logFontSize, rl.LightGray)
			ly += logFontSize + 2
		}
	}
}

func (d *Debug) drawRight(text string, y int32) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}
