package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	dotGap       = 12
	bottomMargin = 36
	introHint    = "Scroll, swipe or use the arrow keys to walk the walls. Click a project to open it."
	introAction  = "Press Enter or click to begin"
	roomHint     = "Scroll or swipe to change walls"
)

// State is what the HUD shows for one frame.
type State struct {
	Title        string
	WallNames    []string
	CurrentWall  int
	IntroVisible bool
}

// HUD is the 2D layer over the room: wall name pill, navigation dots, intro card and the
// project panel. Update rebuilds the node list each frame; Draw and Click use it.
type HUD struct {
	Engine *Engine
	Panel  *ProjectPanel

	pill       *Node
	hint       *Node
	intro      *Node
	introTitle *Node
	introText  *Node
	dots       []*Node
	nodes      []*Node
}

// NewHUD returns a HUD drawing with e, animating at fps frames per second.
func NewHUD(e *Engine, fps int) *HUD {
	return &HUD{
		Engine:     e,
		Panel:      NewProjectPanel(fps),
		pill:       NewNode("pill", "wall-name", ""),
		hint:       NewNode("hint", "", roomHint),
		intro:      &Node{Class: "intro", ID: "intro", Action: ActionDismissIntro},
		introTitle: NewNode("intro-title", "", ""),
		introText:  NewNode("intro-hint", "", ""),
	}
}

// Update lays out the HUD for s.
func (h *HUD) Update(s State) {
	e := h.Engine
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	h.nodes = h.nodes[:0]

	if s.IntroVisible {
		h.layoutIntro(s.Title, screenW)
		h.nodes = append(h.nodes, h.intro, h.introTitle, h.introText)
		return
	}

	if s.CurrentWall >= 0 && s.CurrentWall < len(s.WallNames) {
		style := e.Style(h.pill)
		h.pill.Text = s.WallNames[s.CurrentWall]
		h.pill.Bounds.Width = e.Measure(h.pill.Text, style.FontSize) + 4*float32(style.Padding)
		h.pill.Bounds.Height = float32(style.FontSize) + 2*float32(style.Padding)
		h.pill.Bounds.X = (screenW - h.pill.Bounds.Width) / 2
		e.Place(h.pill)
		h.nodes = append(h.nodes, h.pill)
	}

	h.layoutDots(len(s.WallNames), s.CurrentWall, screenW, screenH)
	h.nodes = append(h.nodes, h.dots...)

	hs := e.Style(h.hint)
	h.hint.Bounds = rl.NewRectangle(0, screenH-bottomMargin-3*float32(hs.FontSize)-2*float32(hs.Padding), screenW, float32(hs.FontSize)+2*float32(hs.Padding))
	h.nodes = append(h.nodes, h.hint)

	h.nodes = h.Panel.AppendNodes(h.nodes, e)
}

func (h *HUD) layoutIntro(title string, screenW float32) {
	e := h.Engine
	e.Place(h.intro)
	card := h.intro.Bounds
	if card.Width > screenW-20 {
		card.Width = screenW - 20
		card.X = 10
		h.intro.Bounds = card
	}
	pad := float32(e.Style(h.intro).Padding)
	inner := card.Width - 2*pad

	ts := e.Style(h.introTitle)
	h.introTitle.Text = title
	h.introTitle.Bounds = rl.NewRectangle(card.X+pad, card.Y+pad, inner, float32(ts.FontSize)+2*float32(ts.Padding))

	hs := e.Style(h.introText)
	h.introText.Lines = append(wrapPx(e, introHint, hs.FontSize, inner-2*float32(hs.Padding)), "", introAction)
	top := h.introTitle.Bounds.Y + h.introTitle.Bounds.Height + pad/2
	h.introText.Bounds = rl.NewRectangle(card.X+pad, top, inner, card.Y+card.Height-top)
}

func (h *HUD) layoutDots(n, current int, screenW, screenH float32) {
	for len(h.dots) < n {
		h.dots = append(h.dots, &Node{Action: ActionJump})
	}
	h.dots = h.dots[:n]
	if n == 0 {
		return
	}
	size := float32(orDefault(h.Engine.Style(&Node{Class: "dot"}).Width, 14))
	total := float32(n)*size + float32(n-1)*dotGap
	x := (screenW - total) / 2
	for i, d := range h.dots {
		d.Class = "dot"
		if i == current {
			d.Class = "dot dot-active"
		}
		d.Arg = i
		d.Bounds = rl.NewRectangle(x, screenH-bottomMargin-size, size, size)
		x += size + dotGap
	}
}

// orDefault returns v, or def when v is not positive.
func orDefault(v, def int32) int32 {
	if v > 0 {
		return v
	}
	return def
}

// Draw draws the nodes of the last Update.
func (h *HUD) Draw() {
	h.Engine.Draw(h.nodes)
}

// Click returns the action of the node under the point and its argument.
func (h *HUD) Click(x, y float32) (Action, int) {
	if n := NodeAt(h.nodes, x, y); n != nil {
		return n.Action, n.Arg
	}
	return ActionNone, 0
}

// Covers reports whether the point is over a HUD panel, so the room below should not react.
func (h *HUD) Covers(x, y float32) bool {
	for _, n := range h.nodes {
		if n == h.hint {
			continue
		}
		if n.Contains(x, y) {
			return true
		}
	}
	return false
}
