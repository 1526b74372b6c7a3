package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/ui/css"
	"gallery3d/internal/ui/layout"
)

// ProjectView is the data shown in the project panel.
type ProjectView struct {
	ID          string
	Title       string
	Description string
	Paragraphs  []string
}

// ProjectPanel is the right-side panel with a project's details. It slides in when shown and
// out when hidden, and keeps its last project while sliding out.
type ProjectPanel struct {
	panel       *Node
	title       *Node
	description *Node
	body        *Node
	close       *Node

	slide  *layout.Slide
	view   ProjectView
	open   bool
	scroll int

	// wrapped body lines for wrapWidth
	wrapped   []string
	wrapWidth float32
}

// NewProjectPanel returns a hidden panel animating at fps frames per second.
func NewProjectPanel(fps int) *ProjectPanel {
	return &ProjectPanel{
		panel:       NewNode("modal", "modal", ""),
		title:       NewNode("modal-title", "", ""),
		description: NewNode("modal-description", "", ""),
		body:        NewNode("modal-body", "", ""),
		close:       &Node{Class: "close", Text: "X", Action: ActionCloseModal},
		slide:       layout.NewSlide(fps, 0),
	}
}

// Show opens the panel on v.
func (p *ProjectPanel) Show(v ProjectView) {
	if v.ID != p.view.ID || !p.open {
		p.scroll = 0
	}
	p.view = v
	p.wrapWidth = 0
	p.open = true
	p.slide.SetTarget(1)
}

// Hide slides the panel out.
func (p *ProjectPanel) Hide() {
	p.open = false
	p.slide.SetTarget(0)
}

// Open reports whether the panel is shown or opening.
func (p *ProjectPanel) Open() bool {
	return p.open
}

// Visible reports whether any part of the panel is on screen.
func (p *ProjectPanel) Visible() bool {
	return p.open || p.slide.Pos() > 0
}

// Scroll moves the body by lines; negative scrolls up.
func (p *ProjectPanel) Scroll(lines int) {
	p.scroll = max(0, p.scroll+lines)
}

// AppendNodes steps the slide animation and appends the panel nodes to dst while any part of
// the panel is visible.
func (p *ProjectPanel) AppendNodes(dst []*Node, e *Engine) []*Node {
	pos := float32(p.slide.Step())
	if pos <= 0 && !p.open {
		return dst
	}
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	ps := e.Style(p.panel)
	width := float32(orDefault(ps.Width, 520))
	width = min(width, screenW*0.9)
	pad := float32(ps.Padding)
	p.panel.Bounds = rl.NewRectangle(screenW-pos*width, 0, width, screenH)
	inner := width - 2*pad
	x := p.panel.Bounds.X + pad
	y := pad

	cs := e.Style(p.close)
	size := float32(orDefault(cs.Width, 36))
	p.close.Bounds = rl.NewRectangle(p.panel.Bounds.X+width-pad/2-size, pad/2, size, size)

	ts := e.Style(p.title)
	p.title.Lines = wrapPx(e, p.view.Title, ts.FontSize, inner-size)
	p.title.Bounds = rl.NewRectangle(x, y, inner, blockHeight(len(p.title.Lines), ts))
	y += p.title.Bounds.Height + pad/2

	ds := e.Style(p.description)
	p.description.Lines = wrapPx(e, p.view.Description, ds.FontSize, inner)
	p.description.Bounds = rl.NewRectangle(x, y, inner, blockHeight(len(p.description.Lines), ds))
	y += p.description.Bounds.Height + pad/2

	bs := e.Style(p.body)
	if p.wrapWidth != inner {
		p.wrapped = p.wrapped[:0]
		for i, para := range p.view.Paragraphs {
			if i > 0 {
				p.wrapped = append(p.wrapped, "")
			}
			p.wrapped = append(p.wrapped, wrapPx(e, para, bs.FontSize, inner-2*float32(bs.Padding))...)
		}
		p.wrapWidth = inner
	}
	fit := int((screenH - y - pad) / LineHeight(bs.FontSize))
	p.scroll = min(p.scroll, max(0, len(p.wrapped)-fit))
	end := min(len(p.wrapped), p.scroll+max(fit, 0))
	p.body.Lines = p.wrapped[p.scroll:end]
	p.body.Bounds = rl.NewRectangle(x, y, inner, screenH-y)

	return append(dst, p.panel, p.title, p.description, p.body, p.close)
}

func blockHeight(lines int, style css.ComputedStyle) float32 {
	if lines == 0 {
		return 0
	}
	return float32(lines)*LineHeight(style.FontSize) + 2*float32(style.Padding)
}

// wrapPx wraps text to fit width pixels at size, estimating columns from the font's average
// glyph width.
func wrapPx(e *Engine, text string, size int32, width float32) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	const sample = "abcdefghijklmnopqrstuvwxyz"
	glyph := e.Measure(sample, size) / float32(len(sample))
	if glyph <= 0 {
		return []string{text}
	}
	return layout.Wrap(text, max(1, int(width/glyph)))
}
