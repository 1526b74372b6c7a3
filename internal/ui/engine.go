package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/ui/css"
)

// DefaultCSS styles the HUD when no stylesheet file is configured.
const DefaultCSS = `
.pill { background: rgba(0,0,0,0.6); color: #ffffff; font-size: 22px; padding: 10px; border-radius: 100%; text-align: center; top: 20px; }
.dot { background: rgba(255,255,255,0.35); width: 14px; height: 14px; border-radius: 100%; }
.dot-active { background: #ffffff; }
.intro { background: rgba(0,0,0,0.85); width: 560px; height: 220px; left: 50%; top: 50%; border-radius: 10%; padding: 24px; }
.intro-title { color: #ffffff; font-size: 36px; text-align: center; }
.intro-hint { color: #bbbbbb; font-size: 18px; text-align: center; }
.modal { background: rgba(18,18,18,0.95); border: 1px solid #333333; width: 520px; padding: 28px; }
.modal-title { color: #ffffff; font-size: 30px; }
.modal-description { color: #cccccc; font-size: 20px; }
.modal-body { color: #e0e0e0; font-size: 18px; }
.close { background: #333333; color: #ffffff; width: 36px; height: 36px; font-size: 20px; text-align: center; border-radius: 100%; padding: 8px; }
.hint { color: rgba(255,255,255,0.6); font-size: 16px; text-align: center; }
`

const lineSpacing = 1.35

// Engine holds the stylesheet and font and draws nodes with raylib. Draw order is node order.
// Resolved styles are cached per class/id pair until the stylesheet changes.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	sheet   *css.Stylesheet
	styles  map[string]css.ComputedStyle
	font    rl.Font
	hasFont bool
}

// New creates an engine styled by DefaultCSS.
func New() *Engine {
	sheet, _ := css.Parse(DefaultCSS)
	return &Engine{sheet: sheet, styles: make(map[string]css.ComputedStyle)}
}

// LoadCSS loads and parses a CSS file from path. Its rules are applied after DefaultCSS.
func (e *Engine) LoadCSS(path string) error {
	sheet, err := css.Load(path)
	if err != nil {
		return err
	}
	base, _ := css.Parse(DefaultCSS)
	base.Rules = append(base.Rules, sheet.Rules...)
	e.SetStylesheet(base)
	return nil
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *css.Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// Stylesheet returns the current stylesheet.
func (e *Engine) Stylesheet() *css.Stylesheet {
	return e.sheet
}

// LoadFont loads a TTF/OTF font from path. On failure the engine keeps the current font.
// Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: cannot load font %s", path)
	}
	if e.hasFont {
		rl.UnloadFont(e.font)
	}
	e.font, e.hasFont = f, true
	return nil
}

// Font returns the loaded font, or raylib's default.
func (e *Engine) Font() rl.Font {
	if e.hasFont {
		return e.font
	}
	return rl.GetFontDefault()
}

// Style returns the computed style for a node.
func (e *Engine) Style(n *Node) css.ComputedStyle {
	key := n.Class + "#" + n.ID
	if s, ok := e.styles[key]; ok {
		return s
	}
	s := e.sheet.Resolve(n.Class, n.ID)
	e.styles[key] = s
	return s
}

// Measure returns the pixel width of text at size.
func (e *Engine) Measure(text string, size int32) float32 {
	fs := float32(size)
	return rl.MeasureTextEx(e.Font(), text, fs, spacingFor(fs)).X
}

// LineHeight returns the distance between wrapped lines at size.
func LineHeight(size int32) float32 {
	return float32(size) * lineSpacing
}

func spacingFor(size float32) float32 {
	return max(1, size/10)
}

// Place sets n.Bounds from its style. Width and height of zero keep the node's current size;
// percentage left/top center the node at that fraction of the free space.
func (e *Engine) Place(n *Node) {
	style := e.Style(n)
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	if style.LeftPct >= 0 {
		n.Bounds.X = (screenW - n.Bounds.Width) * float32(style.LeftPct) / 100
	} else if style.Left != 0 {
		n.Bounds.X = float32(style.Left)
	}
	if style.TopPct >= 0 {
		n.Bounds.Y = (screenH - n.Bounds.Height) * float32(style.TopPct) / 100
	} else if style.Top != 0 {
		n.Bounds.Y = float32(style.Top)
	}
}

// Draw draws nodes in order: background, border, then text.
func (e *Engine) Draw(nodes []*Node) {
	font := e.Font()
	for _, n := range nodes {
		style := e.Style(n)
		b := n.Bounds
		if style.Background.A > 0 && b.Width > 0 && b.Height > 0 {
			if style.Radius > 0 {
				rl.DrawRectangleRounded(b, style.Radius, 12, style.Background)
			} else {
				rl.DrawRectangleRec(b, style.Background)
			}
		}
		if style.HasBorder && b.Width > 0 && b.Height > 0 {
			rl.DrawRectangleLinesEx(b, 1, style.Border)
		}

		lines := n.Lines
		if n.Text != "" {
			lines = append([]string{n.Text}, lines...)
		}
		if len(lines) == 0 {
			continue
		}
		size := float32(style.FontSize)
		spacing := spacingFor(size)
		pad := float32(style.Padding)
		y := b.Y + pad
		if style.TextCenter && len(lines) == 1 && b.Height > 0 {
			y = b.Y + (b.Height-size)/2
		}
		for _, line := range lines {
			x := b.X + pad
			if style.TextCenter {
				w := rl.MeasureTextEx(font, line, size, spacing).X
				x = b.X + (b.Width-w)/2
			}
			rl.DrawTextEx(font, line, rl.NewVector2(x, y), size, spacing, style.Color)
			y += LineHeight(style.FontSize)
		}
	}
}

// NodeAt returns the topmost node with an action under the point, or nil.
func NodeAt(nodes []*Node, x, y float32) *Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		if n := nodes[i]; n.Action != ActionNone && n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// Unload releases the loaded font.
func (e *Engine) Unload() {
	if e.hasFont {
		rl.UnloadFont(e.font)
		e.hasFont = false
	}
}
