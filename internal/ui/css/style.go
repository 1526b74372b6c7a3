package css

import (
	"image/color"
	"strconv"
	"strings"
)

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
	FontSize   int32
	// Radius is the corner roundness in [0, 1] of the shorter side.
	Radius     float32
	TextCenter bool
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
	}
}

// Resolve merges the props of every rule matching class (one or more space-separated names)
// or id, in sheet order, and computes the style.
func (s *Stylesheet) Resolve(class, id string) ComputedStyle {
	if s == nil {
		return DefaultComputedStyle()
	}
	classes := strings.Fields(class)
	merged := make(map[string]string)
	for _, rule := range s.Rules {
		if !matches(rule.Selector, classes, id) {
			continue
		}
		for k, v := range rule.Props {
			merged[k] = v
		}
	}
	return ResolveProps(merged)
}

func matches(sel string, classes []string, id string) bool {
	switch sel[0] {
	case '#':
		return id != "" && sel[1:] == id
	case '.':
		for _, c := range classes {
			if sel[1:] == c {
				return true
			}
		}
	}
	return false
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b) and rgba(r,g,b,a) with a in [0, 1].
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	for _, fn := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, fn) && strings.HasSuffix(s, ")") {
			return parseRGB(s[len(fn) : len(s)-1])
		}
	}
	if s == "transparent" {
		return color.RGBA{}, true
	}
	return color.RGBA{}, false
}

func parseHex(hex string) (color.RGBA, bool) {
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return color.RGBA{}, false
		}
	}
	nib := func(i int) uint8 {
		v, _ := strconv.ParseUint(hex[i:i+1], 16, 8)
		return uint8(v)
	}
	switch len(hex) {
	case 3:
		return color.RGBA{nib(0) * 17, nib(1) * 17, nib(2) * 17, 255}, true
	case 6, 8:
		c := color.RGBA{nib(0)<<4 | nib(1), nib(2)<<4 | nib(3), nib(4)<<4 | nib(5), 255}
		if len(hex) == 8 {
			c.A = nib(6)<<4 | nib(7)
		}
		return c, true
	}
	return color.RGBA{}, false
}

func parseRGB(args string) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	c := color.RGBA{ch[0], ch[1], ch[2], 255}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, false
		}
		c.A = uint8(a*255 + 0.5)
	}
	return c, true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			// "1px solid #fff" keeps only the color
			if i := strings.LastIndexAny(v, "# "); i > 0 {
				v = strings.TrimSpace(v[i:])
			}
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "border-radius":
			if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil && f >= 0 {
				if strings.HasSuffix(v, "%") {
					f /= 50
				}
				out.Radius = float32(min(f, 1))
			}
		case "text-align":
			out.TextCenter = v == "center"
		}
	}
	return out
}
