// Package layout holds the raylib-free parts of HUD layout: text wrapping and eased motion.
package layout

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/mattn/go-runewidth"
)

// Wrap breaks text into lines of at most cols display cells, splitting on spaces. Words wider
// than cols are cut. East Asian wide runes count as two cells.
func Wrap(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		width := 0
		flush := func() {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			for ww > cols {
				if width > 0 {
					flush()
				}
				head := runewidth.Truncate(w, cols, "")
				if head == "" {
					// a single rune wider than cols
					_, size := firstRune(w)
					head = w[:size]
				}
				line.WriteString(head)
				flush()
				w = w[len(head):]
				ww = runewidth.StringWidth(w)
			}
			if w == "" {
				continue
			}
			switch {
			case width == 0:
			case width+1+ww <= cols:
				line.WriteByte(' ')
				width++
			default:
				flush()
			}
			line.WriteString(w)
			width += ww
		}
		if width > 0 {
			flush()
		}
	}
	return lines
}

func firstRune(s string) (rune, int) {
	for i, r := range s {
		if i > 0 {
			return r, i
		}
	}
	return 0, len(s)
}

// Clip shortens s to cols cells, ending with an ellipsis when cut.
func Clip(s string, cols int) string {
	return runewidth.Truncate(s, cols, "…")
}

// Slide eases a value toward a target with a critically damped spring. Call Step once per frame.
type Slide struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewSlide returns a Slide stepping at fps frames per second, starting at pos. A non-positive
// fps counts as 60.
func NewSlide(fps int, pos float64) *Slide {
	if fps <= 0 {
		fps = 60
	}
	return &Slide{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0), pos: pos, target: pos}
}

// SetTarget changes where the slide is heading.
func (s *Slide) SetTarget(target float64) {
	s.target = target
}

// Target returns the current target.
func (s *Slide) Target() float64 {
	return s.target
}

// Step advances one frame and returns the new position. Within 1e-3 of the target it snaps.
func (s *Slide) Step() float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if d := s.pos - s.target; d < 1e-3 && d > -1e-3 && s.vel < 1e-2 && s.vel > -1e-2 {
		s.pos, s.vel = s.target, 0
	}
	return s.pos
}

// Pos returns the current position.
func (s *Slide) Pos() float64 {
	return s.pos
}

// Settled reports whether the slide rests on its target.
func (s *Slide) Settled() bool {
	return s.pos == s.target && s.vel == 0
}
