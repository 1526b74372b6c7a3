package content

import (
	"bytes"
	"fmt"
	"slices"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "monokai"

// Renderer converts project markdown to HTML. Raw HTML in the markdown is kept as written
// and fenced code blocks are highlighted with inline styles.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// NewRenderer returns a Renderer using the named chroma style. Unknown names fall back to
// DefaultHighlightStyle.
func NewRenderer(style string) *Renderer {
	if !ValidStyle(style) {
		style = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Renderer{md: md, style: style}
}

// Style returns the chroma style in use.
func (r *Renderer) Style() string {
	return r.style
}

// ValidStyle reports whether name is a registered chroma style.
func ValidStyle(name string) bool {
	return name != "" && slices.Contains(styles.Names(), name)
}

// HTML renders markdown to HTML.
func (r *Renderer) HTML(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("content: markdown: %w", err)
	}
	return buf.String(), nil
}
