package content

import (
	"html"
	"strings"

	"github.com/tdewolff/parse/v2"
	htmlparse "github.com/tdewolff/parse/v2/html"
)

// blockTags end the current paragraph when they open or close.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true, "table": true, "tr": true, "hr": true,
	"section": true, "article": true, "figure": true, "figcaption": true,
}

// skipTags have content that is never shown as text.
var skipTags = map[string]bool{"script": true, "style": true, "template": true}

// PlainText reduces rendered HTML to paragraphs of plain text, one entry per block element.
// List items are prefixed with "- ". Entities are decoded and whitespace collapsed.
func PlainText(src string) []string {
	lx := htmlparse.NewLexer(parse.NewInputString(src))
	var (
		out  []string
		cur  strings.Builder
		skip int
	)
	flush := func() {
		text := strings.Join(strings.Fields(cur.String()), " ")
		if text != "" && text != "-" {
			out = append(out, text)
		}
		cur.Reset()
	}
	for {
		tt, data := lx.Next()
		switch tt {
		case htmlparse.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was read
			flush()
			return out
		case htmlparse.StartTagToken:
			name := strings.ToLower(string(lx.Text()))
			if skipTags[name] {
				skip++
			}
			if blockTags[name] {
				flush()
			}
			if name == "li" {
				cur.WriteString("- ")
			}
		case htmlparse.EndTagToken:
			name := strings.ToLower(string(lx.Text()))
			if skipTags[name] && skip > 0 {
				skip--
			}
			if blockTags[name] {
				flush()
			}
		case htmlparse.TextToken:
			if skip == 0 {
				cur.WriteString(html.UnescapeString(string(data)))
			}
		}
	}
}
