package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// SplitFrontMatter separates a leading "---" fenced YAML block from the markdown body.
// A document without front-matter returns a nil header and the whole input as body.
func SplitFrontMatter(doc []byte) (header, body []byte, err error) {
	doc = bytes.TrimPrefix(doc, []byte("\ufeff"))
	first, rest, ok := cutLine(doc)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return nil, doc, nil
	}
	var h bytes.Buffer
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fence) {
			return h.Bytes(), rest, nil
		}
		h.Write(line)
		h.WriteByte('\n')
	}
	return nil, nil, fmt.Errorf("content: unterminated front-matter")
}

// cutLine returns the first line of b (without the newline) and the remainder.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return bytes.TrimSuffix(b[:i], []byte("\r")), b[i+1:], true
	}
	return b, nil, true
}

// ParseFrontMatter decodes the front-matter of doc into v and returns the markdown body.
func ParseFrontMatter(doc []byte, v any) (body []byte, err error) {
	header, body, err := SplitFrontMatter(doc)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(header)) == 0 {
		return body, nil
	}
	if err := yaml.Unmarshal(header, v); err != nil {
		return nil, fmt.Errorf("content: front-matter: %w", err)
	}
	return body, nil
}

// wallMeta is the front-matter of content/walls/wall-{i}.md.
type wallMeta struct {
	Name     string   `yaml:"name"`
	Color    string   `yaml:"color"`
	Texture  string   `yaml:"texture"`
	Projects []string `yaml:"projects"`
}

// projectMeta is the front-matter of content/projects/{id}.md. Wall is a pointer so a missing
// key can be told apart from wall 0.
type projectMeta struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Thumbnail   string  `yaml:"thumbnail"`
	Wall        *int    `yaml:"wall"`
	PositionX   float64 `yaml:"positionX"`
	PositionY   float64 `yaml:"positionY"`
	Scale       float64 `yaml:"scale"`
}
