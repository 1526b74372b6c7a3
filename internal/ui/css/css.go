// Package css parses the small stylesheet dialect used by the viewer HUD: .class and #id
// selectors (comma lists allowed) with plain declarations. At-rules are skipped.
package css

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".pill" or "#modal"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Load reads and parses the stylesheet at path.
func Load(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("css: %w", err)
	}
	return Parse(string(data))
}

// Parse parses content. Rules whose selectors are not .class or #id are dropped.
func Parse(content string) (*Stylesheet, error) {
	p := tcss.NewParser(parse.NewInputString(content), false)
	sheet := &Stylesheet{}
	var current []int // indexes of the rules opened by the last ruleset
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case tcss.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return sheet, fmt.Errorf("css: %w", err)
			}
			return sheet, nil
		case tcss.BeginAtRuleGrammar:
			atDepth++
		case tcss.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case tcss.BeginRulesetGrammar:
			current = current[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range splitSelectors(p.Values()) {
				if !validSelector(sel) {
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
				current = append(current, len(sheet.Rules)-1)
			}
		case tcss.EndRulesetGrammar:
			current = current[:0]
		case tcss.DeclarationGrammar:
			name := strings.ToLower(strings.TrimSpace(string(data)))
			value := joinValues(p.Values())
			for _, i := range current {
				sheet.Rules[i].Props[name] = value
			}
		}
	}
}

func splitSelectors(tokens []tcss.Token) []string {
	var out []string
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == tcss.CommaToken {
			out = append(out, strings.TrimSpace(b.String()))
			b.Reset()
			continue
		}
		b.Write(t.Data)
	}
	return append(out, strings.TrimSpace(b.String()))
}

func validSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " >+~:[.#")
}

func joinValues(tokens []tcss.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == tcss.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(t.Data)
	}
	v := strings.Join(strings.Fields(b.String()), " ")
	return strings.TrimSpace(strings.TrimSuffix(v, "!important"))
}
