package css

import (
	"image/color"
	"testing"
)

const hudCSS = `
/* HUD */
.pill { background: #000000aa; color: #fff; left: 50%; top: 24px; height: 40px; border-radius: 50%; text-align: center }
.dot, .dot-active { width: 14px; height: 14px; border: 1px solid #ffffff }
.dot-active { background: rgba(255, 255, 255, 0.8) }
@media (max-width: 600px) { .pill { top: 8px } }
div > .skipped { color: #f00 }
#modal { background: #111; padding: 24px; font-size: 18px }
`

func TestParse(t *testing.T) {
	sheet, err := Parse(hudCSS)
	if err != nil {
		t.Fatal(err)
	}
	var sels []string
	for _, r := range sheet.Rules {
		sels = append(sels, r.Selector)
	}
	want := []string{".pill", ".dot", ".dot-active", ".dot-active", "#modal"}
	if len(sels) != len(want) {
		t.Fatalf("selectors = %q, want %q", sels, want)
	}
	for i := range want {
		if sels[i] != want[i] {
			t.Fatalf("selectors = %q, want %q", sels, want)
		}
	}
	if sheet.Rules[0].Props["top"] != "24px" {
		t.Fatalf("@media rule leaked into .pill: %v", sheet.Rules[0].Props)
	}
}

func TestResolve(t *testing.T) {
	sheet, err := Parse(hudCSS)
	if err != nil {
		t.Fatal(err)
	}
	pill := sheet.Resolve("pill", "")
	if pill.Background != (color.RGBA{0, 0, 0, 0xaa}) || pill.LeftPct != 50 || pill.Top != 24 || !pill.TextCenter || pill.Radius != 1 {
		t.Fatalf("pill = %+v", pill)
	}
	dot := sheet.Resolve("dot dot-active", "")
	if !dot.HasBorder || dot.Border != (color.RGBA{255, 255, 255, 255}) || dot.Background != (color.RGBA{255, 255, 255, 204}) || dot.Width != 14 {
		t.Fatalf("active dot = %+v", dot)
	}
	modal := sheet.Resolve("", "modal")
	if modal.Padding != 24 || modal.FontSize != 18 || modal.Background != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Fatalf("modal = %+v", modal)
	}
	var nilSheet *Stylesheet
	if got := nilSheet.Resolve("pill", ""); got != DefaultComputedStyle() {
		t.Fatalf("nil sheet = %+v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#102030", color.RGBA{16, 32, 48, 255}, true},
		{"#10203080", color.RGBA{16, 32, 48, 128}, true},
		{"rgb(1, 2, 3)", color.RGBA{1, 2, 3, 255}, true},
		{"rgba(1,2,3,0)", color.RGBA{1, 2, 3, 0}, true},
		{"transparent", color.RGBA{}, true},
		{"#ggg", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"rgb(300,0,0)", color.RGBA{}, false},
		{"red", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePxAndPct(t *testing.T) {
	if n, ok := ParsePx("12px"); !ok || n != 12 {
		t.Fatalf("ParsePx = %d, %v", n, ok)
	}
	if n, ok := ParsePx(" 7.9 "); !ok || n != 7 {
		t.Fatalf("ParsePx fractional = %d, %v", n, ok)
	}
	if _, ok := ParsePct("120%"); ok {
		t.Fatal("ParsePct accepted 120%")
	}
}
