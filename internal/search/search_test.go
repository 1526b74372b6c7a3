package search

import (
	"context"
	"testing"

	"gallery3d/internal/content"
)

func testProjects() []content.Project {
	return []content.Project{
		{ID: "orbit", Title: "Orbit Tracker", Description: "satellite dashboard", Position: content.Placement{Wall: 0},
			Content: "<p>Built with WebGL and a tiny scheduler.</p>"},
		{ID: "garden", Title: "Garden Planner", Description: "plans beds for orbit-free gardens", Position: content.Placement{Wall: 2},
			Content: "<p>Uses a scheduler for watering.</p><script>orbit()</script>"},
		{ID: "notes", Title: "Notes", Description: "markdown notes", Position: content.Placement{Wall: 1},
			Content: "<p>Plain text.</p>"},
	}
}

func openTest(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(Config{DBPath: MemoryDB})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	if err := ix.Rebuild(context.Background(), testProjects()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return ix
}

func TestSearchRanksTitleFirst(t *testing.T) {
	ix := openTest(t)
	hits, err := ix.Search(context.Background(), "orbit", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].ID != "orbit" || hits[1].ID != "garden" {
		t.Fatalf("order = %s, %s", hits[0].ID, hits[1].ID)
	}
	if hits[1].Wall != 2 {
		t.Fatalf("wall = %d", hits[1].Wall)
	}
}

func TestSearchPrefixAndAllWords(t *testing.T) {
	ix := openTest(t)
	hits, err := ix.Search(context.Background(), "sched water", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ID != "garden" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestSearchIgnoresScriptText(t *testing.T) {
	ix := openTest(t)
	hits, err := ix.Search(context.Background(), "orbit()", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range hits {
		if h.ID == "notes" {
			t.Fatalf("unexpected hit %+v", h)
		}
	}
}

func TestSearchOperatorsAreLiteral(t *testing.T) {
	ix := openTest(t)
	for _, q := range []string{`notes OR`, `"unbalanced`, `NEAR(`, `title:`, `*`} {
		if _, err := ix.Search(context.Background(), q, 5); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}
	hits, err := ix.Search(context.Background(), "   ", 5)
	if err != nil || hits != nil {
		t.Fatalf("blank query = %v, %v", hits, err)
	}
}

func TestRebuildReplaces(t *testing.T) {
	ix := openTest(t)
	if err := ix.Rebuild(context.Background(), testProjects()[:1]); err != nil {
		t.Fatal(err)
	}
	n, err := ix.Count(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestMatchExpr(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"foo":           `"foo"*`,
		"foo bar":       `"foo"* "bar"*`,
		`say "hi"`:      `"say"* "hi"*`,
		`a"b`:           `"a""b"*`,
		"(x) ^y title:": `"x"* "y"* "title"*`,
	}
	for in, want := range tests {
		if got := MatchExpr(in); got != want {
			t.Errorf("MatchExpr(%q) = %q, want %q", in, got, want)
		}
	}
}
