package content

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gallery3d/internal/logger"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "walls", "wall-0.md"), "---\nname: Entrance\ncolor: \"#ff0000\"\nprojects: [b]\n---\nWelcome.\n")
	writeFile(t, filepath.Join(root, "walls", "wall-1.md"), "---\ncolor: \"#00ff00\"\n---\n")
	writeFile(t, filepath.Join(root, "walls", "wall-3.md"), "---\nname: Back\n---\n")
	writeFile(t, filepath.Join(root, "projects", "a.md"), "---\ntitle: Alpha\ndescription: first\nwall: 1\npositionX: 2\n---\n## Heading\n\nBody <span class=\"raw\">kept</span>\n")
	writeFile(t, filepath.Join(root, "projects", "b.md"), "---\ntitle: Beta\ndescription: second\nwall: 0\npositionX: 3\nscale: 1.5\n---\nB\n")
	writeFile(t, filepath.Join(root, "projects", "c.md"), "---\ntitle: Gamma\ndescription: third\nwall: 1\npositionX: -1\npositionY: 0.5\n---\nC\n")
	writeFile(t, filepath.Join(root, "projects", "bad.md"), "---\ntitle: No description\nwall: 0\n---\n")
	writeFile(t, filepath.Join(root, "projects", "notes.txt"), "ignored")
	return NewStore(root, 4, nil, logger.New("")), root
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantHeader string
		wantBody   string
		wantErr    bool
	}{
		{"fenced", "---\na: 1\n---\nbody\n", "a: 1\n", "body\n", false},
		{"crlf", "---\r\na: 1\r\n---\r\nbody", "a: 1\n", "body", false},
		{"bom", "\ufeff---\na: 1\n---\n", "a: 1\n", "", false},
		{"none", "# Title\n", "", "# Title\n", false},
		{"unterminated", "---\na: 1\n", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, b, err := SplitFrontMatter([]byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if string(h) != tt.wantHeader || string(b) != tt.wantBody {
				t.Fatalf("got (%q, %q), want (%q, %q)", h, b, tt.wantHeader, tt.wantBody)
			}
		})
	}
}

func TestParseFrontMatterMissingWall(t *testing.T) {
	var m projectMeta
	if _, err := ParseFrontMatter([]byte("---\ntitle: x\n---\n"), &m); err != nil {
		t.Fatal(err)
	}
	if m.Wall != nil {
		t.Fatalf("Wall = %v, want nil for a missing key", *m.Wall)
	}
	if _, err := ParseFrontMatter([]byte("---\nwall: 0\n---\n"), &m); err != nil {
		t.Fatal(err)
	}
	if m.Wall == nil || *m.Wall != 0 {
		t.Fatal("wall 0 not decoded")
	}
}

func TestGalleryFallsBackPerWall(t *testing.T) {
	s, _ := newTestStore(t)
	g, err := s.Gallery()
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "Main Gallery" || g.InitialPosition != (Vec3{Y: 1.6}) {
		t.Fatalf("scene header = %q %+v", g.Name, g.InitialPosition)
	}
	names := make([]string, len(g.Walls))
	for i, w := range g.Walls {
		names[i] = w.Name
		if w.ID != i {
			t.Fatalf("wall %d has id %d", i, w.ID)
		}
	}
	want := []string{"Entrance", "Wall 1", "Wall 2", "Back"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if g.Walls[0].Color != "#ff0000" || g.Walls[3].Color != DefaultWallColor {
		t.Fatalf("colors = %q %q", g.Walls[0].Color, g.Walls[3].Color)
	}
}

func TestGalleryRootNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	writeFile(t, file, "x")
	if _, err := NewStore(file, 4, nil, nil).Gallery(); err == nil {
		t.Fatal("expected error for a file root")
	}
	fb := FallbackScene(4)
	if fb.Name != "Error Gallery" || len(fb.Walls) != 4 || fb.Walls[2].Name != "Wall 2" {
		t.Fatalf("fallback = %+v", fb)
	}
}

func TestWallReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t)
	w, err := s.Wall(0)
	if err != nil {
		t.Fatal(err)
	}
	w.Projects[0] = "changed"
	again, _ := s.Wall(0)
	if again.Projects[0] != "b" {
		t.Fatalf("cached wall mutated through a returned copy: %v", again.Projects)
	}
	if _, err := s.Wall(2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing wall err = %v", err)
	}
	if _, err := s.Wall(1); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("nameless wall err = %v", err)
	}
}

func TestProjectsSortedAndDefaulted(t *testing.T) {
	s, _ := newTestStore(t)
	list, err := s.Projects()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, p := range list {
		ids = append(ids, p.ID)
		if p.Content != "" {
			t.Fatalf("%s has content in list view", p.ID)
		}
	}
	if want := []string{"b", "c", "a"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	if list[0].Position.Scale != 1.5 || list[1].Position.Scale != 1 || list[1].Position.Y != 0.5 {
		t.Fatalf("placements = %+v %+v", list[0].Position, list[1].Position)
	}
	byWall, err := s.ProjectsByWall()
	if err != nil {
		t.Fatal(err)
	}
	if len(byWall[0]) != 1 || len(byWall[1]) != 2 || len(byWall[2]) != 0 {
		t.Fatalf("byWall = %v", byWall)
	}
}

func TestProjectsWithoutDirectory(t *testing.T) {
	list, err := NewStore(t.TempDir(), 4, nil, nil).Projects()
	if err != nil || len(list) != 0 {
		t.Fatalf("got %v, %v", list, err)
	}
}

func TestProjectDetail(t *testing.T) {
	s, _ := newTestStore(t)
	p, err := s.Project("a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.Content, "<h2>Heading</h2>") {
		t.Fatalf("content = %q", p.Content)
	}
	if !strings.Contains(p.Content, `<span class="raw">kept</span>`) {
		t.Fatalf("raw HTML dropped: %q", p.Content)
	}
	tests := []struct {
		id   string
		want error
	}{
		{"missing", ErrNotFound},
		{"../a", ErrInvalidID},
		{"", ErrInvalidID},
		{"bad", ErrIncomplete},
	}
	for _, tt := range tests {
		if _, err := s.Project(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("Project(%q) err = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestProjectReloadsChangedFile(t *testing.T) {
	s, root := newTestStore(t)
	if _, err := s.Project("b"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "projects", "b.md"), "---\ntitle: Beta renamed\ndescription: second\nwall: 0\n---\nNew body\n")
	p, err := s.Project("b")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Beta renamed" || !strings.Contains(p.Content, "New body") {
		t.Fatalf("stale project: %+v", p)
	}
}

func TestSortProjectsCollatesTitles(t *testing.T) {
	list := []Project{
		{ID: "1", Title: "beta"},
		{ID: "2", Title: "Alpha"},
		{ID: "3", Title: "zeta", Position: Placement{Wall: 0, X: -1}},
	}
	SortProjects(list)
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	if want := []string{"3", "2", "1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestRendererHighlightsCode(t *testing.T) {
	r := NewRenderer("no-such-style")
	if r.Style() != DefaultHighlightStyle {
		t.Fatalf("style = %q", r.Style())
	}
	out, err := r.HTML([]byte("```go\nfunc main() {}\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<pre") || !strings.Contains(out, "style=") {
		t.Fatalf("code block not highlighted: %q", out)
	}
}

func TestPlainText(t *testing.T) {
	src := `<h1>Title</h1><p>Hello &amp; <em>world</em>!</p><ul><li>one</li><li>two</li></ul><script>alert(1)</script><p>  spaced   out </p>`
	got := PlainText(src)
	want := []string{"Title", "Hello & world!", "- one", "- two", "spaced out"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestImportPack(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"walls/wall-0.md", "projects/p.md", "images/p.png", "fonts/Inter/Inter.ttf", "README.md", "projects/.hidden.md"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write([]byte("x"))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	root, public := t.TempDir(), t.TempDir()
	res, err := ImportPack(zipPath, root, public, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Content) != 2 || len(res.Public) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(public, "images", "p.png")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "README.md")); err == nil {
		t.Fatal("README.md should not be imported")
	}
}

func TestFullProjectsSkipsInvalid(t *testing.T) {
	s, _ := newTestStore(t)
	list, err := s.FullProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d projects, want 3", len(list))
	}
	for _, p := range list {
		if p.Content == "" {
			t.Errorf("%s has no rendered content", p.ID)
		}
	}
}
