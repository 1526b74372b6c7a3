package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUnzipExtractsAndSkipsEscapes(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"content/walls/wall-0.md": "---\nname: A\n---\n",
		"../evil.txt":             "nope",
		"__MACOSX/junk":           "x",
	})
	dest := t.TempDir()
	keep := func(name string) bool { return !strings.HasPrefix(name, "__MACOSX/") }
	got, err := Unzip(zipPath, dest, keep, false)
	if err != nil {
		t.Fatalf("Unzip: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("extracted %v, want one file", got)
	}
	b, err := os.ReadFile(filepath.Join(dest, "content", "walls", "wall-0.md"))
	if err != nil || !strings.Contains(string(b), "name: A") {
		t.Fatalf("wall file = %q, %v", b, err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "evil.txt")); err == nil {
		t.Fatal("entry escaped the destination")
	}
}

func TestUnzipKeepsExistingFiles(t *testing.T) {
	zipPath := writeZip(t, map[string]string{"a.md": "new"})
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "a.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Unzip(zipPath, dest, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("extracted %v, want nothing", got)
	}
	b, _ := os.ReadFile(filepath.Join(dest, "a.md"))
	if string(b) != "old" {
		t.Fatalf("file overwritten: %q", b)
	}
	if _, err := Unzip(zipPath, dest, nil, true); err != nil {
		t.Fatal(err)
	}
	b, _ = os.ReadFile(filepath.Join(dest, "a.md"))
	if string(b) != "new" {
		t.Fatalf("overwrite ignored: %q", b)
	}
}

func TestUnzipMissingArchive(t *testing.T) {
	if _, err := Unzip(filepath.Join(t.TempDir(), "none.zip"), t.TempDir(), nil, false); err == nil {
		t.Fatal("expected error")
	}
}
