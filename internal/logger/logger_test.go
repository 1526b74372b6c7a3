package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gallery.txt")
	l := New(path)
	l.Log("first")
	l.Logf("wall %d missing", 3)

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], "] wall 3 missing") || !strings.HasPrefix(lines[1], "[") {
		t.Fatalf("unexpected line %q", lines[1])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Fatalf("file content %q", data)
	}
}

func TestTailAndBound(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+20; i++ {
		l.Logf("line %d", i)
	}
	if got := len(l.Lines()); got != maxLines {
		t.Fatalf("kept %d lines, want %d", got, maxLines)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || !strings.HasSuffix(tail[1], "line 519") {
		t.Fatalf("tail = %v", tail)
	}
}

func TestNilLoggerIsQuiet(t *testing.T) {
	var l *Logger
	l.Log("ignored")
	if l.Lines() != nil {
		t.Fatal("nil logger returned lines")
	}
}
