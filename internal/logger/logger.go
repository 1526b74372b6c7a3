package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the gallery log file, relative to the working directory.
const DefaultPath = "logs/gallery.txt"

// maxLines bounds the in-memory history; the file keeps everything.
const maxLines = 500

// Logger stores recent lines in memory (for the viewer overlay) and appends every line to a file.
// Safe for concurrent use; the HTTP server logs from handler goroutines.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger appending to path and makes sure its directory exists.
// An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0, 64)}
}

// Log appends a line prefixed with [timestamp] to memory and to the log file.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the stored lines.
func (l *Logger) Lines() []string {
	return l.Tail(0)
}

// Tail returns a copy of the last n lines (all lines when n <= 0).
func (l *Logger) Tail(n int) []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if n > 0 && len(l.lines) > n {
		start = len(l.lines) - n
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}
