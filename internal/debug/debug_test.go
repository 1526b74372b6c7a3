package debug

import (
	"strings"
	"testing"

	"gallery3d/internal/navigation"
)

func TestNavigationLines(t *testing.T) {
	p := navigation.Position{CurrentPosition: 1.25, TargetPosition: 2, CurrentWall: 1, Progress: 0.25, Direction: navigation.DirectionForward}
	s := navigation.Session{ModalOpen: true}
	lines := NavigationLines(p, s)
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, want := range []string{"current 1.250  target 2.000", "wall 1  progress 0.25  forward", "intro false  modal true  moving false"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}
