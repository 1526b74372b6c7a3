package primitives

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func transformPoint(m rl.Matrix, p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, m)
}

func near(a, b rl.Vector3) bool {
	const eps = 1e-4
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps && math.Abs(float64(a.Z-b.Z)) < eps
}

func TestTransformZeroSizeIsUnit(t *testing.T) {
	m := Transform{Position: rl.NewVector3(1, 2, 3)}.Matrix()
	got := transformPoint(m, rl.NewVector3(0.5, 0.5, 0.5))
	if want := rl.NewVector3(1.5, 2.5, 3.5); !near(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTransformStandsPlaneUp(t *testing.T) {
	// A plane pitched a quarter turn faces +Z; its far edge (local +Z) ends up at the bottom.
	m := Transform{Size: rl.NewVector3(20, 1, 10), Pitch: math.Pi / 2}.Matrix()
	if got, want := transformPoint(m, rl.NewVector3(0, 0, 0.5)), rl.NewVector3(0, -5, 0); !near(got, want) {
		t.Fatalf("far edge: got %+v, want %+v", got, want)
	}
	if got, want := transformPoint(m, rl.NewVector3(0.5, 0, 0)), rl.NewVector3(10, 0, 0); !near(got, want) {
		t.Fatalf("right edge: got %+v, want %+v", got, want)
	}
}

func TestTransformYawTurnsAboutY(t *testing.T) {
	m := Transform{Position: rl.NewVector3(0, 1, 0), Yaw: math.Pi / 2}.Matrix()
	got := transformPoint(m, rl.NewVector3(0, 0, 1))
	if want := rl.NewVector3(1, 1, 0); !near(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
