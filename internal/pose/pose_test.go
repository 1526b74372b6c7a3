package pose

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, tol)
}

func TestFourCanonicalPoses(t *testing.T) {
	room := DefaultRoom()
	want := []Pose{
		{Position: mgl64.Vec3{0, 1.6, 5}, FacingAngle: 0},
		{Position: mgl64.Vec3{5, 1.6, 0}, FacingAngle: math.Pi / 2},
		{Position: mgl64.Vec3{0, 1.6, -5}, FacingAngle: math.Pi},
		{Position: mgl64.Vec3{-5, 1.6, 0}, FacingAngle: -math.Pi / 2},
	}
	for i, w := range want {
		got, err := Wall(i, 4, room)
		if err != nil {
			t.Fatal(err)
		}
		if !vecNear(got.Position, w.Position) || math.Abs(got.FacingAngle-w.FacingAngle) > tol {
			t.Errorf("Wall(%d) = %+v, want %+v", i, got, w)
		}
		// looking d units ahead lands on the room center
		if c := got.Target(room.HalfExtent); !vecNear(c, mgl64.Vec3{0, room.EyeHeight, 0}) {
			t.Errorf("Wall(%d) looks at %v, not the center", i, c)
		}
	}
}

func TestPosesSpacedAndFacingCenter(t *testing.T) {
	room := Room{HalfExtent: 7, EyeHeight: 2}
	for _, n := range []int{1, 3, 4, 6, 9} {
		step := 2 * math.Pi / float64(n)
		for i := 0; i < n; i++ {
			p, err := Wall(i, n, room)
			if err != nil {
				t.Fatal(err)
			}
			flat := mgl64.Vec3{p.Position.X(), 0, p.Position.Z()}
			if math.Abs(flat.Len()-room.HalfExtent) > tol {
				t.Fatalf("n=%d wall %d: distance %v", n, i, flat.Len())
			}
			if p.Position.Y() != room.EyeHeight {
				t.Fatalf("n=%d wall %d: eye height %v", n, i, p.Position.Y())
			}
			toCenter := flat.Mul(-1).Normalize()
			if !vecNear(p.Forward(), toCenter) {
				t.Fatalf("n=%d wall %d: forward %v, want %v", n, i, p.Forward(), toCenter)
			}
			next, _ := Wall((i+1)%n, n, room)
			turn := normalizeAngle(next.FacingAngle - p.FacingAngle)
			if n > 1 && math.Abs(turn-normalizeAngle(step)) > tol {
				t.Fatalf("n=%d wall %d: turn %v, want %v", n, i, turn, step)
			}
		}
	}
}

func TestOppositeWallsFaceOpposite(t *testing.T) {
	a, _ := Wall(0, 4, DefaultRoom())
	b, _ := Wall(2, 4, DefaultRoom())
	if !vecNear(a.Forward(), b.Forward().Mul(-1)) {
		t.Fatalf("forward %v and %v are not opposite", a.Forward(), b.Forward())
	}
}

func TestWallOutOfRange(t *testing.T) {
	for _, tt := range []struct{ index, n int }{{-1, 4}, {4, 4}, {0, 0}} {
		if _, err := Wall(tt.index, tt.n, DefaultRoom()); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Wall(%d, %d) err = %v", tt.index, tt.n, err)
		}
	}
}

func TestCameraMatchesWallPoses(t *testing.T) {
	room := DefaultRoom()
	for i := 0; i < 4; i++ {
		want, _ := Wall(i, 4, room)
		got := Camera(float64(i), 4, room)
		if !vecNear(got.Position, want.Position) || math.Abs(got.FacingAngle-want.FacingAngle) > tol {
			t.Errorf("Camera(%d) = %+v, want %+v", i, got, want)
		}
	}
	// a full loop later is the same place
	if got, want := Camera(5, 4, room), Camera(1, 4, room); !vecNear(got.Position, want.Position) {
		t.Errorf("Camera(5) = %v, want %v", got.Position, want.Position)
	}
	if got, want := Camera(-1, 4, room), Camera(3, 4, room); !vecNear(got.Position, want.Position) {
		t.Errorf("Camera(-1) = %v, want %v", got.Position, want.Position)
	}
}

func TestCameraInterpolatesShortestTurn(t *testing.T) {
	room := DefaultRoom()
	mid := Camera(0.5, 4, room)
	if !vecNear(mid.Position, mgl64.Vec3{2.5, 1.6, 2.5}) {
		t.Fatalf("Camera(0.5) position = %v", mid.Position)
	}
	// halfway between two walls the camera still looks through the center
	if c := mid.Target(math.Hypot(mid.Position.X(), mid.Position.Z())); math.Abs(c.X()) > tol || math.Abs(c.Z()) > tol {
		t.Fatalf("Camera(0.5) looks at %v", c)
	}
	if math.Abs(mid.FacingAngle-math.Pi/4) > tol {
		t.Fatalf("Camera(0.5) facing = %v", mid.FacingAngle)
	}
	wrap := Camera(3.5, 4, room)
	if math.Abs(wrap.FacingAngle-(-math.Pi/4)) > tol {
		t.Fatalf("Camera(3.5) facing = %v, want -π/4", wrap.FacingAngle)
	}
}
