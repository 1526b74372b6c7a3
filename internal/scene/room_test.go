package scene

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/content"
	"gallery3d/internal/pose"
)

func near(a, b rl.Vector3) bool {
	const eps = 1e-4
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps && math.Abs(float64(a.Z-b.Z)) < eps
}

func TestWallCenterFacesPose(t *testing.T) {
	room := pose.DefaultRoom()
	want := []rl.Vector3{
		rl.NewVector3(0, 0, -10),
		rl.NewVector3(-10, 0, 0),
		rl.NewVector3(0, 0, 10),
		rl.NewVector3(10, 0, 0),
	}
	for i, w := range want {
		got := WallCenter(i, 4, room)
		if !near(got, w) {
			t.Errorf("wall %d: got %+v, want %+v", i, got, w)
		}
		// the wall lies straight ahead of its camera pose
		p, err := pose.Wall(i, 4, room)
		if err != nil {
			t.Fatal(err)
		}
		toWall := rl.Vector3Normalize(rl.Vector3Subtract(got, rl.NewVector3(float32(p.Position[0]), 0, float32(p.Position[2]))))
		if !near(toWall, vec(p.Forward())) {
			t.Errorf("wall %d: direction %+v, pose forward %+v", i, toWall, p.Forward())
		}
		// the camera stands on the far side of the center from its wall
		dist := rl.Vector3Length(rl.Vector3Subtract(got, rl.NewVector3(float32(p.Position[0]), 0, float32(p.Position[2]))))
		if want := float32(3 * room.HalfExtent); math.Abs(float64(dist-want)) > 1e-4 {
			t.Errorf("wall %d: %v from its camera, want %v", i, dist, want)
		}
	}
}

func TestWallSize(t *testing.T) {
	room := pose.DefaultRoom()
	tests := []struct {
		n     int
		width float32
	}{
		{1, 20},
		{2, 20},
		{4, 20},
		{6, 20 * float32(math.Tan(math.Pi/6))},
	}
	for _, tt := range tests {
		w, h := WallSize(tt.n, room)
		if math.Abs(float64(w-tt.width)) > 1e-4 || h != 10 {
			t.Errorf("n=%d: got %vx%v, want %vx10", tt.n, w, h, tt.width)
		}
	}
}

func TestPlaceProject(t *testing.T) {
	room := pose.DefaultRoom()
	p := PlaceProject(content.Placement{Wall: 0, X: 3, Y: 1, Scale: 2}, 4, room)
	if want := rl.NewVector3(3, 1, -10+frameOffset); !near(p.Center, want) {
		t.Fatalf("center: got %+v, want %+v", p.Center, want)
	}
	if p.Scale != 2 {
		t.Fatalf("scale: got %v", p.Scale)
	}

	// wall 1 sits on -X; the viewer's right there is -Z
	p = PlaceProject(content.Placement{Wall: 1, X: 3, Scale: 0}, 4, room)
	if want := rl.NewVector3(-10+frameOffset, 0, -3); !near(p.Center, want) {
		t.Fatalf("wall 1 center: got %+v, want %+v", p.Center, want)
	}
	if p.Scale != 1 {
		t.Fatalf("zero scale should default to 1, got %v", p.Scale)
	}

	wrapped := PlaceProject(content.Placement{Wall: 5, Scale: 1}, 4, room)
	if !near(wrapped.Center, PlaceProject(content.Placement{Wall: 1, Scale: 1}, 4, room).Center) {
		t.Fatalf("wall 5 of 4 should hang on wall 1")
	}
}

func TestCornersSpanThumbnail(t *testing.T) {
	p := PlaceProject(content.Placement{Wall: 0, Scale: 1}, 4, pose.DefaultRoom())
	c := p.Corners(1)
	if w := c[3].X - c[0].X; math.Abs(float64(w-ThumbWidth)) > 1e-4 {
		t.Fatalf("width %v", w)
	}
	if h := c[0].Y - c[1].Y; math.Abs(float64(h-ThumbHeight)) > 1e-4 {
		t.Fatalf("height %v", h)
	}
	grown := p.Corners(HoverScale)
	if grown[3].X-grown[0].X <= c[3].X-c[0].X {
		t.Fatalf("hover corners should be wider")
	}
	if z := p.ThumbCenter().Z; z <= p.Center.Z+FrameDepth/2 {
		t.Fatalf("thumbnail at z=%v is inside the frame box", z)
	}
}

func TestTitlePixels(t *testing.T) {
	// at fov 90 the screen spans 2·dist world units vertically
	if got := TitlePixels(1, 5, 90, 1000); math.Abs(float64(got-100)) > 1e-3 {
		t.Fatalf("got %v, want 100", got)
	}
	if got := TitlePixels(1, 0, 90, 1000); got != 0 {
		t.Fatalf("zero distance: got %v", got)
	}
}
