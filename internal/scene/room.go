package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/content"
	"gallery3d/internal/pose"
)

// Frame and thumbnail sizes per unit of project scale.
const (
	FrameWidth  = 2.2
	FrameHeight = 1.5
	FrameDepth  = 0.1
	ThumbWidth  = 2.0
	ThumbHeight = 1.3
	HoverScale  = 1.05

	// distance of the frame box center from the wall surface
	frameOffset = 0.1
	// title baseline below the frame center and its height, per unit of scale
	titleDrop = 0.8
	titleSize = 0.2
)

// Basis is the orientation of one wall as seen from its camera pose: Right and Up span the wall
// surface, Normal points back into the room.
type Basis struct {
	Right  rl.Vector3
	Up     rl.Vector3
	Normal rl.Vector3
	Yaw    float32
}

func wallAngle(index, n int) float32 {
	if n < 1 {
		n = 1
	}
	return float32(index) * 2 * math32.Pi / float32(n)
}

// WallBasis returns the orientation of wall index out of n.
func WallBasis(index, n int) Basis {
	theta := wallAngle(index, n)
	sin, cos := math32.Sincos(theta)
	return Basis{
		Right:  rl.NewVector3(cos, 0, -sin),
		Up:     rl.NewVector3(0, 1, 0),
		Normal: rl.NewVector3(sin, 0, cos),
		Yaw:    theta,
	}
}

// WallCenter is the middle of wall index, 2·HalfExtent from the room center along the facing
// direction of that wall's camera pose, at floor-to-ceiling mid height 0.
func WallCenter(index, n int, room pose.Room) rl.Vector3 {
	b := WallBasis(index, n)
	d := float32(2 * room.HalfExtent)
	return rl.NewVector3(-b.Normal.X*d, 0, -b.Normal.Z*d)
}

// WallSize returns the width and height of each wall. Walls of a room with three or more sides
// meet at the corners of a regular polygon; smaller rooms use a square's side.
func WallSize(n int, room pose.Room) (width, height float32) {
	d := float32(2 * room.HalfExtent)
	height = d
	if n < 3 {
		return 2 * d, height
	}
	return 2 * d * math32.Tan(math32.Pi/float32(n)), height
}

// Placement is where a project frame sits in world space.
type Placement struct {
	Center rl.Vector3 // frame box center
	Basis  Basis
	Scale  float32
}

// PlaceProject converts a wall-local placement into world space. Projects on walls outside
// [0, n) are hung on wall index mod n.
func PlaceProject(p content.Placement, n int, room pose.Room) Placement {
	if n < 1 {
		n = 1
	}
	wall := ((p.Wall % n) + n) % n
	b := WallBasis(wall, n)
	c := WallCenter(wall, n, room)
	scale := float32(p.Scale)
	if scale <= 0 {
		scale = 1
	}
	x, y := float32(p.X), float32(p.Y)
	center := rl.Vector3Add(c, rl.Vector3Scale(b.Right, x))
	center = rl.Vector3Add(center, rl.Vector3Scale(b.Up, y))
	center = rl.Vector3Add(center, rl.Vector3Scale(b.Normal, frameOffset))
	return Placement{Center: center, Basis: b, Scale: scale}
}

// ThumbCenter is the middle of the thumbnail, just in front of the frame box.
func (p Placement) ThumbCenter() rl.Vector3 {
	return rl.Vector3Add(p.Center, rl.Vector3Scale(p.Basis.Normal, FrameDepth/2+0.005))
}

// TitleAnchor is the world point the title is centered on.
func (p Placement) TitleAnchor() rl.Vector3 {
	a := rl.Vector3Add(p.Center, rl.Vector3Scale(p.Basis.Up, -titleDrop*p.Scale))
	return rl.Vector3Add(a, rl.Vector3Scale(p.Basis.Normal, FrameDepth))
}

// Corners returns the thumbnail corners (top-left, bottom-left, bottom-right, top-right) with the
// given extra scale applied.
func (p Placement) Corners(grow float32) [4]rl.Vector3 {
	hw := ThumbWidth * p.Scale * grow / 2
	hh := ThumbHeight * p.Scale * grow / 2
	c := p.ThumbCenter()
	r := rl.Vector3Scale(p.Basis.Right, hw)
	u := rl.Vector3Scale(p.Basis.Up, hh)
	return [4]rl.Vector3{
		rl.Vector3Add(rl.Vector3Subtract(c, r), u),
		rl.Vector3Subtract(rl.Vector3Subtract(c, r), u),
		rl.Vector3Subtract(rl.Vector3Add(c, r), u),
		rl.Vector3Add(rl.Vector3Add(c, r), u),
	}
}

// TitlePixels is the on-screen height of a title of world height worldSize seen at dist with a
// vertical field of view fovy (degrees) on a screen screenH pixels tall.
func TitlePixels(worldSize, dist, fovy, screenH float32) float32 {
	if dist <= 0 {
		return 0
	}
	half := math32.Tan(fovy * math32.Pi / 360)
	return worldSize * screenH / (2 * dist * half)
}

// vec converts a pose position to raylib's float32 vector.
func vec(v [3]float64) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
