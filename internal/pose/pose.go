package pose

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrOutOfRange is returned for a wall index outside [0, n) or a wall count below 1.
var ErrOutOfRange = errors.New("pose: wall index out of range")

// Room is the viewing geometry: cameras stand on a circle of radius HalfExtent at EyeHeight.
type Room struct {
	HalfExtent float64
	EyeHeight  float64
}

// DefaultRoom is the four-wall room the gallery was designed around.
func DefaultRoom() Room {
	return Room{HalfExtent: 5, EyeHeight: 1.6}
}

// Pose is a camera position and its rotation about the vertical (Y) axis.
// A facing angle of 0 looks down -Z; positive angles turn left.
type Pose struct {
	Position    mgl64.Vec3
	FacingAngle float64
}

// Forward returns the unit direction the pose looks along (horizontal).
func (p Pose) Forward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(p.FacingAngle), 0, -math.Cos(p.FacingAngle)}
}

// Target returns a point dist units in front of the pose, for look-at style cameras.
func (p Pose) Target(dist float64) mgl64.Vec3 {
	return p.Position.Add(p.Forward().Mul(dist))
}

// Wall returns the camera pose for wall index out of n walls. Poses are spread evenly around the
// room at 2π/n spacing and all face the center, so Forward is the direction from the pose to the
// center. For n = 4 they stand at +Z, +X, -Z and -X.
func Wall(index, n int, room Room) (Pose, error) {
	if n < 1 || index < 0 || index >= n {
		return Pose{}, fmt.Errorf("%w: wall %d of %d", ErrOutOfRange, index, n)
	}
	return at(float64(index)*2*math.Pi/float64(n), room), nil
}

func at(theta float64, room Room) Pose {
	return Pose{
		Position:    mgl64.Vec3{room.HalfExtent * math.Sin(theta), room.EyeHeight, room.HalfExtent * math.Cos(theta)},
		FacingAngle: normalizeAngle(theta),
	}
}

// Camera places the camera for a continuous navigation coordinate: between the pose of wall
// floor(position) and the next wall, by the fractional part. Position moves along the chord
// between the two poses; the facing angle turns along the shorter arc.
func Camera(position float64, n int, room Room) Pose {
	if n < 1 {
		n = 1
	}
	fl := math.Floor(position)
	t := position - fl
	cur := int(math.Mod(math.Mod(fl, float64(n))+float64(n), float64(n)))
	next := (cur + 1) % n
	step := 2 * math.Pi / float64(n)
	a := at(float64(cur)*step, room)
	b := at(float64(next)*step, room)

	pos := a.Position.Add(b.Position.Sub(a.Position).Mul(t))
	turn := normalizeAngle(b.FacingAngle - a.FacingAngle)
	return Pose{Position: pos, FacingAngle: normalizeAngle(a.FacingAngle + turn*t)}
}

// normalizeAngle maps a into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
