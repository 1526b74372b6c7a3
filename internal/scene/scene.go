package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery3d/internal/content"
	"gallery3d/internal/logger"
	"gallery3d/internal/pose"
	"gallery3d/internal/primitives"
)

const (
	// FieldOfView is the vertical camera angle in degrees.
	FieldOfView = 75

	glowHovered = 0.4
	glowIdle    = 0.1
)

var (
	frameColor  = color.RGBA{0x22, 0x22, 0x22, 0xff}
	thumbBlank  = color.RGBA{0x80, 0x80, 0x80, 0xff}
	lightSource = rl.NewVector3(10, 10, 5)
)

// Wall is a wall surface ready to draw. TexturePath is a local image file or empty.
type Wall struct {
	Index       int
	Name        string
	Color       color.RGBA
	TexturePath string
}

// Frame is a hung project ready to draw. ThumbPath is a local image file or empty.
type Frame struct {
	ProjectID string
	Title     string
	Wall      int
	Placement Placement
	ThumbPath string
}

// NewFrame places p in a room of n walls.
func NewFrame(p content.Project, n int, room pose.Room, thumbPath string) Frame {
	return Frame{
		ProjectID: p.ID,
		Title:     p.Title,
		Wall:      p.Position.Wall,
		Placement: PlaceProject(p.Position, n, room),
		ThumbPath: thumbPath,
	}
}

// Gallery is the 3D room: walls, hung frames, camera and optional skybox.
// Update picks the hovered frame; Draw renders between BeginMode3D and EndMode3D and then the
// frame titles in screen space.
type Gallery struct {
	Camera rl.Camera3D

	n       int
	room    pose.Room
	walls   []Wall
	frames  []Frame
	hovered int

	prims    *primitives.Registry
	textures map[string]rl.Texture2D
	font     rl.Font
	hasFont  bool
	sky      skybox
	log      *logger.Logger
}

// New returns an empty room of n walls with the camera at wall 0.
func New(n int, room pose.Room, log *logger.Logger) *Gallery {
	if n < 1 {
		n = 1
	}
	g := &Gallery{
		n:        n,
		room:     room,
		hovered:  -1,
		prims:    primitives.NewRegistry(),
		textures: make(map[string]rl.Texture2D),
		log:      log,
	}
	g.Camera.Up = rl.NewVector3(0, 1, 0)
	g.Camera.Fovy = FieldOfView
	g.Camera.Projection = rl.CameraPerspective
	g.SetPose(pose.Camera(0, n, room))
	return g
}

// SetContent replaces the walls and frames.
func (g *Gallery) SetContent(walls []Wall, frames []Frame) {
	g.walls = walls
	g.frames = frames
	g.hovered = -1
}

// SetFont sets the font used for frame titles.
func (g *Gallery) SetFont(f rl.Font) {
	g.font, g.hasFont = f, true
}

// SetSkybox sets an image drawn behind the room. Empty disables it.
func (g *Gallery) SetSkybox(path string) error {
	return g.sky.set(path)
}

// SetPose moves the camera to p.
func (g *Gallery) SetPose(p pose.Pose) {
	g.Camera.Position = vec(p.Position)
	g.Camera.Target = vec(p.Target(1))
}

// Frames returns the hung frames.
func (g *Gallery) Frames() []Frame {
	return g.frames
}

// Hovered returns the frame under the cursor, if any.
func (g *Gallery) Hovered() (Frame, bool) {
	if g.hovered < 0 || g.hovered >= len(g.frames) {
		return Frame{}, false
	}
	return g.frames[g.hovered], true
}

// Update picks the nearest frame under the screen point mouse. Pass enabled false while an
// overlay covers the room.
func (g *Gallery) Update(mouse rl.Vector2, enabled bool) {
	g.hovered = -1
	if !enabled {
		return
	}
	ray := rl.GetScreenToWorldRay(mouse, g.Camera)
	best := math32.Inf(1)
	for i, f := range g.frames {
		c := f.Placement.Corners(1)
		hit := rl.GetRayCollisionQuad(ray, c[0], c[1], c[2], c[3])
		if hit.Hit && hit.Distance < best {
			best = hit.Distance
			g.hovered = i
		}
	}
}

// Draw renders the room. Call after ClearBackground and before 2D overlays.
func (g *Gallery) Draw() {
	rl.BeginMode3D(g.Camera)
	g.sky.draw(g.Camera)

	cam := g.Camera.Position
	light := rl.Vector3Normalize(lightSource)
	g.prims.SetView([3]float32{cam.X, cam.Y, cam.Z}, [3]float32{light.X, light.Y, light.Z})

	g.prims.SetEmissive(0)
	width, height := WallSize(g.n, g.room)
	for _, w := range g.walls {
		if w.Index < 0 || w.Index >= g.n {
			continue
		}
		xf := primitives.Transform{
			Position: WallCenter(w.Index, g.n, g.room),
			Size:     rl.NewVector3(width, 1, height),
			Pitch:    math32.Pi / 2,
			Yaw:      WallBasis(w.Index, g.n).Yaw,
		}
		if tex, ok := g.texture(w.TexturePath); ok {
			g.prims.DrawTextured(primitives.Plane, xf, rl.White, tex)
		} else {
			g.prims.Draw(primitives.Plane, xf, w.Color)
		}
	}

	for i, f := range g.frames {
		g.drawFrame(f, i == g.hovered)
	}
	rl.EndMode3D()

	for i, f := range g.frames {
		g.drawTitle(f, i == g.hovered)
	}
}

func (g *Gallery) drawFrame(f Frame, hovered bool) {
	p := f.Placement
	grow := float32(1)
	g.prims.SetEmissive(glowIdle)
	if hovered {
		grow = HoverScale
		g.prims.SetEmissive(glowHovered)
	}
	s := p.Scale * grow
	g.prims.Draw(primitives.Cube, primitives.Transform{
		Position: p.Center,
		Size:     rl.NewVector3(FrameWidth*s, FrameHeight*s, FrameDepth),
		Yaw:      p.Basis.Yaw,
	}, frameColor)

	xf := primitives.Transform{
		Position: p.ThumbCenter(),
		Size:     rl.NewVector3(ThumbWidth*s, 1, ThumbHeight*s),
		Pitch:    math32.Pi / 2,
		Yaw:      p.Basis.Yaw,
	}
	if tex, ok := g.texture(f.ThumbPath); ok {
		g.prims.DrawTextured(primitives.Plane, xf, rl.White, tex)
	} else {
		g.prims.Draw(primitives.Plane, xf, thumbBlank)
	}
	g.prims.SetEmissive(0)
}

// drawTitle draws the frame title centered under it, sized as if it were written on the wall.
func (g *Gallery) drawTitle(f Frame, hovered bool) {
	anchor := f.Placement.TitleAnchor()
	toAnchor := rl.Vector3Subtract(anchor, g.Camera.Position)
	forward := rl.Vector3Normalize(rl.Vector3Subtract(g.Camera.Target, g.Camera.Position))
	depth := rl.Vector3DotProduct(toAnchor, forward)
	if depth <= 0.1 {
		return
	}
	scale := f.Placement.Scale
	if hovered {
		scale *= HoverScale
	}
	size := TitlePixels(titleSize*scale, depth, g.Camera.Fovy, float32(rl.GetScreenHeight()))
	if size < 6 {
		return
	}
	pt := rl.GetWorldToScreen(anchor, g.Camera)
	font := g.font
	if !g.hasFont {
		font = rl.GetFontDefault()
	}
	spacing := size / 10
	dim := rl.MeasureTextEx(font, f.Title, size, spacing)
	origin := rl.NewVector2(pt.X-dim.X/2, pt.Y-dim.Y/2)
	outline := math32.Max(1, size/20)
	for _, o := range [][2]float32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		rl.DrawTextEx(font, f.Title, rl.NewVector2(origin.X+o[0]*outline, origin.Y+o[1]*outline), size, spacing, rl.Black)
	}
	rl.DrawTextEx(font, f.Title, origin, size, spacing, rl.White)
}

// texture returns the GPU texture for path, loading it on first use. Failed loads are logged once
// and remembered as invalid.
func (g *Gallery) texture(path string) (rl.Texture2D, bool) {
	if path == "" {
		return rl.Texture2D{}, false
	}
	tex, ok := g.textures[path]
	if !ok {
		tex = rl.LoadTexture(path)
		if !rl.IsTextureValid(tex) {
			g.log.Logf("scene: cannot load texture %s", path)
		}
		g.textures[path] = tex
	}
	return tex, rl.IsTextureValid(tex)
}

// Unload releases textures, meshes and shaders. Call before the window closes.
func (g *Gallery) Unload() {
	for path, tex := range g.textures {
		if rl.IsTextureValid(tex) {
			rl.UnloadTexture(tex)
		}
		delete(g.textures, path)
	}
	g.sky.unload()
	g.prims.Unload()
}
