// Package placeholder writes development assets: thumbnails, wall textures and sample content.
package placeholder

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/noise"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"gallery3d/internal/logger"
)

const (
	ThumbWidth  = 600
	ThumbHeight = 400
	TextureSize = 1024
)

// Options configures Generate.
type Options struct {
	ContentRoot string
	PublicDir   string
	Projects    int
	Walls       int
	// Rand picks thumbnail colors; nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultOptions returns ten projects over four walls.
func DefaultOptions(contentRoot, publicDir string) Options {
	return Options{ContentRoot: contentRoot, PublicDir: publicDir, Projects: 10, Walls: 4}
}

// Generate creates the content and public directories and every missing asset. Existing files
// are never overwritten. Returns the paths it created.
func Generate(o Options, log *logger.Logger) ([]string, error) {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Walls < 1 {
		return nil, fmt.Errorf("placeholder: need at least one wall, got %d", o.Walls)
	}
	dirs := []string{
		filepath.Join(o.PublicDir, "images"),
		filepath.Join(o.PublicDir, "textures"),
		filepath.Join(o.ContentRoot, "projects"),
		filepath.Join(o.ContentRoot, "walls"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("placeholder: %w", err)
		}
	}
	g := &generator{o: o, log: log}
	for i := 1; i <= o.Projects; i++ {
		g.write(filepath.Join(o.PublicDir, "images", ThumbName(i)), func(path string) error {
			c := color.RGBA{uint8(o.Rand.IntN(256)), uint8(o.Rand.IntN(256)), uint8(o.Rand.IntN(256)), 255}
			return savePNG(path, Thumbnail(fmt.Sprintf("Project %d", i), c))
		})
		g.write(filepath.Join(o.ContentRoot, "projects", fmt.Sprintf("project-%d.md", i)), func(path string) error {
			return os.WriteFile(path, []byte(sampleProject(i, o.Walls)), 0644)
		})
	}
	for i := 0; i < o.Walls; i++ {
		g.write(filepath.Join(o.PublicDir, "textures", TextureName(i)), func(path string) error {
			return savePNG(path, WallTexture(i))
		})
		g.write(filepath.Join(o.ContentRoot, "walls", fmt.Sprintf("wall-%d.md", i)), func(path string) error {
			return os.WriteFile(path, []byte(sampleWall(i)), 0644)
		})
	}
	return g.created, g.err
}

// ThumbName is the public/images file name of project i's thumbnail.
func ThumbName(i int) string { return fmt.Sprintf("project-%d-thumb.png", i) }

// TextureName is the public/textures file name of wall i's texture.
func TextureName(i int) string { return fmt.Sprintf("wall-texture-%d.png", i) }

type generator struct {
	o       Options
	log     *logger.Logger
	created []string
	err     error
}

// write calls create for path unless the file exists or an earlier write failed.
func (g *generator) write(path string, create func(string) error) {
	if g.err != nil {
		return
	}
	if _, err := os.Stat(path); err == nil {
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		g.err = fmt.Errorf("placeholder: %w", err)
		return
	}
	if err := create(path); err != nil {
		g.err = fmt.Errorf("placeholder: %s: %w", path, err)
		return
	}
	g.log.Logf("placeholder: created %s", path)
	g.created = append(g.created, path)
}

// Thumbnail draws a 600x400 card filled with bg and label centered in white.
func Thumbnail(label string, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	drawTextCentered(img, ThumbWidth/2, ThumbHeight/2, 48, label, color.White)
	return img
}

// WallTexture draws the 1024x1024 grey texture for wall i with light grain.
func WallTexture(i int) *image.RGBA {
	v := uint8(min(i*20+100, 255))
	base := image.NewRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	draw.Draw(base, base.Bounds(), image.NewUniform(color.RGBA{v, v, v, 255}), image.Point{}, draw.Src)
	grain := noise.Generate(TextureSize, TextureSize, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
	img := blend.Opacity(base, grain, 0.06)
	drawTextCentered(img, TextureSize/2, TextureSize/2, 72, fmt.Sprintf("Wall %d Texture", i), color.RGBA{0x44, 0x44, 0x44, 255})
	return img
}

func savePNG(path string, img image.Image) error {
	return imgio.Save(path, img, imgio.PNGEncoder())
}

// drawTextCentered draws text in Go Regular with its center near (x, y).
func drawTextCentered(img *image.RGBA, x, y int, size float64, text string, c color.Color) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return
	}
	defer face.Close()
	width := font.MeasureString(face, text).Ceil()
	// cap height is roughly 0.7 of the ascent
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x-width/2, y+ascent*35/100),
	}
	d.DrawString(text)
}

func sampleWall(i int) string {
	return fmt.Sprintf(`---
name: Wall %d
color: "#ffffff"
texture: /textures/%s
projects: []
---
Placeholder wall %d.
`, i, TextureName(i), i)
}

// sampleProject spreads projects round-robin over the walls, three slots per wall.
func sampleProject(i, walls int) string {
	wall := (i - 1) % walls
	slot := (i - 1) / walls
	x := float64(slot%3-1) * 3
	return fmt.Sprintf(`---
title: Project %d
description: Placeholder project %d.
thumbnail: /images/%s
wall: %d
positionX: %g
positionY: 0
scale: 1
---
## Project %d

Replace this file with a real write-up. Markdown, raw HTML and fenced code are supported:

`+"```go"+`
fmt.Println("project %d")
`+"```"+`
`, i, i, ThumbName(i), wall, x, i, i)
}
