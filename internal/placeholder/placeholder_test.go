package placeholder

import (
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"gallery3d/internal/content"
	"gallery3d/internal/logger"
)

func testOptions(t *testing.T) Options {
	dir := t.TempDir()
	return Options{
		ContentRoot: filepath.Join(dir, "content"),
		PublicDir:   filepath.Join(dir, "public"),
		Projects:    3,
		Walls:       2,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	}
}

func TestGenerateCreatesLoadableContent(t *testing.T) {
	o := testOptions(t)
	created, err := Generate(o, logger.New(""))
	if err != nil {
		t.Fatal(err)
	}
	// 3 thumbnails + 3 projects + 2 textures + 2 walls
	if len(created) != 10 {
		t.Fatalf("created %d files: %v", len(created), created)
	}

	f, err := os.Open(filepath.Join(o.PublicDir, "images", ThumbName(1)))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != ThumbWidth || cfg.Height != ThumbHeight {
		t.Fatalf("thumbnail is %dx%d", cfg.Width, cfg.Height)
	}

	store := content.NewStore(o.ContentRoot, o.Walls, nil, nil)
	list, err := store.Projects()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("projects = %+v", list)
	}
	scene, err := store.Gallery()
	if err != nil {
		t.Fatal(err)
	}
	if scene.Walls[1].Texture != "/textures/"+TextureName(1) {
		t.Fatalf("wall texture = %q", scene.Walls[1].Texture)
	}
}

func TestGenerateNeverOverwrites(t *testing.T) {
	o := testOptions(t)
	wall := filepath.Join(o.ContentRoot, "walls", "wall-0.md")
	if err := os.MkdirAll(filepath.Dir(wall), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wall, []byte("---\nname: Mine\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(o, nil); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(wall)
	if string(b) != "---\nname: Mine\n---\n" {
		t.Fatalf("wall overwritten: %q", b)
	}
	again, err := Generate(o, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("second run created %v", again)
	}
}

func TestGenerateRejectsNoWalls(t *testing.T) {
	o := testOptions(t)
	o.Walls = 0
	if _, err := Generate(o, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestThumbnailPixels(t *testing.T) {
	bg := color.RGBA{10, 20, 30, 255}
	img := Thumbnail("Project 1", bg)
	if got := img.RGBAAt(2, 2); got != bg {
		t.Fatalf("corner = %v, want %v", got, bg)
	}
	var lit bool
	for x := 200; x < 400 && !lit; x++ {
		if p := img.RGBAAt(x, ThumbHeight/2); p.R > 200 && p.G > 200 {
			lit = true
		}
	}
	if !lit {
		t.Fatal("label not drawn across the middle row")
	}
}

func TestWallTextureShade(t *testing.T) {
	img := WallTexture(1)
	if b := img.Bounds(); b.Dx() != TextureSize || b.Dy() != TextureSize {
		t.Fatalf("bounds = %v", b)
	}
	p := img.RGBAAt(5, 5)
	if p.R < 100 || p.R > 150 {
		t.Fatalf("corner shade = %v, want near 120", p)
	}
}
