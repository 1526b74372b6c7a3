package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gallery3d/internal/galleryconfig"
)

// Prefix starts every variable read by Overlay.
const Prefix = "GALLERY_"

// Load reads the given file (e.g. ".env") into the process environment. Variables already set
// are not overridden. The file may be missing; that is not an error.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env: %w", err)
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Overlay applies GALLERY_* variables from lookup on top of c:
//
//	GALLERY_CONTENT_ROOT, GALLERY_PUBLIC_DIR, GALLERY_WALL_COUNT, GALLERY_BOUNDARY,
//	GALLERY_VARIANT, GALLERY_ADDR, GALLERY_SEARCH_DB, GALLERY_FULLSCREEN, GALLERY_LOG
//
// The result is validated; on error c is returned unchanged.
func Overlay(c galleryconfig.Config, lookup LookupFunc) (galleryconfig.Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := c
	str := func(name string, dst *string) {
		if v, ok := lookup(Prefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("CONTENT_ROOT", &out.Content.Root)
	str("PUBLIC_DIR", &out.Content.PublicDir)
	str("BOUNDARY", &out.Navigation.Boundary)
	str("VARIANT", &out.Navigation.Variant)
	str("ADDR", &out.Server.Addr)
	str("SEARCH_DB", &out.Server.SearchDB)
	str("LOG", &out.Log.Path)
	if v, ok := lookup(Prefix + "WALL_COUNT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("env: %sWALL_COUNT: %w", Prefix, err)
		}
		out.Content.WallCount = n
	}
	if v, ok := lookup(Prefix + "FULLSCREEN"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("env: %sFULLSCREEN: %w", Prefix, err)
		}
		out.Viewer.Fullscreen = b
	}
	if err := out.Validate(); err != nil {
		return c, fmt.Errorf("env: %w", err)
	}
	return out, nil
}
