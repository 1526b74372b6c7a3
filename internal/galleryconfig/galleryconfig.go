package galleryconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"gallery3d/internal/navigation"
	"gallery3d/internal/pose"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/gallery.toml"

// Config represents config/gallery.toml. Every key is optional; missing keys keep Default values.
type Config struct {
	Content    ContentConfig    `toml:"content"`
	Navigation NavigationConfig `toml:"navigation"`
	Room       RoomConfig       `toml:"room"`
	Server     ServerConfig     `toml:"server"`
	Viewer     ViewerConfig     `toml:"viewer"`
	Log        LogConfig        `toml:"log"`
}

type ContentConfig struct {
	Root      string `toml:"root"`
	PublicDir string `toml:"public_dir"`
	WallCount int    `toml:"wall_count"`
	// chroma style for fenced code blocks
	HighlightStyle string `toml:"highlight_style"`
}

type NavigationConfig struct {
	Sensitivity float64 `toml:"sensitivity"`
	// wrap or clamp
	Boundary string `toml:"boundary"`
	// free or locked
	Variant   string `toml:"variant"`
	SnapJumps bool   `toml:"snap_jumps"`
	// fraction of the remaining distance covered per frame
	Lerp             float64 `toml:"lerp"`
	SwipeThresholdPx float64 `toml:"swipe_threshold_px"`
}

type RoomConfig struct {
	HalfExtent float64 `toml:"half_extent"`
	EyeHeight  float64 `toml:"eye_height"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// SQLite file for the search index, or ":memory:"
	SearchDB string `toml:"search_db"`
	// gin mode: debug, release or test
	Mode string `toml:"mode"`
}

type ViewerConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Fullscreen   bool   `toml:"fullscreen"`
	TargetFPS    int    `toml:"target_fps"`
	ShowFPS      bool   `toml:"show_fps"`
	ShowMemAlloc bool   `toml:"show_memalloc"`
	ShowNav      bool   `toml:"show_nav"`
	CacheDir     string `toml:"cache_dir"`
	Stylesheet   string `toml:"stylesheet"`
	// TTF/OTF used for HUD text; empty uses the raylib default font
	Font string `toml:"font"`
	// optional cubemap or 2:1 panorama drawn behind the room
	Skybox string `toml:"skybox"`
}

type LogConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	room := pose.DefaultRoom()
	return Config{
		Content: ContentConfig{
			Root:           "content",
			PublicDir:      "public",
			WallCount:      4,
			HighlightStyle: "monokai",
		},
		Navigation: NavigationConfig{
			Sensitivity:      0.01,
			Boundary:         navigation.Wrap.String(),
			Variant:          navigation.Free.String(),
			Lerp:             0.1,
			SwipeThresholdPx: navigation.DefaultSwipeThresholdPx,
		},
		Room: RoomConfig{HalfExtent: room.HalfExtent, EyeHeight: room.EyeHeight},
		Server: ServerConfig{
			Addr:     ":8080",
			SearchDB: ":memory:",
			Mode:     "release",
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			TargetFPS:  60,
			CacheDir:   "cache/textures",
			Stylesheet: "config/gallery.css",
		},
		Log: LogConfig{Path: "logs/gallery.txt"},
	}
}

// Load reads path over Default(). A missing file returns Default() and no error; an unreadable
// or invalid file returns Default() and the error so the caller can report it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: %w", err)
	}
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that the engine and viewer would reject later.
func (c Config) Validate() error {
	if _, err := c.NavigationConfig(); err != nil {
		return err
	}
	if c.Navigation.Lerp <= 0 || c.Navigation.Lerp > 1 {
		return fmt.Errorf("navigation.lerp must be in (0, 1], got %v", c.Navigation.Lerp)
	}
	if c.Navigation.SwipeThresholdPx <= 0 {
		return fmt.Errorf("navigation.swipe_threshold_px must be positive")
	}
	if c.Room.HalfExtent <= 0 {
		return fmt.Errorf("room.half_extent must be positive")
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// NavigationConfig converts the [navigation] and [content] sections into an engine config.
func (c Config) NavigationConfig() (navigation.Config, error) {
	b, err := navigation.ParseBoundary(c.Navigation.Boundary)
	if err != nil {
		return navigation.Config{}, err
	}
	v, err := navigation.ParseVariant(c.Navigation.Variant)
	if err != nil {
		return navigation.Config{}, err
	}
	nc := navigation.Config{
		WallCount:   c.Content.WallCount,
		Sensitivity: c.Navigation.Sensitivity,
		Boundary:    b,
		Variant:     v,
		SnapJumps:   c.Navigation.SnapJumps,
	}
	if _, err := navigation.New(nc); err != nil {
		return navigation.Config{}, err
	}
	return nc, nil
}

// PoseRoom returns the room geometry used for wall poses.
func (c Config) PoseRoom() pose.Room {
	return pose.Room{HalfExtent: c.Room.HalfExtent, EyeHeight: c.Room.EyeHeight}
}
