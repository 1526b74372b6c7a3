// Package viewer is the native gallery host. It owns the navigation position and session, feeds
// window input through the selected adapter, ticks the engine each frame and renders the room
// and HUD from the result.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"gallery3d/internal/assets"
	"gallery3d/internal/content"
	"gallery3d/internal/debug"
	"gallery3d/internal/fonts"
	"gallery3d/internal/galleryconfig"
	"gallery3d/internal/graphics"
	"gallery3d/internal/logger"
	"gallery3d/internal/navigation"
	"gallery3d/internal/pose"
	"gallery3d/internal/scene"
	"gallery3d/internal/ui"
	"gallery3d/internal/ui/css"
)

const (
	windowTitle = "Gallery"
	// resolveWorkers bounds concurrent texture downloads.
	resolveWorkers = 4
)

var background = color.RGBA{0x11, 0x11, 0x11, 0xff}

// Viewer is the gallery window and its state.
type Viewer struct {
	cfg   galleryconfig.Config
	store *content.Store
	log   *logger.Logger

	engine    *navigation.Engine
	adapter   navigation.Adapter
	device    navigation.Device
	threshold float64
	lerp      float64
	pos       navigation.Position
	session   navigation.Session
	room      pose.Room

	scene    content.Scene
	gallery  *scene.Gallery
	hud      *ui.HUD
	debug    *debug.Debug
	resolver *assets.Resolver

	input pointer
}

// New builds a viewer over store. The window is not opened until Run.
func New(cfg galleryconfig.Config, store *content.Store, log *logger.Logger) (*Viewer, error) {
	navCfg, err := cfg.NavigationConfig()
	if err != nil {
		return nil, err
	}
	engine, pos, err := navigation.Initialize(navCfg, 0)
	if err != nil {
		return nil, err
	}
	room := cfg.PoseRoom()
	v := &Viewer{
		cfg:       cfg,
		store:     store,
		log:       log,
		engine:    engine,
		device:    navigation.Device{Wheel: true},
		threshold: cfg.Navigation.SwipeThresholdPx,
		lerp:      cfg.Navigation.Lerp,
		pos:       pos,
		session:   navigation.NewSession(),
		room:      room,
		gallery:   scene.New(navCfg.WallCount, room, log),
		hud:       ui.NewHUD(ui.New(), cfg.Viewer.TargetFPS),
		debug:     debug.New(log),
		resolver:  assets.NewResolver(cfg.Content.PublicDir, cfg.Viewer.CacheDir, log),
	}
	v.adapter = navigation.SelectAdapter(v.device, v.threshold)
	v.debug.ShowFPS = cfg.Viewer.ShowFPS
	v.debug.ShowMemAlloc = cfg.Viewer.ShowMemAlloc
	v.debug.ShowNav = cfg.Viewer.ShowNav
	if cfg.Viewer.Stylesheet != "" {
		if err := v.hud.Engine.LoadCSS(cfg.Viewer.Stylesheet); err != nil {
			log.Logf("viewer: stylesheet: %v; using built-in style", err)
		}
	}
	if err := v.gallery.SetSkybox(cfg.Viewer.Skybox); err != nil {
		log.Logf("viewer: %v", err)
	}
	return v, nil
}

// Position returns the navigation snapshot.
func (v *Viewer) Position() navigation.Position {
	return v.pos
}

// Session returns the view state.
func (v *Viewer) Session() navigation.Session {
	return v.session
}

// Run loads the gallery and opens the window until it is closed.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.Load(ctx); err != nil {
		return err
	}
	graphics.Run(graphics.Options{
		Title:      windowTitle,
		Width:      v.cfg.Viewer.Width,
		Height:     v.cfg.Viewer.Height,
		Fullscreen: v.cfg.Viewer.Fullscreen,
		TargetFPS:  v.cfg.Viewer.TargetFPS,
		Background: background,
		OnInit:     v.initWindow,
		OnClose:    v.closeWindow,
	}, v.update, v.draw)
	v.log.Log("viewer: window closed")
	return nil
}

// Load reads the scene and projects from the store and resolves every wall texture and
// thumbnail to a local image. A store that cannot be read shows the fallback scene.
func (v *Viewer) Load(ctx context.Context) error {
	n := v.engine.WallCount()
	sc, err := v.store.Gallery()
	if err != nil {
		v.log.Logf("viewer: gallery: %v", err)
		sc = content.FallbackScene(n)
	}
	projects, err := v.store.Projects()
	if err != nil {
		v.log.Logf("viewer: projects: %v", err)
	}
	v.scene = sc

	walls := make([]scene.Wall, len(sc.Walls))
	frames := make([]scene.Frame, len(projects))
	var wg sync.WaitGroup
	sem := make(chan struct{}, resolveWorkers)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn()
		}()
	}
	for i, w := range sc.Walls {
		walls[i] = scene.Wall{Index: w.ID, Name: w.Name, Color: wallColor(w.Color)}
		if w.Texture == "" {
			continue
		}
		run(func() {
			path, err := v.resolver.Resolve(ctx, w.Texture, assets.Texture, w.Name)
			if err != nil {
				// walls with an unusable texture keep their color
				return
			}
			walls[i].TexturePath = path
		})
	}
	for i, p := range projects {
		run(func() {
			path, err := v.resolver.Resolve(ctx, p.Thumbnail, assets.Thumbnail, p.Title)
			if err != nil && path == "" {
				v.log.Logf("viewer: thumbnail for %s: %v", p.ID, err)
			}
			frames[i] = scene.NewFrame(p, n, v.room, path)
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	v.gallery.SetContent(walls, frames)
	v.log.Logf("viewer: %s with %d walls and %d projects", sc.Name, len(walls), len(frames))
	return nil
}

// wallColor parses a wall's CSS color, falling back to white.
func wallColor(s string) color.RGBA {
	if c, ok := css.ParseColor(s); ok {
		return c
	}
	c, _ := css.ParseColor(content.DefaultWallColor)
	return c
}

func (v *Viewer) initWindow() {
	if v.cfg.Viewer.Font == "" {
		return
	}
	path, err := fonts.Resolve(v.cfg.Viewer.Font, fonts.BaseDirs(v.cfg.Content.PublicDir))
	if err != nil {
		v.log.Logf("viewer: font: %v", err)
		return
	}
	if err := v.hud.Engine.LoadFont(path); err != nil {
		v.log.Logf("viewer: %v", err)
		return
	}
	v.gallery.SetFont(v.hud.Engine.Font())
	v.debug.SetFont(v.hud.Engine.Font())
}

func (v *Viewer) closeWindow() {
	v.gallery.Unload()
	v.hud.Engine.Unload()
}

func (v *Viewer) wallNames() []string {
	names := make([]string, len(v.scene.Walls))
	for i, w := range v.scene.Walls {
		names[i] = w.Name
	}
	return names
}

// openProject loads the full project and shows it in the panel.
func (v *Viewer) openProject(id string) {
	p, err := v.store.Project(id)
	if err != nil {
		v.log.Logf("viewer: project %s: %v", id, err)
		return
	}
	v.hud.Panel.Show(ProjectView(p))
	v.session = v.session.OpenModal(id)
}

func (v *Viewer) closeProject() {
	v.hud.Panel.Hide()
	v.session = v.session.CloseModal()
}

// ProjectView converts a project with rendered content into panel text.
func ProjectView(p content.Project) ui.ProjectView {
	return ui.ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Paragraphs:  content.PlainText(p.Content),
	}
}
