package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gallery3d/internal/api"
	"gallery3d/internal/commands"
	"gallery3d/internal/content"
	"gallery3d/internal/fonts"
	"gallery3d/internal/galleryconfig"
	"gallery3d/internal/placeholder"
	"gallery3d/internal/search"
	"gallery3d/internal/viewer"
)

const shutdownTimeout = 5 * time.Second

func (a *app) registerView(r *commands.Registry) {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fullscreen := fs.Bool("fullscreen", a.cfg.Viewer.Fullscreen, "open fullscreen on the primary monitor")
	r.Register("view", "open the 3D gallery window", fs, func(args []string) error {
		cfg := a.cfg
		cfg.Viewer.Fullscreen = *fullscreen
		v, err := viewer.New(cfg, a.store(), a.log)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return v.Run(ctx)
	})
}

func (a *app) registerServe(r *commands.Registry) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	r.Register("serve", "serve the gallery JSON API and public images", fs, func(args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := a.store()
		ix, err := a.openIndex(ctx, store)
		if err != nil {
			return err
		}
		defer ix.Close()

		gin.SetMode(a.cfg.Server.Mode)
		srv := &http.Server{
			Addr: *addr,
			Handler: api.NewRouter(api.Options{
				Store:     store,
				Index:     ix,
				PublicDir: a.cfg.Content.PublicDir,
				Log:       a.log,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() {
			a.log.Logf("serve: listening on %s", *addr)
			errc <- srv.ListenAndServe()
		}()
		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}
		a.log.Log("serve: shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
}

// openIndex opens the configured search database and fills it from store.
func (a *app) openIndex(ctx context.Context, store *content.Store) (*search.Index, error) {
	ix, err := search.Open(search.Config{DBPath: a.cfg.Server.SearchDB})
	if err != nil {
		return nil, err
	}
	n, err := ix.RebuildFrom(ctx, store)
	if err != nil {
		ix.Close()
		return nil, err
	}
	a.log.Logf("search: indexed %d projects", n)
	return ix, nil
}

func (a *app) registerSearch(r *commands.Registry) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	limit := fs.Int("limit", search.DefaultLimit, "maximum number of results")
	r.Register("search", "full-text search over project pages", fs, func(args []string) error {
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("%w: search needs a query", commands.ErrUsage)
		}
		ctx := context.Background()
		ix, err := a.openIndex(ctx, a.store())
		if err != nil {
			return err
		}
		defer ix.Close()
		hits, err := ix.Search(ctx, query, *limit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%-24s wall %d  %s\n    %s\n", h.ID, h.Wall, h.Title, h.Snippet)
		}
		return nil
	})
}

func (a *app) registerPlaceholders(r *commands.Registry) {
	fs := flag.NewFlagSet("placeholders", flag.ContinueOnError)
	def := placeholder.DefaultOptions(a.cfg.Content.Root, a.cfg.Content.PublicDir)
	projects := fs.Int("projects", def.Projects, "number of sample projects")
	walls := fs.Int("walls", a.cfg.Content.WallCount, "number of sample walls")
	r.Register("placeholders", "write sample content and placeholder images", fs, func(args []string) error {
		o := def
		o.Projects, o.Walls = *projects, *walls
		created, err := placeholder.Generate(o, a.log)
		if err != nil {
			return err
		}
		fmt.Printf("created %d files\n", len(created))
		return nil
	})
}

func (a *app) registerImport(r *commands.Registry) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "replace files that already exist")
	r.Register("import", "unpack a zipped content pack: import <pack.zip>", fs, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: import takes one zip file", commands.ErrUsage)
		}
		res, err := content.ImportPack(args[0], a.cfg.Content.Root, a.cfg.Content.PublicDir, *overwrite)
		if err != nil {
			return err
		}
		a.log.Logf("import: %s: %d content files, %d public files", args[0], len(res.Content), len(res.Public))
		fmt.Printf("imported %d content files and %d public files\n", len(res.Content), len(res.Public))
		return nil
	})
}

func (a *app) registerInitConfig(r *commands.Registry) {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	r.Register("init-config", "write the default configuration file", fs, func(args []string) error {
		if _, err := os.Stat(a.configPath); err == nil && !*force {
			return fmt.Errorf("%s already exists; use -force to replace it", a.configPath)
		}
		if err := galleryconfig.Save(a.configPath, galleryconfig.Default()); err != nil {
			return err
		}
		fmt.Println("wrote", a.configPath)
		return nil
	})
}

func (a *app) registerFetchFont(r *commands.Registry) {
	fs := flag.NewFlagSet("fetch-font", flag.ContinueOnError)
	dir := fs.String("dir", fonts.BaseDirs(a.cfg.Content.PublicDir)[0], "directory fonts are saved under")
	r.Register("fetch-font", "download a Google Fonts family for the viewer: fetch-font <family>", fs, func(args []string) error {
		family := strings.Join(args, " ")
		if strings.TrimSpace(family) == "" {
			return fmt.Errorf("%w: fetch-font needs a family name", commands.ErrUsage)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		path, err := fonts.NewRemote().Fetch(ctx, family, *dir)
		if err != nil {
			return err
		}
		a.log.Logf("fonts: fetched %s to %s", family, path)
		fmt.Printf("saved %s; set viewer.font = %q to use it\n", path, family)
		return nil
	})
}
