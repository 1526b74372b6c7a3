// Package api serves the gallery content as JSON over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gallery3d/internal/content"
	"gallery3d/internal/logger"
	"gallery3d/internal/search"
)

// MaxSearchLimit caps the limit query parameter of /api/search.
const MaxSearchLimit = 100

// Options wires the router. Index may be nil, in which case /api/search answers 503.
type Options struct {
	Store     *content.Store
	Index     *search.Index
	PublicDir string
	Log       *logger.Logger
}

type server struct {
	Options
}

// NewRouter returns the gin engine serving:
//
//	GET /api/gallery        scene with walls
//	GET /api/projects       project list without content
//	GET /api/project/:id    one project with HTML content
//	GET /api/search?q=&limit=
//	GET /images/*, /textures/*  files from the public directory
func NewRouter(opts Options) *gin.Engine {
	s := &server{Options: opts}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog)

	g := r.Group("/api")
	g.GET("/gallery", s.gallery)
	g.GET("/projects", s.projects)
	g.GET("/project", s.missingID)
	g.GET("/project/:id", s.project)
	g.GET("/search", s.search)

	if opts.PublicDir != "" {
		r.Static("/images", filepath.Join(opts.PublicDir, "images"))
		r.Static("/textures", filepath.Join(opts.PublicDir, "textures"))
	}
	return r
}

func (s *server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.Log.Logf("api: %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
}

func (s *server) gallery(c *gin.Context) {
	scene, err := s.Store.Gallery()
	if err != nil {
		s.Log.Logf("api: gallery: %v", err)
		c.JSON(http.StatusInternalServerError, content.FallbackScene(s.Store.WallCount()))
		return
	}
	c.JSON(http.StatusOK, scene)
}

func (s *server) projects(c *gin.Context) {
	list, err := s.Store.Projects()
	if err != nil {
		s.Log.Logf("api: projects: %v", err)
		c.JSON(http.StatusInternalServerError, []content.Project{})
		return
	}
	if list == nil {
		list = []content.Project{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *server) missingID(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
}

func (s *server) project(c *gin.Context) {
	id := c.Param("id")
	p, err := s.Store.Project(id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, p)
	case errors.Is(err, content.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
	case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrIncomplete):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	default:
		s.Log.Logf("api: project %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (s *server) search(c *gin.Context) {
	if s.Index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not available"})
		return
	}
	limit := search.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, MaxSearchLimit)
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	hits, err := s.Index.Search(ctx, c.Query("q"), limit)
	if err != nil {
		s.Log.Logf("api: search %q: %v", c.Query("q"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	c.JSON(http.StatusOK, hits)
}
