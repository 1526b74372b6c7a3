package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gallery3d/internal/logger"
)

// Directory names under the content root.
const (
	WallsDir    = "walls"
	ProjectsDir = "projects"
)

var (
	// ErrNotFound is returned for a project or wall file that does not exist.
	ErrNotFound = errors.New("content: not found")
	// ErrInvalidID is returned for project ids that are not plain file names.
	ErrInvalidID = errors.New("content: invalid project id")
	// ErrIncomplete is returned for a file missing a required front-matter field.
	ErrIncomplete = errors.New("content: missing required fields")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidID reports whether id can name a project file.
func ValidID(id string) bool {
	return idPattern.MatchString(id) && !strings.Contains(id, "..")
}

// entry is a parsed file remembered until the file changes on disk.
type entry struct {
	modTime time.Time
	size    int64
	wall    Wall
	project Project
	body    []byte
	html    string
	hasHTML bool
}

// Store reads walls and projects from markdown files with YAML front-matter:
//
//	<root>/walls/wall-<i>.md      name, color, texture, projects
//	<root>/projects/<id>.md       title, description, thumbnail, wall, positionX, positionY, scale
//
// Parsed files are cached by modification time. Safe for concurrent use.
type Store struct {
	root      string
	wallCount int
	renderer  *Renderer
	log       *logger.Logger

	mu    sync.Mutex
	cache map[string]*entry
}

// NewStore returns a Store over root with wallCount walls. A nil renderer uses the default style.
func NewStore(root string, wallCount int, renderer *Renderer, log *logger.Logger) *Store {
	if renderer == nil {
		renderer = NewRenderer(DefaultHighlightStyle)
	}
	if wallCount < 1 {
		wallCount = 1
	}
	return &Store{
		root:      root,
		wallCount: wallCount,
		renderer:  renderer,
		log:       log,
		cache:     make(map[string]*entry),
	}
}

// Root returns the content directory.
func (s *Store) Root() string {
	return s.root
}

// WallCount returns the number of walls in the gallery.
func (s *Store) WallCount() int {
	return s.wallCount
}

// Wall loads wall id. The name field is required; color defaults to DefaultWallColor.
func (s *Store) Wall(id int) (Wall, error) {
	path := filepath.Join(s.root, WallsDir, fmt.Sprintf("wall-%d.md", id))
	e, err := s.load(path, func(e *entry, doc []byte) error {
		var meta wallMeta
		if _, err := ParseFrontMatter(doc, &meta); err != nil {
			return err
		}
		if meta.Name == "" {
			return fmt.Errorf("%w: wall %d has no name", ErrIncomplete, id)
		}
		e.wall = Wall{ID: id, Name: meta.Name, Color: meta.Color, Texture: meta.Texture, Projects: meta.Projects}
		if e.wall.Color == "" {
			e.wall.Color = DefaultWallColor
		}
		if e.wall.Projects == nil {
			e.wall.Projects = []string{}
		}
		return nil
	})
	if err != nil {
		return Wall{}, err
	}
	var out Wall
	if err := copier.CopyWithOption(&out, &e.wall, copier.Option{DeepCopy: true}); err != nil {
		return Wall{}, fmt.Errorf("content: copy wall %d: %w", id, err)
	}
	return out, nil
}

// Gallery assembles the scene. A wall that cannot be loaded is logged and replaced by
// DefaultWall. The only error is a content root that is not a readable directory.
func (s *Store) Gallery() (Scene, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return Scene{}, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return Scene{}, fmt.Errorf("content: %s is not a directory", s.root)
	}
	walls := make([]Wall, 0, s.wallCount)
	for i := 0; i < s.wallCount; i++ {
		w, err := s.Wall(i)
		if err != nil {
			s.log.Logf("content: wall %d: %v", i, err)
			w = DefaultWall(i)
		}
		walls = append(walls, w)
	}
	return Scene{Name: "Main Gallery", Walls: walls, InitialPosition: Vec3{Y: DefaultEyeHeight}}, nil
}

// Projects lists every valid project without its content, ordered by wall, then X on the wall,
// then title. Files missing required fields are logged and skipped.
func (s *Store) Projects() ([]Project, error) {
	ids, err := s.projectIDs()
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(ids))
	for _, id := range ids {
		e, err := s.loadProject(id)
		if err != nil {
			s.log.Logf("content: project %s: %v", id, err)
			continue
		}
		p := e.project
		p.Content = ""
		out = append(out, p)
	}
	SortProjects(out)
	return out, nil
}

// Project returns the full record for id with its markdown rendered to HTML.
func (s *Store) Project(id string) (Project, error) {
	if !ValidID(id) {
		return Project{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	e, err := s.loadProject(id)
	if err != nil {
		return Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !e.hasHTML {
		html, err := s.renderer.HTML(e.body)
		if err != nil {
			s.log.Logf("content: project %s: %v", id, err)
			html = string(e.body)
		}
		e.html, e.hasHTML = html, true
	}
	p := e.project
	p.Content = e.html
	return p, nil
}

// FullProjects returns every valid project with content, in list order.
func (s *Store) FullProjects() ([]Project, error) {
	list, err := s.Projects()
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(list))
	for _, p := range list {
		full, err := s.Project(p.ID)
		if err != nil {
			continue
		}
		out = append(out, full)
	}
	return out, nil
}

// ProjectsByWall groups the project list by wall index.
func (s *Store) ProjectsByWall() (map[int][]Project, error) {
	list, err := s.Projects()
	if err != nil {
		return nil, err
	}
	out := make(map[int][]Project)
	for _, p := range list {
		out[p.Position.Wall] = append(out[p.Position.Wall], p)
	}
	return out, nil
}

// SortProjects orders projects by wall, then X, then title in English collation order.
func SortProjects(list []Project) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Position, list[j].Position
		if a.Wall != b.Wall {
			return a.Wall < b.Wall
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return c.CompareString(list[i].Title, list[j].Title) < 0
	})
}

func (s *Store) projectIDs() ([]string, error) {
	dir := filepath.Join(s.root, ProjectsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Logf("content: %s does not exist, no projects", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("content: %w", err)
	}
	var ids []string
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		if ValidID(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Store) loadProject(id string) (*entry, error) {
	path := filepath.Join(s.root, ProjectsDir, id+".md")
	return s.load(path, func(e *entry, doc []byte) error {
		var meta projectMeta
		body, err := ParseFrontMatter(doc, &meta)
		if err != nil {
			return err
		}
		if meta.Title == "" || meta.Description == "" || meta.Wall == nil {
			return fmt.Errorf("%w: project %s needs title, description and wall", ErrIncomplete, id)
		}
		scale := meta.Scale
		if scale == 0 {
			scale = 1
		}
		e.project = Project{
			ID:          id,
			Title:       meta.Title,
			Description: meta.Description,
			Thumbnail:   meta.Thumbnail,
			Position:    Placement{Wall: *meta.Wall, X: meta.PositionX, Y: meta.PositionY, Scale: scale},
		}
		e.body = body
		return nil
	})
}

// load returns the cached entry for path, re-parsing the file when its size or modification
// time changed.
func (s *Store) load(path string, parse func(*entry, []byte) error) (*entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("content: %w", err)
	}
	s.mu.Lock()
	e, ok := s.cache[path]
	s.mu.Unlock()
	if ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e, nil
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	e = &entry{modTime: info.ModTime(), size: info.Size()}
	if err := parse(e, doc); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[path] = e
	s.mu.Unlock()
	return e, nil
}
