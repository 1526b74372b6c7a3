// Package assets turns thumbnail and texture references from content files into PNG files on
// disk that the viewer can upload as textures.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"gallery3d/internal/logger"
	"gallery3d/internal/placeholder"
)

const defaultUserAgent = "gallery3d/1.0 (+texture fetch)"

// MaxSize bounds the longest side of a normalized image.
const MaxSize = 512

// maxDownload bounds a fetched file.
const maxDownload = 32 << 20

// Kind selects the placeholder drawn when a source cannot be used.
type Kind int

const (
	Thumbnail Kind = iota
	Texture
)

// ErrUnsupported is returned for sources that cannot be decoded (for example SVG).
var ErrUnsupported = errors.New("assets: unsupported image")

// Resolver maps content references to cached PNGs. Safe for concurrent use.
type Resolver struct {
	PublicDir string
	CacheDir  string
	Client    *http.Client
	Log       *logger.Logger

	mu    sync.Mutex
	known map[string]string
}

// NewResolver returns a Resolver reading local files from publicDir and writing into cacheDir.
func NewResolver(publicDir, cacheDir string, log *logger.Logger) *Resolver {
	return &Resolver{
		PublicDir: publicDir,
		CacheDir:  cacheDir,
		Client:    &http.Client{Timeout: 60 * time.Second},
		Log:       log,
		known:     make(map[string]string),
	}
}

// Resolve returns a PNG path for src. src is a path under the public directory ("/images/a.png")
// or an http(s) URL. When src is empty, missing, or unusable, a placeholder labelled label is
// written instead and its path returned; the error reports why the source was not used.
func (r *Resolver) Resolve(ctx context.Context, src string, kind Kind, label string) (string, error) {
	key := fmt.Sprintf("%d|%s|%s", kind, src, label)
	r.mu.Lock()
	if p, ok := r.known[key]; ok {
		r.mu.Unlock()
		return p, nil
	}
	r.mu.Unlock()

	path, srcErr := r.normalize(ctx, src)
	if srcErr != nil {
		var err error
		path, err = r.fallback(kind, label)
		if err != nil {
			return "", err
		}
		if src != "" {
			r.Log.Logf("assets: %s: %v; using placeholder", src, srcErr)
		}
	}
	r.mu.Lock()
	r.known[key] = path
	r.mu.Unlock()
	return path, srcErr
}

// cacheName is stable for a given source so cached files survive restarts.
func cacheName(prefix, src string) string {
	return prefix + "-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(src)).String() + ".png"
}

func (r *Resolver) normalize(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("%w: no source", ErrUnsupported)
	}
	out := filepath.Join(r.CacheDir, cacheName("img", src))
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}
	local := ""
	if isURL(src) {
		tmp, err := r.download(ctx, src)
		if err != nil {
			return "", err
		}
		defer os.Remove(tmp)
		local = tmp
	} else {
		var err error
		if local, err = r.localPath(src); err != nil {
			return "", err
		}
	}
	if strings.EqualFold(filepath.Ext(local), ".svg") {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(local))
	}
	img, err := imgio.Open(local)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if err := os.MkdirAll(r.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	if err := imgio.Save(out, Fit(img, MaxSize), imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	return out, nil
}

// Fit scales img down so its longest side is at most limit, keeping the aspect ratio.
// Smaller images are returned unchanged.
func Fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}
	if w >= h {
		w, h = limit, max(1, h*limit/w)
	} else {
		w, h = max(1, w*limit/h), limit
	}
	return transform.Resize(img, w, h, transform.Linear)
}

func (r *Resolver) localPath(src string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(src, "/"))
	p := filepath.Join(r.PublicDir, rel)
	base, err := filepath.Abs(r.PublicDir)
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	if !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("assets: %s is outside the public directory", src)
	}
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	return p, nil
}

func (r *Resolver) fallback(kind Kind, label string) (string, error) {
	out := filepath.Join(r.CacheDir, cacheName("placeholder", fmt.Sprintf("%d|%s", kind, label)))
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}
	if err := os.MkdirAll(r.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	var img image.Image
	if kind == Texture {
		img = placeholder.WallTexture(0)
	} else {
		img = placeholder.Thumbnail(label, color.RGBA{0x33, 0x33, 0x33, 0xff})
	}
	if err := imgio.Save(out, Fit(img, MaxSize), imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	return out, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// download fetches url into a temporary file under CacheDir, named with an extension from the
// Content-Type or the URL.
func (r *Resolver) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		return "", fmt.Errorf("%w: unknown type %q", ErrUnsupported, resp.Header.Get("Content-Type"))
	}
	if err := os.MkdirAll(r.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	out, err := os.CreateTemp(r.CacheDir, "fetch-*"+ext)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, maxDownload+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxDownload {
		err = fmt.Errorf("larger than %d bytes", maxDownload)
	}
	if err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return out.Name(), nil
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "svg"):
		return ".svg"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return ext
	}
	return ""
}
