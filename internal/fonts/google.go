package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	googleAPIBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	googleRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
	maxFontSize     = 16 << 20
)

// Remote looks up font files in the google/fonts repository. Only files under RawPrefix are
// ever downloaded.
type Remote struct {
	APIBase   string
	RawPrefix string
	Client    *http.Client
}

// NewRemote returns a Remote for Google Fonts.
func NewRemote() *Remote {
	return &Remote{
		APIBase:   googleAPIBase,
		RawPrefix: googleRawPrefix,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Folders converts a display name to the folder names used in google/fonts ofl.
// e.g. "Inter" -> "inter", "Open Sans" -> "opensans", "open-sans".
func Folders(family string) []string {
	family = strings.TrimSpace(family)
	if family == "" {
		return nil
	}
	lower := strings.ToLower(family)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// DownloadURL returns the raw URL of a font file in folder, preferring one that is not italic.
func (r *Remote) DownloadURL(ctx context.Context, folder string) (string, error) {
	u := r.APIBase + "/" + url.PathEscape(folder)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fonts: %q not found on Google Fonts", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	var preferred, fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" || !isFont(f.Name) {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, r.RawPrefix) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		preferred = f.DownloadURL
		break
	}
	if preferred != "" {
		return preferred, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("fonts: no .ttf/.otf file for %q on Google Fonts", folder)
}

// Fetch downloads family into dir/<Family>/<file> and returns the written path. A file that is
// already there is not fetched again.
func (r *Remote) Fetch(ctx context.Context, family, dir string) (string, error) {
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var (
		src     string
		lastErr error
	)
	for _, folder := range folders {
		u, err := r.DownloadURL(ctx, folder)
		if err == nil {
			src = u
			break
		}
		lastErr = err
	}
	if src == "" {
		return "", lastErr
	}

	name := path.Base(src)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	dest := filepath.Join(dir, strings.ReplaceAll(strings.TrimSpace(family), " ", ""), filepath.Base(name))
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: HTTP %d for %s", resp.StatusCode, src)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*")
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxFontSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxFontSize {
		err = fmt.Errorf("larger than %d bytes", maxFontSize)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dest)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("fonts: %w", err)
	}
	return dest, nil
}
