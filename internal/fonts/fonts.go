package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions raylib can load.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns the directories searched for fonts: the public fonts folder served with the
// gallery, then assets/fonts relative to the working directory.
func BaseDirs(publicDir string) []string {
	dirs := []string{"assets/fonts"}
	if publicDir != "" {
		dirs = append([]string{filepath.Join(publicDir, "fonts")}, dirs...)
	}
	return dirs
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// SearchCandidates returns search terms to try in order: the input, its first path segment,
// the name before the first hyphen, and the name without extension.
// "Space-Mono.ttf" -> ["Space-Mono.ttf", "Space", "Space-Mono"].
func SearchCandidates(pathOrName string) []string {
	seen := map[string]bool{}
	var candidates []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	add(pathOrName)
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	if isFont(pathOrName) {
		add(strings.TrimSuffix(pathOrName, filepath.Ext(pathOrName)))
	}
	return candidates
}

// Find returns the first font under dirs whose relative path contains search (fuzzy). When
// several match, one containing "Regular" wins.
func Find(search string, dirs []string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// Resolve returns a loadable font file for nameOrPath: the path itself when it is an existing
// font file, otherwise the first hit of Find over SearchCandidates.
func Resolve(nameOrPath string, dirs []string) (string, error) {
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() && isFont(nameOrPath) {
		return nameOrPath, nil
	}
	for _, c := range SearchCandidates(nameOrPath) {
		if p, err := Find(c, dirs); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}
