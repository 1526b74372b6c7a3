package content

import (
	"fmt"
	"path"
	"strings"

	"gallery3d/internal/archive"
)

// ImportResult lists the files written by ImportPack.
type ImportResult struct {
	Content []string
	Public  []string
}

// ImportPack extracts a zipped content pack. Markdown under walls/ and projects/ goes to root;
// images/, textures/ and fonts/ go to publicDir. Other entries are ignored.
func ImportPack(zipPath, root, publicDir string, overwrite bool) (ImportResult, error) {
	var res ImportResult
	var err error
	res.Content, err = archive.Unzip(zipPath, root, contentEntry, overwrite)
	if err != nil {
		return res, fmt.Errorf("content: import %s: %w", zipPath, err)
	}
	res.Public, err = archive.Unzip(zipPath, publicDir, publicEntry, overwrite)
	if err != nil {
		return res, fmt.Errorf("content: import %s: %w", zipPath, err)
	}
	return res, nil
}

func contentEntry(name string) bool {
	dir, file := path.Split(path.Clean(name))
	if strings.HasPrefix(file, ".") || path.Ext(file) != ".md" {
		return false
	}
	return dir == WallsDir+"/" || dir == ProjectsDir+"/"
}

func publicEntry(name string) bool {
	clean := path.Clean(name)
	if strings.HasPrefix(path.Base(clean), ".") {
		return false
	}
	for _, dir := range []string{"images/", "textures/", "fonts/"} {
		if strings.HasPrefix(clean, dir) {
			return true
		}
	}
	return false
}
