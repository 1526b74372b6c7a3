package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize bounds a single extracted file.
const MaxFileSize = 64 << 20

// ErrTooLarge is returned when an entry exceeds MaxFileSize.
var ErrTooLarge = errors.New("unzip: entry too large")

// Filter decides whether an entry (slash-separated name inside the archive) is extracted.
type Filter func(name string) bool

// Unzip extracts zipPath into destDir, preserving directory structure. Entries that would land
// outside destDir are skipped, as are entries rejected by keep (nil keeps everything).
// When overwrite is false existing files are left alone and not reported.
// Returns the extracted file paths.
func Unzip(zipPath, destDir string, keep Filter, overwrite bool) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		if keep != nil && !keep(f.Name) {
			continue
		}
		dest := filepath.Clean(filepath.Join(destDir, f.Name))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
			continue // escapes destDir
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if f.UncompressedSize64 > MaxFileSize {
			return extracted, fmt.Errorf("%w: %s", ErrTooLarge, f.Name)
		}
		if !overwrite {
			if _, err := os.Stat(dest); err == nil {
				continue
			}
		}
		if err := extract(f, dest); err != nil {
			return extracted, err
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(rc, MaxFileSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxFileSize {
		err = fmt.Errorf("%w: %s", ErrTooLarge, f.Name)
	}
	if err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("unzip: %w", err)
	}
	return nil
}
