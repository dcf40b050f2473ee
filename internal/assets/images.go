// Package assets stores uploaded item images on disk. Files are written
// under a configured directory using a name derived from the upload time
// plus the original extension, so concurrent uploads never collide. The
// reserved placeholder asset carries a "-default." marker in its name;
// generated names are purely numeric, so the marker can never appear in
// them incidentally.
package assets

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultMarker = "-default."

// ImageStore saves and releases image files under Dir and serves them at
// web paths rooted at /images/.
type ImageStore struct {
	dir         string
	placeholder string
	now         func() time.Time
}

// NewImageStore creates an ImageStore. placeholder is the web path of the
// reserved default asset.
func NewImageStore(dir, placeholder string) *ImageStore {
	return &ImageStore{dir: dir, placeholder: placeholder, now: time.Now}
}

// Placeholder returns the web path of the default image asset.
func (s *ImageStore) Placeholder() string {
	return s.placeholder
}

// Dir returns the directory image files are stored in.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file to the store and returns its web path. The
// filename is the upload timestamp in nanoseconds plus the original file's
// extension.
func (s *ImageStore) Save(file multipart.File, originalName string) (string, error) {
	name := strconv.FormatInt(s.now().UnixNano(), 10) + strings.ToLower(filepath.Ext(originalName))
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("assets: failed to create image directory: %w", err)
	}
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("assets: failed to create image file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("assets: failed to write image file: %w", err)
	}
	return "/images/" + name, nil
}

// Release deletes the file behind a web path previously returned by Save.
// The placeholder asset (any path carrying the "-default." marker) and
// missing files are left alone.
func (s *ImageStore) Release(webPath string) error {
	if webPath == "" || strings.Contains(webPath, defaultMarker) {
		return nil
	}
	full := filepath.Join(s.dir, path.Base(webPath))
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("assets: failed to remove image file: %w", err)
	}
	return nil
}
