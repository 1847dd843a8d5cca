// Package storage persists uploaded profile pictures on the local
// filesystem and resolves stored paths to URLs served by the media route.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/uuid"
)

// allowedImageExts lists accepted profile picture file extensions.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageStore saves images under a media directory and maps the stored
// relative paths to URLs under the media base URL.
type ImageStore struct {
	dir     string
	baseURL string
}

// NewImageStore creates the media directory if needed and returns a store.
func NewImageStore(dir, baseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "profile_pics"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &ImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the root media directory, for static file serving.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes an uploaded image under profile_pics/ with a generated name
// and returns the path relative to the media directory.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	rel := filepath.Join("profile_pics", uuid.New()+ext)
	dst, err := os.Create(filepath.Join(s.dir, rel))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return filepath.ToSlash(rel), nil
}

// Remove deletes a stored image. A missing file is not an error; the row is
// the source of truth and the file may already be gone.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL resolves a stored relative path to the URL it is served from.
// Returns the empty string for an empty path.
func (s *ImageStore) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.baseURL + "/" + relPath
}
