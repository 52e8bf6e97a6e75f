// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uploads stores site images under a per-site directory and answers
// the exporter's "does this file exist" checks. Stored filenames are
// generated (uuid plus the original extension), never user-supplied, so a
// filename recorded in the wizard can be trusted as a path component.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for files outside the image allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// allowedExtensions is the image extension allow-list.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Store manages uploaded files under a root directory, one subdirectory per
// site named after the numeric site id.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first save.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Dir returns the upload directory for a site.
func (s *Store) Dir(siteID int64) string {
	return filepath.Join(s.root, strconv.FormatInt(siteID, 10))
}

// Path returns the full path of a stored file.
func (s *Store) Path(siteID int64, filename string) string {
	return filepath.Join(s.Dir(siteID), filename)
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(siteID int64, filename string) bool {
	if filename == "" {
		return false
	}
	info, err := os.Stat(s.Path(siteID, filename))
	return err == nil && !info.IsDir()
}

// Save copies the file at sourcePath into the site's upload directory under
// a generated name and returns that name. Files with extensions outside the
// allow-list are rejected with ErrUnsupportedType.
func (s *Store) Save(siteID int64, sourcePath string) (string, error) {
	ext, ok := allowedExt(sourcePath)
	if !ok {
		return "", fmt.Errorf("%s: %w", filepath.Base(sourcePath), ErrUnsupportedType)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", sourcePath, err)
	}
	defer src.Close()

	dir := s.Dir(siteID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	filename := uuid.NewString() + "." + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("copying upload: %w", err)
	}
	return filename, nil
}

// Remove deletes a stored file. Removing a file that is already gone is not
// an error.
func (s *Store) Remove(siteID int64, filename string) error {
	err := os.Remove(s.Path(siteID, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", filename, err)
	}
	return nil
}

// allowedExt extracts the lowercased extension and reports whether it is in
// the allow-list.
func allowedExt(name string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return ext, allowedExtensions[ext]
}
