// Package fileserver reads and writes files below a single base directory.
package fileserver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	directoryPerms = 0o755
	filePerms      = 0o644
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrNotExist    = errors.New("file does not exist")
)

// topLevelDirectories are the only directories files may live under.
var topLevelDirectories = []string{"recipes"}

type FileServer struct {
	baseDir string
}

func New(baseDir string) *FileServer {
	return &FileServer{
		baseDir: baseDir,
	}
}

func (f *FileServer) BaseDirectory() string {
	if f == nil {
		return ""
	}
	return f.baseDir
}

// Write stores data at path relative to the base directory, creating parent
// directories as needed.
func (f *FileServer) Write(path string, data []byte) (n int, err error) {
	if f == nil {
		return 0, nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerms)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err = file.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing file: %w", err)
	}
	return n, nil
}

// Delete removes the file at path and prunes parent directories left empty,
// stopping at the top-level directory.
func (f *FileServer) Delete(path string) error {
	if f == nil {
		return nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullpath); errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrNotExist, err)
	} else if err != nil {
		return fmt.Errorf("removing file: %w", err)
	}

	base, err := filepath.Abs(f.baseDir)
	if err != nil {
		return fmt.Errorf("resolving base directory: %w", err)
	}
	top := filepath.Join(base, topLevelDirectory(path))
	for dir := filepath.Dir(fullpath); dir != top && strings.HasPrefix(dir, top); dir = filepath.Dir(dir) {
		empty, err := isEmptyDirectory(dir)
		if err != nil || !empty {
			break
		}
		if err := os.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

func (f *FileServer) resolve(path string) (string, error) {
	if f == nil {
		return "", ErrInvalidPath
	}
	if !slices.Contains(topLevelDirectories, topLevelDirectory(path)) {
		return "", fmt.Errorf("%q is outside the allowed directories: %w", path, ErrInvalidPath)
	}
	return cleanPath(f.baseDir, path)
}

// cleanPath joins path onto baseDir and rejects results that leave baseDir.
func cleanPath(baseDir, path string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}

	full := filepath.Join(absBase, cleaned)
	if full != absBase && !strings.HasPrefix(full, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}
	return full, nil
}

func topLevelDirectory(path string) string {
	cleaned := strings.TrimPrefix(filepath.Clean(path), string(filepath.Separator))
	top, _, _ := strings.Cut(cleaned, string(filepath.Separator))
	return top
}

func isEmptyDirectory(dir string) (bool, error) {
	d, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer func() { _ = d.Close() }()

	_, err = d.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
