package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound marks a lookup of an artifact id or path that does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrInUse marks a delete that kept failing because another operation
	// holds the file.
	ErrInUse = errors.New("file is currently in use")
)

const (
	deleteRetries    = 3
	deleteRetryPause = time.Second
)

// Store is the file-backed artifact store. Every entity is one UTF-8 JSON or
// plain-text file under the storage root; the on-disk layout is part of the
// service contract.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Abs resolves a storage-relative path to an absolute one.
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(s.Abs(rel))
	return err == nil
}

func (s *Store) ReadText(rel string) (string, error) {
	data, err := os.ReadFile(s.Abs(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return string(data), nil
}

func (s *Store) WriteText(rel, content string) error {
	return s.WriteBytes(rel, []byte(content))
}

// WriteBytes writes through a temp file and renames it into place, so a
// concurrent read sees either the previous content or the new content,
// never a truncated file.
func (s *Store) WriteBytes(rel string, data []byte) error {
	path := s.Abs(rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	tmp, err := os.CreateTemp(dir, ".write-*")
	if err != nil {
		return fmt.Errorf("failed to stage write for %s: %w", rel, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

func (s *Store) ReadJSON(rel string, v any) error {
	data, err := os.ReadFile(s.Abs(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", rel, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", rel, err)
	}
	return nil
}

func (s *Store) WriteJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", rel, err)
	}
	return s.WriteText(rel, string(data))
}

// Delete removes one artifact. Missing files report ErrNotFound.
func (s *Store) Delete(rel string) error {
	if err := os.Remove(s.Abs(rel)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s: %w", rel, err)
	}
	return nil
}

// DeleteWithRetry removes a file that another operation may be mid-write on,
// retrying a small bounded number of times before reporting ErrInUse.
func (s *Store) DeleteWithRetry(rel string) error {
	path := s.Abs(rel)
	var lastErr error
	for attempt := 0; attempt < deleteRetries; attempt++ {
		err := os.Remove(path)
		if err == nil {
			return nil
		}
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		lastErr = err
		if attempt < deleteRetries-1 {
			log.Printf("[WARN] File in use, retrying in %s (attempt %d): %s", deleteRetryPause, attempt+1, rel)
			time.Sleep(deleteRetryPause)
		}
	}
	return fmt.Errorf("%s after %d attempts (%v): %w", rel, deleteRetries, lastErr, ErrInUse)
}

// ListFiles returns storage-relative paths of files in dir matching pattern
// (a filepath.Match pattern on the base name). A missing directory is an
// empty listing, not an error.
func (s *Store) ListFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(s.Abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			paths = append(paths, dir+"/"+entry.Name())
		}
	}
	return paths, nil
}

// WalkFiles returns storage-relative paths of all files under dir whose name
// has the given suffix, walking date subdirectories.
func (s *Store) WalkFiles(dir, suffix string) ([]string, error) {
	rootDir := s.Abs(dir)
	var paths []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), suffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return paths, nil
}
