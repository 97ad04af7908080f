package storage

import (
	"fmt"
	"hash/crc32"
	"log"
	"strings"

	"edupilot/models"
)

const indexDir = "vector-search"

type IndexRepository interface {
	PutEntry(entry *models.IndexEntry) error
	GetEntries() ([]*models.IndexEntry, error)
	DeleteEntry(path string) error
}

type FileIndexRepository struct {
	store *Store
}

func NewFileIndexRepository(store *Store) *FileIndexRepository {
	return &FileIndexRepository{store: store}
}

// sanitizePath flattens a source path into a single index file name. The
// checksum of the original path keeps distinct paths distinct after the
// separators are flattened, e.g. "processed/doc/a.txt" vs
// "processed_doc_a.txt".
func sanitizePath(path string) string {
	flat := strings.NewReplacer("/", "_", "\\", "_").Replace(path)
	return fmt.Sprintf("%s-%08x", flat, crc32.ChecksumIEEE([]byte(path)))
}

func entryPath(sourcePath string) string {
	return fmt.Sprintf("%s/%s.json", indexDir, sanitizePath(sourcePath))
}

func (r *FileIndexRepository) PutEntry(entry *models.IndexEntry) error {
	return r.store.WriteJSON(entryPath(entry.Path), entry)
}

func (r *FileIndexRepository) GetEntries() ([]*models.IndexEntry, error) {
	paths, err := r.store.ListFiles(indexDir, "*.json")
	if err != nil {
		return nil, err
	}

	entries := make([]*models.IndexEntry, 0, len(paths))
	for _, path := range paths {
		entry := &models.IndexEntry{}
		if err := r.store.ReadJSON(path, entry); err != nil {
			log.Printf("[ERROR] Skipping unreadable index file %s: %v", path, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *FileIndexRepository) DeleteEntry(path string) error {
	return r.store.Delete(entryPath(path))
}
