package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"edupilot/models"
	"edupilot/storage"
)

const (
	// chunkSize is the fixed word count per index chunk; the last chunk of a
	// document may be shorter.
	chunkSize = 500
	// containmentScore is the fixed score for every lexical hit. Containment
	// implies hit; there is no ranking differentiation between hits.
	containmentScore = 0.8

	excerptLength      = 200
	defaultSearchLimit = 5
)

// SearchService is the lexical retrieval index: full-text substring
// containment over indexed documents, one entry per source path.
type SearchService struct {
	repo storage.IndexRepository
}

func NewSearchService(repo storage.IndexRepository) *SearchService {
	return &SearchService{repo: repo}
}

// IndexContent stores (or overwrites) the index entry for a source path.
func (s *SearchService) IndexContent(path, title, content string) error {
	log.Printf("[INFO] Indexing content for %s", path)

	entry := &models.IndexEntry{
		Path:      path,
		Title:     title,
		Content:   content,
		Chunks:    chunkWords(content, chunkSize),
		Timestamp: time.Now(),
	}

	if err := s.repo.PutEntry(entry); err != nil {
		log.Printf("[ERROR] Failed to index content for %s: %v", path, err)
		return fmt.Errorf("failed to index content: %w", err)
	}

	log.Printf("[INFO] Indexed %s in %d chunks", path, len(entry.Chunks))
	return nil
}

// Search returns every entry whose full text contains the query,
// case-insensitively, truncated to limit. Order between equal-score hits is
// unspecified.
func (s *SearchService) Search(query string, limit int) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	entries, err := s.repo.GetEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load index entries: %w", err)
	}

	needle := strings.ToLower(query)
	results := make([]models.SearchResult, 0)
	for _, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Content), needle) {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   entry.Title,
			Path:    entry.Path,
			Excerpt: excerpt(entry.Content, excerptLength),
			Score:   containmentScore,
			Content: entry.Content,
		})
		if len(results) == limit {
			break
		}
	}

	log.Printf("[INFO] Search %q returned %d results", query, len(results))
	return results, nil
}

// DeleteContent removes the index entry for a source path. Deleting an
// unindexed path is a no-op.
func (s *SearchService) DeleteContent(path string) error {
	if err := s.repo.DeleteEntry(path); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete index entry: %w", err)
	}
	log.Printf("[INFO] Deleted index entry for %s", path)
	return nil
}

func chunkWords(content string, size int) []string {
	words := strings.Fields(content)
	var chunks []string
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

func excerpt(content string, length int) string {
	if len(content) <= length {
		return content
	}
	return content[:length] + "..."
}
