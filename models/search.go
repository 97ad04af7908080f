package models

import "time"

// IndexEntry is one indexed document: full text plus fixed-size word chunks.
type IndexEntry struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Chunks    []string  `json:"chunks"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchResult is one lexical search hit. Content carries the full entry
// text for context assembly and is not serialized.
type SearchResult struct {
	Title   string  `json:"title"`
	Path    string  `json:"path"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score"`
	Content string  `json:"-"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}
