package models

import "time"

// SourceCitation names one piece of indexed content backing a chat reply.
type SourceCitation struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Excerpt string `json:"excerpt"`
}

// ChatMessage is one turn in a session. Messages are only ever appended.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Sources   []SourceCitation `json:"sources,omitempty"`
}

// ChatSession holds an ordered message history for one study conversation.
type ChatSession struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	CreatedAt    time.Time     `json:"createdDate"`
	LastActivity time.Time     `json:"lastActivity"`
	Messages     []ChatMessage `json:"messages"`
	MessageCount int           `json:"messageCount"`
}

// SessionSummary is the listing entry for a chat session.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdDate"`
	LastActivity time.Time `json:"lastActivity"`
	MessageCount int       `json:"messageCount"`
}

type ChatRequest struct {
	SessionID       string   `json:"sessionId"`
	Message         string   `json:"message"`
	SelectedContent []string `json:"selectedContent"`
}

type ChatResponse struct {
	SessionID string           `json:"sessionId"`
	Message   ChatMessage      `json:"message"`
	Sources   []SourceCitation `json:"sources"`
}
