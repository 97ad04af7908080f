package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"edupilot/models"
	"edupilot/services/ai"
	"edupilot/storage"

	"github.com/google/uuid"
)

const (
	// contextSourceLimit bounds the text prefix each source contributes to
	// the dialogue context.
	contextSourceLimit = 3
	contextPrefixLimit = 1000
	historyWindow      = 6

	contextSeparator = "\n\n---\n\n"
	// selectedSourceExcerpt is the fixed citation excerpt for explicitly
	// selected sources; search-derived citations carry a real excerpt.
	selectedSourceExcerpt = "Content from uploaded educational material"
)

const studyAssistantSystemPrompt = `You are a helpful study assistant for students. Answer questions based on the provided educational content. Be clear, encouraging, and educational in your responses. If the content does not cover the question, say so honestly.

Educational content:
%s`

// ChatService runs the study-assistant conversations: session management,
// content-grounded context building, and dialogue with deterministic
// fallback. Turns within one session are serialized; sessions are
// independent.
type ChatService struct {
	sessions storage.SessionRepository
	content  *ContentService
	search   *SearchService
	ai       *ai.Client

	locks sync.Map
}

func NewChatService(sessions storage.SessionRepository, content *ContentService, search *SearchService, aiClient *ai.Client) *ChatService {
	return &ChatService{
		sessions: sessions,
		content:  content,
		search:   search,
		ai:       aiClient,
	}
}

// SendMessage appends one user turn to a session, produces the assistant
// reply, and persists the updated session. A missing or unknown session id
// starts a fresh session.
func (s *ChatService) SendMessage(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	session, unlock, err := s.lockSession(req.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	contextText, sources := s.buildContext(req)
	history := recentHistory(session.Messages, historyWindow)

	reply := s.reply(ctx, contextText, history, req.Message)

	now := time.Now()
	session.Messages = append(session.Messages,
		models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      "user",
			Content:   req.Message,
			Timestamp: now,
		},
		models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      "assistant",
			Content:   reply,
			Timestamp: now,
			Sources:   sources,
		},
	)
	session.MessageCount = len(session.Messages)
	session.LastActivity = now

	if err := s.sessions.SaveSession(session); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	assistant := session.Messages[len(session.Messages)-1]
	return &models.ChatResponse{
		SessionID: session.ID,
		Message:   assistant,
		Sources:   sources,
	}, nil
}

// lockSession resolves the session for one turn and returns it with its
// lock held, so the load is already inside the read-modify-write critical
// section and concurrent turns on one session serialize. A fresh session's
// new id is uncontended and is locked after creation.
func (s *ChatService) lockSession(id string) (*models.ChatSession, func(), error) {
	if id != "" {
		lock := s.lockFor(id)
		lock.Lock()
		session, err := s.sessions.GetSession(id)
		if err == nil {
			return session, lock.Unlock, nil
		}
		lock.Unlock()
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, nil, err
		}
		log.Printf("[WARN] Chat session %s not found, starting a new session", id)
	}

	now := time.Now()
	session := &models.ChatSession{
		ID:           uuid.NewString(),
		Title:        "Study Session " + now.Format("Jan 2 15:04"),
		CreatedAt:    now,
		LastActivity: now,
		Messages:     []models.ChatMessage{},
	}
	lock := s.lockFor(session.ID)
	lock.Lock()
	log.Printf("[INFO] Created chat session %s", session.ID)
	return session, lock.Unlock, nil
}

// buildContext assembles the educational content backing one reply. Selected
// sources win; otherwise the retrieval index supplies up to three hits for
// the message.
func (s *ChatService) buildContext(req *models.ChatRequest) (string, []models.SourceCitation) {
	if len(req.SelectedContent) > 0 {
		parts := make([]string, 0, len(req.SelectedContent))
		sources := make([]models.SourceCitation, 0, len(req.SelectedContent))
		for _, path := range req.SelectedContent {
			text := s.content.LoadContent(path)
			parts = append(parts, prefix(text, contextPrefixLimit))
			sources = append(sources, models.SourceCitation{
				Title:   s.content.ResolveTitle(path),
				Path:    NormalizeContentPath(path),
				Excerpt: selectedSourceExcerpt,
			})
		}
		return strings.Join(parts, contextSeparator), sources
	}

	results, err := s.search.Search(req.Message, contextSourceLimit)
	if err != nil {
		log.Printf("[WARN] Context search failed, replying without content: %v", err)
		return "", nil
	}

	parts := make([]string, 0, len(results))
	sources := make([]models.SourceCitation, 0, len(results))
	for _, result := range results {
		parts = append(parts, prefix(result.Content, contextPrefixLimit))
		sources = append(sources, models.SourceCitation{
			Title:   result.Title,
			Path:    result.Path,
			Excerpt: result.Excerpt,
		})
	}
	return strings.Join(parts, contextSeparator), sources
}

func (s *ChatService) reply(ctx context.Context, contextText string, history []models.ChatMessage, message string) string {
	if s.ai.DialogueAvailable() {
		system := fmt.Sprintf(studyAssistantSystemPrompt, contextText)
		reply, err := s.ai.Dialogue(ctx, system, history, message)
		if err == nil {
			return strings.TrimSpace(reply)
		}
		log.Printf("[WARN] Dialogue capability failed, using canned response: %v", err)
	}
	return cannedResponse(message)
}

// recentHistory returns the trailing window of prior turns.
func recentHistory(messages []models.ChatMessage, window int) []models.ChatMessage {
	if len(messages) <= window {
		return messages
	}
	return messages[len(messages)-window:]
}

func (s *ChatService) lockFor(sessionID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ListSessions returns summaries of all stored sessions, most recently
// active first.
func (s *ChatService) ListSessions() ([]models.SessionSummary, error) {
	return s.sessions.ListSessions()
}

func (s *ChatService) GetSession(id string) (*models.ChatSession, error) {
	return s.sessions.GetSession(id)
}

// DeleteSession removes one session under its lock. The lock map entry
// stays: removing it while a turn is blocked on the mutex would hand a
// later turn a fresh mutex and let the two overlap.
func (s *ChatService) DeleteSession(id string) error {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.sessions.DeleteSession(id); err != nil {
		return err
	}
	log.Printf("[INFO] Deleted chat session %s", id)
	return nil
}
