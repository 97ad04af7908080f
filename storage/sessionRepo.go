package storage

import (
	"fmt"
	"log"
	"sort"

	"edupilot/models"
)

const chatbotDir = "chatbot"

type SessionRepository interface {
	GetSession(id string) (*models.ChatSession, error)
	SaveSession(session *models.ChatSession) error
	ListSessions() ([]models.SessionSummary, error)
	DeleteSession(id string) error
}

type FileSessionRepository struct {
	store *Store
}

func NewFileSessionRepository(store *Store) *FileSessionRepository {
	return &FileSessionRepository{store: store}
}

func sessionPath(id string) string {
	return fmt.Sprintf("%s/%s.json", chatbotDir, id)
}

func (r *FileSessionRepository) GetSession(id string) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	if err := r.store.ReadJSON(sessionPath(id), session); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *FileSessionRepository) SaveSession(session *models.ChatSession) error {
	return r.store.WriteJSON(sessionPath(session.ID), session)
}

func (r *FileSessionRepository) ListSessions() ([]models.SessionSummary, error) {
	paths, err := r.store.ListFiles(chatbotDir, "*.json")
	if err != nil {
		return nil, err
	}

	summaries := make([]models.SessionSummary, 0, len(paths))
	for _, path := range paths {
		session := &models.ChatSession{}
		if err := r.store.ReadJSON(path, session); err != nil {
			log.Printf("[ERROR] Skipping unreadable session file %s: %v", path, err)
			continue
		}
		summaries = append(summaries, models.SessionSummary{
			ID:           session.ID,
			Title:        session.Title,
			CreatedAt:    session.CreatedAt,
			LastActivity: session.LastActivity,
			MessageCount: session.MessageCount,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastActivity.After(summaries[j].LastActivity)
	})
	return summaries, nil
}

func (r *FileSessionRepository) DeleteSession(id string) error {
	return r.store.Delete(sessionPath(id))
}
