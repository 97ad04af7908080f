package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"edupilot/models"
	"edupilot/services/ai"
)

const (
	defaultCardCount    = 10
	flashcardInputLimit = 3000
)

const flashcardSystemPrompt = "You are an expert at creating study flashcards. Respond with a single JSON array of objects with \"front\" and \"back\" string fields and nothing else."

// FlashcardService generates study decks from processed content. Like
// question generation it never fails: a degraded capability yields the
// template deck cycled to the requested size.
type FlashcardService struct {
	content *ContentService
	ai      *ai.Client
}

func NewFlashcardService(content *ContentService, aiClient *ai.Client) *FlashcardService {
	return &FlashcardService{content: content, ai: aiClient}
}

// GenerateFlashcards builds a deck of exactly cardCount cards from one
// processed content path. Card types: "qa" (question/answer), "term"
// (term/definition), or "concept" (concept/explanation).
func (s *FlashcardService) GenerateFlashcards(ctx context.Context, req *models.GenerateFlashcardsRequest) (*models.FlashcardsResponse, error) {
	count := req.CardCount
	if count < 1 {
		count = defaultCardCount
	}
	cardType := req.CardType
	if cardType == "" {
		cardType = "qa"
	}

	text := s.content.LoadContent(req.ContentPath)

	var cards []models.Flashcard
	if s.ai.TextAvailable() {
		generated, err := s.aiFlashcards(ctx, text, count, cardType)
		if err != nil {
			log.Printf("[WARN] AI flashcard generation failed, using template deck: %v", err)
		} else {
			cards = generated
		}
	}

	if len(cards) < count {
		cards = append(cards, templateDeck(cardType, count-len(cards))...)
	}
	if len(cards) > count {
		cards = cards[:count]
	}
	return &models.FlashcardsResponse{Flashcards: cards}, nil
}

func (s *FlashcardService) aiFlashcards(ctx context.Context, text string, count int, cardType string) ([]models.Flashcard, error) {
	prompt := fmt.Sprintf(`Create exactly %d %s flashcards from the following educational content.

Content:
%s

Each card is a JSON object: {"front": "...", "back": "..."}.
Respond with the JSON array only.`, count, cardTypeDescription(cardType), prefix(text, flashcardInputLimit))

	raw, err := s.ai.Complete(ctx, flashcardSystemPrompt, prompt, 0.7, 2000)
	if err != nil {
		return nil, err
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in completion: %w", ai.ErrMalformed)
	}

	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(raw[start:end+1]), &cards); err != nil {
		return nil, fmt.Errorf("flashcard array did not decode (%v): %w", err, ai.ErrMalformed)
	}
	usable := cards[:0]
	for _, card := range cards {
		if strings.TrimSpace(card.Front) != "" && strings.TrimSpace(card.Back) != "" {
			usable = append(usable, card)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("no usable flashcards in completion: %w", ai.ErrMalformed)
	}
	return usable, nil
}

func cardTypeDescription(cardType string) string {
	switch cardType {
	case "term":
		return "term/definition"
	case "concept":
		return "concept/explanation"
	default:
		return "question/answer"
	}
}

// templateDeck cycles a small fixed deck up to count cards.
func templateDeck(cardType string, count int) []models.Flashcard {
	var base []models.Flashcard
	switch cardType {
	case "term":
		base = []models.Flashcard{
			{Front: "Key Term 1", Back: "Definition of the first important term from the material."},
			{Front: "Key Term 2", Back: "Definition of the second important term from the material."},
			{Front: "Key Term 3", Back: "Definition of the third important term from the material."},
		}
	case "concept":
		base = []models.Flashcard{
			{Front: "Core Concept 1", Back: "Explanation of the first core concept and how it applies in practice."},
			{Front: "Core Concept 2", Back: "Explanation of the second core concept and how it applies in practice."},
			{Front: "Core Concept 3", Back: "Explanation of the third core concept and how it applies in practice."},
		}
	default:
		base = []models.Flashcard{
			{Front: "What is the main topic of this material?", Back: "The material covers the central subject introduced in its opening section."},
			{Front: "What are the key points to remember?", Back: "Focus on the definitions, principles, and examples highlighted in the content."},
			{Front: "How can this knowledge be applied?", Back: "Apply the concepts through the practical examples and exercises described."},
		}
	}

	cards := make([]models.Flashcard, 0, count)
	for i := 0; i < count; i++ {
		cards = append(cards, base[i%len(base)])
	}
	return cards
}
