package services

import (
	"context"
	"testing"

	"edupilot/models"
)

func TestGenerateFlashcardsOffline(t *testing.T) {
	p := newTestPipeline(t)
	service := NewFlashcardService(p.content, p.ai)

	tests := []struct {
		name     string
		cardType string
		count    int
	}{
		{name: "qa cards", cardType: "qa", count: 5},
		{name: "term cards", cardType: "term", count: 7},
		{name: "concept cards", cardType: "concept", count: 2},
		{name: "default count", cardType: "", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.GenerateFlashcards(context.Background(), &models.GenerateFlashcardsRequest{
				ContentPath: "document/missing.txt",
				CardCount:   tt.count,
				CardType:    tt.cardType,
			})
			if err != nil {
				t.Fatalf("GenerateFlashcards failed: %v", err)
			}

			expected := tt.count
			if expected < 1 {
				expected = defaultCardCount
			}
			if len(resp.Flashcards) != expected {
				t.Fatalf("deck has %d cards, expected %d", len(resp.Flashcards), expected)
			}
			for i, card := range resp.Flashcards {
				if card.Front == "" || card.Back == "" {
					t.Errorf("card %d has empty side: %+v", i, card)
				}
			}
		})
	}
}
