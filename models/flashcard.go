package models

// Flashcard is one front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GenerateFlashcardsRequest struct {
	ContentPath string `json:"contentPath"`
	CardCount   int    `json:"cardCount"`
	CardType    string `json:"cardType"`
}

type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}
