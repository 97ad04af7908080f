package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"edupilot/models"
	"edupilot/services"

	"github.com/gorilla/mux"
)

type FlashcardHandler struct {
	service *services.FlashcardService
}

func NewFlashcardHandler(service *services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{service: service}
}

func (h *FlashcardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/flashcards/generate", h.Generate).Methods("POST")
}

func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response, err := h.service.GenerateFlashcards(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Flashcard generation failed: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, response)
}
