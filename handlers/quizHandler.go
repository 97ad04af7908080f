package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"edupilot/models"
	"edupilot/services"

	"github.com/gorilla/mux"
)

type QuizHandler struct {
	service *services.QuizService
}

func NewQuizHandler(service *services.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

func (h *QuizHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quiz/generate", h.Generate).Methods("POST")
	router.HandleFunc("/quiz/list", h.List).Methods("GET")
	router.HandleFunc("/quiz/result/{id}", h.GetResult).Methods("GET")
	router.HandleFunc("/quiz/{id}", h.Get).Methods("GET")
	router.HandleFunc("/quiz/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/quiz/{id}/submit", h.Submit).Methods("POST")
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received quiz generation request")

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode quiz request JSON: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Quiz generation failed: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, quiz)
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"quizzes": quizzes})
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["id"]

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result, err := h.service.SubmitQuiz(quizID, req.Answers)
	if err != nil {
		log.Printf("[ERROR] Quiz submission failed for %s: %v", quizID, err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

func (h *QuizHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetResult(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeleteQuiz(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
