package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"edupilot/models"
	"edupilot/services"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chatbot/message", h.SendMessage).Methods("POST")
	router.HandleFunc("/chatbot/sessions", h.ListSessions).Methods("GET")
	router.HandleFunc("/chatbot/sessions/{id}", h.GetSession).Methods("GET")
	router.HandleFunc("/chatbot/sessions/{id}", h.DeleteSession).Methods("DELETE")
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Message == "" {
		writeErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	response, err := h.service.SendMessage(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Chat message failed: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, response)
}

func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, session)
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeleteSession(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
