package handlers

import (
	"encoding/json"
	"net/http"

	"edupilot/models"
	"edupilot/services"

	"github.com/gorilla/mux"
)

type SearchHandler struct {
	service *services.SearchService
}

func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/search", h.Search).Methods("POST")
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Query == "" {
		writeErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := h.service.Search(req.Query, req.Limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"results": results})
}
