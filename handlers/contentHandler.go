package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"edupilot/services"

	"github.com/gorilla/mux"
)

// maxUploadSize caps multipart uploads at 100 MB, enough for lecture
// recordings.
const maxUploadSize = 100 << 20

type ContentHandler struct {
	service *services.ContentService
}

func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/content/upload", h.Upload).Methods("POST")
	router.HandleFunc("/content/process", h.Process).Methods("POST")
	router.HandleFunc("/content/uploads", h.ListUploads).Methods("GET")
	router.HandleFunc("/content/uploads", h.DeleteUpload).Methods("DELETE")
	router.HandleFunc("/content/processed", h.ListProcessed).Methods("GET")
	router.HandleFunc("/content/processed", h.DeleteProcessed).Methods("DELETE")
	router.HandleFunc("/content/detail", h.Detail).Methods("GET")
}

// Upload accepts one multipart file and stores it for later processing.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("[ERROR] Failed to parse upload form: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[ERROR] Failed to read upload %s: %v", header.Filename, err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	asset, err := h.service.SaveUpload(header.Filename, data)
	if err != nil {
		log.Printf("[ERROR] Failed to save upload %s: %v", header.Filename, err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, asset)
}

type processRequest struct {
	Path string `json:"path"`
}

// Process runs the extraction pipeline on one previously uploaded file.
func (h *ContentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "path is required")
		return
	}

	asset, err := h.service.GetUpload(req.Path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.service.ProcessAsset(r.Context(), asset)
	if err != nil {
		log.Printf("[ERROR] Processing failed for %s: %v", req.Path, err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

func (h *ContentHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.ListUploads()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"uploads": assets})
}

func (h *ContentHandler) ListProcessed(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.ListProcessedContent()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"content": infos})
}

func (h *ContentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	detail, err := h.service.GetContentDetail(path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, detail)
}

func (h *ContentHandler) DeleteProcessed(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	if err := h.service.DeleteProcessedContent(path); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "path": path})
}

func (h *ContentHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	if err := h.service.DeleteUpload(path); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "path": path})
}
