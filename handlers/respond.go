package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"edupilot/services/extract"
	"edupilot/storage"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps the service error taxonomy to HTTP statuses:
// missing artifacts are 404, unsupported media types are 400, files held by
// another operation are 409, everything else is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, extract.ErrUnsupportedMediaType):
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrInUse):
		writeErrorResponse(w, http.StatusConflict, err.Error())
	default:
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
