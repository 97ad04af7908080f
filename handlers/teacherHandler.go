package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"edupilot/models"
	"edupilot/services"

	"github.com/gorilla/mux"
)

type TeacherHandler struct {
	service *services.TeacherService
}

func NewTeacherHandler(service *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: service}
}

func (h *TeacherHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/teacher/assignment/generate", h.GenerateAssignment).Methods("POST")
	router.HandleFunc("/teacher/assignment/{id}", h.GetAssignment).Methods("GET")
	router.HandleFunc("/teacher/assignment/{id}", h.DeleteAssignment).Methods("DELETE")
	router.HandleFunc("/teacher/{teacherId}/assignments", h.ListAssignments).Methods("GET")
	router.HandleFunc("/teacher/grade", h.GradeSubmission).Methods("POST")
	router.HandleFunc("/teacher/grades", h.ListGrades).Methods("GET")
	router.HandleFunc("/teacher/grades/{id}", h.GetGrade).Methods("GET")
	router.HandleFunc("/teacher/analytics/{classId}", h.Analytics).Methods("GET")
}

func (h *TeacherHandler) GenerateAssignment(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received assignment generation request")

	var req models.GenerateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.TeacherID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "teacherId is required")
		return
	}

	assignment, err := h.service.CreateAssignment(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Assignment generation failed: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, assignment)
}

func (h *TeacherHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.service.GetAssignment(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, assignment)
}

func (h *TeacherHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.ListAssignments(mux.Vars(r)["teacherId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"assignments": assignments})
}

func (h *TeacherHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeleteAssignment(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (h *TeacherHandler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received grading request")

	var req models.GradeAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.AssignmentID == "" || req.StudentID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "assignmentId and studentId are required")
		return
	}

	record, err := h.service.GradeSubmission(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Grading failed for assignment %s: %v", req.AssignmentID, err)
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, record)
}

func (h *TeacherHandler) ListGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.service.ListGrades()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"grades": grades})
}

func (h *TeacherHandler) GetGrade(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetGrade(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, record)
}

func (h *TeacherHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.ClassAnalytics(mux.Vars(r)["classId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, analytics)
}
