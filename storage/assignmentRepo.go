package storage

import (
	"fmt"
	"log"
	"sort"

	"edupilot/models"
)

const assignmentsDir = "assignments"

type AssignmentRepository interface {
	SaveAssignment(assignment *models.QuestionSet) error
	GetAssignment(id string) (*models.QuestionSet, error)
	GetTeacherAssignments(teacherID string) ([]models.AssignmentSummary, error)
	DeleteAssignment(id string) error
}

type FileAssignmentRepository struct {
	store *Store
}

func NewFileAssignmentRepository(store *Store) *FileAssignmentRepository {
	return &FileAssignmentRepository{store: store}
}

func assignmentPath(id string) string {
	return fmt.Sprintf("%s/%s.json", assignmentsDir, id)
}

func (r *FileAssignmentRepository) SaveAssignment(assignment *models.QuestionSet) error {
	return r.store.WriteJSON(assignmentPath(assignment.ID), assignment)
}

func (r *FileAssignmentRepository) GetAssignment(id string) (*models.QuestionSet, error) {
	assignment := &models.QuestionSet{}
	if err := r.store.ReadJSON(assignmentPath(id), assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *FileAssignmentRepository) GetTeacherAssignments(teacherID string) ([]models.AssignmentSummary, error) {
	paths, err := r.store.ListFiles(assignmentsDir, "*.json")
	if err != nil {
		return nil, err
	}

	summaries := make([]models.AssignmentSummary, 0, len(paths))
	for _, path := range paths {
		assignment := &models.QuestionSet{}
		if err := r.store.ReadJSON(path, assignment); err != nil {
			log.Printf("[ERROR] Skipping unreadable assignment file %s: %v", path, err)
			continue
		}
		if assignment.TeacherID != teacherID {
			continue
		}
		summaries = append(summaries, models.AssignmentSummary{
			ID:             assignment.ID,
			Title:          assignment.Title,
			Difficulty:     assignment.Difficulty,
			TotalQuestions: assignment.TotalQuestions,
			CreatedAt:      assignment.CreatedAt,
			Status:         assignment.Status,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (r *FileAssignmentRepository) DeleteAssignment(id string) error {
	return r.store.Delete(assignmentPath(id))
}
