package storage

import (
	"fmt"
	"log"
	"sort"

	"edupilot/models"
)

const gradesDir = "grades"

type GradeRepository interface {
	SaveGrade(record *models.GradeRecord) error
	GetGrade(id string) (*models.GradeRecord, error)
	ListGrades() ([]models.GradeSummary, error)
}

type FileGradeRepository struct {
	store *Store
}

func NewFileGradeRepository(store *Store) *FileGradeRepository {
	return &FileGradeRepository{store: store}
}

func gradePath(id string) string {
	return fmt.Sprintf("%s/%s.json", gradesDir, id)
}

func (r *FileGradeRepository) SaveGrade(record *models.GradeRecord) error {
	return r.store.WriteJSON(gradePath(record.ID), record)
}

func (r *FileGradeRepository) GetGrade(id string) (*models.GradeRecord, error) {
	record := &models.GradeRecord{}
	if err := r.store.ReadJSON(gradePath(id), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *FileGradeRepository) ListGrades() ([]models.GradeSummary, error) {
	paths, err := r.store.ListFiles(gradesDir, "*.json")
	if err != nil {
		return nil, err
	}

	summaries := make([]models.GradeSummary, 0, len(paths))
	for _, path := range paths {
		record := &models.GradeRecord{}
		if err := r.store.ReadJSON(path, record); err != nil {
			log.Printf("[ERROR] Skipping unreadable grade file %s: %v", path, err)
			continue
		}
		summaries = append(summaries, models.GradeSummary{
			ID:           record.ID,
			StudentID:    record.StudentID,
			AssignmentID: record.AssignmentID,
			Percentage:   record.Percentage,
			LetterGrade:  record.LetterGrade,
			GradedAt:     record.GradedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GradedAt.After(summaries[j].GradedAt)
	})
	return summaries, nil
}
