package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"edupilot/models"
	"edupilot/services/grading"
	"edupilot/services/quizgen"
	"edupilot/storage"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// TeacherService owns the teacher-facing surfaces: assignment generation
// from syllabus text, AI-assisted grading, and class analytics over the
// persisted grade records.
type TeacherService struct {
	assignments storage.AssignmentRepository
	grades      storage.GradeRepository
	generator   *quizgen.Generator
	engine      *grading.Engine
}

func NewTeacherService(assignments storage.AssignmentRepository, grades storage.GradeRepository, generator *quizgen.Generator, engine *grading.Engine) *TeacherService {
	return &TeacherService{
		assignments: assignments,
		grades:      grades,
		generator:   generator,
		engine:      engine,
	}
}

// CreateAssignment generates and persists an assignment from syllabus text.
func (s *TeacherService) CreateAssignment(ctx context.Context, req *models.GenerateAssignmentRequest) (*models.QuestionSet, error) {
	count := req.QuestionCount
	if count < 1 {
		count = defaultQuestionCount
	}
	types := req.QuestionTypes
	if len(types) == 0 {
		types = []models.QuestionType{models.MultipleChoice, models.ShortAnswer}
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	questions := s.generator.Generate(ctx, req.SyllabusText, types, count, quizgen.AssignmentScheme, difficulty)

	assignment := &models.QuestionSet{
		ID:             uuid.NewString(),
		Title:          assignmentTitle(req.SyllabusText),
		TeacherID:      req.TeacherID,
		Syllabus:       req.SyllabusText,
		Difficulty:     difficulty,
		QuestionTypes:  types,
		TotalQuestions: len(questions),
		Questions:      questions,
		CreatedAt:      time.Now(),
		Status:         "created",
	}

	if err := s.assignments.SaveAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}
	log.Printf("[INFO] Created assignment %s for teacher %s with %d questions", assignment.ID, req.TeacherID, len(questions))
	return assignment, nil
}

func (s *TeacherService) GetAssignment(id string) (*models.QuestionSet, error) {
	return s.assignments.GetAssignment(id)
}

// ListAssignments returns summaries of one teacher's assignments.
func (s *TeacherService) ListAssignments(teacherID string) ([]models.AssignmentSummary, error) {
	return s.assignments.GetTeacherAssignments(teacherID)
}

func (s *TeacherService) DeleteAssignment(id string) error {
	if err := s.assignments.DeleteAssignment(id); err != nil {
		return err
	}
	log.Printf("[INFO] Deleted assignment %s", id)
	return nil
}

// GradeSubmission grades one student submission against a stored assignment
// and persists the grade record.
func (s *TeacherService) GradeSubmission(ctx context.Context, req *models.GradeAssignmentRequest) (*models.GradeRecord, error) {
	assignment, err := s.assignments.GetAssignment(req.AssignmentID)
	if err != nil {
		return nil, err
	}

	record := s.engine.GradeAssignment(ctx, assignment, req)
	if err := s.grades.SaveGrade(record); err != nil {
		return nil, fmt.Errorf("failed to save grade record: %w", err)
	}
	log.Printf("[INFO] Graded assignment %s for student %s: %.1f%% (%s)", req.AssignmentID, req.StudentID, record.Percentage, record.LetterGrade)
	return record, nil
}

func (s *TeacherService) GetGrade(id string) (*models.GradeRecord, error) {
	return s.grades.GetGrade(id)
}

func (s *TeacherService) ListGrades() ([]models.GradeSummary, error) {
	return s.grades.ListGrades()
}

// ClassAnalytics aggregates every persisted grade record into class-level
// performance figures. An empty record set yields zeroed analytics, not an
// error.
func (s *TeacherService) ClassAnalytics(classID string) (*models.ClassAnalytics, error) {
	grades, err := s.grades.ListGrades()
	if err != nil {
		return nil, err
	}

	analytics := &models.ClassAnalytics{
		ClassID:     classID,
		TotalGraded: len(grades),
		Distribution: map[string]int{
			"excellent":         0,
			"good":              0,
			"average":           0,
			"needs_improvement": 0,
		},
		LastUpdated: time.Now(),
	}
	if len(grades) == 0 {
		return analytics, nil
	}

	scores := lo.Map(grades, func(g models.GradeSummary, _ int) float64 {
		return g.Percentage
	})
	analytics.AverageScore = lo.Sum(scores) / float64(len(scores))
	analytics.HighestScore = lo.Max(scores)
	analytics.LowestScore = lo.Min(scores)
	for _, score := range scores {
		switch {
		case score >= 85:
			analytics.Distribution["excellent"]++
		case score >= 70:
			analytics.Distribution["good"]++
		case score >= 50:
			analytics.Distribution["average"]++
		default:
			analytics.Distribution["needs_improvement"]++
		}
	}
	return analytics, nil
}

// assignmentTitle derives a display title from the opening of the syllabus.
func assignmentTitle(syllabus string) string {
	trimmed := strings.TrimSpace(syllabus)
	if trimmed == "" {
		return "Generated Assignment"
	}
	if len(trimmed) > 50 {
		trimmed = strings.TrimSpace(trimmed[:50]) + "..."
	}
	return "Assignment: " + trimmed
}
