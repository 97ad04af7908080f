package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"edupilot/models"
	"edupilot/services/grading"
	"edupilot/services/quizgen"
	"edupilot/storage"

	"github.com/google/uuid"
)

const defaultQuestionCount = 5

// QuizService orchestrates quiz lifecycle: generation from processed
// content, retrieval, submission grading, and deletion.
type QuizService struct {
	repo      storage.QuizRepository
	content   *ContentService
	generator *quizgen.Generator
}

func NewQuizService(repo storage.QuizRepository, content *ContentService, generator *quizgen.Generator) *QuizService {
	return &QuizService{
		repo:      repo,
		content:   content,
		generator: generator,
	}
}

// CreateQuiz generates and persists a quiz from one processed content path.
// Generation always succeeds; a degraded capability yields template
// questions instead of an error.
func (s *QuizService) CreateQuiz(ctx context.Context, req *models.GenerateQuizRequest) (*models.QuestionSet, error) {
	count := req.QuestionCount
	if count < 1 {
		count = defaultQuestionCount
	}
	types := req.QuestionTypes
	if len(types) == 0 {
		types = []models.QuestionType{models.MultipleChoice}
	}

	text := s.content.LoadContent(req.ContentPath)
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Quiz on %s", s.content.ResolveTitle(req.ContentPath))
	}

	questions := s.generator.Generate(ctx, text, types, count, quizgen.QuizScheme, "")

	quiz := &models.QuestionSet{
		ID:             uuid.NewString(),
		Title:          title,
		ContentPath:    req.ContentPath,
		QuestionTypes:  types,
		TotalQuestions: len(questions),
		Questions:      questions,
		TimeLimit:      len(questions) * 2,
		CreatedAt:      time.Now(),
		Status:         "ready",
	}

	if err := s.repo.SaveQuiz(quiz); err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}
	log.Printf("[INFO] Created quiz %s with %d questions from %s", quiz.ID, len(questions), req.ContentPath)
	return quiz, nil
}

func (s *QuizService) GetQuiz(id string) (*models.QuestionSet, error) {
	return s.repo.GetQuiz(id)
}

// ListQuizzes returns summaries of all stored quizzes, newest first.
func (s *QuizService) ListQuizzes() ([]models.QuizSummary, error) {
	return s.repo.GetAllQuizzes()
}

// SubmitQuiz grades one submission against the stored quiz and persists the
// result alongside it.
func (s *QuizService) SubmitQuiz(quizID string, answers models.Submission) (*models.QuizResult, error) {
	quiz, err := s.repo.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	result := grading.GradeQuiz(quiz, answers)
	if err := s.repo.SaveResult(result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}
	log.Printf("[INFO] Graded quiz %s submission %s: %.1f%% (%s)", quizID, result.ID, result.ScorePercentage, result.Grade)
	return result, nil
}

func (s *QuizService) GetResult(resultID string) (*models.QuizResult, error) {
	return s.repo.GetResult(resultID)
}

func (s *QuizService) DeleteQuiz(id string) error {
	if err := s.repo.DeleteQuiz(id); err != nil {
		return err
	}
	log.Printf("[INFO] Deleted quiz %s", id)
	return nil
}
