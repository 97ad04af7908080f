package storage

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"edupilot/models"
)

const quizzesDir = "quizzes"

type QuizRepository interface {
	SaveQuiz(quiz *models.QuestionSet) error
	GetQuiz(id string) (*models.QuestionSet, error)
	GetAllQuizzes() ([]models.QuizSummary, error)
	DeleteQuiz(id string) error
	SaveResult(result *models.QuizResult) error
	GetResult(id string) (*models.QuizResult, error)
}

type FileQuizRepository struct {
	store *Store
}

func NewFileQuizRepository(store *Store) *FileQuizRepository {
	return &FileQuizRepository{store: store}
}

func quizPath(id string) string {
	return fmt.Sprintf("%s/%s.json", quizzesDir, id)
}

func quizResultPath(id string) string {
	return fmt.Sprintf("%s/result_%s.json", quizzesDir, id)
}

func (r *FileQuizRepository) SaveQuiz(quiz *models.QuestionSet) error {
	return r.store.WriteJSON(quizPath(quiz.ID), quiz)
}

func (r *FileQuizRepository) GetQuiz(id string) (*models.QuestionSet, error) {
	quiz := &models.QuestionSet{}
	if err := r.store.ReadJSON(quizPath(id), quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *FileQuizRepository) GetAllQuizzes() ([]models.QuizSummary, error) {
	paths, err := r.store.ListFiles(quizzesDir, "*.json")
	if err != nil {
		return nil, err
	}

	summaries := make([]models.QuizSummary, 0, len(paths))
	for _, path := range paths {
		if strings.Contains(path, "/result_") {
			continue
		}
		quiz := &models.QuestionSet{}
		if err := r.store.ReadJSON(path, quiz); err != nil {
			log.Printf("[ERROR] Skipping unreadable quiz file %s: %v", path, err)
			continue
		}
		summaries = append(summaries, models.QuizSummary{
			ID:             quiz.ID,
			Title:          quiz.Title,
			TotalQuestions: quiz.TotalQuestions,
			CreatedAt:      quiz.CreatedAt,
			QuestionTypes:  quiz.QuestionTypes,
			TimeLimit:      quiz.TimeLimit,
			Status:         quiz.Status,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (r *FileQuizRepository) DeleteQuiz(id string) error {
	return r.store.Delete(quizPath(id))
}

func (r *FileQuizRepository) SaveResult(result *models.QuizResult) error {
	return r.store.WriteJSON(quizResultPath(result.ID), result)
}

func (r *FileQuizRepository) GetResult(id string) (*models.QuizResult, error) {
	result := &models.QuizResult{}
	if err := r.store.ReadJSON(quizResultPath(id), result); err != nil {
		return nil, err
	}
	return result, nil
}
