package grading

import (
	"strings"
	"time"

	"edupilot/models"

	"github.com/google/uuid"
)

// shortAnswerOverlapThreshold is the minimum number of shared words between
// a short answer and the model answer for the answer to count as correct.
const shortAnswerOverlapThreshold = 2

// GradeQuiz scores one quiz submission deterministically: objective
// questions by exact match, short answers by word overlap with the model
// answer. Unanswered questions score zero.
func GradeQuiz(set *models.QuestionSet, answers models.Submission) *models.QuizResult {
	result := &models.QuizResult{
		ID:             uuid.NewString(),
		QuizID:         set.ID,
		SubmittedAt:    time.Now(),
		TotalQuestions: len(set.Questions),
		Results:        make([]models.QuizQuestionResult, 0, len(set.Questions)),
	}

	for _, q := range set.Questions {
		answer := answers[q.ID]
		correct := isQuizAnswerCorrect(&q, answer)

		earned := 0
		if correct {
			earned = q.Points
			result.CorrectAnswers++
		}
		result.TotalPoints += q.Points
		result.EarnedPoints += earned

		result.Results = append(result.Results, models.QuizQuestionResult{
			QuestionID:    q.ID,
			Question:      q.Prompt,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectValue(),
			IsCorrect:     correct,
			Explanation:   q.Explanation,
			Points:        earned,
			MaxPoints:     q.Points,
		})
	}

	if result.TotalPoints > 0 {
		result.ScorePercentage = float64(result.EarnedPoints) / float64(result.TotalPoints) * 100
	}
	result.Grade = QuizLetter(result.ScorePercentage)
	return result
}

func isQuizAnswerCorrect(q *models.Question, answer models.AnswerValue) bool {
	if answer.IsEmpty() {
		return false
	}
	switch q.Type {
	case models.MultipleChoice:
		if answer.Index == nil {
			if idx, ok := models.OptionIndex(q.Options, answer.Text); ok {
				answer = models.IndexAnswer(idx)
			}
		}
		return answer.Equals(q.CorrectValue())
	case models.TrueFalse:
		return answer.Equals(q.CorrectValue())
	default:
		return wordOverlap(answer.Text, q.CorrectText) >= shortAnswerOverlapThreshold
	}
}

// wordOverlap counts distinct lowercase words shared by both texts.
func wordOverlap(a, b string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		seen[w] = true
	}
	overlap := 0
	counted := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if seen[w] && !counted[w] {
			counted[w] = true
			overlap++
		}
	}
	return overlap
}
