package grading

import (
	"context"
	"fmt"
	"math"
	"time"

	"edupilot/models"
	"edupilot/services/ai"

	"github.com/google/uuid"
)

// Engine grades assignment submissions: objective questions by exact match,
// subjective ones through the rubric capability with deterministic
// degradation. Quiz grading needs no capability and lives in GradeQuiz.
type Engine struct {
	ai *ai.Client
}

func NewEngine(aiClient *ai.Client) *Engine {
	return &Engine{ai: aiClient}
}

// GradeAssignment marks every question of one assignment submission and
// assembles the persisted grade record. Grading never fails: degraded
// capabilities lower confidence, not availability.
func (e *Engine) GradeAssignment(ctx context.Context, set *models.QuestionSet, req *models.GradeAssignmentRequest) *models.GradeRecord {
	record := &models.GradeRecord{
		ID:              uuid.NewString(),
		TeacherID:       req.TeacherID,
		AssignmentID:    set.ID,
		StudentID:       req.StudentID,
		QuestionResults: make([]models.AssignmentQuestionResult, 0, len(set.Questions)),
		GradedAt:        time.Now(),
		GradedBy:        "ai_grading_system",
	}

	for _, q := range set.Questions {
		answer := req.Answers[q.ID]
		earned, feedback := e.gradeQuestion(ctx, &q, answer)

		record.TotalMarks += float64(q.Points)
		record.EarnedMarks += earned
		record.QuestionResults = append(record.QuestionResults, models.AssignmentQuestionResult{
			QuestionID:    q.ID,
			Question:      q.Prompt,
			StudentAnswer: answer,
			CorrectAnswer: q.CorrectValue(),
			MarksEarned:   earned,
			TotalMarks:    q.Points,
			Feedback:      feedback,
			MarkingScheme: q.MarkingScheme,
		})
	}

	if record.TotalMarks > 0 {
		record.Percentage = math.Round(record.EarnedMarks/record.TotalMarks*1000) / 10
	}
	record.LetterGrade = AssignmentLetter(record.Percentage)
	record.OverallFeedback = OverallFeedback(record.Percentage)
	return record
}

func (e *Engine) gradeQuestion(ctx context.Context, q *models.Question, answer models.AnswerValue) (float64, string) {
	if q.Type.IsObjective() {
		return gradeObjective(q, answer)
	}
	return e.gradeSubjective(ctx, q, answer.Text, q.Points)
}

func gradeObjective(q *models.Question, answer models.AnswerValue) (float64, string) {
	if answer.IsEmpty() {
		return 0, "No answer provided"
	}
	if q.Type == models.MultipleChoice && answer.Index == nil {
		if idx, ok := models.OptionIndex(q.Options, answer.Text); ok {
			answer = models.IndexAnswer(idx)
		}
	}
	if answer.Equals(q.CorrectValue()) {
		return float64(q.Points), "Correct!"
	}
	return 0, fmt.Sprintf("Incorrect. %s", q.Explanation)
}
