package grading

import (
	"context"
	"strings"
	"testing"

	"edupilot/config"
	"edupilot/models"
	"edupilot/services/ai"
)

func offlineEngine(t *testing.T) *Engine {
	t.Helper()
	client, err := ai.NewClient(&config.Config{})
	if err != nil {
		t.Fatalf("failed to create AI client: %v", err)
	}
	t.Cleanup(client.Close)
	return NewEngine(client)
}

func sampleAssignment() *models.QuestionSet {
	return &models.QuestionSet{
		ID:        "assignment-1",
		TeacherID: "teacher-1",
		Questions: []models.Question{
			{
				ID:           "q1",
				Type:         models.MultipleChoice,
				Prompt:       "Pick the right option.",
				Options:      []string{"One", "Two", "Three", "Four"},
				CorrectIndex: intPtr(2),
				Explanation:  "Three is correct.",
				Points:       2,
			},
			{
				ID:          "q2",
				Type:        models.TrueFalse,
				Prompt:      "The sky is blue.",
				CorrectBool: boolPtr(true),
				Points:      1,
			},
			{
				ID:            "q3",
				Type:          models.LongAnswer,
				Prompt:        "Discuss the topic in depth.",
				CorrectText:   "A full discussion of the topic.",
				MarkingScheme: "10 marks total",
				Points:        10,
			},
		},
	}
}

func TestGradeAssignmentOffline(t *testing.T) {
	engine := offlineEngine(t)

	longAnswer := strings.TrimSpace(strings.Repeat("detail ", 60))
	req := &models.GradeAssignmentRequest{
		TeacherID:    "teacher-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-1",
		Answers: models.Submission{
			"q1": models.IndexAnswer(2),
			"q2": models.BoolAnswer(false),
			"q3": models.TextAnswer(longAnswer),
		},
	}

	record := engine.GradeAssignment(context.Background(), sampleAssignment(), req)

	if record.TotalMarks != 13 {
		t.Errorf("TotalMarks = %v, expected 13", record.TotalMarks)
	}
	// 2 for q1, 0 for q2, 9 for the 60-word q3 under the length heuristic.
	if record.EarnedMarks != 11 {
		t.Errorf("EarnedMarks = %v, expected 11", record.EarnedMarks)
	}
	if record.StudentID != "student-1" || record.AssignmentID != "assignment-1" {
		t.Errorf("record identity = %s/%s, expected student-1/assignment-1", record.StudentID, record.AssignmentID)
	}
	if record.GradedBy != "ai_grading_system" {
		t.Errorf("GradedBy = %q, expected ai_grading_system", record.GradedBy)
	}
	if len(record.QuestionResults) != 3 {
		t.Fatalf("QuestionResults count = %d, expected 3", len(record.QuestionResults))
	}
	if record.LetterGrade != AssignmentLetter(record.Percentage) {
		t.Errorf("LetterGrade %q does not match percentage %v", record.LetterGrade, record.Percentage)
	}
	if record.OverallFeedback != OverallFeedback(record.Percentage) {
		t.Errorf("OverallFeedback does not match percentage band")
	}
}

func TestGradeAssignmentEmptyAnswers(t *testing.T) {
	engine := offlineEngine(t)

	req := &models.GradeAssignmentRequest{
		TeacherID:    "teacher-1",
		AssignmentID: "assignment-1",
		StudentID:    "student-2",
		Answers:      models.Submission{},
	}

	record := engine.GradeAssignment(context.Background(), sampleAssignment(), req)

	if record.EarnedMarks != 0 {
		t.Errorf("EarnedMarks = %v, expected 0 for empty submission", record.EarnedMarks)
	}
	if record.Percentage != 0 {
		t.Errorf("Percentage = %v, expected 0", record.Percentage)
	}
	if record.LetterGrade != "F" {
		t.Errorf("LetterGrade = %q, expected F", record.LetterGrade)
	}
	for _, qr := range record.QuestionResults {
		if qr.Feedback != "No answer provided" {
			t.Errorf("question %s feedback = %q, expected no-answer feedback", qr.QuestionID, qr.Feedback)
		}
	}
}

func TestGradeObjectiveFeedback(t *testing.T) {
	q := &models.Question{
		ID:           "q1",
		Type:         models.MultipleChoice,
		Prompt:       "Pick one.",
		Options:      []string{"A1", "B2"},
		CorrectIndex: intPtr(0),
		Explanation:  "A1 is the documented behavior.",
		Points:       2,
	}

	marks, feedback := gradeObjective(q, models.IndexAnswer(0))
	if marks != 2 || feedback != "Correct!" {
		t.Errorf("correct answer graded as (%v, %q)", marks, feedback)
	}

	marks, feedback = gradeObjective(q, models.IndexAnswer(1))
	if marks != 0 || !strings.Contains(feedback, "Incorrect") {
		t.Errorf("incorrect answer graded as (%v, %q)", marks, feedback)
	}
}
