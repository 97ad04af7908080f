package grading

import (
	"testing"
	"time"

	"edupilot/models"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func sampleQuiz() *models.QuestionSet {
	return &models.QuestionSet{
		ID:    "quiz-1",
		Title: "Sample Quiz",
		Questions: []models.Question{
			{
				ID:           "q1",
				Type:         models.MultipleChoice,
				Prompt:       "Which option is correct?",
				Options:      []string{"Alpha", "Beta", "Gamma", "Delta"},
				CorrectIndex: intPtr(1),
				Points:       10,
			},
			{
				ID:          "q2",
				Type:        models.TrueFalse,
				Prompt:      "Water boils at 100C at sea level.",
				CorrectBool: boolPtr(true),
				Points:      5,
			},
			{
				ID:          "q3",
				Type:        models.ShortAnswer,
				Prompt:      "Explain photosynthesis.",
				CorrectText: "Plants convert sunlight into chemical energy",
				Points:      15,
			},
		},
		TotalQuestions: 3,
		CreatedAt:      time.Now(),
	}
}

func TestGradeQuizAllCorrect(t *testing.T) {
	quiz := sampleQuiz()
	answers := models.Submission{
		"q1": models.IndexAnswer(1),
		"q2": models.BoolAnswer(true),
		"q3": models.TextAnswer("plants use sunlight to convert energy"),
	}

	result := GradeQuiz(quiz, answers)

	if result.CorrectAnswers != 3 {
		t.Errorf("CorrectAnswers = %d, expected 3", result.CorrectAnswers)
	}
	if result.EarnedPoints != 30 || result.TotalPoints != 30 {
		t.Errorf("points = %d/%d, expected 30/30", result.EarnedPoints, result.TotalPoints)
	}
	if result.ScorePercentage != 100 {
		t.Errorf("ScorePercentage = %v, expected 100", result.ScorePercentage)
	}
	if result.Grade != "A" {
		t.Errorf("Grade = %q, expected A", result.Grade)
	}
	if result.QuizID != "quiz-1" {
		t.Errorf("QuizID = %q, expected quiz-1", result.QuizID)
	}
}

func TestGradeQuizAnswers(t *testing.T) {
	tests := []struct {
		name     string
		answers  models.Submission
		correct  int
		earned   int
		grade    string
	}{
		{
			name: "wrong multiple choice",
			answers: models.Submission{
				"q1": models.IndexAnswer(0),
				"q2": models.BoolAnswer(true),
				"q3": models.TextAnswer("plants convert sunlight into chemical energy"),
			},
			correct: 2,
			earned:  20,
			grade:   "D",
		},
		{
			name: "letter answer resolves to option index",
			answers: models.Submission{
				"q1": models.TextAnswer("B"),
			},
			correct: 1,
			earned:  10,
			grade:   "F",
		},
		{
			name: "option text answer resolves to option index",
			answers: models.Submission{
				"q1": models.TextAnswer("Beta"),
			},
			correct: 1,
			earned:  10,
			grade:   "F",
		},
		{
			name: "short answer with too little overlap",
			answers: models.Submission{
				"q1": models.IndexAnswer(1),
				"q2": models.BoolAnswer(true),
				"q3": models.TextAnswer("something unrelated entirely"),
			},
			correct: 2,
			earned:  15,
			grade:   "F",
		},
		{
			name: "short answer needs two shared words",
			answers: models.Submission{
				"q3": models.TextAnswer("it is about energy from sunlight"),
			},
			correct: 1,
			earned:  15,
			grade:   "F",
		},
		{
			name:    "empty submission",
			answers: models.Submission{},
			correct: 0,
			earned:  0,
			grade:   "F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GradeQuiz(sampleQuiz(), tt.answers)
			if result.CorrectAnswers != tt.correct {
				t.Errorf("CorrectAnswers = %d, expected %d", result.CorrectAnswers, tt.correct)
			}
			if result.EarnedPoints != tt.earned {
				t.Errorf("EarnedPoints = %d, expected %d", result.EarnedPoints, tt.earned)
			}
			if result.Grade != tt.grade {
				t.Errorf("Grade = %q, expected %q", result.Grade, tt.grade)
			}
		})
	}
}

func TestGradeQuizNoQuestions(t *testing.T) {
	quiz := &models.QuestionSet{ID: "empty"}
	result := GradeQuiz(quiz, models.Submission{})

	if result.ScorePercentage != 0 {
		t.Errorf("ScorePercentage = %v, expected 0 for empty quiz", result.ScorePercentage)
	}
	if result.Grade != "F" {
		t.Errorf("Grade = %q, expected F for empty quiz", result.Grade)
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "case insensitive", a: "Plants Convert sunlight", b: "plants convert water", expected: 2},
		{name: "repeated words count once", a: "energy energy energy", b: "energy is energy", expected: 1},
		{name: "no overlap", a: "alpha beta", b: "gamma delta", expected: 0},
		{name: "empty answer", a: "", b: "model answer", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordOverlap(tt.a, tt.b); got != tt.expected {
				t.Errorf("wordOverlap(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
