package models

import "time"

// QuizQuestionResult is the per-question outcome of grading a quiz.
type QuizQuestionResult struct {
	QuestionID    string      `json:"questionId"`
	Question      string      `json:"question"`
	UserAnswer    AnswerValue `json:"userAnswer"`
	CorrectAnswer AnswerValue `json:"correctAnswer"`
	IsCorrect     bool        `json:"isCorrect"`
	Explanation   string      `json:"explanation"`
	Points        int         `json:"points"`
	MaxPoints     int         `json:"maxPoints"`
}

// QuizResult is the persisted outcome of grading one quiz submission.
// Append-only: several results may reference the same quiz.
type QuizResult struct {
	ID              string               `json:"id"`
	QuizID          string               `json:"quizId"`
	SubmittedAt     time.Time            `json:"submissionDate"`
	TotalQuestions  int                  `json:"totalQuestions"`
	CorrectAnswers  int                  `json:"correctAnswers"`
	TotalPoints     int                  `json:"totalPoints"`
	EarnedPoints    int                  `json:"earnedPoints"`
	ScorePercentage float64              `json:"scorePercentage"`
	Grade           string               `json:"grade"`
	Results         []QuizQuestionResult `json:"results"`
}

// AssignmentQuestionResult is the per-question outcome of assignment grading.
type AssignmentQuestionResult struct {
	QuestionID    string      `json:"questionId"`
	Question      string      `json:"question"`
	StudentAnswer AnswerValue `json:"studentAnswer"`
	CorrectAnswer AnswerValue `json:"correctAnswer"`
	MarksEarned   float64     `json:"marksEarned"`
	TotalMarks    int         `json:"totalMarks"`
	Feedback      string      `json:"feedback"`
	MarkingScheme string      `json:"markingScheme"`
}

// GradeRecord is the persisted outcome of grading one assignment submission.
type GradeRecord struct {
	ID              string                     `json:"id"`
	TeacherID       string                     `json:"teacherId"`
	AssignmentID    string                     `json:"assignmentId"`
	StudentID       string                     `json:"studentId"`
	TotalMarks      float64                    `json:"totalMarks"`
	EarnedMarks     float64                    `json:"earnedMarks"`
	Percentage      float64                    `json:"percentage"`
	LetterGrade     string                     `json:"letterGrade"`
	QuestionResults []AssignmentQuestionResult `json:"questionResults"`
	OverallFeedback string                     `json:"overallFeedback"`
	GradedAt        time.Time                  `json:"gradedAt"`
	GradedBy        string                     `json:"gradedBy"`
}

// GradeSummary is the listing entry for a persisted grade record.
type GradeSummary struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	AssignmentID string    `json:"assignmentId"`
	Percentage   float64   `json:"percentage"`
	LetterGrade  string    `json:"letterGrade"`
	GradedAt     time.Time `json:"gradedAt"`
}

// ClassAnalytics aggregates persisted grade records for a class.
type ClassAnalytics struct {
	ClassID      string         `json:"classId"`
	TotalGraded  int            `json:"totalGraded"`
	AverageScore float64        `json:"averageScore"`
	HighestScore float64        `json:"highestScore"`
	LowestScore  float64        `json:"lowestScore"`
	Distribution map[string]int `json:"performanceDistribution"`
	LastUpdated  time.Time      `json:"lastUpdated"`
}
