package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// QuestionType tags the four question variants.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	LongAnswer     QuestionType = "long_answer"
)

// IsObjective reports whether answers of this type are graded by exact match.
func (t QuestionType) IsObjective() bool {
	return t == MultipleChoice || t == TrueFalse
}

// AnswerValue holds one answer of any question type: an option index for
// multiple choice, a boolean for true/false, or free text for subjective
// questions. Exactly one representation is set.
type AnswerValue struct {
	Index *int
	Bool  *bool
	Text  string
}

func IndexAnswer(i int) AnswerValue  { return AnswerValue{Index: &i} }
func BoolAnswer(b bool) AnswerValue  { return AnswerValue{Bool: &b} }
func TextAnswer(s string) AnswerValue { return AnswerValue{Text: s} }

// IsEmpty reports whether no usable answer was given.
func (a AnswerValue) IsEmpty() bool {
	return a.Index == nil && a.Bool == nil && strings.TrimSpace(a.Text) == ""
}

// Equals compares two answers of the same representation.
func (a AnswerValue) Equals(other AnswerValue) bool {
	switch {
	case a.Index != nil && other.Index != nil:
		return *a.Index == *other.Index
	case a.Bool != nil && other.Bool != nil:
		return *a.Bool == *other.Bool
	default:
		return a.Text != "" && a.Text == other.Text
	}
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch {
	case a.Index != nil:
		return json.Marshal(*a.Index)
	case a.Bool != nil:
		return json.Marshal(*a.Bool)
	case a.Text != "":
		return json.Marshal(a.Text)
	default:
		return []byte("null"), nil
	}
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	*a = AnswerValue{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		a.Bool = &b
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		a.Index = &i
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		return nil
	}
	return fmt.Errorf("unsupported answer value: %s", trimmed)
}

// Submission maps question ids to a learner's answers. Transient; it is
// never persisted on its own, only embedded into grade records.
type Submission map[string]AnswerValue

// Question is a tagged variant over the four question kinds. The correct
// answer lives in the field matching the type; Validate enforces the shape.
type Question struct {
	ID            string
	Type          QuestionType
	Prompt        string
	Options       []string
	CorrectIndex  *int
	CorrectBool   *bool
	CorrectText   string
	Explanation   string
	MarkingScheme string
	Difficulty    string
	Points        int
}

// CorrectValue returns the stored correct answer as an AnswerValue.
func (q *Question) CorrectValue() AnswerValue {
	switch q.Type {
	case MultipleChoice:
		if q.CorrectIndex != nil {
			return IndexAnswer(*q.CorrectIndex)
		}
	case TrueFalse:
		if q.CorrectBool != nil {
			return BoolAnswer(*q.CorrectBool)
		}
	default:
		return TextAnswer(q.CorrectText)
	}
	return AnswerValue{}
}

// Validate enforces the variant shape for the question's type.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question id is required")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %s: prompt is required", q.ID)
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %s: multiple choice needs at least 2 options", q.ID)
		}
		if q.CorrectIndex == nil || *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %s: correct option index out of range", q.ID)
		}
	case TrueFalse:
		if q.CorrectBool == nil {
			return fmt.Errorf("question %s: true/false needs a boolean answer", q.ID)
		}
	case ShortAnswer, LongAnswer:
		if strings.TrimSpace(q.CorrectText) == "" {
			return fmt.Errorf("question %s: subjective question needs a model answer", q.ID)
		}
	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	return nil
}

// questionJSON is the on-disk shape shared with the original artifacts:
// correctAnswer is polymorphic over number, boolean and string.
type questionJSON struct {
	ID            string          `json:"id"`
	Type          QuestionType    `json:"type"`
	Question      string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation,omitempty"`
	MarkingScheme string          `json:"markingScheme,omitempty"`
	Difficulty    string          `json:"difficulty,omitempty"`
	Points        int             `json:"points"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	correct, err := q.CorrectValue().MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:            q.ID,
		Type:          q.Type,
		Question:      q.Prompt,
		Options:       q.Options,
		CorrectAnswer: correct,
		Explanation:   q.Explanation,
		MarkingScheme: q.MarkingScheme,
		Difficulty:    q.Difficulty,
		Points:        q.Points,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*q = Question{
		ID:            raw.ID,
		Type:          raw.Type,
		Prompt:        raw.Question,
		Options:       raw.Options,
		Explanation:   raw.Explanation,
		MarkingScheme: raw.MarkingScheme,
		Difficulty:    raw.Difficulty,
		Points:        raw.Points,
	}

	if len(raw.CorrectAnswer) == 0 {
		return nil
	}
	var answer AnswerValue
	if err := answer.UnmarshalJSON(raw.CorrectAnswer); err != nil {
		return fmt.Errorf("question %s: %w", raw.ID, err)
	}

	switch raw.Type {
	case MultipleChoice:
		q.CorrectIndex = answer.Index
		if q.CorrectIndex == nil && answer.Text != "" {
			if idx, ok := OptionIndex(raw.Options, answer.Text); ok {
				q.CorrectIndex = &idx
			}
		}
	case TrueFalse:
		q.CorrectBool = answer.Bool
	default:
		q.CorrectText = answer.Text
	}
	return nil
}

// OptionIndex resolves a textual multiple-choice answer to a 0-based index:
// either a single letter A-D or the full option text.
func OptionIndex(options []string, answer string) (int, bool) {
	answer = strings.TrimSpace(answer)
	if len(answer) == 1 {
		idx := int(strings.ToUpper(answer)[0] - 'A')
		if idx >= 0 && idx < len(options) {
			return idx, true
		}
	}
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return i, true
		}
	}
	return 0, false
}

// QuestionSet is a generated quiz or assignment: same shape, different
// metadata. Immutable once created.
type QuestionSet struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ContentPath    string         `json:"contentPath,omitempty"`
	TeacherID      string         `json:"teacherId,omitempty"`
	Syllabus       string         `json:"syllabus,omitempty"`
	Difficulty     string         `json:"difficulty,omitempty"`
	QuestionTypes  []QuestionType `json:"questionTypes"`
	TotalQuestions int            `json:"totalQuestions"`
	Questions      []Question     `json:"questions"`
	TimeLimit      int            `json:"timeLimit,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	Status         string         `json:"status"`
}

// QuizSummary is the listing entry for a quiz.
type QuizSummary struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	TotalQuestions int            `json:"totalQuestions"`
	CreatedAt      time.Time      `json:"createdAt"`
	QuestionTypes  []QuestionType `json:"questionTypes"`
	TimeLimit      int            `json:"timeLimit"`
	Status         string         `json:"status"`
}

// AssignmentSummary is the listing entry for an assignment.
type AssignmentSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Difficulty     string    `json:"difficulty"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
}

type GenerateQuizRequest struct {
	ContentPath   string         `json:"contentPath"`
	QuestionTypes []QuestionType `json:"questionTypes"`
	QuestionCount int            `json:"questionCount"`
	Title         string         `json:"title"`
}

type GenerateAssignmentRequest struct {
	TeacherID     string         `json:"teacherId"`
	SyllabusText  string         `json:"syllabusText"`
	Difficulty    string         `json:"difficulty"`
	QuestionTypes []QuestionType `json:"questionTypes"`
	QuestionCount int            `json:"questionCount"`
}

type SubmitQuizRequest struct {
	Answers Submission `json:"answers"`
}

type GradeAssignmentRequest struct {
	TeacherID    string     `json:"teacherId"`
	AssignmentID string     `json:"assignmentId"`
	StudentID    string     `json:"studentId"`
	Answers      Submission `json:"answers"`
}
