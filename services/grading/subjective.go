package grading

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"edupilot/models"
	"edupilot/services/ai"
)

const RUBRIC_SYSTEM_PROMPT = "You are a fair and consistent teacher grading student answers against a marking scheme. Respond in exactly this format: MARKS: X/N | FEEDBACK: your feedback here"

const (
	// Degradation factors for rubric responses that came back but could not
	// be fully trusted: markers present but unparseable, and markers absent.
	unparseableRubricFactor  = 0.6
	unstructuredRubricFactor = 0.7
)

// gradeSubjective marks one short or long answer out of maxMarks. The rubric
// capability is tried first; a degraded response still yields partial credit,
// and an unavailable capability falls back to answer-length heuristics.
// Marks are rounded to one decimal place and clamped to [0, maxMarks].
func (e *Engine) gradeSubjective(ctx context.Context, q *models.Question, answer string, maxMarks int) (float64, string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, "No answer provided"
	}

	if e.ai.TextAvailable() {
		marks, feedback, err := e.rubricGrade(ctx, q, answer, maxMarks)
		if err == nil {
			return clampMarks(marks, maxMarks), feedback
		}
		if ai.Recoverable(err) {
			log.Printf("[WARN] Rubric grading degraded for question %s, using length heuristic: %v", q.ID, err)
		} else {
			log.Printf("[ERROR] Rubric grading failed for question %s, using length heuristic: %v", q.ID, err)
		}
	}

	marks, feedback := lengthHeuristic(answer, maxMarks)
	return clampMarks(marks, maxMarks), feedback
}

func (e *Engine) rubricGrade(ctx context.Context, q *models.Question, answer string, maxMarks int) (float64, string, error) {
	prompt := fmt.Sprintf(`Grade this student answer.

Question: %s
Model Answer: %s
Marking Scheme: %s
Maximum Marks: %d

Student Answer: %s

Respond in exactly this format:
MARKS: X/%d | FEEDBACK: your detailed feedback`, q.Prompt, q.CorrectText, q.MarkingScheme, maxMarks, answer, maxMarks)

	response, err := e.ai.Complete(ctx, RUBRIC_SYSTEM_PROMPT, prompt, 0.2, 500)
	if err != nil {
		return 0, "", err
	}
	marks, feedback := parseRubricResponse(response, maxMarks)
	return marks, feedback, nil
}

// parseRubricResponse extracts marks and feedback from a
// "MARKS: X/N | FEEDBACK: ..." response. A response with the markers but an
// unreadable score earns 60% and is flagged for manual review; a response
// without the markers earns 70% and its full text becomes the feedback.
func parseRubricResponse(response string, maxMarks int) (float64, string) {
	response = strings.TrimSpace(response)
	upper := strings.ToUpper(response)

	marksIdx := strings.Index(upper, "MARKS:")
	feedbackIdx := strings.Index(upper, "FEEDBACK:")
	if marksIdx == -1 || feedbackIdx == -1 {
		return unstructuredRubricFactor * float64(maxMarks), response
	}

	marksPart := response[marksIdx+len("MARKS:") : feedbackIdx]
	marksPart = strings.TrimSpace(strings.Trim(strings.TrimSpace(marksPart), "|"))
	if slash := strings.Index(marksPart, "/"); slash != -1 {
		marksPart = marksPart[:slash]
	}
	feedback := strings.TrimSpace(response[feedbackIdx+len("FEEDBACK:"):])

	marks, err := strconv.ParseFloat(strings.TrimSpace(marksPart), 64)
	if err != nil {
		return unparseableRubricFactor * float64(maxMarks), "Answer requires manual review. " + feedback
	}
	return marks, feedback
}

// lengthHeuristic awards partial credit by answer length when no rubric
// capability is available.
func lengthHeuristic(answer string, maxMarks int) (float64, string) {
	words := len(strings.Fields(answer))
	switch {
	case words < 10:
		return 0.3 * float64(maxMarks), "Answer is too brief. Please provide more detailed explanations."
	case words < 30:
		return 0.6 * float64(maxMarks), "Good attempt, but consider adding more depth to your answer."
	case words < 50:
		return 0.8 * float64(maxMarks), "Well-structured answer covering the main points."
	default:
		return 0.9 * float64(maxMarks), "Excellent comprehensive answer demonstrating thorough understanding."
	}
}

func clampMarks(marks float64, maxMarks int) float64 {
	if marks < 0 {
		marks = 0
	}
	if marks > float64(maxMarks) {
		marks = float64(maxMarks)
	}
	return math.Round(marks*10) / 10
}
