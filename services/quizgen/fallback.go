package quizgen

import (
	"fmt"

	"edupilot/models"
)

// FallbackQuestions builds count deterministic template questions spread
// across the requested types. The per-type quota is count/len(types) with the
// remainder going to the earlier types, raised to at least one while
// questions remain, so every requested type appears when count allows.
func FallbackQuestions(types []models.QuestionType, count int, scheme Scheme, difficulty string) []models.Question {
	if count < 1 {
		count = 1
	}
	if len(types) == 0 {
		types = []models.QuestionType{models.MultipleChoice}
	}

	base := count / len(types)
	extra := count % len(types)

	questions := make([]models.Question, 0, count)
	remaining := count
	for i, t := range types {
		if remaining == 0 {
			break
		}
		quota := base
		if i < extra {
			quota++
		}
		if quota == 0 {
			quota = 1
		}
		if quota > remaining {
			quota = remaining
		}
		for n := 0; n < quota; n++ {
			topic := len(questions) + 1
			questions = append(questions, templateQuestion(t, topic, scheme, difficulty))
		}
		remaining -= quota
	}

	return questions[:count]
}

func templateQuestion(t models.QuestionType, topic int, scheme Scheme, difficulty string) models.Question {
	if difficulty == "" {
		difficulty = scheme.Difficulty[t]
	}
	q := models.Question{
		ID:         fmt.Sprintf("q%d", topic),
		Type:       t,
		Difficulty: difficulty,
		Points:     scheme.Points[t],
	}

	switch t {
	case models.MultipleChoice:
		correct := 0
		q.Prompt = fmt.Sprintf("What is the main concept discussed in topic %d of the content?", topic)
		q.Options = []string{"Concept A", "Concept B", "Concept C", "Concept D"}
		q.CorrectIndex = &correct
		q.Explanation = "This concept is central to the material covered in this section."
	case models.TrueFalse:
		answer := topic%2 == 1
		q.Prompt = fmt.Sprintf("The concept mentioned in section %d is fundamental to understanding the topic.", topic)
		q.CorrectBool = &answer
		q.Explanation = "The statement reflects how the section relates to the overall topic."
	case models.ShortAnswer:
		q.Prompt = fmt.Sprintf("Explain the key principle discussed in the content regarding topic %d.", topic)
		q.CorrectText = "The key principle involves understanding the fundamental concepts and their practical applications."
		q.Explanation = "A complete answer names the principle and connects it to an application."
		q.MarkingScheme = fmt.Sprintf("%d marks total: identify the principle, explain it, and give one application.", q.Points)
	case models.LongAnswer:
		q.Prompt = fmt.Sprintf("Critically analyze the methodology presented in section %d. Discuss its strengths, limitations, and potential improvements.", topic)
		q.CorrectText = "A thorough analysis covers the methodology's approach, evaluates its strengths and weaknesses with evidence, and proposes concrete improvements."
		q.Explanation = "Strong answers balance strengths against limitations and justify each improvement."
		q.MarkingScheme = fmt.Sprintf("%d marks total: description of the methodology, balanced evaluation, and well-argued improvements.", q.Points)
	}
	return q
}
