package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"edupilot/models"
	"edupilot/services/ai"
)

const (
	// generationInputLimit bounds the content prefix sent to the model.
	generationInputLimit = 3000
	generationMaxTokens  = 3000
	generationTemp       = 0.7
)

// aiGenerate asks the text capability for a question set and parses the
// response. Any structural problem reports ErrMalformed; the caller treats
// that the same as an unavailable capability.
func (g *Generator) aiGenerate(ctx context.Context, text string, types []models.QuestionType, count int, scheme Scheme, difficulty string) ([]models.Question, error) {
	prompt := buildGenerationPrompt(contentPrefix(text, generationInputLimit), types, count, scheme, difficulty)

	raw, err := g.ai.Complete(ctx, GENERATION_SYSTEM_PROMPT, prompt, generationTemp, generationMaxTokens)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(raw, scheme)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] AI generated %d of %d requested %s questions", len(questions), count, scheme.Name)
	return questions, nil
}

// parseQuestions extracts the JSON array between the first '[' and the last
// ']' in the completion, tolerating surrounding prose or markdown fences.
func parseQuestions(raw string, scheme Scheme) ([]models.Question, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in completion: %w", ai.ErrMalformed)
	}

	var payloads []questionPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payloads); err != nil {
		return nil, fmt.Errorf("question array did not decode (%v): %w", err, ai.ErrMalformed)
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("question array was empty: %w", ai.ErrMalformed)
	}

	questions := make([]models.Question, 0, len(payloads))
	for i, p := range payloads {
		q, err := normalizeQuestion(p, i, scheme)
		if err != nil {
			log.Printf("[WARN] Skipping unusable generated question %d: %v", i+1, err)
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable questions in completion: %w", ai.ErrMalformed)
	}
	return questions, nil
}

// normalizeQuestion converts one wire payload into a validated Question,
// resolving letter answers to option indexes and boolean strings to booleans.
func normalizeQuestion(p questionPayload, pos int, scheme Scheme) (models.Question, error) {
	qType := models.QuestionType(p.Type)
	q := models.Question{
		ID:            p.ID,
		Type:          qType,
		Prompt:        strings.TrimSpace(p.Question),
		Options:       p.Options,
		Explanation:   strings.TrimSpace(p.Explanation),
		MarkingScheme: strings.TrimSpace(p.MarkingScheme),
		Difficulty:    scheme.Difficulty[qType],
		Points:        scheme.Points[qType],
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("q%d", pos+1)
	}

	switch qType {
	case models.MultipleChoice:
		switch v := p.CorrectAnswer.(type) {
		case string:
			if idx, ok := models.OptionIndex(p.Options, v); ok {
				q.CorrectIndex = &idx
			}
		case float64:
			idx := int(v)
			if idx >= 0 && idx < len(p.Options) {
				q.CorrectIndex = &idx
			}
		}
	case models.TrueFalse:
		switch v := p.CorrectAnswer.(type) {
		case bool:
			q.CorrectBool = &v
		case string:
			b := strings.EqualFold(strings.TrimSpace(v), "true")
			q.CorrectBool = &b
		}
	case models.ShortAnswer, models.LongAnswer:
		if s, ok := p.CorrectAnswer.(string); ok {
			q.CorrectText = strings.TrimSpace(s)
		}
	}

	if err := q.Validate(); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

func contentPrefix(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
