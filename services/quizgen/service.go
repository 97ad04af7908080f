package quizgen

import (
	"context"
	"fmt"
	"log"

	"edupilot/models"
	"edupilot/services/ai"
)

// Scheme fixes the per-type point values and difficulty tags for one
// generation context. Quizzes and assignments share the generator but carry
// different schemes.
type Scheme struct {
	Name       string
	Points     map[models.QuestionType]int
	Difficulty map[models.QuestionType]string
}

var QuizScheme = Scheme{
	Name: "quiz",
	Points: map[models.QuestionType]int{
		models.MultipleChoice: 10,
		models.TrueFalse:      5,
		models.ShortAnswer:    15,
		models.LongAnswer:     20,
	},
	Difficulty: map[models.QuestionType]string{
		models.MultipleChoice: "medium",
		models.TrueFalse:      "easy",
		models.ShortAnswer:    "hard",
		models.LongAnswer:     "hard",
	},
}

var AssignmentScheme = Scheme{
	Name: "assignment",
	Points: map[models.QuestionType]int{
		models.MultipleChoice: 2,
		models.TrueFalse:      1,
		models.ShortAnswer:    5,
		models.LongAnswer:     10,
	},
	Difficulty: map[models.QuestionType]string{
		models.MultipleChoice: "medium",
		models.TrueFalse:      "easy",
		models.ShortAnswer:    "medium",
		models.LongAnswer:     "hard",
	},
}

// Generator produces question sets from source text, preferring the AI
// capability and degrading to deterministic templates. Generation never
// fails outright.
type Generator struct {
	ai *ai.Client
}

func NewGenerator(aiClient *ai.Client) *Generator {
	return &Generator{ai: aiClient}
}

// Generate returns exactly count questions across the requested types.
// The AI strategy is tried first; on any capability or parse failure, or
// when it returns too few questions, the deterministic strategy fills the
// gap. The result is always sliced to count and renumbered q1..qN.
func (g *Generator) Generate(ctx context.Context, text string, types []models.QuestionType, count int, scheme Scheme, difficulty string) []models.Question {
	if count < 1 {
		count = 1
	}
	if len(types) == 0 {
		types = []models.QuestionType{models.MultipleChoice}
	}

	var questions []models.Question
	if g.ai.TextAvailable() {
		generated, err := g.aiGenerate(ctx, text, types, count, scheme, difficulty)
		if err != nil {
			log.Printf("[WARN] AI %s generation failed, falling back to templates: %v", scheme.Name, err)
		} else {
			questions = generated
		}
	}

	if len(questions) < count {
		missing := count - len(questions)
		log.Printf("[INFO] Filling %d %s question(s) from deterministic templates", missing, scheme.Name)
		questions = append(questions, FallbackQuestions(types, missing, scheme, difficulty)...)
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	for i := range questions {
		questions[i].ID = fmt.Sprintf("q%d", i+1)
	}
	return questions
}
