package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"edupilot/models"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

const GENERATION_SYSTEM_PROMPT = "You are an expert educator who writes assessment questions. You respond with a single JSON array of question objects and nothing else: no prose, no markdown fences."

// questionPayload is the wire shape the model is asked to produce. Its JSON
// schema is embedded in the prompt so the structure is spelled out once,
// mechanically, rather than described in prose.
type questionPayload struct {
	ID            string   `json:"id" jsonschema:"description=Question identifier such as q1"`
	Type          string   `json:"type" jsonschema:"enum=multiple_choice,enum=true_false,enum=short_answer,enum=long_answer"`
	Question      string   `json:"question" jsonschema:"description=The question text"`
	Options       []string `json:"options,omitempty" jsonschema:"description=Exactly 4 options for multiple_choice questions"`
	CorrectAnswer any      `json:"correctAnswer" jsonschema:"description=Letter A-D for multiple_choice; true or false for true_false; a model answer string for subjective questions"`
	Explanation   string   `json:"explanation,omitempty" jsonschema:"description=Short explanation of the correct answer"`
	MarkingScheme string   `json:"markingScheme,omitempty" jsonschema:"description=Marking guidance for subjective questions"`
}

func questionSchemaJSON() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&questionPayload{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func typeInstructions(types []models.QuestionType, scheme Scheme) string {
	lines := make([]string, 0, len(types))
	for _, t := range types {
		switch t {
		case models.MultipleChoice:
			lines = append(lines, fmt.Sprintf("- multiple_choice: exactly 4 options, correctAnswer is the letter A-D, worth %d points", scheme.Points[t]))
		case models.TrueFalse:
			lines = append(lines, fmt.Sprintf("- true_false: correctAnswer is the boolean true or false, worth %d points", scheme.Points[t]))
		case models.ShortAnswer:
			lines = append(lines, fmt.Sprintf("- short_answer: correctAnswer is a concise model answer, include a markingScheme, worth %d points", scheme.Points[t]))
		case models.LongAnswer:
			lines = append(lines, fmt.Sprintf("- long_answer: correctAnswer is a detailed model answer, include a markingScheme, worth %d points", scheme.Points[t]))
		}
	}
	return strings.Join(lines, "\n")
}

func buildGenerationPrompt(text string, types []models.QuestionType, count int, scheme Scheme, difficulty string) string {
	typeNames := lo.Map(types, func(t models.QuestionType, _ int) string {
		return string(t)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d %s questions based on the following educational content.\n\n", count, scheme.Name)
	fmt.Fprintf(&b, "Content:\n%s\n\n", text)
	fmt.Fprintf(&b, "Distribute the questions across these types: %s.\n", strings.Join(typeNames, ", "))
	if difficulty != "" {
		fmt.Fprintf(&b, "Target difficulty: %s.\n", difficulty)
	}
	fmt.Fprintf(&b, "\nRequirements per type:\n%s\n\n", typeInstructions(types, scheme))
	fmt.Fprintf(&b, "Respond with a JSON array where every element matches this schema:\n%s\n", questionSchemaJSON())
	return b.String()
}
