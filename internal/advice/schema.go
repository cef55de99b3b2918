package advice

import "github.com/abhisek/shindan/internal/llm"

// Schema is the JSON schema the model must answer with.
var Schema = &llm.Schema{
	Name:        "character-advice",
	Description: "A hidden talent and one blunt, practical piece of advice for a quiz taker",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hiddenTalent": map[string]any{
				"type":        "string",
				"description": "One hidden talent visible in the answer pattern (1-2 sentences)",
			},
			"advice": map[string]any{
				"type":        "string",
				"description": "One concrete thing to try at work tomorrow (2-3 sentences)",
			},
		},
		"required":             []any{"hiddenTalent", "advice"},
		"additionalProperties": false,
	},
}
