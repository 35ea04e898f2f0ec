package sentence

import "github.com/abhisek/hanzi/internal/llm"

// SentenceSchema is the structured response requested from the model.
var SentenceSchema = &llm.Schema{
	Name:        "sentence-pair",
	Description: "A short Chinese sentence and its English translation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"native": map[string]any{
				"type":        "string",
				"description": "The sentence in simplified Chinese characters",
			},
			"gloss": map[string]any{
				"type":        "string",
				"description": "A natural English translation of the sentence",
			},
		},
		"required":             []any{"native", "gloss"},
		"additionalProperties": false,
	},
}
