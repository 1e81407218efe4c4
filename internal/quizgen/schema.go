package quizgen

import "github.com/abhisek/studyhub/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "study-quiz",
	Description: "A multiple-choice quiz generated from study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short quiz title derived from the material",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question, self-contained and answerable from the material",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, exactly one correct",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct, in one or two sentences",
						},
					},
					"required":             []any{"text", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}
