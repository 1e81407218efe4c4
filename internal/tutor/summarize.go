package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studyhub/internal/llm"
)

// Summary is a structured digest of uploaded notes.
type Summary struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"keyPoints"`
	SuggestedTopics []string `json:"suggestedTopics"`
}

// SummarySchema defines the JSON schema for note summarization responses.
var SummarySchema = &llm.Schema{
	Name:        "notes-summary",
	Description: "A structured summary of study notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "A concise paragraph summarizing the material",
			},
			"key_points": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The 3-7 most important facts or ideas, one per entry",
			},
			"suggested_topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Topics worth studying next, based on gaps in the material",
			},
		},
		"required":             []any{"summary", "key_points", "suggested_topics"},
		"additionalProperties": false,
	},
}

const summarizeSystemPrompt = `You summarize a student's study material.

Rules:
- Summarize only what the material says. Do not add outside facts.
- Key points are standalone statements a student could revise from directly.
- Suggested topics name adjacent or prerequisite areas the material implies but does not cover.`

// Summarize produces a structured summary of the given notes or attachment.
func (s *Service) Summarize(ctx context.Context, notes string, att *llm.Attachment) (*Summary, error) {
	if strings.TrimSpace(notes) == "" && att == nil {
		return nil, fmt.Errorf("no material: provide notes or an attachment")
	}

	ctx = llm.WithPurpose(ctx, "summary")

	content := s.clipNotes(notes)
	if content == "" {
		content = "(see the attached document)"
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: summarizeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Summarize this material:\n\n" + content},
		},
		Attachment:  att,
		Schema:      SummarySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize notes: %w", err)
	}

	var out struct {
		Summary         string   `json:"summary"`
		KeyPoints       []string `json:"key_points"`
		SuggestedTopics []string `json:"suggested_topics"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}

	return &Summary{
		Summary:         out.Summary,
		KeyPoints:       out.KeyPoints,
		SuggestedTopics: out.SuggestedTopics,
	}, nil
}
