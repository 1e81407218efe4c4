package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
)

// Generator produces quizzes from study material using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Title     string `json:"title"`
	Questions []struct {
		Text        string   `json:"text"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// Generate produces a validated quiz for the given input.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*Quiz, error) {
	if err := g.checkInput(input); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Attachment:  input.Attachment,
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	quiz := &Quiz{Title: raw.Title}
	for _, rq := range raw.Questions {
		quiz.Questions = append(quiz.Questions, progress.QuizQuestion{
			Text:        rq.Text,
			Options:     rq.Options,
			Answer:      rq.Answer,
			Explanation: rq.Explanation,
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(quiz, input); verr != nil {
			return nil, verr
		}
	}

	return quiz, nil
}

func (g *Generator) checkInput(input GenerateInput) error {
	if input.Content == "" && input.Attachment == nil {
		return fmt.Errorf("no study material: provide content or an attachment")
	}
	if input.NumQuestions < g.config.MinQuestions || input.NumQuestions > g.config.MaxQuestions {
		return fmt.Errorf("question count %d out of range [%d, %d]",
			input.NumQuestions, g.config.MinQuestions, g.config.MaxQuestions)
	}
	switch input.Difficulty {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("difficulty must be easy, medium, or hard; got %q", input.Difficulty)
	}
	return nil
}
