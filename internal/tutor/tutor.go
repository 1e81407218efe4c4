// Package tutor provides the AI study tutor: multi-turn chat grounded in
// the student's own notes, and note summarization.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studyhub/internal/llm"
)

// Config controls tutor generation.
type Config struct {
	// MaxTokens is the token budget for a single reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MaxHistory is how many prior turns are kept in the prompt.
	// Older turns are dropped from the front.
	MaxHistory int

	// MaxContextChars truncates the notes context placed in the
	// system prompt.
	MaxContextChars int
}

// DefaultConfig returns recommended tutor defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       1024,
		Temperature:     0.7,
		MaxHistory:      20,
		MaxContextChars: 16_000,
	}
}

// Service answers tutoring questions via the LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Turn is one message of a chat conversation.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatInput carries a chat request: the conversation so far plus optional
// notes the answers should be grounded in.
type ChatInput struct {
	History    []Turn
	Message    string
	Notes      string
	Attachment *llm.Attachment
}

const chatSystemPrompt = `You are a patient study tutor helping a student understand their own material.

Rules:
- Ground your answers in the student's notes when notes are provided. If the notes do not cover the question, say so before answering from general knowledge.
- Explain step by step. Prefer guiding questions over giving the final answer outright when the student is working through a problem.
- Keep replies focused and conversational. Plain text only.
- If the student seems stuck or frustrated, break the problem into a smaller first step.`

// Chat produces the tutor's reply to the latest message. Replies are plain
// text; no schema is applied.
func (s *Service) Chat(ctx context.Context, input ChatInput) (string, error) {
	if strings.TrimSpace(input.Message) == "" {
		return "", fmt.Errorf("empty message")
	}

	ctx = llm.WithPurpose(ctx, "tutor")

	system := chatSystemPrompt
	if notes := s.clipNotes(input.Notes); notes != "" {
		system += "\n\nThe student's notes:\n" + notes
	}

	history := input.History
	if s.cfg.MaxHistory > 0 && len(history) > s.cfg.MaxHistory {
		history = history[len(history)-s.cfg.MaxHistory:]
	}

	var messages []llm.Message
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input.Message})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		Attachment:  input.Attachment,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	reply := strings.TrimSpace(textContent(resp))
	if reply == "" {
		return "", fmt.Errorf("tutor returned an empty reply")
	}
	return reply, nil
}

func (s *Service) clipNotes(notes string) string {
	if s.cfg.MaxContextChars > 0 && len(notes) > s.cfg.MaxContextChars {
		return notes[:s.cfg.MaxContextChars]
	}
	return notes
}

// textContent extracts the plain-text body from a schemaless response.
// Providers return the raw text in Content; it may or may not be quoted JSON.
func textContent(resp *llm.Response) string {
	raw := string(resp.Content)
	// Unquote if the provider wrapped plain text as a JSON string.
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		var s string
		if err := json.Unmarshal(resp.Content, &s); err == nil {
			return s
		}
	}
	return raw
}
