package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/studyhub/internal/llm"
)

func TestChat(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`The mitochondria produces ATP through cellular respiration.`),
	})
	svc := NewService(mock, DefaultConfig())

	reply, err := svc.Chat(context.Background(), ChatInput{
		History: []Turn{
			{Role: "user", Content: "What does the nucleus do?"},
			{Role: "assistant", Content: "It stores the cell's DNA."},
		},
		Message: "And the mitochondria?",
		Notes:   "Cell organelles: nucleus stores DNA, mitochondria produces ATP.",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(reply, "ATP") {
		t.Errorf("reply = %q", reply)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("chat must not apply a schema")
	}
	if !strings.Contains(req.System, "mitochondria produces ATP") {
		t.Error("notes missing from system prompt")
	}
	if len(req.Messages) != 3 {
		t.Fatalf("messages = %d, want 3", len(req.Messages))
	}
	if req.Messages[1].Role != llm.RoleAssistant {
		t.Errorf("history role = %q", req.Messages[1].Role)
	}
	if req.Messages[2].Content != "And the mitochondria?" {
		t.Errorf("latest message = %q", req.Messages[2].Content)
	}
}

func TestChatUnquotesJSONString(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Line one.\nLine two."`),
	})
	svc := NewService(mock, DefaultConfig())

	reply, err := svc.Chat(context.Background(), ChatInput{Message: "hi"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "Line one.\nLine two." {
		t.Errorf("reply = %q", reply)
	}
}

func TestChatTrimsHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`ok`)})
	cfg := DefaultConfig()
	cfg.MaxHistory = 4
	svc := NewService(mock, cfg)

	var history []Turn
	for i := 0; i < 10; i++ {
		history = append(history, Turn{Role: "user", Content: "old"})
	}
	history = append(history, Turn{Role: "user", Content: "recent"})

	if _, err := svc.Chat(context.Background(), ChatInput{History: history, Message: "now"}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	req := mock.Calls[0]
	if len(req.Messages) != 5 { // 4 kept turns + latest
		t.Fatalf("messages = %d, want 5", len(req.Messages))
	}
	if req.Messages[3].Content != "recent" {
		t.Errorf("newest history turn not kept: %q", req.Messages[3].Content)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())
	if _, err := svc.Chat(context.Background(), ChatInput{Message: "   "}); err == nil {
		t.Error("chat accepted a blank message")
	}
}

func TestSummarize(t *testing.T) {
	raw := json.RawMessage(`{
		"summary": "The notes cover cell organelles and their roles.",
		"key_points": ["Nucleus stores DNA", "Mitochondria produces ATP"],
		"suggested_topics": ["Cellular respiration"]
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	svc := NewService(mock, DefaultConfig())

	sum, err := svc.Summarize(context.Background(), "Cell organelle notes...", nil)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sum.KeyPoints) != 2 {
		t.Errorf("key points = %v", sum.KeyPoints)
	}
	if sum.SuggestedTopics[0] != "Cellular respiration" {
		t.Errorf("topics = %v", sum.SuggestedTopics)
	}
	if mock.Calls[0].Schema != SummarySchema {
		t.Error("summarize must request the summary schema")
	}
}

func TestSummarizeRequiresMaterial(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())
	if _, err := svc.Summarize(context.Background(), "", nil); err == nil {
		t.Error("summarize accepted empty material")
	}
}
