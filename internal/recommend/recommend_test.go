package recommend

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
)

func sampleRecord(t *testing.T) progress.Record {
	t.Helper()
	day, err := progress.ParseDay("2024-05-03")
	if err != nil {
		t.Fatal(err)
	}
	rec := progress.Empty()
	rec.SubjectMastery = []progress.SubjectMastery{
		{SubjectID: "math", SubjectName: "Mathematics", Progress: 35},
		{SubjectID: "bio", SubjectName: "Biology", Progress: 80},
	}
	rec.QuizHistory = []progress.QuizResult{
		{QuizID: "q1", Score: 2, TotalQuestions: 5, Difficulty: "medium", GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	rec.Exams = []progress.ScheduledItem{
		{ID: "e1", SubjectID: "math", SubjectName: "Mathematics", Title: "Algebra midterm", Date: day},
	}
	return rec
}

func TestGenerate(t *testing.T) {
	raw := json.RawMessage(`{"recommendations":[
		{"type":"review","subject_id":"math","title":"Review algebra before the midterm","reason":"Mastery is 35% with an exam on 2024-05-03.","priority":"high"},
		{"type":"practice","subject_id":"math","title":"Take a medium algebra quiz","reason":"Last quiz scored 2/5.","priority":"medium"}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	recs, err := gen.Generate(context.Background(), sampleRecord(t), now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("recs = %d", len(recs))
	}
	if recs[0].Priority != "high" || recs[0].SubjectID != "math" {
		t.Errorf("rec = %+v", recs[0])
	}
	if recs[0].ID == "" || recs[0].ID == recs[1].ID {
		t.Error("recommendations need unique ids")
	}
	if !recs[0].GeneratedAt.Equal(now) {
		t.Errorf("generatedAt = %v", recs[0].GeneratedAt)
	}

	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Mathematics (math): 35%", "2/5 (medium)", "Algebra midterm"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if mock.Calls[0].Schema != RecommendationSchema {
		t.Error("request missing recommendation schema")
	}
}

func TestGenerateCapsCount(t *testing.T) {
	var items []string
	for i := 0; i < 8; i++ {
		items = append(items, `{"type":"review","subject_id":"","title":"t","reason":"r","priority":"low"}`)
	}
	raw := json.RawMessage(`{"recommendations":[` + strings.Join(items, ",") + `]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})

	cfg := DefaultConfig()
	cfg.MaxRecommendations = 3
	gen := New(mock, cfg)

	recs, err := gen.Generate(context.Background(), progress.Empty(), time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("recs = %d, want capped at 3", len(recs))
	}
}
