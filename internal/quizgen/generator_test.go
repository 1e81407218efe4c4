package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
)

const photosynthesisNotes = `Photosynthesis converts light energy into chemical energy.
It takes place in the chloroplasts and produces glucose and oxygen.`

func goodQuizJSON(n int) json.RawMessage {
	type q struct {
		Text        string   `json:"text"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	}
	out := struct {
		Title     string `json:"title"`
		Questions []q    `json:"questions"`
	}{Title: "Photosynthesis"}
	for i := 0; i < n; i++ {
		out.Questions = append(out.Questions, q{
			Text:        "Where does photosynthesis take place?",
			Options:     []string{"Chloroplasts", "Mitochondria", "Nucleus", "Ribosomes"},
			Answer:      "Chloroplasts",
			Explanation: "The notes state it takes place in the chloroplasts.",
		})
	}
	raw, _ := json.Marshal(out)
	return raw
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: goodQuizJSON(3)})
	gen := New(mock, DefaultConfig())

	quiz, err := gen.Generate(context.Background(), GenerateInput{
		Content:      photosynthesisNotes,
		NumQuestions: 3,
		Difficulty:   "medium",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if quiz.Title != "Photosynthesis" {
		t.Errorf("title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(quiz.Questions))
	}
	if quiz.Questions[0].Answer != "Chloroplasts" {
		t.Errorf("answer = %q", quiz.Questions[0].Answer)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("request missing quiz schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Questions: 3") || !strings.Contains(msg, "Difficulty: medium") {
		t.Errorf("prompt missing request parameters:\n%s", msg)
	}
	if !strings.Contains(msg, "chloroplasts") {
		t.Errorf("prompt missing material:\n%s", msg)
	}
}

func TestGenerateRejectsWrongQuestionCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: goodQuizJSON(2)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Content:      photosynthesisNotes,
		NumQuestions: 5,
		Difficulty:   "easy",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Validator != "structural" {
		t.Errorf("validator = %q", verr.Validator)
	}
}

func TestGenerateRejectsAnswerOutsideOptions(t *testing.T) {
	raw := json.RawMessage(`{"title":"t","questions":[{
		"text":"Where?",
		"options":["A","B","C","D"],
		"answer":"Chloroplasts",
		"explanation":"x"
	}]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Content:      photosynthesisNotes,
		NumQuestions: 1,
		Difficulty:   "easy",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Validator != "answer" {
		t.Errorf("validator = %q", verr.Validator)
	}
}

func TestGenerateInputChecks(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())
	ctx := context.Background()

	cases := []GenerateInput{
		{NumQuestions: 5, Difficulty: "easy"},                                        // no material
		{Content: "x", NumQuestions: 0, Difficulty: "easy"},                          // count too low
		{Content: "x", NumQuestions: 50, Difficulty: "easy"},                         // count too high
		{Content: "x", NumQuestions: 5, Difficulty: "impossible"},                    // bad difficulty
		{Content: "", Attachment: nil, NumQuestions: 5, Difficulty: "medium"},        // still no material
	}
	for i, input := range cases {
		if _, err := gen.Generate(ctx, input); err == nil {
			t.Errorf("case %d: generate accepted invalid input %+v", i, input)
		}
	}
}

func TestGenerateAttachmentOnly(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: goodQuizJSON(1)})
	gen := New(mock, DefaultConfig())

	att := &llm.Attachment{MIMEType: "image/png", Data: "aGVsbG8="}
	_, err := gen.Generate(context.Background(), GenerateInput{
		Attachment:   att,
		NumQuestions: 1,
		Difficulty:   "easy",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if mock.Calls[0].Attachment != att {
		t.Error("attachment not forwarded to provider")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "attached document") {
		t.Error("prompt should point at the attachment when content is empty")
	}
}

func TestStructuralValidatorOptionChecks(t *testing.T) {
	input := GenerateInput{NumQuestions: 1}
	v := &StructuralValidator{}

	tests := []struct {
		name    string
		options []string
	}{
		{"three options", []string{"A", "B", "C"}},
		{"five options", []string{"A", "B", "C", "D", "E"}},
		{"duplicate option", []string{"A", "A", "C", "D"}},
		{"empty option", []string{"A", "", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quiz{Questions: []progress.QuizQuestion{{Text: "q", Options: tt.options, Answer: "A"}}}
			if verr := v.Validate(q, input); verr == nil {
				t.Errorf("options %v passed structural validation", tt.options)
			}
		})
	}
}
