// Package recommend generates study recommendations from the student's
// progress record.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
)

// Config controls recommendation generation.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxRecommendations bounds how many suggestions are requested.
	MaxRecommendations int

	// RecentQuizzes is how many of the latest quiz results are
	// described in the prompt.
	RecentQuizzes int
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:          2048,
		Temperature:        0.5,
		MaxRecommendations: 5,
		RecentQuizzes:      10,
	}
}

// RecommendationSchema defines the JSON schema for recommendation responses.
var RecommendationSchema = &llm.Schema{
	Name:        "study-recommendations",
	Description: "Prioritized study recommendations based on a student's progress",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"review", "practice", "schedule"},
							"description": "review weak material, practice with a quiz, or schedule study time",
						},
						"subject_id": map[string]any{
							"type":        "string",
							"description": "The subject this applies to, or empty if general",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "A short actionable instruction, e.g. 'Review fractions before Friday's exam'",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "One sentence explaining what in the progress data prompted this",
						},
						"priority": map[string]any{
							"type": "string",
							"enum": []any{"high", "medium", "low"},
						},
					},
					"required":             []any{"type", "subject_id", "title", "reason", "priority"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"recommendations"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a study coach. Given a student's progress data, suggest what to do next.

Rules:
- Base every suggestion on the data: low quiz scores, declining subjects, stale planner entries, upcoming homework and exams.
- Prioritize upcoming deadlines over general revision.
- Suggestions must be concrete and doable in one sitting. "Study more" is not a suggestion.
- Never suggest more than the requested number of recommendations. Fewer is fine when the data is thin.`

// Generator produces recommendations via the LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a recommendation generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate builds recommendations from the current record. Entries get
// fresh IDs and timestamps; the caller stores the list wholesale via
// progress.SetRecommendations.
func (g *Generator) Generate(ctx context.Context, rec progress.Record, now time.Time) ([]progress.Recommendation, error) {
	ctx = llm.WithPurpose(ctx, "recommend")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: describeRecord(rec, g.cfg, now)},
		},
		Schema:      RecommendationSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var out struct {
		Recommendations []struct {
			Type      string `json:"type"`
			SubjectID string `json:"subject_id"`
			Title     string `json:"title"`
			Reason    string `json:"reason"`
			Priority  string `json:"priority"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}

	items := out.Recommendations
	if g.cfg.MaxRecommendations > 0 && len(items) > g.cfg.MaxRecommendations {
		items = items[:g.cfg.MaxRecommendations]
	}

	recs := make([]progress.Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, progress.Recommendation{
			ID:          uuid.NewString(),
			Type:        item.Type,
			SubjectID:   item.SubjectID,
			Title:       item.Title,
			Reason:      item.Reason,
			Priority:    item.Priority,
			GeneratedAt: now,
		})
	}
	return recs, nil
}

// describeRecord renders the parts of the record the coach needs as a
// compact plain-text digest. Raw JSON wastes tokens on field names the
// model does not need.
func describeRecord(rec progress.Record, cfg Config, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today: %s\n", progress.DayOf(now))
	fmt.Fprintf(&b, "Max recommendations: %d\n", cfg.MaxRecommendations)

	b.WriteString("\nSubject mastery:\n")
	if len(rec.SubjectMastery) == 0 {
		b.WriteString("none tracked yet\n")
	}
	for _, sm := range rec.SubjectMastery {
		fmt.Fprintf(&b, "- %s (%s): %d%%\n", sm.SubjectName, sm.SubjectID, sm.Progress)
	}

	quizzes := rec.QuizHistory
	if cfg.RecentQuizzes > 0 && len(quizzes) > cfg.RecentQuizzes {
		quizzes = quizzes[len(quizzes)-cfg.RecentQuizzes:]
	}
	b.WriteString("\nRecent quizzes:\n")
	if len(quizzes) == 0 {
		b.WriteString("none taken yet\n")
	}
	for _, q := range quizzes {
		fmt.Fprintf(&b, "- %s: %d/%d (%s)\n",
			progress.DayOf(q.GeneratedAt), q.Score, q.TotalQuestions, q.Difficulty)
	}

	b.WriteString("\nPlanner:\n")
	if len(rec.StudyPlanner) == 0 {
		b.WriteString("empty\n")
	}
	for _, task := range rec.StudyPlanner {
		state := "pending"
		if task.Completed {
			state = "done"
		}
		fmt.Fprintf(&b, "- %s: %s [%s]\n", task.Date, task.Task, state)
	}

	b.WriteString("\nUpcoming homework:\n")
	if len(rec.Homework) == 0 {
		b.WriteString("none\n")
	}
	for _, hw := range rec.Homework {
		if hw.Completed {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", hw.Date, hw.Title, hw.SubjectName)
	}

	b.WriteString("\nUpcoming exams:\n")
	if len(rec.Exams) == 0 {
		b.WriteString("none\n")
	}
	for _, ex := range rec.Exams {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", ex.Date, ex.Title, ex.SubjectName)
	}

	return b.String()
}
