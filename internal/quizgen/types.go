package quizgen

import (
	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
)

// GenerateInput carries everything the generator needs to produce a quiz.
type GenerateInput struct {
	// Content is the notes or textbook excerpt to quiz on.
	Content string

	// Attachment is an optional uploaded page (image or PDF) that
	// supplements or replaces Content.
	Attachment *llm.Attachment

	// NumQuestions is how many questions the quiz must contain.
	NumQuestions int

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string

	// Grade is the student's grade level, e.g. "10". Optional.
	Grade string
}

// Quiz is a generated, validated quiz ready to be taken.
type Quiz struct {
	Title     string
	Questions []progress.QuizQuestion
}
