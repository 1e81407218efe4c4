package quizgen

import "fmt"

// StructuralValidator checks that the quiz honors the requested shape:
// the right number of questions, each with text, exactly 4 options, and
// no duplicate options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, input GenerateInput) *ValidationError {
	if len(q.Questions) != input.NumQuestions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, requested %d", len(q.Questions), input.NumQuestions),
			Retryable: true,
		}
	}
	for i, question := range q.Questions {
		if question.Text == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has empty text", i+1),
				Retryable: true,
			}
		}
		if len(question.Options) != 4 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want 4", i+1, len(question.Options)),
				Retryable: true,
			}
		}
		seen := make(map[string]bool, 4)
		for _, opt := range question.Options {
			if opt == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d has an empty option", i+1),
					Retryable: true,
				}
			}
			if seen[opt] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d has duplicate option %q", i+1, opt),
					Retryable: true,
				}
			}
			seen[opt] = true
		}
	}
	return nil
}

// AnswerValidator checks that every answer is a member of its question's
// options. A quiz where the right answer cannot be picked is unusable.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *Quiz, _ GenerateInput) *ValidationError {
	for i, question := range q.Questions {
		found := false
		for _, opt := range question.Options {
			if opt == question.Answer {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d answer %q is not among its options", i+1, question.Answer),
				Retryable: true,
			}
		}
	}
	return nil
}
