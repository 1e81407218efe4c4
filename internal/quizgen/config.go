package quizgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated quiz. They execute in order; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars truncates the material excerpt sent in the prompt.
	MaxContentChars int

	// MinQuestions and MaxQuestions bound the accepted request range.
	MinQuestions int
	MaxQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
		},
		MaxTokens:       4096,
		Temperature:     0.7,
		MaxContentChars: 24_000,
		MinQuestions:    1,
		MaxQuestions:    20,
	}
}
