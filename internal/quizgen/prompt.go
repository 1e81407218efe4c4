package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant creating quizzes from a student's own material.

Rules:
- Generate exactly the requested number of multiple-choice questions.
- Every question must be answerable from the provided material alone. Do not quiz on outside knowledge.
- Each question has exactly 4 options. Exactly one is correct, and the answer field repeats it verbatim.
- Distractors should be plausible misreadings of the material, not random values.
- Match the requested difficulty: "easy" tests recall, "medium" tests understanding, "hard" tests application across the material.
- Keep question and option text plain. No markdown, no numbering inside options.
- Include a one or two sentence explanation per question citing the relevant part of the material.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Questions: %d\n", input.NumQuestions)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	if input.Grade != "" {
		fmt.Fprintf(&b, "Grade level: %s\n", input.Grade)
	}

	content := input.Content
	if cfg.MaxContentChars > 0 && len(content) > cfg.MaxContentChars {
		content = content[:cfg.MaxContentChars]
	}

	b.WriteString("\nMaterial:\n")
	if content == "" && input.Attachment != nil {
		b.WriteString("(see the attached document)")
	} else {
		b.WriteString(content)
	}

	return b.String()
}
