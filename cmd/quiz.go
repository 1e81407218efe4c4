package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/quizgen"
	"github.com/abhisek/studyhub/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [notes-file]",
	Short: "Generate a quiz from a notes file",
	Long:  "Generates a multiple-choice quiz from the given notes file and prints it, without touching any user's record.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read notes: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			return err
		}

		n, _ := cmd.Flags().GetInt("questions")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		gen := quizgen.New(provider, quizgen.DefaultConfig())
		quiz, err := gen.Generate(cmd.Context(), quizgen.GenerateInput{
			Content:      string(notes),
			NumQuestions: n,
			Difficulty:   difficulty,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n\n", quiz.Title, strings.Repeat("=", len(quiz.Title)))
		for i, q := range quiz.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for j, opt := range q.Options {
				fmt.Printf("   %c) %s\n", 'a'+j, opt)
			}
			fmt.Printf("   Answer: %s\n", q.Answer)
			if q.Explanation != "" {
				fmt.Printf("   %s\n", q.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().Int("questions", 5, "Number of questions to generate")
	quizCmd.Flags().String("difficulty", "medium", "Quiz difficulty: easy, medium, or hard")
}
