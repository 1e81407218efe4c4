package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/abhisek/studyhub/internal/tutor"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the AI tutor",
	Long:  "Starts an interactive tutoring session on the terminal. Pass --notes to ground the tutor's answers in a notes file. An empty line or ctrl-d ends the session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var notes string
		if path, _ := cmd.Flags().GetString("notes"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read notes: %w", err)
			}
			notes = string(data)
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
		svc := tutor.NewService(provider, tutor.DefaultConfig())

		fmt.Println("Ask the tutor anything. An empty line ends the session.")

		var history []tutor.Turn
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				fmt.Println()
				break
			}
			msg := strings.TrimSpace(scanner.Text())
			if msg == "" {
				break
			}

			reply, err := svc.Chat(cmd.Context(), tutor.ChatInput{
				History: history,
				Message: msg,
				Notes:   notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("tutor> %s\n\n", reply)

			history = append(history,
				tutor.Turn{Role: "user", Content: msg},
				tutor.Turn{Role: "assistant", Content: reply})
		}
		return scanner.Err()
	},
}

func init() {
	tutorCmd.Flags().String("notes", "", "Path to a notes file to ground answers in")
}
