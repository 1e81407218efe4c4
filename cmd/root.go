package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyhub",
	Short: "AI study assistant backend",
	Long:  "StudyHub — quiz generation, AI tutoring, and progress tracking for students, served over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYHUB_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYHUB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
