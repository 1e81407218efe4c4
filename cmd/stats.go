package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
	"github.com/abhisek/studyhub/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics and LLM spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		days, _ := cmd.Flags().GetInt("days")
		since := time.Now().AddDate(0, 0, -days)

		if user, _ := cmd.Flags().GetString("user"); user != "" {
			rec, found, err := st.RecordRepo().Get(cmd.Context(), user)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("No progress recorded for %s yet.\n\n", user)
			} else {
				printProgress(user, rec)
			}
		}

		usage, err := st.EventRepo().UsageSince(cmd.Context(), since)
		if err != nil {
			return err
		}
		printUsage(usage, days)
		return nil
	},
}

func printProgress(user string, rec progress.Record) {
	sum := analytics.Summarize(rec, progress.DayOf(time.Now().UTC()))

	fmt.Printf("Progress for %s\n", user)
	fmt.Printf("  Quizzes taken:   %d (average %.0f%%)\n", sum.QuizzesTaken, sum.AveragePercent)
	fmt.Printf("  Planner (28d):   %d/%d tasks done\n", sum.PlannerDone, sum.PlannerTotal)
	fmt.Printf("  Homework due:    %d\n", sum.PendingHomework)
	fmt.Printf("  Upcoming exams:  %d\n", sum.UpcomingExams)
	for _, subj := range sum.Subjects {
		fmt.Printf("  %-16s %.0f%%\n", subj.SubjectName, subj.Percent)
	}
	fmt.Println()
}

func printUsage(usage []store.LLMUsage, days int) {
	fmt.Printf("LLM usage (last %d days)\n", days)
	if len(usage) == 0 {
		fmt.Println("  no requests recorded")
		return
	}

	var totalCost float64
	costKnown := true
	for _, u := range usage {
		line := fmt.Sprintf("  %-28s %5d requests  %8d in  %8d out",
			u.Model, u.Requests, u.InputTokens, u.OutputTokens)
		if u.Failures > 0 {
			line += fmt.Sprintf("  (%d failed)", u.Failures)
		}
		if cost := llm.LookupCost(u.Model); cost != nil {
			c := cost.Cost(u.InputTokens, u.OutputTokens)
			totalCost += c
			line += fmt.Sprintf("  $%.4f", c)
		} else {
			costKnown = false
		}
		fmt.Println(line)
	}
	if costKnown {
		fmt.Printf("  total spend: $%.4f\n", totalCost)
	} else {
		fmt.Printf("  total spend: at least $%.4f (some models have no pricing data)\n", totalCost)
	}
}

func init() {
	statsCmd.Flags().String("user", "", "Show progress for this user ID")
	statsCmd.Flags().Int("days", 30, "How many days of LLM usage to include")
}
