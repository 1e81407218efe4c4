package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a user's progress record",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			return fmt.Errorf("--user is required")
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete %s's record without --yes", user)
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

		res, err := st.DB().ExecContext(cmd.Context(),
			"DELETE FROM progress_records WHERE owner_id = ?", user)
		if err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			fmt.Printf("No record found for %s.\n", user)
		} else {
			fmt.Printf("Deleted progress record for %s.\n", user)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().String("user", "", "User ID whose record to delete")
	resetCmd.Flags().Bool("yes", false, "Confirm the deletion")
}
