package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanfocus/cleanfocus/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.Attempts().Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		if len(attempts) == 0 {
			fmt.Println("No completed assessments yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-28s  %-16s  %s\n",
			"ID", "Completed", "Module", "Scholar", "Score")
		for _, a := range attempts {
			scholar := a.Scholar
			if scholar == "" {
				scholar = "-"
			}
			fmt.Printf("%-5d  %-19s  %-28s  %-16s  %d/%d\n",
				a.ID,
				a.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				a.Module,
				scholar,
				a.Score, a.Total)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show")
}

// openStoreFromFlags resolves the database path from the --db flag or
// the defaults and opens it.
func openStoreFromFlags(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" || path == "off" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
