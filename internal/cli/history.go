package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/services"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			events, err := services.NewProgressService(s.Progress, s.History).History(commandContext(cmd), userID(cmd), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No answers recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-19s  %-11s  %-9s  %5s  %-7s  %s\n", "Time", "Mode", "Tier", "Level", "Result", "Seconds")
			fmt.Fprintln(out, strings.Repeat("─", 70))
			for _, e := range events {
				result := "✓"
				if !e.Correct {
					result = "✗"
				}
				fmt.Fprintf(out, "%-19s  %-11s  %-9s  %5d  %-7s  %.1f\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					e.Mode, e.Difficulty, e.Level, result, e.TimeSeconds)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Number of answers to show")
	return cmd
}
