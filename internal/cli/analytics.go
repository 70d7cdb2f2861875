package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/services"
)

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show accuracy and play time per game",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			svc := services.NewProgressService(s.Progress, s.History)
			a, err := svc.GetAnalytics(commandContext(cmd), userID(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			}

			fmt.Fprintf(out, "%-22s  %5s  %9s  %7s  %8s\n", "Game", "Level", "Completed", "Correct", "Accuracy")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, g := range a.Games {
				fmt.Fprintf(out, "%-22s  %5d  %9d  %7d  %7d%%\n", g.Title, g.Level, g.Completed, g.Correct, g.Accuracy)
			}
			fmt.Fprintln(out, strings.Repeat("─", 60))
			fmt.Fprintf(out, "%-22s  %5s  %9d  %7d  %7d%%\n", "Total", "", a.TotalCompleted, a.TotalCorrect, a.OverallAccuracy)
			fmt.Fprintf(out, "Time played: %s\n", formatSeconds(a.TotalTime))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print analytics as JSON")
	return cmd
}

func formatSeconds(total float64) string {
	secs := int(total)
	return fmt.Sprintf("%dm %02ds", secs/60, secs%60)
}
