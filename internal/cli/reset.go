package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/services"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a player's progress and settings to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errors.New("refusing to reset without --yes")
			}

			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			user := userID(cmd)
			if _, err := services.NewProgressService(s.Progress, s.History).ResetProgress(commandContext(cmd), user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s reset.\n", user)
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm the reset")
	return cmd
}
