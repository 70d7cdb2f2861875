package cli

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/game"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <mode>",
		Short: "Print generated questions as JSON lines",
		Long: "Generate questions offline, one JSON object per line. Mode is one of " +
			"comparison, addition, pattern or sequencing (record keys such as numberLineAddition also work).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := game.ParseMode(args[0])
			if !ok {
				return fmt.Errorf("unknown mode %q", args[0])
			}
			level, _ := cmd.Flags().GetInt("level")
			difficulty, _ := cmd.Flags().GetString("difficulty")
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetUint64("seed")
			withAnswer, _ := cmd.Flags().GetBool("answers")

			var r game.Rand = game.DefaultRand
			if cmd.Flags().Changed("seed") {
				r = rand.New(rand.NewPCG(seed, seed))
			}

			g, err := game.For(mode)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for i := 0; i < count; i++ {
				q := g.Generate(r, level, game.ParseDifficulty(difficulty))
				var out any = q
				if withAnswer {
					out = struct {
						Question game.Question `json:"question"`
						Solution any           `json:"solution"`
					}{q, g.Solution(q)}
				}
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("write question: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("level", game.DefaultLevel, "Level for adaptive difficulty")
	cmd.Flags().String("difficulty", string(game.DefaultDifficulty), "easy, adaptive or hard")
	cmd.Flags().IntP("count", "n", 1, "Number of questions")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible output")
	cmd.Flags().Bool("answers", false, "Include the expected answer with each question")
	return cmd
}
