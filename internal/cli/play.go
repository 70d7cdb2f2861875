package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/adaptive"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/services"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <mode>",
		Short: "Practice a game in the terminal",
		Long: "Play rounds of a game on the terminal. Answers are recorded to the store " +
			"unless --practice is set, in which case nothing is saved. Recorded sessions " +
			"start at the stored level, so --level implies --practice.",
		Args: cobra.ExactArgs(1),
		RunE: runPlay,
	}
	cmd.Flags().Int("rounds", 5, "Number of questions")
	cmd.Flags().Int("level", 0, "Starting level for a practice session (implies --practice)")
	cmd.Flags().String("difficulty", "", "easy, adaptive or hard (defaults to the stored setting)")
	cmd.Flags().Bool("practice", false, "Do not read or write the store")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible questions")
	return cmd
}

type session struct {
	mode       game.Mode
	g          game.Game
	rand       game.Rand
	difficulty game.Difficulty
	tracker    *adaptive.Tracker
	// submit grades and records one answer; nil in practice mode.
	submit func(q game.Question, answer json.RawMessage, streak int, elapsed time.Duration) (*services.AnswerResult, error)
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode, ok := game.ParseMode(args[0])
	if !ok {
		return fmt.Errorf("unknown mode %q", args[0])
	}
	rounds, _ := cmd.Flags().GetInt("rounds")
	level, _ := cmd.Flags().GetInt("level")
	difficultyFlag, _ := cmd.Flags().GetString("difficulty")
	practice, _ := cmd.Flags().GetBool("practice")
	if cmd.Flags().Changed("level") {
		practice = true
	}
	seed, _ := cmd.Flags().GetUint64("seed")

	g, err := game.For(mode)
	if err != nil {
		return err
	}
	sess := &session{mode: mode, g: g, rand: game.DefaultRand, difficulty: game.ParseDifficulty(difficultyFlag)}
	if cmd.Flags().Changed("seed") {
		sess.rand = rand.New(rand.NewPCG(seed, seed))
	}
	levels := map[game.Mode]int{mode: level}

	if !practice {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd)
		user := userID(cmd)
		p, err := services.NewProgressService(s.Progress, s.History).GetProgress(ctx, user)
		if err != nil {
			return err
		}
		levels = p.Levels()
		if difficultyFlag == "" {
			sess.difficulty = p.Settings.Difficulty
		}

		svc := services.NewGameService(s.Progress, nil)
		sess.submit = func(q game.Question, answer json.RawMessage, streak int, elapsed time.Duration) (*services.AnswerResult, error) {
			raw, err := json.Marshal(q)
			if err != nil {
				return nil, err
			}
			return svc.SubmitAnswer(ctx, user, services.AnswerSubmission{
				Mode:        mode,
				Question:    raw,
				Answer:      answer,
				Streak:      streak,
				TimeSeconds: elapsed.Seconds(),
			})
		}
	}
	sess.tracker = adaptive.NewTracker(levels)

	return sess.run(cmd.InOrStdin(), cmd.OutOrStdout(), rounds)
}

func (s *session) run(in io.Reader, out io.Writer, rounds int) error {
	scanner := bufio.NewScanner(in)
	score := 0

	fmt.Fprintf(out, "%s (%s)\n", s.mode.Title(), s.difficulty)
	for round := 1; round <= rounds; round++ {
		state := s.tracker.State(s.mode)
		q := s.g.Generate(s.rand, state.Level, s.difficulty)

		fmt.Fprintf(out, "\nRound %d/%d, level %d\n%s\n", round, rounds, state.Level, render(q))
		start := time.Now()

		var answer json.RawMessage
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintf(out, "\nScore: %d/%d\n", score, round-1)
				return scanner.Err()
			}
			parsed, err := parseAnswer(q, scanner.Text())
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			answer = parsed
			break
		}

		correct, next, leveled, err := s.grade(q, answer, state.Streak, time.Since(start))
		if err != nil {
			return err
		}

		if correct {
			score++
			fmt.Fprintln(out, "Correct!")
		} else {
			solution, _ := json.Marshal(s.g.Solution(q))
			fmt.Fprintf(out, "Not quite, the answer was %s\n", solution)
		}
		if leveled {
			fmt.Fprintf(out, "Level up! Now on level %d\n", next.Level)
		}
	}
	fmt.Fprintf(out, "\nScore: %d/%d\n", score, rounds)
	return nil
}

// grade checks the answer and advances the tracker. Recorded answers take
// the level and streak the store settled on.
func (s *session) grade(q game.Question, answer json.RawMessage, streak int, elapsed time.Duration) (bool, adaptive.State, bool, error) {
	if s.submit == nil {
		correct, err := s.g.Check(q, answer)
		if err != nil {
			return false, adaptive.State{}, false, err
		}
		next, leveled := s.tracker.Record(s.mode, s.difficulty, correct)
		return correct, next, leveled, nil
	}
	res, err := s.submit(q, answer, streak, elapsed)
	if err != nil {
		return false, adaptive.State{}, false, err
	}
	next := adaptive.State{Level: res.Level, Streak: res.Streak}
	s.tracker.Set(s.mode, next)
	return res.Correct, next, res.LeveledUp, nil
}

func render(q game.Question) string {
	switch q := q.(type) {
	case game.ComparisonQuestion:
		return fmt.Sprintf("Left:  %s\nRight: %s\nWhich side has more? (left / right / same)",
			strings.Repeat("🍎", q.CountLeft), strings.Repeat("🍎", q.CountRight))
	case game.AdditionQuestion:
		return fmt.Sprintf("%d + %d = ?", q.A, q.B)
	case game.PatternQuestion:
		var opts []string
		for i, o := range q.Options {
			opts = append(opts, fmt.Sprintf("%d) %s", i+1, o))
		}
		return fmt.Sprintf("What comes next?  %s ?\n%s", strings.Join(q.Pattern, " "), strings.Join(opts, "   "))
	case game.SequencingQuestion:
		nums := make([]string, len(q.Shuffled))
		for i, n := range q.Shuffled {
			nums[i] = fmt.Sprint(n)
		}
		return fmt.Sprintf("Put these in order, smallest first: %s", strings.Join(nums, " "))
	}
	return fmt.Sprintf("%v", q)
}
