package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vytor/mathverse/internal/game"
)

var comparisonAliases = map[string]string{
	"l": game.ChoiceLeft, "<": game.ChoiceLeft, game.ChoiceLeft: game.ChoiceLeft,
	"r": game.ChoiceRight, ">": game.ChoiceRight, game.ChoiceRight: game.ChoiceRight,
	"s": game.ChoiceSame, "=": game.ChoiceSame, "equal": game.ChoiceSame, game.ChoiceSame: game.ChoiceSame,
}

// parseAnswer turns a line typed on the terminal into the JSON answer the
// game checker expects.
func parseAnswer(q game.Question, input string) (json.RawMessage, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("please type an answer")
	}

	var v any
	switch q := q.(type) {
	case game.ComparisonQuestion:
		choice, ok := comparisonAliases[strings.ToLower(input)]
		if !ok {
			return nil, errors.New("answer left, right or same")
		}
		v = choice
	case game.AdditionQuestion:
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, errors.New("answer with a whole number")
		}
		v = n
	case game.PatternQuestion:
		v = input
		if n, err := strconv.Atoi(input); err == nil {
			if n < 1 || n > len(q.Options) {
				return nil, fmt.Errorf("pick an option between 1 and %d", len(q.Options))
			}
			v = q.Options[n-1]
		}
	case game.SequencingQuestion:
		fields := strings.FieldsFunc(input, func(r rune) bool { return r == ' ' || r == ',' })
		nums := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.New("answer with numbers separated by spaces")
			}
			nums = append(nums, n)
		}
		v = nums
	default:
		return nil, fmt.Errorf("unsupported question %T", q)
	}
	return json.Marshal(v)
}
