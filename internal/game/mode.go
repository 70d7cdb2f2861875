package game

import "strings"

// Mode identifies one of the four games.
type Mode string

const (
	Comparison Mode = "comparison"
	Addition   Mode = "addition"
	Pattern    Mode = "pattern"
	Sequencing Mode = "sequencing"
)

// Modes lists every game in display order.
var Modes = []Mode{Comparison, Addition, Pattern, Sequencing}

var recordKeys = map[Mode]string{
	Comparison: "quantityComparison",
	Addition:   "numberLineAddition",
	Pattern:    "patternRecognition",
	Sequencing: "numberSequencing",
}

var titles = map[Mode]string{
	Comparison: "Quantity Comparison",
	Addition:   "Number Line Addition",
	Pattern:    "Pattern Recognition",
	Sequencing: "Number Sequencing",
}

// ParseMode accepts either the short name ("addition") or the progress
// record key ("numberLineAddition"), case-insensitively.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if s == string(m) || s == strings.ToLower(recordKeys[m]) {
			return m, true
		}
	}
	return "", false
}

// Key returns the progress record key for the mode.
func (m Mode) Key() string {
	return recordKeys[m]
}

// Title is the display name shown on dashboards.
func (m Mode) Title() string {
	return titles[m]
}

func (m Mode) Valid() bool {
	_, ok := recordKeys[m]
	return ok
}
