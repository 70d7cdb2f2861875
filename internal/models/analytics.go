package models

import "github.com/vytor/mathverse/internal/game"

// GameAnalytics is one mode's row. Game holds the progress record key.
type GameAnalytics struct {
	Game      string    `json:"game"`
	Title     string    `json:"title"`
	Mode      game.Mode `json:"mode"`
	Level     int       `json:"level"`
	Completed int       `json:"completed"`
	Correct   int       `json:"correct"`
	Accuracy  int       `json:"accuracy"`
}

type Analytics struct {
	Games           []GameAnalytics `json:"games"`
	TotalCompleted  int             `json:"totalCompleted"`
	TotalCorrect    int             `json:"totalCorrect"`
	OverallAccuracy int             `json:"overallAccuracy"`
	TotalTime       float64         `json:"totalTime"`
}

// ComputeAnalytics derives the dashboard summary from a progress record.
func ComputeAnalytics(p Progress) Analytics {
	out := Analytics{
		Games:     make([]GameAnalytics, 0, len(game.Modes)),
		TotalTime: p.TotalTime,
	}
	for _, m := range game.Modes {
		s := p.Stat(m)
		out.Games = append(out.Games, GameAnalytics{
			Game:      m.Key(),
			Title:     m.Title(),
			Mode:      m,
			Level:     s.Level,
			Completed: s.Completed,
			Correct:   s.Correct,
			Accuracy:  s.Accuracy(),
		})
		out.TotalCompleted += s.Completed
		out.TotalCorrect += s.Correct
	}
	out.OverallAccuracy = Percent(out.TotalCorrect, out.TotalCompleted)
	return out
}
