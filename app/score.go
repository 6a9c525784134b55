package app

import "fmt"

// ScoreText renders a white-relative score the way arrows and line lists show it:
// "#3" / "#-2" for mates, "+0.25" / "-1.30" otherwise.
func ScoreText(mate bool, score float64) string {
	if mate {
		return fmt.Sprintf("#%d", int(score))
	}

	s := fmt.Sprintf("%+.2f", score)
	if s == "+0.00" || s == "-0.00" {
		return "0.00"
	}
	return s
}
