package app

import "testing"

func TestScoreText(t *testing.T) {
	cases := []struct {
		name  string
		mate  bool
		score float64
		want  string
	}{
		{"white better", false, 0.25, "+0.25"},
		{"black better", false, -1.3, "-1.30"},
		{"level", false, 0, "0.00"},
		{"negative zero", false, -0.001, "0.00"},
		{"white mates", true, 3, "#3"},
		{"black mates", true, -2, "#-2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreText(tc.mate, tc.score); got != tc.want {
				t.Fatalf("ScoreText(%v, %v) = %q, want %q", tc.mate, tc.score, got, tc.want)
			}
		})
	}
}
