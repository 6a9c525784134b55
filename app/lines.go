package app

import "example/analysis-board/app/models"

const (
	maxArrowWidth = 16
	minArrowWidth = 2
)

// CandidateLines holds the ranked results of the current analysis pass, one slot per
// rank up to the engine's MultiPV setting.
type CandidateLines struct {
	slots  []models.CandidateLine
	filled []bool
}

func NewCandidateLines(capacity int) *CandidateLines {
	if capacity < 1 {
		capacity = 1
	}
	return &CandidateLines{
		slots:  make([]models.CandidateLine, capacity),
		filled: make([]bool, capacity),
	}
}

func (c *CandidateLines) Cap() int { return len(c.slots) }

// Reset empties every rank; used when a new pass starts.
func (c *CandidateLines) Reset() {
	for i := range c.slots {
		c.slots[i] = models.CandidateLine{}
		c.filled[i] = false
	}
}

// Set stores line at rank, replacing whatever the pass reported there before.
// Ranks outside the store are dropped and reported as false.
func (c *CandidateLines) Set(rank int, line models.CandidateLine) bool {
	if rank < 0 || rank >= len(c.slots) {
		return false
	}
	line.Rank = rank
	c.slots[rank] = line
	c.filled[rank] = true
	return true
}

func (c *CandidateLines) Get(rank int) (models.CandidateLine, bool) {
	if rank < 0 || rank >= len(c.slots) || !c.filled[rank] {
		return models.CandidateLine{}, false
	}
	return c.slots[rank], true
}

// Lines returns the stored lines in ascending rank order.
func (c *CandidateLines) Lines() []models.CandidateLine {
	out := make([]models.CandidateLine, 0, len(c.slots))
	for i, ok := range c.filled {
		if ok {
			out = append(out, c.slots[i])
		}
	}
	return out
}

func (c *CandidateLines) Len() int {
	n := 0
	for _, ok := range c.filled {
		if ok {
			n++
		}
	}
	return n
}

// ProjectArrows draws one arrow per distinct first move. lines must be in rank
// order; when two ranks start with the same move only the better rank's arrow stays.
func ProjectArrows(lines []models.CandidateLine) []models.Arrow {
	arrows := make([]models.Arrow, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		if len(line.Moves) == 0 {
			continue
		}
		first := line.Moves[0]
		key := first.From + first.To
		if seen[key] {
			continue
		}
		seen[key] = true

		arrows = append(arrows, models.Arrow{
			From:  first.From,
			To:    first.To,
			Width: arrowWidth(line.Rank),
			Label: line.ScoreText,
		})
	}
	return arrows
}

func arrowWidth(rank int) int {
	w := maxArrowWidth - 2*rank
	if w < minArrowWidth {
		return minArrowWidth
	}
	return w
}
