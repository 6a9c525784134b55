package app

import (
	"testing"

	"example/analysis-board/app/models"
)

func testLine(score float64, codes ...string) models.CandidateLine {
	moves := make([]models.Move, len(codes))
	for i, c := range codes {
		moves[i] = models.Move{From: c[0:2], To: c[2:4], Code: c}
	}
	return models.CandidateLine{Moves: moves, Score: score, ScoreText: ScoreText(false, score)}
}

func TestCandidateLinesSetAndOrder(t *testing.T) {
	store := NewCandidateLines(3)
	store.Set(2, testLine(0.1, "d2d4"))
	store.Set(0, testLine(0.3, "e2e4"))

	lines := store.Lines()
	if len(lines) != 2 || lines[0].Rank != 0 || lines[1].Rank != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if _, ok := store.Get(1); ok {
		t.Fatalf("rank 1 should be empty")
	}

	store.Set(0, testLine(0.4, "c2c4"))
	got, _ := store.Get(0)
	if got.Moves[0].Code != "c2c4" || store.Len() != 2 {
		t.Fatalf("overwrite failed: %+v", got)
	}
}

func TestCandidateLinesBounds(t *testing.T) {
	store := NewCandidateLines(2)
	if store.Set(2, testLine(0, "e2e4")) || store.Set(-1, testLine(0, "e2e4")) {
		t.Fatalf("out of range ranks should be dropped")
	}
	if store.Len() != 0 {
		t.Fatalf("store should still be empty")
	}
	if NewCandidateLines(0).Cap() != 1 {
		t.Fatalf("capacity should be at least one")
	}
}

func TestCandidateLinesReset(t *testing.T) {
	store := NewCandidateLines(2)
	store.Set(0, testLine(0, "e2e4"))
	store.Set(1, testLine(0, "d2d4"))
	store.Reset()
	if store.Len() != 0 || len(store.Lines()) != 0 {
		t.Fatalf("reset should clear every rank")
	}
}

func TestProjectArrowsDedupesFirstMove(t *testing.T) {
	store := NewCandidateLines(5)
	store.Set(0, testLine(0.5, "e2e4", "e7e5"))
	store.Set(1, testLine(0.4, "e2e4", "c7c5"))
	store.Set(2, testLine(0.2, "d2d4"))

	arrows := ProjectArrows(store.Lines())
	if len(arrows) != 2 {
		t.Fatalf("expected 2 arrows, got %+v", arrows)
	}
	if arrows[0].From != "e2" || arrows[0].To != "e4" || arrows[0].Width != 16 || arrows[0].Label != "+0.50" {
		t.Fatalf("rank 0 arrow should win: %+v", arrows[0])
	}
	if arrows[1].From != "d2" || arrows[1].Width != 12 {
		t.Fatalf("rank 2 arrow mismatch: %+v", arrows[1])
	}
}

func TestProjectArrowsSkipsEmptyLinesAndClampsWidth(t *testing.T) {
	lines := []models.CandidateLine{
		{Rank: 0},
		{Rank: 9, Moves: []models.Move{{From: "g1", To: "f3", Code: "g1f3"}}},
	}
	arrows := ProjectArrows(lines)
	if len(arrows) != 1 || arrows[0].Width != 2 {
		t.Fatalf("unexpected arrows: %+v", arrows)
	}
}
