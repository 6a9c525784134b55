package app

import (
	"strings"
	"testing"
)

const ruyLopez = "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6"

func newLoadedTimeline(t *testing.T, pgn string) (*Timeline, *ChessRules) {
	t.Helper()
	rules := NewChessRules()
	tl := NewTimeline(rules)
	if err := tl.LoadMainline(pgn); err != nil {
		t.Fatalf("LoadMainline error: %v", err)
	}
	return tl, rules
}

func userMove(t *testing.T, tl *Timeline, rules Rules, code string) {
	t.Helper()
	m, err := rules.ApplyCode(code)
	if err != nil {
		t.Fatalf("ApplyCode(%s): %v", code, err)
	}
	tl.RecordUserMove(m)
}

func TestTimelineLoadStartsAtEnd(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	if tl.MainlineLen() != 6 || tl.MainlineCursor() != 6 {
		t.Fatalf("cursor = %d/%d, want 6/6", tl.MainlineCursor(), tl.MainlineLen())
	}
	if tl.BranchLen() != 0 || tl.BranchCursor() != 0 {
		t.Fatalf("branch should be empty after load")
	}
	if got := strings.Join(tl.CurrentMoveSequence(), " "); got != "e2e4 e7e5 g1f3 b8c6 f1b5 a7a6" {
		t.Fatalf("CurrentMoveSequence = %q", got)
	}
	if rules.FEN() == startFEN {
		t.Fatalf("position should be at the end of the game")
	}
}

func TestTimelineLoadPartialPGN(t *testing.T) {
	rules := NewChessRules()
	tl := NewTimeline(rules)
	if err := tl.LoadMainline("1. e4 e5 2. Qh8"); err == nil {
		t.Fatalf("expected an error for the illegal token")
	}
	if tl.MainlineLen() != 2 || tl.MainlineCursor() != 2 {
		t.Fatalf("partial load should keep 2 moves, got %d/%d", tl.MainlineCursor(), tl.MainlineLen())
	}
}

func TestTimelineRoundTrip(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	want := rules.FEN()

	for i := 0; i < 4; i++ {
		if !tl.StepBackward() {
			t.Fatalf("StepBackward %d did not move", i)
		}
	}
	if tl.MainlineCursor() != 2 {
		t.Fatalf("cursor = %d, want 2", tl.MainlineCursor())
	}
	for i := 0; i < 4; i++ {
		if !tl.StepForward() {
			t.Fatalf("StepForward %d did not move", i)
		}
	}
	if rules.FEN() != want {
		t.Fatalf("round trip changed position: %q vs %q", rules.FEN(), want)
	}
}

func TestTimelineJumpStartEnd(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	want := rules.FEN()

	if !tl.JumpToStart() {
		t.Fatalf("JumpToStart should move")
	}
	if rules.FEN() != startFEN || tl.MainlineCursor() != 0 {
		t.Fatalf("not at start: cursor=%d fen=%q", tl.MainlineCursor(), rules.FEN())
	}
	if len(tl.CurrentMoveSequence()) != 0 {
		t.Fatalf("move sequence should be empty at start")
	}
	if tl.JumpToStart() {
		t.Fatalf("second JumpToStart should be a no-op")
	}

	if !tl.JumpToEnd() {
		t.Fatalf("JumpToEnd should move")
	}
	if rules.FEN() != want || tl.MainlineCursor() != 6 {
		t.Fatalf("JumpToEnd did not rebuild the loaded position")
	}
	if tl.JumpToEnd() {
		t.Fatalf("second JumpToEnd should be a no-op")
	}
}

func TestTimelineStepAtEdgesIsNoop(t *testing.T) {
	tl := NewTimeline(NewChessRules())
	if tl.StepBackward() || tl.StepForward() {
		t.Fatalf("empty timeline should not move")
	}

	tl, _ = newLoadedTimeline(t, ruyLopez)
	if tl.StepForward() {
		t.Fatalf("forward at the end should be a no-op")
	}
}

func TestTimelineRecordTruncatesBranch(t *testing.T) {
	tl, rules := newLoadedTimeline(t, "1. e4 e5")
	userMove(t, tl, rules, "g1f3")
	userMove(t, tl, rules, "b8c6")
	userMove(t, tl, rules, "f1c4")

	tl.StepBackward()
	tl.StepBackward()
	if tl.BranchCursor() != 1 || tl.BranchLen() != 3 {
		t.Fatalf("branch = %d/%d, want 1/3", tl.BranchCursor(), tl.BranchLen())
	}

	userMove(t, tl, rules, "g8f6")
	if tl.BranchLen() != 2 || tl.BranchCursor() != 2 {
		t.Fatalf("branch after overwrite = %d/%d, want 2/2", tl.BranchCursor(), tl.BranchLen())
	}

	if tl.StepForward() {
		t.Fatalf("the discarded continuation must not be reachable")
	}
	if got := strings.Join(tl.CurrentMoveSequence(), " "); got != "e2e4 e7e5 g1f3 g8f6" {
		t.Fatalf("CurrentMoveSequence = %q", got)
	}
}

func TestTimelineRecordAtTipAppends(t *testing.T) {
	tl, rules := newLoadedTimeline(t, "1. d4")
	userMove(t, tl, rules, "d7d5")
	userMove(t, tl, rules, "c2c4")
	if tl.BranchLen() != 2 || tl.BranchCursor() != 2 {
		t.Fatalf("branch = %d/%d, want 2/2", tl.BranchCursor(), tl.BranchLen())
	}
}

func TestTimelineForwardNeverReentersMainline(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	tl.JumpToStart()
	tl.StepForward()
	tl.StepForward()

	userMove(t, tl, rules, "d2d4")
	fen := rules.FEN()

	for i := 0; i < 3; i++ {
		if tl.StepForward() {
			t.Fatalf("forward past a consumed branch should be a no-op")
		}
	}
	if tl.MainlineCursor() != 2 || rules.FEN() != fen {
		t.Fatalf("mainline advanced: cursor=%d", tl.MainlineCursor())
	}
	if tl.JumpToEnd() {
		t.Fatalf("JumpToEnd should terminate without moving")
	}
}

func TestTimelineBackToBranchRootDropsBranch(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	userMove(t, tl, rules, "e1g1")

	if !tl.StepBackward() {
		t.Fatalf("StepBackward should undo the branch move")
	}
	if tl.BranchLen() != 0 {
		t.Fatalf("branch should be discarded at its root when a mainline exists")
	}
	if tl.StepForward() {
		t.Fatalf("mainline is at its end, forward should be a no-op")
	}

	tl.StepBackward()
	if !tl.StepForward() || tl.MainlineCursor() != 6 {
		t.Fatalf("forward should walk the mainline again once the branch is gone")
	}
}

func TestTimelineBranchWithoutMainlineSurvives(t *testing.T) {
	rules := NewChessRules()
	tl := NewTimeline(rules)
	userMove(t, tl, rules, "e2e4")
	userMove(t, tl, rules, "c7c5")

	tl.JumpToStart()
	if rules.FEN() != startFEN {
		t.Fatalf("JumpToStart should reach the start position")
	}
	if tl.BranchLen() != 2 {
		t.Fatalf("branch without a mainline should be kept, len=%d", tl.BranchLen())
	}
	if !tl.JumpToEnd() || tl.BranchCursor() != 2 {
		t.Fatalf("branch should be replayable")
	}
}

func TestTimelineReset(t *testing.T) {
	tl, rules := newLoadedTimeline(t, ruyLopez)
	userMove(t, tl, rules, "b1c3")
	tl.Reset()

	if tl.MainlineLen() != 0 || tl.MainlineCursor() != 0 || tl.BranchLen() != 0 || tl.BranchCursor() != 0 {
		t.Fatalf("reset left state behind")
	}
	if rules.FEN() != startFEN {
		t.Fatalf("reset should restore the start position")
	}
}
