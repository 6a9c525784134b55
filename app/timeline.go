package app

import "example/analysis-board/app/models"

// Timeline tracks where we are in a game: a cursor into the loaded mainline plus a
// cursor into a user-made branch played on top of it. The live position in rules is
// always mainline[:mainCursor] followed by branch[:branchCursor].
//
// Timeline is not safe for concurrent use; Board serializes access to it.
type Timeline struct {
	rules Rules

	mainline   []models.Move
	mainCursor int

	branch       []models.Move
	branchCursor int
}

func NewTimeline(rules Rules) *Timeline {
	return &Timeline{rules: rules}
}

// LoadMainline replaces the game with pgn and leaves the position at its last move.
// A bad token stops the load; the moves before it still become the mainline.
func (t *Timeline) LoadMainline(pgn string) error {
	err := t.rules.LoadPGN(pgn)
	t.mainline = t.rules.History()
	t.mainCursor = len(t.mainline)
	t.branch = nil
	t.branchCursor = 0
	return err
}

func (t *Timeline) Reset() {
	t.rules.Reset()
	t.mainline = nil
	t.mainCursor = 0
	t.branch = nil
	t.branchCursor = 0
}

// StepBackward undoes one ply and reports whether the position moved. Stepping back
// to the root of a branch that sits on a loaded game throws the branch away.
func (t *Timeline) StepBackward() bool {
	if t.branchCursor > 0 {
		t.rules.UndoMove()
		t.branchCursor--
		if t.branchCursor == 0 && len(t.mainline) > 0 {
			t.branch = nil
		}
		return true
	}

	if t.mainCursor > 0 {
		t.rules.UndoMove()
		t.mainCursor--
		return true
	}
	return false
}

// StepForward replays one ply and reports whether the position moved. Once a branch
// exists, forward only ever walks the branch, even after its last move.
func (t *Timeline) StepForward() bool {
	if len(t.branch) > 0 {
		if t.branchCursor >= len(t.branch) {
			return false
		}
		if _, err := t.rules.ApplyCode(t.branch[t.branchCursor].Code); err != nil {
			return false
		}
		t.branchCursor++
		return true
	}

	if t.mainCursor >= len(t.mainline) {
		return false
	}
	if _, err := t.rules.ApplyCode(t.mainline[t.mainCursor].Code); err != nil {
		return false
	}
	t.mainCursor++
	return true
}

func (t *Timeline) JumpToStart() bool {
	moved := false
	for t.StepBackward() {
		moved = true
	}
	return moved
}

func (t *Timeline) JumpToEnd() bool {
	moved := false
	for t.StepForward() {
		moved = true
	}
	return moved
}

// RecordUserMove notes a move already played on the live position. Anything the
// branch held past the cursor is dropped first.
func (t *Timeline) RecordUserMove(m models.Move) {
	t.branch = append(t.branch[:t.branchCursor:t.branchCursor], m)
	t.branchCursor++
}

// CurrentMoveSequence returns the move codes leading to the live position.
func (t *Timeline) CurrentMoveSequence() []string {
	codes := make([]string, 0, t.mainCursor+t.branchCursor)
	for _, m := range t.mainline[:t.mainCursor] {
		codes = append(codes, m.Code)
	}
	for _, m := range t.branch[:t.branchCursor] {
		codes = append(codes, m.Code)
	}
	return codes
}

func (t *Timeline) MainlineLen() int    { return len(t.mainline) }
func (t *Timeline) MainlineCursor() int { return t.mainCursor }
func (t *Timeline) BranchLen() int      { return len(t.branch) }
func (t *Timeline) BranchCursor() int   { return t.branchCursor }
