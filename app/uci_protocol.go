package app

import (
	"strconv"
	"strings"
)

// maxLineMoves caps how much of a pv we keep per candidate line.
const maxLineMoves = 15

// Event is one parsed message from the engine.
type Event interface {
	isEvent()
}

// ReadyEvent is the engine's "uciok".
type ReadyEvent struct{}

// InfoEvent is one "info depth ..." progress line carrying a scored pv.
type InfoEvent struct {
	Depth      int
	SelDepth   int
	MultiPV    int // 1-based
	PV         []string
	ScoreKind  string // "cp" or "mate"
	ScoreValue int
}

func (ReadyEvent) isEvent() {}
func (InfoEvent) isEvent()  {}

// NewPass reports whether this line opens a fresh search: depth 1 of the best line.
func (e InfoEvent) NewPass() bool {
	return e.Depth == 1 && e.MultiPV == 1
}

// ParseLine turns one line of engine output into an Event. Lines we don't care
// about, or that don't have the shape we expect, come back as false.
//
// Examples we parse:
// uciok
// info depth 12 seldepth 17 multipv 2 score cp -31 nodes 81234 nps 912000 time 89 pv e7e5 g1f3 b8c6
// info depth 20 seldepth 9 multipv 1 score mate 3 pv h5f7 e8d7 f7d5
func ParseLine(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	if line == "uciok" {
		return ReadyEvent{}, true
	}
	if !strings.HasPrefix(line, "info depth ") {
		return nil, false
	}

	parts := strings.Fields(line)
	// "info depth N seldepth ..." - currmove and bound-only lines don't have it
	if len(parts) < 5 || parts[3] != "seldepth" {
		return nil, false
	}

	var ev InfoEvent
	var err error
	if ev.Depth, err = strconv.Atoi(parts[2]); err != nil {
		return nil, false
	}
	if ev.SelDepth, err = strconv.Atoi(parts[4]); err != nil {
		return nil, false
	}

	ev.MultiPV = 1
	if i := indexOf(parts, "multipv"); i != -1 {
		if i+1 >= len(parts) {
			return nil, false
		}
		if ev.MultiPV, err = strconv.Atoi(parts[i+1]); err != nil {
			return nil, false
		}
	}

	i := indexOf(parts, "score")
	if i == -1 || i+2 >= len(parts) {
		return nil, false
	}
	switch parts[i+1] {
	case "cp", "mate":
		ev.ScoreKind = parts[i+1]
	default:
		return nil, false
	}
	if ev.ScoreValue, err = strconv.Atoi(parts[i+2]); err != nil {
		return nil, false
	}

	i = indexOf(parts, "pv")
	if i == -1 {
		return nil, false
	}
	for _, tok := range parts[i+1:] {
		if len(ev.PV) == maxLineMoves || !IsMoveCode(tok) {
			break
		}
		ev.PV = append(ev.PV, tok)
	}
	if len(ev.PV) == 0 {
		return nil, false
	}

	return ev, true
}

func indexOf(parts []string, tok string) int {
	for i, p := range parts {
		if p == tok {
			return i
		}
	}
	return -1
}
