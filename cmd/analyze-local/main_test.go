package main

import (
	"testing"
	"time"
)

func TestParseArgs(t *testing.T) {
	path, wait, err := parseArgs([]string{"game.pgn"})
	if err != nil || path != "game.pgn" || wait != defaultWait {
		t.Fatalf("parseArgs default = %q %s %v", path, wait, err)
	}

	_, wait, err = parseArgs([]string{"game.pgn", "12"})
	if err != nil || wait != 12*time.Second {
		t.Fatalf("parseArgs seconds = %s %v", wait, err)
	}

	for _, args := range [][]string{nil, {""}, {"game.pgn", "0"}, {"game.pgn", "soon"}} {
		if _, _, err := parseArgs(args); err == nil {
			t.Fatalf("parseArgs(%q) should fail", args)
		}
	}
}
