package app

import (
	"regexp"
	"strings"
)

var (
	reTags       = regexp.MustCompile(`(?m)^\[.*?\]\s*`) // [Tag "Value"] lines
	reComments   = regexp.MustCompile(`\{[^}]*\}`)       // {...} comments (incl. [%clk ...])
	reLineNotes  = regexp.MustCompile(`;[^\n]*`)         // ; rest-of-line comments
	reNAG        = regexp.MustCompile(`\$\d+`)           // $1, $2, etc.
	reSpaces     = regexp.MustCompile(`\s+`)
	reMoveNumber = regexp.MustCompile(`^\d+\.+`) // "12." or "12..." glued to a move
	reMoveCode   = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)
)

var gameResults = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}

// NormalizePGN removes headers/comments/NAGs/variations and collapses whitespace.
func NormalizePGN(pgn string) string {
	pgn = reTags.ReplaceAllString(pgn, "")
	pgn = reComments.ReplaceAllString(pgn, "")
	pgn = reLineNotes.ReplaceAllString(pgn, "")
	pgn = stripVariations(pgn)
	pgn = reNAG.ReplaceAllString(pgn, "")
	pgn = reSpaces.ReplaceAllString(strings.TrimSpace(pgn), " ")
	return pgn
}

// stripVariations drops (...) side lines, nested ones included.
func stripVariations(pgn string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range pgn {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// moveTokens splits normalized movetext into bare move tokens ("e4", "Nxf3+", "e7e8q").
func moveTokens(pgn string) []string {
	var out []string
	for _, tok := range strings.Fields(NormalizePGN(pgn)) {
		tok = reMoveNumber.ReplaceAllString(tok, "")
		if tok == "" || gameResults[tok] {
			continue
		}
		if strings.HasPrefix(tok, "0-0") {
			// castling written with zeros
			tok = strings.ReplaceAll(tok, "0", "O")
		}
		out = append(out, tok)
	}
	return out
}

// IsMoveCode reports whether s looks like a long algebraic move ("e2e4", "a7a8q").
func IsMoveCode(s string) bool {
	return reMoveCode.MatchString(s)
}
