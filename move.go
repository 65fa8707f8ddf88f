package chess

import (
	"strconv"
	"strings"
)

// Move is a single chess move: a source and destination square, plus an
// optional promotion piece type. The null move is NullMove (From and To
// both NoSquare, which the zero value is not); it passes the turn without
// moving a piece and is written "--" in PGN movetext.
type Move struct {
	From      Sq
	To        Sq
	Promotion int // NoPieceType unless this move promotes a pawn
}

// NullMove is the null move: side to move passes without moving a piece.
var NullMove = Move{From: NoSquare, To: NoSquare}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m.From == NoSquare && m.To == NoSquare }

// Uci returns the UCI long-algebraic form of m ("e2e4", "e7e8q", "0000"
// for the null move).
func (m Move) Uci() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(pieceLetters[m.Promotion] + ('a' - 'A'))
	}
	return s
}

// ParseUci parses a UCI long-algebraic move string. It does not consult a
// position, so it cannot detect whether the move is legal, or even
// whether the identified squares hold a piece; callers should cross-check
// the result against LegalMoves.
func ParseUci(s string) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return Move{}, parseErrorf("uci", s, "expected 4 or 5 characters")
	}
	from := squareFromString(s[0:2])
	to := squareFromString(s[2:4])
	if from == NoSquare || to == NoSquare {
		return Move{}, parseErrorf("uci", s, "invalid square")
	}
	promo := NoPieceType
	if len(s) == 5 {
		promo = typeFromLetter(s[4])
		if promo == NoPieceType {
			return Move{}, parseErrorf("uci", s, "invalid promotion piece %q", s[4:])
		}
	}
	return Move{From: from, To: to, Promotion: promo}, nil
}

// San renders m in Standard Algebraic Notation relative to the position
// it is about to be played in (b must not yet have had m applied). The
// mover must be on the move's From square in b.
func (b *Board) San(m Move) string {
	if m.IsNull() {
		return "--"
	}
	mover := b.cells[m.From]
	var sb strings.Builder

	if mover.Type() == King && isCastleMove(b, m) {
		if m.To.File() == FileG {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else if mover.Type() == Pawn {
		capture := !b.cells[m.To].IsEmpty() || m.To == b.epSquare
		if capture {
			sb.WriteByte('a' + byte(m.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetters[m.Promotion])
		}
	} else {
		sb.WriteByte(pieceLetters[mover.Type()])
		sb.WriteString(b.disambiguate(m, mover))
		if !b.cells[m.To].IsEmpty() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	after := b.Clone()
	after.Apply(m)
	if after.IsCheck() {
		if len(after.LegalMoves()) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	return sb.String()
}

// disambiguate returns the file, rank, or file+rank qualifier needed to
// distinguish m from other legal moves of the same piece type to the
// same destination, preferring a file qualifier over a rank qualifier
// when either alone would suffice.
func (b *Board) disambiguate(m Move, mover Piece) string {
	var sameFile, sameRank, any bool
	for _, other := range b.LegalMoves() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if b.cells[other.From] != mover {
			continue
		}
		any = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !any {
		return ""
	}
	if !sameFile {
		return string([]byte{'a' + byte(m.From.File())})
	}
	if !sameRank {
		return string([]byte{'1' + byte(m.From.Rank())})
	}
	return m.From.String()
}

// ParseSan parses a SAN token relative to board b (which must not yet
// have had the move applied) and returns the corresponding Move. It
// returns a *ParseError if the token is malformed, and an
// IllegalOperationError if the token is well-formed but names no legal
// move in b.
func (b *Board) ParseSan(san string) (Move, error) {
	s := strings.TrimRight(san, "+#!?")
	if s == "--" || s == "O-O-O-O" {
		return NullMove, nil
	}
	legal := b.LegalMoves()

	if s == "O-O" || s == "0-0" {
		return b.findCastle(legal, false)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return b.findCastle(legal, true)
	}

	promo := NoPieceType
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+1 >= len(s) {
			return Move{}, parseErrorf("san", san, "missing promotion piece after '='")
		}
		promo = typeFromLetter(s[i+1])
		if promo == NoPieceType {
			return Move{}, parseErrorf("san", san, "invalid promotion piece")
		}
		s = s[:i]
	}

	typ := Pawn
	if s != "" && s[0] >= 'A' && s[0] <= 'Z' {
		typ = typeFromLetter(s[0])
		if typ == NoPieceType {
			return Move{}, parseErrorf("san", san, "unknown piece letter %q", s[0:1])
		}
		s = s[1:]
	}
	s = strings.ReplaceAll(s, "x", "")

	if len(s) < 2 {
		return Move{}, parseErrorf("san", san, "missing destination square")
	}
	to := squareFromString(s[len(s)-2:])
	if to == NoSquare {
		return Move{}, parseErrorf("san", san, "invalid destination square")
	}
	qualifier := s[:len(s)-2]

	var candidates []Move
	for _, m := range legal {
		if m.To != to || b.cells[m.From].Type() != typ {
			continue
		}
		if m.Promotion != promo {
			continue
		}
		if !matchesQualifier(m.From, qualifier) {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return Move{}, &IllegalOperationError{Op: "ParseSan", Reason: "no legal move matches " + strconv.Quote(san)}
	}
	if len(candidates) > 1 {
		return Move{}, parseErrorf("san", san, "ambiguous move")
	}
	return candidates[0], nil
}

func matchesQualifier(from Sq, qualifier string) bool {
	switch len(qualifier) {
	case 0:
		return true
	case 1:
		c := qualifier[0]
		if c >= 'a' && c <= 'h' {
			return from.File() == int(c-'a')
		}
		if c >= '1' && c <= '8' {
			return from.Rank() == int(c-'1')
		}
		return false
	case 2:
		return from == squareFromString(qualifier)
	}
	return false
}

func (b *Board) findCastle(legal []Move, queenside bool) (Move, error) {
	home := E1
	if b.SideToMove == Black {
		home = E8
	}
	for _, m := range legal {
		if m.From != home || b.cells[m.From].Type() != King {
			continue
		}
		df := m.To.File() - m.From.File()
		if (queenside && df == -2) || (!queenside && df == 2) {
			return m, nil
		}
	}
	op := "O-O"
	if queenside {
		op = "O-O-O"
	}
	return Move{}, &IllegalOperationError{Op: "ParseSan", Reason: op + " is not legal in this position"}
}
