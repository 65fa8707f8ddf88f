package chess

import (
	"strconv"
	"strings"
)

// startFen is the FEN of the standard starting position.
const startFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFen parses a FEN position string into a Board. An empty string is
// treated as the standard starting position. ParseFen validates full
// structure (piece counts, field counts, castling/en-passant consistency
// with Board.Consistent) and returns a *ParseError or
// *InconsistentPositionError describing the first problem found.
func ParseFen(fen string) (*Board, error) {
	if fen == "" {
		fen = startFen
	}
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, parseErrorf("fen", fen, "expected 4-6 space-separated fields, got %d", len(fields))
	}

	b := NewBoard()
	if err := parsePlacement(b, fields[0], fen); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return nil, parseErrorf("side-to-move", fen, "expected 'w' or 'b', got %q", fields[1])
	}

	if err := parseCastling(b, fields[2], fen); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq := squareFromString(fields[3])
		if sq == NoSquare {
			return nil, parseErrorf("ep square", fen, "invalid en-passant square %q", fields[3])
		}
		b.epSquare = sq
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, parseErrorf("halfmove clock", fen, "expected a non-negative integer, got %q", fields[4])
		}
		b.HalfmoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, parseErrorf("fullmove number", fen, "expected a positive integer, got %q", fields[5])
		}
		b.FullmoveNumber = n
	} else {
		b.FullmoveNumber = 1
	}

	b.rebuildPieceList()
	if err := b.Consistent(); err != nil {
		return nil, err
	}
	return b, nil
}

func parsePlacement(b *Board, placement, fen string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return parseErrorf("piece placement", fen, "expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range []byte(rankStr) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := pieceFromLetter(c)
			if !ok {
				return parseErrorf("piece placement", fen, "invalid piece letter %q", string(c))
			}
			if file > 7 {
				return parseErrorf("piece placement", fen, "rank %d has too many squares", rank+1)
			}
			b.cells[Square(file, rank)] = p
			file++
		}
		if file != 8 {
			return parseErrorf("piece placement", fen, "rank %d does not sum to 8 squares", rank+1)
		}
	}
	return nil
}

func parseCastling(b *Board, field, fen string) error {
	if field == "-" {
		return nil
	}
	for _, c := range []byte(field) {
		switch c {
		case 'K':
			b.castleRights[WhiteOO] = true
		case 'Q':
			b.castleRights[WhiteOOO] = true
		case 'k':
			b.castleRights[BlackOO] = true
		case 'q':
			b.castleRights[BlackOOO] = true
		default:
			return parseErrorf("castling", fen, "invalid castling letter %q", string(c))
		}
	}
	return nil
}

// Fen renders the board as a FEN string.
func (b *Board) Fen() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.cells[Square(file, rank)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if b.castleRights[WhiteOO] {
		castling += "K"
	}
	if b.castleRights[WhiteOOO] {
		castling += "Q"
	}
	if b.castleRights[BlackOO] {
		castling += "k"
	}
	if b.castleRights[BlackOOO] {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	sb.WriteString(b.epSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullmoveNumber))

	return sb.String()
}

// IsInitialPosition reports whether b is exactly the standard starting
// position (full piece set, all castling rights, white to move, no
// en-passant target, zero halfmove clock, fullmove number 1).
func (b *Board) IsInitialPosition() bool {
	return b.Fen() == startFen
}
