package chess

// Sq is a mailbox square index into a 10x12 board: a 10-wide, 12-tall grid
// whose border cells are sentinels, with ranks 1-8 occupying rows 2-9 and
// files a-h occupying columns 1-8. Off-board neighbors of an on-board
// square can be detected by a single cell read instead of a range check.
type Sq int8

// NoSquare marks the absence of a square (e.g. no en-passant target).
const NoSquare Sq = -1

// Square returns the mailbox index for the given file (0-7) and rank (0-7).
func Square(file, rank int) Sq {
	return Sq((rank+2)*10 + (file + 1))
}

// File returns the square's file, 0 (a) through 7 (h).
func (sq Sq) File() int { return int(sq)%10 - 1 }

// Rank returns the square's rank, 0 (rank 1) through 7 (rank 8).
func (sq Sq) Rank() int { return int(sq)/10 - 2 }

// RelativeRank returns the square's rank as seen by the given color: rank 0
// is always that color's back rank.
func (sq Sq) RelativeRank(color int) int {
	if color == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// onBoard reports whether the mailbox index falls within the 8x8 playing
// area (as opposed to the sentinel border).
func (sq Sq) onBoard() bool {
	f, r := sq.File(), sq.Rank()
	return f >= 0 && f <= 7 && r >= 0 && r <= 7
}

// Named squares a1..h8, matching the original mailbox-120 numbering
// (A1=21 ... H8=98) so the attack/direction tables transcribe verbatim.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 = Sq(21), Sq(22), Sq(23), Sq(24), Sq(25), Sq(26), Sq(27), Sq(28)
	A2, B2, C2, D2, E2, F2, G2, H2 = Sq(31), Sq(32), Sq(33), Sq(34), Sq(35), Sq(36), Sq(37), Sq(38)
	A3, B3, C3, D3, E3, F3, G3, H3 = Sq(41), Sq(42), Sq(43), Sq(44), Sq(45), Sq(46), Sq(47), Sq(48)
	A4, B4, C4, D4, E4, F4, G4, H4 = Sq(51), Sq(52), Sq(53), Sq(54), Sq(55), Sq(56), Sq(57), Sq(58)
	A5, B5, C5, D5, E5, F5, G5, H5 = Sq(61), Sq(62), Sq(63), Sq(64), Sq(65), Sq(66), Sq(67), Sq(68)
	A6, B6, C6, D6, E6, F6, G6, H6 = Sq(71), Sq(72), Sq(73), Sq(74), Sq(75), Sq(76), Sq(77), Sq(78)
	A7, B7, C7, D7, E7, F7, G7, H7 = Sq(81), Sq(82), Sq(83), Sq(84), Sq(85), Sq(86), Sq(87), Sq(88)
	A8, B8, C8, D8, E8, F8, G8, H8 = Sq(91), Sq(92), Sq(93), Sq(94), Sq(95), Sq(96), Sq(97), Sq(98)
)

// FileA..FileH and Rank1..Rank8 name the 0-based file/rank indices.
const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// String returns the algebraic name of the square ("a1".."h8"), or "-" for
// NoSquare.
func (sq Sq) String() string {
	if sq == NoSquare || !sq.onBoard() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// squareFromString parses algebraic square notation ("e4"). Returns
// NoSquare if s is not a valid square.
func squareFromString(s string) Sq {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare
	}
	return Square(int(s[0]-'a'), int(s[1]-'1'))
}

// boardSize is the length of the 10x12 mailbox array.
const boardSize = 120

// step returns the mailbox index reached by stepping the given offset from
// sq, or NoSquare if that index would fall outside the mailbox array
// entirely. Callers must still check the destination cell for the
// off-board sentinel value: that single cell read, not a range check, is
// what lets move generation detect board edges.
func (sq Sq) step(offset int) Sq {
	idx := int(sq) + offset
	if idx < 0 || idx >= boardSize {
		return NoSquare
	}
	return Sq(idx)
}
