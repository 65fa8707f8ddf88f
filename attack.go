package chess

// Attack-table bit flags: which piece kind could reach across a given
// mailbox distance. Transcribed from the original ATTACK_TABLE.
const (
	attKnight = 1 << 0
	attBishop = 1 << 1
	attRook   = 1 << 2
	attQueen  = 1 << 3
	attKing   = 1 << 4
)

// attackTable[d] is a bitmask of piece kinds that can potentially attack
// across mailbox distance d = |to - from|, for d in 0..77. It is a
// correctness-and-speed filter: it rejects geometrically impossible
// (square, piece) pairs without generating a single move. It does not
// encode direction, so candidates that pass still need their movement
// rule checked by pieceReaches.
var attackTable = [78]uint8{
	0x00, 0x1C, 0x0C, 0x0C, 0x0C, 0x0C, 0x0C, 0x0C, 0x01, 0x1A,
	0x1C, 0x1A, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A, 0x01,
	0x0C, 0x01, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x00, 0x0A, 0x0A, 0x00, 0x00, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x00, 0x0A, 0x0A, 0x00, 0x00, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A,
}

func mailboxDistance(from, to Sq) int {
	d := int(to) - int(from)
	if d < 0 {
		d = -d
	}
	return d
}

// IsAttacked reports whether sq is attacked by a piece of the given color.
// It panics with InternalError if sq is off-board: callers are expected to
// only query on-board squares.
func (b *Board) IsAttacked(sq Sq, byColor int) bool {
	if b.cells[sq].isOffBoard() {
		panic(&InternalError{Reason: "IsAttacked: square off board"})
	}
	if b.pawnAttacks(sq, byColor) {
		return true
	}
	for _, s := range b.pieces[byColor][Knight] {
		if mailboxDistance(s, sq) < len(attackTable) && attackTable[mailboxDistance(s, sq)]&attKnight != 0 && b.pieceReaches(s, sq, Knight) {
			return true
		}
	}
	for _, s := range b.pieces[byColor][Bishop] {
		if b.pieceReaches(s, sq, Bishop) {
			return true
		}
	}
	for _, s := range b.pieces[byColor][Rook] {
		if b.pieceReaches(s, sq, Rook) {
			return true
		}
	}
	for _, s := range b.pieces[byColor][Queen] {
		if b.pieceReaches(s, sq, Queen) {
			return true
		}
	}
	for _, s := range b.pieces[byColor][King] {
		if mailboxDistance(s, sq) < len(attackTable) && attackTable[mailboxDistance(s, sq)]&attKing != 0 && b.pieceReaches(s, sq, King) {
			return true
		}
	}
	return false
}

// pawnAttacks reports whether a pawn of byColor attacks sq, i.e. whether
// one of the two squares diagonally behind sq (from byColor's point of
// view) holds such a pawn. En-passant captures are excluded: they cannot
// give check directly.
func (b *Board) pawnAttacks(sq Sq, byColor int) bool {
	back := -10
	if byColor == Black {
		back = 10
	}
	for _, off := range [2]int{-1, 1} {
		from := sq.step(back + off)
		if from == NoSquare || b.cells[from].isOffBoard() {
			continue
		}
		p := b.cells[from]
		if p.Color() == byColor && p.Type() == Pawn {
			return true
		}
	}
	return false
}

// pieceReaches reports whether a piece of the given type on `from` can
// reach `to` by its normal movement rule (ignoring whose turn it is and
// ignoring check), used after the attack table has already filtered by
// distance.
func (b *Board) pieceReaches(from, to Sq, typ int) bool {
	switch typ {
	case Knight:
		for _, off := range knightOffsets {
			if from.step(off) == to {
				return true
			}
		}
		return false
	case King:
		for _, off := range kingOffsets {
			if from.step(off) == to {
				return true
			}
		}
		return false
	case Bishop:
		return b.rayReaches(from, to, bishopOffsets[:])
	case Rook:
		return b.rayReaches(from, to, rookOffsets[:])
	case Queen:
		return b.rayReaches(from, to, queenOffsets[:])
	}
	return false
}

// rayReaches walks each direction in offsets from `from` until it hits an
// off-board cell or an occupied one, reporting whether `to` was reached
// before being blocked. `to` itself may be occupied (that's the capture
// case callers care about).
func (b *Board) rayReaches(from, to Sq, offsets []int) bool {
	for _, off := range offsets {
		sq := from.step(off)
		for sq != NoSquare && !b.cells[sq].isOffBoard() {
			if sq == to {
				return true
			}
			if !b.cells[sq].IsEmpty() {
				break
			}
			sq = sq.step(off)
		}
	}
	return false
}
