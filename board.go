package chess

// Board represents a chess position: piece placement, side to move,
// castling rights, en-passant target, halfmove clock, and fullmove
// number, plus enough snapshot state to undo exactly one applied move.
type Board struct {
	cells [boardSize]Piece // current position, border cells hold offBoard
	prev  [boardSize]Piece // snapshot for undo

	SideToMove int

	castleRights     [4]bool // indexed by a castling-right constant
	prevCastleRights [4]bool

	epSquare     Sq // en-passant target square, NoSquare if none
	prevEpSquare Sq

	HalfmoveClock int
	prevHalfmove  int

	FullmoveNumber int

	undoAvailable bool
	lastWasNull   bool

	// pieces[color][type] lists the occupied squares of that color and
	// type. The slices grow as needed; in a reachable position none holds
	// more than 10 squares, since 8 pawns can promote to at most 8 extra
	// pieces of one kind beyond the starting count.
	pieces [2][7][]Sq

	hashValid    bool
	hash         uint64
	posHashValid bool
	posHash      uint64
}

// Castling-rights indices.
const (
	WhiteOO = iota
	WhiteOOO
	BlackOO
	BlackOOO
)

// castleStartSquares names the king/rook home squares for each castling
// right.
var castleStartSquares = [4]struct{ king, rook Sq }{
	WhiteOO:  {E1, H1},
	WhiteOOO: {E1, A1},
	BlackOO:  {E8, H8},
	BlackOOO: {E8, A8},
}

// castleDestSquares names the post-castle king/rook squares.
var castleDestSquares = [4]struct{ king, rook Sq }{
	WhiteOO:  {G1, F1},
	WhiteOOO: {C1, D1},
	BlackOO:  {G8, F8},
	BlackOOO: {C8, D8},
}

// NewBoard returns an empty board: no pieces, no castling rights, white
// to move.
func NewBoard() *Board {
	b := &Board{epSquare: NoSquare, prevEpSquare: NoSquare, FullmoveNumber: 1}
	for i := range b.cells {
		b.cells[i] = offBoard
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			b.cells[Square(f, r)] = NoPiece
		}
	}
	return b
}

// NewInitialBoard returns a board set up in the standard starting
// position with all castling rights.
func NewInitialBoard() *Board {
	return MustParseFen("")
}

// MustParseFen is like ParseFen but panics if fen cannot be parsed.
// ParseFen("") returns the standard starting position.
func MustParseFen(fen string) *Board {
	b, err := ParseFen(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent deep copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	for c := 0; c < 2; c++ {
		for t := 0; t < 7; t++ {
			if b.pieces[c][t] != nil {
				nb.pieces[c][t] = append([]Sq(nil), b.pieces[c][t]...)
			}
		}
	}
	return &nb
}

// At returns the piece on sq. Callers must only pass on-board squares.
func (b *Board) At(sq Sq) Piece {
	return b.cells[sq]
}

// SetPieceAt places p on sq, bypassing move generation. It exists for
// callers constructing or editing a position by hand; it does not update
// castling rights or the en-passant target and does not validate overall
// consistency -- call Consistent after a batch of edits. Returns
// IllegalOperationError if sq is off-board.
func (b *Board) SetPieceAt(sq Sq, p Piece) error {
	if sq < 0 || int(sq) >= boardSize || b.cells[sq].isOffBoard() {
		return &IllegalOperationError{Op: "SetPieceAt", Reason: "square out of range"}
	}
	b.removeFromPieceList(sq)
	b.cells[sq] = p
	if !p.IsEmpty() {
		b.addToPieceList(p, sq)
	}
	b.invalidateHash()
	return nil
}

func (b *Board) removeFromPieceList(sq Sq) {
	old := b.cells[sq]
	if old.IsEmpty() || old.isOffBoard() {
		return
	}
	list := b.pieces[old.Color()][old.Type()]
	for i, s := range list {
		if s == sq {
			b.pieces[old.Color()][old.Type()] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (b *Board) addToPieceList(p Piece, sq Sq) {
	b.pieces[p.Color()][p.Type()] = append(b.pieces[p.Color()][p.Type()], sq)
}

func (b *Board) invalidateHash() {
	b.hashValid = false
	b.posHashValid = false
}

// rebuildPieceList scans the 64 playable cells and reconstructs the piece
// list from scratch. Used after Undo, which restores the raw cell array
// but not the piece list, and after FEN parsing.
func (b *Board) rebuildPieceList() {
	for c := 0; c < 2; c++ {
		for t := 0; t < 7; t++ {
			b.pieces[c][t] = b.pieces[c][t][:0]
		}
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := Square(f, r)
			p := b.cells[sq]
			if !p.IsEmpty() {
				b.addToPieceList(p, sq)
			}
		}
	}
}

// king returns the square of the given color's king, or NoSquare if none
// is present (an inconsistent position).
func (b *Board) king(color int) Sq {
	if list := b.pieces[color][King]; len(list) > 0 {
		return list[0]
	}
	return NoSquare
}

// UndoAvailable reports whether Undo can currently be called.
func (b *Board) UndoAvailable() bool { return b.undoAvailable }

// LastWasNull reports whether the most recently applied move was a null
// move: a pure side-to-move toggle with no piece moving.
func (b *Board) LastWasNull() bool { return b.lastWasNull }

// CanCastle reports whether the given castling right is currently held.
// It does not check path safety or whether the king is in check; see
// LegalMoves for that.
func (b *Board) CanCastle(right int) bool { return b.castleRights[right] }

// SetCanCastle sets or clears a castling right directly, bypassing the
// bookkeeping Apply performs. Used when constructing positions by hand.
func (b *Board) SetCanCastle(right int, can bool) {
	b.castleRights[right] = can
	b.invalidateHash()
}

// EpSquare returns the current en-passant target square, or NoSquare.
func (b *Board) EpSquare() Sq { return b.epSquare }

// SetEpSquare sets the en-passant target directly, bypassing Apply.
func (b *Board) SetEpSquare(sq Sq) {
	b.epSquare = sq
	b.invalidateHash()
}

// Apply mutates the board in place by playing m, and buffers enough state
// to undo exactly one level. m is assumed pseudo-legal; Apply does not
// check legality.
func (b *Board) Apply(m Move) {
	b.prev = b.cells
	b.prevCastleRights = b.castleRights
	b.prevEpSquare = b.epSquare
	b.prevHalfmove = b.HalfmoveClock

	if m.IsNull() {
		b.SideToMove ^= 1
		b.epSquare = NoSquare
		if b.SideToMove == White {
			b.FullmoveNumber++
		}
		b.lastWasNull = true
		b.undoAvailable = true
		b.invalidateHash()
		return
	}
	b.lastWasNull = false

	mover := b.cells[m.From]
	captured := b.cells[m.To]
	epTarget := b.epSquare
	isEnPassant := mover.Type() == Pawn && m.To == epTarget && captured.IsEmpty()
	isCastle := mover.Type() == King && isCastleMove(b, m)

	if !captured.IsEmpty() {
		b.removeFromPieceList(m.To)
	}

	b.removeFromPieceList(m.From)
	b.cells[m.From] = NoPiece

	placed := mover
	if m.Promotion != NoPieceType {
		placed = MakePiece(mover.Color(), m.Promotion)
	}
	b.cells[m.To] = placed
	b.addToPieceList(placed, m.To)

	if isEnPassant {
		capSq := Square(m.To.File(), m.From.Rank())
		b.removeFromPieceList(capSq)
		b.cells[capSq] = NoPiece
	}

	if isCastle {
		right := castleRightFor(b.SideToMove, m.To)
		rookFrom := castleStartSquares[right].rook
		rookTo := castleDestSquares[right].rook
		b.removeFromPieceList(rookFrom)
		b.cells[rookFrom] = NoPiece
		rook := MakePiece(b.SideToMove, Rook)
		b.cells[rookTo] = rook
		b.addToPieceList(rook, rookTo)
	}

	if mover.Type() == Pawn || !captured.IsEmpty() || isEnPassant {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}

	b.epSquare = NoSquare
	if mover.Type() == Pawn {
		dy := m.To.Rank() - m.From.Rank()
		if dy == 2 || dy == -2 {
			b.epSquare = Square(m.From.File(), m.From.Rank()+dy/2)
		}
	}

	b.updateCastlingRights(m.From, m.To, mover, isCastle)

	b.SideToMove ^= 1
	if b.SideToMove == White {
		b.FullmoveNumber++
	}
	b.undoAvailable = true
	b.invalidateHash()
}

// updateCastlingRights clears rights made stale by a king move, a rook
// move off its home square, a rook captured on its home square, or a
// completed castle.
func (b *Board) updateCastlingRights(from, to Sq, mover Piece, isCastle bool) {
	if isCastle {
		if mover.Color() == White {
			b.castleRights[WhiteOO] = false
			b.castleRights[WhiteOOO] = false
		} else {
			b.castleRights[BlackOO] = false
			b.castleRights[BlackOOO] = false
		}
		return
	}
	if mover.Type() == King {
		if mover.Color() == White {
			b.castleRights[WhiteOO] = false
			b.castleRights[WhiteOOO] = false
		} else {
			b.castleRights[BlackOO] = false
			b.castleRights[BlackOOO] = false
		}
	}
	for right, sqs := range castleStartSquares {
		if from == sqs.rook || to == sqs.rook {
			b.castleRights[right] = false
		}
	}
}

func castleRightFor(color int, kingTo Sq) int {
	switch {
	case color == White && kingTo == G1:
		return WhiteOO
	case color == White && kingTo == C1:
		return WhiteOOO
	case color == Black && kingTo == G8:
		return BlackOO
	default:
		return BlackOOO
	}
}

// isCastleMove reports whether m, which moves the side-to-move's king,
// travels two files from the king's home square.
func isCastleMove(b *Board, m Move) bool {
	home := E1
	if b.SideToMove == Black {
		home = E8
	}
	if m.From != home {
		return false
	}
	df := m.To.File() - m.From.File()
	return df == 2 || df == -2
}

// Undo reverses the most recently applied move. It fails with
// IllegalOperationError if called twice in a row, or before any Apply.
func (b *Board) Undo() error {
	if !b.undoAvailable {
		return &IllegalOperationError{Op: "Undo", Reason: ErrUndoUnavailable}
	}
	b.cells = b.prev
	b.castleRights = b.prevCastleRights
	b.epSquare = b.prevEpSquare
	b.HalfmoveClock = b.prevHalfmove
	b.SideToMove ^= 1
	if b.SideToMove == Black {
		b.FullmoveNumber--
	}
	b.undoAvailable = false
	b.lastWasNull = false
	b.rebuildPieceList()
	b.invalidateHash()
	return nil
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	king := b.king(b.SideToMove)
	if king == NoSquare {
		return false
	}
	return b.IsAttacked(king, 1-b.SideToMove)
}

// Consistent checks the structural invariants a legally-reachable
// position must satisfy: exactly one king per side, no pawns on the back
// ranks, the side not to move not in check, kings not adjacent, at most 8
// pawns per side, no more extra (promoted) pieces than missing pawns,
// castling rights only held when the relevant king and rook are on their
// home squares, and an en-passant square on the rank that fits the side
// to move.
func (b *Board) Consistent() error {
	if len(b.pieces[White][King]) != 1 {
		return &InconsistentPositionError{Reason: "white does not have exactly one king"}
	}
	if len(b.pieces[Black][King]) != 1 {
		return &InconsistentPositionError{Reason: "black does not have exactly one king"}
	}
	for _, sq := range b.pieces[White][Pawn] {
		if sq.Rank() == Rank1 || sq.Rank() == Rank8 {
			return &InconsistentPositionError{Reason: "white pawn on back rank"}
		}
	}
	for _, sq := range b.pieces[Black][Pawn] {
		if sq.Rank() == Rank1 || sq.Rank() == Rank8 {
			return &InconsistentPositionError{Reason: "black pawn on back rank"}
		}
	}
	if b.IsAttacked(b.king(1-b.SideToMove), b.SideToMove) {
		return &InconsistentPositionError{Reason: "side not to move is in check"}
	}
	wk, bk := b.king(White), b.king(Black)
	if abs(wk.File()-bk.File()) <= 1 && abs(wk.Rank()-bk.Rank()) <= 1 {
		return &InconsistentPositionError{Reason: "kings are adjacent"}
	}
	for _, color := range []int{White, Black} {
		pawns := len(b.pieces[color][Pawn])
		if pawns > 8 {
			return &InconsistentPositionError{Reason: "more than 8 pawns"}
		}
		extra := extraCount(len(b.pieces[color][Queen]), 1) +
			extraCount(len(b.pieces[color][Rook]), 2) +
			extraCount(len(b.pieces[color][Bishop]), 2) +
			extraCount(len(b.pieces[color][Knight]), 2)
		if extra > 8-pawns {
			return &InconsistentPositionError{Reason: "more promoted pieces than missing pawns can account for"}
		}
	}
	checks := []struct {
		right      int
		king, rook Sq
		color      int
	}{
		{WhiteOO, E1, H1, White},
		{WhiteOOO, E1, A1, White},
		{BlackOO, E8, H8, Black},
		{BlackOOO, E8, A8, Black},
	}
	for _, c := range checks {
		if !b.castleRights[c.right] {
			continue
		}
		if b.cells[c.king] != MakePiece(c.color, King) || b.cells[c.rook] != MakePiece(c.color, Rook) {
			return &InconsistentPositionError{Reason: "castling right held without king/rook on home square"}
		}
	}
	if b.epSquare != NoSquare {
		wantRank := Rank6
		if b.SideToMove == Black {
			wantRank = Rank3
		}
		if b.epSquare.Rank() != wantRank {
			return &InconsistentPositionError{Reason: "en-passant square on wrong rank for side to move"}
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// extraCount returns how many pieces of a kind a side holds beyond what
// the starting position grants it (one for a queen, two for a rook,
// bishop or knight), clamped to zero. Each one beyond that budget can
// only exist through promotion, so it must be paid for by a missing
// pawn.
func extraCount(have, starting int) int {
	if have <= starting {
		return 0
	}
	return have - starting
}
