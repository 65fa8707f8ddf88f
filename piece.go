// Package chess provides a mailbox chess position model, move generation,
// legality checking, FEN and SAN/UCI conversion, and Zobrist/Polyglot
// position hashing.
package chess

// Colors.
const (
	White = 0
	Black = 1
)

// Piece types. Bits 0-2 of a Piece hold the type, bit 7 the color.
const (
	NoPieceType = 0
	Pawn        = 1
	Knight      = 2
	Bishop      = 3
	Rook        = 4
	Queen       = 5
	King        = 6
)

// colorBit is the bit that distinguishes black pieces from white ones.
const colorBit = 0x80

// Piece is a colored chess piece, or NoPiece for an empty square.
type Piece uint8

// NoPiece marks an empty, on-board square.
const NoPiece Piece = 0

// offBoard marks a mailbox cell that lies outside the 8x8 playing area.
const offBoard Piece = 0xFF

// Named pieces, as used by FEN and SAN rendering.
const (
	WP = Piece(White<<7) | Piece(Pawn)
	WN = Piece(White<<7) | Piece(Knight)
	WB = Piece(White<<7) | Piece(Bishop)
	WR = Piece(White<<7) | Piece(Rook)
	WQ = Piece(White<<7) | Piece(Queen)
	WK = Piece(White<<7) | Piece(King)
	BP = Piece(Black<<7) | Piece(Pawn)
	BN = Piece(Black<<7) | Piece(Knight)
	BB = Piece(Black<<7) | Piece(Bishop)
	BR = Piece(Black<<7) | Piece(Rook)
	BQ = Piece(Black<<7) | Piece(Queen)
	BK = Piece(Black<<7) | Piece(King)
)

// MakePiece builds a Piece from a color and a type.
func MakePiece(color int, typ int) Piece {
	return Piece(color<<7) | Piece(typ)
}

// Type returns the piece's type (NoPieceType for an empty square).
func (p Piece) Type() int { return int(p & 0x07) }

// Color returns the piece's color. Undefined for NoPiece.
func (p Piece) Color() int {
	if p&colorBit != 0 {
		return Black
	}
	return White
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool { return p == NoPiece }

// isOffBoard reports whether the cell is outside the playing area.
func (p Piece) isOffBoard() bool { return p == offBoard }

var pieceLetters = [...]byte{
	NoPieceType: '.',
	Pawn:        'P',
	Knight:      'N',
	Bishop:      'B',
	Rook:        'R',
	Queen:       'Q',
	King:        'K',
}

// letter returns the FEN/SAN piece letter, uppercase for white, lowercase
// for black. Empty squares render as '.'.
func (p Piece) letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	c := pieceLetters[p.Type()]
	if p.Color() == Black {
		c += 'a' - 'A'
	}
	return c
}

func pieceFromLetter(c byte) (Piece, bool) {
	color := White
	l := c
	if l >= 'a' && l <= 'z' {
		color = Black
		l -= 'a' - 'A'
	}
	for typ, letter := range pieceLetters {
		if typ == NoPieceType {
			continue
		}
		if letter == l {
			return MakePiece(color, typ), true
		}
	}
	return NoPiece, false
}

func typeFromLetter(c byte) int {
	switch c {
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPieceType
}
