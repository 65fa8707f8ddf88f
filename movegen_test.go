package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

func TestLegalMovesStartingPositionCount(t *testing.T) {
	b := NewInitialBoard()
	assert.Len(t, b.LegalMoves(), 20, "legal moves from the starting position")
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// White rook on e5 is pinned to the white king on e1 by the black
	// rook on e8; it may not step off the e-file.
	b := MustParseFen("4r1k1/8/8/4R3/8/8/8/4K3 w - - 0 1")
	illegal := slices.ContainsFunc(b.LegalMoves(), func(m Move) bool {
		return m.From == E5 && m.To.File() != FileE
	})
	assert.False(t, illegal, "pinned rook made an illegal off-file move")
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// Black rook on f8 attacks f1, the square the white king must pass
	// through to castle kingside.
	b := MustParseFen("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	castles := slices.ContainsFunc(b.LegalMoves(), func(m Move) bool {
		return m.From == E1 && m.To == G1
	})
	assert.False(t, castles, "castling through an attacked square should not be legal")
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	b := MustParseFen("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	b.Apply(Move{From: A1, To: A8})
	assert.True(t, b.IsMate(), "expected checkmate after Ra8#")
}

func TestStalemate(t *testing.T) {
	b := MustParseFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.True(t, b.IsStalemate(), "expected stalemate")
}
