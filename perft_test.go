package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// perft counts the number of leaf positions reachable from b after
// exactly depth plies, the standard move-generator correctness check.
// Each child position is a clone, since Board keeps only one undo level.
func perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.LegalMoves() {
		next := b.Clone()
		next.Apply(m)
		nodes += perft(next, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	b := NewInitialBoard()
	for _, test := range tests {
		assert.Equal(t, test.nodes, perft(b, test.depth), "perft(%d)", test.depth)
	}
}

func TestPerftStartingPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	b := NewInitialBoard()
	assert.Equal(t, uint64(4865609), perft(b, 5))
	assert.Equal(t, uint64(119060324), perft(b, 6))
}

// TestPerftKiwipete exercises castling, en passant, and promotions in one
// position, the well-known "Kiwipete" perft stress test.
func TestPerftKiwipete(t *testing.T) {
	b := MustParseFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	tests := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
	}
	for _, test := range tests {
		assert.Equal(t, test.nodes, perft(b, test.depth), "perft(%d)", test.depth)
	}
}

// TestPerftPromotionPosition exercises under-promotion and a pinned
// knight, per the standard fifth perft-suite position.
func TestPerftPromotionPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	b := MustParseFen("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	assert.Equal(t, uint64(89941194), perft(b, 5))
}

// TestPerftEndgamePosition exercises a sparse endgame position with a
// far-advancing rook pawn, the standard third perft-suite position.
func TestPerftEndgamePosition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	b := MustParseFen("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	assert.Equal(t, uint64(11030083), perft(b, 6))
	assert.Equal(t, uint64(178633661), perft(b, 7))
}
