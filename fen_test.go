package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFenRoundTrip(t *testing.T) {
	tests := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r4rk1/2pp1ppp/8/8/5P2/8/PPPPP1PP/RNBQKBNR b KQ c3 0 12",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	}
	for _, fen := range tests {
		b, err := ParseFen(fen)
		require.NoError(t, err, "ParseFen(%q)", fen)
		assert.Equal(t, fen, b.Fen(), "round trip %q", fen)
	}
}

func TestParseFenEmptyIsStartingPosition(t *testing.T) {
	b, err := ParseFen("")
	require.NoError(t, err)
	assert.True(t, b.IsInitialPosition(), "expected starting position, got %s", b.Fen())
	assert.Equal(t, WK, b.At(E1))
	assert.Equal(t, BK, b.At(E8))
}

func TestParseFenRejectsMalformed(t *testing.T) {
	tests := []string{
		"8/8/8/8/8/8/8 w - - 0 1",                                   // 7 ranks
		"8/8/8/8/8/8/8/9 w - - 0 1",                                 // rank sums to 9
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side to move
		"4k3/8/8/8/8/8/8/4K3 w KQkq - 0 1",                         // rights without rooks
	}
	for _, fen := range tests {
		_, err := ParseFen(fen)
		assert.Error(t, err, "ParseFen(%q): expected error", fen)
	}
}

func TestBoardConsistentRejectsTwoKings(t *testing.T) {
	b := NewBoard()
	_ = b.SetPieceAt(E1, WK)
	_ = b.SetPieceAt(E8, BK)
	_ = b.SetPieceAt(A1, WK)
	assert.Error(t, b.Consistent(), "expected inconsistency error for two white kings")
}
