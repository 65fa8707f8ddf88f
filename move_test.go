package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUciRoundTrip(t *testing.T) {
	tests := []string{"e2e4", "e7e8q", "0000"}
	for _, s := range tests {
		m, err := ParseUci(s)
		require.NoError(t, err, "ParseUci(%q)", s)
		assert.Equal(t, s, m.Uci(), "Uci round trip %q", s)
	}
}

func TestSanDisambiguation(t *testing.T) {
	b := MustParseFen("4k3/8/8/R6R/8/8/8/4K2R w K - 0 1")
	assert.Equal(t, "Ra6", b.San(Move{From: A5, To: A6}))
	assert.Equal(t, "Rad5", b.San(Move{From: A5, To: D5}), "file disambiguation")
	assert.Equal(t, "Rhd5", b.San(Move{From: H5, To: D5}), "file disambiguation")
}

func TestSanCastle(t *testing.T) {
	b := MustParseFen("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.Equal(t, "O-O", b.San(Move{From: E1, To: G1}))
}

func TestSanCheckAndMateSuffix(t *testing.T) {
	b := MustParseFen("7k/5pp1/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Equal(t, "Ra8+", b.San(Move{From: A1, To: A8}))

	mate := MustParseFen("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	assert.Equal(t, "Ra8#", mate.San(Move{From: A1, To: A8}))
}

func TestParseSanRoundTrip(t *testing.T) {
	b := NewInitialBoard()
	for _, m := range b.LegalMoves() {
		san := b.San(m)
		parsed, err := b.ParseSan(san)
		require.NoError(t, err, "ParseSan(%q)", san)
		assert.Equal(t, m, parsed, "ParseSan(%q)", san)
	}
}

func TestParseSanRejectsIllegalMove(t *testing.T) {
	b := NewInitialBoard()
	_, err := b.ParseSan("Nf6")
	assert.Error(t, err, "expected error parsing a black-only move on white's turn")
}

func TestApplyUndoRestoresPosition(t *testing.T) {
	b := NewInitialBoard()
	before := b.Fen()
	m, err := ParseUci("e2e4")
	require.NoError(t, err)
	b.Apply(m)
	assert.NotEqual(t, before, b.Fen(), "Apply did not change position")
	require.NoError(t, b.Undo())
	assert.Equal(t, before, b.Fen(), "Undo did not restore position")
}

func TestUndoWithoutApplyFails(t *testing.T) {
	b := NewInitialBoard()
	assert.Error(t, b.Undo(), "expected IllegalOperationError")
}

func TestEnPassantCapture(t *testing.T) {
	b := MustParseFen("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	m := Move{From: E5, To: D6}
	assert.Equal(t, "exd6", b.San(m))
	b.Apply(m)
	assert.True(t, b.At(D5).IsEmpty(), "captured pawn still present on d5")
}
