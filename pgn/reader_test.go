package pgn

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

const sampleGame = `[Event "Test Match"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 {the Ruy Lopez} a6 (3... Nf6 4. O-O) 4. Ba4 Nf6
5. O-O Be7 1-0
`

func TestParseGame(t *testing.T) {
	g, err := ParseGame(context.Background(), sampleGame)
	require.NoError(t, err)
	v, _ := g.Header("White")
	assert.Equal(t, "Alice", v)
	assert.Equal(t, 10, g.Plies())
}

func TestParseGameComment(t *testing.T) {
	g, err := ParseGame(context.Background(), sampleGame)
	require.NoError(t, err)
	var comments []string
	for n := g.Root.Next; n != nil; n = n.Next {
		comments = append(comments, n.Comment...)
	}
	found := slices.ContainsFunc(comments, func(c string) bool {
		return strings.Contains(c, "Ruy Lopez")
	})
	assert.True(t, found, "expected to find the Ruy Lopez comment somewhere in the main line")
}

func TestParseGameVariation(t *testing.T) {
	g, err := ParseGame(context.Background(), sampleGame)
	require.NoError(t, err)
	var sawVariation bool
	for n := g.Root.Next; n != nil; n = n.Next {
		if len(n.Variations()) > 0 {
			sawVariation = true
		}
	}
	assert.True(t, sawVariation, "expected at least one variation in the main line")
}

func TestReaderStreamsMultipleGames(t *testing.T) {
	text := sampleGame + "\n" + sampleGame
	r, err := NewReader(context.Background(), strings.NewReader(text))
	require.NoError(t, err)
	count := 0
	for {
		g, err := r.ReadGame()
		if err != nil {
			break
		}
		require.NoError(t, g.ParseMoves())
		count++
	}
	assert.Equal(t, 2, count)
}

func TestReaderToleratesMalformedGame(t *testing.T) {
	text := "[Event \"broken\nmissing closing bracket\n\n" + sampleGame
	r, err := NewReader(context.Background(), strings.NewReader(text))
	require.NoError(t, err)
	_, err1 := r.ReadGame()
	assert.Error(t, err1, "expected the malformed game to produce an error")
	g2, err2 := r.ReadGame()
	require.NoError(t, err2, "expected to recover and parse the following game")
	v, _ := g2.Header("White")
	assert.Equal(t, "Alice", v)
}

func TestScanOffsets(t *testing.T) {
	text := sampleGame + "\n" + sampleGame
	offsets, err := ScanOffsets(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, offsets, 2)
	assert.EqualValues(t, 0, offsets[0])
	assert.Equal(t, "[", text[offsets[1]:offsets[1]+1])
}

func TestDetectEncodingUTF8(t *testing.T) {
	enc, _, err := DetectEncoding(strings.NewReader(sampleGame))
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
}

func TestDetectEncodingLatin1(t *testing.T) {
	// 0xE9 alone is not valid UTF-8, but is the Latin-1 encoding of 'é'.
	latin1 := []byte("[Event \"Caf\xE9 Open\"]\n")
	enc, _, err := DetectEncoding(strings.NewReader(string(latin1)))
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, enc)
}
