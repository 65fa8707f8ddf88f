package pgn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(input string) []item {
	l := newLexer(input, 1)
	var items []item
	for {
		it := l.item()
		items = append(items, it)
		if it.typ == itemEOF {
			return items
		}
	}
}

func TestLexerTags(t *testing.T) {
	items := lexAll(`[Event "Test"]`)
	want := []itemType{itemLBracket, itemSymbol, itemString, itemRBracket, itemEOF}
	if assert.Len(t, items, len(want)) {
		for i, typ := range want {
			assert.Equal(t, typ, items[i].typ, "item %d", i)
		}
	}
}

func TestLexerMovetext(t *testing.T) {
	items := lexAll(`1. e4 e5 2. Nf3 {a comment} Nc6 $1 1-0`)
	var symbols []string
	for _, it := range items {
		if it.typ == itemSymbol {
			symbols = append(symbols, it.val)
		}
	}
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, symbols)
}

func TestLexerUnclosedComment(t *testing.T) {
	l := newLexer(`{unterminated`, 1)
	defer func() {
		assert.NotNil(t, recover(), "expected a panic from an unclosed comment")
	}()
	l.item()
}
