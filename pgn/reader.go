package pgn

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Encoding identifies the text encoding of a PGN source.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingLatin1
)

// sniffWindow is how much of the input DetectEncoding inspects before
// giving up and assuming UTF-8. Real-world PGN databases occasionally
// carry Latin-1 player names or comments inside an otherwise ASCII file,
// so a small prefix is usually enough to decide.
const sniffWindow = 4000

// DetectEncoding inspects up to the first sniffWindow bytes of r and
// reports whether they decode as valid UTF-8. Any byte sequence that is
// not valid UTF-8 is assumed to be Latin-1 (ISO-8859-1), under which every
// byte value is a valid code point, so detection can never fail outright
// -- it can only fall back to the permissive encoding.
func DetectEncoding(r io.Reader) (Encoding, io.Reader, error) {
	buf := make([]byte, sniffWindow)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return EncodingUTF8, nil, err
	}
	buf = buf[:n]
	enc := EncodingUTF8
	if !utf8.Valid(buf) {
		enc = EncodingLatin1
	}
	return enc, io.MultiReader(bytes.NewReader(buf), r), nil
}

// decodeLatin1 expands a Latin-1 byte string to UTF-8: since Latin-1's
// code points 0-255 map directly onto the first 256 Unicode code points,
// each byte becomes exactly one rune.
func decodeLatin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range []byte(s) {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// ScanOffsets scans r for PGN game boundaries without fully parsing any
// game, returning the byte offset of each game's first "[" tag line. It
// is meant for indexing multi-gigabyte PGN files: offsets let a caller
// seek directly to the Nth game later via io.Seeker, instead of holding
// the whole file or its games in memory.
func ScanOffsets(r io.Reader) ([]int64, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var offsets []int64
	var pos int64
	atLineStart := true
	inGame := false
	for {
		line, err := br.ReadString('\n')
		lineStart := pos
		pos += int64(len(line))
		trimmed := strings.TrimRight(line, "\r\n")
		if atLineStart && strings.HasPrefix(trimmed, "[") {
			if !inGame {
				offsets = append(offsets, lineStart)
				inGame = true
			}
		} else if trimmed == "" {
			inGame = false
		}
		atLineStart = true
		if err != nil {
			if err == io.EOF {
				return offsets, nil
			}
			return offsets, err
		}
	}
}

// Reader reads games one at a time from a PGN source, tolerating
// malformed games by skipping to the next one and reporting a
// *ParseError for the one that failed.
type Reader struct {
	ctx  context.Context
	lex  *lexer
	pos  int
	item item // parser lookahead carried from one ReadGame call to the next
}

// NewReader prepares r for streaming reads via ReadGame. The entire
// source is read into memory up front (PGN movetext parsing needs random
// access within a game for variation nesting); callers indexing huge
// files should use ScanOffsets and Seek instead of holding every game at
// once.
func NewReader(ctx context.Context, r io.Reader) (*Reader, error) {
	enc, r, err := DetectEncoding(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if enc == EncodingLatin1 {
		text = decodeLatin1(text)
	}
	return &Reader{ctx: ctx, lex: newLexer(text, 1)}, nil
}

// ReadGame reads and returns the next game's headers, deferring movetext
// parsing to Game.ParseMoves. It returns io.EOF once the source is
// exhausted. A malformed game produces a *ParseError; the reader then
// resynchronizes at the next blank line and subsequent calls continue
// from there.
func (rd *Reader) ReadGame() (*Game, error) {
	if err := rd.ctx.Err(); err != nil {
		return nil, err
	}
	p := &parser{lex: rd.lex, pos: rd.pos, item: rd.item}
	game, err := p.readGame()
	rd.pos, rd.item = p.pos, p.item
	if err != nil {
		logw.Errorf(rd.ctx, "Skipping malformed game: %v", err)
		return nil, err
	}
	if game == nil {
		return nil, io.EOF
	}
	logw.Infof(rd.ctx, "Read game %v-%v from %v", firstHeader(game, "White"), firstHeader(game, "Black"), firstHeader(game, "Event"))
	return game, nil
}

func firstHeader(g *Game, tag string) string {
	if v, ok := g.Header(tag); ok {
		return v
	}
	return "?"
}

// ParseGame parses a single game from an in-memory PGN string, including
// its movetext. Unlike Reader.ReadGame, there is no later ParseMoves
// call: the whole game is ready to use immediately.
func ParseGame(ctx context.Context, text string) (*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := &parser{lex: newLexer(text, 1)}
	game, err := p.readGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("pgn: no game found in input")
	}
	if err := game.ParseMoves(); err != nil {
		return nil, err
	}
	return game, nil
}

// parser holds the state of the movetext/header parser. It shares the
// lexer's panic/recover discipline: lexer and parser errors are thrown as
// typed panics (lexPanic, parsePanic) scoped to a single readGame or
// parseMoves call, and converted to a *ParseError at that boundary. This
// lets deeply nested recursive-descent code (variation parsing) bail out
// in one step without threading error returns through every call.
type parser struct {
	lex      *lexer
	pos      int
	item     item
	lastitem item
}

// ParseError describes a malformed PGN header or movetext token, located
// by line and column in the source text.
type ParseError struct {
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

type (
	lexPanic   string
	parsePanic string
)

func (p *parser) panicf(format string, args ...interface{}) {
	panic(parsePanic(fmt.Sprintf(format, args...)))
}

func (p *parser) recover(errp *error) {
	err := recover()
	if err == nil {
		return
	}
	var line, col int
	var msg string
	switch v := err.(type) {
	case lexPanic:
		line, col = p.lex.coords(-1)
		msg = string(v)
	case parsePanic:
		line, col = p.lex.coords(p.pos - p.lex.pos)
		msg = string(v)
	default:
		panic(err)
	}
	*errp = &ParseError{Line: line, Col: col, Message: msg}
	p.lex.recover()
	p.item = item{}
}

func (p *parser) next() {
	p.lastitem = p.item
	p.pos = p.lex.pos
	p.item = p.lex.item()
}

func (p *parser) accept(typ itemType) bool {
	for p.item.typ == itemComment {
		p.next()
	}
	if p.item.typ != typ {
		return false
	}
	p.next()
	return true
}

func (p *parser) expect(typ itemType) item {
	if !p.accept(typ) {
		p.panicf("expected %s, got %s", typ, p.item.typ)
	}
	return p.lastitem
}

func unescape(s string) string {
	return strings.ReplaceAll(unquote(s), "\\", "")
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// readGame reads one game's header section and scans (without fully
// parsing) its movetext, returning nil, nil once the input is exhausted.
func (p *parser) readGame() (game *Game, err error) {
	defer p.recover(&err)
	if p.item == (item{}) {
		p.next()
	}
	if p.accept(itemEOF) {
		return nil, nil
	}

	h := newHeaders()
	var fen string
	mtext0 := p.pos
	mtextline := p.lex.line
	for p.accept(itemLBracket) {
		tag := p.expect(itemSymbol).val
		val := p.expect(itemString).val
		h.set(tag, unescape(val))
		if tag == "FEN" {
			fen = unescape(val)
		}
		p.expect(itemRBracket)
		mtext0 = p.pos
		mtextline = p.lex.line
	}
	if len(h.order) == 0 {
		p.panicf("no game tags found")
	}

	plies := 0
	variation := 0
loop:
	for {
		switch p.item.typ {
		case itemLParen:
			variation++
		case itemRParen:
			variation--
		case itemSymbol:
			if variation == 0 {
				plies++
			}
		case itemResult:
			if result, ok := h.get("Result"); !ok {
				h.set("Result", p.item.val)
			} else if result != p.item.val {
				p.panicf("game result %q differs from Result tag %q", p.item.val, result)
			}
		case itemLBracket, itemEOF:
			break loop
		}
		p.next()
	}
	mtext1 := p.pos
	if _, ok := h.get("Result"); !ok {
		h.set("Result", "*")
	}

	g, gerr := newGame(fen)
	if gerr != nil {
		p.panicf("%s", gerr)
	}
	g.headers = h
	g.plies = plies
	g.movelex = newLexer(p.lex.input[mtext0:mtext1], mtextline)
	if result, ok := h.get("Result"); ok {
		g.Result = parseResult(result)
	}
	if code, ok := h.get("ECO"); ok {
		name, _ := h.get("Opening")
		g.eco = lang.Some(ECOInfo{Code: code, Name: name})
	}
	return g, nil
}

// parseMoves parses a movetext section, knowing p.lex was set up to scan
// exactly one such section.
func (p *parser) parseMoves(root *GameNode) (err error) {
	defer p.recover(&err)
	if p.item == (item{}) {
		p.next()
	}
	p.variation(root, 0)
	return nil
}

func (p *parser) variation(node *GameNode, level int) {
	for {
		switch p.item.typ {
		case itemSymbol:
			move, err := node.Board.ParseSan(p.item.val)
			if err != nil {
				p.panicf("%q: %s", p.item.val, err)
			}
			node = node.Insert(move)
		case itemComment:
			node.Comment = append(node.Comment, unquote(p.item.val))
		case itemAnnotation:
			node.AddNag(p.nag(p.item.val))
		case itemLParen:
			if node.IsRoot() {
				p.panicf("variation without a preceding move")
			}
			p.next()
			p.variation(node.NewVariation(), level+1)
		case itemRParen:
			if level == 0 {
				p.panicf("unexpected right parenthesis")
			}
			return
		case itemEOF, itemLBracket:
			if level != 0 {
				p.panicf("%d unclosed variation(s)", level)
			}
			return
		case itemMoveNumber, itemDots, itemResult:
			// no-op: implied by move order / already captured as a header
		default:
			p.panicf("unexpected token: %s", p.item.typ)
		}
		p.next()
	}
}

func (p *parser) nag(s string) Nag {
	if len(s) >= 2 && s[0] == '$' {
		if n, err := strconv.Atoi(s[1:]); err == nil {
			return Nag(n)
		}
	} else {
		switch s {
		case "!":
			return NagGood
		case "?":
			return NagMistake
		case "!!":
			return NagBrilliant
		case "??":
			return NagBlunder
		case "!?":
			return NagInteresting
		case "?!":
			return NagDubious
		}
	}
	p.panicf("%q: invalid annotation", s)
	panic("unreachable")
}
