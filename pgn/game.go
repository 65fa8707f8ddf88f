package pgn

import (
	"fmt"

	"github.com/andrsv/chess"
	"github.com/seekerror/stdlib/pkg/lang"
)

// ECOInfo identifies a game's opening by its Encyclopaedia of Chess
// Openings code and name, as recorded in the "ECO" and "Opening" PGN
// tags. It is left unset (Game.ECO's second return is false) until
// something -- a PGN reader, an opening-book lookup -- classifies the
// game.
type ECOInfo struct {
	Code string
	Name string
}

// Result is a game's outcome as recorded in its "Result" header.
type Result int

const (
	ResultUndefined Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
	ResultAny
)

// String returns the PGN encoding of r ("1-0", "0-1", "1/2-1/2" or "*").
func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func parseResult(s string) Result {
	switch s {
	case "1-0":
		return ResultWhiteWins
	case "0-1":
		return ResultBlackWins
	case "1/2-1/2":
		return ResultDraw
	default:
		return ResultUndefined
	}
}

// Game represents one chess game read from, or to be written to, a PGN
// file: its headers (tags) and the tree of moves making up its main line
// and any variations.
type Game struct {
	headers headers

	// Root is the root node of the game's main variation. Root.Board is
	// the starting position of the game (the standard position, unless
	// a "FEN" header overrides it).
	Root *GameNode

	// Cursor is the node editing operations act on: Apply extends the
	// tree from it, and the other tree-edit operations take an explicit
	// node but move Cursor to a sensible place afterwards. Readers and
	// callers that only walk the tree can ignore it.
	Cursor *GameNode

	// Result is the game's outcome, mirrored in the "Result" header.
	Result Result

	// treeChanged is set by any tree-editing operation and never cleared
	// by this package; callers that persist games use it to decide
	// whether a rewrite is needed.
	treeChanged bool

	// movelex holds a lexer primed to scan the movetext, set by the
	// reader when only the header section has been parsed so far.
	// ParseMoves consumes it.
	movelex *lexer

	// plies counts halfmoves in the main line as seen by the header
	// scan, before ParseMoves has built the tree. It's not kept in sync
	// with edits made after that.
	plies int

	// eco holds the game's opening classification, if one has been set
	// via SetECO or derived from the "ECO"/"Opening" tags.
	eco lang.Optional[ECOInfo]
}

// NewGame creates a game from the given headers, in Seven Tag Roster
// order followed by any remaining tags in unspecified order (Go map
// iteration order). Callers that need exact header order -- such as a
// PGN reader replaying a file's own tag order -- should build the game
// with newGame and set headers one at a time instead. The starting
// position is the standard position unless headers["FEN"] names another
// one; an error is returned if that FEN cannot be parsed.
func NewGame(hdrs map[string]string) (*Game, error) {
	g, err := newGame(hdrs["FEN"])
	if err != nil {
		return nil, err
	}
	for _, tag := range []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"} {
		if v, ok := hdrs[tag]; ok {
			g.headers.set(tag, v)
		}
	}
	for tag, v := range hdrs {
		g.headers.set(tag, v)
	}
	if v, ok := hdrs["Result"]; ok {
		g.Result = parseResult(v)
	}
	return g, nil
}

// newGame creates a game with no headers set yet, positioned per fen (the
// standard starting position if fen is empty).
func newGame(fen string) (*Game, error) {
	board, err := chess.ParseFen(fen)
	if err != nil {
		return nil, fmt.Errorf("FEN tag: %w", err)
	}
	root := &GameNode{Id: nextNodeID(), Board: board}
	return &Game{Root: root, Cursor: root}, nil
}

// ECO returns the game's opening classification, if one has been set.
func (g *Game) ECO() (ECOInfo, bool) {
	return g.eco.V()
}

// SetECO records the game's opening classification and mirrors it into
// the "ECO" and "Opening" headers.
func (g *Game) SetECO(info ECOInfo) {
	g.eco = lang.Some(info)
	g.headers.set("ECO", info.Code)
	g.headers.set("Opening", info.Name)
}

// Headers returns a copy of the game's tags.
func (g *Game) Headers() map[string]string {
	return g.headers.snapshot()
}

// HeaderOrder returns the tag names in the order they were first set,
// the order a PGN writer should emit them in.
func (g *Game) HeaderOrder() []string {
	return append([]string(nil), g.headers.order...)
}

// Header returns a single tag's value.
func (g *Game) Header(tag string) (string, bool) {
	return g.headers.get(tag)
}

// SetHeader sets or replaces a tag's value, appending it to the header
// order if it's new.
func (g *Game) SetHeader(tag, value string) {
	g.headers.set(tag, value)
}

// Plies returns the number of halfmoves in the main line. This works
// even before ParseMoves has been called on a game read lazily from a
// PgnReader.
func (g *Game) Plies() int {
	if g.Root.Next != nil {
		plies := 0
		for n := g.Root.Next; n != nil; n = n.Next {
			plies++
		}
		return plies
	}
	return g.plies
}

// ParseMoves parses the game's movetext, populating g.Root's tree. It is
// a no-op if the movetext was already parsed (by a previous ParseMoves
// call, or because the game wasn't read lazily in the first place).
func (g *Game) ParseMoves() error {
	if g.movelex == nil {
		return nil
	}
	p := &parser{lex: g.movelex}
	saved := *g.Root
	if err := p.parseMoves(g.Root); err != nil {
		*g.Root = saved
		return err
	}
	g.movelex = nil
	return nil
}

// TreeChanged reports whether any tree-editing operation (Apply,
// MoveUp, MoveDown, DeleteVariation, DeleteBelow, RemoveAllComments,
// RemoveAllVariations or ResetWithFen), or ClearHeaders, has run on this
// game.
func (g *Game) TreeChanged() bool {
	return g.treeChanged
}

// SetTreeChanged sets or clears the dirty bit directly, letting a caller
// that has just persisted the game mark it clean again.
func (g *Game) SetTreeChanged(changed bool) {
	g.treeChanged = changed
}

// FindNodeByID returns the node with the given id, searching the whole
// tree (every variation, not just the main line). The id space is
// shared by every Game in the process, so a match always identifies a
// unique node if one was ever created with it.
func (g *Game) FindNodeByID(id int) (*GameNode, bool) {
	var find func(n *GameNode) *GameNode
	find = func(n *GameNode) *GameNode {
		if n == nil {
			return nil
		}
		if n.Id == id {
			return n
		}
		for _, c := range n.childSlots() {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	if found := find(g.Root); found != nil {
		return found, true
	}
	return nil, false
}

// Apply plays move from the cursor, reusing an existing child equal to
// move if there is one instead of creating a duplicate, and advances
// the cursor to the resulting node. A move that isn't already a child
// of the cursor becomes the mainline continuation if the cursor has
// none yet, or a new variation otherwise.
func (g *Game) Apply(move chess.Move) *GameNode {
	for _, c := range g.Cursor.childSlots() {
		if c.Move == move {
			g.Cursor = c
			return c
		}
	}
	var n *GameNode
	if g.Cursor.Next == nil {
		n = g.Cursor.Insert(move)
	} else {
		n = g.Cursor.Next.NewVariation().Insert(move)
	}
	g.Cursor = n
	g.treeChanged = true
	return n
}

// MoveUp swaps node with its preceding sibling in its parent's ordered
// child list (the mainline continuation is always index 0), promoting
// it one slot. It's a no-op if node is already first, or is the game's
// root.
func (g *Game) MoveUp(node *GameNode) {
	g.swapSibling(node, -1)
}

// MoveDown swaps node with its following sibling, demoting it one slot.
// It's a no-op if node is already last, or is the game's root.
func (g *Game) MoveDown(node *GameNode) {
	g.swapSibling(node, 1)
}

func (g *Game) swapSibling(node *GameNode, dir int) {
	p := parentOfSlot(node)
	if p == nil {
		return
	}
	slots := p.childSlots()
	i := indexOfSlot(slots, node)
	j := i + dir
	if i < 0 || j < 0 || j >= len(slots) {
		return
	}
	slots[i], slots[j] = slots[j], slots[i]
	p.setChildSlots(slots)
	g.treeChanged = true
}

// DeleteVariation removes the variation node belongs to from the tree:
// it walks up from node to the first ancestor that is itself one of
// several siblings (i.e. the root of the branch node hangs off), and
// removes that whole subtree. If node's line never branches all the
// way up to the game's root -- a game with no variations at all --
// there's nothing to remove and DeleteVariation is a no-op. The cursor
// moves to the removed variation's parent.
func (g *Game) DeleteVariation(node *GameNode) {
	v := node
	for {
		p := parentOfSlot(v)
		if p == nil {
			return
		}
		if len(p.childSlots()) > 1 {
			break
		}
		v = p
	}
	p := parentOfSlot(v)
	slots := p.childSlots()
	i := indexOfSlot(slots, v)
	if i < 0 {
		return
	}
	slots = append(slots[:i], slots[i+1:]...)
	p.setChildSlots(slots)
	g.Cursor = p
	g.treeChanged = true
}

// DeleteBelow discards every move after node -- its mainline
// continuation and every variation branching off that continuation --
// leaving node a leaf. Variations that are alternatives to node itself
// are kept. The cursor moves to node.
func (g *Game) DeleteBelow(node *GameNode) {
	node.Next = nil
	g.Cursor = node
	g.treeChanged = true
}

// RemoveAllComments clears every comment in the tree, main line and
// variations alike, including comments attached to a variation's root
// node.
func (g *Game) RemoveAllComments() {
	var walk func(n *GameNode)
	walk = func(n *GameNode) {
		if n == nil {
			return
		}
		n.Comment = nil
		walk(n.Next)
		for v := n.Variation; v != nil; v = v.Next.Variation {
			v.Comment = nil
			if v.Next == nil {
				break
			}
			walk(v.Next)
		}
	}
	walk(g.Root)
	g.treeChanged = true
}

// RemoveAllVariations discards every variation, leaving only the main
// line.
func (g *Game) RemoveAllVariations() {
	for n := g.Root; n != nil; n = n.Next {
		n.Variation = nil
	}
	g.treeChanged = true
}

// MatchesPosition reports whether any position on the main line --
// root included -- has the given Zobrist/position hash. Variations are
// not searched.
func (g *Game) MatchesPosition(hash uint64) bool {
	for n := g.Root; n != nil; n = n.Next {
		if n.Board.PositionHash() == hash {
			return true
		}
	}
	return false
}

// ClearHeaders discards every header and replaces them with the Seven
// Tag Roster, each set to the empty string except Result, which
// defaults to the undefined result "*".
func (g *Game) ClearHeaders() {
	g.headers = newHeaders()
	for _, tag := range []string{"Event", "Site", "Date", "Round", "White", "Black"} {
		g.headers.set(tag, "")
	}
	g.headers.set("Result", "*")
	g.Result = ResultUndefined
	g.treeChanged = true
}

// ResetWithFen discards the whole tree and replaces it with a single
// root node at the position named by fen, clearing headers and the
// opening classification along with it.
func (g *Game) ResetWithFen(fen string) error {
	board, err := chess.ParseFen(fen)
	if err != nil {
		return fmt.Errorf("FEN tag: %w", err)
	}
	root := &GameNode{Id: nextNodeID(), Board: board}
	g.Root = root
	g.Cursor = root
	g.movelex = nil
	g.plies = 0
	g.eco = lang.Optional[ECOInfo]{}
	g.ClearHeaders()
	return nil
}
