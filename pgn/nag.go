package pgn

import "strconv"

// Nag is a Numeric Annotation Glyph, as defined by the PGN standard
// ($1-$255). The common "!", "?", "!!", "??", "!?", "?!" suffix
// annotations map to NAGs 1-6.
type Nag int

const (
	NagGood       Nag = 1
	NagMistake    Nag = 2
	NagBrilliant  Nag = 3
	NagBlunder    Nag = 4
	NagInteresting Nag = 5
	NagDubious    Nag = 6
)

var nagGlyphs = map[Nag]string{
	NagGood:        "!",
	NagMistake:     "?",
	NagBrilliant:   "!!",
	NagBlunder:     "??",
	NagInteresting: "!?",
	NagDubious:     "?!",
}

// String renders the NAG in its traditional suffix form when one exists,
// or as "$n" otherwise.
func (n Nag) String() string {
	if s, ok := nagGlyphs[n]; ok {
		return s
	}
	return "$" + strconv.Itoa(int(n))
}
