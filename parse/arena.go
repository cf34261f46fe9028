/*
Package parse implements the symbol algebra, the pivot map and the
packrat match engine that together drive a grammar's matching.

A grammar's symbol graph is arena-allocated: every Symbol is a handle
{id, *Arena} over a record stored by integer SymbolID. This lets Named
symbols be created before their inner expression is known (forward/cyclic
references resolved by mutating the arena record once, at grammar-build
time) and keeps the graph trivially shareable — a built Grammar's arena is
read-only and safe for concurrent parses.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parse

import "fmt"

// SymbolID identifies a symbol within an Arena.
type SymbolID uint32

// Kind is the closed set of symbol variants. Dispatch in the match engine
// switches on Kind rather than using interface method tables, to keep
// the symbol algebra a plain sum type and match dispatch inlinable.
type Kind uint8

const (
	KindText Kind = iota
	KindSwitch
	KindOption
	KindRepetition
	KindJunction
	KindSequence
	KindInversion
	KindEnd
	KindLexerSymbol
	KindNamed
	KindTokenRef
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindSwitch:
		return "Switch"
	case KindOption:
		return "Option"
	case KindRepetition:
		return "Repetition"
	case KindJunction:
		return "Junction"
	case KindSequence:
		return "Sequence"
	case KindInversion:
		return "Inversion"
	case KindEnd:
		return "End"
	case KindLexerSymbol:
		return "LexerSymbol"
	case KindNamed:
		return "Named"
	case KindTokenRef:
		return "TokenRef"
	default:
		return "?"
	}
}

// ModeBehavior is the optional action a LexerSymbol's successful match
// performs on the lexer's mode stack: push a mode, pop
// the current one, or set (replace) the current one.
type ModeBehavior struct {
	Op   ModeOp
	Mode string // target mode name; unused for ModePop
}

// ModeOp is the kind of ModeBehavior.
type ModeOp uint8

const (
	ModeNone ModeOp = iota
	ModePush
	ModePop
	ModeSet
)

// rec is the mutable record backing one Symbol. Only the fields relevant
// to rec.kind are meaningful; each field's comment names its kinds.
type rec struct {
	id   SymbolID
	kind Kind

	name string // KindNamed, KindTokenRef (token name), KindLexerSymbol (token name it emits)

	text string // KindText literal

	ranges   []runeRange // KindSwitch, already merged/sorted
	inverted bool        // KindSwitch: not set by Switch and not read by String()

	child SymbolID // KindOption, KindRepetition, KindInversion, KindNamed (inner), KindLexerSymbol (fragment)

	children []SymbolID // KindJunction, KindSequence

	behavior *ModeBehavior // KindLexerSymbol

	namedBound bool // KindNamed: true once Bind has supplied child
}

// Arena owns every Symbol record belonging to one grammar-under-
// construction (and, once frozen, one built Grammar). Its zero value is
// ready to use.
type Arena struct {
	recs []rec
}

func (a *Arena) alloc(k Kind) *rec {
	id := SymbolID(len(a.recs))
	a.recs = append(a.recs, rec{id: id, kind: k})
	return &a.recs[id]
}

func (a *Arena) get(id SymbolID) *rec {
	if int(id) >= len(a.recs) {
		panic(fmt.Sprintf("parse: symbol id %d out of range (arena has %d symbols)", id, len(a.recs)))
	}
	return &a.recs[id]
}

// Len reports how many symbols the arena holds.
func (a *Arena) Len() int { return len(a.recs) }
