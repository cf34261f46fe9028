package parse

import "fmt"

// Symbol is a handle to a grammar-atom record living in an Arena. Values
// are cheap to copy; equality compares (arena, id).
type Symbol struct {
	a  *Arena
	id SymbolID
}

// ID returns the symbol's identity within its arena.
func (s Symbol) ID() SymbolID { return s.id }

// Arena returns the arena this symbol belongs to.
func (s Symbol) Arena() *Arena { return s.a }

// IsZero reports whether s is the zero Symbol (no arena bound).
func (s Symbol) IsZero() bool { return s.a == nil }

func (s Symbol) rec() *rec { return s.a.get(s.id) }

// Kind returns the symbol's variant.
func (s Symbol) Kind() Kind { return s.rec().kind }

// String renders a stable, human-readable form of the symbol, used in
// diagnostics and as the default AST node label for unnamed symbols.
func (s Symbol) String() string {
	r := s.rec()
	switch r.kind {
	case KindText:
		return fmt.Sprintf("%q", r.text)
	case KindSwitch:
		return switchString(r)
	case KindOption:
		return s.child().String() + "?"
	case KindRepetition:
		return s.child().String() + "+"
	case KindJunction:
		return joinChildren(s, " | ")
	case KindSequence:
		return joinChildren(s, " ")
	case KindInversion:
		return "!" + s.child().String()
	case KindEnd:
		return "$end"
	case KindLexerSymbol:
		return fmt.Sprintf("token(%s)", r.name)
	case KindNamed:
		return r.name
	case KindTokenRef:
		return fmt.Sprintf("@%s", r.name)
	default:
		return "?"
	}
}

func (s Symbol) child() Symbol {
	return Symbol{a: s.a, id: s.rec().child}
}

// Child returns the single inner symbol of an Option, Repetition,
// Inversion, LexerSymbol or (once bound) Named symbol — exported for
// packages outside parse that need to walk the symbol graph themselves,
// such as a grammar validator or an alternate compiled-matcher backend.
func (s Symbol) Child() Symbol { return s.child() }

// Children returns the alternatives of a Junction or the elements of a
// Sequence, in declaration order.
func (s Symbol) Children() []Symbol {
	r := s.rec()
	out := make([]Symbol, len(r.children))
	for i, id := range r.children {
		out[i] = Symbol{a: s.a, id: id}
	}
	return out
}

// Text returns the literal string of a KindText symbol, empty for any
// other kind.
func (s Symbol) Text() string {
	if s.Kind() != KindText {
		return ""
	}
	return s.rec().text
}

// Ranges returns the merged, sorted rune ranges of a KindSwitch symbol,
// nil for any other kind.
func (s Symbol) Ranges() []Range {
	if s.Kind() != KindSwitch {
		return nil
	}
	return s.rec().ranges
}

func joinChildren(s Symbol, sep string) string {
	r := s.rec()
	out := "("
	for i, id := range r.children {
		if i > 0 {
			out += sep
		}
		out += Symbol{a: s.a, id: id}.String()
	}
	return out + ")"
}

// --- Constructors -----------------------------------------------------

// Text matches the literal string s exactly, consuming len([]rune(s))
// elements. Zero-length text matches the empty string successfully.
func Text(a *Arena, s string) Symbol {
	r := a.alloc(KindText)
	r.text = s
	return Symbol{a: a, id: r.id}
}

// Switch matches a single element whose rune falls within one of ranges
// (after merge/sort; use Invert to complement ranges before calling
// Switch).
func Switch(a *Arena, ranges []Range) Symbol {
	r := a.alloc(KindSwitch)
	r.ranges = mergeRanges(ranges)
	return Symbol{a: a, id: r.id}
}

// Option always succeeds; it contributes child's node if child matched,
// or no children otherwise.
func Option(child Symbol) Symbol {
	r := child.a.alloc(KindOption)
	r.child = child.id
	return Symbol{a: child.a, id: r.id}
}

// Repetition succeeds iff child matches one or more times, greedily. A
// zero-consumption iteration is detected and treated as the end of the
// repetition rather than looping forever.
func Repetition(child Symbol) Symbol {
	r := child.a.alloc(KindRepetition)
	r.child = child.id
	return Symbol{a: child.a, id: r.id}
}

// Junction tries children in declaration order; the first to match wins,
// recording its index as the resulting node's MatchOrdinal.
func Junction(children ...Symbol) Symbol {
	if len(children) == 0 {
		panic("parse: Junction requires at least one child")
	}
	a := children[0].a
	r := a.alloc(KindJunction)
	r.children = idsOf(children)
	return Symbol{a: a, id: r.id}
}

// Sequence succeeds iff every child matches in order; any failure
// reverts the iterator to the sequence's start position.
func Sequence(children ...Symbol) Symbol {
	if len(children) == 0 {
		panic("parse: Sequence requires at least one child")
	}
	a := children[0].a
	r := a.alloc(KindSequence)
	r.children = idsOf(children)
	return Symbol{a: a, id: r.id}
}

// Inversion succeeds, consuming exactly one element, iff child fails at
// the current position.
func Inversion(child Symbol) Symbol {
	r := child.a.alloc(KindInversion)
	r.child = child.id
	return Symbol{a: child.a, id: r.id}
}

// End matches the empty string iff the iterator is exhausted.
func End(a *Arena) Symbol {
	r := a.alloc(KindEnd)
	return Symbol{a: a, id: r.id}
}

// TokenRef matches a single token element whose Name equals name; used
// only in the token-level grammar of a lexer-parser.
func TokenRef(a *Arena, name string) Symbol {
	r := a.alloc(KindTokenRef)
	r.name = name
	return Symbol{a: a, id: r.id}
}

// LexerSymbol wraps a character-level fragment as a token producer: name
// is the token name it emits, behavior (may be the zero value, Op:
// ModeNone) is applied to the mode stack on a successful match. Only
// used during tokenization.
func LexerSymbol(name string, fragment Symbol, behavior ModeBehavior) Symbol {
	r := fragment.a.alloc(KindLexerSymbol)
	r.name = name
	r.child = fragment.id
	r.behavior = &behavior
	return Symbol{a: fragment.a, id: r.id}
}

// NewNamed allocates a Named symbol with no inner expression yet bound —
// the forward-reference mechanism grammars use for recursive rules.
// Bind must be called (exactly once, before Build) to supply the inner
// symbol.
func NewNamed(a *Arena, name string) Symbol {
	r := a.alloc(KindNamed)
	r.name = name
	r.child = SymbolID(0)
	r.ranges = nil // not used; child defaults to symbol 0 until Bind
	return Symbol{a: a, id: r.id}
}

// Named is NewNamed followed by an immediate Bind, for the common case
// where the inner expression has no forward reference to the name being
// declared.
func Named(name string, inner Symbol) Symbol {
	n := NewNamed(inner.a, name)
	n.Bind(inner)
	return n
}

// Bind supplies (or replaces) the inner expression of a Named symbol
// created via NewNamed. Grammars with recursive rules call NewNamed
// first, use the returned Symbol inside the rule body, then Bind once
// the body is fully constructed.
func (s Symbol) Bind(inner Symbol) {
	r := s.rec()
	if r.kind != KindNamed {
		panic("parse: Bind called on a non-Named symbol")
	}
	if inner.a != s.a {
		panic("parse: Bind with a symbol from a different arena")
	}
	r.child = inner.id
	r.namedBound = true
}

// IsBound reports whether a Named symbol has had Bind called on it. Any
// other kind is trivially "bound" (it has no forward-reference state).
func (s Symbol) IsBound() bool {
	r := s.rec()
	return r.kind != KindNamed || r.namedBound
}

// Behavior returns the ModeBehavior a LexerSymbol applies on a
// successful match, or nil for any other kind or an unset behavior.
func (s Symbol) Behavior() *ModeBehavior {
	if s.Kind() != KindLexerSymbol {
		return nil
	}
	return s.rec().behavior
}

// Name returns the declared name of a Named symbol (or the token name of
// a LexerSymbol/TokenRef), empty for any other kind.
func (s Symbol) Name() string {
	switch s.Kind() {
	case KindNamed, KindLexerSymbol, KindTokenRef:
		return s.rec().name
	default:
		return ""
	}
}

func idsOf(syms []Symbol) []SymbolID {
	ids := make([]SymbolID, len(syms))
	for i, s := range syms {
		ids[i] = s.id
	}
	return ids
}
