/*
Package grammar assembles symbols from package parse into a frozen,
reusable Grammar: the named rules, the optional lexer modes and skip
list, and a listener table a Walk dispatches against.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/parse"
)

// Builder assembles a Grammar fluently. Method calls configure the
// grammar under construction; Build validates it and returns a frozen,
// read-only Grammar, or a *pika.MalformedGrammarError.
type Builder struct {
	name  string
	arena *parse.Arena

	start parse.Symbol
	skip  parse.Symbol

	named      map[string]parse.Symbol
	namedOrder []string

	modes      map[string][]parse.Symbol
	modeOrder  []string
	skipTokens []parse.Symbol
	recovery   parse.Symbol

	nullary map[string]ast.NullaryListener
	unary   map[string]ast.UnaryListener

	badImports []badImport
}

// badImport records an ImportFrom call whose name did not resolve in its
// origin grammar — deferred to Build so the offending name and origin
// reach the reported *pika.MalformedGrammarError ("bad import").
type badImport struct {
	name   string
	origin string
}

// New starts a Builder for a grammar called name, diagnostic purposes
// only (it labels a *pika.MalformedGrammarError).
func New(name string, arena *parse.Arena) *Builder {
	return &Builder{
		name:    name,
		arena:   arena,
		named:   make(map[string]parse.Symbol),
		modes:   make(map[string][]parse.Symbol),
		nullary: make(map[string]ast.NullaryListener),
		unary:   make(map[string]ast.UnaryListener),
	}
}

// SetStart declares the grammar's entry symbol for Parse/ParseWith.
func (b *Builder) SetStart(sym parse.Symbol) *Builder {
	b.start = sym
	return b
}

// SetSkip declares the symbol tried between every sequence element and
// at the outer entry point, discarding what it matches — typically
// whitespace and comments. Optional; the zero Symbol means no skip.
func (b *Builder) SetSkip(sym parse.Symbol) *Builder {
	b.skip = sym
	return b
}

// AddNamed registers sym under name for diagnostics and listener
// dispatch. A Named symbol built via parse.Named/parse.NewNamed already
// carries its own name internally; AddNamed additionally makes it
// discoverable by Grammar.Symbol (and so ImportFrom) and by validate.
func (b *Builder) AddNamed(name string, sym parse.Symbol) *Builder {
	if _, dup := b.named[name]; !dup {
		b.namedOrder = append(b.namedOrder, name)
	}
	b.named[name] = sym
	return b
}

// AddLexerSymbol appends sym to mode's lexer-symbol list, in the order
// it should be tried. The default mode is named "".
func (b *Builder) AddLexerSymbol(mode string, sym parse.Symbol) *Builder {
	if _, seen := b.modes[mode]; !seen {
		b.modeOrder = append(b.modeOrder, mode)
	}
	b.modes[mode] = append(b.modes[mode], sym)
	return b
}

// AddSkipToken marks a lexer symbol (already added via AddLexerSymbol)
// as producing a token that Tokenize discards rather than emits.
func (b *Builder) AddSkipToken(sym parse.Symbol) *Builder {
	b.skipTokens = append(b.skipTokens, sym)
	return b
}

// SetRecovery declares the fragment symbol used to merge unmatched runs
// into recovery tokens during tokenization. Optional; the zero Symbol
// means an unmatched run is always an IllegalTokenError.
func (b *Builder) SetRecovery(sym parse.Symbol) *Builder {
	b.recovery = sym
	return b
}

// AddListener registers listener to run (in definition order, alongside
// any listener already registered for the same name via ImportFrom) when
// Walk visits a node whose Symbol equals name.
func (b *Builder) AddListener(name string, listener ast.NullaryListener) *Builder {
	b.nullary[name] = ast.ComposeNullary(b.nullary[name], listener)
	return b
}

// AddUnaryListener is AddListener for a unary parser's WalkUnary.
func (b *Builder) AddUnaryListener(name string, listener ast.UnaryListener) *Builder {
	b.unary[name] = ast.ComposeUnary(b.unary[name], listener)
	return b
}

// ImportFrom imports the symbol called name from origin: it is looked up
// in origin's retained symbol table (the names registered there via
// AddNamed) and, if found, registered into this builder under the same
// name via AddNamed, carrying along whatever nullary/unary listener
// origin had registered for it — origin's listener running first, then
// this builder's own (if any), in that order, resolved once here rather
// than re-walked per dispatch. A name absent from origin is recorded as
// a bad import, rejected by Build's validation pass rather than here, so
// a chain of builder calls can keep reporting a single first violation.
func (b *Builder) ImportFrom(origin *Grammar, name string) *Builder {
	sym, ok := origin.Symbol(name)
	if !ok {
		b.badImports = append(b.badImports, badImport{name: name, origin: origin.name})
		return b
	}
	b.AddNamed(name, sym)
	if l, ok := origin.nullary[name]; ok {
		b.nullary[name] = ast.ComposeNullary(l, b.nullary[name])
	}
	if l, ok := origin.unary[name]; ok {
		b.unary[name] = ast.ComposeUnary(l, b.unary[name])
	}
	return b
}

// Build validates the assembled grammar and freezes it into a Grammar.
// Returns a *pika.MalformedGrammarError describing the first violation
// found, in the order validate.go checks them.
func (b *Builder) Build() (*Grammar, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	modeOrder := make([]string, len(b.modeOrder))
	copy(modeOrder, b.modeOrder)
	symbols := make(map[string]parse.Symbol, len(b.named))
	for name, sym := range b.named {
		symbols[name] = sym
	}
	g := &Grammar{
		name:       b.name,
		arena:      b.arena,
		start:      b.start,
		skip:       b.skip,
		modes:      make(map[string][]parse.Symbol, len(b.modes)),
		modeOrder:  modeOrder,
		skipTokens: b.skipTokens,
		recovery:   b.recovery,
		symbols:    symbols,
		nullary:    b.nullary,
		unary:      b.unary,
	}
	for mode, syms := range b.modes {
		cp := make([]parse.Symbol, len(syms))
		copy(cp, syms)
		g.modes[mode] = cp
	}
	return g, nil
}
