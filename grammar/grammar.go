package grammar

import (
	"github.com/cnf/structhash"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/iter"
	"github.com/corvidae/pika/lexer"
	"github.com/corvidae/pika/parse"
)

// Grammar is a frozen, read-only grammar assembled by a Builder. It is
// safe to share and use from multiple goroutines: Parse/Tokenize/
// ParseWith each construct their own parse.Attempt/lexer.Lexer over the
// shared, never-mutated arena.
type Grammar struct {
	name  string
	arena *parse.Arena

	start parse.Symbol
	skip  parse.Symbol

	modes      map[string][]parse.Symbol
	modeOrder  []string // declaration order, for deterministic iteration (e.g. Fingerprint)
	skipTokens []parse.Symbol
	recovery   parse.Symbol

	symbols map[string]parse.Symbol // every name registered via AddNamed, retained for ImportFrom
	nullary map[string]ast.NullaryListener
	unary   map[string]ast.UnaryListener
}

// Name returns the grammar's diagnostic name.
func (g *Grammar) Name() string { return g.name }

// Symbol looks up a symbol registered under name via AddNamed. Used by
// another builder's ImportFrom to pull a single named symbol (and its
// listener, if any) out of this grammar.
func (g *Grammar) Symbol(name string) (parse.Symbol, bool) {
	sym, ok := g.symbols[name]
	return sym, ok
}

// Parse runs a character-level match of the grammar's start symbol
// against input, dispatching nullary listeners over the resulting tree
// in post-order. Returns the root node and true on a successful match at
// the start of input; a failed match returns (nil, false).
func (g *Grammar) Parse(input string) (*ast.Node, bool) {
	it := iter.NewStringIterator(input)
	att := parse.NewCharAttempt(g.arena, it, g.skip)
	node, ok := parse.Match(att, g.start)
	if !ok {
		return nil, false
	}
	ast.Walk(node, g.nullary)
	return node, true
}

// ParseWith is Parse for a unary parser: init runs once before any
// listener dispatch and arg is forwarded to every listener invocation.
func (g *Grammar) ParseWith(input string, arg interface{}, init func(interface{})) (*ast.Node, bool) {
	it := iter.NewStringIterator(input)
	att := parse.NewCharAttempt(g.arena, it, g.skip)
	node, ok := parse.Match(att, g.start)
	if !ok {
		return nil, false
	}
	ast.WalkUnary(node, arg, init, g.unary)
	return node, true
}

// Tokenize runs the grammar's lexer driver over input. Returns every
// token produced, even when err is non-nil (err is a
// *pika.IllegalTokenError naming how many tokens preceded the failure,
// or a mode-stack-underflow error).
func (g *Grammar) Tokenize(input string) ([]pika.Token, error) {
	lx := lexer.New(g.arena, g.modes, g.skipTokens, g.recovery)
	return lx.Tokenize(iter.NewStringIterator(input))
}

// ParseTokens runs a token-level match of the grammar's start symbol
// (built from parse.TokenRef symbols) against a token stream, normally
// one produced by Tokenize — the second stage of a lexer-parser.
func (g *Grammar) ParseTokens(tokens []pika.Token) (*ast.Node, bool) {
	it := iter.NewSliceIterator(tokens)
	att := parse.NewTokenAttempt(g.arena, it, parse.Symbol{})
	node, ok := parse.Match(att, g.start)
	if !ok {
		return nil, false
	}
	ast.Walk(node, g.nullary)
	return node, true
}

// fingerprintView is the subset of Grammar's identity that determines
// its matching behavior: the name and arena are intentionally excluded
// (the arena's address is meaningless across processes, and two
// grammars can differ only in name while matching identically).
type fingerprintView struct {
	Start      string
	Skip       string
	ModeNames  []string
	Recovery   string
	SkipTokens []string
}

// Fingerprint returns a stable hash identifying the grammar's matching
// behavior (start symbol, skip, lexer modes, recovery and skip-token
// configuration) — suitable for cache-keying a compiled artifact (e.g.
// a lexer/lexmach DFA) against the grammar that produced it.
func (g *Grammar) Fingerprint() (string, error) {
	view := fingerprintView{
		Start:    g.start.String(),
		Skip:     symbolStringOrEmpty(g.skip),
		Recovery: symbolStringOrEmpty(g.recovery),
	}
	for _, mode := range g.modeOrder {
		view.ModeNames = append(view.ModeNames, mode)
		for _, s := range g.modes[mode] {
			view.ModeNames = append(view.ModeNames, s.String())
		}
	}
	for _, s := range g.skipTokens {
		view.SkipTokens = append(view.SkipTokens, s.String())
	}
	return structhash.Hash(view, 1)
}

func symbolStringOrEmpty(s parse.Symbol) string {
	if s.IsZero() {
		return ""
	}
	return s.String()
}
