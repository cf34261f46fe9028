package parse

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/iter"
)

func tracer() tracing.Trace {
	return tracing.Select("pika.parse")
}

// ModeStackUnderflow is the panic value raised when a LexerSymbol's
// ModePop behavior fires with only the initial mode left on the stack —
// a grammar defect, not a local match failure. Package
// lexer recovers it at the Tokenize boundary and turns it into a
// returned error.
type ModeStackUnderflow struct {
	Symbol string
}

func (e ModeStackUnderflow) Error() string {
	return "parse: mode stack underflow popping for " + e.Symbol
}

// Attempt is one run of the match engine over a single input: the revertible element source, the grammar's arena, the
// pivot map accumulated as matching proceeds, the optional skip symbol,
// and (for tokenization) the lexer mode stack.
//
// An Attempt is single-use and not safe for concurrent matching; a built
// Grammar's arena, by contrast, is read-only and freely shared — each call to Grammar.Parse/Tokenize constructs its own Attempt.
type Attempt struct {
	src    elemSource
	arena  *Arena
	pivots *pivotMap
	skip   Symbol

	modes []string
}

// NewCharAttempt drives the match engine over a rune source — lexerless
// parsing, or a lexer's own fragment matching.
func NewCharAttempt(a *Arena, it iter.Iterator[rune], skip Symbol) *Attempt {
	return &Attempt{
		src:    charSource{it: it},
		arena:  a,
		pivots: newPivotMap(),
		skip:   skip,
		modes:  []string{""},
	}
}

// NewTokenAttempt drives the match engine over a token source — the
// second stage of a lexer-parser.
func NewTokenAttempt(a *Arena, it iter.Iterator[pika.Token], skip Symbol) *Attempt {
	return &Attempt{
		src:    tokenSource{it: it},
		arena:  a,
		pivots: newPivotMap(),
		skip:   skip,
		modes:  []string{""},
	}
}

// Position reports the current position of the element source.
func (att *Attempt) Position() iter.Position { return att.src.position() }

// AtEnd reports whether the element source is exhausted.
func (att *Attempt) AtEnd() bool { return !att.src.hasNext() }

// PivotCount reports how many positions the pivot map has visited, for
// diagnostics and tests.
func (att *Attempt) PivotCount() int { return att.pivots.Size() }

// CurrentMode returns the lexer mode on top of the mode stack. The
// initial stack holds a single empty-string mode.
func (att *Attempt) CurrentMode() string { return att.modes[len(att.modes)-1] }

func (att *Attempt) applyBehavior(symbolName string, beh *ModeBehavior) {
	if beh == nil {
		return
	}
	switch beh.Op {
	case ModeNone:
	case ModePush:
		att.modes = append(att.modes, beh.Mode)
	case ModePop:
		if len(att.modes) <= 1 {
			panic(ModeStackUnderflow{Symbol: symbolName})
		}
		att.modes = att.modes[:len(att.modes)-1]
	case ModeSet:
		att.modes[len(att.modes)-1] = beh.Mode
	}
}

// CouldMatch reports whether sym would match at the current position,
// without consuming any input or otherwise disturbing it — used by the
// lexer driver's recovery loop to decide when to stop merging an
// unmatched run into a recovery token. Any pivot-map entries the trial
// populates remain valid; the element source's position and the lexer
// mode stack are reset to what they were before the trial.
func (att *Attempt) CouldMatch(sym Symbol) bool {
	before := att.src.position()
	modes := append([]string(nil), att.modes...)
	_, ok := matchAt(att, sym)
	att.src.seek(before)
	att.modes = modes
	return ok
}

// Match runs the packrat match engine for sym starting at the element
// source's current position. On success the source is
// left positioned just past the match; on failure it is left exactly
// where it started.
func Match(att *Attempt, sym Symbol) (*ast.Node, bool) {
	return matchAt(att, sym)
}
