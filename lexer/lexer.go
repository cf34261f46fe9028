/*
Package lexer implements the lexer driver: repeated mode-dependent
matching against a rune source, producing a token stream for a
lexer-parser's second (token-level) stage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexer

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/iter"
	"github.com/corvidae/pika/parse"
)

func tracer() tracing.Trace {
	return tracing.Select("pika.lexer")
}

// Lexer drives the match engine repeatedly over a rune source, selecting
// the active lexer-symbol list by the current mode, discarding tokens
// produced by a skip symbol, and merging unmatched runs into recovery
// tokens.
type Lexer struct {
	arena    *parse.Arena
	modes    map[string][]parse.Symbol
	skip     map[parse.SymbolID]bool
	recovery parse.Symbol // zero value: no recovery configured
}

// New builds a Lexer. modes maps a mode name to its lexer symbols in
// declaration order (the default mode is named ""); skipTokens lists the
// lexer symbols whose matches are discarded rather than emitted;
// recovery may be the zero Symbol.
func New(arena *parse.Arena, modes map[string][]parse.Symbol, skipTokens []parse.Symbol, recovery parse.Symbol) *Lexer {
	skip := make(map[parse.SymbolID]bool, len(skipTokens))
	for _, s := range skipTokens {
		skip[s.ID()] = true
	}
	return &Lexer{arena: arena, modes: modes, skip: skip, recovery: recovery}
}

// Tokenize runs the lexer driver to exhaustion over it, per the algorithm:
// with the current mode's lexer symbols in declaration order, the first
// whose match succeeds wins and its behavior (if any) is applied to the
// mode stack; skip-listed symbols are discarded rather than emitted. When
// nothing in the current mode matches, the recovery symbol is matched
// greedily, merging adjacent unmatched runs into one unnamed token, until
// either a named symbol would match again or recovery itself fails to
// match — the latter (or recovery being unset) is an IllegalTokenError
// carrying every token produced so far.
//
// A mode-stack underflow (a behavior popping past the initial mode) is a
// grammar defect: it panics inside the match engine and is recovered here
// into a returned error, rather than silently corrupting the mode stack.
func (lx *Lexer) Tokenize(it iter.Iterator[rune]) (tokens []pika.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			underflow, ok := r.(parse.ModeStackUnderflow)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("lexer: %w", underflow)
		}
	}()

	att := parse.NewCharAttempt(lx.arena, it, parse.Symbol{})
	for !att.AtEnd() {
		mode := att.CurrentMode()
		list := lx.modes[mode]

		matched := false
		for _, lexSym := range list {
			node, ok := parse.Match(att, lexSym)
			if !ok {
				continue
			}
			matched = true
			if !lx.skip[lexSym.ID()] {
				tokens = append(tokens, pika.Token{Name: node.Symbol, Text: node.Substring})
			}
			tracer().Debugf("lexer: matched %s %q in mode %q", node.Symbol, node.Substring, mode)
			break
		}
		if matched {
			continue
		}

		merged, ok := lx.matchRecovery(att)
		if !ok {
			return tokens, &pika.IllegalTokenError{
				Position:    att.Position().Offset,
				TokensSoFar: len(tokens),
			}
		}
		tracer().Debugf("lexer: recovered unmatched run %q", merged)
		tokens = append(tokens, pika.Token{Name: "", Text: merged})
	}
	return tokens, nil
}

// matchRecovery merges adjacent recovery matches into one run, stopping
// as soon as some named lexer symbol of the current mode would match
// again (checked without consuming, via Attempt.CouldMatch) or recovery
// itself fails to make any progress. ok is false only when the very first
// recovery attempt fails — the caller turns that into an illegal-token
// error.
func (lx *Lexer) matchRecovery(att *parse.Attempt) (merged string, ok bool) {
	if lx.recovery.IsZero() {
		return "", false
	}
	var b strings.Builder
	for {
		node, matched := parse.Match(att, lx.recovery)
		if !matched {
			break
		}
		b.WriteString(node.Substring)
		if att.AtEnd() {
			break
		}
		if lx.canResume(att) {
			break
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

func (lx *Lexer) canResume(att *parse.Attempt) bool {
	for _, lexSym := range lx.modes[att.CurrentMode()] {
		if att.CouldMatch(lexSym) {
			return true
		}
	}
	return false
}
