package pika

import "fmt"

// MalformedGrammarError is returned by a grammar builder's Build method
// when the assembled grammar violates one of its build-time invariants:
// an unbound implicit symbol, a missing start symbol, an invalid lexer
// mode reference, a bad import, or an inversion of an all-inclusive
// switch range.
type MalformedGrammarError struct {
	Grammar string // grammar name, as passed to the builder
	Reason  string
}

func (e *MalformedGrammarError) Error() string {
	return fmt.Sprintf("malformed grammar %q: %s", e.Grammar, e.Reason)
}

// IllegalTokenError is returned by Tokenize when no lexer symbol matches
// the input at the current position and no recovery symbol is configured,
// or the recovery symbol itself fails to consume anything. It carries how
// many tokens were already produced.
type IllegalTokenError struct {
	Position  int
	TokensSoFar int // count of tokens already produced; callers that need
	// the tokens themselves receive them as the ([]Token, error)
	// return value of Tokenize — this field only records how far in.
}

func (e *IllegalTokenError) Error() string {
	return fmt.Sprintf("illegal token at position %d (%d tokens already produced)", e.Position, e.TokensSoFar)
}

// IteratorClosedError is recorded by iter.StreamIterator.Err() when a
// streaming source has been closed and is subsequently accessed through
// HasNext/Peek/Next.
type IteratorClosedError struct {
	Source string
}

func (e *IteratorClosedError) Error() string {
	return fmt.Sprintf("iterator closed: %s", e.Source)
}
