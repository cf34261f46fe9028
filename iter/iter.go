package iter

import "errors"

// ErrNoSavedPosition is returned by Revert/RemoveSave when the save stack
// is empty.
var ErrNoSavedPosition = errors.New("iter: no saved position")

// Iterator is the revertible iterator contract every input source in this
// package implements. E is the
// element type the iterator yields: rune for character sources, a host
// element type for element-list sources, a token type for the lexer-
// parser's token stream.
type Iterator[E any] interface {
	// Peek returns the current element without advancing. The bool is
	// false at exhaustion.
	Peek() (E, bool)

	// Next returns the current element, then advances by one. Reading
	// past the end is a local failure (false), never an error.
	Next() (E, bool)

	// Advance moves forward n places (n >= 0), clipping at exhaustion.
	Advance(n int)

	// Save pushes the current position onto the save stack. May be
	// called when exhausted.
	Save()

	// Revert pops the save stack and restores that position. Returns
	// ErrNoSavedPosition if the stack is empty.
	Revert() error

	// RemoveSave pops the save stack without restoring. Returns
	// ErrNoSavedPosition if the stack is empty.
	RemoveSave() error

	// Position returns an owned, comparable value for the current spot.
	Position() Position

	// Seek jumps directly to a previously-obtained Position. Valid for
	// any Position this same iterator has returned, since chunks are
	// never discarded — used by the match engine to
	// replay a memoized success without re-running the match.
	Seek(p Position)

	// HasNext reports whether a further element is available. For
	// streaming sources this may trigger loading a new chunk.
	HasNext() bool
}

// Extenter is implemented by iterators that can render the input they
// cover between two of their own positions as a string — the matched
// "substring" an AST node or token records. Every concrete
// iterator in this package implements it.
type Extenter interface {
	Extent(from, to Position) string
}
