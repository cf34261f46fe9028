package parse

import (
	"github.com/corvidae/pika"
	"github.com/corvidae/pika/iter"
)

// elemSource erases the element type of an iter.Iterator so Attempt can
// stay a single, non-generic type shared by the character-level engine
// (lexerless parsing, and lexer-fragment matching) and the token-level
// engine (the second stage of a lexer-parser). This mirrors the
// interface{}-erased container style gods itself uses throughout — the
// match engine's variant dispatch (switch over Kind) does the real work;
// this erasure only exists to let one Attempt/engine implementation
// serve both element types.
type elemSource interface {
	peek() (interface{}, bool)
	next() (interface{}, bool)
	advance(n int)
	save()
	revert() error
	removeSave() error
	position() iter.Position
	seek(p iter.Position)
	hasNext() bool
	extent(from, to iter.Position) string
}

type charSource struct{ it iter.Iterator[rune] }

func (c charSource) peek() (interface{}, bool)  { r, ok := c.it.Peek(); return r, ok }
func (c charSource) next() (interface{}, bool)  { r, ok := c.it.Next(); return r, ok }
func (c charSource) advance(n int)              { c.it.Advance(n) }
func (c charSource) save()                      { c.it.Save() }
func (c charSource) revert() error              { return c.it.Revert() }
func (c charSource) removeSave() error          { return c.it.RemoveSave() }
func (c charSource) position() iter.Position    { return c.it.Position() }
func (c charSource) seek(p iter.Position)       { c.it.Seek(p) }
func (c charSource) hasNext() bool              { return c.it.HasNext() }
func (c charSource) extent(from, to iter.Position) string {
	if ext, ok := c.it.(iter.Extenter); ok {
		return ext.Extent(from, to)
	}
	return ""
}

type tokenSource struct{ it iter.Iterator[pika.Token] }

func (c tokenSource) peek() (interface{}, bool)  { t, ok := c.it.Peek(); return t, ok }
func (c tokenSource) next() (interface{}, bool)  { t, ok := c.it.Next(); return t, ok }
func (c tokenSource) advance(n int)              { c.it.Advance(n) }
func (c tokenSource) save()                      { c.it.Save() }
func (c tokenSource) revert() error              { return c.it.Revert() }
func (c tokenSource) removeSave() error          { return c.it.RemoveSave() }
func (c tokenSource) position() iter.Position    { return c.it.Position() }
func (c tokenSource) seek(p iter.Position)       { c.it.Seek(p) }
func (c tokenSource) hasNext() bool              { return c.it.HasNext() }
func (c tokenSource) extent(from, to iter.Position) string {
	if ext, ok := c.it.(iter.Extenter); ok {
		return ext.Extent(from, to)
	}
	return ""
}
