package iter

import (
	"io"

	"github.com/npillmayer/schuko/tracing"

	"github.com/corvidae/pika"
)

// DefaultChunkSize is the default chunk size in decoded runes (rather than
// raw bytes, since the host decoder already hands us runes); larger sizes
// are fine without affecting semantics.
const DefaultChunkSize = 8192

func tracer() tracing.Trace {
	return tracing.Select("pika.iter")
}

// StreamIterator is a revertible iterator over a streaming rune source. It
// loads fixed-size chunks lazily and never discards a loaded chunk, so
// that positions saved earlier in the stream remain valid.
type StreamIterator struct {
	src        io.RuneReader
	chunkSize  int
	chunks     [][]rune
	section    int
	offset     int
	saves      saveStack[Position]
	sourceDone bool
	closed     bool
	err        error
	sourceName string
}

var _ Iterator[rune] = (*StreamIterator)(nil)

// NewStreamIterator wraps r for chunked iteration. A chunkSize <= 0 uses
// DefaultChunkSize. name is used only in IteratorClosedError messages.
func NewStreamIterator(name string, r io.RuneReader, chunkSize int) *StreamIterator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &StreamIterator{src: r, chunkSize: chunkSize, sourceName: name}
}

// Close marks the iterator closed; any further access through
// HasNext/Peek/Next reports no element and records a
// *pika.IteratorClosedError, retrievable via Err — the bufio.Scanner
// idiom, since Iterator's own methods carry no error return.
func (it *StreamIterator) Close() {
	it.closed = true
}

// Err returns the error, if any, that explains the most recent false
// from HasNext/Peek/Next: a *pika.IteratorClosedError once the iterator
// has been Closed and accessed again, nil for ordinary exhaustion.
func (it *StreamIterator) Err() error {
	return it.err
}

// loadNextChunk reads up to chunkSize further runes from src and appends
// them as a new chunk. It returns false once the source is exhausted.
func (it *StreamIterator) loadNextChunk() bool {
	if it.closed || it.sourceDone {
		return false
	}
	buf := make([]rune, 0, it.chunkSize)
	for len(buf) < it.chunkSize {
		r, _, err := it.src.ReadRune()
		if err != nil {
			if err == io.EOF {
				it.sourceDone = true
			} else {
				tracer().Errorf("stream iterator %q: read error: %v", it.sourceName, err)
				it.sourceDone = true
			}
			break
		}
		buf = append(buf, r)
	}
	if len(buf) == 0 {
		return false
	}
	it.chunks = append(it.chunks, buf)
	tracer().Debugf("stream iterator %q: loaded chunk %d (%d runes)", it.sourceName, len(it.chunks)-1, len(buf))
	return true
}

// verifySection advances (section, offset) past any fully-consumed
// chunks, loading forward chunks as needed. It reports whether the
// current position denotes a readable element.
func (it *StreamIterator) verifySection() bool {
	if it.closed {
		it.err = &pika.IteratorClosedError{Source: it.sourceName}
		return false
	}
	for {
		if it.section >= len(it.chunks) {
			if !it.loadNextChunk() {
				return false
			}
			continue
		}
		chunk := it.chunks[it.section]
		if it.offset < len(chunk) {
			return true
		}
		// chunk exhausted: only cross into a further chunk if this one
		// was full-sized (a short chunk means the source ended here).
		if len(chunk) < it.chunkSize {
			return false
		}
		if it.section == len(it.chunks)-1 {
			if !it.loadNextChunk() {
				return false
			}
		}
		it.section++
		it.offset = 0
	}
}

func (it *StreamIterator) Peek() (rune, bool) {
	if !it.verifySection() {
		return 0, false
	}
	return it.chunks[it.section][it.offset], true
}

func (it *StreamIterator) Next() (rune, bool) {
	r, ok := it.Peek()
	if ok {
		it.offset++
	}
	return r, ok
}

func (it *StreamIterator) Advance(n int) {
	for i := 0; i < n; i++ {
		if _, ok := it.Next(); !ok {
			return
		}
	}
}

func (it *StreamIterator) Save() {
	it.saves.push(it.Position())
}

func (it *StreamIterator) Revert() error {
	p, ok := it.saves.pop()
	if !ok {
		return ErrNoSavedPosition
	}
	it.section, it.offset = p.Chunk, p.Offset
	return nil
}

func (it *StreamIterator) RemoveSave() error {
	if !it.saves.dropTop() {
		return ErrNoSavedPosition
	}
	return nil
}

func (it *StreamIterator) Position() Position {
	return Position{Chunk: it.section, Offset: it.offset}
}

func (it *StreamIterator) Seek(p Position) {
	it.section, it.offset = p.Chunk, p.Offset
}

func (it *StreamIterator) HasNext() bool {
	return it.verifySection()
}

// Substring reconstructs the text covered by [from, to), which may span
// multiple chunks. Both positions must come from this same iterator and
// their chunks must still be retained (true for any position obtained
// since the iterator was created, since chunks are never discarded).
func (it *StreamIterator) Substring(from, to Position) string {
	if from == to || !from.Less(to) {
		return ""
	}
	var out []rune
	for c := from.Chunk; c <= to.Chunk && c < len(it.chunks); c++ {
		chunk := it.chunks[c]
		start, end := 0, len(chunk)
		if c == from.Chunk {
			start = from.Offset
		}
		if c == to.Chunk {
			end = to.Offset
		}
		if start < 0 {
			start = 0
		}
		if end > len(chunk) {
			end = len(chunk)
		}
		if start < end {
			out = append(out, chunk[start:end]...)
		}
	}
	return string(out)
}

// Extent implements iter.Extenter.
func (it *StreamIterator) Extent(from, to Position) string {
	return it.Substring(from, to)
}
