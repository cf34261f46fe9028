package iter

import (
	"errors"
	"strings"
	"testing"

	"github.com/corvidae/pika"
)

func TestStringIteratorSaveRevertIdempotence(t *testing.T) {
	it := NewStringIterator("hello world")
	before := it.Position()
	it.Save()
	for i := 0; i < 5; i++ {
		it.Next()
	}
	if err := it.Revert(); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	after := it.Position()
	if before != after {
		t.Fatalf("position mismatch after save/revert: %v != %v", before, after)
	}
	r, ok := it.Peek()
	if !ok || r != 'h' {
		t.Fatalf("expected 'h' after revert, got %q ok=%v", r, ok)
	}
}

func TestStringIteratorRevertWithoutSave(t *testing.T) {
	it := NewStringIterator("x")
	if err := it.Revert(); err != ErrNoSavedPosition {
		t.Fatalf("expected ErrNoSavedPosition, got %v", err)
	}
}

func TestStringIteratorNestedSaves(t *testing.T) {
	it := NewStringIterator("abcdef")
	it.Save() // at 0
	it.Advance(2)
	it.Save() // at 2
	it.Advance(2)
	if err := it.RemoveSave(); err != nil { // drop the inner save, keep outer
		t.Fatal(err)
	}
	if err := it.Revert(); err != nil { // restore outer save (position 0)
		t.Fatal(err)
	}
	if it.Position().Offset != 0 {
		t.Fatalf("expected offset 0, got %d", it.Position().Offset)
	}
}

func TestStreamIteratorChunking(t *testing.T) {
	text := strings.Repeat("ab", 10)
	it := NewStreamIterator("test", strings.NewReader(text), 4)
	var got []rune
	for it.HasNext() {
		r, _ := it.Next()
		got = append(got, r)
	}
	if string(got) != text {
		t.Fatalf("got %q want %q", string(got), text)
	}
	if len(it.chunks) != 5 {
		t.Fatalf("expected 5 chunks of size 4, got %d", len(it.chunks))
	}
}

func TestStreamIteratorSaveAcrossChunkBoundary(t *testing.T) {
	text := "0123456789"
	it := NewStreamIterator("test", strings.NewReader(text), 4)
	it.Advance(3)
	it.Save() // position 3, still within first chunk
	it.Advance(4)
	start := Position{Chunk: 0, Offset: 3}
	end := it.Position()
	sub := it.Substring(start, end)
	if sub != "3456" {
		t.Fatalf("substring = %q, want %q", sub, "3456")
	}
	if err := it.Revert(); err != nil {
		t.Fatal(err)
	}
	r, _ := it.Peek()
	if r != '3' {
		t.Fatalf("expected '3' after revert, got %q", r)
	}
}

func TestStreamIteratorExhaustionReportsNoErr(t *testing.T) {
	it := NewStreamIterator("test", strings.NewReader("ab"), 4)
	it.Advance(2)
	if it.HasNext() {
		t.Fatal("expected exhaustion")
	}
	if it.Err() != nil {
		t.Fatalf("ordinary exhaustion must not report an error, got %v", it.Err())
	}
}

func TestStreamIteratorClosedReportsIteratorClosedError(t *testing.T) {
	it := NewStreamIterator("test", strings.NewReader("abcdef"), 4)
	it.Close()
	if it.HasNext() {
		t.Fatal("expected no element from a closed iterator")
	}
	var closedErr *pika.IteratorClosedError
	if !errors.As(it.Err(), &closedErr) {
		t.Fatalf("expected *pika.IteratorClosedError, got %v", it.Err())
	}
	if closedErr.Source != "test" {
		t.Fatalf("expected source %q, got %q", "test", closedErr.Source)
	}
	if _, ok := it.Peek(); ok {
		t.Fatal("expected Peek to fail on a closed iterator")
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected Next to fail on a closed iterator")
	}
}

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator([]string{"a", "b", "c"})
	it.Save()
	it.Next()
	it.Next()
	if err := it.Revert(); err != nil {
		t.Fatal(err)
	}
	v, ok := it.Peek()
	if !ok || v != "a" {
		t.Fatalf("expected 'a', got %q ok=%v", v, ok)
	}
}
