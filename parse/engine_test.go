package parse

import (
	"testing"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/iter"
)

func TestTextLiteralMatch(t *testing.T) {
	var a Arena
	sym := Text(&a, "hello")
	it := iter.NewStringIterator("hello world")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, sym)
	if !ok {
		t.Fatal("expected match")
	}
	if node.Substring != "hello" {
		t.Fatalf("substring = %q, want %q", node.Substring, "hello")
	}
	if att.Position().Offset != 5 {
		t.Fatalf("position = %v, want offset 5", att.Position())
	}
}

func TestTextLiteralMismatchReverts(t *testing.T) {
	var a Arena
	sym := Text(&a, "hello")
	it := iter.NewStringIterator("help")
	att := NewCharAttempt(&a, it, Symbol{})
	_, ok := Match(att, sym)
	if ok {
		t.Fatal("expected failure")
	}
	if att.Position().Offset != 0 {
		t.Fatalf("position = %v, want offset 0 (fully reverted)", att.Position())
	}
}

func TestSequenceRoundTripConcatenation(t *testing.T) {
	var a Arena
	digit := Switch(&a, []Range{{Lo: '0', Hi: '9'}})
	plus := Text(&a, "+")
	seq := Sequence(digit, plus, digit)
	it := iter.NewStringIterator("1+2")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, seq)
	if !ok {
		t.Fatal("expected match")
	}
	if node.Substring != "1+2" {
		t.Fatalf("substring = %q, want %q", node.Substring, "1+2")
	}
	var concat string
	for _, l := range node.Leaves() {
		concat += l.Substring
	}
	if concat != node.Substring {
		t.Fatalf("leaves concat = %q, node substring = %q", concat, node.Substring)
	}
}

func TestJunctionRecordsOrdinal(t *testing.T) {
	var a Arena
	alt := Junction(Text(&a, "foo"), Text(&a, "bar"))
	it := iter.NewStringIterator("bar")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, alt)
	if !ok {
		t.Fatal("expected match")
	}
	if node.MatchOrdinal() != 1 {
		t.Fatalf("ordinal = %d, want 1", node.MatchOrdinal())
	}
}

func TestOptionAlwaysSucceeds(t *testing.T) {
	var a Arena
	opt := Option(Text(&a, "foo"))
	it := iter.NewStringIterator("bar")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, opt)
	if !ok {
		t.Fatal("Option must always succeed")
	}
	if node.OptionSucceeded() {
		t.Fatal("expected OptionFailed, inner did not match")
	}
	if att.Position().Offset != 0 {
		t.Fatalf("Option consumed input on a non-match: offset %d", att.Position().Offset)
	}
}

func TestRepetitionRequiresAtLeastOne(t *testing.T) {
	var a Arena
	digit := Switch(&a, []Range{{Lo: '0', Hi: '9'}})
	rep := Repetition(digit)
	it := iter.NewStringIterator("abc")
	att := NewCharAttempt(&a, it, Symbol{})
	if _, ok := Match(att, rep); ok {
		t.Fatal("expected Repetition to fail with zero iterations")
	}
}

func TestRepetitionGreedy(t *testing.T) {
	var a Arena
	digit := Switch(&a, []Range{{Lo: '0', Hi: '9'}})
	rep := Repetition(digit)
	it := iter.NewStringIterator("123abc")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, rep)
	if !ok {
		t.Fatal("expected match")
	}
	if node.Substring != "123" {
		t.Fatalf("substring = %q, want %q", node.Substring, "123")
	}
}

func TestInversionConsumesOneOnNonMatch(t *testing.T) {
	var a Arena
	inv := Inversion(Text(&a, "x"))
	it := iter.NewStringIterator("yz")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, inv)
	if !ok {
		t.Fatal("expected match")
	}
	if node.Substring != "y" {
		t.Fatalf("substring = %q, want %q", node.Substring, "y")
	}
	if att.Position().Offset != 1 {
		t.Fatalf("position = %v, want offset 1", att.Position())
	}
}

func TestInversionFailsOnMatch(t *testing.T) {
	var a Arena
	inv := Inversion(Text(&a, "x"))
	it := iter.NewStringIterator("xyz")
	att := NewCharAttempt(&a, it, Symbol{})
	if _, ok := Match(att, inv); ok {
		t.Fatal("expected Inversion to fail when child matches")
	}
	if att.Position().Offset != 0 {
		t.Fatalf("position = %v, want offset 0 (reverted)", att.Position())
	}
}

func TestEndMatchesOnlyAtExhaustion(t *testing.T) {
	var a Arena
	end := End(&a)
	it := iter.NewStringIterator("")
	att := NewCharAttempt(&a, it, Symbol{})
	if _, ok := Match(att, end); !ok {
		t.Fatal("expected End to match an empty input")
	}

	it2 := iter.NewStringIterator("x")
	att2 := NewCharAttempt(&a, it2, Symbol{})
	if _, ok := Match(att2, end); ok {
		t.Fatal("expected End to fail on non-empty remaining input")
	}
}

func TestSkipIsTransparentBetweenSequenceElements(t *testing.T) {
	var a Arena
	ws := Repetition(Switch(&a, []Range{R(' ')}))
	digit := Repetition(Switch(&a, []Range{{Lo: '0', Hi: '9'}}))
	plus := Text(&a, "+")
	seq := Sequence(digit, plus, digit)

	it := iter.NewStringIterator("1 + 22")
	att := NewCharAttempt(&a, it, ws)
	node, ok := Match(att, seq)
	if !ok {
		t.Fatal("expected match with skip absorbing surrounding spaces")
	}
	if node.Substring != "1+22" {
		t.Fatalf("substring = %q, want %q (skip text must not appear in it)", node.Substring, "1+22")
	}
	if !att.AtEnd() {
		t.Fatalf("expected all input consumed, remaining at %v", att.Position())
	}
}

func TestNamedRecursiveJunctionCycleGuard(t *testing.T) {
	var a Arena
	r := NewNamed(&a, "r")
	body := Junction(r, Text(&a, "x"))
	r.Bind(body)

	it := iter.NewStringIterator("x")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, r)
	if !ok {
		t.Fatal("expected the recursive alternative to fall through to the base case")
	}
	if node.Substring != "x" {
		t.Fatalf("substring = %q, want %q", node.Substring, "x")
	}
	if node.Symbol != "r" {
		t.Fatalf("symbol = %q, want %q (Named relabels the result)", node.Symbol, "r")
	}
}

func TestJunctionFirstAlternativeWinsAndIsMemoized(t *testing.T) {
	var a Arena
	digit := Switch(&a, []Range{{Lo: '0', Hi: '9'}})
	named := Named("digit", digit)
	// The first alternative matches "7", so Text("x") is never tried; the
	// match is recorded in the pivot map at position 0.
	junction := Junction(named, Text(&a, "x"))

	it := iter.NewStringIterator("7")
	att := NewCharAttempt(&a, it, Symbol{})
	node, ok := Match(att, junction)
	if !ok {
		t.Fatal("expected match")
	}
	if node.MatchOrdinal() != 0 {
		t.Fatalf("ordinal = %d, want 0", node.MatchOrdinal())
	}
	if att.PivotCount() == 0 {
		t.Fatal("expected the pivot map to have recorded at least one position")
	}
}

func TestTokenRefMatchesByName(t *testing.T) {
	var a Arena
	ref := TokenRef(&a, "NUM")
	it := iter.NewSliceIterator([]pika.Token{
		{Name: "NUM", Text: "42"},
		{Name: "PLUS", Text: "+"},
	})
	att := NewTokenAttempt(&a, it, Symbol{})
	node, ok := Match(att, ref)
	if !ok {
		t.Fatal("expected match")
	}
	if node.Substring != "42" {
		t.Fatalf("substring = %q, want %q", node.Substring, "42")
	}
}
