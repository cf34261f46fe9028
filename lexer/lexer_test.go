package lexer

import (
	"errors"
	"testing"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/iter"
	"github.com/corvidae/pika/parse"
)

func TestLexerModeStack(t *testing.T) {
	var a parse.Arena

	quote := parse.Text(&a, `"`)
	stringStart := parse.LexerSymbol("STRING_START", quote, parse.ModeBehavior{Op: parse.ModePush, Mode: "str"})

	notQuote := parse.Inversion(parse.Text(&a, `"`))
	char := parse.LexerSymbol("CHAR", notQuote, parse.ModeBehavior{})

	quote2 := parse.Text(&a, `"`)
	stringEnd := parse.LexerSymbol("STRING_END", quote2, parse.ModeBehavior{Op: parse.ModePop})

	modes := map[string][]parse.Symbol{
		"":    {stringStart},
		"str": {char, stringEnd},
	}
	lx := New(&a, modes, nil, parse.Symbol{})

	tokens, err := lx.Tokenize(iter.NewStringIterator(`"hi"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []pika.Token{
		{Name: "STRING_START", Text: `"`},
		{Name: "CHAR", Text: "h"},
		{Name: "CHAR", Text: "i"},
		{Name: "STRING_END", Text: `"`},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestLexerRecoveryMergesUnmatchedRuns(t *testing.T) {
	var a parse.Arena

	letters := parse.Repetition(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}}))
	word := parse.LexerSymbol("WORD", letters, parse.ModeBehavior{})

	notLetter := parse.Inversion(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}}))

	modes := map[string][]parse.Symbol{"": {word}}
	lx := New(&a, modes, nil, notLetter)

	tokens, err := lx.Tokenize(iter.NewStringIterator("ab!!cd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []pika.Token{
		{Name: "WORD", Text: "ab"},
		{Name: "", Text: "!!"},
		{Name: "WORD", Text: "cd"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestLexerConservation(t *testing.T) {
	var a parse.Arena
	letters := parse.Repetition(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}}))
	word := parse.LexerSymbol("WORD", letters, parse.ModeBehavior{})
	notLetter := parse.Inversion(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}}))

	modes := map[string][]parse.Symbol{"": {word}}
	lx := New(&a, modes, nil, notLetter)

	input := "ab!!cd ef"
	tokens, err := lx.Tokenize(iter.NewStringIterator(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var reassembled string
	for _, tok := range tokens {
		reassembled += tok.Text
	}
	if reassembled != input {
		t.Fatalf("reassembled = %q, want %q", reassembled, input)
	}
}

func TestLexerIllegalTokenWithoutRecovery(t *testing.T) {
	var a parse.Arena
	digits := parse.Repetition(parse.Switch(&a, []parse.Range{{Lo: '0', Hi: '9'}}))
	num := parse.LexerSymbol("NUM", digits, parse.ModeBehavior{})

	modes := map[string][]parse.Symbol{"": {num}}
	lx := New(&a, modes, nil, parse.Symbol{})

	_, err := lx.Tokenize(iter.NewStringIterator("12x"))
	if err == nil {
		t.Fatal("expected an illegal-token error")
	}
	var illegal *pika.IllegalTokenError
	if !errors.As(err, &illegal) {
		t.Fatalf("error = %v, want *pika.IllegalTokenError", err)
	}
	if illegal.TokensSoFar != 1 {
		t.Fatalf("TokensSoFar = %d, want 1", illegal.TokensSoFar)
	}
}

func TestLexerSkipTokenDiscarded(t *testing.T) {
	var a parse.Arena
	ws := parse.LexerSymbol("WS", parse.Repetition(parse.Switch(&a, []parse.Range{parse.R(' ')})), parse.ModeBehavior{})
	letters := parse.Repetition(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}}))
	word := parse.LexerSymbol("WORD", letters, parse.ModeBehavior{})

	modes := map[string][]parse.Symbol{"": {ws, word}}
	lx := New(&a, modes, []parse.Symbol{ws}, parse.Symbol{})

	tokens, err := lx.Tokenize(iter.NewStringIterator("ab cd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []pika.Token{{Name: "WORD", Text: "ab"}, {Name: "WORD", Text: "cd"}}
	if len(tokens) != len(want) {
		t.Fatalf("got %+v, want %+v", tokens, want)
	}
	for i, tok := range tokens {
		if tok != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}
