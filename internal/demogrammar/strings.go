package demogrammar

import (
	"github.com/corvidae/pika/grammar"
	"github.com/corvidae/pika/parse"
)

// QuotedStrings builds a two-mode lexer grammar: the default mode
// recognizes bare words and whitespace (discarded), STRING_START pushes
// into "str" mode, where CHAR accumulates one rune at a time until
// STRING_END pops back out. It exercises the mode stack end to end,
// independent of any character-level parse rule.
func QuotedStrings() (*grammar.Grammar, error) {
	var a parse.Arena

	letters := parse.Repetition(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}, {Lo: 'A', Hi: 'Z'}}))
	word := parse.LexerSymbol("WORD", letters, parse.ModeBehavior{})

	ws := parse.LexerSymbol("WS", parse.Repetition(parse.Switch(&a, []parse.Range{parse.R(' '), parse.R('\t'), parse.R('\n')})), parse.ModeBehavior{})

	quote := parse.Text(&a, `"`)
	stringStart := parse.LexerSymbol("STRING_START", quote, parse.ModeBehavior{Op: parse.ModePush, Mode: "str"})

	notQuote := parse.Inversion(parse.Text(&a, `"`))
	char := parse.LexerSymbol("CHAR", notQuote, parse.ModeBehavior{})

	quote2 := parse.Text(&a, `"`)
	stringEnd := parse.LexerSymbol("STRING_END", quote2, parse.ModeBehavior{Op: parse.ModePop})

	recovery := parse.Inversion(parse.Switch(&a, []parse.Range{{Lo: 'a', Hi: 'z'}, {Lo: 'A', Hi: 'Z'}, parse.R(' '), parse.R('\t'), parse.R('\n'), parse.R('"')}))

	return grammar.New("quoted-strings", &a).
		SetStart(parse.TokenRef(&a, "WORD")). // grammar.Grammar requires a start symbol even when only Tokenize is used
		AddLexerSymbol("", word).
		AddLexerSymbol("", ws).
		AddLexerSymbol("", stringStart).
		AddLexerSymbol("str", char).
		AddLexerSymbol("str", stringEnd).
		AddSkipToken(ws).
		SetRecovery(recovery).
		Build()
}
