package pika

// Token is the lexer's output unit: a name
// (empty for a recovery-produced token) and the exact substring it
// covers. It is a root-level type because both package lexer (which
// produces tokens) and package parse (whose token-level Attempt consumes
// them, for a lexer-parser's second stage) need it.
type Token struct {
	Name string
	Text string
}

// String makes Token a fmt.Stringer, so that iter.SliceIterator[Token]'s
// Extent concatenates token text back into the original input extent —
// the round-trip concatenation property applied to token-level parsing.
func (t Token) String() string { return t.Text }
