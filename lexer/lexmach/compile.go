/*
Package lexmach compiles a subset of lexer symbols into lexmachine DFAs,
as an optional faster alternative to driving the packrat engine through
every lexer symbol on every input position. Only fragments built from
Text, Switch, Sequence, Junction, Repetition, Option and (bound) Named
translate to a regular expression; Inversion and anything referencing a
token-level symbol have no cheap DFA equivalent and fail to compile, so
callers fall back to lexer.Lexer for such a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/parse"
)

func tracer() tracing.Trace {
	return tracing.Select("pika.lexer.lexmach")
}

// matched is the value a compiled rule's action hands back: which lexer
// symbol fired and what it matched.
type matched struct {
	name     string
	text     string
	behavior *parse.ModeBehavior
}

// FastPath holds one compiled lexmachine.Lexer per mode.
type FastPath struct {
	lexers map[string]*lexmachine.Lexer
}

// CompileFastPath compiles modes (the same shape lexer.New accepts) into
// a FastPath. Returns an error naming the first symbol whose fragment
// can't be translated to a regular expression, or a lexmachine DFA
// compile error.
func CompileFastPath(modes map[string][]parse.Symbol) (*FastPath, error) {
	fp := &FastPath{lexers: make(map[string]*lexmachine.Lexer, len(modes))}
	for mode, syms := range modes {
		lx := lexmachine.NewLexer()
		for _, sym := range syms {
			if sym.Kind() != parse.KindLexerSymbol {
				return nil, fmt.Errorf("lexmach: mode %q: %s is not a lexer symbol", mode, sym.String())
			}
			pattern, err := toPattern(sym.Child())
			if err != nil {
				return nil, fmt.Errorf("lexmach: mode %q, symbol %s: %w", mode, sym.Name(), err)
			}
			name, behavior := sym.Name(), sym.Behavior()
			lx.Add([]byte(pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
				return matched{name: name, text: string(m.Bytes), behavior: behavior}, nil
			})
		}
		if err := lx.Compile(); err != nil {
			tracer().Errorf("lexmach: compiling mode %q: %v", mode, err)
			return nil, err
		}
		fp.lexers[mode] = lx
	}
	return fp, nil
}

// toPattern translates a lexer fragment into a lexmachine-compatible
// regular expression, recursively.
func toPattern(sym parse.Symbol) (string, error) {
	switch sym.Kind() {
	case parse.KindText:
		return literalPattern(sym.Text()), nil
	case parse.KindSwitch:
		return classPattern(sym.Ranges()), nil
	case parse.KindSequence:
		var b strings.Builder
		for _, c := range sym.Children() {
			p, err := toPattern(c)
			if err != nil {
				return "", err
			}
			b.WriteString(p)
		}
		return b.String(), nil
	case parse.KindJunction:
		children := sym.Children()
		parts := make([]string, len(children))
		for i, c := range children {
			p, err := toPattern(c)
			if err != nil {
				return "", err
			}
			parts[i] = p
		}
		return "(" + strings.Join(parts, "|") + ")", nil
	case parse.KindRepetition:
		inner, err := toPattern(sym.Child())
		if err != nil {
			return "", err
		}
		return "(" + inner + ")+", nil
	case parse.KindOption:
		inner, err := toPattern(sym.Child())
		if err != nil {
			return "", err
		}
		return "(" + inner + ")?", nil
	case parse.KindNamed:
		if !sym.IsBound() {
			return "", fmt.Errorf("named symbol %s was never bound", sym.Name())
		}
		return toPattern(sym.Child())
	default:
		return "", fmt.Errorf("%s has no DFA-pattern equivalent", sym.Kind())
	}
}

// literalPattern escapes every rune of s individually, so that regex
// metacharacters appearing in a literal (e.g. Text(a, "+")) are matched
// literally rather than interpreted.
func literalPattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return b.String()
}

// classPattern renders ranges as a regex character class.
func classPattern(ranges []parse.Range) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range ranges {
		b.WriteString(escapeClassRune(r.Lo))
		if r.Hi != r.Lo {
			b.WriteByte('-')
			b.WriteString(escapeClassRune(r.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func escapeClassRune(r rune) string {
	switch r {
	case ']', '\\', '^', '-':
		return "\\" + string(r)
	default:
		return string(r)
	}
}

// Tokenize drives the compiled DFAs over input, restarting a fresh
// Scanner at the active mode's DFA after every token — necessary
// because lexmachine has no notion of our mode stack, and a mode change
// always requires switching to a different compiled Lexer. Unconsumed
// input is handled exactly as lexmachine itself recommends: on a
// *machines.UnconsumedInput error, the bytes between the scan's start
// and the error's FailTC are folded into an unnamed recovery token and
// scanning resumes at FailTC. skip names the lexer symbols whose
// matches should be discarded rather than emitted.
func (fp *FastPath) Tokenize(input string, skip map[string]bool) ([]pika.Token, error) {
	bytesIn := []byte(input)
	modes := []string{""}
	offset := 0
	var tokens []pika.Token

	for offset < len(bytesIn) {
		mode := modes[len(modes)-1]
		lx, ok := fp.lexers[mode]
		if !ok {
			return tokens, fmt.Errorf("lexmach: no compiled DFA for mode %q", mode)
		}
		sc, err := lx.Scanner(bytesIn[offset:])
		if err != nil {
			return tokens, err
		}

		beforeTC := sc.TC
		tok, scanErr, eof := sc.Next()
		for scanErr != nil {
			ui, isUnconsumed := scanErr.(*machines.UnconsumedInput)
			if !isUnconsumed {
				return tokens, scanErr
			}
			if bad := string(bytesIn[offset+beforeTC : offset+ui.FailTC]); bad != "" {
				tokens = append(tokens, pika.Token{Name: "", Text: bad})
			}
			sc.TC = ui.FailTC
			beforeTC = sc.TC
			tok, scanErr, eof = sc.Next()
		}
		if eof {
			break
		}

		m := tok.(matched)
		if !skip[m.name] {
			tokens = append(tokens, pika.Token{Name: m.name, Text: m.text})
		}
		offset += sc.TC

		switch {
		case m.behavior == nil || m.behavior.Op == parse.ModeNone:
		case m.behavior.Op == parse.ModePush:
			modes = append(modes, m.behavior.Mode)
		case m.behavior.Op == parse.ModePop:
			if len(modes) <= 1 {
				return tokens, parse.ModeStackUnderflow{Symbol: m.name}
			}
			modes = modes[:len(modes)-1]
		case m.behavior.Op == parse.ModeSet:
			modes[len(modes)-1] = m.behavior.Mode
		}
	}
	return tokens, nil
}
