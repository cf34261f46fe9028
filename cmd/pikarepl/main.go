/*
Command pikarepl is an interactive sandbox for experimenting with the
arithmetic demo grammar and the quoted-string lexer-mode demo grammar: a
line typed at the prompt is parsed (or tokenized, in :tokens mode) and the
result is rendered as a tree, alongside its evaluated value where
applicable. A sandbox for early-stage grammar experiments, not a
production tool.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/internal/demogrammar"
)

func tracer() tracing.Trace {
	return tracing.Select("pika.repl")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to pikarepl")
	pterm.Info.Println(`Type an arithmetic expression, ":tokens <text>" to run the quoted-string tokenizer demo, or ":quit" to exit.`)

	repl, err := readline.New("pika> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	r := &session{repl: repl}
	r.loop()
}

type session struct {
	repl *readline.Instance
}

func (s *session) loop() {
	for {
		line, err := s.repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			break
		}
		if rest, ok := strings.CutPrefix(line, ":tokens "); ok {
			s.runTokens(rest)
			continue
		}
		s.runParse(line)
	}
	pterm.Info.Println("Good bye!")
}

func (s *session) runParse(line string) {
	g, eval, err := demogrammar.ArithWithEval()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	node, ok := g.Parse(line)
	if !ok {
		pterm.Error.Println("could not parse input")
		return
	}
	tree, err := ast.RenderTree(node, ast.StyleUTF8)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Println(tree)
	pterm.Info.Println(fmt.Sprintf("= %v", eval.Result(node)))
}

func (s *session) runTokens(line string) {
	g, err := demogrammar.QuotedStrings()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tokens, err := g.Tokenize(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, tok := range tokens {
		name := tok.Name
		if name == "" {
			name = "?"
		}
		pterm.Info.Println(fmt.Sprintf("%-14s %q", name, tok.Text))
	}
}
