/*
Package demogrammar provides ready-built grammars for experimentation and
for cmd/pikarepl's interactive sandbox: a small arithmetic-expression
grammar with listener-driven evaluation, and a quoted-string lexer-mode
grammar exercising the mode stack end to end.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package demogrammar

import (
	"strconv"

	"github.com/corvidae/pika/ast"
	"github.com/corvidae/pika/grammar"
	"github.com/corvidae/pika/parse"
)

// Expr   -> Term (SumOp Term)*
// Term   -> Factor (ProdOp Factor)*
// Factor -> number | '(' Expr ')'
// SumOp  -> '+' | '-'
// ProdOp -> '*' | '/'
//
// arithBuilder returns the unbuilt grammar.Builder, so callers can attach
// additional listeners (see Evaluator.Listen) before calling Build.
func arithBuilder() *grammar.Builder {
	var a parse.Arena

	digit := parse.Switch(&a, []parse.Range{{Lo: '0', Hi: '9'}})
	number := parse.Named("number", parse.Repetition(digit))

	expr := parse.NewNamed(&a, "expr")

	open := parse.Text(&a, "(")
	closeP := parse.Text(&a, ")")
	parenExpr := parse.Sequence(open, expr, closeP)
	factor := parse.Named("factor", parse.Junction(number, parenExpr))

	sumOp := parse.Named("sumOp", parse.Junction(parse.Text(&a, "+"), parse.Text(&a, "-")))
	prodOp := parse.Named("prodOp", parse.Junction(parse.Text(&a, "*"), parse.Text(&a, "/")))

	term := parse.Named("term", parse.Sequence(factor, parse.Option(parse.Repetition(parse.Sequence(prodOp, factor)))))
	exprBody := parse.Sequence(term, parse.Option(parse.Repetition(parse.Sequence(sumOp, term))))
	expr.Bind(exprBody)

	skip := parse.Repetition(parse.Switch(&a, []parse.Range{parse.R(' '), parse.R('\t')}))

	return grammar.New("arith", &a).
		SetStart(expr).
		SetSkip(skip).
		AddNamed("number", number).
		AddNamed("factor", factor).
		AddNamed("term", term).
		AddNamed("expr", expr).
		AddNamed("sumOp", sumOp).
		AddNamed("prodOp", prodOp)
}

// Arith builds the bare arithmetic grammar, no value evaluation attached.
func Arith() (*grammar.Grammar, error) {
	return arithBuilder().Build()
}

// ArithWithEval builds the arithmetic grammar wired to a fresh Evaluator,
// so every successful Parse also computes the expression's value,
// retrievable from the returned Evaluator via Result.
func ArithWithEval() (*grammar.Grammar, *Evaluator, error) {
	e := NewEvaluator()
	g, err := e.Listen(arithBuilder()).Build()
	if err != nil {
		return nil, nil, err
	}
	return g, e, nil
}

// Evaluator attaches a running evaluation to a tree produced by Arith:
// each node's computed value is kept outside the tree (Node carries no
// payload slot of its own), keyed by node identity, and consumed
// bottom-up as Walk's post-order guarantees every child fires before its
// parent.
type Evaluator struct {
	values map[*ast.Node]float64
}

// NewEvaluator returns an Evaluator with no recorded values; Listen
// registers its listeners for every rule Arith produces a value for.
func NewEvaluator() *Evaluator {
	return &Evaluator{values: make(map[*ast.Node]float64)}
}

// Listen registers this evaluator's listeners on b, so a build using
// Arith's grammar shape also evaluates on every successful parse.
func (e *Evaluator) Listen(b *grammar.Builder) *grammar.Builder {
	return b.
		AddListener("number", e.onNumber).
		AddListener("factor", e.onFactor).
		AddListener("term", e.onTerm).
		AddListener("expr", e.onExpr)
}

func (e *Evaluator) onNumber(n *ast.Node) {
	v, err := strconv.ParseFloat(n.Substring, 64)
	if err != nil {
		return
	}
	e.values[n] = v
}

// onFactor reads the single child Junction(number, '(' expr ')') produced:
// either the number node directly (ordinal 0), or the unnamed
// Sequence('(', expr, ')') node, whose middle child is the parenthesized
// expr (ordinal 1).
func (e *Evaluator) onFactor(n *ast.Node) {
	if len(n.Children) != 1 {
		return
	}
	inner := n.Children[0]
	if n.MatchOrdinal() == 0 {
		e.values[n] = e.values[inner]
		return
	}
	if paren, ok := inner.ChildAs(1, "expr"); ok {
		e.values[n] = e.values[paren]
	}
}

func (e *Evaluator) onTerm(n *ast.Node) {
	e.values[n] = e.foldChain(n, func(op string, acc, rhs float64) float64 {
		if op == "*" {
			return acc * rhs
		}
		return acc / rhs
	})
}

func (e *Evaluator) onExpr(n *ast.Node) {
	e.values[n] = e.foldChain(n, func(op string, acc, rhs float64) float64 {
		if op == "+" {
			return acc + rhs
		}
		return acc - rhs
	})
}

// foldChain folds a "first (op operand)*" sequence node's children
// left-to-right, sharing the identical reduction shape term and expr
// both have: n.Children is [first, tail], tail an Option wrapping a
// Repetition of (op operand) pairs, present only when at least one
// iteration matched.
func (e *Evaluator) foldChain(n *ast.Node, apply func(op string, acc, rhs float64) float64) float64 {
	if len(n.Children) == 0 {
		return 0
	}
	acc := e.values[n.Children[0]]
	if len(n.Children) < 2 {
		return acc
	}
	tail := n.Children[1]
	if !tail.OptionSucceeded() || len(tail.Children) == 0 {
		return acc
	}
	for _, pair := range tail.Children[0].Children {
		if len(pair.Children) != 2 {
			continue
		}
		op := pair.Children[0].Substring
		rhs := e.values[pair.Children[1]]
		acc = apply(op, acc, rhs)
	}
	return acc
}

// Result returns the evaluated value attached to root, or 0 if root was
// never visited by this evaluator's listeners.
func (e *Evaluator) Result(root *ast.Node) float64 {
	return e.values[root]
}
