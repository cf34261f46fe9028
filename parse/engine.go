package parse

import (
	"strings"

	"github.com/corvidae/pika"
	"github.com/corvidae/pika/ast"
)

// matchAt is the packrat matcher's single entry point: save, consult the
// pivot for a cached result or a cycle, try the symbol (after any
// applicable skip), memoize, and unwind.
//
//  1. Save the current position p0.
//  2. Look up the MatchAttempt at p0. A recorded failure or an in-progress
//     call (cycle guard) both fail immediately. A recorded success seeks
//     the element source past the cached match and returns the cached
//     node, without re-running the match; a LexerSymbol's mode behavior
//     is applied again on such a replay.
//  3. Mark sym as calling at p0.
//  4. If a skip symbol is configured and sym is not itself the skip
//     symbol, try it once (with skip itself disabled, so it can't
//     recurse into itself) and keep any advance it makes.
//  5. Dispatch on sym's kind to build a node.
//  6. Unmark calling. On success, memoize and drop the save (keeping the
//     advanced position). On failure, memoize the failure and revert all
//     the way back to p0 — discarding both the attempt's own consumption
//     and any skip consumed in step 4.
func matchAt(att *Attempt, sym Symbol) (*ast.Node, bool) {
	p0 := att.src.position()
	ma := att.pivots.findOrInsert(p0)
	id := sym.ID()

	if ma.hasFailed(id) {
		return nil, false
	}
	if cached, ok := ma.success(id); ok {
		att.src.seek(cached.end)
		if sym.Kind() == KindLexerSymbol {
			r := sym.rec()
			att.applyBehavior(r.name, r.behavior)
		}
		return cached.node, true
	}
	if ma.isCalling(id) {
		return nil, false
	}

	att.src.save()
	ma.startCalling(id)

	if !att.skip.IsZero() && id != att.skip.ID() {
		saved := att.skip
		att.skip = Symbol{}
		matchAt(att, saved)
		att.skip = saved
	}

	node, ok := matchBody(att, sym)

	ma.stopCalling(id)
	if !ok {
		ma.recordFail(id)
		att.src.revert()
		return nil, false
	}
	ma.recordSuccess(id, node, att.src.position())
	att.src.removeSave()
	return node, true
}

// matchBody performs the per-variant match logic only — no pivot lookup,
// skip handling or cycle guard. matchAt wraps every ordinary call to it;
// matchNamed calls it directly for its own inner expression, since the
// Named symbol's own matchAt call already discharged the skip/pivot/cycle
// bookkeeping for the combined (Named + inner) occurrence.
func matchBody(att *Attempt, sym Symbol) (*ast.Node, bool) {
	switch sym.Kind() {
	case KindText:
		return matchText(att, sym)
	case KindSwitch:
		return matchSwitch(att, sym)
	case KindOption:
		return matchOption(att, sym)
	case KindRepetition:
		return matchRepetition(att, sym)
	case KindJunction:
		return matchJunction(att, sym)
	case KindSequence:
		return matchSequence(att, sym)
	case KindInversion:
		return matchInversion(att, sym)
	case KindEnd:
		return matchEnd(att, sym)
	case KindTokenRef:
		return matchTokenRef(att, sym)
	case KindLexerSymbol:
		return matchLexerSymbol(att, sym)
	case KindNamed:
		return matchNamed(att, sym)
	default:
		return nil, false
	}
}

func matchText(att *Attempt, sym Symbol) (*ast.Node, bool) {
	text := sym.rec().text
	start := att.src.position()
	if text == "" {
		return ast.NewLeaf(sym.String(), ""), true
	}
	for _, want := range text {
		e, ok := att.src.next()
		if !ok {
			return nil, false
		}
		r, isRune := e.(rune)
		if !isRune || r != want {
			return nil, false
		}
	}
	end := att.src.position()
	return ast.NewLeaf(sym.String(), att.src.extent(start, end)), true
}

func matchSwitch(att *Attempt, sym Symbol) (*ast.Node, bool) {
	rec := sym.rec()
	start := att.src.position()
	e, ok := att.src.next()
	if !ok {
		return nil, false
	}
	r, isRune := e.(rune)
	if !isRune {
		return nil, false
	}
	matched := false
	for _, rg := range rec.ranges {
		if rg.contains(r) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, false
	}
	end := att.src.position()
	return ast.NewLeaf(sym.String(), att.src.extent(start, end)), true
}

func matchOption(att *Attempt, sym Symbol) (*ast.Node, bool) {
	child := sym.child()
	node, ok := matchAt(att, child)
	if ok {
		return ast.NewInterior(sym.String(), node.Substring, node).WithOption(true), true
	}
	return ast.NewInterior(sym.String(), "").WithOption(false), true
}

// matchRepetition matches child one or more times, greedily. An iteration
// that matches but consumes nothing is treated as the end of the
// repetition rather than retried — a zero-width combinator under
// Repetition would otherwise loop forever.
func matchRepetition(att *Attempt, sym Symbol) (*ast.Node, bool) {
	child := sym.child()
	var children []*ast.Node
	for {
		before := att.src.position()
		node, ok := matchAt(att, child)
		if !ok {
			break
		}
		if att.src.position() == before {
			break
		}
		children = append(children, node)
	}
	if len(children) == 0 {
		return nil, false
	}
	return ast.NewInterior(sym.String(), concatSubstrings(children), children...), true
}

// matchJunction tries children in declaration order; the first to match
// wins, recording its index as the resulting node's MatchOrdinal.
func matchJunction(att *Attempt, sym Symbol) (*ast.Node, bool) {
	rec := sym.rec()
	for i, cid := range rec.children {
		c := Symbol{a: sym.a, id: cid}
		node, ok := matchAt(att, c)
		if ok {
			return ast.NewInterior(sym.String(), node.Substring, node).WithOrdinal(i), true
		}
	}
	return nil, false
}

// matchSequence matches every child in order; any failure fails the whole
// sequence, and matchAt's own revert (triggered by that failure) undoes
// every child matched so far.
func matchSequence(att *Attempt, sym Symbol) (*ast.Node, bool) {
	rec := sym.rec()
	children := make([]*ast.Node, 0, len(rec.children))
	for _, cid := range rec.children {
		c := Symbol{a: sym.a, id: cid}
		node, ok := matchAt(att, c)
		if !ok {
			return nil, false
		}
		children = append(children, node)
	}
	return ast.NewInterior(sym.String(), concatSubstrings(children), children...), true
}

// matchInversion succeeds, consuming exactly one element, iff child fails
// to match at the current position.
func matchInversion(att *Attempt, sym Symbol) (*ast.Node, bool) {
	child := sym.child()
	if _, ok := matchAt(att, child); ok {
		return nil, false
	}
	start := att.src.position()
	if !att.src.hasNext() {
		return nil, false
	}
	att.src.next()
	end := att.src.position()
	return ast.NewLeaf(sym.String(), att.src.extent(start, end)), true
}

func matchEnd(att *Attempt, sym Symbol) (*ast.Node, bool) {
	if att.src.hasNext() {
		return nil, false
	}
	return ast.NewLeaf(sym.String(), ""), true
}

// matchTokenRef matches a single token element whose Name equals the
// referenced name; used only in a lexer-parser's token-level grammar.
func matchTokenRef(att *Attempt, sym Symbol) (*ast.Node, bool) {
	name := sym.rec().name
	e, ok := att.src.peek()
	if !ok {
		return nil, false
	}
	tok, isTok := e.(pika.Token)
	if !isTok || tok.Name != name {
		return nil, false
	}
	att.src.next()
	return ast.NewLeaf(sym.String(), tok.Text), true
}

// matchLexerSymbol matches its fragment and, on success, applies its mode
// behavior to the lexer's mode stack. The resulting node is relabeled
// with the token name rather than carrying the fragment's internal
// structure — a lexer symbol's match is opaque from the grammar's
// perspective.
func matchLexerSymbol(att *Attempt, sym Symbol) (*ast.Node, bool) {
	rec := sym.rec()
	fragment := sym.child()
	node, ok := matchAt(att, fragment)
	if !ok {
		return nil, false
	}
	att.applyBehavior(rec.name, rec.behavior)
	return ast.NewLeaf(rec.name, node.Substring), true
}

// matchNamed delegates directly to its inner expression's body, bypassing
// the usual pivot/skip/cycle wrapper for that one delegation (the Named
// symbol's own matchAt call already discharged it); the inner node is
// relabeled with the declared name rather than wrapped in an extra node.
// Grandchildren reached from within the inner expression (e.g. a
// recursive reference back to this same Named symbol inside a Junction)
// go through the ordinary matchAt path and so are still cycle-guarded.
func matchNamed(att *Attempt, sym Symbol) (*ast.Node, bool) {
	rec := sym.rec()
	inner := Symbol{a: sym.a, id: rec.child}
	node, ok := matchBody(att, inner)
	if !ok {
		return nil, false
	}
	return node.Relabel(rec.name), true
}

func concatSubstrings(children []*ast.Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(c.Substring)
	}
	return b.String()
}
