/*
Package ast implements the syntax tree produced by a successful parse,
its post-order listener dispatch, and tree-string rendering.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ast

// Node is a syntax tree node. It carries a
// reference to the producing symbol's name, the exact matched substring,
// and its children in left-to-right order. Invariant: the concatenation
// of Leaves(n)'s substrings equals n.Substring, for any n.
type Node struct {
	// Symbol is the stable name of the producing symbol: a Named
	// symbol's declared name, or the symbol's own String() form for
	// unnamed combinators (e.g. an inline Sequence).
	Symbol string

	// Substring is the exact matched extent.
	Substring string

	// Children are the child nodes in match order.
	Children []*Node

	// ordinal is the Junction.match_ordinal (index of the alternative
	// that matched), or -1 when this node was not produced by a
	// Junction.
	ordinal int

	// fromOption/optionMatched back OptionSucceeded/OptionFailed, so a
	// listener can query whether an Option's inner symbol matched.
	fromOption    bool
	optionMatched bool
}

// NewLeaf builds a childless node.
func NewLeaf(symbol, substring string) *Node {
	return &Node{Symbol: symbol, Substring: substring, ordinal: -1}
}

// NewInterior builds a node from children, taking the parent's Substring
// as given by the caller (it is not derived from the children).
func NewInterior(symbol, substring string, children ...*Node) *Node {
	return &Node{Symbol: symbol, Substring: substring, Children: children, ordinal: -1}
}

// WithOrdinal marks n as the result of a Junction's i'th alternative.
func (n *Node) WithOrdinal(i int) *Node {
	n.ordinal = i
	return n
}

// WithOption marks n as the result of an Option, recording whether the
// inner child matched.
func (n *Node) WithOption(matched bool) *Node {
	n.fromOption = true
	n.optionMatched = matched
	return n
}

// MatchOrdinal returns the index of the Junction alternative that
// produced n, or -1 if n was not produced by a Junction.
func (n *Node) MatchOrdinal() int { return n.ordinal }

// OptionSucceeded reports whether n is an Option node whose inner symbol
// matched.
func (n *Node) OptionSucceeded() bool { return n.fromOption && n.optionMatched }

// OptionFailed reports whether n is an Option node whose inner symbol
// did not match (Option itself still always succeeds).
func (n *Node) OptionFailed() bool { return n.fromOption && !n.optionMatched }

// ChildAs returns the i'th child if it exists and was produced by the
// named symbol — a name check standing in for a per-arity generic
// "matched as" accessor.
func (n *Node) ChildAs(i int, symbolName string) (*Node, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	c := n.Children[i]
	if c.Symbol != symbolName {
		return nil, false
	}
	return c, true
}

// Relabel returns a shallow copy of n with its Symbol changed, preserving
// Substring, Children, MatchOrdinal and Option state. Used by a Named
// symbol's match to attach its declared name to its inner expression's
// result without introducing an extra wrapper node.
func (n *Node) Relabel(symbol string) *Node {
	c := *n
	c.Symbol = symbol
	return &c
}

// Leaves collects n's leaf descendants (nodes with no children) in
// left-to-right order, used to check the round-trip concatenation
// property.
func (n *Node) Leaves() []*Node {
	if len(n.Children) == 0 {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
