package ast

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("pika.ast")
}

// Walk performs a post-order traversal of root, invoking listeners[n.Symbol] for
// every visited node whose symbol has one. Listener invocations are
// totally ordered within one call to Walk.
func Walk(root *Node, listeners map[string]NullaryListener) {
	if root == nil {
		return
	}
	for _, c := range root.Children {
		Walk(c, listeners)
	}
	if l, ok := listeners[root.Symbol]; ok && l != nil {
		tracer().Debugf("dispatch nullary listener for %q at %q", root.Symbol, root.Substring)
		l(root)
	}
}

// WalkUnary is Walk for a unary parser: init runs once before any
// listener dispatch, and arg is forwarded to every listener invocation.
func WalkUnary(root *Node, arg interface{}, init func(interface{}), listeners map[string]UnaryListener) {
	if init != nil {
		init(arg)
	}
	walkUnary(root, arg, listeners)
}

func walkUnary(n *Node, arg interface{}, listeners map[string]UnaryListener) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		walkUnary(c, arg, listeners)
	}
	if l, ok := listeners[n.Symbol]; ok && l != nil {
		tracer().Debugf("dispatch unary listener for %q at %q", n.Symbol, n.Substring)
		l(arg, n)
	}
}
