package ast

// NullaryListener is invoked for a parsed node whose producing symbol has
// a registered listener, during the nullary-parser dispatch form.
type NullaryListener func(n *Node)

// UnaryListener additionally receives the argument forwarded to every
// invocation of a unary parser.
type UnaryListener func(arg interface{}, n *Node)

// ComposeNullary resolves listener *extension*: when a
// grammar's listener for a symbol extends a foreign listener for the same
// symbol name, the origin's listener runs first, then the extension, in
// definition order. Composition is resolved once, at grammar build time,
// into the single callable this returns — dispatch itself never walks a
// chain.
func ComposeNullary(origin, extension NullaryListener) NullaryListener {
	switch {
	case origin == nil:
		return extension
	case extension == nil:
		return origin
	default:
		return func(n *Node) {
			origin(n)
			extension(n)
		}
	}
}

// ComposeUnary is ComposeNullary for unary listeners.
func ComposeUnary(origin, extension UnaryListener) UnaryListener {
	switch {
	case origin == nil:
		return extension
	case extension == nil:
		return origin
	default:
		return func(arg interface{}, n *Node) {
			origin(arg, n)
			extension(arg, n)
		}
	}
}
