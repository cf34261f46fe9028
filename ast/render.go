package ast

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Style selects a glyph set for RenderTree: UTF-8 box-drawing or plain
// ASCII connectors.
type Style int

const (
	// StyleUTF8 renders with box-drawing characters, via pterm.
	StyleUTF8 Style = iota
	// StyleASCII renders with plain ASCII connectors.
	StyleASCII
)

// RenderTree renders root as an indented tree for debugging.
func RenderTree(root *Node, style Style) (string, error) {
	if root == nil {
		return "", nil
	}
	switch style {
	case StyleUTF8:
		return pterm.DefaultTree.WithRoot(toPtermNode(root)).Srender()
	case StyleASCII:
		var b strings.Builder
		renderASCII(&b, root, "", true)
		return b.String(), nil
	default:
		return "", fmt.Errorf("ast: unknown render style %d", style)
	}
}

func label(n *Node) string {
	sym := n.Symbol
	if sym == "" {
		sym = "?"
	}
	return fmt.Sprintf("%s %q", sym, n.Substring)
}

func toPtermNode(n *Node) pterm.TreeNode {
	children := make([]pterm.TreeNode, len(n.Children))
	for i, c := range n.Children {
		children[i] = toPtermNode(c)
	}
	return pterm.TreeNode{Text: label(n), Children: children}
}

// renderASCII is a small hand-rolled preorder layout: pterm has no
// ASCII-only tree style, and the connector bookkeeping below is a dozen
// lines, not a library-shaped concern (see DESIGN.md).
func renderASCII(b *strings.Builder, n *Node, prefix string, last bool) {
	connector := "+-- "
	if prefix == "" {
		connector = ""
	} else if last {
		connector = "`-- "
	}
	b.WriteString(prefix)
	b.WriteString(connector)
	b.WriteString(label(n))
	b.WriteString("\n")

	childPrefix := prefix
	if last {
		childPrefix += "    "
	} else {
		childPrefix += "|   "
	}
	for i, c := range n.Children {
		renderASCII(b, c, childPrefix, i == len(n.Children)-1)
	}
}
