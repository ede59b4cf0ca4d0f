// Package ast declares the minimal node shape the core consumes from the
// external tree-sitter service (§6, "Inbound — AST provider"). Nothing in
// this repository imports github.com/smacker/go-tree-sitter directly from
// the detector packages; they depend on this interface instead, so a
// concrete sitter.Node, a test fake, or any other CST satisfies it equally.
package ast

import "github.com/codepathfinder/polyglot-callgraph/model"

// Node is the node-API surface the per-file detectors need. Field names and
// shapes mirror smacker/go-tree-sitter's *sitter.Node, which is the grammar
// host this repository is built against.
type Node interface {
	Type() string
	StartPosition() model.Position
	EndPosition() model.Position
	StartIndex() uint32
	EndIndex() uint32
	ChildCount() int
	Child(i int) Node
	ChildByFieldName(name string) Node
	Parent() Node
	PreviousSibling() Node
	DescendantsOfType(nodeType string) []Node
}

// Text slices the original source by byte offset, never by code point, per
// the byte-safe text-slicing requirement — source is normal UTF-8 but
// startIndex/endIndex are always byte offsets.
func Text(n Node, source []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartIndex(), n.EndIndex()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// Location builds a model.Location for n within filePath.
func Location(n Node, filePath string) model.Location {
	if n == nil {
		return model.Location{FilePath: filePath}
	}
	return model.Location{
		FilePath: filePath,
		Start:    n.StartPosition(),
		End:      n.EndPosition(),
	}
}

// Children returns every direct child of n, in order. A small convenience
// over the index-based Child/ChildCount pair used throughout the detectors.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	out := make([]Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// Walk performs an AST pre-order traversal, invoking visit for every node
// including n itself. Call-site ordering within a file depends on this being
// a strict pre-order walk (§5, Ordering).
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}
