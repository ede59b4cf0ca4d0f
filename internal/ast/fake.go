package ast

import "github.com/codepathfinder/polyglot-callgraph/model"

// FakeNode is a minimal, hand-built Node implementation for tests: the
// detectors consume the Node interface, never a concrete sitter type (see
// package doc), so a literal tree of FakeNodes exercises the same code
// paths a real parse tree would without depending on a tree-sitter grammar.
type FakeNode struct {
	NodeType   string
	Start, End model.Position
	StartByte, EndByte uint32

	Kids   []*FakeNode
	Fields map[string]*FakeNode

	parent *FakeNode
	prev   *FakeNode
}

// NewFake builds a FakeNode and wires parent/previous-sibling pointers
// across kids, so Parent()/PreviousSibling() behave like a real tree.
func NewFake(nodeType string, kids ...*FakeNode) *FakeNode {
	n := &FakeNode{NodeType: nodeType, Kids: kids, Fields: map[string]*FakeNode{}}
	var prev *FakeNode
	for _, k := range kids {
		k.parent = n
		k.prev = prev
		prev = k
	}
	return n
}

// WithField associates a named field (e.g. "name", "body") with a child
// already present in Kids, mirroring ChildByFieldName.
func (n *FakeNode) WithField(name string, child *FakeNode) *FakeNode {
	n.Fields[name] = child
	return n
}

// WithSpan sets the byte/position span FakeNode reports, for tests that
// check Location/Text.
func (n *FakeNode) WithSpan(startByte, endByte uint32) *FakeNode {
	n.StartByte, n.EndByte = startByte, endByte
	return n
}

func (n *FakeNode) Type() string                { return n.NodeType }
func (n *FakeNode) StartPosition() model.Position { return n.Start }
func (n *FakeNode) EndPosition() model.Position   { return n.End }
func (n *FakeNode) StartIndex() uint32            { return n.StartByte }
func (n *FakeNode) EndIndex() uint32              { return n.EndByte }
func (n *FakeNode) ChildCount() int               { return len(n.Kids) }

func (n *FakeNode) Child(i int) Node {
	if i < 0 || i >= len(n.Kids) {
		return nil
	}
	return wrapFake(n.Kids[i])
}

func (n *FakeNode) ChildByFieldName(name string) Node {
	return wrapFake(n.Fields[name])
}

func (n *FakeNode) Parent() Node {
	return wrapFake(n.parent)
}

func (n *FakeNode) PreviousSibling() Node {
	return wrapFake(n.prev)
}

func (n *FakeNode) DescendantsOfType(nodeType string) []Node {
	var out []Node
	Walk(wrapFake(n), func(child Node) {
		if child.Type() == nodeType {
			out = append(out, child)
		}
	})
	return out
}

// wrapFake returns a nil Node interface (not a non-nil interface wrapping a
// nil pointer) when n is nil, matching tree-sitter's nil-child convention.
func wrapFake(n *FakeNode) Node {
	if n == nil {
		return nil
	}
	return n
}
