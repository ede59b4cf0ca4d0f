package ast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// SitterNode adapts a *sitter.Node into the Node interface the detectors
// consume, so a real tree-sitter parse tree can be fed straight into the
// pipeline without the core ever importing the sitter package itself.
type SitterNode struct {
	n *sitter.Node
}

// WrapSitterNode returns nil for a nil input so callers can pass through
// tree-sitter's nil-child convention unchanged.
func WrapSitterNode(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return SitterNode{n: n}
}

func (s SitterNode) Type() string { return s.n.Type() }

func (s SitterNode) StartPosition() model.Position {
	p := s.n.StartPoint()
	return model.Position{Line: int(p.Row), Column: int(p.Column)}
}

func (s SitterNode) EndPosition() model.Position {
	p := s.n.EndPoint()
	return model.Position{Line: int(p.Row), Column: int(p.Column)}
}

func (s SitterNode) StartIndex() uint32 { return s.n.StartByte() }
func (s SitterNode) EndIndex() uint32   { return s.n.EndByte() }
func (s SitterNode) ChildCount() int    { return int(s.n.ChildCount()) }

func (s SitterNode) Child(i int) Node {
	if i < 0 || i >= s.ChildCount() {
		return nil
	}
	return WrapSitterNode(s.n.Child(i))
}

func (s SitterNode) ChildByFieldName(name string) Node {
	return WrapSitterNode(s.n.ChildByFieldName(name))
}

func (s SitterNode) Parent() Node          { return WrapSitterNode(s.n.Parent()) }
func (s SitterNode) PreviousSibling() Node { return WrapSitterNode(s.n.PrevSibling()) }

func (s SitterNode) DescendantsOfType(nodeType string) []Node {
	var out []Node
	Walk(s, func(n Node) {
		if n.Type() == nodeType {
			out = append(out, n)
		}
	})
	return out
}
