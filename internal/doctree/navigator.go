package doctree

import (
	"fmt"

	"github.com/antchfx/xpath"
)

// navigator walks a Tree for the xpath engine. attr is -1 unless the
// navigator sits on an attribute of cur.
type navigator struct {
	t    *Tree
	root NodeID
	cur  NodeID
	attr int
}

var _ xpath.NodeNavigator = (*navigator)(nil)

func newNavigator(t *Tree, at NodeID) *navigator {
	return &navigator{t: t, root: t.Root(), cur: at, attr: -1}
}

func (x *navigator) NodeType() xpath.NodeType {
	switch x.t.nodes[x.cur].kind {
	case DocumentNode:
		return xpath.RootNode
	case TextNode:
		return xpath.TextNode
	case CommentNode, ProcInstNode:
		return xpath.CommentNode
	}
	if x.attr != -1 {
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (x *navigator) LocalName() string {
	if x.attr != -1 {
		return x.t.nodes[x.cur].attrs[x.attr].Local
	}
	return x.t.nodes[x.cur].name
}

func (x *navigator) Prefix() string {
	if x.attr != -1 {
		return x.t.nodes[x.cur].attrs[x.attr].Prefix
	}
	return x.t.nodes[x.cur].prefix
}

func (x *navigator) NamespaceURL() string {
	if x.attr != -1 {
		return x.t.nodes[x.cur].attrs[x.attr].Space
	}
	return x.t.nodes[x.cur].space
}

func (x *navigator) Value() string {
	n := x.t.nodes[x.cur]
	switch n.kind {
	case TextNode, CommentNode, ProcInstNode:
		return n.data
	}
	if x.attr != -1 {
		return n.attrs[x.attr].Value
	}
	return x.t.TextContent(x.cur)
}

func (x *navigator) Copy() xpath.NodeNavigator {
	n := *x
	return &n
}

func (x *navigator) MoveToRoot() {
	x.cur = x.root
	x.attr = -1
}

func (x *navigator) MoveToParent() bool {
	if x.attr != -1 {
		x.attr = -1
		return true
	}
	if p := x.t.nodes[x.cur].parent; p != NoNode {
		x.cur = p
		return true
	}
	return false
}

// MoveToNextAttribute skips namespace declarations, which XPath does not
// expose on the attribute axis.
func (x *navigator) MoveToNextAttribute() bool {
	attrs := x.t.nodes[x.cur].attrs
	for i := x.attr + 1; i < len(attrs); i++ {
		if attrs[i].Space == NamespaceXMLNS {
			continue
		}
		x.attr = i
		return true
	}
	return false
}

func (x *navigator) MoveToChild() bool {
	if x.attr != -1 {
		return false
	}
	if c := x.t.nodes[x.cur].firstChild; c != NoNode {
		x.cur = c
		return true
	}
	return false
}

func (x *navigator) MoveToFirst() bool {
	if x.attr != -1 || x.t.nodes[x.cur].prev == NoNode {
		return false
	}
	for x.t.nodes[x.cur].prev != NoNode {
		x.cur = x.t.nodes[x.cur].prev
	}
	return true
}

func (x *navigator) MoveToNext() bool {
	if x.attr != -1 {
		return false
	}
	if n := x.t.nodes[x.cur].next; n != NoNode {
		x.cur = n
		return true
	}
	return false
}

func (x *navigator) MoveToPrevious() bool {
	if x.attr != -1 {
		return false
	}
	if p := x.t.nodes[x.cur].prev; p != NoNode {
		x.cur = p
		return true
	}
	return false
}

func (x *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.t != x.t {
		return false
	}
	x.cur = o.cur
	x.attr = o.attr
	return true
}

// Select evaluates an XPath 1.0 expression against the whole tree and
// returns the selected non-attribute nodes in document order.
func Select(t *Tree, expr string) ([]NodeID, error) {
	return SelectFrom(t, t.Root(), expr)
}

// SelectFrom evaluates expr with from as the context node.
func SelectFrom(t *Tree, from NodeID, expr string) ([]NodeID, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile xpath %q: %w", expr, err)
	}
	return SelectCompiled(t, from, e), nil
}

// SelectCompiled evaluates a pre-compiled expression.
func SelectCompiled(t *Tree, from NodeID, e *xpath.Expr) []NodeID {
	it := e.Select(newNavigator(t, from))
	var out []NodeID
	seen := make(map[NodeID]bool)
	for it.MoveNext() {
		nav, ok := it.Current().(*navigator)
		if !ok || nav.attr != -1 || seen[nav.cur] {
			continue
		}
		seen[nav.cur] = true
		out = append(out, nav.cur)
	}
	return out
}
