package doctree

import (
	"strings"
)

// NodeID is a handle to a node inside a Tree. Handles are only meaningful
// for the tree that issued them.
type NodeID int32

// NoNode is the zero handle for "no such node".
const NoNode NodeID = -1

// Kind classifies a tree node.
type Kind uint8

const (
	DocumentNode Kind = iota
	ElementNode
	TextNode
	CommentNode
	ProcInstNode
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case ProcInstNode:
		return "procinst"
	}
	return "unknown"
}

// Well-known namespace URIs.
const (
	NamespaceXHTML  = "http://www.w3.org/1999/xhtml"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

// Attr is an element attribute. Space holds the resolved namespace URI,
// Prefix the spelling used in the source.
type Attr struct {
	Space  string
	Prefix string
	Local  string
	Value  string
}

// QName returns the attribute name as spelled in the source.
func (a Attr) QName() string {
	if a.Prefix == "" {
		return a.Local
	}
	return a.Prefix + ":" + a.Local
}

type node struct {
	kind   Kind
	name   string // local name, or PI target
	prefix string
	space  string
	data   string // text, comment or PI content
	attrs  []Attr

	parent, firstChild, lastChild, prev, next NodeID
}

// Tree is an arena-allocated document tree. Nodes are append-only; a tree
// is safe for concurrent reads once construction is finished.
type Tree struct {
	Title string

	nodes []node
}

// New creates a tree holding only the document node.
func New(title string) *Tree {
	t := &Tree{Title: title}
	t.nodes = append(t.nodes, node{
		kind:       DocumentNode,
		parent:     NoNode,
		firstChild: NoNode,
		lastChild:  NoNode,
		prev:       NoNode,
		next:       NoNode,
	})
	return t
}

// Root returns the document node.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Valid reports whether id refers to a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) append(parent NodeID, n node) NodeID {
	id := NodeID(len(t.nodes))
	n.parent = parent
	n.firstChild, n.lastChild, n.next = NoNode, NoNode, NoNode
	n.prev = t.nodes[parent].lastChild
	t.nodes = append(t.nodes, n)
	p := &t.nodes[parent]
	if p.lastChild == NoNode {
		p.firstChild = id
	} else {
		t.nodes[p.lastChild].next = id
	}
	p.lastChild = id
	return id
}

// AppendElement adds an element as the last child of parent.
func (t *Tree) AppendElement(parent NodeID, space, prefix, local string, attrs []Attr) NodeID {
	return t.append(parent, node{kind: ElementNode, name: local, prefix: prefix, space: space, attrs: attrs})
}

// AppendText adds a text node as the last child of parent. Adjacent text
// is merged into the previous sibling so text children stay canonical.
func (t *Tree) AppendText(parent NodeID, text string) NodeID {
	if last := t.nodes[parent].lastChild; last != NoNode && t.nodes[last].kind == TextNode {
		t.nodes[last].data += text
		return last
	}
	return t.append(parent, node{kind: TextNode, data: text})
}

// AppendComment adds a comment node.
func (t *Tree) AppendComment(parent NodeID, text string) NodeID {
	return t.append(parent, node{kind: CommentNode, data: text})
}

// AppendProcInst adds a processing instruction.
func (t *Tree) AppendProcInst(parent NodeID, target, data string) NodeID {
	return t.append(parent, node{kind: ProcInstNode, name: target, data: data})
}

// Kind returns the node kind.
func (t *Tree) Kind(id NodeID) Kind { return t.nodes[id].kind }

// Name returns the local name of an element (or the target of a PI).
func (t *Tree) Name(id NodeID) string { return t.nodes[id].name }

// Prefix returns the namespace prefix as spelled in the source.
func (t *Tree) Prefix(id NodeID) string { return t.nodes[id].prefix }

// Namespace returns the namespace URI of an element.
func (t *Tree) Namespace(id NodeID) string { return t.nodes[id].space }

// Data returns the content of a text, comment or PI node.
func (t *Tree) Data(id NodeID) string { return t.nodes[id].data }

// Attrs returns the attributes of an element. The slice must not be modified.
func (t *Tree) Attrs(id NodeID) []Attr { return t.nodes[id].attrs }

// Attr returns the value of the first attribute with the given local name.
func (t *Tree) Attr(id NodeID, local string) (string, bool) {
	for _, a := range t.nodes[id].attrs {
		if a.Local == local && a.Space != NamespaceXMLNS {
			return a.Value, true
		}
	}
	return "", false
}

// ClassNames splits the class attribute.
func (t *Tree) ClassNames(id NodeID) []string {
	v, ok := t.Attr(id, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

func (t *Tree) Parent(id NodeID) NodeID      { return t.nodes[id].parent }
func (t *Tree) FirstChild(id NodeID) NodeID  { return t.nodes[id].firstChild }
func (t *Tree) LastChild(id NodeID) NodeID   { return t.nodes[id].lastChild }
func (t *Tree) NextSibling(id NodeID) NodeID { return t.nodes[id].next }
func (t *Tree) PrevSibling(id NodeID) NodeID { return t.nodes[id].prev }

// Children returns all children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns only the element children of id.
func (t *Tree) ElementChildren(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		if t.nodes[c].kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// DocumentElement returns the first element child of the document node.
func (t *Tree) DocumentElement() NodeID {
	for c := t.nodes[0].firstChild; c != NoNode; c = t.nodes[c].next {
		if t.nodes[c].kind == ElementNode {
			return c
		}
	}
	return NoNode
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		t.Walk(c, fn)
	}
}

// TextContent concatenates every text descendant of id.
func (t *Tree) TextContent(id NodeID) string {
	if t.nodes[id].kind == TextNode {
		return t.nodes[id].data
	}
	var sb strings.Builder
	t.Walk(id, func(n NodeID) bool {
		if t.nodes[n].kind == TextNode {
			sb.WriteString(t.nodes[n].data)
		}
		return true
	})
	return sb.String()
}

// SimpleText returns the text of an element whose children are all text
// nodes, such as a MathML token element.
func (t *Tree) SimpleText(id NodeID) (string, bool) {
	var sb strings.Builder
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		switch t.nodes[c].kind {
		case TextNode:
			sb.WriteString(t.nodes[c].data)
		case CommentNode, ProcInstNode:
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// FindElement returns the first element below id (inclusive) with the given
// local name, or NoNode.
func (t *Tree) FindElement(id NodeID, local string) NodeID {
	found := NoNode
	t.Walk(id, func(n NodeID) bool {
		if found != NoNode {
			return false
		}
		if t.nodes[n].kind == ElementNode && t.nodes[n].name == local {
			found = n
			return false
		}
		return true
	})
	return found
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		d++
	}
	return d
}
