// Package c14n serializes a document subtree into a canonical byte form
// and hashes it. Subtrees that differ only in namespace prefixes,
// attribute order, class token order, comments or insignificant
// whitespace produce identical bytes.
package c14n

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/KWARC/llamapun/internal/doctree"
)

// Whitespace policies for text content.
const (
	WhitespaceCollapse = "collapse"
	WhitespaceTrim     = "trim"
	WhitespacePreserve = "preserve"
)

// Options controls canonicalization.
type Options struct {
	Whitespace     string   `yaml:"whitespace"`
	KeepComments   bool     `yaml:"keep_comments"`
	KeepProcInst   bool     `yaml:"keep_proc_inst"`
	DropElements   []string `yaml:"drop_elements"`
	UnwrapElements []string `yaml:"unwrap_elements"`
	DropAttributes []string `yaml:"drop_attributes"`
	Algorithm      string   `yaml:"algorithm"`
	MaxDepth       int      `yaml:"max_depth"`
}

// DefaultOptions hashes the presentation of a formula: annotations and
// identifiers are dropped, semantics wrappers are transparent.
func DefaultOptions() Options {
	return Options{
		Whitespace:     WhitespaceCollapse,
		DropElements:   []string{"annotation", "annotation-xml"},
		UnwrapElements: []string{"semantics"},
		DropAttributes: []string{"id", "xml:id", "xref", "fragid"},
		Algorithm:      BLAKE3,
		MaxDepth:       256,
	}
}

// Validate checks the whitespace policy and algorithm.
func (o Options) Validate() error {
	switch o.Whitespace {
	case "", WhitespaceCollapse, WhitespaceTrim, WhitespacePreserve:
	default:
		return fmt.Errorf("c14n: unknown whitespace policy %q", o.Whitespace)
	}
	switch o.Algorithm {
	case "", BLAKE3, SHA256:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, o.Algorithm)
	}
	return nil
}

// Canonicalize returns the canonical form of the element subtree rooted at
// n and its digest. A *MalformedError is returned when the subtree cannot
// be serialized deterministically.
func Canonicalize(t *doctree.Tree, n doctree.NodeID, opts Options) ([]byte, Digest, error) {
	if err := opts.Validate(); err != nil {
		return nil, Digest{}, err
	}
	if !t.Valid(n) || t.Kind(n) != doctree.ElementNode {
		return nil, Digest{}, &MalformedError{Node: n, Reason: "not an element"}
	}
	w := &writer{t: t, opts: opts, maxDepth: opts.MaxDepth}
	if w.maxDepth <= 0 {
		w.maxDepth = DefaultOptions().MaxDepth
	}
	if err := w.element(n, 0); err != nil {
		return nil, Digest{}, err
	}
	w.flush()
	d, err := Sum(opts.Algorithm, w.buf.Bytes())
	if err != nil {
		return nil, Digest{}, err
	}
	return w.buf.Bytes(), d, nil
}

type writer struct {
	t        *doctree.Tree
	opts     Options
	maxDepth int
	buf      bytes.Buffer
	text     strings.Builder
}

type canonAttr struct {
	space, local, name, value string
}

func (w *writer) element(n doctree.NodeID, depth int) error {
	if depth > w.maxDepth {
		return &MalformedError{Node: n, Reason: fmt.Sprintf("nesting deeper than %d", w.maxDepth)}
	}
	local := w.t.Name(n)
	if slices.Contains(w.opts.DropElements, local) {
		return nil
	}
	if slices.Contains(w.opts.UnwrapElements, local) {
		return w.children(n, depth)
	}

	attrs, err := w.attributes(n)
	if err != nil {
		return err
	}
	name := clark(w.t.Namespace(n), local)
	w.flush()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		escape(&w.buf, a.value, true)
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
	if err := w.children(n, depth); err != nil {
		return err
	}
	w.flush()
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
	return nil
}

func (w *writer) children(n doctree.NodeID, depth int) error {
	for c := w.t.FirstChild(n); c != doctree.NoNode; c = w.t.NextSibling(c) {
		switch w.t.Kind(c) {
		case doctree.ElementNode:
			if err := w.element(c, depth+1); err != nil {
				return err
			}
		case doctree.TextNode:
			data := w.t.Data(c)
			if !utf8.ValidString(data) {
				return &MalformedError{Node: c, Reason: "text is not valid UTF-8"}
			}
			w.text.WriteString(data)
		case doctree.CommentNode:
			if w.opts.KeepComments {
				w.flush()
				w.buf.WriteString("<!--")
				w.buf.WriteString(w.t.Data(c))
				w.buf.WriteString("-->")
			}
		case doctree.ProcInstNode:
			if w.opts.KeepProcInst {
				w.flush()
				w.buf.WriteString("<?")
				w.buf.WriteString(w.t.Name(c))
				if d := w.t.Data(c); d != "" {
					w.buf.WriteByte(' ')
					w.buf.WriteString(d)
				}
				w.buf.WriteString("?>")
			}
		}
	}
	return nil
}

// flush writes pending character data. Text is buffered so that runs split
// by dropped comments or elements normalize like one text node.
func (w *writer) flush() {
	if w.text.Len() == 0 {
		return
	}
	s := w.text.String()
	w.text.Reset()
	switch w.opts.Whitespace {
	case WhitespacePreserve:
	case WhitespaceTrim:
		s = strings.Join(strings.Fields(s), " ")
	default:
		// whitespace between elements is layout, not content
		if s = collapse(s); s == " " {
			return
		}
	}
	escape(&w.buf, s, false)
}

func (w *writer) attributes(n doctree.NodeID) ([]canonAttr, error) {
	var out []canonAttr
	for _, a := range w.t.Attrs(n) {
		if a.Space == doctree.NamespaceXMLNS || w.dropped(a) {
			continue
		}
		if !utf8.ValidString(a.Value) {
			return nil, &MalformedError{Node: n, Reason: fmt.Sprintf("attribute %s is not valid UTF-8", a.QName())}
		}
		v := a.Value
		if a.Space == "" && a.Local == "class" {
			tokens := strings.Fields(v)
			slices.Sort(tokens)
			v = strings.Join(slices.Compact(tokens), " ")
		}
		out = append(out, canonAttr{space: a.Space, local: a.Local, name: clark(a.Space, a.Local), value: v})
	}
	slices.SortFunc(out, func(a, b canonAttr) int {
		if c := strings.Compare(a.space, b.space); c != 0 {
			return c
		}
		return strings.Compare(a.local, b.local)
	})
	for i := 1; i < len(out); i++ {
		if out[i].name == out[i-1].name {
			return nil, &MalformedError{Node: n, Reason: fmt.Sprintf("duplicate attribute %s", out[i].name)}
		}
	}
	return out, nil
}

func (w *writer) dropped(a doctree.Attr) bool {
	name := a.Local
	switch a.Space {
	case "":
	case doctree.NamespaceXML:
		name = "xml:" + a.Local
	default:
		name = clark(a.Space, a.Local)
	}
	return slices.Contains(w.opts.DropAttributes, name)
}

func clark(space, local string) string {
	if space == "" {
		return local
	}
	return "{" + space + "}" + local
}

func collapse(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func escape(buf *bytes.Buffer, s string, attr bool) {
	for _, r := range s {
		switch {
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case attr && r == '"':
			buf.WriteString("&quot;")
		case attr && r == '\n':
			buf.WriteString("&#10;")
		case attr && r == '\t':
			buf.WriteString("&#9;")
		case r == '\r':
			buf.WriteString("&#13;")
		default:
			buf.WriteRune(r)
		}
	}
}
