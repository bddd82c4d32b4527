// Package dnm builds the Document Narrative Model: a plain-text projection
// of a document tree that keeps a two-way mapping between text offsets and
// the nodes they came from.
package dnm

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/KWARC/llamapun/internal/doctree"
)

// OwnerKind tells how a plain-text byte relates to its owning node.
type OwnerKind uint8

const (
	// OwnerText bytes come from a text node; Offset is the source rune.
	OwnerText OwnerKind = iota
	// OwnerEntity bytes belong to a placeholder standing in for a subtree.
	OwnerEntity
	// OwnerSeparator bytes were synthesized between blocks or tokens.
	OwnerSeparator
)

const (
	entityOffset    = -1
	separatorOffset = -2
)

// Owner describes where one plain-text byte came from.
type Owner struct {
	Node   doctree.NodeID
	Kind   OwnerKind
	Offset int
}

type owner struct {
	node doctree.NodeID
	off  int32
}

type span struct {
	start, end int
}

// NodeSpan is one entry of the sorted range index.
type NodeSpan struct {
	Node  doctree.NodeID `json:"node"`
	Start int            `json:"start"`
	End   int            `json:"end"`
}

// Entity is a placeholder token together with the subtree it replaces.
type Entity struct {
	Node  doctree.NodeID
	Token string
	Range Range
}

// DNM is immutable once built and safe for concurrent reads.
type DNM struct {
	tree *doctree.Tree
	root doctree.NodeID
	opts Options

	text     string
	owners   []owner
	spans    []span
	order    []doctree.NodeID
	entities []entity
}

type entity struct {
	node       doctree.NodeID
	token      string
	start, end int
}

// Build projects the whole tree.
func Build(t *doctree.Tree, opts Options) (*DNM, error) {
	return BuildFrom(t, t.Root(), opts)
}

// BuildFrom projects the subtree rooted at root. The traversal is a single
// depth-first pass and its output depends only on the tree and options.
func BuildFrom(t *doctree.Tree, root doctree.NodeID, opts Options) (*DNM, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !t.Valid(root) {
		return nil, fmt.Errorf("dnm: root %d: %w", root, ErrUnmapped)
	}

	b := &builder{
		t:        t,
		opts:     opts,
		norm:     newNormalizer(opts),
		collapse: opts.collapse(),
		hadSpace: opts.collapse(),
		spans:    make([]span, t.Len()),
		blocks:   make(map[string]bool, len(opts.BlockElements)),
	}
	for i := range b.spans {
		b.spans[i] = span{-1, -1}
	}
	for _, name := range opts.BlockElements {
		b.blocks[name] = true
	}
	b.visit(root)

	d := &DNM{
		tree:     t,
		root:     root,
		opts:     opts,
		text:     string(b.buf),
		owners:   b.owners,
		spans:    b.spans,
		entities: b.entities,
	}
	for id, s := range b.spans {
		if s.start >= 0 {
			d.order = append(d.order, doctree.NodeID(id))
		}
	}
	sort.SliceStable(d.order, func(i, j int) bool {
		a, c := d.spans[d.order[i]], d.spans[d.order[j]]
		if a.start != c.start {
			return a.start < c.start
		}
		return a.end > c.end
	})
	return d, nil
}

// FromText wraps a plain utterance in html/body/div.ltx_para and builds
// its DNM, for callers without a source document.
func FromText(text string, opts Options) (*DNM, error) {
	t := doctree.New("")
	html := t.AppendElement(t.Root(), "", "", "html", nil)
	body := t.AppendElement(html, "", "", "body", nil)
	div := t.AppendElement(body, "", "", "div", []doctree.Attr{{Local: "class", Value: "ltx_para"}})
	t.AppendText(div, text)
	return Build(t, opts)
}

type builder struct {
	t        *doctree.Tree
	opts     Options
	norm     *normalizer
	collapse bool
	blocks   map[string]bool

	buf      []byte
	owners   []owner
	spans    []span
	entities []entity
	hadSpace bool
}

func (b *builder) push(r rune, o owner) {
	n := len(b.buf)
	b.buf = utf8.AppendRune(b.buf, r)
	for i := n; i < len(b.buf); i++ {
		b.owners = append(b.owners, o)
	}
}

func (b *builder) pushString(s string, o owner) {
	for _, r := range s {
		b.push(r, o)
	}
}

func (b *builder) visit(id doctree.NodeID) {
	start := len(b.buf)
	switch b.t.Kind(id) {
	case doctree.TextNode:
		b.text(id)
	case doctree.CommentNode, doctree.ProcInstNode:
	case doctree.DocumentNode:
		b.children(id)
	case doctree.ElementNode:
		if rule, ok := b.lookup(id); ok {
			switch rule.Action {
			case ActionSkip:
				b.record(id, start)
				return
			case ActionPlaceholder:
				b.placeholder(id, rule)
				b.record(id, start)
				return
			}
		}
		b.children(id)
		if b.opts.SeparateBlocks && b.blocks[b.t.Name(id)] {
			b.separator(id)
		}
	}
	b.record(id, start)
}

func (b *builder) children(id doctree.NodeID) {
	for c := b.t.FirstChild(id); c != doctree.NoNode; c = b.t.NextSibling(c) {
		b.visit(c)
	}
}

func (b *builder) record(id doctree.NodeID, start int) {
	b.spans[id] = span{start, len(b.buf)}
}

// lookup consults class rules before element rules; the first class with
// a rule wins.
func (b *builder) lookup(id doctree.NodeID) (TagRule, bool) {
	for _, class := range b.t.ClassNames(id) {
		if r, ok := b.opts.Classes[class]; ok {
			return r, true
		}
	}
	r, ok := b.opts.Elements[b.t.Name(id)]
	return r, ok
}

func (b *builder) text(id doctree.NodeID) {
	runes, offs := b.norm.apply(b.t.Data(id))
	for i, r := range runes {
		o := owner{id, offs[i]}
		if unicode.IsSpace(r) {
			if b.collapse {
				if !b.hadSpace {
					b.push(' ', o)
				}
				b.hadSpace = true
				continue
			}
			b.push(r, o)
			b.hadSpace = true
			continue
		}
		b.push(r, o)
		b.hadSpace = false
	}
}

func (b *builder) placeholder(id doctree.NodeID, rule TagRule) {
	o := owner{id, entityOffset}
	if b.opts.WrapTokens && !(b.collapse && b.hadSpace) {
		b.push(' ', o)
	}
	token := b.placeholderText(id, rule)
	start := len(b.buf)
	b.pushString(token, o)
	if b.opts.PullPunctuation {
		if p, ok := trailingPunct(b.t.TextContent(id)); ok {
			b.push(p, o)
		}
	}
	end := len(b.buf)
	b.entities = append(b.entities, entity{node: id, token: token, start: start, end: end})

	last, _ := utf8.DecodeLastRune(b.buf)
	b.hadSpace = len(b.buf) > 0 && unicode.IsSpace(last)
	if b.opts.WrapTokens {
		b.push(' ', o)
		b.hadSpace = true
	}
}

func (b *builder) placeholderText(id doctree.NodeID, rule TagRule) string {
	var s string
	switch rule.strategy() {
	case StrategyLexemes:
		s = mathLexemes(b.t, id)
		if s == "" && rule.Token == "" {
			s = "mathformula"
		}
	case StrategyTeX:
		s = texSource(b.t, id)
	case StrategyContent:
		s = collapseSpace(b.t.TextContent(id))
	}
	if s == "" {
		s = rule.Token
	}
	return s
}

func (b *builder) separator(id doctree.NodeID) {
	if len(b.buf) == 0 {
		return
	}
	last, _ := utf8.DecodeLastRune(b.buf)
	if unicode.IsSpace(last) {
		return
	}
	b.push('\n', owner{id, separatorOffset})
	b.hadSpace = true
}

// Text returns the plain-text buffer.
func (d *DNM) Text() string { return d.text }

// Len returns the buffer length in bytes.
func (d *DNM) Len() int { return len(d.text) }

// Tree returns the source tree.
func (d *DNM) Tree() *doctree.Tree { return d.tree }

// Root returns the node the DNM was built from.
func (d *DNM) Root() doctree.NodeID { return d.root }

// Options returns the options used to build d.
func (d *DNM) Options() Options { return d.opts }

// RangeOf returns the plain-text range a node projects to. Nodes inside a
// skipped or placeholder subtree have no range.
func (d *DNM) RangeOf(n doctree.NodeID) (Range, bool) {
	if !d.tree.Valid(n) || d.spans[n].start < 0 {
		return Range{}, false
	}
	s := d.spans[n]
	return Range{Start: s.start, End: s.end, dnm: d}, true
}

// Owner maps a byte offset back to the node that produced it.
func (d *DNM) Owner(pos int) (Owner, error) {
	if pos < 0 || pos >= len(d.owners) {
		return Owner{}, fmt.Errorf("offset %d of %d: %w", pos, len(d.owners), ErrInvalidRange)
	}
	o := d.owners[pos]
	switch o.off {
	case entityOffset:
		return Owner{Node: o.node, Kind: OwnerEntity, Offset: -1}, nil
	case separatorOffset:
		return Owner{Node: o.node, Kind: OwnerSeparator, Offset: -1}, nil
	}
	return Owner{Node: o.node, Kind: OwnerText, Offset: int(o.off)}, nil
}

// Enclosing returns the owner of pos and every mapped ancestor, innermost
// first.
func (d *DNM) Enclosing(pos int) ([]doctree.NodeID, error) {
	o, err := d.Owner(pos)
	if err != nil {
		return nil, err
	}
	var out []doctree.NodeID
	for n := o.Node; n != doctree.NoNode; n = d.tree.Parent(n) {
		if d.spans[n].start >= 0 {
			out = append(out, n)
		}
		if n == d.root {
			break
		}
	}
	return out, nil
}

// Entities returns every placeholder in text order.
func (d *DNM) Entities() []Entity {
	out := make([]Entity, len(d.entities))
	for i, e := range d.entities {
		out[i] = Entity{Node: e.node, Token: e.token, Range: Range{Start: e.start, End: e.end, dnm: d}}
	}
	return out
}

// EntityAt returns the placeholder covering pos.
func (d *DNM) EntityAt(pos int) (Entity, bool) {
	i := sort.Search(len(d.entities), func(i int) bool { return d.entities[i].end > pos })
	if i < len(d.entities) && d.entities[i].start <= pos {
		e := d.entities[i]
		return Entity{Node: e.node, Token: e.token, Range: Range{Start: e.start, End: e.end, dnm: d}}, true
	}
	return Entity{}, false
}

// NodesIn returns the mapped nodes whose ranges lie inside r, ordered by
// start offset and outermost first.
func (d *DNM) NodesIn(r Range) ([]doctree.NodeID, error) {
	if err := d.owns(r); err != nil {
		return nil, err
	}
	i := sort.Search(len(d.order), func(i int) bool { return d.spans[d.order[i]].start >= r.Start })
	var out []doctree.NodeID
	for ; i < len(d.order); i++ {
		s := d.spans[d.order[i]]
		if s.start > r.End {
			break
		}
		if s.end <= r.End {
			out = append(out, d.order[i])
		}
	}
	return out, nil
}

// Spans returns a copy of the sorted range index.
func (d *DNM) Spans() []NodeSpan {
	out := make([]NodeSpan, len(d.order))
	for i, n := range d.order {
		out[i] = NodeSpan{Node: n, Start: d.spans[n].start, End: d.spans[n].end}
	}
	return out
}

// Position maps a rune offset inside a text node to the first plain-text
// byte derived from it, or to the end of the node's range when the source
// rune was dropped by normalization.
func (d *DNM) Position(n doctree.NodeID, runeOffset int) (int, error) {
	r, ok := d.RangeOf(n)
	if !ok {
		return 0, fmt.Errorf("node %d: %w", n, ErrUnmapped)
	}
	if d.tree.Kind(n) != doctree.TextNode {
		return 0, fmt.Errorf("node %d is a %s node, not text: %w", n, d.tree.Kind(n), ErrInvalidRange)
	}
	if runeOffset < 0 || runeOffset > utf8.RuneCountInString(d.tree.Data(n)) {
		return 0, fmt.Errorf("rune offset %d outside node %d: %w", runeOffset, n, ErrInvalidRange)
	}
	i := sort.Search(r.End-r.Start, func(i int) bool {
		return int(d.owners[r.Start+i].off) >= runeOffset
	})
	return r.Start + i, nil
}

func (d *DNM) owns(r Range) error {
	if r.dnm != d {
		return ErrForeignRange
	}
	return nil
}

// Range returns the range [start, end) of d.
func (d *DNM) Range(start, end int) (Range, error) {
	if start < 0 || end < start || end > len(d.text) {
		return Range{}, fmt.Errorf("[%d,%d) of %d bytes: %w", start, end, len(d.text), ErrInvalidRange)
	}
	if !boundary(d.text, start) || !boundary(d.text, end) {
		return Range{}, fmt.Errorf("[%d,%d) splits a character: %w", start, end, ErrInvalidRange)
	}
	return Range{Start: start, End: end, dnm: d}, nil
}

// Full returns the range covering the whole buffer.
func (d *DNM) Full() Range {
	return Range{Start: 0, End: len(d.text), dnm: d}
}

func boundary(s string, i int) bool {
	return i == len(s) || utf8.RuneStart(s[i])
}
