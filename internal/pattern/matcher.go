package pattern

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
)

// Span is a half-open interval of word indices.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Marker is a labeled node of a match tree.
type Marker struct {
	Name     string         `json:"name"`
	Tags     []string       `json:"tags,omitempty"`
	Span     Span           `json:"span"`
	Node     doctree.NodeID `json:"node"`
	Range    dnm.Range      `json:"range"`
	Children []*Marker      `json:"children,omitempty"`
}

// Match is one successful evaluation of a rule. For sentence matches Span
// and Range locate the words; for math matches Node is the matched element.
type Match struct {
	Rule    string         `json:"rule"`
	Span    Span           `json:"span"`
	Node    doctree.NodeID `json:"node"`
	Range   dnm.Range      `json:"range"`
	Markers []*Marker      `json:"markers,omitempty"`
}

// Flatten lists every marker of m in pre-order.
func (m *Match) Flatten() []*Marker {
	var out []*Marker
	var walk func([]*Marker)
	walk = func(ms []*Marker) {
		for _, mk := range ms {
			out = append(out, mk)
			walk(mk.Children)
		}
	}
	walk(m.Markers)
	return out
}

// Find returns the markers named name, at any depth.
func (m *Match) Find(name string) []*Marker {
	var out []*Marker
	for _, mk := range m.Flatten() {
		if mk.Name == name {
			out = append(out, mk)
		}
	}
	return out
}

// Stats counts matcher work since creation.
type Stats struct {
	Evaluations int64 `json:"evaluations"`
	GuardHits   int64 `json:"guard_hits"`
}

// Matcher evaluates rules of one registry. It holds no per-call state and
// may be shared between goroutines.
type Matcher struct {
	reg       *Registry
	evals     atomic.Int64
	guardHits atomic.Int64
}

// NewMatcher returns a matcher over reg.
func NewMatcher(reg *Registry) *Matcher {
	return &Matcher{reg: reg}
}

// Registry returns the rules m evaluates.
func (m *Matcher) Registry() *Registry { return m.reg }

// Stats reports evaluation counters. GuardHits counts evaluations cut
// short because a rule re-entered itself at the same position.
func (m *Matcher) Stats() Stats {
	return Stats{Evaluations: m.evals.Load(), GuardHits: m.guardHits.Load()}
}

// Match evaluates rule at every word position of s, lazily and in order.
// No match is not an error; the sequence is simply empty.
func (m *Matcher) Match(rule string, s *Sentence) (iter.Seq[*Match], error) {
	r, err := m.prepare(rule, s)
	if err != nil {
		return nil, err
	}
	return func(yield func(*Match) bool) {
		for pos := range s.Words {
			for _, mt := range m.at(r, s, pos) {
				if !yield(mt) {
					return
				}
			}
		}
	}, nil
}

// MatchAt evaluates rule anchored at word pos.
func (m *Matcher) MatchAt(rule string, s *Sentence, pos int) (iter.Seq[*Match], error) {
	r, err := m.prepare(rule, s)
	if err != nil {
		return nil, err
	}
	if pos < 0 || pos >= len(s.Words) {
		return nil, &SentenceError{Index: pos, Reason: fmt.Sprintf("position outside sentence of %d words", len(s.Words))}
	}
	return func(yield func(*Match) bool) {
		for _, mt := range m.at(r, s, pos) {
			if !yield(mt) {
				return
			}
		}
	}, nil
}

// MatchMath evaluates a math or mtext rule against the element n.
func (m *Matcher) MatchMath(rule string, t *doctree.Tree, n doctree.NodeID) (iter.Seq[*Match], error) {
	r, ok := m.reg.Lookup(rule)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	if r.Kind != KindMath && r.Kind != KindMText {
		return nil, fmt.Errorf("%s rule %q: %w", r.Kind, rule, ErrWrongKind)
	}
	if t == nil || !t.Valid(n) {
		return nil, fmt.Errorf("node %d: %w", n, ErrMalformedSentence)
	}
	return func(yield func(*Match) bool) {
		e := m.evaluation(&Sentence{Tree: t})
		var alts [][]*Marker
		if r.Kind == KindMath {
			alts = e.math(Ref{Name: r.Name}, n)
		} else if text, ok := t.SimpleText(n); ok && e.mtext(Ref{Name: r.Name}, strings.TrimSpace(text), int(n)) {
			alts = one()
		}
		m.finish(e)
		for _, ms := range alts {
			if !yield(&Match{Rule: r.Name, Node: n, Markers: ms}) {
				return
			}
		}
	}, nil
}

func (m *Matcher) prepare(rule string, s *Sentence) (*Rule, error) {
	r, ok := m.reg.Lookup(rule)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *Matcher) evaluation(s *Sentence) *evaluation {
	m.evals.Add(1)
	return &evaluation{
		reg:    m.reg,
		s:      s,
		tree:   s.Tree,
		active: make(map[guardKey]struct{}),
		wordAt: -1,
	}
}

func (m *Matcher) finish(e *evaluation) {
	if e.hits > 0 {
		m.guardHits.Add(e.hits)
	}
}

// at evaluates r anchored at word pos.
func (m *Matcher) at(r *Rule, s *Sentence, pos int) []*Match {
	e := m.evaluation(s)
	defer m.finish(e)

	w := &s.Words[pos]
	root := Ref{Name: r.Name}
	single := func(alts [][]*Marker, node doctree.NodeID) []*Match {
		out := make([]*Match, 0, len(alts))
		for _, ms := range alts {
			out = append(out, &Match{Rule: r.Name, Span: Span{pos, pos + 1}, Node: node, Range: w.Range, Markers: ms})
		}
		return out
	}

	switch r.Kind.domain() {
	case domSeq:
		if pos != 0 && m.wholeSentence(r.Body) {
			return nil
		}
		var out []*Match
		for _, c := range dedupCands(e.seq(root, pos, len(s.Words))) {
			if c.end == pos {
				continue
			}
			out = append(out, &Match{
				Rule:    r.Name,
				Span:    Span{pos, c.end},
				Node:    doctree.NoNode,
				Range:   s.span(pos, c.end),
				Markers: c.markers,
			})
		}
		return out
	case domWord:
		return single(e.word(root, pos), wordNode(w))
	case domPOS:
		if e.pos(root, w.POS, pos) {
			return single(one(), wordNode(w))
		}
	case domMText:
		if e.mtext(root, w.Text, pos) {
			return single(one(), wordNode(w))
		}
	case domMath:
		if !w.IsMath() || s.Tree == nil {
			return nil
		}
		n := formulaRoot(s.Tree, w.Math)
		if n == doctree.NoNode {
			return nil
		}
		e.wordAt = pos
		return single(e.math(root, n), n)
	}
	return nil
}

// wholeSentence reports whether body is an exact sequence, seen through
// markers and references. An exact rule must consume the whole sentence,
// so it only anchors at the first word. Nested exact sequences keep their
// enclosing window.
func (m *Matcher) wholeSentence(body Expr) bool {
	seen := map[string]bool{}
	for {
		switch x := body.(type) {
		case Mark:
			body = x.X
		case Ref:
			r, ok := m.reg.rules[x.Name]
			if !ok || seen[x.Name] {
				return false
			}
			seen[x.Name] = true
			body = r.Body
		case Seq:
			return x.MatchType == MatchExact
		default:
			return false
		}
	}
}

func wordNode(w *Word) doctree.NodeID {
	if w.IsMath() {
		return w.Math
	}
	return doctree.NoNode
}

// formulaRoot returns the first presentation element of a formula,
// looking through a semantics wrapper.
func formulaRoot(t *doctree.Tree, n doctree.NodeID) doctree.NodeID {
	if t.Name(n) != "math" {
		if n = t.FindElement(n, "math"); n == doctree.NoNode {
			return doctree.NoNode
		}
	}
	kids := t.ElementChildren(n)
	if len(kids) > 0 && t.Name(kids[0]) == "semantics" {
		kids = t.ElementChildren(kids[0])
	}
	if len(kids) == 0 {
		return doctree.NoNode
	}
	return kids[0]
}

type guardKey struct {
	rule string
	at   int
}

// evaluation is the state of one anchored evaluation: the rules active on
// the current call path, keyed by position.
type evaluation struct {
	reg    *Registry
	s      *Sentence
	tree   *doctree.Tree
	active map[guardKey]struct{}
	wordAt int
	hits   int64
}

func (e *evaluation) enter(rule string, at int) bool {
	k := guardKey{rule, at}
	if _, busy := e.active[k]; busy {
		e.hits++
		return false
	}
	e.active[k] = struct{}{}
	return true
}

func (e *evaluation) leave(rule string, at int) {
	delete(e.active, guardKey{rule, at})
}

// one is the result of a match that contributes no markers.
func one() [][]*Marker { return [][]*Marker{nil} }

func (e *evaluation) word(x Expr, i int) [][]*Marker {
	w := &e.s.Words[i]
	switch x := x.(type) {
	case Lit:
		v := w.Text
		if x.Field == FieldLemma {
			v = w.Lemma
		}
		if v == x.Value {
			return one()
		}
	case Any:
		return one()
	case Or:
		var out [][]*Marker
		for _, a := range x.Alts {
			out = append(out, e.word(a, i)...)
		}
		return dedupAlts(out)
	case Not:
		if len(e.word(x.X, i)) == 0 {
			return one()
		}
	case Ref:
		if !e.enter(x.Name, i) {
			return nil
		}
		defer e.leave(x.Name, i)
		return e.word(e.reg.rules[x.Name].Body, i)
	case Mark:
		inner := e.word(x.X, i)
		out := make([][]*Marker, 0, len(inner))
		for _, ms := range inner {
			out = append(out, []*Marker{{
				Name:     x.Name,
				Tags:     x.Tags,
				Span:     Span{i, i + 1},
				Node:     wordNode(w),
				Range:    w.Range,
				Children: ms,
			}})
		}
		return out
	case WordPOS:
		if e.pos(x.POS, w.POS, i) {
			return e.word(x.Word, i)
		}
	case WordMath:
		if !w.IsMath() || e.tree == nil {
			return nil
		}
		n := formulaRoot(e.tree, w.Math)
		if n == doctree.NoNode {
			return nil
		}
		prev := e.wordAt
		e.wordAt = i
		defer func() { e.wordAt = prev }()
		return e.math(x.Math, n)
	}
	return nil
}

func (e *evaluation) pos(x Expr, tag string, at int) bool {
	switch x := x.(type) {
	case POSTag:
		if prefix, ok := strings.CutSuffix(x.Tag, "*"); ok {
			return strings.HasPrefix(tag, prefix)
		}
		return tag == x.Tag
	case Any:
		return true
	case Or:
		for _, a := range x.Alts {
			if e.pos(a, tag, at) {
				return true
			}
		}
	case Not:
		return !e.pos(x.X, tag, at)
	case Ref:
		if !e.enter(x.Name, at) {
			return false
		}
		defer e.leave(x.Name, at)
		return e.pos(e.reg.rules[x.Name].Body, tag, at)
	}
	return false
}

func (e *evaluation) mtext(x Expr, s string, at int) bool {
	switch x := x.(type) {
	case MTextLit:
		return s == x.Value
	case Any:
		return true
	case Or:
		for _, a := range x.Alts {
			if e.mtext(a, s, at) {
				return true
			}
		}
	case Not:
		return !e.mtext(x.X, s, at)
	case Ref:
		if !e.enter(x.Name, at) {
			return false
		}
		defer e.leave(x.Name, at)
		return e.mtext(e.reg.rules[x.Name].Body, s, at)
	}
	return false
}

func (e *evaluation) math(x Expr, n doctree.NodeID) [][]*Marker {
	t := e.tree
	switch x := x.(type) {
	case Any:
		return one()
	case Or:
		var out [][]*Marker
		for _, a := range x.Alts {
			out = append(out, e.math(a, n)...)
		}
		return dedupAlts(out)
	case Ref:
		if !e.enter(x.Name, int(n)) {
			return nil
		}
		defer e.leave(x.Name, int(n))
		return e.math(e.reg.rules[x.Name].Body, n)
	case Mark:
		inner := e.math(x.X, n)
		out := make([][]*Marker, 0, len(inner))
		for _, ms := range inner {
			mk := &Marker{Name: x.Name, Tags: x.Tags, Node: n, Children: ms}
			if e.wordAt >= 0 {
				mk.Span = Span{e.wordAt, e.wordAt + 1}
				mk.Range = e.s.Words[e.wordAt].Range
			}
			out = append(out, []*Marker{mk})
		}
		return out
	case MathNode:
		if t.Kind(n) != doctree.ElementNode {
			return nil
		}
		if x.Name != "" && t.Name(n) != x.Name {
			return nil
		}
		if x.MText != nil {
			text, ok := t.SimpleText(n)
			if !ok || !e.mtext(x.MText, strings.TrimSpace(text), int(n)) {
				return nil
			}
		}
		if x.Children == nil {
			return one()
		}
		return e.children(x.Children, t.ElementChildren(n))
	case MathDescendant:
		var (
			out   [][]*Marker
			found bool
		)
		t.Walk(n, func(c doctree.NodeID) bool {
			if found && x.MatchType == DescendFirst {
				return false
			}
			if t.Kind(c) != doctree.ElementNode {
				return false
			}
			if res := e.math(x.X, c); len(res) > 0 {
				found = true
				out = append(out, res...)
			}
			return true
		})
		switch {
		case found:
			return dedupAlts(out)
		case x.MatchType == DescendArbitrary:
			return one()
		}
	}
	return nil
}

// children matches items against a contiguous run of nodes. Runs are tried
// left to right and the first run that matches is kept.
func (e *evaluation) children(c *Children, nodes []doctree.NodeID) [][]*Marker {
	k := len(c.Items)
	if len(nodes) < k {
		return nil
	}
	var first, last int
	switch c.MatchType {
	case MatchExact:
		if len(nodes) != k {
			return nil
		}
	case MatchStartsWith:
	case MatchEndsWith:
		first = len(nodes) - k
		last = first
	default:
		last = len(nodes) - k
	}
	for start := first; start <= last; start++ {
		acc := one()
		for i, item := range c.Items {
			res := e.math(item, nodes[start+i])
			if len(res) == 0 {
				acc = nil
				break
			}
			acc = product(acc, res)
		}
		if len(acc) > 0 {
			return acc
		}
	}
	return nil
}

// cand is a sequence candidate: the words [anchor, end) plus the markers
// collected on the way.
type cand struct {
	end     int
	markers []*Marker
}

func (e *evaluation) seq(x Expr, pos, limit int) []cand {
	switch x := x.(type) {
	case SeqWord:
		if pos >= limit {
			return nil
		}
		var out []cand
		for _, ms := range e.word(x.Word, pos) {
			out = append(out, cand{end: pos + 1, markers: ms})
		}
		return out
	case Or:
		var out []cand
		for _, a := range x.Alts {
			out = append(out, e.seq(a, pos, limit)...)
		}
		return dedupCands(out)
	case Ref:
		if !e.enter(x.Name, pos) {
			return nil
		}
		defer e.leave(x.Name, pos)
		return e.seq(e.reg.rules[x.Name].Body, pos, limit)
	case Mark:
		inner := e.seq(x.X, pos, limit)
		out := make([]cand, 0, len(inner))
		for _, c := range inner {
			out = append(out, cand{end: c.end, markers: []*Marker{{
				Name:     x.Name,
				Tags:     x.Tags,
				Span:     Span{pos, c.end},
				Node:     doctree.NoNode,
				Range:    e.s.span(pos, c.end),
				Children: c.markers,
			}}})
		}
		return out
	case Seq:
		return e.sequence(x, pos, limit)
	case Phrase:
		return e.phrase(x, pos, limit)
	}
	return nil
}

// chain matches items one after another from pos and returns every way
// of doing so.
func (e *evaluation) chain(items []Expr, pos, limit int) []cand {
	cur := []cand{{end: pos}}
	for _, it := range items {
		var next []cand
		for _, c := range cur {
			for _, r := range e.seq(it, c.end, limit) {
				next = append(next, cand{end: r.end, markers: concat(c.markers, r.markers)})
			}
		}
		if cur = dedupCands(next); len(cur) == 0 {
			return nil
		}
	}
	return cur
}

func (e *evaluation) sequence(x Seq, pos, limit int) []cand {
	switch x.MatchType {
	case MatchExact:
		var out []cand
		for _, c := range e.chain(x.Items, pos, limit) {
			if c.end == limit {
				out = append(out, c)
			}
		}
		return out
	case MatchEndsWith:
		// the items match a suffix; the words before it are unconstrained
		var out []cand
		for k := pos; k < limit; k++ {
			for _, c := range e.chain(x.Items, k, limit) {
				if c.end == limit {
					out = append(out, c)
				}
			}
		}
		return dedupCands(out)
	case MatchShortest, MatchLongest:
		all := e.chain(x.Items, pos, limit)
		if len(all) == 0 {
			return nil
		}
		best := all[0]
		for _, c := range all[1:] {
			if (x.MatchType == MatchShortest && c.end < best.end) || (x.MatchType == MatchLongest && c.end > best.end) {
				best = c
			}
		}
		return []cand{best}
	}
	return e.chain(x.Items, pos, limit)
}

func (e *evaluation) phrase(x Phrase, pos, limit int) []cand {
	var starts []cand
	if x.StartsWith != nil {
		if starts = e.seq(x.StartsWith, pos, limit); len(starts) == 0 {
			return nil
		}
	}
	var (
		best  cand
		found bool
	)
	for end := pos + 1; end <= limit; end++ {
		var markers []*Marker
		if x.StartsWith != nil {
			ok := false
			for _, s := range starts {
				if x.Containment == ContainLessOrEqual && s.end > end {
					continue
				}
				markers, ok = s.markers, true
				break
			}
			if !ok {
				continue
			}
		}
		if x.EndsWith != nil {
			tail, ok := e.suffix(x.EndsWith, pos, end)
			if !ok {
				continue
			}
			markers = concat(markers, tail)
		}
		best, found = cand{end: end, markers: markers}, true
		if x.MatchType == MatchShortest {
			break
		}
	}
	if !found {
		return nil
	}
	return []cand{best}
}

// suffix finds a match of x that ends exactly at end and starts at or
// after pos, preferring the leftmost start.
func (e *evaluation) suffix(x Expr, pos, end int) ([]*Marker, bool) {
	for k := pos; k < end; k++ {
		for _, c := range e.seq(x, k, end) {
			if c.end == end {
				return c.markers, true
			}
		}
	}
	return nil, false
}

func concat(a, b []*Marker) []*Marker {
	if len(b) == 0 {
		return a
	}
	out := make([]*Marker, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

func product(acc, res [][]*Marker) [][]*Marker {
	out := make([][]*Marker, 0, len(acc)*len(res))
	for _, a := range acc {
		for _, b := range res {
			out = append(out, concat(a, b))
		}
	}
	return out
}

func dedupCands(cs []cand) []cand {
	if len(cs) < 2 {
		return cs
	}
	seen := make(map[string]bool, len(cs))
	out := cs[:0:0]
	for _, c := range cs {
		k := strconv.Itoa(c.end) + "|" + markerKey(c.markers)
		if !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

func dedupAlts(as [][]*Marker) [][]*Marker {
	if len(as) < 2 {
		return as
	}
	seen := make(map[string]bool, len(as))
	var out [][]*Marker
	for _, ms := range as {
		k := markerKey(ms)
		if !seen[k] {
			seen[k] = true
			out = append(out, ms)
		}
	}
	return out
}

func markerKey(ms []*Marker) string {
	var sb strings.Builder
	var walk func([]*Marker)
	walk = func(ms []*Marker) {
		for _, m := range ms {
			fmt.Fprintf(&sb, "%s@%d-%d#%d(", m.Name, m.Span.Start, m.Span.End, m.Node)
			walk(m.Children)
			sb.WriteByte(')')
		}
	}
	walk(ms)
	return sb.String()
}
