package pattern

import (
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
)

// Word is one tagged token. Math points at the subtree a formula
// placeholder stands for; it is left at zero (the document node, which is
// never a formula) or NoNode for ordinary words.
type Word struct {
	Text  string         `json:"text"`
	Lemma string         `json:"lemma,omitempty"`
	POS   string         `json:"pos,omitempty"`
	Range dnm.Range      `json:"range"`
	Math  doctree.NodeID `json:"math,omitempty"`
}

// IsMath reports whether w stands for a formula.
func (w Word) IsMath() bool { return w.Math > 0 }

// Sentence is the matcher input. Tree is required when any word is a
// formula.
type Sentence struct {
	Words []Word
	Tree  *doctree.Tree
}

// Validate checks the words against the sentence contract.
func (s *Sentence) Validate() error {
	var owner *dnm.DNM
	last := -1
	for i, w := range s.Words {
		if w.Text == "" {
			return &SentenceError{Index: i, Reason: "empty word"}
		}
		if w.IsMath() && (s.Tree == nil || !s.Tree.Valid(w.Math)) {
			return &SentenceError{Index: i, Reason: "formula word without a valid math node"}
		}
		d := w.Range.DNM()
		if d == nil {
			continue
		}
		if owner == nil {
			owner = d
		}
		if d != owner {
			return &SentenceError{Index: i, Reason: "word ranges come from different documents"}
		}
		if w.Range.Start < last {
			return &SentenceError{Index: i, Reason: "word ranges out of order"}
		}
		last = w.Range.End
	}
	return nil
}

// span returns the text range covered by words [start, end), or the zero
// Range when the words carry no ranges.
func (s *Sentence) span(start, end int) dnm.Range {
	if start >= end || end > len(s.Words) {
		return dnm.Range{}
	}
	first, last := s.Words[start].Range, s.Words[end-1].Range
	d := first.DNM()
	if d == nil || last.DNM() != d {
		return dnm.Range{}
	}
	r, err := d.Range(first.Start, last.End)
	if err != nil {
		return dnm.Range{}
	}
	return r
}
