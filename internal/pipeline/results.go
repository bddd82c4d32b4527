package pipeline

import (
	"strings"

	"github.com/KWARC/llamapun/internal/address"
	"github.com/KWARC/llamapun/internal/ams"
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/KWARC/llamapun/internal/pattern"
)

// Results is everything a finished job found in its document.
// AMSMarkup reports whether the document carries amsthm environments at
// all, so consumers can tell "no lemma here" from "no markup to tell".
type Results struct {
	DocID     string          `json:"doc_id"`
	AMSMarkup bool            `json:"ams_markup"`
	Matches   []MatchResult   `json:"matches"`
	Formulas  []FormulaResult `json:"formulas"`
}

// MatchResult is a match with its text and persistent address.
// Sentence is the index of the sentence it was found in, or -1 for
// matches against a formula. Env is the AMS environment of the
// sentence's paragraph.
type MatchResult struct {
	Rule     string         `json:"rule"`
	Sentence int            `json:"sentence"`
	Env      ams.Env        `json:"env,omitempty"`
	Text     string         `json:"text"`
	Address  string         `json:"address,omitempty"`
	Markers  []MarkerResult `json:"markers,omitempty"`
}

// MarkerResult mirrors pattern.Marker with text and address resolved.
type MarkerResult struct {
	Name     string         `json:"name"`
	Tags     []string       `json:"tags,omitempty"`
	Text     string         `json:"text,omitempty"`
	Address  string         `json:"address,omitempty"`
	Children []MarkerResult `json:"children,omitempty"`
}

// FormulaResult is one hashed formula and how often its canonical form
// occurs in the whole index.
type FormulaResult struct {
	Digest      string `json:"digest"`
	Address     string `json:"address"`
	Text        string `json:"text,omitempty"`
	Occurrences int    `json:"occurrences"`
}

// matchResult converts a match found in d.
func matchResult(d *dnm.DNM, m *pattern.Match, sentence int) MatchResult {
	text, addr := locate(d, m.Range, m.Node)
	return MatchResult{
		Rule:     m.Rule,
		Sentence: sentence,
		Text:     text,
		Address:  addr,
		Markers:  markers(d, m.Markers),
	}
}

func markers(d *dnm.DNM, ms []*pattern.Marker) []MarkerResult {
	if len(ms) == 0 {
		return nil
	}
	out := make([]MarkerResult, len(ms))
	for i, mk := range ms {
		text, addr := locate(d, mk.Range, mk.Node)
		out[i] = MarkerResult{
			Name:     mk.Name,
			Tags:     mk.Tags,
			Text:     text,
			Address:  addr,
			Children: markers(d, mk.Children),
		}
	}
	return out
}

// locate prefers the text range; math matches without one fall back to
// the node.
func locate(d *dnm.DNM, r dnm.Range, n doctree.NodeID) (string, string) {
	if r.DNM() == d && r.Valid() {
		if a, err := address.Encode(d, r); err == nil {
			return r.Text(), a.String()
		}
		return r.Text(), ""
	}
	if n <= 0 || !d.Tree().Valid(n) {
		return "", ""
	}
	return nodeText(d.Tree(), n), nodeAddress(d, n)
}

// nodeAddress addresses n by its span, or by its bare path when n has no
// text in the DNM (a skipped element, for example).
func nodeAddress(d *dnm.DNM, n doctree.NodeID) string {
	if a, err := address.EncodeNode(d, n); err == nil {
		return a.String()
	}
	return address.PathOf(d.Tree(), n)
}

// nodeText returns a formula's TeX source when it carries one, else its
// collapsed text content.
func nodeText(t *doctree.Tree, n doctree.NodeID) string {
	if tex, ok := t.Attr(n, "alttext"); ok && tex != "" {
		return tex
	}
	return strings.Join(strings.Fields(t.TextContent(n)), " ")
}
