package dnm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer rewrites the text of one node while keeping, for every output
// rune, the offset of the source rune it came from. Work is done per
// normalization segment so offsets stay monotonic.
type normalizer struct {
	form      norm.Form
	hasForm   bool
	fold      transform.Transformer
	lowercase bool
}

func newNormalizer(o Options) *normalizer {
	n := &normalizer{lowercase: o.Lowercase, form: norm.NFC}
	switch strings.ToUpper(o.UnicodeForm) {
	case "NFC":
		n.form, n.hasForm = norm.NFC, true
	case "NFD":
		n.form, n.hasForm = norm.NFD, true
	case "NFKC":
		n.form, n.hasForm = norm.NFKC, true
	case "NFKD":
		n.form, n.hasForm = norm.NFKD, true
	}
	if o.FoldDiacritics {
		n.fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return n
}

func (n *normalizer) identity() bool {
	return !n.hasForm && n.fold == nil && !n.lowercase
}

// apply returns the normalized runes of s and, for each, the index of the
// source rune it derives from.
func (n *normalizer) apply(s string) ([]rune, []int32) {
	out := make([]rune, 0, len(s))
	offs := make([]int32, 0, len(s))
	if n.identity() {
		var i int32
		for _, r := range s {
			out = append(out, r)
			offs = append(offs, i)
			i++
		}
		return out, offs
	}

	var idx int32
	for len(s) > 0 {
		k := n.form.NextBoundaryInString(s, true)
		if k <= 0 || k > len(s) {
			k = len(s)
		}
		seg := s[:k]
		s = s[k:]
		for _, r := range n.segment(seg) {
			out = append(out, r)
			offs = append(offs, idx)
		}
		idx += int32(utf8.RuneCountInString(seg))
	}
	return out, offs
}

func (n *normalizer) segment(seg string) string {
	if n.fold != nil {
		if folded, _, err := transform.String(n.fold, seg); err == nil {
			seg = folded
		}
	}
	if n.hasForm {
		seg = n.form.String(seg)
	}
	if n.lowercase {
		seg = strings.ToLower(seg)
	}
	return seg
}

// collapseSpace squeezes whitespace runs in s to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var pullable = map[rune]bool{'.': true, ',': true, ';': true, ':': true, '!': true, '?': true}

// trailingPunct returns the sentence punctuation that ends s, if any.
func trailingPunct(s string) (rune, bool) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, pullable[r]
}
