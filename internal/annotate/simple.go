package annotate

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
)

// closedClass tags function words. Open-class words fall through to the
// suffix heuristics.
var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT",
	"these": "DT", "those": "DT", "some": "DT", "any": "DT", "every": "DT",
	"each": "DT", "no": "DT", "all": "DT",
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN",
	"with": "IN", "from": "IN", "into": "IN", "over": "IN", "under": "IN",
	"between": "IN", "as": "IN", "if": "IN", "since": "IN", "than": "IN",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "to": "TO",
	"it": "PRP", "we": "PRP", "they": "PRP", "he": "PRP", "she": "PRP",
	"i": "PRP", "you": "PRP", "us": "PRP", "them": "PRP",
	"its": "PRP$", "our": "PRP$", "their": "PRP$", "his": "PRP$", "her": "PRP$",
	"is": "VBZ", "are": "VBP", "be": "VB", "was": "VBD", "were": "VBD",
	"been": "VBN", "being": "VBG", "has": "VBZ", "have": "VBP", "had": "VBD",
	"let": "VB", "denote": "VB", "denotes": "VBZ", "holds": "VBZ",
	"can": "MD", "may": "MD", "must": "MD", "will": "MD", "shall": "MD",
	"should": "MD", "would": "MD", "could": "MD", "might": "MD",
	"not": "RB", "also": "RB", "then": "RB", "thus": "RB", "hence": "RB",
	"where": "WRB", "when": "WRB", "which": "WDT", "who": "WP",
	"there": "EX",
}

var suffixTags = []struct {
	suffix string
	tag    string
}{
	{"ly", "RB"},
	{"ing", "VBG"},
	{"ed", "VBN"},
	{"tion", "NN"},
	{"ment", "NN"},
	{"ness", "NN"},
	{"ity", "NN"},
	{"ous", "JJ"},
	{"ful", "JJ"},
	{"ive", "JJ"},
	{"able", "JJ"},
	{"ible", "JJ"},
	{"al", "JJ"},
	{"ic", "JJ"},
}

// Simple is a deterministic offline annotator. It segments words by UAX
// #29 and tags them from a closed-class lexicon and suffix heuristics.
// Placeholder tokens are tagged as nouns.
type Simple struct {
	// Lexicon overrides tags for lowercased words.
	Lexicon map[string]string
	// Placeholders are tokens the DNM emits in place of elements.
	Placeholders []string
}

// NewSimple returns a Simple annotator that knows the default
// placeholder tokens.
func NewSimple() *Simple {
	return &Simple{Placeholders: []string{"MathFormula", "CitationElement", "mathformula", "citationelement"}}
}

func (s *Simple) Annotate(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out     []Token
		offset  int
		initial = true
	)
	seg := words.FromString(text)
	for seg.Next() {
		w := seg.Value()
		start := offset
		offset += len(w)
		if strings.TrimSpace(w) == "" {
			continue
		}
		tag := s.tag(w, initial)
		out = append(out, Token{Text: w, Lemma: lemma(w, tag), POS: tag, Start: start, End: offset})
		initial = tag == "."
	}
	return out, nil
}

func (s *Simple) tag(w string, initial bool) string {
	for _, p := range s.Placeholders {
		if w == p {
			return "NN"
		}
	}
	lower := strings.ToLower(w)
	if t, ok := s.Lexicon[lower]; ok {
		return t
	}
	if t, ok := closedClass[lower]; ok {
		return t
	}
	r, _ := utf8.DecodeRuneInString(w)
	switch {
	case isNumber(w):
		return "CD"
	case utf8.RuneCountInString(w) == 1 && !unicode.IsLetter(r):
		return punctTag(r)
	case unicode.IsUpper(r) && !initial:
		return "NNP"
	}
	for _, st := range suffixTags {
		if len(lower) > len(st.suffix)+2 && strings.HasSuffix(lower, st.suffix) {
			return st.tag
		}
	}
	if len(lower) > 3 && strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return "NNS"
	}
	return "NN"
}

func punctTag(r rune) string {
	switch r {
	case '.', '!', '?':
		return "."
	case ',':
		return ","
	case ';', ':':
		return ":"
	case '(', '[', '{':
		return "-LRB-"
	case ')', ']', '}':
		return "-RRB-"
	}
	return "SYM"
}

func isNumber(w string) bool {
	digits := 0
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

// lemma lowercases w and strips regular plural endings from nouns.
func lemma(w, tag string) string {
	l := strings.ToLower(w)
	if tag != "NNS" {
		return l
	}
	switch {
	case strings.HasSuffix(l, "ies") && len(l) > 4:
		return l[:len(l)-3] + "y"
	case strings.HasSuffix(l, "sses"), strings.HasSuffix(l, "xes"), strings.HasSuffix(l, "ches"):
		return l[:len(l)-2]
	}
	return strings.TrimSuffix(l, "s")
}
