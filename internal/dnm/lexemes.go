package dnm

import (
	"regexp"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
)

const lexemeAnnotationXPath = ".//*[local-name()='annotation' and @encoding='application/x-llamapun']"

// Some LaTeXML versions glue the closing lexeme onto its neighbour,
// e.g. "OPFUNCTION_TrivOPFUNCTION:end".
var fusedEnds = regexp.MustCompile(`^(.+)((?:OPFUNCTION|OPERATOR|UNKNOWN|ADDOP|RELOP|MULOP|ID|BIGOP|OVERACCENT|UNDERACCENT):end)$`)

// MathLexemes returns the lexeme stream LaTeXML recorded for a formula, or
// "mathformula" when the formula carries no lexeme annotation.
func MathLexemes(t *doctree.Tree, n doctree.NodeID) string {
	if s := mathLexemes(t, n); s != "" {
		return s
	}
	return "mathformula"
}

func mathLexemes(t *doctree.Tree, n doctree.NodeID) string {
	annotations, err := doctree.SelectFrom(t, n, lexemeAnnotationXPath)
	if err != nil {
		return ""
	}
	var out []string
	for _, a := range annotations {
		s := t.TextContent(a)
		s = strings.ReplaceAll(s, ":end", ":end ")
		s = strings.ReplaceAll(s, ":start", ":start ")
		for _, word := range strings.Fields(s) {
			parts := []string{word}
			if m := fusedEnds.FindStringSubmatch(word); m != nil {
				parts = []string{m[1], m[2]}
			}
			for _, p := range parts {
				if p = lexeme(p); p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return strings.Join(out, " ")
}

func lexeme(w string) string {
	for _, prefix := range []string{"NUM", "ARRAY", "ATOM", "SUPERSCRIPTOP"} {
		if strings.HasPrefix(w, prefix) {
			return prefix
		}
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '-':
			return '_'
		case '\n':
			return ' '
		}
		return r
	}, w)
}

// texSource returns the TeX a formula was written in, from LaTeXML's
// alttext attribute or an application/x-tex annotation.
func texSource(t *doctree.Tree, n doctree.NodeID) string {
	if v, ok := t.Attr(n, "alttext"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	found := ""
	t.Walk(n, func(id doctree.NodeID) bool {
		if found != "" {
			return false
		}
		if t.Kind(id) == doctree.ElementNode && t.Name(id) == "annotation" {
			if enc, _ := t.Attr(id, "encoding"); enc == "application/x-tex" {
				found = strings.TrimSpace(t.TextContent(id))
				return false
			}
		}
		return true
	})
	return found
}
