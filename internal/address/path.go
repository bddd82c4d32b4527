package address

import (
	"strconv"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
)

const (
	textStep    = "text()"
	commentStep = "comment()"
	piStep      = "processing-instruction()"
)

// PathOf returns the location path of n from the document root, e.g.
// /html[1]/body[1]/p[2]/text()[1]. Element steps count preceding siblings
// with the same local name; text, comment and processing-instruction steps
// count siblings of the same kind.
func PathOf(t *doctree.Tree, n doctree.NodeID) string {
	var steps []string
	for ; n != doctree.NoNode && n != t.Root(); n = t.Parent(n) {
		name := stepName(t, n)
		k := 1
		for s := t.PrevSibling(n); s != doctree.NoNode; s = t.PrevSibling(s) {
			if sameStep(t, s, n, name) {
				k++
			}
		}
		steps = append(steps, name+"["+strconv.Itoa(k)+"]")
	}
	if len(steps) == 0 {
		return "/"
	}
	var sb strings.Builder
	for i := len(steps) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(steps[i])
	}
	return sb.String()
}

func stepName(t *doctree.Tree, n doctree.NodeID) string {
	switch t.Kind(n) {
	case doctree.TextNode:
		return textStep
	case doctree.CommentNode:
		return commentStep
	case doctree.ProcInstNode:
		return piStep
	}
	return t.Name(n)
}

func sameStep(t *doctree.Tree, s, n doctree.NodeID, name string) bool {
	if t.Kind(s) != t.Kind(n) {
		return false
	}
	return t.Kind(n) != doctree.ElementNode || t.Name(s) == name
}

// Resolve walks path from the document root.
func Resolve(t *doctree.Tree, path string) (doctree.NodeID, error) {
	g, err := pathParser.ParseString("", path)
	if err != nil {
		return doctree.NoNode, &ResolutionError{Address: path, Reason: err.Error()}
	}
	if bad := g.check(); bad != nil {
		return doctree.NoNode, &ResolutionError{Address: path, Step: bad.String(), Reason: "malformed step"}
	}
	cur := t.Root()
	for _, step := range g.Steps {
		k := step.Index
		next := doctree.NoNode
		for c := t.FirstChild(cur); c != doctree.NoNode; c = t.NextSibling(c) {
			if stepName(t, c) != step.Name {
				continue
			}
			if k--; k == 0 {
				next = c
				break
			}
		}
		if next == doctree.NoNode {
			return doctree.NoNode, &ResolutionError{Address: path, Step: step.String(), Reason: "no such node"}
		}
		cur = next
	}
	return cur, nil
}
