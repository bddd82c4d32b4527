// Package ams classifies LaTeXML paragraphs by the amsthm environment
// they were written in (theorem, lemma, proof, ...).
package ams

import (
	"regexp"
	"strings"

	"github.com/antchfx/xpath"

	"github.com/KWARC/llamapun/internal/doctree"
)

// Env is a normalized AMS environment.
type Env string

const (
	Acknowledgement Env = "acknowledgement"
	Affirmation     Env = "affirmation"
	Algorithm       Env = "algorithm"
	Answer          Env = "answer"
	Assumption      Env = "assumption"
	Bound           Env = "bound"
	Caption         Env = "caption"
	Case            Env = "case"
	Claim           Env = "claim"
	Comment         Env = "comment"
	Conclusion      Env = "conclusion"
	Condition       Env = "condition"
	Conjecture      Env = "conjecture"
	Constraint      Env = "constraint"
	Convention      Env = "convention"
	Corollary       Env = "corollary"
	Criterion       Env = "criterion"
	Definition      Env = "definition"
	Demonstration   Env = "demonstration"
	Discussion      Env = "discussion"
	Example         Env = "example"
	Expansion       Env = "expansion"
	Expectation     Env = "expectation"
	Experiment      Env = "experiment"
	Explanation     Env = "explanation"
	Fact            Env = "fact"
	Hint            Env = "hint"
	Issue           Env = "issue"
	Keywords        Env = "keywords"
	Lemma           Env = "lemma"
	Notation        Env = "notation"
	Note            Env = "note"
	Notice          Env = "notice"
	Observation     Env = "observation"
	Paragraph       Env = "paragraph"
	Principle       Env = "principle"
	Problem         Env = "problem"
	Proof           Env = "proof"
	Proposition     Env = "proposition"
	Question        Env = "question"
	Remark          Env = "remark"
	Result          Env = "result"
	Rule            Env = "rule"
	Solution        Env = "solution"
	Step            Env = "step"
	Summary         Env = "summary"
	Theorem         Env = "theorem"

	// Other is AMS markup outside the known environments. Most consumers
	// should drop Other paragraphs rather than count them.
	Other Env = "other"
)

var (
	theoremExpr = xpath.MustCompile(`//*[local-name()='div' and contains(@class,'ltx_theorem')][1]`)
	theoremEnv  = regexp.MustCompile(`ltx_theorem_(\w+)`)

	byAlias = func() map[string]Env {
		m := make(map[string]Env)
		for env, names := range aliases {
			for _, n := range names {
				m[n] = env
			}
		}
		return m
	}()
)

// HasMarkup reports whether t contains an ltx_theorem element.
func HasMarkup(t *doctree.Tree) bool {
	return len(doctree.SelectCompiled(t, t.Root(), theoremExpr)) > 0
}

// ClassToEnv maps a LaTeXML class attribute such as
// "ltx_theorem ltx_theorem_lemma" to its environment. Plain "ltx_theorem"
// is a theorem and "ltx_proof" a proof; anything else has no environment.
func ClassToEnv(class string) (Env, bool) {
	switch {
	case class == "":
		return "", false
	case !strings.Contains(class, "ltx_theorem"):
		if class == "ltx_proof" {
			return Proof, true
		}
		return "", false
	}
	if m := theoremEnv.FindStringSubmatch(class); m != nil {
		return NormalizeEnv(m[1]), true
	}
	return Theorem, true
}

// NormalizeEnv maps an author's environment name to one of the known
// environments, or Other.
func NormalizeEnv(name string) Env {
	if env, ok := byAlias[name]; ok {
		return env
	}
	return Other
}
