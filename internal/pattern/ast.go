// Package pattern implements the rule registry, the rule languages (XML
// rule files and a compact text grammar) and the matcher that evaluates
// rules against tagged sentences and math subtrees.
package pattern

import "strings"

// Kind is the type of a rule, which fixes what input its body matches.
type Kind uint8

const (
	KindWord Kind = iota + 1
	KindMText
	KindMath
	KindPOS
	KindSeq
	KindPhrase
)

var kindNames = map[Kind]string{
	KindWord:   "word",
	KindMText:  "mtext",
	KindMath:   "math",
	KindPOS:    "pos",
	KindSeq:    "seq",
	KindPhrase: "phrase",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a kind keyword to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == strings.ToLower(s) {
			return k, true
		}
	}
	return 0, false
}

// domain is the input an expression is evaluated against.
type domain uint8

const (
	domWord domain = iota + 1
	domMText
	domMath
	domPOS
	domSeq
)

func (k Kind) domain() domain {
	switch k {
	case KindWord:
		return domWord
	case KindMText:
		return domMText
	case KindMath:
		return domMath
	case KindPOS:
		return domPOS
	}
	return domSeq
}

func (d domain) String() string {
	switch d {
	case domWord:
		return "word"
	case domMText:
		return "mtext"
	case domMath:
		return "math"
	case domPOS:
		return "pos"
	}
	return "sequence"
}

// accepts reports whether a reference in domain d may target a rule of
// kind k.
func (d domain) accepts(k Kind) bool {
	if d == domSeq {
		return k == KindSeq || k == KindPhrase
	}
	return k.domain() == d
}

// MatchType selects among the spans a sequence or child list can match.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchStartsWith MatchType = "starts_with"
	MatchEndsWith   MatchType = "ends_with"
	MatchShortest   MatchType = "shortest"
	MatchLongest    MatchType = "longest"
	// MatchArbitrary lets math children match any contiguous run.
	MatchArbitrary MatchType = "arbitrary"
)

// DescendantMatch controls MathDescendant.
type DescendantMatch string

const (
	DescendFirst      DescendantMatch = "first"
	DescendAtLeastOne DescendantMatch = "at_least_one"
	DescendArbitrary  DescendantMatch = "arbitrary"
)

// Containment says whether a phrase's start sequence may run past the
// phrase end.
type Containment string

const (
	ContainLessOrEqual Containment = "lessorequal"
	ContainAny         Containment = "any"
)

// Field is the word attribute a literal compares against.
type Field string

const (
	FieldText  Field = "text"
	FieldLemma Field = "lemma"
)

// Expr is a node of a rule body.
type Expr interface {
	expr()
}

// Lit matches a word whose text (or lemma) equals Value.
type Lit struct {
	Value string
	Field Field
}

// Any matches any single word, math node, tag or string.
type Any struct{}

// Or matches when any alternative does. Every matching alternative
// contributes candidates.
type Or struct {
	Alts []Expr
}

// Not matches a word, tag or string the inner expression rejects.
type Not struct {
	X Expr
}

// Ref matches whatever the named rule matches. It is resolved when
// evaluated, so rules may refer to each other recursively.
type Ref struct {
	Name string
}

// Mark labels what X matched with a Marker in the result tree.
type Mark struct {
	Name string
	Tags []string
	X    Expr
}

// POSTag matches a part-of-speech tag. A trailing '*' matches by prefix.
type POSTag struct {
	Tag string
}

// WordPOS matches a word whose tag satisfies POS and which satisfies Word.
type WordPOS struct {
	POS  Expr
	Word Expr
}

// WordMath matches a formula placeholder whose formula satisfies Math.
type WordMath struct {
	Math Expr
}

// MathNode matches a math element by name, optional text content and
// optional children.
type MathNode struct {
	Name     string
	MText    Expr
	Children *Children
}

// Children constrains the element children of a MathNode.
type Children struct {
	Items     []Expr
	MatchType MatchType
}

// MathDescendant searches the subtree, the node itself included.
type MathDescendant struct {
	X         Expr
	MatchType DescendantMatch
}

// MTextLit matches the text of a token element exactly.
type MTextLit struct {
	Value string
}

// SeqWord lifts a word expression to a one-word sequence.
type SeqWord struct {
	Word Expr
}

// Seq matches Items one after another.
type Seq struct {
	Items     []Expr
	MatchType MatchType
}

// Phrase picks a span starting at the anchor that begins with StartsWith
// and ends with EndsWith, keeping the shortest or the longest.
type Phrase struct {
	MatchType   MatchType
	StartsWith  Expr
	Containment Containment
	EndsWith    Expr
}

func (Lit) expr()            {}
func (Any) expr()            {}
func (Or) expr()             {}
func (Not) expr()            {}
func (Ref) expr()            {}
func (Mark) expr()           {}
func (POSTag) expr()         {}
func (WordPOS) expr()        {}
func (WordMath) expr()       {}
func (MathNode) expr()       {}
func (MathDescendant) expr() {}
func (MTextLit) expr()       {}
func (SeqWord) expr()        {}
func (Seq) expr()            {}
func (Phrase) expr()         {}

// Rule is a named pattern.
type Rule struct {
	Name        string
	Kind        Kind
	Description string
	Body        Expr
}
