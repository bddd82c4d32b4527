package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registry is an immutable, validated set of rules. It is safe to share
// between goroutines.
type Registry struct {
	Description string

	rules map[string]*Rule
	order []string
}

// New validates rules and indexes them by name. Names must be unique and
// every reference must resolve to a rule of a kind that fits where it is
// used.
func New(rules ...*Rule) (*Registry, error) {
	r := &Registry{rules: make(map[string]*Rule, len(rules))}
	for _, rule := range rules {
		if rule.Name == "" {
			return nil, &RuleDefinitionError{Reason: "rule without a name"}
		}
		if _, dup := r.rules[rule.Name]; dup {
			return nil, &RuleDefinitionError{Rule: rule.Name, Reason: "defined more than once"}
		}
		if _, ok := kindNames[rule.Kind]; !ok {
			return nil, &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown kind %d", rule.Kind)}
		}
		r.rules[rule.Name] = rule
		r.order = append(r.order, rule.Name)
	}
	for _, name := range r.order {
		rule := r.rules[name]
		if err := r.check(rule, rule.Body, rule.Kind.domain()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Build loads an XML rule file.
func Build(src []byte) (*Registry, error) {
	rules, desc, err := parseXMLRules(src)
	if err != nil {
		return nil, err
	}
	r, err := New(rules...)
	if err != nil {
		return nil, err
	}
	r.Description = desc
	return r, nil
}

// BuildFile loads an XML rule file from disk.
func BuildFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return Build(data)
}

// CompileFile loads a compact rule file from disk.
func CompileFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return compile(filepath.Base(path), string(data))
}

// Load picks the rule language by extension: .xml files are rule files,
// anything else uses the compact grammar.
func Load(path string) (*Registry, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return BuildFile(path)
	}
	return CompileFile(path)
}

// Lookup returns the named rule.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Names lists rule names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Rules lists rules in definition order.
func (r *Registry) Rules() []*Rule {
	out := make([]*Rule, len(r.order))
	for i, name := range r.order {
		out[i] = r.rules[name]
	}
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int { return len(r.order) }

// check walks body in domain d and rejects expressions that cannot occur
// there and references that do not resolve.
func (r *Registry) check(rule *Rule, e Expr, d domain) error {
	bad := func(what string) error {
		return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("%s is not allowed in a %s pattern", what, d)}
	}
	switch x := e.(type) {
	case nil:
		return &RuleDefinitionError{Rule: rule.Name, Reason: "empty pattern"}
	case Any:
		if d == domSeq {
			return bad("any")
		}
	case Ref:
		target, ok := r.rules[x.Name]
		if !ok {
			return &RuleReferenceError{Rule: rule.Name, Ref: x.Name, Reason: "no such rule"}
		}
		if !d.accepts(target.Kind) {
			return &RuleReferenceError{
				Rule:   rule.Name,
				Ref:    x.Name,
				Reason: fmt.Sprintf("%s rule used in a %s pattern", target.Kind, d),
			}
		}
	case Or:
		if len(x.Alts) == 0 {
			return bad("an empty or")
		}
		for _, a := range x.Alts {
			if err := r.check(rule, a, d); err != nil {
				return err
			}
		}
	case Not:
		if d == domMath || d == domSeq {
			return bad("not")
		}
		return r.check(rule, x.X, d)
	case Mark:
		if d != domWord && d != domMath && d != domSeq {
			return bad("marker")
		}
		if x.Name == "" {
			return &RuleDefinitionError{Rule: rule.Name, Reason: "marker without a name"}
		}
		return r.check(rule, x.X, d)
	case Lit:
		if d != domWord {
			return bad("word literal")
		}
		if x.Field != "" && x.Field != FieldText && x.Field != FieldLemma {
			return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown field %q", x.Field)}
		}
	case POSTag:
		if d != domPOS {
			return bad("pos tag")
		}
	case MTextLit:
		if d != domMText {
			return bad("mtext literal")
		}
	case WordPOS:
		if d != domWord {
			return bad("word_pos")
		}
		if err := r.check(rule, x.POS, domPOS); err != nil {
			return err
		}
		return r.check(rule, x.Word, domWord)
	case WordMath:
		if d != domWord {
			return bad("word_math")
		}
		return r.check(rule, x.Math, domMath)
	case MathNode:
		if d != domMath {
			return bad("math_node")
		}
		if x.MText != nil {
			if err := r.check(rule, x.MText, domMText); err != nil {
				return err
			}
		}
		if x.Children != nil {
			switch x.Children.MatchType {
			case MatchExact, MatchStartsWith, MatchEndsWith, MatchArbitrary, MatchShortest, MatchLongest:
			default:
				return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown children match_type %q", x.Children.MatchType)}
			}
			for _, c := range x.Children.Items {
				if err := r.check(rule, c, domMath); err != nil {
					return err
				}
			}
		}
	case MathDescendant:
		if d != domMath {
			return bad("math_descendant")
		}
		switch x.MatchType {
		case DescendFirst, DescendAtLeastOne, DescendArbitrary:
		default:
			return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown descendant match_type %q", x.MatchType)}
		}
		return r.check(rule, x.X, domMath)
	case SeqWord:
		if d != domSeq {
			return bad("seq_word")
		}
		return r.check(rule, x.Word, domWord)
	case Seq:
		if d != domSeq {
			return bad("sequence")
		}
		switch x.MatchType {
		case MatchExact, MatchStartsWith, MatchEndsWith, MatchShortest, MatchLongest:
		default:
			return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown sequence match_type %q", x.MatchType)}
		}
		for _, it := range x.Items {
			if err := r.check(rule, it, domSeq); err != nil {
				return err
			}
		}
	case Phrase:
		if d != domSeq {
			return bad("phrase")
		}
		if x.MatchType != MatchShortest && x.MatchType != MatchLongest {
			return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("phrase match_type must be shortest or longest, got %q", x.MatchType)}
		}
		if x.Containment != ContainAny && x.Containment != ContainLessOrEqual {
			return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unknown containment %q", x.Containment)}
		}
		for _, sub := range []Expr{x.StartsWith, x.EndsWith} {
			if sub == nil {
				continue
			}
			if err := r.check(rule, sub, domSeq); err != nil {
				return err
			}
		}
	default:
		return &RuleDefinitionError{Rule: rule.Name, Reason: fmt.Sprintf("unsupported expression %T", e)}
	}
	return nil
}
