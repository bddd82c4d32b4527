package pattern

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

var ruleElements = map[string]Kind{
	"word_rule":  KindWord,
	"mtext_rule": KindMText,
	"math_rule":  KindMath,
	"pos_rule":   KindPOS,
	"seq_rule":   KindSeq,
	"phrase":     KindPhrase,
}

// xmlLoader carries the name of the rule being loaded for error reports.
type xmlLoader struct {
	rule string
}

func parseXMLRules(src []byte) ([]*Rule, string, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, "", &RuleDefinitionError{Reason: fmt.Sprintf("parse rule file: %v", err)}
	}
	var root *xmlquery.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			root = c
			break
		}
	}
	if root == nil || root.Data != "pattern_file" {
		return nil, "", &RuleDefinitionError{Reason: "rule file root must be pattern_file"}
	}

	var (
		rules []*Rule
		desc  string
		meta  bool
	)
	for _, el := range elements(root) {
		if el.Data == "meta" {
			if meta {
				return nil, "", &RuleDefinitionError{Reason: "pattern_file has more than one meta element"}
			}
			meta = true
			desc = description(el)
			continue
		}
		kind, ok := ruleElements[el.Data]
		if !ok {
			return nil, "", &RuleDefinitionError{Reason: fmt.Sprintf("unexpected element %q in pattern_file", el.Data)}
		}
		rule, err := loadRule(el, kind)
		if err != nil {
			return nil, "", err
		}
		rules = append(rules, rule)
	}
	return rules, desc, nil
}

func loadRule(el *xmlquery.Node, kind Kind) (*Rule, error) {
	name := strings.TrimSpace(el.SelectAttr("name"))
	if name == "" {
		return nil, &RuleDefinitionError{Reason: fmt.Sprintf("%s without a name", el.Data)}
	}
	l := &xmlLoader{rule: name}
	rule := &Rule{Name: name, Kind: kind}

	var body *xmlquery.Node
	for _, c := range elements(el) {
		if c.Data == "meta" {
			rule.Description = description(c)
			continue
		}
		if body != nil {
			return nil, l.errorf("unexpected element %q after the pattern", c.Data)
		}
		body = c
	}
	if body == nil {
		return nil, l.errorf("%s has no pattern", el.Data)
	}

	var err error
	switch kind.domain() {
	case domWord:
		rule.Body, err = l.word(body)
	case domMText:
		rule.Body, err = l.mtext(body)
	case domMath:
		rule.Body, err = l.math(body)
	case domPOS:
		rule.Body, err = l.pos(body)
	default:
		rule.Body, err = l.seq(body)
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (l *xmlLoader) errorf(format string, args ...any) error {
	return &RuleDefinitionError{Rule: l.rule, Reason: fmt.Sprintf(format, args...)}
}

func (l *xmlLoader) word(n *xmlquery.Node) (Expr, error) {
	switch n.Data {
	case "word":
		field := Field(n.SelectAttr("field"))
		if field == "" {
			field = FieldText
		}
		return Lit{Value: strings.TrimSpace(n.InnerText()), Field: field}, nil
	case "word_any":
		return Any{}, nil
	case "word_ref":
		return l.ref(n)
	case "word_or":
		return l.or(n, l.word)
	case "word_not":
		return l.not(n, l.word)
	case "word_math":
		c, err := l.only(n)
		if err != nil {
			return nil, err
		}
		m, err := l.math(c)
		if err != nil {
			return nil, err
		}
		return WordMath{Math: m}, nil
	case "word_pos":
		var wp WordPOS
		for _, c := range elements(n) {
			if strings.HasPrefix(c.Data, "pos") {
				if wp.POS != nil {
					return nil, l.errorf("word_pos has more than one pos pattern")
				}
				p, err := l.pos(c)
				if err != nil {
					return nil, err
				}
				wp.POS = p
				continue
			}
			if wp.Word != nil {
				return nil, l.errorf("word_pos has more than one word pattern")
			}
			w, err := l.word(c)
			if err != nil {
				return nil, err
			}
			wp.Word = w
		}
		if wp.POS == nil {
			return nil, l.errorf("word_pos without a pos pattern")
		}
		if wp.Word == nil {
			wp.Word = Any{}
		}
		return wp, nil
	case "marker", "word_marker":
		return l.mark(n, l.word)
	}
	return nil, l.errorf("expected a word pattern, found %q", n.Data)
}

func (l *xmlLoader) pos(n *xmlquery.Node) (Expr, error) {
	switch n.Data {
	case "pos":
		tag := strings.TrimSpace(n.SelectAttr("tag"))
		if tag == "" {
			tag = strings.TrimSpace(n.InnerText())
		}
		if tag == "" {
			return nil, l.errorf("pos without a tag")
		}
		return POSTag{Tag: tag}, nil
	case "pos_any":
		return Any{}, nil
	case "pos_ref":
		return l.ref(n)
	case "pos_or":
		return l.or(n, l.pos)
	case "pos_not":
		return l.not(n, l.pos)
	}
	return nil, l.errorf("expected a pos pattern, found %q", n.Data)
}

func (l *xmlLoader) mtext(n *xmlquery.Node) (Expr, error) {
	switch n.Data {
	case "mtext_lit":
		return MTextLit{Value: n.SelectAttr("str")}, nil
	case "mtext_any":
		return Any{}, nil
	case "mtext_ref":
		return l.ref(n)
	case "mtext_or":
		return l.or(n, l.mtext)
	case "mtext_not":
		return l.not(n, l.mtext)
	}
	return nil, l.errorf("expected an mtext pattern, found %q", n.Data)
}

func (l *xmlLoader) math(n *xmlquery.Node) (Expr, error) {
	switch n.Data {
	case "math_any":
		return Any{}, nil
	case "math_ref":
		return l.ref(n)
	case "math_or":
		return l.or(n, l.math)
	case "marker", "math_marker":
		return l.mark(n, l.math)
	case "math_descendant":
		c, err := l.only(n)
		if err != nil {
			return nil, err
		}
		x, err := l.math(c)
		if err != nil {
			return nil, err
		}
		mt := DescendantMatch(n.SelectAttr("match_type"))
		if mt == "" {
			mt = DescendFirst
		}
		return MathDescendant{X: x, MatchType: mt}, nil
	case "math_node":
		node := MathNode{Name: n.SelectAttr("name")}
		for _, c := range elements(n) {
			switch {
			case c.Data == "math_children":
				if node.Children != nil {
					return nil, l.errorf("math_node has more than one math_children")
				}
				mt := MatchType(c.SelectAttr("match_type"))
				if mt == "" {
					mt = MatchExact
				}
				node.Children = &Children{MatchType: mt}
				for _, cc := range elements(c) {
					x, err := l.math(cc)
					if err != nil {
						return nil, err
					}
					node.Children.Items = append(node.Children.Items, x)
				}
			case strings.HasPrefix(c.Data, "mtext"):
				if node.MText != nil {
					return nil, l.errorf("math_node has more than one mtext pattern")
				}
				x, err := l.mtext(c)
				if err != nil {
					return nil, err
				}
				node.MText = x
			default:
				return nil, l.errorf("unexpected element %q in math_node", c.Data)
			}
		}
		return node, nil
	}
	return nil, l.errorf("expected a math pattern, found %q", n.Data)
}

func (l *xmlLoader) seq(n *xmlquery.Node) (Expr, error) {
	switch n.Data {
	case "seq_word":
		c, err := l.only(n)
		if err != nil {
			return nil, err
		}
		w, err := l.word(c)
		if err != nil {
			return nil, err
		}
		return SeqWord{Word: w}, nil
	case "seq_ref", "phrase_ref":
		return l.ref(n)
	case "seq_or":
		return l.or(n, l.seq)
	case "marker", "seq_marker":
		return l.mark(n, l.seq)
	case "seq_seq", "seq":
		mt := MatchType(n.SelectAttr("match_type"))
		if mt == "" {
			mt = MatchStartsWith
		}
		s := Seq{MatchType: mt}
		for _, c := range elements(n) {
			x, err := l.seq(c)
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, x)
		}
		if len(s.Items) == 0 {
			return nil, l.errorf("empty %s", n.Data)
		}
		return s, nil
	case "seq_phrase":
		return l.phrase(n)
	}
	return nil, l.errorf("expected a sequence pattern, found %q", n.Data)
}

func (l *xmlLoader) phrase(n *xmlquery.Node) (Expr, error) {
	p := Phrase{MatchType: MatchType(n.SelectAttr("match_type")), Containment: ContainAny}
	for _, c := range elements(n) {
		switch c.Data {
		case "match_type":
			p.MatchType = MatchType(strings.TrimSpace(c.InnerText()))
		case "starts_with_seq", "ends_with_seq":
			only, err := l.only(c)
			if err != nil {
				return nil, err
			}
			x, err := l.seq(only)
			if err != nil {
				return nil, err
			}
			if c.Data == "ends_with_seq" {
				if p.EndsWith != nil {
					return nil, l.errorf("seq_phrase has more than one ends_with_seq")
				}
				p.EndsWith = x
				continue
			}
			if p.StartsWith != nil {
				return nil, l.errorf("seq_phrase has more than one starts_with_seq")
			}
			p.StartsWith = x
			if v := c.SelectAttr("containment"); v != "" {
				p.Containment = Containment(v)
			}
		default:
			return nil, l.errorf("unexpected element %q in seq_phrase", c.Data)
		}
	}
	if p.MatchType == "" {
		p.MatchType = MatchLongest
	}
	return p, nil
}

func (l *xmlLoader) ref(n *xmlquery.Node) (Expr, error) {
	name := strings.TrimSpace(n.SelectAttr("ref"))
	if name == "" {
		return nil, l.errorf("%s without a ref attribute", n.Data)
	}
	if len(elements(n)) > 0 {
		return nil, l.errorf("%s must be empty", n.Data)
	}
	return Ref{Name: name}, nil
}

func (l *xmlLoader) or(n *xmlquery.Node, load func(*xmlquery.Node) (Expr, error)) (Expr, error) {
	var o Or
	for _, c := range elements(n) {
		x, err := load(c)
		if err != nil {
			return nil, err
		}
		o.Alts = append(o.Alts, x)
	}
	if len(o.Alts) == 0 {
		return nil, l.errorf("empty %s", n.Data)
	}
	return o, nil
}

func (l *xmlLoader) not(n *xmlquery.Node, load func(*xmlquery.Node) (Expr, error)) (Expr, error) {
	c, err := l.only(n)
	if err != nil {
		return nil, err
	}
	x, err := load(c)
	if err != nil {
		return nil, err
	}
	return Not{X: x}, nil
}

func (l *xmlLoader) mark(n *xmlquery.Node, load func(*xmlquery.Node) (Expr, error)) (Expr, error) {
	m := Mark{Name: strings.TrimSpace(n.SelectAttr("name"))}
	if m.Name == "" {
		return nil, l.errorf("%s without a name", n.Data)
	}
	m.Tags = splitTags(n.SelectAttr("tags"))
	for _, c := range elements(n) {
		if c.Data == "tags" {
			if tags := elements(c); len(tags) > 0 {
				for _, t := range tags {
					m.Tags = append(m.Tags, strings.TrimSpace(t.InnerText()))
				}
			} else {
				m.Tags = append(m.Tags, splitTags(c.InnerText())...)
			}
			continue
		}
		if m.X != nil {
			return nil, l.errorf("%s wraps more than one pattern", n.Data)
		}
		x, err := load(c)
		if err != nil {
			return nil, err
		}
		m.X = x
	}
	if m.X == nil {
		return nil, l.errorf("%s wraps no pattern", n.Data)
	}
	return m, nil
}

func (l *xmlLoader) only(n *xmlquery.Node) (*xmlquery.Node, error) {
	els := elements(n)
	if len(els) != 1 {
		return nil, l.errorf("%s needs exactly one child, has %d", n.Data, len(els))
	}
	return els[0], nil
}

func elements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func description(meta *xmlquery.Node) string {
	for _, c := range elements(meta) {
		if c.Data == "description" {
			return strings.TrimSpace(c.InnerText())
		}
	}
	return strings.TrimSpace(meta.InnerText())
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
