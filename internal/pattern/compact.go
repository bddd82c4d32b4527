package pattern

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The compact grammar writes one rule per statement:
//
//	word article = "the" | "this" | indefinite_article ;
//	phrase definition = "let" {defined _} "be" ;
//	math identifier = "mi" | "msub"[identifier, _] ;
//
// The kind keyword is optional and defaults to phrase. In word rules a
// string matches the word text; in pos rules it is a tag; in math rules it
// names an element, optionally followed by its children in brackets.
// @TAG matches a part-of-speech tag, _ matches anything, ! negates and
// {name:tag,tag ...} marks what it encloses.

type compactFile struct {
	Rules []*compactRule `@@*`
}

type compactRule struct {
	Pos  lexer.Position
	Kind string      `@( "word" | "mtext" | "math" | "pos" | "seq" | "phrase" )?`
	Name string      `@Ident "="`
	Body *compactAlt `@@ ";"`
}

type compactAlt struct {
	Cats []*compactCat `@@ ( "|" @@ )*`
}

type compactCat struct {
	Items []*compactUnary `@@+`
}

type compactUnary struct {
	Not  bool            `@"!"?`
	Item *compactPrimary `@@`
}

type compactPrimary struct {
	Mark  *compactMark `  @@`
	Group *compactAlt  `| "(" @@ ")"`
	Tag   *string      `| "@" @( Ident | String )`
	Any   bool         `| @"_"`
	Lit   *compactLit  `| @@`
	Ref   *string      `| @Ident`
}

type compactMark struct {
	Name string      `"{" @Ident`
	Tags []string    `( ":" @Ident ( "," @Ident )* )?`
	Body *compactAlt `@@ "}"`
}

type compactLit struct {
	Value    string        `@String`
	Children []*compactAlt `( "[" @@ ( "," @@ )* "]" )?`
}

var compactLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[=|;!@(){}\[\]:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var compactParser = participle.MustBuild[compactFile](
	participle.Lexer(compactLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Compile builds a registry from compact rule text.
func Compile(src string) (*Registry, error) {
	return compile("", src)
}

func compile(filename, src string) (*Registry, error) {
	file, err := compactParser.ParseString(filename, src)
	if err != nil {
		return nil, &RuleDefinitionError{Reason: err.Error()}
	}

	kinds := make(map[string]Kind, len(file.Rules))
	for _, r := range file.Rules {
		k := KindPhrase
		if r.Kind != "" {
			k, _ = ParseKind(r.Kind)
		}
		if _, dup := kinds[r.Name]; dup {
			return nil, &RuleDefinitionError{Rule: r.Name, Reason: fmt.Sprintf("defined more than once (line %d)", r.Pos.Line)}
		}
		kinds[r.Name] = k
	}

	rules := make([]*Rule, 0, len(file.Rules))
	for _, r := range file.Rules {
		c := &compactConv{rule: r.Name, kinds: kinds}
		kind := kinds[r.Name]
		body, err := c.alt(r.Body, kind.domain())
		if err != nil {
			return nil, err
		}
		rules = append(rules, &Rule{Name: r.Name, Kind: kind, Body: body})
	}
	return New(rules...)
}

// compactConv turns the parse tree into expressions for one domain.
type compactConv struct {
	rule  string
	kinds map[string]Kind
}

func (c *compactConv) errorf(format string, args ...any) error {
	return &RuleDefinitionError{Rule: c.rule, Reason: fmt.Sprintf(format, args...)}
}

func (c *compactConv) alt(a *compactAlt, d domain) (Expr, error) {
	if len(a.Cats) == 1 {
		return c.cat(a.Cats[0], d)
	}
	var o Or
	for _, cat := range a.Cats {
		x, err := c.cat(cat, d)
		if err != nil {
			return nil, err
		}
		o.Alts = append(o.Alts, x)
	}
	return o, nil
}

func (c *compactConv) cat(cat *compactCat, d domain) (Expr, error) {
	if len(cat.Items) == 1 {
		return c.unary(cat.Items[0], d)
	}
	if d != domSeq {
		return nil, c.errorf("a %s pattern matches one item; sequences need a seq or phrase rule", d)
	}
	s := Seq{MatchType: MatchStartsWith}
	for _, u := range cat.Items {
		x, err := c.unary(u, d)
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, x)
	}
	return s, nil
}

func (c *compactConv) unary(u *compactUnary, d domain) (Expr, error) {
	if !u.Not {
		return c.primary(u.Item, d)
	}
	if d == domSeq {
		// negation applies to the single word
		x, err := c.primary(u.Item, domWord)
		if err != nil {
			return nil, err
		}
		return SeqWord{Word: Not{X: x}}, nil
	}
	x, err := c.primary(u.Item, d)
	if err != nil {
		return nil, err
	}
	return Not{X: x}, nil
}

func (c *compactConv) primary(p *compactPrimary, d domain) (Expr, error) {
	switch {
	case p.Mark != nil:
		x, err := c.alt(p.Mark.Body, d)
		if err != nil {
			return nil, err
		}
		return Mark{Name: p.Mark.Name, Tags: p.Mark.Tags, X: x}, nil
	case p.Group != nil:
		return c.alt(p.Group, d)
	case p.Tag != nil:
		tag := POSTag{Tag: *p.Tag}
		switch d {
		case domPOS:
			return tag, nil
		case domWord:
			return WordPOS{POS: tag, Word: Any{}}, nil
		case domSeq:
			return SeqWord{Word: WordPOS{POS: tag, Word: Any{}}}, nil
		}
		return nil, c.errorf("@%s is not allowed in a %s pattern", *p.Tag, d)
	case p.Any:
		if d == domSeq {
			return SeqWord{Word: Any{}}, nil
		}
		return Any{}, nil
	case p.Lit != nil:
		return c.lit(p.Lit, d)
	case p.Ref != nil:
		return c.ref(*p.Ref, d)
	}
	return nil, c.errorf("empty expression")
}

func (c *compactConv) lit(l *compactLit, d domain) (Expr, error) {
	if len(l.Children) > 0 && d != domMath && d != domWord {
		return nil, c.errorf("child patterns are only allowed on math elements")
	}
	switch d {
	case domWord:
		if len(l.Children) > 0 {
			m, err := c.lit(l, domMath)
			if err != nil {
				return nil, err
			}
			return WordMath{Math: m}, nil
		}
		return Lit{Value: l.Value, Field: FieldText}, nil
	case domSeq:
		return SeqWord{Word: Lit{Value: l.Value, Field: FieldText}}, nil
	case domPOS:
		return POSTag{Tag: l.Value}, nil
	case domMText:
		return MTextLit{Value: l.Value}, nil
	}
	node := MathNode{Name: l.Value}
	if len(l.Children) > 0 {
		node.Children = &Children{MatchType: MatchExact}
		for _, a := range l.Children {
			x, err := c.alt(a, domMath)
			if err != nil {
				return nil, err
			}
			node.Children.Items = append(node.Children.Items, x)
		}
	}
	return node, nil
}

// ref lifts references to word rules inside sequences; every other
// mismatch is left for the registry to report.
func (c *compactConv) ref(name string, d domain) (Expr, error) {
	k, ok := c.kinds[name]
	if !ok {
		return nil, &RuleReferenceError{Rule: c.rule, Ref: name, Reason: "no such rule"}
	}
	if d == domSeq && k == KindWord {
		return SeqWord{Word: Ref{Name: name}}, nil
	}
	return Ref{Name: name}, nil
}
