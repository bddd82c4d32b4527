package dnm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KWARC/llamapun/internal/doctree"
)

type fixture struct {
	tree              *doctree.Tree
	p, before, after  doctree.NodeID
	math, mi, comment doctree.NodeID
}

// paper builds <p>Let <math alttext="x^2"><mi>x</mi></math> be positive.</p>.
func paper() fixture {
	t := doctree.New("paper")
	html := t.AppendElement(t.Root(), "", "", "html", nil)
	body := t.AppendElement(html, "", "", "body", nil)
	f := fixture{tree: t}
	f.p = t.AppendElement(body, "", "", "p", nil)
	f.before = t.AppendText(f.p, "Let ")
	f.math = t.AppendElement(f.p, doctree.NamespaceMathML, "", "math", []doctree.Attr{{Local: "alttext", Value: "x^2"}})
	f.mi = t.AppendElement(f.math, doctree.NamespaceMathML, "", "mi", nil)
	t.AppendText(f.mi, "x")
	f.after = t.AppendText(f.p, " be positive.")
	f.comment = t.AppendComment(f.p, "draft")
	return f
}

func TestBuild_Placeholder(t *testing.T) {
	f := paper()
	d, err := Build(f.tree, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Let MathFormula be positive.\n", d.Text())

	ents := d.Entities()
	require.Len(t, ents, 1)
	assert.Equal(t, f.math, ents[0].Node)
	assert.Equal(t, "MathFormula", ents[0].Range.Text())
	assert.Equal(t, 4, ents[0].Range.Start)

	e, ok := d.EntityAt(6)
	require.True(t, ok)
	assert.Equal(t, f.math, e.Node)
	_, ok = d.EntityAt(2)
	assert.False(t, ok)

	r, ok := d.RangeOf(f.math)
	require.True(t, ok)
	assert.Equal(t, "MathFormula", r.Text())

	_, ok = d.RangeOf(f.mi)
	assert.False(t, ok, "placeholder descendants are not visited")

	r, ok = d.RangeOf(f.comment)
	require.True(t, ok)
	assert.True(t, r.IsEmpty())
}

func TestBuild_Owners(t *testing.T) {
	f := paper()
	d, err := Build(f.tree, DefaultOptions())
	require.NoError(t, err)

	o, err := d.Owner(1)
	require.NoError(t, err)
	assert.Equal(t, Owner{Node: f.before, Kind: OwnerText, Offset: 1}, o)

	o, err = d.Owner(5)
	require.NoError(t, err)
	assert.Equal(t, OwnerEntity, o.Kind)
	assert.Equal(t, f.math, o.Node)

	o, err = d.Owner(d.Len() - 1)
	require.NoError(t, err)
	assert.Equal(t, OwnerSeparator, o.Kind)
	assert.Equal(t, f.p, o.Node)

	_, err = d.Owner(d.Len())
	assert.ErrorIs(t, err, ErrInvalidRange)

	encl, err := d.Enclosing(1)
	require.NoError(t, err)
	require.NotEmpty(t, encl)
	assert.Equal(t, f.before, encl[0])
	assert.Equal(t, f.p, encl[1])
	assert.Equal(t, f.tree.Root(), encl[len(encl)-1])
}

func TestBuild_PlaceholderStrategies(t *testing.T) {
	cases := []struct {
		name string
		rule TagRule
		want string
	}{
		{"tex", TagRule{Action: ActionPlaceholder, Strategy: StrategyTeX, Token: "F"}, "Let x^2 be positive.\n"},
		{"content", TagRule{Action: ActionPlaceholder, Strategy: StrategyContent}, "Let x be positive.\n"},
		{"lexemes fallback", TagRule{Action: ActionPlaceholder, Strategy: StrategyLexemes}, "Let mathformula be positive.\n"},
		{"skip", Skip(), "Let be positive.\n"},
		{"enter", Enter(), "Let x be positive.\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := paper()
			opts := DefaultOptions()
			opts.Elements["math"] = tc.rule
			d, err := Build(f.tree, opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Text())
		})
	}
}

func TestBuild_WrapAndPull(t *testing.T) {
	tree := doctree.New("")
	p := tree.AppendElement(tree.Root(), "", "", "p", nil)
	tree.AppendText(p, "x is")
	m := tree.AppendElement(p, doctree.NamespaceMathML, "", "math", nil)
	mn := tree.AppendElement(m, doctree.NamespaceMathML, "", "mn", nil)
	tree.AppendText(mn, "2.")
	tree.AppendText(p, " next")

	opts := DefaultOptions()
	opts.WrapTokens = true
	opts.PullPunctuation = true
	d, err := Build(tree, opts)
	require.NoError(t, err)

	assert.Equal(t, "x is MathFormula. next\n", d.Text())
	ents := d.Entities()
	require.Len(t, ents, 1)
	assert.Equal(t, "MathFormula.", ents[0].Range.Text())
	assert.Equal(t, "MathFormula", ents[0].Token)
}

func TestBuild_Whitespace(t *testing.T) {
	d, err := FromText("  a \n\t b  ", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "a b ", d.Text(), "no separator after trailing whitespace")

	opts := DefaultOptions()
	opts.Whitespace = WhitespacePreserve
	d, err = FromText("a  b", opts)
	require.NoError(t, err)
	assert.Equal(t, "a  b\n", d.Text())
}

func TestBuild_ClassRuleWins(t *testing.T) {
	tree := doctree.New("")
	div := tree.AppendElement(tree.Root(), "", "", "div", nil)
	tree.AppendText(div, "See")
	note := tree.AppendElement(div, "", "", "span", []doctree.Attr{{Local: "class", Value: "ltx_note_mark"}})
	tree.AppendText(note, "7")
	tree.AppendText(div, " here")

	d, err := Build(tree, MathOptions())
	require.NoError(t, err)
	assert.Equal(t, "See here\n", d.Text())

	r, ok := d.RangeOf(note)
	require.True(t, ok)
	assert.Equal(t, 3, r.Start)
	assert.True(t, r.IsEmpty())
}

func TestBuild_Normalization(t *testing.T) {
	opts := DefaultOptions()
	opts.FoldDiacritics = true
	opts.Lowercase = true

	// "e" followed by a combining acute accent.
	d, err := FromText("Cafe\u0301 Noir", opts)
	require.NoError(t, err)
	assert.Equal(t, "cafe noir\n", d.Text())

	text := d.Tree().FindElement(d.Tree().Root(), "div")
	text = d.Tree().FirstChild(text)

	pos, err := d.Position(text, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	// The accent folds into the "e" and the space is source rune 5.
	pos, err = d.Position(text, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	pos, err = d.Position(text, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, pos)

	_, err = d.Position(text, 42)
	assert.ErrorIs(t, err, ErrInvalidRange)

	o, err := d.Owner(3)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Offset)
}

func TestBuild_Deterministic(t *testing.T) {
	f := paper()
	a, err := Build(f.tree, MathOptions())
	require.NoError(t, err)
	b, err := Build(f.tree, MathOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Text(), b.Text())
	assert.Equal(t, a.Spans(), b.Spans())
}

func TestBuild_ConfigError(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		option string
	}{
		{"whitespace", func(o *Options) { o.Whitespace = "squash" }, "whitespace"},
		{"form", func(o *Options) { o.UnicodeForm = "NFX" }, "unicode_form"},
		{"fold decomposed", func(o *Options) { o.UnicodeForm = "NFD"; o.FoldDiacritics = true }, "unicode_form"},
		{"fixed without token", func(o *Options) { o.Elements["math"] = TagRule{Action: ActionPlaceholder} }, "elements.math"},
		{"skip with token", func(o *Options) { o.Elements["b"] = TagRule{Action: ActionSkip, Token: "B"} }, "elements.b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			tc.mutate(&opts)
			_, err := Build(paper().tree, opts)
			require.Error(t, err)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.option, ce.Option)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions("math", []byte("lowercase: true\nelements:\n  code:\n    action: skip\n"))
	require.NoError(t, err)
	assert.True(t, o.Lowercase)
	assert.Equal(t, Skip(), o.Elements["code"])
	assert.Equal(t, WhitespacePreserve, o.Whitespace)

	_, err = ParseOptions("", []byte("elements:\n  x:\n    action: explode\n"))
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "elements.x", ce.Option)

	_, err = ParseOptions("nope", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseOptions("", []byte("stem: true\n"))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "yaml", ce.Option)
	assert.Contains(t, ce.Reason, "stem")

	o, err = ParseOptions("math", nil)
	require.NoError(t, err)
	assert.Equal(t, MathOptions().Whitespace, o.Whitespace)
}

func TestRange(t *testing.T) {
	d, err := FromText("  Hello world  ", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "Hello world ", d.Text())

	r, err := d.Range(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "Hello", r.Text())

	sub, err := r.Sub(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "el", sub.Text())
	assert.True(t, r.Contains(sub))

	_, err = r.Sub(2, 9)
	assert.ErrorIs(t, err, ErrInvalidRange)

	trimmed := d.Full().Trim()
	assert.Equal(t, "Hello world", trimmed.Text())

	blank, err := d.Range(11, 12)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 12, End: 12, dnm: d}, blank.Trim())

	_, err = d.Range(3, 99)
	assert.ErrorIs(t, err, ErrInvalidRange)

	other, err := FromText("Hello", DefaultOptions())
	require.NoError(t, err)
	_, err = other.NodesIn(r)
	assert.ErrorIs(t, err, ErrForeignRange)
	assert.False(t, other.Full().Contains(r))
}

func TestRange_RuneBoundary(t *testing.T) {
	d, err := FromText("é", DefaultOptions())
	require.NoError(t, err)
	_, err = d.Range(0, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := d.Range(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Runes())
}

func TestNodesIn(t *testing.T) {
	f := paper()
	d, err := Build(f.tree, DefaultOptions())
	require.NoError(t, err)

	nodes, err := d.NodesIn(d.Full())
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	assert.Equal(t, f.tree.Root(), nodes[0])
	assert.Contains(t, nodes, f.math)
	assert.NotContains(t, nodes, f.mi)

	r, ok := d.RangeOf(f.math)
	require.True(t, ok)
	nodes, err = d.NodesIn(r)
	require.NoError(t, err)
	assert.Equal(t, []doctree.NodeID{f.math}, nodes)

	spans := d.Spans()
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqual(t, spans[i-1].Start, spans[i].Start)
	}
}
