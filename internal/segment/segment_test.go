package segment

import (
	"strings"
	"testing"

	"github.com/KWARC/llamapun/internal/ams"
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
)

func build(t *testing.T, tree *doctree.Tree, opts dnm.Options) *dnm.DNM {
	t.Helper()
	d, err := dnm.Build(tree, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return d
}

func element(t *doctree.Tree, parent doctree.NodeID, name, text string) doctree.NodeID {
	n := t.AppendElement(parent, "", "", name, nil)
	if text != "" {
		t.AppendText(n, text)
	}
	return n
}

func texts(rs []dnm.Range) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Text()
	}
	return out
}

func equal(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParagraphs_BreadcrumbPropagation(t *testing.T) {
	tree := doctree.New("Doc")
	html := element(tree, tree.Root(), "html", "")
	body := element(tree, html, "body", "")
	sec := element(tree, body, "section", "")
	element(tree, sec, "h2", "Intro")
	element(tree, sec, "p", "First para.")
	sub := element(tree, sec, "section", "")
	element(tree, sub, "h3", " Details\n")
	element(tree, sub, "p", "Second.")
	element(tree, body, "p", "Tail.")

	paras := Paragraphs(build(t, tree, dnm.DefaultOptions()), DefaultConfig())
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paras))
	}

	wants := [][]string{{"Intro"}, {"Intro", "Details"}, nil}
	for i, p := range paras {
		if p.Index != i {
			t.Errorf("paragraph %d: expected index %d, got %d", i, i, p.Index)
		}
		equal(t, wants[i], p.Breadcrumb)
	}
	equal(t, []string{"First para.", "Second.", "Tail."}, []string{
		paras[0].Range.Text(), paras[1].Range.Text(), paras[2].Range.Text(),
	})
}

func TestParagraphs_ClassAndNesting(t *testing.T) {
	tree := doctree.New("")
	div := tree.AppendElement(tree.Root(), "", "", "div", []doctree.Attr{{Local: "class", Value: "ltx_para"}})
	element(tree, div, "p", "Inner one.")
	element(tree, div, "p", "Inner two.")

	paras := Paragraphs(build(t, tree, dnm.DefaultOptions()), DefaultConfig())
	if len(paras) != 1 {
		t.Fatalf("expected the outermost paragraph only, got %d", len(paras))
	}
	if paras[0].Node != div {
		t.Errorf("expected node %d, got %d", div, paras[0].Node)
	}
}

func TestParagraphs_AMSEnvironment(t *testing.T) {
	tree := doctree.New("")
	classed := func(parent doctree.NodeID, name, class string) doctree.NodeID {
		return tree.AppendElement(parent, "", "", name, []doctree.Attr{{Local: "class", Value: class}})
	}
	lemma := classed(tree.Root(), "div", "ltx_theorem ltx_theorem_lem")
	element(tree, classed(lemma, "div", "ltx_para"), "p", "Primes are odd.")
	proof := classed(tree.Root(), "div", "ltx_proof")
	element(tree, classed(proof, "div", "ltx_para"), "p", "Trivial.")
	element(tree, classed(tree.Root(), "div", "ltx_para"), "p", "Plain.")

	paras := Paragraphs(build(t, tree, dnm.DefaultOptions()), DefaultConfig())
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paras))
	}
	for i, want := range []ams.Env{ams.Lemma, ams.Proof, ""} {
		if paras[i].Env != want {
			t.Errorf("paragraph %d: expected env %q, got %q", i, want, paras[i].Env)
		}
	}
}

func TestParagraphs_WholeDocumentFallback(t *testing.T) {
	tree := doctree.New("")
	element(tree, tree.Root(), "span", "Loose text")
	paras := Paragraphs(build(t, tree, dnm.DefaultOptions()), DefaultConfig())
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if got := paras[0].Range.Text(); got != "Loose text" {
		t.Errorf("expected %q, got %q", "Loose text", got)
	}
}

func TestParagraphs_EmptyDocument(t *testing.T) {
	paras := Paragraphs(build(t, doctree.New(""), dnm.DefaultOptions()), DefaultConfig())
	if len(paras) != 0 {
		t.Errorf("expected 0 paragraphs, got %d", len(paras))
	}
}

func TestSentences_Basic(t *testing.T) {
	d, err := dnm.FromText("Let MathFormula be positive. Then it holds! Why? Yes", dnm.DefaultOptions())
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	got := texts(Sentences(d.Full(), DefaultConfig()))
	equal(t, []string{"Let MathFormula be positive.", "Then it holds!", "Why?", "Yes"}, got)
}

func TestSentences_AbbreviationsAndNumbers(t *testing.T) {
	d, err := dnm.FromText("See e.g. the proof in Sec. 3 by J. Smith. Pi is 3.14 roughly. Done.", dnm.DefaultOptions())
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	got := texts(Sentences(d.Full(), DefaultConfig()))
	equal(t, []string{"See e.g. the proof in Sec. 3 by J. Smith.", "Pi is 3.14 roughly.", "Done."}, got)
}

func TestSentences_PunctuationInsidePlaceholder(t *testing.T) {
	tree := doctree.New("")
	p := element(tree, tree.Root(), "p", "We have ")
	math := tree.AppendElement(p, doctree.NamespaceMathML, "", "math", nil)
	element(tree, math, "mtext", "a. b")
	tree.AppendText(p, " here. End.")

	opts := dnm.DefaultOptions()
	opts.Elements["math"] = dnm.TagRule{Action: dnm.ActionPlaceholder, Strategy: dnm.StrategyContent}
	d := build(t, tree, opts)

	got := texts(Sentences(d.Full(), DefaultConfig()))
	equal(t, []string{"We have a. b here.", "End."}, got)
}

func TestSentences_LongSentenceSplitting(t *testing.T) {
	d, err := dnm.FromText("one two three; four five six seven eight nine ten eleven twelve.", dnm.DefaultOptions())
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	cfg := DefaultConfig()
	cfg.MaxSentenceTokens = 5
	got := texts(Sentences(d.Full(), cfg))
	equal(t, []string{"one two three;", "four five six", "seven eight nine", "ten eleven twelve."}, got)

	for i, s := range got {
		if tokens := EstimateTokens(s); tokens > cfg.MaxSentenceTokens {
			t.Errorf("sentence %d: %d tokens exceeds %d", i, tokens, cfg.MaxSentenceTokens)
		}
	}
}

func TestSentences_DefaultConfigFallback(t *testing.T) {
	d, err := dnm.FromText(strings.Repeat("word ", 200)+"end.", dnm.DefaultOptions())
	if err != nil {
		t.Fatalf("from text: %v", err)
	}
	got := Sentences(d.Full(), Config{})
	if len(got) < 2 {
		t.Errorf("expected the 201-word sentence to be split with default limits, got %d parts", len(got))
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := map[string]int{
		"":                 0,
		"x":                1,
		"three word text":  3,
		"  spaced   out  ": 2,
	}
	for text, want := range cases {
		if got := EstimateTokens(text); got != want {
			t.Errorf("EstimateTokens(%q): expected %d, got %d", text, want, got)
		}
	}
}
