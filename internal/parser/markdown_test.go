package parser

import (
	"strings"
	"testing"

	"github.com/KWARC/llamapun/internal/doctree"
)

func TestMarkdownParser_Blocks(t *testing.T) {
	input := `# Title

Intro *text*.

## Section A

- one
- two

` + "```" + `
code here
` + "```" + `
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}

	blocks := bodyOf(t, tree)
	var names []string
	for _, b := range blocks {
		names = append(names, tree.Name(b))
	}
	want := []string{"h1", "p", "h2", "ul", "pre"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("expected blocks %v, got %v", want, names)
	}

	if got := tree.TextContent(blocks[0]); got != "Title" {
		t.Errorf("expected heading %q, got %q", "Title", got)
	}
	if got := tree.TextContent(blocks[1]); got != "Intro text." {
		t.Errorf("expected paragraph %q, got %q", "Intro text.", got)
	}
	if tree.FindElement(blocks[1], "em") == doctree.NoNode {
		t.Error("expected emphasis element inside paragraph")
	}
	if n := len(tree.ElementChildren(blocks[3])); n != 2 {
		t.Errorf("expected 2 list items, got %d", n)
	}
	if got := tree.TextContent(blocks[4]); got != "code here\n" {
		t.Errorf("expected code block %q, got %q", "code here\n", got)
	}
}

func TestMarkdownParser_InlineMath(t *testing.T) {
	p := &MarkdownParser{InlineMath: true}
	tree, err := p.Parse(strings.NewReader("We define $f(x)$ here.\n"), "m.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := tree.FindElement(tree.Root(), "math")
	if m == doctree.NoNode {
		t.Fatal("expected a math element")
	}
	if tex, _ := tree.Attr(m, "alttext"); tex != "f(x)" {
		t.Errorf("expected alttext %q, got %q", "f(x)", tex)
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(bodyOf(t, tree)); n != 0 {
		t.Errorf("expected no blocks, got %d", n)
	}
}
