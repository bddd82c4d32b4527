package parser

import (
	"strings"
	"testing"

	"github.com/KWARC/llamapun/internal/doctree"
)

func TestHTMLParser_MathNamespace(t *testing.T) {
	input := `<html><head><title>Paper</title></head><body>
<div class="ltx_para"><p>Let <math><mi>x</mi></math> be given.</p></div>
<!-- trailing --></body></html>`
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "paper.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Paper" {
		t.Errorf("expected title %q, got %q", "Paper", tree.Title)
	}
	mi := tree.FindElement(tree.Root(), "mi")
	if mi == doctree.NoNode {
		t.Fatal("expected mi element")
	}
	if tree.Namespace(mi) != doctree.NamespaceMathML {
		t.Errorf("expected MathML namespace, got %q", tree.Namespace(mi))
	}
	div := tree.FindElement(tree.Root(), "div")
	if got := tree.ClassNames(div); len(got) != 1 || got[0] != "ltx_para" {
		t.Errorf("expected class ltx_para, got %v", got)
	}
	p0 := tree.FindElement(div, "p")
	if got := tree.TextContent(p0); got != "Let x be given." {
		t.Errorf("expected %q, got %q", "Let x be given.", got)
	}
}

func TestXMLParser_Namespaces(t *testing.T) {
	input := `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:m="http://www.w3.org/1998/Math/MathML">
<head><title>Doc</title></head>
<body><p id="p1">Take <m:math alttext="y"><m:mi>y</m:mi></m:math>.</p><!-- c --></body>
</html>`
	p := &XMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "doc.xhtml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Doc" {
		t.Errorf("expected title %q, got %q", "Doc", tree.Title)
	}
	root := tree.DocumentElement()
	if tree.Name(root) != "html" || tree.Namespace(root) != doctree.NamespaceXHTML {
		t.Errorf("unexpected document element %q in %q", tree.Name(root), tree.Namespace(root))
	}
	m := tree.FindElement(root, "math")
	if m == doctree.NoNode {
		t.Fatal("expected math element")
	}
	if tree.Namespace(m) != doctree.NamespaceMathML {
		t.Errorf("expected MathML namespace, got %q", tree.Namespace(m))
	}
	if tree.Prefix(m) != "m" {
		t.Errorf("expected prefix %q, got %q", "m", tree.Prefix(m))
	}
	if v, _ := tree.Attr(tree.FindElement(root, "p"), "id"); v != "p1" {
		t.Errorf("expected id p1, got %q", v)
	}
}

func TestXMLParser_Malformed(t *testing.T) {
	p := &XMLParser{}
	if _, err := p.Parse(strings.NewReader("<a><b></a>"), "bad.xml"); err == nil {
		t.Error("expected error for malformed xml")
	}
}

func TestCSVParser_Table(t *testing.T) {
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader("name,value\nalpha,1\nbeta,2\n"), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := tree.FindElement(tree.Root(), "table")
	rows := tree.ElementChildren(table)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if tree.Name(tree.ElementChildren(rows[0])[0]) != "th" {
		t.Error("expected header cells in first row")
	}
	if got := tree.TextContent(rows[2]); got != "beta2" {
		t.Errorf("expected %q, got %q", "beta2", got)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "a.md", "a.csv", "a.html", "a.xhtml", "a.xml", "a.pdf", "a.docx"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("expected parser for %s: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("expected %s to be supported", name)
		}
	}
	if _, err := ForFile("a.exe"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
