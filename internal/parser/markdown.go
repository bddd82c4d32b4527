package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Block structure maps
// onto the HTML elements goldmark would render.
type MarkdownParser struct {
	InlineMath bool
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree, body := skeleton(titleFromFilename(filename))

	el := func(parent doctree.NodeID, name string, attrs ...doctree.Attr) doctree.NodeID {
		return tree.AppendElement(parent, "", "", name, attrs)
	}

	var walk func(n ast.Node, parent doctree.NodeID)
	walk = func(n ast.Node, parent doctree.NodeID) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				walk(node, el(parent, fmt.Sprintf("h%d", node.Level)))
			case *ast.Paragraph, *ast.TextBlock:
				walk(node, el(parent, "p"))
			case *ast.List:
				name := "ul"
				if node.IsOrdered() {
					name = "ol"
				}
				walk(node, el(parent, name))
			case *ast.ListItem:
				walk(node, el(parent, "li"))
			case *ast.Blockquote:
				walk(node, el(parent, "blockquote"))
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				pre := el(parent, "pre")
				tree.AppendText(pre, blockLines(c, src))
			case *ast.ThematicBreak:
				el(parent, "hr")
			case *ast.HTMLBlock, *ast.RawHTML:
				// raw markup is not part of the narrative
			case *ast.Emphasis:
				name := "em"
				if node.Level >= 2 {
					name = "strong"
				}
				walk(node, el(parent, name))
			case *ast.CodeSpan:
				code := el(parent, "code")
				tree.AppendText(code, string(node.Text(src)))
			case *ast.Link:
				walk(node, el(parent, "a", doctree.Attr{Local: "href", Value: string(node.Destination)}))
			case *ast.AutoLink:
				a := el(parent, "a", doctree.Attr{Local: "href", Value: string(node.URL(src))})
				tree.AppendText(a, string(node.Label(src)))
			case *ast.Image:
				el(parent, "img", doctree.Attr{Local: "src", Value: string(node.Destination)},
					doctree.Attr{Local: "alt", Value: string(node.Text(src))})
			case *ast.Text:
				appendInline(tree, parent, string(node.Segment.Value(src)), p.InlineMath)
				if node.SoftLineBreak() || node.HardLineBreak() {
					tree.AppendText(parent, "\n")
				}
			case *ast.String:
				appendInline(tree, parent, string(node.Value), p.InlineMath)
			default:
				walk(c, parent)
			}
		}
	}
	walk(doc, body)

	return tree, nil
}

// blockLines joins the raw source lines of a block node.
func blockLines(n ast.Node, src []byte) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}
