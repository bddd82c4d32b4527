package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser handles HTML files. MathML and SVG foreign content keep their
// namespaces so downstream code can tell formulas apart.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := titleFromFilename(filename)
	if t := findTitle(doc); t != "" {
		title = t
	}
	tree := doctree.New(title)

	var walk func(n *html.Node, parent doctree.NodeID)
	walk = func(n *html.Node, parent doctree.NodeID) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.ElementNode:
				attrs := make([]doctree.Attr, 0, len(c.Attr))
				for _, a := range c.Attr {
					attrs = append(attrs, htmlAttr(a))
				}
				id := tree.AppendElement(parent, htmlNamespace(c.Namespace), "", c.Data, attrs)
				walk(c, id)
			case html.TextNode:
				tree.AppendText(parent, c.Data)
			case html.CommentNode:
				tree.AppendComment(parent, c.Data)
			}
		}
	}
	walk(doc, tree.Root())

	return tree, nil
}

func htmlNamespace(ns string) string {
	switch ns {
	case "math":
		return doctree.NamespaceMathML
	case "svg":
		return doctree.NamespaceSVG
	}
	return ""
}

func htmlAttr(a html.Attribute) doctree.Attr {
	switch a.Namespace {
	case "xml":
		return doctree.Attr{Space: doctree.NamespaceXML, Prefix: "xml", Local: a.Key, Value: a.Val}
	case "xmlns":
		return doctree.Attr{Space: doctree.NamespaceXMLNS, Prefix: "xmlns", Local: a.Key, Value: a.Val}
	case "xlink":
		return doctree.Attr{Space: "http://www.w3.org/1999/xlink", Prefix: "xlink", Local: a.Key, Value: a.Val}
	}
	if a.Key == "xmlns" {
		return doctree.Attr{Space: doctree.NamespaceXMLNS, Local: "xmlns", Value: a.Val}
	}
	return doctree.Attr{Local: a.Key, Value: a.Val}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return textContent(n)
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
