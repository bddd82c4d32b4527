package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/antchfx/xmlquery"
)

// XMLParser handles well-formed XML and XHTML, such as LaTeXML output.
// Namespaces, comments and processing instructions are preserved.
type XMLParser struct{}

func (p *XMLParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	tree := doctree.New(titleFromFilename(filename))
	if t := xmlquery.FindOne(doc, "//*[local-name()='title']"); t != nil {
		if s := strings.TrimSpace(t.InnerText()); s != "" {
			tree.Title = s
		}
	}

	var walk func(n *xmlquery.Node, parent doctree.NodeID)
	walk = func(n *xmlquery.Node, parent doctree.NodeID) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.ElementNode:
				attrs := make([]doctree.Attr, 0, len(c.Attr))
				for _, a := range c.Attr {
					attrs = append(attrs, xmlAttr(a))
				}
				id := tree.AppendElement(parent, c.NamespaceURI, c.Prefix, c.Data, attrs)
				walk(c, id)
			case xmlquery.TextNode, xmlquery.CharDataNode:
				tree.AppendText(parent, c.Data)
			case xmlquery.CommentNode:
				tree.AppendComment(parent, c.Data)
			case xmlquery.DeclarationNode:
				if c.Data != "xml" {
					tree.AppendProcInst(parent, c.Data, c.InnerText())
				}
			}
		}
	}
	walk(doc, tree.Root())

	if tree.DocumentElement() == doctree.NoNode {
		return nil, fmt.Errorf("parse xml: no document element")
	}
	return tree, nil
}

func xmlAttr(a xmlquery.Attr) doctree.Attr {
	switch {
	case a.Name.Space == "xmlns":
		return doctree.Attr{Space: doctree.NamespaceXMLNS, Prefix: "xmlns", Local: a.Name.Local, Value: a.Value}
	case a.Name.Space == "" && a.Name.Local == "xmlns":
		return doctree.Attr{Space: doctree.NamespaceXMLNS, Local: "xmlns", Value: a.Value}
	case a.Name.Space == "xml" || a.Name.Space == doctree.NamespaceXML:
		return doctree.Attr{Space: doctree.NamespaceXML, Prefix: "xml", Local: a.Name.Local, Value: a.Value}
	}
	prefix := a.Name.Space
	if strings.Contains(prefix, ":") {
		// the decoder left an unbound URI in place of the prefix
		prefix = ""
	}
	return doctree.Attr{Space: a.NamespaceURI, Prefix: prefix, Local: a.Name.Local, Value: a.Value}
}
