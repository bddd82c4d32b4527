package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate paragraphs.
type TextParser struct {
	InlineMath bool
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree, body := skeleton(titleFromFilename(filename))
	for _, para := range paragraphs {
		el := tree.AppendElement(body, "", "", "p", nil)
		appendInline(tree, el, para, p.InlineMath)
	}
	return tree, nil
}
