package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KWARC/llamapun/internal/doctree"
)

// Parser converts raw document bytes into a document tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Tree, error)
}

// Config tunes the tree providers.
type Config struct {
	// PDFFallbackPdftotext shells out to pdftotext when the Go PDF reader fails.
	PDFFallbackPdftotext bool
	// InlineMath turns $...$ spans in plain text and markdown into math elements.
	InlineMath bool
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{InlineMath: true}
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".xhtml":    true,
	".xml":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	return ForFileConfig(filename, DefaultConfig())
}

// ForFileConfig is ForFile with explicit provider settings.
func ForFileConfig(filename string, cfg Config) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{InlineMath: cfg.InlineMath}, nil
	case ".md", ".markdown":
		return &MarkdownParser{InlineMath: cfg.InlineMath}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".xhtml", ".xml":
		return &XMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: cfg.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// titleFromFilename strips the extension from a filename.
func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// skeleton builds html/head/title + body for formats without their own
// markup, and returns the tree and the body node.
func skeleton(title string) (*doctree.Tree, doctree.NodeID) {
	t := doctree.New(title)
	html := t.AppendElement(t.Root(), "", "", "html", nil)
	head := t.AppendElement(html, "", "", "head", nil)
	if title != "" {
		ti := t.AppendElement(head, "", "", "title", nil)
		t.AppendText(ti, title)
	}
	body := t.AppendElement(html, "", "", "body", nil)
	return t, body
}

// appendInline adds text to parent. With math enabled, $...$ spans become
// math elements carrying the TeX source.
func appendInline(t *doctree.Tree, parent doctree.NodeID, s string, math bool) {
	for math {
		i := strings.IndexByte(s, '$')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], '$')
		if j < 0 {
			break
		}
		end := i + 1 + j
		tex := s[i+1 : end]
		if strings.TrimSpace(tex) == "" {
			t.AppendText(parent, s[:end+1])
			s = s[end+1:]
			continue
		}
		if i > 0 {
			t.AppendText(parent, s[:i])
		}
		appendTeXMath(t, parent, tex)
		s = s[end+1:]
	}
	if s != "" {
		t.AppendText(parent, s)
	}
}

func appendTeXMath(t *doctree.Tree, parent doctree.NodeID, tex string) doctree.NodeID {
	m := t.AppendElement(parent, doctree.NamespaceMathML, "", "math", []doctree.Attr{
		{Local: "alttext", Value: tex},
	})
	sem := t.AppendElement(m, doctree.NamespaceMathML, "", "semantics", nil)
	row := t.AppendElement(sem, doctree.NamespaceMathML, "", "mtext", nil)
	t.AppendText(row, tex)
	ann := t.AppendElement(sem, doctree.NamespaceMathML, "", "annotation", []doctree.Attr{
		{Local: "encoding", Value: "application/x-tex"},
	})
	t.AppendText(ann, tex)
	return m
}
