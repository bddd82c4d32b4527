// Package segment cuts a DNM into paragraph and sentence ranges, the
// units the annotator and matcher work on.
package segment

import (
	"slices"
	"strings"
	"unicode"

	"github.com/KWARC/llamapun/internal/ams"
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
)

// Config controls segmentation.
type Config struct {
	ParagraphElements []string // Element names that delimit paragraphs.
	ParagraphClasses  []string // Class names that delimit paragraphs.
	Abbreviations     []string // Lowercased words a period does not end.
	MaxSentenceTokens int      // Longer sentences are split at semicolons, then by words.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ParagraphElements: []string{"p", "li", "dd", "td", "caption", "figcaption", "blockquote", "pre"},
		ParagraphClasses:  []string{"ltx_para", "ltx_p", "ltx_caption"},
		Abbreviations: []string{
			"e.g", "i.e", "cf", "etc", "resp", "al", "vs", "viz", "approx",
			"fig", "figs", "eq", "eqs", "sec", "thm", "lem", "def", "prop", "cor",
			"ref", "refs", "no", "vol", "pp", "ch", "dr", "prof", "mr", "ms",
		},
		MaxSentenceTokens: 200,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.ParagraphElements) == 0 && len(c.ParagraphClasses) == 0 {
		c.ParagraphElements, c.ParagraphClasses = d.ParagraphElements, d.ParagraphClasses
	}
	if c.Abbreviations == nil {
		c.Abbreviations = d.Abbreviations
	}
	if c.MaxSentenceTokens <= 0 {
		c.MaxSentenceTokens = d.MaxSentenceTokens
	}
	return c
}

// Paragraph is one paragraph range with the titles of its enclosing
// sections. Env is the AMS environment of the parent element, empty when
// the paragraph sits outside one.
type Paragraph struct {
	Index      int            `json:"index"`
	Node       doctree.NodeID `json:"node"`
	Range      dnm.Range      `json:"range"`
	Breadcrumb []string       `json:"breadcrumb,omitempty"`
	Env        ams.Env        `json:"env,omitempty"`
}

// Paragraphs returns the outermost paragraph elements of d in document
// order. A document without paragraph elements is one paragraph.
func Paragraphs(d *dnm.DNM, cfg Config) []Paragraph {
	cfg = cfg.withDefaults()
	t := d.Tree()

	var out []Paragraph
	var walk func(n doctree.NodeID, breadcrumb []string)
	walk = func(n doctree.NodeID, breadcrumb []string) {
		if t.Kind(n) == doctree.ElementNode && cfg.isParagraph(t, n) {
			r, ok := d.RangeOf(n)
			if !ok {
				return
			}
			if r = r.Trim(); !r.IsEmpty() {
				out = append(out, Paragraph{
					Index:      len(out),
					Node:       n,
					Range:      r,
					Breadcrumb: copyBreadcrumb(breadcrumb),
					Env:        parentEnv(t, n),
				})
			}
			return
		}
		if title := heading(t, n); title != "" {
			breadcrumb = append(breadcrumb[:len(breadcrumb):len(breadcrumb)], title)
		}
		for _, c := range t.ElementChildren(n) {
			walk(c, breadcrumb)
		}
	}
	walk(d.Root(), nil)

	if len(out) == 0 {
		if r := d.Full().Trim(); !r.IsEmpty() {
			out = append(out, Paragraph{Node: d.Root(), Range: r})
		}
	}
	return out
}

func parentEnv(t *doctree.Tree, n doctree.NodeID) ams.Env {
	p := t.Parent(n)
	if p == doctree.NoNode {
		return ""
	}
	class, _ := t.Attr(p, "class")
	env, _ := ams.ClassToEnv(class)
	return env
}

func (c Config) isParagraph(t *doctree.Tree, n doctree.NodeID) bool {
	if slices.Contains(c.ParagraphElements, t.Name(n)) {
		return true
	}
	for _, class := range t.ClassNames(n) {
		if slices.Contains(c.ParagraphClasses, class) {
			return true
		}
	}
	return false
}

// heading returns the title of a sectioning element: the text of its
// first h1-h6 or ltx_title child.
func heading(t *doctree.Tree, n doctree.NodeID) string {
	for _, c := range t.ElementChildren(n) {
		isTitle := slices.Contains(t.ClassNames(c), "ltx_title")
		switch t.Name(c) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			isTitle = true
		}
		if isTitle {
			return strings.Join(strings.Fields(t.TextContent(c)), " ")
		}
	}
	return ""
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}

// Sentences splits r at terminal punctuation followed by whitespace. A
// period after a listed abbreviation or a single capital letter does not
// end a sentence, and punctuation inside a placeholder never does.
func Sentences(r dnm.Range, cfg Config) []dnm.Range {
	cfg = cfg.withDefaults()
	text := r.Text()
	d := r.DNM()

	var out []dnm.Range
	emit := func(start, end int) {
		sub, err := r.Sub(start, end)
		if err != nil {
			return
		}
		if sub = sub.Trim(); !sub.IsEmpty() {
			out = append(out, cfg.split(sub)...)
		}
	}

	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		end := i + 1
		for end < len(text) && strings.IndexByte(`.!?"')]`, text[end]) >= 0 {
			end++
		}
		if end < len(text) && !isSpace(text[end]) {
			i = end - 1
			continue
		}
		if d != nil {
			if _, inside := d.EntityAt(r.Start + i); inside {
				continue
			}
		}
		if c == '.' && cfg.abbreviation(text[start:i]) {
			continue
		}
		emit(start, end)
		start = end
		i = end - 1
	}
	emit(start, len(text))
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func (c Config) abbreviation(before string) bool {
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if rs := []rune(last); len(rs) == 1 && unicode.IsUpper(rs[0]) {
		return true
	}
	return slices.Contains(c.Abbreviations, strings.ToLower(strings.TrimLeft(last, `("'[`)))
}

// split breaks an overly long sentence at semicolons, then into runs of
// words that fit the token budget.
func (c Config) split(r dnm.Range) []dnm.Range {
	if EstimateTokens(r.Text()) <= c.MaxSentenceTokens {
		return []dnm.Range{r}
	}
	var out []dnm.Range
	text := r.Text()
	start := 0
	for start < len(text) {
		end := strings.IndexByte(text[start:], ';')
		if end < 0 {
			end = len(text)
		} else {
			end += start + 1
		}
		if piece, err := r.Sub(start, end); err == nil {
			if piece = piece.Trim(); !piece.IsEmpty() {
				out = append(out, c.byWords(piece)...)
			}
		}
		start = end
	}
	return out
}

func (c Config) byWords(r dnm.Range) []dnm.Range {
	if EstimateTokens(r.Text()) <= c.MaxSentenceTokens {
		return []dnm.Range{r}
	}
	maxWords := max(1, int(float64(c.MaxSentenceTokens)/tokensPerWord))
	spans := wordSpans(r.Text())

	var out []dnm.Range
	for i := 0; i < len(spans); i += maxWords {
		j := min(i+maxWords, len(spans)) - 1
		if sub, err := r.Sub(spans[i][0], spans[j][1]); err == nil {
			out = append(out, sub)
		}
	}
	return out
}

// wordSpans returns the byte offsets of whitespace-separated words.
func wordSpans(text string) [][2]int {
	var (
		out   [][2]int
		start = -1
	)
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(text)})
	}
	return out
}
