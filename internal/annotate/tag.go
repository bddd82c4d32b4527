package annotate

import (
	"context"
	"fmt"

	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/KWARC/llamapun/internal/pattern"
)

// Tag annotates the text of r and returns it as a matcher sentence. Tokens
// inside a placeholder that holds a formula become one formula word that
// points at the placeholder element, however the annotator split it.
func Tag(ctx context.Context, a Annotator, r dnm.Range) (*pattern.Sentence, error) {
	d := r.DNM()
	if d == nil || !r.Valid() {
		return nil, fmt.Errorf("tag %s: %w", r, dnm.ErrForeignRange)
	}
	text := r.Text()
	toks, err := a.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}
	if toks, err = ValidateTokens(text, toks); err != nil {
		return nil, err
	}

	t := d.Tree()
	s := &pattern.Sentence{Tree: t, Words: make([]pattern.Word, 0, len(toks))}
	for _, tok := range toks {
		wr, err := r.Sub(tok.Start, tok.End)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", tok.Text, err)
		}
		e, ok := d.EntityAt(wr.Start)
		if !ok || t.FindElement(e.Node, "math") == doctree.NoNode {
			s.Words = append(s.Words, pattern.Word{Text: tok.Text, Lemma: tok.Lemma, POS: tok.POS, Range: wr})
			continue
		}
		if n := len(s.Words); n > 0 && s.Words[n-1].Math == e.Node {
			last := &s.Words[n-1]
			if last.Range, err = d.Range(last.Range.Start, wr.End); err != nil {
				return nil, err
			}
			last.Text = last.Range.Text()
			continue
		}
		s.Words = append(s.Words, pattern.Word{
			Text:  tok.Text,
			Lemma: tok.Lemma,
			POS:   "NN",
			Range: wr,
			Math:  e.Node,
		})
	}
	return s, nil
}
