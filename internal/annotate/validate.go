package annotate

import (
	"fmt"
	"strings"
)

// ValidateTokens checks annotator output against the text it came from.
// Tokens whose offsets do not select their text are relocated by
// searching forward from the previous token; blank tokens are dropped and
// missing lemmas default to the lowercased text. A token that cannot be
// found fails the whole sentence with ErrMisaligned.
func ValidateTokens(text string, toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	cursor := 0
	for i, tok := range toks {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if !(tok.Start >= cursor && tok.End <= len(text) && tok.Start < tok.End && text[tok.Start:tok.End] == tok.Text) {
			at := strings.Index(text[cursor:], tok.Text)
			if at < 0 {
				return nil, fmt.Errorf("token %d %q after offset %d: %w", i, truncate(tok.Text, 40), cursor, ErrMisaligned)
			}
			tok.Start = cursor + at
			tok.End = tok.Start + len(tok.Text)
		}
		if tok.Lemma == "" {
			tok.Lemma = strings.ToLower(tok.Text)
		}
		if tok.POS == "" {
			tok.POS = "NN"
		}
		cursor = tok.End
		out = append(out, tok)
	}
	return out, nil
}
