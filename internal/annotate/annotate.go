// Package annotate supplies the linguistic annotation the matcher needs:
// words with lemmas and part-of-speech tags. Annotators are injected; the
// core packages depend only on the Annotator contract.
package annotate

import (
	"context"
	"errors"
	"fmt"
)

// Token is one annotated word. Start and End are byte offsets into the
// annotated text.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Annotator tags plain text.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Token, error)
}

// ErrMisaligned is returned when annotator output cannot be located in
// the text it was computed from.
var ErrMisaligned = errors.New("annotate: token does not match the text")

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
