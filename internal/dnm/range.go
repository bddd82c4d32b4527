package dnm

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Range is a half-open byte interval [Start, End) of one DNM's text. A
// Range remembers the DNM it came from; ranges are only comparable and
// usable with that DNM.
type Range struct {
	Start int
	End   int
	dnm   *DNM
}

// DNM returns the model r belongs to.
func (r Range) DNM() *DNM { return r.dnm }

// Valid reports whether r is bound to a DNM and within its bounds.
func (r Range) Valid() bool {
	return r.dnm != nil && r.Start >= 0 && r.Start <= r.End && r.End <= len(r.dnm.text)
}

// Text returns the plain text covered by r.
func (r Range) Text() string {
	if !r.Valid() {
		return ""
	}
	return r.dnm.text[r.Start:r.End]
}

// Len returns the byte length of r.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether r covers no bytes.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// Trim shrinks r to exclude leading and trailing whitespace. A range of
// whitespace only collapses to an empty range at its end.
func (r Range) Trim() Range {
	text := r.Text()
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	if lead == len(text) {
		return Range{Start: r.End, End: r.End, dnm: r.dnm}
	}
	trail := len(text) - len(strings.TrimRightFunc(text, unicode.IsSpace))
	return Range{Start: r.Start + lead, End: r.End - trail, dnm: r.dnm}
}

// Sub returns the sub-range [relStart, relEnd) relative to r.Start.
func (r Range) Sub(relStart, relEnd int) (Range, error) {
	if r.dnm == nil {
		return Range{}, ErrForeignRange
	}
	if relStart < 0 || relEnd < relStart || relEnd > r.Len() {
		return Range{}, fmt.Errorf("sub [%d,%d) of length %d: %w", relStart, relEnd, r.Len(), ErrInvalidRange)
	}
	return r.dnm.Range(r.Start+relStart, r.Start+relEnd)
}

// Contains reports whether o lies within r. Ranges of different models
// never contain each other.
func (r Range) Contains(o Range) bool {
	return r.dnm == o.dnm && r.Start <= o.Start && o.End <= r.End
}

// Runes returns the number of characters in r.
func (r Range) Runes() int {
	return utf8.RuneCountInString(r.Text())
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// MarshalJSON renders r with its text, for API responses.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start int    `json:"start"`
		End   int    `json:"end"`
		Text  string `json:"text"`
	}{r.Start, r.End, r.Text()})
}
