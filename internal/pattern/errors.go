package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRule is wrapped by RuleDefinitionError.
	ErrMalformedRule = errors.New("pattern: malformed rule")

	// ErrUnresolvedReference is wrapped by RuleReferenceError.
	ErrUnresolvedReference = errors.New("pattern: unresolved rule reference")

	// ErrMalformedSentence is wrapped by SentenceError.
	ErrMalformedSentence = errors.New("pattern: malformed sentence")

	// ErrUnknownRule is returned when matching a name the registry lacks.
	ErrUnknownRule = errors.New("pattern: unknown rule")

	// ErrWrongKind is returned when a rule is matched against input it
	// cannot apply to, such as a seq rule against a math node.
	ErrWrongKind = errors.New("pattern: rule kind does not fit input")
)

// RuleDefinitionError reports rule text that cannot be loaded: syntax
// errors, unknown elements, duplicate names.
type RuleDefinitionError struct {
	Rule   string
	Reason string
}

func (e *RuleDefinitionError) Error() string {
	if e.Rule == "" {
		return "pattern: " + e.Reason
	}
	return fmt.Sprintf("pattern: rule %q: %s", e.Rule, e.Reason)
}

func (e *RuleDefinitionError) Unwrap() error { return ErrMalformedRule }

// RuleReferenceError reports a reference to an undefined rule, or to a
// rule of a kind that cannot appear at the referencing position.
type RuleReferenceError struct {
	Rule   string
	Ref    string
	Reason string
}

func (e *RuleReferenceError) Error() string {
	return fmt.Sprintf("pattern: rule %q references %q: %s", e.Rule, e.Ref, e.Reason)
}

func (e *RuleReferenceError) Unwrap() error { return ErrUnresolvedReference }

// SentenceError reports matcher input that violates the sentence
// contract.
type SentenceError struct {
	Index  int
	Reason string
}

func (e *SentenceError) Error() string {
	return fmt.Sprintf("pattern: word %d: %s", e.Index, e.Reason)
}

func (e *SentenceError) Unwrap() error { return ErrMalformedSentence }
