package c14n

import (
	"errors"
	"fmt"

	"github.com/KWARC/llamapun/internal/doctree"
)

var (
	// ErrMalformed is wrapped by every MalformedError.
	ErrMalformed = errors.New("c14n: malformed subtree")

	// ErrUnknownAlgorithm is returned for digest algorithms other than
	// blake3 and sha256.
	ErrUnknownAlgorithm = errors.New("c14n: unknown digest algorithm")
)

// MalformedError marks a subtree that cannot be canonicalized. The subtree
// is left out of hashing; the rest of the document is unaffected.
type MalformedError struct {
	Node   doctree.NodeID
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("c14n: node %d: %s", e.Node, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }
