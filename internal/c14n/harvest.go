package c14n

import (
	"errors"

	"github.com/KWARC/llamapun/internal/doctree"
)

// Formula is one hashed subtree.
type Formula struct {
	Node      doctree.NodeID
	Canonical []byte
	Digest    Digest
}

// Harvest canonicalizes every node in nodes. Malformed subtrees are
// reported as warnings and left out; only invalid options fail the call.
func Harvest(t *doctree.Tree, nodes []doctree.NodeID, opts Options) ([]Formula, []*MalformedError, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		out      []Formula
		warnings []*MalformedError
	)
	for _, n := range nodes {
		canon, d, err := Canonicalize(t, n, opts)
		var me *MalformedError
		switch {
		case errors.As(err, &me):
			warnings = append(warnings, me)
			continue
		case err != nil:
			return nil, nil, err
		}
		out = append(out, Formula{Node: n, Canonical: canon, Digest: d})
	}
	return out, warnings, nil
}
