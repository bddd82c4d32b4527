package address

import (
	"errors"
	"fmt"
)

// ErrUnresolved is wrapped by every ResolutionError.
var ErrUnresolved = errors.New("address: unresolved")

// ResolutionError reports an address that does not fit the document it is
// decoded against: a malformed address, a missing path step, or an offset
// outside the addressed node. Callers usually skip the address and go on.
type ResolutionError struct {
	Address string
	Step    string
	Reason  string
}

func (e *ResolutionError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("address %q: step %q: %s", e.Address, e.Step, e.Reason)
	}
	return fmt.Sprintf("address %q: %s", e.Address, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return ErrUnresolved }
