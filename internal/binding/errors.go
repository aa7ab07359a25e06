package binding

import (
	"errors"
	"fmt"
)

// ErrInvariant is matched by every *InvariantViolation.
var ErrInvariant = errors.New("binding invariant violation")

// ErrUnknownModifier is returned by ParseModifiers for unrecognized labels.
var ErrUnknownModifier = errors.New("unknown modifier")

// InvariantViolation reports misuse of the binding API by a translation pass:
// a missing required argument, an out-of-range parameter index, or a key
// requested before the declaring type is known. These are raised as panics;
// the driver aborts the current unit when it recovers one.
type InvariantViolation struct {
	Op      string
	Binding string
	Reason  string
}

func (e *InvariantViolation) Error() string {
	if e.Binding == "" {
		return fmt.Sprintf("binding: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("binding: %s %q: %s", e.Op, e.Binding, e.Reason)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariant }

func violate(op, name, format string, args ...any) {
	panic(&InvariantViolation{Op: op, Binding: name, Reason: fmt.Sprintf(format, args...)})
}
