package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrOwnership is matched by every *OwnershipViolation.
	ErrOwnership = errors.New("tree: ownership violation")
	// ErrCapability is matched by every *CapabilityViolation.
	ErrCapability = errors.New("tree: capability violation")
)

// OwnershipViolation is raised (as a panic) when a node would end up with two
// owners, inside its own subtree, or when an operation needs an owner the
// node does not have.
type OwnershipViolation struct {
	Child  Node
	Target Node
	Reason string
}

func (e *OwnershipViolation) Error() string {
	return fmt.Sprintf("tree: %s: %s", describeNode(e.Child), e.Reason)
}

func (e *OwnershipViolation) Unwrap() error { return ErrOwnership }

// CapabilityViolation is raised (as a panic) when a node is placed into a
// slot that does not accept its kind.
type CapabilityViolation struct {
	Node Node
	Want string
}

func (e *CapabilityViolation) Error() string {
	return fmt.Sprintf("tree: %s cannot be placed where %s is required", describeNode(e.Node), e.Want)
}

func (e *CapabilityViolation) Unwrap() error { return ErrCapability }

func describeNode(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Kind().String()
}
