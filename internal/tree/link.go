package tree

import "fmt"

// Holder is a slot or list that owns child nodes.
type Holder interface {
	// Owner returns the node the holder belongs to.
	Owner() Node
	remove(child Node)
	replace(old, replacement Node)
}

// attach records h as the owner of child after checking that child is free
// and not an ancestor of the holder's owner.
func attach(h Holder, child Node) {
	cb := child.base()
	if cb.holder != nil {
		panic(&OwnershipViolation{
			Child:  child,
			Target: h.Owner(),
			Reason: fmt.Sprintf("already owned by %s, cannot place it under %s",
				describeNode(cb.holder.Owner()), describeNode(h.Owner())),
		})
	}
	for p := h.Owner(); p != nil; p = p.Parent() {
		if p == child {
			panic(&OwnershipViolation{
				Child:  child,
				Target: h.Owner(),
				Reason: "cannot be placed inside its own subtree",
			})
		}
	}
	cb.holder = h
}

// ChildLink is an ownership slot holding at most one child of capability T.
//
// The zero value is not usable; node constructors bind each link to its
// owner with init.
type ChildLink[T Node] struct {
	owner Node
	child T
}

func (l *ChildLink[T]) init(owner Node) { l.owner = owner }

// Owner returns the node this slot belongs to.
func (l *ChildLink[T]) Owner() Node { return l.owner }

// Get returns the current child, or the zero T when the slot is empty.
func (l *ChildLink[T]) Get() T { return l.child }

// IsEmpty reports whether the slot holds no child.
func (l *ChildLink[T]) IsEmpty() bool { return isNil(l.child) }

// Set installs child, detaching the previous occupant. A nil child clears
// the slot. Setting a node owned anywhere else panics with
// *OwnershipViolation; setting the current occupant again is a no-op.
func (l *ChildLink[T]) Set(child T) {
	if l.owner == nil {
		panic("tree: ChildLink used before init")
	}
	if !isNil(child) && !isNil(l.child) && Node(child) == Node(l.child) {
		return
	}
	if isNil(child) {
		var zero T
		child = zero
	} else {
		attach(l, child)
	}
	if !isNil(l.child) {
		l.child.base().holder = nil
	}
	l.child = child
}

// Clear empties the slot; the previous child becomes unattached.
func (l *ChildLink[T]) Clear() {
	var zero T
	l.Set(zero)
}

// CopyFrom installs a deep clone of other's child, or clears the slot when
// other is empty.
func (l *ChildLink[T]) CopyFrom(other *ChildLink[T]) {
	if other == nil || other.IsEmpty() {
		l.Clear()
		return
	}
	l.Set(Clone(other.child))
}

// Accept forwards v into the child; an empty slot is skipped.
func (l *ChildLink[T]) Accept(v Visitor) {
	if !isNil(l.child) {
		l.child.Accept(v)
	}
}

func (l *ChildLink[T]) remove(child Node) {
	if !isNil(l.child) && Node(l.child) == child {
		l.Clear()
	}
}

func (l *ChildLink[T]) replace(old, replacement Node) {
	if isNil(l.child) || Node(l.child) != old {
		panic(&OwnershipViolation{Child: old, Target: l.owner, Reason: "is not held by this slot"})
	}
	if replacement == nil {
		l.Clear()
		return
	}
	typed, ok := replacement.(T)
	if !ok {
		panic(&CapabilityViolation{Node: replacement, Want: capabilityName[T]()})
	}
	l.Set(typed)
}

// capabilityName renders T for diagnostics.
func capabilityName[T Node]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
