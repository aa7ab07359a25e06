package tree

import (
	"fmt"
	"iter"
	"slices"
)

// ChildList is an ordered sequence of owned children of capability T.
// Entries are never nil and obey the same single-owner rule as ChildLink.
type ChildList[T Node] struct {
	owner Node
	items []T
}

func (l *ChildList[T]) init(owner Node) { l.owner = owner }

// Owner returns the node this list belongs to.
func (l *ChildList[T]) Owner() Node { return l.owner }

// Len returns the number of children.
func (l *ChildList[T]) Len() int { return len(l.items) }

// Get returns the i-th child.
func (l *ChildList[T]) Get(i int) T { return l.items[i] }

// All iterates over the children in order. The list must not be modified
// during iteration.
func (l *ChildList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Slice returns a copy of the children.
func (l *ChildList[T]) Slice() []T { return slices.Clone(l.items) }

// IndexOf returns the position of n, or -1.
func (l *ChildList[T]) IndexOf(n Node) int {
	for i, item := range l.items {
		if Node(item) == n {
			return i
		}
	}
	return -1
}

// Add appends child.
func (l *ChildList[T]) Add(child T) {
	l.Insert(len(l.items), child)
}

// Insert places child at index i, shifting later children.
func (l *ChildList[T]) Insert(i int, child T) {
	l.checkInsert(i, child)
	attach(l, child)
	l.items = slices.Insert(l.items, i, child)
}

// Set replaces the i-th child and returns the previous one, now unattached.
func (l *ChildList[T]) Set(i int, child T) T {
	l.checkChild(child)
	old := l.items[i]
	if Node(old) == Node(child) {
		return old
	}
	attach(l, child)
	old.base().holder = nil
	l.items[i] = child
	return old
}

// Remove deletes the i-th child and returns it unattached.
func (l *ChildList[T]) Remove(i int) T {
	old := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	old.base().holder = nil
	return old
}

// Clear removes every child.
func (l *ChildList[T]) Clear() {
	for _, item := range l.items {
		item.base().holder = nil
	}
	l.items = nil
}

// CopyFrom replaces the contents with deep clones of other's children.
func (l *ChildList[T]) CopyFrom(other *ChildList[T]) {
	l.Clear()
	if other == nil {
		return
	}
	for _, item := range other.items {
		l.Add(Clone(item))
	}
}

// Accept forwards v into every child in order.
func (l *ChildList[T]) Accept(v Visitor) {
	for _, item := range l.items {
		item.Accept(v)
	}
}

func (l *ChildList[T]) checkChild(child T) {
	if l.owner == nil {
		panic("tree: ChildList used before init")
	}
	if isNil(child) {
		panic(&CapabilityViolation{Want: "non-nil " + capabilityName[T]()})
	}
}

func (l *ChildList[T]) checkInsert(i int, child T) {
	l.checkChild(child)
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("tree: insert index %d out of range [0,%d]", i, len(l.items)))
	}
}

func (l *ChildList[T]) remove(child Node) {
	if i := l.IndexOf(child); i >= 0 {
		l.Remove(i)
	}
}

func (l *ChildList[T]) replace(old, replacement Node) {
	i := l.IndexOf(old)
	if i < 0 {
		panic(&OwnershipViolation{Child: old, Target: l.owner, Reason: "is not held by this list"})
	}
	if replacement == nil {
		l.Remove(i)
		return
	}
	typed, ok := replacement.(T)
	if !ok {
		panic(&CapabilityViolation{Node: replacement, Want: capabilityName[T]()})
	}
	l.Set(i, typed)
}
