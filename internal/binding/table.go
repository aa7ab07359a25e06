package binding

import "fmt"

// Table de-duplicates bindings by key. Each translation unit keeps its own
// table of generated bindings, so two passes asking for the same accessor get
// the same binding back. A Table is not safe for concurrent use.
type Table struct {
	byKey map[string]Binding
	keys  []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byKey: make(map[string]Binding)}
}

// Add stores b under its key unless an entry already exists. It returns the
// stored binding and whether b was newly added.
func (t *Table) Add(b Binding) (Binding, bool) {
	key := b.Key()
	if existing, ok := t.byKey[key]; ok {
		return existing, false
	}
	t.byKey[key] = b
	t.keys = append(t.keys, key)
	return b, true
}

// Lookup returns the binding stored under key.
func (t *Table) Lookup(key string) (Binding, bool) {
	b, ok := t.byKey[key]
	return b, ok
}

// Len returns the number of stored bindings.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns stored keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Intern stores b in t and returns the canonical binding for its key, typed
// like b. A key collision between bindings of different Go types is an
// invariant violation.
func Intern[B Binding](t *Table, b B) B {
	stored, _ := t.Add(b)
	typed, ok := stored.(B)
	if !ok {
		violate("Intern", b.Name(), "key %q already bound to %T", b.Key(), stored)
	}
	return typed
}

// MustLookup returns the binding for key or panics.
func (t *Table) MustLookup(key string) Binding {
	b, ok := t.byKey[key]
	if !ok {
		panic(fmt.Sprintf("binding: no entry for key %q", key))
	}
	return b
}
