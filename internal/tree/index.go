package tree

import (
	"slices"

	"xlate/internal/binding"
)

// Index maps the nodes of one tree to the bindings they declare or use, and
// binding keys back to those nodes. It is a snapshot: rebuild it after
// rewriting the tree.
type Index struct {
	Declarations map[Node]binding.Binding
	Uses         map[Node]binding.Binding

	declByKey map[string]Node
	usesByKey map[string][]Node
	seen      map[string]struct{}
	order     []string
	unkeyed   []Node
}

// BuildIndex walks root and records every declaration and reference.
// Bindings whose key cannot be computed are kept in Declarations and Uses but
// left out of the key maps; Unkeyed lists their nodes.
func BuildIndex(root Node) *Index {
	ix := &Index{
		Declarations: make(map[Node]binding.Binding),
		Uses:         make(map[Node]binding.Binding),
		declByKey:    make(map[string]Node),
		usesByKey:    make(map[string][]Node),
		seen:         make(map[string]struct{}),
	}
	Inspect(root, func(n Node) bool {
		switch n := n.(type) {
		case Declaration:
			if b := n.DeclaredBinding(); b != nil {
				ix.Declarations[n] = b
				ix.addDecl(n, b)
			}
		case Reference:
			if b := n.ReferencedBinding(); b != nil {
				ix.Uses[n] = b
				ix.addUse(n, b)
			}
		}
		return true
	})
	return ix
}

func (ix *Index) addDecl(n Node, b binding.Binding) {
	key, ok := binding.KeyOf(b)
	if !ok {
		ix.unkeyed = append(ix.unkeyed, n)
		return
	}
	if _, seen := ix.declByKey[key]; !seen {
		ix.declByKey[key] = n
		ix.note(key)
	}
}

func (ix *Index) addUse(n Node, b binding.Binding) {
	key, ok := binding.KeyOf(b)
	if !ok {
		ix.unkeyed = append(ix.unkeyed, n)
		return
	}
	ix.usesByKey[key] = append(ix.usesByKey[key], n)
	ix.note(key)
}

func (ix *Index) note(key string) {
	if _, ok := ix.seen[key]; ok {
		return
	}
	ix.seen[key] = struct{}{}
	ix.order = append(ix.order, key)
}

// Declaration returns the first node declaring the binding with key.
func (ix *Index) Declaration(key string) (Node, bool) {
	n, ok := ix.declByKey[key]
	return n, ok
}

// UsesOf returns the nodes referencing the binding with key, in traversal
// order.
func (ix *Index) UsesOf(key string) []Node {
	return slices.Clone(ix.usesByKey[key])
}

// Keys returns every key seen, in order of first appearance.
func (ix *Index) Keys() []string {
	return slices.Clone(ix.order)
}

// Unkeyed returns the nodes whose binding could not produce a key.
func (ix *Index) Unkeyed() []Node {
	return slices.Clone(ix.unkeyed)
}
