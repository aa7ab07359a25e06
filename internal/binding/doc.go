// Package binding describes named program entities (types, variables and
// methods) independently of where they appear in the tree.
//
// Two families of bindings implement the same interfaces:
//
//   - original bindings, produced by the front end and never mutated
//     (see package frontend);
//   - generated bindings, created by translation passes whenever the target
//     model needs an entity the input program never declared: accessors,
//     bridge methods, helper types, extra parameters.
//
// A generated binding may carry a delegate, the original binding it was
// derived from. Override and sub-signature questions are answered by the
// delegate; a generated binding without one never overrides anything, since
// those relations only exist in the original semantic model.
//
// Bindings are shared by reference: every call site of a method points at the
// same MethodBinding. Nodes look bindings up, they never own them.
//
// Key returns a deterministic identity string built from the declaring
// type key, the NFC-normalized name, the ordered parameter keys and the
// result key. Independently constructed bindings with the same signature
// produce equal keys, which is what Table and every pass-side cache rely on.
package binding
