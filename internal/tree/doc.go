// Package tree provides the mutable program tree that translation passes
// rewrite.
//
// # Ownership
//
// Every node has exactly one owner: it is either unattached (freshly built or
// detached) or held by exactly one ChildLink slot or ChildList entry of its
// parent. Placing a node that is already owned somewhere else panics with an
// *OwnershipViolation; the rewrite pipeline relies on no subtree ever being
// reachable from two places. To move a subtree, Detach it first. To reuse it,
// Clone it.
//
// Slots are typed by capability: a ChildLink[Expression] only accepts
// expressions. Replace checks the capability at run time and panics with a
// *CapabilityViolation on mismatch.
//
// # Traversal
//
// Node.Accept calls Visitor.Visit on the node; when that returns true the
// children are visited in the fixed order documented on each node type.
// EndVisit is always called afterwards, whether or not the children were
// visited. A node is visited at most once per traversal.
//
// Passes must not change the shape of a subtree while a visitor is walking
// that same subtree; the result is undefined and not checked. Collect the
// nodes first (or rewrite in EndVisit of an ancestor that is no longer being
// iterated) when a pass needs to restructure what it traverses.
package tree
