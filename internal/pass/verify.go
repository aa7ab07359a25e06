package pass

import (
	"errors"
	"fmt"

	"xlate/internal/tree"
)

// ErrMalformedTree is wrapped by every ownership problem Verify reports.
var ErrMalformedTree = errors.New("malformed tree")

// Verify checks that every child's parent is the node it was reached from,
// that the owning slot agrees, and that no node is reached twice.
func Verify() Pass { return Func("verify", func(u *Unit) error { return VerifyTree(u.Root) }) }

// VerifyTree runs the Verify checks on an arbitrary subtree. root itself may
// be attached elsewhere.
func VerifyTree(root tree.Node) error {
	v := &verifier{root: root, seen: make(map[tree.Node]struct{})}
	root.Accept(v)
	return v.err
}

type verifier struct {
	root  tree.Node
	stack []tree.Node
	seen  map[tree.Node]struct{}
	err   error
}

func (v *verifier) Visit(n tree.Node) bool {
	if v.err != nil {
		return false
	}
	if _, dup := v.seen[n]; dup {
		v.fail(n, "reached twice")
		return false
	}
	v.seen[n] = struct{}{}
	if len(v.stack) > 0 {
		top := v.stack[len(v.stack)-1]
		if n.Parent() != top {
			v.fail(n, fmt.Sprintf("parent is %s, reached from %s", kindOf(n.Parent()), top.Kind()))
		} else if h := n.Holder(); h == nil || h.Owner() != top {
			v.fail(n, "owning slot does not belong to its parent")
		}
	}
	v.stack = append(v.stack, n)
	return true
}

func (v *verifier) EndVisit(tree.Node) {
	v.stack = v.stack[:len(v.stack)-1]
}

func (v *verifier) fail(n tree.Node, reason string) {
	if v.err == nil {
		v.err = fmt.Errorf("%w: %s %s", ErrMalformedTree, n.Kind(), reason)
	}
}

func kindOf(n tree.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}
