package pass

import "xlate/internal/tree"

// Index rebuilds u.Index from the current tree. Run it last; any later
// rewrite leaves the index stale.
func Index() Pass {
	return Func("index", func(u *Unit) error {
		u.Index = tree.BuildIndex(u.Root)
		return nil
	})
}
