package tree

// Equal reports whether a and b are structurally equal: same kinds, same
// attributes and bindings (compared by key), and pairwise equal children in
// traversal order. Provenance and ownership are ignored.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || !a.sameAttrs(b) {
		return false
	}
	ca, cb := Children(a), Children(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !Equal(ca[i], cb[i]) {
			return false
		}
	}
	return true
}
