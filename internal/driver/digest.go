package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"maps"
	"slices"
	"strconv"

	"xlate/internal/frontend"
)

// Digest identifies the inputs of one unit's translation.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// UnitDigest hashes the unit's original tree together with the key of every
// binding it references and the pass names, so a change to any declaration
// the unit uses, or to the pipeline, produces a new digest.
func UnitDigest(u *frontend.Universe, unit *frontend.Unit, passes []string) (Digest, error) {
	tree := sha256.New()
	hashNode(tree, unit.Root)
	content := sum(tree)

	h := sha256.New()
	var walkErr error
	unit.Root.Walk(func(n *frontend.Node) {
		if walkErr != nil {
			return
		}
		if n.Binding != "" {
			b, err := u.Binding(n.Binding)
			if err != nil {
				walkErr = err
				return
			}
			writeField(h, b.Key())
		}
		if n.Type != "" {
			writeField(h, n.Type)
		}
	})
	if walkErr != nil {
		return Digest{}, walkErr
	}
	pipe := sha256.New()
	for _, p := range passes {
		writeField(pipe, p)
	}
	return combineDigest(content, sum(h), sum(pipe)), nil
}

// hashNode writes n and its children in a fixed order: attributes, then
// fields by name, then lists by name. Map iteration order never reaches h.
func hashNode(h io.Writer, n *frontend.Node) {
	if n == nil {
		writeField(h, "<nil>")
		return
	}
	writeField(h, n.Kind)
	for _, v := range [...]uint32{n.Pos.Line, n.Pos.Col, n.Pos.Offset, n.Pos.End} {
		writeField(h, strconv.FormatUint(uint64(v), 10))
	}
	writeField(h, n.Value)
	writeField(h, n.Op)
	writeField(h, n.Type)
	writeField(h, n.Binding)
	for _, name := range slices.Sorted(maps.Keys(n.Fields)) {
		writeField(h, "field:"+name)
		hashNode(h, n.Fields[name])
	}
	for _, name := range slices.Sorted(maps.Keys(n.Lists)) {
		list := n.Lists[name]
		writeField(h, "list:"+name)
		writeField(h, strconv.Itoa(len(list)))
		for _, c := range list {
			hashNode(h, c)
		}
	}
	writeField(h, "end")
}

func sum(h hash.Hash) Digest {
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func writeField(w io.Writer, s string) {
	_, _ = w.Write([]byte(s))
	_, _ = w.Write([]byte{0})
}

// combineDigest is H(first || rest...).
func combineDigest(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
