package binding

import (
	"fmt"
	"strings"
)

// Modifiers is a bitset of declaration modifiers.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModNative
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
	ModDefault
	ModSynthetic
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
	{ModNative, "native"},
	{ModSynchronized, "synchronized"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModStrictfp, "strictfp"},
	{ModDefault, "default"},
	{ModSynthetic, "synthetic"},
}

// Has reports whether every bit of m is set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// With returns mods with m added.
func (mods Modifiers) With(m Modifiers) Modifiers {
	return mods | m
}

// Without returns mods with m cleared.
func (mods Modifiers) Without(m Modifiers) Modifiers {
	return mods &^ m
}

// Strings returns a slice of textual modifier labels in declaration order.
func (mods Modifiers) Strings() []string {
	if mods == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, entry := range modifierNames {
		if mods&entry.mod != 0 {
			labels = append(labels, entry.name)
		}
	}
	return labels
}

func (mods Modifiers) String() string {
	return strings.Join(mods.Strings(), " ")
}

// ParseModifiers converts textual labels as written by the front end.
func ParseModifiers(labels []string) (Modifiers, error) {
	var mods Modifiers
	for _, label := range labels {
		found := false
		for _, entry := range modifierNames {
			if strings.EqualFold(label, entry.name) {
				mods |= entry.mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w %q", ErrUnknownModifier, label)
		}
	}
	return mods, nil
}
