package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// ErrFrozen is reported when a new descriptor is interned after Freeze.
var ErrFrozen = errors.New("types: interner is frozen")

// ErrBadKey is returned for malformed type keys.
var ErrBadKey = errors.New("types: malformed type key")

// Builtins stores TypeIDs for primitive types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Boolean TypeID
	Byte    TypeID
	Char    TypeID
	Short   TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Null    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// It is safe for concurrent use; once frozen only lookups succeed.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	frozen   bool
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.internRaw(Type{Kind: KindVoid})
	in.builtins.Boolean = in.internRaw(Type{Kind: KindBoolean})
	in.builtins.Byte = in.internRaw(Type{Kind: KindByte})
	in.builtins.Char = in.internRaw(Type{Kind: KindChar})
	in.builtins.Short = in.internRaw(Type{Kind: KindShort})
	in.builtins.Int = in.internRaw(Type{Kind: KindInt})
	in.builtins.Long = in.internRaw(Type{Kind: KindLong})
	in.builtins.Float = in.internRaw(Type{Kind: KindFloat})
	in.builtins.Double = in.internRaw(Type{Kind: KindDouble})
	in.builtins.Null = in.internRaw(Type{Kind: KindNull})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
// Interning a descriptor that is not yet known on a frozen interner panics.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind != KindArray {
		t.Elem = NoTypeID
	}
	if t.Kind != KindClass && t.Kind != KindInterface {
		t.Name = ""
	}
	in.mu.RLock()
	id, ok := in.index[t]
	frozen := in.frozen
	in.mu.RUnlock()
	if ok {
		return id
	}
	if frozen {
		panic(fmt.Errorf("%w: cannot intern %s", ErrFrozen, t.Kind))
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage. Callers hold the write lock
// (or own the interner exclusively during construction).
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Freeze makes the interner read-only.
func (in *Interner) Freeze() {
	in.mu.Lock()
	in.frozen = true
	in.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (in *Interner) Frozen() bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.frozen
}

// Len returns the number of interned descriptors, the invalid sentinel included.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.types)
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Key renders the descriptor key of id: "I" for int, "[I" for int[],
// "Ljava/lang/String;" for classes. Keys are stable across runs.
func (in *Interner) Key(id TypeID) string {
	var sb strings.Builder
	in.writeKey(&sb, id)
	return sb.String()
}

func (in *Interner) writeKey(sb *strings.Builder, id TypeID) {
	tt, ok := in.Lookup(id)
	if !ok {
		sb.WriteString("?")
		return
	}
	switch tt.Kind {
	case KindClass, KindInterface:
		sb.WriteByte('L')
		sb.WriteString(strings.ReplaceAll(tt.Name, ".", "/"))
		sb.WriteByte(';')
	case KindArray:
		sb.WriteByte('[')
		in.writeKey(sb, tt.Elem)
	default:
		sb.WriteByte(primitiveKeys[tt.Kind])
	}
}

// Name renders the source-level name of id ("int[]", "java.util.List").
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindClass, KindInterface:
		return tt.Name
	case KindArray:
		return in.Name(tt.Elem) + "[]"
	default:
		return tt.Kind.String()
	}
}

// Primitive returns the TypeID for a primitive keyword such as "int".
func (in *Interner) Primitive(name string) (TypeID, bool) {
	kind, ok := primitivesByName[name]
	if !ok {
		return NoTypeID, false
	}
	return in.Intern(Type{Kind: kind}), true
}

// InternKey parses a descriptor key and interns every type it mentions.
// Class keys intern as KindClass unless the descriptor is already known as
// an interface.
func (in *Interner) InternKey(key string) (TypeID, error) {
	id, rest, err := in.internKey(key)
	if err != nil {
		return NoTypeID, err
	}
	if rest != "" {
		return NoTypeID, fmt.Errorf("%w: trailing %q in %q", ErrBadKey, rest, key)
	}
	return id, nil
}

func (in *Interner) internKey(key string) (TypeID, string, error) {
	if key == "" {
		return NoTypeID, "", fmt.Errorf("%w: empty key", ErrBadKey)
	}
	switch key[0] {
	case '[':
		elem, rest, err := in.internKey(key[1:])
		if err != nil {
			return NoTypeID, "", err
		}
		return in.Intern(MakeArray(elem)), rest, nil
	case 'L':
		end := strings.IndexByte(key, ';')
		if end < 2 {
			return NoTypeID, "", fmt.Errorf("%w: unterminated class key %q", ErrBadKey, key)
		}
		name := strings.ReplaceAll(key[1:end], "/", ".")
		iface := MakeInterface(name)
		in.mu.RLock()
		id, ok := in.index[iface]
		in.mu.RUnlock()
		if ok {
			return id, key[end+1:], nil
		}
		return in.Intern(MakeClass(name)), key[end+1:], nil
	default:
		kind, ok := primitivesByKey[key[0]]
		if !ok {
			return NoTypeID, "", fmt.Errorf("%w: unknown descriptor %q", ErrBadKey, key[:1])
		}
		return in.Intern(Type{Kind: kind}), key[1:], nil
	}
}
