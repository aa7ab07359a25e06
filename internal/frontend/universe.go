package frontend

import (
	"errors"
	"fmt"
	"strings"

	"xlate/internal/binding"
	"xlate/internal/source"
	"xlate/internal/types"
)

// DocumentVersion is the newest interchange version understood by Load.
const DocumentVersion = 1

var (
	// ErrUnknownBinding is returned when a reference names no declared entity.
	ErrUnknownBinding = errors.New("frontend: unknown binding")
	// ErrDuplicate is returned when an id or type key is declared twice.
	ErrDuplicate = errors.New("frontend: duplicate declaration")
	// ErrInvalid is returned for declarations that are structurally wrong.
	ErrInvalid = errors.New("frontend: invalid declaration")
)

// Unit is a translation unit of a loaded document.
type Unit struct {
	Name    string
	Package string
	File    source.FileID
	Root    *Node
}

// Universe holds every original binding of a document. It is built once by
// Load and never modified afterwards, so translation workers may query it
// concurrently without locking.
type Universe struct {
	Types *types.Interner
	Files *source.Files

	typesByKey map[string]*DeclaredType
	typesByID  map[types.TypeID]*DeclaredType
	declared   []*DeclaredType
	methods    map[string]*DeclaredMethod
	methodList []*DeclaredMethod
	variables  map[string]*DeclaredVariable
	varList    []*DeclaredVariable
	byKey      map[string]binding.Binding
	units      []*Unit
}

// Load validates doc and builds its Universe. All types are interned and the
// interner is frozen before Load returns.
func Load(doc *Document) (*Universe, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalid)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("%w: document version %d is newer than %d", ErrInvalid, doc.Version, DocumentVersion)
	}
	u := &Universe{
		Types:      types.NewInterner(),
		Files:      source.NewFiles(),
		typesByKey: make(map[string]*DeclaredType),
		typesByID:  make(map[types.TypeID]*DeclaredType),
		methods:    make(map[string]*DeclaredMethod, len(doc.Methods)),
		variables:  make(map[string]*DeclaredVariable, len(doc.Variables)),
		byKey:      make(map[string]binding.Binding),
	}
	steps := []func(*Document) error{
		u.loadTypes,
		u.loadMethods,
		u.loadVariables,
		u.loadUnits,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return nil, err
		}
	}
	u.Types.Freeze()
	return u, nil
}

func (u *Universe) loadTypes(doc *Document) error {
	if _, err := u.ensureType("V"); err != nil {
		return err
	}
	// Every declared descriptor is interned before any key is resolved, so
	// class-shaped keys naming an interface find the interface descriptor.
	seen := make(map[string]bool, len(doc.Types))
	for i := range doc.Types {
		td := &doc.Types[i]
		bin, ok := binaryName(binding.NormalizeName(td.Key))
		if !ok {
			return fmt.Errorf("%w: type key %q is not a class key", ErrInvalid, td.Key)
		}
		if seen[bin] {
			return fmt.Errorf("%w: type %q", ErrDuplicate, td.Key)
		}
		seen[bin] = true
		if td.Interface {
			u.Types.Intern(types.MakeInterface(bin))
		} else {
			u.Types.Intern(types.MakeClass(bin))
		}
	}
	for i := range doc.Types {
		td := &doc.Types[i]
		t, err := u.ensureType(td.Key)
		if err != nil {
			return err
		}
		u.declared = append(u.declared, t)
		if t.modifiers, err = binding.ParseModifiers(td.Modifiers); err != nil {
			return fmt.Errorf("type %q: %w", td.Key, err)
		}
		if td.Super != "" {
			if t.superclass, err = u.ensureType(td.Super); err != nil {
				return fmt.Errorf("type %q superclass: %w", td.Key, err)
			}
		}
		for _, ik := range td.Interfaces {
			it, err := u.ensureType(ik)
			if err != nil {
				return fmt.Errorf("type %q interface: %w", td.Key, err)
			}
			t.interfaces = append(t.interfaces, it)
		}
		u.byKey[t.key] = t
	}
	return nil
}

// ensureType returns the type for key, creating it on first reference.
// Undeclared class keys become opaque external classes.
func (u *Universe) ensureType(key string) (*DeclaredType, error) {
	key = binding.NormalizeName(key)
	if t, ok := u.typesByKey[key]; ok {
		return t, nil
	}
	id, err := u.Types.InternKey(key)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", key, err)
	}
	if t, ok := u.typesByID[id]; ok {
		u.typesByKey[key] = t
		return t, nil
	}
	desc := u.Types.MustLookup(id)
	t := &DeclaredType{id: id, desc: desc, key: u.Types.Key(id)}
	switch desc.Kind {
	case types.KindArray:
		elem, err := u.ensureType(u.Types.Key(desc.Elem))
		if err != nil {
			return nil, err
		}
		t.elem = elem
		t.name = elem.name + "[]"
		t.qualified = elem.qualified + "[]"
	case types.KindClass, types.KindInterface:
		bin := desc.Name
		t.name = bin[strings.LastIndexAny(bin, ".$")+1:]
		t.qualified = strings.ReplaceAll(bin, "$", ".")
		if i := strings.LastIndexByte(bin, '$'); i > 0 {
			outer, err := u.ensureType("L" + strings.ReplaceAll(bin[:i], ".", "/") + ";")
			if err != nil {
				return nil, err
			}
			t.outer = outer
		}
	default:
		t.name = desc.Kind.String()
		t.qualified = t.name
	}
	u.typesByID[id] = t
	u.typesByKey[key] = t
	u.typesByKey[t.key] = t
	return t, nil
}

func (u *Universe) loadMethods(doc *Document) error {
	for i := range doc.Methods {
		md := &doc.Methods[i]
		if md.ID == "" || md.Name == "" {
			return fmt.Errorf("%w: method needs an id and a name (%q)", ErrInvalid, md.ID)
		}
		if _, dup := u.methods[md.ID]; dup {
			return fmt.Errorf("%w: method id %q", ErrDuplicate, md.ID)
		}
		m := &DeclaredMethod{
			id:          md.ID,
			name:        md.Name,
			constructor: md.Constructor,
			varargs:     md.Varargs,
		}
		var err error
		if m.modifiers, err = binding.ParseModifiers(md.Modifiers); err != nil {
			return fmt.Errorf("method %q: %w", md.ID, err)
		}
		if m.declaring, err = u.ensureType(md.Declaring); err != nil {
			return fmt.Errorf("method %q declaring type: %w", md.ID, err)
		}
		for _, pk := range md.Params {
			p, err := u.ensureType(pk)
			if err != nil {
				return fmt.Errorf("method %q parameter: %w", md.ID, err)
			}
			m.params = append(m.params, p)
		}
		ret := md.Return
		if ret == "" {
			ret = "V"
		}
		if m.returnType, err = u.ensureType(ret); err != nil {
			return fmt.Errorf("method %q return type: %w", md.ID, err)
		}
		for _, tk := range md.Throws {
			tt, err := u.ensureType(tk)
			if err != nil {
				return fmt.Errorf("method %q throws: %w", md.ID, err)
			}
			m.throws = append(m.throws, tt)
		}
		m.key = binding.MethodKey(m.declaring, m.name, m.params, m.returnType)
		if prev, dup := u.byKey[m.key]; dup {
			return fmt.Errorf("%w: method %q has the same key as %q", ErrDuplicate, md.ID, prev.Name())
		}
		u.methods[m.id] = m
		u.methodList = append(u.methodList, m)
		u.byKey[m.key] = m
	}
	for i := range doc.Methods {
		md := &doc.Methods[i]
		m := u.methods[md.ID]
		for _, oid := range md.Overrides {
			o, ok := u.methods[oid]
			if !ok {
				return fmt.Errorf("%w: method %q overrides %q", ErrUnknownBinding, md.ID, oid)
			}
			m.direct = append(m.direct, o)
		}
	}
	for _, m := range u.methodList {
		m.overridden = closeOverrides(m)
	}
	return nil
}

// closeOverrides collects every method m overrides through any chain of
// direct overrides. A method never counts as overriding itself.
func closeOverrides(m *DeclaredMethod) map[*DeclaredMethod]struct{} {
	out := make(map[*DeclaredMethod]struct{})
	stack := append([]*DeclaredMethod(nil), m.direct...)
	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := out[o]; seen || o == m {
			continue
		}
		out[o] = struct{}{}
		stack = append(stack, o.direct...)
	}
	return out
}

func (u *Universe) loadVariables(doc *Document) error {
	for i := range doc.Variables {
		vd := &doc.Variables[i]
		if vd.ID == "" || vd.Name == "" {
			return fmt.Errorf("%w: variable needs an id and a name (%q)", ErrInvalid, vd.ID)
		}
		if _, dup := u.variables[vd.ID]; dup {
			return fmt.Errorf("%w: variable id %q", ErrDuplicate, vd.ID)
		}
		v := &DeclaredVariable{id: vd.ID, kind: vd.Kind, name: vd.Name, constant: vd.Constant}
		var err error
		if v.modifiers, err = binding.ParseModifiers(vd.Modifiers); err != nil {
			return fmt.Errorf("variable %q: %w", vd.ID, err)
		}
		if v.typ, err = u.ensureType(vd.Type); err != nil {
			return fmt.Errorf("variable %q type: %w", vd.ID, err)
		}
		switch vd.Kind {
		case VarField:
			if v.declaring, err = u.ensureType(vd.Declaring); err != nil {
				return fmt.Errorf("field %q declaring type: %w", vd.ID, err)
			}
			v.key = binding.FieldKey(v.declaring, v.name, v.typ)
		case VarParam, VarLocal:
			m, ok := u.methods[vd.Method]
			if !ok {
				return fmt.Errorf("%w: %s %q names method %q", ErrUnknownBinding, vd.Kind, vd.ID, vd.Method)
			}
			v.method = m
			v.key = binding.LocalKey(m, v.name)
		default:
			return fmt.Errorf("%w: variable %q has kind %q", ErrInvalid, vd.ID, vd.Kind)
		}
		if _, dup := u.byKey[v.key]; dup {
			return fmt.Errorf("%w: variable %q key %s", ErrDuplicate, vd.ID, v.key)
		}
		u.variables[v.id] = v
		u.varList = append(u.varList, v)
		u.byKey[v.key] = v
	}
	return nil
}

func (u *Universe) loadUnits(doc *Document) error {
	for i := range doc.Units {
		ud := &doc.Units[i]
		if ud.Name == "" {
			return fmt.Errorf("%w: unit %d has no name", ErrInvalid, i)
		}
		if ud.Root == nil {
			return fmt.Errorf("%w: unit %q has no root", ErrInvalid, ud.Name)
		}
		if shared := findShared(ud.Root, make(map[*Node]struct{})); shared != nil {
			return fmt.Errorf("%w: unit %q: %s node at %d:%d is reachable twice", ErrInvalid, ud.Name, shared.Kind, shared.Pos.Line, shared.Pos.Col)
		}
		var err error
		ud.Root.Walk(func(n *Node) {
			if err != nil {
				return
			}
			if n.Type != "" {
				if _, terr := u.ensureType(n.Type); terr != nil {
					err = fmt.Errorf("unit %q: %s node: %w", ud.Name, n.Kind, terr)
					return
				}
			}
			if n.Binding != "" {
				if _, berr := u.Binding(n.Binding); berr != nil {
					err = fmt.Errorf("unit %q: %s node: %w", ud.Name, n.Kind, berr)
				}
			}
		})
		if err != nil {
			return err
		}
		u.units = append(u.units, &Unit{
			Name:    ud.Name,
			Package: ud.Package,
			File:    u.Files.Add(ud.Name),
			Root:    ud.Root,
		})
	}
	return nil
}

// findShared returns the first node reachable from n along two paths, as
// produced by YAML aliases, or nil when the tree is a proper tree.
func findShared(n *Node, seen map[*Node]struct{}) *Node {
	if n == nil {
		return nil
	}
	if _, dup := seen[n]; dup {
		return n
	}
	seen[n] = struct{}{}
	for _, name := range sortedKeys(n.Fields) {
		if s := findShared(n.Fields[name], seen); s != nil {
			return s
		}
	}
	for _, name := range sortedKeys(n.Lists) {
		for _, c := range n.Lists[name] {
			if s := findShared(c, seen); s != nil {
				return s
			}
		}
	}
	return nil
}

// binaryName turns "Lcom/example/Foo$Bar;" into "com.example.Foo$Bar".
func binaryName(key string) (string, bool) {
	if len(key) < 3 || key[0] != 'L' || key[len(key)-1] != ';' {
		return "", false
	}
	return strings.ReplaceAll(key[1:len(key)-1], "/", "."), true
}

// Type returns the type with the given key. Only types seen during Load
// exist; the universe does not grow afterwards.
func (u *Universe) Type(key string) (*DeclaredType, error) {
	if t, ok := u.typesByKey[binding.NormalizeName(key)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: type %q", ErrUnknownBinding, key)
}

// TypeByID returns the type interned under id.
func (u *Universe) TypeByID(id types.TypeID) (*DeclaredType, bool) {
	t, ok := u.typesByID[id]
	return t, ok
}

// Void returns the void type.
func (u *Universe) Void() *DeclaredType {
	return u.typesByID[u.Types.Builtins().Void]
}

// Method returns the method with document id.
func (u *Universe) Method(id string) (*DeclaredMethod, error) {
	if m, ok := u.methods[id]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: method %q", ErrUnknownBinding, id)
}

// Variable returns the variable with document id.
func (u *Universe) Variable(id string) (*DeclaredVariable, error) {
	if v, ok := u.variables[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: variable %q", ErrUnknownBinding, id)
}

// Binding resolves a document id to a method or variable.
func (u *Universe) Binding(id string) (binding.Binding, error) {
	if m, ok := u.methods[id]; ok {
		return m, nil
	}
	if v, ok := u.variables[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBinding, id)
}

// Lookup returns the declared type, method or variable with the given key.
func (u *Universe) Lookup(key string) (binding.Binding, bool) {
	b, ok := u.byKey[key]
	return b, ok
}

// DeclaredTypes returns the types declared by the document in document
// order.
func (u *Universe) DeclaredTypes() []*DeclaredType { return append([]*DeclaredType(nil), u.declared...) }

// Methods returns the declared methods in document order.
func (u *Universe) Methods() []*DeclaredMethod { return append([]*DeclaredMethod(nil), u.methodList...) }

// Variables returns the declared variables in document order.
func (u *Universe) Variables() []*DeclaredVariable {
	return append([]*DeclaredVariable(nil), u.varList...)
}

// Units returns the translation units in document order.
func (u *Universe) Units() []*Unit { return append([]*Unit(nil), u.units...) }

// Unit returns the unit with the given name.
func (u *Universe) Unit(name string) (*Unit, bool) {
	for _, unit := range u.units {
		if unit.Name == name {
			return unit, true
		}
	}
	return nil, false
}
