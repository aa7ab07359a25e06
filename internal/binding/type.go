package binding

import "slices"

// GeneratedType is a class or interface that only exists in the translated
// program, such as a holder for extracted helpers.
type GeneratedType struct {
	delegate   TypeBinding
	pkg        string
	name       string
	modifiers  Modifiers
	outer      TypeBinding
	superclass TypeBinding
	interfaces []TypeBinding
	iface      bool
}

// NewType creates a top-level class in pkg.
func NewType(pkg, name string, mods Modifiers, superclass TypeBinding) *GeneratedType {
	if name == "" {
		violate("NewType", "", "name is required")
	}
	return &GeneratedType{pkg: pkg, name: name, modifiers: mods, superclass: superclass}
}

// NewNestedType creates a class declared inside outer.
func NewNestedType(outer TypeBinding, name string, mods Modifiers, superclass TypeBinding) *GeneratedType {
	if outer == nil {
		violate("NewNestedType", name, "outer type is required")
	}
	t := NewType("", name, mods, superclass)
	t.outer = outer
	return t
}

// NewInterfaceType creates a top-level interface in pkg.
func NewInterfaceType(pkg, name string, mods Modifiers) *GeneratedType {
	t := NewType(pkg, name, mods|ModAbstract, nil)
	t.iface = true
	return t
}

// RenameType derives a type from t under another name, keeping its package,
// enclosing type, supertypes and kind. t becomes the delegate.
func RenameType(name string, t TypeBinding) *GeneratedType {
	if t == nil {
		violate("RenameType", name, "source type is required")
	}
	if name == "" {
		violate("RenameType", "", "name is required")
	}
	gt := &GeneratedType{
		delegate:   t,
		pkg:        packageOf(t),
		name:       name,
		modifiers:  t.Modifiers(),
		outer:      t.DeclaringType(),
		superclass: t.Superclass(),
		interfaces: slices.Clone(t.Interfaces()),
		iface:      t.IsInterface(),
	}
	return gt
}

// packageOf derives the package from a qualified name by stripping the
// enclosing chain and the simple name.
func packageOf(t TypeBinding) string {
	for t.DeclaringType() != nil {
		t = t.DeclaringType()
	}
	q := t.QualifiedName()
	for i := len(q) - 1; i >= 0; i-- {
		if q[i] == '.' {
			return q[:i]
		}
	}
	return ""
}

func (t *GeneratedType) Kind() Kind { return KindType }

func (t *GeneratedType) Name() string { return t.name }

func (t *GeneratedType) Delegate() Binding {
	if t.delegate == nil {
		return nil
	}
	return t.delegate
}

// Package returns the package of a top-level type, or of the outermost
// enclosing type.
func (t *GeneratedType) Package() string {
	if t.outer != nil {
		return packageOf(t.outer)
	}
	return t.pkg
}

func (t *GeneratedType) QualifiedName() string {
	if t.outer != nil {
		return t.outer.QualifiedName() + "." + t.name
	}
	if t.pkg == "" {
		return t.name
	}
	return t.pkg + "." + t.name
}

func (t *GeneratedType) Key() string {
	if t.outer != nil {
		return NestedTypeKey(t.outer, t.name)
	}
	return TopLevelTypeKey(t.pkg, t.name)
}

func (t *GeneratedType) Modifiers() Modifiers { return t.modifiers }

func (t *GeneratedType) SetModifiers(mods Modifiers) { t.modifiers = mods }

func (t *GeneratedType) AddModifiers(mods Modifiers) { t.modifiers |= mods }

func (t *GeneratedType) RemoveModifiers(mods Modifiers) { t.modifiers &^= mods }

func (t *GeneratedType) DeclaringType() TypeBinding { return t.outer }

// SetDeclaringType moves the type inside outer; nil makes it top-level in
// its current package.
func (t *GeneratedType) SetDeclaringType(outer TypeBinding) {
	if outer == nil && t.outer != nil {
		t.pkg = packageOf(t.outer)
	}
	t.outer = outer
}

func (t *GeneratedType) Superclass() TypeBinding { return t.superclass }

func (t *GeneratedType) SetSuperclass(s TypeBinding) { t.superclass = s }

func (t *GeneratedType) Interfaces() []TypeBinding { return slices.Clone(t.interfaces) }

// AddInterface appends an implemented interface.
func (t *GeneratedType) AddInterface(i TypeBinding) {
	if i == nil {
		violate("AddInterface", t.name, "interface type is required")
	}
	t.interfaces = append(t.interfaces, i)
}

func (t *GeneratedType) IsPrimitive() bool { return false }

func (t *GeneratedType) IsInterface() bool { return t.iface }

func (t *GeneratedType) String() string {
	if mods := t.modifiers.String(); mods != "" {
		return mods + " " + t.QualifiedName()
	}
	return t.QualifiedName()
}
