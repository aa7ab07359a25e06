package binding

// GeneratedVariable is a field, parameter or local introduced during
// translation, for example the backing field of a synthesized accessor or an
// implicit receiver parameter.
type GeneratedVariable struct {
	delegate  VariableBinding
	name      string
	modifiers Modifiers
	typ       TypeBinding
	declaring TypeBinding
	method    MethodBinding
	field     bool
	parameter bool
}

// NewField creates a field of declaring.
func NewField(name string, mods Modifiers, typ, declaring TypeBinding) *GeneratedVariable {
	if name == "" {
		violate("NewField", "", "name is required")
	}
	return &GeneratedVariable{name: name, modifiers: mods, typ: typ, declaring: declaring, field: true}
}

// NewParameter creates a parameter of method.
func NewParameter(name string, typ TypeBinding, method MethodBinding) *GeneratedVariable {
	if name == "" {
		violate("NewParameter", "", "name is required")
	}
	return &GeneratedVariable{name: name, typ: typ, method: method, parameter: true}
}

// NewLocal creates a local variable of method.
func NewLocal(name string, typ TypeBinding, method MethodBinding) *GeneratedVariable {
	if name == "" {
		violate("NewLocal", "", "name is required")
	}
	return &GeneratedVariable{name: name, typ: typ, method: method}
}

// CloneVariable copies v. The clone keeps v as its delegate so constant
// values remain visible.
func CloneVariable(v VariableBinding) *GeneratedVariable {
	if v == nil {
		violate("CloneVariable", "", "source variable is required")
	}
	return RenameVariable(v.Name(), v)
}

// RenameVariable is CloneVariable with a different name.
func RenameVariable(name string, v VariableBinding) *GeneratedVariable {
	if v == nil {
		violate("RenameVariable", name, "source variable is required")
	}
	if name == "" {
		violate("RenameVariable", "", "name is required")
	}
	return &GeneratedVariable{
		delegate:  v,
		name:      name,
		modifiers: v.Modifiers(),
		typ:       v.Type(),
		declaring: v.DeclaringType(),
		method:    v.DeclaringMethod(),
		field:     v.IsField(),
		parameter: v.IsParameter(),
	}
}

func (v *GeneratedVariable) Kind() Kind { return KindVariable }

func (v *GeneratedVariable) Name() string { return v.name }

func (v *GeneratedVariable) Delegate() Binding {
	if v.delegate == nil {
		return nil
	}
	return v.delegate
}

func (v *GeneratedVariable) Modifiers() Modifiers { return v.modifiers }

func (v *GeneratedVariable) SetModifiers(mods Modifiers) { v.modifiers = mods }

func (v *GeneratedVariable) AddModifiers(mods Modifiers) { v.modifiers |= mods }

func (v *GeneratedVariable) RemoveModifiers(mods Modifiers) { v.modifiers &^= mods }

// Key panics with an *InvariantViolation when the owner (declaring type for
// fields, declaring method otherwise) is unset.
func (v *GeneratedVariable) Key() string {
	if v.field {
		return FieldKey(v.declaring, v.name, v.typ)
	}
	return LocalKey(v.method, v.name)
}

func (v *GeneratedVariable) Type() TypeBinding { return v.typ }

func (v *GeneratedVariable) SetType(t TypeBinding) { v.typ = t }

func (v *GeneratedVariable) DeclaringType() TypeBinding { return v.declaring }

func (v *GeneratedVariable) SetDeclaringType(t TypeBinding) { v.declaring = t }

func (v *GeneratedVariable) DeclaringMethod() MethodBinding { return v.method }

func (v *GeneratedVariable) SetDeclaringMethod(m MethodBinding) { v.method = m }

func (v *GeneratedVariable) IsField() bool { return v.field }

func (v *GeneratedVariable) IsParameter() bool { return v.parameter }

func (v *GeneratedVariable) ConstantValue() any {
	if v.delegate == nil {
		return nil
	}
	return v.delegate.ConstantValue()
}

func (v *GeneratedVariable) String() string {
	typ := "<no type>"
	if v.typ != nil {
		typ = v.typ.Name()
	}
	if mods := v.modifiers.String(); mods != "" {
		return mods + " " + typ + " " + v.name
	}
	return typ + " " + v.name
}
