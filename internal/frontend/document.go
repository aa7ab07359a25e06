// Package frontend reads the interchange document produced by the external
// front end and turns it into the frozen Universe of original bindings that
// every translation unit reads from.
//
// Types are referenced by descriptor key ("I", "[I", "Lcom/example/Foo;",
// "Lcom/example/Foo$Bar;"). Methods and variables carry a document-local id
// that nodes use in their "binding" field.
package frontend

// Document is the decoded interchange file.
type Document struct {
	Version   int        `json:"version" yaml:"version"`
	Types     []TypeDecl `json:"types,omitempty" yaml:"types,omitempty"`
	Methods   []Method   `json:"methods,omitempty" yaml:"methods,omitempty"`
	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	Units     []UnitDoc  `json:"units,omitempty" yaml:"units,omitempty"`
}

// TypeDecl declares a class or interface. Primitive and array types are
// never declared; they come into existence when referenced.
type TypeDecl struct {
	Key        string   `json:"key" yaml:"key"`
	Interface  bool     `json:"interface,omitempty" yaml:"interface,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Super      string   `json:"super,omitempty" yaml:"super,omitempty"`
	Interfaces []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

// Method declares a method or constructor of a declared type.
type Method struct {
	ID          string   `json:"id" yaml:"id"`
	Declaring   string   `json:"declaring" yaml:"declaring"`
	Name        string   `json:"name" yaml:"name"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Params      []string `json:"params,omitempty" yaml:"params,omitempty"`
	Return      string   `json:"return,omitempty" yaml:"return,omitempty"`
	Throws      []string `json:"throws,omitempty" yaml:"throws,omitempty"`
	Constructor bool     `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Varargs     bool     `json:"varargs,omitempty" yaml:"varargs,omitempty"`
	// Overrides lists ids of the methods this one directly overrides.
	Overrides []string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Variable kinds.
const (
	VarField = "field"
	VarParam = "param"
	VarLocal = "local"
)

// Variable declares a field, parameter or local.
type Variable struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Declaring is the declaring type key of a field.
	Declaring string `json:"declaring,omitempty" yaml:"declaring,omitempty"`
	// Method is the declaring method id of a parameter or local.
	Method    string   `json:"method,omitempty" yaml:"method,omitempty"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Constant  any      `json:"constant,omitempty" yaml:"constant,omitempty"`
}

// UnitDoc is one translation unit with its original syntax tree.
type UnitDoc struct {
	Name    string `json:"name" yaml:"name"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	Root    *Node  `json:"root" yaml:"root"`
}

// Node is an original syntax node. Children are named: single children in
// Fields, sequences in Lists.
type Node struct {
	Kind    string             `json:"kind" yaml:"kind"`
	Pos     Pos                `json:"pos,omitempty" yaml:"pos,omitempty"`
	Value   string             `json:"value,omitempty" yaml:"value,omitempty"`
	Op      string             `json:"op,omitempty" yaml:"op,omitempty"`
	Type    string             `json:"type,omitempty" yaml:"type,omitempty"`
	Binding string             `json:"binding,omitempty" yaml:"binding,omitempty"`
	Fields  map[string]*Node   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Lists   map[string][]*Node `json:"lists,omitempty" yaml:"lists,omitempty"`
}

// Field returns the named single child, or nil.
func (n *Node) Field(name string) *Node {
	if n == nil {
		return nil
	}
	return n.Fields[name]
}

// List returns the named child sequence.
func (n *Node) List(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.Lists[name]
}

// Walk calls fn on n and every descendant, fields in sorted name order
// before lists in sorted name order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, name := range sortedKeys(n.Fields) {
		n.Fields[name].Walk(fn)
	}
	for _, name := range sortedKeys(n.Lists) {
		for _, c := range n.Lists[name] {
			c.Walk(fn)
		}
	}
}

// Pos locates a node in its unit's source text. Offsets are in bytes.
type Pos struct {
	Line   uint32 `json:"line,omitempty" yaml:"line,omitempty"`
	Col    uint32 `json:"col,omitempty" yaml:"col,omitempty"`
	Offset uint32 `json:"offset,omitempty" yaml:"offset,omitempty"`
	End    uint32 `json:"end,omitempty" yaml:"end,omitempty"`
}

// IsZero reports whether no position was recorded.
func (p Pos) IsZero() bool { return p == Pos{} }
