package tree

import (
	"fmt"
	"io"
	"strings"

	"xlate/internal/binding"
)

// DumpOptions configures tree dumping.
type DumpOptions struct {
	// Keys prints binding keys instead of plain names.
	Keys bool
	// Provenance appends the source span and origin kind of each node.
	Provenance bool
}

// Printer writes one line per node, indented by depth.
type Printer struct {
	w      io.Writer
	opts   DumpOptions
	indent int
	err    error
}

// NewPrinter creates a printer with default options.
func NewPrinter(w io.Writer) *Printer {
	return NewPrinterWithOptions(w, DumpOptions{})
}

// NewPrinterWithOptions creates a printer with the given options.
func NewPrinterWithOptions(w io.Writer, opts DumpOptions) *Printer {
	return &Printer{w: w, opts: opts}
}

// Fprint writes the subtree of n to w.
func Fprint(w io.Writer, n Node) error {
	return FprintWithOptions(w, n, DumpOptions{})
}

// FprintWithOptions writes the subtree of n to w with options.
func FprintWithOptions(w io.Writer, n Node, opts DumpOptions) error {
	return NewPrinterWithOptions(w, opts).Print(n)
}

// Sprint renders the subtree of n as a string.
func Sprint(n Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}

// Print writes the subtree of n and returns the first write error.
func (p *Printer) Print(n Node) error {
	if n == nil {
		p.printf("<nil>\n")
		return p.err
	}
	n.Accept(p)
	return p.err
}

func (p *Printer) Visit(n Node) bool {
	p.printf("%s%s", strings.Repeat("  ", p.indent), n.Kind())
	if attrs := p.attrs(n); attrs != "" {
		p.printf(" %s", attrs)
	}
	if p.opts.Provenance {
		prov := n.Provenance()
		switch {
		case prov.IsSynthetic():
			p.printf(" [synthetic]")
		case prov.Origin != "":
			p.printf(" [%s %s]", prov.Origin, prov.Span)
		default:
			p.printf(" [%s]", prov.Span)
		}
	}
	p.printf("\n")
	p.indent++
	return true
}

func (p *Printer) EndVisit(Node) {
	p.indent--
}

func (p *Printer) attrs(n Node) string {
	switch n := n.(type) {
	case *Literal:
		switch n.LiteralKind() {
		case LiteralString:
			return fmt.Sprintf("%q", n.Value())
		case LiteralChar:
			return "'" + n.Value() + "'"
		case LiteralNull:
			return "null"
		default:
			return n.Value()
		}
	case *SimpleName:
		if p.opts.Keys && n.Binding() != nil {
			return p.key(n.Binding())
		}
		return n.Identifier()
	case *ThisExpr:
		return p.typeName(n.TypeBinding())
	case *PrefixExpr:
		return string(n.Operator())
	case *InfixExpr:
		return string(n.Operator())
	case *Assignment:
		return string(n.Operator())
	case *FieldAccess:
		return p.name(n.Field())
	case *MethodInvocation:
		return p.name(n.Method())
	case *ClassInstanceCreation:
		return p.typeName(n.TypeBinding())
	case *CastExpr:
		return p.typeName(n.TypeBinding())
	case *VariableDeclFragment:
		return p.variable(n.Variable())
	case *SingleVariableDecl:
		return p.variable(n.Variable())
	case *MethodDecl:
		if n.Method() == nil {
			return "?"
		}
		if p.opts.Keys {
			return p.key(n.Method())
		}
		return fmt.Sprint(n.Method())
	case *TypeDecl:
		return p.typeName(n.Type())
	case *CompilationUnit:
		if n.Package() == "" {
			return fmt.Sprintf("%q", n.Name())
		}
		return fmt.Sprintf("%q package=%s", n.Name(), n.Package())
	default:
		return ""
	}
}

func (p *Printer) name(b binding.Binding) string {
	if b == nil {
		return "?"
	}
	if p.opts.Keys {
		return p.key(b)
	}
	return b.Name()
}

func (p *Printer) variable(v binding.VariableBinding) string {
	if v == nil {
		return "?"
	}
	if p.opts.Keys {
		return p.key(v)
	}
	return v.Name() + ": " + p.typeName(v.Type())
}

func (p *Printer) typeName(t binding.TypeBinding) string {
	if t == nil {
		return "?"
	}
	if p.opts.Keys {
		return binding.TypeKey(t)
	}
	return t.QualifiedName()
}

func (p *Printer) key(b binding.Binding) string {
	if k, ok := binding.KeyOf(b); ok {
		return k
	}
	return b.Name() + "<unkeyed>"
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
