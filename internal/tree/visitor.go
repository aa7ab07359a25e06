package tree

// Visitor is driven by Node.Accept. Visit is called before the children and
// decides whether to descend; EndVisit is called after them, exactly once per
// visited node, even when Visit returned false.
type Visitor interface {
	Visit(n Node) bool
	EndVisit(n Node)
}

// BaseVisitor descends everywhere and does nothing. Embed it to implement
// only the half of the protocol a pass needs.
type BaseVisitor struct{}

func (BaseVisitor) Visit(Node) bool { return true }

func (BaseVisitor) EndVisit(Node) {}

// Funcs adapts plain functions to Visitor. A nil Pre descends everywhere.
type Funcs struct {
	Pre  func(Node) bool
	Post func(Node)
}

func (f Funcs) Visit(n Node) bool {
	if f.Pre == nil {
		return true
	}
	return f.Pre(n)
}

func (f Funcs) EndVisit(n Node) {
	if f.Post != nil {
		f.Post(n)
	}
}

// Inspect traverses the subtree of n in pre-order, descending while f
// returns true.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	n.Accept(Funcs{Pre: f})
}

// Children returns the direct children of n in traversal order.
func Children(n Node) []Node {
	c := &childCollector{root: n}
	n.Accept(c)
	return c.out
}

type childCollector struct {
	root Node
	out  []Node
}

func (c *childCollector) Visit(n Node) bool {
	if n == c.root {
		return true
	}
	c.out = append(c.out, n)
	return false
}

func (c *childCollector) EndVisit(Node) {}

// Count returns the number of nodes in the subtree of n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// FindAll collects every node of concrete type T in the subtree of n, in
// pre-order. The result can be mutated freely after the walk.
func FindAll[T Node](n Node) []T {
	var out []T
	Inspect(n, func(x Node) bool {
		if typed, ok := x.(T); ok {
			out = append(out, typed)
		}
		return true
	})
	return out
}
