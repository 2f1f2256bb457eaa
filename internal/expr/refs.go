package expr

import "vizspec-compiler/internal/common"

// RefKind is the kind of symbol an expression references.
type RefKind int

const (
	RefField RefKind = iota
	RefSignal
	RefScale
	RefData
	RefParentField
)

// String returns a human-readable kind name.
func (k RefKind) String() string {
	switch k {
	case RefField:
		return "field"
	case RefSignal:
		return "signal"
	case RefScale:
		return "scale"
	case RefData:
		return "data"
	case RefParentField:
		return "parent field"
	default:
		return common.UnknownStr
	}
}

// Ref is a symbolic reference found in an expression.
type Ref struct {
	Kind RefKind
	Name string
}

// Refs returns the distinct references of e in order of first appearance.
func (e Expr) Refs() []Ref {
	if e.n == nil {
		return nil
	}

	var out []Ref

	seen := map[Ref]struct{}{}

	e.n.refs(func(r Ref) {
		if _, ok := seen[r]; ok {
			return
		}

		seen[r] = struct{}{}
		out = append(out, r)
	})

	return out
}

func walk(n node, add func(Ref)) {
	if n != nil {
		n.refs(add)
	}
}

func (numberLit) refs(func(Ref)) {}
func (stringLit) refs(func(Ref)) {}
func (nullLit) refs(func(Ref))   {}
func (boolLit) refs(func(Ref))   {}

func (n fieldRef) refs(add func(Ref)) {
	if n.parent {
		add(Ref{Kind: RefParentField, Name: n.name})

		return
	}

	add(Ref{Kind: RefField, Name: n.name})
}

func (n signalRef) refs(add func(Ref)) { add(Ref{Kind: RefSignal, Name: n.name}) }

func (n binary) refs(add func(Ref)) {
	walk(n.l, add)
	walk(n.r, add)
}

func (n unary) refs(add func(Ref)) { walk(n.x, add) }

func (n cond) refs(add func(Ref)) {
	walk(n.test, add)
	walk(n.then, add)
	walk(n.els, add)
}

func (n index) refs(add func(Ref))  { walk(n.x, add) }
func (n member) refs(add func(Ref)) { walk(n.x, add) }

func (n call) refs(add func(Ref)) {
	if n.ref != nil {
		add(*n.ref)
	}

	for _, a := range n.args {
		walk(a, add)
	}
}
