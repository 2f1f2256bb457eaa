package expr

import (
	"vizspec-compiler/internal/symbols"
)

// Expr is an immutable expression tree. The zero value is the empty expression.
type Expr struct {
	n node
}

type node interface {
	prec() int
	write(w *writer)
	refs(add func(Ref))
	eval(env *Env) (any, error)
}

// Operator precedence levels, loosest first.
const (
	precCond = iota + 1
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

// IsZero reports whether e is the empty expression.
func (e Expr) IsZero() bool {
	return e.n == nil
}

// String renders the expression.
func (e Expr) String() string {
	if e.n == nil {
		return ""
	}

	w := &writer{}
	e.n.write(w)

	return w.String()
}

// MarshalText renders the expression so it is embedded as a JSON string.
func (e Expr) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// --- leaves ---

type numberLit struct{ v float64 }

type stringLit struct{ v string }

type nullLit struct{}

type boolLit struct{ v bool }

type fieldRef struct {
	name   string
	parent bool
}

type signalRef struct{ name string }

// Num is a numeric literal.
func Num(v float64) Expr { return Expr{numberLit{v}} }

// Int is an integral numeric literal.
func Int(v int) Expr { return Expr{numberLit{float64(v)}} }

// Str is a string literal.
func Str(v string) Expr { return Expr{stringLit{v}} }

// Null is the null literal.
func Null() Expr { return Expr{nullLit{}} }

// Bool is a boolean literal.
func Bool(v bool) Expr { return Expr{boolLit{v}} }

// Field reads a field of the current datum by raw name.
func Field(name string) Expr { return Expr{fieldRef{name: name}} }

// ParentField reads a field of the enclosing facet group's datum.
func ParentField(name string) Expr { return Expr{fieldRef{name: name, parent: true}} }

// Derived reads a transform-emitted field of the current datum.
func Derived(f symbols.Field) Expr { return Field(string(f)) }

// Signal reads a signal.
func Signal(s symbols.Signal) Expr { return Expr{signalRef{string(s)}} }

// Width and Height are the engine's view size signals.
var (
	Width  = Signal(symbols.BuiltinWidth)
	Height = Signal(symbols.BuiltinHeight)
)

// --- composite nodes ---

type binary struct {
	op   string
	p    int
	l, r node
}

type unary struct {
	op string
	x  node
}

type cond struct {
	test, then, els node
}

type index struct {
	x node
	i int
}

type member struct {
	x    node
	name string
}

type call struct {
	fn   string
	args []node
	ref  *Ref
}

func bin(op string, p int, l, r Expr) Expr {
	return Expr{binary{op: op, p: p, l: l.n, r: r.n}}
}

// Add is l + r.
func (e Expr) Add(o Expr) Expr { return bin("+", precAdditive, e, o) }

// Sub is l - r.
func (e Expr) Sub(o Expr) Expr { return bin("-", precAdditive, e, o) }

// Mul is l * r.
func (e Expr) Mul(o Expr) Expr { return bin("*", precMultiplicative, e, o) }

// Div is l / r.
func (e Expr) Div(o Expr) Expr { return bin("/", precMultiplicative, e, o) }

// Mod is the remainder l % r.
func (e Expr) Mod(o Expr) Expr { return bin("%", precMultiplicative, e, o) }

// Eq is l == r.
func (e Expr) Eq(o Expr) Expr { return bin("==", precEquality, e, o) }

// Ne is l != r.
func (e Expr) Ne(o Expr) Expr { return bin("!=", precEquality, e, o) }

// Lt is l < r.
func (e Expr) Lt(o Expr) Expr { return bin("<", precRelational, e, o) }

// Le is l <= r.
func (e Expr) Le(o Expr) Expr { return bin("<=", precRelational, e, o) }

// Gt is l > r.
func (e Expr) Gt(o Expr) Expr { return bin(">", precRelational, e, o) }

// Ge is l >= r.
func (e Expr) Ge(o Expr) Expr { return bin(">=", precRelational, e, o) }

// And is l && r.
func (e Expr) And(o Expr) Expr { return bin("&&", precAnd, e, o) }

// Or is l || r.
func (e Expr) Or(o Expr) Expr { return bin("||", precOr, e, o) }

// Neg is -x.
func Neg(x Expr) Expr { return Expr{unary{op: "-", x: x.n}} }

// Not is !x.
func Not(x Expr) Expr { return Expr{unary{op: "!", x: x.n}} }

// Cond is test ? then : els.
func Cond(test, then, els Expr) Expr {
	return Expr{cond{test: test.n, then: then.n, els: els.n}}
}

// Index is x[i].
func (e Expr) Index(i int) Expr { return Expr{index{x: e.n, i: i}} }

// Prop is x.name.
func (e Expr) Prop(name string) Expr { return Expr{member{x: e.n, name: name}} }

// Call invokes a built-in function of the expression language.
func Call(fn string, args ...Expr) Expr {
	nodes := make([]node, len(args))
	for i, a := range args {
		nodes[i] = a.n
	}

	return Expr{call{fn: fn, args: nodes}}
}

// Floor rounds down.
func Floor(x Expr) Expr { return Call("floor", x) }

// Ceil rounds up.
func Ceil(x Expr) Expr { return Call("ceil", x) }

// Sqrt is the square root.
func Sqrt(x Expr) Expr { return Call("sqrt", x) }

// Min is the smallest argument.
func Min(xs ...Expr) Expr { return Call("min", xs...) }

// Max is the largest argument.
func Max(xs ...Expr) Expr { return Call("max", xs...) }

// Length is the length of an array or string.
func Length(x Expr) Expr { return Call("length", x) }

// Scale applies a named scale to v.
func Scale(s symbols.Scale, v Expr) Expr {
	return Expr{call{fn: "scale", args: []node{stringLit{string(s)}, v.n}, ref: &Ref{Kind: RefScale, Name: string(s)}}}
}

// Bandwidth is the band width of a band scale.
func Bandwidth(s symbols.Scale) Expr {
	return Expr{call{fn: "bandwidth", args: []node{stringLit{string(s)}}, ref: &Ref{Kind: RefScale, Name: string(s)}}}
}

// Data is the array of rows of a dataset.
func Data(d symbols.Data) Expr {
	return Expr{call{fn: "data", args: []node{stringLit{string(d)}}, ref: &Ref{Kind: RefData, Name: string(d)}}}
}
