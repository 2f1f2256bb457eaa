package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// SignalSource resolves signal values during evaluation.
type SignalSource interface {
	Signal(name string) (any, error)
}

// Signals is a fixed set of signal values.
type Signals map[string]any

// Signal implements SignalSource.
func (s Signals) Signal(name string) (any, error) {
	v, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown signal %q", name)
	}

	return v, nil
}

// Env is the evaluation environment of an expression.
type Env struct {
	// Datum is the current row; missing fields read as null.
	Datum map[string]any
	// Parent is the datum of the enclosing facet group.
	Parent map[string]any
	// Signals resolves signal references.
	Signals SignalSource
	// Scales maps scale names to numeric scale functions.
	Scales map[string]func(float64) float64
	// Bandwidths holds the band width of band scales.
	Bandwidths map[string]float64
	// Data holds dataset rows for data('name').
	Data map[string][]map[string]any
}

// ErrNoSignals is returned when an expression reads a signal from an Env
// without a SignalSource.
var ErrNoSignals = errors.New("expression reads signals but none are available")

// Eval evaluates e. Numbers are float64, booleans bool, strings string and
// null is nil. Arithmetic follows JavaScript coercion rules closely enough
// for the expressions this module emits.
func (e Expr) Eval(env *Env) (any, error) {
	if e.n == nil {
		return nil, nil
	}

	if env == nil {
		env = &Env{}
	}

	return e.n.eval(env)
}

// EvalNumber evaluates e and coerces the result to a number.
func (e Expr) EvalNumber(env *Env) (float64, error) {
	v, err := e.Eval(env)
	if err != nil {
		return 0, err
	}

	return ToNumber(v), nil
}

func evalNode(n node, env *Env) (any, error) {
	if n == nil {
		return nil, nil
	}

	return n.eval(env)
}

func (n numberLit) eval(*Env) (any, error) { return n.v, nil }
func (n stringLit) eval(*Env) (any, error) { return n.v, nil }
func (nullLit) eval(*Env) (any, error)     { return nil, nil }
func (n boolLit) eval(*Env) (any, error)   { return n.v, nil }

func (n fieldRef) eval(env *Env) (any, error) {
	row := env.Datum
	if n.parent {
		row = env.Parent
	}

	if row == nil {
		return nil, nil
	}

	return row[n.name], nil
}

func (n signalRef) eval(env *Env) (any, error) {
	if env.Signals == nil {
		return nil, ErrNoSignals
	}

	return env.Signals.Signal(n.name)
}

func (n binary) eval(env *Env) (any, error) {
	l, err := evalNode(n.l, env)
	if err != nil {
		return nil, err
	}

	// Short-circuit like the source language.
	switch n.op {
	case "&&":
		if !Truthy(l) {
			return l, nil
		}

		return evalNode(n.r, env)
	case "||":
		if Truthy(l) {
			return l, nil
		}

		return evalNode(n.r, env)
	}

	r, err := evalNode(n.r, env)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "+":
		ls, lok := l.(string)
		rs, rok := r.(string)

		if lok || rok {
			if !lok {
				ls = toString(l)
			}

			if !rok {
				rs = toString(r)
			}

			return ls + rs, nil
		}

		return ToNumber(l) + ToNumber(r), nil
	case "-":
		return ToNumber(l) - ToNumber(r), nil
	case "*":
		return ToNumber(l) * ToNumber(r), nil
	case "/":
		return ToNumber(l) / ToNumber(r), nil
	case "%":
		return math.Mod(ToNumber(l), ToNumber(r)), nil
	case "==":
		return looseEqual(l, r), nil
	case "!=":
		return !looseEqual(l, r), nil
	case "<", "<=", ">", ">=":
		return compare(n.op, l, r), nil
	}

	return nil, fmt.Errorf("unsupported operator %q", n.op)
}

func (n unary) eval(env *Env) (any, error) {
	x, err := evalNode(n.x, env)
	if err != nil {
		return nil, err
	}

	if n.op == "!" {
		return !Truthy(x), nil
	}

	return -ToNumber(x), nil
}

func (n cond) eval(env *Env) (any, error) {
	t, err := evalNode(n.test, env)
	if err != nil {
		return nil, err
	}

	if Truthy(t) {
		return evalNode(n.then, env)
	}

	return evalNode(n.els, env)
}

func (n index) eval(env *Env) (any, error) {
	x, err := evalNode(n.x, env)
	if err != nil {
		return nil, err
	}

	switch arr := x.(type) {
	case []any:
		if n.i >= 0 && n.i < len(arr) {
			return arr[n.i], nil
		}
	case []float64:
		if n.i >= 0 && n.i < len(arr) {
			return arr[n.i], nil
		}
	}

	return nil, nil
}

func (n member) eval(env *Env) (any, error) {
	x, err := evalNode(n.x, env)
	if err != nil {
		return nil, err
	}

	if m, ok := x.(map[string]any); ok {
		return m[n.name], nil
	}

	return nil, nil
}

func (n call) eval(env *Env) (any, error) {
	args := make([]any, len(n.args))

	for i, a := range n.args {
		v, err := evalNode(a, env)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return callBuiltin(n.fn, args, env)
}

func callBuiltin(fn string, args []any, env *Env) (any, error) {
	num := func(i int) float64 {
		if i < len(args) {
			return ToNumber(args[i])
		}

		return math.NaN()
	}

	switch fn {
	case "floor":
		return math.Floor(num(0)), nil
	case "ceil":
		return math.Ceil(num(0)), nil
	case "sqrt":
		return math.Sqrt(num(0)), nil
	case "abs":
		return math.Abs(num(0)), nil
	case "round":
		return math.Floor(num(0) + 0.5), nil
	case "pow":
		return math.Pow(num(0), num(1)), nil
	case "min":
		v := math.Inf(1)
		for i := range args {
			v = math.Min(v, num(i))
		}

		return v, nil
	case "max":
		v := math.Inf(-1)
		for i := range args {
			v = math.Max(v, num(i))
		}

		return v, nil
	case "length":
		if len(args) == 0 {
			return 0.0, nil
		}

		switch x := args[0].(type) {
		case string:
			return float64(len(x)), nil
		case []any:
			return float64(len(x)), nil
		case []float64:
			return float64(len(x)), nil
		case []map[string]any:
			return float64(len(x)), nil
		}

		return 0.0, nil
	case "isValid":
		if len(args) == 0 || args[0] == nil {
			return false, nil
		}

		if f, ok := args[0].(float64); ok && math.IsNaN(f) {
			return false, nil
		}

		return true, nil
	case "scale":
		name := toString(args[0])

		f, ok := env.Scales[name]
		if !ok {
			return nil, fmt.Errorf("unknown scale %q", name)
		}

		return f(num(1)), nil
	case "bandwidth":
		name := toString(args[0])

		bw, ok := env.Bandwidths[name]
		if !ok {
			return nil, fmt.Errorf("unknown band scale %q", name)
		}

		return bw, nil
	case "data":
		name := toString(args[0])

		rows, ok := env.Data[name]
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q", name)
		}

		return rows, nil
	}

	return nil, fmt.Errorf("unsupported function %q", fn)
}

// ToNumber coerces v to a number the way the expression language does.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case bool:
		if x {
			return 1
		}

		return 0
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN()
		}

		return f
	}

	return math.NaN()
}

// Truthy reports the boolean value of v.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	}

	return true
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}

	return fmt.Sprint(v)
}

func looseEqual(l, r any) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}

	ls, lok := l.(string)
	rs, rok := r.(string)

	if lok && rok {
		return ls == rs
	}

	return ToNumber(l) == ToNumber(r)
}

func compare(op string, l, r any) bool {
	ls, lok := l.(string)
	rs, rok := r.(string)

	if lok && rok {
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		default:
			return ls >= rs
		}
	}

	a, b := ToNumber(l), ToNumber(r)

	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}
