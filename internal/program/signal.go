package program

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

// Signal is a top-level signal definition: a literal value with an optional
// interactive binding, or a value derived from an update expression.
type Signal struct {
	Name   symbols.Signal `json:"name"`
	Value  any            `json:"value,omitempty"`
	Update *expr.Expr     `json:"update,omitempty"`
	Bind   *Bind          `json:"bind,omitempty"`
}

// Literal defines a signal with a constant value.
func Literal(name symbols.Signal, value any) Signal {
	return Signal{Name: name, Value: value}
}

// Bound defines a signal with a default value and an input control.
func Bound(name symbols.Signal, value any, bind *Bind) Signal {
	return Signal{Name: name, Value: value, Bind: bind}
}

// Derived defines a signal computed from other symbols.
func Derived(name symbols.Signal, update expr.Expr) Signal {
	return Signal{Name: name, Update: &update}
}

// Input is the kind of control a binding renders.
type Input string

const (
	InputRange    Input = "range"
	InputCheckbox Input = "checkbox"
)

// Bind describes the input control of a signal. Name is the localized label.
type Bind struct {
	Name  string   `json:"name"`
	Input Input    `json:"input"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Step  *float64 `json:"step,omitempty"`
}

// RangeBind is a slider between min and max.
func RangeBind(label string, minValue, maxValue, step float64) *Bind {
	return &Bind{Name: label, Input: InputRange, Min: &minValue, Max: &maxValue, Step: &step}
}

// CheckboxBind is a boolean toggle.
func CheckboxBind(label string) *Bind {
	return &Bind{Name: label, Input: InputCheckbox}
}
