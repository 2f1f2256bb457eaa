package program

import (
	"bytes"
	"encoding/json"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

// Program is the assembled document.
type Program struct {
	Data    []Data   `json:"data"`
	Scales  []Scale  `json:"scales"`
	Signals []Signal `json:"signals"`
	Marks   []Mark   `json:"marks"`
	Layout  *Layout  `json:"layout,omitempty"`
}

// JSON returns the indented wire form. Expression operators such as < and
// && are written as is, not as \u escapes.
func (p *Program) JSON() ([]byte, error) {
	return encodeJSON(p, "  ")
}

// encodeJSON marshals v without HTML escaping. MarshalJSON methods in this
// package use it in place of json.Marshal.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FieldRef names a field read by a stage, a scale domain or an encoding:
// either a source column or a registry field.
type FieldRef string

// Column refers to a source column by name.
func Column(name string) FieldRef { return FieldRef(name) }

// Of refers to a transform-emitted field.
func Of(f symbols.Field) FieldRef { return FieldRef(f) }

// SignalRef is an expression parameter, marshalled as {"signal": "..."}.
type SignalRef struct {
	Expr expr.Expr
}

// SignalOf wraps an expression.
func SignalOf(e expr.Expr) SignalRef { return SignalRef{Expr: e} }

// SignalNamed refers to a single signal.
func SignalNamed(s symbols.Signal) SignalRef { return SignalRef{Expr: expr.Signal(s)} }

// MarshalJSON implements json.Marshaler.
func (r SignalRef) MarshalJSON() ([]byte, error) {
	return encodeJSON(struct {
		Signal expr.Expr `json:"signal"`
	}{r.Expr}, "")
}

// Value is a number or a signal expression.
type Value struct {
	Num    float64
	Signal *SignalRef
}

// Number is a literal numeric value.
func Number(v float64) Value { return Value{Num: v} }

// SignalValue is a value computed by an expression.
func SignalValue(e expr.Expr) Value {
	ref := SignalOf(e)
	return Value{Signal: &ref}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Signal != nil {
		return encodeJSON(v.Signal, "")
	}

	return encodeJSON(v.Num, "")
}

// Order is a sort direction.
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Compare is a sort specification over one or more fields.
type Compare struct {
	Field []FieldRef `json:"field"`
	Order []Order    `json:"order"`
}

// SortBy builds a Compare sorting every field in the same direction.
func SortBy(order Order, fields ...FieldRef) *Compare {
	c := &Compare{Field: fields, Order: make([]Order, len(fields))}
	for i := range c.Order {
		c.Order[i] = order
	}

	return c
}

// Layout arranges facet groups in a grid.
type Layout struct {
	Columns Value  `json:"columns"`
	Padding Value  `json:"padding"`
	Bounds  string `json:"bounds,omitempty"`
	Align   string `json:"align,omitempty"`
}

// Data is a dataset definition.
type Data struct {
	Name      symbols.Data `json:"name"`
	Source    symbols.Data `json:"source,omitempty"`
	Transform []Transform  `json:"transform,omitempty"`
}

// Stage returns the index of the first transform of type kind, or -1.
func (d Data) Stage(kind string) int {
	for i, t := range d.Transform {
		if t.Type() == kind {
			return i
		}
	}

	return -1
}

// FindData returns the dataset with the given name.
func (p *Program) FindData(name symbols.Data) (Data, bool) {
	for _, d := range p.Data {
		if d.Name == name {
			return d, true
		}
	}

	return Data{}, false
}

// FindSignal returns the top-level signal with the given name.
func (p *Program) FindSignal(name symbols.Signal) (Signal, bool) {
	for _, s := range p.Signals {
		if s.Name == name {
			return s, true
		}
	}

	return Signal{}, false
}

// FindScale returns the scale with the given name.
func (p *Program) FindScale(name symbols.Scale) (Scale, bool) {
	for _, s := range p.Scales {
		if s.Name == name {
			return s, true
		}
	}

	return Scale{}, false
}
