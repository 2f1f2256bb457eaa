package program

import (
	"vizspec-compiler/internal/common"
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

// MarkType is the kind of a mark.
type MarkType string

const (
	MarkRect  MarkType = "rect"
	MarkText  MarkType = "text"
	MarkGroup MarkType = "group"
)

// Mark is a visual mark. Group marks nest further marks.
type Mark struct {
	Type   MarkType     `json:"type"`
	Name   symbols.Mark `json:"name,omitempty"`
	From   *From        `json:"from,omitempty"`
	Sort   *Compare     `json:"sort,omitempty"`
	Encode Encode       `json:"encode"`
	Marks  []Mark       `json:"marks,omitempty"`
}

// From binds a mark to a dataset or to the cells of a facet.
type From struct {
	Data  symbols.Data `json:"data,omitempty"`
	Facet *Facet       `json:"facet,omitempty"`
}

// Facet partitions Data by Groupby; nested marks read the partition as Name.
type Facet struct {
	Name    symbols.Data `json:"name"`
	Data    symbols.Data `json:"data"`
	Groupby []FieldRef   `json:"groupby"`
}

// Encode holds the channel encodings of a mark.
type Encode struct {
	Update Channels `json:"update"`
}

// Channels maps visual channels to value productions.
type Channels struct {
	X        Production `json:"x,omitempty"`
	Xc       Production `json:"xc,omitempty"`
	Y        Production `json:"y,omitempty"`
	Yc       Production `json:"yc,omitempty"`
	Z        Production `json:"z,omitempty"`
	Width    Production `json:"width,omitempty"`
	Height   Production `json:"height,omitempty"`
	Depth    Production `json:"depth,omitempty"`
	Fill     Production `json:"fill,omitempty"`
	Text     Production `json:"text,omitempty"`
	FontSize Production `json:"fontSize,omitempty"`
	Angle    Production `json:"angle,omitempty"`
	Align    Production `json:"align,omitempty"`
	Baseline Production `json:"baseline,omitempty"`
}

// Each calls fn for every non-empty channel in wire order.
func (c *Channels) Each(fn func(name string, p Production)) {
	for _, ch := range []struct {
		name string
		p    Production
	}{
		{"x", c.X}, {"xc", c.Xc}, {"y", c.Y}, {"yc", c.Yc}, {"z", c.Z},
		{"width", c.Width}, {"height", c.Height}, {"depth", c.Depth},
		{"fill", c.Fill}, {"text", c.Text}, {"fontSize", c.FontSize},
		{"angle", c.Angle}, {"align", c.Align}, {"baseline", c.Baseline},
	} {
		if len(ch.p) > 0 {
			fn(ch.name, ch.p)
		}
	}
}

// Production is a channel value. A single rule is written as an object and
// a rule list as an array evaluated top to bottom, first passing test wins.
type Production []ValueRef

// Rule builds a single-rule production.
func Rule(v ValueRef) Production { return Production{v} }

// MarshalJSON implements json.Marshaler.
func (p Production) MarshalJSON() ([]byte, error) {
	if common.IsSingle(p) {
		return encodeJSON(p[0], "")
	}

	return encodeJSON([]ValueRef(p), "")
}

// ValueRef is one encoding rule.
type ValueRef struct {
	Test   *expr.Expr    `json:"test,omitempty"`
	Value  any           `json:"value,omitempty"`
	Signal *expr.Expr    `json:"signal,omitempty"`
	Scale  symbols.Scale `json:"scale,omitempty"`
	Field  FieldRef      `json:"field,omitempty"`
	Band   *float64      `json:"band,omitempty"`
	Offset *ValueRef     `json:"offset,omitempty"`
}

// Val is a literal value rule.
func Val(v any) ValueRef { return ValueRef{Value: v} }

// Sig is a rule computed by an expression.
func Sig(e expr.Expr) ValueRef { return ValueRef{Signal: &e} }

// Scaled maps a field through a scale.
func Scaled(s symbols.Scale, f FieldRef) ValueRef { return ValueRef{Scale: s, Field: f} }

// Banded positions at a fraction of the band of s.
func Banded(s symbols.Scale, f FieldRef, band float64) ValueRef {
	return ValueRef{Scale: s, Field: f, Band: &band}
}

// When guards the rule with a test.
func (v ValueRef) When(test expr.Expr) ValueRef {
	v.Test = &test
	return v
}

// WithOffset adds an offset rule.
func (v ValueRef) WithOffset(o ValueRef) ValueRef {
	v.Offset = &o
	return v
}

// Uses lists the fields, signals and scales the rule reads.
func (v ValueRef) Uses() []expr.Ref {
	var out []expr.Ref

	if v.Test != nil {
		out = append(out, v.Test.Refs()...)
	}

	if v.Signal != nil {
		out = append(out, v.Signal.Refs()...)
	}

	if v.Scale != "" {
		out = append(out, expr.Ref{Kind: expr.RefScale, Name: string(v.Scale)})
	}

	if v.Field != "" {
		out = append(out, fieldRefs(v.Field)...)
	}

	if v.Offset != nil {
		out = append(out, v.Offset.Uses()...)
	}

	return out
}
