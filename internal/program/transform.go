package program

import (
	"encoding/json"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

// Transform is one stage of a dataset pipeline.
type Transform interface {
	json.Marshaler

	// Type is the engine's transform type name.
	Type() string
	// Uses lists the fields, signals and datasets the stage reads.
	Uses() []expr.Ref
	// Defines lists the fields and signals the stage creates.
	Defines() []expr.Ref
}

// Transform type names.
const (
	TypeExtent        = "extent"
	TypeBin           = "bin"
	TypeStack         = "stack"
	TypeFormula       = "formula"
	TypeSequence      = "sequence"
	TypeAggregate     = "aggregate"
	TypeJoinAggregate = "joinaggregate"
	TypeWindow        = "window"
	TypeFilter        = "filter"
	TypeLookup        = "lookup"
)

// Op is an aggregate or window operation.
type Op string

const (
	OpCount     Op = "count"
	OpSum       Op = "sum"
	OpMin       Op = "min"
	OpMax       Op = "max"
	OpRowNumber Op = "row_number"
)

func fieldRefs(fields ...FieldRef) []expr.Ref {
	out := make([]expr.Ref, 0, len(fields))
	for _, f := range fields {
		out = append(out, expr.Ref{Kind: expr.RefField, Name: string(f)})
	}

	return out
}

func emitted(fields ...symbols.Field) []expr.Ref {
	out := make([]expr.Ref, 0, len(fields))
	for _, f := range fields {
		out = append(out, expr.Ref{Kind: expr.RefField, Name: string(f)})
	}

	return out
}

func signalDef(s symbols.Signal) expr.Ref {
	return expr.Ref{Kind: expr.RefSignal, Name: string(s)}
}

func (c *Compare) refs() []expr.Ref {
	if c == nil {
		return nil
	}

	return fieldRefs(c.Field...)
}

func marshalTyped(kind string, v any) ([]byte, error) {
	body, err := encodeJSON(v, "")
	if err != nil {
		return nil, err
	}

	head, err := encodeJSON(kind, "")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+len(head)+10)
	out = append(out, `{"type":`...)
	out = append(out, head...)

	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}

	return out, nil
}

// Extent computes [min, max] of a field into a signal.
type Extent struct {
	Field  FieldRef       `json:"field"`
	Signal symbols.Signal `json:"signal"`
}

func (t Extent) Type() string        { return TypeExtent }
func (t Extent) Uses() []expr.Ref    { return fieldRefs(t.Field) }
func (t Extent) Defines() []expr.Ref { return []expr.Ref{signalDef(t.Signal)} }

// MarshalJSON implements json.Marshaler.
func (t Extent) MarshalJSON() ([]byte, error) {
	type plain Extent
	return marshalTyped(t.Type(), plain(t))
}

// Bin discretizes a quantitative field into [start, end) bins and publishes
// the chosen bin layout as a signal. Nice is always emitted so the bin
// boundaries follow the extent exactly.
type Bin struct {
	Field   FieldRef         `json:"field"`
	Extent  SignalRef        `json:"extent"`
	Maxbins SignalRef        `json:"maxbins"`
	Nice    bool             `json:"nice"`
	As      [2]symbols.Field `json:"as"`
	Signal  symbols.Signal   `json:"signal"`
}

func (t Bin) Type() string { return TypeBin }

func (t Bin) Uses() []expr.Ref {
	out := fieldRefs(t.Field)
	out = append(out, t.Extent.Expr.Refs()...)

	return append(out, t.Maxbins.Expr.Refs()...)
}

func (t Bin) Defines() []expr.Ref {
	return append(emitted(t.As[0], t.As[1]), signalDef(t.Signal))
}

// MarshalJSON implements json.Marshaler.
func (t Bin) MarshalJSON() ([]byte, error) {
	type plain Bin
	return marshalTyped(t.Type(), plain(t))
}

// Stack assigns each row a running [start, end) offset within its group.
type Stack struct {
	Groupby []FieldRef       `json:"groupby"`
	Sort    *Compare         `json:"sort,omitempty"`
	As      [2]symbols.Field `json:"as"`
}

func (t Stack) Type() string        { return TypeStack }
func (t Stack) Uses() []expr.Ref    { return append(fieldRefs(t.Groupby...), t.Sort.refs()...) }
func (t Stack) Defines() []expr.Ref { return emitted(t.As[0], t.As[1]) }

// MarshalJSON implements json.Marshaler.
func (t Stack) MarshalJSON() ([]byte, error) {
	type plain Stack
	return marshalTyped(t.Type(), plain(t))
}

// Formula computes a new field per row.
type Formula struct {
	Expr expr.Expr     `json:"expr"`
	As   symbols.Field `json:"as"`
}

func (t Formula) Type() string        { return TypeFormula }
func (t Formula) Uses() []expr.Ref    { return t.Expr.Refs() }
func (t Formula) Defines() []expr.Ref { return emitted(t.As) }

// MarshalJSON implements json.Marshaler.
func (t Formula) MarshalJSON() ([]byte, error) {
	type plain Formula
	return marshalTyped(t.Type(), plain(t))
}

// Sequence generates rows start, start+step, ... below stop.
type Sequence struct {
	Start SignalRef     `json:"start"`
	Stop  SignalRef     `json:"stop"`
	Step  SignalRef     `json:"step"`
	As    symbols.Field `json:"as"`
}

func (t Sequence) Type() string { return TypeSequence }

func (t Sequence) Uses() []expr.Ref {
	out := t.Start.Expr.Refs()
	out = append(out, t.Stop.Expr.Refs()...)

	return append(out, t.Step.Expr.Refs()...)
}

func (t Sequence) Defines() []expr.Ref { return emitted(t.As) }

// MarshalJSON implements json.Marshaler.
func (t Sequence) MarshalJSON() ([]byte, error) {
	type plain Sequence
	return marshalTyped(t.Type(), plain(t))
}

// Aggregate groups rows and replaces them with one row per group. A nil
// entry in Fields marks an operation without an input field, such as count.
type Aggregate struct {
	Groupby []FieldRef      `json:"groupby"`
	Ops     []Op            `json:"ops"`
	Fields  []*FieldRef     `json:"fields"`
	As      []symbols.Field `json:"as"`
}

func (t Aggregate) Type() string        { return TypeAggregate }
func (t Aggregate) Uses() []expr.Ref    { return append(fieldRefs(t.Groupby...), opFields(t.Fields)...) }
func (t Aggregate) Defines() []expr.Ref { return emitted(t.As...) }

// MarshalJSON implements json.Marshaler.
func (t Aggregate) MarshalJSON() ([]byte, error) {
	type plain Aggregate
	return marshalTyped(t.Type(), plain(t))
}

// JoinAggregate annotates every row with aggregates of its group.
type JoinAggregate struct {
	Groupby []FieldRef      `json:"groupby"`
	Ops     []Op            `json:"ops"`
	Fields  []*FieldRef     `json:"fields"`
	As      []symbols.Field `json:"as"`
}

func (t JoinAggregate) Type() string        { return TypeJoinAggregate }
func (t JoinAggregate) Uses() []expr.Ref    { return append(fieldRefs(t.Groupby...), opFields(t.Fields)...) }
func (t JoinAggregate) Defines() []expr.Ref { return emitted(t.As...) }

// MarshalJSON implements json.Marshaler.
func (t JoinAggregate) MarshalJSON() ([]byte, error) {
	type plain JoinAggregate
	return marshalTyped(t.Type(), plain(t))
}

func opFields(fields []*FieldRef) []expr.Ref {
	var out []expr.Ref

	for _, f := range fields {
		if f != nil {
			out = append(out, fieldRefs(*f)...)
		}
	}

	return out
}

// Window computes ranked values over sorted partitions.
type Window struct {
	Groupby []FieldRef      `json:"groupby,omitempty"`
	Sort    *Compare        `json:"sort,omitempty"`
	Ops     []Op            `json:"ops"`
	As      []symbols.Field `json:"as"`
}

func (t Window) Type() string        { return TypeWindow }
func (t Window) Uses() []expr.Ref    { return append(fieldRefs(t.Groupby...), t.Sort.refs()...) }
func (t Window) Defines() []expr.Ref { return emitted(t.As...) }

// MarshalJSON implements json.Marshaler.
func (t Window) MarshalJSON() ([]byte, error) {
	type plain Window
	return marshalTyped(t.Type(), plain(t))
}

// Filter keeps the rows for which Expr is truthy.
type Filter struct {
	Expr expr.Expr `json:"expr"`
}

func (t Filter) Type() string        { return TypeFilter }
func (t Filter) Uses() []expr.Ref    { return t.Expr.Refs() }
func (t Filter) Defines() []expr.Ref { return nil }

// MarshalJSON implements json.Marshaler.
func (t Filter) MarshalJSON() ([]byte, error) {
	type plain Filter
	return marshalTyped(t.Type(), plain(t))
}

// Lookup joins rows of From whose Key equals Fields, copying Values into As.
// Rows without a match receive null.
type Lookup struct {
	From   symbols.Data    `json:"from"`
	Key    FieldRef        `json:"key"`
	Fields []FieldRef      `json:"fields"`
	Values []FieldRef      `json:"values"`
	As     []symbols.Field `json:"as"`
}

func (t Lookup) Type() string { return TypeLookup }

func (t Lookup) Uses() []expr.Ref {
	return append([]expr.Ref{{Kind: expr.RefData, Name: string(t.From)}}, fieldRefs(t.Fields...)...)
}

func (t Lookup) Defines() []expr.Ref { return emitted(t.As...) }

// MarshalJSON implements json.Marshaler.
func (t Lookup) MarshalJSON() ([]byte, error) {
	type plain Lookup
	return marshalTyped(t.Type(), plain(t))
}
