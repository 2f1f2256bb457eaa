package program

import (
	"vizspec-compiler/internal/symbols"
)

// ScaleType is the kind of a scale.
type ScaleType string

const (
	ScaleLinear   ScaleType = "linear"
	ScaleBand     ScaleType = "band"
	ScaleOrdinal  ScaleType = "ordinal"
	ScaleQuantize ScaleType = "quantize"
)

// Scale maps a data domain to a visual range.
type Scale struct {
	Name         symbols.Scale `json:"name"`
	Type         ScaleType     `json:"type"`
	Domain       Domain        `json:"domain"`
	Range        Range         `json:"range"`
	Reverse      *SignalRef    `json:"reverse,omitempty"`
	PaddingInner *SignalRef    `json:"paddingInner,omitempty"`
	PaddingOuter *SignalRef    `json:"paddingOuter,omitempty"`
	Zero         *bool         `json:"zero,omitempty"`
}

// Domain is either a field of a dataset or a list of values.
type Domain struct {
	Data   symbols.Data
	Field  FieldRef
	Sort   bool
	Values []Value
}

// DataDomain reads the domain from a dataset field.
func DataDomain(data symbols.Data, field FieldRef, sorted bool) Domain {
	return Domain{Data: data, Field: field, Sort: sorted}
}

// ValuesDomain is an explicit domain.
func ValuesDomain(values ...Value) Domain {
	return Domain{Values: values}
}

// MarshalJSON implements json.Marshaler.
func (d Domain) MarshalJSON() ([]byte, error) {
	if d.Data == "" {
		return encodeJSON(valuesOrEmpty(d.Values), "")
	}

	return encodeJSON(struct {
		Data  symbols.Data `json:"data"`
		Field FieldRef     `json:"field"`
		Sort  bool         `json:"sort,omitempty"`
	}{d.Data, d.Field, d.Sort}, "")
}

// Range is either a named color scheme or a list of values.
type Range struct {
	Scheme string
	Count  *SignalRef
	Values []Value
}

// SchemeRange is a color scheme range, optionally quantized to count colors.
func SchemeRange(scheme string, count *SignalRef) Range {
	return Range{Scheme: scheme, Count: count}
}

// ValuesRange is an explicit range.
func ValuesRange(values ...Value) Range {
	return Range{Values: values}
}

// MarshalJSON implements json.Marshaler.
func (r Range) MarshalJSON() ([]byte, error) {
	if r.Scheme == "" {
		return encodeJSON(valuesOrEmpty(r.Values), "")
	}

	return encodeJSON(struct {
		Scheme string     `json:"scheme"`
		Count  *SignalRef `json:"count,omitempty"`
	}{r.Scheme, r.Count}, "")
}

func valuesOrEmpty(values []Value) []Value {
	if values == nil {
		return []Value{}
	}

	return values
}
