package specs

import (
	"math"

	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// Params are the inputs of one build.
type Params struct {
	Insight insight.Insight
	Columns insight.SpecColumns
	View    insight.ViewOptions
}

// CategoricalColor reports whether the color role is bound to a
// categorical column. Such charts color through the legend dataset.
func (p *Params) CategoricalColor() bool {
	return p.Columns.Color.Categorical()
}

// Faceted reports whether the chart is split into facet cells.
func (p *Params) Faceted() bool {
	return p.Columns.Facet != nil
}

// source is the dataset aggregating stages read from.
func (p *Params) source() symbols.Data {
	if p.CategoricalColor() {
		return symbols.DataLegend
	}

	return symbols.DataMain
}

// cell is the dataset marks read: the facet partition when faceted.
func (p *Params) cell(d symbols.Data) symbols.Data {
	if p.Faceted() {
		return symbols.DataFacetCell
	}

	return d
}

// colorField is the field the color scale is applied to.
func (p *Params) colorField() program.FieldRef {
	if p.CategoricalColor() {
		return program.Of(symbols.FieldTopColor)
	}

	return program.Column(p.Columns.Color.Name)
}

// facetKeys returns the facet column as an extra grouping key.
func (p *Params) facetKeys() []program.FieldRef {
	if !p.Faceted() {
		return nil
	}

	return []program.FieldRef{program.Column(p.Columns.Facet.Name)}
}

// sortKeys are the fields that order units inside a group: the sort column,
// then the color field.
func (p *Params) sortKeys() []program.FieldRef {
	var keys []program.FieldRef

	if p.Columns.Sort != nil {
		keys = append(keys, program.Column(p.Columns.Sort.Name))
	}

	if p.Columns.Color != nil {
		keys = append(keys, p.colorField())
	}

	return keys
}

func (p *Params) unitSort() *program.Compare {
	keys := p.sortKeys()
	if len(keys) == 0 {
		return nil
	}

	return program.SortBy(program.Ascending, keys...)
}

// facetCount is the number of facet cells, at least 1.
func (p *Params) facetCount() int {
	if !p.Faceted() {
		return 1
	}

	return max(1, p.Columns.Facet.Stats.DistinctValueCount)
}

// facetColumns is the initial number of facet grid columns.
func (p *Params) facetColumns() int {
	if f := p.Insight.Facet; f != nil && f.Columns > 0 {
		return min(f.Columns, p.facetCount())
	}

	return int(math.Ceil(math.Sqrt(float64(p.facetCount()))))
}
