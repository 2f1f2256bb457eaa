package specs

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/fragment"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// facetPadding is the initial gap between facet cells, in pixels.
const facetPadding = 20

// LayoutSignals are the plot size signals and, when faceted, the facet grid
// signals. The plot is the whole view, or one facet cell.
func LayoutSignals(p *Params) []program.Signal {
	if !p.Faceted() {
		return []program.Signal{
			program.Derived(symbols.SignalPlotWidth, expr.Width),
			program.Derived(symbols.SignalPlotHeight, expr.Height),
		}
	}

	lang := p.View.Language
	cols := expr.Signal(symbols.SignalFacetColumns)
	rows := expr.Signal(symbols.SignalFacetRows)
	pad := expr.Signal(symbols.SignalFacetPadding)

	// cell size = (view - gaps) / cells
	cellSize := func(view, n expr.Expr) expr.Expr {
		return expr.Max(expr.Int(1), expr.Floor(view.Sub(n.Sub(expr.Int(1)).Mul(pad)).Div(n)))
	}

	return []program.Signal{
		program.Bound(symbols.SignalFacetColumns, p.facetColumns(),
			program.RangeBind(lang.FacetColumns, 1, float64(p.facetCount()), 1)),
		program.Derived(symbols.SignalFacetRows, expr.Ceil(expr.Int(p.facetCount()).Div(cols))),
		program.Bound(symbols.SignalFacetPadding, facetPadding, program.RangeBind(lang.FacetPadding, 0, 60, 1)),
		program.Derived(symbols.SignalPlotWidth, cellSize(expr.Width, cols)),
		program.Derived(symbols.SignalPlotHeight,
			cellSize(expr.Height, rows).Sub(expr.Signal(symbols.SignalTextTitleSize))),
	}
}

// SharedScales are the color and z scales, present when their role is bound.
func SharedScales(p *Params) []program.Scale {
	return fragment.Assemble(
		fragment.When(p.Columns.Color != nil, func() scaleItem { return fragment.One(colorScale(p)) }),
		fragment.When(p.Columns.Z != nil, func() scaleItem { return fragment.One(zScale(p)) }),
	)
}

func colorScale(p *Params) program.Scale {
	reverse := program.SignalNamed(symbols.SignalColorReverse)

	if p.CategoricalColor() {
		return program.Scale{
			Name:    symbols.ScaleColor,
			Type:    program.ScaleOrdinal,
			Domain:  program.DataDomain(symbols.DataLegend, program.Of(symbols.FieldTopColor), true),
			Range:   program.SchemeRange(p.View.Colors.CategoricalScheme, nil),
			Reverse: &reverse,
		}
	}

	count := program.SignalNamed(symbols.SignalColorBinCount)

	return program.Scale{
		Name:    symbols.ScaleColor,
		Type:    program.ScaleQuantize,
		Domain:  program.DataDomain(symbols.DataMain, program.Column(p.Columns.Color.Name), false),
		Range:   program.SchemeRange(p.View.Colors.Scheme, &count),
		Reverse: &reverse,
	}
}

func zScale(p *Params) program.Scale {
	return program.Scale{
		Name:   symbols.ScaleZ,
		Type:   program.ScaleLinear,
		Domain: program.DataDomain(symbols.DataMain, program.Column(p.Columns.Z.Name), false),
		Range:  program.ValuesRange(program.Number(0), program.SignalValue(expr.Signal(symbols.SignalZHeight))),
		Zero:   ptr(true),
	}
}

// FacetGroup wraps marks into a group mark repeated per facet value. Each
// cell reads its partition of source and carries a title with the value.
func FacetGroup(p *Params, source symbols.Data, marks []program.Mark) program.Mark {
	facet := p.Columns.Facet.Name
	titleSize := expr.Signal(symbols.SignalTextTitleSize)

	title := program.Mark{
		Type: program.MarkText,
		Encode: program.Encode{Update: program.Channels{
			X:        program.Rule(program.Sig(expr.Signal(symbols.SignalPlotWidth).Div(expr.Int(2)))),
			Y:        program.Rule(program.Sig(expr.Neg(titleSize).Div(expr.Int(4)))),
			Text:     program.Rule(program.Sig(expr.ParentField(facet))),
			FontSize: program.Rule(program.Sig(titleSize)),
			Align:    program.Rule(program.Val("center")),
			Baseline: program.Rule(program.Val("bottom")),
		}},
	}

	return program.Mark{
		Type: program.MarkGroup,
		Name: symbols.MarkFacetGroup,
		From: &program.From{Facet: &program.Facet{
			Name:    symbols.DataFacetCell,
			Data:    source,
			Groupby: []program.FieldRef{program.Column(facet)},
		}},
		Sort: program.SortBy(program.Ascending, program.Column(facet)),
		Encode: program.Encode{Update: program.Channels{
			Width:  program.Rule(program.Sig(expr.Signal(symbols.SignalPlotWidth))),
			Height: program.Rule(program.Sig(expr.Signal(symbols.SignalPlotHeight))),
		}},
		Marks: append([]program.Mark{title}, marks...),
	}
}

// Layout arranges the facet cells in a grid.
func Layout(p *Params) *program.Layout {
	if !p.Faceted() {
		return nil
	}

	return &program.Layout{
		Columns: program.SignalValue(expr.Signal(symbols.SignalFacetColumns)),
		Padding: program.SignalValue(expr.Signal(symbols.SignalFacetPadding)),
		Bounds:  "full",
		Align:   "all",
	}
}
