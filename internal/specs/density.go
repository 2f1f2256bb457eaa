package specs

import (
	"vizspec-compiler/internal/common"
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/fragment"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// density places every row as a unit square inside the cell of its x and y
// keys. Units of one cell are laid out on a square sub-grid, ordered by the
// sort and color fields.
type density struct{}

var densityBins = binSlider{value: 10, max: 160}

func densityAxes(p *Params) (axis, axis) {
	return xAxis(p, [2]symbols.Field{symbols.FieldDensityXBin0, symbols.FieldDensityXBin1}),
		yAxis(p, [2]symbols.Field{symbols.FieldDensityYBin0, symbols.FieldDensityYBin1})
}

func (density) RequiredRoles() []insight.Role { return []insight.Role{insight.RoleX, insight.RoleY} }
func (density) MarkSource() symbols.Data      { return symbols.DataAggregated }

func (density) Data(p *Params) []program.Data {
	x, y := densityAxes(p)
	cell := append([]program.FieldRef{x.key(), y.key()}, p.facetKeys()...)

	aggregated := program.Data{
		Name:   symbols.DataAggregated,
		Source: p.source(),
		Transform: []program.Transform{
			program.JoinAggregate{
				Groupby: cell,
				Ops:     []program.Op{program.OpCount},
				Fields:  []*program.FieldRef{nil},
				As:      []symbols.Field{symbols.FieldDensityCount},
			},
			program.Window{
				Groupby: cell,
				Sort:    p.unitSort(),
				Ops:     []program.Op{program.OpRowNumber},
				As:      []symbols.Field{symbols.FieldDensityRow},
			},
			program.Formula{Expr: densitySubRows, As: symbols.FieldDensitySubRows},
			program.Extent{Field: program.Of(symbols.FieldDensitySubRows), Signal: symbols.SignalDensitySubRowsExtent},
		},
	}

	return fragment.Assemble(
		fragment.One(program.Data{
			Name:      symbols.DataMain,
			Transform: nilIfEmpty(fragment.Assemble(x.binStages(), y.binStages())),
		}),
		x.sequence(),
		y.sequence(),
		legend(p),
		fragment.One(aggregated),
	)
}

func (density) Signals(p *Params) []program.Signal {
	x, y := densityAxes(p)

	extent := expr.Signal(symbols.SignalDensitySubRowsExtent)
	cellSize := expr.Signal(symbols.SignalDensityCellSize)
	side := expr.Signal(symbols.SignalDensitySide)

	return fragment.Assemble(
		textSignals(p),
		colorSignals(p),
		zSignals(p, false),
		x.binSignal(densityBins),
		y.binSignal(densityBins),
		paddingSignals(p, 0.1, 0.2),
		fragment.Many(
			program.Derived(symbols.SignalDensityCellSize,
				expr.Min(expr.Bandwidth(symbols.ScaleX), expr.Bandwidth(symbols.ScaleY))),
			program.Derived(symbols.SignalDensitySide,
				expr.Max(expr.Int(1), extent.Index(1))),
			program.Derived(symbols.SignalDensityUnitSize, cellSize.Div(side)),
		),
	)
}

func (density) Scales(p *Params) []program.Scale {
	x, y := densityAxes(p)

	return []program.Scale{
		x.bandScale(program.Number(0), plotWidth()),
		y.bandScale(plotHeight(), program.Number(0)),
		{
			Name:   symbols.ScaleSize,
			Type:   program.ScaleLinear,
			Domain: program.ValuesDomain(program.Number(0), program.SignalValue(expr.Signal(symbols.SignalDensitySide))),
			Range:  program.ValuesRange(program.Number(0), program.SignalValue(expr.Signal(symbols.SignalDensityCellSize))),
			Zero:   ptr(true),
		},
	}
}

// Sub-grid placement of a unit inside its cell. With count units in the
// cell, side = floor(sqrt(count)) units per sub-row; the unit with 1-based
// row number r sits at sub-column (r-1) % side and sub-row floor((r-1)/side).
// A cell holds ceil(count/side) sub-rows, never fewer than side, so the
// widest sub-row count over all cells bounds the size scale domain.
var (
	densitySide      = expr.Floor(expr.Sqrt(expr.Derived(symbols.FieldDensityCount)))
	densityIndex     = expr.Derived(symbols.FieldDensityRow).Sub(expr.Int(1))
	densitySubColumn = densityIndex.Mod(densitySide)
	densitySubRow    = expr.Floor(densityIndex.Div(densitySide))
	densitySubRows   = expr.Ceil(expr.Derived(symbols.FieldDensityCount).Div(densitySide))
)

// centered offsets the unit at step of n steps so the n steps are centered
// on the band center.
func centered(step, n expr.Expr) expr.Expr {
	return expr.Scale(symbols.ScaleSize, step).Sub(expr.Scale(symbols.ScaleSize, n.Sub(expr.Int(1))).Div(expr.Int(2)))
}

func (density) Marks(p *Params) []program.Mark {
	x, y := densityAxes(p)
	unit := program.Sig(expr.Signal(symbols.SignalDensityUnitSize))

	ch := program.Channels{
		Xc: program.Rule(program.Banded(symbols.ScaleX, x.key(), 0.5).
			WithOffset(program.Sig(centered(densitySubColumn, densitySide)))),
		Yc: program.Rule(program.Banded(symbols.ScaleY, y.key(), 0.5).
			WithOffset(program.Sig(centered(densitySubRow, expr.Derived(symbols.FieldDensitySubRows))))),
		Width:  program.Rule(unit),
		Height: program.Rule(unit),
		Fill:   fill(p),
	}
	depthChannels(p, &ch)

	return []program.Mark{{
		Type:   program.MarkRect,
		From:   &program.From{Data: p.cell(symbols.DataAggregated)},
		Sort:   program.SortBy(program.Ascending, x.key(), y.key()),
		Encode: program.Encode{Update: ch},
	}}
}

func nilIfEmpty[T any](s []T) []T {
	if common.IsEmpty(s) {
		return nil
	}

	return s
}
