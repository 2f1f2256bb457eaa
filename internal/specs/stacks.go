package specs

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/fragment"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// stacks piles the units of each x/y cell into a 3-D column: a sub-grid of
// XGridSize by YGridSize units per layer, layers stacked upwards. Stacks are
// always three dimensional and take their height from the z proportion, so
// the z role is not used.
type stacks struct{}

var stacksBins = binSlider{value: 30, max: 60}

func stacksAxes(p *Params) (axis, axis) {
	return xAxis(p, [2]symbols.Field{symbols.FieldStacksLongBin0, symbols.FieldStacksLongBin1}),
		yAxis(p, [2]symbols.Field{symbols.FieldStacksLatBin0, symbols.FieldStacksLatBin1})
}

func (stacks) RequiredRoles() []insight.Role { return []insight.Role{insight.RoleX, insight.RoleY} }
func (stacks) MarkSource() symbols.Data      { return symbols.DataStackedGroup }

func (stacks) Data(p *Params) []program.Data {
	x, y := stacksAxes(p)

	start := expr.Derived(symbols.FieldStacksStart)
	columns := expr.Signal(symbols.SignalStacksColumns)
	xGrid := expr.Signal(symbols.SignalStacksXGridSize)

	var sort *program.Compare
	if p.Columns.Sort != nil {
		sort = program.SortBy(program.Ascending, program.Column(p.Columns.Sort.Name))
	}

	grouped := program.Data{
		Name:   symbols.DataStackedGroup,
		Source: p.source(),
		Transform: []program.Transform{
			program.Stack{
				Groupby: append([]program.FieldRef{y.key(), x.key()}, p.facetKeys()...),
				Sort:    sort,
				As:      [2]symbols.Field{symbols.FieldStacksStart, symbols.FieldStacksEnd},
			},
			program.Extent{Field: program.Of(symbols.FieldStacksStart), Signal: symbols.SignalStacksExtent},
			program.Formula{Expr: expr.Floor(start.Div(columns)), As: symbols.FieldStacksRow},
			program.Formula{Expr: start.Mod(xGrid), As: symbols.FieldStacksColumn},
			program.Formula{Expr: expr.Floor(start.Mod(columns).Div(xGrid)), As: symbols.FieldStacksDepth},
			program.Extent{Field: program.Of(symbols.FieldStacksRow), Signal: symbols.SignalStacksRowExtent},
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
		fragment.One(grouped),
	)
}

func (stacks) Signals(p *Params) []program.Signal {
	x, y := stacksAxes(p)
	lang := p.View.Language

	sig := expr.Signal
	inner := sig(symbols.SignalInnerPadding)
	unit := sig(symbols.SignalStacksUnitSize)

	// band size of one sub-grid unit: the band split into grid+padding
	// slots, minus the inner padding share.
	bandSize := func(s symbols.Scale, grid symbols.Signal) expr.Expr {
		return expr.Bandwidth(s).Div(sig(grid).Add(inner)).Mul(expr.Int(1).Sub(inner))
	}

	return fragment.Assemble(
		textSignals(p),
		colorSignals(p),
		zSignals(p, true),
		fragment.Many(
			program.Bound(symbols.SignalStacksXGridSize, 3, program.RangeBind(lang.XGridSize, 1, 20, 1)),
			program.Bound(symbols.SignalStacksYGridSize, 3, program.RangeBind(lang.YGridSize, 1, 20, 1)),
		),
		x.binSignal(stacksBins),
		y.binSignal(stacksBins),
		paddingSignals(p, 0.1, 0.2),
		fragment.Many(
			program.Derived(symbols.SignalStacksColumns,
				sig(symbols.SignalStacksXGridSize).Mul(sig(symbols.SignalStacksYGridSize))),
			program.Derived(symbols.SignalStacksXBandSize, bandSize(symbols.ScaleX, symbols.SignalStacksXGridSize)),
			program.Derived(symbols.SignalStacksYBandSize, bandSize(symbols.ScaleY, symbols.SignalStacksYGridSize)),
			program.Derived(symbols.SignalStacksUnitSize,
				expr.Min(sig(symbols.SignalStacksXBandSize), sig(symbols.SignalStacksYBandSize))),
			program.Derived(symbols.SignalStacksUnitHeight,
				unit.Mul(sig(symbols.SignalZProportion)).Div(expr.Num(defaultZProportion))),
			program.Derived(symbols.SignalStacksCountHeight,
				sig(symbols.SignalStacksRowExtent).Index(1).Add(expr.Int(1)).Mul(sig(symbols.SignalStacksUnitHeight))),
		),
	)
}

func (stacks) Scales(p *Params) []program.Scale {
	x, y := stacksAxes(p)

	return []program.Scale{
		x.bandScale(program.Number(0), plotWidth()),
		y.bandScale(plotHeight(), program.Number(0)),
	}
}

func (stacks) Marks(p *Params) []program.Mark {
	x, y := stacksAxes(p)

	sig := expr.Signal
	unit := program.Sig(sig(symbols.SignalStacksUnitSize))
	unitHeight := sig(symbols.SignalStacksUnitHeight)

	ch := program.Channels{
		X: program.Rule(program.Scaled(symbols.ScaleX, x.key()).WithOffset(program.Sig(
			expr.Derived(symbols.FieldStacksColumn).Mul(sig(symbols.SignalStacksXBandSize))))),
		Y: program.Rule(program.Scaled(symbols.ScaleY, y.key()).WithOffset(program.Sig(
			expr.Derived(symbols.FieldStacksDepth).Mul(sig(symbols.SignalStacksYBandSize))))),
		Z:      zeroIfCollapsed(program.Sig(expr.Derived(symbols.FieldStacksRow).Mul(unitHeight))),
		Width:  program.Rule(unit),
		Height: program.Rule(unit),
		Depth:  zeroIfCollapsed(program.Sig(unitHeight)),
		Fill:   fill(p),
	}

	return []program.Mark{{
		Type:   program.MarkRect,
		From:   &program.From{Data: p.cell(symbols.DataStackedGroup)},
		Encode: program.Encode{Update: ch},
	}}
}
