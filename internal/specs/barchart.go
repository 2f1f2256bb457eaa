package specs

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/fragment"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// barChart stacks the units of each x key into a bar. A bar is BarColumns
// units wide and grows upwards one row at a time; the column count is chosen
// so the tallest bar fits the plot height.
type barChart struct{}

var barBins = binSlider{value: 10, max: 160}

func barAxis(p *Params) axis {
	return xAxis(p, [2]symbols.Field{symbols.FieldBarBin0, symbols.FieldBarBin1})
}

func (barChart) RequiredRoles() []insight.Role { return []insight.Role{insight.RoleX} }
func (barChart) MarkSource() symbols.Data      { return symbols.DataBarStack }

// stackStages bin a quantitative x, then stack the units of each bar and
// publish the tallest stack.
func (barChart) stackStages(p *Params) []program.Transform {
	x := barAxis(p)

	groupby := []program.FieldRef{x.key()}
	if p.Columns.Group != nil {
		groupby = append(groupby, program.Column(p.Columns.Group.Name))
	}

	groupby = append(groupby, p.facetKeys()...)

	stack := program.Stack{
		Groupby: groupby,
		Sort:    p.unitSort(),
		As:      [2]symbols.Field{symbols.FieldBarStack0, symbols.FieldBarStack1},
	}

	start := expr.Derived(symbols.FieldBarStack0)
	columns := expr.Signal(symbols.SignalBarColumns)

	return fragment.Assemble(
		x.binStages(),
		stages(
			stack,
			program.Extent{Field: program.Of(symbols.FieldBarStack1), Signal: symbols.SignalBarStackExtent},
			program.Formula{Expr: start.Mod(columns), As: symbols.FieldBarColumn},
			program.Formula{Expr: expr.Floor(start.Div(columns)), As: symbols.FieldBarRow},
		),
	)
}

func (b barChart) Data(p *Params) []program.Data {
	x := barAxis(p)

	return fragment.Assemble(
		fragment.One(program.Data{Name: symbols.DataMain}),
		legend(p),
		fragment.One(program.Data{
			Name:      symbols.DataBarStack,
			Source:    p.source(),
			Transform: b.stackStages(p),
		}),
		x.sequence(),
	)
}

func (barChart) Signals(p *Params) []program.Signal {
	x := barAxis(p)

	sig := expr.Signal
	bandwidth := expr.Bandwidth(symbols.ScaleX)
	tallest := sig(symbols.SignalBarStackExtent).Index(1)

	return fragment.Assemble(
		textSignals(p),
		colorSignals(p),
		zSignals(p, false),
		x.binSignal(barBins),
		paddingSignals(p, 0.1, 0.2),
		fragment.Many(
			program.Derived(symbols.SignalBarColumns, expr.Max(expr.Int(1),
				expr.Ceil(expr.Sqrt(tallest.Mul(bandwidth).Div(sig(symbols.SignalPlotHeight)))))),
			program.Derived(symbols.SignalBarUnitSize, bandwidth.Div(sig(symbols.SignalBarColumns))),
		),
	)
}

func (barChart) Scales(p *Params) []program.Scale {
	return []program.Scale{barAxis(p).bandScale(program.Number(0), plotWidth())}
}

func (barChart) Marks(p *Params) []program.Mark {
	x := barAxis(p)

	unitSize := expr.Signal(symbols.SignalBarUnitSize)
	unit := program.Sig(unitSize)

	ch := program.Channels{
		X: program.Rule(program.Scaled(symbols.ScaleX, x.key()).
			WithOffset(program.Sig(expr.Derived(symbols.FieldBarColumn).Mul(unitSize)))),
		Y: program.Rule(program.Sig(expr.Signal(symbols.SignalPlotHeight).
			Sub(expr.Derived(symbols.FieldBarRow).Add(expr.Int(1)).Mul(unitSize)))),
		Width:  program.Rule(unit),
		Height: program.Rule(unit),
		Fill:   fill(p),
	}
	depthChannels(p, &ch)

	return []program.Mark{{
		Type:   program.MarkRect,
		From:   &program.From{Data: p.cell(symbols.DataBarStack)},
		Encode: program.Encode{Update: ch},
	}}
}
