package specs

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/fragment"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

type (
	dataItem      = fragment.Item[program.Data]
	signalItem    = fragment.Item[program.Signal]
	scaleItem     = fragment.Item[program.Scale]
	transformItem = fragment.Item[program.Transform]
)

func stages(ts ...program.Transform) transformItem { return fragment.Many(ts...) }

// defaultZProportion is the z proportion at which a stacked unit is a cube.
const defaultZProportion = 0.6

// binSlider configures the bin count signal of an axis.
type binSlider struct {
	value, max float64
}

// axis describes a positional role and the symbols its stages emit.
type axis struct {
	col    *insight.Column
	bins   symbols.Signal
	extent symbols.Signal
	binned symbols.Signal
	as     [2]symbols.Field
	data   symbols.Data
	scale  symbols.Scale
	label  string
}

func xAxis(p *Params, as [2]symbols.Field) axis {
	return axis{
		col:    p.Columns.X,
		bins:   symbols.SignalXBins,
		extent: symbols.SignalXExtent,
		binned: symbols.SignalXBinned,
		as:     as,
		data:   symbols.DataXAxis,
		scale:  symbols.ScaleX,
		label:  p.View.Language.XBinSize,
	}
}

func yAxis(p *Params, as [2]symbols.Field) axis {
	return axis{
		col:    p.Columns.Y,
		bins:   symbols.SignalYBins,
		extent: symbols.SignalYExtent,
		binned: symbols.SignalYBinned,
		as:     as,
		data:   symbols.DataYAxis,
		scale:  symbols.ScaleY,
		label:  p.View.Language.YBinSize,
	}
}

func (a axis) quantitative() bool {
	return a.col != nil && a.col.Quantitative
}

// key is the field units of this axis are grouped and positioned by: the
// bin start when the column is binned, the raw column otherwise.
func (a axis) key() program.FieldRef {
	if a.quantitative() {
		return program.Of(a.as[0])
	}

	return program.Column(a.col.Name)
}

// binStages are the extent and bin stages of a quantitative axis.
func (a axis) binStages() transformItem {
	if !a.quantitative() {
		return fragment.None[program.Transform]()
	}

	return stages(a.extentStage(), a.binStage())
}

func (a axis) extentStage() program.Transform {
	return program.Extent{Field: program.Column(a.col.Name), Signal: a.extent}
}

func (a axis) binStage() program.Transform {
	return program.Bin{
		Field:   program.Column(a.col.Name),
		Extent:  program.SignalNamed(a.extent),
		Maxbins: program.SignalNamed(a.bins),
		As:      a.as,
		Signal:  a.binned,
	}
}

// sequence is the dataset enumerating every bin start, so empty bins still
// get a band.
func (a axis) sequence() dataItem {
	if !a.quantitative() {
		return fragment.None[program.Data]()
	}

	binned := expr.Signal(a.binned)

	return fragment.One(program.Data{
		Name: a.data,
		Transform: []program.Transform{program.Sequence{
			Start: program.SignalOf(binned.Prop("start")),
			Stop:  program.SignalOf(binned.Prop("stop")),
			Step:  program.SignalOf(binned.Prop("step")),
			As:    symbols.FieldAxisValue,
		}},
	})
}

// binSignal is the bin count slider, only offered for a quantitative axis.
func (a axis) binSignal(s binSlider) signalItem {
	if !a.quantitative() {
		return fragment.None[program.Signal]()
	}

	return fragment.One(program.Bound(a.bins, s.value, program.RangeBind(a.label, 1, s.max, 1)))
}

// bandScale maps the axis keys onto bands spanning lo..hi.
func (a axis) bandScale(lo, hi program.Value) program.Scale {
	domain := program.DataDomain(symbols.DataMain, program.Column(a.col.Name), true)
	if a.quantitative() {
		domain = program.DataDomain(a.data, program.Of(symbols.FieldAxisValue), true)
	}

	return program.Scale{
		Name:         a.scale,
		Type:         program.ScaleBand,
		Domain:       domain,
		Range:        program.ValuesRange(lo, hi),
		PaddingInner: ptr(program.SignalNamed(symbols.SignalInnerPadding)),
		PaddingOuter: ptr(program.SignalNamed(symbols.SignalOuterPadding)),
	}
}

func ptr[T any](v T) *T { return &v }

func plotWidth() program.Value  { return program.SignalValue(expr.Signal(symbols.SignalPlotWidth)) }
func plotHeight() program.Value { return program.SignalValue(expr.Signal(symbols.SignalPlotHeight)) }

// legend returns the category lookup datasets when color is categorical.
func legend(p *Params) dataItem {
	return fragment.When(p.CategoricalColor(), func() dataItem {
		return fragment.Seq(TopLookup(p.Columns.Color.Name, p.View.LegendLimit(p.Insight), p.View.Language.LegendOther))
	})
}

// paddingSignals are the band padding sliders.
func paddingSignals(p *Params, inner, outer float64) signalItem {
	lang := p.View.Language

	return fragment.Many(
		program.Bound(symbols.SignalInnerPadding, inner, program.RangeBind(lang.InnerPaddingSize, 0.1, 0.6, 0.1)),
		program.Bound(symbols.SignalOuterPadding, outer, program.RangeBind(lang.OuterPaddingSize, 0.1, 0.6, 0.1)),
	)
}

// textSignals size and rotate axis and title text.
func textSignals(p *Params) signalItem {
	lang := p.View.Language
	scale := expr.Signal(symbols.SignalTextScale)

	return fragment.Many(
		program.Bound(symbols.SignalTextScale, 1.2, program.RangeBind(lang.TextScale, 0.5, 5, 0.1)),
		program.Derived(symbols.SignalTextSize, scale.Mul(expr.Int(10))),
		program.Derived(symbols.SignalTextTitleSize, scale.Mul(expr.Int(15))),
		program.Bound(symbols.SignalTextAngleX, 30, program.RangeBind(lang.TextAngleX, 0, 90, 1)),
		program.Bound(symbols.SignalTextAngleY, 0, program.RangeBind(lang.TextAngleY, -90, 0, 1)),
	)
}

// colorSignals control the color scale when the color role is bound.
func colorSignals(p *Params) signalItem {
	if p.Columns.Color == nil {
		return fragment.None[program.Signal]()
	}

	lang := p.View.Language
	reverse := program.Bound(symbols.SignalColorReverse, p.View.Colors.Reverse, program.CheckboxBind(lang.ColorReverse))

	if p.CategoricalColor() {
		return fragment.One(reverse)
	}

	count := max(1, p.View.Colors.BinCount)

	return fragment.Many(
		program.Bound(symbols.SignalColorBinCount, count, program.RangeBind(lang.ColorBinCount, 1, 20, 1)),
		reverse,
	)
}

// zSignals scale the height of units. ZHeight exists only when the z role
// is bound; stacks use the proportion for their unit height.
func zSignals(p *Params, proportion bool) signalItem {
	withZ := p.Columns.Z != nil
	zp := program.Bound(symbols.SignalZProportion, defaultZProportion,
		program.RangeBind(p.View.Language.ZProportion, 0.2, 2, 0.1))

	return fragment.Seq(fragment.Assemble(
		fragment.If(proportion || withZ, fragment.One(zp)),
		fragment.If(withZ, fragment.One(program.Derived(symbols.SignalZHeight,
			expr.Signal(symbols.SignalPlotHeight).Mul(expr.Signal(symbols.SignalZProportion))))),
	))
}

// fill colors a unit through the color scale, or with the default color.
func fill(p *Params) program.Production {
	if p.Columns.Color == nil {
		return program.Rule(program.Val(p.View.Colors.Default))
	}

	return program.Rule(program.Scaled(symbols.ScaleColor, p.colorField()))
}

// zeroIfCollapsed guards rule so collapsed units have no height.
func zeroIfCollapsed(rule program.ValueRef) program.Production {
	return program.Production{
		program.Val(0).When(expr.Derived(symbols.FieldCollapsed)),
		rule,
	}
}

// depthChannels set z and depth when the z role is bound.
func depthChannels(p *Params, ch *program.Channels) {
	if p.Columns.Z == nil {
		return
	}

	ch.Z = program.Rule(program.Val(0))
	ch.Depth = zeroIfCollapsed(program.Scaled(symbols.ScaleZ, program.Column(p.Columns.Z.Name)))
}
