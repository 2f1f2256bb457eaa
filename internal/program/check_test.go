package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

func binX() Transform {
	return Bin{
		Field:   Column("Price"),
		Extent:  SignalNamed(symbols.SignalXExtent),
		Maxbins: SignalNamed(symbols.SignalXBins),
		As:      [2]symbols.Field{symbols.FieldDensityXBin0, symbols.FieldDensityXBin1},
		Signal:  symbols.SignalXBinned,
	}
}

func validProgram() *Program {
	return &Program{
		Data: []Data{
			{Name: symbols.DataMain, Transform: []Transform{
				Extent{Field: Column("Price"), Signal: symbols.SignalXExtent},
				binX(),
			}},
			{Name: symbols.DataXAxis, Transform: []Transform{
				Sequence{
					Start: SignalOf(expr.Signal(symbols.SignalXBinned).Prop("start")),
					Stop:  SignalOf(expr.Signal(symbols.SignalXBinned).Prop("stop")),
					Step:  SignalOf(expr.Signal(symbols.SignalXBinned).Prop("step")),
					As:    symbols.FieldAxisValue,
				},
			}},
			{Name: symbols.DataAggregated, Source: symbols.DataMain, Transform: []Transform{
				JoinAggregate{
					Groupby: []FieldRef{Of(symbols.FieldDensityXBin0)},
					Ops:     []Op{OpCount},
					Fields:  []*FieldRef{nil},
					As:      []symbols.Field{symbols.FieldDensityCount},
				},
			}},
		},
		Signals: []Signal{
			Literal(symbols.SignalXBins, 10),
			Derived(symbols.SignalPlotWidth, expr.Width),
		},
		Scales: []Scale{{
			Name:   symbols.ScaleX,
			Type:   ScaleBand,
			Domain: DataDomain(symbols.DataXAxis, Of(symbols.FieldAxisValue), true),
			Range:  ValuesRange(Number(0), SignalValue(expr.Signal(symbols.SignalPlotWidth))),
		}},
		Marks: []Mark{{
			Type: MarkRect,
			From: &From{Data: symbols.DataAggregated},
			Encode: Encode{Update: Channels{
				Xc: Rule(Banded(symbols.ScaleX, Of(symbols.FieldDensityXBin0), 0.5)),
				Z:  Rule(Val(0).When(expr.Derived(symbols.FieldCollapsed))),
			}},
		}},
	}
}

func TestCheck_ValidProgram(t *testing.T) {
	t.Parallel()

	d := Check(validProgram(), []string{"Price"})
	require.NoError(t, d.Error())
}

func TestCheck_UnboundColumn(t *testing.T) {
	t.Parallel()

	d := Check(validProgram(), []string{"Cost"})
	assert.Equal(t, []string{CodeUndefinedField, CodeUndefinedField}, d.Codes())
}

func TestCheck_StageOutOfOrder(t *testing.T) {
	t.Parallel()

	p := validProgram()
	main := p.Data[0].Transform
	p.Data[0].Transform = []Transform{main[1], main[0]}

	d := Check(p, []string{"Price"})
	require.Equal(t, []string{CodeOutOfOrder}, d.Codes())
	assert.Equal(t, []string{"move transform[1] before transform[0]"}, d.Errors[0].Suggestions)
	assert.Equal(t, "data[0] transform[0] (bin)", d.Errors[0].Fragment)
	assert.Equal(t, "RoleX_ExtentSignal", d.Errors[0].Symbol)
}

func TestCheck_DatasetOutOfOrder(t *testing.T) {
	t.Parallel()

	p := validProgram()
	p.Data[0], p.Data[1] = p.Data[1], p.Data[0]

	d := Check(p, []string{"Price"})
	assert.Equal(t, []string{CodeOutOfOrder, CodeOutOfOrder, CodeOutOfOrder, CodeDataOrder}, d.Codes())

	last := d.Errors[len(d.Errors)-1]
	assert.Equal(t, []string{"reorder as: data_source, data_xaxis, data_aggregated"}, last.Suggestions)
}

func TestCheck_Duplicates(t *testing.T) {
	t.Parallel()

	p := validProgram()
	p.Signals = append(p.Signals, Literal(symbols.SignalXBins, 20), Literal(symbols.SignalXExtent, nil))
	p.Scales = append(p.Scales, p.Scales[0])
	p.Data[2].Transform = append(p.Data[2].Transform,
		Formula{Expr: expr.Int(1), As: symbols.FieldDensityCount})

	d := Check(p, []string{"Price"})
	assert.Equal(t, []string{
		CodeDuplicateSignal,
		CodeDuplicateSignal,
		CodeDuplicateScale,
		CodeDuplicateField,
	}, d.Codes())
}

func TestCheck_UnregisteredNames(t *testing.T) {
	t.Parallel()

	p := validProgram()
	p.Signals = append(p.Signals, Literal("MySignal", 1))
	p.Data[2].Transform = append(p.Data[2].Transform, Formula{Expr: expr.Int(1), As: "row"})

	d := Check(p, []string{"Price"})
	assert.Equal(t, []string{CodeUnregisteredSignal, CodeUnregisteredField}, d.Codes())

	p = validProgram()
	p.Marks[0].Name = "cells"
	d = Check(p, []string{"Price"})
	require.Equal(t, []string{CodeUnregisteredMark}, d.Codes())
	assert.Equal(t, "marks[0] (rect)", d.Errors[0].Fragment)

	p.Marks[0].Name = symbols.MarkFacetGroup
	require.NoError(t, Check(p, []string{"Price"}).Error())
}

func TestCheck_UndefinedReferences(t *testing.T) {
	t.Parallel()

	p := validProgram()
	p.Signals = append(p.Signals, Derived(symbols.SignalZHeight, expr.Signal(symbols.SignalZProportion)))
	p.Marks[0].Encode.Update.Fill = Rule(Scaled(symbols.ScaleColor, Column("Price")))
	p.Marks[0].From.Data = symbols.DataLegend

	d := Check(p, []string{"Price"})
	assert.Equal(t, []string{
		CodeUndefinedSignal,
		CodeUndefinedData,
		CodeUndefinedScale,
	}, d.Codes())
}

func TestCheck_FacetScope(t *testing.T) {
	t.Parallel()

	p := validProgram()
	p.Marks = []Mark{{
		Type: MarkGroup,
		From: &From{Facet: &Facet{Name: symbols.DataFacetCell, Data: symbols.DataAggregated, Groupby: []FieldRef{Column("Price")}}},
		Encode: Encode{Update: Channels{
			Width: Rule(Sig(expr.Signal(symbols.SignalPlotWidth))),
		}},
		Marks: []Mark{
			{
				Type:   MarkRect,
				From:   &From{Data: symbols.DataFacetCell},
				Encode: Encode{Update: Channels{Xc: Rule(Banded(symbols.ScaleX, Of(symbols.FieldDensityXBin0), 0.5))}},
			},
			{
				Type:   MarkText,
				Encode: Encode{Update: Channels{Text: Rule(Sig(expr.ParentField("Price")))}},
			},
		},
	}}

	require.NoError(t, Check(p, []string{"Price"}).Error())

	p.Marks[0].Marks[1].Encode.Update.Text = Rule(Sig(expr.ParentField("Region")))
	d := Check(p, []string{"Price"})
	require.Equal(t, []string{CodeUndefinedField}, d.Codes())
	assert.Equal(t, "marks[0] marks[1] (text) text", d.Errors[0].Fragment)
}

func TestCheck_LookupSide(t *testing.T) {
	t.Parallel()

	p := &Program{
		Data: []Data{
			{Name: symbols.DataMain},
			{Name: symbols.DataTopLookup, Source: symbols.DataMain, Transform: []Transform{
				Aggregate{
					Groupby: []FieldRef{Column("Region")},
					Ops:     []Op{OpCount},
					Fields:  []*FieldRef{nil},
					As:      []symbols.Field{symbols.FieldTopCount},
				},
			}},
			{Name: symbols.DataLegend, Source: symbols.DataMain, Transform: []Transform{
				Lookup{
					From:   symbols.DataTopLookup,
					Key:    Column("Region"),
					Fields: []FieldRef{Column("Region")},
					Values: []FieldRef{Column("Price")},
					As:     []symbols.Field{symbols.FieldTopValue},
				},
			}},
		},
	}

	d := Check(p, []string{"Region", "Price"})
	require.Equal(t, []string{CodeUndefinedField}, d.Codes())
	assert.Equal(t, "Price", d.Errors[0].Symbol)
}
