package preview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizspec-compiler/internal/compile"
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/specs"
	"vizspec-compiler/internal/symbols"
)

func lookupProgram(maxEntries int) *program.Program {
	return &program.Program{
		Data: append([]program.Data{{Name: symbols.DataMain}}, specs.TopLookup("Region", maxEntries, "Other")...),
	}
}

func regionRows(values ...string) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{"Region": v}
	}

	return rows
}

func topColors(t *testing.T, res *Result) []any {
	t.Helper()

	var out []any
	for _, r := range res.Rows(symbols.DataLegend) {
		out = append(out, r[string(symbols.FieldTopColor)])
	}

	return out
}

func TestTopLookup_FewerValuesThanLimit(t *testing.T) {
	t.Parallel()

	rows := regionRows("east", "west", "east", "north")

	res, err := Run(lookupProgram(5), rows, Options{})
	require.NoError(t, err)

	assert.Len(t, res.Rows(symbols.DataTopLookup), 3)
	assert.Equal(t, []any{"east", "west", "east", "north"}, topColors(t, res))
	assert.NotContains(t, rows[0], string(symbols.FieldTopColor), "input rows are not modified")
}

func TestTopLookup_KeepsMostFrequentFirstSeenOnTies(t *testing.T) {
	t.Parallel()

	rows := regionRows(
		"c05", "c00", "c05", "c01", "c05", "c02", "c03", "c04",
		"c06", "c07", "c08", "c09", "c10", "c11", "c00",
	)

	res, err := Run(lookupProgram(5), rows, Options{})
	require.NoError(t, err)

	var ranked []any
	for _, r := range res.Rows(symbols.DataTopLookup) {
		ranked = append(ranked, r["Region"])
	}

	assert.Equal(t, []any{"c05", "c00", "c01", "c02", "c03"}, ranked)

	assert.Equal(t, []any{
		"c05", "c00", "c05", "c01", "c05", "c02", "c03", "Other",
		"Other", "Other", "Other", "Other", "Other", "Other", "c00",
	}, topColors(t, res))

	again, err := Run(lookupProgram(5), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestBins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lo, hi  float64
		maxbins float64
		nice    bool
		want    bins
	}{
		{name: "decimal", lo: 0, hi: 100, maxbins: 10, want: bins{start: 0, stop: 100, step: 10}},
		{name: "nice widens", lo: 3, hi: 97, maxbins: 10, nice: true, want: bins{start: 0, stop: 100, step: 10}},
		{name: "exact keeps extent", lo: 3, hi: 97, maxbins: 10, want: bins{start: 3, stop: 97, step: 10}},
		{name: "single value", lo: 5, hi: 5, maxbins: 10, want: bins{start: 5, stop: 5.5, step: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, newBins(tt.lo, tt.hi, tt.maxbins, tt.nice))
		})
	}

	b := bins{start: 0, stop: 100, step: 10}
	assert.InDelta(t, 30.0, b.index(35), 0)
	assert.InDelta(t, 90.0, b.index(100), 0)
	assert.True(t, math.IsInf(b.index(-1), -1))
	assert.True(t, math.IsInf(b.index(101), 1))
}

func densityRows() []Row {
	var rows []Row

	for i := range 40 {
		rows = append(rows, Row{
			"Price":  float64(i % 7 * 10),
			"Profit": float64(i%3) - 1,
			"Region": []string{"east", "west", "north"}[i%3],
		})
	}

	return rows
}

func TestRun_DensityPipeline(t *testing.T) {
	t.Parallel()

	cols := insight.SpecColumns{
		X:     &insight.Column{Name: "Price", Quantitative: true},
		Y:     &insight.Column{Name: "Profit", Quantitative: true},
		Color: &insight.Column{Name: "Region"},
	}

	p, err := compile.Compile(insight.Insight{Chart: insight.ChartDensity}, cols, insight.DefaultViewOptions())
	require.NoError(t, err)

	res, err := Run(p, densityRows(), Options{})
	require.NoError(t, err)

	agg := res.Rows(symbols.DataAggregated)
	require.Len(t, agg, 40)

	seen := map[[3]any]bool{}

	for _, r := range agg {
		count := r[string(symbols.FieldDensityCount)].(float64)
		row := r[string(symbols.FieldDensityRow)].(float64)

		assert.GreaterOrEqual(t, row, 1.0)
		assert.LessOrEqual(t, row, count)

		key := [3]any{r[string(symbols.FieldDensityXBin0)], r[string(symbols.FieldDensityYBin0)], row}
		assert.False(t, seen[key], "row numbers are unique within a cell")
		seen[key] = true
	}

	binned, ok := res.Signal(symbols.SignalXBinned)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"start": 0.0, "stop": 60.0, "step": 10.0}, binned)
	assert.Len(t, res.Rows(symbols.DataXAxis), 6)
}

func TestRun_BarChartPipeline(t *testing.T) {
	t.Parallel()

	cols := insight.SpecColumns{X: &insight.Column{Name: "Price", Quantitative: true}}

	p, err := compile.Compile(insight.Insight{Chart: insight.ChartBarChart}, cols, insight.DefaultViewOptions())
	require.NoError(t, err)

	res, err := Run(p, densityRows(), Options{Bandwidths: map[symbols.Scale]float64{symbols.ScaleX: 60}})
	require.NoError(t, err)

	columns, ok := res.Signal(symbols.SignalBarColumns)
	require.True(t, ok)

	// the 50 bin also holds the 60 values: ceil(sqrt(10 * 60 / 600)) = 1
	assert.InDelta(t, 1.0, columns, 0)

	for _, r := range res.Rows(symbols.DataBarStack) {
		start := r[string(symbols.FieldBarStack0)].(float64)
		assert.InDelta(t, 0.0, r[string(symbols.FieldBarColumn)], 0)
		assert.InDelta(t, start, r[string(symbols.FieldBarRow)], 0)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()

		p := &program.Program{Data: []program.Data{{Name: symbols.DataLegend, Source: symbols.DataMain}}}
		_, err := Run(p, nil, Options{})
		require.ErrorContains(t, err, "has not been computed")
	})

	t.Run("zero step sequence", func(t *testing.T) {
		t.Parallel()

		p := &program.Program{Data: []program.Data{{
			Name: symbols.DataXAxis,
			Transform: []program.Transform{program.Sequence{
				Start: program.SignalNamed(symbols.SignalXBins),
				Stop:  program.SignalNamed(symbols.SignalXBins),
				Step:  program.SignalNamed(symbols.SignalYBins),
				As:    symbols.FieldAxisValue,
			}},
		}}}

		_, err := Run(p, nil, Options{Signals: map[symbols.Signal]any{
			symbols.SignalXBins: 1.0,
			symbols.SignalYBins: 0.0,
		}})
		require.ErrorContains(t, err, "invalid sequence")
	})

	t.Run("unsupported window op", func(t *testing.T) {
		t.Parallel()

		p := &program.Program{Data: []program.Data{{
			Name: symbols.DataMain,
			Transform: []program.Transform{program.Window{
				Ops: []program.Op{program.OpSum},
				As:  []symbols.Field{symbols.FieldTopIndex},
			}},
		}}}

		_, err := Run(p, regionRows("a"), Options{})
		require.ErrorContains(t, err, "unsupported window op")
	})

	t.Run("signal cycle", func(t *testing.T) {
		t.Parallel()

		a := program.Derived(symbols.SignalTextSize, expr.Signal(symbols.SignalTextTitleSize))
		b := program.Derived(symbols.SignalTextTitleSize, expr.Signal(symbols.SignalTextSize))

		p := &program.Program{
			Signals: []program.Signal{a, b},
			Data: []program.Data{{
				Name:      symbols.DataMain,
				Transform: []program.Transform{program.Formula{Expr: expr.Signal(symbols.SignalTextSize), As: symbols.FieldTopColor}},
			}},
		}

		_, err := Run(p, regionRows("a"), Options{})
		require.ErrorContains(t, err, "depends on itself")
	})
}
