package compile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

var (
	price   = &insight.Column{Name: "Price", Quantitative: true, Stats: insight.ColumnStats{DistinctValueCount: 50, Extent: [2]float64{0, 100}}}
	profit  = &insight.Column{Name: "Profit", Quantitative: true, Stats: insight.ColumnStats{DistinctValueCount: 30, Extent: [2]float64{-10, 10}}}
	region  = &insight.Column{Name: "Region", Stats: insight.ColumnStats{DistinctValueCount: 4}}
	segment = &insight.Column{Name: "Segment Name", Stats: insight.ColumnStats{DistinctValueCount: 3}}
)

// combinations enumerates role bindings covering quantitative and
// categorical positions, every color shape and each optional role.
func combinations() []insight.SpecColumns {
	var out []insight.SpecColumns

	for _, x := range []*insight.Column{price, region} {
		for _, y := range []*insight.Column{profit, segment} {
			for _, color := range []*insight.Column{nil, region, price} {
				for _, z := range []*insight.Column{nil, profit} {
					for _, sort := range []*insight.Column{nil, profit} {
						for _, facet := range []*insight.Column{nil, segment} {
							for _, group := range []*insight.Column{nil, segment} {
								out = append(out, insight.SpecColumns{
									X: x, Y: y, Color: color, Z: z, Sort: sort, Facet: facet, Group: group,
								})
							}
						}
					}
				}
			}
		}
	}

	return out
}

func describe(cols insight.SpecColumns) string {
	var parts []string

	for _, r := range cols.Bound() {
		parts = append(parts, fmt.Sprintf("%s=%s", r, cols.Get(r).Name))
	}

	return strings.Join(parts, ",")
}

func TestCompile_ReferentialIntegrity(t *testing.T) {
	t.Parallel()

	view := insight.DefaultViewOptions()

	for _, chart := range insight.ChartTypes() {
		t.Run(chart.String(), func(t *testing.T) {
			t.Parallel()

			for _, cols := range combinations() {
				p, err := Compile(insight.Insight{Chart: chart}, cols, view)
				require.NoError(t, err, describe(cols))

				diags := program.Check(p, cols.Names())
				require.NoError(t, diags.Error(), describe(cols))
			}
		})
	}
}

func TestCompile_FacetLayout(t *testing.T) {
	t.Parallel()

	in := insight.Insight{Chart: insight.ChartDensity, Facet: &insight.FacetLayout{Columns: 2}}
	cols := insight.SpecColumns{X: price, Y: profit, Facet: segment}

	p, err := Compile(in, cols, insight.DefaultViewOptions())
	require.NoError(t, err)

	require.NotNil(t, p.Layout)
	require.Len(t, p.Marks, 1)

	group := p.Marks[0]
	assert.Equal(t, program.MarkGroup, group.Type)
	assert.Equal(t, symbols.MarkFacetGroup, group.Name)
	assert.Equal(t, symbols.DataAggregated, group.From.Facet.Data)
	assert.Equal(t, []program.FieldRef{"Segment Name"}, group.From.Facet.Groupby)
	assert.Equal(t, "parent['Segment Name']", group.Marks[0].Encode.Update.Text[0].Signal.String())

	columns, ok := p.FindSignal(symbols.SignalFacetColumns)
	require.True(t, ok)
	assert.Equal(t, 2, columns.Value)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	view := insight.DefaultViewOptions()

	tests := []struct {
		name string
		in   insight.Insight
		cols insight.SpecColumns
		role insight.Role
	}{
		{
			name: "barchart without x",
			in:   insight.Insight{Chart: insight.ChartBarChart},
			cols: insight.SpecColumns{Y: profit},
			role: insight.RoleX,
		},
		{
			name: "density without y",
			in:   insight.Insight{Chart: insight.ChartDensity},
			cols: insight.SpecColumns{X: price},
			role: insight.RoleY,
		},
		{
			name: "stacks without y",
			in:   insight.Insight{Chart: insight.ChartStacks},
			cols: insight.SpecColumns{X: price, Color: region},
			role: insight.RoleY,
		},
		{
			name: "facet layout without facet column",
			in:   insight.Insight{Chart: insight.ChartBarChart, Facet: &insight.FacetLayout{}},
			cols: insight.SpecColumns{X: price},
			role: insight.RoleFacet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Compile(tt.in, tt.cols, view)
			require.Error(t, err)
			assert.Nil(t, p)

			var cfgErr *insight.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.role, cfgErr.Role)
			assert.Equal(t, tt.in.Chart, cfgErr.Chart)
		})
	}

	t.Run("unknown chart type", func(t *testing.T) {
		t.Parallel()

		_, err := Compile(insight.Insight{}, insight.SpecColumns{X: price}, view)

		var cfgErr *insight.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestCompileRequest(t *testing.T) {
	t.Parallel()

	req := &insight.Request{
		Insight: insight.Insight{
			Chart:   insight.ChartBarChart,
			Columns: insight.InsightColumns{X: "price", Color: "Region"},
		},
		Columns: []insight.Column{*price, *region},
		View:    insight.DefaultViewOptions(),
	}

	c := New(logr.Discard())

	_, err := c.CompileRequest(req)

	var cfgErr *insight.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"Price"}, cfgErr.Suggestions)

	req.Insight.Columns.X = "Price"

	p, err := c.CompileRequest(req)
	require.NoError(t, err)
	require.NoError(t, program.Check(p, []string{"Price", "Region"}).Error())

	_, err = c.CompileRequest(nil)
	require.Error(t, err)
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	in := insight.Insight{Chart: insight.ChartStacks}
	cols := insight.SpecColumns{X: price, Y: segment, Color: region, Sort: profit, Facet: segment}

	first, err := Compile(in, cols, insight.DefaultViewOptions())
	require.NoError(t, err)

	want, err := first.JSON()
	require.NoError(t, err)

	for range 5 {
		p, err := Compile(in, cols, insight.DefaultViewOptions())
		require.NoError(t, err)

		got, err := p.JSON()
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestCompiler_Concurrent(t *testing.T) {
	t.Parallel()

	c := New(logr.Discard())
	view := insight.DefaultViewOptions()
	all := combinations()

	want := make([][]byte, len(all))

	for i, cols := range all {
		p, err := c.Compile(insight.Insight{Chart: insight.ChartDensity}, cols, view)
		require.NoError(t, err)

		want[i], err = p.JSON()
		require.NoError(t, err)
	}

	got := make([][]byte, len(all))
	errs := make([]error, len(all))

	var wg sync.WaitGroup

	for i, cols := range all {
		wg.Add(1)

		go func() {
			defer wg.Done()

			p, err := c.Compile(insight.Insight{Chart: insight.ChartDensity}, cols, view)
			if err != nil {
				errs[i] = err
				return
			}

			got[i], errs[i] = p.JSON()
		}()
	}

	wg.Wait()

	for i := range all {
		require.NoError(t, errs[i])
		assert.Equal(t, string(want[i]), string(got[i]), describe(all[i]))
	}
}

// The emitted document keeps the builder's fragment order: data stages as
// built, layout signals before chart signals, chart scales before shared ones.
func TestCompile_DocumentShape(t *testing.T) {
	t.Parallel()

	cols := insight.SpecColumns{X: price, Color: price, Z: profit}

	p, err := Compile(insight.Insight{Chart: insight.ChartBarChart}, cols, insight.DefaultViewOptions())
	require.NoError(t, err)

	raw, err := p.JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	names := func(key string) []any {
		var out []any
		for _, v := range doc[key].([]any) {
			out = append(out, v.(map[string]any)["name"])
		}

		return out
	}

	want := []any{"data_source", "data_barstack", "data_xaxis"}
	if diff := cmp.Diff(want, names("data")); diff != "" {
		t.Errorf("data order mismatch (-want +got):\n%s", diff)
	}

	want = []any{"scale_x", "scale_color", "scale_z"}
	if diff := cmp.Diff(want, names("scales")); diff != "" {
		t.Errorf("scale order mismatch (-want +got):\n%s", diff)
	}

	signals := names("signals")
	require.GreaterOrEqual(t, len(signals), 2)
	assert.Equal(t, []any{"Plot_WidthSignal", "Plot_HeightSignal"}, signals[:2])
	assert.NotContains(t, doc, "layout")
}

func TestCompiler_Logs(t *testing.T) {
	t.Parallel()

	var lines []string

	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 2})

	_, err := New(logger).Compile(insight.Insight{Chart: insight.ChartDensity},
		insight.SpecColumns{X: price, Y: region}, insight.DefaultViewOptions())
	require.NoError(t, err)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, `"msg"="compiling insight"`)
	assert.Contains(t, joined, `"chart"="density"`)
	assert.Contains(t, joined, `"name"="data_aggregated"`)

	assert.NotPanics(t, func() {
		_, _ = New(logr.Logger{}).Compile(insight.Insight{Chart: insight.ChartDensity},
			insight.SpecColumns{X: price, Y: region}, insight.DefaultViewOptions())
	})
}
