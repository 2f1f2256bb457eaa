package insight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlRequest = `
insight:
  chart: density
  columns:
    x: Price
    y: Region
    color: Region
  maxLegends: 5
columns:
  - name: Price
    quantitative: true
    stats:
      distinctValueCount: 120
      extent: [1, 99]
  - name: Region
    stats:
      distinctValueCount: 4
view:
  language:
    legendOther: Autres
`

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	req, err := Parse([]byte(yamlRequest))
	require.NoError(t, err)

	assert.Equal(t, ChartDensity, req.Insight.Chart)
	assert.Equal(t, 5, req.Insight.MaxLegends)
	require.Len(t, req.Columns, 2)
	assert.Equal(t, [2]float64{1, 99}, req.Columns[0].Stats.Extent)

	assert.Equal(t, "Autres", req.View.Language.LegendOther)
	assert.Equal(t, DefaultLanguage().XBinSize, req.View.Language.XBinSize)
	assert.Equal(t, DefaultMaxLegends, req.View.MaxLegends)
	assert.Equal(t, DefaultColor, req.View.Colors.Default)
	assert.Equal(t, 5, req.View.LegendLimit(req.Insight))
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	req, err := Parse([]byte(`{
		"insight": {"chart": "barchart", "columns": {"x": "Price"}},
		"columns": [{"name": "Price", "quantitative": true, "stats": {"distinctValueCount": 3, "extent": [0, 2]}}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, ChartBarChart, req.Insight.Chart)
	assert.Equal(t, DefaultViewOptions(), req.View)
	assert.Equal(t, DefaultMaxLegends, req.View.LegendLimit(req.Insight))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("insight:\n  chart: pie\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown chart type "pie"`)

	_, err = Parse([]byte("insight:\n  chrat: density\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrat")

	req, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultViewOptions(), req.View)
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	req, err := Parse([]byte(yamlRequest))
	require.NoError(t, err)

	out, err := Marshal(req)
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)

	if diff := cmp.Diff(req, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

const hclRequestText = `
column "Price" {
  quantitative    = true
  distinct_values = 120
  extent          = [1, 99]
}

column "Region" {
  distinct_values = 4
}

insight {
  chart       = chart.stacks
  max_legends = 3

  columns {
    x     = column.Price
    y     = column.Region
    color = "Region"
  }

  facet {
    columns = 2
  }
}

view {
  labels = {
    legendOther = "Andere"
  }

  colors {
    scheme = "viridis"
  }
}
`

func TestParseHCL(t *testing.T) {
	t.Parallel()

	req, err := ParseHCL([]byte(hclRequestText), "request.hcl")
	require.NoError(t, err)

	want := Insight{
		Chart:      ChartStacks,
		Columns:    InsightColumns{X: "Price", Y: "Region", Color: "Region"},
		Facet:      &FacetLayout{Columns: 2},
		MaxLegends: 3,
	}
	if diff := cmp.Diff(want, req.Insight); diff != "" {
		t.Errorf("insight mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, req.Columns, 2)
	assert.Equal(t, Column{
		Name:         "Price",
		Quantitative: true,
		Stats:        ColumnStats{DistinctValueCount: 120, Extent: [2]float64{1, 99}},
	}, req.Columns[0])

	assert.Equal(t, "Andere", req.View.Language.LegendOther)
	assert.Equal(t, DefaultLanguage().TextSize, req.View.Language.TextSize)
	assert.Equal(t, "viridis", req.View.Colors.Scheme)
	assert.Equal(t, DefaultColor, req.View.Colors.Default)
}

func TestParseHCL_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `insight {`, "failed to parse HCL file"},
		{"unknown column", "insight {\n chart = \"density\"\n columns { x = column.Prise }\n}", "failed to decode HCL file"},
		{"unknown chart", `insight { chart = "pie" }`, `unknown chart type "pie"`},
		{"bad extent", `column "a" { extent = [1] }`, "extent needs 2 values"},
		{"unknown label", `view { labels = { legendOthr = "x" } }`, `did you mean "legendOther"?`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseHCL([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := ParseHCL([]byte(`view { labels = { nope = "x" } }`), "bad.hcl")

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRequest), 0o600))

	hclPath := filepath.Join(dir, "req.HCL")
	require.NoError(t, os.WriteFile(hclPath, []byte(hclRequestText), 0o600))

	req, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, ChartDensity, req.Insight.Chart)

	req, err = LoadFile(hclPath)
	require.NoError(t, err)
	assert.Equal(t, ChartStacks, req.Insight.Chart)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, WriteFile(req, out))

	again, err := LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, req.Insight, again.Insight)
}
