package insight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestChartType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "density", ChartDensity.String())
	assert.Equal(t, "stacks", ChartStacks.String())
	assert.Equal(t, "barchart", ChartBarChart.String())
	assert.Equal(t, "ChartType(0)", ChartType(0).String())
	assert.Equal(t, []ChartType{ChartDensity, ChartStacks, ChartBarChart}, ChartTypes())
}

func TestParseChartType(t *testing.T) {
	t.Parallel()

	for _, c := range ChartTypes() {
		got, err := ParseChartType(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseChartType(" Density ")
	require.NoError(t, err)
	assert.Equal(t, ChartDensity, got)

	_, err = ParseChartType("stack")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"stacks"}, cfgErr.Suggestions)
	assert.EqualError(t, err, `configuration error: unknown chart type "stack"; did you mean "stacks"?`)
}

func TestChartType_YAML(t *testing.T) {
	t.Parallel()

	var in Insight
	require.NoError(t, yaml.Unmarshal([]byte("chart: barchart\ncolumns: {x: Price}\n"), &in))
	assert.Equal(t, ChartBarChart, in.Chart)
	assert.Equal(t, "Price", in.Columns.X)

	out, err := yaml.Marshal(Insight{Chart: ChartStacks})
	require.NoError(t, err)
	assert.Equal(t, "chart: stacks\ncolumns: {}\n", string(out))

	_, err = yaml.Marshal(Insight{})
	require.Error(t, err)
}

func TestRole_StringAndParse(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(Roles()))
	for _, r := range Roles() {
		names = append(names, r.String())

		got, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	assert.Equal(t, []string{"x", "y", "color", "z", "sort", "facet", "group"}, names)
	assert.Equal(t, "Role(9)", Role(9).String())

	_, err := ParseRole("colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "color"?`)
}
