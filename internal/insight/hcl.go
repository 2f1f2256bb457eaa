package insight

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclRequest is the top-level structure of an HCL request file:
//
//	column "Price" {
//	  quantitative    = true
//	  distinct_values = 812
//	  extent          = [0.5, 1900]
//	}
//
//	insight {
//	  chart = chart.density
//	  columns {
//	    x = column.Price
//	    y = "Region"
//	  }
//	}
type hclRequest struct {
	Columns []*hclColumn `hcl:"column,block"`
	Insight *hclInsight  `hcl:"insight,block"`
	View    *hclView     `hcl:"view,block"`
}

type hclColumn struct {
	Name           string    `hcl:"name,label"`
	Quantitative   bool      `hcl:"quantitative,optional"`
	DistinctValues int       `hcl:"distinct_values,optional"`
	Extent         []float64 `hcl:"extent,optional"`
}

type hclInsight struct {
	Chart      string    `hcl:"chart"`
	MaxLegends int       `hcl:"max_legends,optional"`
	Roles      *hclRoles `hcl:"columns,block"`
	Facet      *hclFacet `hcl:"facet,block"`
}

type hclRoles struct {
	X     string `hcl:"x,optional"`
	Y     string `hcl:"y,optional"`
	Color string `hcl:"color,optional"`
	Z     string `hcl:"z,optional"`
	Sort  string `hcl:"sort,optional"`
	Facet string `hcl:"facet,optional"`
	Group string `hcl:"group,optional"`
}

type hclFacet struct {
	Columns int `hcl:"columns,optional"`
}

type hclView struct {
	MaxLegends int               `hcl:"max_legends,optional"`
	Labels     map[string]string `hcl:"labels,optional"`
	Colors     *hclColors        `hcl:"colors,block"`
}

type hclColors struct {
	Default           string `hcl:"default,optional"`
	Scheme            string `hcl:"scheme,optional"`
	CategoricalScheme string `hcl:"categorical_scheme,optional"`
	BinCount          int    `hcl:"bin_count,optional"`
	Reverse           bool   `hcl:"reverse,optional"`
}

// columnBlockSchema selects the column blocks so their names can be offered
// to expressions before the full decode.
var columnBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "column", LabelNames: []string{"name"}}},
}

// ParseHCL parses an HCL request. Expressions may use chart.<type> for chart
// types and column.<name> for declared columns.
func ParseHCL(data []byte, filename string) (*Request, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	content, _, diags := file.Body.PartialContent(columnBlockSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read columns of %s: %w", filename, diags)
	}

	var names []string
	for _, b := range content.Blocks {
		names = append(names, b.Labels[0])
	}

	var parsed hclRequest
	if diags := gohcl.DecodeBody(file.Body, evalContext(names), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	req, err := parsed.request()
	if err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", filename, err)
	}

	applyDefaults(req)

	return req, nil
}

// evalContext exposes chart type names and declared column names.
func evalContext(columns []string) *hcl.EvalContext {
	charts := map[string]cty.Value{}
	for _, c := range ChartTypes() {
		charts[c.String()] = cty.StringVal(c.String())
	}

	cols := map[string]cty.Value{}
	for _, name := range columns {
		cols[name] = cty.StringVal(name)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"chart":  cty.ObjectVal(charts),
			"column": cty.ObjectVal(cols),
		},
	}
}

func (r *hclRequest) request() (*Request, error) {
	req := &Request{}

	for _, c := range r.Columns {
		col := Column{
			Name:         c.Name,
			Quantitative: c.Quantitative,
			Stats:        ColumnStats{DistinctValueCount: c.DistinctValues},
		}

		switch len(c.Extent) {
		case 0:
		case 2:
			col.Stats.Extent = [2]float64{c.Extent[0], c.Extent[1]}
		default:
			return nil, fmt.Errorf("column %q: extent needs 2 values, got %d", c.Name, len(c.Extent))
		}

		req.Columns = append(req.Columns, col)
	}

	if r.Insight != nil {
		chart, err := ParseChartType(r.Insight.Chart)
		if err != nil {
			return nil, err
		}

		req.Insight.Chart = chart
		req.Insight.MaxLegends = r.Insight.MaxLegends

		if roles := r.Insight.Roles; roles != nil {
			req.Insight.Columns = InsightColumns(*roles)
		}

		if r.Insight.Facet != nil {
			req.Insight.Facet = &FacetLayout{Columns: r.Insight.Facet.Columns}
		}
	}

	if v := r.View; v != nil {
		req.View.MaxLegends = v.MaxLegends

		if c := v.Colors; c != nil {
			req.View.Colors = ColorOptions(*c)
		}

		if len(v.Labels) > 0 {
			known := LabelKeys()
			for key := range v.Labels {
				if !slices.Contains(known, key) {
					return nil, &ConfigurationError{
						Reason:      fmt.Sprintf("unknown label %q", key),
						Suggestions: Suggest(key, known),
					}
				}
			}

			req.View.Language = languageFromLabels(v.Labels)
		}
	}

	return req, nil
}
