package insight

import (
	"fmt"

	"vizspec-compiler/internal/diagnostic"
)

// Validate checks the structure of a request: the chart type is set, column
// names are unique, every bound role names a known column and the limits are
// not negative. Whether the chart type's required roles are bound is decided
// by the compiler.
func Validate(req *Request) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if req == nil {
		res.AddError("request_is_nil", "request is nil", "", "")
		return res
	}

	if !req.Insight.Chart.Valid() {
		res.AddError("missing_chart", "insight has no valid chart type", "insight.chart", "")
	}

	seen := map[string]int{}
	names := make([]string, 0, len(req.Columns))

	for i, c := range req.Columns {
		loc := fmt.Sprintf("columns[%d]", i)

		if c.Name == "" {
			res.AddError("empty_column_name", "column has no name", loc, "")
			continue
		}

		if prev, ok := seen[c.Name]; ok {
			res.AddError("duplicate_column", fmt.Sprintf("column already declared at columns[%d]", prev), loc, c.Name)
			continue
		}

		seen[c.Name] = i
		names = append(names, c.Name)

		if c.Stats.DistinctValueCount < 0 {
			res.AddError("negative_distinct_count", "distinct value count is negative", loc, c.Name)
		}

		if c.Quantitative && c.Stats.Extent[0] > c.Stats.Extent[1] {
			res.AddError("inverted_extent", "extent minimum exceeds maximum", loc, c.Name)
		}

		if c.Stats.DistinctValueCount == 0 {
			res.AddWarning("no_distinct_values", "column has no distinct values; bins and legends degenerate to one entry",
				loc, c.Name)
		}
	}

	for _, role := range Roles() {
		name := req.Insight.Columns.Get(role)
		if name == "" {
			continue
		}

		if _, ok := seen[name]; !ok {
			res.AddError("unknown_column", "role is bound to an undeclared column", "insight.columns."+role.String(), name)
			res.Suggest(suggestionText(Suggest(name, names))...)
		}
	}

	if req.Insight.Facet != nil {
		if req.Insight.Columns.Facet == "" {
			res.AddError("facet_without_column", "facet layout given but no column is bound to the facet role",
				"insight.facet", "")
		}

		if req.Insight.Facet.Columns < 0 {
			res.AddError("negative_limit", "facet columns must not be negative", "insight.facet.columns", "")
		}
	}

	if req.Insight.MaxLegends < 0 {
		res.AddError("negative_limit", "max legends must not be negative", "insight.maxLegends", "")
	}

	if req.View.MaxLegends < 0 {
		res.AddError("negative_limit", "max legends must not be negative", "view.maxLegends", "")
	}

	return res
}

func suggestionText(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, fmt.Sprintf("did you mean %q?", n))
	}

	return out
}
