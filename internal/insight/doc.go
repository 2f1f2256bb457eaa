// Package insight defines the input side of the compiler.
//
// An Insight is the user's chart intent: a chart type and a binding from
// roles (x, y, color, z, sort, facet, group) to column names. Column carries
// the per-column metadata the compiler needs (whether the column is
// quantitative and its precomputed statistics). ViewOptions holds the view
// configuration: localized labels, legend limits and colors.
//
// Requests bundling all three are read from YAML, JSON or HCL files:
//
//	req, err := insight.LoadFile("request.yaml")
//	if err != nil { ... }
//	if diags := insight.Validate(req); diags.HasErrors() { ... }
//	cols, err := insight.BuildSpecColumns(req.Insight, req.Columns)
//
// Errors about the shape of the request are reported as *ConfigurationError.
package insight
