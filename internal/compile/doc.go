// Package compile assembles a complete visualization program from an
// insight.
//
// Compile pipeline:
//  1. Select the chart builder for the insight's chart type
//  2. Verify the chart's required roles and the facet binding
//  3. Collect data pipelines, then signals (layout + chart), then scales
//     (chart + shared color/z), then marks
//  4. Wrap marks in a facet group and add the grid layout when faceted
//
// Fragments are concatenated in the order the builders return them; the
// compiler never reorders stages.
package compile
