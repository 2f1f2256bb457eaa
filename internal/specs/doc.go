// Package specs builds the program fragments of each chart type.
//
// A chart type is a Builder: given the insight, its resolved columns and the
// view options it returns datasets, signals, scales and marks. The three
// chart types share one template (per-axis extent and bin stages, axis
// sequence datasets, legend sourcing for categorical color, text and
// padding signals, fill and the zero-if-collapsed depth rule), so each
// builder only describes what differs.
//
// Builders emit transform stages in dependency order and name everything
// through package symbols. They never fail: role checks happen before a
// builder is invoked (see RequiredRoles).
package specs
