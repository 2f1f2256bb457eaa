// Package preview executes the data pipelines of a compiled program over
// in-memory rows.
//
// It implements the transform stages the compiler emits (extent, bin,
// stack, formula, sequence, aggregate, joinaggregate, window, filter and
// lookup) with the semantics of the rendering engine, so pipeline behavior
// can be inspected without one. Scales and marks are not evaluated; signals
// that read band widths need them supplied through Options.
package preview
