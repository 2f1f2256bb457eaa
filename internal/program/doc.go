// Package program models the visualization program handed to the rendering
// engine: datasets with transform pipelines, scales, signals and marks.
//
// Every name in a program is a registry symbol (see package symbols) or a
// source column bound by the request. Fragments reference each other only by
// name; Check verifies that every reference resolves to exactly one
// definition and that transform stages appear after the stages whose output
// they read.
//
// The wire form is produced by encoding/json. Struct field order fixes key
// order, so marshalling the same program twice yields identical bytes.
package program
