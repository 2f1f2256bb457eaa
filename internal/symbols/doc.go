// Package symbols is the registry of canonical names shared by every
// fragment of an emitted visualization program.
//
// Names are grouped by kind:
//   - Data: derived and primary dataset identifiers
//   - Field: fields produced by transforms (the only legal "as" targets)
//   - Scale: scale identifiers referenced by marks and expressions
//   - Signal: literal, bound and derived parameters
//
// The strings are a compatibility contract with the rendering engine and must
// not drift. A new chart type reuses a name when the meaning matches and mints
// a new constant otherwise; a name is never repurposed.
package symbols
