// Package expr builds the expressions embedded in an emitted program
// (formula transforms, derived signals, encoding offsets and rule tests).
//
// Expressions are trees of nodes referencing datum fields, signals, scales
// and datasets. They are rendered to the rendering engine's expression
// syntax only when the program is marshalled, so identifiers are never
// interpolated by hand. Rendering inserts the minimal parentheses required
// by the usual JavaScript operator precedence:
//
//	conditional < || < && < equality < relational < additive < multiplicative < unary < member/call
//
// Every tree can report the symbols it references (Refs) and can be
// evaluated against an Env for previews and tests (Eval).
package expr
