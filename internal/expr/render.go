package expr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type writer struct {
	strings.Builder
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// sub writes n, wrapped in parentheses when paren is set.
func (w *writer) sub(n node, paren bool) {
	if n == nil {
		w.WriteString("null")
		return
	}

	if paren {
		w.WriteByte('(')
		n.write(w)
		w.WriteByte(')')

		return
	}

	n.write(w)
}

func quote(s string) string {
	var b strings.Builder

	b.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('\'')

	return b.String()
}

func precOf(n node) int {
	if n == nil {
		return precPrimary
	}

	return n.prec()
}

func (n numberLit) prec() int {
	if n.v < 0 || math.Signbit(n.v) {
		return precUnary
	}

	return precPrimary
}

func (n numberLit) write(w *writer) {
	switch {
	case math.IsNaN(n.v):
		w.WriteString("NaN")
	case math.IsInf(n.v, 1):
		w.WriteString("Infinity")
	case math.IsInf(n.v, -1):
		w.WriteString("-Infinity")
	default:
		w.WriteString(strconv.FormatFloat(n.v, 'f', -1, 64))
	}
}

func (stringLit) prec() int         { return precPrimary }
func (n stringLit) write(w *writer) { w.WriteString(quote(n.v)) }

func (nullLit) prec() int       { return precPrimary }
func (nullLit) write(w *writer) { w.WriteString("null") }

func (boolLit) prec() int { return precPrimary }
func (n boolLit) write(w *writer) {
	w.WriteString(strconv.FormatBool(n.v))
}

func (fieldRef) prec() int { return precPostfix }
func (n fieldRef) write(w *writer) {
	obj := "datum"
	if n.parent {
		obj = "parent"
	}

	w.WriteString(obj)

	if identRe.MatchString(n.name) {
		w.WriteByte('.')
		w.WriteString(n.name)

		return
	}

	w.WriteByte('[')
	w.WriteString(quote(n.name))
	w.WriteByte(']')
}

func (signalRef) prec() int         { return precPrimary }
func (n signalRef) write(w *writer) { w.WriteString(n.name) }

func (n binary) prec() int { return n.p }

// Binary operators are left associative: the right operand needs
// parentheses at equal precedence, the left one only at lower precedence.
func (n binary) write(w *writer) {
	w.sub(n.l, precOf(n.l) < n.p)
	w.WriteByte(' ')
	w.WriteString(n.op)
	w.WriteByte(' ')
	w.sub(n.r, precOf(n.r) <= n.p)
}

func (unary) prec() int { return precUnary }
func (n unary) write(w *writer) {
	w.WriteString(n.op)
	w.sub(n.x, precOf(n.x) <= precUnary)
}

func (cond) prec() int { return precCond }
func (n cond) write(w *writer) {
	w.sub(n.test, precOf(n.test) <= precCond)
	w.WriteString(" ? ")
	w.sub(n.then, false)
	w.WriteString(" : ")
	w.sub(n.els, false)
}

func (index) prec() int { return precPostfix }
func (n index) write(w *writer) {
	w.sub(n.x, precOf(n.x) < precPostfix)
	w.WriteByte('[')
	w.WriteString(strconv.Itoa(n.i))
	w.WriteByte(']')
}

func (member) prec() int { return precPostfix }
func (n member) write(w *writer) {
	w.sub(n.x, precOf(n.x) < precPostfix)
	w.WriteByte('.')
	w.WriteString(n.name)
}

func (call) prec() int { return precPostfix }
func (n call) write(w *writer) {
	w.WriteString(n.fn)
	w.WriteByte('(')

	for i, a := range n.args {
		if i > 0 {
			w.WriteString(", ")
		}

		w.sub(a, false)
	}

	w.WriteByte(')')
}
