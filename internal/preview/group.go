package preview

import (
	"fmt"
	"strings"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/program"
)

// partition groups row indices by the values of fields. Groups are returned
// in order of first appearance; indices keep their input order.
func partition(rows []Row, fields []program.FieldRef) [][]int {
	var (
		groups [][]int
		byKey  = map[string]int{}
	)

	for i, r := range rows {
		k := keyOf(r, fields)

		g, ok := byKey[k]
		if !ok {
			g = len(groups)
			byKey[k] = g
			groups = append(groups, nil)
		}

		groups[g] = append(groups[g], i)
	}

	return groups
}

// keyOf is the grouping key of r over fields. Numbers compare by value
// regardless of their Go type.
func keyOf(r Row, fields []program.FieldRef) string {
	var b strings.Builder

	for i, f := range fields {
		if i > 0 {
			b.WriteByte(0x1f)
		}

		switch v := r[string(f)].(type) {
		case nil:
			b.WriteString("n:")
		case string:
			b.WriteString("s:")
			b.WriteString(v)
		case bool:
			fmt.Fprintf(&b, "b:%t", v)
		default:
			fmt.Fprintf(&b, "f:%v", expr.ToNumber(v))
		}
	}

	return b.String()
}

func compareRows(a, b Row, cmp *program.Compare) int {
	for i, f := range cmp.Field {
		c := compareValues(a[string(f)], b[string(f)])

		if i < len(cmp.Order) && cmp.Order[i] == program.Descending {
			c = -c
		}

		if c != 0 {
			return c
		}
	}

	return 0
}

// compareValues orders null first, then strings lexically when both sides
// are strings, numbers otherwise. Incomparable values are equal.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	as, aok := a.(string)
	bs, bok := b.(string)

	if aok && bok {
		return strings.Compare(as, bs)
	}

	x, y := expr.ToNumber(a), expr.ToNumber(b)

	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
