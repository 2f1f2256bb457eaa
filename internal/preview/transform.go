package preview

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// maxSequence bounds the rows a sequence stage may generate.
const maxSequence = 1_000_000

func apply(t program.Transform, rows []Row, sig *signals) ([]Row, error) {
	switch t := t.(type) {
	case program.Extent:
		return extent(t, rows, sig)
	case program.Bin:
		return bin(t, rows, sig)
	case program.Stack:
		return stack(t, rows), nil
	case program.Formula:
		return formula(t, rows, sig)
	case program.Sequence:
		return sequence(t, sig)
	case program.Aggregate:
		return aggregate(t, rows)
	case program.JoinAggregate:
		return joinAggregate(t, rows)
	case program.Window:
		return window(t, rows)
	case program.Filter:
		return filter(t, rows, sig)
	case program.Lookup:
		return lookup(t, rows, sig)
	default:
		return nil, fmt.Errorf("unsupported transform %s", t.Type())
	}
}

// extent publishes [min, max] of the field's valid numbers.
func extent(t program.Extent, rows []Row, sig *signals) ([]Row, error) {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, r := range rows {
		v, ok := number(r[string(t.Field)])
		if !ok {
			continue
		}

		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	if lo > hi {
		sig.set(t.Signal, []any{nil, nil})
		return rows, nil
	}

	sig.set(t.Signal, []any{lo, hi})

	return rows, nil
}

func bin(t program.Bin, rows []Row, sig *signals) ([]Row, error) {
	ext, err := t.Extent.Expr.Eval(sig.env(nil))
	if err != nil {
		return nil, err
	}

	bounds, ok := ext.([]any)
	if !ok || len(bounds) != 2 {
		return nil, fmt.Errorf("bin extent is not a [min, max] pair: %v", ext)
	}

	lo, okLo := number(bounds[0])
	hi, okHi := number(bounds[1])

	maxbins, err := sig.number(t.Maxbins)
	if err != nil {
		return nil, err
	}

	if !okLo || !okHi {
		// no valid values: nothing to bin
		sig.set(t.Signal, map[string]any{"start": 0.0, "stop": 1.0, "step": 1.0})
		return rows, nil
	}

	b := newBins(lo, hi, maxbins, t.Nice)
	sig.set(t.Signal, map[string]any{"start": b.start, "stop": b.stop, "step": b.step})

	for _, r := range rows {
		v, ok := number(r[string(t.Field)])
		if !ok {
			r[string(t.As[0])], r[string(t.As[1])] = nil, nil
			continue
		}

		b0 := b.index(v)
		r[string(t.As[0])], r[string(t.As[1])] = b0, b0+b.step
	}

	return rows, nil
}

// stack counts every row as one unit. Offsets are assigned within each
// group in sort order; the row order itself is kept.
func stack(t program.Stack, rows []Row) []Row {
	for _, idx := range partition(rows, t.Groupby) {
		sortIndices(idx, rows, t.Sort)

		for n, i := range idx {
			rows[i][string(t.As[0])] = float64(n)
			rows[i][string(t.As[1])] = float64(n + 1)
		}
	}

	return rows
}

func formula(t program.Formula, rows []Row, sig *signals) ([]Row, error) {
	for _, r := range rows {
		v, err := t.Expr.Eval(sig.env(r))
		if err != nil {
			return nil, err
		}

		r[string(t.As)] = v
	}

	return rows, nil
}

// sequence replaces the rows with start, start+step, ... below stop.
func sequence(t program.Sequence, sig *signals) ([]Row, error) {
	start, err := sig.number(t.Start)
	if err != nil {
		return nil, err
	}

	stop, err := sig.number(t.Stop)
	if err != nil {
		return nil, err
	}

	step, err := sig.number(t.Step)
	if err != nil {
		return nil, err
	}

	if step == 0 || math.IsNaN(step) || (stop-start)/step > maxSequence {
		return nil, fmt.Errorf("invalid sequence %v..%v step %v", start, stop, step)
	}

	var out []Row

	for i := 0; ; i++ {
		v := start + float64(i)*step
		if (step > 0 && v >= stop) || (step < 0 && v <= stop) {
			break
		}

		out = append(out, Row{string(t.As): v})
	}

	return out, nil
}

// aggregate emits one row per group, in order of first appearance.
func aggregate(t program.Aggregate, rows []Row) ([]Row, error) {
	groups := partition(rows, t.Groupby)
	out := make([]Row, 0, len(groups))

	for _, idx := range groups {
		row := Row{}
		for _, g := range t.Groupby {
			row[string(g)] = rows[idx[0]][string(g)]
		}

		if err := summarize(row, t.Ops, t.Fields, t.As, idx, rows); err != nil {
			return nil, err
		}

		out = append(out, row)
	}

	return out, nil
}

// joinAggregate writes the group summaries onto every row of the group.
func joinAggregate(t program.JoinAggregate, rows []Row) ([]Row, error) {
	for _, idx := range partition(rows, t.Groupby) {
		summary := Row{}
		if err := summarize(summary, t.Ops, t.Fields, t.As, idx, rows); err != nil {
			return nil, err
		}

		for _, i := range idx {
			for k, v := range summary {
				rows[i][k] = v
			}
		}
	}

	return rows, nil
}

func summarize(dst Row, ops []program.Op, fields []*program.FieldRef, as []symbols.Field, idx []int, rows []Row) error {
	if len(fields) != len(ops) || len(as) != len(ops) {
		return errors.New("ops, fields and as must have the same length")
	}

	for k, op := range ops {
		var field string
		if fields[k] != nil {
			field = string(*fields[k])
		}

		v, err := reduce(op, field, idx, rows)
		if err != nil {
			return err
		}

		dst[string(as[k])] = v
	}

	return nil
}

func reduce(op program.Op, field string, idx []int, rows []Row) (any, error) {
	switch op {
	case program.OpCount:
		return float64(len(idx)), nil
	case program.OpSum, program.OpMin, program.OpMax:
	default:
		return nil, fmt.Errorf("unsupported aggregate op %s", op)
	}

	if field == "" {
		return nil, fmt.Errorf("op %s needs a field", op)
	}

	var (
		acc   float64
		valid int
	)

	for _, i := range idx {
		v, ok := number(rows[i][field])
		if !ok {
			continue
		}

		switch {
		case valid == 0 && op != program.OpSum:
			acc = v
		case op == program.OpSum:
			acc += v
		case op == program.OpMin:
			acc = math.Min(acc, v)
		default:
			acc = math.Max(acc, v)
		}

		valid++
	}

	if valid == 0 && op != program.OpSum {
		return nil, nil
	}

	return acc, nil
}

// window numbers the rows of each partition in sort order. Ties keep their
// input order.
func window(t program.Window, rows []Row) ([]Row, error) {
	if len(t.As) != len(t.Ops) {
		return nil, errors.New("ops and as must have the same length")
	}

	for _, idx := range partition(rows, t.Groupby) {
		sortIndices(idx, rows, t.Sort)

		for n, i := range idx {
			for k, op := range t.Ops {
				switch op {
				case program.OpRowNumber, program.OpCount:
					rows[i][string(t.As[k])] = float64(n + 1)
				default:
					return nil, fmt.Errorf("unsupported window op %s", op)
				}
			}
		}
	}

	return rows, nil
}

func filter(t program.Filter, rows []Row, sig *signals) ([]Row, error) {
	out := rows[:0:0]

	for _, r := range rows {
		v, err := t.Expr.Eval(sig.env(r))
		if err != nil {
			return nil, err
		}

		if expr.Truthy(v) {
			out = append(out, r)
		}
	}

	return out, nil
}

// lookup copies values from the matching row of another dataset. Rows
// without a match get null; among duplicate keys the last row wins.
func lookup(t program.Lookup, rows []Row, sig *signals) ([]Row, error) {
	from, ok := sig.data[string(t.From)]
	if !ok {
		return nil, fmt.Errorf("lookup dataset %s has not been computed", t.From)
	}

	if len(t.As) != len(t.Fields)*len(t.Values) {
		return nil, errors.New("as must name one output per field and value")
	}

	index := make(map[string]Row, len(from))
	for _, r := range from {
		index[keyOf(r, []program.FieldRef{t.Key})] = r
	}

	for _, r := range rows {
		for i, f := range t.Fields {
			match := index[keyOf(r, []program.FieldRef{f})]

			for j, v := range t.Values {
				var out any
				if match != nil {
					out = match[string(v)]
				}

				r[string(t.As[i*len(t.Values)+j])] = out
			}
		}
	}

	return rows, nil
}

// number reads a valid number; null, NaN and non-numeric values are not.
func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	if _, ok := v.(string); ok {
		return 0, false
	}

	f := expr.ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// sortIndices stably sorts row indices by cmp. A nil cmp keeps the order.
func sortIndices(idx []int, rows []Row, cmp *program.Compare) {
	if cmp == nil {
		return
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		return compareRows(rows[a], rows[b], cmp)
	})
}
