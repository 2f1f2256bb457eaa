package specs

import (
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// TopLookup builds the category lookup for a categorical column.
//
// The first dataset ranks the column's values by frequency and keeps the
// maxEntries most frequent ones; ties keep the order in which values first
// appear. The second dataset is the primary data with each row's category
// looked up in that ranking: ranked values keep their own name, all others
// fall into the otherLabel bucket. maxEntries below 1 is treated as 1.
func TopLookup(column string, maxEntries int, otherLabel string) []program.Data {
	maxEntries = max(1, maxEntries)
	col := program.Column(column)

	ranking := program.Data{
		Name:   symbols.DataTopLookup,
		Source: symbols.DataMain,
		Transform: []program.Transform{
			program.Aggregate{
				Groupby: []program.FieldRef{col},
				Ops:     []program.Op{program.OpCount},
				Fields:  []*program.FieldRef{nil},
				As:      []symbols.Field{symbols.FieldTopCount},
			},
			program.Window{
				Sort: program.SortBy(program.Descending, program.Of(symbols.FieldTopCount)),
				Ops:  []program.Op{program.OpRowNumber},
				As:   []symbols.Field{symbols.FieldTopIndex},
			},
			program.Filter{Expr: expr.Derived(symbols.FieldTopIndex).Le(expr.Int(maxEntries))},
		},
	}

	value := expr.Derived(symbols.FieldTopValue)

	legend := program.Data{
		Name:   symbols.DataLegend,
		Source: symbols.DataMain,
		Transform: []program.Transform{
			program.Lookup{
				From:   symbols.DataTopLookup,
				Key:    col,
				Fields: []program.FieldRef{col},
				Values: []program.FieldRef{col},
				As:     []symbols.Field{symbols.FieldTopValue},
			},
			program.Formula{
				Expr: expr.Cond(value.Eq(expr.Null()), expr.Str(otherLabel), value),
				As:   symbols.FieldTopColor,
			},
		},
	}

	return []program.Data{ranking, legend}
}
