// Package fragment assembles optional pieces of a program into one ordered
// sequence.
//
// Chart builders describe their output as a list of items, some of which are
// conditional. Absence is an explicit value rather than a falsy entry:
//
//	fragment.Assemble(
//		fragment.One(main),
//		fragment.When(columns.X.Quantitative, func() fragment.Item[program.Data] {
//			return fragment.One(xAxis(columns.X))
//		}),
//		fragment.Seq(legend),
//	)
package fragment

// Item is a single fragment, a sequence of fragments, or nothing.
type Item[T any] struct {
	values  []T
	present bool
}

// One wraps a single fragment.
func One[T any](v T) Item[T] {
	return Item[T]{values: []T{v}, present: true}
}

// Many wraps a sequence of fragments given as arguments.
func Many[T any](vs ...T) Item[T] {
	return Item[T]{values: vs, present: true}
}

// Seq wraps an existing sequence of fragments.
func Seq[T any](vs []T) Item[T] {
	return Item[T]{values: vs, present: true}
}

// None is the absent item.
func None[T any]() Item[T] {
	return Item[T]{}
}

// If returns item when cond holds, otherwise None.
func If[T any](cond bool, item Item[T]) Item[T] {
	if !cond {
		return None[T]()
	}

	return item
}

// When calls build only when cond holds. Use it when building the item
// would dereference a role that is absent.
func When[T any](cond bool, build func() Item[T]) Item[T] {
	if !cond {
		return None[T]()
	}

	return build()
}

// Present reports whether the item contributes to an assembly.
func (i Item[T]) Present() bool {
	return i.present
}

// Len returns the number of fragments the item contributes.
func (i Item[T]) Len() int {
	if !i.present {
		return 0
	}

	return len(i.values)
}

// Assemble drops absent items and expands sequences in place, exactly one
// level deep, preserving the order of the arguments. The result is never nil.
func Assemble[T any](items ...Item[T]) []T {
	n := 0
	for _, it := range items {
		n += it.Len()
	}

	out := make([]T, 0, n)
	for _, it := range items {
		if !it.present {
			continue
		}

		out = append(out, it.values...)
	}

	return out
}
