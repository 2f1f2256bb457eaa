package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_MixedItems(t *testing.T) {
	t.Parallel()

	got := Assemble(
		One("A"),
		If(false, One("X")),
		Many("B", "C"),
		None[string](),
		One("D"),
	)

	assert.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestAssemble_FlattensExactlyOneLevel(t *testing.T) {
	t.Parallel()

	got := Assemble(
		One([]int{1, 2}),
		Many([]int{3}, []int{4, 5}),
	)

	assert.Equal(t, [][]int{{1, 2}, {3}, {4, 5}}, got)
}

func TestAssemble_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	got := Assemble(None[int](), If(false, One(1)), Seq[int](nil))

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWhen_IsLazy(t *testing.T) {
	t.Parallel()

	var calls int

	build := func() Item[int] {
		calls++
		return One(7)
	}

	assert.Equal(t, []int{}, Assemble(When(false, build)))
	assert.Equal(t, 0, calls)

	assert.Equal(t, []int{7}, Assemble(When(true, build)))
	assert.Equal(t, 1, calls)
}

func TestItem_PresenceAndLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    Item[string]
		present bool
		length  int
	}{
		{"one", One("a"), true, 1},
		{"many", Many("a", "b", "c"), true, 3},
		{"empty seq", Seq([]string{}), true, 0},
		{"none", None[string](), false, 0},
		{"if true", If(true, Many("a", "b")), true, 2},
		{"if false", If(false, Many("a", "b")), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.present, tt.item.Present())
			assert.Equal(t, tt.length, tt.item.Len())
		})
	}
}
