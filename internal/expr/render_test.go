package expr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizspec-compiler/internal/symbols"
)

func TestRender_Precedence(t *testing.T) {
	t.Parallel()

	a, b, c := Signal("a"), Signal("b"), Signal("c")

	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"flat sum", a.Add(b).Add(c), "a + b + c"},
		{"right nested sum", a.Sub(b.Sub(c)), "a - (b - c)"},
		{"product of sums", a.Add(b).Mul(c), "(a + b) * c"},
		{"sum of products", a.Mul(b).Add(c), "a * b + c"},
		{"division chain", a.Div(b.Mul(c)), "a / (b * c)"},
		{"modulo of difference", a.Sub(Int(1)).Mod(b), "(a - 1) % b"},
		{"negative literal", a.Sub(Num(-1)), "a - -1"},
		{"double negation", Neg(Neg(a)), "-(-a)"},
		{"negated sum", Neg(a.Add(b)), "-(a + b)"},
		{"not equal", Not(a.Eq(b)), "!(a == b)"},
		{"and or", a.Or(b).And(c), "(a || b) && c"},
		{"ternary in sum", Cond(a, b, c).Add(Int(1)), "(a ? b : c) + 1"},
		{"ternary test", Cond(a.Eq(Null()), Str("x"), b), "a == null ? 'x' : b"},
		{"index of signal", a.Index(1).Mul(b), "a[1] * b"},
		{"member", a.Prop("start"), "a.start"},
		{"call", Floor(Sqrt(a)), "floor(sqrt(a))"},
		{"min", Min(a, b.Add(c)), "min(a, b + c)"},
		{"decimal", Num(0.6), "0.6"},
		{"integral", Num(30), "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.String())
		})
	}
}

func TestRender_References(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "datum.__density_row", Derived(symbols.FieldDensityRow).String())
	assert.Equal(t, `datum['unit price']`, Field("unit price").String())
	assert.Equal(t, `datum['it\'s']`, Field("it's").String())
	assert.Equal(t, "scale('scale_size', 2)", Scale(symbols.ScaleSize, Int(2)).String())
	assert.Equal(t, "bandwidth('scale_x')", Bandwidth(symbols.ScaleX).String())
	assert.Equal(t, "length(data('data_yaxis'))", Length(Data(symbols.DataYAxis)).String())
	assert.Equal(t, "width / height", Width.Div(Height).String())
	assert.Equal(t, "parent.region", ParentField("region").String())
	assert.Equal(t, `parent['sales region']`, ParentField("sales region").String())
}

func TestRefs_CollectsAllKinds(t *testing.T) {
	t.Parallel()

	e := Scale(symbols.ScaleSize, Derived(symbols.FieldDensityRow).Sub(Int(1))).
		Add(Bandwidth(symbols.ScaleX)).
		Mul(Signal(symbols.SignalInnerPadding)).
		Add(Length(Data(symbols.DataXAxis))).
		Add(Derived(symbols.FieldDensityRow))

	assert.Equal(t, []Ref{
		{Kind: RefScale, Name: string(symbols.ScaleSize)},
		{Kind: RefField, Name: string(symbols.FieldDensityRow)},
		{Kind: RefScale, Name: string(symbols.ScaleX)},
		{Kind: RefSignal, Name: string(symbols.SignalInnerPadding)},
		{Kind: RefData, Name: string(symbols.DataXAxis)},
	}, e.Refs())
}

func TestExpr_MarshalsAsString(t *testing.T) {
	t.Parallel()

	payload := struct {
		Expr  Expr  `json:"expr"`
		Maybe *Expr `json:"maybe,omitempty"`
	}{Expr: Derived(symbols.FieldStacksStart).Mod(Signal(symbols.SignalStacksColumns))}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"expr":"datum.__stacks_start % Stacks_ColumnsSignal"}`, string(data))
}

func TestExpr_Zero(t *testing.T) {
	t.Parallel()

	var e Expr

	assert.True(t, e.IsZero())
	assert.Empty(t, e.String())
	assert.Nil(t, e.Refs())
}
