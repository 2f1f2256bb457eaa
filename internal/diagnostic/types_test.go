package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorFolding(t *testing.T) {
	t.Parallel()

	d := &Diagnostics{}
	require.NoError(t, d.Error())

	d.AddWarning("no_distinct_values", "column has no distinct values", "columns[2]", "Region")
	require.NoError(t, d.Error())

	d.AddError("undefined_signal", "signal is not defined", "data[1] transform[0] (bin)", "RoleX_BinsSignal")
	d.Suggest("define it before data[1]")
	d.AddError("duplicate_scale", "scale defined twice", "", "scale_x")

	assert.Equal(t, []string{"undefined_signal", "duplicate_scale"}, d.Codes())
	assert.EqualError(t, d.Error(),
		"[data[1] transform[0] (bin)] RoleX_BinsSignal: [undefined_signal] signal is not defined (define it before data[1]); "+
			"scale_x: [duplicate_scale] scale defined twice")
	assert.Equal(t, "[columns[2]] Region: [no_distinct_values] column has no distinct values", d.Warnings[0].String())
}

func TestDiagnostic_StringWithoutLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[data_order] datasets are not in dependency order",
		Diagnostic{Code: "data_order", Message: "datasets are not in dependency order"}.String())
}

func TestDiagnostics_SuggestWithoutErrors(t *testing.T) {
	t.Parallel()

	d := &Diagnostics{}
	d.Suggest("ignored")
	assert.Empty(t, d.Errors)
}
