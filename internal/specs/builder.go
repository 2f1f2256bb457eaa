package specs

import (
	"fmt"

	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// Builder produces the fragments of one chart type. Data stages, signals,
// scales and marks of a builder only reference each other, the shared
// signals of LayoutSignals and the scales of SharedScales.
type Builder interface {
	// RequiredRoles lists the roles that must be bound.
	RequiredRoles() []insight.Role
	// Data returns the datasets in dependency order.
	Data(p *Params) []program.Data
	// Signals returns the chart's signals.
	Signals(p *Params) []program.Signal
	// Scales returns the positional and sizing scales.
	Scales(p *Params) []program.Scale
	// Marks returns the marks, reading from p's facet cell when faceted.
	Marks(p *Params) []program.Mark
	// MarkSource is the dataset the marks are drawn from.
	MarkSource() symbols.Data
}

// For returns the builder of chart type t.
func For(t insight.ChartType) (Builder, error) {
	switch t {
	case insight.ChartDensity:
		return density{}, nil
	case insight.ChartStacks:
		return stacks{}, nil
	case insight.ChartBarChart:
		return barChart{}, nil
	default:
		return nil, &insight.ConfigurationError{Reason: fmt.Sprintf("unsupported chart type %s", t)}
	}
}
