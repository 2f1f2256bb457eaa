package insight

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an insight that cannot be compiled, such as a
// chart type missing a required role or a role bound to an unknown column.
type ConfigurationError struct {
	Chart       ChartType
	Role        Role
	Column      string
	Reason      string
	Suggestions []string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	var b strings.Builder

	b.WriteString("configuration error")

	if e.Chart.Valid() {
		fmt.Fprintf(&b, " in %s chart", e.Chart)
	}

	if e.Role != 0 {
		fmt.Fprintf(&b, " for role %s", e.Role)
	}

	if e.Column != "" {
		fmt.Fprintf(&b, " (column %q)", e.Column)
	}

	b.WriteString(": ")
	b.WriteString(e.Reason)

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(quoteAll(e.Suggestions), " or "))
	}

	return b.String()
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}

	return out
}

// MissingRole builds the error for a required role that is not bound.
func MissingRole(chart ChartType, role Role) *ConfigurationError {
	return &ConfigurationError{Chart: chart, Role: role, Reason: "required role is not bound"}
}
