package insight

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=ChartType -linecomment -output=chart_type_string.go

// ChartType is the closed set of chart layouts the compiler can build.
type ChartType int

const (
	_ ChartType = iota // zero value is not a chart type

	ChartDensity  // density
	ChartStacks   // stacks
	ChartBarChart // barchart

	// ChartTypeTotal is one past the last chart type.
	ChartTypeTotal = int(iota)
)

// ChartTypes lists every chart type in declaration order.
func ChartTypes() []ChartType {
	out := make([]ChartType, 0, ChartTypeTotal-1)
	for c := ChartDensity; int(c) < ChartTypeTotal; c++ {
		out = append(out, c)
	}

	return out
}

// Valid reports whether c is a declared chart type.
func (c ChartType) Valid() bool {
	return c >= ChartDensity && int(c) < ChartTypeTotal
}

// ParseChartType resolves a chart type name, ignoring case.
func ParseChartType(s string) (ChartType, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for _, c := range ChartTypes() {
		if c.String() == name {
			return c, nil
		}
	}

	names := make([]string, 0, ChartTypeTotal-1)
	for _, c := range ChartTypes() {
		names = append(names, c.String())
	}

	return 0, &ConfigurationError{
		Reason:      fmt.Sprintf("unknown chart type %q", s),
		Suggestions: Suggest(name, names),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ChartType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid chart type %d", int(c))
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ChartType) UnmarshalText(text []byte) error {
	v, err := ParseChartType(string(text))
	if err != nil {
		return err
	}

	*c = v

	return nil
}
