package compile

import (
	"errors"

	"github.com/go-logr/logr"

	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/specs"
)

// Compiler turns insights into programs. It holds no per-compile state and
// may be shared between goroutines.
type Compiler struct {
	log logr.Logger
}

// New creates a Compiler logging to logger. A zero logger discards output.
func New(logger logr.Logger) *Compiler {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	return &Compiler{log: logger.WithName("compile")}
}

// Compile builds the program for in over the resolved role columns cols.
// It returns a *insight.ConfigurationError when the chart type is unknown,
// when a required role is unbound, or when a facet layout is requested
// without a facet column.
func (c *Compiler) Compile(in insight.Insight, cols insight.SpecColumns, view insight.ViewOptions) (*program.Program, error) {
	builder, err := specs.For(in.Chart)
	if err != nil {
		return nil, err
	}

	for _, role := range builder.RequiredRoles() {
		if cols.Get(role) == nil {
			return nil, insight.MissingRole(in.Chart, role)
		}
	}

	if in.Facet != nil && cols.Facet == nil {
		return nil, &insight.ConfigurationError{
			Chart:  in.Chart,
			Role:   insight.RoleFacet,
			Reason: "facet layout requested without a facet column",
		}
	}

	p := &specs.Params{Insight: in, Columns: cols, View: view}

	c.log.V(1).Info("compiling insight",
		"chart", in.Chart.String(),
		"roles", roleShapes(cols),
		"faceted", p.Faceted(),
		"categoricalColor", p.CategoricalColor())

	out := &program.Program{
		Data:    builder.Data(p),
		Signals: append(specs.LayoutSignals(p), builder.Signals(p)...),
		Scales:  append(builder.Scales(p), specs.SharedScales(p)...),
		Marks:   builder.Marks(p),
		Layout:  specs.Layout(p),
	}

	if p.Faceted() {
		out.Marks = []program.Mark{specs.FacetGroup(p, builder.MarkSource(), out.Marks)}
	}

	c.log.V(1).Info("compiled program",
		"data", len(out.Data),
		"signals", len(out.Signals),
		"scales", len(out.Scales),
		"marks", len(out.Marks))

	if v := c.log.V(2); v.Enabled() {
		for _, d := range out.Data {
			v.Info("dataset", "name", d.Name, "source", d.Source, "stages", len(d.Transform))
		}
	}

	return out, nil
}

// CompileRequest resolves the request's role bindings against its columns
// and compiles the result.
func (c *Compiler) CompileRequest(req *insight.Request) (*program.Program, error) {
	if req == nil {
		return nil, errors.New("request is nil")
	}

	cols, err := insight.BuildSpecColumns(req.Insight, req.Columns)
	if err != nil {
		return nil, err
	}

	return c.Compile(req.Insight, cols, req.View)
}

// Compile builds a program with a Compiler that discards its logs.
func Compile(in insight.Insight, cols insight.SpecColumns, view insight.ViewOptions) (*program.Program, error) {
	return New(logr.Discard()).Compile(in, cols, view)
}

// roleShapes summarizes the bound roles as role=q|c for logging.
func roleShapes(cols insight.SpecColumns) []string {
	var out []string

	for _, role := range insight.Roles() {
		col := cols.Get(role)
		if col == nil {
			continue
		}

		shape := "c"
		if col.Quantitative {
			shape = "q"
		}

		out = append(out, role.String()+"="+shape)
	}

	return out
}
