package preview

import (
	"fmt"
	"maps"

	"github.com/go-logr/logr"

	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/program"
	"vizspec-compiler/internal/symbols"
)

// Row is one datum.
type Row = map[string]any

// Default view size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options configure a run.
type Options struct {
	// Width and Height are the view size; zero uses the defaults.
	Width, Height float64
	// Signals override signal values, including derived ones.
	Signals map[symbols.Signal]any
	// Bandwidths are the band widths of band scales.
	Bandwidths map[symbols.Scale]float64
	// Logger receives per-dataset progress at V(2).
	Logger logr.Logger
}

// Result holds the rows of every dataset and the signal values known after
// the run.
type Result struct {
	Data    map[string][]Row
	Signals map[string]any
}

// Rows returns the rows of dataset d.
func (r *Result) Rows(d symbols.Data) []Row {
	return r.Data[string(d)]
}

// Signal returns the value of signal s and whether it is known.
func (r *Result) Signal(s symbols.Signal) (any, bool) {
	v, ok := r.Signals[string(s)]
	return v, ok
}

// Run executes every dataset of p in order. rows are the rows of the primary
// dataset; they are copied and never modified.
func Run(p *program.Program, rows []Row, opts Options) (*Result, error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	sig := newSignals(p, opts)
	res := &Result{Data: map[string][]Row{}, Signals: sig.values}
	sig.data = res.Data

	for i, d := range p.Data {
		var cur []Row

		switch {
		case d.Source != "":
			src, ok := res.Data[string(d.Source)]
			if !ok {
				return nil, fmt.Errorf("data[%d] %s: source %s has not been computed", i, d.Name, d.Source)
			}

			cur = cloneRows(src)
		case d.Name == symbols.DataMain:
			cur = cloneRows(rows)
		}

		for j, t := range d.Transform {
			var err error

			cur, err = apply(t, cur, sig)
			if err != nil {
				return nil, fmt.Errorf("data[%d] %s transform[%d] (%s): %w", i, d.Name, j, t.Type(), err)
			}
		}

		res.Data[string(d.Name)] = cur

		log.V(2).Info("dataset computed", "name", d.Name, "rows", len(cur))
	}

	return res, nil
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}

	return out
}

// signals resolves signal values. Literal and stage values are stored as
// they become known; derived signals are evaluated on first read.
type signals struct {
	defs       map[string]program.Signal
	values     map[string]any
	pending    map[string]bool
	bandwidths map[string]float64
	data       map[string][]Row
}

func newSignals(p *program.Program, opts Options) *signals {
	s := &signals{
		defs:       make(map[string]program.Signal, len(p.Signals)),
		values:     map[string]any{},
		pending:    map[string]bool{},
		bandwidths: map[string]float64{},
	}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = DefaultWidth
	}

	if height == 0 {
		height = DefaultHeight
	}

	s.values[string(symbols.BuiltinWidth)] = width
	s.values[string(symbols.BuiltinHeight)] = height

	for _, def := range p.Signals {
		s.defs[string(def.Name)] = def
	}

	for name, v := range opts.Signals {
		s.values[string(name)] = v
	}

	for name, bw := range opts.Bandwidths {
		s.bandwidths[string(name)] = bw
	}

	return s
}

// Signal implements expr.SignalSource.
func (s *signals) Signal(name string) (any, error) {
	if v, ok := s.values[name]; ok {
		return v, nil
	}

	def, ok := s.defs[name]
	if !ok {
		return nil, fmt.Errorf("signal %q has no value yet", name)
	}

	if def.Update == nil {
		s.values[name] = def.Value
		return def.Value, nil
	}

	if s.pending[name] {
		return nil, fmt.Errorf("signal %q depends on itself", name)
	}

	s.pending[name] = true
	defer delete(s.pending, name)

	v, err := def.Update.Eval(s.env(nil))
	if err != nil {
		return nil, fmt.Errorf("evaluating signal %q: %w", name, err)
	}

	s.values[name] = v

	return v, nil
}

func (s *signals) set(name symbols.Signal, v any) {
	s.values[string(name)] = v
}

func (s *signals) env(datum Row) *expr.Env {
	return &expr.Env{
		Datum:      datum,
		Signals:    s,
		Bandwidths: s.bandwidths,
		Data:       s.data,
	}
}

func (s *signals) number(ref program.SignalRef) (float64, error) {
	return ref.Expr.EvalNumber(s.env(nil))
}
