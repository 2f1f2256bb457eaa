package symbols

import "slices"

// Registry is the closed, enumerable table of every canonical name.
// It is built once at package initialization and never mutated.
type Registry struct {
	data    []Data
	fields  []Field
	host    []Field
	scales  []Scale
	signals []Signal
	builtin []Signal
	marks   []Mark

	dataSet    map[Data]struct{}
	fieldSet   map[Field]struct{}
	hostSet    map[Field]struct{}
	scaleSet   map[Scale]struct{}
	signalSet  map[Signal]struct{}
	builtinSet map[Signal]struct{}
	markSet    map[Mark]struct{}
}

var registry = newRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return registry
}

func newRegistry() *Registry {
	r := &Registry{
		data: []Data{
			DataMain, DataTopLookup, DataLegend, DataXAxis, DataYAxis,
			DataAggregated, DataStackedGroup, DataBarStack, DataFacetCell,
		},
		fields: []Field{
			FieldTopCount, FieldTopIndex, FieldTopValue, FieldTopColor, FieldAxisValue,
			FieldBarBin0, FieldBarBin1, FieldBarStack0, FieldBarStack1, FieldBarColumn, FieldBarRow,
			FieldDensityXBin0, FieldDensityXBin1, FieldDensityYBin0, FieldDensityYBin1,
			FieldDensityCount, FieldDensityRow, FieldDensitySubRows,
			FieldStacksLongBin0, FieldStacksLongBin1, FieldStacksLatBin0, FieldStacksLatBin1,
			FieldStacksStart, FieldStacksEnd, FieldStacksRow, FieldStacksColumn, FieldStacksDepth,
		},
		host:   []Field{FieldCollapsed},
		scales: []Scale{ScaleX, ScaleY, ScaleSize, ScaleColor, ScaleZ},
		signals: []Signal{
			SignalXBins, SignalYBins, SignalXExtent, SignalYExtent, SignalXBinned, SignalYBinned,
			SignalZProportion, SignalZHeight,
			SignalColorBinCount, SignalColorReverse,
			SignalTextScale, SignalTextSize, SignalTextTitleSize, SignalTextAngleX, SignalTextAngleY,
			SignalPlotWidth, SignalPlotHeight, SignalInnerPadding, SignalOuterPadding,
			SignalFacetColumns, SignalFacetRows, SignalFacetPadding,
			SignalDensitySubRowsExtent, SignalDensityCellSize, SignalDensitySide, SignalDensityUnitSize,
			SignalStacksXGridSize, SignalStacksYGridSize, SignalStacksColumns,
			SignalStacksXBandSize, SignalStacksYBandSize, SignalStacksUnitSize,
			SignalStacksUnitHeight, SignalStacksCountHeight, SignalStacksExtent, SignalStacksRowExtent,
			SignalBarStackExtent, SignalBarColumns, SignalBarUnitSize,
		},
		builtin: []Signal{BuiltinWidth, BuiltinHeight},
		marks:   []Mark{MarkFacetGroup},
	}

	r.dataSet = toSet(r.data)
	r.fieldSet = toSet(r.fields)
	r.hostSet = toSet(r.host)
	r.scaleSet = toSet(r.scales)
	r.signalSet = toSet(r.signals)
	r.builtinSet = toSet(r.builtin)
	r.markSet = toSet(r.marks)

	return r
}

func toSet[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}

	return set
}

// Data returns every dataset name in declaration order.
func (r *Registry) Data() []Data { return slices.Clone(r.data) }

// Fields returns every transform-emitted field name in declaration order.
func (r *Registry) Fields() []Field { return slices.Clone(r.fields) }

// HostFields returns the fields the host supplies on primary rows.
func (r *Registry) HostFields() []Field { return slices.Clone(r.host) }

// Scales returns every scale name in declaration order.
func (r *Registry) Scales() []Scale { return slices.Clone(r.scales) }

// Signals returns every signal name in declaration order.
func (r *Registry) Signals() []Signal { return slices.Clone(r.signals) }

// BuiltinSignals returns the signals the rendering engine predefines.
func (r *Registry) BuiltinSignals() []Signal { return slices.Clone(r.builtin) }

// Marks returns every mark name in declaration order.
func (r *Registry) Marks() []Mark { return slices.Clone(r.marks) }

// IsData reports whether name is a registered dataset.
func (r *Registry) IsData(name Data) bool {
	_, ok := r.dataSet[name]
	return ok
}

// IsField reports whether name may appear in an "as" position.
func (r *Registry) IsField(name Field) bool {
	_, ok := r.fieldSet[name]
	return ok
}

// IsHostField reports whether name is supplied by the host.
func (r *Registry) IsHostField(name Field) bool {
	_, ok := r.hostSet[name]
	return ok
}

// IsScale reports whether name is a registered scale.
func (r *Registry) IsScale(name Scale) bool {
	_, ok := r.scaleSet[name]
	return ok
}

// IsSignal reports whether name is a registered signal.
func (r *Registry) IsSignal(name Signal) bool {
	_, ok := r.signalSet[name]
	return ok
}

// IsBuiltinSignal reports whether name is predefined by the rendering engine.
func (r *Registry) IsBuiltinSignal(name Signal) bool {
	_, ok := r.builtinSet[name]
	return ok
}

// IsMark reports whether name is a registered mark name.
func (r *Registry) IsMark(name Mark) bool {
	_, ok := r.markSet[name]
	return ok
}
