package symbols

// Data identifies a dataset definition.
type Data string

// Field identifies a field emitted by a transform stage.
type Field string

// Scale identifies a scale definition.
type Scale string

// Signal identifies a signal, either top-level or emitted by a transform.
type Signal string

// Mark identifies a named mark.
type Mark string

// Datasets.
const (
	DataMain         Data = "data_source"
	DataTopLookup    Data = "data_topcolorlookup"
	DataLegend       Data = "data_legend"
	DataXAxis        Data = "data_xaxis"
	DataYAxis        Data = "data_yaxis"
	DataAggregated   Data = "data_aggregated"
	DataStackedGroup Data = "data_stackedgroup"
	DataBarStack     Data = "data_barstack"
	DataFacetCell    Data = "data_facetcell"
)

// Marks.
const (
	MarkFacetGroup Mark = "mark_facetgroup"
)

// Fields supplied by the host on every row of the primary dataset.
const (
	FieldCollapsed Field = "__collapsed"
)

// Fields produced by transforms.
const (
	FieldTopCount  Field = "__top_count"
	FieldTopIndex  Field = "__top_index"
	FieldTopValue  Field = "__top_value"
	FieldTopColor  Field = "__top_color"
	FieldAxisValue Field = "__axis_value"

	FieldBarBin0   Field = "__bar_bin0"
	FieldBarBin1   Field = "__bar_bin1"
	FieldBarStack0 Field = "__bar_stack0"
	FieldBarStack1 Field = "__bar_stack1"
	FieldBarColumn Field = "__bar_column"
	FieldBarRow    Field = "__bar_row"

	FieldDensityXBin0   Field = "__density_xbin0"
	FieldDensityXBin1   Field = "__density_xbin1"
	FieldDensityYBin0   Field = "__density_ybin0"
	FieldDensityYBin1   Field = "__density_ybin1"
	FieldDensityCount   Field = "__density_count"
	FieldDensityRow     Field = "__density_row"
	FieldDensitySubRows Field = "__density_subrows"

	FieldStacksLongBin0 Field = "__stacks_long_bin0"
	FieldStacksLongBin1 Field = "__stacks_long_bin1"
	FieldStacksLatBin0  Field = "__stacks_lat_bin0"
	FieldStacksLatBin1  Field = "__stacks_lat_bin1"
	FieldStacksStart    Field = "__stacks_start"
	FieldStacksEnd      Field = "__stacks_end"
	FieldStacksRow      Field = "__stacks_row"
	FieldStacksColumn   Field = "__stacks_column"
	FieldStacksDepth    Field = "__stacks_depth"
)

// Scales.
const (
	ScaleX     Scale = "scale_x"
	ScaleY     Scale = "scale_y"
	ScaleSize  Scale = "scale_size"
	ScaleColor Scale = "scale_color"
	ScaleZ     Scale = "scale_z"
)

// Signals.
const (
	SignalXBins       Signal = "RoleX_BinsSignal"
	SignalYBins       Signal = "RoleY_BinsSignal"
	SignalXExtent     Signal = "RoleX_ExtentSignal"
	SignalYExtent     Signal = "RoleY_ExtentSignal"
	SignalXBinned     Signal = "RoleX_BinnedSignal"
	SignalYBinned     Signal = "RoleY_BinnedSignal"
	SignalZProportion Signal = "RoleZ_ProportionSignal"
	SignalZHeight     Signal = "RoleZ_HeightSignal"

	SignalColorBinCount Signal = "RoleColor_BinCountSignal"
	SignalColorReverse  Signal = "RoleColor_ReverseSignal"

	SignalTextScale     Signal = "Text_ScaleSignal"
	SignalTextSize      Signal = "Text_SizeSignal"
	SignalTextTitleSize Signal = "Text_TitleSizeSignal"
	SignalTextAngleX    Signal = "Text_AngleXSignal"
	SignalTextAngleY    Signal = "Text_AngleYSignal"

	SignalPlotWidth    Signal = "Plot_WidthSignal"
	SignalPlotHeight   Signal = "Plot_HeightSignal"
	SignalInnerPadding Signal = "Chart_InnerPaddingSignal"
	SignalOuterPadding Signal = "Chart_OuterPaddingSignal"

	SignalFacetColumns Signal = "Facet_ColumnsSignal"
	SignalFacetRows    Signal = "Facet_RowsSignal"
	SignalFacetPadding Signal = "Facet_PaddingSignal"

	SignalDensitySubRowsExtent Signal = "Density_SubRowsExtentSignal"
	SignalDensityCellSize      Signal = "Density_CellSizeSignal"
	SignalDensitySide          Signal = "Density_SideSignal"
	SignalDensityUnitSize      Signal = "Density_UnitSizeSignal"

	SignalStacksXGridSize   Signal = "Stacks_XGridSizeSignal"
	SignalStacksYGridSize   Signal = "Stacks_YGridSizeSignal"
	SignalStacksColumns     Signal = "Stacks_ColumnsSignal"
	SignalStacksXBandSize   Signal = "Stacks_XBandSizeSignal"
	SignalStacksYBandSize   Signal = "Stacks_YBandSizeSignal"
	SignalStacksUnitSize    Signal = "Stacks_UnitSizeSignal"
	SignalStacksUnitHeight  Signal = "Stacks_UnitHeightSignal"
	SignalStacksCountHeight Signal = "Stacks_CountHeightSignal"
	SignalStacksExtent      Signal = "Stacks_ExtentSignal"
	SignalStacksRowExtent   Signal = "Stacks_RowExtentSignal"

	SignalBarStackExtent Signal = "Bar_StackExtentSignal"
	SignalBarColumns     Signal = "Bar_ColumnsSignal"
	SignalBarUnitSize    Signal = "Bar_UnitSizeSignal"
)

// Signals predefined by the rendering engine.
const (
	BuiltinWidth  Signal = "width"
	BuiltinHeight Signal = "height"
)
