package insight

// Insight is the user's chart intent.
type Insight struct {
	Chart   ChartType      `yaml:"chart" json:"chart"`
	Columns InsightColumns `yaml:"columns" json:"columns"`
	Facet   *FacetLayout   `yaml:"facet,omitempty" json:"facet,omitempty"`
	// MaxLegends overrides ViewOptions.MaxLegends when positive.
	MaxLegends int `yaml:"maxLegends,omitempty" json:"maxLegends,omitempty"`
}

// InsightColumns binds roles to column names. Empty means unbound.
type InsightColumns struct {
	X     string `yaml:"x,omitempty" json:"x,omitempty"`
	Y     string `yaml:"y,omitempty" json:"y,omitempty"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
	Z     string `yaml:"z,omitempty" json:"z,omitempty"`
	Sort  string `yaml:"sort,omitempty" json:"sort,omitempty"`
	Facet string `yaml:"facet,omitempty" json:"facet,omitempty"`
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Get returns the column name bound to role.
func (c InsightColumns) Get(role Role) string {
	switch role {
	case RoleX:
		return c.X
	case RoleY:
		return c.Y
	case RoleColor:
		return c.Color
	case RoleZ:
		return c.Z
	case RoleSort:
		return c.Sort
	case RoleFacet:
		return c.Facet
	case RoleGroup:
		return c.Group
	default:
		return ""
	}
}

// FacetLayout arranges facet cells in a grid.
type FacetLayout struct {
	// Columns is the number of grid columns; 0 picks a square-ish grid.
	Columns int `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// ViewOptions configures the generated view.
type ViewOptions struct {
	Language   Language     `yaml:"language" json:"language"`
	MaxLegends int          `yaml:"maxLegends" json:"maxLegends"`
	Colors     ColorOptions `yaml:"colors" json:"colors"`
}

// ColorOptions selects colors and color schemes.
type ColorOptions struct {
	// Default fills units when no color role is bound.
	Default string `yaml:"default" json:"default"`
	// Scheme is the quantitative color scheme.
	Scheme string `yaml:"scheme" json:"scheme"`
	// CategoricalScheme colors the legend categories.
	CategoricalScheme string `yaml:"categoricalScheme" json:"categoricalScheme"`
	// BinCount is the initial number of quantitative color bins.
	BinCount int `yaml:"binCount" json:"binCount"`
	Reverse  bool `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// Language holds the localized labels of signal bindings and legends.
type Language struct {
	XBinSize         string `yaml:"xBinSize" json:"xBinSize"`
	YBinSize         string `yaml:"yBinSize" json:"yBinSize"`
	XGridSize        string `yaml:"xGridSize" json:"xGridSize"`
	YGridSize        string `yaml:"yGridSize" json:"yGridSize"`
	InnerPaddingSize string `yaml:"innerPaddingSize" json:"innerPaddingSize"`
	OuterPaddingSize string `yaml:"outerPaddingSize" json:"outerPaddingSize"`
	ColorBinCount    string `yaml:"colorBinCount" json:"colorBinCount"`
	ColorReverse     string `yaml:"colorReverse" json:"colorReverse"`
	TextScale        string `yaml:"textScale" json:"textScale"`
	TextSize         string `yaml:"textSize" json:"textSize"`
	TextTitleSize    string `yaml:"textTitleSize" json:"textTitleSize"`
	TextAngleX       string `yaml:"textAngleX" json:"textAngleX"`
	TextAngleY       string `yaml:"textAngleY" json:"textAngleY"`
	ZProportion      string `yaml:"zProportion" json:"zProportion"`
	FacetColumns     string `yaml:"facetColumns" json:"facetColumns"`
	FacetPadding     string `yaml:"facetPadding" json:"facetPadding"`
	LegendOther      string `yaml:"legendOther" json:"legendOther"`
}

// Defaults used when a request leaves view options unset.
const (
	DefaultMaxLegends        = 19
	DefaultColor             = "steelblue"
	DefaultScheme            = "redyellowgreen"
	DefaultCategoricalScheme = "category20"
	DefaultColorBinCount     = 7
)

// DefaultLanguage returns the English labels.
func DefaultLanguage() Language {
	return Language{
		XBinSize:         "X bin size",
		YBinSize:         "Y bin size",
		XGridSize:        "Sub-grid columns",
		YGridSize:        "Sub-grid rows",
		InnerPaddingSize: "Inner padding size",
		OuterPaddingSize: "Outer padding size",
		ColorBinCount:    "Color bin count",
		ColorReverse:     "Color reverse",
		TextScale:        "Text scale",
		TextSize:         "Text size",
		TextTitleSize:    "Title text size",
		TextAngleX:       "X axis text angle",
		TextAngleY:       "Y axis text angle",
		ZProportion:      "Z height proportion",
		FacetColumns:     "Facet columns",
		FacetPadding:     "Facet padding",
		LegendOther:      "Other",
	}
}

// DefaultViewOptions returns the view options used when none are given.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Language:   DefaultLanguage(),
		MaxLegends: DefaultMaxLegends,
		Colors: ColorOptions{
			Default:           DefaultColor,
			Scheme:            DefaultScheme,
			CategoricalScheme: DefaultCategoricalScheme,
			BinCount:          DefaultColorBinCount,
		},
	}
}

// LegendLimit returns the effective number of legend entries for in.
func (v ViewOptions) LegendLimit(in Insight) int {
	if in.MaxLegends > 0 {
		return in.MaxLegends
	}

	return v.MaxLegends
}
