package chart

// Scheme names a numeric data encoding.
type Scheme string

const (
	SchemeText     Scheme = "text"
	SchemeScaled   Scheme = "scaled"
	SchemeSimple   Scheme = "simple"
	SchemeExtended Scheme = "extended"
)

// Spec is the canonical description of one chart request.
type Spec struct {
	Type          string         `json:"type,omitempty" yaml:"type,omitempty"`
	Format        string         `json:"format,omitempty" yaml:"format,omitempty" doc:"Output format: png (default), gif or json"`
	Width         int            `json:"width,omitempty" yaml:"width,omitempty"`
	Height        int            `json:"height,omitempty" yaml:"height,omitempty"`
	Encoding      Scheme         `json:"encoding,omitempty" yaml:"encoding,omitempty" doc:"text, scaled, simple or extended"`
	VisibleSeries int            `json:"visible_series,omitempty" yaml:"visible_series,omitempty" doc:"Number of series drawn; later series only feed markers"`
	Series        []Series       `json:"series,omitempty" yaml:"series,omitempty"`
	DataLabels    []string       `json:"data_labels,omitempty" yaml:"data_labels,omitempty"`
	MinValue      Limit          `json:"min_value" yaml:"min_value,omitempty"`
	MaxValue      Limit          `json:"max_value" yaml:"max_value,omitempty"`
	Axes          []Axis         `json:"axes,omitempty" yaml:"axes,omitempty"`
	Ranges        []Range        `json:"ranges,omitempty" yaml:"ranges,omitempty"`
	Markers       []Marker       `json:"markers,omitempty" yaml:"markers,omitempty"`
	Icons         []Icon         `json:"icons,omitempty" yaml:"icons,omitempty"`
	Backgrounds   []Background   `json:"backgrounds,omitempty" yaml:"backgrounds,omitempty"`
	Legend        Legend         `json:"legend,omitempty" yaml:"legend,omitempty"`
	Title         Title          `json:"title,omitempty" yaml:"title,omitempty"`
	Margins       *Margins       `json:"margins,omitempty" yaml:"margins,omitempty"`
	Functions     []DataFunction `json:"functions,omitempty" yaml:"functions,omitempty"`
	Bars          *BarSizing     `json:"bars,omitempty" yaml:"bars,omitempty"`
	Grid          *Grid          `json:"grid,omitempty" yaml:"grid,omitempty"`
	Map           *MapSpec       `json:"map,omitempty" yaml:"map,omitempty"`
	QR            *QRSpec        `json:"qr,omitempty" yaml:"qr,omitempty"`
	Extensions    []Extension    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Series is one named sequence of data values.
type Series struct {
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	Data      Data     `json:"data" yaml:"data"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	Colors    []string `json:"colors,omitempty" yaml:"colors,omitempty" doc:"Per-point colours; overrides color"`
	Fill      *Fill    `json:"fill,omitempty" yaml:"fill,omitempty"`
	MinValue  *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Thickness float64  `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Dash      *Dash    `json:"dash,omitempty" yaml:"dash,omitempty"`
}

// Bounds is a per-series min/max override.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Dash is a line/gap pattern in pixels.
type Dash struct {
	Line float64 `json:"line" yaml:"line"`
	Gap  float64 `json:"gap" yaml:"gap"`
}

// Fill is either a solid colour or a gradient/stripe descriptor.
type Fill struct {
	Color    string    `json:"color,omitempty" yaml:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// IsZero reports whether the fill carries nothing to draw.
func (f *Fill) IsZero() bool {
	return f == nil || (f.Color == "" && f.Gradient == nil)
}

// Gradient is a linear gradient or, when Striped, a set of colour stripes.
// For gradients a stop's Offset is its position (0-1); for stripes it is the
// stripe width.
type Gradient struct {
	Angle   float64     `json:"angle" yaml:"angle"`
	Striped bool        `json:"striped,omitempty" yaml:"striped,omitempty"`
	Stops   []ColorStop `json:"stops" yaml:"stops"`
}

type ColorStop struct {
	Color  string  `json:"color" yaml:"color"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Background fills an area of the image: "background", "chart", "transparency".
type Background struct {
	Area string `json:"area" yaml:"area"`
	Fill Fill   `json:"fill" yaml:"fill"`
}

// Axis describes one visible axis.
type Axis struct {
	Position  string        `json:"position" yaml:"position" doc:"top, bottom, left or right"`
	LineColor string        `json:"line_color,omitempty" yaml:"line_color,omitempty"`
	Labels    []string      `json:"labels,omitempty" yaml:"labels,omitempty"`
	Positions []float64     `json:"positions,omitempty" yaml:"positions,omitempty"`
	Range     *AxisRange    `json:"range,omitempty" yaml:"range,omitempty"`
	Style     *LabelStyle   `json:"style,omitempty" yaml:"style,omitempty"`
	Format    *NumberFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Ticks     *TickStyle    `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Mode      string        `json:"mode,omitempty" yaml:"mode,omitempty" doc:"line, ticks, both or none"`
}

type AxisRange struct {
	Start float64  `json:"start" yaml:"start"`
	End   float64  `json:"end" yaml:"end"`
	Step  *float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

type LabelStyle struct {
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	Alignment string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// NumberFormat controls how axis values are printed.
type NumberFormat struct {
	Type          string `json:"type" yaml:"type" doc:"float, percent, scientific or currency"`
	Currency      string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Prefix        string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix        string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Precision     int    `json:"precision,omitempty" yaml:"precision,omitempty"`
	TrailingZeros bool   `json:"trailing_zeros,omitempty" yaml:"trailing_zeros,omitempty"`
	Separators    bool   `json:"separators,omitempty" yaml:"separators,omitempty"`
	Units         string `json:"units,omitempty" yaml:"units,omitempty" doc:"x or y to use data units of that axis"`
}

type TickStyle struct {
	Length int    `json:"length,omitempty" yaml:"length,omitempty"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Range is a horizontal or vertical band drawn across the chart.
type Range struct {
	Vertical bool    `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	Color    string  `json:"color" yaml:"color"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end,omitempty" yaml:"end,omitempty"`
}

// Marker is a shape or text drawn on data points.
type Marker struct {
	Shape     string       `json:"shape" yaml:"shape"`
	Color     string       `json:"color" yaml:"color"`
	Series    int          `json:"series" yaml:"series"`
	Item      ItemSelector `json:"item" yaml:"item"`
	Size      float64      `json:"size,omitempty" yaml:"size,omitempty"`
	Priority  int          `json:"priority,omitempty" yaml:"priority,omitempty"`
	Text      string       `json:"text,omitempty" yaml:"text,omitempty"`
	Placement *Placement   `json:"placement,omitempty" yaml:"placement,omitempty"`
	Position  *Point       `json:"position,omitempty" yaml:"position,omitempty" doc:"Absolute position (0-1); replaces series/item"`
}

// Placement anchors a marker with l/h/r and b/v/t letters plus pixel offsets.
type Placement struct {
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	X      int    `json:"x,omitempty" yaml:"x,omitempty"`
	Y      int    `json:"y,omitempty" yaml:"y,omitempty"`
}

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Offset struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Icon is a dynamic icon. Series -1 requests a freestanding icon.
type Icon struct {
	Name     string       `json:"name" yaml:"name"`
	Data     string       `json:"data" yaml:"data"`
	Series   int          `json:"series" yaml:"series"`
	Item     ItemSelector `json:"item" yaml:"item"`
	ZIndex   *float64     `json:"z_index,omitempty" yaml:"z_index,omitempty"`
	Position *Point       `json:"position,omitempty" yaml:"position,omitempty"`
	Offsets  *Offset      `json:"offsets,omitempty" yaml:"offsets,omitempty"`
}

type Legend struct {
	Position string  `json:"position,omitempty" yaml:"position,omitempty" doc:"top, bottom, left, right; topVertical, bottomVertical"`
	Order    string  `json:"order,omitempty" yaml:"order,omitempty" doc:"l, r, a or comma separated series indexes"`
	Color    string  `json:"color,omitempty" yaml:"color,omitempty"`
	Size     float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

type Title struct {
	Text      string  `json:"text,omitempty" yaml:"text,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Alignment string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}

type Margins struct {
	Left         int `json:"left" yaml:"left"`
	Right        int `json:"right" yaml:"right"`
	Top          int `json:"top" yaml:"top"`
	Bottom       int `json:"bottom" yaml:"bottom"`
	LegendWidth  int `json:"legend_width,omitempty" yaml:"legend_width,omitempty"`
	LegendHeight int `json:"legend_height,omitempty" yaml:"legend_height,omitempty"`
}

// DataFunction asks the service to plot a function of a variable.
type DataFunction struct {
	Series   int     `json:"series" yaml:"series"`
	Variable string  `json:"variable" yaml:"variable"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
	Step     float64 `json:"step" yaml:"step"`
	Function string  `json:"function" yaml:"function"`
}

// BarSizing sets bar width and spacing. Mode "a" sizes bars automatically,
// "r" treats spacings as relative to the bar width.
type BarSizing struct {
	Width        *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Mode         string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Spacing      *float64 `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	GroupSpacing *float64 `json:"group_spacing,omitempty" yaml:"group_spacing,omitempty"`
	ZeroPoint    *float64 `json:"zero_point,omitempty" yaml:"zero_point,omitempty"`
}

type Grid struct {
	XStep   float64 `json:"x_step" yaml:"x_step"`
	YStep   float64 `json:"y_step" yaml:"y_step"`
	Line    float64 `json:"line,omitempty" yaml:"line,omitempty"`
	Gap     float64 `json:"gap,omitempty" yaml:"gap,omitempty"`
	XOffset float64 `json:"x_offset,omitempty" yaml:"x_offset,omitempty"`
	YOffset float64 `json:"y_offset,omitempty" yaml:"y_offset,omitempty"`
}

// MapSpec configures map charts. Area names a region for the original map
// type; Box is either one pixel border, four pixel borders or, with LatLong,
// a south/west/north/east latitude-longitude box.
type MapSpec struct {
	Area         string    `json:"area,omitempty" yaml:"area,omitempty"`
	Box          []float64 `json:"box,omitempty" yaml:"box,omitempty"`
	LatLong      bool      `json:"lat_long,omitempty" yaml:"lat_long,omitempty"`
	Regions      []string  `json:"regions,omitempty" yaml:"regions,omitempty"`
	DefaultColor string    `json:"default_color,omitempty" yaml:"default_color,omitempty"`
	Colors       []string  `json:"colors,omitempty" yaml:"colors,omitempty"`
}

type QRSpec struct {
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" doc:"UTF-8, Shift_JIS or ISO-8859-1"`
	ECLevel  string `json:"ec_level,omitempty" yaml:"ec_level,omitempty" doc:"low, medium, quarter or high"`
	Margin   *int   `json:"margin,omitempty" yaml:"margin,omitempty"`
}

// Extension is a free-form parameter appended after all other groups.
type Extension struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}
