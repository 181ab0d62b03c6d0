package chart

import (
	"math"

	"github.com/dgnsrekt/gchart/internal/argres"
)

// Alignment is an axis label alignment: left, center or right.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ZIndex orders an icon between -1 (behind) and 1 (in front).
type ZIndex float64

var (
	isFill      = argres.Is[Fill]()
	isBounds    = argres.Is[Bounds]()
	isDash      = argres.Is[Dash]()
	isAxisRange = argres.Is[AxisRange]()
	isAlignment = argres.Is[Alignment]()
	isPriority  = argres.Is[Priority]()
	isZIndex    = argres.Is[ZIndex]()
	isPoint     = argres.Is[Point]()
	isOffset    = argres.Is[Offset]()
)

// IsData accepts Data, []float64 and []int.
func IsData(a any) bool {
	switch a.(type) {
	case Data, []float64, []int:
		return true
	}
	return false
}

// ToData converts a value accepted by IsData.
func ToData(a any) Data {
	switch v := a.(type) {
	case Data:
		return v
	case []float64:
		return Data(v)
	case []int:
		out := make(Data, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out
	}
	return nil
}

// IsItemArg accepts an ItemSelector or its text form.
func IsItemArg(a any) bool {
	switch v := a.(type) {
	case ItemSelector:
		return true
	case string:
		_, err := ParseItem(v)
		return err == nil
	}
	return false
}

// ToItem converts an ItemSelector, its text form or a point index.
func ToItem(a any) (ItemSelector, error) {
	switch v := a.(type) {
	case nil:
		return AllItems(), nil
	case ItemSelector:
		return v, nil
	case string:
		return ParseItem(v)
	}
	if f, ok := argres.ToFloat(a); ok {
		if f < 0 {
			return AllItems(), nil
		}
		return Item(f), nil
	}
	return ItemSelector{}, Rangef("unsupported item selector %T", a)
}

// BindError wraps an argument binding failure as a coded error.
func BindError(err error) error {
	if err == nil {
		return nil
	}
	return NewError(CodeArgumentBinding, "argument binding failed", err)
}

var seriesSig = argres.New("series",
	argres.Optional("label", argres.IsString, ""),
	argres.Required("data", IsData),
	argres.Optional("color", argres.AnyOf(argres.IsString, argres.IsStrings), ""),
	argres.Optional("fill", isFill, nil),
	argres.Optional("bounds", isBounds, nil),
	argres.Optional("thickness", argres.IsNumber, 0),
	argres.Optional("dash", isDash, nil),
)

// NewSeries builds a Series from
// [label] data [color|colors] [Fill] [Bounds] [thickness] [Dash].
func NewSeries(args ...any) (Series, error) {
	rec, err := seriesSig.Bind(args...)
	if err != nil {
		return Series{}, BindError(err)
	}
	s := Series{
		Label:     rec.String("label"),
		Data:      ToData(rec.Value("data")),
		Thickness: rec.Float("thickness"),
	}
	switch c := rec.Value("color").(type) {
	case string:
		s.Color = c
	case []string:
		s.Colors = c
	}
	if f, ok := rec.Value("fill").(Fill); ok {
		s.Fill = &f
	}
	if b, ok := rec.Value("bounds").(Bounds); ok {
		s.MinValue, s.MaxValue = &b.Min, &b.Max
	}
	if d, ok := rec.Value("dash").(Dash); ok {
		s.Dash = &d
	}
	if err := s.Data.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// SolidFill is a single colour fill.
func SolidFill(color string) Fill { return Fill{Color: color} }

// NewGradient spreads colours evenly along a gradient. angle is a number of
// degrees or one of diagonalDown, diagonalUp, horizontal, vertical.
func NewGradient(angle any, colors ...string) (Fill, error) {
	a, err := resolveAngle(angle)
	if err != nil {
		return Fill{}, err
	}
	if len(colors) < 2 {
		return Fill{}, Rangef("gradient needs at least two colours, got %d", len(colors))
	}
	step := 1 / float64(len(colors)-1)
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		stops[i] = ColorStop{Color: c, Offset: math.Round(float64(i)*step*100) / 100}
	}
	return Fill{Gradient: &Gradient{Angle: a, Stops: stops}}, nil
}

// NewStripes alternates colours in equal-width stripes.
func NewStripes(angle any, colors ...string) (Fill, error) {
	a, err := resolveAngle(angle)
	if err != nil {
		return Fill{}, err
	}
	if len(colors) == 0 {
		return Fill{}, Rangef("stripes need at least one colour")
	}
	width := math.Round(100/float64(len(colors))) / 100
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		stops[i] = ColorStop{Color: c, Offset: width}
	}
	return Fill{Gradient: &Gradient{Angle: a, Striped: true, Stops: stops}}, nil
}

func resolveAngle(angle any) (float64, error) {
	if s, ok := angle.(string); ok {
		a, found := GradientAngle(s)
		if !found {
			return 0, Rangef("unknown gradient direction %q", s)
		}
		return a, nil
	}
	if a, ok := argres.ToFloat(angle); ok {
		return a, nil
	}
	return 0, Rangef("gradient angle must be a number or direction name, got %T", angle)
}

var axisSig = argres.New("axis",
	argres.Required("position", argres.IsString),
	argres.Optional("labels", argres.IsStrings, nil),
	argres.Optional("positions", argres.IsNumbers, nil),
	argres.Optional("range", isAxisRange, nil),
	argres.Optional("color", argres.IsString, ""),
	argres.Optional("alignment", isAlignment, Alignment("")),
	argres.Optional("size", argres.IsNumber, 0),
)

// NewAxis builds an Axis from
// position [labels] [positions] [AxisRange] [color] [Alignment] [size].
func NewAxis(args ...any) (Axis, error) {
	rec, err := axisSig.Bind(args...)
	if err != nil {
		return Axis{}, BindError(err)
	}
	pos := rec.String("position")
	if _, ok := AxisCode(pos); !ok {
		return Axis{}, BindError(&argres.BindingError{Signature: "axis", Param: "position", Arg: 0, Reason: "must be top, bottom, left or right"})
	}
	a := Axis{
		Position:  pos,
		Labels:    rec.Strings("labels"),
		Positions: rec.Floats("positions"),
	}
	if r, ok := rec.Value("range").(AxisRange); ok {
		if len(a.Labels) > 0 {
			return Axis{}, BindError(&argres.BindingError{Signature: "axis", Param: "range", Arg: -1, Reason: "labels and range are mutually exclusive"})
		}
		a.Range = &r
	}
	align := argres.Get[Alignment](rec, "alignment")
	if rec.Bound("color") || align != "" || rec.Bound("size") {
		a.Style = &LabelStyle{Color: rec.String("color"), Alignment: string(align), Size: rec.Float("size")}
	}
	return a, nil
}

var markerSig = argres.New("marker",
	argres.Required("shape", argres.IsString),
	argres.Required("color", argres.IsString),
	argres.Required("series", argres.IsInt),
	argres.Required("item", argres.AnyOf(IsItemArg, argres.IsNumber)),
	argres.Optional("size", argres.IsNumber, 10),
	argres.Optional("priority", isPriority, Normal),
	argres.Optional("text", argres.IsString, ""),
)

// NewMarker builds a Marker from
// shape color series item [size] [Priority] [text].
func NewMarker(args ...any) (Marker, error) {
	rec, err := markerSig.Bind(args...)
	if err != nil {
		return Marker{}, BindError(err)
	}
	item, err := ToItem(rec.Value("item"))
	if err != nil {
		return Marker{}, err
	}
	return Marker{
		Shape:    rec.String("shape"),
		Color:    rec.String("color"),
		Series:   rec.Int("series"),
		Item:     item,
		Size:     rec.Float("size"),
		Priority: int(argres.Get[Priority](rec, "priority")),
		Text:     rec.String("text"),
	}, nil
}

// At positions the marker absolutely instead of on a data point.
func (m Marker) At(x, y float64) Marker {
	m.Position = &Point{X: x, Y: y}
	return m
}

// Placed anchors the marker and shifts it by pixel offsets.
func (m Marker) Placed(anchor string, dx, dy int) Marker {
	m.Placement = &Placement{Anchor: anchor, X: dx, Y: dy}
	return m
}

var rangeSig = argres.New("range",
	argres.Optional("vertical", argres.IsBool, false),
	argres.Required("color", argres.IsString),
	argres.Required("start", argres.IsNumber),
	argres.Optional("end", argres.IsNumber, 0),
)

// NewRange builds a Range from [vertical] color start [end].
func NewRange(args ...any) (Range, error) {
	rec, err := rangeSig.Bind(args...)
	if err != nil {
		return Range{}, BindError(err)
	}
	return Range{
		Vertical: rec.Bool("vertical"),
		Color:    rec.String("color"),
		Start:    rec.Float("start"),
		End:      rec.Float("end"),
	}, nil
}

var iconSig = argres.New("icon",
	argres.Required("name", argres.IsString),
	argres.Required("data", argres.IsString),
	argres.Optional("series", argres.IsInt, 0),
	argres.Optional("item", IsItemArg, AllItems()),
	argres.Optional("zindex", isZIndex, nil),
	argres.Optional("position", isPoint, nil),
	argres.Optional("offsets", isOffset, nil),
)

// IconPlacement is the shared trailing parameter list of every icon
// builder: [series] [item] [ZIndex] [Point] [Offset].
var IconPlacement = iconSig.Params[2:]

// NewIcon builds an Icon from
// name data [series] [item] [ZIndex] [Point] [Offset].
func NewIcon(args ...any) (Icon, error) {
	rec, err := iconSig.Bind(args...)
	if err != nil {
		return Icon{}, BindError(err)
	}
	return IconFromRecord(rec.String("name"), rec.String("data"), rec)
}

// IconFromRecord builds an Icon from a record bound with IconPlacement.
func IconFromRecord(name, data string, rec argres.Record) (Icon, error) {
	item, err := ToItem(rec.Value("item"))
	if err != nil {
		return Icon{}, err
	}
	ic := Icon{Name: name, Data: data, Series: rec.Int("series"), Item: item}
	if z, ok := rec.Value("zindex").(ZIndex); ok {
		f := float64(z)
		ic.ZIndex = &f
	}
	if p, ok := rec.Value("position").(Point); ok {
		ic.Position = &p
	}
	if o, ok := rec.Value("offsets").(Offset); ok {
		ic.Offsets = &o
	}
	return ic, nil
}
