package preset

import (
	"sort"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/chart"
)

// Lat/long boxes (south, west, north, east) for the continents.
var (
	Africa       = []float64{-35, -20, 40, 55}
	Asia         = []float64{-15, 40, 75, 180}
	Australia    = []float64{-45, 110, -10, 155}
	Europe       = []float64{33, -25, 73, 50}
	NorthAmerica = []float64{5, -175, 75, -50}
	SouthAmerica = []float64{-55, -85, 15, -35}
)

var mapSig = argres.New("map",
	argres.Optional("latLong", argres.IsBool, false),
	argres.Optional("area", argres.AnyOf(argres.IsString, argres.IsNumber, argres.NumbersOfLen(4)), nil),
	argres.Required("values", argres.Is[map[string]float64]()),
	argres.Optional("defaultColor", argres.IsString, ""),
	argres.Optional("colors", argres.IsStrings, nil),
)

// Map builds a map chart from [latLong] [area] values [defaultColor]
// [colors]. A string area selects an original map ("europe", "usa"); a
// number or four numbers give pixel borders, or a lat/long box when
// latLong is set. Region codes are plotted in sorted order with '_'
// written as '-'.
func Map(args ...any) (chart.Spec, error) {
	rec, err := mapSig.Bind(args...)
	if err != nil {
		return chart.Spec{}, chart.BindError(err)
	}
	values := argres.Get[map[string]float64](rec, "values")
	regions := make([]string, 0, len(values))
	for name := range values {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	data := make(chart.Data, len(regions))
	for i, name := range regions {
		data[i] = values[name]
		regions[i] = strings.ReplaceAll(name, "_", "-")
	}

	m := &chart.MapSpec{
		LatLong:      rec.Bool("latLong"),
		Regions:      regions,
		DefaultColor: rec.String("defaultColor"),
		Colors:       rec.Strings("colors"),
	}
	spec := chart.Spec{Type: "map", Map: m, Series: []chart.Series{{Data: data}}}
	switch a := rec.Value("area").(type) {
	case nil:
	case string:
		spec.Type = "mapOriginal"
		m.Area = a
	default:
		if f, ok := argres.ToFloat(a); ok {
			m.Box = []float64{f, f, f, f}
		} else {
			m.Box = rec.Floats("area")
		}
	}
	return spec, nil
}

// ECLevel is a QR error correction level: low, medium, quarter or high.
type ECLevel string

var qrSig = argres.New("qrCode",
	argres.Required("text", argres.IsString),
	argres.Optional("encoding", argres.IsString, ""),
	argres.Optional("ecLevel", argres.Is[ECLevel](), ECLevel("")),
	argres.Optional("margin", argres.IsInt, nil),
)

// QRCode builds a QR code from text [encoding] [ECLevel] [margin].
func QRCode(args ...any) (chart.Spec, error) {
	rec, err := qrSig.Bind(args...)
	if err != nil {
		return chart.Spec{}, chart.BindError(err)
	}
	q := &chart.QRSpec{
		Encoding: rec.String("encoding"),
		ECLevel:  string(argres.Get[ECLevel](rec, "ecLevel")),
	}
	if rec.Bound("margin") {
		n := rec.Int("margin")
		q.Margin = &n
	}
	return chart.Spec{Type: "qrCode", QR: q, DataLabels: []string{rec.String("text")}}, nil
}
