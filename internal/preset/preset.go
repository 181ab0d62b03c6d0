// Package preset returns partially filled specs for the chart kinds that
// need more than a type tag: scatter, venn, meter, map, QR code and
// GraphViz charts. Callers add titles, axes and the rest before
// compiling.
package preset

import (
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/colour"
)

// Colours is a colour list passed where a plain []string would be read as
// labels.
type Colours []string

var isColours = argres.Is[Colours]()

var scatterSig = argres.New("scatter",
	argres.Required("points", isPoints),
	argres.Optional("bounds", argres.AnyOf(argres.NumbersOfLen(2), argres.NumbersOfLen(4)), nil),
	argres.Optional("labels", argres.IsStrings, nil),
	argres.Optional("colors", isColours, nil),
)

func isPoints(a any) bool {
	_, ok := a.([][]float64)
	return ok
}

// Scatter builds a scatter chart from points [x, y] or [x, y, size%] and
// [bounds] [labels] [Colours]. Bounds of two values scale x (and y); four
// values scale x and y separately and switch to scaled encoding. Point
// sizes default to 100.
func Scatter(args ...any) (chart.Spec, error) {
	rec, err := scatterSig.Bind(args...)
	if err != nil {
		return chart.Spec{}, chart.BindError(err)
	}
	points := argres.Get[[][]float64](rec, "points")
	xs, ys, sizes := make(chart.Data, len(points)), make(chart.Data, len(points)), make(chart.Data, len(points))
	for i, p := range points {
		if len(p) < 2 {
			return chart.Spec{}, chart.Rangef("point %d has %d coordinates; want 2 or 3", i, len(p))
		}
		xs[i], ys[i], sizes[i] = p[0], p[1], 100
		if len(p) > 2 && p[2] != 0 {
			sizes[i] = p[2]
		}
	}
	spec := chart.Spec{
		Type:     "scatter",
		Encoding: chart.SchemeText,
		Series:   []chart.Series{{Data: xs}, {Data: ys}, {Data: sizes}},
	}
	if bounds := rec.Floats("bounds"); len(bounds) >= 2 {
		spec.Encoding = chart.SchemeScaled
		spec.Series[0].MinValue, spec.Series[0].MaxValue = &bounds[0], &bounds[1]
		if len(bounds) == 4 {
			spec.Series[1].MinValue, spec.Series[1].MaxValue = &bounds[2], &bounds[3]
		}
	}
	if labels := rec.Strings("labels"); len(labels) > 0 {
		spec.Extensions = append(spec.Extensions, chart.Extension{Name: "chdl", Value: strings.Join(labels, "|")})
	}
	if cs := argres.Get[Colours](rec, "colors"); len(cs) > 0 {
		hex, err := colour.NormalizeAll(cs)
		if err != nil {
			return chart.Spec{}, err
		}
		spec.Extensions = append(spec.Extensions, chart.Extension{Name: "chco", Value: strings.Join(hex, "|")})
	}
	return spec, nil
}

// Venn builds a three circle venn diagram from the relative circle sizes
// and their overlaps.
func Venn(a, b, c, ab, ac, bc, abc float64) chart.Spec {
	return chart.Spec{
		Type:   "venn",
		Series: []chart.Series{{Data: chart.Data{a, b, c, ab, ac, bc, abc}}},
	}
}

// ArrowStyle draws one meter arrow.
type ArrowStyle struct {
	Color string
	Width float64
	Dash  float64
	Space float64
	// Size is the arrow head size; 0 means 15.
	Size float64
}

var meterSig = argres.New("meter",
	argres.Optional("text", argres.AnyOf(argres.IsString, argres.IsStrings), ""),
	argres.Required("values", isMeterValues),
	argres.Optional("max", argres.IsNumber, nil),
	argres.Optional("colors", isColours, nil),
	argres.Optional("labels", argres.IsStrings, nil),
	argres.Optional("styles", argres.Is[[]ArrowStyle](), nil),
)

func isMeterValues(a any) bool {
	if _, ok := a.([][]float64); ok {
		return true
	}
	return argres.IsNumber(a) || argres.IsNumbers(a)
}

// Meter builds a google-o-meter from [text] values [max] [Colours]
// [labels] [[]ArrowStyle]. Values is one number, a list of arrows, or a
// list of lists for several arrow groups. Colours shade the dial bands
// and labels are drawn along it.
func Meter(args ...any) (chart.Spec, error) {
	rec, err := meterSig.Bind(args...)
	if err != nil {
		return chart.Spec{}, chart.BindError(err)
	}
	spec := chart.Spec{Type: "meter", MaxValue: chart.Fixed(100)}
	if rec.Bound("max") {
		spec.MaxValue = chart.Fixed(rec.Float("max"))
	}

	switch v := rec.Value("values").(type) {
	case [][]float64:
		for _, d := range v {
			spec.Series = append(spec.Series, chart.Series{Data: chart.Data(d)})
		}
	default:
		if f, ok := argres.ToFloat(v); ok {
			spec.Series = []chart.Series{{Data: chart.Data{f}}}
		} else {
			spec.Series = []chart.Series{{Data: chart.Data(rec.Floats("values"))}}
		}
	}

	switch t := rec.Value("text").(type) {
	case []string:
		spec.DataLabels = t
	case string:
		spec.DataLabels = []string{t}
	}

	if cs := argres.Get[Colours](rec, "colors"); len(cs) > 0 {
		hex, err := colour.NormalizeAll(cs)
		if err != nil {
			return chart.Spec{}, err
		}
		spec.Extensions = append(spec.Extensions, chart.Extension{Name: "chco", Value: strings.Join(hex, ",")})
	}
	if labels := rec.Strings("labels"); len(labels) > 0 {
		spec.Axes = []chart.Axis{{Position: "y", Labels: labels}}
	}
	if styles := argres.Get[[]ArrowStyle](rec, "styles"); len(styles) > 0 {
		v, err := arrowStyles(styles)
		if err != nil {
			return chart.Spec{}, err
		}
		spec.Extensions = append(spec.Extensions, chart.Extension{Name: "chls", Value: v})
	}
	return spec, nil
}

// arrowStyles lists each arrow's colour, width, dash and space, then every
// arrow head size.
func arrowStyles(styles []ArrowStyle) (string, error) {
	lines := make([]string, len(styles))
	sizes := make([]string, len(styles))
	for i, s := range styles {
		parts := []string{num(s.Width), num(s.Dash), num(s.Space)}
		if s.Color != "" {
			c, err := colour.Normalize(s.Color)
			if err != nil {
				return "", err
			}
			parts = append([]string{c}, parts...)
		}
		lines[i] = strings.Join(parts, ",")
		size := s.Size
		if size == 0 {
			size = 15
		}
		sizes[i] = num(size)
	}
	return strings.Join(lines, "|") + "|" + strings.Join(sizes, "|"), nil
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
