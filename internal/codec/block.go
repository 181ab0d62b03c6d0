package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/dgnsrekt/gchart/internal/chart"
)

// ParseScheme recognises a scheme name. Unknown names report false and
// fall back to text.
func ParseScheme(s chart.Scheme) (chart.Scheme, bool) {
	switch s {
	case chart.SchemeText, chart.SchemeScaled, chart.SchemeSimple, chart.SchemeExtended:
		return s, true
	case "":
		return chart.SchemeText, true
	}
	return chart.SchemeText, false
}

// Resolve turns the global limits into concrete bounds. An auto limit is
// the true minimum or maximum of every non-missing value across all series;
// per-series overrides do not take part.
func Resolve(series []chart.Series, min, max chart.Limit) (float64, float64, error) {
	min = min.Or(chart.Fixed(0))
	max = max.Or(chart.Fixed(100))
	if !min.IsAuto() && !max.IsAuto() {
		return min.Value, max.Value, nil
	}
	var all []float64
	for _, s := range series {
		all = append(all, s.Data.Values()...)
	}
	if len(all) == 0 {
		return 0, 0, chart.Rangef("cannot compute scale bounds: no data values")
	}
	lo, hi := stats.Sample{Xs: all}.Bounds()
	if !min.IsAuto() {
		lo = min.Value
	}
	if !max.IsAuto() {
		hi = max.Value
	}
	return lo, hi, nil
}

// Block is an encoded data block: the chd value and, for the scaled
// scheme, the per-series chds bounds.
type Block struct {
	Data    string
	Scaling string
}

// Encode encodes every series under scheme. min and max are resolved global
// bounds; a series' own bounds take precedence. visible, when between 1 and
// len(series)-1, limits how many series are drawn as lines.
//
// A failing series does not stop the others from being encoded; all
// failures are joined into the returned error.
func Encode(scheme chart.Scheme, series []chart.Series, min, max float64, visible int) (Block, error) {
	scheme, _ = ParseScheme(scheme)
	tag, sep := "t", "|"
	switch scheme {
	case chart.SchemeSimple:
		tag, sep = "s", ","
	case chart.SchemeExtended:
		tag, sep = "e", ","
	}
	if visible > 0 && visible < len(series) {
		tag += strconv.Itoa(visible)
	}

	parts := make([]string, len(series))
	var scaling []string
	var errs []error
	for i, s := range series {
		lo, hi := min, max
		if s.MinValue != nil {
			lo = *s.MinValue
		}
		if s.MaxValue != nil {
			hi = *s.MaxValue
		}
		var enc string
		var err error
		switch scheme {
		case chart.SchemeScaled:
			enc = EncodeScaled(s.Data, lo)
			scaling = append(scaling, formatValue(lo), formatValue(hi))
		case chart.SchemeSimple:
			enc, err = EncodeSimple(s.Data, lo, hi)
		case chart.SchemeExtended:
			enc, err = EncodeExtended(s.Data, lo, hi)
		default:
			enc, err = EncodeText(s.Data, lo, hi)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("series %d: %w", i, err))
			continue
		}
		parts[i] = enc
	}
	if len(errs) > 0 {
		return Block{}, errors.Join(errs...)
	}
	return Block{Data: tag + ":" + strings.Join(parts, sep), Scaling: strings.Join(scaling, ",")}, nil
}

// Decode splits a chd value back into per-series data. bounds holds one
// [min, max] pair per series, or a single pair applied to all of them.
func Decode(chd string, bounds [][2]float64) ([]chart.Data, error) {
	tag, body, ok := strings.Cut(chd, ":")
	if !ok || tag == "" {
		return nil, chart.Rangef("data block %q has no scheme tag", chd)
	}
	sep := "|"
	var decode func(string, float64, float64) (chart.Data, error)
	switch tag[0] {
	case 't':
		decode = DecodeText
	case 's':
		sep, decode = ",", DecodeSimple
	case 'e':
		sep, decode = ",", DecodeExtended
	default:
		return nil, chart.Rangef("data block scheme %q unknown", tag)
	}
	chunks := strings.Split(body, sep)
	out := make([]chart.Data, len(chunks))
	for i, c := range chunks {
		b, err := pick(bounds, i)
		if err != nil {
			return nil, err
		}
		d, err := decode(c, b[0], b[1])
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

func pick(bounds [][2]float64, i int) ([2]float64, error) {
	switch {
	case i < len(bounds):
		return bounds[i], nil
	case len(bounds) == 1:
		return bounds[0], nil
	}
	return [2]float64{}, chart.Rangef("no bounds for series %d", i)
}
