// Package codec encodes series data into the four chart data schemes and
// decodes them back.
package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/chart"
)

const (
	simpleAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	extendedAlphabet = simpleAlphabet + "-."

	textMax     = 100
	simpleMax   = 61
	extendedMax = 4095

	simpleMissing   = "_"
	extendedMissing = "__"
	textMissing     = "-1"
)

// round matches half-up rounding of the consuming service.
func round(x float64) float64 { return math.Floor(x + 0.5) }

func formatValue(f float64) string {
	if f == 0 {
		f = 0 // drop negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func checkRange(min, max float64) error {
	if min == max {
		return chart.Rangef("min value %s equals max value", formatValue(min))
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return chart.Rangef("scale bounds must be finite")
	}
	return nil
}

func scale(v, min, max, top float64) float64 {
	return round(top * (v - min) / (max - min))
}

func clampIndex(i float64, top int) int {
	switch {
	case i < 0:
		return 0
	case i > float64(top):
		return top
	}
	return int(i)
}

// EncodeText scales values to 0-100 with two decimals; missing is "-1".
func EncodeText(d chart.Data, min, max float64) (string, error) {
	if err := checkRange(min, max); err != nil {
		return "", err
	}
	parts := make([]string, len(d))
	for i, v := range d {
		if chart.IsMissing(v) {
			parts[i] = textMissing
			continue
		}
		parts[i] = formatValue(round(textMax*(v-min)/(max-min)*100) / 100)
	}
	return strings.Join(parts, ","), nil
}

// DecodeText reverses EncodeText. Values of -1 decode as missing.
func DecodeText(s string, min, max float64) (chart.Data, error) {
	if err := checkRange(min, max); err != nil {
		return nil, err
	}
	if s == "" {
		return chart.Data{}, nil
	}
	fields := strings.Split(s, ",")
	out := make(chart.Data, len(fields))
	for i, f := range fields {
		if f == textMissing {
			out[i] = chart.Missing()
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, chart.Rangef("text value %q: %v", f, err)
		}
		out[i] = min + v*(max-min)/textMax
	}
	return out, nil
}

// EncodeScaled emits raw values; missing values become min-1.
func EncodeScaled(d chart.Data, min float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		if chart.IsMissing(v) {
			v = min - 1
		}
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ",")
}

// DecodeScaled reverses EncodeScaled. Values equal to min-1 decode as missing.
func DecodeScaled(s string, min float64) (chart.Data, error) {
	if s == "" {
		return chart.Data{}, nil
	}
	fields := strings.Split(s, ",")
	out := make(chart.Data, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, chart.Rangef("scaled value %q: %v", f, err)
		}
		if v == min-1 {
			v = chart.Missing()
		}
		out[i] = v
	}
	return out, nil
}

// EncodeSimple maps each value to one character of a 62 symbol alphabet;
// missing is "_". Values outside [min, max] are clamped.
func EncodeSimple(d chart.Data, min, max float64) (string, error) {
	if err := checkRange(min, max); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(d))
	for _, v := range d {
		if chart.IsMissing(v) {
			b.WriteString(simpleMissing)
			continue
		}
		b.WriteByte(simpleAlphabet[clampIndex(scale(v, min, max, simpleMax), simpleMax)])
	}
	return b.String(), nil
}

// DecodeSimple reverses EncodeSimple to the 62 level resolution.
func DecodeSimple(s string, min, max float64) (chart.Data, error) {
	if err := checkRange(min, max); err != nil {
		return nil, err
	}
	out := make(chart.Data, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			out[i] = chart.Missing()
			continue
		}
		n := strings.IndexByte(simpleAlphabet, s[i])
		if n < 0 {
			return nil, chart.Rangef("simple encoding: invalid character %q", s[i])
		}
		out[i] = min + float64(n)*(max-min)/simpleMax
	}
	return out, nil
}

// EncodeExtended maps each value to two characters of a 64 symbol alphabet,
// high digit first; missing is "__". Values outside [min, max] are clamped.
func EncodeExtended(d chart.Data, min, max float64) (string, error) {
	if err := checkRange(min, max); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(2 * len(d))
	for _, v := range d {
		if chart.IsMissing(v) {
			b.WriteString(extendedMissing)
			continue
		}
		n := clampIndex(scale(v, min, max, extendedMax), extendedMax)
		b.WriteByte(extendedAlphabet[n/64])
		b.WriteByte(extendedAlphabet[n%64])
	}
	return b.String(), nil
}

// DecodeExtended reverses EncodeExtended to the 4096 level resolution.
func DecodeExtended(s string, min, max float64) (chart.Data, error) {
	if err := checkRange(min, max); err != nil {
		return nil, err
	}
	if len(s)%2 != 0 {
		return nil, chart.Rangef("extended encoding: odd length %d", len(s))
	}
	out := make(chart.Data, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		if s[i:i+2] == extendedMissing {
			out[i/2] = chart.Missing()
			continue
		}
		hi := strings.IndexByte(extendedAlphabet, s[i])
		lo := strings.IndexByte(extendedAlphabet, s[i+1])
		if hi < 0 || lo < 0 {
			return nil, chart.Rangef("extended encoding: invalid pair %q", s[i:i+2])
		}
		out[i/2] = min + float64(hi*64+lo)*(max-min)/extendedMax
	}
	return out, nil
}
