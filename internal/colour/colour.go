// Package colour normalises colour names, hex strings and RGB(A) channels
// into the lowercase hex form used on the wire.
package colour

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/chart"
)

var names = map[string]string{
	"aqua":        "008080",
	"black":       "000000",
	"blue":        "0000ff",
	"fuchsia":     "ff00ff",
	"gray":        "808080",
	"green":       "008000",
	"grey":        "808080",
	"lime":        "00ff00",
	"maroon":      "800000",
	"navy":        "000080",
	"olive":       "808000",
	"orange":      "ffa500",
	"purple":      "800080",
	"red":         "ff0000",
	"silver":      "c0c0c0",
	"teal":        "008080",
	"transparent": "00000000",
	"white":       "ffffff",
	"yellow":      "ffff00",
}

// Names lists the symbolic colour names.
func Names() []string {
	out := make([]string, 0, len(names))
	for k := range names {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Normalize converts a colour name or a 6/8 digit hex string (with or
// without a leading '#') to lowercase hex. The empty string stays empty.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if hex, ok := names[strings.ToLower(s)]; ok {
		return hex, nil
	}
	h := strings.ToLower(strings.TrimPrefix(s, "#"))
	if (len(h) == 6 || len(h) == 8) && isHex(h) {
		return h, nil
	}
	return "", chart.Rangef("colour %q is not a known name or 6/8 digit hex value", s)
}

// NormalizeAll normalises each entry of list.
func NormalizeAll(list []string) ([]string, error) {
	out := make([]string, len(list))
	for i, c := range list {
		h, err := Normalize(c)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// RGB formats channels, each in [0, 255], as six or eight hex digits. A
// fourth channel is the alpha value.
func RGB(r, g, b int, a ...int) (string, error) {
	channels := append([]int{r, g, b}, a...)
	if len(channels) > 4 {
		return "", chart.Rangef("too many colour channels: %d", len(channels))
	}
	var sb strings.Builder
	for _, c := range channels {
		if c < 0 || c > 255 {
			return "", chart.Rangef("colour channel %d out of range (0-255)", c)
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String(), nil
}

var (
	namedSig = argres.New("color",
		argres.Required("name", argres.IsString),
		argres.Optional("alpha", argres.IsInt, -1),
	)
	channelSig = argres.New("color",
		argres.Required("r", argres.IsInt),
		argres.Required("g", argres.IsInt),
		argres.Required("b", argres.IsInt),
		argres.Optional("a", argres.IsInt, -1),
	)
)

// Color accepts either (name-or-hex [, alpha]) or (r, g, b [, a]).
func Color(args ...any) (string, error) {
	if len(args) > 0 {
		if _, ok := args[0].(string); ok {
			rec, err := namedSig.Bind(args...)
			if err != nil {
				return "", chart.BindError(err)
			}
			hex, err := Normalize(rec.String("name"))
			if err != nil {
				return "", err
			}
			if hex == "" {
				return "", nil
			}
			if alpha := rec.Int("alpha"); rec.Bound("alpha") {
				if alpha < 0 || alpha > 255 {
					return "", chart.Rangef("colour channel %d out of range (0-255)", alpha)
				}
				hex = fmt.Sprintf("%s%02x", hex[:6], alpha)
			}
			return hex, nil
		}
	}
	rec, err := channelSig.Bind(args...)
	if err != nil {
		return "", chart.BindError(err)
	}
	if rec.Bound("a") {
		return RGB(rec.Int("r"), rec.Int("g"), rec.Int("b"), rec.Int("a"))
	}
	return RGB(rec.Int("r"), rec.Int("g"), rec.Int("b"))
}

func isHex(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
