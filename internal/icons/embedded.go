package icons

import (
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

// Embedded chart defaults.
const (
	EmbeddedWidth  = 120
	EmbeddedHeight = 60
)

// embeddedPasses run in this order; the service unescapes them in
// reverse.
var embeddedPasses = []struct{ from, to string }{
	{"@", "@@"},
	{"%", "%25"},
	{",", "@,"},
	{"|", "@|"},
	{";", "@;"},
	{"&", "%26"},
	{"=", "%3D"},
}

// EscapeEmbedded encodes one key or value of an embedded chart's query.
func EscapeEmbedded(s string) string {
	s = replaceFold(s, "%7c", "|")
	for _, p := range embeddedPasses {
		s = strings.ReplaceAll(s, p.from, p.to)
	}
	return s
}

// replaceFold replaces every case-insensitive occurrence of the ASCII
// string from.
func replaceFold(s, from, to string) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	for {
		i := strings.Index(lower, from)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(to)
		s, lower = s[i+len(from):], lower[i+len(from):]
	}
}

var embeddedSig = signature("embedded",
	argres.Optional("bubble", argres.IsBool, false),
	argres.Optional("alignment", argres.IsString, ""),
	argres.Optional("padding", isPadding, nil),
	argres.Optional("colors", isColors, Colors{}),
)

// Embedded compiles spec with c and wraps it as an icon from
// [bubble] [alignment] [Padding] [Colors] placement...
//
// Without bubble the alignment is one of the embedded alignments (default
// bottom-left). With bubble it names a tail and the frame takes Padding
// (4) and Colors (frame #00d0d0, fill #80ffff). Unset sizes default to
// 120x60.
func Embedded(c *assemble.Compiler, spec chart.Spec, args ...any) (chart.Icon, []chart.Warning, error) {
	rec, err := embeddedSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, nil, chart.BindError(err)
	}
	if spec.Width == 0 {
		spec.Width = EmbeddedWidth
	}
	if spec.Height == 0 {
		spec.Height = EmbeddedHeight
	}
	res, err := c.Compile(spec)
	if err != nil {
		return chart.Icon{}, nil, err
	}

	var head string
	bubble := rec.Bool("bubble")
	alignment := rec.String("alignment")
	if bubble {
		tail, ok := tails[alignment]
		if !ok {
			tail = "bb"
		}
		padding := 4
		if p, ok := rec.Value("padding").(Padding); ok {
			padding = int(p)
		}
		frame, fill, err := colors(argres.Get[Colors](rec, "colors"), "#00d0d0", "#80ffff")
		if err != nil {
			return chart.Icon{}, nil, err
		}
		head = tail + "," + strconv.Itoa(padding) + "," + frame + "," + fill
	} else {
		code, ok := embeddedAlignments[alignment]
		if !ok {
			code = "lb"
		}
		head = code
	}

	parts := make([]string, 0, len(res.Params)+1)
	parts = append(parts, head)
	for _, p := range res.Params {
		parts = append(parts, EscapeEmbedded(p.Key)+","+EscapeEmbedded(p.Value))
	}
	name := "ec"
	if bubble {
		name = "ecb"
	}
	ic, err := chart.IconFromRecord(name, strings.Join(parts, ","), rec)
	return ic, res.Warnings, err
}
