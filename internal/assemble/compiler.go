// Package assemble compiles a chart.Spec into the ordered query parameters
// of a chart URL.
package assemble

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/codec"
)

// Param is one wire parameter. Value is already escaped.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Result is the outcome of one compilation.
type Result struct {
	URL      string          `json:"url"`
	Query    string          `json:"query"`
	Params   []Param         `json:"params"`
	Length   int             `json:"length"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	TypeCode string          `json:"type_code"`
	Warnings []chart.Warning `json:"warnings,omitempty"`
}

// Get returns the first value for key.
func (r *Result) Get(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Compiler turns specs into chart URLs. It holds only read-only state and
// is safe for concurrent use.
type Compiler struct {
	defaults chart.Defaults
	logger   *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) { c.logger = l }
}

// NewCompiler returns a Compiler using d, completed from the built-in
// defaults.
func NewCompiler(d chart.Defaults, opts ...Option) *Compiler {
	c := &Compiler{defaults: d.Merge(chart.BuiltinDefaults()), logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Defaults returns the table the compiler was built with.
func (c *Compiler) Defaults() chart.Defaults { return c.defaults }

type build struct {
	spec     chart.Spec
	code     string
	scheme   chart.Scheme
	min, max float64
	params   []Param
	warnings []chart.Warning
	errs     []error
}

func (b *build) add(key, value string) {
	b.params = append(b.params, Param{Key: key, Value: value})
}

func (b *build) warn(code, format string, args ...any) {
	b.warnings = append(b.warnings, chart.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (b *build) fail(err error) {
	b.errs = append(b.errs, err)
}

var groups = []func(*build){
	(*build).size,
	(*build).format,
	(*build).chartType,
	(*build).data,
	(*build).margins,
	(*build).functions,
	(*build).barSizing,
	(*build).lineStyles,
	(*build).colours,
	(*build).title,
	(*build).axes,
	(*build).backgrounds,
	(*build).grid,
	(*build).markers,
	(*build).icons,
	(*build).legend,
	(*build).extensions,
}

// Compile produces the URL for spec. Unknown types, shapes and schemes
// fall back to defaults and are reported as warnings; colour, range and
// encoding failures abort the compile.
func (c *Compiler) Compile(spec chart.Spec) (*Result, error) {
	spec = c.defaults.Apply(spec)
	b := &build{spec: spec}

	code, ok := chart.TypeCode(spec.Type)
	if !ok {
		b.warn(chart.CodeUnknownType, "chart type %q unknown, using %s", spec.Type, chart.DefaultTypeCode)
		code = chart.DefaultTypeCode
	}
	b.code = code
	if chart.IsMapType(code) && b.spec.Map == nil {
		b.spec.Map = &chart.MapSpec{DefaultColor: c.defaults.MapDefaultColor, Colors: c.defaults.MapColors}
	}

	scheme, ok := codec.ParseScheme(spec.Encoding)
	if !ok {
		b.warn(chart.CodeUnknownType, "encoding %q unknown, using text", spec.Encoding)
	}
	b.scheme = scheme

	if b.carriesData() {
		for i, s := range spec.Series {
			if err := s.Data.Validate(); err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
		}
		min, max, err := codec.Resolve(spec.Series, spec.MinValue, spec.MaxValue)
		if err != nil {
			return nil, err
		}
		b.min, b.max = min, max
	}

	for _, g := range groups {
		g(b)
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	parts := make([]string, len(b.params))
	for i, p := range b.params {
		parts[i] = p.Key + "=" + p.Value
	}
	query := strings.Join(parts, "&")
	res := &Result{
		URL:      c.defaults.BaseURL + query,
		Query:    query,
		Params:   b.params,
		Width:    b.spec.Width,
		Height:   b.spec.Height,
		TypeCode: b.code,
	}
	res.Length = len(res.URL)
	if c.defaults.MaxURLLength > 0 && res.Length > c.defaults.MaxURLLength {
		b.warn(chart.CodeURLTooLong, "URL is %d characters, over %d; send it with POST", res.Length, c.defaults.MaxURLLength)
	}
	res.Warnings = b.warnings
	for _, w := range res.Warnings {
		c.logger.Warn("chart compile fallback", "code", w.Code, "message", w.Message)
	}
	return res, nil
}

func (b *build) carriesData() bool {
	return b.code != "qr" && !chart.IsLabelOnlyType(b.code)
}

// ClampSize bounds each side to [10, 1000] (600 for maps) and then
// shortens the height until the area is at most 300000 pixels.
func ClampSize(code string, width, height int) (int, int) {
	maxSide := 1000
	if chart.IsMapType(code) {
		maxSide = 600
	}
	clamp := func(v int) int {
		switch {
		case v < 10:
			return 10
		case v > maxSide:
			return maxSide
		}
		return v
	}
	width, height = clamp(width), clamp(height)
	if width*height > 300000 {
		height = 300000 / width
	}
	return width, height
}

func (b *build) size() {
	b.spec.Width, b.spec.Height = ClampSize(b.code, b.spec.Width, b.spec.Height)
	b.add("chs", strconv.Itoa(b.spec.Width)+"x"+strconv.Itoa(b.spec.Height))
}

func (b *build) format() {
	switch b.spec.Format {
	case "", "png":
	case "gif", "json":
		b.add("chof", b.spec.Format)
	default:
		b.warn(chart.CodeUnknownType, "output format %q unknown, using png", b.spec.Format)
	}
}

func (b *build) chartType() {
	v := b.code
	if m := b.spec.Map; b.code == "map" && m != nil && len(m.Box) > 0 {
		box := m.Box
		if len(box) == 1 {
			box = []float64{box[0], box[0], box[0], box[0]}
		}
		parts := make([]string, len(box))
		for i, f := range box {
			parts[i] = num(f)
		}
		if m.LatLong {
			v += ":fixed=" + strings.Join(parts, ",")
		} else {
			v += ":auto=" + strings.Join(parts, ",")
		}
	}
	b.add("cht", v)
}
