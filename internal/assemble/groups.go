package assemble

import (
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/codec"
	"github.com/dgnsrekt/gchart/internal/colour"
)

func (b *build) colour(s string) string {
	h, err := colour.Normalize(s)
	if err != nil {
		b.fail(err)
	}
	return h
}

func (b *build) colourOr(s, def string) string {
	if s == "" {
		s = def
	}
	return b.colour(s)
}

func (b *build) data() {
	switch {
	case b.code == "qr":
		b.qrData()
	case chart.IsLabelOnlyType(b.code):
		labels, _ := joinLabels(b.spec.DataLabels)
		b.add("chl", labels)
	case chart.IsMapType(b.code):
		b.mapData()
	case chart.IsPieType(b.code):
		b.pieData()
	default:
		b.encode(b.spec.Series)
		if labels, ok := joinLabels(b.spec.DataLabels); ok {
			b.add("chl", labels)
		}
	}
}

func (b *build) encode(series []chart.Series) {
	blk, err := codec.Encode(b.scheme, series, b.min, b.max, b.spec.VisibleSeries)
	if err != nil {
		b.fail(err)
		return
	}
	b.add("chd", blk.Data)
	if b.scheme == chart.SchemeScaled {
		b.add("chds", blk.Scaling)
	}
}

// pieData collapses several series into one made of their first values,
// labelled by the series labels unless data labels are given.
func (b *build) pieData() {
	series := b.spec.Series
	var seriesLabels []string
	if len(series) > 1 {
		d := make(chart.Data, len(series))
		for i, s := range series {
			d[i] = chart.Missing()
			if len(s.Data) > 0 {
				d[i] = s.Data[0]
			}
			seriesLabels = append(seriesLabels, s.Label)
		}
		series = []chart.Series{{Data: d}}
	}
	b.encode(series)
	if labels, ok := joinLabels(b.spec.DataLabels); ok {
		b.add("chl", labels)
	} else if labels, ok := joinLabels(seriesLabels); ok {
		b.add("chl", labels)
	}
}

func (b *build) mapData() {
	m := b.spec.Map
	if m == nil {
		m = &chart.MapSpec{}
	}
	if b.code == "t" {
		area := m.Area
		if area == "" {
			area = "world"
		}
		b.add("chtm", area)
	}
	b.encode(b.spec.Series)
	if len(m.Regions) > 0 {
		sep := "|"
		if b.code == "t" {
			sep = ""
		}
		b.add("chld", strings.Join(m.Regions, sep))
	}
	cols := []string{b.colour(m.DefaultColor)}
	for _, c := range m.Colors {
		cols = append(cols, b.colour(c))
	}
	b.add("chco", strings.Join(cols, ","))
}

var ecLevels = map[string]string{"low": "l", "medium": "m", "quarter": "q", "high": "h"}

func (b *build) qrData() {
	q := b.spec.QR
	if q == nil {
		q = &chart.QRSpec{}
	}
	if q.Encoding != "" {
		b.add("choe", q.Encoding)
	}
	if q.ECLevel != "" || q.Margin != nil {
		level := "l"
		if q.ECLevel != "" {
			level = ecLevels[strings.ToLower(q.ECLevel)]
			if level == "" {
				level = strings.ToLower(q.ECLevel[:1])
			}
		}
		if q.Margin != nil {
			level += "|" + strconv.Itoa(*q.Margin)
		}
		b.add("chld", level)
	}
	if labels, ok := joinLabels(b.spec.DataLabels); ok {
		b.add("chl", labels)
	}
}

func (b *build) margins() {
	m := b.spec.Margins
	if m == nil {
		return
	}
	v := strconv.Itoa(m.Left) + "," + strconv.Itoa(m.Right) + "," + strconv.Itoa(m.Top) + "," + strconv.Itoa(m.Bottom)
	if m.LegendWidth != 0 || m.LegendHeight != 0 {
		v += "|" + strconv.Itoa(m.LegendWidth) + "," + strconv.Itoa(m.LegendHeight)
	}
	b.add("chma", v)
}

func (b *build) functions() {
	if len(b.spec.Functions) == 0 {
		return
	}
	parts := make([]string, len(b.spec.Functions))
	for i, f := range b.spec.Functions {
		parts[i] = strings.Join([]string{
			strconv.Itoa(f.Series), escape(f.Variable),
			num(f.Start), num(f.End), num(f.Step), escape(f.Function),
		}, ",")
	}
	b.add("chfd", strings.Join(parts, "|"))
}

func (b *build) barSizing() {
	bs := b.spec.Bars
	if bs == nil || !chart.IsBarType(b.code) {
		return
	}
	if bs.Width != nil || bs.Mode != "" {
		v := bs.Mode
		if v == "" {
			v = num(*bs.Width)
		}
		if bs.Spacing != nil {
			v += "," + num(*bs.Spacing)
			if bs.GroupSpacing != nil {
				v += "," + num(*bs.GroupSpacing)
			}
		}
		b.add("chbh", v)
	}
	if bs.ZeroPoint != nil {
		b.add("chp", num(*bs.ZeroPoint))
	}
}

func (b *build) lineStyles() {
	if !chart.IsLineType(b.code) {
		return
	}
	styled := false
	parts := make([]string, len(b.spec.Series))
	for i, s := range b.spec.Series {
		thickness := s.Thickness
		if thickness > 0 || s.Dash != nil {
			styled = true
		}
		if thickness <= 0 {
			thickness = 1
		}
		parts[i] = num(thickness)
		if s.Dash != nil {
			parts[i] += "," + num(s.Dash.Line) + "," + num(s.Dash.Gap)
		}
	}
	if styled {
		b.add("chls", strings.Join(parts, "|"))
	}
}

// colours emits one entry per series; lineXY charts take the colour from
// the x series of each pair only.
func (b *build) colours() {
	if chart.IsMapType(b.code) {
		return
	}
	var parts []string
	set := false
	for i, s := range b.spec.Series {
		if b.code == "lxy" && i%2 == 1 {
			continue
		}
		var v string
		if len(s.Colors) > 0 {
			cs := make([]string, len(s.Colors))
			for j, c := range s.Colors {
				cs[j] = b.colour(c)
			}
			v = strings.Join(cs, "|")
		} else {
			v = b.colour(s.Color)
		}
		if v != "" {
			set = true
		}
		parts = append(parts, v)
	}
	if set {
		b.add("chco", strings.Join(parts, ","))
	}
}

var titleAlignments = map[string]string{"left": "l", "center": "c", "centre": "c", "right": "r", "l": "l", "c": "c", "r": "r"}

func (b *build) title() {
	t := b.spec.Title
	if t.Text != "" {
		b.add("chtt", escape(t.Text))
	}
	if t.Color == "" && t.Size == 0 && t.Alignment == "" {
		return
	}
	size := t.Size
	if size == 0 {
		size = 20
	}
	v := b.colourOr(t.Color, "black") + "," + num(size)
	if t.Alignment != "" {
		a, ok := titleAlignments[t.Alignment]
		if !ok {
			b.warn(chart.CodeIgnored, "title alignment %q unknown", t.Alignment)
		} else {
			v += "," + a
		}
	}
	b.add("chts", v)
}

var axisModes = map[string]string{"line": "l", "ticks": "t", "both": "lt", "none": "_", "l": "l", "t": "t", "lt": "lt", "_": "_"}

var numberTypes = map[string]string{"float": "f", "percent": "p", "scientific": "e", "currency": "c"}

func (b *build) numberFormat(f *chart.NumberFormat) string {
	if f == nil {
		return ""
	}
	t, ok := numberTypes[f.Type]
	if !ok {
		b.warn(chart.CodeUnknownType, "number format %q unknown, using float", f.Type)
		t = "f"
	}
	if t == "c" {
		cur := strings.ToUpper(f.Currency)
		if cur == "" {
			cur = "USD"
		}
		t += cur
	}
	flags := ""
	if f.TrailingZeros {
		flags += "z"
	}
	if f.Separators {
		flags += "s"
	}
	if f.Units == "x" || f.Units == "y" {
		flags += f.Units
	}
	return "N" + escape(f.Prefix) + "*" + t + strconv.Itoa(f.Precision) + flags + "*" + escape(f.Suffix)
}

func (b *build) axes() {
	if len(b.spec.Axes) == 0 {
		return
	}
	var kinds, labels, positions, ranges, styles, ticks []string
	for i, a := range b.spec.Axes {
		idx := strconv.Itoa(i)
		code, ok := chart.AxisCode(a.Position)
		if !ok {
			b.warn(chart.CodeUnknownType, "axis position %q unknown, using bottom", a.Position)
			code = "x"
		}
		kinds = append(kinds, code)
		if len(a.Labels) > 0 {
			l, _ := joinLabels(a.Labels)
			labels = append(labels, idx+":|"+l)
		}
		if len(a.Positions) > 0 {
			ps := []string{idx}
			for _, p := range a.Positions {
				ps = append(ps, num(p))
			}
			positions = append(positions, strings.Join(ps, ","))
		}
		if a.Range != nil {
			r := idx + "," + num(a.Range.Start) + "," + num(a.Range.End)
			if a.Range.Step != nil {
				r += "," + num(*a.Range.Step)
			}
			ranges = append(ranges, r)
		}
		if s := b.axisStyle(idx, a); s != "" {
			styles = append(styles, s)
		}
		if a.Ticks != nil && a.Ticks.Length != 0 {
			ticks = append(ticks, idx+","+strconv.Itoa(a.Ticks.Length))
		}
	}
	b.add("chxt", strings.Join(kinds, ","))
	for _, g := range []struct {
		key  string
		vals []string
	}{{"chxl", labels}, {"chxp", positions}, {"chxr", ranges}, {"chxs", styles}, {"chxtc", ticks}} {
		if len(g.vals) > 0 {
			b.add(g.key, strings.Join(g.vals, "|"))
		}
	}
}

func (b *build) axisStyle(idx string, a chart.Axis) string {
	tickColor := ""
	if a.Ticks != nil {
		tickColor = a.Ticks.Color
	}
	if a.Style == nil && a.Format == nil && a.Mode == "" && a.LineColor == "" && tickColor == "" {
		return ""
	}
	st := chart.LabelStyle{}
	if a.Style != nil {
		st = *a.Style
	}
	size := st.Size
	if size == 0 {
		size = 10
	}
	labelColour := b.colourOr(st.Color, "gray")
	v := idx + b.numberFormat(a.Format) + "," + labelColour + "," + num(size) + "," + chart.AlignmentCode(st.Alignment)
	if a.Mode == "" && a.LineColor == "" && tickColor == "" {
		return v
	}
	mode, ok := axisModes[a.Mode]
	if !ok {
		if a.Mode != "" {
			b.warn(chart.CodeUnknownType, "axis mode %q unknown, using both", a.Mode)
		}
		mode = "lt"
	}
	v += "," + mode
	if tickColor != "" || a.LineColor != "" {
		v += "," + b.colourOr(tickColor, labelColour)
	}
	if a.LineColor != "" {
		v += "," + b.colour(a.LineColor)
	}
	return v
}

func (b *build) fill(area string, f chart.Fill) string {
	if g := f.Gradient; g != nil {
		kind := "lg"
		if g.Striped {
			kind = "ls"
		}
		v := area + "," + kind + "," + num(g.Angle)
		for _, s := range g.Stops {
			v += "," + b.colour(s.Color) + "," + num(s.Offset)
		}
		return v
	}
	if f.Color != "" {
		return area + ",s," + b.colour(f.Color)
	}
	return ""
}

func (b *build) backgrounds() {
	var parts []string
	for _, bg := range b.spec.Backgrounds {
		area, ok := chart.BackgroundArea(bg.Area)
		if !ok {
			b.warn(chart.CodeUnknownType, "background area %q unknown, ignored", bg.Area)
			continue
		}
		if v := b.fill(area, bg.Fill); v != "" {
			parts = append(parts, v)
		}
	}
	for i, s := range b.spec.Series {
		if s.Fill != nil && s.Fill.Gradient != nil {
			parts = append(parts, b.fill("b"+strconv.Itoa(i), *s.Fill))
		}
	}
	if len(parts) > 0 {
		b.add("chf", strings.Join(parts, "|"))
	}
}

func (b *build) grid() {
	g := b.spec.Grid
	if g == nil || (g.XStep == 0 && g.YStep == 0) {
		return
	}
	v := num(g.XStep) + "," + num(g.YStep)
	if g.Line != 0 || g.Gap != 0 || g.XOffset != 0 || g.YOffset != 0 {
		v += "," + num(g.Line) + "," + num(g.Gap)
		if g.XOffset != 0 || g.YOffset != 0 {
			v += "," + num(g.XOffset) + "," + num(g.YOffset)
		}
	}
	b.add("chg", v)
}

var anchors = map[string]string{
	"left": "l", "center": "h", "centre": "h", "right": "r",
	"bottom": "b", "middle": "v", "top": "t",
}

func placement(p *chart.Placement) string {
	var a strings.Builder
	for _, part := range strings.FieldsFunc(p.Anchor, func(r rune) bool { return r == ',' || r == ' ' }) {
		if code, ok := anchors[part]; ok {
			a.WriteString(code)
		} else {
			a.WriteString(part)
		}
	}
	v := a.String()
	if p.X != 0 || p.Y != 0 {
		v += ":" + strconv.Itoa(p.X) + ":" + strconv.Itoa(p.Y)
	}
	return v
}

func (b *build) markers() {
	var parts []string
	for _, m := range b.spec.Markers {
		code, ok := chart.ShapeCode(m.Shape)
		if !ok {
			b.warn(chart.CodeUnknownType, "marker shape %q unknown, using circle", m.Shape)
			code = chart.DefaultShapeCode
		}
		shape := code
		if chart.IsTextShape(code) {
			shape += escapeMarkerText(m.Text)
		}
		series, item := strconv.Itoa(m.Series), m.Item.MarkerParam()
		if m.Position != nil {
			shape = "@" + shape
			series, item = "0", num(m.Position.X)+":"+num(m.Position.Y)
		}
		size := m.Size
		if size == 0 {
			size = 10
		}
		v := shape + "," + b.colour(m.Color) + "," + series + "," + item + "," + num(size) + "," + strconv.Itoa(m.Priority)
		if m.Placement != nil {
			v += "," + placement(m.Placement)
		}
		parts = append(parts, v)
	}
	for _, r := range b.spec.Ranges {
		kind := "r"
		if r.Vertical {
			kind = "R"
		}
		end := r.End
		if end == 0 {
			end = r.Start + 0.005
		}
		parts = append(parts, kind+","+b.colour(r.Color)+",0,"+num(r.Start)+","+num(end))
	}
	for i, s := range b.spec.Series {
		if s.Fill != nil && s.Fill.Gradient == nil && s.Fill.Color != "" {
			parts = append(parts, "b,"+b.colour(s.Fill.Color)+","+strconv.Itoa(i)+","+strconv.Itoa(i+1)+",0")
		}
	}
	if len(parts) > 0 {
		b.add("chm", strings.Join(parts, "|"))
	}
}

func (b *build) icons() {
	var parts []string
	var free *chart.Icon
	for i := range b.spec.Icons {
		ic := b.spec.Icons[i]
		if ic.Series == -1 {
			if free != nil {
				b.warn(chart.CodeIgnored, "freestanding icon %q replaced by %q", free.Name, ic.Name)
			}
			free = &b.spec.Icons[i]
			continue
		}
		v := "y;s=" + ic.Name + ";d=" + ic.Data
		if ic.Position == nil {
			v += ";ds=" + strconv.Itoa(ic.Series) + ";dp=" + ic.Item.IconParam()
		}
		if ic.ZIndex != nil && *ic.ZIndex != 0 {
			v += ";py=" + num(*ic.ZIndex)
		}
		if ic.Position != nil {
			v += ";po=" + num(ic.Position.X) + "," + num(ic.Position.Y)
		}
		if ic.Offsets != nil {
			v += ";of=" + strconv.Itoa(ic.Offsets.X) + "," + strconv.Itoa(ic.Offsets.Y)
		}
		parts = append(parts, escapeIconData(v))
	}
	if len(parts) > 0 {
		b.add("chem", strings.Join(parts, "|"))
	}
	if free != nil {
		b.add("chst", "d_"+free.Name)
		b.add("chld", escapeIconData(strings.ReplaceAll(free.Data, ",", "|")))
	}
}

var legendPositions = map[string]string{
	"top": "t", "bottom": "b", "left": "l", "right": "r",
	"topVertical": "tv", "bottomVertical": "bv",
	"t": "t", "b": "b", "l": "l", "r": "r", "tv": "tv", "bv": "bv",
}

// legend is omitted unless a position is requested and at least one series
// label is non-empty.
func (b *build) legend() {
	l := b.spec.Legend
	if l.Position == "" {
		return
	}
	names := make([]string, len(b.spec.Series))
	for i, s := range b.spec.Series {
		names[i] = s.Label
	}
	labels, ok := joinLabels(names)
	if !ok {
		return
	}
	pos, known := legendPositions[l.Position]
	if !known {
		b.warn(chart.CodeUnknownType, "legend position %q unknown, using right", l.Position)
		pos = "r"
	}
	b.add("chdl", labels)
	if l.Order != "" {
		pos += "|" + l.Order
	}
	b.add("chdlp", pos)
	if l.Color != "" || l.Size != 0 {
		size := l.Size
		if size == 0 {
			size = 11
		}
		b.add("chdls", b.colourOr(l.Color, "black")+","+num(size))
	}
}

func (b *build) extensions() {
	for _, e := range b.spec.Extensions {
		if e.Name == "" {
			b.warn(chart.CodeIgnored, "extension without a name ignored")
			continue
		}
		b.add(e.Name, escape(e.Value))
	}
}
