// Package icons builds the dynamic icon family: speech bubbles, map pins,
// sticky notes, weather notes, outlined text and embedded charts.
//
// Every builder takes its own leading parameters followed by the shared
// icon placement list [series] [item] [ZIndex] [Point] [Offset]. Use
// series -1 for a freestanding icon.
package icons

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/colour"
)

// Image names a built-in icon image such as "ski" or "caution".
type Image string

// Tail names a bubble tail or, for bubbled embedded charts, its frame
// alignment.
type Tail string

// Shadow is "no", "yes" (the default) or "only".
type Shadow string

const (
	ShadowNo   Shadow = "no"
	ShadowYes  Shadow = "yes"
	ShadowOnly Shadow = "only"
)

// PinStyle is a map pin variant: none, star, left or right.
type PinStyle string

// NoteType selects the note artwork: arrow, balloon, pinned, sticky,
// taped or thought.
type NoteType string

// FontSize is the point size of outlined text.
type FontSize int

// Padding is the pixel padding inside an embedded chart bubble.
type Padding int

// Colors pairs a background (or outline, or frame) colour with a
// foreground (or text, or fill) colour. Empty fields take the builder's
// default.
type Colors struct {
	Back string
	Fore string
}

var tails = map[string]string{
	"bottomLeft": "bb", "topLeft": "bbtl", "topRight": "bbtr", "bottomRight": "bbbr", "none": "bbT",
	"bb": "bb", "bbtl": "bbtl", "bbtr": "bbtr", "bbbr": "bbbr", "bbT": "bbT",
	"edgeBottomLeft": "edge_bl", "edgeBottomCenter": "edge_bc", "edgeBottomRight": "edge_br",
	"edgeTopLeft": "edge_tl", "edgeTopCenter": "edge_tc", "edgeTopRight": "edge_tr",
	"edgeLeftTop": "edge_lt", "edgeLeftCenter": "edge_lc", "edgeLeftBottom": "edge_lb",
	"edgeRightTop": "edge_rt", "edgeRightCenter": "edge_rc", "edgeRightBottom": "edge_rb",
	"edgeBL": "edge_bl", "edgeBC": "edge_bc", "edgeBR": "edge_br",
	"edgeTL": "edge_tl", "edgeTC": "edge_tc", "edgeTR": "edge_tr",
	"edgeLT": "edge_lt", "edgeLC": "edge_lc", "edgeLB": "edge_lb",
	"edgeRT": "edge_rt", "edgeRC": "edge_rc", "edgeRB": "edge_rb",
}

var placements = map[chart.Alignment]string{
	chart.AlignCenter: "h", "centre": "h", chart.AlignLeft: "l", chart.AlignRight: "r",
	"h": "h", "l": "l", "r": "r",
}

var pinStyles = map[PinStyle]string{"none": "pin", "star": "pin_star", "left": "pin_sleft", "right": "pin_sright"}

var shadows = map[Shadow]string{ShadowNo: "", ShadowYes: "_withshadow", ShadowOnly: "_shadow"}

var notes = map[NoteType]string{
	"arrow": "arrow_d", "balloon": "balloon", "pinned": "pinned_c",
	"sticky": "sticky_y", "taped": "taped_y", "thought": "thought",
}

var alignments = map[string]string{
	"topLeft": "lt", "top": "ht", "topRight": "rt", "left": "lv", "center": "hv", "centre": "hv",
	"right": "rv", "bottomLeft": "lb", "bottom": "hb", "bottomRight": "rb",
	"tl": "lt", "lt": "lt", "t": "ht", "ht": "ht", "tr": "rt", "rt": "rt", "l": "l", "lv": "lv",
	"c": "hv", "hc": "hv", "hv": "hv", "r": "rv", "rv": "rv", "bl": "lb", "lb": "lb",
	"b": "hb", "hb": "hb", "br": "rb", "rb": "rb",
}

var embeddedAlignments = map[string]string{
	"topLeft": "tl", "top": "ht", "topRight": "tr", "left": "vl", "center": "hv", "centre": "hv",
	"right": "vr", "bottomLeft": "lb", "bottom": "hb", "bottomRight": "rb",
	"tl": "tl", "t": "ht", "ht": "ht", "tr": "tr", "l": "vl", "vl": "vl", "c": "hv",
	"hv": "hv", "r": "vr", "vr": "vr", "bl": "lb", "lb": "lb", "b": "hb", "hb": "hb", "br": "rb", "rb": "rb",
}

var escapable = regexp.MustCompile(`([@=,;])`)

// EscapeText protects icon text separators with '@'. A '|' starts a new
// line.
func EscapeText(s string) string {
	return strings.ReplaceAll(escapable.ReplaceAllString(s, "@$1"), "|", ",")
}

// ContextualAlignment formats an alignment with pixel offsets for the
// vary and stacking icons, e.g. "hv-0-0" or "lt%205-3".
func ContextualAlignment(position string, dx, dy int) string {
	code, ok := alignments[position]
	if !ok {
		code = "hv"
	}
	return code + offset(dx) + offset(dy)
}

func offset(n int) string {
	switch {
	case n == 0:
		return "-0"
	case n > 0:
		return "%20" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func signature(name string, leading ...argres.Param) argres.Signature {
	params := make([]argres.Param, 0, len(leading)+len(chart.IconPlacement))
	params = append(params, leading...)
	params = append(params, chart.IconPlacement...)
	return argres.New(name, params...)
}

func normalize(c, def string) (string, error) {
	if c == "" {
		c = def
	}
	return colour.Normalize(c)
}

func shadowSuffix(s Shadow) (string, error) {
	if s == "" {
		s = ShadowYes
	}
	suffix, ok := shadows[s]
	if !ok {
		return "", chart.Rangef("unknown shadow %q", s)
	}
	return suffix, nil
}

func colors(c Colors, back, fore string) (string, string, error) {
	b, err := normalize(c.Back, back)
	if err != nil {
		return "", "", err
	}
	f, err := normalize(c.Fore, fore)
	if err != nil {
		return "", "", err
	}
	return b, f, nil
}

var (
	isImage    = argres.Is[Image]()
	isTail     = argres.Is[Tail]()
	isShadow   = argres.Is[Shadow]()
	isPinStyle = argres.Is[PinStyle]()
	isNoteType = argres.Is[NoteType]()
	isFontSize = argres.Is[FontSize]()
	isPadding  = argres.Is[Padding]()
	isColors   = argres.Is[Colors]()
	isAlign    = argres.Is[chart.Alignment]()
)

var bubbleSig = signature("bubble",
	argres.Required("text", argres.IsString),
	argres.Optional("image", isImage, Image("")),
	argres.Optional("tail", isTail, Tail("")),
	argres.Optional("large", argres.IsBool, false),
	argres.Optional("shadow", isShadow, Shadow("")),
	argres.Optional("colors", isColors, Colors{}),
)

// Bubble builds a speech bubble from
// text [Image] [Tail] [large] [Shadow] [Colors] placement...
// Colors default to white on black. Text containing '|' is drawn on
// several lines in a large bubble.
func Bubble(args ...any) (chart.Icon, error) {
	rec, err := bubbleSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, chart.BindError(err)
	}
	text := rec.String("text")
	image := argres.Get[Image](rec, "image")
	large := rec.Bool("large")
	multiline := strings.Contains(text, "|")

	back, fore, err := colors(argres.Get[Colors](rec, "colors"), "white", "black")
	if err != nil {
		return chart.Icon{}, err
	}
	suffix, err := shadowSuffix(argres.Get[Shadow](rec, "shadow"))
	if err != nil {
		return chart.Icon{}, err
	}
	tail, ok := tails[string(argres.Get[Tail](rec, "tail"))]
	if !ok {
		tail = "bb"
	}

	pair := back + "," + fore
	var data strings.Builder
	if image != "" {
		data.WriteString(string(image) + ",")
	}
	data.WriteString(tail + ",")
	if multiline {
		data.WriteString(pair + "," + EscapeText(text))
	} else {
		data.WriteString(EscapeText(text) + "," + pair)
	}

	name := "bubble"
	if image != "" {
		name += "_icon"
	}
	if multiline || (image == "" && large) {
		name += "_texts"
	} else {
		name += "_text"
	}
	if large || multiline {
		name += "_big"
	} else {
		name += "_small"
	}
	return chart.IconFromRecord(name+suffix, data.String(), rec)
}

var pinSig = signature("mapPin",
	argres.Required("letter", argres.IsString),
	argres.Optional("image", isImage, Image("")),
	argres.Optional("style", isPinStyle, PinStyle("")),
	argres.Optional("shadow", isShadow, Shadow("")),
	argres.Optional("colors", isColors, Colors{}),
)

// MapPin builds a map pin from
// letter [Image] [PinStyle] [Shadow] [Colors] placement...
// An image replaces the letter; the pin is white with black text unless
// Colors says otherwise.
func MapPin(args ...any) (chart.Icon, error) {
	rec, err := pinSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, chart.BindError(err)
	}
	image := argres.Get[Image](rec, "image")
	style := argres.Get[PinStyle](rec, "style")
	back, fore, err := colors(argres.Get[Colors](rec, "colors"), "white", "black")
	if err != nil {
		return chart.Icon{}, err
	}
	suffix, err := shadowSuffix(argres.Get[Shadow](rec, "shadow"))
	if err != nil {
		return chart.Icon{}, err
	}

	var data strings.Builder
	if style != "" {
		code, ok := pinStyles[style]
		if !ok {
			code = "pin"
		}
		data.WriteString(code + ",")
	}
	if image != "" {
		data.WriteString(string(image) + "," + back)
	} else {
		data.WriteString(EscapeText(rec.String("letter")) + "," + back + "," + fore)
	}

	name := "map_"
	if style != "" {
		name += "x"
	}
	name += "pin"
	if image != "" {
		name += "_icon"
	} else {
		name += "_letter"
	}
	return chart.IconFromRecord(name+suffix, data.String(), rec)
}

var noteSig = signature("note",
	argres.Required("title", argres.IsString),
	argres.Required("text", argres.IsString),
	argres.Optional("type", isNoteType, NoteType("")),
	argres.Optional("large", argres.IsBool, false),
	argres.Optional("alignment", isAlign, chart.Alignment("")),
	argres.Optional("color", argres.IsString, ""),
)

// Note builds a note from
// title text [NoteType] [large] [Alignment] [color] placement...
// An empty title drops the title line.
func Note(args ...any) (chart.Icon, error) {
	rec, err := noteSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, chart.BindError(err)
	}
	c, err := normalize(rec.String("color"), "black")
	if err != nil {
		return chart.Icon{}, err
	}
	size := "2"
	if rec.Bool("large") {
		size = "1"
	}
	data := noteCode(argres.Get[NoteType](rec, "type")) + "," + size + "," + c + "," +
		placement(argres.Get[chart.Alignment](rec, "alignment")) + ","
	name := "fnote"
	if title := rec.String("title"); title != "" {
		name += "_title"
		data += EscapeText(title) + ","
	}
	data += EscapeText(rec.String("text"))
	return chart.IconFromRecord(name, data, rec)
}

func noteCode(t NoteType) string {
	if code, ok := notes[t]; ok {
		return code
	}
	return "sticky_y"
}

func placement(a chart.Alignment) string {
	if code, ok := placements[a]; ok {
		return code
	}
	return "h"
}

var weatherSig = signature("weather",
	argres.Required("title", argres.IsString),
	argres.Required("text", argres.IsString),
	argres.Optional("type", isNoteType, NoteType("")),
	argres.Optional("image", isImage, Image("")),
)

// Weather builds a weather note from
// title text [NoteType] [Image] placement...
// The image defaults to "sunny".
func Weather(args ...any) (chart.Icon, error) {
	rec, err := weatherSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, chart.BindError(err)
	}
	image := argres.Get[Image](rec, "image")
	if image == "" {
		image = "sunny"
	}
	data := noteCode(argres.Get[NoteType](rec, "type")) + "," + string(image) + "," + EscapeText(rec.String("title"))
	if text := rec.String("text"); text != "" {
		data += "," + EscapeText(text)
	}
	return chart.IconFromRecord("weather", data, rec)
}

var outlineSig = signature("outline",
	argres.Required("text", argres.IsString),
	argres.Optional("size", isFontSize, FontSize(0)),
	argres.Optional("bold", argres.IsBool, false),
	argres.Optional("alignment", isAlign, chart.Alignment("")),
	argres.Optional("colors", isColors, Colors{}),
)

// Outline builds outlined text from
// text [FontSize] [bold] [Alignment] [Colors] placement...
// Colors.Fore is the text colour (white), Colors.Back the outline
// (black).
func Outline(args ...any) (chart.Icon, error) {
	rec, err := outlineSig.Bind(args...)
	if err != nil {
		return chart.Icon{}, chart.BindError(err)
	}
	outline, fill, err := colors(argres.Get[Colors](rec, "colors"), "black", "white")
	if err != nil {
		return chart.Icon{}, err
	}
	size := argres.Get[FontSize](rec, "size")
	if size == 0 {
		size = 10
	}
	weight := "_"
	if rec.Bool("bold") {
		weight = "b"
	}
	data := fill + "," + strconv.Itoa(int(size)) + "," + placement(argres.Get[chart.Alignment](rec, "alignment")) + "," +
		outline + "," + weight + "," + EscapeText(rec.String("text"))
	return chart.IconFromRecord("text_outline", data, rec)
}
