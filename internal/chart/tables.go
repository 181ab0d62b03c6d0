package chart

import (
	"sort"
	"strings"
)

var chartTypes = map[string]string{
	"line":               "lc",
	"lineXY":             "lxy",
	"sparkline":          "ls",
	"barHoriz":           "bhs",
	"barVert":            "bvs",
	"barHorizGrouped":    "bhg",
	"barVertGrouped":     "bvg",
	"barHorizOverlapped": "bho",
	"barVertOverlapped":  "bvo",
	"pie":                "p",
	"pie3D":              "p3",
	"pieConcentric":      "pc",
	"venn":               "v",
	"scatter":            "s",
	"radar":              "r",
	"radarCurved":        "rs",
	"map":                "map",
	"mapOriginal":        "t",
	"meter":              "gom",
	"qrCode":             "qr",
	"formula":            "tx",
	"graphviz":           "gv",
}

// DefaultTypeCode is used when a chart type is not recognised.
const DefaultTypeCode = "p3"

// TypeCode translates a chart type name or wire code into its wire code.
// GraphViz types may carry an engine suffix such as "gv:neato".
func TypeCode(name string) (string, bool) {
	if code, ok := chartTypes[name]; ok {
		return code, true
	}
	if strings.HasPrefix(name, "gv:") || strings.HasPrefix(name, "graphviz:") {
		engine := name[strings.IndexByte(name, ':')+1:]
		if engine == "" || engine == "dot" {
			return "gv", true
		}
		return "gv:" + engine, true
	}
	for _, code := range chartTypes {
		if code == name {
			return code, true
		}
	}
	return "", false
}

// TypeNames lists the symbolic chart type names.
func TypeNames() []string {
	names := make([]string, 0, len(chartTypes))
	for k := range chartTypes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func IsBarType(code string) bool  { return strings.HasPrefix(code, "b") }
func IsLineType(code string) bool { return strings.HasPrefix(code, "l") }
func IsPieType(code string) bool  { return strings.HasPrefix(code, "p") }
func IsMapType(code string) bool  { return code == "map" || code == "t" }

// IsLabelOnlyType reports types whose whole payload is the chl text.
func IsLabelOnlyType(code string) bool {
	return code == "tx" || code == "gv" || strings.HasPrefix(code, "gv:")
}

var shapes = map[string]string{
	"arrow":      "a",
	"circle":     "o",
	"cross":      "x",
	"diamond":    "d",
	"down":       "v",
	"horizontal": "h",
	"plus":       "c",
	"sparkfill":  "B",
	"sparkline":  "D",
	"square":     "s",
	"text":       "t",
	"vertical":   "V",
	"number":     "N",
	"flag":       "f",
	"annotation": "A",
}

// DefaultShapeCode is used when a marker shape is not recognised.
const DefaultShapeCode = "o"

// ShapeCode translates a marker shape name or code.
func ShapeCode(name string) (string, bool) {
	if code, ok := shapes[name]; ok {
		return code, true
	}
	for _, code := range shapes {
		if code == name {
			return code, true
		}
	}
	return "", false
}

// IsTextShape reports shapes whose text follows the shape code.
func IsTextShape(code string) bool {
	return code == "t" || code == "f" || code == "A" || code == "N"
}

// Priority is a marker drawing priority relative to the chart lines.
type Priority int

const (
	Behind Priority = -1
	Normal Priority = 0
	Above  Priority = 1
)

// ParsePriority accepts behind, normal or above.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "behind":
		return Behind, true
	case "normal", "":
		return Normal, true
	case "above":
		return Above, true
	}
	return Normal, false
}

var gradientAngles = map[string]float64{
	"diagonalDown": -45,
	"diagonalUp":   45,
	"horizontal":   0,
	"vertical":     90,
}

// GradientAngle resolves a named gradient direction.
func GradientAngle(name string) (float64, bool) {
	a, ok := gradientAngles[name]
	return a, ok
}

var alignments = map[string]string{
	"left":   "-1",
	"center": "0",
	"centre": "0",
	"right":  "1",
}

// AlignmentCode maps left/center/right onto the axis label codes; numeric
// codes pass through.
func AlignmentCode(name string) string {
	if code, ok := alignments[name]; ok {
		return code
	}
	if name == "" {
		return "0"
	}
	return name
}

var backgroundAreas = map[string]string{
	"background":   "bg",
	"chart":        "c",
	"transparency": "a",
	"bg":           "bg",
	"c":            "c",
	"a":            "a",
}

// BackgroundArea maps an area name to its chf code.
func BackgroundArea(name string) (string, bool) {
	a, ok := backgroundAreas[name]
	return a, ok
}

var axisPositions = map[string]string{
	"bottom": "x",
	"x":      "x",
	"left":   "y",
	"y":      "y",
	"top":    "t",
	"t":      "t",
	"right":  "r",
	"r":      "r",
}

// AxisCode maps an axis position onto its chxt code.
func AxisCode(position string) (string, bool) {
	c, ok := axisPositions[position]
	return c, ok
}
