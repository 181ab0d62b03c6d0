// Package locate maps a point on a rendered chart back to the series and
// item drawn there, using the shape metadata returned for chof=json.
package locate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgnsrekt/gchart/internal/chart"
)

// Kind is a shape kind.
type Kind string

const (
	Rect   Kind = "rect"
	Circle Kind = "circle"
	Poly   Kind = "poly"
)

// Shape is one clickable area of a chart.
type Shape struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"type"`
	Coords []float64 `json:"coords"`
}

// Region is a decoded shape name.
type Region struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Series int    `json:"series"`
	Item   int    `json:"item"`
	Shape  Shape  `json:"shape"`
}

// UnmarshalJSON accepts the kind in any case ("RECT", "rect").
func (s *Shape) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name   string    `json:"name"`
		Kind   string    `json:"type"`
		Coords []float64 `json:"coords"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Name, s.Kind, s.Coords = raw.Name, Kind(strings.ToLower(raw.Kind)), raw.Coords
	return nil
}

// Parse reads a shape payload. The list may be keyed "shapes" or
// "chartshape" (the service's own key).
func Parse(payload []byte) ([]Shape, error) {
	var doc struct {
		Shapes     []Shape `json:"shapes"`
		ChartShape []Shape `json:"chartshape"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, chart.NewError(chart.CodeValidation, "parse shape metadata", err)
	}
	if doc.Shapes != nil {
		return doc.Shapes, nil
	}
	return doc.ChartShape, nil
}

// Contains reports whether (x, y) lies inside s. Shapes with too few
// coordinates contain nothing.
func (s Shape) Contains(x, y float64) bool {
	c := s.Coords
	switch s.Kind {
	case Rect:
		if len(c) < 4 {
			return false
		}
		x1, x2 := math.Min(c[0], c[2]), math.Max(c[0], c[2])
		y1, y2 := math.Min(c[1], c[3]), math.Max(c[1], c[3])
		return x >= x1 && x <= x2 && y >= y1 && y <= y2
	case Circle:
		if len(c) < 3 {
			return false
		}
		return math.Hypot(x-c[0], y-c[1]) <= c[2]
	case Poly:
		return inPolygon(c, x, y)
	}
	return false
}

// inPolygon casts a horizontal ray from (x, y) and counts edge crossings.
// The edge from the last vertex back to the first is included.
func inPolygon(c []float64, x, y float64) bool {
	n := len(c) / 2
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := c[2*i], c[2*i+1]
		xj, yj := c[2*j], c[2*j+1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

var namePattern = regexp.MustCompile(`^([a-zA-Z]+)(\d+)(?:_(\d+))?$`)

// DecodeName splits names such as "bar0_3" or "legend1". Names that do
// not follow the pattern keep the whole name as their type with series
// and item -1.
func DecodeName(name string) (typ string, series, item int) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return name, -1, -1
	}
	series, _ = strconv.Atoi(m[2])
	item = -1
	if m[3] != "" {
		item, _ = strconv.Atoi(m[3])
	}
	return m[1], series, item
}

// Locate returns the first shape in list order containing (x, y).
func Locate(shapes []Shape, x, y float64) (Region, bool) {
	for _, s := range shapes {
		if !s.Contains(x, y) {
			continue
		}
		typ, series, item := DecodeName(s.Name)
		return Region{Name: s.Name, Type: typ, Series: series, Item: item, Shape: s}, true
	}
	return Region{}, false
}

// LocateJSON parses payload and locates (x, y) in it.
func LocateJSON(payload []byte, x, y float64) (Region, bool, error) {
	shapes, err := Parse(payload)
	if err != nil {
		return Region{}, false, err
	}
	r, ok := Locate(shapes, x, y)
	return r, ok, nil
}

func (r Region) String() string {
	return fmt.Sprintf("%s series=%d item=%d", r.Type, r.Series, r.Item)
}
