package locate

import (
	"testing"
)

func TestContains(t *testing.T) {
	square := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	tests := []struct {
		name  string
		shape Shape
		x, y  float64
		want  bool
	}{
		{name: "rect", shape: Shape{Kind: Rect, Coords: []float64{0, 0, 10, 10}}, x: 5, y: 5, want: true},
		{name: "reversed rect", shape: Shape{Kind: Rect, Coords: []float64{20, 30, 10, 10}}, x: 15, y: 20, want: true},
		{name: "outside reversed rect", shape: Shape{Kind: Rect, Coords: []float64{20, 30, 10, 10}}, x: 25, y: 20, want: false},
		{name: "rect edge", shape: Shape{Kind: Rect, Coords: []float64{0, 0, 10, 10}}, x: 10, y: 0, want: true},
		{name: "circle", shape: Shape{Kind: Circle, Coords: []float64{5, 5, 3}}, x: 7, y: 7, want: true},
		{name: "circle boundary", shape: Shape{Kind: Circle, Coords: []float64{0, 0, 5}}, x: 3, y: 4, want: true},
		{name: "outside circle", shape: Shape{Kind: Circle, Coords: []float64{0, 0, 5}}, x: 4, y: 4, want: false},
		{name: "polygon inside", shape: Shape{Kind: Poly, Coords: square}, x: 5, y: 5, want: true},
		{name: "polygon outside", shape: Shape{Kind: Poly, Coords: square}, x: 15, y: 15, want: false},
		{name: "triangle wrap edge", shape: Shape{Kind: Poly, Coords: []float64{0, 0, 10, 0, 0, 10}}, x: 6, y: 6, want: false},
		{name: "triangle inside", shape: Shape{Kind: Poly, Coords: []float64{0, 0, 10, 0, 0, 10}}, x: 2, y: 2, want: true},
		{name: "short coords", shape: Shape{Kind: Rect, Coords: []float64{1, 2}}, x: 1, y: 2, want: false},
		{name: "unknown kind", shape: Shape{Kind: "hex", Coords: []float64{0, 0, 10, 10}}, x: 5, y: 5, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Contains(tt.x, tt.y); got != tt.want {
				t.Fatalf("Contains(%v, %v) = %v; want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name         string
		typ          string
		series, item int
	}{
		{"bar0_3", "bar", 0, 3},
		{"legend12", "legend", 12, -1},
		{"axis1_0", "axis", 1, 0},
		{"title", "title", -1, -1},
		{"bar_3", "bar_3", -1, -1},
	}
	for _, tt := range tests {
		typ, s, i := DecodeName(tt.name)
		if typ != tt.typ || s != tt.series || i != tt.item {
			t.Fatalf("DecodeName(%q) = %q, %d, %d; want %q, %d, %d", tt.name, typ, s, i, tt.typ, tt.series, tt.item)
		}
	}
}

func TestLocateJSON(t *testing.T) {
	payload := []byte(`{"chartshape":[
		{"name":"axis0_0","type":"RECT","coords":[0,0,100,100]},
		{"name":"bar1_2","type":"RECT","coords":[10,10,20,20]}
	]}`)
	r, ok, err := LocateJSON(payload, 15, 15)
	if err != nil || !ok {
		t.Fatalf("LocateJSON() = %v, %v, %v; want match", r, ok, err)
	}
	if r.Type != "axis" || r.Series != 0 || r.Item != 0 {
		t.Fatalf("LocateJSON() = %v; want first shape in list order", r)
	}
	if _, ok, _ := LocateJSON(payload, 150, 150); ok {
		t.Fatal("LocateJSON(outside) matched; want no match")
	}
}

func TestParseShapesKey(t *testing.T) {
	shapes, err := Parse([]byte(`{"shapes":[{"name":"circle0_1","type":"circle","coords":[5,5,2]}]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(shapes) != 1 || shapes[0].Kind != Circle {
		t.Fatalf("Parse() = %+v", shapes)
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatal("Parse(bad json) error = nil")
	}
}
