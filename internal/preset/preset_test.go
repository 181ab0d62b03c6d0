package preset

import (
	"reflect"
	"testing"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

func compile(t *testing.T, spec chart.Spec, err error) *assemble.Result {
	t.Helper()
	if err != nil {
		t.Fatalf("preset error = %v", err)
	}
	res, err := assemble.NewCompiler(chart.Defaults{}).Compile(spec)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return res
}

func param(t *testing.T, res *assemble.Result, key, want string) {
	t.Helper()
	if got, _ := res.Get(key); got != want {
		t.Fatalf("%s = %q; want %q (%s)", key, got, want, res.Query)
	}
}

func TestScatter(t *testing.T) {
	spec, err := Scatter([][]float64{{10, 80}, {30, 40, 50}}, []float64{0, 100}, []string{"a"}, Colours{"red"})
	res := compile(t, spec, err)
	param(t, res, "cht", "s")
	param(t, res, "chd", "t:10,30|80,40|100,50")
	param(t, res, "chds", "0,100,0,100,0,100")
	param(t, res, "chdl", "a")
	param(t, res, "chco", "ff0000")

	spec, err = Scatter([][]float64{{1, 2}})
	if err != nil || spec.Encoding != chart.SchemeText {
		t.Fatalf("Scatter(points) = %+v, %v; want text encoding", spec, err)
	}
	if _, err := Scatter([][]float64{{1}}); err == nil {
		t.Fatal("Scatter(short point) error = nil")
	}
}

func TestVenn(t *testing.T) {
	res := compile(t, Venn(100, 80, 60, 10, 30, 30, 10), nil)
	param(t, res, "cht", "v")
	param(t, res, "chd", "t:100,80,60,10,30,30,10")
}

func TestMeter(t *testing.T) {
	spec, err := Meter([]string{"1", "2", "3"}, []float64{10, 30, 70})
	res := compile(t, spec, err)
	param(t, res, "cht", "gom")
	param(t, res, "chd", "t:10,30,70")
	param(t, res, "chl", "1|2|3")

	spec, err = Meter(50, 200, Colours{"red", "lime"}, []string{"lo", "hi"},
		[]ArrowStyle{{Width: 3, Dash: 5, Space: 2}, {Color: "blue", Width: 1, Size: 20}})
	if err != nil {
		t.Fatalf("Meter() error = %v", err)
	}
	if spec.MaxValue != chart.Fixed(200) {
		t.Fatalf("MaxValue = %v; want 200", spec.MaxValue)
	}
	want := []chart.Extension{
		{Name: "chco", Value: "ff0000,00ff00"},
		{Name: "chls", Value: "3,5,2|0000ff,1,0,0|15|20"},
	}
	if !reflect.DeepEqual(spec.Extensions, want) {
		t.Fatalf("Extensions = %+v; want %+v", spec.Extensions, want)
	}
	if len(spec.Axes) != 1 || spec.Axes[0].Position != "y" {
		t.Fatalf("Axes = %+v; want one y axis", spec.Axes)
	}

	spec, err = Meter([][]float64{{10, 20}, {30}})
	if err != nil || len(spec.Series) != 2 {
		t.Fatalf("Meter(groups) = %+v, %v; want 2 series", spec.Series, err)
	}
}

func TestMap(t *testing.T) {
	values := map[string]float64{"AU_VIC": 20, "AU_NSW": 10}
	spec, err := Map(true, Australia, values)
	res := compile(t, spec, err)
	param(t, res, "cht", "map:fixed=-45,110,-10,155")
	param(t, res, "chd", "t:10,20")
	param(t, res, "chld", "AU-NSW|AU-VIC")
	param(t, res, "chco", "bebebe,0000ff,ff0000")

	spec, err = Map("europe", map[string]float64{"FR": 50}, "white", []string{"green", "red"})
	res = compile(t, spec, err)
	param(t, res, "cht", "t")
	param(t, res, "chtm", "europe")
	param(t, res, "chco", "ffffff,008000,ff0000")

	spec, err = Map(5, values)
	if err != nil || !reflect.DeepEqual(spec.Map.Box, []float64{5, 5, 5, 5}) {
		t.Fatalf("Map(5) box = %v, %v", spec.Map.Box, err)
	}
}

func TestQRCode(t *testing.T) {
	spec, err := QRCode("hello", "UTF-8", ECLevel("high"), 2)
	res := compile(t, spec, err)
	param(t, res, "cht", "qr")
	param(t, res, "choe", "UTF-8")
	param(t, res, "chld", "h|2")
	param(t, res, "chl", "hello")

	spec, _ = QRCode("x")
	if spec.QR.Margin != nil || spec.QR.ECLevel != "" {
		t.Fatalf("QRCode(text) = %+v; want no level or margin", spec.QR)
	}
}

func TestGraphDOT(t *testing.T) {
	g := Graph{
		Directed: true,
		Attrs:    map[string]map[string]string{"node": {"shape": "box"}},
		Nodes:    map[string]map[string]string{"A": {"color": "red", "label": "start"}, "B": nil},
		Edges:    map[string][]string{"B": {"C"}, "A": {"B", "C"}},
	}
	want := "digraph{node[shape=box];A[color=red,label=start];B;A->B;A->C;B->C}"
	if got := g.DOT(); got != want {
		t.Fatalf("DOT() = %q; want %q", got, want)
	}
	if got := (Graph{Edges: map[string][]string{"a": {"b"}}}).DOT(); got != "graph{a--b}" {
		t.Fatalf("DOT(undirected) = %q", got)
	}
}

func TestGraphViz(t *testing.T) {
	spec, err := GraphViz("neato", "graph{a--b}")
	if err != nil || spec.Type != "gv:neato" {
		t.Fatalf("GraphViz(neato) = %+v, %v", spec, err)
	}
	spec, err = GraphViz(Graph{Directed: true, Edges: map[string][]string{"A": {"B"}}})
	res := compile(t, spec, err)
	param(t, res, "cht", "gv")
	param(t, res, "chl", "digraph%7BA-%3EB%7D")
	if _, err := GraphViz(42); err == nil {
		t.Fatal("GraphViz(42) error = nil")
	}
}
