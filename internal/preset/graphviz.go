package preset

import (
	"sort"
	"strings"

	"github.com/dgnsrekt/gchart/internal/argres"
	"github.com/dgnsrekt/gchart/internal/chart"
)

// Graph describes a GraphViz graph. Attrs holds graph, node and edge
// defaults keyed by "graph", "node" or "edge"; Nodes holds per-node
// attributes; Edges maps each node to the nodes it links to.
type Graph struct {
	Directed bool                         `json:"directed,omitempty" yaml:"directed,omitempty"`
	Attrs    map[string]map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Nodes    map[string]map[string]string `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges    map[string][]string          `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// DOT renders g in the DOT language. Map keys are written in sorted order
// so equal graphs give equal charts.
func (g Graph) DOT() string {
	var b strings.Builder
	if g.Directed {
		b.WriteString("digraph{")
	} else {
		b.WriteString("graph{")
	}
	sep := ""
	statement := func(s string) {
		b.WriteString(sep)
		b.WriteString(s)
		sep = ";"
	}
	for _, name := range sortedKeys(g.Attrs) {
		statement(name + attrList(g.Attrs[name]))
	}
	for _, name := range sortedKeys(g.Nodes) {
		statement(name + attrList(g.Nodes[name]))
	}
	op := "--"
	if g.Directed {
		op = "->"
	}
	for _, from := range sortedKeys(g.Edges) {
		for _, to := range g.Edges[from] {
			statement(from + op + to)
		}
	}
	b.WriteString("}")
	return b.String()
}

func attrList(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, k := range sortedKeys(attrs) {
		parts = append(parts, k+"="+attrs[k])
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var graphvizSig = argres.New("graphviz",
	argres.Optional("engine", argres.IsString, "dot"),
	argres.Required("graph", argres.AnyOf(argres.IsString, argres.Is[Graph]())),
)

// GraphViz builds a GraphViz chart from [engine] graph, where graph is DOT
// text or a Graph. The engine defaults to dot.
func GraphViz(args ...any) (chart.Spec, error) {
	rec, err := graphvizSig.Bind(args...)
	if err != nil {
		return chart.Spec{}, chart.BindError(err)
	}
	var dot string
	switch g := rec.Value("graph").(type) {
	case string:
		dot = g
	case Graph:
		dot = g.DOT()
	}
	typ := "gv"
	if engine := rec.String("engine"); engine != "" && engine != "dot" {
		typ += ":" + engine
	}
	return chart.Spec{Type: typ, DataLabels: []string{dot}}, nil
}
