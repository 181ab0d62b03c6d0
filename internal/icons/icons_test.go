package icons

import (
	"testing"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

func TestEscapeText(t *testing.T) {
	if got, want := EscapeText("a,b|c@d=e;f"), "a@,b,c@@d@=e@;f"; got != want {
		t.Fatalf("EscapeText() = %q; want %q", got, want)
	}
}

func TestContextualAlignment(t *testing.T) {
	tests := []struct {
		pos    string
		dx, dy int
		want   string
	}{
		{"center", 0, 0, "hv-0-0"},
		{"topLeft", 5, -3, "lt%205-3"},
		{"bogus", 0, 2, "hv-0%202"},
	}
	for _, tt := range tests {
		if got := ContextualAlignment(tt.pos, tt.dx, tt.dy); got != tt.want {
			t.Fatalf("ContextualAlignment(%q, %d, %d) = %q; want %q", tt.pos, tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (chart.Icon, error)
		wantName string
		wantData string
	}{
		{
			name:     "bubble with image",
			build:    func() (chart.Icon, error) { return Bubble("Wheeee!", Image("ski"), 0, chart.Item(7)) },
			wantName: "bubble_icon_text_small_withshadow",
			wantData: "ski,bb,Wheeee!,ffffff,000000",
		},
		{
			name: "multiline bubble",
			build: func() (chart.Icon, error) {
				return Bubble("Sale|now", Tail("bottomRight"), ShadowNo, Colors{Back: "yellow", Fore: "green"}, 0, "every2")
			},
			wantName: "bubble_texts_big",
			wantData: "bbbr,ffff00,008000,Sale,now",
		},
		{
			name:     "large bubble",
			build:    func() (chart.Icon, error) { return Bubble("x", true, ShadowOnly) },
			wantName: "bubble_texts_big_shadow",
			wantData: "bb,x,ffffff,000000",
		},
		{
			name: "styled pin",
			build: func() (chart.Icon, error) {
				return MapPin("R", PinStyle("right"), ShadowNo, Colors{Back: "yellow", Fore: "blue"}, 0, chart.Item(7))
			},
			wantName: "map_xpin_letter",
			wantData: "pin_sright,R,ffff00,0000ff",
		},
		{
			name:     "image pin",
			build:    func() (chart.Icon, error) { return MapPin("", Image("caution"), Colors{Back: "red"}, 0, "every2") },
			wantName: "map_pin_icon_withshadow",
			wantData: "caution,ff0000",
		},
		{
			name:     "untitled note",
			build:    func() (chart.Icon, error) { return Note("", "A bump|in the road", 0, chart.Item(7)) },
			wantName: "fnote",
			wantData: "sticky_y,2,000000,h,A bump,in the road",
		},
		{
			name: "titled note",
			build: func() (chart.Icon, error) {
				return Note("Progress", "3rd Quarter", NoteType("taped"), true, chart.AlignLeft, "red")
			},
			wantName: "fnote_title",
			wantData: "taped_y,1,ff0000,l,Progress,3rd Quarter",
		},
		{
			name:     "weather",
			build:    func() (chart.Icon, error) { return Weather("City", "22-29C", chart.Point{X: 0.2, Y: 0.8}) },
			wantName: "weather",
			wantData: "sticky_y,sunny,City,22-29C",
		},
		{
			name:     "weather without text",
			build:    func() (chart.Icon, error) { return Weather("Storm", "", NoteType("thought"), Image("rain")) },
			wantName: "weather",
			wantData: "thought,rain,Storm",
		},
		{
			name:     "outline",
			build:    func() (chart.Icon, error) { return Outline("Sale", FontSize(20), true, 0, chart.Item(7)) },
			wantName: "text_outline",
			wantData: "ffffff,20,h,000000,b,Sale",
		},
		{
			name:     "outline defaults",
			build:    func() (chart.Icon, error) { return Outline("a,b") },
			wantName: "text_outline",
			wantData: "ffffff,10,h,000000,_,a@,b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic, err := tt.build()
			if err != nil {
				t.Fatalf("build error = %v", err)
			}
			if ic.Name != tt.wantName {
				t.Fatalf("Name = %q; want %q", ic.Name, tt.wantName)
			}
			if ic.Data != tt.wantData {
				t.Fatalf("Data = %q; want %q", ic.Data, tt.wantData)
			}
		})
	}
}

func TestBuilderPlacement(t *testing.T) {
	ic, err := Bubble("Hi", 2, "every3", chart.ZIndex(0.5), chart.Offset{X: 4, Y: -4})
	if err != nil {
		t.Fatalf("Bubble() error = %v", err)
	}
	if ic.Series != 2 || ic.Item != chart.Every(3) || ic.ZIndex == nil || *ic.ZIndex != 0.5 || ic.Offsets == nil {
		t.Fatalf("Bubble() placement = %+v", ic)
	}
	w, err := Weather("City", "", chart.Point{X: 0.2, Y: 0.8})
	if err != nil || w.Position == nil || w.Position.X != 0.2 {
		t.Fatalf("Weather() = %+v, %v; want absolute position", w, err)
	}
}

func TestBuilderErrors(t *testing.T) {
	if _, err := Bubble("x", Colors{Fore: "nope"}); err == nil {
		t.Fatal("Bubble(bad colour) error = nil")
	}
	if _, err := Bubble("x", Shadow("maybe")); err == nil {
		t.Fatal("Bubble(bad shadow) error = nil")
	}
	if _, err := Note("only title"); err == nil {
		t.Fatal("Note(missing text) error = nil")
	}
}

func TestEscapeEmbedded(t *testing.T) {
	if got, want := EscapeEmbedded("a%7Cb@c,d&e=f%g"), "a@|b@@c@,d%26e%3Df%25g"; got != want {
		t.Fatalf("EscapeEmbedded() = %q; want %q", got, want)
	}
}

func TestEmbedded(t *testing.T) {
	c := assemble.NewCompiler(chart.Defaults{})
	spec := chart.Spec{Type: "pie", Series: []chart.Series{{Data: chart.Data{10, 20, 30}}}, DataLabels: []string{"Q1", "Q2"}}

	ic, _, err := Embedded(c, spec, "centre", 0, chart.Item(7))
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	if want := "hv,chs,120x60,cht,p,chd,t:10@,20@,30,chl,Q1@|Q2"; ic.Data != want {
		t.Fatalf("Embedded() data = %q; want %q", ic.Data, want)
	}
	if ic.Name != "ec" {
		t.Fatalf("Embedded() name = %q; want ec", ic.Name)
	}

	ic, _, err = Embedded(c, spec, true, "topLeft", Padding(2), 0, "all")
	if err != nil {
		t.Fatalf("Embedded(bubble) error = %v", err)
	}
	if want := "bbtl,2,00d0d0,80ffff,chs,120x60"; ic.Name != "ecb" || ic.Data[:len(want)] != want {
		t.Fatalf("Embedded(bubble) = %q %q", ic.Name, ic.Data)
	}
}

func TestIconsCompile(t *testing.T) {
	bubble, _ := Bubble("Hi there", 0, chart.Item(1))
	pin, _ := MapPin("A", -1)
	res, err := assemble.NewCompiler(chart.Defaults{}).Compile(chart.Spec{
		Type:   "line",
		Series: []chart.Series{{Data: chart.Data{1, 2}}},
		Icons:  []chart.Icon{bubble, pin},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if v, _ := res.Get("chem"); v != "y;s=bubble_text_small_withshadow;d=bb,Hi%20there,ffffff,000000;ds=0;dp=1" {
		t.Fatalf("chem = %q", v)
	}
	if v, _ := res.Get("chst"); v != "d_map_pin_letter_withshadow" {
		t.Fatalf("chst = %q", v)
	}
	if v, _ := res.Get("chld"); v != "A|ffffff|000000" {
		t.Fatalf("chld = %q", v)
	}
}
