package dataload

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dgnsrekt/gchart/internal/chart"
)

func sameData(a, b chart.Data) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) != math.IsNaN(b[i]) || !math.IsNaN(a[i]) && a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFromCSV(t *testing.T) {
	in := "label,color,fillColor,lineSegmentLine,lineSegmentGap,v1,v2,v3\n" +
		"A,red,silver,3,2,10,abc,30\n" +
		"B,blue,,,,1,2,3\n"
	got, err := FromCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FromCSV() returned %d series; want 2", len(got))
	}
	a := got[0]
	if a.Label != "A" || a.Color != "red" || a.Fill == nil || a.Fill.Color != "silver" {
		t.Fatalf("series A = %+v", a)
	}
	if a.Dash == nil || a.Dash.Line != 3 || a.Dash.Gap != 2 {
		t.Fatalf("series A dash = %+v; want 3,2", a.Dash)
	}
	if !sameData(a.Data, chart.Data{10, chart.Missing(), 30}) {
		t.Fatalf("series A data = %v", a.Data)
	}
	if b := got[1]; b.Fill != nil || b.Dash != nil || !sameData(b.Data, chart.Data{1, 2, 3}) {
		t.Fatalf("series B = %+v", b)
	}
}

func TestFromCSVWithoutHeader(t *testing.T) {
	got, err := FromCSV(strings.NewReader("1,2,3\n4,5,6\n"))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if len(got) != 2 || got[0].Label != "" || !sameData(got[1].Data, chart.Data{4, 5, 6}) {
		t.Fatalf("FromCSV() = %+v", got)
	}
}

func TestNonFiniteCellsLoadAsMissing(t *testing.T) {
	got, err := FromCSV(strings.NewReader("label,1,2,3,4\nA,inf,-Infinity,NaN,7\n"))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	want := chart.Data{chart.Missing(), chart.Missing(), chart.Missing(), 7}
	if len(got) != 1 || !sameData(got[0].Data, want) {
		t.Fatalf("FromCSV() = %+v; want %v", got, want)
	}
	if err := got[0].Data.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{" 2.5 ", 2.5, true},
		{"-3", -3, true},
		{"inf", 0, false},
		{"+Inf", 0, false},
		{"nan", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		if got, ok := number(tt.in); got != tt.want || ok != tt.ok {
			t.Fatalf("number(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromCSVXY(t *testing.T) {
	got, err := FromCSV(strings.NewReader("label,color,x1,y1,x2,y2\nA,red,0,10,5,20\n"))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FromCSV(xy) returned %d series; want 2", len(got))
	}
	if got[0].Color != "red" || !sameData(got[0].Data, chart.Data{0, 5}) {
		t.Fatalf("x series = %+v", got[0])
	}
	if got[1].Color != "" || got[1].Label != "A" || !sameData(got[1].Data, chart.Data{10, 20}) {
		t.Fatalf("y series = %+v", got[1])
	}
}

func TestFromXML(t *testing.T) {
	in := `<data>
  <series label="s1" color="red" lineSegments="4,2" minValue="0" maxValue="50">
    <point y="10"/><point y="x"/>
  </series>
</data>`
	got, err := FromXML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("FromXML() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FromXML() returned %d series; want 1", len(got))
	}
	s := got[0]
	if s.Label != "s1" || s.Dash == nil || s.Dash.Line != 4 || s.MinValue == nil || *s.MaxValue != 50 {
		t.Fatalf("FromXML() = %+v", s)
	}
	if !sameData(s.Data, chart.Data{10, chart.Missing()}) {
		t.Fatalf("FromXML() data = %v", s.Data)
	}
}

func TestFromXMLXY(t *testing.T) {
	in := `<data>
  <series label="a"><point x="1" y="2"/><point x="3" y="4"/></series>
  <series label="b"><point y="5"/></series>
</data>`
	got, err := FromXML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("FromXML() error = %v", err)
	}
	want := []chart.Data{{1, 3}, {2, 4}, {chart.Missing()}, {5}}
	if len(got) != len(want) {
		t.Fatalf("FromXML(xy) returned %d series; want %d", len(got), len(want))
	}
	for i := range want {
		if !sameData(got[i].Data, want[i]) {
			t.Fatalf("series %d data = %v; want %v", i, got[i].Data, want[i])
		}
	}
}

func TestFromXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &[]any{"label", "color", "v1", "v2"}); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]any{"sales", "green", 12, 18.5}); err != nil {
		t.Fatalf("SetSheetRow() error = %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	got, err := FromXLSX(buf, "")
	if err != nil {
		t.Fatalf("FromXLSX() error = %v", err)
	}
	if len(got) != 1 || got[0].Label != "sales" || got[0].Color != "green" || !sameData(got[0].Data, chart.Data{12, 18.5}) {
		t.Fatalf("FromXLSX() = %+v", got)
	}
	if _, err := FromXLSX(strings.NewReader("not a zip"), ""); err == nil {
		t.Fatal("FromXLSX(garbage) error = nil")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"data.csv", CSV, true},
		{"text/csv", CSV, true},
		{"series.XML", XML, true},
		{"application/xml", XML, true},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", XLSX, true},
		{"book.xlsx", XLSX, true},
		{"image/png", "", false},
	}
	for _, tt := range tests {
		got, ok := DetectFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("DetectFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("json", nil)
	var ce *chart.CodedError
	if !errors.As(err, &ce) || ce.Code != chart.CodeValidation {
		t.Fatalf("Load(json) error = %v; want VALIDATION", err)
	}
}
