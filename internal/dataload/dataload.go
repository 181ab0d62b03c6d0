// Package dataload reads chart series from CSV, XML and XLSX sources.
//
// Tabular sources may start with a header row naming the series columns
// (label, color, fillColor, minValue, maxValue, lineThickness,
// lineSegmentLine, lineSegmentGap). A column headed xN holds the x value
// of the data cell that follows it; any such column turns the result into
// lineXY series pairs. Cells that are not numbers load as missing values.
package dataload

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dgnsrekt/gchart/internal/chart"
)

// Row is one loaded series whose points may carry x values.
type Row struct {
	Series chart.Series
	// X holds one x value per point, or is nil when the first point has
	// none.
	X chart.Data
}

var fieldNames = map[string]bool{
	"label": true, "color": true, "fillColor": true, "minValue": true, "maxValue": true,
	"lineThickness": true, "lineSegmentLine": true, "lineSegmentGap": true,
}

var xColumn = regexp.MustCompile(`^x\d+$`)

// number parses s as a finite float. "inf" and "NaN" spellings are not
// numbers here.
func number(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseNumber(s string) float64 {
	f, ok := number(s)
	if !ok {
		return chart.Missing()
	}
	return f
}

func isNumber(s string) bool {
	_, ok := number(s)
	return ok
}

type seriesFields struct {
	dashLine, dashGap *float64
}

// setField applies one named series column. Numeric fields that are
// empty or not numbers are left unset.
func (sf *seriesFields) setField(s *chart.Series, name, value string) {
	switch name {
	case "label":
		s.Label = value
		return
	case "color":
		s.Color = value
		return
	case "fillColor":
		if value != "" {
			s.Fill = &chart.Fill{Color: value}
		}
		return
	}
	if !isNumber(value) {
		return
	}
	f := parseNumber(value)
	switch name {
	case "minValue":
		s.MinValue = &f
	case "maxValue":
		s.MaxValue = &f
	case "lineThickness":
		s.Thickness = f
	case "lineSegmentLine":
		sf.dashLine = &f
	case "lineSegmentGap":
		sf.dashGap = &f
	}
}

func (sf *seriesFields) finish(s *chart.Series) {
	if sf.dashLine != nil && sf.dashGap != nil {
		s.Dash = &chart.Dash{Line: *sf.dashLine, Gap: *sf.dashGap}
	}
}

// FromRecords loads rows of cells, one series per row after an optional
// header.
func FromRecords(records [][]string) ([]chart.Series, error) {
	rows, xy := rowsFromRecords(records)
	if xy {
		return SeriesForXYLines(rows), nil
	}
	out := make([]chart.Series, len(rows))
	for i, r := range rows {
		out[i] = r.Series
	}
	return out, nil
}

func rowsFromRecords(records [][]string) ([]Row, bool) {
	if len(records) == 0 {
		return nil, false
	}
	fields := map[int]string{}
	xs := map[int]bool{}
	if first := records[0]; len(first) > 0 && !isNumber(first[0]) {
		for i, name := range first {
			name = strings.TrimSpace(name)
			switch {
			case fieldNames[name]:
				fields[i] = name
			case xColumn.MatchString(name):
				xs[i] = true
			}
		}
		records = records[1:]
	}

	var rows []Row
	xy := false
	for _, rec := range records {
		var (
			row     Row
			sf      seriesFields
			pending *float64
			hasX    []bool
			xvals   chart.Data
		)
		row.Series.Data = chart.Data{}
		for i, cell := range rec {
			switch {
			case fields[i] != "":
				sf.setField(&row.Series, fields[i], cell)
			case xs[i]:
				xy = true
				pending = nil
				if strings.TrimSpace(cell) != "" {
					x := parseNumber(cell)
					pending = &x
				}
			default:
				row.Series.Data = append(row.Series.Data, parseNumber(cell))
				if pending != nil {
					xvals = append(xvals, *pending)
				} else {
					xvals = append(xvals, chart.Missing())
				}
				hasX = append(hasX, pending != nil)
				pending = nil
			}
		}
		sf.finish(&row.Series)
		if len(hasX) > 0 && hasX[0] {
			row.X = xvals
		}
		rows = append(rows, row)
	}
	return rows, xy
}

// SeriesForXYLines splits each row into an x series, which carries the
// colour, and a y series with no colour. Rows without x values get a
// single missing x so the service spaces the points evenly.
func SeriesForXYLines(rows []Row) []chart.Series {
	out := make([]chart.Series, 0, 2*len(rows))
	for _, r := range rows {
		x := r.Series
		x.Data = r.X
		if x.Data == nil {
			x.Data = chart.Data{chart.Missing()}
		}
		y := r.Series
		y.Color, y.Colors = "", nil
		out = append(out, x, y)
	}
	return out
}

// FromCSV reads series from comma separated text.
func FromCSV(r io.Reader) ([]chart.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, chart.NewError(chart.CodeValidation, "read csv", err)
	}
	return FromRecords(records)
}

// FromXLSX reads series from a workbook sheet laid out like the CSV form.
// An empty sheet name reads the first sheet.
func FromXLSX(r io.Reader, sheet string) ([]chart.Series, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, chart.NewError(chart.CodeValidation, "open workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, chart.NewError(chart.CodeValidation, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, chart.NewError(chart.CodeValidation, fmt.Sprintf("read sheet %q", sheet), err)
	}
	return FromRecords(rows)
}

type xmlPoint struct {
	X *string `xml:"x,attr"`
	Y string  `xml:"y,attr"`
}

type xmlSeries struct {
	Label         string     `xml:"label,attr"`
	Color         string     `xml:"color,attr"`
	FillColor     string     `xml:"fillColor,attr"`
	MinValue      string     `xml:"minValue,attr"`
	MaxValue      string     `xml:"maxValue,attr"`
	LineThickness string     `xml:"lineThickness,attr"`
	LineSegments  string     `xml:"lineSegments,attr"`
	Points        []xmlPoint `xml:"point"`
}

// FromXML reads series from
//
//	<data>
//	  <series label="" color="" fillColor="" minValue="" maxValue=""
//	          lineThickness="" lineSegments="line,gap">
//	    <point x="" y=""/>
//	  </series>
//	</data>
//
// where every attribute except point/@y is optional.
func FromXML(r io.Reader) ([]chart.Series, error) {
	var doc struct {
		Series []xmlSeries `xml:"series"`
	}
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, chart.NewError(chart.CodeValidation, "read xml", err)
	}
	rows := make([]Row, 0, len(doc.Series))
	xy := false
	for _, xs := range doc.Series {
		var (
			row Row
			sf  seriesFields
		)
		sf.setField(&row.Series, "label", xs.Label)
		sf.setField(&row.Series, "color", xs.Color)
		sf.setField(&row.Series, "fillColor", xs.FillColor)
		sf.setField(&row.Series, "minValue", xs.MinValue)
		sf.setField(&row.Series, "maxValue", xs.MaxValue)
		sf.setField(&row.Series, "lineThickness", xs.LineThickness)
		if line, gap, ok := strings.Cut(xs.LineSegments, ","); ok {
			sf.setField(&row.Series, "lineSegmentLine", line)
			sf.setField(&row.Series, "lineSegmentGap", gap)
		}
		sf.finish(&row.Series)

		row.Series.Data = make(chart.Data, len(xs.Points))
		var xvals chart.Data
		for i, p := range xs.Points {
			row.Series.Data[i] = parseNumber(p.Y)
			if p.X != nil {
				xy = true
				xvals = append(xvals, parseNumber(*p.X))
			} else {
				xvals = append(xvals, chart.Missing())
			}
		}
		if len(xs.Points) > 0 && xs.Points[0].X != nil {
			row.X = xvals
		}
		rows = append(rows, row)
	}
	if xy {
		return SeriesForXYLines(rows), nil
	}
	out := make([]chart.Series, len(rows))
	for i, r := range rows {
		out[i] = r.Series
	}
	return out, nil
}

// Format is a series source format.
type Format string

const (
	CSV  Format = "csv"
	XML  Format = "xml"
	XLSX Format = "xlsx"
)

// DetectFormat picks a format from a file name or content type.
func DetectFormat(nameOrType string) (Format, bool) {
	s := strings.ToLower(nameOrType)
	switch {
	case strings.Contains(s, "spreadsheetml"), filepath.Ext(s) == ".xlsx", s == "xlsx":
		return XLSX, true
	case strings.Contains(s, "xml"), filepath.Ext(s) == ".xml":
		return XML, true
	case strings.Contains(s, "csv"), filepath.Ext(s) == ".csv", strings.HasPrefix(s, "text/plain"):
		return CSV, true
	}
	return "", false
}

// Load reads series from body in the given format.
func Load(format Format, body []byte) ([]chart.Series, error) {
	switch format {
	case CSV:
		return FromCSV(bytes.NewReader(body))
	case XML:
		return FromXML(bytes.NewReader(body))
	case XLSX:
		return FromXLSX(bytes.NewReader(body), "")
	}
	return nil, chart.NewError(chart.CodeValidation, fmt.Sprintf("unsupported series format %q", format), nil)
}
