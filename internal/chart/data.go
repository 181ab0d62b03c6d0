package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Data is an ordered sequence of nullable values. Missing entries are NaN.
type Data []float64

// Missing returns the marker for an absent data value.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Values returns the non-missing entries of d.
func (d Data) Values() []float64 {
	out := make([]float64, 0, len(d))
	for _, v := range d {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Validate rejects infinite values.
func (d Data) Validate() error {
	for i, v := range d {
		if math.IsInf(v, 0) {
			return Rangef("data value %d is not finite", i)
		}
	}
	return nil
}

func (d Data) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if IsMissing(v) {
			buf.WriteString("null")
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var raw []*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("series data: %w", err)
	}
	out := make(Data, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = Missing()
		} else {
			out[i] = *p
		}
	}
	*d = out
	return nil
}

// MarshalYAML writes missing values as null.
func (d Data) MarshalYAML() (any, error) {
	out := make([]any, len(d))
	for i, v := range d {
		if !IsMissing(v) {
			out[i] = v
		}
	}
	return out, nil
}

func (d *Data) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("series data: line %d: expected a sequence", value.Line)
	}
	out := make(Data, len(value.Content))
	for i, n := range value.Content {
		if n.Tag == "!!null" {
			out[i] = Missing()
			continue
		}
		var v float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("series data: line %d: %w", n.Line, err)
		}
		out[i] = v
	}
	*d = out
	return nil
}
