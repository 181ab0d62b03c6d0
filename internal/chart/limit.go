package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LimitKind distinguishes an unset, literal or data-derived scale limit.
type LimitKind int

const (
	LimitUnset LimitKind = iota
	LimitFixed
	LimitAuto
)

// Limit is a global minimum or maximum scale value. LimitAuto is the sentinel
// asking for the bound to be computed from the series data before encoding.
type Limit struct {
	Kind  LimitKind
	Value float64
}

// Auto requests the bound be computed from the data.
func Auto() Limit { return Limit{Kind: LimitAuto} }

// Fixed is a literal bound.
func Fixed(v float64) Limit { return Limit{Kind: LimitFixed, Value: v} }

func (l Limit) IsSet() bool  { return l.Kind != LimitUnset }
func (l Limit) IsAuto() bool { return l.Kind == LimitAuto }

// Or returns l when set, otherwise def.
func (l Limit) Or(def Limit) Limit {
	if l.IsSet() {
		return l
	}
	return def
}

func (l Limit) String() string {
	switch l.Kind {
	case LimitAuto:
		return "auto"
	case LimitFixed:
		return formatNumber(l.Value)
	default:
		return ""
	}
}

func parseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "~":
		return Limit{}, nil
	case "auto", "calculate":
		return Auto(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Limit{}, Rangef("scale limit %q is not a number or auto", s)
	}
	return Fixed(v), nil
}

func (l Limit) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LimitFixed:
		return json.Marshal(l.Value)
	case LimitAuto:
		return []byte(`"auto"`), nil
	default:
		return []byte("null"), nil
	}
}

func (l *Limit) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*l = Limit{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*l = Fixed(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("scale limit: %w", err)
	}
	parsed, err := parseLimit(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l *Limit) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := parseLimit(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = parsed
	return nil
}
