package chart

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ItemKind identifies how an ItemSelector picks points within a series.
type ItemKind int

const (
	ItemAll ItemKind = iota
	ItemIndex
	ItemEvery
	ItemRange
)

// ItemSelector picks the data points a marker or icon is attached to.
// The zero value selects every point.
type ItemSelector struct {
	Kind  ItemKind
	Index float64
	Every int
	Start int
	End   int
	// Bounded restricts an ItemEvery selector to [Start, End].
	Bounded bool
}

var (
	everyRe = regexp.MustCompile(`^every\s*(\d+)(?:\s*\[\s*(\d+)\s*:\s*(\d+)\s*\])?$`)
	rangeRe = regexp.MustCompile(`^(\d+)\s*:\s*(\d+)$`)
)

// AllItems selects every point in a series.
func AllItems() ItemSelector { return ItemSelector{Kind: ItemAll} }

// Item selects a single (possibly fractional) point.
func Item(i float64) ItemSelector { return ItemSelector{Kind: ItemIndex, Index: i} }

// Every selects every n-th point.
func Every(n int) ItemSelector { return ItemSelector{Kind: ItemEvery, Every: n} }

// EveryWithin selects every n-th point between start and end inclusive.
func EveryWithin(n, start, end int) ItemSelector {
	return ItemSelector{Kind: ItemEvery, Every: n, Start: start, End: end, Bounded: true}
}

// Items selects the points from start to end inclusive.
func Items(start, end int) ItemSelector { return ItemSelector{Kind: ItemRange, Start: start, End: end} }

// ParseItem parses "all", a number, "everyN", "everyN[start:end]" or "start:end".
func ParseItem(s string) (ItemSelector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "all" || s == "-1":
		return AllItems(), nil
	case everyRe.MatchString(s):
		m := everyRe.FindStringSubmatch(s)
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			return ItemSelector{}, Rangef("item selector %q: stride must be positive", s)
		}
		if m[2] == "" {
			return Every(n), nil
		}
		start, _ := strconv.Atoi(m[2])
		end, _ := strconv.Atoi(m[3])
		return EveryWithin(n, start, end), nil
	case rangeRe.MatchString(s):
		m := rangeRe.FindStringSubmatch(s)
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return Items(start, end), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return ItemSelector{}, Rangef("item selector %q is not all, an index, everyN or start:end", s)
	}
	return Item(f), nil
}

// String returns the canonical text form accepted by ParseItem.
func (s ItemSelector) String() string {
	switch s.Kind {
	case ItemIndex:
		return formatNumber(s.Index)
	case ItemEvery:
		if s.Bounded {
			return fmt.Sprintf("every%d[%d:%d]", s.Every, s.Start, s.End)
		}
		return fmt.Sprintf("every%d", s.Every)
	case ItemRange:
		return fmt.Sprintf("%d:%d", s.Start, s.End)
	default:
		return "all"
	}
}

// MarkerParam renders the selector in marker (chm) syntax.
func (s ItemSelector) MarkerParam() string {
	switch s.Kind {
	case ItemIndex:
		return formatNumber(s.Index)
	case ItemEvery:
		if s.Bounded {
			return fmt.Sprintf("%d:%d:%d", s.Start, s.End, s.Every)
		}
		return "-" + strconv.Itoa(s.Every)
	case ItemRange:
		return fmt.Sprintf("%d:%d", s.Start, s.End)
	default:
		return "-1"
	}
}

// IconParam renders the selector in dynamic icon (chem dp=) syntax.
func (s ItemSelector) IconParam() string {
	switch s.Kind {
	case ItemIndex:
		return formatNumber(s.Index)
	case ItemEvery:
		if s.Bounded {
			return fmt.Sprintf("range,%d,%d,%d", s.Start, s.End, s.Every)
		}
		return "every," + strconv.Itoa(s.Every)
	case ItemRange:
		return fmt.Sprintf("range,%d,%d", s.Start, s.End)
	default:
		return "all"
	}
}

func (s ItemSelector) MarshalJSON() ([]byte, error) {
	if s.Kind == ItemIndex {
		return json.Marshal(s.Index)
	}
	return json.Marshal(s.String())
}

func (s *ItemSelector) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*s = AllItems()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		if f < 0 {
			*s = AllItems()
		} else {
			*s = Item(f)
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("item selector: %w", err)
	}
	parsed, err := ParseItem(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *ItemSelector) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseItem(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
