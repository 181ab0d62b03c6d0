package argres

import (
	"errors"
	"testing"
)

var abc = New("abc",
	Required("a", IsString),
	Optional("b", IsNumber, 0),
	Optional("c", IsBool, false),
)

func TestBindTrailingOptionals(t *testing.T) {
	tests := []struct {
		name string
		args []any
		b    float64
		c    bool
	}{
		{name: "only required", args: []any{"x"}, b: 0, c: false},
		{name: "skips number", args: []any{"x", true}, b: 0, c: true},
		{name: "all bound", args: []any{"x", 5, true}, b: 5, c: true},
		{name: "number only", args: []any{"x", 2.5}, b: 2.5, c: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := abc.Bind(tt.args...)
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			if got := rec.String("a"); got != "x" {
				t.Fatalf("a = %q; want x", got)
			}
			if got := rec.Float("b"); got != tt.b {
				t.Fatalf("b = %v; want %v", got, tt.b)
			}
			if got := rec.Bool("c"); got != tt.c {
				t.Fatalf("c = %v; want %v", got, tt.c)
			}
		})
	}
}

func TestBindMissingRequired(t *testing.T) {
	_, err := abc.Bind()
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("Bind() error = %v; want *BindingError", err)
	}
	if be.Param != "a" {
		t.Fatalf("Param = %q; want a", be.Param)
	}
}

func TestBindWrongType(t *testing.T) {
	_, err := abc.Bind(3, true)
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("Bind() error = %v; want *BindingError", err)
	}
	if be.Param != "a" || be.Arg != 0 {
		t.Fatalf("error = %+v; want param a argument 0", be)
	}
}

func TestBindTooManyArguments(t *testing.T) {
	if _, err := abc.Bind("x", "y", 1, true); err == nil {
		t.Fatal("Bind() error = nil; want error for unmatched argument")
	}
}

func TestBindKeepsRequiredSlotsFilled(t *testing.T) {
	sig := New("pair",
		Required("first", IsString),
		Optional("second", IsString, "dflt"),
	)
	rec, err := sig.Bind("only")
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if rec.String("first") != "only" || rec.String("second") != "dflt" {
		t.Fatalf("Bind(only) = %q/%q; want only/dflt", rec.String("first"), rec.String("second"))
	}
	if rec.Bound("second") {
		t.Fatal("Bound(second) = true; want false")
	}
}

func TestBindNilUsesDefault(t *testing.T) {
	rec, err := abc.Bind("x", nil, true)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if rec.Float("b") != 0 || !rec.Bool("c") {
		t.Fatalf("Bind(x, nil, true) = %v/%v; want 0/true", rec.Float("b"), rec.Bool("c"))
	}
}

func TestNumbersOfLen(t *testing.T) {
	sig := New("pos",
		Required("values", IsNumbers),
		Optional("point", NumbersOfLen(2), []float64(nil)),
	)
	rec, err := sig.Bind([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if got := rec.Floats("values"); len(got) != 3 {
		t.Fatalf("values = %v; want 3 entries", got)
	}
	rec, err = sig.Bind([]int{1, 2, 3}, []float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if got := rec.Floats("point"); len(got) != 2 {
		t.Fatalf("point = %v; want pair", got)
	}
}
