package colour

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/gchart/internal/chart"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{name: "named", args: []any{"red"}, want: "ff0000"},
		{name: "rgb", args: []any{0, 255, 0}, want: "00ff00"},
		{name: "rgba", args: []any{0, 255, 0, 128}, want: "00ff0080"},
		{name: "named alpha", args: []any{"blue", 16}, want: "0000ff10"},
		{name: "hex with hash", args: []any{"#AABBCC"}, want: "aabbcc"},
		{name: "transparent", args: []any{"transparent"}, want: "00000000"},
		{name: "unset", args: []any{""}, want: ""},
		{name: "unset with alpha", args: []any{"", 128}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Color(tt.args...)
			if err != nil {
				t.Fatalf("Color(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("Color(%v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestColorChannelOutOfRange(t *testing.T) {
	_, err := Color(300, 0, 0)
	var ce *chart.CodedError
	if !errors.As(err, &ce) || ce.Code != chart.CodeInvalidRange {
		t.Fatalf("Color(300, 0, 0) error = %v; want INVALID_RANGE", err)
	}
}

func TestColorBindingFailure(t *testing.T) {
	_, err := Color(1, 2)
	var ce *chart.CodedError
	if !errors.As(err, &ce) || ce.Code != chart.CodeArgumentBinding {
		t.Fatalf("Color(1, 2) error = %v; want ARGUMENT_BINDING", err)
	}
}

func TestNormalize(t *testing.T) {
	if got, err := Normalize(""); err != nil || got != "" {
		t.Fatalf("Normalize(\"\") = %q, %v; want empty", got, err)
	}
	if got, _ := Normalize("FF00FF80"); got != "ff00ff80" {
		t.Fatalf("Normalize(FF00FF80) = %q; want ff00ff80", got)
	}
	if _, err := Normalize("notacolour"); err == nil {
		t.Fatal("Normalize(notacolour) error = nil; want error")
	}
	if _, err := Normalize("12345"); err == nil {
		t.Fatal("Normalize(12345) error = nil; want error")
	}
}
