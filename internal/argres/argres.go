// Package argres binds loosely typed positional arguments to a declared
// parameter list. Trailing optional parameters may be omitted; the binder
// walks the formal list from the right and lets each argument skip over
// optional slots whose type predicate it does not satisfy.
package argres

import (
	"fmt"
	"strings"
)

// Predicate reports whether an argument can fill a parameter slot.
type Predicate func(arg any) bool

// Param is one formal parameter.
type Param struct {
	Name     string
	Accepts  Predicate
	Optional bool
	Default  any
}

// Required declares a parameter that must be bound.
func Required(name string, accepts Predicate) Param {
	return Param{Name: name, Accepts: accepts}
}

// Optional declares a parameter that takes def when omitted.
func Optional(name string, accepts Predicate, def any) Param {
	return Param{Name: name, Accepts: accepts, Optional: true, Default: def}
}

// Signature is an ordered formal parameter list.
type Signature struct {
	Name   string
	Params []Param
}

// New builds a Signature. Parameter names must be unique.
func New(name string, params ...Param) Signature {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			panic(fmt.Sprintf("argres: %s declares %q twice", name, p.Name))
		}
		seen[p.Name] = true
	}
	return Signature{Name: name, Params: params}
}

// BindingError reports a call that could not be matched to the signature.
type BindingError struct {
	Signature string
	Param     string
	Arg       int
	Reason    string
}

func (e *BindingError) Error() string {
	var b strings.Builder
	b.WriteString(e.Signature)
	if e.Param != "" {
		b.WriteString(": parameter ")
		b.WriteString(e.Param)
	}
	if e.Arg >= 0 {
		fmt.Fprintf(&b, ": argument %d", e.Arg)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Bind positions args against the signature.
//
// Parameters are visited right to left. The last unconsumed argument binds
// to the current parameter when the predicate accepts it; an optional
// parameter additionally requires that enough arguments remain to its left
// for the required parameters still to come. Otherwise an optional parameter
// takes its default and the same argument is tried one slot further left.
// A nil argument stands for an omitted value and binds the default.
func (s Signature) Bind(args ...any) (Record, error) {
	rec := Record{signature: s.Name, values: make(map[string]any, len(s.Params)), bound: make(map[string]bool, len(s.Params))}

	requiredLeft := make([]int, len(s.Params))
	n := 0
	for i, p := range s.Params {
		requiredLeft[i] = n
		if !p.Optional {
			n++
		}
	}

	next := len(args) - 1
	for i := len(s.Params) - 1; i >= 0; i-- {
		p := s.Params[i]
		if next < 0 {
			if !p.Optional {
				return Record{}, &BindingError{Signature: s.Name, Param: p.Name, Arg: -1, Reason: "required argument missing"}
			}
			rec.values[p.Name] = p.Default
			continue
		}
		arg := args[next]
		if arg == nil {
			if !p.Optional {
				return Record{}, &BindingError{Signature: s.Name, Param: p.Name, Arg: next, Reason: "required argument is nil"}
			}
			rec.values[p.Name] = p.Default
			next--
			continue
		}
		fits := p.Accepts == nil || p.Accepts(arg)
		if fits && p.Optional && next < requiredLeft[i] {
			fits = false
		}
		if fits {
			rec.values[p.Name] = arg
			rec.bound[p.Name] = true
			next--
			continue
		}
		if !p.Optional {
			return Record{}, &BindingError{Signature: s.Name, Param: p.Name, Arg: next, Reason: fmt.Sprintf("cannot accept %T", arg)}
		}
		rec.values[p.Name] = p.Default
	}
	if next >= 0 {
		first := ""
		if len(s.Params) > 0 {
			first = s.Params[0].Name
		}
		return Record{}, &BindingError{Signature: s.Name, Param: first, Arg: next, Reason: fmt.Sprintf("%T matches no parameter", args[next])}
	}
	return rec, nil
}

