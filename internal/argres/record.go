package argres

// Record holds the bound value of every parameter of a signature.
type Record struct {
	signature string
	values    map[string]any
	bound     map[string]bool
}

// Value returns the raw value for name, which is the default when unbound.
func (r Record) Value(name string) any { return r.values[name] }

// Bound reports whether name received an actual argument.
func (r Record) Bound(name string) bool { return r.bound[name] }

// Get returns the value for name as T, or the zero T.
func Get[T any](r Record, name string) T {
	v, _ := r.values[name].(T)
	return v
}

func (r Record) String(name string) string { return Get[string](r, name) }

func (r Record) Bool(name string) bool { return Get[bool](r, name) }

// Float returns a numeric value of any Go number kind as float64.
func (r Record) Float(name string) float64 {
	f, _ := toFloat(r.values[name])
	return f
}

// Int returns a numeric value truncated to int.
func (r Record) Int(name string) int { return int(r.Float(name)) }

// Floats returns a numeric slice as []float64.
func (r Record) Floats(name string) []float64 {
	f, _ := toFloats(r.values[name])
	return f
}

func (r Record) Strings(name string) []string { return Get[[]string](r, name) }
