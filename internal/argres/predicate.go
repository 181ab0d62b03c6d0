package argres

// Is accepts values of dynamic type T.
func Is[T any]() Predicate {
	return func(a any) bool {
		_, ok := a.(T)
		return ok
	}
}

var (
	IsString  = Is[string]()
	IsBool    = Is[bool]()
	IsStrings = Is[[]string]()
)

// IsNumber accepts any Go integer or floating point value.
func IsNumber(a any) bool {
	_, ok := toFloat(a)
	return ok
}

// IsInt accepts integer kinds only.
func IsInt(a any) bool {
	switch a.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// IsNumbers accepts []float64 and []int.
func IsNumbers(a any) bool {
	_, ok := toFloats(a)
	return ok
}

// NumbersOfLen accepts a numeric slice of exactly n elements. It separates
// a coordinate pair from a longer list of values.
func NumbersOfLen(n int) Predicate {
	return func(a any) bool {
		f, ok := toFloats(a)
		return ok && len(f) == n
	}
}

// AnyOf accepts a value matched by at least one predicate.
func AnyOf(preds ...Predicate) Predicate {
	return func(a any) bool {
		for _, p := range preds {
			if p(a) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(a any) bool { return !p(a) }
}

// ToFloat converts any Go number kind to float64.
func ToFloat(a any) (float64, bool) { return toFloat(a) }

func toFloat(a any) (float64, bool) {
	switch v := a.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func toFloats(a any) ([]float64, bool) {
	switch v := a.(type) {
	case []float64:
		return v, true
	case []int:
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out, true
	}
	return nil, false
}
