package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat converts loosely typed export values to a finite float64.
// The second return value is false when the value is missing, non-numeric, NaN or infinite.
func ToFloat(val any) (float64, bool) {
	var f float64
	switch v := val.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return ToFloat(string(v))
	case fmt.Stringer:
		return ToFloat(v.String())
	default:
		return ToFloat(fmt.Sprintf("%v", v))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt converts loosely typed export values to an int, truncating fractions.
// Values outside the int range are rejected like non-numeric ones.
func ToInt(val any) (int, bool) {
	f, ok := ToFloat(val)
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// ToString converts various types to a trimmed string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// NilIfEmpty returns nil for blank strings so nullable columns stay NULL.
func NilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
