package sheetmerge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyString normalizes a cell value into the canonical form used for row
// alignment, so that the same key read from different files (or different
// backends) compares equal regardless of the scalar type it arrived as.
func KeyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AsString returns the value as string or defaultValue for nil.
func AsString(v interface{}, defaultValue string) string {
	if v == nil {
		return defaultValue
	}
	if s, ok := v.(string); ok {
		return s
	}
	return KeyString(v)
}

// AsFloat64 returns the value as float64 or defaultValue if not convertible.
func AsFloat64(v interface{}, defaultValue float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// AsBool returns the value as bool or defaultValue if not convertible.
func AsBool(v interface{}, defaultValue bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(val)
		if lower == "true" || val == "1" {
			return true
		}
		if lower == "false" || val == "0" {
			return false
		}
	case float64:
		return val != 0
	case int64:
		return val != 0
	}
	return defaultValue
}

// ParseScalar converts a raw string cell value into a typed scalar: integral
// numbers become int64, other numbers float64, true/false become bool, and
// anything else stays a string. Empty input maps to nil.
func ParseScalar(raw string) interface{} {
	if raw == "" {
		return nil
	}
	if floatVal, err := strconv.ParseFloat(raw, 64); err == nil {
		if intVal := int64(floatVal); float64(intVal) == floatVal {
			return intVal
		}
		return floatVal
	}
	if raw == "true" || raw == "TRUE" {
		return true
	}
	if raw == "false" || raw == "FALSE" {
		return false
	}
	return raw
}
