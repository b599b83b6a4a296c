package sheetmerge_test

import (
	"testing"
	"time"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"integral float", float64(4), "4"},
		{"fractional float", 4.25, "4.25"},
		{"int64", int64(42), "42"},
		{"int", 7, "7"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"time", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sheetmerge.KeyString(tt.value); got != tt.want {
				t.Errorf("KeyString(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestKeyString_CrossTypeEquality(t *testing.T) {
	// The same key read as int64 from one backend and float64 from another
	// must align.
	if sheetmerge.KeyString(int64(4)) != sheetmerge.KeyString(float64(4)) {
		t.Error("int64(4) and float64(4) normalize differently")
	}
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		raw  string
		want interface{}
	}{
		{"", nil},
		{"42", int64(42)},
		{"4.25", 4.25},
		{"true", true},
		{"FALSE", false},
		{"hello", "hello"},
		{"12abc", "12abc"},
	}

	for _, tt := range tests {
		if got := sheetmerge.ParseScalar(tt.raw); got != tt.want {
			t.Errorf("ParseScalar(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
		}
	}
}

func TestCoercions(t *testing.T) {
	t.Run("AsString", func(t *testing.T) {
		if got := sheetmerge.AsString(nil, "fallback"); got != "fallback" {
			t.Errorf("AsString(nil) = %q, want fallback", got)
		}
		if got := sheetmerge.AsString(int64(5), ""); got != "5" {
			t.Errorf("AsString(5) = %q, want 5", got)
		}
	})

	t.Run("AsFloat64", func(t *testing.T) {
		if got := sheetmerge.AsFloat64("2.5", 0); got != 2.5 {
			t.Errorf("AsFloat64(2.5) = %v, want 2.5", got)
		}
		if got := sheetmerge.AsFloat64("x", -1); got != -1 {
			t.Errorf("AsFloat64(x) = %v, want -1", got)
		}
		if got := sheetmerge.AsFloat64(int64(3), 0); got != 3 {
			t.Errorf("AsFloat64(int64) = %v, want 3", got)
		}
	})

	t.Run("AsBool", func(t *testing.T) {
		if !sheetmerge.AsBool("TRUE", false) {
			t.Error("AsBool(TRUE) = false, want true")
		}
		if sheetmerge.AsBool("0", true) {
			t.Error("AsBool(0) = true, want false")
		}
		if !sheetmerge.AsBool(float64(1), false) {
			t.Error("AsBool(1.0) = false, want true")
		}
		if !sheetmerge.AsBool("maybe", true) {
			t.Error("AsBool(maybe) should return the default")
		}
	})
}
