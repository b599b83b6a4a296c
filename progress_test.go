package sheetmerge_test

import (
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

func TestProgressTick_Percentage(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    int
	}{
		{"zero total", 5, 0, 0},
		{"negative total", 5, -1, 0},
		{"start", 0, 100, 0},
		{"half", 50, 100, 50},
		{"rounding down", 1, 3, 33},
		{"complete", 100, 100, 100},
		{"overshoot clamps", 120, 100, 100},
		{"negative current clamps", -5, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick := sheetmerge.ProgressTick{Current: tt.current, Total: tt.total}
			if got := tick.Percentage(); got != tt.want {
				t.Errorf("Percentage(%d/%d) = %d, want %d", tt.current, tt.total, got, tt.want)
			}
		})
	}
}
