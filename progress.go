package sheetmerge

// ProgressFunc receives progress notifications from a running operation.
// current and total are operation-defined units; message is informative.
type ProgressFunc func(current, total int, message string)

// ProgressTick is one progress notification as delivered by the task runner.
type ProgressTick struct {
	Current int
	Total   int
	Message string
}

// Percentage converts the tick into 0..100. A non-positive total maps to 0.
func (t ProgressTick) Percentage() int {
	if t.Total <= 0 {
		return 0
	}
	pct := t.Current * 100 / t.Total
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// reporter wraps an optional ProgressFunc so operations can emit
// unconditionally.
type reporter struct {
	fn ProgressFunc
}

func (r reporter) emit(current, total int, message string) {
	if r.fn != nil {
		r.fn(current, total, message)
	}
}
