package sheetmerge

import "sync/atomic"

// CancelSignal is a one-way flag set once by the controlling side and polled
// cooperatively by a running operation at row/column checkpoints. A nil
// signal is valid and never cancels.
type CancelSignal struct {
	cancelled atomic.Bool
}

// NewCancelSignal creates a signal in the not-cancelled state.
func NewCancelSignal() *CancelSignal {
	return &CancelSignal{}
}

// Cancel requests cancellation. It does not block and does not guarantee
// immediate termination; the operation must reach a checkpoint to observe it.
func (s *CancelSignal) Cancel() {
	if s != nil {
		s.cancelled.Store(true)
	}
}

// Cancelled reports whether Cancel has been called.
func (s *CancelSignal) Cancelled() bool {
	return s != nil && s.cancelled.Load()
}

// Err returns ErrCancelled once the signal is set, nil otherwise. Operations
// call it at checkpoints and propagate the result.
func (s *CancelSignal) Err() error {
	if s.Cancelled() {
		return ErrCancelled
	}
	return nil
}
