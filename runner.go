package sheetmerge

import (
	"errors"
	"sync"
)

// TaskStatus is the life cycle state of a task run. Once terminal
// (Completed, Failed or Cancelled) a run never transitions again.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskCompleted
	TaskFailed
	TaskCancelled
)

// String returns the status name for logs and messages.
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	case TaskCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is a long-running operation executed by the runner. It reports
// progress through the callback and polls the signal at its checkpoints,
// returning ErrCancelled when it observes cancellation.
type Task func(progress ProgressFunc, cancel *CancelSignal) (interface{}, error)

// TaskCallbacks receive the outcome of a task run. Exactly one of
// OnComplete, OnError or OnCancelled fires per Execute, after any progress
// deliveries. All callbacks run on the runner's dispatcher, never on the
// worker goroutine. Any callback may be nil.
type TaskCallbacks struct {
	OnProgress  func(ProgressTick)
	OnComplete  func(result interface{})
	OnError     func(err error)
	OnCancelled func()
}

// DispatchFunc marshals a callback onto the controlling side, e.g. a UI
// event loop's enqueue function. Invocations must run serially in order.
type DispatchFunc func(fn func())

// TaskRunner executes operations on a worker goroutine and delivers their
// progress and terminal callbacks through a serial dispatcher, keeping the
// controlling side single-threaded.
//
// The runner does not guard against overlapping Execute calls; issuing a new
// one before the previous terminal callback is the caller's responsibility
// to prevent.
type TaskRunner struct {
	mu       sync.Mutex
	status   TaskStatus
	cancel   *CancelSignal
	dispatch DispatchFunc
	workerWG sync.WaitGroup

	// internal dispatcher, used when no DispatchFunc was supplied
	queue      chan func()
	done       chan struct{}
	dispatchWG sync.WaitGroup
}

// NewTaskRunner creates a runner. With a nil dispatch the runner starts its
// own serial dispatch goroutine; Close releases it.
func NewTaskRunner(dispatch DispatchFunc) *TaskRunner {
	r := &TaskRunner{
		status:   TaskPending,
		dispatch: dispatch,
	}
	if dispatch == nil {
		r.queue = make(chan func(), 64)
		r.done = make(chan struct{})
		r.dispatchWG.Add(1)
		go func() {
			defer r.dispatchWG.Done()
			for {
				select {
				case fn := <-r.queue:
					fn()
				case <-r.done:
					// Drain callbacks queued before Close.
					for {
						select {
						case fn := <-r.queue:
							fn()
						default:
							return
						}
					}
				}
			}
		}()
		r.dispatch = func(fn func()) { r.queue <- fn }
	}
	return r
}

// Execute starts the task on a worker goroutine and returns immediately.
func (r *TaskRunner) Execute(task Task, callbacks TaskCallbacks) {
	cancel := NewCancelSignal()

	r.mu.Lock()
	r.status = TaskRunning
	r.cancel = cancel
	r.mu.Unlock()

	progress := func(current, total int, message string) {
		if callbacks.OnProgress == nil {
			return
		}
		tick := ProgressTick{Current: current, Total: total, Message: message}
		r.dispatch(func() { callbacks.OnProgress(tick) })
	}

	r.workerWG.Add(1)
	go func() {
		defer r.workerWG.Done()

		result, err := task(progress, cancel)

		var status TaskStatus
		var terminal func()
		switch {
		case err == nil:
			status = TaskCompleted
			terminal = func() {
				if callbacks.OnComplete != nil {
					callbacks.OnComplete(result)
				}
			}
		case errors.Is(err, ErrCancelled):
			status = TaskCancelled
			terminal = func() {
				if callbacks.OnCancelled != nil {
					callbacks.OnCancelled()
				}
			}
		default:
			status = TaskFailed
			terminal = func() {
				if callbacks.OnError != nil {
					callbacks.OnError(err)
				}
			}
		}

		r.mu.Lock()
		r.status = status
		r.mu.Unlock()

		r.dispatch(terminal)
	}()
}

// Cancel sets the current run's cancellation signal. It does not block; the
// task must reach a checkpoint to observe it.
func (r *TaskRunner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	cancel.Cancel()
}

// Status returns the current run's state.
func (r *TaskRunner) Status() TaskStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Wait blocks until the worker goroutine of the last Execute has finished.
// The terminal callback may still be in flight on the dispatcher.
func (r *TaskRunner) Wait() {
	r.workerWG.Wait()
}

// Close waits for the worker, then stops the internal dispatcher after
// delivering queued callbacks. Runners with a caller-supplied DispatchFunc
// only wait for the worker.
func (r *TaskRunner) Close() {
	r.workerWG.Wait()
	if r.done != nil {
		close(r.done)
		r.dispatchWG.Wait()
		r.done = nil
	}
}
