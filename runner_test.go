package sheetmerge_test

import (
	"errors"
	"testing"

	sheetmerge "github.com/sheetops/go-sheetmerge"
)

func TestTaskRunner_Complete(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)
	defer runner.Close()

	done := make(chan interface{}, 1)
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		progress(1, 2, "halfway")
		progress(2, 2, "done")
		return "result", nil
	}, sheetmerge.TaskCallbacks{
		OnComplete:  func(result interface{}) { done <- result },
		OnError:     func(err error) { t.Errorf("unexpected OnError: %v", err) },
		OnCancelled: func() { t.Error("unexpected OnCancelled") },
	})

	if got := <-done; got != "result" {
		t.Errorf("OnComplete result = %v, want result", got)
	}
	runner.Wait()
	if status := runner.Status(); status != sheetmerge.TaskCompleted {
		t.Errorf("Status() = %v, want completed", status)
	}
}

func TestTaskRunner_Error(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)
	defer runner.Close()

	boom := errors.New("boom")
	done := make(chan error, 1)
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		return nil, boom
	}, sheetmerge.TaskCallbacks{
		OnComplete:  func(result interface{}) { t.Error("unexpected OnComplete") },
		OnError:     func(err error) { done <- err },
		OnCancelled: func() { t.Error("unexpected OnCancelled") },
	})

	if got := <-done; !errors.Is(got, boom) {
		t.Errorf("OnError err = %v, want boom", got)
	}
	runner.Wait()
	if status := runner.Status(); status != sheetmerge.TaskFailed {
		t.Errorf("Status() = %v, want failed", status)
	}
}

func TestTaskRunner_Cancelled(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)
	defer runner.Close()

	started := make(chan struct{})
	done := make(chan struct{}, 1)
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		close(started)
		for {
			if err := cancel.Err(); err != nil {
				return nil, err
			}
		}
	}, sheetmerge.TaskCallbacks{
		OnComplete:  func(result interface{}) { t.Error("unexpected OnComplete") },
		OnError:     func(err error) { t.Errorf("unexpected OnError: %v", err) },
		OnCancelled: func() { done <- struct{}{} },
	})

	<-started
	runner.Cancel()
	<-done
	runner.Wait()
	if status := runner.Status(); status != sheetmerge.TaskCancelled {
		t.Errorf("Status() = %v, want cancelled", status)
	}
}

func TestTaskRunner_ProgressBeforeTerminal(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)

	var order []string
	done := make(chan struct{})
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		for i := 1; i <= 3; i++ {
			progress(i, 3, "step")
		}
		return nil, nil
	}, sheetmerge.TaskCallbacks{
		OnProgress: func(tick sheetmerge.ProgressTick) {
			order = append(order, "progress")
		},
		OnComplete: func(result interface{}) {
			order = append(order, "complete")
			close(done)
		},
	})

	<-done
	runner.Close()

	// Callbacks all run on the dispatcher, so order is safe to read here.
	if len(order) != 4 {
		t.Fatalf("callback count = %d, want 4: %v", len(order), order)
	}
	for i := 0; i < 3; i++ {
		if order[i] != "progress" {
			t.Errorf("callback %d = %q, want progress", i, order[i])
		}
	}
	if order[3] != "complete" {
		t.Errorf("last callback = %q, want complete", order[3])
	}
}

func TestTaskRunner_ExactlyOneTerminal(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)

	terminals := 0
	done := make(chan struct{})
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		cancel.Cancel()
		return nil, cancel.Err()
	}, sheetmerge.TaskCallbacks{
		OnComplete:  func(result interface{}) { terminals++ },
		OnError:     func(err error) { terminals++ },
		OnCancelled: func() { terminals++; close(done) },
	})

	<-done
	runner.Close()
	if terminals != 1 {
		t.Errorf("terminal callbacks fired %d times, want 1", terminals)
	}
}

func TestTaskRunner_CustomDispatch(t *testing.T) {
	// A caller-supplied dispatcher receives every callback.
	var queued []func()
	dispatch := func(fn func()) { queued = append(queued, fn) }

	runner := sheetmerge.NewTaskRunner(dispatch)
	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		progress(1, 1, "only")
		return 42, nil
	}, sheetmerge.TaskCallbacks{
		OnProgress: func(tick sheetmerge.ProgressTick) {},
		OnComplete: func(result interface{}) {},
	})
	runner.Wait()

	// One progress dispatch plus the terminal.
	if len(queued) != 2 {
		t.Errorf("dispatched %d callbacks, want 2", len(queued))
	}
	for _, fn := range queued {
		fn()
	}
}

func TestTaskRunner_NilCallbacks(t *testing.T) {
	runner := sheetmerge.NewTaskRunner(nil)
	defer runner.Close()

	runner.Execute(func(progress sheetmerge.ProgressFunc, cancel *sheetmerge.CancelSignal) (interface{}, error) {
		progress(1, 1, "ignored")
		return nil, nil
	}, sheetmerge.TaskCallbacks{})
	runner.Wait()

	if status := runner.Status(); status != sheetmerge.TaskCompleted {
		t.Errorf("Status() = %v, want completed", status)
	}
}

func TestTaskStatus_String(t *testing.T) {
	tests := []struct {
		status sheetmerge.TaskStatus
		want   string
	}{
		{sheetmerge.TaskPending, "pending"},
		{sheetmerge.TaskRunning, "running"},
		{sheetmerge.TaskCompleted, "completed"},
		{sheetmerge.TaskFailed, "failed"},
		{sheetmerge.TaskCancelled, "cancelled"},
		{sheetmerge.TaskStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("TaskStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestCancelSignal(t *testing.T) {
	t.Run("nil signal never cancels", func(t *testing.T) {
		var s *sheetmerge.CancelSignal
		if s.Cancelled() {
			t.Error("nil signal reports cancelled")
		}
		if err := s.Err(); err != nil {
			t.Errorf("nil signal Err() = %v, want nil", err)
		}
		s.Cancel() // must not panic
	})

	t.Run("set once", func(t *testing.T) {
		s := sheetmerge.NewCancelSignal()
		if s.Cancelled() {
			t.Error("fresh signal reports cancelled")
		}
		s.Cancel()
		if !s.Cancelled() {
			t.Error("signal not cancelled after Cancel")
		}
		if !errors.Is(s.Err(), sheetmerge.ErrCancelled) {
			t.Errorf("Err() = %v, want ErrCancelled", s.Err())
		}
	})
}
