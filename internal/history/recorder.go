package history

import (
	"context"
	"sync"
	"time"

	"github.com/anishathalye/porcupine"
	"github.com/google/uuid"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
)

// Dispatcher is the part of a session the recorder drives.
type Dispatcher interface {
	ID() uuid.UUID
	Dispatch(ctx context.Context, action calc.Action) (calc.State, error)
	State() calc.State
}

// Recorder collects timed operations from concurrent callers. It is safe for
// concurrent use.
type Recorder struct {
	start time.Time

	mu     sync.Mutex
	ops    []porcupine.Operation
	failed int
}

// NewRecorder creates an empty Recorder. Call and return times are measured
// from this moment.
func NewRecorder() *Recorder {
	return &Recorder{start: time.Now()}
}

func (r *Recorder) now() int64 {
	return time.Since(r.start).Nanoseconds()
}

// Dispatch calls d.Dispatch and records the call. Failed calls are counted but
// not recorded, so a history is only complete when no call could have failed
// after taking effect.
func (r *Recorder) Dispatch(ctx context.Context, d Dispatcher, action calc.Action) (calc.State, error) {
	call := r.now()
	state, err := d.Dispatch(ctx, action)
	ret := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.failed++
		return state, err
	}
	r.ops = append(r.ops, porcupine.Operation{
		Input:  Input{SessionID: d.ID(), Action: action},
		Call:   call,
		Output: Output{State: state},
		Return: ret,
	})
	return state, nil
}

// Read records a read of d's current state.
func (r *Recorder) Read(d Dispatcher) calc.State {
	call := r.now()
	state := d.State()
	ret := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = append(r.ops, porcupine.Operation{
		Input:  Input{SessionID: d.ID()},
		Call:   call,
		Output: Output{State: state},
		Return: ret,
	})
	return state
}

// Operations returns a copy of the recorded history.
func (r *Recorder) Operations() []porcupine.Operation {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]porcupine.Operation, len(r.ops))
	copy(ops, r.ops)
	return ops
}

// Failed returns the number of calls that returned an error.
func (r *Recorder) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}
