package application

import (
	"context"
	"sync"
)

type sagaStep struct {
	name string
	undo func(ctx context.Context) error
}

// Saga runs a sequence of steps and remembers how to undo each one that
// succeeded. Run is safe to call from several goroutines.
type Saga struct {
	rt    *Runtime
	mu    sync.Mutex
	steps []sagaStep
}

func NewSaga(rt *Runtime) *Saga {
	return &Saga{rt: rt}
}

// Run executes do and, if it succeeds, records undo for Compensate.
// A nil undo records nothing.
func (s *Saga) Run(ctx context.Context, name string, do func(ctx context.Context) error, undo func(ctx context.Context) error) error {
	if err := do(ctx); err != nil {
		return err
	}
	if undo == nil {
		return nil
	}
	s.mu.Lock()
	s.steps = append(s.steps, sagaStep{name: name, undo: undo})
	s.mu.Unlock()
	return nil
}

// Compensate undoes every recorded step in reverse order. It runs on a
// context detached from ctx so a cancelled request still cleans up, bounded
// by the runtime's compensation timeout. Failures are logged only.
func (s *Saga) Compensate(ctx context.Context) {
	s.mu.Lock()
	steps := s.steps
	s.steps = nil
	s.mu.Unlock()
	if len(steps) == 0 {
		return
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.rt.compensationTimeout())
	defer cancel()

	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i].undo(cctx); err != nil {
			s.rt.log().WithError(err).WithField("step", steps[i].name).Error("compensation failed")
		}
	}
}

// Len reports how many steps are waiting to be compensated.
func (s *Saga) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}
