package application

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestSaga_CompensateRunsInReverseOrder(t *testing.T) {
	saga := NewSaga(&Runtime{})
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		err := saga.Run(context.Background(), name,
			func(context.Context) error { return nil },
			func(context.Context) error { order = append(order, name); return nil },
		)
		if err != nil {
			t.Fatalf("run %s: %v", name, err)
		}
	}
	if saga.Len() != 3 {
		t.Fatalf("expected 3 recorded steps, got %d", saga.Len())
	}

	saga.Compensate(context.Background())

	if want := []string{"c", "b", "a"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("undo order = %v, want %v", order, want)
	}
	if saga.Len() != 0 {
		t.Fatalf("steps should be cleared after compensation")
	}
}

func TestSaga_FailedStepIsNotRecorded(t *testing.T) {
	saga := NewSaga(nil)
	boom := errors.New("boom")
	undone := false
	err := saga.Run(context.Background(), "upload",
		func(context.Context) error { return boom },
		func(context.Context) error { undone = true; return nil },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected step error, got %v", err)
	}
	saga.Compensate(context.Background())
	if undone {
		t.Fatal("undo of a failed step must not run")
	}
}

func TestSaga_CompensateSurvivesCancelledRequest(t *testing.T) {
	saga := NewSaga(&Runtime{})
	var undoCtxErr error
	_ = saga.Run(context.Background(), "upload",
		func(context.Context) error { return nil },
		func(ctx context.Context) error { undoCtxErr = ctx.Err(); return nil },
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	saga.Compensate(ctx)

	if undoCtxErr != nil {
		t.Fatalf("undo ran on a cancelled context: %v", undoCtxErr)
	}
}

func TestSaga_CompensateContinuesPastFailures(t *testing.T) {
	saga := NewSaga(&Runtime{})
	var ran []string
	_ = saga.Run(context.Background(), "first", func(context.Context) error { return nil },
		func(context.Context) error { ran = append(ran, "first"); return nil })
	_ = saga.Run(context.Background(), "second", func(context.Context) error { return nil },
		func(context.Context) error { ran = append(ran, "second"); return errors.New("store down") })

	saga.Compensate(context.Background())

	if want := []string{"second", "first"}; !reflect.DeepEqual(ran, want) {
		t.Fatalf("ran = %v, want %v", ran, want)
	}
}

func TestSaga_ConcurrentRun(t *testing.T) {
	saga := NewSaga(&Runtime{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = saga.Run(context.Background(), "step",
				func(context.Context) error { return nil },
				func(context.Context) error { return nil },
			)
		}()
	}
	wg.Wait()
	if saga.Len() != 20 {
		t.Fatalf("expected 20 steps, got %d", saga.Len())
	}
}
