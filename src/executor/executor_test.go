package executor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"elevsim/src/dispatcher"
	"elevsim/src/logger"
	"elevsim/src/types"

	"github.com/rs/zerolog"
)

func startExecutor(t *testing.T) (*Executor, context.CancelFunc) {
	t.Helper()
	b, err := dispatcher.NewBuilding(10, 3, 5)
	if err != nil {
		t.Fatalf("NewBuilding() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return Start(ctx, b), cancel
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	ex, cancel := startExecutor(t)
	defer cancel()
	if err := ex.StartSystem(); err != nil {
		t.Fatalf("StartSystem() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := ex.AddRequest(types.Request{StartFloor: start, EndFloor: 9}); err != nil {
					t.Errorf("AddRequest() error = %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	s := ex.Status()
	if len(s.UpRequests) != 80 {
		t.Errorf("len(UpRequests) = %d, expected 80", len(s.UpRequests))
	}

	s, err := ex.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	// three elevators at floor 0 take five requests each
	if len(s.UpRequests) != 80-15 {
		t.Errorf("len(UpRequests) after a tick = %d, expected %d", len(s.UpRequests), 65)
	}
}

func TestErrorsPassThrough(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	ex, cancel := startExecutor(t)
	defer cancel()

	if err := ex.AddRequest(types.Request{StartFloor: 0, EndFloor: 1}); !errors.Is(err, dispatcher.ErrNotRunning) {
		t.Errorf("AddRequest() = %v, expected %v", err, dispatcher.ErrNotRunning)
	}
	_ = ex.StartSystem()
	if err := ex.StopSystem(); err != nil {
		t.Fatalf("StopSystem() error = %v", err)
	}
	if err := ex.StartSystem(); !errors.Is(err, dispatcher.ErrStopping) {
		t.Errorf("StartSystem() while stopping = %v, expected %v", err, dispatcher.ErrStopping)
	}

	s, err := ex.StepN(20)
	if err != nil {
		t.Fatalf("StepN() error = %v", err)
	}
	if s.SystemStatus != types.OutOfService {
		t.Errorf("SystemStatus = %s, expected %s", s.SystemStatus, types.OutOfService)
	}
}

func TestClosedExecutor(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	ex, cancel := startExecutor(t)
	_ = ex.StartSystem()
	if err := ex.AddRequest(types.Request{StartFloor: 4, EndFloor: 2}); err != nil {
		t.Fatalf("AddRequest() error = %v", err)
	}
	cancel()
	<-ex.Done()

	if err := ex.AddRequest(types.Request{StartFloor: 0, EndFloor: 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("AddRequest() after cancel = %v, expected %v", err, ErrClosed)
	}
	if _, err := ex.Step(); !errors.Is(err, ErrClosed) {
		t.Errorf("Step() after cancel = %v, expected %v", err, ErrClosed)
	}
	if err := ex.StartSystem(); !errors.Is(err, ErrClosed) {
		t.Errorf("StartSystem() after cancel = %v, expected %v", err, ErrClosed)
	}
	if err := ex.StopSystem(); !errors.Is(err, ErrClosed) {
		t.Errorf("StopSystem() after cancel = %v, expected %v", err, ErrClosed)
	}

	s := ex.Status()
	if s.SystemStatus != types.Running || len(s.DownRequests) != 1 {
		t.Errorf("Status() after cancel = %+v, expected the last running snapshot", s)
	}
}
