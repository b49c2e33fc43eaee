package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"elevsim/src/logger"

	"github.com/rs/zerolog"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunStartStop(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	ctx, cancel := context.WithCancel(context.Background())
	action := make(chan TimerAction)
	done := make(chan struct{})
	var ticks atomic.Int32

	go func() {
		Run(ctx, 2*time.Millisecond, action, func() { ticks.Add(1) })
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	if n := ticks.Load(); n != 0 {
		t.Errorf("ticks before Start = %d, expected 0", n)
	}

	action <- Start
	waitFor(t, func() bool { return ticks.Load() >= 3 })

	action <- Stop
	// the loop handles actions and ticks on one goroutine, a second action proves Stop was applied
	action <- Stop
	stopped := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if n := ticks.Load(); n != stopped {
		t.Errorf("ticks after Stop = %d, expected %d", n, stopped)
	}

	action <- Start
	waitFor(t, func() bool { return ticks.Load() > stopped })

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run() did not return after cancel")
	}
}
