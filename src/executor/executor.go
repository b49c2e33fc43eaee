package executor

import (
	"context"
	"errors"

	"elevsim/src/dispatcher"
	"elevsim/src/logger"
	"elevsim/src/types"
)

var Log = logger.GetLogger()

var ErrClosed = errors.New("executor is closed")

// BuildingCmd is an operation run on the building by the executor goroutine.
type BuildingCmd struct {
	Exec func(b *dispatcher.Building)
}

// Executor owns the building and serializes access to it, so the console and the
// auto-stepper can drive the same simulation without overlapping ticks.
type Executor struct {
	cmds chan BuildingCmd
	done chan struct{}
	last types.BuildingStatus
}

// Start launches the executor goroutine. It runs until ctx is cancelled.
func Start(ctx context.Context, b *dispatcher.Building) *Executor {
	ex := &Executor{
		cmds: make(chan BuildingCmd),
		done: make(chan struct{}),
	}
	go func() {
		defer func() {
			ex.last = b.Status()
			close(ex.done)
			Log.Debug().Msg("Executor stopped")
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case cmd := <-ex.cmds:
				cmd.Exec(b)
			}
		}
	}()
	return ex
}

// Done is closed once the executor goroutine has exited.
func (ex *Executor) Done() <-chan struct{} {
	return ex.done
}

func (ex *Executor) exec(fn func(b *dispatcher.Building)) error {
	reply := make(chan struct{})
	cmd := BuildingCmd{
		Exec: func(b *dispatcher.Building) {
			fn(b)
			close(reply)
		},
	}
	select {
	case ex.cmds <- cmd:
	case <-ex.done:
		return ErrClosed
	}
	<-reply
	return nil
}

func (ex *Executor) AddRequest(r types.Request) error {
	var err error
	if closedErr := ex.exec(func(b *dispatcher.Building) {
		err = b.AddRequest(r)
	}); closedErr != nil {
		return closedErr
	}
	return err
}

// Step runs one tick and returns the status right after it.
func (ex *Executor) Step() (types.BuildingStatus, error) {
	return ex.StepN(1)
}

// StepN runs n ticks back to back. No other command runs in between.
func (ex *Executor) StepN(n int) (types.BuildingStatus, error) {
	var status types.BuildingStatus
	err := ex.exec(func(b *dispatcher.Building) {
		for range n {
			b.StepSystem()
		}
		status = b.Status()
	})
	if err != nil {
		return ex.Status(), err
	}
	return status, nil
}

func (ex *Executor) StartSystem() error {
	var err error
	if closedErr := ex.exec(func(b *dispatcher.Building) {
		err = b.StartSystem()
	}); closedErr != nil {
		return closedErr
	}
	return err
}

func (ex *Executor) StopSystem() error {
	return ex.exec(func(b *dispatcher.Building) {
		b.StopSystem()
	})
}

// Status returns a snapshot of the building. After the executor has stopped it
// returns the snapshot taken on shutdown.
func (ex *Executor) Status() types.BuildingStatus {
	var status types.BuildingStatus
	if err := ex.exec(func(b *dispatcher.Building) {
		status = b.Status()
	}); err != nil {
		return ex.last
	}
	return status
}
