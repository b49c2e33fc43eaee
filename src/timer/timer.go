package timer

import (
	"context"
	"time"

	"elevsim/src/logger"
)

var Log = logger.GetLogger()

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Run calls tick every interval while started. It begins stopped and returns when ctx is cancelled.
func Run(ctx context.Context, interval time.Duration, action <-chan TimerAction, tick func()) {
	ticker := time.NewTicker(interval)
	ticker.Stop()
	defer ticker.Stop()

	running := false
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-action:
			switch a {
			case Start:
				if !running {
					ticker.Reset(interval)
					running = true
					Log.Debug().Msgf("Auto-step started every %s", interval)
				}
			case Stop:
				ticker.Stop()
				running = false
				Log.Debug().Msg("Auto-step stopped")
			}
		case <-ticker.C:
			tick()
		}
	}
}
