package dispatcher

import (
	"errors"
	"fmt"
	"slices"

	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/logger"
	"elevsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

var Log = logger.GetLogger()

var (
	ErrInvalidConfig  = errors.New("invalid building configuration")
	ErrNotRunning     = errors.New("elevator system is not running")
	ErrInvalidRequest = types.ErrInvalidRequest
	ErrNilRequest     = errors.New("request is nil")
	ErrStopping       = errors.New("elevator system is stopping")
)

// Building owns the elevators and the two request queues. It is not safe for concurrent use,
// the executor package serializes access to it.
type Building struct {
	numFloors int
	capacity  int
	elevators []*elev.Elevator
	upQueue   []types.Request
	downQueue []types.Request
	status    types.SystemStatus
}

type Option func(*elev.Config)

// WithTiming overrides how many ticks the door stays open and how long a car waits at a terminal floor.
func WithTiming(doorOpenTicks, terminalWaitTicks int) Option {
	return func(c *elev.Config) {
		c.DoorOpenTicks = doorOpenTicks
		c.TerminalWaitTicks = terminalWaitTicks
	}
}

// NewBuilding creates a building whose elevators all start out of service at floor 0.
func NewBuilding(numFloors, numElevators, capacity int, opts ...Option) (*Building, error) {
	switch {
	case numFloors < config.MinFloors:
		return nil, fmt.Errorf("%w: need at least %d floors, got %d", ErrInvalidConfig, config.MinFloors, numFloors)
	case numElevators < 1:
		return nil, fmt.Errorf("%w: need at least one elevator, got %d", ErrInvalidConfig, numElevators)
	case capacity < 1:
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, capacity)
	}

	cfg := elev.DefaultConfig(numFloors, capacity)
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := elev.NewFactory(cfg)

	b := &Building{
		numFloors: numFloors,
		capacity:  capacity,
		elevators: make([]*elev.Elevator, 0, numElevators),
		upQueue:   []types.Request{},
		downQueue: []types.Request{},
		status:    types.OutOfService,
	}
	for range numElevators {
		e, err := factory.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		b.elevators = append(b.elevators, e)
	}
	Log.Info().Msgf("Building created: %d floors, %d elevators, capacity %d", numFloors, numElevators, capacity)
	return b, nil
}

func (b *Building) NumFloors() int                   { return b.numFloors }
func (b *Building) NumElevators() int                { return len(b.elevators) }
func (b *Building) ElevatorCapacity() int            { return b.capacity }
func (b *Building) SystemStatus() types.SystemStatus { return b.status }

// AddRequest queues a passenger on the up or down queue. Requests are only taken while running.
func (b *Building) AddRequest(r types.Request) error {
	if b.status != types.Running {
		Log.Warn().Msgf("Rejected request %s: system is %s", r, b.status)
		return fmt.Errorf("%w: status is %s", ErrNotRunning, b.status)
	}
	if err := r.Validate(b.numFloors); err != nil {
		Log.Warn().Err(err).Msg("Rejected request")
		return err
	}
	if r.Direction() == types.MD_Up {
		b.upQueue = append(b.upQueue, r)
	} else {
		b.downQueue = append(b.downQueue, r)
	}
	Log.Debug().Msgf("Queued request %s", r)
	return nil
}

func (b *Building) AddRequestPtr(r *types.Request) error {
	if r == nil {
		return ErrNilRequest
	}
	return b.AddRequest(*r)
}

// StartSystem puts every elevator in service. Starting a running system does nothing.
func (b *Building) StartSystem() error {
	switch b.status {
	case types.Running:
		return nil
	case types.Stopping:
		return ErrStopping
	}
	for _, e := range b.elevators {
		e.Start()
	}
	b.status = types.Running
	Log.Info().Msg("Elevator system running")
	return nil
}

// StopSystem sends every elevator to floor 0 and drops all queued requests.
func (b *Building) StopSystem() {
	if b.status != types.Running {
		return
	}
	for _, e := range b.elevators {
		e.TakeOutOfService()
	}
	b.upQueue = b.upQueue[:0]
	b.downQueue = b.downQueue[:0]
	b.status = types.Stopping
	Log.Info().Msg("Elevator system stopping")
}

// StepSystem advances the simulation by one tick.
func (b *Building) StepSystem() {
	switch b.status {
	case types.OutOfService:
		return
	case types.Running:
		b.distribute()
	}

	for _, e := range b.elevators {
		e.Step()
	}

	if b.status == types.Stopping && b.allAtGround() {
		b.status = types.OutOfService
		Log.Info().Msg("Elevator system out of service")
	}
}

// distribute hands each waiting car at a terminal floor the head of the matching queue,
// at most capacity requests per car. Cars are served in index order.
func (b *Building) distribute() {
	for _, e := range b.elevators {
		if !e.IsTakingRequests() {
			continue
		}
		var queue *[]types.Request
		switch e.CurrentFloor() {
		case 0:
			queue = &b.upQueue
		case b.numFloors - 1:
			queue = &b.downQueue
		default:
			continue
		}

		n := min(len(*queue), b.capacity)
		if n == 0 {
			continue
		}
		batch := slices.Clone((*queue)[:n])
		if err := e.ProcessRequests(batch); err != nil {
			Log.Warn().Err(err).Int("elevator", e.ElevatorID()).Msg("Elevator refused requests")
			continue
		}
		*queue = slices.Delete(*queue, 0, n)
		Log.Debug().Int("elevator", e.ElevatorID()).Msgf("Assigned %v", batch)
	}
}

func (b *Building) allAtGround() bool {
	for _, e := range b.elevators {
		if e.CurrentFloor() != 0 {
			return false
		}
	}
	return true
}

// Status returns a deep copy of the building state. Changing it never affects the simulation.
func (b *Building) Status() types.BuildingStatus {
	status := types.BuildingStatus{
		NumFloors:        b.numFloors,
		NumElevators:     len(b.elevators),
		ElevatorCapacity: b.capacity,
		Elevators:        make([]types.ElevatorStatus, 0, len(b.elevators)),
		UpRequests:       b.upQueue,
		DownRequests:     b.downQueue,
		SystemStatus:     b.status,
	}
	for _, e := range b.elevators {
		status.Elevators = append(status.Elevators, e.Status())
	}

	snapshot := types.BuildingStatus{}
	if err := deepcopy.Copy(&snapshot, &status); err != nil {
		Log.Error().Err(err).Msg("Failed to copy building status")
		status.UpRequests = slices.Clone(b.upQueue)
		status.DownRequests = slices.Clone(b.downQueue)
		return status
	}
	return snapshot
}
