// Package elev models a single tick-driven elevator car.
package elev

import (
	"errors"
	"fmt"
	"slices"

	"elevsim/src/config"
	"elevsim/src/logger"
	"elevsim/src/report"
	"elevsim/src/types"
)

var Log = logger.GetLogger()

var (
	ErrInvalidElevator = errors.New("invalid elevator configuration")
	ErrNotAtTerminal   = errors.New("elevator is not at a terminal floor")
	ErrFloorOutOfRange = errors.New("request floor outside elevator range")
)

// Config holds the construction parameters of one elevator.
type Config struct {
	MaxFloor          int // number of floors served, floors are 0..MaxFloor-1
	MaxOccupancy      int
	DoorOpenTicks     int
	TerminalWaitTicks int
}

func DefaultConfig(maxFloor, maxOccupancy int) Config {
	return Config{
		MaxFloor:          maxFloor,
		MaxOccupancy:      maxOccupancy,
		DoorOpenTicks:     config.DefaultDoorOpenTicks,
		TerminalWaitTicks: config.DefaultTerminalWaitTicks,
	}
}

func (c Config) validate() error {
	switch {
	case c.MaxFloor < config.MinFloors || c.MaxFloor > config.MaxFloors:
		return fmt.Errorf("%w: max floor %d outside [%d, %d]", ErrInvalidElevator, c.MaxFloor, config.MinFloors, config.MaxFloors)
	case c.MaxOccupancy < config.MinOccupancy || c.MaxOccupancy > config.MaxOccupancy:
		return fmt.Errorf("%w: max occupancy %d outside [%d, %d]", ErrInvalidElevator, c.MaxOccupancy, config.MinOccupancy, config.MaxOccupancy)
	case c.DoorOpenTicks < 1:
		return fmt.Errorf("%w: door open ticks %d", ErrInvalidElevator, c.DoorOpenTicks)
	case c.TerminalWaitTicks < 1:
		return fmt.Errorf("%w: terminal wait ticks %d", ErrInvalidElevator, c.TerminalWaitTicks)
	}
	return nil
}

// Elevator represents the state of one car.
type Elevator struct {
	id             int
	cfg            Config
	floor          int
	dir            types.MotorDirection
	behaviour      types.ElevBehaviour
	timer          int // remaining ticks of DoorOpen or TerminalWait
	stops          []bool
	takingRequests bool
	outOfService   bool
}

// NewElevator builds a car at floor 0, stopped, door closed and out of service until Start.
func NewElevator(id int, cfg Config) (*Elevator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Elevator{
		id:           id,
		cfg:          cfg,
		dir:          types.MD_Stop,
		behaviour:    types.Idle,
		stops:        make([]bool, cfg.MaxFloor),
		outOfService: true,
	}, nil
}

func (e *Elevator) ElevatorID() int                 { return e.id }
func (e *Elevator) MaxFloor() int                   { return e.cfg.MaxFloor }
func (e *Elevator) MaxOccupancy() int               { return e.cfg.MaxOccupancy }
func (e *Elevator) CurrentFloor() int               { return e.floor }
func (e *Elevator) Direction() types.MotorDirection { return e.dir }
func (e *Elevator) Behaviour() types.ElevBehaviour  { return e.behaviour }
func (e *Elevator) IsTakingRequests() bool          { return e.takingRequests }
func (e *Elevator) IsOutOfService() bool            { return e.outOfService }

func (e *Elevator) IsDoorClosed() bool {
	return e.behaviour != types.DoorOpen && e.behaviour != types.Parked
}

// FloorRequests returns a copy of the pending stops.
func (e *Elevator) FloorRequests() []bool {
	return slices.Clone(e.stops)
}

func (e *Elevator) atTerminal() bool {
	return e.floor == 0 || e.floor == e.cfg.MaxFloor-1
}

func (e *Elevator) doorTimer() int {
	if e.behaviour == types.DoorOpen || e.behaviour == types.Parked {
		return e.timer
	}
	return 0
}

func (e *Elevator) waitTimer() int {
	if e.behaviour == types.TerminalWait {
		return e.timer
	}
	return 0
}

func (e *Elevator) Status() types.ElevatorStatus {
	return types.ElevatorStatus{
		ElevatorID:     e.id,
		CurrentFloor:   e.floor,
		Direction:      e.dir,
		Behaviour:      e.behaviour,
		DoorClosed:     e.IsDoorClosed(),
		DoorTimer:      e.doorTimer(),
		WaitTimer:      e.waitTimer(),
		FloorRequests:  e.FloorRequests(),
		OutOfService:   e.outOfService,
		TakingRequests: e.takingRequests,
	}
}

func (e *Elevator) String() string {
	return report.ElevatorLine(e.Status())
}
