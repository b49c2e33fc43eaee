package types

import (
	"errors"
	"fmt"
)

var ErrInvalidRequest = errors.New("invalid request")

// Request is a passenger travelling from StartFloor to EndFloor.
type Request struct {
	StartFloor int `json:"startFloor"`
	EndFloor   int `json:"endFloor"`
}

// Direction is derived from the floors: upward when StartFloor < EndFloor.
func (r Request) Direction() MotorDirection {
	if r.StartFloor < r.EndFloor {
		return MD_Up
	}
	return MD_Down
}

// Validate checks both floors against a building of numFloors floors.
func (r Request) Validate(numFloors int) error {
	if r.StartFloor < 0 || r.StartFloor >= numFloors {
		return fmt.Errorf("%w: start floor %d outside [0, %d)", ErrInvalidRequest, r.StartFloor, numFloors)
	}
	if r.EndFloor < 0 || r.EndFloor >= numFloors {
		return fmt.Errorf("%w: end floor %d outside [0, %d)", ErrInvalidRequest, r.EndFloor, numFloors)
	}
	if r.StartFloor == r.EndFloor {
		return fmt.Errorf("%w: start and end floor are both %d", ErrInvalidRequest, r.StartFloor)
	}
	return nil
}

func (r Request) String() string {
	return fmt.Sprintf("%d->%d", r.StartFloor, r.EndFloor)
}

type SystemStatus int

const (
	Running SystemStatus = iota
	Stopping
	OutOfService
)

func (s SystemStatus) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case OutOfService:
		return "outOfService"
	}
	return "undefined"
}

func ParseSystemStatus(name string) (SystemStatus, error) {
	for s := Running; s <= OutOfService; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return OutOfService, fmt.Errorf("unknown system status %q", name)
}

// BuildingStatus is the snapshot handed to displays and reports.
type BuildingStatus struct {
	NumFloors        int
	NumElevators     int
	ElevatorCapacity int
	Elevators        []ElevatorStatus
	UpRequests       []Request
	DownRequests     []Request
	SystemStatus     SystemStatus
}
