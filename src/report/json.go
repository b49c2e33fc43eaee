package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"elevsim/src/types"
	"elevsim/src/utils"
)

var ErrMalformedReport = errors.New("malformed status report")

const (
	doorClosed = "closed"
	doorOpen   = "open"
)

type buildingJSON struct {
	NumFloors        int             `json:"numFloors"`
	NumElevators     int             `json:"numElevators"`
	ElevatorCapacity int             `json:"elevatorCapacity"`
	SystemStatus     string          `json:"systemStatus"`
	UpRequests       []types.Request `json:"upRequests"`
	DownRequests     []types.Request `json:"downRequests"`
	Elevators        []elevatorJSON  `json:"elevators"`
}

type elevatorJSON struct {
	ElevatorID     int      `json:"elevatorId"`
	CurrentFloor   int      `json:"currentFloor"`
	Direction      string   `json:"direction"`
	Behaviour      string   `json:"behaviour"`
	DoorStatus     doorJSON `json:"doorStatus"`
	FloorRequests  []int    `json:"floorRequests"`
	WaitTimer      int      `json:"waitTimer"`
	OutOfService   bool     `json:"outOfService"`
	TakingRequests bool     `json:"takingRequests"`
}

type doorJSON struct {
	Status string `json:"status"`
	Timer  *int   `json:"timer,omitempty"`
}

// Encode writes the snapshot as indented JSON. Floor requests are listed as the floors with a pending stop.
func Encode(w io.Writer, s types.BuildingStatus) error {
	out := buildingJSON{
		NumFloors:        s.NumFloors,
		NumElevators:     s.NumElevators,
		ElevatorCapacity: s.ElevatorCapacity,
		SystemStatus:     s.SystemStatus.String(),
		UpRequests:       nonNil(s.UpRequests),
		DownRequests:     nonNil(s.DownRequests),
		Elevators:        make([]elevatorJSON, 0, len(s.Elevators)),
	}
	for _, e := range s.Elevators {
		out.Elevators = append(out.Elevators, encodeElevator(e))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	return nil
}

func encodeElevator(e types.ElevatorStatus) elevatorJSON {
	door := doorJSON{Status: doorClosed}
	if !e.DoorClosed {
		timer := e.DoorTimer
		door = doorJSON{Status: doorOpen, Timer: &timer}
	}
	return elevatorJSON{
		ElevatorID:     e.ElevatorID,
		CurrentFloor:   e.CurrentFloor,
		Direction:      e.Direction.String(),
		Behaviour:      e.Behaviour.String(),
		DoorStatus:     door,
		FloorRequests:  utils.StopFloors(e.FloorRequests),
		WaitTimer:      e.WaitTimer,
		OutOfService:   e.OutOfService,
		TakingRequests: e.TakingRequests,
	}
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (types.BuildingStatus, error) {
	var in buildingJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return types.BuildingStatus{}, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}
	status, err := types.ParseSystemStatus(in.SystemStatus)
	if err != nil {
		return types.BuildingStatus{}, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}

	s := types.BuildingStatus{
		NumFloors:        in.NumFloors,
		NumElevators:     in.NumElevators,
		ElevatorCapacity: in.ElevatorCapacity,
		SystemStatus:     status,
		UpRequests:       nonNil(in.UpRequests),
		DownRequests:     nonNil(in.DownRequests),
		Elevators:        make([]types.ElevatorStatus, 0, len(in.Elevators)),
	}
	for _, e := range in.Elevators {
		elevator, err := decodeElevator(e, in.NumFloors)
		if err != nil {
			return types.BuildingStatus{}, err
		}
		s.Elevators = append(s.Elevators, elevator)
	}
	return s, nil
}

func decodeElevator(e elevatorJSON, numFloors int) (types.ElevatorStatus, error) {
	dir, err := types.ParseDirection(e.Direction)
	if err != nil {
		return types.ElevatorStatus{}, fmt.Errorf("%w: elevator %d: %w", ErrMalformedReport, e.ElevatorID, err)
	}
	behaviour, err := types.ParseBehaviour(e.Behaviour)
	if err != nil {
		return types.ElevatorStatus{}, fmt.Errorf("%w: elevator %d: %w", ErrMalformedReport, e.ElevatorID, err)
	}

	s := types.ElevatorStatus{
		ElevatorID:     e.ElevatorID,
		CurrentFloor:   e.CurrentFloor,
		Direction:      dir,
		Behaviour:      behaviour,
		WaitTimer:      e.WaitTimer,
		FloorRequests:  make([]bool, numFloors),
		OutOfService:   e.OutOfService,
		TakingRequests: e.TakingRequests,
	}
	switch e.DoorStatus.Status {
	case doorClosed:
		s.DoorClosed = true
	case doorOpen:
		if e.DoorStatus.Timer == nil {
			return types.ElevatorStatus{}, fmt.Errorf("%w: elevator %d: open door without timer", ErrMalformedReport, e.ElevatorID)
		}
		s.DoorTimer = *e.DoorStatus.Timer
	default:
		return types.ElevatorStatus{}, fmt.Errorf("%w: elevator %d: door status %q", ErrMalformedReport, e.ElevatorID, e.DoorStatus.Status)
	}
	for _, floor := range e.FloorRequests {
		if floor < 0 || floor >= numFloors {
			return types.ElevatorStatus{}, fmt.Errorf("%w: elevator %d: floor request %d outside [0, %d)", ErrMalformedReport, e.ElevatorID, floor, numFloors)
		}
		s.FloorRequests[floor] = true
	}
	return s, nil
}

func nonNil(reqs []types.Request) []types.Request {
	if reqs == nil {
		return []types.Request{}
	}
	return reqs
}
