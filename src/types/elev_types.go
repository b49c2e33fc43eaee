package types

import "fmt"

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

// String returns the symbol used in status lines and JSON reports.
func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "^"
	case MD_Down:
		return "v"
	case MD_Stop:
		return "-"
	}
	return "?"
}

func ParseDirection(symbol string) (MotorDirection, error) {
	switch symbol {
	case "^":
		return MD_Up, nil
	case "v":
		return MD_Down, nil
	case "-":
		return MD_Stop, nil
	}
	return MD_Stop, fmt.Errorf("unknown direction symbol %q", symbol)
}

// ElevBehaviour is the tagged sub-state of an elevator. The timer of an elevator
// only has meaning in DoorOpen and TerminalWait.
type ElevBehaviour int

const (
	Idle ElevBehaviour = iota
	Moving
	DoorOpen
	TerminalWait
	Parked
)

func (b ElevBehaviour) String() string {
	switch b {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case DoorOpen:
		return "doorOpen"
	case TerminalWait:
		return "terminalWait"
	case Parked:
		return "parked"
	}
	return "undefined"
}

func ParseBehaviour(name string) (ElevBehaviour, error) {
	for b := Idle; b <= Parked; b++ {
		if b.String() == name {
			return b, nil
		}
	}
	return Idle, fmt.Errorf("unknown behaviour %q", name)
}

// ElevatorStatus is a read-only snapshot of one elevator as of the last completed tick.
type ElevatorStatus struct {
	ElevatorID     int
	CurrentFloor   int
	Direction      MotorDirection
	Behaviour      ElevBehaviour
	DoorClosed     bool
	DoorTimer      int // ticks left with the door open, 0 when closed
	WaitTimer      int // ticks left waiting at a terminal floor
	FloorRequests  []bool
	OutOfService   bool
	TakingRequests bool
}
