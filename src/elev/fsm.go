package elev

import (
	"fmt"

	"elevsim/src/types"
)

// Start puts the car in service. It is safe on a fresh, running or parked car.
func (e *Elevator) Start() {
	e.outOfService = false
	e.clearStops()
	e.timer = 0
	e.takingRequests = true
	if e.dir == types.MD_Stop {
		e.behaviour = types.Idle
	} else {
		e.behaviour = types.Moving
	}
	Log.Debug().Int("elevator", e.id).Int("floor", e.floor).Msg("Elevator started")
}

// TakeOutOfService sends the car down to floor 0 where it parks with the door open.
// A door that is already open finishes its cycle first.
func (e *Elevator) TakeOutOfService() {
	e.outOfService = true
	e.takingRequests = false
	if e.behaviour == types.Parked {
		return
	}
	e.clearStops()
	e.stops[0] = true
	e.dir = types.MD_Down
	switch e.behaviour {
	case types.Idle, types.TerminalWait:
		e.behaviour = types.Moving
		e.timer = 0
	}
	Log.Debug().Int("elevator", e.id).Int("floor", e.floor).Msg("Elevator taken out of service")
}

// ProcessRequests loads a batch at a terminal floor. Every start and end floor becomes a stop
// and the car heads away from the terminal. A car that is out of service ignores the batch.
func (e *Elevator) ProcessRequests(reqs []types.Request) error {
	if !e.atTerminal() {
		return fmt.Errorf("%w: elevator %d at floor %d", ErrNotAtTerminal, e.id, e.floor)
	}
	if len(reqs) == 0 {
		return nil
	}
	for _, r := range reqs {
		if !e.inRange(r.StartFloor) || !e.inRange(r.EndFloor) {
			return fmt.Errorf("%w: %s on elevator %d with %d floors", ErrFloorOutOfRange, r, e.id, e.cfg.MaxFloor)
		}
	}
	if e.outOfService {
		Log.Debug().Int("elevator", e.id).Msg("Out of service, ignoring requests")
		return nil
	}

	e.clearStops()
	for _, r := range reqs {
		e.stops[r.StartFloor] = true
		e.stops[r.EndFloor] = true
	}
	if e.floor == 0 {
		e.dir = types.MD_Up
	} else {
		e.dir = types.MD_Down
	}
	e.takingRequests = false
	switch e.behaviour {
	case types.Idle, types.TerminalWait:
		e.behaviour = types.Moving
		e.timer = 0
	}
	Log.Debug().Int("elevator", e.id).Msgf("Accepted %d requests heading %s", len(reqs), e.dir)
	return nil
}

// Step advances the car by one tick.
func (e *Elevator) Step() {
	switch {
	case e.behaviour == types.Parked:
		return
	case e.outOfService && e.behaviour == types.Idle:
		return
	case e.outOfService && e.floor == 0 && e.behaviour == types.DoorOpen:
		e.park()
		return
	}

	switch e.behaviour {
	case types.DoorOpen:
		e.timer--
		if e.timer == 0 {
			e.behaviour = types.Moving
		}
		return
	case types.TerminalWait:
		e.timer--
		e.takingRequests = !e.outOfService
		if e.timer == 0 {
			e.behaviour = types.Moving
		}
		return
	}

	if e.stops[e.floor] {
		e.openDoor()
		return
	}
	e.move()
}

func (e *Elevator) openDoor() {
	e.stops[e.floor] = false
	e.behaviour = types.DoorOpen
	e.timer = e.cfg.DoorOpenTicks
	Log.Debug().Int("elevator", e.id).Int("floor", e.floor).Msg("Door opened")
}

// move travels one floor. A stopped car moves down. Running past either end clamps
// to the terminal floor and starts the terminal wait with the direction reversed.
func (e *Elevator) move() {
	dir := e.dir
	if dir == types.MD_Stop {
		dir = types.MD_Down
	}
	next := e.floor + int(dir)

	switch {
	case next >= e.cfg.MaxFloor:
		e.startTerminalWait(e.cfg.MaxFloor-1, types.MD_Down)
	case next < 0:
		e.startTerminalWait(0, types.MD_Up)
	default:
		e.floor = next
		e.dir = dir
		e.behaviour = types.Moving
		e.takingRequests = false
	}
}

func (e *Elevator) startTerminalWait(floor int, dir types.MotorDirection) {
	e.floor = floor
	e.dir = dir
	e.behaviour = types.TerminalWait
	e.timer = e.cfg.TerminalWaitTicks
	e.takingRequests = !e.outOfService
	Log.Debug().Int("elevator", e.id).Int("floor", floor).Msgf("Waiting %d ticks at terminal", e.timer)
}

func (e *Elevator) park() {
	e.dir = types.MD_Stop
	e.stops[0] = false
	e.behaviour = types.Parked
	Log.Info().Int("elevator", e.id).Msg("Elevator parked at floor 0")
}

func (e *Elevator) clearStops() {
	for floor := range e.stops {
		e.stops[floor] = false
	}
}

func (e *Elevator) inRange(floor int) bool {
	return floor >= 0 && floor < e.cfg.MaxFloor
}
