package report

import (
	"fmt"
	"strings"

	"elevsim/src/types"
)

const (
	PanelWidth   = 80
	innerWidth   = PanelWidth - 2
	requestWidth = 65
	ClearScreen  = "\033[H\033[2J"
)

// ElevatorLine renders one elevator the way the console prints it:
// W[wait,floor] while waiting at a terminal, otherwise [floor|dir|door]< stops >.
func ElevatorLine(s types.ElevatorStatus) string {
	if s.WaitTimer > 0 {
		return fmt.Sprintf("W[%d,%d]", s.WaitTimer, s.CurrentFloor)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d|%s|", s.CurrentFloor, s.Direction)
	if s.DoorClosed {
		sb.WriteString("closed]<")
	} else {
		fmt.Fprintf(&sb, "open %d]<", s.DoorTimer)
	}
	for floor, pending := range s.FloorRequests {
		if pending {
			fmt.Fprintf(&sb, " %2d", floor)
		} else {
			sb.WriteString(" --")
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// Building draws the status panel: header, both queues, one line per elevator and
// a shaft view with the top floor first. Every line is PanelWidth wide unless an
// elevator line alone overflows it.
func Building(s types.BuildingStatus) string {
	var sb strings.Builder
	sb.WriteString(bar())
	sb.WriteString(centre(fmt.Sprintf("Floors: %d, Elevators: %d, Capacity: %d",
		s.NumFloors, s.NumElevators, s.ElevatorCapacity)))
	sb.WriteString(centre(statusTitle(s.SystemStatus)))
	sb.WriteString(bar())

	sb.WriteString(left(requestsLine("Up", s.UpRequests)))
	sb.WriteString(left(requestsLine("Down", s.DownRequests)))

	sb.WriteString(bar())
	sb.WriteString(centre("Elevator Status"))
	for _, row := range elevatorRows(s) {
		sb.WriteString(row)
	}
	sb.WriteString(bar())
	return sb.String()
}

func statusTitle(status types.SystemStatus) string {
	switch status {
	case types.Running:
		return "Elevator System Running"
	case types.Stopping:
		return "Elevator System Stopping"
	case types.OutOfService:
		return "Elevator System Out of Service"
	}
	return ""
}

// requestsLine lists queued requests after a count, cutting off with ... once the line gets too long.
func requestsLine(title string, reqs []types.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s[(%03d)] ", title, len(reqs))
	for _, r := range reqs {
		req := r.String()
		if sb.Len()+len(req) > requestWidth {
			sb.WriteString("...")
			break
		}
		sb.WriteString(req)
		sb.WriteString(" ")
	}
	return sb.String()
}

func elevatorRows(s types.BuildingStatus) []string {
	details := make([]string, len(s.Elevators))
	for i, e := range s.Elevators {
		details[i] = fmt.Sprintf("Elevator %d: %s", i, ElevatorLine(e))
	}
	shaft := shaftView(s)

	rows := make([]string, max(len(details), len(shaft)))
	for i := range rows {
		var detail, graphic string
		if i < len(details) {
			detail = details[i]
		}
		if i < len(shaft) {
			graphic = shaft[i]
		}
		gap := innerWidth - 2 - len(detail) - len(graphic)
		rows[i] = "* " + detail + strings.Repeat(" ", max(gap, 1)) + graphic + " *\n"
	}
	return rows
}

// shaftView has one row per floor, top floor first, with each elevator index in its own column.
func shaftView(s types.BuildingStatus) []string {
	rows := make([]string, 0, s.NumFloors)
	for floor := s.NumFloors - 1; floor >= 0; floor-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%2d]", floor)
		for i, e := range s.Elevators {
			if e.CurrentFloor == floor {
				fmt.Fprintf(&sb, "%2d", i)
			} else {
				sb.WriteString("  ")
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func bar() string {
	return strings.Repeat("*", PanelWidth) + "\n"
}

func centre(s string) string {
	pad := max(innerWidth-len(s), 0)
	return "*" + strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2) + "*\n"
}

func left(s string) string {
	return "* " + s + strings.Repeat(" ", max(innerWidth-1-len(s), 0)) + "*\n"
}
