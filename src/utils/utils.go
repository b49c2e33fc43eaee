package utils

// ForEachStop is a helper function that reduces indentation when acting on every pending stop
func ForEachStop(stops []bool, action func(floor int)) {
	for floor, pending := range stops {
		if pending {
			action(floor)
		}
	}
}

// StopFloors lists the floors with a pending stop in ascending order.
func StopFloors(stops []bool) []int {
	floors := []int{}
	ForEachStop(stops, func(floor int) {
		floors = append(floors, floor)
	})
	return floors
}
