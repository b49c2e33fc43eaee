package utils

import (
	"slices"
	"testing"
)

func TestStopFloors(t *testing.T) {
	tests := []struct {
		stops    []bool
		expected []int
	}{
		{nil, []int{}},
		{[]bool{false, false, false}, []int{}},
		{[]bool{true, false, true, true}, []int{0, 2, 3}},
	}
	for _, tt := range tests {
		got := StopFloors(tt.stops)
		if !slices.Equal(got, tt.expected) {
			t.Errorf("StopFloors(%v) = %v, expected %v", tt.stops, got, tt.expected)
		}
	}
}

func TestForEachStopVisitsInOrder(t *testing.T) {
	var visited []int
	ForEachStop([]bool{false, true, false, true}, func(floor int) {
		visited = append(visited, floor)
	})
	if !slices.Equal(visited, []int{1, 3}) {
		t.Errorf("ForEachStop visited %v, expected [1 3]", visited)
	}
}
