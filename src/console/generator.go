package console

import (
	"math/rand/v2"

	"elevsim/src/types"
)

// Generator produces random passenger requests for a building.
type Generator struct {
	numFloors int
	rng       *rand.Rand
}

func NewGenerator(numFloors int, seed uint64) *Generator {
	return &Generator{
		numFloors: numFloors,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Random picks a uniform start floor and a different end floor.
func (g *Generator) Random() types.Request {
	start := g.rng.IntN(g.numFloors)
	end := g.rng.IntN(g.numFloors - 1)
	if end >= start {
		end++
	}
	return types.Request{StartFloor: start, EndFloor: end}
}

// Up picks a destination above start. There is none from the top floor.
func (g *Generator) Up(start int) (types.Request, bool) {
	if start < 0 || start >= g.numFloors-1 {
		return types.Request{}, false
	}
	end := start + 1 + g.rng.IntN(g.numFloors-start-1)
	return types.Request{StartFloor: start, EndFloor: end}, true
}

// Down picks a destination below start. There is none from floor 0.
func (g *Generator) Down(start int) (types.Request, bool) {
	if start <= 0 || start >= g.numFloors {
		return types.Request{}, false
	}
	return types.Request{StartFloor: start, EndFloor: g.rng.IntN(start)}, true
}
