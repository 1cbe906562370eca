package obstacles

import (
	"sync"

	"elbow/core"
)

// portKey identifies one side of one shape.
type portKey struct {
	shapeID string
	side    core.Direction
}

// Ports spreads connectors that share a shape side evenly along it, so two
// connectors leaving the same side do not start on top of each other.
type Ports struct {
	mu    sync.RWMutex
	sides map[portKey][]string // connector IDs per side, in reservation order
}

// NewPorts creates an empty port table.
func NewPorts() *Ports {
	return &Ports{sides: make(map[portKey][]string)}
}

// Reserve records that connID attaches to side of shapeID. Reserving the
// same connector twice is a no-op.
func (p *Ports) Reserve(shapeID string, side core.Direction, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := portKey{shapeID, side}
	for _, id := range p.sides[key] {
		if id == connID {
			return
		}
	}
	p.sides[key] = append(p.sides[key], connID)
}

// Release removes connID from side of shapeID.
func (p *Ports) Release(shapeID string, side core.Direction, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := portKey{shapeID, side}
	ids := p.sides[key]
	for i, id := range ids {
		if id == connID {
			p.sides[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(p.sides[key]) == 0 {
		delete(p.sides, key)
	}
}

// Count returns how many connectors share the side.
func (p *Ports) Count(shapeID string, side core.Direction) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.sides[portKey{shapeID, side}])
}

// Fraction returns where along the side connID should attach: the i-th of n
// connectors sits at (i+1)/(n+1). Unreserved connectors get the midpoint.
func (p *Ports) Fraction(shapeID string, side core.Direction, connID string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.sides[portKey{shapeID, side}]
	for i, id := range ids {
		if id == connID {
			return float64(i+1) / float64(len(ids)+1)
		}
	}
	return 0.5
}
