package obstacles

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"elbow/core"
	"elbow/geometry"
	"elbow/validation"
)

// Registry is an in-memory shape store implementing Shapes. Reads may run
// concurrently with each other; writes are exclusive.
type Registry struct {
	mu     sync.RWMutex
	shapes map[string]core.Bounds
	order  []string // insertion order, for stable iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: make(map[string]core.Bounds)}
}

// Set adds a shape or replaces its bounds.
func (r *Registry) Set(id string, b core.Bounds) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shapes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.shapes[id] = b
}

// Move translates a shape by delta. It returns false for unknown shapes.
func (r *Registry) Move(id string, delta core.Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.shapes[id]
	if !ok {
		return false
	}
	r.shapes[id] = b.Translate(delta)
	return true
}

// Remove deletes a shape.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shapes[id]; !ok {
		return
	}
	delete(r.shapes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Bounds implements ShapeLookup.
func (r *Registry) Bounds(id string) (core.Bounds, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.shapes[id]
	return b, ok
}

// IDs returns shape IDs in insertion order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len returns the number of shapes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.shapes)
}

// ShapeAt returns the topmost (last added) shape containing p.
func (r *Registry) ShapeAt(p core.Point) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.order) - 1; i >= 0; i-- {
		if r.shapes[r.order[i]].Contains(p) {
			return r.order[i], true
		}
	}
	return "", false
}

// NearestSide implements EdgeLocator. Ties go to the first side in
// top, right, bottom, left order.
func (r *Registry) NearestSide(id string, p core.Point) (core.Direction, bool) {
	b, ok := r.Bounds(id)
	if !ok {
		return core.Top, false
	}
	return NearestSide(b, p), true
}

// ProjectToSide implements EdgeLocator.
func (r *Registry) ProjectToSide(id string, p core.Point, side core.Direction) (core.Point, bool) {
	b, ok := r.Bounds(id)
	if !ok {
		return p, false
	}
	return ProjectToSide(b, p, side), true
}

// Anchor returns the point at fraction t (0..1) along the given side,
// measured left to right or top to bottom.
func (r *Registry) Anchor(id string, side core.Direction, t float64) (core.Point, bool) {
	b, ok := r.Bounds(id)
	if !ok {
		return core.Point{}, false
	}
	t = geometry.Clamp(t, 0, 1)
	if side.IsVertical() {
		return core.Point{X: b.Min.X + t*b.Width(), Y: b.Edge(side)}, true
	}
	return core.Point{X: b.Edge(side), Y: b.Min.Y + t*b.Height()}, true
}

// Obstacles returns every shape except the excluded ones as validation
// obstacles padded by margin, in insertion order.
func (r *Registry) Obstacles(margin float64, exclude ...string) []validation.Obstacle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	out := make([]validation.Obstacle, 0, len(r.order))
	for _, id := range r.order {
		if skip[id] {
			continue
		}
		b := r.shapes[id]
		out = append(out, validation.Obstacle{ID: id, Bounds: b, Padded: b.Expand(margin)})
	}
	return out
}

// String lists the shapes sorted by ID.
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	s := fmt.Sprintf("Registry[%d shapes]", len(ids))
	for _, id := range ids {
		b := r.shapes[id]
		s += fmt.Sprintf(" %s=%v-%v", id, b.Min, b.Max)
	}
	return s
}

// NearestSide returns the side of b closest to p.
func NearestSide(b core.Bounds, p core.Point) core.Direction {
	best, bestDist := core.Top, math.Inf(1)
	for _, side := range []core.Direction{core.Top, core.Right, core.Bottom, core.Left} {
		d := ProjectToSide(b, p, side).Distance(p)
		if d < bestDist-core.Epsilon {
			best, bestDist = side, d
		}
	}
	return best
}

// ProjectToSide moves p onto side of b, clamped to the side's extent.
func ProjectToSide(b core.Bounds, p core.Point, side core.Direction) core.Point {
	if side.IsVertical() {
		return core.Point{X: geometry.Clamp(p.X, b.Min.X, b.Max.X), Y: b.Edge(side)}
	}
	return core.Point{X: b.Edge(side), Y: geometry.Clamp(p.Y, b.Min.Y, b.Max.Y)}
}
