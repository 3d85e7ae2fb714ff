package placement

import (
	"propbrush/internal/engine"
	"propbrush/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sample is a surface hit. Filter is the mask the hit was taken with.
type Sample struct {
	Point  rl.Vector3
	Normal rl.Vector3
	Object *engine.GameObject
	Filter engine.LayerMask
	Valid  bool
}

// SurfaceSampler keeps the last successful surface hit under the pointer.
type SurfaceSampler struct {
	projector RayProjector
	queries   Queries
	last      Sample
}

func NewSurfaceSampler(projector RayProjector, queries Queries) *SurfaceSampler {
	return &SurfaceSampler{projector: projector, queries: queries}
}

// Sample casts the pointer ray against filter. On a miss the previous sample
// is returned unchanged with ok false.
func (s *SurfaceSampler) Sample(pointer rl.Vector2, filter engine.LayerMask) (Sample, bool) {
	ray := s.projector.ScreenToWorldRay(pointer)
	hit, ok := castSample(s.queries, ray.Position, ray.Direction, filter)
	if !ok {
		return s.last, false
	}
	s.last = hit
	return hit, true
}

// Last returns the most recent successful sample.
func (s *SurfaceSampler) Last() Sample {
	return s.last
}

func castSample(q Queries, origin, direction rl.Vector3, filter engine.LayerMask) (Sample, bool) {
	hit, ok := q.Raycast(origin, direction, filter, physics.Infinity)
	if !ok {
		return Sample{}, false
	}
	return Sample{
		Point:  hit.Point,
		Normal: hit.Normal,
		Object: hit.GameObject,
		Filter: filter,
		Valid:  true,
	}, true
}
