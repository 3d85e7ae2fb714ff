package physics

import (
	"propbrush/internal/components"
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlapSphere returns each object owning a collider in mask that touches
// the sphere. An object appears at most once, in registration order.
func (w *World) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask) []*engine.GameObject {
	var result []*engine.GameObject
	seen := make(map[*engine.GameObject]bool)

	w.eachCollider(mask, func(obj *engine.GameObject, c engine.Component) {
		if seen[obj] {
			return
		}
		var hit bool
		switch col := c.(type) {
		case *components.BoxCollider:
			hit = ColliderOBB(col).IntersectsSphere(center, radius)
		case *components.SphereCollider:
			r := radius + col.WorldRadius()
			hit = rl.Vector3DistanceSqr(center, col.GetCenter()) <= r*r
		}
		if hit {
			seen[obj] = true
			result = append(result, obj)
		}
	})
	return result
}
