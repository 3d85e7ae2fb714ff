// Package placement is the scatter brush: it samples the surface under the
// pointer, classifies input into brush modes and places, erases or rotates
// template instances through the host scene.
package placement

import (
	"propbrush/internal/assets"
	"propbrush/internal/engine"
	"propbrush/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Margin is how far above a surface point the overlap and scatter rays start.
const Margin float32 = 5

// RayProjector turns a pointer position into a world ray.
type RayProjector interface {
	ScreenToWorldRay(pointer rl.Vector2) rl.Ray
}

// Queries are the collision queries the brush runs against the scene.
type Queries interface {
	Raycast(origin, direction rl.Vector3, mask engine.LayerMask, maxDistance float32) (physics.RaycastHit, bool)
	OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask) []*engine.GameObject
}

// Templates lists and instantiates palette entries.
type Templates interface {
	ListTemplates(dir, pattern string) ([]*assets.Template, error)
	Instantiate(t *assets.Template) *engine.GameObject
	DirExists(path string) bool
}

// Host is the editable scene. Spawn registers an object with the scene and
// its physics; Destroy removes it from both.
type Host interface {
	Spawn(g *engine.GameObject)
	Destroy(g *engine.GameObject)
	FindByTag(tag string) []*engine.GameObject
	ActiveSelection() *engine.GameObject
	SelectedObjects() []*engine.GameObject
	BrowsingLocation() string
}

// History receives one record per created, destroyed or moved object.
type History interface {
	RecordCreate(g *engine.GameObject)
	RecordDestroy(g *engine.GameObject)
	RecordTransform(g *engine.GameObject, before engine.Transform)
}

// DirNotifier reports directories whose contents changed.
type DirNotifier interface {
	Subscribe(fn func(dir string)) engine.Subscription
	Unsubscribe(id engine.Subscription)
}

// dirWatcher is implemented by notifiers that must be told which
// directories to watch.
type dirWatcher interface {
	Watch(dir string) error
	Unwatch(dir string)
}
