package physics

import (
	"math"

	"propbrush/internal/components"
	"propbrush/internal/engine"
)

// Infinity is the max distance used for unbounded queries.
const Infinity = float32(math.MaxFloat32)

// World is the collision registry the queries run against. Only objects
// added to the world take part in queries, so preview objects are never hit
// as long as they are not registered.
type World struct {
	objects []*engine.GameObject
	index   map[*engine.GameObject]int
}

func NewWorld() *World {
	return &World{
		objects: make([]*engine.GameObject, 0),
		index:   make(map[*engine.GameObject]int),
	}
}

// AddObject registers g and its descendants.
func (w *World) AddObject(g *engine.GameObject) {
	g.Walk(func(obj *engine.GameObject) {
		if _, ok := w.index[obj]; ok {
			return
		}
		w.index[obj] = len(w.objects)
		w.objects = append(w.objects, obj)
	})
}

// RemoveObject unregisters g and its descendants.
func (w *World) RemoveObject(g *engine.GameObject) {
	g.Walk(func(obj *engine.GameObject) {
		i, ok := w.index[obj]
		if !ok {
			return
		}
		last := len(w.objects) - 1
		w.objects[i] = w.objects[last]
		w.index[w.objects[i]] = i
		w.objects = w.objects[:last]
		delete(w.index, obj)
	})
}

func (w *World) Contains(g *engine.GameObject) bool {
	_, ok := w.index[g]
	return ok
}

func (w *World) Count() int {
	return len(w.objects)
}

// eachCollider calls fn for every enabled collider on an active object
// whose layer is in mask.
func (w *World) eachCollider(mask engine.LayerMask, fn func(obj *engine.GameObject, c engine.Component)) {
	for _, obj := range w.objects {
		if !mask.Contains(obj.Layer) || !obj.ActiveInHierarchy() {
			continue
		}
		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil && box.IsEnabled() {
			fn(obj, box)
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil && sphere.IsEnabled() {
			fn(obj, sphere)
		}
	}
}
