// Package world is the editable scene the brush paints into: the object
// graph, its collision registry, the editor selection and scene files.
package world

import (
	"log/slog"
	"slices"

	"propbrush/internal/engine"
	"propbrush/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	active   engine.GameObjectRef
	selected []engine.GameObjectRef
	browse   string
	log      *slog.Logger
}

func New(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		Scene:   engine.NewScene("Main"),
		Physics: physics.NewWorld(),
		log:     logger,
	}
}

// Spawn adds g and its children to the scene and the collision registry.
func (w *World) Spawn(g *engine.GameObject) {
	w.Attach(g)
}

// Destroy removes g and its children from the world.
func (w *World) Destroy(g *engine.GameObject) {
	w.Detach(g)
}

// Attach registers g. It is also how undo brings an object back.
func (w *World) Attach(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
}

// Detach unlinks g from its parent and unregisters it with its children.
func (w *World) Detach(g *engine.GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	w.Scene.RemoveGameObject(g)
	w.Physics.RemoveObject(g)
}

func (w *World) FindByTag(tag string) []*engine.GameObject {
	return w.Scene.FindByTag(tag)
}

func (w *World) Raycast(origin, direction rl.Vector3, mask engine.LayerMask, maxDistance float32) (physics.RaycastHit, bool) {
	return w.Physics.Raycast(origin, direction, mask, maxDistance)
}

func (w *World) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask) []*engine.GameObject {
	return w.Physics.OverlapSphere(center, radius, mask)
}

// Pick returns the root of the closest object hit by ray.
func (w *World) Pick(ray rl.Ray) *engine.GameObject {
	hit, ok := w.Physics.Raycast(ray.Position, ray.Direction, engine.EverythingMask, physics.Infinity)
	if !ok || hit.GameObject == nil {
		return nil
	}
	g := hit.GameObject
	for g.Parent != nil && !g.IsOutermostPrefabRoot() {
		g = g.Parent
	}
	return g
}

// Select makes g the only selected object. Nil clears the selection.
func (w *World) Select(g *engine.GameObject) {
	w.selected = w.selected[:0]
	w.active.Set(g)
	if g != nil {
		w.selected = append(w.selected, w.active)
	}
}

// ToggleSelected adds g to the selection or removes it.
func (w *World) ToggleSelected(g *engine.GameObject) {
	if g == nil {
		return
	}
	i := slices.IndexFunc(w.selected, func(r engine.GameObjectRef) bool { return r.UID == g.UID })
	if i >= 0 {
		w.selected = slices.Delete(w.selected, i, i+1)
		if w.active.UID == g.UID {
			w.active.Clear()
			if len(w.selected) > 0 {
				w.active = w.selected[len(w.selected)-1]
			}
		}
		return
	}
	w.selected = append(w.selected, engine.GameObjectRef{UID: g.UID})
	w.active.Set(g)
}

// ActiveSelection is the most recently selected object still in the scene.
func (w *World) ActiveSelection() *engine.GameObject {
	return w.active.Get(w.Scene)
}

// SelectedObjects resolves the selection, dropping destroyed objects.
func (w *World) SelectedObjects() []*engine.GameObject {
	var out []*engine.GameObject
	for _, r := range w.selected {
		if g := r.Get(w.Scene); g != nil {
			out = append(out, g)
		}
	}
	return out
}

func (w *World) BrowsingLocation() string {
	return w.browse
}

// SetBrowsingLocation sets the directory used when no palette path is
// configured.
func (w *World) SetBrowsingLocation(dir string) {
	w.browse = dir
}

// Clear empties the world.
func (w *World) Clear() {
	for _, g := range w.Scene.Roots() {
		w.Detach(g)
	}
	w.Select(nil)
}
