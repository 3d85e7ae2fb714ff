package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var uidCounter atomic.Uint64

func nextUID() uint64 {
	return uidCounter.Add(1)
}

// HideFlags controls whether an object is listed and saved with its scene.
type HideFlags uint8

const (
	HideInHierarchy HideFlags = 1 << iota
	DontSave

	HideAndDontSave = HideInHierarchy | DontSave
)

// PrefabLink marks an object as part of an instantiated template.
// Root is set only on the object the template was instantiated as.
type PrefabLink struct {
	Source string
	Root   bool
}

type GameObject struct {
	UID       uint64
	Name      string
	Tags      []string
	Layer     int
	Transform Transform
	Active    bool
	HideFlags HideFlags
	Prefab    *PrefabLink
	Scene     *Scene
	Parent    *GameObject
	Children  []*GameObject

	components []Component
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:        nextUID(),
		Name:       name,
		Active:     true,
		Transform:  NewTransform(),
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponentsInChildren collects every T on g and its descendants.
func GetComponentsInChildren[T Component](g *GameObject) []T {
	var out []T
	g.Walk(func(obj *GameObject) {
		for _, c := range obj.components {
			if typed, ok := c.(T); ok {
				out = append(out, typed)
			}
		}
	})
	return out
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for o := g; o != nil; o = o.Parent {
		if !o.Active {
			return false
		}
	}
	return true
}

// Walk visits g and then its descendants depth-first.
func (g *GameObject) Walk(fn func(*GameObject)) {
	fn(g)
	for _, c := range g.Children {
		c.Walk(fn)
	}
}

// Root returns the outermost ancestor of g.
func (g *GameObject) Root() *GameObject {
	o := g
	for o.Parent != nil {
		o = o.Parent
	}
	return o
}

// IsPartOfPrefab reports whether g belongs to an instantiated template.
func (g *GameObject) IsPartOfPrefab() bool {
	return g.Prefab != nil
}

// IsOutermostPrefabRoot reports whether g is a template instance root that
// is not itself nested inside another template instance.
func (g *GameObject) IsOutermostPrefabRoot() bool {
	if g.Prefab == nil || !g.Prefab.Root {
		return false
	}
	for p := g.Parent; p != nil; p = p.Parent {
		if p.Prefab != nil {
			return false
		}
	}
	return true
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetParent reparents g. With keepWorld the local transform is rewritten so
// the world position, rotation and scale stay where they were.
func (g *GameObject) SetParent(parent *GameObject, keepWorld bool) {
	if parent == g.Parent {
		return
	}
	pos, rot, scale := g.WorldPosition(), g.WorldRotation(), g.WorldScale()

	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if parent != nil {
		parent.AddChild(g)
	}
	if keepWorld {
		g.SetWorldTransform(pos, rot, scale)
	}
}

// SetWorldTransform writes local values that produce the given world values
// under the current parent.
func (g *GameObject) SetWorldTransform(pos rl.Vector3, rot rl.Quaternion, scale rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		g.Transform.Rotation = rot
		g.Transform.Scale = scale
		return
	}
	pPos := g.Parent.WorldPosition()
	pInv := rl.QuaternionInvert(g.Parent.WorldRotation())
	pScale := g.Parent.WorldScale()

	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(pos, pPos), pInv)
	g.Transform.Position = divide(local, pScale)
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(pInv, rot))
	g.Transform.Scale = divide(scale, pScale)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	scaled := rl.Vector3Multiply(g.Transform.Position, g.Parent.WorldScale())
	rotated := rl.Vector3RotateByQuaternion(scaled, g.Parent.WorldRotation())
	return rl.Vector3Add(g.Parent.WorldPosition(), rotated)
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return rl.Vector3Multiply(g.Parent.WorldScale(), g.Transform.Scale)
}

// divide is a component-wise division that leaves a component untouched
// when its divisor is zero.
func divide(v, by rl.Vector3) rl.Vector3 {
	if by.X != 0 {
		v.X /= by.X
	}
	if by.Y != 0 {
		v.Y /= by.Y
	}
	if by.Z != 0 {
		v.Z /= by.Z
	}
	return v
}
