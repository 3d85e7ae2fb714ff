package components

import (
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is a box sized in local units. It follows the owner's world
// rotation and scale, offset included.
type BoxCollider struct {
	engine.BaseComponent
	Size     rl.Vector3
	Offset   rl.Vector3
	Disabled bool
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

func (b *BoxCollider) SetEnabled(enabled bool) { b.Disabled = !enabled }
func (b *BoxCollider) IsEnabled() bool         { return !b.Disabled }

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	offset := rl.Vector3Multiply(b.Offset, g.WorldScale())
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3RotateByQuaternion(offset, g.WorldRotation()))
}

func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := rl.Vector3Multiply(b.Size, b.GetGameObject().WorldScale())
	return rl.Vector3{X: abs(s.X), Y: abs(s.Y), Z: abs(s.Z)}
}

// Rotation is the orientation of the box axes in world space.
func (b *BoxCollider) Rotation() rl.Quaternion {
	return b.GetGameObject().WorldRotation()
}

// Bounds is the world axis-aligned box enclosing the rotated collider.
func (b *BoxCollider) Bounds() rl.BoundingBox {
	center := b.GetCenter()
	half := rl.Vector3Scale(b.GetWorldSize(), 0.5)
	rot := b.Rotation()
	axes := [3]rl.Vector3{
		rl.Vector3Scale(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rot), half.X),
		rl.Vector3Scale(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rot), half.Y),
		rl.Vector3Scale(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rot), half.Z),
	}
	var extent rl.Vector3
	for _, a := range axes {
		extent.X += abs(a.X)
		extent.Y += abs(a.Y)
		extent.Z += abs(a.Z)
	}
	return rl.BoundingBox{
		Min: rl.Vector3Subtract(center, extent),
		Max: rl.Vector3Add(center, extent),
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
