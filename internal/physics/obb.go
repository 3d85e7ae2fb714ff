package physics

import (
	"propbrush/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, size and a rotation quaternion.
func NewOBB(center, size rl.Vector3, rotation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rotation)),
		},
	}
}

// ColliderOBB is the world-space box of a collider.
func ColliderOBB(b *components.BoxCollider) OBB {
	return NewOBB(b.GetCenter(), b.GetWorldSize(), b.Rotation())
}

// toLocal expresses a world point in the box frame, relative to its center.
func (o OBB) toLocal(p rl.Vector3) rl.Vector3 {
	rel := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(rel, o.Axes[0]),
		Y: rl.Vector3DotProduct(rel, o.Axes[1]),
		Z: rl.Vector3DotProduct(rel, o.Axes[2]),
	}
}

// clampLocal pulls a local point onto or inside the box.
func (o OBB) clampLocal(local rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clamp(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	local := o.toLocal(center)
	return rl.Vector3DistanceSqr(local, o.clampLocal(local)) <= radius*radius
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
