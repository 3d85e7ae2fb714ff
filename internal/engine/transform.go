package engine

import rl "github.com/gen2brain/raylib-go/raylib"

var (
	WorldUp      = rl.Vector3{X: 0, Y: 1, Z: 0}
	WorldForward = rl.Vector3{X: 0, Y: 0, Z: 1}
)

// Transform is local to the parent object. Rotation is a unit quaternion.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{
		Position: rl.Vector3{},
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

func (t Transform) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(WorldUp, t.Rotation)
}

func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(WorldForward, t.Rotation)
}

// SetUp rotates the transform so its up axis points along up, using the
// shortest arc from world up.
func (t *Transform) SetUp(up rl.Vector3) {
	t.Rotation = FromToRotation(WorldUp, up)
}

// Rotate applies an Euler rotation in degrees in local space.
func (t *Transform) Rotate(eulerDeg rl.Vector3) {
	delta := QuaternionFromEulerDegrees(eulerDeg)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.Rotation, delta))
}

// EulerAngles returns the rotation as pitch/yaw/roll degrees.
func (t Transform) EulerAngles() rl.Vector3 {
	return rl.Vector3Scale(rl.QuaternionToEuler(t.Rotation), rl.Rad2deg)
}

func (t *Transform) SetEulerAngles(eulerDeg rl.Vector3) {
	t.Rotation = QuaternionFromEulerDegrees(eulerDeg)
}

func QuaternionFromEulerDegrees(e rl.Vector3) rl.Quaternion {
	return rl.QuaternionFromEuler(e.X*rl.Deg2rad, e.Y*rl.Deg2rad, e.Z*rl.Deg2rad)
}

// FromToRotation is the shortest-arc rotation taking from onto to. Opposite
// vectors get a half turn about an axis perpendicular to from.
func FromToRotation(from, to rl.Vector3) rl.Quaternion {
	from = rl.Vector3Normalize(from)
	to = rl.Vector3Normalize(to)
	if rl.Vector3DotProduct(from, to) < -0.9999 {
		axis := rl.Vector3CrossProduct(from, rl.Vector3{X: 1})
		if rl.Vector3Length(axis) < 1e-4 {
			axis = rl.Vector3CrossProduct(from, rl.Vector3{Z: 1})
		}
		return rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), rl.Pi)
	}
	return rl.QuaternionFromVector3ToVector3(from, to)
}

// LookRotation orients up along up and forward as close to forward as the
// plane perpendicular to up allows.
func LookRotation(forward, up rl.Vector3) rl.Quaternion {
	up = rl.Vector3Normalize(up)
	q := FromToRotation(WorldUp, up)

	target := ProjectOnPlane(forward, up)
	if rl.Vector3Length(target) < 1e-6 {
		return q
	}
	target = rl.Vector3Normalize(target)
	current := rl.Vector3RotateByQuaternion(WorldForward, q)

	var twist rl.Quaternion
	if rl.Vector3DotProduct(current, target) < -0.9999 {
		twist = rl.QuaternionFromAxisAngle(up, rl.Pi)
	} else {
		twist = rl.QuaternionFromVector3ToVector3(current, target)
	}
	return rl.QuaternionNormalize(rl.QuaternionMultiply(twist, q))
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n rl.Vector3) rl.Vector3 {
	sqr := rl.Vector3DotProduct(n, n)
	if sqr < 1e-12 {
		return v
	}
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)/sqr))
}
