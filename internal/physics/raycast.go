package physics

import (
	"math"

	"propbrush/internal/components"
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast returns the closest hit against colliders whose layer is in mask.
func (w *World) Raycast(origin, direction rl.Vector3, mask engine.LayerMask, maxDistance float32) (RaycastHit, bool) {
	if rl.Vector3Length(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	w.eachCollider(mask, func(obj *engine.GameObject, c engine.Component) {
		var info RaycastHit
		var ok bool
		switch col := c.(type) {
		case *components.BoxCollider:
			info, ok = raycastOBB(origin, direction, ColliderOBB(col), maxDistance)
		case *components.SphereCollider:
			info, ok = raycastSphere(origin, direction, col.GetCenter(), col.WorldRadius(), maxDistance)
		}
		if ok && info.Distance <= closestHit.Distance {
			closestHit = info
			closestHit.GameObject = obj
			hit = true
		}
	})

	return closestHit, hit
}

// raycastOBB runs the slab test in the box frame. Axes are orthonormal, so
// distances carry over to world space unchanged.
func raycastOBB(origin, direction rl.Vector3, box OBB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	lo := box.toLocal(origin)
	o := [3]float32{lo.X, lo.Y, lo.Z}
	var d [3]float32
	for axis := range 3 {
		d[axis] = rl.Vector3DotProduct(direction, box.Axes[axis])
	}
	half := [3]float32{box.HalfSize.X, box.HalfSize.Y, box.HalfSize.Z}

	// Face each slab bound belongs to, as axis and outward sign.
	enterAxis, exitAxis := 0, 0
	enterSign, exitSign := float32(-1), float32(1)

	for axis := range 3 {
		if d[axis] == 0 {
			if o[axis] < -half[axis] || o[axis] > half[axis] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-half[axis] - o[axis]) / d[axis]
		t2 := (half[axis] - o[axis]) / d[axis]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis, enterSign = axis, sign
		}
		if t2 < tmax {
			tmax = t2
			exitAxis, exitSign = axis, -sign
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	normal := rl.Vector3Scale(box.Axes[enterAxis], enterSign)
	if t < 0 {
		// Origin inside the box: report the face the ray leaves through.
		t = tmax
		normal = rl.Vector3Scale(box.Axes[exitAxis], exitSign)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
