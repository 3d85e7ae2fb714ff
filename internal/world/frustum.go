package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	clipNear float32 = 0.1
	clipFar  float32 = 1000
)

// Frustum holds the six clip planes of a camera, normals pointing inwards.
type Frustum struct {
	planes [6]plane
}

type plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum derives the planes from the camera's view-projection matrix
// (Gribb/Hartmann) for a viewport with the given aspect ratio.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, clipNear, clipFar)
	} else {
		halfH := camera.Fovy / 2
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, clipNear, clipFar)
	}
	m := rl.MatrixMultiply(view, proj)

	// Rows of the combined matrix; raylib stores it column-major.
	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}

	var f Frustum
	for i := range 3 {
		f.planes[2*i] = planeFromRow(rows[3], rows[i], 1)
		f.planes[2*i+1] = planeFromRow(rows[3], rows[i], -1)
	}
	return f
}

func planeFromRow(w, r [4]float32, sign float32) plane {
	p := plane{
		normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
		distance: w[3] + sign*r[3],
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	p.normal = rl.Vector3Scale(p.normal, 1/length)
	p.distance /= length
	return p
}

// ContainsSphere reports whether any part of the sphere is inside.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, center)+p.distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
