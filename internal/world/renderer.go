package world

import (
	"propbrush/internal/components"
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws mesh renderers, skipping objects outside the camera.
type Renderer struct {
	GhostTint     rl.Color
	SelectionTint rl.Color

	// Culled counts objects skipped since the last Begin.
	Culled int

	frustum Frustum
}

func NewRenderer() *Renderer {
	return &Renderer{
		GhostTint:     rl.Fade(rl.White, 0.45),
		SelectionTint: rl.Orange,
	}
}

// Begin prepares culling for the frame. Call inside BeginMode3D.
func (r *Renderer) Begin(camera rl.Camera3D, aspect float32) {
	r.frustum = ExtractFrustum(camera, aspect)
	r.Culled = 0
}

// DrawObjects draws every visible mesh renderer in objects.
func (r *Renderer) DrawObjects(objects []*engine.GameObject) {
	for _, g := range objects {
		mr := engine.GetComponent[*components.MeshRenderer](g)
		if mr == nil {
			continue
		}
		if !r.Visible(g) {
			r.Culled++
			continue
		}
		mr.Draw(rl.White)
	}
}

// DrawGhost draws a preview tree translucent, whatever its hide flags.
func (r *Renderer) DrawGhost(ghost *engine.GameObject) {
	if ghost == nil {
		return
	}
	for _, mr := range engine.GetComponentsInChildren[*components.MeshRenderer](ghost) {
		mr.Draw(r.GhostTint)
	}
}

// DrawSelection outlines the colliders of each selected tree.
func (r *Renderer) DrawSelection(selected []*engine.GameObject) {
	for _, g := range selected {
		for _, box := range engine.GetComponentsInChildren[*components.BoxCollider](g) {
			rl.DrawBoundingBox(box.Bounds(), r.SelectionTint)
		}
		for _, s := range engine.GetComponentsInChildren[*components.SphereCollider](g) {
			rl.DrawSphereWires(s.GetCenter(), s.WorldRadius(), 8, 8, r.SelectionTint)
		}
	}
}

// Visible tests the object's bounding sphere against the frame's frustum.
func (r *Renderer) Visible(g *engine.GameObject) bool {
	return r.frustum.ContainsSphere(g.WorldPosition(), BoundingRadius(g))
}

// BoundingRadius is a conservative radius around the object's origin that
// covers its mesh.
func BoundingRadius(g *engine.GameObject) float32 {
	mr := engine.GetComponent[*components.MeshRenderer](g)
	if mr == nil {
		return 0
	}
	s := g.WorldScale()
	size := rl.Vector3Multiply(mr.Size, rl.Vector3{X: abs(s.X), Y: abs(s.Y), Z: abs(s.Z)})
	if mr.MeshType == components.MeshCube {
		return rl.Vector3Length(size) / 2
	}
	return rl.Vector3Length(size)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
