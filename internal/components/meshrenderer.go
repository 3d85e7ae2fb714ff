package components

import (
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
	MeshCylinder
)

type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

// Draw renders the mesh at the owner's world transform. Must be called
// between BeginMode3D and EndMode3D.
func (m *MeshRenderer) Draw(tint rl.Color) {
	g := m.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}

	pos := g.WorldPosition()
	scale := g.WorldScale()
	var axis rl.Vector3
	var angle float32
	rl.QuaternionToAxisAngle(g.WorldRotation(), &axis, &angle)

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	rl.Scalef(scale.X, scale.Y, scale.Z)

	color := rl.ColorTint(m.Color, tint)
	origin := rl.Vector3{}
	switch m.MeshType {
	case MeshCube:
		rl.DrawCubeV(origin, m.Size, color)
		rl.DrawCubeWiresV(origin, m.Size, rl.Fade(rl.Black, 0.3))
	case MeshSphere:
		rl.DrawSphere(origin, m.Size.X, color)
	case MeshPlane:
		rl.DrawPlane(origin, rl.Vector2{X: m.Size.X, Y: m.Size.Z}, color)
	case MeshCylinder:
		rl.DrawCylinder(origin, m.Size.X, m.Size.X, m.Size.Y, 12, color)
	}
	rl.PopMatrix()
}
