package components

import (
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius   float32
	Offset   rl.Vector3
	Disabled bool
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

func (s *SphereCollider) SetEnabled(enabled bool) { s.Disabled = !enabled }
func (s *SphereCollider) IsEnabled() bool         { return !s.Disabled }

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

// WorldRadius scales the radius by the largest world scale component.
func (s *SphereCollider) WorldRadius() float32 {
	sc := s.GetGameObject().WorldScale()
	m := abs(sc.X)
	if abs(sc.Y) > m {
		m = abs(sc.Y)
	}
	if abs(sc.Z) > m {
		m = abs(sc.Z)
	}
	return s.Radius * m
}
