package editor

import (
	"propbrush/internal/config"
	"propbrush/internal/engine"
	"propbrush/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerColor picks the brush outline color for mode.
func PointerColor(mode placement.Mode, s *config.Settings) rl.Color {
	switch {
	case mode.IsErase():
		return s.EraseColor
	case mode == placement.ModePaintDown || mode == placement.ModePaintDrag:
		return s.DrawColor
	}
	return s.IdleColor
}

// circleOrientation returns the axis and angle in degrees that turn
// raylib's circle, drawn in the XY plane, to face along normal.
func circleOrientation(normal rl.Vector3) (rl.Vector3, float32) {
	q := engine.FromToRotation(rl.Vector3{Z: 1}, normal)
	var axis rl.Vector3
	var angle float32
	rl.QuaternionToAxisAngle(q, &axis, &angle)
	return axis, angle * rl.Rad2deg
}

// DrawPointer outlines the brush disc on the surface and, when enabled,
// the surface normal. Call inside BeginMode3D.
func DrawPointer(s placement.Sample, mode placement.Mode, cfg *config.Configuration, settings *config.Settings) {
	if !s.Valid {
		return
	}
	color := PointerColor(mode, settings)
	axis, angle := circleOrientation(s.Normal)
	// Lift the outline off the surface so it isn't z-fighting
	center := rl.Vector3Add(s.Point, rl.Vector3Scale(s.Normal, 0.02))

	rings := max(int(settings.HandleThickness), 1)
	for i := range rings {
		rl.DrawCircle3D(center, cfg.BrushRadius+float32(i)*0.015, axis, angle, color)
	}
	if settings.ShowNormal {
		tip := rl.Vector3Add(s.Point, rl.Vector3Scale(s.Normal, cfg.BrushRadius))
		rl.DrawLine3D(s.Point, tip, color)
	}
}
