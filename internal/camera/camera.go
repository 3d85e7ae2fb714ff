package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of camera controls.
type Input struct {
	Look  rl.Vector2 // mouse delta while orbiting
	Pan   rl.Vector2 // mouse delta while panning
	Zoom  float32    // wheel movement, positive zooms in
	Move  rl.Vector2 // x = strafe right, y = forward
	Boost bool
}

// OrbitCamera circles a target point. Yaw and Pitch are in degrees.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32
	Pitch     float32
	Fovy      float32
	MoveSpeed float32
	LookSpeed float32
	PanSpeed  float32
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    25,
		Yaw:         -135.0,
		Pitch:       -35.0,
		Fovy:        45,
		MoveSpeed:   10.0, // Units per second
		LookSpeed:   0.25,
		PanSpeed:    0.02,
		ZoomSpeed:   1.5,
		MinDistance: 2,
		MaxDistance: 200,
	}
}

// Update reads the raylib input state. Right mouse orbits, middle mouse
// pans, the wheel zooms and WASD slides the target.
func (c *OrbitCamera) Update(deltaTime float32) {
	var in Input
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		in.Look = delta
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		in.Pan = delta
	}
	in.Zoom = rl.GetMouseWheelMove()

	// Ctrl is the rotate chord, so keys only move the camera without it
	if !rl.IsKeyDown(rl.KeyLeftControl) && !rl.IsKeyDown(rl.KeyRightControl) {
		if rl.IsKeyDown(rl.KeyW) {
			in.Move.Y++
		}
		if rl.IsKeyDown(rl.KeyS) {
			in.Move.Y--
		}
		if rl.IsKeyDown(rl.KeyD) {
			in.Move.X++
		}
		if rl.IsKeyDown(rl.KeyA) {
			in.Move.X--
		}
	}
	in.Boost = rl.IsKeyDown(rl.KeyLeftShift)
	c.Apply(in, deltaTime)
}

// Apply advances the camera by one frame of input.
func (c *OrbitCamera) Apply(in Input, deltaTime float32) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch -= in.Look.Y * c.LookSpeed

	// Clamp pitch
	c.Pitch = min(max(c.Pitch, -89), 89)

	if in.Zoom != 0 {
		c.Distance -= in.Zoom * c.ZoomSpeed
		c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
	}

	forward, right := c.getDirections()

	if in.Pan.X != 0 || in.Pan.Y != 0 {
		scale := c.PanSpeed * c.Distance / 10
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(right, -in.Pan.X*scale))
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(forward, in.Pan.Y*scale))
	}

	// Normalize diagonal movement so you don't go faster diagonally
	move := rl.Vector3Add(rl.Vector3Scale(forward, in.Move.Y), rl.Vector3Scale(right, in.Move.X))
	if l := rl.Vector3Length(move); l > 0 {
		speed := c.MoveSpeed
		if in.Boost {
			speed *= 3
		}
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(move, speed*deltaTime/l))
	}
}

// getDirections returns the horizontal forward and right vectors.
func (c *OrbitCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := c.Yaw * math32.Pi / 180
	forward = rl.Vector3{X: math32.Cos(yawRad), Z: math32.Sin(yawRad)}
	right = rl.Vector3{X: -math32.Sin(yawRad), Z: math32.Cos(yawRad)}
	return
}

// Position is the eye, Distance units behind the target along the view
// direction.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := c.Yaw * math32.Pi / 180
	pitchRad := c.Pitch * math32.Pi / 180
	look := rl.Vector3{
		X: math32.Cos(yawRad) * math32.Cos(pitchRad),
		Y: math32.Sin(pitchRad),
		Z: math32.Sin(yawRad) * math32.Cos(pitchRad),
	}
	return rl.Vector3Subtract(c.Target, rl.Vector3Scale(look, c.Distance))
}

// Focus moves the target to p, keeping the view angle.
func (c *OrbitCamera) Focus(p rl.Vector3) {
	c.Target = p
}

func (c *OrbitCamera) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// ScreenToWorldRay casts through pointer from the eye. Needs an open window.
func (c *OrbitCamera) ScreenToWorldRay(pointer rl.Vector2) rl.Ray {
	return rl.GetScreenToWorldRay(pointer, c.Camera3D())
}

// TopDown maps pointer coordinates straight onto the XZ plane and casts
// downward from Height. Used where there is no window.
type TopDown struct {
	Height float32
}

func (t TopDown) ScreenToWorldRay(pointer rl.Vector2) rl.Ray {
	return rl.Ray{
		Position:  rl.Vector3{X: pointer.X, Y: t.Height, Z: pointer.Y},
		Direction: rl.Vector3{Y: -1},
	}
}
