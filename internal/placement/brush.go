package placement

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RandomInDisc draws a point uniformly distributed over a disc of radius r.
func RandomInDisc(rng Rand, r float32) rl.Vector2 {
	dist := r * math32.Sqrt(rng.Float32())
	angle := 2 * math32.Pi * rng.Float32()
	p := rl.Vector2{X: dist * math32.Cos(angle), Y: dist * math32.Sin(angle)}
	if l := rl.Vector2Length(p); l > r && l > 0 {
		p = rl.Vector2Scale(p, r/l)
	}
	return p
}

func distance(a, b rl.Vector3) float32 {
	return rl.Vector3Distance(a, b)
}
