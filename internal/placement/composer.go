package placement

import (
	"propbrush/internal/config"
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type rotationInputs struct {
	randomize bool
	delta     rl.Vector3
}

type scaleInputs struct {
	randomize      bool
	mult, min, max float32
}

// TransformComposer turns the configuration and a surface sample into an
// instance transform. The rotation overlay and the scale modifier are cached
// and recomputed only when their configuration inputs change or a reroll is
// requested.
type TransformComposer struct {
	cfg  *config.Configuration
	host Host
	rng  Rand

	overlay  rl.Vector3
	scaleMod float32

	rotIn   rotationInputs
	scaleIn scaleInputs
}

func NewTransformComposer(cfg *config.Configuration, host Host, rng Rand) *TransformComposer {
	c := &TransformComposer{cfg: cfg, host: host, rng: rng}
	c.RerollRotation()
	c.RerollScale()
	return c
}

// Refresh recomputes whichever cached value has stale inputs.
func (c *TransformComposer) Refresh() {
	if c.currentRotationInputs() != c.rotIn {
		c.RerollRotation()
	}
	if c.currentScaleInputs() != c.scaleIn {
		c.RerollScale()
	}
}

func (c *TransformComposer) RerollRotation() {
	c.rotIn = c.currentRotationInputs()
	if c.cfg.RandomizeRotation {
		c.overlay = rl.Vector3{Y: c.rng.Float32() * 360}
		return
	}
	c.overlay = c.cfg.RotationDelta
}

func (c *TransformComposer) RerollScale() {
	c.scaleIn = c.currentScaleInputs()
	if c.cfg.RandomizeScale {
		c.scaleMod = c.cfg.MinScale + c.rng.Float32()*(c.cfg.MaxScale-c.cfg.MinScale)
		return
	}
	c.scaleMod = c.cfg.ScaleMultiplier
}

// Overlay is the Euler rotation in degrees applied on top of the alignment.
func (c *TransformComposer) Overlay() rl.Vector3 {
	return c.overlay
}

func (c *TransformComposer) ScaleModifier() float32 {
	return c.scaleMod
}

func (c *TransformComposer) currentRotationInputs() rotationInputs {
	return rotationInputs{randomize: c.cfg.RandomizeRotation, delta: c.cfg.RotationDelta}
}

func (c *TransformComposer) currentScaleInputs() scaleInputs {
	return scaleInputs{
		randomize: c.cfg.RandomizeScale,
		mult:      c.cfg.ScaleMultiplier,
		min:       c.cfg.MinScale,
		max:       c.cfg.MaxScale,
	}
}

// Compose applies alignment, rotation overlay, scale, position and
// parenting to a freshly instantiated root object.
func (c *TransformComposer) Compose(g *engine.GameObject, s Sample, baseScale rl.Vector3) {
	c.ComposePreview(g, s, baseScale)
	c.applyParent(g)
}

// ComposePreview is Compose without parenting.
func (c *TransformComposer) ComposePreview(g *engine.GameObject, s Sample, baseScale rl.Vector3) {
	t := &g.Transform
	if c.cfg.AlignToNormal {
		t.SetUp(s.Normal)
	} else {
		t.Rotation = rl.QuaternionIdentity()
	}
	t.Rotate(c.overlay)
	t.Scale = rl.Vector3Scale(baseScale, c.scaleMod)
	t.Position = rl.Vector3Add(s.Point, c.cfg.PositionOffset)
}

func (c *TransformComposer) applyParent(g *engine.GameObject) {
	if !c.cfg.SetParent || c.host == nil {
		return
	}
	parent := c.host.ActiveSelection()
	if parent == nil || parent == g || !parent.ActiveInHierarchy() {
		return
	}
	g.SetParent(parent, true)
}
