package editor

import (
	"os"
	"path/filepath"
	"testing"

	"propbrush/internal/camera"
	"propbrush/internal/config"
	"propbrush/internal/engine"
	"propbrush/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groundScene = `{
  "name": "Test",
  "objects": [
    {
      "name": "Ground",
      "position": [0, -0.5, 0],
      "rotation": [0, 0, 0],
      "scale": [1, 1, 1],
      "components": [
        {"type": "BoxCollider", "size": [40, 1, 40]}
      ]
    }
  ]
}`

const cratePrefab = `{
  "name": "Crate",
  "tags": ["Prop"],
  "layer": 8,
  "position": [0, 0, 0],
  "rotation": [0, 0, 0],
  "scale": [1, 1, 1],
  "components": [
    {"type": "BoxCollider", "size": [1, 1, 1], "offset": [0, 0.5, 0]}
  ]
}`

func newEditor(t *testing.T) (*Editor, string) {
	t.Helper()
	dir := t.TempDir()
	palette := filepath.Join(dir, "palette")
	require.NoError(t, os.Mkdir(palette, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(palette, "crate.prefab"), []byte(cratePrefab), 0644))
	scene := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scene, []byte(groundScene), 0644))

	f := config.DefaultFileContents()
	f.Brush.PalettePath = palette
	f.Brush.InstanceMask = engine.MaskOf(8)
	f.Brush.RotationDelta = rl.Vector3{}

	e, err := New(Options{
		File:       f,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		ScenePath:  scene,
		Projector:  camera.TopDown{Height: 50},
	})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e, dir
}

func key(k placement.Key) FrameInput {
	return FrameInput{Keys: []placement.Key{k}}
}

func click(x, z float32) FrameInput {
	in := FrameInput{Pointer: rl.Vector2{X: x, Y: z}}
	in.Pressed[placement.ButtonPrimary] = true
	in.Down[placement.ButtonPrimary] = true
	return in
}

func crates(e *Editor) []*engine.GameObject {
	return e.World().FindByTag("Prop")
}

func TestNewLoadsSceneAndPalette(t *testing.T) {
	e, _ := newEditor(t)
	assert.NotNil(t, e.World().Scene.FindByName("Ground"))
	assert.Equal(t, 1, e.Brush().Catalog().Len())
	assert.Equal(t, []bool{false}, e.Brush().Catalog().Mask())
}

func TestNewMissingScene(t *testing.T) {
	_, err := New(Options{File: config.DefaultFileContents(), ScenePath: filepath.Join(t.TempDir(), "none.json")})
	assert.Error(t, err)
}

func TestPaintUndoRedo(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	require.Equal(t, []bool{true}, e.Brush().Catalog().Mask())

	e.Step(click(2, 3), 0.1)
	require.Len(t, crates(e), 1)
	pos := crates(e)[0].WorldPosition()
	assert.InDelta(t, 2, pos.X, 1e-3)
	assert.InDelta(t, 0, pos.Y, 1e-3)
	assert.InDelta(t, 3, pos.Z, 1e-3)

	undo := key(placement.KeyZ)
	undo.Ctrl = true
	e.Step(undo, 0.2)
	assert.Empty(t, crates(e))
	assert.Equal(t, "Undo", e.Status())

	redo := key(placement.KeyY)
	redo.Ctrl = true
	e.Step(redo, 0.3)
	assert.Len(t, crates(e), 1)
}

func TestEraseWithShift(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(click(0, 0), 0)
	require.Len(t, crates(e), 1)

	in := click(0.5, 0)
	in.Shift = true
	e.Step(in, 0)
	assert.Empty(t, crates(e))
	assert.Equal(t, placement.ModeEraseDown, e.Brush().Mode())
}

func TestAltClickSelects(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(click(0, 0), 0)
	require.Len(t, crates(e), 1)

	in := click(0, 0)
	in.Alt = true
	e.Step(in, 0)
	assert.Len(t, crates(e), 1, "alt click does not paint")
	assert.Same(t, crates(e)[0], e.World().ActiveSelection())

	in = click(10, 10)
	in.Alt = true
	e.Step(in, 0)
	assert.Equal(t, "Ground", e.World().ActiveSelection().Name)

	in.Ctrl = true
	e.Step(in, 0)
	assert.Nil(t, e.World().ActiveSelection())
}

func TestProjectCommand(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(click(0, 0), 0)
	g := crates(e)[0]
	g.Transform.Position.Y = 4
	e.World().Select(g)

	e.Step(key(placement.Key(rl.KeyP)), 1)
	assert.InDelta(t, 0, g.WorldPosition().Y, 1e-3)
	assert.Equal(t, "Projected 1 object(s)", e.Status())
}

func TestToggleActive(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(key(placement.Key(rl.KeyTab)), 0)
	assert.False(t, e.Brush().Active())
	e.Step(click(0, 0), 0)
	assert.Empty(t, crates(e))
	assert.Nil(t, e.Brush().Ghost().Object())
}

func TestUnfocusedWindowDropsGhost(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(FrameInput{Pointer: rl.Vector2{X: 2, Y: 2}}, 0)
	require.NotNil(t, e.Brush().Ghost().Object())

	away := click(2, 2)
	away.Unfocused = true
	e.Step(away, 0.1)
	assert.Nil(t, e.Brush().Ghost().Object())
	assert.Empty(t, crates(e), "input is ignored while unfocused")

	e.Step(FrameInput{Pointer: rl.Vector2{X: 2, Y: 2}}, 0.2)
	assert.NotNil(t, e.Brush().Ghost().Object())
}

func TestSaveWritesSceneAndSelection(t *testing.T) {
	e, dir := newEditor(t)
	e.Step(key(placement.Key(rl.KeyOne)), 0)
	e.Step(click(1, 1), 0)

	save := key(placement.Key(rl.KeyS))
	save.Ctrl = true
	e.Step(save, 0)
	assert.Equal(t, "Saved", e.Status())

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, cfg.Brush.Selection)

	again, err := New(Options{
		File:      cfg,
		ScenePath: filepath.Join(dir, "scene.json"),
		Projector: camera.TopDown{Height: 50},
	})
	require.NoError(t, err)
	defer again.Close()
	assert.Len(t, crates(again), 1)
	assert.Equal(t, []bool{true}, again.Brush().Catalog().Mask())
}

func TestSaveWithoutScene(t *testing.T) {
	e, err := New(Options{File: config.DefaultFileContents(), Projector: camera.TopDown{Height: 50}})
	require.NoError(t, err)
	defer e.Close()
	assert.ErrorIs(t, e.Save(), errNoScene)
}

func TestFocusCommand(t *testing.T) {
	e, _ := newEditor(t)
	e.Step(FrameInput{Pointer: rl.Vector2{X: 4, Y: -2}}, 0)
	in := key(placement.Key(rl.KeyF))
	in.Pointer = rl.Vector2{X: 4, Y: -2}
	e.Step(in, 0)
	assert.InDelta(t, 4, e.Camera().Target.X, 1e-3)
	assert.InDelta(t, -2, e.Camera().Target.Z, 1e-3)
}

func TestPaletteLines(t *testing.T) {
	e, _ := newEditor(t)
	lines := PaletteLines(e.Brush().Catalog())
	require.Len(t, lines, 2)
	assert.Equal(t, "[ ] 1 Crate", lines[1])

	e.Apply(CmdToggleSlot, 0)
	assert.Equal(t, "[x] 1 Crate", PaletteLines(e.Brush().Catalog())[1])

	e.Apply(CmdToggleSlot, 5)
	assert.Equal(t, []bool{true}, e.Brush().Catalog().Mask())
}

func TestViewStateRoundTrip(t *testing.T) {
	e, dir := newEditor(t)
	e.World().Select(e.World().Scene.FindByName("Ground"))
	e.Camera().Target = rl.Vector3{X: 1, Y: 2, Z: 3}
	e.Camera().Yaw = 30
	e.Camera().Pitch = -40
	e.Camera().Distance = 12
	e.Apply(CmdToggleHelp, 0)

	path := ViewPath(filepath.Join(dir, "scene.json"))
	assert.Equal(t, filepath.Join(dir, viewFile), path)
	require.NoError(t, e.SaveView(path))

	other, _ := newEditor(t)
	assert.NoError(t, other.RestoreView(filepath.Join(t.TempDir(), "missing.json")))
	require.NoError(t, other.RestoreView(path))
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, other.Camera().Target)
	assert.Equal(t, float32(30), other.Camera().Yaw)
	assert.Equal(t, float32(-40), other.Camera().Pitch)
	assert.Equal(t, float32(12), other.Camera().Distance)
	assert.False(t, other.showHelp)
	assert.Equal(t, "Ground", other.World().ActiveSelection().Name)
}

func TestRestoreViewRejectsGarbage(t *testing.T) {
	e, dir := newEditor(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	assert.ErrorContains(t, e.RestoreView(path), "parse view")
}
