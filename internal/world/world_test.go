package world

import (
	"os"
	"path/filepath"
	"testing"

	"propbrush/internal/assets"
	"propbrush/internal/components"
	"propbrush/internal/engine"
	"propbrush/internal/history"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCrate(name string, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.Tags = []string{"Prop"}
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	g.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Brown, rl.Vector3{X: 1, Y: 1, Z: 1}))
	return g
}

func TestSpawnAndDestroy(t *testing.T) {
	w := New(nil)
	parent := newCrate("parent", rl.Vector3{})
	child := newCrate("child", rl.Vector3{X: 1})
	parent.AddChild(child)

	w.Spawn(parent)
	assert.True(t, w.Scene.Contains(child))
	assert.True(t, w.Physics.Contains(child))
	assert.Len(t, w.FindByTag("Prop"), 2)

	w.Destroy(child)
	assert.Empty(t, parent.Children)
	assert.False(t, w.Scene.Contains(child))
	assert.False(t, w.Physics.Contains(child))
	assert.Equal(t, 1, w.Physics.Count())
}

func TestUndoRestoresDestroyedChild(t *testing.T) {
	w := New(nil)
	log := history.NewLog(w)
	parent := newCrate("parent", rl.Vector3{})
	child := newCrate("child", rl.Vector3{X: 1})
	parent.AddChild(child)
	w.Spawn(parent)

	log.RecordDestroy(child)
	w.Destroy(child)
	require.True(t, log.Undo())

	assert.Same(t, parent, child.Parent)
	assert.True(t, w.Scene.Contains(child))
	assert.True(t, w.Physics.Contains(child))

	require.True(t, log.Redo())
	assert.False(t, w.Scene.Contains(child))
}

func TestRaycastAndOverlapDelegate(t *testing.T) {
	w := New(nil)
	crate := newCrate("crate", rl.Vector3{X: 3})
	crate.Layer = 4
	w.Spawn(crate)

	hit, ok := w.Raycast(rl.Vector3{X: 3, Y: 10}, rl.Vector3{Y: -1}, engine.MaskOf(4), 100)
	require.True(t, ok)
	assert.Same(t, crate, hit.GameObject)

	_, ok = w.Raycast(rl.Vector3{X: 3, Y: 10}, rl.Vector3{Y: -1}, engine.MaskOf(1), 100)
	assert.False(t, ok)

	assert.Equal(t, []*engine.GameObject{crate}, w.OverlapSphere(rl.Vector3{X: 2}, 1, engine.EverythingMask))
}

func TestPickReturnsTemplateRoot(t *testing.T) {
	w := New(nil)
	root := engine.NewGameObject("house")
	root.Prefab = &engine.PrefabLink{Source: "house.prefab", Root: true}
	door := newCrate("door", rl.Vector3{})
	door.Prefab = &engine.PrefabLink{Source: "house.prefab"}
	root.AddChild(door)
	w.Spawn(root)

	got := w.Pick(rl.Ray{Position: rl.Vector3{Y: 10}, Direction: rl.Vector3{Y: -1}})
	assert.Same(t, root, got)
	assert.Nil(t, w.Pick(rl.Ray{Position: rl.Vector3{X: 50, Y: 10}, Direction: rl.Vector3{Y: -1}}))
}

func TestSelection(t *testing.T) {
	w := New(nil)
	a := newCrate("a", rl.Vector3{})
	b := newCrate("b", rl.Vector3{X: 5})
	w.Spawn(a)
	w.Spawn(b)

	w.Select(a)
	assert.Same(t, a, w.ActiveSelection())
	assert.Equal(t, []*engine.GameObject{a}, w.SelectedObjects())

	w.ToggleSelected(b)
	assert.Same(t, b, w.ActiveSelection())
	assert.Equal(t, []*engine.GameObject{a, b}, w.SelectedObjects())

	w.ToggleSelected(b)
	assert.Same(t, a, w.ActiveSelection())

	w.Destroy(a)
	assert.Nil(t, w.ActiveSelection())
	assert.Empty(t, w.SelectedObjects())

	w.Select(nil)
	assert.Nil(t, w.ActiveSelection())
}

func TestBrowsingLocation(t *testing.T) {
	w := New(nil)
	assert.Empty(t, w.BrowsingLocation())
	w.SetBrowsingLocation("assets/palette")
	assert.Equal(t, "assets/palette", w.BrowsingLocation())
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	w := New(nil)
	w.Scene.Name = "Yard"
	crate := newCrate("crate", rl.Vector3{X: 1, Y: 2, Z: 3})
	crate.Prefab = &engine.PrefabLink{Source: "crate.prefab", Root: true}
	crate.AddChild(newCrate("lid", rl.Vector3{Y: 1}))
	w.Spawn(crate)

	hidden := newCrate("preview", rl.Vector3{})
	hidden.HideFlags = engine.HideAndDontSave
	w.Spawn(hidden)

	require.NoError(t, w.SaveScene(path))

	loaded := New(nil)
	require.NoError(t, loaded.LoadScene(path))
	assert.Equal(t, "Yard", loaded.Scene.Name)
	roots := loaded.Scene.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "crate", roots[0].Name)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, roots[0].Transform.Position)
	assert.True(t, roots[0].IsOutermostPrefabRoot())
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "lid", roots[0].Children[0].Name)
	assert.True(t, loaded.Physics.Contains(roots[0].Children[0]))
}

func TestLoadSceneErrors(t *testing.T) {
	w := New(nil)
	assert.Error(t, w.LoadScene(filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	assert.Error(t, w.LoadScene(bad))
}

func TestClear(t *testing.T) {
	w := New(nil)
	a := newCrate("a", rl.Vector3{})
	w.Spawn(a)
	w.Select(a)

	w.Clear()
	assert.Empty(t, w.Scene.GameObjects)
	assert.Zero(t, w.Physics.Count())
	assert.Nil(t, w.ActiveSelection())
}

func TestLoadSampleScene(t *testing.T) {
	w := New(nil)
	require.NoError(t, w.LoadScene("../../assets/scenes/yard.json"))
	assert.NotEmpty(t, w.Scene.Roots())

	lib := assets.NewLibrary(nil)
	templates, err := lib.ListTemplates("../../assets/palette", assets.TemplatePattern)
	require.NoError(t, err)
	assert.NotEmpty(t, templates)
	for _, tmpl := range templates {
		assert.NotNil(t, tmpl)
	}
}

func TestFrustum(t *testing.T) {
	camera := rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(camera, 16.0/9.0)

	assert.True(t, f.ContainsPoint(rl.Vector3{}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 20}), "behind the camera")
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 100}), "far to the side")
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 100}, 100))
}

func TestRendererCulling(t *testing.T) {
	r := NewRenderer()
	r.Begin(rl.Camera3D{
		Position:   rl.Vector3{Y: 10, Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}, 1)

	assert.True(t, r.Visible(newCrate("near", rl.Vector3{})))
	assert.False(t, r.Visible(newCrate("far", rl.Vector3{X: 500})))
}

func TestBoundingRadius(t *testing.T) {
	g := newCrate("crate", rl.Vector3{})
	g.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	assert.InDelta(t, 1.7320508, BoundingRadius(g), 1e-5)
	assert.Zero(t, BoundingRadius(engine.NewGameObject("empty")))
}
