package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"propbrush/internal/components"
	"propbrush/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rockJSON = `{
  "name": "Rock",
  "tags": ["scatter"],
  "layer": 2,
  "scale": [2, 2, 2],
  "components": [
    {"type": "MeshRenderer", "mesh": "sphere", "color": "Gray", "size": [0.5, 0.5, 0.5]},
    {"type": "SphereCollider", "radius": 0.5}
  ],
  "children": [
    {"name": "Moss", "position": [0, 0.5, 0], "components": [{"type": "BoxCollider", "size": [0.2, 0.1, 0.2]}]}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestListTemplatesOrderAndPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_rock.prefab", rockJSON)
	writeFile(t, dir, "a_bush.prefab", `{"name": "Bush"}`)
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.prefab"), 0755))

	lib := NewLibrary(nil)
	got, err := lib.ListTemplates(dir, TemplatePattern)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bush", got[0].Name())
	assert.Equal(t, "Rock", got[1].Name())
}

func TestListTemplatesKeepsIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rock.prefab", rockJSON)
	lib := NewLibrary(nil)

	first, err := lib.ListTemplates(dir, TemplatePattern)
	require.NoError(t, err)
	second, err := lib.ListTemplates(dir, TemplatePattern)
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])
}

func TestLoadReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rock.prefab", rockJSON)
	lib := NewLibrary(nil)

	before, err := lib.Load(path)
	require.NoError(t, err)

	writeFile(t, dir, "rock.prefab", `{"name": "Boulder"}`)
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	after, err := lib.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, "Boulder", after.Name())
}

func TestListTemplatesBrokenFileYieldsNil(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.prefab", "{not json")
	writeFile(t, dir, "b.prefab", rockJSON)

	got, err := NewLibrary(nil).ListTemplates(dir, TemplatePattern)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0])
	assert.NotNil(t, got[1])
}

func TestListTemplatesMissingDir(t *testing.T) {
	_, err := NewLibrary(nil).ListTemplates(filepath.Join(t.TempDir(), "missing"), TemplatePattern)
	assert.Error(t, err)
}

func TestInstantiate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rock.prefab", rockJSON)
	lib := NewLibrary(nil)
	tmpl, err := lib.Load(path)
	require.NoError(t, err)

	inst := lib.Instantiate(tmpl)
	require.NotNil(t, inst)
	assert.Equal(t, "Rock", inst.Name)
	assert.Equal(t, 2, inst.Layer)
	assert.True(t, inst.IsOutermostPrefabRoot())
	assert.Equal(t, tmpl.BaseScale(), inst.Transform.Scale)
	require.Len(t, inst.Children, 1)
	assert.True(t, inst.Children[0].IsPartOfPrefab())
	assert.False(t, inst.Children[0].IsOutermostPrefabRoot())
	assert.NotNil(t, engine.GetComponent[*components.SphereCollider](inst))
	assert.NotNil(t, engine.GetComponent[*components.MeshRenderer](inst))

	// Instances never share slices with the cached template
	inst.Tags[0] = "changed"
	assert.Equal(t, "scatter", tmpl.Root.Tags[0])

	other := lib.Instantiate(tmpl)
	assert.NotEqual(t, inst.UID, other.UID)
	assert.Nil(t, lib.Instantiate(nil))
}

func TestDescribeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rock.prefab", rockJSON)
	lib := NewLibrary(nil)
	tmpl, err := lib.Load(path)
	require.NoError(t, err)

	inst := lib.Instantiate(tmpl)
	d := Describe(inst)
	assert.Equal(t, path, d.Prefab)
	assert.True(t, d.PrefabRoot)
	assert.Len(t, d.Components, 2)
	require.Len(t, d.Children, 1)
	assert.Equal(t, "Moss", d.Children[0].Name)
}

func TestDirWatcherNotify(t *testing.T) {
	w, err := NewDirWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	var got []string
	id := w.Subscribe(func(dir string) { got = append(got, dir) })
	w.Notify("palette/trees/")
	w.Unsubscribe(id)
	w.Notify("palette/trees")

	assert.Equal(t, []string{filepath.Clean("palette/trees")}, got)
}

func TestDirWatcherPollReportsParentDir(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDirWatcher(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Watch(dir))

	var got []string
	w.Subscribe(func(d string) { got = append(got, d) })

	writeFile(t, dir, "rock.prefab", rockJSON)

	require.Eventually(t, func() bool {
		w.Poll()
		return len(got) > 0
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, filepath.Clean(dir), got[0])
}
