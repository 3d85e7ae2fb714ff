package placement

import (
	"errors"
	"slices"

	"propbrush/internal/assets"
	"propbrush/internal/components"
	"propbrush/internal/config"
	"propbrush/internal/engine"
	"propbrush/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	groundLayer   = 0
	instanceLayer = 8
	paletteDir    = "palette"
	browseDir     = "browse"
)

// topDown maps pointer (x, y) to a ray falling straight onto world (x, z).
type topDown struct{}

func (topDown) ScreenToWorldRay(p rl.Vector2) rl.Ray {
	return rl.Ray{Position: rl.Vector3{X: p.X, Y: 100, Z: p.Y}, Direction: rl.Vector3{Y: -1}}
}

type fakeHost struct {
	scene     *engine.Scene
	phys      *physics.World
	selection *engine.GameObject
	selected  []*engine.GameObject
	browse    string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		scene:  engine.NewScene("test"),
		phys:   physics.NewWorld(),
		browse: browseDir,
	}
}

func (h *fakeHost) Spawn(g *engine.GameObject) {
	h.scene.AddGameObject(g)
	h.phys.AddObject(g)
}

func (h *fakeHost) Destroy(g *engine.GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	h.scene.RemoveGameObject(g)
	h.phys.RemoveObject(g)
}

func (h *fakeHost) FindByTag(tag string) []*engine.GameObject { return h.scene.FindByTag(tag) }
func (h *fakeHost) ActiveSelection() *engine.GameObject       { return h.selection }
func (h *fakeHost) SelectedObjects() []*engine.GameObject     { return h.selected }
func (h *fakeHost) BrowsingLocation() string                  { return h.browse }

// addGround spawns a wide slab whose top face is at y = 0.
func (h *fakeHost) addGround() *engine.GameObject {
	g := engine.NewGameObject("Ground")
	g.Transform.Position = rl.Vector3{Y: -0.5}
	g.Layer = groundLayer
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 1, Z: 200}))
	h.Spawn(g)
	return g
}

// instances returns every spawned template root.
func (h *fakeHost) instances() []*engine.GameObject {
	var out []*engine.GameObject
	for _, g := range h.scene.GameObjects {
		if g.IsOutermostPrefabRoot() {
			out = append(out, g)
		}
	}
	return out
}

type fakeTemplates struct {
	lib          *assets.Library
	dirs         map[string][]*assets.Template
	err          error
	listCalls    int
	instantiated int
}

func newFakeTemplates() *fakeTemplates {
	return &fakeTemplates{lib: assets.NewLibrary(nil), dirs: make(map[string][]*assets.Template)}
}

func (f *fakeTemplates) ListTemplates(dir, pattern string) ([]*assets.Template, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	list, ok := f.dirs[dir]
	if !ok {
		return nil, errors.New("no such dir")
	}
	return slices.Clone(list), nil
}

func (f *fakeTemplates) Instantiate(t *assets.Template) *engine.GameObject {
	f.instantiated++
	return f.lib.Instantiate(t)
}

func (f *fakeTemplates) DirExists(path string) bool {
	_, ok := f.dirs[path]
	return ok
}

type fakeHistory struct {
	created   []*engine.GameObject
	destroyed []*engine.GameObject
	moved     []*engine.GameObject
}

func (h *fakeHistory) RecordCreate(g *engine.GameObject)  { h.created = append(h.created, g) }
func (h *fakeHistory) RecordDestroy(g *engine.GameObject) { h.destroyed = append(h.destroyed, g) }
func (h *fakeHistory) RecordTransform(g *engine.GameObject, before engine.Transform) {
	h.moved = append(h.moved, g)
}

type fakeNotifier struct {
	events  engine.EventWithArg[string]
	watched []string
}

func (n *fakeNotifier) Subscribe(fn func(string)) engine.Subscription {
	return n.events.AddListener(fn)
}
func (n *fakeNotifier) Unsubscribe(id engine.Subscription) { n.events.RemoveListener(id) }
func (n *fakeNotifier) Notify(dir string)                  { n.events.Invoke(dir) }
func (n *fakeNotifier) Watch(dir string) error {
	n.watched = append(n.watched, dir)
	return nil
}
func (n *fakeNotifier) Unwatch(dir string) {
	n.watched = slices.DeleteFunc(n.watched, func(d string) bool { return d == dir })
}

// newTemplate is a 2x1x2 crate standing on its origin.
func newTemplate(name string) *assets.Template {
	return &assets.Template{
		Path: name + ".prefab",
		Root: assets.ObjectDef{
			Name:  name,
			Layer: instanceLayer,
			Tags:  []string{"Prop"},
			Scale: [3]float32{1, 1, 1},
			Components: []assets.ComponentDef{
				{Type: "BoxCollider", Size: [3]float32{2, 1, 2}, Offset: [3]float32{0, 0.5, 0}},
			},
		},
	}
}

// stuckRand always returns the same values.
type stuckRand struct {
	n int
	f float32
}

func (r stuckRand) IntN(int) int     { return r.n }
func (r stuckRand) Float32() float32 { return r.f }

// countingRand wraps a source and counts Float32 draws.
type countingRand struct {
	Rand
	floats int
}

func (r *countingRand) Float32() float32 {
	r.floats++
	return r.Rand.Float32()
}

type fixture struct {
	cfg       *config.Configuration
	settings  *config.Settings
	host      *fakeHost
	templates *fakeTemplates
	history   *fakeHistory
	notifier  *fakeNotifier
	engine    *Engine
}

func testConfig() *config.Configuration {
	cfg := config.Default()
	cfg.SurfaceMask = engine.MaskOf(groundLayer)
	cfg.InstanceMask = engine.MaskOf(instanceLayer)
	cfg.PalettePath = paletteDir
	return &cfg
}

// newFixture builds an engine over a ground slab and a palette holding
// one crate template per name.
func newFixture(cfg *config.Configuration, names ...string) *fixture {
	settings := config.DefaultSettings()
	f := &fixture{
		cfg:       cfg,
		settings:  &settings,
		host:      newFakeHost(),
		templates: newFakeTemplates(),
		history:   &fakeHistory{},
		notifier:  &fakeNotifier{},
	}
	f.host.addGround()
	f.templates.dirs[browseDir] = nil
	var palette []*assets.Template
	for _, n := range names {
		palette = append(palette, newTemplate(n))
	}
	f.templates.dirs[paletteDir] = palette

	f.engine = New(Options{
		Config:    cfg,
		Settings:  f.settings,
		Host:      f.host,
		Queries:   f.host.phys,
		Templates: f.templates,
		History:   f.history,
		Projector: topDown{},
		Notifier:  f.notifier,
		Rand:      NewRand(42),
	})
	return f
}

func (f *fixture) selectAll() {
	for i := range f.engine.Catalog().Len() {
		f.engine.SetSelected(i, true)
	}
}

func (f *fixture) pointAt(x, z float32) Sample {
	return f.engine.HandlePointer(rl.Vector2{X: x, Y: z})
}

func vecNear(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < 1e-3
}
