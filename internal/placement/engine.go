package placement

import (
	"log/slog"

	"propbrush/internal/config"
	"propbrush/internal/engine"
	"propbrush/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options wires an Engine to its collaborators. Rand, Logger, KeyMap and
// Notifier are optional.
type Options struct {
	Config    *config.Configuration
	Settings  *config.Settings
	Host      Host
	Queries   Queries
	Templates Templates
	History   History
	Projector RayProjector
	Notifier  DirNotifier
	Rand      Rand
	Logger    *slog.Logger
	KeyMap    *KeyMap
}

// BatchResult counts what one paint batch did.
type BatchResult struct {
	Created  int
	Rejected int
	Skipped  int
}

// Engine reacts to pointer and input events by placing, erasing and
// rotating template instances.
type Engine struct {
	cfg       *config.Configuration
	settings  *config.Settings
	host      Host
	queries   Queries
	templates Templates
	history   History
	keys      KeyMap
	rng       Rand
	log       *slog.Logger

	sampler  *SurfaceSampler
	catalog  *PaletteCatalog
	selector *SpawnSelector
	composer *TransformComposer
	ghost    *PreviewGhost

	mode      Mode
	active    bool
	focused   bool
	onSurface bool // whether the latest pointer query hit
	lastActed Sample
	paletteID engine.Subscription
}

func New(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}
	settings := opts.Settings
	if settings == nil {
		s := config.DefaultSettings()
		settings = &s
	}

	e := &Engine{
		cfg:       opts.Config,
		settings:  settings,
		host:      opts.Host,
		queries:   opts.Queries,
		templates: opts.Templates,
		history:   opts.History,
		keys:      keys,
		rng:       rng,
		log:       logger,
		active:    true,
		focused:   true,
	}
	e.sampler = NewSurfaceSampler(opts.Projector, opts.Queries)
	e.catalog = NewCatalog(opts.Templates, opts.Host.BrowsingLocation, opts.Notifier, logger)
	e.catalog.Restore(opts.Config.Selection)
	e.selector = NewSpawnSelector(rng)
	e.composer = NewTransformComposer(opts.Config, opts.Host, rng)
	e.ghost = NewPreviewGhost(opts.Templates, e.catalog, e.composer)
	e.paletteID = e.catalog.OnChanged(e.onEligibleChanged)

	if e.catalog.Resync(e.cfg.PalettePath) {
		e.catalog.RefreshIfChanged()
	}
	return e
}

// Close drops the preview and releases the palette subscriptions.
func (e *Engine) Close() {
	e.ghost.Destroy()
	e.catalog.RemoveOnChanged(e.paletteID)
	e.catalog.Close()
}

func (e *Engine) Mode() Mode                   { return e.mode }
func (e *Engine) Active() bool                 { return e.active }
func (e *Engine) Sampler() *SurfaceSampler     { return e.sampler }
func (e *Engine) Catalog() *PaletteCatalog     { return e.catalog }
func (e *Engine) Selector() *SpawnSelector     { return e.selector }
func (e *Engine) Composer() *TransformComposer { return e.composer }
func (e *Engine) Ghost() *PreviewGhost         { return e.ghost }

// LastActed is the primary sample of the most recent paint batch.
func (e *Engine) LastActed() Sample { return e.lastActed }

// SetActive turns the tool on or off. Turning it off tears the preview down.
func (e *Engine) SetActive(active bool) {
	e.active = active
	e.refreshPreview()
}

// SetFocused tells the tool whether its window has input focus. The
// preview only exists while focused.
func (e *Engine) SetFocused(focused bool) {
	if e.focused == focused {
		return
	}
	e.focused = focused
	e.refreshPreview()
}

// HandlePointer samples the surface under pointer and moves the preview.
// After a miss the returned sample is the last hit, which still anchors the
// preview and focus, but paint and erase wait until the pointer is back over
// a surface.
func (e *Engine) HandlePointer(pointer rl.Vector2) Sample {
	if !e.active {
		return e.sampler.Last()
	}
	_, e.onSurface = e.sampler.Sample(pointer, e.cfg.SurfaceMask)
	if e.onSurface {
		e.refreshPreview()
	}
	return e.sampler.Last()
}

// HandleInput classifies ev and acts on the resulting mode at the current
// surface hit. Without one, paint and erase do nothing.
func (e *Engine) HandleInput(ev InputEvent) Mode {
	if !e.active {
		return ModeIdle
	}
	prev := e.mode
	e.mode = e.keys.Classify(ev)
	var sample Sample
	if e.onSurface {
		sample = e.sampler.Last()
	}

	switch e.mode {
	case ModeEraseDown:
		e.Erase(sample)
	case ModePaintDown:
		e.Paint(sample)
	case ModePaintDrag:
		if sample.Valid && (!e.lastActed.Valid || distance(sample.Point, e.lastActed.Point) >= e.cfg.Spread) {
			e.Paint(sample)
		}
	case ModeRotateLeft:
		e.Rotate(-1)
	case ModeRotateRight:
		e.Rotate(1)
	}

	if prev.IsErase() != e.mode.IsErase() {
		e.refreshPreview()
	}
	return e.mode
}

// Tick resyncs the palette and drops the preview while the tool is hidden.
func (e *Engine) Tick() {
	e.composer.Refresh()
	if e.catalog.Resync(e.cfg.PalettePath) {
		e.catalog.RefreshIfChanged()
	}
	if !e.showPreview() {
		e.ghost.Destroy()
	}
}

// SetSelected changes one palette selection entry.
func (e *Engine) SetSelected(i int, state bool) bool {
	return e.catalog.SetSelected(i, state)
}

func (e *Engine) onEligibleChanged() {
	e.selector.Reselect(e.catalog.Eligible())
	e.cfg.Selection = e.catalog.Mask()
	e.refreshPreview()
}

func (e *Engine) showPreview() bool {
	return e.active && e.focused && e.settings.ShowProjection && e.cfg.SpawnCount == 1 && !e.mode.IsErase()
}

func (e *Engine) refreshPreview() {
	if !e.showPreview() {
		e.ghost.Destroy()
		return
	}
	e.ghost.Refresh(e.selector.Current(), e.sampler.Last())
}

// Paint runs one placement batch around primary.
func (e *Engine) Paint(primary Sample) BatchResult {
	var res BatchResult
	if !primary.Valid {
		return res
	}

	if e.cfg.SpawnCount <= 1 {
		e.tryPlace(primary, &res)
	} else {
		current := primary
		for range e.cfg.SpawnCount {
			next, ok := e.scatter(current)
			if !ok {
				res.Skipped++
				continue
			}
			current = next
			e.tryPlace(current, &res)
		}
	}

	e.lastActed = primary
	if res.Created > 0 {
		e.composer.RerollScale()
		e.refreshPreview()
	}
	e.log.Debug("paint batch", "created", res.Created, "rejected", res.Rejected, "skipped", res.Skipped)
	return res
}

// scatter offsets current by a random point of the brush disc laid on the
// current surface plane and drops it back onto the surface.
func (e *Engine) scatter(current Sample) (Sample, bool) {
	disc := RandomInDisc(e.rng, e.cfg.BrushRadius)
	offset := engine.ProjectOnPlane(rl.Vector3{X: disc.X, Z: disc.Y}, current.Normal)
	point := rl.Vector3Add(current.Point, offset)
	origin := rl.Vector3Add(point, rl.Vector3Scale(current.Normal, Margin))
	return castSample(e.queries, origin, rl.Vector3Negate(current.Normal), e.cfg.SurfaceMask)
}

func (e *Engine) tryPlace(s Sample, res *BatchResult) {
	if e.cfg.AvoidOverlap && e.hasCollision(s.Point, s.Normal) {
		res.Rejected++
		return
	}
	if e.place(s) != nil {
		res.Created++
	}
}

// hasCollision looks down onto point for an existing instance.
func (e *Engine) hasCollision(point, up rl.Vector3) bool {
	origin := rl.Vector3Add(point, rl.Vector3Scale(up, Margin))
	hit, ok := e.queries.Raycast(origin, rl.Vector3Negate(up), engine.EverythingMask, physics.Infinity)
	if !ok || hit.GameObject == nil {
		return false
	}
	return e.isInstance(hit.GameObject)
}

func (e *Engine) isInstance(g *engine.GameObject) bool {
	if !e.cfg.InstanceMask.IsEmpty() && e.cfg.InstanceMask.Contains(g.Layer) {
		return true
	}
	if e.cfg.InstanceTag == "" {
		return false
	}
	for o := g; o != nil; o = o.Parent {
		if o.HasTag(e.cfg.InstanceTag) {
			return true
		}
	}
	return false
}

func (e *Engine) place(s Sample) *engine.GameObject {
	tmpl := e.catalog.Template(e.selector.Current())
	if tmpl == nil {
		return nil
	}
	g := e.templates.Instantiate(tmpl)
	if g == nil {
		return nil
	}
	e.composer.Compose(g, s, tmpl.BaseScale())
	e.host.Spawn(g)
	e.history.RecordCreate(g)

	e.selector.Reselect(e.catalog.Eligible())
	e.composer.RerollRotation()
	e.refreshPreview()
	return g
}

// Erase destroys instances within the brush radius of s and returns how
// many were removed.
func (e *Engine) Erase(s Sample) int {
	if !s.Valid {
		return 0
	}
	var candidates []*engine.GameObject
	switch {
	case !e.cfg.InstanceMask.IsEmpty():
		candidates = e.queries.OverlapSphere(s.Point, e.cfg.BrushRadius, e.cfg.InstanceMask)
	case e.cfg.InstanceTag != "":
		for _, g := range e.host.FindByTag(e.cfg.InstanceTag) {
			if distance(s.Point, g.WorldPosition()) <= e.cfg.BrushRadius {
				candidates = append(candidates, g)
			}
		}
	}

	removed := 0
	for _, g := range candidates {
		if g.Scene == nil {
			continue
		}
		if g.IsPartOfPrefab() && !g.IsOutermostPrefabRoot() {
			e.log.Warn("erase skipped a template part", "object", g.Name, "root", g.Root().Name)
			continue
		}
		e.history.RecordDestroy(g)
		e.host.Destroy(g)
		removed++
	}
	return removed
}

// Rotate nudges the configured yaw by one step in direction dir.
func (e *Engine) Rotate(dir float32) {
	step := min(e.cfg.RotationStep, e.settings.RotationMaxSpeed)
	delta := e.cfg.RotationDelta
	delta.Y += dir * step
	if e.settings.NormalizeRotationDelta {
		delta = rl.Vector3{X: math32.Mod(delta.X, 360), Y: math32.Mod(delta.Y, 360), Z: math32.Mod(delta.Z, 360)}
	}
	e.cfg.RotationDelta = delta
	e.composer.RerollRotation()
	e.refreshPreview()
}

// ProjectSelected drops every selected object onto the surface below it and
// returns how many moved.
func (e *Engine) ProjectSelected() int {
	moved := 0
	for _, g := range e.host.SelectedObjects() {
		if g == nil {
			continue
		}
		hit, ok := e.castBelow(g)
		if !ok {
			continue
		}
		before := g.Transform
		rot := g.WorldRotation()
		if e.cfg.AlignProjected {
			forward := rl.Vector3RotateByQuaternion(engine.WorldForward, rot)
			rot = engine.LookRotation(forward, hit.Normal)
		}
		g.SetWorldTransform(hit.Point, rot, g.WorldScale())
		e.history.RecordTransform(g, before)
		moved++
	}
	return moved
}

// castBelow raycasts down from above g with g's own colliders switched off.
func (e *Engine) castBelow(g *engine.GameObject) (Sample, bool) {
	var restore []engine.Toggler
	for _, c := range engine.GetComponentsInChildren[engine.Toggler](g) {
		if c.IsEnabled() {
			c.SetEnabled(false)
			restore = append(restore, c)
		}
	}
	defer func() {
		for _, c := range restore {
			c.SetEnabled(true)
		}
	}()

	origin := rl.Vector3Add(g.WorldPosition(), rl.Vector3Scale(engine.WorldUp, Margin))
	return castSample(e.queries, origin, rl.Vector3Negate(engine.WorldUp), e.cfg.SurfaceMask)
}
