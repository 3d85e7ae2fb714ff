// Package editor runs the interactive brush in a raylib window.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"propbrush/internal/assets"
	"propbrush/internal/camera"
	"propbrush/internal/config"
	"propbrush/internal/history"
	"propbrush/internal/placement"
	"propbrush/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const statusDuration = 2.5 // seconds

// Options configure an Editor. Projector defaults to the editor camera.
type Options struct {
	File       config.File
	ConfigPath string
	ScenePath  string
	Seed       uint64
	Projector  placement.RayProjector
	Logger     *slog.Logger
}

type Editor struct {
	file       config.File
	configPath string
	scenePath  string

	world     *world.World
	history   *history.Log
	library   *assets.Library
	watcher   *assets.DirWatcher
	brush     *placement.Engine
	camera    *camera.OrbitCamera
	projector placement.RayProjector
	renderer  *world.Renderer

	lastPointer rl.Vector2
	showHelp    bool

	// Status line
	status     string
	statusTime float64
	now        float64

	log *slog.Logger
}

// New loads the scene and wires the brush. It needs no window.
func New(opts Options) (*Editor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := assets.NewDirWatcher(logger)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		file:       opts.File,
		configPath: opts.ConfigPath,
		scenePath:  opts.ScenePath,
		world:      world.New(logger),
		library:    assets.NewLibrary(logger),
		watcher:    watcher,
		camera:     camera.New(rl.Vector3{}),
		renderer:   world.NewRenderer(),
		showHelp:   true,
		log:        logger,
	}
	e.history = history.NewLog(e.world)

	if e.scenePath != "" {
		if err := e.world.LoadScene(e.scenePath); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	e.projector = opts.Projector
	if e.projector == nil {
		e.projector = e.camera
	}
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	e.brush = placement.New(placement.Options{
		Config:    &e.file.Brush,
		Settings:  &e.file.Settings,
		Host:      e.world,
		Queries:   e.world,
		Templates: e.library,
		History:   e.history,
		Projector: e.projector,
		Notifier:  watcher,
		Rand:      placement.NewRand(seed),
		Logger:    logger,
	})
	return e, nil
}

func (e *Editor) World() *world.World         { return e.world }
func (e *Editor) History() *history.Log       { return e.history }
func (e *Editor) Brush() *placement.Engine    { return e.brush }
func (e *Editor) Camera() *camera.OrbitCamera { return e.camera }
func (e *Editor) File() config.File           { return e.file }
func (e *Editor) Status() string              { return e.status }

func (e *Editor) Close() error {
	e.brush.Close()
	return e.watcher.Close()
}

// Run opens the window and blocks until it is closed.
func (e *Editor) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "propbrush")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)

	if e.scenePath != "" {
		if err := e.RestoreView(ViewPath(e.scenePath)); err != nil {
			e.log.Warn("view state not restored", "err", err)
		}
	}

	for !rl.WindowShouldClose() {
		e.Update()
		e.Draw()
	}

	if e.scenePath != "" {
		if err := e.SaveView(ViewPath(e.scenePath)); err != nil {
			e.log.Warn("view state not saved", "err", err)
		}
	}
}

// Update advances one frame from raylib's input state.
func (e *Editor) Update() {
	e.camera.Update(rl.GetFrameTime())
	e.Step(ReadFrame(), rl.GetTime())
}

// Step advances one frame from in. now is the clock in seconds.
func (e *Editor) Step(in FrameInput, now float64) {
	e.now = now
	e.watcher.Poll()
	e.brush.SetFocused(!in.Unfocused)
	e.brush.Tick()
	if in.Unfocused {
		return
	}

	moved := in.Pointer != e.lastPointer
	e.lastPointer = in.Pointer
	e.brush.HandlePointer(in.Pointer)

	for _, ev := range Events(in, moved) {
		if cmd, slot := Shortcut(ev); cmd != CmdNone {
			e.Apply(cmd, slot)
			continue
		}
		if ev.Kind == placement.EventPress && ev.Button == placement.ButtonPrimary && ev.Modifiers.Has(placement.ModAlt) {
			e.pick(in.Pointer, ev.Modifiers.Has(placement.ModControl))
			continue
		}
		e.brush.HandleInput(ev)
	}
}

func (e *Editor) pick(pointer rl.Vector2, toggle bool) {
	g := e.world.Pick(e.projector.ScreenToWorldRay(pointer))
	switch {
	case toggle && g != nil:
		e.world.ToggleSelected(g)
	case !toggle:
		e.world.Select(g)
	}
}

// Apply runs an editor command.
func (e *Editor) Apply(cmd Command, slot int) {
	switch cmd {
	case CmdUndo:
		if e.history.Undo() {
			e.setStatus("Undo")
		}
	case CmdRedo:
		if e.history.Redo() {
			e.setStatus("Redo")
		}
	case CmdSave:
		if err := e.Save(); err != nil {
			e.log.Error("save failed", "err", err)
			e.setStatus("Save failed: " + err.Error())
			return
		}
		e.setStatus("Saved")
	case CmdProject:
		n := e.brush.ProjectSelected()
		e.setStatus(fmt.Sprintf("Projected %d object(s)", n))
	case CmdFocus:
		if g := e.world.ActiveSelection(); g != nil {
			e.camera.Focus(g.WorldPosition())
		} else if s := e.brush.Sampler().Last(); s.Valid {
			e.camera.Focus(s.Point)
		}
	case CmdToggleActive:
		e.brush.SetActive(!e.brush.Active())
	case CmdToggleHelp:
		e.showHelp = !e.showHelp
	case CmdToggleSlot:
		mask := e.brush.Catalog().Mask()
		if slot < len(mask) {
			e.brush.SetSelected(slot, !mask[slot])
		}
	}
}

var errNoScene = errors.New("no scene file")

// Save writes the scene and the configuration, including the palette
// selection.
func (e *Editor) Save() error {
	if e.scenePath == "" {
		return errNoScene
	}
	if err := e.world.SaveScene(e.scenePath); err != nil {
		return err
	}
	if e.configPath != "" {
		if err := config.Save(e.configPath, e.file); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) setStatus(msg string) {
	e.status = msg
	e.statusTime = e.now
}
