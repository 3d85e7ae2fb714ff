package editor

import (
	"fmt"

	"propbrush/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var helpLines = []string{
	"LMB paint, Shift+LMB erase, Ctrl+C / Ctrl+X rotate",
	"Alt+LMB select, Alt+Ctrl+LMB add to selection, P project selected",
	"RMB orbit, MMB pan, wheel zoom, WASD move, F focus",
	"1-9 toggle palette entry, Tab toggle brush, Ctrl+Z / Ctrl+Y undo/redo, Ctrl+S save",
	"F1 toggle this help",
}

func (e *Editor) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	cam := e.camera.Camera3D()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))

	rl.BeginMode3D(cam)
	e.renderer.Begin(cam, aspect)
	rl.DrawGrid(40, 1)
	e.renderer.DrawObjects(e.world.Scene.GameObjects)
	e.renderer.DrawGhost(e.brush.Ghost().Object())
	e.renderer.DrawSelection(e.world.SelectedObjects())
	if e.brush.Active() {
		DrawPointer(e.brush.Sampler().Last(), e.brush.Mode(), &e.file.Brush, &e.file.Settings)
	}
	rl.EndMode3D()

	e.DrawUI()
	rl.EndDrawing()
}

func (e *Editor) DrawUI() {
	y := int32(10)
	if e.showHelp {
		for _, line := range helpLines {
			rl.DrawText(line, 10, y, 18, rl.DarkGray)
			y += 22
		}
	}
	rl.DrawFPS(10, y+4)

	screenW := int32(rl.GetScreenWidth())
	py := int32(10)
	for _, line := range PaletteLines(e.brush.Catalog()) {
		rl.DrawText(line, screenW-260, py, 18, rl.DarkGray)
		py += 22
	}

	mode := e.brush.Mode()
	if !e.brush.Active() {
		rl.DrawText("brush off", 10, int32(rl.GetScreenHeight())-30, 20, rl.Gray)
	} else {
		rl.DrawText(mode.String(), 10, int32(rl.GetScreenHeight())-30, 20, PointerColor(mode, &e.file.Settings))
	}

	if e.status != "" && e.now-e.statusTime < statusDuration {
		rl.DrawText(e.status, 200, int32(rl.GetScreenHeight())-30, 20, rl.Maroon)
	}
}

// PaletteLines lists the palette with selection marks, or says why it is
// empty.
func PaletteLines(c *placement.PaletteCatalog) []string {
	if c.Len() == 0 {
		return []string{fmt.Sprintf("No templates in %q", c.Path())}
	}
	mask := c.Mask()
	lines := []string{fmt.Sprintf("Palette %s", c.Path())}
	for i, t := range c.Palette() {
		mark := " "
		if mask[i] {
			mark = "x"
		}
		name := "<broken>"
		if t != nil {
			name = t.Name()
		}
		lines = append(lines, fmt.Sprintf("[%s] %d %s", mark, i+1, name))
	}
	return lines
}
