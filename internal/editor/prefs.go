package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ViewState is the camera and selection kept between sessions.
type ViewState struct {
	CameraTarget   rl.Vector3 `json:"cameraTarget"`
	CameraDistance float32    `json:"cameraDistance"`
	CameraYaw      float32    `json:"cameraYaw"`
	CameraPitch    float32    `json:"cameraPitch"`
	SelectedName   string     `json:"selectedName,omitempty"`
	ShowHelp       bool       `json:"showHelp"`
}

const viewFile = ".propbrush_view.json"

// ViewPath is where the view state for scene lives: next to the scene file.
func ViewPath(scene string) string {
	return filepath.Join(filepath.Dir(scene), viewFile)
}

func (e *Editor) viewState() ViewState {
	s := ViewState{
		CameraTarget:   e.camera.Target,
		CameraDistance: e.camera.Distance,
		CameraYaw:      e.camera.Yaw,
		CameraPitch:    e.camera.Pitch,
		ShowHelp:       e.showHelp,
	}
	if g := e.world.ActiveSelection(); g != nil {
		s.SelectedName = g.Name
	}
	return s
}

// SaveView writes the current view state.
func (e *Editor) SaveView(path string) error {
	data, err := json.MarshalIndent(e.viewState(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write view: %w", err)
	}
	return nil
}

// RestoreView applies a saved view state. A missing file is not an error.
func (e *Editor) RestoreView(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read view: %w", err)
	}

	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse view: %w", err)
	}

	e.camera.Target = state.CameraTarget
	if state.CameraDistance > 0 {
		e.camera.Distance = min(max(state.CameraDistance, e.camera.MinDistance), e.camera.MaxDistance)
	}
	e.camera.Yaw = state.CameraYaw
	e.camera.Pitch = min(max(state.CameraPitch, -89), 89)
	e.showHelp = state.ShowHelp

	if state.SelectedName != "" {
		e.world.Select(e.world.Scene.FindByName(state.SelectedName))
	}
	return nil
}
