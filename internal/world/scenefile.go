package world

import (
	"encoding/json"
	"fmt"
	"os"

	"propbrush/internal/assets"
)

type SceneFile struct {
	Name    string             `json:"name,omitempty"`
	Objects []assets.ObjectDef `json:"objects"`
}

// LoadScene adds the objects of a scene file to the world.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	for _, def := range sf.Objects {
		w.Spawn(assets.Build(def))
	}
	w.log.Info("scene loaded", "path", path, "objects", len(sf.Objects))
	return nil
}

// SaveScene writes every saveable root object to path.
func (w *World) SaveScene(path string) error {
	sf := SceneFile{Name: w.Scene.Name, Objects: []assets.ObjectDef{}}
	for _, g := range w.Scene.Roots() {
		sf.Objects = append(sf.Objects, assets.Describe(g))
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	w.log.Info("scene saved", "path", path, "objects", len(sf.Objects))
	return nil
}
