// Package replay drives the editor from a YAML script without a window.
// Pointer coordinates are world X and Z, projected straight down.
package replay

import (
	"fmt"
	"os"
	"strings"

	"propbrush/internal/config"
	"propbrush/internal/editor"
	"propbrush/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// ProjectorHeight is where replay rays start.
const ProjectorHeight float32 = 1000

// Script is the file format.
type Script struct {
	Scene string    `yaml:"scene"`
	Seed  uint64    `yaml:"seed"`
	Brush yaml.Node `yaml:"brush"` // overrides on top of the loaded configuration
	Steps []Step    `yaml:"steps"`
	Save  string    `yaml:"save"`
}

// Step is one frame. Op is one of move, press, drag, release, key, pick,
// select, deselect, undo, redo, project.
type Step struct {
	Op    string     `yaml:"op"`
	At    [2]float32 `yaml:"at"`
	Shift bool       `yaml:"shift"`
	Alt   bool       `yaml:"alt"`
	Ctrl  bool       `yaml:"ctrl"`
	Key   string     `yaml:"key"`
	Slot  int        `yaml:"slot"` // one-based
	Times int        `yaml:"times"`
}

// Result is the state after a step.
type Result struct {
	Index   int
	Op      string
	Mode    placement.Mode
	Objects int
	Undo    int
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Apply decodes the script's brush overrides onto f.
func (s *Script) Apply(f *config.File) error {
	if s.Brush.Kind == 0 {
		return nil
	}
	if err := s.Brush.Decode(&f.Brush); err != nil {
		return fmt.Errorf("brush overrides: %w", err)
	}
	return f.Brush.Validate()
}

func (st Step) validate() error {
	switch st.Op {
	case "move", "press", "drag", "release", "pick", "undo", "redo", "project":
		return nil
	case "key":
		if _, err := ParseKey(st.Key); err != nil {
			return err
		}
		return nil
	case "select", "deselect":
		if st.Slot < 1 || st.Slot > 9 {
			return fmt.Errorf("slot must be 1..9, got %d", st.Slot)
		}
		return nil
	}
	return fmt.Errorf("unknown op %q", st.Op)
}

// ParseKey accepts a single letter or digit, Tab or F1.
func ParseKey(name string) (placement.Key, error) {
	switch up := strings.ToUpper(strings.TrimSpace(name)); {
	case up == "TAB":
		return placement.Key(rl.KeyTab), nil
	case up == "F1":
		return placement.Key(rl.KeyF1), nil
	case len(up) == 1 && (up[0] >= 'A' && up[0] <= 'Z' || up[0] >= '0' && up[0] <= '9'):
		return placement.Key(up[0]), nil
	}
	return placement.KeyNone, fmt.Errorf("unknown key %q", name)
}

// Run plays every step against e.
func Run(e *editor.Editor, s *Script) []Result {
	var results []Result
	var now float64
	var held bool
	pointer := rl.Vector2{}

	for i, st := range s.Steps {
		times := max(st.Times, 1)
		for range times {
			now += 1.0 / 60
			if st.Op == "move" || st.Op == "press" || st.Op == "drag" || st.Op == "pick" {
				pointer = rl.Vector2{X: st.At[0], Y: st.At[1]}
			}
			in := editor.FrameInput{Pointer: pointer, Shift: st.Shift, Alt: st.Alt, Ctrl: st.Ctrl}
			in.Down[placement.ButtonPrimary] = held

			switch st.Op {
			case "press":
				in.Pressed[placement.ButtonPrimary] = true
				in.Down[placement.ButtonPrimary] = true
				held = true
			case "drag":
				in.Down[placement.ButtonPrimary] = true
				held = true
			case "release":
				in.Down[placement.ButtonPrimary] = false
				in.Released[placement.ButtonPrimary] = true
				held = false
			case "pick":
				in.Alt = true
				in.Pressed[placement.ButtonPrimary] = true
			case "key":
				k, _ := ParseKey(st.Key)
				in.Keys = []placement.Key{k}
			case "select", "deselect":
				mask := e.Brush().Catalog().Mask()
				if st.Slot-1 < len(mask) && mask[st.Slot-1] != (st.Op == "select") {
					e.Apply(editor.CmdToggleSlot, st.Slot-1)
				}
			case "undo":
				e.Apply(editor.CmdUndo, 0)
			case "redo":
				e.Apply(editor.CmdRedo, 0)
			case "project":
				e.Apply(editor.CmdProject, 0)
			}
			e.Step(in, now)
		}
		results = append(results, Result{
			Index:   i + 1,
			Op:      st.Op,
			Mode:    e.Brush().Mode(),
			Objects: len(e.World().Scene.GameObjects),
			Undo:    e.History().Len(),
		})
	}
	return results
}
