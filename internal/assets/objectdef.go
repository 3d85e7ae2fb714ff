package assets

import (
	"fmt"

	"propbrush/internal/components"
	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectDef is the JSON form of an object tree, shared by template files
// and scene files.
type ObjectDef struct {
	Name       string         `json:"name"`
	Tags       []string       `json:"tags,omitempty"`
	Layer      int            `json:"layer,omitempty"`
	Prefab     string         `json:"prefab,omitempty"`
	PrefabRoot bool           `json:"prefabRoot,omitempty"`
	Position   [3]float32     `json:"position"`
	Rotation   [3]float32     `json:"rotation"`
	Scale      [3]float32     `json:"scale"`
	Components []ComponentDef `json:"components,omitempty"`
	Children   []ObjectDef    `json:"children,omitempty"`
}

type ComponentDef struct {
	Type   string     `json:"type"`
	Mesh   string     `json:"mesh,omitempty"`
	Color  string     `json:"color,omitempty"`
	Size   [3]float32 `json:"size,omitempty"`
	Offset [3]float32 `json:"offset,omitempty"`
	Radius float32    `json:"radius,omitempty"`
}

var meshByName = map[string]components.MeshType{
	"cube":     components.MeshCube,
	"sphere":   components.MeshSphere,
	"plane":    components.MeshPlane,
	"cylinder": components.MeshCylinder,
}

// Color name mapping for renderers
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	for name, v := range colorByName {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// ScaleVector returns the authored scale, defaulting a zero scale to one.
func (d ObjectDef) ScaleVector() rl.Vector3 {
	if d.Scale == [3]float32{} {
		return rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return vec(d.Scale)
}

// Build creates the object tree described by d.
func Build(d ObjectDef) *engine.GameObject {
	g := engine.NewGameObject(d.Name)
	g.Tags = d.Tags
	g.Layer = d.Layer
	g.Transform.Position = vec(d.Position)
	g.Transform.SetEulerAngles(vec(d.Rotation))
	g.Transform.Scale = d.ScaleVector()
	if d.Prefab != "" {
		g.Prefab = &engine.PrefabLink{Source: d.Prefab, Root: d.PrefabRoot}
	}

	for _, c := range d.Components {
		if comp := buildComponent(c); comp != nil {
			g.AddComponent(comp)
		}
	}
	for _, child := range d.Children {
		g.AddChild(Build(child))
	}
	return g
}

func buildComponent(c ComponentDef) engine.Component {
	switch c.Type {
	case "MeshRenderer":
		mesh, ok := meshByName[c.Mesh]
		if !ok {
			return nil
		}
		return components.NewMeshRenderer(mesh, LookupColor(c.Color), vec(c.Size))
	case "BoxCollider":
		col := components.NewBoxCollider(vec(c.Size))
		col.Offset = vec(c.Offset)
		return col
	case "SphereCollider":
		col := components.NewSphereCollider(c.Radius)
		col.Offset = vec(c.Offset)
		return col
	}
	return nil
}

// Describe is the inverse of Build.
func Describe(g *engine.GameObject) ObjectDef {
	d := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Layer:    g.Layer,
		Position: arr(g.Transform.Position),
		Rotation: arr(g.Transform.EulerAngles()),
		Scale:    arr(g.Transform.Scale),
	}
	if g.Prefab != nil {
		d.Prefab = g.Prefab.Source
		d.PrefabRoot = g.Prefab.Root
	}
	for _, c := range g.Components() {
		if cd, ok := describeComponent(c); ok {
			d.Components = append(d.Components, cd)
		}
	}
	for _, child := range g.Children {
		if child.HideFlags&engine.DontSave != 0 {
			continue
		}
		d.Children = append(d.Children, Describe(child))
	}
	return d
}

func describeComponent(c engine.Component) (ComponentDef, bool) {
	switch comp := c.(type) {
	case *components.MeshRenderer:
		for name, t := range meshByName {
			if t == comp.MeshType {
				return ComponentDef{Type: "MeshRenderer", Mesh: name, Color: lookupColorName(comp.Color), Size: arr(comp.Size)}, true
			}
		}
	case *components.BoxCollider:
		return ComponentDef{Type: "BoxCollider", Size: arr(comp.Size), Offset: arr(comp.Offset)}, true
	case *components.SphereCollider:
		return ComponentDef{Type: "SphereCollider", Radius: comp.Radius, Offset: arr(comp.Offset)}, true
	}
	return ComponentDef{}, false
}
