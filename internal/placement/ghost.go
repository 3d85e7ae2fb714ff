package placement

import (
	"propbrush/internal/engine"
)

// PreviewGhost keeps at most one preview instance of the template the next
// placement will use. The instance is never added to the scene or physics.
type PreviewGhost struct {
	templates Templates
	catalog   *PaletteCatalog
	composer  *TransformComposer

	object *engine.GameObject
	index  int
}

func NewPreviewGhost(templates Templates, catalog *PaletteCatalog, composer *TransformComposer) *PreviewGhost {
	return &PreviewGhost{
		templates: templates,
		catalog:   catalog,
		composer:  composer,
		index:     -1,
	}
}

// Refresh shows the template at index posed on s.
func (p *PreviewGhost) Refresh(index int, s Sample) {
	tmpl := p.catalog.Template(index)
	if index == -1 || p.catalog.Len() == 0 || tmpl == nil {
		p.Destroy()
		p.index = -1
		return
	}
	if index != p.index {
		p.Destroy()
		p.index = index
	}
	if !s.Valid {
		return
	}
	if p.object == nil {
		p.object = p.templates.Instantiate(tmpl)
		if p.object == nil {
			p.index = -1
			return
		}
		p.object.Name = tmpl.Name() + " (preview)"
		p.object.Walk(func(obj *engine.GameObject) {
			obj.HideFlags |= engine.HideAndDontSave
		})
		for _, c := range engine.GetComponentsInChildren[engine.Toggler](p.object) {
			c.SetEnabled(false)
		}
	}
	p.composer.ComposePreview(p.object, s, tmpl.BaseScale())
}

// Destroy drops the preview instance. It is safe to call at any time.
func (p *PreviewGhost) Destroy() {
	p.object = nil
}

// Object is the live preview instance, or nil.
func (p *PreviewGhost) Object() *engine.GameObject {
	return p.object
}

// Index is the palette index the preview represents, or -1.
func (p *PreviewGhost) Index() int {
	return p.index
}
