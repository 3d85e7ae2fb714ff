package placement

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"propbrush/internal/assets"
	"propbrush/internal/engine"
)

// PaletteCatalog owns the template palette and its selection mask. The mask
// always has one entry per palette slot.
type PaletteCatalog struct {
	templates Templates
	browse    func() string
	notifier  DirNotifier
	sub       engine.Subscription
	pattern   string

	path    string
	dirty   bool
	palette []*assets.Template
	mask    []bool
	restore []bool

	changed engine.Event
	log     *slog.Logger
}

// NewCatalog subscribes to notifier, which may be nil. browse supplies the
// fallback directory used when the configured path is unusable.
func NewCatalog(templates Templates, browse func() string, notifier DirNotifier, logger *slog.Logger) *PaletteCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	c := &PaletteCatalog{
		templates: templates,
		browse:    browse,
		notifier:  notifier,
		pattern:   assets.TemplatePattern,
		log:       logger,
	}
	if notifier != nil {
		c.sub = notifier.Subscribe(c.onDirChanged)
	}
	return c
}

// Close releases the directory subscription.
func (c *PaletteCatalog) Close() {
	if c.notifier == nil {
		return
	}
	c.notifier.Unsubscribe(c.sub)
	if w, ok := c.notifier.(dirWatcher); ok && c.path != "" {
		w.Unwatch(c.path)
	}
	c.notifier = nil
}

// Restore seeds the mask applied the next time the palette is replaced, as
// long as its length matches the new palette.
func (c *PaletteCatalog) Restore(mask []bool) {
	c.restore = slices.Clone(mask)
}

// OnChanged registers fn to run after the palette or the mask changes.
func (c *PaletteCatalog) OnChanged(fn func()) engine.Subscription {
	return c.changed.AddListener(fn)
}

func (c *PaletteCatalog) RemoveOnChanged(id engine.Subscription) {
	c.changed.RemoveListener(id)
}

// Resync reports whether the effective path changed since the previous call,
// or the current directory was reported as modified.
func (c *PaletteCatalog) Resync(path string) bool {
	effective := c.effectivePath(path)
	if effective == c.path && !c.dirty {
		return false
	}
	c.dirty = false
	if effective != c.path {
		c.rewatch(c.path, effective)
		c.path = effective
	}
	return true
}

func (c *PaletteCatalog) effectivePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || !c.templates.DirExists(path) {
		if c.browse == nil {
			return ""
		}
		path = c.browse()
	}
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func (c *PaletteCatalog) rewatch(old, next string) {
	w, ok := c.notifier.(dirWatcher)
	if !ok {
		return
	}
	if old != "" {
		w.Unwatch(old)
	}
	if next != "" {
		if err := w.Watch(next); err != nil {
			c.log.Warn("palette directory not watched", "path", next, "err", err)
		}
	}
}

// RefreshIfChanged re-enumerates the effective path and replaces the palette
// when the ordered contents differ.
func (c *PaletteCatalog) RefreshIfChanged() bool {
	var list []*assets.Template
	if c.path != "" {
		var err error
		list, err = c.templates.ListTemplates(c.path, c.pattern)
		if err != nil {
			c.log.Error("palette enumeration failed", "path", c.path, "err", err)
			return false
		}
	}
	if slices.Equal(list, c.palette) {
		return false
	}

	c.palette = list
	c.mask = make([]bool, len(list))
	if len(c.restore) == len(list) {
		copy(c.mask, c.restore)
	}
	c.restore = nil
	c.log.Info("palette updated", "path", c.path, "templates", len(list))
	c.changed.Invoke()
	return true
}

func (c *PaletteCatalog) onDirChanged(dir string) {
	if c.path != "" && filepath.Clean(dir) == c.path {
		c.dirty = true
	}
}

// SetSelected flips one mask entry and reports whether it changed.
func (c *PaletteCatalog) SetSelected(i int, state bool) bool {
	if i < 0 || i >= len(c.mask) || c.mask[i] == state {
		return false
	}
	c.mask[i] = state
	c.changed.Invoke()
	return true
}

// Eligible returns the selected indexes holding a readable template, in
// palette order.
func (c *PaletteCatalog) Eligible() []int {
	var out []int
	for i, on := range c.mask {
		if on && c.Template(i) != nil {
			out = append(out, i)
		}
	}
	return out
}

// Template returns the entry at i, or nil when i is out of range or the
// slot holds an unreadable file.
func (c *PaletteCatalog) Template(i int) *assets.Template {
	if i < 0 || i >= len(c.palette) {
		return nil
	}
	return c.palette[i]
}

func (c *PaletteCatalog) Len() int     { return len(c.palette) }
func (c *PaletteCatalog) Path() string { return c.path }
func (c *PaletteCatalog) Mask() []bool { return slices.Clone(c.mask) }
func (c *PaletteCatalog) Dirty() bool  { return c.dirty }
func (c *PaletteCatalog) Palette() []*assets.Template {
	return slices.Clone(c.palette)
}
