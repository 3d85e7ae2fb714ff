package assets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gobwas/glob"
	"github.com/jinzhu/copier"
)

// TemplatePattern matches template files in a palette directory.
const TemplatePattern = "*.prefab"

// Template is a loaded template file. The library hands out the same
// pointer for a file until it changes on disk, so pointer equality is
// template identity.
type Template struct {
	Path string
	Root ObjectDef

	modTime time.Time
	size    int64
}

func (t *Template) Name() string {
	return t.Root.Name
}

// BaseScale is the template's own authored scale.
func (t *Template) BaseScale() rl.Vector3 {
	return t.Root.ScaleVector()
}

// Library loads and caches templates.
type Library struct {
	cache map[string]*Template
	log   *slog.Logger
}

func NewLibrary(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		cache: make(map[string]*Template),
		log:   logger,
	}
}

func (l *Library) DirExists(path string) bool {
	return DirExists(path)
}

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListTemplates returns the templates in dir whose file name matches
// pattern, in file name order. A file that cannot be parsed yields a nil
// entry so the palette keeps a slot for it.
func (l *Library) ListTemplates(dir, pattern string) ([]*Template, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !matcher.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, err := l.Load(path)
		if err != nil {
			l.log.Warn("template skipped", "path", path, "err", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// Load returns the cached template for path, reloading it when the file
// changed since the last load.
func (l *Library) Load(path string) (*Template, error) {
	info, err := os.Stat(path)
	if err != nil {
		delete(l.cache, path)
		return nil, fmt.Errorf("stat template: %w", err)
	}
	if cached, ok := l.cache[path]; ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	var root ObjectDef
	if err := json.Unmarshal(data, &root); err != nil {
		delete(l.cache, path)
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if root.Name == "" {
		root.Name = trimExt(filepath.Base(path))
	}

	t := &Template{Path: path, Root: root, modTime: info.ModTime(), size: info.Size()}
	l.cache[path] = t
	l.log.Debug("template loaded", "path", path, "name", root.Name)
	return t, nil
}

// Instantiate builds a fresh object tree from t. Every object in the tree is
// linked to the template and the returned root is the instance root. The
// object is not added to any scene. Returns nil for a nil template.
func (l *Library) Instantiate(t *Template) *engine.GameObject {
	if t == nil {
		return nil
	}
	var def ObjectDef
	if err := copier.CopyWithOption(&def, &t.Root, copier.Option{DeepCopy: true}); err != nil {
		l.log.Error("template copy failed", "path", t.Path, "err", err)
		return nil
	}

	g := Build(def)
	g.Walk(func(obj *engine.GameObject) {
		if obj.Prefab == nil {
			obj.Prefab = &engine.PrefabLink{Source: t.Path}
		}
	})
	g.Prefab = &engine.PrefabLink{Source: t.Path, Root: true}
	return g
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
