package engine

// Scene holds every object, roots and children alike, in insertion order.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

// AddGameObject registers g and any children not yet in the scene.
func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Walk(func(obj *GameObject) {
		if _, exists := s.uidMap[obj.UID]; exists {
			return
		}
		obj.Scene = s
		s.uidMap[obj.UID] = obj
		s.GameObjects = append(s.GameObjects, obj)
	})
}

// RemoveGameObject removes g and its descendants.
func (s *Scene) RemoveGameObject(g *GameObject) {
	g.Walk(func(obj *GameObject) {
		if _, ok := s.uidMap[obj.UID]; !ok {
			return
		}
		delete(s.uidMap, obj.UID)
		obj.Scene = nil
		for i, o := range s.GameObjects {
			if o == obj {
				s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
				break
			}
		}
	})
}

func (s *Scene) Contains(g *GameObject) bool {
	return g != nil && s.uidMap[g.UID] == g
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// FindByTag returns active, visible objects carrying tag.
func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HideFlags&HideInHierarchy != 0 || !g.ActiveInHierarchy() {
			continue
		}
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Roots returns the saveable root objects.
func (s *Scene) Roots() []*GameObject {
	var roots []*GameObject
	for _, g := range s.GameObjects {
		if g.Parent == nil && g.HideFlags&DontSave == 0 {
			roots = append(roots, g)
		}
	}
	return roots
}
