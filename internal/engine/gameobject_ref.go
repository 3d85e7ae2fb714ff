package engine

// GameObjectRef refers to an object by UID so a holder never keeps a
// destroyed object alive. The host's active selection is stored this way.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference, returning nil when it is empty, the scene is
// nil, or the object is no longer part of the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g; nil clears it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
		return
	}
	r.UID = g.UID
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
