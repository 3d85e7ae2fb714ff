package engine

type Component interface {
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Toggler is implemented by components that can be switched off without
// being removed, such as colliders on a preview object.
type Toggler interface {
	Component
	SetEnabled(enabled bool)
	IsEnabled() bool
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
