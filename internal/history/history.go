// Package history records placement side effects so they can be undone.
package history

import "propbrush/internal/engine"

const maxUndoStack = 50

// ActionType represents the type of action that can be undone
type ActionType int

const (
	ActionCreate ActionType = iota
	ActionDestroy
	ActionTransform
)

func (a ActionType) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionDestroy:
		return "destroy"
	case ActionTransform:
		return "transform"
	}
	return "unknown"
}

// Record captures enough state to revert or reapply one action.
type Record struct {
	Type   ActionType
	Object *engine.GameObject
	Parent *engine.GameObject

	// Local transform before and after a transform action
	Before engine.Transform
	After  engine.Transform
}

// Host is the scene the log replays into.
type Host interface {
	Attach(g *engine.GameObject)
	Detach(g *engine.GameObject)
}

// Log is a bounded undo/redo stack.
type Log struct {
	host      Host
	undoStack []Record
	redoStack []Record
}

func NewLog(host Host) *Log {
	return &Log{host: host}
}

func (l *Log) RecordCreate(g *engine.GameObject) {
	l.push(Record{Type: ActionCreate, Object: g, Parent: g.Parent})
}

// RecordDestroy must be called before g is detached so its parent is known.
func (l *Log) RecordDestroy(g *engine.GameObject) {
	l.push(Record{Type: ActionDestroy, Object: g, Parent: g.Parent, Before: g.Transform})
}

// RecordTransform stores a move from before to g's current transform.
func (l *Log) RecordTransform(g *engine.GameObject, before engine.Transform) {
	l.push(Record{Type: ActionTransform, Object: g, Before: before, After: g.Transform})
}

func (l *Log) push(r Record) {
	// Cap stack size
	if len(l.undoStack) >= maxUndoStack {
		l.undoStack = l.undoStack[1:]
	}
	l.undoStack = append(l.undoStack, r)
	l.redoStack = l.redoStack[:0]
}

func (l *Log) CanUndo() bool { return len(l.undoStack) > 0 }
func (l *Log) CanRedo() bool { return len(l.redoStack) > 0 }
func (l *Log) Len() int      { return len(l.undoStack) }

// Undo reverts the last action. Returns false when there is nothing to undo.
func (l *Log) Undo() bool {
	if len(l.undoStack) == 0 {
		return false
	}
	r := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]

	switch r.Type {
	case ActionCreate:
		l.host.Detach(r.Object)
	case ActionDestroy:
		l.restore(r)
	case ActionTransform:
		r.Object.Transform = r.Before
	}
	l.redoStack = append(l.redoStack, r)
	return true
}

// Redo reapplies the last undone action.
func (l *Log) Redo() bool {
	if len(l.redoStack) == 0 {
		return false
	}
	r := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]

	switch r.Type {
	case ActionCreate:
		l.restore(r)
	case ActionDestroy:
		l.host.Detach(r.Object)
	case ActionTransform:
		r.Object.Transform = r.After
	}
	l.undoStack = append(l.undoStack, r)
	return true
}

func (l *Log) restore(r Record) {
	if r.Parent != nil && r.Object.Parent == nil {
		r.Parent.AddChild(r.Object)
	}
	l.host.Attach(r.Object)
}
