package editor

import (
	"propbrush/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FrameInput is the input state sampled once per frame.
type FrameInput struct {
	Pointer  rl.Vector2
	Down     [3]bool // indexed by placement.Button
	Pressed  [3]bool
	Released [3]bool
	Shift    bool
	Alt      bool
	Ctrl     bool
	Keys     []placement.Key // pressed this frame, in order

	Unfocused bool // the window lost input focus
}

var mouseButtons = [3]rl.MouseButton{
	placement.ButtonPrimary:   rl.MouseLeftButton,
	placement.ButtonSecondary: rl.MouseRightButton,
	placement.ButtonMiddle:    rl.MouseMiddleButton,
}

// ReadFrame samples raylib's input state.
func ReadFrame() FrameInput {
	in := FrameInput{
		Pointer: rl.GetMousePosition(),
		Shift:   rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Alt:     rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),
		Ctrl: rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
			rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper),
		Unfocused: !rl.IsWindowFocused(),
	}
	for i, b := range mouseButtons {
		in.Down[i] = rl.IsMouseButtonDown(b)
		in.Pressed[i] = rl.IsMouseButtonPressed(b)
		in.Released[i] = rl.IsMouseButtonReleased(b)
	}
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		in.Keys = append(in.Keys, placement.Key(k))
	}
	return in
}

func (in FrameInput) modifiers() placement.Modifiers {
	var m placement.Modifiers
	if in.Shift {
		m |= placement.ModShift
	}
	if in.Alt {
		m |= placement.ModAlt
	}
	if in.Ctrl {
		m |= placement.ModControl
	}
	return m
}

// Events turns a frame into brush input events: presses, drags (only when
// the pointer moved) and releases per button, then one KeyDown per key.
// A frame with none of these yields a single Move so the mode still tracks
// the held modifiers.
func Events(in FrameInput, moved bool) []placement.InputEvent {
	mods := in.modifiers()
	var out []placement.InputEvent
	for b := placement.ButtonPrimary; b <= placement.ButtonMiddle; b++ {
		ev := placement.InputEvent{Button: b, Modifiers: mods}
		switch {
		case in.Pressed[b]:
			ev.Kind = placement.EventPress
		case in.Down[b] && moved:
			ev.Kind = placement.EventDrag
		case in.Released[b]:
			ev.Kind = placement.EventRelease
		default:
			continue
		}
		out = append(out, ev)
	}
	for _, k := range in.Keys {
		out = append(out, placement.InputEvent{Kind: placement.EventKeyDown, Modifiers: mods, Key: k})
	}
	if len(out) == 0 {
		out = append(out, placement.InputEvent{Kind: placement.EventMove, Modifiers: mods})
	}
	return out
}

// Command is an editor shortcut.
type Command int

const (
	CmdNone Command = iota
	CmdUndo
	CmdRedo
	CmdSave
	CmdProject
	CmdFocus
	CmdToggleActive
	CmdToggleHelp
	CmdToggleSlot
)

func (c Command) String() string {
	switch c {
	case CmdUndo:
		return "undo"
	case CmdRedo:
		return "redo"
	case CmdSave:
		return "save"
	case CmdProject:
		return "project"
	case CmdFocus:
		return "focus"
	case CmdToggleActive:
		return "toggle-active"
	case CmdToggleHelp:
		return "toggle-help"
	case CmdToggleSlot:
		return "toggle-slot"
	}
	return "none"
}

// Shortcut maps a KeyDown event to an editor command. For CmdToggleSlot the
// second result is the zero-based palette slot.
func Shortcut(ev placement.InputEvent) (Command, int) {
	if ev.Kind != placement.EventKeyDown {
		return CmdNone, 0
	}
	ctrl := ev.Modifiers.Has(placement.ModControl)
	shift := ev.Modifiers.Has(placement.ModShift)
	k := ev.Key
	switch {
	case ctrl && k == placement.KeyZ && shift:
		return CmdRedo, 0
	case ctrl && k == placement.KeyZ:
		return CmdUndo, 0
	case ctrl && k == placement.KeyY:
		return CmdRedo, 0
	case ctrl && k == placement.Key(rl.KeyS):
		return CmdSave, 0
	case ctrl:
		return CmdNone, 0
	case k == placement.Key(rl.KeyP):
		return CmdProject, 0
	case k == placement.Key(rl.KeyF):
		return CmdFocus, 0
	case k == placement.Key(rl.KeyTab):
		return CmdToggleActive, 0
	case k == placement.Key(rl.KeyF1):
		return CmdToggleHelp, 0
	case k >= placement.Key(rl.KeyOne) && k <= placement.Key(rl.KeyNine):
		return CmdToggleSlot, int(k - placement.Key(rl.KeyOne))
	}
	return CmdNone, 0
}
