package placement

// Mode is what the brush does with the current input.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRotateLeft
	ModeRotateRight
	ModePaintDown
	ModePaintDrag
	ModeEraseReady
	ModeEraseDown
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeRotateLeft:
		return "RotateLeft"
	case ModeRotateRight:
		return "RotateRight"
	case ModePaintDown:
		return "PaintDown"
	case ModePaintDrag:
		return "PaintDrag"
	case ModeEraseReady:
		return "EraseReady"
	case ModeEraseDown:
		return "EraseDown"
	default:
		return "Unknown"
	}
}

func (m Mode) IsErase() bool {
	return m == ModeEraseReady || m == ModeEraseDown
}

type EventKind int

const (
	EventNone EventKind = iota
	EventMove
	EventPress
	EventDrag
	EventRelease
	EventKeyDown
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModControl
)

func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// Key codes follow raylib, where letter keys are their upper-case ASCII value.
type Key int32

const (
	KeyNone Key = 0
	KeyC    Key = 'C'
	KeyX    Key = 'X'
	KeyY    Key = 'Y'
	KeyZ    Key = 'Z'
)

// InputEvent is one frame's input as seen by the brush.
type InputEvent struct {
	Kind      EventKind
	Button    Button
	Modifiers Modifiers
	Key       Key
}

// KeyMap binds the rotation chords.
type KeyMap struct {
	Chord       Modifiers
	RotateLeft  Key
	RotateRight Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{Chord: ModControl, RotateLeft: KeyC, RotateRight: KeyX}
}

// Classify maps an event to a mode. Shift turns the brush into an eraser.
// Painting and erasing need the primary button with Alt released, since Alt
// hands the pointer back to the host for selection.
func (k KeyMap) Classify(ev InputEvent) Mode {
	drawable := !ev.Modifiers.Has(ModAlt) && ev.Button == ButtonPrimary
	pointing := ev.Kind == EventPress || ev.Kind == EventDrag

	switch {
	case ev.Modifiers.Has(ModShift):
		if drawable && pointing {
			return ModeEraseDown
		}
		return ModeEraseReady
	case drawable && ev.Kind == EventPress:
		return ModePaintDown
	case drawable && ev.Kind == EventDrag:
		return ModePaintDrag
	case ev.Kind == EventKeyDown && ev.Modifiers.Has(k.Chord) && ev.Key == k.RotateLeft:
		return ModeRotateLeft
	case ev.Kind == EventKeyDown && ev.Modifiers.Has(k.Chord) && ev.Key == k.RotateRight:
		return ModeRotateRight
	}
	return ModeIdle
}

// Classify uses the default key map.
func Classify(ev InputEvent) Mode {
	return DefaultKeyMap().Classify(ev)
}
