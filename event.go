package conio

import "fmt"

// InputEvent is one decoded unit of terminal input. Exactly four types
// implement it: KeyEvent, MouseEvent, Unsupported and Unknown.
type InputEvent interface {
	inputEvent()
}

// KeyKind selects which key a KeyEvent describes.
type KeyKind int

// The closed set of keys the decoder can report. KeyChar, KeyAlt and
// KeyCtrl carry the character in KeyEvent.Rune; KeyF carries the function
// key index in KeyEvent.F.
const (
	KeyChar KeyKind = iota
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyF
	KeyAlt
	KeyCtrl
	KeyNull
	KeyEsc
	KeyCtrlUp
	KeyCtrlDown
	KeyCtrlRight
	KeyCtrlLeft
	KeyShiftUp
	KeyShiftDown
	KeyShiftRight
	KeyShiftLeft
)

// KeyEvent is a single key press or key combination.
type KeyEvent struct {
	Kind KeyKind
	Rune rune // set for KeyChar, KeyAlt and KeyCtrl
	F    int  // function key index, set for KeyF
}

func (KeyEvent) inputEvent() {}

// Char returns the event for a plain printable character.
func Char(r rune) KeyEvent { return KeyEvent{Kind: KeyChar, Rune: r} }

// Alt returns the event for an Alt-modified character.
func Alt(r rune) KeyEvent { return KeyEvent{Kind: KeyAlt, Rune: r} }

// Ctrl returns the event for a Ctrl-modified character.
func Ctrl(r rune) KeyEvent { return KeyEvent{Kind: KeyCtrl, Rune: r} }

// F returns the event for function key n (F1 is n=1).
func F(n int) KeyEvent { return KeyEvent{Kind: KeyF, F: n} }

func (k KeyEvent) String() string {
	switch k.Kind {
	case KeyChar:
		return fmt.Sprintf("%q", k.Rune)
	case KeyAlt:
		return fmt.Sprintf("Alt+%c", k.Rune)
	case KeyCtrl:
		return fmt.Sprintf("Ctrl+%c", k.Rune)
	case KeyF:
		return fmt.Sprintf("F%d", k.F)
	case KeyBackspace:
		return "Backspace"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyBackTab:
		return "BackTab"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyNull:
		return "Null"
	case KeyEsc:
		return "Esc"
	case KeyCtrlUp:
		return "Ctrl+Up"
	case KeyCtrlDown:
		return "Ctrl+Down"
	case KeyCtrlRight:
		return "Ctrl+Right"
	case KeyCtrlLeft:
		return "Ctrl+Left"
	case KeyShiftUp:
		return "Shift+Up"
	case KeyShiftDown:
		return "Shift+Down"
	case KeyShiftRight:
		return "Shift+Right"
	case KeyShiftLeft:
		return "Shift+Left"
	}
	return fmt.Sprintf("KeyEvent(%d)", int(k.Kind))
}

// MouseButton identifies which button a mouse press refers to.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseWheelUp
	MouseWheelDown
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	case MouseWheelUp:
		return "wheelUp"
	case MouseWheelDown:
		return "wheelDown"
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// MouseEventKind selects what a MouseEvent describes.
type MouseEventKind int

const (
	// MousePress is a fresh button press; Button identifies it.
	MousePress MouseEventKind = iota
	// MouseRelease is a button release. The legacy wire encoding does not
	// say which button was let go, so Release carries no button identity.
	MouseRelease
	// MouseHold is motion while a button is held down (a drag).
	MouseHold
	// MouseUnknown is a mouse report that carried no usable information.
	MouseUnknown
)

// MouseEvent is a single mouse report. X and Y are 1-based cell
// coordinates as reported by the terminal.
type MouseEvent struct {
	Kind   MouseEventKind
	Button MouseButton // set for MousePress
	X, Y   uint16
}

func (MouseEvent) inputEvent() {}

func (m MouseEvent) String() string {
	switch m.Kind {
	case MousePress:
		return fmt.Sprintf("%v press (%d,%d)", m.Button, m.X, m.Y)
	case MouseRelease:
		return fmt.Sprintf("release (%d,%d)", m.X, m.Y)
	case MouseHold:
		return fmt.Sprintf("hold (%d,%d)", m.X, m.Y)
	}
	return "mouse unknown"
}

// Unsupported is an escape sequence that was recognized as such but has no
// key or mouse mapping. Bytes holds every byte that was consumed, verbatim.
type Unsupported struct {
	Bytes []byte
}

func (Unsupported) inputEvent() {}

func (u Unsupported) String() string { return fmt.Sprintf("unsupported %q", u.Bytes) }

// Unknown is input that could not be classified at all, such as an invalid
// UTF-8 encoding.
type Unknown struct{}

func (Unknown) inputEvent() {}

func (Unknown) String() string { return "unknown" }
