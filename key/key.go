package key

import (
	"fmt"
	"strings"
)

// Key identifies a single key input decoded from the terminal byte stream.
// The set is closed: every byte sequence maps to exactly one Key, with
// NotDefined as the total fallback. Modifier combinations the terminal
// encodes are distinct variants rather than a separate bitmask, because the
// wire format enumerates a small fixed set per key.
type Key uint16

const (
	// NotDefined is the fallback for bytes and sequences outside the named
	// vocabulary. It is the zero value.
	NotDefined Key = iota

	// Ignore marks sequences that are recognized but deliberately produce
	// no event (terminal chatter such as xterm focus reports).
	Ignore

	Escape

	// Control characters
	ControlA
	ControlB
	ControlC
	ControlD
	ControlE
	ControlF
	ControlG
	ControlH
	ControlI
	ControlJ
	ControlK
	ControlL
	ControlM
	ControlN
	ControlO
	ControlP
	ControlQ
	ControlR
	ControlS
	ControlT
	ControlU
	ControlV
	ControlW
	ControlX
	ControlY
	ControlZ

	ControlSpace
	ControlBackslash
	ControlSquareClose
	ControlCircumflex
	ControlUnderscore

	Tab
	BackTab
	Enter
	Backspace

	// Arrow keys and their modifier variants
	Up
	Down
	Right
	Left
	ShiftUp
	ShiftDown
	ShiftRight
	ShiftLeft
	ControlUp
	ControlDown
	ControlRight
	ControlLeft
	AltUp
	AltDown
	AltRight
	AltLeft
	ControlShiftUp
	ControlShiftDown
	ControlShiftRight
	ControlShiftLeft

	// Navigation and editing keys
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
	ShiftHome
	ControlHome
	ShiftEnd
	ControlEnd
	ShiftDelete
	ControlDelete

	// Function keys. F13-F24 double as the xterm encodings of Shift+F1
	// through Shift+F12.
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	// Report keys carrying terminal responses rather than keystrokes
	BracketedPaste
	Vt100MouseEvent
	CPRResponse

	numKeys // sentinel, keep last
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case NotDefined:
		return "NotDefined"
	case Ignore:
		return "Ignore"
	case Escape:
		return "Escape"
	case ControlSpace:
		return "Ctrl+Space"
	case ControlBackslash:
		return "Ctrl+Backslash"
	case ControlSquareClose:
		return "Ctrl+]"
	case ControlCircumflex:
		return "Ctrl+^"
	case ControlUnderscore:
		return "Ctrl+_"
	case Tab:
		return "Tab"
	case BackTab:
		return "BackTab"
	case Enter:
		return "Enter"
	case Backspace:
		return "Backspace"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Right:
		return "Right"
	case Left:
		return "Left"
	case ShiftUp:
		return "Shift+Up"
	case ShiftDown:
		return "Shift+Down"
	case ShiftRight:
		return "Shift+Right"
	case ShiftLeft:
		return "Shift+Left"
	case ControlUp:
		return "Ctrl+Up"
	case ControlDown:
		return "Ctrl+Down"
	case ControlRight:
		return "Ctrl+Right"
	case ControlLeft:
		return "Ctrl+Left"
	case AltUp:
		return "Alt+Up"
	case AltDown:
		return "Alt+Down"
	case AltRight:
		return "Alt+Right"
	case AltLeft:
		return "Alt+Left"
	case ControlShiftUp:
		return "Ctrl+Shift+Up"
	case ControlShiftDown:
		return "Ctrl+Shift+Down"
	case ControlShiftRight:
		return "Ctrl+Shift+Right"
	case ControlShiftLeft:
		return "Ctrl+Shift+Left"
	case Home:
		return "Home"
	case End:
		return "End"
	case PageUp:
		return "PageUp"
	case PageDown:
		return "PageDown"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case ShiftHome:
		return "Shift+Home"
	case ControlHome:
		return "Ctrl+Home"
	case ShiftEnd:
		return "Shift+End"
	case ControlEnd:
		return "Ctrl+End"
	case ShiftDelete:
		return "Shift+Delete"
	case ControlDelete:
		return "Ctrl+Delete"
	case BracketedPaste:
		return "BracketedPaste"
	case Vt100MouseEvent:
		return "Vt100MouseEvent"
	case CPRResponse:
		return "CPRResponse"
	}

	if k >= ControlA && k <= ControlZ {
		return "Ctrl+" + string(rune('A'+k-ControlA))
	}
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", k-F1+1)
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// IsControl returns true for control-character keys, including Tab, Enter,
// Backspace and Escape.
func (k Key) IsControl() bool {
	return k >= Escape && k <= Backspace
}

// IsNavigation returns true for arrow, Home/End, page and editing keys in
// any modifier variant.
func (k Key) IsNavigation() bool {
	return k >= Up && k <= ControlDelete
}

// IsFunctionKey returns true for F1 through F24.
func (k Key) IsFunctionKey() bool {
	return k >= F1 && k <= F24
}

// IsReport returns true for keys carrying terminal responses rather than
// keystrokes.
func (k Key) IsReport() bool {
	return k == BracketedPaste || k == Vt100MouseEvent || k == CPRResponse
}

// keyNameAliases maps alternate spellings (lowercase) to keys, on top of the
// canonical String() names.
var keyNameAliases = map[string]Key{
	"esc":       Escape,
	"return":    Enter,
	"cr":        Enter,
	"bs":        Backspace,
	"del":       Delete,
	"ins":       Insert,
	"pgup":      PageUp,
	"pgdn":      PageDown,
	"shift+tab": BackTab,
	"paste":     BracketedPaste,
}

var keyNames map[string]Key

func init() {
	keyNames = make(map[string]Key, int(numKeys)+len(keyNameAliases))
	for k := NotDefined; k < numKeys; k++ {
		keyNames[strings.ToLower(k.String())] = k
	}
	for name, k := range keyNameAliases {
		keyNames[name] = k
	}
}

// FromName returns the Key for a given name (case-insensitive), accepting
// both canonical names ("Shift+Up", "F5") and common aliases ("esc",
// "pgup"). The second return is false if the name is not recognized.
func FromName(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
