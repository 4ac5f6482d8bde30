package key

import (
	"bytes"
	"fmt"
	"strconv"
)

// Event is a single decoded key input. It pairs the key identity with the
// exact bytes consumed to produce it and, for displayable input, the decoded
// text. Events are immutable values: the constructors copy the byte slice,
// and an Event is owned by the caller once returned from the parser.
type Event struct {
	// Key identifies the decoded key.
	Key Key

	// Raw holds the exact bytes consumed for this event, in input order.
	// It is never empty for parser-produced events.
	Raw []byte

	text    string
	hasText bool
}

// NewEvent creates an event without text content.
func NewEvent(k Key, raw []byte) Event {
	return Event{Key: k, Raw: bytes.Clone(raw)}
}

// NewTextEvent creates an event carrying decoded text, such as a printable
// character or bracketed-paste content.
func NewTextEvent(k Key, raw []byte, text string) Event {
	return Event{Key: k, Raw: bytes.Clone(raw), text: text, hasText: true}
}

// HasText returns true if the event carries decoded text.
func (e Event) HasText() bool {
	return e.hasText
}

// Text returns the decoded text, or "" if the event has none.
func (e Event) Text() string {
	return e.text
}

// Equal returns true if two events have the same key, bytes and text.
func (e Event) Equal(other Event) bool {
	return e.Key == other.Key &&
		bytes.Equal(e.Raw, other.Raw) &&
		e.hasText == other.hasText &&
		e.text == other.text
}

// CPR decodes the row and column of a CPRResponse event. ok is false for
// any other event.
func (e Event) CPR() (row, col int, ok bool) {
	if e.Key != CPRResponse {
		return 0, 0, false
	}
	body := e.Raw
	if len(body) < 6 || body[0] != 0x1b || body[1] != '[' || body[len(body)-1] != 'R' {
		return 0, 0, false
	}
	sep := bytes.IndexByte(body, ';')
	if sep < 0 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(string(body[2:sep]))
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(string(body[sep+1 : len(body)-1]))
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// MouseData returns the three payload bytes of an X10 mouse report
// (button, column, row, each offset by 32). ok is false for non-mouse
// events and for SGR-format reports, whose parameters remain in Raw.
func (e Event) MouseData() (data []byte, ok bool) {
	if e.Key != Vt100MouseEvent || len(e.Raw) != 6 || e.Raw[2] != 'M' {
		return nil, false
	}
	return bytes.Clone(e.Raw[3:]), true
}

// String returns a diagnostic representation like `Up <1b 5b 41>` or
// `NotDefined "a"`.
func (e Event) String() string {
	if e.hasText {
		return fmt.Sprintf("%s %q", e.Key, e.text)
	}
	return fmt.Sprintf("%s <% x>", e.Key, e.Raw)
}
