package key

import (
	"bytes"
	"strconv"
	"strings"
)

type parseState int

const (
	stateNormal parseState = iota
	stateEscape
	stateCSI
	stateSS3
	stateMouse
	statePaste
)

// maxSequenceLen bounds the pending escape buffer. A sequence that grows
// past it resolves to a single NotDefined event. Paste bodies are exempt.
const maxSequenceLen = 1024

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// Parser is the streaming state machine. It consumes raw terminal bytes
// through Feed and produces completed events in input order. Bytes that
// could still begin a longer sequence stay buffered until a later Feed,
// Flush, or Reset resolves them.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	table *Table
	state parseState
	buf   []byte

	utf8Buf   [4]byte
	utf8Len   int
	utf8Count int
}

// NewParser returns a parser over the standard sequence table.
func NewParser() *Parser {
	return NewParserWithTable(NewTable())
}

// NewParserWithTable returns a parser over a caller-supplied table. The
// parser assumes sole ownership of the table from this point.
func NewParserWithTable(t *Table) *Parser {
	return &Parser{table: t}
}

// Table returns the parser's sequence table, for registering dialect
// sequences before any bytes are fed.
func (p *Parser) Table() *Table {
	return p.table
}

// Feed appends data to the stream and returns every event completed by it,
// in order. Feeding an empty slice returns nil and changes nothing.
func (p *Parser) Feed(data []byte) []Event {
	var events []Event
	for _, b := range data {
		events = p.step(b, events)
	}
	return events
}

// Flush resolves everything still buffered under the assumption that no
// more bytes are coming. A lone ESC becomes the Escape key; an incomplete
// sequence resolves byte by byte to the literal or control meaning of each
// byte. An unterminated paste is delivered as a paste event with the
// content received so far. The buffer is empty afterwards.
func (p *Parser) Flush() []Event {
	var events []Event

	if p.utf8Count > 0 {
		events = append(events, textEvent(p.utf8Buf[:p.utf8Count]))
		p.utf8Len, p.utf8Count = 0, 0
	}

	if len(p.buf) > 0 {
		if p.state == statePaste {
			body := p.buf[len(pasteStart):]
			text := strings.ToValidUTF8(string(body), "�")
			events = append(events, NewTextEvent(BracketedPaste, p.buf, text))
		} else {
			for _, b := range p.buf {
				events = append(events, p.literal(b))
			}
		}
		p.buf = nil
	}

	p.state = stateNormal
	return events
}

// Reset discards all buffered bytes and returns to the initial state
// without producing events.
func (p *Parser) Reset() {
	p.state = stateNormal
	p.buf = nil
	p.utf8Len, p.utf8Count = 0, 0
}

func (p *Parser) step(b byte, events []Event) []Event {
	switch p.state {
	case stateEscape:
		return p.escapeByte(b, events)
	case stateCSI:
		return p.csiByte(b, events)
	case stateSS3:
		return p.ss3Byte(b, events)
	case stateMouse:
		return p.mouseByte(b, events)
	case statePaste:
		return p.pasteByte(b, events)
	}
	return p.normalByte(b, events)
}

func (p *Parser) normalByte(b byte, events []Event) []Event {
	if p.utf8Len > 0 {
		if b&0xc0 == 0x80 {
			p.utf8Buf[p.utf8Count] = b
			p.utf8Count++
			if p.utf8Count == p.utf8Len {
				events = append(events, textEvent(p.utf8Buf[:p.utf8Len]))
				p.utf8Len, p.utf8Count = 0, 0
			}
			return events
		}
		// The multibyte run broke off. Emit what arrived, then let the
		// current byte classify on its own.
		events = append(events, textEvent(p.utf8Buf[:p.utf8Count]))
		p.utf8Len, p.utf8Count = 0, 0
		return p.normalByte(b, events)
	}

	switch {
	case b == 0x1b:
		p.buf = append(p.buf, b)
		p.state = stateEscape
	case b < 0x20 || b == 0x7f:
		events = append(events, p.literal(b))
	case b < 0x80:
		events = append(events, NewTextEvent(NotDefined, []byte{b}, string(rune(b))))
	default:
		n := utf8SeqLen(b)
		if n == 0 {
			events = append(events, textEvent([]byte{b}))
			return events
		}
		p.utf8Buf[0] = b
		p.utf8Len = n
		p.utf8Count = 1
	}
	return events
}

func (p *Parser) escapeByte(b byte, events []Event) []Event {
	switch b {
	case '[':
		p.buf = append(p.buf, b)
		p.state = stateCSI
	case 'O':
		p.buf = append(p.buf, b)
		p.state = stateSS3
	default:
		p.buf = append(p.buf, b)
		k, m := p.table.Lookup(p.buf)
		switch m {
		case MatchExact:
			events = append(events, NewEvent(k, p.take()))
			p.state = stateNormal
		case MatchPrefix:
			events = p.checkOverflow(events)
		default:
			events = append(events, NewEvent(NotDefined, p.take()))
			p.state = stateNormal
		}
	}
	return events
}

func (p *Parser) csiByte(b byte, events []Event) []Event {
	if b == 0x1b {
		// A fresh escape mid-sequence abandons the current one.
		events = append(events, NewEvent(NotDefined, p.take()))
		p.buf = append(p.buf, 0x1b)
		p.state = stateEscape
		return events
	}
	p.buf = append(p.buf, b)

	if bytes.Equal(p.buf, pasteStart) {
		p.state = statePaste
		return events
	}
	if len(p.buf) == 3 && b == 'M' {
		p.state = stateMouse
		return events
	}
	// SGR mouse reports open with < and terminate on M (press) or m
	// (release).
	if p.buf[2] == '<' {
		if b == 'M' || b == 'm' {
			events = append(events, NewEvent(Vt100MouseEvent, p.take()))
			p.state = stateNormal
			return events
		}
		return p.checkOverflow(events)
	}
	if b == 'R' && isCPR(p.buf) {
		events = append(events, NewEvent(CPRResponse, p.take()))
		p.state = stateNormal
		return events
	}

	k, m := p.table.Lookup(p.buf)
	switch m {
	case MatchExact:
		events = append(events, NewEvent(k, p.take()))
		p.state = stateNormal
		return events
	case MatchPrefix:
		return p.checkOverflow(events)
	}

	switch {
	case isCSIFinal(b):
		params := parseParams(p.buf[2 : len(p.buf)-1])
		events = append(events, NewEvent(DecodeCSI(params, b), p.take()))
		p.state = stateNormal
	case isCSIParam(b) || isCSIIntermediate(b):
		events = p.checkOverflow(events)
	default:
		// Stray control byte ends the sequence unresolved.
		events = append(events, NewEvent(NotDefined, p.take()))
		p.state = stateNormal
	}
	return events
}

func (p *Parser) ss3Byte(b byte, events []Event) []Event {
	if b == 0x1b {
		events = append(events, NewEvent(NotDefined, p.take()))
		p.buf = append(p.buf, 0x1b)
		p.state = stateEscape
		return events
	}
	p.buf = append(p.buf, b)

	// Dialect tables may register ESC O sequences longer than one letter.
	k, m := p.table.Lookup(p.buf)
	switch m {
	case MatchExact:
		events = append(events, NewEvent(k, p.take()))
		p.state = stateNormal
		return events
	case MatchPrefix:
		return p.checkOverflow(events)
	}

	k = NotDefined
	if len(p.buf) == 3 {
		if std, ok := ss3Keys[b]; ok {
			k = std
		}
	}
	events = append(events, NewEvent(k, p.take()))
	p.state = stateNormal
	return events
}

func (p *Parser) mouseByte(b byte, events []Event) []Event {
	p.buf = append(p.buf, b)
	if len(p.buf) == 6 {
		events = append(events, NewEvent(Vt100MouseEvent, p.take()))
		p.state = stateNormal
	}
	return events
}

func (p *Parser) pasteByte(b byte, events []Event) []Event {
	p.buf = append(p.buf, b)
	if bytes.HasSuffix(p.buf, pasteEnd) {
		body := p.buf[len(pasteStart) : len(p.buf)-len(pasteEnd)]
		text := strings.ToValidUTF8(string(body), "�")
		events = append(events, NewTextEvent(BracketedPaste, p.buf, text))
		p.buf = nil
		p.state = stateNormal
	}
	return events
}

// take hands the pending buffer to an event and starts a fresh one.
func (p *Parser) take() []byte {
	raw := p.buf
	p.buf = nil
	return raw
}

func (p *Parser) checkOverflow(events []Event) []Event {
	if len(p.buf) >= maxSequenceLen {
		events = append(events, NewEvent(NotDefined, p.take()))
		p.state = stateNormal
	}
	return events
}

// literal classifies a single byte outside of any sequence.
func (p *Parser) literal(b byte) Event {
	if b < 0x20 || b == 0x7f {
		k, m := p.table.Lookup([]byte{b})
		if m != MatchExact {
			k = NotDefined
		}
		return NewEvent(k, []byte{b})
	}
	if b < 0x80 {
		return NewTextEvent(NotDefined, []byte{b}, string(rune(b)))
	}
	return textEvent([]byte{b})
}

// textEvent builds a printable-text event, decoding the bytes lossily so
// invalid UTF-8 never surfaces as an error.
func textEvent(raw []byte) Event {
	return NewTextEvent(NotDefined, raw, strings.ToValidUTF8(string(raw), "�"))
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

func isCSIParam(b byte) bool        { return b >= 0x30 && b <= 0x3f }
func isCSIIntermediate(b byte) bool { return b >= 0x20 && b <= 0x2f }
func isCSIFinal(b byte) bool        { return b >= 0x40 && b <= 0x7e }

// isCPR reports whether buf is a cursor-position report,
// ESC [ digits ; digits R.
func isCPR(buf []byte) bool {
	body := buf[2 : len(buf)-1]
	semi := bytes.IndexByte(body, ';')
	if semi <= 0 || semi == len(body)-1 {
		return false
	}
	for i, c := range body {
		if i == semi {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func parseParams(body []byte) []int {
	if len(body) == 0 {
		return nil
	}
	parts := strings.Split(string(body), ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			n = 0
		}
		params = append(params, n)
	}
	return params
}
