package key

// Match classifies the result of looking a byte sequence up in a Table.
type Match int

const (
	// MatchNone means the sequence cannot begin any known mapping.
	MatchNone Match = iota

	// MatchPrefix means the sequence is an incomplete start of one or more
	// longer mappings.
	MatchPrefix

	// MatchExact means the sequence maps to a key.
	MatchExact
)

type node struct {
	key      Key
	set      bool
	children map[byte]*node
}

// Table maps escape-sequence byte strings to keys. A freshly constructed
// Table carries the standard VT100/xterm vocabulary; Insert registers
// additional sequences for terminal dialects that encode keys differently.
//
// Fixed sequences live in a byte trie. Parameterized CSI sequences
// (ESC [ p1 ; p2 <final>) that the trie does not name are decoded
// generically by DecodeCSI using the xterm modifier-parameter convention.
type Table struct {
	root *node
}

// NewTable returns a Table loaded with the standard sequences.
func NewTable() *Table {
	t := &Table{root: &node{}}
	t.loadStandard()
	return t
}

// Insert registers a sequence, overwriting any existing mapping. Inserting
// an empty sequence is a no-op.
func (t *Table) Insert(seq []byte, k Key) {
	if len(seq) == 0 {
		return
	}
	cur := t.root
	for _, b := range seq {
		if cur.children == nil {
			cur.children = make(map[byte]*node)
		}
		next, ok := cur.children[b]
		if !ok {
			next = &node{}
			cur.children[b] = next
		}
		cur = next
	}
	cur.key = k
	cur.set = true
}

// Lookup reports whether seq is an exact mapping, a prefix of longer
// mappings, or unknown. A sequence can be exact and still have longer
// continuations; Lookup reports MatchExact in that case (ESC is the
// canonical example).
func (t *Table) Lookup(seq []byte) (Key, Match) {
	if len(seq) == 0 {
		return NotDefined, MatchNone
	}
	cur := t.root
	for _, b := range seq {
		next, ok := cur.children[b]
		if !ok {
			return NotDefined, MatchNone
		}
		cur = next
	}
	if cur.set {
		return cur.key, MatchExact
	}
	return NotDefined, MatchPrefix
}

// LongestMatch finds the longest mapping starting at the beginning of seq,
// returning the key and the number of bytes it consumes.
func (t *Table) LongestMatch(seq []byte) (k Key, n int, ok bool) {
	cur := t.root
	for i, b := range seq {
		next, found := cur.children[b]
		if !found {
			break
		}
		cur = next
		if cur.set {
			k, n, ok = cur.key, i+1, true
		}
	}
	return k, n, ok
}

// loadStandard installs the single-byte control table, the fixed CSI
// sequences, and the dialect alternates (Linux console, rxvt).
func (t *Table) loadStandard() {
	// Control bytes. 0x08, 0x09, 0x0a and 0x0d map to their named keys
	// rather than the Ctrl+letter spelling.
	t.Insert([]byte{0x00}, ControlSpace)
	for b := byte(0x01); b <= 0x1a; b++ {
		t.Insert([]byte{b}, ControlA+Key(b-0x01))
	}
	t.Insert([]byte{0x08}, Backspace)
	t.Insert([]byte{0x09}, Tab)
	t.Insert([]byte{0x0a}, ControlJ)
	t.Insert([]byte{0x0d}, Enter)
	t.Insert([]byte{0x1b}, Escape)
	t.Insert([]byte{0x1c}, ControlBackslash)
	t.Insert([]byte{0x1d}, ControlSquareClose)
	t.Insert([]byte{0x1e}, ControlCircumflex)
	t.Insert([]byte{0x1f}, ControlUnderscore)
	t.Insert([]byte{0x7f}, Backspace)

	// CSI sequences with plain final bytes.
	t.Insert([]byte("\x1b[A"), Up)
	t.Insert([]byte("\x1b[B"), Down)
	t.Insert([]byte("\x1b[C"), Right)
	t.Insert([]byte("\x1b[D"), Left)
	t.Insert([]byte("\x1b[H"), Home)
	t.Insert([]byte("\x1b[F"), End)
	t.Insert([]byte("\x1b[Z"), BackTab)
	t.Insert([]byte("\x1b[E"), Ignore)

	// Modifier-less control-arrow alternates sent by some terminals.
	t.Insert([]byte("\x1b[5A"), ControlUp)
	t.Insert([]byte("\x1b[5B"), ControlDown)
	t.Insert([]byte("\x1b[5C"), ControlRight)
	t.Insert([]byte("\x1b[5D"), ControlLeft)

	// rxvt control arrows.
	t.Insert([]byte("\x1b[Oc"), ControlRight)
	t.Insert([]byte("\x1b[Od"), ControlLeft)

	// Linux console function keys.
	t.Insert([]byte("\x1b[[A"), F1)
	t.Insert([]byte("\x1b[[B"), F2)
	t.Insert([]byte("\x1b[[C"), F3)
	t.Insert([]byte("\x1b[[D"), F4)
	t.Insert([]byte("\x1b[[E"), F5)
}

// ss3Keys maps the letter after ESC O. Arrows appear here for terminals in
// application cursor mode, Home/End for xterm.
var ss3Keys = map[byte]Key{
	'P': F1,
	'Q': F2,
	'R': F3,
	'S': F4,
	'A': Up,
	'B': Down,
	'C': Right,
	'D': Left,
	'H': Home,
	'F': End,
}

// tildeKeys is the standard xterm CSI ~ numeric code table. Codes 200 and
// 201 frame bracketed paste and are handled by the parser before lookup.
var tildeKeys = map[int]Key{
	1:  Home,
	2:  Insert,
	3:  Delete,
	4:  End,
	5:  PageUp,
	6:  PageDown,
	7:  Home,
	8:  End,
	11: F1,
	12: F2,
	13: F3,
	14: F4,
	15: F5,
	17: F6,
	18: F7,
	19: F8,
	20: F9,
	21: F10,
	23: F11,
	24: F12,
	25: F13,
	26: F14,
	28: F15,
	29: F16,
	31: F17,
	32: F18,
	33: F19,
	34: F20,
}

// csiBaseKeys maps plain CSI final letters to their unmodified keys for the
// generic parameterized decode. P through S cover xterm's CSI 1;mP encoding
// of modified F1-F4.
var csiBaseKeys = map[byte]Key{
	'A': Up,
	'B': Down,
	'C': Right,
	'D': Left,
	'H': Home,
	'F': End,
	'Z': BackTab,
	'P': F1,
	'Q': F2,
	'R': F3,
	'S': F4,
}

type modKey struct {
	base Key
	mods Modifier
}

var modifiedKeys = map[modKey]Key{
	{Up, ModShift}:                  ShiftUp,
	{Down, ModShift}:                ShiftDown,
	{Right, ModShift}:               ShiftRight,
	{Left, ModShift}:                ShiftLeft,
	{Up, ModControl}:                ControlUp,
	{Down, ModControl}:              ControlDown,
	{Right, ModControl}:             ControlRight,
	{Left, ModControl}:              ControlLeft,
	{Up, ModAlt}:                    AltUp,
	{Down, ModAlt}:                  AltDown,
	{Right, ModAlt}:                 AltRight,
	{Left, ModAlt}:                  AltLeft,
	{Up, ModControl | ModShift}:     ControlShiftUp,
	{Down, ModControl | ModShift}:   ControlShiftDown,
	{Right, ModControl | ModShift}:  ControlShiftRight,
	{Left, ModControl | ModShift}:   ControlShiftLeft,
	{Home, ModShift}:                ShiftHome,
	{Home, ModControl}:              ControlHome,
	{End, ModShift}:                 ShiftEnd,
	{End, ModControl}:               ControlEnd,
	{Delete, ModShift}:              ShiftDelete,
	{Delete, ModControl}:            ControlDelete,
}

func init() {
	// Shift+Fn encodes as F(n+12) for the first twelve function keys.
	for n := 0; n < 12; n++ {
		modifiedKeys[modKey{F1 + Key(n), ModShift}] = F13 + Key(n)
	}
}

// modifiedKey resolves a base key plus decoded modifiers to its baked
// variant. Combinations outside the vocabulary fall back to NotDefined,
// never to an error.
func modifiedKey(base Key, mods Modifier) Key {
	if mods == ModNone {
		return base
	}
	if k, ok := modifiedKeys[modKey{base, mods}]; ok {
		return k
	}
	return NotDefined
}

// DecodeCSI decodes a parameterized CSI sequence from its numeric
// parameters and final byte. The second parameter, when present, carries
// the xterm modifier mask (value - 1). Sequences outside the vocabulary
// decode to NotDefined.
func DecodeCSI(params []int, final byte) Key {
	var mods Modifier
	if len(params) >= 2 {
		mods = DecodeParam(params[1])
	}

	if final == '~' {
		if len(params) == 0 {
			return NotDefined
		}
		base, ok := tildeKeys[params[0]]
		if !ok {
			return NotDefined
		}
		return modifiedKey(base, mods)
	}

	base, ok := csiBaseKeys[final]
	if !ok {
		return NotDefined
	}
	return modifiedKey(base, mods)
}
