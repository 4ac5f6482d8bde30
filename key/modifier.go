package key

import "strings"

// Modifier is a bitset of modifier keys as encoded in CSI parameters.
// It is used while decoding sequences; decoded events carry the modifier
// baked into the Key variant instead.
type Modifier uint8

const (
	// ModShift through ModMeta follow the xterm modifier parameter
	// convention: parameter value = mask + 1.
	ModShift Modifier = 1 << iota
	ModAlt
	ModControl
	ModMeta

	// ModNone indicates no modifiers.
	ModNone Modifier = 0
)

// DecodeParam decodes a CSI modifier parameter value into a Modifier bitset.
// Values of 1 or less mean no modifiers; unknown high bits are masked off.
func DecodeParam(v int) Modifier {
	if v <= 1 {
		return ModNone
	}
	return Modifier(v-1) & (ModShift | ModAlt | ModControl | ModMeta)
}

// Has returns true if m contains the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is set.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasAlt returns true if Alt is set.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasControl returns true if Control is set.
func (m Modifier) HasControl() bool { return m.Has(ModControl) }

// HasMeta returns true if Meta is set.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns a new Modifier with the given modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasControl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}
