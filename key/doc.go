// Package key decodes raw terminal input bytes into typed key events.
//
// The package has three layers:
//
//   - Key: a closed vocabulary of key identities, including modifier-qualified
//     variants (ShiftUp, ControlDelete, ...) and report keys such as
//     BracketedPaste and CPRResponse
//   - Table: the escape-sequence lookup mapping byte sequences and CSI
//     parameter shapes to keys
//   - Parser: the streaming state machine that buffers partial sequences
//     across Feed calls and resolves them into Event values
//
// # Streaming model
//
// The parser never blocks and never fails. Feed appends bytes and returns
// every event that became unambiguous; a partial escape sequence simply stays
// buffered until more bytes arrive. Because a lone ESC byte is both a complete
// Escape keypress and the start of every escape sequence, the parser cannot
// resolve it on its own: the caller decides when input has gone idle and calls
// Flush, which resolves buffered state in favor of "these were separate
// keypresses". Reset discards buffered state without producing events.
//
// Each Parser is a plain mutable value owned by a single caller. Applications
// reading from several terminals need one Parser per input source.
package key
