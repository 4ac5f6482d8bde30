package key

import (
	"strings"
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{NotDefined, "NotDefined"},
		{Ignore, "Ignore"},
		{Escape, "Escape"},
		{ControlA, "Ctrl+A"},
		{ControlC, "Ctrl+C"},
		{ControlZ, "Ctrl+Z"},
		{ControlSpace, "Ctrl+Space"},
		{ControlUnderscore, "Ctrl+_"},
		{Tab, "Tab"},
		{BackTab, "BackTab"},
		{Enter, "Enter"},
		{Backspace, "Backspace"},
		{Up, "Up"},
		{ShiftUp, "Shift+Up"},
		{ControlRight, "Ctrl+Right"},
		{AltLeft, "Alt+Left"},
		{ControlShiftDown, "Ctrl+Shift+Down"},
		{Home, "Home"},
		{ControlEnd, "Ctrl+End"},
		{PageDown, "PageDown"},
		{F1, "F1"},
		{F12, "F12"},
		{F24, "F24"},
		{BracketedPaste, "BracketedPaste"},
		{CPRResponse, "CPRResponse"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyStringTotal(t *testing.T) {
	// Every key in the vocabulary must have a real name.
	for k := NotDefined; k < numKeys; k++ {
		if got := k.String(); got == "" || strings.HasPrefix(got, "Key(") {
			t.Errorf("Key(%d).String() = %q, want a named key", uint16(k), got)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Key
		wantOK bool
	}{
		{"Escape", Escape, true},
		{"esc", Escape, true},
		{"enter", Enter, true},
		{"return", Enter, true},
		{"ctrl+c", ControlC, true},
		{"Ctrl+Shift+Up", ControlShiftUp, true},
		{"shift+tab", BackTab, true},
		{"backtab", BackTab, true},
		{"pgup", PageUp, true},
		{"f5", F5, true},
		{"F24", F24, true},
		{"  home  ", Home, true},
		{"hyper+q", NotDefined, false},
		{"", NotDefined, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("FromName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromNameRoundTrip(t *testing.T) {
	for k := NotDefined; k < numKeys; k++ {
		got, ok := FromName(k.String())
		if !ok {
			t.Errorf("FromName(%q) not recognized", k.String())
			continue
		}
		if got != k {
			t.Errorf("FromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestKeyPredicates(t *testing.T) {
	tests := []struct {
		key        Key
		control    bool
		navigation bool
		function   bool
		report     bool
	}{
		{NotDefined, false, false, false, false},
		{Escape, true, false, false, false},
		{ControlC, true, false, false, false},
		{Tab, true, false, false, false},
		{Backspace, true, false, false, false},
		{Up, false, true, false, false},
		{ControlShiftLeft, false, true, false, false},
		{PageUp, false, true, false, false},
		{ControlDelete, false, true, false, false},
		{F1, false, false, true, false},
		{F24, false, false, true, false},
		{BracketedPaste, false, false, false, true},
		{Vt100MouseEvent, false, false, false, true},
		{CPRResponse, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsControl(); got != tt.control {
				t.Errorf("IsControl() = %v, want %v", got, tt.control)
			}
			if got := tt.key.IsNavigation(); got != tt.navigation {
				t.Errorf("IsNavigation() = %v, want %v", got, tt.navigation)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsReport(); got != tt.report {
				t.Errorf("IsReport() = %v, want %v", got, tt.report)
			}
		})
	}
}
