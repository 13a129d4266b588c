package input

import "testing"

func TestParseKeyCombo(t *testing.T) {
	tests := []struct {
		combo     string
		code      uint16
		modifiers []string
	}{
		{"s", 0x01, nil},
		{"enter", 0x24, nil},
		{"cmd+s", 0x01, []string{"cmd"}},
		{"cmd+shift+s", 0x01, []string{"cmd", "shift"}},
		{"Cmd+Shift+S", 0x01, []string{"cmd", "shift"}},
		{"option+left", 0x7B, []string{"alt"}},
		{"ctrl+c", 0x08, []string{"ctrl"}},
	}
	for _, tt := range tests {
		code, modifiers, err := ParseKeyCombo(tt.combo)
		if err != nil {
			t.Fatalf("ParseKeyCombo(%q): %v", tt.combo, err)
		}
		if code != tt.code {
			t.Fatalf("ParseKeyCombo(%q) code = %#x, want %#x", tt.combo, code, tt.code)
		}
		if len(modifiers) != len(tt.modifiers) {
			t.Fatalf("ParseKeyCombo(%q) modifiers = %v, want %v", tt.combo, modifiers, tt.modifiers)
		}
		for i := range modifiers {
			if modifiers[i] != tt.modifiers[i] {
				t.Fatalf("ParseKeyCombo(%q) modifiers = %v, want %v", tt.combo, modifiers, tt.modifiers)
			}
		}
	}
}

func TestParseKeyCombo_Errors(t *testing.T) {
	if _, _, err := ParseKeyCombo("cmd+bogus"); err == nil {
		t.Fatal("unknown key accepted")
	}
	if _, _, err := ParseKeyCombo("cmd+shift"); err == nil {
		t.Fatal("modifier-only combo accepted")
	}
}

func TestParseButton(t *testing.T) {
	for s, want := range map[string]Button{
		"":       ButtonLeft,
		"left":   ButtonLeft,
		"Right":  ButtonRight,
		"middle": ButtonMiddle,
	} {
		got, err := ParseButton(s)
		if err != nil {
			t.Fatalf("ParseButton(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseButton(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseButton("fourth"); err == nil {
		t.Fatal("unknown button accepted")
	}
}
