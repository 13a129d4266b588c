package input

import (
	"fmt"
	"strings"
)

// keyCodeMap holds macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "escape": 0x35, "esc": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

var modifierNames = map[string]string{
	"cmd": "cmd", "command": "cmd",
	"shift": "shift",
	"ctrl":  "ctrl", "control": "ctrl",
	"alt": "alt", "opt": "alt", "option": "alt",
}

// ParseKeyCombo parses a "+"-separated combo like "cmd+shift+s" into a
// key code and canonical modifier names.
func ParseKeyCombo(combo string) (code uint16, modifiers []string, err error) {
	found := false
	for _, part := range strings.Split(combo, "+") {
		k := strings.ToLower(strings.TrimSpace(part))
		if mod, ok := modifierNames[k]; ok {
			modifiers = append(modifiers, mod)
			continue
		}
		c, ok := keyCodeMap[k]
		if !ok {
			return 0, nil, fmt.Errorf("unknown key: %q", k)
		}
		code = c
		found = true
	}
	if !found {
		return 0, nil, fmt.Errorf("no key specified in combo %q, only modifiers", combo)
	}
	return code, modifiers, nil
}
