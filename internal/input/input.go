// Package input defines mouse and keyboard simulation.
package input

import (
	"fmt"
	"strings"
	"time"

	"github.com/uiprobe/uiprobe/internal/ui"
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ParseButton converts a flag value to a Button.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	default:
		return ButtonLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Point is a screen position.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Simulator posts synthetic input events. Implementations must run on
// the UI context (hence the token) and must never move the pointer
// implicitly before a click: a click lands wherever the caller says,
// with the pointer left where it was.
type Simulator interface {
	Move(tok ui.Token, p Point) error
	Click(tok ui.Token, p Point) error
	DoubleClick(tok ui.Token, p Point) error
	RightClick(tok ui.Token, p Point) error
	MouseDown(tok ui.Token, p Point, button Button) error
	MouseUp(tok ui.Token, p Point, button Button) error
	Drag(tok ui.Token, from, to Point, button Button, duration time.Duration) error
	KeyDown(tok ui.Token, code uint16, modifiers []string) error
	KeyUp(tok ui.Token, code uint16, modifiers []string) error
	TypeText(tok ui.Token, text string) error
}

// OpKind discriminates the Op union.
type OpKind string

const (
	OpMove        OpKind = "move"
	OpClick       OpKind = "click"
	OpDoubleClick OpKind = "double_click"
	OpRightClick  OpKind = "right_click"
	OpDrag        OpKind = "drag"
	OpKeyPress    OpKind = "key_press"
	OpTypeText    OpKind = "type_text"
)

// Op is one self-contained input operation, the unit the orchestrator
// executes as a primary action.
type Op struct {
	Kind      OpKind        `yaml:"kind"                json:"kind"`
	Point     Point         `yaml:"point,omitempty"     json:"point,omitempty"`
	To        Point         `yaml:"to,omitempty"        json:"to,omitempty"`
	Button    Button        `yaml:"button,omitempty"    json:"button,omitempty"`
	KeyCode   uint16        `yaml:"key_code,omitempty"  json:"key_code,omitempty"`
	Modifiers []string      `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Text      string        `yaml:"text,omitempty"      json:"text,omitempty"`
	Duration  time.Duration `yaml:"duration,omitempty"  json:"duration,omitempty"`
}

// Perform executes one operation on a simulator. A key press is a
// down/up pair with the same modifiers.
func Perform(sim Simulator, tok ui.Token, op Op) error {
	switch op.Kind {
	case OpMove:
		return sim.Move(tok, op.Point)
	case OpClick:
		return sim.Click(tok, op.Point)
	case OpDoubleClick:
		return sim.DoubleClick(tok, op.Point)
	case OpRightClick:
		return sim.RightClick(tok, op.Point)
	case OpDrag:
		return sim.Drag(tok, op.Point, op.To, op.Button, op.Duration)
	case OpKeyPress:
		if err := sim.KeyDown(tok, op.KeyCode, op.Modifiers); err != nil {
			return err
		}
		return sim.KeyUp(tok, op.KeyCode, op.Modifiers)
	case OpTypeText:
		return sim.TypeText(tok, op.Text)
	default:
		return fmt.Errorf("unknown input operation: %q", op.Kind)
	}
}
