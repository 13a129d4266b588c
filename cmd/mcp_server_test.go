package cmd

import (
	"testing"

	"github.com/uiprobe/uiprobe/internal/input"
)

func TestInputOpFromParams(t *testing.T) {
	op, err := inputOpFromParams(map[string]interface{}{"click": "420,315"})
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != input.OpClick || op.Point.X != 420 || op.Point.Y != 315 {
		t.Fatalf("op = %+v", op)
	}

	op, err = inputOpFromParams(map[string]interface{}{"key": "cmd+shift+s"})
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != input.OpKeyPress || op.KeyCode != 0x01 || len(op.Modifiers) != 2 {
		t.Fatalf("op = %+v", op)
	}

	op, err = inputOpFromParams(map[string]interface{}{"type": "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != input.OpTypeText || op.Text != "hello" {
		t.Fatalf("op = %+v", op)
	}
}

func TestInputOpFromParams_NoAction(t *testing.T) {
	op, err := inputOpFromParams(map[string]interface{}{"app": "Safari"})
	if err != nil {
		t.Fatal(err)
	}
	if op != nil {
		t.Fatalf("op = %+v, want nil for pure observation", op)
	}
}

func TestInputOpFromParams_Conflicts(t *testing.T) {
	if _, err := inputOpFromParams(map[string]interface{}{"click": "1,2", "type": "x"}); err == nil {
		t.Fatal("two actions accepted")
	}
	if _, err := inputOpFromParams(map[string]interface{}{"click": "nonsense"}); err == nil {
		t.Fatal("malformed point accepted")
	}
	if _, err := inputOpFromParams(map[string]interface{}{"key": "bogus"}); err == nil {
		t.Fatal("unknown key accepted")
	}
}
