package input

import (
	"fmt"
	"testing"
	"time"

	"github.com/uiprobe/uiprobe/internal/ui"
)

// recorder logs every simulated event as a formatted string.
type recorder struct {
	events []string
}

func (r *recorder) log(format string, args ...interface{}) error {
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return nil
}

func (r *recorder) Move(_ ui.Token, p Point) error        { return r.log("move %v,%v", p.X, p.Y) }
func (r *recorder) Click(_ ui.Token, p Point) error       { return r.log("click %v,%v", p.X, p.Y) }
func (r *recorder) DoubleClick(_ ui.Token, p Point) error { return r.log("double %v,%v", p.X, p.Y) }
func (r *recorder) RightClick(_ ui.Token, p Point) error  { return r.log("right %v,%v", p.X, p.Y) }
func (r *recorder) MouseDown(_ ui.Token, p Point, b Button) error {
	return r.log("down %v,%v %d", p.X, p.Y, b)
}
func (r *recorder) MouseUp(_ ui.Token, p Point, b Button) error {
	return r.log("up %v,%v %d", p.X, p.Y, b)
}
func (r *recorder) Drag(_ ui.Token, from, to Point, b Button, d time.Duration) error {
	return r.log("drag %v,%v->%v,%v", from.X, from.Y, to.X, to.Y)
}
func (r *recorder) KeyDown(_ ui.Token, code uint16, mods []string) error {
	return r.log("keydown %#x %v", code, mods)
}
func (r *recorder) KeyUp(_ ui.Token, code uint16, mods []string) error {
	return r.log("keyup %#x %v", code, mods)
}
func (r *recorder) TypeText(_ ui.Token, text string) error { return r.log("type %q", text) }

func TestPerform_KeyPressIsDownUpPair(t *testing.T) {
	rec := &recorder{}
	op := Op{Kind: OpKeyPress, KeyCode: 0x01, Modifiers: []string{"cmd"}}
	if err := Perform(rec, ui.Init(), op); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 2 {
		t.Fatalf("events = %v", rec.events)
	}
	if rec.events[0] != "keydown 0x1 [cmd]" || rec.events[1] != "keyup 0x1 [cmd]" {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestPerform_DispatchesByKind(t *testing.T) {
	rec := &recorder{}
	tok := ui.Init()
	ops := []Op{
		{Kind: OpMove, Point: Point{X: 1, Y: 2}},
		{Kind: OpClick, Point: Point{X: 3, Y: 4}},
		{Kind: OpDrag, Point: Point{X: 1, Y: 1}, To: Point{X: 9, Y: 9}},
		{Kind: OpTypeText, Text: "hi"},
	}
	for _, op := range ops {
		if err := Perform(rec, tok, op); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"move 1,2", "click 3,4", "drag 1,1->9,9", `type "hi"`}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", rec.events, want)
		}
	}
}

func TestPerform_UnknownKind(t *testing.T) {
	if err := Perform(&recorder{}, ui.Init(), Op{Kind: "hover"}); err == nil {
		t.Fatal("unknown op kind accepted")
	}
}
