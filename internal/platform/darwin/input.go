//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#include <unistd.h>

// Post a single mouse button transition at the given point. The pointer
// is never moved first: events land where the caller says.
// button: 0=left, 1=right, 2=middle; down: 1=press, 0=release.
static int cg_mouse_button(double x, double y, int button, int down, int clickState) {
    CGPoint point = CGPointMake(x, y);
    CGMouseButton cgButton;
    CGEventType type;
    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
        default:
            cgButton = kCGMouseButtonLeft;
            type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
    }
    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, point, cgButton);
    if (!ev) return -1;
    CGEventSetIntegerValueField(ev, kCGMouseEventClickState, clickState);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_move_mouse(double x, double y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

static int cg_key(CGKeyCode keyCode, CGEventFlags modifiers, int down) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, keyCode, down != 0);
    if (!ev) return -1;
    CGEventSetFlags(ev, modifiers);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static void cg_type_char(UniChar ch) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(keyDown, 1, &ch);
    CGEventKeyboardSetUnicodeString(keyUp, 1, &ch);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

// Drag with interpolated dragged events between the endpoints.
// button: 0=left, 1=right, 2=middle.
static int cg_drag(double fromX, double fromY, double toX, double toY, int button, int duration_ms) {
    CGMouseButton cgButton = button == 1 ? kCGMouseButtonRight
                           : button == 2 ? kCGMouseButtonCenter
                           : kCGMouseButtonLeft;
    CGEventType downType = button == 1 ? kCGEventRightMouseDown
                         : button == 2 ? kCGEventOtherMouseDown
                         : kCGEventLeftMouseDown;
    CGEventType dragType = button == 1 ? kCGEventRightMouseDragged
                         : button == 2 ? kCGEventOtherMouseDragged
                         : kCGEventLeftMouseDragged;
    CGEventType upType = button == 1 ? kCGEventRightMouseUp
                       : button == 2 ? kCGEventOtherMouseUp
                       : kCGEventLeftMouseUp;

    CGPoint start = CGPointMake(fromX, fromY);
    CGPoint end = CGPointMake(toX, toY);

    CGEventRef down = CGEventCreateMouseEvent(NULL, downType, start, cgButton);
    if (!down) return -1;
    CGEventPost(kCGHIDEventTap, down);
    CFRelease(down);

    int steps = 20;
    if (duration_ms <= 0) duration_ms = 100;
    int delay_per_step = (duration_ms * 1000) / steps;

    for (int i = 1; i <= steps; i++) {
        double t = (double)i / (double)steps;
        CGPoint pt = CGPointMake(fromX + (toX - fromX) * t, fromY + (toY - fromY) * t);
        CGEventRef drag = CGEventCreateMouseEvent(NULL, dragType, pt, cgButton);
        if (!drag) {
            CGEventRef upErr = CGEventCreateMouseEvent(NULL, upType, pt, cgButton);
            if (upErr) {
                CGEventPost(kCGHIDEventTap, upErr);
                CFRelease(upErr);
            }
            return -1;
        }
        CGEventPost(kCGHIDEventTap, drag);
        CFRelease(drag);
        usleep(delay_per_step);
    }

    CGEventRef up = CGEventCreateMouseEvent(NULL, upType, end, cgButton);
    if (!up) return -1;
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(up);
    return 0;
}
*/
import "C"
import (
	"time"

	"github.com/pkg/errors"
	"github.com/uiprobe/uiprobe/internal/input"
	"github.com/uiprobe/uiprobe/internal/ui"
)

// Simulator implements input.Simulator using CGEvent posting.
type Simulator struct{}

// NewSimulator creates the macOS input simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

var modifierFlags = map[string]uint64{
	"cmd":   uint64(C.kCGEventFlagMaskCommand),
	"shift": uint64(C.kCGEventFlagMaskShift),
	"ctrl":  uint64(C.kCGEventFlagMaskControl),
	"alt":   uint64(C.kCGEventFlagMaskAlternate),
}

func flags(modifiers []string) C.CGEventFlags {
	var f uint64
	for _, m := range modifiers {
		f |= modifierFlags[m]
	}
	return C.CGEventFlags(f)
}

func cButton(b input.Button) C.int {
	switch b {
	case input.ButtonRight:
		return 1
	case input.ButtonMiddle:
		return 2
	default:
		return 0
	}
}

func (s *Simulator) Move(_ ui.Token, p input.Point) error {
	if C.cg_move_mouse(C.double(p.X), C.double(p.Y)) != 0 {
		return errors.Errorf("failed to move mouse to (%g, %g)", p.X, p.Y)
	}
	return nil
}

func (s *Simulator) click(p input.Point, button input.Button, count int) error {
	for i := 1; i <= count; i++ {
		if C.cg_mouse_button(C.double(p.X), C.double(p.Y), cButton(button), 1, C.int(i)) != 0 ||
			C.cg_mouse_button(C.double(p.X), C.double(p.Y), cButton(button), 0, C.int(i)) != 0 {
			return errors.Errorf("failed to click at (%g, %g)", p.X, p.Y)
		}
	}
	return nil
}

func (s *Simulator) Click(_ ui.Token, p input.Point) error {
	return s.click(p, input.ButtonLeft, 1)
}

func (s *Simulator) DoubleClick(_ ui.Token, p input.Point) error {
	return s.click(p, input.ButtonLeft, 2)
}

func (s *Simulator) RightClick(_ ui.Token, p input.Point) error {
	return s.click(p, input.ButtonRight, 1)
}

func (s *Simulator) MouseDown(_ ui.Token, p input.Point, button input.Button) error {
	if C.cg_mouse_button(C.double(p.X), C.double(p.Y), cButton(button), 1, 1) != 0 {
		return errors.Errorf("failed to press mouse at (%g, %g)", p.X, p.Y)
	}
	return nil
}

func (s *Simulator) MouseUp(_ ui.Token, p input.Point, button input.Button) error {
	if C.cg_mouse_button(C.double(p.X), C.double(p.Y), cButton(button), 0, 1) != 0 {
		return errors.Errorf("failed to release mouse at (%g, %g)", p.X, p.Y)
	}
	return nil
}

func (s *Simulator) Drag(_ ui.Token, from, to input.Point, button input.Button, duration time.Duration) error {
	rc := C.cg_drag(C.double(from.X), C.double(from.Y), C.double(to.X), C.double(to.Y),
		cButton(button), C.int(duration.Milliseconds()))
	if rc != 0 {
		return errors.Errorf("failed to drag from (%g,%g) to (%g,%g)", from.X, from.Y, to.X, to.Y)
	}
	return nil
}

func (s *Simulator) KeyDown(_ ui.Token, code uint16, modifiers []string) error {
	if C.cg_key(C.CGKeyCode(code), flags(modifiers), 1) != 0 {
		return errors.Errorf("failed to press key %d", code)
	}
	return nil
}

func (s *Simulator) KeyUp(_ ui.Token, code uint16, modifiers []string) error {
	if C.cg_key(C.CGKeyCode(code), flags(modifiers), 0) != 0 {
		return errors.Errorf("failed to release key %d", code)
	}
	return nil
}

func (s *Simulator) TypeText(_ ui.Token, text string) error {
	for _, ch := range text {
		C.cg_type_char(C.UniChar(ch))
	}
	return nil
}
