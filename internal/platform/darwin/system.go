//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <dlfcn.h>
#include <stdlib.h>

typedef struct {
    int   pid;
    char  name[256];
    char  bundleID[256];
    int   foreground; // NSApplicationActivationPolicyRegular
    int   frontmost;
} RunningApp;

static int ns_running_apps(RunningApp **out, int *count) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        int n = (int)apps.count;
        RunningApp *list = calloc(n > 0 ? n : 1, sizeof(RunningApp));
        int kept = 0;
        for (NSRunningApplication *app in apps) {
            RunningApp *ra = &list[kept];
            ra->pid = app.processIdentifier;
            const char *name = app.localizedName.UTF8String;
            if (name) strlcpy(ra->name, name, sizeof(ra->name));
            const char *bid = app.bundleIdentifier.UTF8String;
            if (bid) strlcpy(ra->bundleID, bid, sizeof(ra->bundleID));
            ra->foreground = app.activationPolicy == NSApplicationActivationPolicyRegular;
            ra->frontmost = app.active;
            kept++;
        }
        *out = list;
        *count = kept;
        return 0;
    }
}

static int ns_activate(int pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
        if (!app) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
    }
}

static int ns_frontmost_pid() {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? app.processIdentifier : 0;
    }
}

// _AXUIElementGetWindow is private API, absent on some OS versions. It is
// resolved once at startup; every caller must be fully correct when it is
// missing.
typedef AXError (*GetWindowFunc)(AXUIElementRef, CGWindowID *);
static GetWindowFunc get_window_fn = NULL;

static void resolve_get_window(void) {
    get_window_fn = (GetWindowFunc)dlsym(RTLD_DEFAULT, "_AXUIElementGetWindow");
}

static int ax_native_window_id(AXUIElementRef el, unsigned int *out) {
    if (!get_window_fn) return -1;
    CGWindowID wid = 0;
    if (get_window_fn(el, &wid) != kAXErrorSuccess) return -1;
    *out = (unsigned int)wid;
    return 0;
}

// ax_window_info reads position/size/title/minimized/main/focused in one
// batch via AXUIElementCopyMultipleAttributeValues. Candidate windows can
// vanish between individual reads; one round trip keeps the values
// mutually consistent.
static int ax_window_info(AXUIElementRef el,
        double *x, double *y, double *w, double *h,
        char *title, int titleLen,
        int *minimized, int *mainWin, int *focused) {
    CFStringRef attrs[6] = {
        kAXPositionAttribute, kAXSizeAttribute, kAXTitleAttribute,
        kAXMinimizedAttribute, kAXMainAttribute, kAXFocusedAttribute,
    };
    CFArrayRef names = CFArrayCreate(kCFAllocatorDefault, (const void **)attrs, 6, &kCFTypeArrayCallBacks);
    CFArrayRef values = NULL;
    AXError err = AXUIElementCopyMultipleAttributeValues(el, names, 0, &values);
    CFRelease(names);
    if (err != kAXErrorSuccess || !values) return err ? err : -1;

    title[0] = 0;
    *minimized = 0; *mainWin = 0; *focused = 0;
    int havePos = 0, haveSize = 0;

    for (CFIndex i = 0; i < CFArrayGetCount(values) && i < 6; i++) {
        CFTypeRef v = CFArrayGetValueAtIndex(values, i);
        switch (i) {
        case 0: {
            CGPoint p;
            if (AXValueGetValue((AXValueRef)v, kAXValueTypeCGPoint, &p)) {
                *x = p.x; *y = p.y; havePos = 1;
            }
            break;
        }
        case 1: {
            CGSize s;
            if (AXValueGetValue((AXValueRef)v, kAXValueTypeCGSize, &s)) {
                *w = s.width; *h = s.height; haveSize = 1;
            }
            break;
        }
        case 2:
            if (CFGetTypeID(v) == CFStringGetTypeID())
                CFStringGetCString((CFStringRef)v, title, titleLen, kCFStringEncodingUTF8);
            break;
        case 3:
            if (CFGetTypeID(v) == CFBooleanGetTypeID())
                *minimized = CFBooleanGetValue((CFBooleanRef)v);
            break;
        case 4:
            if (CFGetTypeID(v) == CFBooleanGetTypeID())
                *mainWin = CFBooleanGetValue((CFBooleanRef)v);
            break;
        case 5:
            if (CFGetTypeID(v) == CFBooleanGetTypeID())
                *focused = CFBooleanGetValue((CFBooleanRef)v);
            break;
        }
    }
    CFRelease(values);
    return (havePos && haveSize) ? 0 : -1;
}
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/uiprobe/uiprobe/internal/ax"
)

func init() {
	C.resolve_get_window()
}

// System implements ax.System on macOS.
type System struct{}

// NewSystem creates the macOS accessibility system.
func NewSystem() *System {
	return &System{}
}

func (s *System) Trusted(prompt bool) bool {
	return IsTrusted(prompt)
}

func (s *System) ApplicationElement(pid int) ax.Element {
	return appElement(pid)
}

func (s *System) RunningApplication(pid int) (ax.AppInfo, bool) {
	for _, app := range s.RunningApplications() {
		if app.PID == pid {
			return app, true
		}
	}
	return ax.AppInfo{}, false
}

func (s *System) RunningApplications() []ax.AppInfo {
	var cApps *C.RunningApp
	var cCount C.int
	if C.ns_running_apps(&cApps, &cCount) != 0 {
		return nil
	}
	defer C.free(unsafe.Pointer(cApps))

	n := int(cCount)
	apps := make([]ax.AppInfo, 0, n)
	for _, ca := range unsafe.Slice(cApps, n) {
		apps = append(apps, ax.AppInfo{
			PID:        int(ca.pid),
			Name:       C.GoString(&ca.name[0]),
			BundleID:   C.GoString(&ca.bundleID[0]),
			Foreground: ca.foreground != 0,
			Frontmost:  ca.frontmost != 0,
		})
	}
	return apps
}

func (s *System) ActivateApplication(pid int) error {
	if C.ns_activate(C.int(pid)) != 0 {
		return errors.Errorf("failed to activate app with pid %d", pid)
	}
	return nil
}

func (s *System) FrontmostPID() int {
	return int(C.ns_frontmost_pid())
}

func (s *System) NativeWindowID(el ax.Element) (uint32, bool) {
	e, ok := el.(*element)
	if !ok {
		return 0, false
	}
	var wid C.uint
	if C.ax_native_window_id(e.ref, &wid) != 0 {
		return 0, false
	}
	return uint32(wid), true
}

func (s *System) WindowInfo(el ax.Element) (ax.WindowInfo, error) {
	e, ok := el.(*element)
	if !ok {
		return ax.WindowInfo{}, errors.New("foreign element handle")
	}
	var x, y, w, h C.double
	var minimized, mainWin, focused C.int
	title := (*C.char)(C.malloc(stringBufLen))
	defer C.free(unsafe.Pointer(title))

	if rc := C.ax_window_info(e.ref, &x, &y, &w, &h, title, stringBufLen, &minimized, &mainWin, &focused); rc != 0 {
		return ax.WindowInfo{}, errors.Wrapf(ax.ErrAttributeUnavailable, "window info (ax error %d)", int(rc))
	}
	return ax.WindowInfo{
		Position:  ax.Point{X: float64(x), Y: float64(y)},
		Size:      ax.Size{Width: float64(w), Height: float64(h)},
		Title:     C.GoString(title),
		Minimized: minimized != 0,
		Main:      mainWin != 0,
		Focused:   focused != 0,
	}, nil
}
