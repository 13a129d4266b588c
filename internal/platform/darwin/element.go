//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>

// Each helper returns 0 on success, nonzero AXError otherwise. Reads are
// strictly best-effort: the element may be gone by the time we ask.

static int ax_copy_string(AXUIElementRef el, CFStringRef attr, char *buf, int bufLen) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    if (CFGetTypeID(value) != CFStringGetTypeID()) {
        // Numbers and other scalars still stringify usefully.
        CFStringRef desc = CFCopyDescription(value);
        CFRelease(value);
        value = desc;
    }
    Boolean ok = CFStringGetCString((CFStringRef)value, buf, bufLen, kCFStringEncodingUTF8);
    CFRelease(value);
    return ok ? 0 : -1;
}

static int ax_copy_bool(AXUIElementRef el, CFStringRef attr, int *out) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    if (CFGetTypeID(value) != CFBooleanGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    *out = CFBooleanGetValue((CFBooleanRef)value);
    CFRelease(value);
    return 0;
}

static int ax_copy_point(AXUIElementRef el, CFStringRef attr, double *x, double *y) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    CGPoint p;
    Boolean ok = AXValueGetValue((AXValueRef)value, kAXValueTypeCGPoint, &p);
    CFRelease(value);
    if (!ok) return -1;
    *x = p.x;
    *y = p.y;
    return 0;
}

static int ax_copy_size(AXUIElementRef el, CFStringRef attr, double *w, double *h) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    CGSize s;
    Boolean ok = AXValueGetValue((AXValueRef)value, kAXValueTypeCGSize, &s);
    CFRelease(value);
    if (!ok) return -1;
    *w = s.width;
    *h = s.height;
    return 0;
}

static int ax_copy_element(AXUIElementRef el, CFStringRef attr, AXUIElementRef *out) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    if (CFGetTypeID(value) != AXUIElementGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    *out = (AXUIElementRef)value; // retained, caller releases
    return 0;
}

// ax_copy_elements returns a malloc'd array of retained AXUIElementRefs.
static int ax_copy_elements(AXUIElementRef el, CFStringRef attr, AXUIElementRef **out, int *count) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex n = CFArrayGetCount(arr);
    AXUIElementRef *refs = malloc(sizeof(AXUIElementRef) * (n > 0 ? n : 1));
    int kept = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFTypeRef item = CFArrayGetValueAtIndex(arr, i);
        if (CFGetTypeID(item) != AXUIElementGetTypeID()) continue;
        refs[kept++] = (AXUIElementRef)CFRetain(item);
    }
    CFRelease(arr);
    *out = refs;
    *count = kept;
    return 0;
}

static CFStringRef make_cfstring(const char *s) {
    return CFStringCreateWithCString(kCFAllocatorDefault, s, kCFStringEncodingUTF8);
}

static unsigned long ax_hash(AXUIElementRef el) {
    return (unsigned long)CFHash(el);
}

static void ax_release(AXUIElementRef el) {
    CFRelease(el);
}

static AXUIElementRef ax_app_element(int pid) {
    return AXUIElementCreateApplication((pid_t)pid);
}
*/
import "C"
import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/uiprobe/uiprobe/internal/ax"
)

const stringBufLen = 4096

func cfString(s string) C.CFStringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C.make_cfstring(cs)
}

// element wraps a retained AXUIElementRef. The wrapper owns exactly one
// retain, released by the finalizer; the underlying UI node's lifetime
// is the OS's business entirely.
type element struct {
	ref C.AXUIElementRef
}

func wrapElement(ref C.AXUIElementRef) *element {
	el := &element{ref: ref}
	runtime.SetFinalizer(el, func(e *element) {
		C.ax_release(e.ref)
	})
	return el
}

func appElement(pid int) *element {
	return wrapElement(C.ax_app_element(C.int(pid)))
}

// Identity uses CFHash of the ref: equal for any two refs naming the
// same live node, independent of the route used to reach it.
func (e *element) Identity() uint64 {
	return uint64(C.ax_hash(e.ref))
}

func (e *element) String(attr string) (string, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	buf := (*C.char)(C.malloc(stringBufLen))
	defer C.free(unsafe.Pointer(buf))
	if rc := C.ax_copy_string(e.ref, cAttr, buf, stringBufLen); rc != 0 {
		return "", errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	return C.GoString(buf), nil
}

func (e *element) Bool(attr string) (bool, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	var out C.int
	if rc := C.ax_copy_bool(e.ref, cAttr, &out); rc != 0 {
		return false, errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	return out != 0, nil
}

func (e *element) Point(attr string) (ax.Point, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	var x, y C.double
	if rc := C.ax_copy_point(e.ref, cAttr, &x, &y); rc != 0 {
		return ax.Point{}, errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	return ax.Point{X: float64(x), Y: float64(y)}, nil
}

func (e *element) Size(attr string) (ax.Size, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	var w, h C.double
	if rc := C.ax_copy_size(e.ref, cAttr, &w, &h); rc != 0 {
		return ax.Size{}, errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	return ax.Size{Width: float64(w), Height: float64(h)}, nil
}

func (e *element) Element(attr string) (ax.Element, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	var out C.AXUIElementRef
	if rc := C.ax_copy_element(e.ref, cAttr, &out); rc != 0 {
		return nil, errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	return wrapElement(out), nil
}

func (e *element) Elements(attr string) ([]ax.Element, error) {
	cAttr := cfString(attr)
	defer C.CFRelease(C.CFTypeRef(cAttr))
	var refs *C.AXUIElementRef
	var count C.int
	if rc := C.ax_copy_elements(e.ref, cAttr, &refs, &count); rc != 0 {
		return nil, errors.Wrapf(ax.ErrAttributeUnavailable, "%s (ax error %d)", attr, int(rc))
	}
	defer C.free(unsafe.Pointer(refs))

	n := int(count)
	out := make([]ax.Element, n)
	slice := unsafe.Slice(refs, n)
	for i := 0; i < n; i++ {
		out[i] = wrapElement(slice[i])
	}
	return out, nil
}
