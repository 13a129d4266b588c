//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>

// Overlay panels: borderless, transparent, on top of everything, and
// explicitly non-activating with ignoresMouseEvents set — they must
// never intercept input meant for the app underneath.
static void *overlay_show(double x, double y, double w, double h,
                          const unsigned char *rgba, int imgW, int imgH) {
    @autoreleasepool {
        NSRect frame = NSMakeRect(x, y, w, h);
        NSPanel *panel = [[NSPanel alloc]
            initWithContentRect:frame
                      styleMask:NSWindowStyleMaskBorderless | NSWindowStyleMaskNonactivatingPanel
                        backing:NSBackingStoreBuffered
                          defer:NO];
        panel.opaque = NO;
        panel.backgroundColor = [NSColor clearColor];
        panel.level = NSScreenSaverWindowLevel;
        panel.ignoresMouseEvents = YES;
        panel.collectionBehavior = NSWindowCollectionBehaviorCanJoinAllSpaces
                                 | NSWindowCollectionBehaviorTransient;

        NSBitmapImageRep *rep = [[NSBitmapImageRep alloc]
            initWithBitmapDataPlanes:NULL
                          pixelsWide:imgW
                          pixelsHigh:imgH
                       bitsPerSample:8
                     samplesPerPixel:4
                            hasAlpha:YES
                            isPlanar:NO
                      colorSpaceName:NSDeviceRGBColorSpace
                         bytesPerRow:imgW * 4
                        bitsPerPixel:32];
        memcpy(rep.bitmapData, rgba, (size_t)imgW * imgH * 4);
        NSImage *image = [[NSImage alloc] initWithSize:NSMakeSize(imgW, imgH)];
        [image addRepresentation:rep];

        NSImageView *view = [[NSImageView alloc] initWithFrame:NSMakeRect(0, 0, w, h)];
        view.image = image;
        view.imageScaling = NSImageScaleAxesIndependently;
        panel.contentView = view;

        [panel orderFrontRegardless];
        return (void *)CFBridgingRetain(panel);
    }
}

static void overlay_close(void *handle) {
    NSPanel *panel = (NSPanel *)CFBridgingTransfer(handle);
    dispatch_async(dispatch_get_main_queue(), ^{
        [panel orderOut:nil];
        [panel close];
    });
}

// AppKit's screen origin is bottom-left; accessibility frames are
// top-left. Convert using the primary screen height.
static double primary_screen_height() {
    @autoreleasepool {
        NSArray<NSScreen *> *screens = [NSScreen screens];
        if (screens.count == 0) return 0;
        return screens[0].frame.size.height;
    }
}
*/
import "C"
import (
	"image"
	"image/draw"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/ui"
)

// Presenter implements highlight.Presenter with transparent NSPanels.
type Presenter struct{}

// NewPresenter creates the macOS overlay presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Show creates one panel per overlay and returns a teardown closing all
// of them. The panels belong to this call alone; teardown marshals to
// the main queue so any goroutine may invoke it.
func (p *Presenter) Show(tok ui.Token, overlays []highlight.Overlay) (func(), error) {
	if !tok.Valid() {
		return nil, errors.New("overlay windows require the UI context token")
	}

	screenH := float64(C.primary_screen_height())
	handles := make([]unsafe.Pointer, 0, len(overlays))
	for _, ov := range overlays {
		w := int(ov.Frame.Width)
		h := int(ov.Frame.Height)
		if w < 1 || h < 1 {
			continue
		}
		img := highlight.BorderImage(w, h, ov.Style)
		if badge := highlight.BadgeImage(ov.Style); badge != nil {
			copyBadge(img, badge)
		}

		// Flip the accessibility frame's top-left origin to AppKit's
		// bottom-left convention.
		y := screenH - ov.Frame.Y - ov.Frame.Height
		handle := C.overlay_show(
			C.double(ov.Frame.X), C.double(y),
			C.double(ov.Frame.Width), C.double(ov.Frame.Height),
			(*C.uchar)(unsafe.Pointer(&img.Pix[0])), C.int(w), C.int(h),
		)
		if handle != nil {
			handles = append(handles, handle)
		}
	}

	teardown := func() {
		for _, h := range handles {
			C.overlay_close(h)
		}
	}
	return teardown, nil
}

// copyBadge draws the label badge into the overlay's top-left corner.
func copyBadge(dst, badge *image.RGBA) {
	draw.Draw(dst, badge.Bounds(), badge, image.Point{}, draw.Over)
}
