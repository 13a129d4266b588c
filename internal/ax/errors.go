package ax

import "errors"

// ErrPermissionDenied is returned when the process lacks the OS
// accessibility permission. It is fatal to a traversal and is never
// auto-retried.
var ErrPermissionDenied = errors.New(
	"accessibility permission required\n\n" +
		"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
		"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
		"Then restart the terminal and try again.")

// ErrAttributeUnavailable is the generic per-attribute read failure.
// Implementations may return richer errors; callers treat any attribute
// read error as "value absent" and continue.
var ErrAttributeUnavailable = errors.New("attribute unavailable")
