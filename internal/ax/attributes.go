package ax

// Accessibility attribute names, matching the macOS AX* constants.
const (
	AttrRole            = "AXRole"
	AttrRoleDescription = "AXRoleDescription"
	AttrSubrole         = "AXSubrole"
	AttrTitle           = "AXTitle"
	AttrValue           = "AXValue"
	AttrDescription     = "AXDescription"
	AttrHelp            = "AXHelp"
	AttrPlaceholder     = "AXPlaceholderValue"
	AttrIdentifier      = "AXIdentifier"
	AttrPosition        = "AXPosition"
	AttrSize            = "AXSize"
	AttrEnabled         = "AXEnabled"
	AttrFocused         = "AXFocused"
	AttrSelected        = "AXSelected"
	AttrMinimized       = "AXMinimized"
	AttrMain            = "AXMain"
	AttrWindows         = "AXWindows"
	AttrMainWindow      = "AXMainWindow"
	AttrChildren        = "AXChildren"
)

// TextAttributes is the fixed, ordered set of text-bearing attributes
// whose non-empty values are concatenated into an element's text. The
// order is part of the snapshot contract.
var TextAttributes = []string{
	AttrTitle,
	AttrValue,
	AttrDescription,
	AttrHelp,
	AttrPlaceholder,
}

// ExtraAttributes is the fixed set of attributes copied verbatim into an
// element's open attribute map when readable.
var ExtraAttributes = []string{
	AttrSubrole,
	AttrRoleDescription,
	AttrIdentifier,
	AttrSelected,
}

// RoleWindow is the accessibility role of top-level windows.
const RoleWindow = "AXWindow"

// nonInteractableRoles are container/decoration roles that carry no
// interaction of their own. Elements with these roles are excluded from
// snapshots unless they carry text.
var nonInteractableRoles = map[string]bool{
	"AXGroup":       true,
	"AXSplitGroup":  true,
	"AXSplitter":    true,
	"AXScrollArea":  true,
	"AXScrollBar":   true,
	"AXLayoutArea":  true,
	"AXLayoutItem":  true,
	"AXGrowArea":    true,
	"AXMatte":       true,
	"AXRuler":       true,
	"AXRulerMarker": true,
	"AXToolbar":     true,
	"AXUnknown":     true,
}

// Interactable reports whether a role is worth collecting on its own,
// without rescue by text content. An unreadable (empty) role is not
// interactable.
func Interactable(role string) bool {
	if role == "" {
		return false
	}
	return !nonInteractableRoles[role]
}
