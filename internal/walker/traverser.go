package walker

import (
	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/model"
)

// Traverser adapts Walk to the orchestrator's per-call contract.
type Traverser struct {
	Sys ax.System
}

func (t Traverser) Traverse(pid int, visibleOnly, activate bool) (*model.Snapshot, error) {
	return Walk(t.Sys, Options{
		PID:         pid,
		VisibleOnly: visibleOnly,
		Activate:    activate,
	})
}
