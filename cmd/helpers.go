package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/platform"
)

// resolvePID turns --pid/--app flags into a target pid. --pid wins when
// both are set.
func resolvePID(provider *platform.Provider, pid int, appName string) (int, error) {
	if pid != 0 {
		return pid, nil
	}
	if appName == "" {
		return 0, fmt.Errorf("no target specified: use --pid or --app")
	}
	if app, ok := findApp(provider.System.RunningApplications(), appName); ok {
		return app.PID, nil
	}
	return 0, fmt.Errorf("no running application matches %q", appName)
}

func findApp(apps []ax.AppInfo, name string) (ax.AppInfo, bool) {
	for _, app := range apps {
		if strings.EqualFold(app.Name, name) || app.BundleID == name {
			return app, true
		}
	}
	return ax.AppInfo{}, false
}

// parseBounds parses a "x,y,w,h" string.
func parseBounds(s string) (model.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Bounds{}, fmt.Errorf("invalid bounds %q: expected x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Bounds{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		vals[i] = v
	}
	return model.Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// parsePoint parses a "x,y" string.
func parsePoint(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// Parameter extraction helpers for MCP tool argument maps.

// StringParam reads a string argument with a default.
func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam reads an int argument with a default.
func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

// BoolParam reads a bool argument with a default.
func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// FloatParam reads a float argument with a default.
func FloatParam(params map[string]interface{}, key string, defaultVal float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return defaultVal
}
