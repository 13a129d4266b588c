package model

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/uiprobe/uiprobe/internal/ax/axtest"
)

func TestSaveLoadSnapshot(t *testing.T) {
	snap := &Snapshot{
		App: "TextEdit",
		Elements: []Element{
			{Role: "AXButton", Text: "OK", X: f(10), Y: f(20), Width: f(80), Height: f(24),
				Enabled: true, Path: []int{-1, 0, 2}, Handle: axtest.NewNode(nil)},
			{Role: "AXMenuItem", Text: "Copy", Path: []int{PathMainWindow, 1}},
		},
		Stats:   TraversalStats{Count: 2, WithText: 2, RoleCounts: map[string]int{"AXButton": 1, "AXMenuItem": 1}},
		Elapsed: 42 * time.Millisecond,
	}

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.App != snap.App || len(loaded.Elements) != 2 || loaded.Elapsed != snap.Elapsed {
		t.Fatalf("loaded = %+v", loaded)
	}
	e := loaded.Elements[0]
	if e.Role != "AXButton" || e.Text != "OK" || *e.X != 10 || !e.Enabled {
		t.Fatalf("element = %+v", e)
	}
	if e.Handle != nil {
		t.Fatal("live handle survived serialization")
	}
	if len(e.Path) != 3 || e.Path[0] != -1 {
		t.Fatalf("path = %v", e.Path)
	}
	if loaded.Elements[1].Path[0] != PathMainWindow {
		t.Fatalf("main-window path index mangled: %v", loaded.Elements[1].Path)
	}
}

func TestSnapshotJSONOmitsHandle(t *testing.T) {
	data, err := json.Marshal(Element{Role: "AXButton", Handle: axtest.NewNode(nil)})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Handle") || strings.Contains(string(data), "handle") {
		t.Fatalf("handle leaked into JSON: %s", data)
	}
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
