package main

import (
	"github.com/uiprobe/uiprobe/cmd"
	"github.com/uiprobe/uiprobe/internal/ui"
)

func main() {
	// Pin the main goroutine to the main OS thread before anything else:
	// window creation, input posting, and app activation all require it.
	ui.Init()
	cmd.Execute()
}
