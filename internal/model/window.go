package model

import "github.com/uiprobe/uiprobe/internal/ax"

// Bounds is a screen rectangle.
type Bounds struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// WindowIdentity links an OS window identifier to its accessibility
// window handle. Produced only by the resolver, never persisted.
type WindowIdentity struct {
	Handle    ax.Element `yaml:"-" json:"-"`
	WindowID  uint32     `yaml:"window_id"           json:"window_id"`
	Bounds    Bounds     `yaml:"bounds"              json:"bounds"`
	Title     string     `yaml:"title,omitempty"     json:"title,omitempty"`
	Minimized bool       `yaml:"minimized,omitempty" json:"minimized,omitempty"`
	Main      bool       `yaml:"main,omitempty"      json:"main,omitempty"`
	Focused   bool       `yaml:"focused,omitempty"   json:"focused,omitempty"`
}
