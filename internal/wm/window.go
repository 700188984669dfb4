// Package wm holds the spatial window store: window records, their lifecycle
// transitions (focus, minimize, restore, close) and the collective tiling
// passes that place them around the camera.
package wm

import (
	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// State is the lifecycle state derived from a window's flags.
type State int

const (
	// StateNormal is a window that is neither focused nor minimized.
	StateNormal State = iota
	// StateFocused is a window pulled in front of the camera.
	StateFocused
	// StateMinimized is a window hidden by the user.
	StateMinimized
)

// String returns a string representation of the window state.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateFocused:
		return "focused"
	case StateMinimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// Chrome is the closed set of presentation toggles a renderer may honour.
// The store never reads them; it only carries them through updates.
type Chrome struct {
	DisableTitleBar   bool
	DisableIcon       bool
	DisableActionBtns bool
	DisableBackground bool
	DisableAdjustSize bool
}

// Capabilities describes what the user may do to a window from its frame.
type Capabilities struct {
	Closable  bool
	Resizable bool
	Movable   bool
}

// DefaultCapabilities returns a fully interactive window.
func DefaultCapabilities() Capabilities {
	return Capabilities{Closable: true, Resizable: true, Movable: true}
}

// Snapshot is the transform saved when a window is focused and restored when
// it is unfocused, minimized or reset.
type Snapshot struct {
	Position     mgl64.Vec3
	Scale        mgl64.Vec3
	Rotation     geom.Euler
	FollowCamera bool
}

// Window is one floating panel owned by the Store.
type Window struct {
	ID       string
	Title    string
	Subtitle string
	Icon     string

	Position mgl64.Vec3
	Rotation geom.Euler
	Scale    mgl64.Vec3
	Width    float64
	Height   float64

	IsMinimized  bool
	IsFocused    bool
	IsFullscreen bool

	// FollowCamera windows are billboarded towards the camera every frame.
	FollowCamera bool
	// DisableTiling windows are skipped by every collective layout pass.
	DisableTiling       bool
	DisableInitialFocus bool
	Selectable          bool

	Opacity      float64
	Chrome       Chrome
	Capabilities Capabilities

	OriginalSettings *Snapshot

	// Content and Props are opaque caller payload.
	Content any
	Props   map[string]any

	OnClose    func()
	OnMinimize func()
	OnFocus    func()
}

// State derives the lifecycle state. Minimized wins over focused.
func (w *Window) State() State {
	switch {
	case w.IsMinimized:
		return StateMinimized
	case w.IsFocused:
		return StateFocused
	default:
		return StateNormal
	}
}

func (w *Window) snapshot() *Snapshot {
	return &Snapshot{
		Position:     w.Position,
		Scale:        w.Scale,
		Rotation:     w.Rotation,
		FollowCamera: w.FollowCamera,
	}
}

// restoreOriginal applies and clears the saved snapshot. It reports whether
// a snapshot was present.
func (w *Window) restoreOriginal() bool {
	snap := w.OriginalSettings
	if snap == nil {
		return false
	}
	w.Position = snap.Position
	w.Scale = snap.Scale
	w.Rotation = snap.Rotation
	w.FollowCamera = snap.FollowCamera
	w.OriginalSettings = nil
	return true
}

func (w *Window) tileable() bool {
	return !w.IsFocused && !w.DisableTiling
}
