package wm

import (
	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Default window dimensions in logical pixels.
const (
	DefaultWidth   = 300
	DefaultHeight  = 200
	DefaultOpacity = 0.9
)

// createID generates a unique window identifier.
func createID() string {
	return uuid.New().String()
}

// Option customises a window built by CreateWindow.
type Option func(*Window)

// WithID sets an explicit id. Adding a second window with the same id returns
// the first one.
func WithID(id string) Option { return func(w *Window) { w.ID = id } }

// WithTitle sets the title shown in the window's title bar.
func WithTitle(title string) Option { return func(w *Window) { w.Title = title } }

// WithSubtitle sets the secondary title line.
func WithSubtitle(sub string) Option { return func(w *Window) { w.Subtitle = sub } }

// WithIcon sets the icon name.
func WithIcon(icon string) Option { return func(w *Window) { w.Icon = icon } }

// WithPosition places the window explicitly instead of in front of the camera.
func WithPosition(pos mgl64.Vec3) Option { return func(w *Window) { w.Position = pos } }

// WithRotation sets the stored rotation.
func WithRotation(rot geom.Euler) Option { return func(w *Window) { w.Rotation = rot } }

// WithScale sets the initial scale.
func WithScale(scale mgl64.Vec3) Option { return func(w *Window) { w.Scale = scale } }

// WithSize sets the logical width and height.
func WithSize(width, height float64) Option {
	return func(w *Window) {
		w.Width = width
		w.Height = height
	}
}

// WithOpacity sets the background opacity.
func WithOpacity(o float64) Option { return func(w *Window) { w.Opacity = o } }

// WithFollowCamera toggles billboarding.
func WithFollowCamera(v bool) Option { return func(w *Window) { w.FollowCamera = v } }

// WithDisableTiling keeps the window out of every layout pass.
func WithDisableTiling(v bool) Option { return func(w *Window) { w.DisableTiling = v } }

// WithDisableInitialFocus skips the focus flash after creation.
func WithDisableInitialFocus(v bool) Option { return func(w *Window) { w.DisableInitialFocus = v } }

// WithSelectable makes the new window the selected one.
func WithSelectable(v bool) Option { return func(w *Window) { w.Selectable = v } }

// WithChrome sets the presentation toggles.
func WithChrome(c Chrome) Option { return func(w *Window) { w.Chrome = c } }

// WithCapabilities sets what the user may do from the window frame.
func WithCapabilities(c Capabilities) Option { return func(w *Window) { w.Capabilities = c } }

// WithProps sets the opaque payload map.
func WithProps(props map[string]any) Option { return func(w *Window) { w.Props = props } }

// WithOnClose registers a close callback.
func WithOnClose(fn func()) Option { return func(w *Window) { w.OnClose = fn } }

// WithOnMinimize registers a minimize callback.
func WithOnMinimize(fn func()) Option { return func(w *Window) { w.OnMinimize = fn } }

// WithOnFocus registers a focus callback.
func WithOnFocus(fn func()) Option { return func(w *Window) { w.OnFocus = fn } }

// NewWindow builds a record with default dimensions, unit scale and camera
// following, then applies opts. The record is not inserted anywhere.
func NewWindow(content any, opts ...Option) *Window {
	w := &Window{
		ID:           createID(),
		Position:     geom.Origin,
		Scale:        geom.Unit,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Opacity:      DefaultOpacity,
		FollowCamera: true,
		Capabilities: DefaultCapabilities(),
		Content:      content,
		Props:        make(map[string]any),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateWindow builds a window and inserts it into s. When the id already
// exists the pre-existing record is returned.
func CreateWindow(s *Store, content any, opts ...Option) *Window {
	return s.AddWindow(NewWindow(content, opts...))
}
