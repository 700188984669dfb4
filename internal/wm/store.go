package wm

import (
	"os"
	"time"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/schedule"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wm",
	})
}

// SetLogLevel sets the logging level for the wm package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Defaults holds the distances and delays used by lifecycle transitions.
type Defaults struct {
	TileDistance  float64       // depth of a freshly added window
	FocusDistance float64       // depth of a focused window
	ResetDistance float64       // depth used by ResetWindowsInFrontOfCamera
	FocusDelay    time.Duration // add -> focus
	SettleDelay   time.Duration // focus -> unfocus and tile
	SizeDebounce  time.Duration // coalescing window for size reports
}

// DefaultDefaults returns the stock distances and delays.
func DefaultDefaults() Defaults {
	return Defaults{
		TileDistance:  3,
		FocusDistance: 2.5,
		ResetDistance: 5,
		FocusDelay:    300 * time.Millisecond,
		SettleDelay:   1200 * time.Millisecond,
		SizeDebounce:  200 * time.Millisecond,
	}
}

// Options configures a Store. Zero values fall back to defaults.
type Options struct {
	Params    *layout.Params
	Defaults  *Defaults
	Scheduler *schedule.Scheduler
	Logger    *log.Logger
	Camera    geom.Camera
	Debug     bool
}

// Store owns every window record and the active tiling mode. It is not safe
// for concurrent use: all calls are expected on the frame driver's thread.
type Store struct {
	windows  map[string]*Window
	order    []string
	mode     layout.Mode
	camera   geom.Camera
	selected string
	debug    bool

	// adjustScale remembers the last explicit tiling request so recalculation
	// reproduces it.
	adjustScale bool

	version      uint64
	listeners    map[int]func()
	nextListener int

	params   layout.Params
	defaults Defaults
	sched    *schedule.Scheduler
	sizes    *schedule.Debouncer
	retile   schedule.DirtyFlag
	logger   *log.Logger
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	s := &Store{
		windows:   make(map[string]*Window),
		listeners: make(map[int]func()),
		params:    layout.DefaultParams(),
		defaults:  DefaultDefaults(),
		sched:     opts.Scheduler,
		logger:    opts.Logger,
		camera:    opts.Camera,
	}
	if opts.Params != nil {
		s.params = *opts.Params
	}
	if opts.Defaults != nil {
		s.defaults = *opts.Defaults
	}
	if s.sched == nil {
		s.sched = schedule.New()
	}
	if s.logger == nil {
		s.logger = logger
	}
	s.sizes = schedule.NewDebouncer(s.sched, s.defaults.SizeDebounce)
	s.SetDebug(opts.Debug)
	return s
}

// trace logs a diagnostic line when debug mode is on.
func (s *Store) trace(op string, keyvals ...any) {
	if s.debug {
		s.logger.Debug(op+" called", keyvals...)
	}
}

// changed bumps the version and notifies subscribers.
func (s *Store) changed() {
	s.version++
	for _, fn := range s.listeners {
		fn()
	}
}

// Version increases every time observable state changes.
func (s *Store) Version() uint64 { return s.version }

// Subscribe registers fn to run after every state change and returns a
// function that removes it.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Debug reports whether diagnostic logging is enabled.
func (s *Store) Debug() bool { return s.debug }

// SetDebug toggles diagnostic logging.
func (s *Store) SetDebug(v bool) {
	s.debug = v
	if v {
		s.logger.SetLevel(log.DebugLevel)
	}
}

// Params returns the layout magnitudes in use.
func (s *Store) Params() layout.Params { return s.params }

// SetParams replaces the layout magnitudes and schedules a re-tile if a mode
// is active.
func (s *Store) SetParams(p layout.Params) {
	s.params = p
	if s.mode != layout.None {
		s.retile.Mark()
	}
}

// Defaults returns the distances and delays in use.
func (s *Store) Defaults() Defaults { return s.defaults }

// Scheduler returns the clock the store schedules transitions on.
func (s *Store) Scheduler() *schedule.Scheduler { return s.sched }

// Window returns the record for id.
func (s *Store) Window(id string) (*Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// Windows returns all windows in insertion order.
func (s *Store) Windows() []*Window {
	out := make([]*Window, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.windows[id])
	}
	return out
}

// Len returns the number of windows.
func (s *Store) Len() int { return len(s.order) }

// CurrentMode returns the active tiling mode, or layout.None.
func (s *Store) CurrentMode() layout.Mode { return s.mode }

// SelectedWindow returns the selected window id, or "".
func (s *Store) SelectedWindow() string { return s.selected }

// SetSelectedWindow selects id. An empty id clears the selection; unknown ids
// are ignored.
func (s *Store) SetSelectedWindow(id string) {
	s.trace("setSelectedWindow", "id", id)
	if id != "" && !s.has(id) {
		return
	}
	if s.selected == id {
		return
	}
	s.selected = id
	s.changed()
}

// Camera returns the registered camera, or nil.
func (s *Store) Camera() geom.Camera { return s.camera }

// SetCamera replaces the camera. When a tiling mode is active the layout is
// recomputed on the next Frame; repeated calls within a frame collapse.
func (s *Store) SetCamera(cam geom.Camera) {
	s.camera = cam
	if s.mode != layout.None {
		s.retile.Mark()
	}
}

// PointInFrontOfCamera returns the point distance units ahead of the camera.
// Without a camera it logs a warning and returns the origin.
func (s *Store) PointInFrontOfCamera(distance float64) mgl64.Vec3 {
	s.trace("getPointInFrontOfCamera", "distance", distance)
	p, err := geom.PointInFrontOfCamera(s.camera, distance)
	if err != nil {
		s.logger.Warn("Camera is not set", "fallback", "origin")
	}
	return p
}

// DisplayRotation returns the orientation a renderer should draw id with:
// facing the camera for FollowCamera windows, the stored rotation otherwise.
func (s *Store) DisplayRotation(id string) (geom.Euler, bool) {
	w, ok := s.windows[id]
	if !ok {
		return geom.Euler{}, false
	}
	if w.FollowCamera && !geom.IsNil(s.camera) {
		return geom.FaceTowards(w.Position, s.camera.Position()), true
	}
	return w.Rotation, true
}

// RequestRetile asks for one recalculation on the next Frame.
func (s *Store) RequestRetile() { s.retile.Mark() }

// Frame advances the store's clock by dt, runs due transitions, then performs
// at most one pending re-tile.
func (s *Store) Frame(dt time.Duration) {
	s.sched.Advance(dt)
	if s.retile.Consume() {
		s.RecalculateTilePositions()
	}
}

func (s *Store) has(id string) bool {
	_, ok := s.windows[id]
	return ok
}
