package viewer

import (
	"fmt"
	"math"

	tea "charm.land/bubbletea/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(m *Model) tea.Cmd

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Window management
	d.Register("new_window", handleNewWindow)
	d.Register("close_window", withSelected(func(m *Model, id string) { m.store.Close(id) }))
	d.Register("minimize_window", withSelected(func(m *Model, id string) { m.store.Minimize(id) }))
	d.Register("restore_window", withSelected(func(m *Model, id string) { m.store.Maximize(id) }))
	d.Register("focus_window", withSelected(func(m *Model, id string) { m.store.Focus(id) }))
	d.Register("unfocus_window", withSelected(func(m *Model, id string) { m.store.Unfocus(id) }))
	d.Register("next_window", makeCycleHandler(1))
	d.Register("prev_window", makeCycleHandler(-1))

	// Layout
	d.Register("tile_grid", makeTileHandler(layout.Grid))
	d.Register("tile_around", makeTileHandler(layout.Around))
	d.Register("tile_cockpit", makeTileHandler(layout.Cockpit))
	d.Register("toggle_adjust_scale", handleToggleAdjustScale)
	d.Register("recalculate", func(m *Model) tea.Cmd {
		m.store.RecalculateTilePositions()
		return nil
	})
	d.Register("reset_positions", func(m *Model) tea.Cmd {
		m.store.ResetWindowPositions()
		m.status = "positions reset"
		return nil
	})
	d.Register("reset_in_front", func(m *Model) tea.Cmd {
		m.store.ResetWindowsInFrontOfCamera()
		m.status = "windows gathered in front"
		return nil
	})

	// Camera
	d.Register("camera_forward", makeMoveHandler(1))
	d.Register("camera_back", makeMoveHandler(-1))
	d.Register("camera_turn_left", makeTurnHandler(1))
	d.Register("camera_turn_right", makeTurnHandler(-1))
	d.Register("camera_reset", handleCameraReset)

	// System
	d.Register("toggle_debug", func(m *Model) tea.Cmd {
		m.store.SetDebug(!m.store.Debug())
		m.status = fmt.Sprintf("debug %v", m.store.Debug())
		return nil
	})
	d.Register("toggle_help", func(m *Model) tea.Cmd {
		m.showHelp = !m.showHelp
		return nil
	})
	d.Register("quit", func(m *Model) tea.Cmd { return tea.Quit })
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, m *Model) tea.Cmd {
	if handler, ok := d.handlers[action]; ok {
		return handler(m)
	}
	return nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func handleNewWindow(m *Model) tea.Cmd {
	m.created++
	w := wm.CreateWindow(m.store, nil,
		wm.WithTitle(fmt.Sprintf("Window %d", m.created)),
		wm.WithSelectable(true),
	)
	m.status = "created " + w.Title
	return nil
}

// withSelected runs fn on the selected window, if any.
func withSelected(fn func(m *Model, id string)) ActionHandler {
	return func(m *Model) tea.Cmd {
		id := m.store.SelectedWindow()
		if id == "" {
			m.status = "no window selected"
			return nil
		}
		fn(m, id)
		return nil
	}
}

func makeCycleHandler(step int) ActionHandler {
	return func(m *Model) tea.Cmd {
		windows := m.store.Windows()
		if len(windows) == 0 {
			return nil
		}
		current := -1
		for i, w := range windows {
			if w.ID == m.store.SelectedWindow() {
				current = i
				break
			}
		}
		next := 0
		if current >= 0 {
			next = (current + step + len(windows)) % len(windows)
		} else if step < 0 {
			next = len(windows) - 1
		}
		m.store.SetSelectedWindow(windows[next].ID)
		return nil
	}
}

func makeTileHandler(mode layout.Mode) ActionHandler {
	return func(m *Model) tea.Cmd {
		if err := m.store.TileWindows(mode, m.adjustScale); err != nil {
			m.status = err.Error()
			return nil
		}
		m.status = "tiled " + mode.String()
		return nil
	}
}

func handleToggleAdjustScale(m *Model) tea.Cmd {
	m.adjustScale = !m.adjustScale
	m.status = fmt.Sprintf("adjust scale %v", m.adjustScale)
	if m.store.CurrentMode() != layout.None {
		if err := m.store.TileWindows(m.store.CurrentMode(), m.adjustScale); err != nil {
			m.status = err.Error()
		}
	}
	return nil
}

// makeMoveHandler walks the camera along its heading, staying at eye height.
func makeMoveHandler(dir float64) ActionHandler {
	return func(m *Model) tea.Cmd {
		forward := m.camera.WorldDirection()
		forward[1] = 0
		if forward.Len() == 0 {
			return nil
		}
		step := forward.Normalize().Mul(dir * m.cfg.Camera.MoveStep)
		m.camera.Pos = m.camera.Pos.Add(step)
		m.store.SetCamera(m.camera)
		return nil
	}
}

// makeTurnHandler yaws the camera. Positive dir turns left.
func makeTurnHandler(dir float64) ActionHandler {
	return func(m *Model) tea.Cmd {
		yaw := m.camera.Rot.Y + dir*mgl64.DegToRad(m.cfg.Camera.TurnStepDeg)
		m.camera.Rot.Y = math.Remainder(yaw, 2*math.Pi)
		m.store.SetCamera(m.camera)
		return nil
	}
}

func handleCameraReset(m *Model) tea.Cmd {
	m.camera.Pos = mgl64.Vec3{0, m.cfg.Camera.Height, 0}
	m.camera.Rot = geom.Euler{}
	m.store.SetCamera(m.camera)
	return nil
}
