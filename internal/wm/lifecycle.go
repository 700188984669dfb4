package wm

import (
	"maps"
	"math"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/go-gl/mathgl/mgl64"
)

// AddWindow inserts w and returns the stored record. Windows are deduplicated
// by ID: adding an ID that already exists returns the existing record and
// changes nothing.
//
// A zero position is resolved to a point in front of the camera. Unless the
// window opts out of tiling, it is focused after FocusDelay and then settled
// back into the grid after SettleDelay.
func (s *Store) AddWindow(w *Window) *Window {
	if w == nil {
		return nil
	}
	if w.ID == "" {
		w.ID = createID()
	}
	s.trace("addWindow", "id", w.ID, "title", w.Title)

	if existing, ok := s.windows[w.ID]; ok {
		return existing
	}

	if geom.IsOrigin(w.Position) {
		w.Position = s.PointInFrontOfCamera(s.defaults.TileDistance)
	}
	if w.Scale == (mgl64.Vec3{}) {
		w.Scale = geom.Unit
	}
	if w.Props == nil {
		w.Props = make(map[string]any)
	}

	s.windows[w.ID] = w
	s.order = append(s.order, w.ID)
	if w.Selectable {
		s.selected = w.ID
	}
	s.changed()

	if !w.DisableTiling {
		s.scheduleSettle(w.ID, w.DisableInitialFocus)
	}
	return w
}

// scheduleSettle flashes a new window in front of the camera, then returns it
// to the grid. Both steps look the window up again when they fire.
func (s *Store) scheduleSettle(id string, skipFocus bool) {
	s.sched.After(s.defaults.FocusDelay, func() {
		if !s.has(id) {
			return
		}
		if !skipFocus {
			s.Focus(id)
		}
		s.sched.After(s.defaults.SettleDelay, func() {
			if !s.has(id) {
				return
			}
			s.Unfocus(id)
			if err := s.TileWindows(layout.Grid, false); err != nil {
				s.logger.Warn("Settle tiling failed", "id", id, "err", err)
			}
		})
	})
}

// RemoveWindow deletes id without touching the layout.
func (s *Store) RemoveWindow(id string) {
	s.trace("removeWindow", "id", id)
	if !s.remove(id) {
		return
	}
	s.changed()
}

func (s *Store) remove(id string) bool {
	if !s.has(id) {
		return false
	}
	delete(s.windows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.selected == id {
		s.selected = ""
	}
	s.sizes.Flush(id)
	return true
}

// Close removes id, runs its OnClose callback and, when a tiling mode is
// active, re-tiles the remaining windows with scale adjustment on the next
// Frame. Closes within one frame share a single re-tile.
func (s *Store) Close(id string) {
	s.trace("closeWindow", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	s.remove(id)
	s.changed()

	if w.OnClose != nil {
		w.OnClose()
	}

	if s.mode != layout.None {
		s.adjustScale = true
		s.retile.Mark()
	}
}

// UpdateWindow applies fn to the record for id. The ID cannot be changed.
func (s *Store) UpdateWindow(id string, fn func(w *Window)) {
	s.trace("updateWindow", "id", id)
	w, ok := s.windows[id]
	if !ok || fn == nil {
		return
	}
	fn(w)
	w.ID = id
	s.changed()
}

// UpdateWindowProps merges props into the window's payload.
func (s *Store) UpdateWindowProps(id string, props map[string]any) {
	s.trace("updateWindowProps", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	if w.Props == nil {
		w.Props = make(map[string]any, len(props))
	}
	maps.Copy(w.Props, props)
	s.changed()
}

// SetPosition moves id to pos.
func (s *Store) SetPosition(id string, pos mgl64.Vec3) {
	s.UpdateWindow(id, func(w *Window) { w.Position = pos })
}

// SetScale sets the scale of id.
func (s *Store) SetScale(id string, scale mgl64.Vec3) {
	s.UpdateWindow(id, func(w *Window) { w.Scale = scale })
}

// SetRotation sets the stored rotation of id.
func (s *Store) SetRotation(id string, rot geom.Euler) {
	s.UpdateWindow(id, func(w *Window) { w.Rotation = rot })
}

// Focus pulls id in front of the camera at unit scale. The pre-focus transform
// is saved once and kept across repeated Focus calls until Unfocus, Minimize
// or ResetWindowPositions consumes it.
func (s *Store) Focus(id string) {
	s.trace("focusWindow", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	if w.OriginalSettings == nil {
		w.OriginalSettings = w.snapshot()
	}
	w.Position = s.PointInFrontOfCamera(s.defaults.FocusDistance)
	w.Scale = geom.Unit
	w.Rotation = geom.Euler{}
	w.FollowCamera = true
	w.IsFocused = true
	s.changed()

	if w.OnFocus != nil {
		w.OnFocus()
	}
}

// Unfocus restores the saved transform, if any, and clears the focus flag.
func (s *Store) Unfocus(id string) {
	s.trace("unfocusWindow", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	w.restoreOriginal()
	w.IsFocused = false
	s.changed()
}

// Minimize hides id and restores its pre-focus transform if it had one.
func (s *Store) Minimize(id string) {
	s.trace("minimizeWindow", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	w.IsMinimized = true
	w.IsFocused = false
	w.restoreOriginal()
	s.changed()

	if w.OnMinimize != nil {
		w.OnMinimize()
	}
}

// Maximize un-hides id. The transform is left as it was.
func (s *Store) Maximize(id string) {
	s.trace("maximizeWindow", "id", id)
	w, ok := s.windows[id]
	if !ok {
		return
	}
	w.IsMinimized = false
	s.changed()
}

// UpdateWindowSize stores the rendered size of id. It reports whether the
// size changed; reporting the current size is a no-op.
func (s *Store) UpdateWindowSize(id string, width, height float64) bool {
	w, ok := s.windows[id]
	if !ok {
		return false
	}
	if !validSize(width) || !validSize(height) {
		s.logger.Warn("Ignoring invalid window size", "id", id, "width", width, "height", height)
		return false
	}
	if w.Width == width && w.Height == height {
		return false
	}
	s.trace("updateWindowSize", "id", id, "width", width, "height", height)
	w.Width = width
	w.Height = height
	s.changed()
	return true
}

// ReportWindowSize is the entry point for renderer size notifications. Bursts
// are coalesced per window; only the last report is committed, after which
// the layout is recalculated on the next frame.
func (s *Store) ReportWindowSize(id string, width, height float64) {
	if !s.has(id) {
		return
	}
	s.sizes.Trigger(id, func() {
		if s.UpdateWindowSize(id, width, height) {
			s.RequestRetile()
		}
	})
}

// validSize rejects NaN, infinite and negative dimensions.
func validSize(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
