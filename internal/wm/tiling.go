package wm

import (
	"fmt"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
)

// tileItems returns the layout items for every window a collective pass may
// move, in insertion order.
func (s *Store) tileItems() []layout.Item {
	items := make([]layout.Item, 0, len(s.order))
	for _, id := range s.order {
		w := s.windows[id]
		if !w.tileable() {
			continue
		}
		items = append(items, layout.Item{
			ID:     w.ID,
			Width:  w.Width,
			Height: w.Height,
			Scale:  w.Scale,
		})
	}
	return items
}

// TileWindows lays out every unfocused window that allows tiling and makes
// mode the active mode. layout.None is rejected; use ResetWindowPositions to
// leave tiling.
func (s *Store) TileWindows(mode layout.Mode, adjustScale bool) error {
	s.trace("tileWindows", "mode", mode, "adjustScale", adjustScale)
	if mode == layout.None {
		return fmt.Errorf("tile windows: %w: %q", layout.ErrUnknownMode, mode)
	}

	prevMode, prevAdjust := s.mode, s.adjustScale
	s.mode = mode
	s.adjustScale = adjustScale
	if err := s.apply(mode, adjustScale); err != nil {
		s.mode, s.adjustScale = prevMode, prevAdjust
		return fmt.Errorf("tile windows: %w", err)
	}
	return nil
}

// TileWindowsByName parses name and tiles with it. Names outside the known set
// are rejected before any state changes.
func (s *Store) TileWindowsByName(name string, adjustScale bool) error {
	mode, err := layout.ParseMode(name)
	if err != nil {
		return err
	}
	return s.TileWindows(mode, adjustScale)
}

// RecalculateTilePositions re-runs the active mode, or grid when none is
// active, with the scale policy of the last TileWindows call.
func (s *Store) RecalculateTilePositions() {
	s.trace("recalculateTilePositions", "mode", s.mode)
	mode := s.mode
	if mode == layout.None {
		mode = layout.Grid
	}
	if err := s.apply(mode, s.adjustScale); err != nil {
		s.logger.Debug("Recalculate skipped", "err", err)
	}
}

func (s *Store) apply(mode layout.Mode, adjustScale bool) error {
	items := s.tileItems()
	res, err := layout.Compute(mode, items, s.camera, adjustScale, s.params)
	if err != nil {
		if geom.IsNil(s.camera) {
			s.logger.Warn("Camera is not set", "op", "tile", "mode", mode)
		}
		return err
	}

	for _, it := range items {
		w := s.windows[it.ID]
		if pos, ok := res.Positions[it.ID]; ok {
			w.Position = pos
		}
		if !adjustScale {
			continue
		}
		if scale, ok := res.Scales[it.ID]; ok {
			w.Scale = scale
		}
	}
	s.changed()
	return nil
}

// ResetWindowPositions restores every saved snapshot and leaves tiling.
func (s *Store) ResetWindowPositions() {
	s.trace("resetWindowPositions")
	for _, id := range s.order {
		s.windows[id].restoreOriginal()
	}
	s.mode = layout.None
	s.retile.Consume()
	s.changed()
}

// ResetWindowsInFrontOfCamera gathers every window at ResetDistance in front
// of the camera, then packs them in cockpit mode without changing scale.
func (s *Store) ResetWindowsInFrontOfCamera() {
	s.trace("resetWindowsInFrontOfCamera")
	target := s.PointInFrontOfCamera(s.defaults.ResetDistance)
	for _, id := range s.order {
		s.windows[id].Position = target
	}
	s.changed()
	if err := s.TileWindows(layout.Cockpit, false); err != nil {
		s.logger.Warn("Reset tiling failed", "err", err)
	}
}
