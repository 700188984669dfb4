// Package layout computes camera-relative tiling layouts for spatial windows.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is outside the supported set.
var ErrUnknownMode = errors.New("unknown layout mode")

// Mode is a collective layout strategy.
type Mode int

const (
	// None means no tiling mode is active.
	None Mode = iota
	// Grid arranges windows in a slightly curved grid in front of the camera.
	Grid
	// Around spreads windows on a horizontal circle around the camera.
	Around
	// Cockpit packs windows into the camera's field of view, scaling them to fit.
	Cockpit
)

// Modes lists the tiling strategies in display order.
var Modes = []Mode{Grid, Around, Cockpit}

// String returns the mode name as used in config files and scripts.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Grid:
		return "grid"
	case Around:
		return "around"
	case Cockpit:
		return "cockpit"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name into a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "grid":
		return Grid, nil
	case "around":
		return Around, nil
	case "cockpit":
		return Cockpit, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
