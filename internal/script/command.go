package script

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidValue is returned when an argument cannot be converted to the
// type a command expects.
var ErrInvalidValue = errors.New("invalid value")

// CommandType represents the type of a scene command
type CommandType string

const (
	// Scene
	CommandType_Camera CommandType = "Camera"
	CommandType_Sleep  CommandType = "Sleep"
	CommandType_Print  CommandType = "Print"
	CommandType_Debug  CommandType = "Debug"

	// Window lifecycle
	CommandType_NewWindow  CommandType = "NewWindow"
	CommandType_Focus      CommandType = "Focus"
	CommandType_Unfocus    CommandType = "Unfocus"
	CommandType_Minimize   CommandType = "Minimize"
	CommandType_Maximize   CommandType = "Maximize"
	CommandType_Close      CommandType = "Close"
	CommandType_Remove     CommandType = "Remove"
	CommandType_Select     CommandType = "Select"
	CommandType_Move       CommandType = "Move"
	CommandType_Resize     CommandType = "Resize"
	CommandType_ReportSize CommandType = "ReportSize"

	// Layout
	CommandType_Tile         CommandType = "Tile"
	CommandType_Recalculate  CommandType = "Recalculate"
	CommandType_Reset        CommandType = "Reset"
	CommandType_ResetInFront CommandType = "ResetInFront"
)

// Command represents a parsed scene command
type Command struct {
	Type    CommandType
	Args    []string          // Positional arguments
	Options map[string]string // Key=Value options
	Delay   time.Duration     // Sleep duration
	Line    int               // Source line number
	Column  int               // Source column number
	Raw     string            // Original raw command text
}

// String returns a string representation of the command
func (c *Command) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}

// Option returns the named option and whether it was set.
func (c *Command) Option(name string) (string, bool) {
	v, ok := c.Options[name]
	return v, ok
}

type valueKind int

const (
	kindName valueKind = iota
	kindString
	kindNumber
	kindVec3
	kindScale
	kindBool
	kindDuration
	kindMode
)

func (k valueKind) String() string {
	switch k {
	case kindName:
		return "window id"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindVec3:
		return "vector x,y,z"
	case kindScale:
		return "number or vector x,y,z"
	case kindBool:
		return "true or false"
	case kindDuration:
		return "duration"
	case kindMode:
		return "layout mode"
	}
	return "value"
}

// commandSpec describes the arguments a command accepts.
type commandSpec struct {
	args     []valueKind
	required int
	options  map[string]valueKind
}

var windowOptions = map[string]valueKind{
	"Title":               kindString,
	"Subtitle":            kindString,
	"Icon":                kindString,
	"Position":            kindVec3,
	"Rotation":            kindVec3,
	"Scale":               kindScale,
	"Width":               kindNumber,
	"Height":              kindNumber,
	"Opacity":             kindNumber,
	"FollowCamera":        kindBool,
	"DisableTiling":       kindBool,
	"DisableInitialFocus": kindBool,
	"Selectable":          kindBool,
}

var commandSpecs = map[CommandType]commandSpec{
	CommandType_Camera: {options: map[string]valueKind{
		"Position": kindVec3,
		"Rotation": kindVec3,
		"FOV":      kindNumber,
		"Aspect":   kindNumber,
	}},
	CommandType_Sleep:        {args: []valueKind{kindDuration}, required: 1},
	CommandType_Print:        {},
	CommandType_Debug:        {args: []valueKind{kindBool}, required: 1},
	CommandType_NewWindow:    {args: []valueKind{kindName}, options: windowOptions},
	CommandType_Focus:        {args: []valueKind{kindName}, required: 1},
	CommandType_Unfocus:      {args: []valueKind{kindName}, required: 1},
	CommandType_Minimize:     {args: []valueKind{kindName}, required: 1},
	CommandType_Maximize:     {args: []valueKind{kindName}, required: 1},
	CommandType_Close:        {args: []valueKind{kindName}, required: 1},
	CommandType_Remove:       {args: []valueKind{kindName}, required: 1},
	CommandType_Select:       {args: []valueKind{kindName}, required: 1},
	CommandType_Move:         {args: []valueKind{kindName, kindVec3}, required: 2},
	CommandType_Resize:       {args: []valueKind{kindName, kindNumber, kindNumber}, required: 3},
	CommandType_ReportSize:   {args: []valueKind{kindName, kindNumber, kindNumber}, required: 3},
	CommandType_Tile:         {args: []valueKind{kindMode}, required: 1, options: map[string]valueKind{"AdjustScale": kindBool}},
	CommandType_Recalculate:  {},
	CommandType_Reset:        {},
	CommandType_ResetInFront: {},
}

// IsCommand returns true if the command type is a valid command
func (ct CommandType) IsCommand() bool {
	_, ok := commandSpecs[ct]
	return ok
}

// OptionNames returns the sorted option names a command accepts.
func (ct CommandType) OptionNames() []string {
	spec := commandSpecs[ct]
	names := make([]string, 0, len(spec.options))
	for name := range spec.options {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseDuration parses a duration string (e.g., "500ms", "1.5s")
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidValue, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative duration %q", ErrInvalidValue, s)
	}
	return d, nil
}

// ParseNumber parses a single float.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidValue, s)
	}
	return f, nil
}

// ParseVec3 parses "x,y,z".
func ParseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%w: expected x,y,z, got %q", ErrInvalidValue, s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := ParseNumber(strings.TrimSpace(part))
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// ParseScale parses either a uniform scale or "x,y,z".
func ParseScale(s string) (mgl64.Vec3, error) {
	if !strings.Contains(s, ",") {
		f, err := ParseNumber(s)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		return mgl64.Vec3{f, f, f}, nil
	}
	return ParseVec3(s)
}

// ParseBool parses the true/false keywords.
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected true or false, got %q", ErrInvalidValue, s)
}
