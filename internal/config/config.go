// Package config loads, validates and watches the spatialwm configuration
// file, and exposes the keybinding registry used by the viewer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "config",
	})
}

// SetLogLevel sets the logging level for the config package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Frame rates for the viewer tick.
const (
	NormalFPS = 60
	MaxFPS    = 240
)

// Animation timing in milliseconds.
const (
	DefaultAnimationDuration = 300
	FastAnimationDuration    = 150
)

// AnimationsEnabled controls whether display tweens run at all.
var AnimationsEnabled = true

// GetAnimationDuration returns the tween length, or zero when animations are off.
func GetAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return DefaultAnimationDuration * time.Millisecond
}

// GetFastAnimationDuration returns the short tween length, or zero when
// animations are off.
func GetFastAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return FastAnimationDuration * time.Millisecond
}

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Layout      LayoutConfig      `toml:"layout"`
	Timing      TimingConfig      `toml:"timing"`
	Camera      CameraConfig      `toml:"camera"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// LayoutConfig selects the startup mode and the tiling magnitudes.
type LayoutConfig struct {
	Mode        layout.Mode   `toml:"mode"`
	AdjustScale bool          `toml:"adjust_scale"`
	Params      layout.Params `toml:"params"`
}

// TimingConfig holds store distances and delays. Delays are milliseconds.
type TimingConfig struct {
	TileDistance   float64 `toml:"tile_distance"`
	FocusDistance  float64 `toml:"focus_distance"`
	ResetDistance  float64 `toml:"reset_distance"`
	FocusDelayMS   int     `toml:"focus_delay_ms"`
	SettleDelayMS  int     `toml:"settle_delay_ms"`
	SizeDebounceMS int     `toml:"size_debounce_ms"`
}

// CameraConfig describes the viewer's camera and how fast it moves.
type CameraConfig struct {
	FOV         float64 `toml:"fov"`
	Aspect      float64 `toml:"aspect"`
	Height      float64 `toml:"height"`
	MoveStep    float64 `toml:"move_step"`
	TurnStepDeg float64 `toml:"turn_step_deg"`
}

// AppearanceConfig covers the terminal preview.
type AppearanceConfig struct {
	FPS               int  `toml:"fps"`
	Animations        bool `toml:"animations"`
	AnimationDuration int  `toml:"animation_duration_ms"`
	ShowGrid          bool `toml:"show_grid"`
	// UnitsPerCell is how many world units one terminal column spans.
	UnitsPerCell float64 `toml:"units_per_cell"`
}

// KeybindingsConfig maps actions to keys, grouped the way the help view shows
// them.
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Layout           map[string][]string `toml:"layout"`
	Camera           map[string][]string `toml:"camera"`
	System           map[string][]string `toml:"system"`
}

// sections returns every keybinding group in display order.
func (k *KeybindingsConfig) sections() []map[string][]string {
	return []map[string][]string{k.WindowManagement, k.Layout, k.Camera, k.System}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	d := wm.DefaultDefaults()
	return &UserConfig{
		Layout: LayoutConfig{
			Mode:   layout.Grid,
			Params: layout.DefaultParams(),
		},
		Timing: TimingConfig{
			TileDistance:   d.TileDistance,
			FocusDistance:  d.FocusDistance,
			ResetDistance:  d.ResetDistance,
			FocusDelayMS:   int(d.FocusDelay / time.Millisecond),
			SettleDelayMS:  int(d.SettleDelay / time.Millisecond),
			SizeDebounceMS: int(d.SizeDebounce / time.Millisecond),
		},
		Camera: CameraConfig{
			FOV:         75,
			Aspect:      16.0 / 9.0,
			Height:      1.6,
			MoveStep:    0.5,
			TurnStepDeg: 15,
		},
		Appearance: AppearanceConfig{
			FPS:               NormalFPS,
			Animations:        true,
			AnimationDuration: DefaultAnimationDuration,
			ShowGrid:          true,
			UnitsPerCell:      0.25,
		},
		Keybindings: KeybindingsConfig{
			WindowManagement: map[string][]string{
				"new_window":      {"n"},
				"close_window":    {"x"},
				"minimize_window": {"m"},
				"restore_window":  {"M"},
				"focus_window":    {"enter"},
				"unfocus_window":  {"u"},
				"next_window":     {"tab"},
				"prev_window":     {"shift+tab"},
			},
			Layout: map[string][]string{
				"tile_grid":           {"g"},
				"tile_around":         {"a"},
				"tile_cockpit":        {"c"},
				"toggle_adjust_scale": {"s"},
				"recalculate":         {"r"},
				"reset_positions":     {"0"},
				"reset_in_front":      {"f"},
			},
			Camera: map[string][]string{
				"camera_forward":    {"up", "k"},
				"camera_back":       {"down", "j"},
				"camera_turn_left":  {"left", "h"},
				"camera_turn_right": {"right", "l"},
				"camera_reset":      {"home"},
			},
			System: map[string][]string{
				"toggle_debug": {"d"},
				"toggle_help":  {"?"},
				"quit":         {"q", "ctrl+c"},
			},
		},
	}
}

// StoreDefaults converts the timing section for the window store.
func (c *UserConfig) StoreDefaults() wm.Defaults {
	return wm.Defaults{
		TileDistance:  c.Timing.TileDistance,
		FocusDistance: c.Timing.FocusDistance,
		ResetDistance: c.Timing.ResetDistance,
		FocusDelay:    time.Duration(c.Timing.FocusDelayMS) * time.Millisecond,
		SettleDelay:   time.Duration(c.Timing.SettleDelayMS) * time.Millisecond,
		SizeDebounce:  time.Duration(c.Timing.SizeDebounceMS) * time.Millisecond,
	}
}

// Validate reports every problem found, wrapped in ErrInvalidConfig.
func (c *UserConfig) Validate() error {
	var problems []string
	p := c.Layout.Params

	if p.GridSpacing <= 0 {
		problems = append(problems, "layout.params.grid_spacing must be positive")
	}
	if p.GridDepth <= 0 || p.CockpitDistance <= 0 {
		problems = append(problems, "layout depths must be positive")
	}
	if p.AroundRadius <= 0 {
		problems = append(problems, "layout.params.around_radius must be positive")
	}
	if p.CockpitMargin <= 0 || p.CockpitMargin > 1 {
		problems = append(problems, "layout.params.cockpit_margin must be in (0, 1]")
	}
	if p.UnitsPerPixel <= 0 {
		problems = append(problems, "layout.params.units_per_pixel must be positive")
	}
	if p.MinDistance < 0 {
		problems = append(problems, "layout.params.min_distance must not be negative")
	}
	if c.Timing.FocusDelayMS < 0 || c.Timing.SettleDelayMS < 0 || c.Timing.SizeDebounceMS < 0 {
		problems = append(problems, "timing delays must not be negative")
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		problems = append(problems, "camera.fov must be in (0, 180)")
	}
	if c.Camera.Aspect <= 0 {
		problems = append(problems, "camera.aspect must be positive")
	}
	if c.Appearance.FPS < 1 || c.Appearance.FPS > MaxFPS {
		problems = append(problems, fmt.Sprintf("appearance.fps must be between 1 and %d", MaxFPS))
	}
	if c.Appearance.UnitsPerCell <= 0 {
		problems = append(problems, "appearance.units_per_cell must be positive")
	}

	normalizer := NewKeyNormalizer()
	for _, section := range c.Keybindings.sections() {
		for action, keys := range section {
			for _, key := range keys {
				if ok, reason := normalizer.ValidateKey(key); !ok {
					problems = append(problems, fmt.Sprintf("keybinding %s: %q %s", action, key, reason))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// GetConfigPath returns $XDG_CONFIG_HOME/spatialwm/config.toml, creating the
// directory if needed.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("spatialwm", "config.toml"))
}

// LoadUserConfig loads the configuration from the default location, writing
// the defaults there first if the file does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads and validates the configuration at path. A missing file is
// created with defaults.
func LoadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		logger.Info("Created default config", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults, fills unbound actions from the
// default keymap and validates the result.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	fillKeybindings(&cfg.Keybindings, &DefaultConfig().Keybindings)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillKeybindings adds default keys for every action the user did not bind.
func fillKeybindings(user, defaults *KeybindingsConfig) {
	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string, len(src))
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&user.WindowManagement, defaults.WindowManagement)
	fill(&user.Layout, defaults.Layout)
	fill(&user.Camera, defaults.Camera)
	fill(&user.System, defaults.System)
}

// Marshal renders cfg as commented TOML.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# spatialwm configuration file\n")
	sb.WriteString("# Layout magnitudes, store timing, camera and keybindings.\n")
	sb.WriteString("# Multiple keys can be bound to the same action.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *UserConfig) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
