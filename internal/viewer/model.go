// Package viewer is the interactive terminal front end: a top-down map of the
// window store driven by a bubbletea program.
package viewer

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/spatialwm/internal/anim"
	"github.com/Gaurav-Gosain/spatialwm/internal/config"
	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "viewer",
	})
}

// SetLogLevel sets the log level for the viewer package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// maxFrameDelta caps the clock advance of a single tick so a stalled terminal
// does not fast-forward every pending transition at once.
const maxFrameDelta = 100 * time.Millisecond

// TickerMsg represents a periodic tick event for advancing the store.
type TickerMsg time.Time

// ConfigReloadedMsg carries a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
	Err    error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	store    *wm.Store
	camera   *geom.PerspectiveCamera
	animator *anim.Animator
	cfg      *config.UserConfig
	registry *config.KeybindRegistry

	width    int
	height   int
	lastTick time.Time
	frames   uint64

	adjustScale bool
	showHelp    bool
	status      string
	created     int
}

// New builds a model around store. The camera is created from cfg and
// registered on the store.
func New(store *wm.Store, cfg *config.UserConfig) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		store:       store,
		cfg:         cfg,
		registry:    config.NewKeybindRegistry(cfg),
		adjustScale: cfg.Layout.AdjustScale,
		width:       80,
		height:      24,
	}

	m.camera = geom.NewPerspectiveCamera(cfg.Camera.FOV, cfg.Camera.Aspect)
	m.camera.Pos[1] = cfg.Camera.Height
	store.SetCamera(m.camera)

	config.AnimationsEnabled = cfg.Appearance.Animations
	m.animator = m.newAnimator()
	return m
}

func (m *Model) newAnimator() *anim.Animator {
	a := anim.New(m.animationDuration())
	a.SetFastDuration(config.GetFastAnimationDuration())
	return a
}

func (m *Model) animationDuration() time.Duration {
	if !config.AnimationsEnabled {
		return 0
	}
	if m.cfg.Appearance.AnimationDuration > 0 {
		return time.Duration(m.cfg.Appearance.AnimationDuration) * time.Millisecond
	}
	return config.GetAnimationDuration()
}

// Store returns the window store the model drives.
func (m *Model) Store() *wm.Store { return m.store }

// Camera returns the camera the model moves.
func (m *Model) Camera() *geom.PerspectiveCamera { return m.camera }

// Status returns the last status line message.
func (m *Model) Status() string { return m.status }

// ShowingHelp reports whether the help overlay is open.
func (m *Model) ShowingHelp() bool { return m.showHelp }

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return TickCmd(m.cfg.Appearance.FPS)
}

// TickCmd creates a command that generates tick messages at fps.
func TickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = config.NormalFPS
	}
	fps = min(fps, config.MaxFPS)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the viewer state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastTick.IsZero() {
			dt = min(max(now.Sub(m.lastTick), 0), maxFrameDelta)
		}
		m.lastTick = now
		m.Advance(dt)
		return m, TickCmd(m.cfg.Appearance.FPS)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config, msg.Err)
		return m, nil
	}

	return m, nil
}

// Advance moves the store clock and the display tweens forward by dt.
func (m *Model) Advance(dt time.Duration) {
	m.store.Frame(dt)
	m.animator.Sync(m.store, dt)
	m.frames++
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := m.registry.GetAction(key)
	if action == "" {
		if m.showHelp && (key == "esc" || key == "escape") {
			m.showHelp = false
		}
		return m, nil
	}
	logger.Debug("Dispatching action", "key", key, "action", action)
	return m, GetDispatcher().Dispatch(action, m)
}

func (m *Model) applyConfig(cfg *config.UserConfig, err error) {
	if err != nil {
		logger.Warn("Config reload failed", "err", err)
		m.status = fmt.Sprintf("config reload failed: %v", err)
		return
	}
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.registry = config.NewKeybindRegistry(cfg)
	m.camera.Fov = cfg.Camera.FOV
	m.camera.AspectRatio = cfg.Camera.Aspect
	m.store.SetCamera(m.camera)
	m.store.SetParams(cfg.Layout.Params)

	config.AnimationsEnabled = cfg.Appearance.Animations
	m.animator = m.newAnimator()
	m.animator.Sync(m.store, 0)

	logger.Info("Config reloaded")
	m.status = "config reloaded"
}
