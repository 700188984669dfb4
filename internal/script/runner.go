package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

// DefaultFrameStep is the virtual frame length Sleep advances the store by.
const DefaultFrameStep = 16 * time.Millisecond

// Defaults for a camera created by a script that never registered one.
const (
	DefaultFOV    = 75.0
	DefaultAspect = 16.0 / 9.0
)

var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "script",
	})
}

// SetLogLevel sets the log level for the script package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Runner executes parsed commands against a window store in virtual time.
type Runner struct {
	store   *wm.Store
	camera  *geom.PerspectiveCamera
	step    time.Duration
	out     io.Writer
	printer Printer
	onFrame func(dt time.Duration)
	player  *Player
	logger  *log.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFrameStep sets the frame length used when sleeping.
func WithFrameStep(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.step = d
		}
	}
}

// WithOutput sets where Print writes.
func WithOutput(w io.Writer) RunnerOption { return func(r *Runner) { r.out = w } }

// WithPrinter replaces the table renderer used by Print.
func WithPrinter(p Printer) RunnerOption { return func(r *Runner) { r.printer = p } }

// WithFrameHook registers fn to run after every frame the runner advances.
func WithFrameHook(fn func(dt time.Duration)) RunnerOption {
	return func(r *Runner) { r.onFrame = fn }
}

// WithLogger overrides the package logger.
func WithLogger(l *log.Logger) RunnerOption { return func(r *Runner) { r.logger = l } }

// NewRunner returns a runner bound to store. A perspective camera already
// registered on the store is reused by Camera commands.
func NewRunner(store *wm.Store, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:   store,
		step:    DefaultFrameStep,
		out:     os.Stdout,
		printer: TablePrinter,
		logger:  logger,
	}
	if cam, ok := store.Camera().(*geom.PerspectiveCamera); ok && cam != nil {
		r.camera = cam
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Player returns the player of the current or last Run, or nil.
func (r *Runner) Player() *Player { return r.player }

// Run executes commands in order. It stops at the first failing command or
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, commands []Command) error {
	r.player = NewPlayer(commands)
	for cmd := r.player.NextCommand(); cmd != nil; cmd = r.player.NextCommand() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Debug("Executing command", "line", cmd.Line, "command", cmd.String())
		if err := r.Exec(ctx, cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.String(), err)
		}
		r.player.Advance()
	}
	return nil
}

// Exec executes a single command.
func (r *Runner) Exec(ctx context.Context, cmd *Command) error {
	id := ""
	if len(cmd.Args) > 0 {
		id = cmd.Args[0]
	}

	switch cmd.Type {
	case CommandType_Camera:
		return r.execCamera(cmd)

	case CommandType_Sleep:
		return r.Sleep(ctx, cmd.Delay)

	case CommandType_Print:
		return r.printer(r.out, r.store)

	case CommandType_Debug:
		on, err := ParseBool(id)
		if err != nil {
			return err
		}
		r.store.SetDebug(on)

	case CommandType_NewWindow:
		return r.execNewWindow(cmd)

	case CommandType_Focus:
		r.withWindow(id, r.store.Focus)
	case CommandType_Unfocus:
		r.withWindow(id, r.store.Unfocus)
	case CommandType_Minimize:
		r.withWindow(id, r.store.Minimize)
	case CommandType_Maximize:
		r.withWindow(id, r.store.Maximize)
	case CommandType_Close:
		r.withWindow(id, r.store.Close)
	case CommandType_Remove:
		r.withWindow(id, r.store.RemoveWindow)
	case CommandType_Select:
		r.withWindow(id, r.store.SetSelectedWindow)

	case CommandType_Move:
		pos, err := ParseVec3(cmd.Args[1])
		if err != nil {
			return err
		}
		r.withWindow(id, func(id string) { r.store.SetPosition(id, pos) })

	case CommandType_Resize, CommandType_ReportSize:
		width, err := ParseNumber(cmd.Args[1])
		if err != nil {
			return err
		}
		height, err := ParseNumber(cmd.Args[2])
		if err != nil {
			return err
		}
		r.withWindow(id, func(id string) {
			if cmd.Type == CommandType_ReportSize {
				r.store.ReportWindowSize(id, width, height)
				return
			}
			if r.store.UpdateWindowSize(id, width, height) {
				r.store.RequestRetile()
			}
		})

	case CommandType_Tile:
		adjust := false
		if v, ok := cmd.Option("AdjustScale"); ok {
			adjust, _ = ParseBool(v)
		}
		return r.store.TileWindowsByName(id, adjust)

	case CommandType_Recalculate:
		r.store.RecalculateTilePositions()
	case CommandType_Reset:
		r.store.ResetWindowPositions()
	case CommandType_ResetInFront:
		r.store.ResetWindowsInFrontOfCamera()

	default:
		return fmt.Errorf("unsupported command %q", cmd.Type)
	}
	return nil
}

// Sleep advances the store by d in frame-sized steps.
func (r *Runner) Sleep(ctx context.Context, d time.Duration) error {
	for d > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		dt := min(r.step, d)
		r.store.Frame(dt)
		if r.onFrame != nil {
			r.onFrame(dt)
		}
		if r.player != nil {
			r.player.elapsed += dt
		}
		d -= dt
	}
	return nil
}

func (r *Runner) withWindow(id string, fn func(id string)) {
	if _, ok := r.store.Window(id); !ok {
		r.logger.Warn("Window not found", "id", id)
		return
	}
	fn(id)
}

func (r *Runner) execCamera(cmd *Command) error {
	if r.camera == nil {
		r.camera = geom.NewPerspectiveCamera(DefaultFOV, DefaultAspect)
	}
	if v, ok := cmd.Option("Position"); ok {
		pos, err := ParseVec3(v)
		if err != nil {
			return err
		}
		r.camera.Pos = pos
	}
	if v, ok := cmd.Option("Rotation"); ok {
		deg, err := ParseVec3(v)
		if err != nil {
			return err
		}
		r.camera.Rot = geom.EulerDeg(deg[0], deg[1], deg[2])
	}
	if v, ok := cmd.Option("FOV"); ok {
		fov, err := ParseNumber(v)
		if err != nil {
			return err
		}
		r.camera.Fov = fov
	}
	if v, ok := cmd.Option("Aspect"); ok {
		aspect, err := ParseNumber(v)
		if err != nil {
			return err
		}
		r.camera.AspectRatio = aspect
	}
	r.store.SetCamera(r.camera)
	return nil
}

func (r *Runner) execNewWindow(cmd *Command) error {
	var opts []wm.Option
	if len(cmd.Args) > 0 {
		opts = append(opts, wm.WithID(cmd.Args[0]))
	}

	if v, ok := cmd.Option("Title"); ok {
		opts = append(opts, wm.WithTitle(v))
	}
	if v, ok := cmd.Option("Subtitle"); ok {
		opts = append(opts, wm.WithSubtitle(v))
	}
	if v, ok := cmd.Option("Icon"); ok {
		opts = append(opts, wm.WithIcon(v))
	}

	vec := func(name string, parse func(string) (mgl64.Vec3, error), apply func(mgl64.Vec3)) error {
		v, ok := cmd.Option(name)
		if !ok {
			return nil
		}
		parsed, err := parse(v)
		if err != nil {
			return err
		}
		apply(parsed)
		return nil
	}
	if err := vec("Position", ParseVec3, func(v mgl64.Vec3) {
		opts = append(opts, wm.WithPosition(v))
	}); err != nil {
		return err
	}
	if err := vec("Rotation", ParseVec3, func(v mgl64.Vec3) {
		opts = append(opts, wm.WithRotation(geom.EulerDeg(v[0], v[1], v[2])))
	}); err != nil {
		return err
	}
	if err := vec("Scale", ParseScale, func(v mgl64.Vec3) {
		opts = append(opts, wm.WithScale(v))
	}); err != nil {
		return err
	}

	width, height := float64(wm.DefaultWidth), float64(wm.DefaultHeight)
	sized := false
	if v, ok := cmd.Option("Width"); ok {
		f, err := ParseNumber(v)
		if err != nil {
			return err
		}
		width, sized = f, true
	}
	if v, ok := cmd.Option("Height"); ok {
		f, err := ParseNumber(v)
		if err != nil {
			return err
		}
		height, sized = f, true
	}
	if sized {
		opts = append(opts, wm.WithSize(width, height))
	}

	if v, ok := cmd.Option("Opacity"); ok {
		f, err := ParseNumber(v)
		if err != nil {
			return err
		}
		opts = append(opts, wm.WithOpacity(f))
	}

	flags := []struct {
		name  string
		apply func(bool) wm.Option
	}{
		{"FollowCamera", wm.WithFollowCamera},
		{"DisableTiling", wm.WithDisableTiling},
		{"DisableInitialFocus", wm.WithDisableInitialFocus},
		{"Selectable", wm.WithSelectable},
	}
	for _, flag := range flags {
		v, ok := cmd.Option(flag.name)
		if !ok {
			continue
		}
		b, err := ParseBool(v)
		if err != nil {
			return err
		}
		opts = append(opts, flag.apply(b))
	}

	w := wm.CreateWindow(r.store, nil, opts...)
	r.logger.Debug("Window created", "id", w.ID, "title", w.Title)
	return nil
}
