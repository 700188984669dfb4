package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/spatialwm/internal/config"
	"github.com/Gaurav-Gosain/spatialwm/internal/geom"
	"github.com/Gaurav-Gosain/spatialwm/internal/layout"
	"github.com/Gaurav-Gosain/spatialwm/internal/script"
	"github.com/Gaurav-Gosain/spatialwm/internal/viewer"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

type runOptions struct {
	noAnimations bool
	windows      int
}

type playOptions struct {
	frameStep time.Duration
	noSummary bool
	noCamera  bool
}

// newStore builds a store from the layout and timing sections of cfg.
func newStore(cfg *config.UserConfig) *wm.Store {
	defaults := cfg.StoreDefaults()
	return wm.NewStore(wm.Options{
		Params:   &cfg.Layout.Params,
		Defaults: &defaults,
		Debug:    debugMode,
	})
}

func runLocal(opts runOptions) error {
	userConfig, configPath := loadConfig()
	if opts.noAnimations {
		userConfig.Appearance.Animations = false
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Warn("Failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if debugMode {
		log.Debug("Configuration", "path", configPath)
	}

	store := newStore(userConfig)
	model := viewer.New(store, userConfig)
	for i := range opts.windows {
		wm.CreateWindow(store, nil,
			wm.WithTitle(fmt.Sprintf("Window %d", i+1)),
			wm.WithSelectable(true),
		)
	}
	if userConfig.Layout.Mode != layout.None {
		if err := store.TileWindows(userConfig.Layout.Mode, userConfig.Layout.AdjustScale); err != nil {
			log.Warn("Initial tiling failed", "mode", userConfig.Layout.Mode, "err", err)
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, config.DefaultReloadDebounce, func(cfg *config.UserConfig, err error) {
			p.Send(viewer.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			log.Warn("Config hot reload disabled", "err", err)
		} else {
			go watcher.Start(ctx)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// runScript plays path against a fresh store and prints the final state.
func runScript(ctx context.Context, path string, opts playOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	commands, err := script.ParseFile(path)
	if err != nil {
		return err
	}

	userConfig, _ := loadConfig()
	store := newStore(userConfig)
	if !opts.noCamera {
		cam := geom.NewPerspectiveCamera(userConfig.Camera.FOV, userConfig.Camera.Aspect)
		cam.Pos[1] = userConfig.Camera.Height
		store.SetCamera(cam)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := script.NewRunner(store, script.WithFrameStep(opts.frameStep))
	runErr := runner.Run(ctx, commands)
	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Interrupted.")
	}
	log.Debug("Script finished", "player", runner.Player().String())

	if !opts.noSummary {
		fmt.Println(script.WindowTable(store))
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	return nil
}

// runLayout tiles count default windows in front of a fresh camera and prints
// where they land.
func runLayout(modeName string, count int, adjustScale bool) error {
	mode, err := layout.ParseMode(modeName)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	userConfig, _ := loadConfig()
	store := newStore(userConfig)
	cam := geom.NewPerspectiveCamera(userConfig.Camera.FOV, userConfig.Camera.Aspect)
	store.SetCamera(cam)

	for i := range count {
		wm.CreateWindow(store, nil,
			wm.WithID(fmt.Sprintf("w%d", i+1)),
			wm.WithTitle(fmt.Sprintf("Window %d", i+1)),
			wm.WithDisableInitialFocus(true),
		)
	}
	if err := store.TileWindows(mode, adjustScale); err != nil {
		return err
	}
	fmt.Println(script.WindowTable(store))
	return nil
}
