// Package main implements spatialwm, a spatial window manager driven from the
// terminal. It hosts the interactive viewer, a headless script player and the
// configuration helpers.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/spatialwm/internal/config"
	"github.com/Gaurav-Gosain/spatialwm/internal/script"
	"github.com/Gaurav-Gosain/spatialwm/internal/viewer"
	"github.com/Gaurav-Gosain/spatialwm/internal/wm"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
	configFile string
)

func main() {
	var (
		noAnimations bool
		startWindows int
	)

	rootCmd := &cobra.Command{
		Use:   "spatialwm",
		Short: "Spatial window manager",
		Long: `spatialwm - Spatial window manager

Places windows in a 3D scene around a camera and arranges them with grid,
around and cockpit tiling. The interactive viewer draws the scene as a
top-down map in the terminal.`,
		Example: `  # Run the viewer
  spatialwm

  # Start with four windows and debug logging
  spatialwm --windows 4 --debug

  # Play a script headlessly
  spatialwm play demo.swm

  # Preview a layout
  spatialwm layout --mode cockpit --count 6

  # Edit configuration
  spatialwm config edit`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevel()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(runOptions{
				noAnimations: noAnimations,
				windows:      startWindows,
			})
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Use this config file instead of the default location")
	rootCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().BoolVar(&noAnimations, "no-animations", false, "Disable display tweens")
	rootCmd.Flags().IntVar(&startWindows, "windows", 0, "Number of windows to open on start")

	// Play command
	var (
		frameStep time.Duration
		noSummary bool
		noCamera  bool
	)
	playCmd := &cobra.Command{
		Use:   "play <script>",
		Short: "Run a window script headlessly",
		Long: `Run a window script against a fresh store in virtual time.

Scripts are line oriented: one command per line, options as Name=value.
Sleep advances the store clock frame by frame, so settle, focus and retile
timers fire exactly as they would in the viewer.`,
		Example: `  # Play a script and print the final store
  spatialwm play demo.swm

  # Use 8ms frames and skip the summary table
  spatialwm play demo.swm --frame 8ms --no-summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd.Context(), args[0], playOptions{
				frameStep: frameStep,
				noSummary: noSummary,
				noCamera:  noCamera,
			})
		},
	}
	playCmd.Flags().DurationVar(&frameStep, "frame", script.DefaultFrameStep, "Frame length used when sleeping")
	playCmd.Flags().BoolVar(&noSummary, "no-summary", false, "Do not print the store after the script finishes")
	playCmd.Flags().BoolVar(&noCamera, "no-camera", false, "Start without a camera; the script must create one")

	// Layout command
	var (
		layoutMode  string
		layoutCount int
		layoutScale bool
	)
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the positions a tiling mode assigns",
		Example: `  spatialwm layout --mode grid --count 4
  spatialwm layout --mode around --count 9 --adjust-scale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(layoutMode, layoutCount, layoutScale)
		},
	}
	layoutCmd.Flags().StringVarP(&layoutMode, "mode", "m", "grid", "Tiling mode (grid, around, cockpit)")
	layoutCmd.Flags().IntVarP(&layoutCount, "count", "n", 4, "Number of windows")
	layoutCmd.Flags().BoolVar(&layoutScale, "adjust-scale", false, "Fit window scale to the layout cells")

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage spatialwm configuration",
		Long:  `Manage spatialwm configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration file in $EDITOR",
		Long: `Open the spatialwm configuration file in your default editor.
Creates the config file with defaults if it doesn't exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the configuration file to default settings.
This will overwrite your existing configuration after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfigFile()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	// Keybinds command
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all configured keybindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsListCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List only customized keybindings",
		Long:  `Display only the keybindings that differ from the defaults.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsListCustomCmd)

	rootCmd.AddCommand(playCmd, layoutCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel sets every package logger from --debug.
func applyLogLevel() {
	level := log.WarnLevel
	if debugMode {
		level = log.DebugLevel
	}
	wm.SetLogLevel(level)
	config.SetLogLevel(level)
	script.SetLogLevel(level)
	viewer.SetLogLevel(level)
}

// resolveConfigPath returns --config or the XDG location.
func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

// loadConfig loads the active config, falling back to defaults with a warning.
func loadConfig() (*config.UserConfig, string) {
	path, err := resolveConfigPath()
	if err != nil {
		log.Warn("Using default config", "err", err)
		return config.DefaultConfig(), ""
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		log.Warn("Failed to load config, using defaults", "path", path, "err", err)
		return config.DefaultConfig(), path
	}
	return cfg, path
}
