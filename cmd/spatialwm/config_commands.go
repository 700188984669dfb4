package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/spatialwm/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	// Ensure config file exists (create default if needed)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadFrom(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return validateConfigFile()
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: spatialwm config edit")
	return nil
}

// validateConfigFile loads the config and reports every validation problem.
func validateConfigFile() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := config.LoadFrom(configPath); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("Configuration is valid: " + configPath))
	return nil
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	userConfig, _ := loadConfig()
	printKeybindingsTable(config.NewKeybindRegistry(userConfig))
	return nil
}

// printKeybindingsTable prints one table per help section
func printKeybindingsTable(registry *config.KeybindRegistry) {
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("spatialwm Keybindings"))
	fmt.Println()

	for _, section := range config.HelpSections {
		rows := [][]string{}
		for _, action := range section.Actions {
			keys := registry.GetKeys(action)
			if len(keys) == 0 {
				continue
			}
			desc := config.ActionDescriptions[action]
			if desc == "" {
				desc = action
			}
			rows = append(rows, []string{strings.Join(keys, ", "), desc})
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		fmt.Println(newTable("Keys", "Action").Rows(rows...).Render())
		fmt.Println()
	}

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true).
		Render("Note: esc also closes the help overlay. Bindings reload while the viewer runs.")
	fmt.Println(note)
	fmt.Println()
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	userConfig, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())

	if len(customizations) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Println()
		fmt.Println("Run 'spatialwm keybinds list' to see all keybindings.")
		return nil
	}

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("Custom Keybindings"))
	fmt.Println()

	rows := [][]string{}
	for _, custom := range customizations {
		rows = append(rows, []string{custom.Action, custom.DefaultKeys, custom.CustomKeys})
	}
	fmt.Println(newTable("Action", "Default", "Custom").Rows(rows...).Render())
	fmt.Println()

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations)))
	fmt.Println(note)
	fmt.Println()
	return nil
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults, sorted
// by action name.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization

	compareSections := func(userSection, defaultSection map[string][]string) {
		for action, defaultKeys := range defaultSection {
			userKeys, exists := userSection[action]
			if !exists {
				continue
			}
			if !slices.Equal(userKeys, defaultKeys) {
				customizations = append(customizations, Customization{
					Action:      formatActionName(action),
					DefaultKeys: strings.Join(defaultKeys, ", "),
					CustomKeys:  strings.Join(userKeys, ", "),
				})
			}
		}
	}

	compareSections(userCfg.Keybindings.WindowManagement, defaultCfg.Keybindings.WindowManagement)
	compareSections(userCfg.Keybindings.Layout, defaultCfg.Keybindings.Layout)
	compareSections(userCfg.Keybindings.Camera, defaultCfg.Keybindings.Camera)
	compareSections(userCfg.Keybindings.System, defaultCfg.Keybindings.System)

	sort.Slice(customizations, func(i, j int) bool {
		return customizations[i].Action < customizations[j].Action
	})
	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}
