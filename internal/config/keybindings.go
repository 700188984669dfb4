package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "tiling" when a mode is active, "!tiling" otherwise
	Bindings  []Keybinding
}

// HelpSections lists the actions shown in each help section, in order.
var HelpSections = []struct {
	Title   string
	Actions []string
}{
	{
		Title: "WINDOW MANAGEMENT",
		Actions: []string{
			"new_window", "close_window", "minimize_window", "restore_window",
			"focus_window", "unfocus_window", "next_window", "prev_window",
		},
	},
	{
		Title: "LAYOUT",
		Actions: []string{
			"tile_grid", "tile_around", "tile_cockpit", "toggle_adjust_scale",
			"recalculate", "reset_positions", "reset_in_front",
		},
	},
	{
		Title: "CAMERA",
		Actions: []string{
			"camera_forward", "camera_back", "camera_turn_left", "camera_turn_right", "camera_reset",
		},
	},
	{
		Title:   "SYSTEM",
		Actions: []string{"toggle_debug", "toggle_help", "quit"},
	},
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is provided, it generates bindings dynamically from user config
// If registry is nil, it falls back to the default keymap
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}
	for _, hs := range HelpSections {
		section := KeybindingSection{
			Title:    hs.Title,
			Bindings: []Keybinding{},
		}
		for _, action := range hs.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}

	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title:     "TILED:",
			Condition: "tiling",
			Bindings: []Keybinding{
				{"camera keys", "Layout follows the camera"},
				{"0", "Leave tiling"},
			},
		},
		{
			Title:     "FREE:",
			Condition: "!tiling",
			Bindings: []Keybinding{
				{"g/a/c", "Pick a tiling mode"},
			},
		},
	}
}
