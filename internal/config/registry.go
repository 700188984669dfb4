package config

import (
	"sort"
	"strings"
)

// ActionDescriptions maps action names to human-readable descriptions.
var ActionDescriptions = map[string]string{
	"new_window":      "New window",
	"close_window":    "Close window",
	"minimize_window": "Minimize window",
	"restore_window":  "Restore window",
	"focus_window":    "Focus window",
	"unfocus_window":  "Unfocus window",
	"next_window":     "Next window",
	"prev_window":     "Previous window",

	"tile_grid":           "Tile as grid",
	"tile_around":         "Tile around camera",
	"tile_cockpit":        "Tile as cockpit",
	"toggle_adjust_scale": "Toggle scale adjustment",
	"recalculate":         "Recalculate layout",
	"reset_positions":     "Reset window positions",
	"reset_in_front":      "Gather windows in front",

	"camera_forward":    "Move camera forward",
	"camera_back":       "Move camera back",
	"camera_turn_left":  "Turn camera left",
	"camera_turn_right": "Turn camera right",
	"camera_reset":      "Reset camera",

	"toggle_debug": "Toggle debug logging",
	"toggle_help":  "Toggle help",
	"quit":         "Quit",
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When two actions claim the
// same key the first section in display order wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, section := range cfg.Keybindings.sections() {
		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, action := range actions {
			keys := section[action]
			r.actionToKeys[action] = append(r.actionToKeys[action], keys...)
			for _, key := range keys {
				for _, variant := range r.normalizer.NormalizeKey(key) {
					if _, taken := r.keyToAction[variant]; !taken {
						r.keyToAction[variant] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyToAction[key]; ok {
		return action
	}
	for _, variant := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[variant]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys bound to action joined for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = prettyKey(k)
	}
	return strings.Join(display, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	out := make([]string, 0, len(r.actionToKeys))
	for action := range r.actionToKeys {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}

var keySymbols = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
}

func prettyKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		if sym, ok := keySymbols[p]; ok {
			parts[i] = sym
			continue
		}
		if len(p) > 1 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer canonicalises key strings so config spelling variations map
// to the names the terminal reports.
type KeyNormalizer struct {
	aliases   map[string][]string
	modifiers map[string]bool
	named     map[string]bool
}

// NewKeyNormalizer returns a normalizer with the built-in aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"return": {"enter"},
			"enter":  {"return"},
			"escape": {"esc"},
			"esc":    {"escape"},
			"del":    {"delete"},
			"delete": {"del"},
		},
		modifiers: map[string]bool{
			"ctrl": true, "alt": true, "shift": true, "super": true, "meta": true, "hyper": true,
		},
		named: map[string]bool{
			"enter": true, "return": true, "esc": true, "escape": true, "tab": true,
			"space": true, "backspace": true, "delete": true, "del": true,
			"up": true, "down": true, "left": true, "right": true,
			"home": true, "end": true, "pgup": true, "pgdown": true, "insert": true,
			"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
			"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
		},
	}
}

// NormalizeKey returns the canonical spelling of key followed by any aliases.
// Modifiers are lower-cased; a bare single character keeps its case so "M"
// and "m" stay distinct.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	parts := strings.Split(key, "+")
	if key == "+" {
		parts = []string{"+"}
	}
	last := parts[len(parts)-1]
	for i := range parts[:len(parts)-1] {
		parts[i] = strings.ToLower(parts[i])
	}
	if len(parts) > 1 || len(last) > 1 {
		last = strings.ToLower(last)
	}
	parts[len(parts)-1] = last

	canonical := strings.Join(parts, "+")
	out := []string{canonical}
	prefix := strings.Join(parts[:len(parts)-1], "+")
	for _, alias := range n.aliases[last] {
		if prefix != "" {
			alias = prefix + "+" + alias
		}
		out = append(out, alias)
	}
	return out
}

// ValidateKey reports whether key is a bindable key, with a reason if not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "is empty"
	}
	if key == "+" {
		return true, ""
	}
	parts := strings.Split(strings.ToLower(key), "+")
	for _, mod := range parts[:len(parts)-1] {
		if !n.modifiers[mod] {
			return false, "has unknown modifier " + mod
		}
	}
	last := parts[len(parts)-1]
	switch {
	case last == "":
		return false, "has no key after the modifiers"
	case len([]rune(last)) == 1, n.named[last]:
		return true, ""
	default:
		return false, "is not a known key name"
	}
}
