package input

import (
	"fmt"
	"sort"
)

// LoadBindings parses a config section of action name → key names into a sparse override
// Only actions present are populated; an empty list unbinds the action
// Returns error on unknown action names or empty key names
func LoadBindings(raw map[string][]string) (*Bindings, error) {
	b := &Bindings{}

	// Sorted for stable error reporting
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := ActionByName(name)
		if !ok || action == ActionNone {
			return nil, fmt.Errorf("keys: unknown action: %q", name)
		}

		keys := make([]Key, 0, len(raw[name]))
		for _, s := range raw[name] {
			k := NormalizeKey(s)
			if k == "" {
				return nil, fmt.Errorf("keys.%s: empty key name", name)
			}
			keys = append(keys, k)
		}
		b.keys[action] = keys
	}

	return b, nil
}
