package input

import (
	"slices"
	"strings"
)

// Key identifies a physical key by normalized lower-case name
// Letters are single characters ("w"), named keys use DOM-style names ("arrowup", "shift", "space")
type Key string

// Named keys
const (
	KeyShift      Key = "shift"
	KeySpace      Key = "space"
	KeyArrowUp    Key = "arrowup"
	KeyArrowDown  Key = "arrowdown"
	KeyArrowLeft  Key = "arrowleft"
	KeyArrowRight Key = "arrowright"
	KeyEscape     Key = "escape"
)

// keyAliases folds alternative spellings into canonical names
var keyAliases = map[string]Key{
	" ":     KeySpace,
	"up":    KeyArrowUp,
	"down":  KeyArrowDown,
	"left":  KeyArrowLeft,
	"right": KeyArrowRight,
	"esc":   KeyEscape,
}

// NormalizeKey lower-cases and resolves aliases
func NormalizeKey(s string) Key {
	if k, ok := keyAliases[s]; ok {
		return k
	}
	low := strings.ToLower(strings.TrimSpace(s))
	if k, ok := keyAliases[low]; ok {
		return k
	}
	return Key(low)
}

// Action is a semantic control bound to one or more keys
type Action uint8

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionStrafe // Modifier: left/right translate instead of rotate
	ActionFire   // Fires on key release
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "none",
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionStrafe:  "strafe",
	ActionFire:    "fire",
	ActionQuit:    "quit",
}

// String returns the config name of the action
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ActionByName resolves a config action name
func ActionByName(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Bindings maps actions to the keys that trigger them
type Bindings struct {
	keys [actionCount][]Key
}

// DefaultBindings returns WASD + arrows, shift to strafe, space to fire
func DefaultBindings() *Bindings {
	b := &Bindings{}
	b.keys[ActionForward] = []Key{"w", KeyArrowUp}
	b.keys[ActionBack] = []Key{"s", KeyArrowDown}
	b.keys[ActionLeft] = []Key{"a", KeyArrowLeft}
	b.keys[ActionRight] = []Key{"d", KeyArrowRight}
	b.keys[ActionStrafe] = []Key{KeyShift}
	b.keys[ActionFire] = []Key{KeySpace}
	b.keys[ActionQuit] = []Key{KeyEscape}
	return b
}

// Keys returns the keys bound to an action
func (b *Bindings) Keys(a Action) []Key {
	if b == nil || a >= actionCount {
		return nil
	}
	return b.keys[a]
}

// Set replaces the keys bound to an action
func (b *Bindings) Set(a Action, keys ...Key) {
	if a == ActionNone || a >= actionCount {
		return
	}
	b.keys[a] = slices.Clone(keys)
}

// Is reports whether key is bound to action
func (b *Bindings) Is(a Action, key Key) bool {
	return slices.Contains(b.Keys(a), key)
}

// Clone returns a deep copy
func (b *Bindings) Clone() *Bindings {
	c := &Bindings{}
	for i := range b.keys {
		c.keys[i] = slices.Clone(b.keys[i])
	}
	return c
}

// Merge returns base with every action present in override replaced
func Merge(base, override *Bindings) *Bindings {
	result := base.Clone()
	if override == nil {
		return result
	}
	for i := range override.keys {
		if override.keys[i] != nil {
			result.keys[i] = slices.Clone(override.keys[i])
		}
	}
	return result
}
