package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"W", "w"},
		{" ", KeySpace},
		{"Space", KeySpace},
		{"ArrowUp", KeyArrowUp},
		{"up", KeyArrowUp},
		{"Shift", KeyShift},
		{"esc", KeyEscape},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "in=%q", tt.in)
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	assert.True(t, b.Is(ActionForward, "w"))
	assert.True(t, b.Is(ActionForward, KeyArrowUp))
	assert.True(t, b.Is(ActionBack, "s"))
	assert.True(t, b.Is(ActionLeft, "a"))
	assert.True(t, b.Is(ActionRight, KeyArrowRight))
	assert.True(t, b.Is(ActionStrafe, KeyShift))
	assert.True(t, b.Is(ActionFire, KeySpace))
	assert.False(t, b.Is(ActionFire, "w"))
}

func TestActionByName(t *testing.T) {
	a, ok := ActionByName(" Fire ")
	require.True(t, ok)
	assert.Equal(t, ActionFire, a)

	_, ok = ActionByName("jump")
	assert.False(t, ok)
}

func TestLoadBindingsAndMerge(t *testing.T) {
	override, err := LoadBindings(map[string][]string{
		"fire":    {"Enter"},
		"forward": {"i", "Up"},
	})
	require.NoError(t, err)

	merged := Merge(DefaultBindings(), override)
	assert.Equal(t, []Key{"enter"}, merged.Keys(ActionFire))
	assert.Equal(t, []Key{"i", KeyArrowUp}, merged.Keys(ActionForward))
	// Untouched actions keep defaults
	assert.Equal(t, []Key{"s", KeyArrowDown}, merged.Keys(ActionBack))
}

func TestLoadBindingsErrors(t *testing.T) {
	_, err := LoadBindings(map[string][]string{"jump": {"j"}})
	assert.ErrorContains(t, err, "unknown action")

	_, err = LoadBindings(map[string][]string{"fire": {"  "}})
	assert.ErrorContains(t, err, "empty key name")
}

func TestCloneIsDeep(t *testing.T) {
	a := DefaultBindings()
	b := a.Clone()
	b.Set(ActionFire, "x")
	assert.True(t, a.Is(ActionFire, KeySpace))
}
