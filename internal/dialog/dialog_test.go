package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/config"
)

func TestParseModifiers(t *testing.T) {
	mods, err := parseModifiers([]string{"Ctrl", "Super (Win/Cmd)"})
	require.NoError(t, err)
	assert.Equal(t, []config.Modifier{config.ModCtrl, config.ModSuper}, mods)

	_, err = parseModifiers(nil)
	require.Error(t, err)
}

func TestParseKey_RoundTripsLabels(t *testing.T) {
	for _, k := range config.HotkeyKeys {
		got, err := parseKey(keyLabel(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "Space", keyLabel(config.KeySpace))
	assert.Equal(t, "F12", keyLabel(config.KeyF12))

	_, err := parseKey("Return")
	require.Error(t, err)
}
