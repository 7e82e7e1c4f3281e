package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "assets", c.AssetsDir())
	require.Equal(t, 16000, c.SampleRate())
	require.Equal(t, 8000, c.BlockSize())
	require.Equal(t, 3*time.Second, c.RoutineWait())
	require.Equal(t, time.Second, c.TileResolveDelay())
	require.Equal(t, 3*time.Second, c.EffectMax())
	require.True(t, c.IgnoreWhileSpeaking())
	require.True(t, c.NotificationsEnabled())
	require.Equal(t, "ctrl+shift+m", c.MuteHotkey().String())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"assets_dir": "data",
		"model_id": "vosk-en",
		"routine_wait": "5s",
		"notifications": false
	}`), 0644))

	t.Setenv("AUDIOGAMES_MODEL_ID", "vosk-en-lgraph")
	t.Setenv("AUDIOGAMES_TILE_RESOLVE_DELAY", "250ms")

	c, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "data"), c.AssetsDir())
	require.Equal(t, "vosk-en-lgraph", c.ModelID())
	require.Equal(t, 5*time.Second, c.RoutineWait())
	require.Equal(t, 250*time.Millisecond, c.TileResolveDelay())
	require.False(t, c.NotificationsEnabled())
	// не заданные в файле поля остаются по умолчанию
	require.Equal(t, 8000, c.BlockSize())
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSetModelID_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, c.SetModelID("vosk-en"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "vosk-en", reloaded.ModelID())
}

func TestSave_KeepsEnvAndFlagsOutOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"assets_dir": "data"}`), 0644))

	t.Setenv("AUDIOGAMES_ROUTINE_WAIT", "10s")
	c, err := Load(path)
	require.NoError(t, err)
	c.SetAssetsDir("/tmp/flag-only")
	require.Equal(t, 10*time.Second, c.RoutineWait())
	require.Equal(t, "/tmp/flag-only", c.AssetsDir())

	require.NoError(t, c.SetModelID("vosk-en"))

	var saved map[string]any
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Equal(t, "data", saved["assets_dir"])
	require.Equal(t, "3s", saved["routine_wait"])
	require.Equal(t, "vosk-en", saved["model_id"])

	require.NoError(t, os.Unsetenv("AUDIOGAMES_ROUTINE_WAIT"))
	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, reloaded.RoutineWait())
	require.Equal(t, filepath.Join(dir, "data"), reloaded.AssetsDir())
	require.Equal(t, "vosk-en", reloaded.ModelID())
}

func TestLoad_Durations(t *testing.T) {
	tests := []struct {
		name string
		json string
		want time.Duration
		err  bool
	}{
		{"строка", `{"routine_wait": "1500ms"}`, 1500 * time.Millisecond, false},
		{"число секунд", `{"routine_wait": 3}`, 3 * time.Second, false},
		{"дробные секунды", `{"routine_wait": 0.5}`, 500 * time.Millisecond, false},
		{"мусор", `{"routine_wait": "soon"}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.json), 0644))

			c, err := Load(path)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, c.RoutineWait())
		})
	}
}

func TestSetMuteHotkey_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c, err := Load(path)
	require.NoError(t, err)

	hk := HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyF9}
	require.NoError(t, c.SetMuteHotkey(hk))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "alt+f9", reloaded.MuteHotkey().String())
	require.True(t, reloaded.MuteHotkey().Enabled())
	require.False(t, HotkeyConfig{}.Enabled())
}
