package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/assets"
	"audiogames/internal/config"
	"audiogames/internal/i18n"
	"audiogames/internal/models"
	"audiogames/internal/speech"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AUDIOGAMES_MODELS_DIR", filepath.Join(dir, "models"))
	t.Setenv("AUDIOGAMES_ASSETS_DIR", filepath.Join(dir, "assets"))
	cfg, err := config.Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	return cfg
}

func TestNew_SpeechDirMissing(t *testing.T) {
	_, err := New(testConfig(t))
	require.ErrorIs(t, err, assets.ErrSpeechDirMissing)
}

func TestDownloadModel_UnknownModel(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.SetModelID("no-such-model"))

	err := DownloadModel(context.Background(), cfg)
	require.ErrorIs(t, err, speech.ErrModelNotFound)
	assert.Contains(t, err.Error(), models.DefaultModelID())
}

func TestApplyLanguage(t *testing.T) {
	defer i18n.SetLanguage(i18n.EN)

	t.Setenv("AUDIOGAMES_UI_LANGUAGE", "ru")
	ApplyLanguage(testConfig(t))
	assert.Equal(t, i18n.RU, i18n.GetLanguage())

	t.Setenv("AUDIOGAMES_UI_LANGUAGE", "de")
	ApplyLanguage(testConfig(t))
	assert.Equal(t, i18n.RU, i18n.GetLanguage(), "unknown language keeps the current one")
}

func TestDownloadModel_AlreadyOnDisk(t *testing.T) {
	cfg := testConfig(t)
	info, ok := models.GetModel(models.DefaultModelID())
	require.True(t, ok)

	mgr, err := models.NewManager(cfg.ModelsDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(mgr.GetModelPath(info), 0755))

	require.NoError(t, DownloadModel(context.Background(), cfg))
	assert.Empty(t, cfg.ModelID(), "nothing was downloaded, config untouched")
}
