// Package config предоставляет конфигурацию приложения с сохранением в файл.
//
// Порядок: значения по умолчанию, затем config.json рядом с бинарником,
// затем переменные окружения AUDIOGAMES_* и флаги командной строки.
// В файл сохраняется только файловый слой: env и флаги остаются временными.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v10"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу глобальной горячей клавиши.
type Key string

const (
	KeySpace Key = "space"
	KeyM     Key = "m"
	KeyP     Key = "p"
	KeyS     Key = "s"
	KeyF9    Key = "f9"
	KeyF10   Key = "f10"
	KeyF11   Key = "f11"
	KeyF12   Key = "f12"
)

// HotkeyKeys - клавиши, доступные для глобальной горячей клавиши.
var HotkeyKeys = []Key{KeySpace, KeyM, KeyP, KeyS, KeyF9, KeyF10, KeyF11, KeyF12}

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		result += string(m) + "+"
	}
	return result + string(h.Key)
}

// Enabled сообщает, задана ли клавиша.
func (h HotkeyConfig) Enabled() bool {
	return h.Key != ""
}

// Duration - длительность в config.json: строка вида "3s" или "250ms",
// число считается секундами.
type Duration time.Duration

// MarshalText пишет длительность строкой.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText разбирает строку time.ParseDuration (env и JSON).
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("длительность %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalJSON принимает строку или число секунд.
func (d *Duration) UnmarshalJSON(raw []byte) error {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		return d.UnmarshalText([]byte(s))
	}
	secs, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("длительность %s: %w", raw, err)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// Data - сериализуемые настройки.
type Data struct {
	AssetsDir           string        `json:"assets_dir" env:"ASSETS_DIR"`
	ModelsDir           string        `json:"models_dir,omitempty" env:"MODELS_DIR"`
	ModelID             string        `json:"model_id,omitempty" env:"MODEL_ID"`
	UILanguage          string        `json:"ui_language,omitempty" env:"UI_LANGUAGE"`
	Notifications       bool          `json:"notifications" env:"NOTIFICATIONS"`
	MuteHotkey          HotkeyConfig  `json:"mute_hotkey"`
	SampleRate          int           `json:"sample_rate" env:"SAMPLE_RATE"`
	BlockSize           int           `json:"block_size" env:"BLOCK_SIZE"`
	RoutineWait         Duration      `json:"routine_wait" env:"ROUTINE_WAIT"`
	TileResolveDelay    Duration      `json:"tile_resolve_delay" env:"TILE_RESOLVE_DELAY"`
	EffectMax           Duration      `json:"effect_max" env:"EFFECT_MAX"`
	IgnoreWhileSpeaking bool          `json:"ignore_while_speaking" env:"IGNORE_WHILE_SPEAKING"`
	ClipCacheSize       int           `json:"clip_cache_size" env:"CLIP_CACHE_SIZE"`
}

// Defaults возвращает настройки по умолчанию.
func Defaults() Data {
	return Data{
		AssetsDir:     "assets",
		UILanguage:    "en",
		Notifications: true,
		MuteHotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeyM,
		},
		SampleRate:          16000,
		BlockSize:           8000,
		RoutineWait:         Duration(3 * time.Second),
		TileResolveDelay:    Duration(time.Second),
		EffectMax:           Duration(3 * time.Second),
		IgnoreWhileSpeaking: true,
		ClipCacheSize:       64,
	}
}

// Config хранит настройки приложения.
type Config struct {
	mu         sync.RWMutex
	file       Data // то, что лежит в config.json
	data       Data // file + env + флаги
	configPath string
}

// New создаёт конфигурацию рядом с бинарником.
func New() (*Config, error) {
	path := ""
	execPath, err := os.Executable()
	if err == nil {
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			path = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}
	return Load(path)
}

// Load читает конфигурацию из path (пустой path - только defaults и env).
// Отсутствующий файл не ошибка. Битый файл или env - ошибка.
func Load(path string) (*Config, error) {
	c := &Config{file: Defaults(), configPath: path}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, &c.file); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	c.data = c.file
	if err := env.ParseWithOptions(&c.data, env.Options{Prefix: "AUDIOGAMES_"}); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	// Относительный путь к ассетам считаем от файла конфигурации
	if path != "" && !filepath.IsAbs(c.data.AssetsDir) {
		c.data.AssetsDir = filepath.Join(filepath.Dir(path), c.data.AssetsDir)
	}

	return c, nil
}

// save сохраняет файловый слой.
func (c *Config) save() error {
	if c.configPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(c.file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0644)
}

// AssetsDir возвращает корень ассетов.
func (c *Config) AssetsDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.AssetsDir
}

// SetAssetsDir меняет корень ассетов (флаг -assets), без сохранения.
func (c *Config) SetAssetsDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.AssetsDir = dir
}

// ModelsDir возвращает директорию моделей (пусто - рядом с бинарником).
func (c *Config) ModelsDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ModelsDir
}

// ModelID возвращает ID модели распознавания.
func (c *Config) ModelID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ModelID
}

// SetModelID устанавливает ID модели распознавания.
func (c *Config) SetModelID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file.ModelID = id
	c.data.ModelID = id
	return c.save()
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// MuteHotkey возвращает глобальную клавишу тишины.
func (c *Config) MuteHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.MuteHotkey
}

// SetMuteHotkey сохраняет глобальную клавишу тишины.
func (c *Config) SetMuteHotkey(h HotkeyConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file.MuteHotkey = h
	c.data.MuteHotkey = h
	return c.save()
}

// SampleRate возвращает частоту захвата микрофона.
func (c *Config) SampleRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.SampleRate
}

// BlockSize возвращает размер блока захвата в кадрах.
func (c *Config) BlockSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.BlockSize
}

// RoutineWait - пауза между уровнями Daily Routine.
func (c *Config) RoutineWait() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.RoutineWait)
}

// TileResolveDelay - задержка проверки пары плиток.
func (c *Config) TileResolveDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.TileResolveDelay)
}

// EffectMax - максимальная длительность звука плитки.
func (c *Config) EffectMax() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.EffectMax)
}

// IgnoreWhileSpeaking - отбрасывать фразы, услышанные во время озвучки.
func (c *Config) IgnoreWhileSpeaking() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.IgnoreWhileSpeaking
}

// ClipCacheSize - ёмкость LRU декодированных клипов.
func (c *Config) ClipCacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ClipCacheSize
}
