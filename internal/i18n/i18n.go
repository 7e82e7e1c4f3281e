// Package i18n provides internationalization support for on-screen text.
//
// Spoken phrases are not translated: they are keyed to pre-rendered audio.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name": "Игровой портал",

		// Launcher
		"menu_title":    "Игровой портал",
		"menu_tiles":    "1: Звуковые плитки",
		"menu_routine":  "2: Мой день",
		"menu_quit":     "Esc: выход",
		"menu_starting": "Запуск игры...",

		// Tiles
		"tiles_score": "Пары: %d из %d",
		"tiles_help":  "1-4, Q-R, A-F, Z-V: плитки · I: счёт · Пробел: тишина · Esc: меню",

		// Routine
		"routine_listening":  "Слушаю...",
		"routine_heard":      "Услышано: %s",
		"routine_level":      "Уровень %d из %d",
		"routine_mic_failed": "Микрофон недоступен",

		// Errors
		"error_start_game":      "Не удалось запустить игру",
		"error_model_not_found": "Модель распознавания не найдена. Запустите с -download-model.",
		"error_speech_dir":      "Папка speech не найдена. Запустите gen-speech.",
		"error_audio_output":    "Нет устройства вывода звука",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",

		// Notifications
		"notify_paused":  "Звук на паузе",
		"notify_resumed": "Звук включён",

		// Dialogs
		"hotkey_saved": "Горячая клавиша паузы: %s",
	},

	EN: {
		// App
		"app_name": "Games Portal",

		// Launcher
		"menu_title":    "Game Launcher",
		"menu_tiles":    "1: Audio Memory Tiles",
		"menu_routine":  "2: Daily Routine Adventure",
		"menu_quit":     "Esc: quit",
		"menu_starting": "Starting game...",

		// Tiles
		"tiles_score": "Pairs: %d of %d",
		"tiles_help":  "1-4, Q-R, A-F, Z-V: tiles · I: score · Space: silence · Esc: menu",

		// Routine
		"routine_listening":  "Listening...",
		"routine_heard":      "Heard: %s",
		"routine_level":      "Level %d of %d",
		"routine_mic_failed": "Microphone unavailable",

		// Errors
		"error_start_game":      "Could not start game",
		"error_model_not_found": "Speech model not found. Run with -download-model.",
		"error_speech_dir":      "Speech folder not found. Run gen-speech first.",
		"error_audio_output":    "No audio output device",
		"error_hotkey_register": "Could not register hotkey",

		// Notifications
		"notify_paused":  "Sound paused",
		"notify_resumed": "Sound resumed",

		// Dialogs
		"hotkey_saved": "Pause hotkey: %s",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}
