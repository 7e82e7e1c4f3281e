// Package dialog предоставляет GUI диалоги вне окна игры.
package dialog

import (
	"fmt"
	"strings"

	"github.com/ncruces/zenity"

	"audiogames/internal/config"
)

var modifierOptions = []struct {
	label string
	mod   config.Modifier
}{
	{"Ctrl", config.ModCtrl},
	{"Shift", config.ModShift},
	{"Alt", config.ModAlt},
	{"Super (Win/Cmd)", config.ModSuper},
}

// keyLabel возвращает подпись клавиши в списке.
func keyLabel(k config.Key) string {
	if k == config.KeySpace {
		return "Space"
	}
	return strings.ToUpper(string(k))
}

// SelectHotkey открывает диалог выбора клавиши паузы звука.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	labels := make([]string, 0, len(modifierOptions))
	var selected []string
	for _, o := range modifierOptions {
		labels = append(labels, o.label)
		for _, m := range current.Modifiers {
			if m == o.mod {
				selected = append(selected, o.label)
			}
		}
	}

	chosenMods, err := zenity.ListMultiple(
		"Выберите модификаторы:",
		labels,
		zenity.Title("Клавиша паузы звука - Модификаторы"),
		zenity.DefaultItems(selected...),
	)
	if err != nil {
		return current, err
	}
	mods, err := parseModifiers(chosenMods)
	if err != nil {
		return current, err
	}

	keys := make([]string, 0, len(config.HotkeyKeys))
	for _, k := range config.HotkeyKeys {
		keys = append(keys, keyLabel(k))
	}
	chosenKey, err := zenity.List(
		"Выберите клавишу:",
		keys,
		zenity.Title("Клавиша паузы звука - Клавиша"),
		zenity.DefaultItems(keyLabel(current.Key)),
	)
	if err != nil {
		return current, err
	}
	key, err := parseKey(chosenKey)
	if err != nil {
		return current, err
	}

	return config.HotkeyConfig{Modifiers: mods, Key: key}, nil
}

func parseModifiers(chosen []string) ([]config.Modifier, error) {
	if len(chosen) == 0 {
		return nil, fmt.Errorf("необходимо выбрать хотя бы один модификатор")
	}
	mods := make([]config.Modifier, 0, len(chosen))
	for _, s := range chosen {
		for _, o := range modifierOptions {
			if s == o.label {
				mods = append(mods, o.mod)
				break
			}
		}
	}
	return mods, nil
}

func parseKey(label string) (config.Key, error) {
	for _, k := range config.HotkeyKeys {
		if keyLabel(k) == label {
			return k, nil
		}
	}
	return "", fmt.Errorf("неизвестная клавиша: %s", label)
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
