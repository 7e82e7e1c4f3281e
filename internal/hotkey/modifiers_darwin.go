//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"audiogames/internal/config"
)

// modifierMap - модификаторы клавиши тишины (macOS).
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.ModOption,
	config.ModSuper: hotkey.ModCmd,
}
