// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"

	"audiogames/internal/i18n"
)

// maxMessageRunes - длина текста ошибки в уведомлении.
const maxMessageRunes = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
	send    func(title, message, icon string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// Error показывает уведомление об ошибке запуска игры.
func (n *Notifier) Error(msg string) {
	if r := []rune(msg); len(r) > maxMessageRunes {
		msg = string(r[:maxMessageRunes]) + "..."
	}
	n.notify(i18n.T("error_start_game"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	appName := i18n.T("app_name")
	// Ошибки уведомлений не критичны
	if title != "" {
		_ = n.send(appName+": "+title, message, "")
	} else {
		_ = n.send(appName, message, "")
	}
}
