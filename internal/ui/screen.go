// Package ui содержит общее для лаунчера и игр: интерфейс Screen, имена
// клавиш и функции рисования.
package ui

import (
	"time"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
)

// Screen - то, что сейчас владеет окном. Все методы вызываются из цикла
// событий окна.
type Screen interface {
	// Update продвигает таймеры и звук, раз в кадр.
	Update(now time.Time)
	// HandleKey получает имя нажатой клавиши, см. Keys.
	HandleKey(name string)
	// Layout рисует экран.
	Layout(gtx layout.Context) layout.Dimensions
	// Done: экран хочет закрыться.
	Done() bool
	// Close освобождает ресурсы. Повторный вызов безопасен.
	Close()
}

// Имена клавиш в терминах gio.
const (
	KeyEscape = string(key.NameEscape)
	KeySpace  = string(key.NameSpace)
)

// Keys - клавиши, которые слушает окно.
var Keys = func() []string {
	keys := []string{KeyEscape, KeySpace}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, string(c))
	}
	return keys
}()

// KeyFilters строит фильтры gio для Keys.
func KeyFilters() []event.Filter {
	filters := make([]event.Filter, 0, len(Keys))
	for _, k := range Keys {
		filters = append(filters, key.Filter{Name: key.Name(k)})
	}
	return filters
}

// FrameInterval - период перерисовки окна (~30 fps).
const FrameInterval = 33 * time.Millisecond
