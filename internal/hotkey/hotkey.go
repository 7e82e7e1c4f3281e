// Package hotkey регистрирует глобальную клавишу паузы звука.
package hotkey

import (
	"fmt"
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"audiogames/internal/config"
)

// debounceInterval защищает от автоповтора клавиши.
const debounceInterval = 300 * time.Millisecond

// Handler вызывает onPress на каждое нажатие глобальной клавиши.
type Handler struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	onPress func()
	current config.HotkeyConfig
	stopCh  chan struct{}
}

// New создаёт обработчик горячей клавиши.
func New(onPress func()) *Handler {
	return &Handler{onPress: onPress}
}

// Register регистрирует клавишу, снимая предыдущую.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	key, ok := keyMap[cfg.Key]
	if !ok {
		return fmt.Errorf("неподдерживаемая клавиша: %s", cfg.Key)
	}

	if err := h.Unregister(); err != nil {
		log.Printf("Ошибка снятия горячей клавиши: %v", err)
	}

	mods := make([]hotkey.Modifier, 0, len(cfg.Modifiers))
	for _, m := range cfg.Modifiers {
		if mod, ok := modifierMap[m]; ok {
			mods = append(mods, mod)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("регистрация %s: %w", cfg.String(), err)
	}

	h.hk = hk
	h.current = cfg
	h.stopCh = make(chan struct{})
	log.Printf("Горячая клавиша зарегистрирована: %s", cfg.String())

	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var lastKeydown time.Time
	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if h.onPress != nil {
				h.onPress()
			}
		}
	}
}

// Unregister снимает регистрацию горячей клавиши.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	if h.hk == nil {
		return nil
	}
	err := h.hk.Unregister()
	h.hk = nil
	return err
}

// Current возвращает зарегистрированную клавишу.
func (h *Handler) Current() config.HotkeyConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// RunOnMainThread запускает fn в главном потоке (требование macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// keyMap: config.Key -> hotkey.Key. Модификаторы - в modifiers_*.go.
var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace: hotkey.KeySpace,
	config.KeyM:     hotkey.KeyM,
	config.KeyP:     hotkey.KeyP,
	config.KeyS:     hotkey.KeyS,
	config.KeyF9:    hotkey.KeyF9,
	config.KeyF10:   hotkey.KeyF10,
	config.KeyF11:   hotkey.KeyF11,
	config.KeyF12:   hotkey.KeyF12,
}
