// Package app собирает звук, распознавание, ассеты и окно лаунчера.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	gioapp "gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"

	"audiogames/internal/assets"
	"audiogames/internal/audio"
	"audiogames/internal/config"
	"audiogames/internal/hotkey"
	"audiogames/internal/i18n"
	"audiogames/internal/launcher"
	"audiogames/internal/models"
	"audiogames/internal/notify"
	"audiogames/internal/playback"
	"audiogames/internal/routine"
	"audiogames/internal/speech"
	"audiogames/internal/tiles"
	"audiogames/internal/ui"
)

// ErrAudioOutput - нет устройства вывода звука.
var ErrAudioOutput = errors.New("audio output unavailable")

// App владеет общими ресурсами игр (GameContext) и окном.
type App struct {
	mu            sync.Mutex
	config        *config.Config
	library       *assets.Library
	mixer         *playback.Mixer
	speech        *playback.Announcer
	effects       *playback.Announcer
	capture       *audio.Capture
	modelManager  *models.Manager
	speechFactory *speech.Factory
	notifier      *notify.Notifier
	hotkey        *hotkey.Handler
	menu          *launcher.Menu
	cancel        context.CancelFunc
}

// New создаёт приложение. Отсутствие speech/ (assets.ErrSpeechDirMissing)
// и звукового выхода (ErrAudioOutput) - фатальные ошибки.
func New(cfg *config.Config) (*App, error) {
	ApplyLanguage(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	library, err := assets.Load(ctx, assets.Options{
		Root:      cfg.AssetsDir(),
		Labels:    tiles.Labels,
		Levels:    len(routine.Levels),
		CacheSize: cfg.ClipCacheSize(),
	})
	if err != nil {
		cancel()
		return nil, err
	}

	mixer, err := playback.NewMixer()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrAudioOutput, err)
	}

	modelManager, err := models.NewManager(cfg.ModelsDir())
	if err != nil {
		cancel()
		return nil, err
	}

	a := &App{
		config:        cfg,
		library:       library,
		mixer:         mixer,
		speech:        playback.NewAnnouncer(mixer.NewChannel()),
		effects:       playback.NewAnnouncer(mixer.NewChannel()),
		modelManager:  modelManager,
		speechFactory: speech.NewFactory(modelManager, cfg.ModelID(), cfg.SampleRate()),
		notifier:      notify.New(cfg.NotificationsEnabled()),
		cancel:        cancel,
	}
	a.hotkey = hotkey.New(a.onHotkeyPress)

	a.menu = launcher.New(launcher.Deps{
		Sounds:   library,
		Speech:   a.speech,
		Effects:  a.effects,
		Notifier: a.notifier,
		Games: []launcher.Game{
			{Key: "1", Label: "menu_tiles", Start: a.startTiles},
			{Key: "2", Label: "menu_routine", Start: a.startRoutine},
		},
	})

	return a, nil
}

// ApplyLanguage включает язык интерфейса из конфига. Неизвестный язык
// оставляет текущий.
func ApplyLanguage(cfg *config.Config) {
	lang := i18n.Language(cfg.UILanguage())
	if lang == "" {
		return
	}
	for _, l := range i18n.AvailableLanguages() {
		if l == lang {
			i18n.SetLanguage(lang)
			return
		}
	}
	log.Printf("Неизвестный язык интерфейса %q, используется %s", lang, i18n.GetLanguage())
}

func (a *App) startTiles() (ui.Screen, error) {
	s, err := tiles.NewScreen(tiles.Deps{
		Sounds:       a.library,
		Speech:       a.speech,
		Effects:      a.effects,
		ResolveDelay: a.config.TileResolveDelay(),
		EffectMax:    a.config.EffectMax(),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) startRoutine() (ui.Screen, error) {
	mic, err := a.microphone()
	if err != nil {
		return nil, err
	}
	s, err := routine.NewScreen(routine.Deps{
		Sounds:              a.library,
		Speech:              a.speech,
		Recognizers:         a.speechFactory,
		Mic:                 mic,
		Wait:                a.config.RoutineWait(),
		IgnoreWhileSpeaking: a.config.IgnoreWhileSpeaking(),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// microphone открывает portaudio при первом запуске игры с голосом.
func (a *App) microphone() (*audio.Capture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.capture != nil {
		return a.capture, nil
	}
	c, err := audio.NewCapture(a.config.SampleRate(), a.config.BlockSize())
	if err != nil {
		return nil, err
	}
	a.capture = c
	return c, nil
}

func (a *App) onHotkeyPress() {
	paused, err := a.mixer.TogglePause()
	if err != nil {
		log.Printf("Ошибка паузы звука: %v", err)
		return
	}
	if paused {
		log.Printf("Звук на паузе")
		a.notifier.Info(i18n.T("notify_paused"))
	} else {
		log.Printf("Звук включён")
		a.notifier.Info(i18n.T("notify_resumed"))
	}
}

// Run показывает окно и крутит цикл событий до его закрытия.
func (a *App) Run() error {
	if hk := a.config.MuteHotkey(); hk.Enabled() {
		if err := a.hotkey.Register(hk); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
			a.notifier.Info(i18n.T("error_hotkey_register"))
		}
	}

	w := new(gioapp.Window)
	w.Option(
		gioapp.Title(i18n.T("app_name")),
		gioapp.Size(unit.Dp(800), unit.Dp(600)),
		gioapp.MinSize(unit.Dp(480), unit.Dp(400)),
	)

	stopCh := make(chan struct{})
	defer close(stopCh)

	// Перерисовка ~30 раз в секунду
	go func() {
		ticker := time.NewTicker(ui.FrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				w.Invalidate()
			}
		}
	}()

	filters := ui.KeyFilters()
	closing := false
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case gioapp.DestroyEvent:
			return e.Err
		case gioapp.FrameEvent:
			gtx := gioapp.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(filters...)
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.menu.HandleKey(string(ke.Name))
				}
			}

			a.menu.Update(gtx.Now)
			a.menu.Layout(gtx)
			e.Frame(gtx.Ops)

			if a.menu.Done() && !closing {
				closing = true
				w.Perform(system.ActionClose)
			}
		}
	}
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hotkey != nil {
		if err := a.hotkey.Unregister(); err != nil {
			log.Printf("Ошибка снятия горячей клавиши: %v", err)
		}
	}
	if a.menu != nil {
		a.menu.Close()
	}
	if a.capture != nil {
		a.capture.Close()
		a.capture = nil
	}
	if a.mixer != nil {
		if err := a.mixer.Suspend(); err != nil {
			log.Printf("Ошибка остановки звука: %v", err)
		}
	}
	a.cancel()
}

// DownloadModel скачивает модель распознавания из конфига, если её нет.
func DownloadModel(ctx context.Context, cfg *config.Config) error {
	id := cfg.ModelID()
	if id == "" {
		id = models.DefaultModelID()
	}
	info, ok := models.GetModel(id)
	if !ok {
		var known []string
		for _, m := range models.GetModelsByEngine(models.EngineVosk) {
			known = append(known, m.ID)
		}
		return fmt.Errorf("%w: неизвестная модель %s, доступны: %s",
			speech.ErrModelNotFound, id, strings.Join(known, ", "))
	}

	manager, err := models.NewManager(cfg.ModelsDir())
	if err != nil {
		return err
	}
	if manager.IsDownloaded(info) {
		log.Printf("Модель %s уже скачана: %s", info.Name, manager.GetModelPath(info))
		return nil
	}

	progress := make(chan models.Progress, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		lastPercent := -1
		for p := range progress {
			if p.Total <= 0 {
				continue
			}
			percent := int(p.Downloaded * 100 / p.Total)
			if percent/10 != lastPercent/10 || p.Done {
				log.Printf("Загрузка %s: %d%%", info.Name, percent)
				lastPercent = percent
			}
		}
	}()

	log.Printf("Загрузка модели %s (%s)", info.Name, info.URL)
	err = manager.Download(ctx, info, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("загрузка %s: %w", info.Name, err)
	}

	if cfg.ModelID() == "" {
		if err := cfg.SetModelID(id); err != nil {
			log.Printf("Ошибка сохранения конфигурации: %v", err)
		}
	}
	log.Printf("Модель готова: %s", manager.GetModelPath(info))
	return nil
}
