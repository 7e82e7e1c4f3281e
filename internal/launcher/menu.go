// Package launcher реализует меню выбора игры.
package launcher

import (
	"errors"
	"log"
	"time"

	"gioui.org/layout"
	"gioui.org/unit"

	"audiogames/internal/assets"
	"audiogames/internal/i18n"
	"audiogames/internal/playback"
	"audiogames/internal/speech"
	"audiogames/internal/ui"
)

// Sounds отдаёт клипы фраз меню.
type Sounds interface {
	Phrase(text string) (playback.Clip, error)
}

// Notifier сообщает об ошибках вне окна.
type Notifier interface {
	Error(msg string)
}

// Game - пункт меню.
type Game struct {
	Key   string // клавиша запуска
	Label string // ключ i18n строки меню
	Start func() (ui.Screen, error)
}

// Deps - сервисы меню.
type Deps struct {
	Sounds   Sounds
	Speech   *playback.Announcer
	Effects  *playback.Announcer
	Notifier Notifier
	Games    []Game
}

// Menu - корневой экран. Пока идёт игра, меню приостановлено и передаёт
// ей всё.
type Menu struct {
	deps    Deps
	palette ui.Palette

	active   ui.Screen
	starting *Game
	errText  string
	leaving  <-chan struct{}
	finished bool
}

// New создаёт меню и ставит в очередь приветствие.
func New(deps Deps) *Menu {
	m := &Menu{deps: deps, palette: ui.DefaultPalette()}
	m.say(assets.Welcome)
	m.announceOptions()
	return m
}

func (m *Menu) announceOptions() {
	m.say(assets.SelectGame)
	m.say(assets.OptionTiles)
	m.say(assets.OptionRoutine)
	m.say(assets.PressEscape)
}

// Active возвращает запущенную игру.
func (m *Menu) Active() ui.Screen {
	return m.active
}

// Error возвращает последнюю ошибку запуска.
func (m *Menu) Error() string {
	return m.errText
}

// Update ведёт запущенную игру или озвучку меню.
// Игра запускается на кадр позже нажатия, чтобы успел нарисоваться
// индикатор загрузки.
func (m *Menu) Update(now time.Time) {
	if m.starting != nil {
		g := *m.starting
		m.starting = nil
		m.start(g)
		return
	}
	if m.active != nil {
		m.active.Update(now)
		if m.active.Done() {
			m.returnFromGame()
		}
		return
	}

	m.deps.Speech.Poll()
	if m.leaving != nil {
		select {
		case <-m.leaving:
			m.finished = true
		default:
		}
	}
}

func (m *Menu) returnFromGame() {
	m.active.Close()
	m.active = nil
	log.Printf("Возврат в меню")

	m.deps.Effects.Stop()
	m.deps.Speech.Stop()
	m.say(assets.ReturningToMenu)
	m.announceOptions()
}

// HandleKey запускает игру, выходит по Escape или сообщает о неверном выборе.
func (m *Menu) HandleKey(name string) {
	if m.active != nil {
		m.active.HandleKey(name)
		return
	}
	if m.leaving != nil || m.starting != nil {
		return
	}

	if name == ui.KeyEscape {
		m.deps.Speech.Stop()
		m.leaving = m.say(assets.Goodbye)
		return
	}

	for _, g := range m.deps.Games {
		if g.Key == name {
			m.deps.Speech.Stop()
			m.starting = &g
			return
		}
	}

	m.deps.Speech.Stop()
	m.say(assets.InvalidChoice)
}

func (m *Menu) start(g Game) {
	log.Printf("Запуск игры: %s", i18n.T(g.Label))

	screen, err := g.Start()
	if err != nil {
		log.Printf("Не удалось запустить игру: %v", err)
		m.errText = i18n.T("error_start_game") + ": " + err.Error()
		if errors.Is(err, speech.ErrModelNotFound) {
			m.errText = i18n.T("error_model_not_found")
			m.say(assets.StartFailedHint)
		} else {
			m.say(assets.StartFailed)
		}
		if m.deps.Notifier != nil {
			m.deps.Notifier.Error(err.Error())
		}
		m.announceOptions()
		return
	}

	m.errText = ""
	m.active = screen
}

// Done: после Escape прозвучало "Goodbye".
func (m *Menu) Done() bool {
	return m.finished
}

// Close останавливает игру и весь звук.
func (m *Menu) Close() {
	if m.active != nil {
		m.active.Close()
		m.active = nil
	}
	m.deps.Effects.Stop()
	m.deps.Speech.Stop()
}

func (m *Menu) say(text string) <-chan struct{} {
	clip, err := m.deps.Sounds.Phrase(text)
	if err != nil {
		log.Printf("Меню, предупреждение: %v", err)
		done := make(chan struct{})
		close(done)
		return done
	}
	return m.deps.Speech.Enqueue(clip)
}

// Layout рисует игру или меню.
func (m *Menu) Layout(gtx layout.Context) layout.Dimensions {
	if m.active != nil {
		return m.active.Layout(gtx)
	}

	p := m.palette
	ui.Background(gtx, p.BG)

	if m.starting != nil {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return ui.Spinner(gtx, gtx.Now, p.Accent)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return ui.Label(gtx, unit.Sp(16), p.Text, i18n.T("menu_starting"))
				}),
			)
		})
	}

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return ui.Title(gtx, unit.Sp(48), p.Text, i18n.T("menu_title"))
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(48)}.Layout),
	}
	for _, g := range m.deps.Games {
		label := i18n.T(g.Label)
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.Label(gtx, unit.Sp(30), p.Text, label)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(24)}.Layout),
		)
	}
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return ui.Label(gtx, unit.Sp(16), p.TextDim, i18n.T("menu_quit"))
	}))
	if m.errText != "" {
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(24)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.Label(gtx, unit.Sp(14), p.Alert, m.errText)
			}),
		)
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}
