package routine

import (
	"context"
	"fmt"
	"log"
	"time"

	"gioui.org/layout"
	"gioui.org/unit"

	"audiogames/internal/assets"
	"audiogames/internal/audio"
	"audiogames/internal/i18n"
	"audiogames/internal/playback"
	"audiogames/internal/speech"
	"audiogames/internal/ui"
)

// Sounds отдаёт клипы игры.
type Sounds interface {
	Phrase(text string) (playback.Clip, error)
	VoiceLine(cat assets.Category, level int) (playback.Clip, error)
}

// RecognizerFactory загружает распознаватель для новой игры.
type RecognizerFactory interface {
	Create() (speech.Recognizer, error)
}

// Deps - сервисы, нужные игре.
type Deps struct {
	Sounds      Sounds
	Speech      *playback.Announcer
	Recognizers RecognizerFactory
	Mic         audio.Microphone
	Wait        time.Duration
	// IgnoreWhileSpeaking отбрасывает услышанное во время озвучки.
	IgnoreWhileSpeaking bool
}

// Screen ведёт одну партию Daily Routine Adventure.
type Screen struct {
	deps    Deps
	game    *Game
	palette ui.Palette

	queue    *audio.Queue
	commands <-chan speech.Command
	cancel   context.CancelFunc

	heard     string
	micFailed bool
	stopped   bool
	finished  bool
}

// NewScreen загружает распознаватель и включает микрофон. Отсутствие модели
// возвращается как speech.ErrModelNotFound.
func NewScreen(deps Deps) (*Screen, error) {
	game, err := NewGame(Levels, deps.Wait)
	if err != nil {
		return nil, err
	}

	rec, err := deps.Recognizers.Create()
	if err != nil {
		return nil, err
	}

	s := &Screen{
		deps:    deps,
		game:    game,
		palette: ui.DefaultPalette(),
		queue:   audio.NewQueue(),
	}

	if err := deps.Mic.Start(s.queue); err != nil {
		log.Printf("Ошибка микрофона: %v", err)
		s.micFailed = true
	}

	listener := speech.NewListener(s.queue, rec)
	s.commands = listener.Commands()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		listener.Run(ctx)
		rec.Close()
	}()

	s.say(assets.RoutineWelcome)
	log.Printf("Мой день: новая игра, распознаватель %s", rec.Name())
	return s, nil
}

// Game возвращает автомат состояний.
func (s *Screen) Game() *Game {
	return s.game
}

// Heard возвращает последнюю учтённую фразу.
func (s *Screen) Heard() string {
	return s.heard
}

// MicFailed: захват или распознавание остановились.
func (s *Screen) MicFailed() bool {
	return s.micFailed
}

// Update озвучивает подсказки, применяет фразы и переключает уровни.
func (s *Screen) Update(now time.Time) {
	if s.finished {
		return
	}

	for _, cue := range s.game.Tick(now) {
		s.play(cue)
	}
	s.drain(now)
	s.deps.Speech.Poll()

	if s.game.Phase() == Finished {
		s.stop()
	}
	if s.game.Done(now) {
		log.Printf("Мой день: игра окончена")
		s.finished = true
	}
}

// drain забирает все команды слушателя без блокировки.
func (s *Screen) drain(now time.Time) {
	for {
		select {
		case cmd, ok := <-s.commands:
			if !ok {
				s.commands = nil
				return
			}
			s.apply(cmd, now)
		default:
			return
		}
	}
}

func (s *Screen) apply(cmd speech.Command, now time.Time) {
	if cmd.Err != nil {
		s.micFailed = true
		return
	}
	if s.deps.IgnoreWhileSpeaking && s.deps.Speech.Busy() {
		log.Printf("Мой день: пропущено во время озвучки: %q", cmd.Transcript)
		return
	}

	s.heard = cmd.Transcript
	if cue, ok := s.game.HandleTranscript(cmd.Transcript, now); ok {
		log.Printf("Мой день: уровень %d, %s", s.game.Index(), cue.Category)
		s.play(cue)
	}
}

func (s *Screen) play(cue Cue) {
	clip, err := s.deps.Sounds.VoiceLine(cue.Category, cue.Level)
	if err != nil {
		log.Printf("Предупреждение: %v", err)
		return
	}
	s.deps.Speech.Enqueue(clip)
}

func (s *Screen) say(text string) {
	clip, err := s.deps.Sounds.Phrase(text)
	if err != nil {
		log.Printf("Предупреждение: %v", err)
		return
	}
	s.deps.Speech.Enqueue(clip)
}

// HandleKey: Escape - выход. Остальное вводится голосом.
func (s *Screen) HandleKey(name string) {
	if name == ui.KeyEscape {
		s.Close()
	}
}

// Done: после Escape или после показа конца игры.
func (s *Screen) Done() bool {
	return s.finished
}

// Close выключает микрофон и заглушает речь.
func (s *Screen) Close() {
	s.stop()
	s.deps.Speech.Stop()
	s.finished = true
}

// stop останавливает захват и распознавание, очередь речи не трогает.
func (s *Screen) stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancel()
	s.deps.Mic.Stop()
	s.queue.Close()
}

// Layout рисует уровень, текущий текст и услышанную фразу.
func (s *Screen) Layout(gtx layout.Context) layout.Dimensions {
	p := s.palette
	ui.Background(gtx, p.BG)

	status := i18n.T("routine_listening")
	statusCol := p.TextDim
	if s.micFailed {
		status = i18n.T("routine_mic_failed")
		statusCol = p.Alert
	}

	return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				text := fmt.Sprintf(i18n.T("routine_level"), s.game.Index()+1, s.game.Levels())
				return ui.Label(gtx, unit.Sp(14), p.TextDim, text)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					col := p.Text
					if s.game.Phase() == Resolved {
						col = p.Alert
						if s.game.Matched() {
							col = p.Good
						}
					}
					return ui.Title(gtx, unit.Sp(28), col, s.game.Display())
				})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if s.heard == "" {
					return layout.Dimensions{}
				}
				return ui.Label(gtx, unit.Sp(14), p.TextDim, fmt.Sprintf(i18n.T("routine_heard"), s.heard))
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.Label(gtx, unit.Sp(12), statusCol, status)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.LevelMeter(gtx, s.deps.Mic.Level(), p)
			}),
		)
	})
}
