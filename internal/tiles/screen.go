package tiles

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"gioui.org/layout"
	"gioui.org/unit"

	"audiogames/internal/assets"
	"audiogames/internal/i18n"
	"audiogames/internal/playback"
	"audiogames/internal/ui"
)

// Sounds отдаёт клипы фраз и звуков плиток.
type Sounds interface {
	Phrase(text string) (playback.Clip, error)
	Effect(label string) (playback.Clip, error)
}

// Deps - сервисы, нужные игре.
type Deps struct {
	Sounds       Sounds
	Speech       *playback.Announcer
	Effects      *playback.Announcer
	ResolveDelay time.Duration
	EffectMax    time.Duration
	Rand         *rand.Rand
}

// Screen ведёт одну партию Audio Memory Tiles.
type Screen struct {
	deps    Deps
	board   *Board
	palette ui.Palette

	// повтор первой плитки после "Your first choice was a"
	replay      <-chan struct{}
	replayLabel string

	leaving  <-chan struct{}
	finished bool
}

// keyIndex: имя клавиши -> номер плитки, по строкам.
var keyIndex = func() map[string]int {
	m := make(map[string]int, len(assets.TileKeys))
	for i, k := range assets.TileKeys {
		m[k] = i
	}
	return m
}()

// NewScreen раскладывает новое поле и ставит в очередь вступление.
func NewScreen(deps Deps) (*Screen, error) {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	board, err := NewBoard(Labels, deps.Rand, deps.ResolveDelay)
	if err != nil {
		return nil, err
	}
	return newScreen(deps, board), nil
}

func newScreen(deps Deps, board *Board) *Screen {
	s := &Screen{deps: deps, board: board, palette: ui.DefaultPalette()}
	for _, phrase := range []string{
		assets.TilesWelcome,
		assets.TilesBegin,
		assets.TilesKeys,
		assets.TilesScoreHint,
		assets.TilesSpaceHint,
		assets.TilesEscapeHint,
	} {
		s.say(phrase)
	}
	log.Printf("Плитки: новая игра")
	return s
}

// Board возвращает состояние поля.
func (s *Screen) Board() *Board {
	return s.board
}

// Update проигрывает очередь, открывает отложенную плитку и проверяет пары.
func (s *Screen) Update(now time.Time) {
	if s.finished {
		return
	}
	s.deps.Speech.Poll()
	s.deps.Effects.Poll()

	if s.leaving != nil {
		select {
		case <-s.leaving:
			s.finished = true
		default:
		}
		return
	}

	if s.replay != nil {
		select {
		case <-s.replay:
			s.playEffect(s.replayLabel)
			s.replay = nil
		default:
		}
	}

	if _, ok := s.board.Pending(); ok && !s.deps.Speech.Busy() {
		if sel, ok := s.board.CommitPending(now); ok {
			s.playEffect(sel.Label)
		}
	}

	if s.board.ResolveDue(now) && !s.deps.Speech.Busy() && !s.deps.Effects.Busy() {
		s.resolve()
	}
}

func (s *Screen) resolve() {
	res, ok := s.board.Resolve()
	if !ok {
		return
	}
	if !res.Matched {
		log.Printf("Плитки: %s и %s не совпали", res.First.Label, res.Second.Label)
		s.say(assets.TilesTryAgain)
		return
	}

	log.Printf("Плитки: пара %s, найдено %d", res.First.Label, res.Found)
	s.say(assets.TilesMatch)
	s.sayScore()
	if res.Won {
		s.leaving = s.say(assets.TilesWin)
	}
}

// acceptsInput: нет проверки пары, отложенного выбора и очереди речи.
func (s *Screen) acceptsInput() bool {
	if s.leaving != nil {
		return false
	}
	if _, pending := s.board.Pending(); pending {
		return false
	}
	if s.board.Phase() == TwoSelectedPendingResolve {
		return false
	}
	return s.deps.Speech.Pending() == 0
}

// HandleKey обрабатывает Escape, Space, I и клавиши плиток.
func (s *Screen) HandleKey(name string) {
	switch name {
	case ui.KeyEscape:
		s.stopAll()
		s.finished = true
		return
	case ui.KeySpace:
		s.stopAll()
		return
	}

	if !s.acceptsInput() {
		return
	}

	if name == "I" {
		s.stopAll()
		s.sayScore()
		return
	}

	index, ok := keyIndex[name]
	if !ok {
		return
	}

	s.stopAll()
	s.say(name)

	res, err := s.board.Request(index)
	if err != nil {
		log.Printf("Плитки: %v", err)
		return
	}
	switch res {
	case RejectedMatched:
		s.say(assets.TilesMatched)
		if first, ok := s.board.FirstSelection(); ok {
			s.replay = s.say(assets.TilesFirstChoice)
			s.replayLabel = first.Label
		}
	case RejectedSame:
		s.say(assets.TilesSameTile)
	}
}

// Done: после Escape или после объявления победы.
func (s *Screen) Done() bool {
	return s.finished
}

// Close заглушает оба канала.
func (s *Screen) Close() {
	s.stopAll()
	s.finished = true
}

func (s *Screen) stopAll() {
	s.replay = nil
	s.deps.Effects.Stop()
	s.deps.Speech.Stop()
}

func (s *Screen) sayScore() {
	found, total := s.board.Score()
	s.say(assets.TilesScore)
	s.say(strconv.Itoa(found))
	s.say(assets.TilesOf)
	s.say(strconv.Itoa(total))
}

// say ставит фразу в очередь. Для отсутствующей фразы возвращается уже
// закрытый канал.
func (s *Screen) say(text string) <-chan struct{} {
	clip, err := s.deps.Sounds.Phrase(text)
	if err != nil {
		log.Printf("Предупреждение: %v", err)
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.deps.Speech.Enqueue(clip)
}

func (s *Screen) playEffect(label string) {
	clip, err := s.deps.Sounds.Effect(label)
	if err != nil {
		log.Printf("Звук для %s не найден", label)
		return
	}
	if s.deps.EffectMax > 0 {
		clip = clip.Truncate(s.deps.EffectMax)
	}
	s.deps.Effects.Enqueue(clip)
}

// Layout рисует поле, счёт и подсказку по клавишам.
func (s *Screen) Layout(gtx layout.Context) layout.Dimensions {
	p := s.palette
	ui.Background(gtx, p.BG)

	found, total := s.board.Score()
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.Title(gtx, unit.Sp(20), p.Text, fmt.Sprintf(i18n.T("tiles_score"), found, total))
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return ui.Grid(gtx, GridSize, GridSize, unit.Dp(10), s.layoutTile)
				})
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.Label(gtx, unit.Sp(12), p.TextDim, i18n.T("tiles_help"))
			}),
		)
	})
}

func (s *Screen) layoutTile(gtx layout.Context, i int) layout.Dimensions {
	p := s.palette
	switch s.board.State(i) {
	case Revealed:
		return ui.Tile(gtx, p.Revealed, p.BG, s.board.Label(i))
	case Matched:
		return ui.Tile(gtx, p.Good, p.BG, s.board.Label(i))
	default:
		return ui.Tile(gtx, p.Panel, p.TextDim, assets.TileKeys[i])
	}
}
