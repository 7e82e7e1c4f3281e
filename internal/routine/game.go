// Package routine реализует Daily Routine Adventure: фиксированный сценарий
// подсказок, на которые ребёнок отвечает голосом.
package routine

import (
	"errors"
	"strings"
	"time"

	"audiogames/internal/assets"
)

// GameOverText показывается после последнего уровня.
const GameOverText = "Game Over! You did great."

// DefaultWait - пауза между итогом и следующим уровнем.
const DefaultWait = 3 * time.Second

// Phase - фаза текущего уровня.
type Phase int

const (
	AwaitingPrompt Phase = iota
	Listening
	Resolved
	Finished
)

func (p Phase) String() string {
	switch p {
	case AwaitingPrompt:
		return "awaiting-prompt"
	case Listening:
		return "listening"
	case Resolved:
		return "resolved"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Cue - реплика, которую нужно проиграть.
type Cue struct {
	Category assets.Category
	Level    int
}

// Game - автомат состояний игры. Без блокировок: вызывается только из цикла
// отрисовки.
type Game struct {
	levels   []Level
	wait     time.Duration
	index    int
	phase    Phase
	result   string
	matched  bool
	deadline time.Time
}

// NewGame начинает с уровня 0 в фазе AwaitingPrompt.
func NewGame(levels []Level, wait time.Duration) (*Game, error) {
	if len(levels) == 0 {
		return nil, errors.New("routine: нет уровней")
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Game{levels: levels, wait: wait}, nil
}

// Tick выполняет переходы по времени и возвращает реплики для озвучки.
func (g *Game) Tick(now time.Time) []Cue {
	switch g.phase {
	case AwaitingPrompt:
		g.phase = Listening
		return []Cue{{Category: assets.CategoryPrompt, Level: g.index}}
	case Resolved:
		if now.Before(g.deadline) {
			return nil
		}
		g.index++
		g.result = ""
		if g.index >= len(g.levels) {
			g.index = len(g.levels) - 1
			g.phase = Finished
			g.deadline = now.Add(g.wait)
			return nil
		}
		g.phase = AwaitingPrompt
	}
	return nil
}

// HandleTranscript завершает текущий уровень. Вне Listening фраза
// игнорируется.
func (g *Game) HandleTranscript(text string, now time.Time) (Cue, bool) {
	if g.phase != Listening {
		return Cue{}, false
	}

	level := g.levels[g.index]
	g.matched = Matches(text, level.Accepted)
	cue := Cue{Level: g.index}
	if g.matched {
		g.result = level.Success
		cue.Category = assets.CategorySuccess
	} else {
		g.result = level.Fail
		cue.Category = assets.CategoryFail
	}
	g.phase = Resolved
	g.deadline = now.Add(g.wait)
	return cue, true
}

// Matches: правильная фраза входит в распознанный текст, без учёта регистра.
func Matches(transcript, accepted string) bool {
	return strings.Contains(strings.ToLower(transcript), strings.ToLower(accepted))
}

// Display возвращает текст для текущего кадра.
func (g *Game) Display() string {
	switch g.phase {
	case Resolved:
		return g.result
	case Finished:
		return GameOverText
	default:
		return g.levels[g.index].Prompt
	}
}

// Done: текст конца игры показан достаточно долго.
func (g *Game) Done(now time.Time) bool {
	return g.phase == Finished && !now.Before(g.deadline)
}

// Phase возвращает текущую фазу.
func (g *Game) Phase() Phase { return g.phase }

// Index возвращает номер уровня.
func (g *Game) Index() int { return g.index }

// Levels возвращает число уровней.
func (g *Game) Levels() int { return len(g.levels) }

// Matched: последний уровень пройден верно.
func (g *Game) Matched() bool { return g.matched }

// Deadline - конец текущей паузы.
func (g *Game) Deadline() time.Time { return g.deadline }
