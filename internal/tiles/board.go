// Package tiles реализует Audio Memory Tiles: поле 4x4 скрытых звуков,
// которые нужно найти парами.
package tiles

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// GridSize - сторона поля.
	GridSize = 4
	// CellCount - число плиток.
	CellCount = GridSize * GridSize
	// TotalPairs - число разных звуков.
	TotalPairs = CellCount / 2
	// DefaultResolveDelay - пауза перед проверкой пары.
	DefaultResolveDelay = time.Second
)

// Labels - звуки плиток.
var Labels = []string{"Cat", "Dog", "Bird", "Cow", "Car", "Bell", "Drum", "Duck"}

var (
	ErrIndexOutOfRange = errors.New("tile index out of range")
	ErrInvalidLayout   = errors.New("invalid tile layout")
)

// CellState - состояние плитки.
type CellState int

const (
	Hidden CellState = iota
	Revealed
	Matched
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Phase - фаза выбора на поле.
type Phase int

const (
	Idle Phase = iota
	OneSelected
	TwoSelectedPendingResolve
)

// SelectResult - можно ли открыть плитку.
type SelectResult int

const (
	Accepted SelectResult = iota
	RejectedMatched
	RejectedSame
	RejectedBusy
)

// Selection - открытая плитка.
type Selection struct {
	Index int
	Label string
}

// Resolution - итог проверки пары.
type Resolution struct {
	First, Second Selection
	Matched       bool
	Found         int
	Won           bool
}

// Board - автомат состояний поля. Вызывается только из цикла отрисовки.
type Board struct {
	labels   [CellCount]string
	states   [CellCount]CellState
	first    *Selection
	second   *Selection
	found    int
	pending  int
	delay    time.Duration
	deadline time.Time
}

// NewBoard раскладывает каждый звук дважды в случайном порядке.
func NewBoard(labels []string, rnd *rand.Rand, delay time.Duration) (*Board, error) {
	if len(labels) != TotalPairs {
		return nil, fmt.Errorf("%w: need %d labels, got %d", ErrInvalidLayout, TotalPairs, len(labels))
	}
	cells := make([]string, 0, CellCount)
	cells = append(cells, labels...)
	cells = append(cells, labels...)
	rnd.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	return NewBoardFromLayout(cells, delay)
}

// NewBoardFromLayout берёт раскладку как есть. Каждый звук ровно дважды.
func NewBoardFromLayout(cells []string, delay time.Duration) (*Board, error) {
	if len(cells) != CellCount {
		return nil, fmt.Errorf("%w: need %d cells, got %d", ErrInvalidLayout, CellCount, len(cells))
	}
	counts := make(map[string]int)
	for _, c := range cells {
		counts[c]++
	}
	for label, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("%w: %q appears %d times", ErrInvalidLayout, label, n)
		}
	}
	if delay <= 0 {
		delay = DefaultResolveDelay
	}

	b := &Board{pending: -1, delay: delay}
	copy(b.labels[:], cells)
	return b, nil
}

// Phase возвращает текущую фазу выбора.
func (b *Board) Phase() Phase {
	switch {
	case b.second != nil:
		return TwoSelectedPendingResolve
	case b.first != nil:
		return OneSelected
	default:
		return Idle
	}
}

// Check проверяет выбор, не меняя поле.
// Открытая плитка считается той же самой, даже если это не первая.
func (b *Board) Check(index int) (SelectResult, error) {
	if index < 0 || index >= CellCount {
		return RejectedBusy, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if b.second != nil || b.pending >= 0 {
		return RejectedBusy, nil
	}
	switch b.states[index] {
	case Matched:
		return RejectedMatched, nil
	case Revealed:
		return RejectedSame, nil
	}
	if b.first != nil && b.first.Index == index {
		return RejectedSame, nil
	}
	return Accepted, nil
}

// Request откладывает принятый выбор. Открывает его CommitPending.
func (b *Board) Request(index int) (SelectResult, error) {
	res, err := b.Check(index)
	if err != nil || res != Accepted {
		return res, err
	}
	b.pending = index
	return Accepted, nil
}

// Pending возвращает отложенный выбор.
func (b *Board) Pending() (int, bool) {
	return b.pending, b.pending >= 0
}

// CommitPending открывает отложенную плитку. Вторая плитка пары запускает
// таймер проверки.
func (b *Board) CommitPending(now time.Time) (Selection, bool) {
	if b.pending < 0 {
		return Selection{}, false
	}
	index := b.pending
	b.pending = -1

	sel := Selection{Index: index, Label: b.labels[index]}
	b.states[index] = Revealed
	if b.first == nil {
		b.first = &sel
	} else {
		b.second = &sel
		b.deadline = now.Add(b.delay)
	}
	return sel, true
}

// Select = Request + CommitPending.
func (b *Board) Select(index int, now time.Time) (SelectResult, error) {
	res, err := b.Request(index)
	if err != nil || res != Accepted {
		return res, err
	}
	b.CommitPending(now)
	return Accepted, nil
}

// ResolveDue: пара открыта и пауза истекла.
func (b *Board) ResolveDue(now time.Time) bool {
	return b.second != nil && !now.Before(b.deadline)
}

// Resolve проверяет пару: совпавшие остаются Matched, остальные снова скрыты.
func (b *Board) Resolve() (Resolution, bool) {
	if b.second == nil {
		return Resolution{}, false
	}
	first, second := *b.first, *b.second
	res := Resolution{First: first, Second: second}

	if first.Label == second.Label {
		b.states[first.Index] = Matched
		b.states[second.Index] = Matched
		b.found++
		res.Matched = true
	} else {
		b.states[first.Index] = Hidden
		b.states[second.Index] = Hidden
	}
	b.first, b.second = nil, nil

	res.Found = b.found
	res.Won = b.found == TotalPairs
	return res, true
}

// Score возвращает найденные и все пары.
func (b *Board) Score() (found, total int) {
	return b.found, TotalPairs
}

// Won: все пары найдены.
func (b *Board) Won() bool {
	return b.found == TotalPairs
}

// FirstSelection возвращает первую открытую плитку.
func (b *Board) FirstSelection() (Selection, bool) {
	if b.first == nil {
		return Selection{}, false
	}
	return *b.first, true
}

// State - состояние плитки i.
func (b *Board) State(i int) CellState {
	return b.states[i]
}

// Label - звук плитки i.
func (b *Board) Label(i int) string {
	return b.labels[i]
}

// Cells возвращает копию раскладки.
func (b *Board) Cells() []string {
	return append([]string(nil), b.labels[:]...)
}
