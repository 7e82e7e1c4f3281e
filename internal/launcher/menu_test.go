package launcher

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gioui.org/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/assets"
	"audiogames/internal/i18n"
	"audiogames/internal/playback"
	"audiogames/internal/speech"
	"audiogames/internal/ui"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type channel struct {
	playing bool
	played  []string
}

func (c *channel) Play(clip playback.Clip) {
	c.playing = true
	c.played = append(c.played, clip.Name)
}
func (c *channel) Busy() bool { return c.playing }
func (c *channel) Stop()      { c.playing = false }

type sounds struct{}

func (sounds) Phrase(text string) (playback.Clip, error) {
	return playback.Clip{Name: text}, nil
}

type notifier struct{ errors []string }

func (n *notifier) Error(msg string) { n.errors = append(n.errors, msg) }

// game is a screen that finishes when told to.
type game struct {
	updates int
	keys    []string
	done    bool
	closed  bool
}

func (g *game) Update(time.Time)                        { g.updates++ }
func (g *game) HandleKey(name string)                   { g.keys = append(g.keys, name) }
func (g *game) Layout(layout.Context) layout.Dimensions { return layout.Dimensions{} }
func (g *game) Done() bool                              { return g.done }
func (g *game) Close()                                  { g.closed = true }

type fixture struct {
	menu     *Menu
	speech   *channel
	notifier *notifier
	tiles    *game
	startErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	i18n.SetLanguage(i18n.EN)
	f := &fixture{speech: &channel{}, notifier: &notifier{}, tiles: &game{}}
	f.menu = New(Deps{
		Sounds:   sounds{},
		Speech:   playback.NewAnnouncer(f.speech),
		Effects:  playback.NewAnnouncer(&channel{}),
		Notifier: f.notifier,
		Games: []Game{
			{Key: "1", Label: "menu_tiles", Start: func() (ui.Screen, error) { return f.tiles, nil }},
			{Key: "2", Label: "menu_routine", Start: func() (ui.Screen, error) {
				if f.startErr != nil {
					return nil, f.startErr
				}
				return &game{}, nil
			}},
		},
	})
	return f
}

// settle plays every queued clip to the end.
func (f *fixture) settle() {
	for i := 0; i < 50; i++ {
		f.menu.Update(t0)
		if !f.menu.deps.Speech.Busy() {
			return
		}
		f.speech.playing = false
	}
}

func (f *fixture) spokenSince(n int) []string {
	return f.speech.played[n:]
}

func TestMenu_Announces(t *testing.T) {
	f := newFixture(t)
	f.settle()
	assert.Equal(t, []string{
		assets.Welcome,
		assets.SelectGame,
		assets.OptionTiles,
		assets.OptionRoutine,
		assets.PressEscape,
	}, f.speech.played)
}

func TestMenu_StartsGameAndForwards(t *testing.T) {
	f := newFixture(t)
	f.menu.HandleKey("1")
	assert.Nil(t, f.menu.Active(), "started on the next frame")
	f.menu.Update(t0)
	require.Equal(t, f.tiles, f.menu.Active())
	assert.Zero(t, f.menu.deps.Speech.Pending(), "menu speech is cut off")

	f.menu.Update(t0)
	f.menu.HandleKey("Q")
	assert.Equal(t, 1, f.tiles.updates)
	assert.Equal(t, []string{"Q"}, f.tiles.keys)
}

func TestMenu_ReturnsAfterGame(t *testing.T) {
	f := newFixture(t)
	f.settle()
	f.menu.HandleKey("1")
	f.menu.Update(t0)
	n := len(f.speech.played)

	f.tiles.done = true
	f.menu.Update(t0)
	assert.Nil(t, f.menu.Active())
	assert.True(t, f.tiles.closed)

	f.settle()
	assert.Equal(t, []string{
		assets.ReturningToMenu,
		assets.SelectGame,
		assets.OptionTiles,
		assets.OptionRoutine,
		assets.PressEscape,
	}, f.spokenSince(n))
}

func TestMenu_StartFailureStaysInMenu(t *testing.T) {
	f := newFixture(t)
	f.settle()
	f.startErr = fmt.Errorf("%w: vosk-en-small", speech.ErrModelNotFound)
	n := len(f.speech.played)

	f.menu.HandleKey("2")
	f.menu.Update(t0)
	assert.Nil(t, f.menu.Active())
	assert.Equal(t, i18n.T("error_model_not_found"), f.menu.Error())
	require.Len(t, f.notifier.errors, 1)
	assert.Contains(t, f.notifier.errors[0], "vosk-en-small")

	f.settle()
	assert.Equal(t, assets.StartFailedHint, f.spokenSince(n)[0])
	assert.Equal(t, assets.PressEscape, f.speech.played[len(f.speech.played)-1])
}

func TestMenu_OtherStartFailure(t *testing.T) {
	f := newFixture(t)
	f.startErr = errors.New("no audio")
	f.menu.HandleKey("2")
	f.settle()

	assert.Contains(t, f.menu.Error(), "no audio")
	assert.Contains(t, f.speech.played, assets.StartFailed)
}

func TestMenu_InvalidSelection(t *testing.T) {
	f := newFixture(t)
	f.settle()
	n := len(f.speech.played)

	f.menu.HandleKey("7")
	f.settle()
	assert.Equal(t, []string{assets.InvalidChoice}, f.spokenSince(n))
	assert.Nil(t, f.menu.Active())
}

func TestMenu_EscapeSaysGoodbye(t *testing.T) {
	f := newFixture(t)
	f.menu.HandleKey(ui.KeyEscape)
	assert.False(t, f.menu.Done())

	f.settle()
	assert.True(t, f.menu.Done())
	assert.Equal(t, []string{assets.Goodbye}, f.speech.played)
}

func TestMenu_EscapeInsideGameGoesToGame(t *testing.T) {
	f := newFixture(t)
	f.menu.HandleKey("1")
	f.menu.Update(t0)
	f.menu.HandleKey(ui.KeyEscape)
	assert.False(t, f.menu.Done())
	assert.Equal(t, []string{ui.KeyEscape}, f.tiles.keys)
}
