package tiles

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/assets"
	"audiogames/internal/playback"
	"audiogames/internal/ui"
)

// channel plays one clip until finish.
type channel struct {
	playing bool
	played  []playback.Clip
}

func (c *channel) Play(clip playback.Clip) {
	c.playing = true
	c.played = append(c.played, clip)
}
func (c *channel) Busy() bool { return c.playing }
func (c *channel) Stop()      { c.playing = false }

func (c *channel) names() []string {
	var out []string
	for _, clip := range c.played {
		out = append(out, clip.Name)
	}
	return out
}

// sounds returns ten seconds of silence for everything except missing.
type sounds struct {
	missing map[string]bool
}

func (s sounds) Phrase(text string) (playback.Clip, error) {
	if s.missing[text] {
		return playback.Clip{}, fmt.Errorf("%w: %s", assets.ErrAssetMissing, text)
	}
	return playback.Clip{Name: text, PCM: make([]byte, 4)}, nil
}

func (s sounds) Effect(label string) (playback.Clip, error) {
	if s.missing[label] {
		return playback.Clip{}, fmt.Errorf("%w: %s", assets.ErrAssetMissing, label)
	}
	return playback.Clip{Name: label, PCM: make([]byte, 10*playback.SampleRate*4)}, nil
}

type fixture struct {
	screen  *Screen
	speech  *channel
	effects *channel
}

func newFixture(t *testing.T, missing ...string) *fixture {
	t.Helper()
	f := &fixture{speech: &channel{}, effects: &channel{}}
	m := map[string]bool{}
	for _, name := range missing {
		m[name] = true
	}
	board, err := NewBoardFromLayout(orderedLayout(), time.Second)
	require.NoError(t, err)
	f.screen = newScreen(Deps{
		Sounds:    sounds{missing: m},
		Speech:    playback.NewAnnouncer(f.speech),
		Effects:   playback.NewAnnouncer(f.effects),
		EffectMax: 3 * time.Second,
	}, board)
	return f
}

// settle runs frames at now, finishing every clip, until both channels are quiet.
func (f *fixture) settle(now time.Time) {
	for i := 0; i < 200; i++ {
		f.screen.Update(now)
		if f.screen.Done() {
			return
		}
		if !f.screen.deps.Speech.Busy() && !f.screen.deps.Effects.Busy() {
			if _, pending := f.screen.board.Pending(); !pending {
				return
			}
		}
		f.speech.playing = false
		f.effects.playing = false
	}
}

// pick presses a key and lets the pick play out.
func (f *fixture) pick(key string, now time.Time) {
	f.screen.HandleKey(key)
	f.settle(now)
}

func (f *fixture) spokenSince(n int) []string {
	return f.speech.names()[n:]
}

func TestScreen_Intro(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	assert.Equal(t, []string{
		assets.TilesWelcome,
		assets.TilesBegin,
		assets.TilesKeys,
		assets.TilesScoreHint,
		assets.TilesSpaceHint,
		assets.TilesEscapeHint,
	}, f.speech.names())
}

func TestScreen_IgnoresKeysWhileSpeechQueued(t *testing.T) {
	f := newFixture(t)
	f.screen.HandleKey("1")
	_, pending := f.screen.board.Pending()
	assert.False(t, pending)
	assert.Equal(t, Hidden, f.screen.board.State(0))
}

func TestScreen_MatchAnnouncesScore(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	n := len(f.speech.played)

	f.pick("1", t0)
	assert.Equal(t, Revealed, f.screen.board.State(0))
	assert.Equal(t, []string{"Cat"}, f.effects.names())

	f.pick("A", t0)
	assert.Equal(t, TwoSelectedPendingResolve, f.screen.board.Phase())

	f.settle(t0.Add(time.Second))
	assert.Equal(t, Matched, f.screen.board.State(0))
	assert.Equal(t, Matched, f.screen.board.State(8))
	assert.Equal(t, []string{"1", "A", assets.TilesMatch, assets.TilesScore, "1", assets.TilesOf, "8"}, f.spokenSince(n))
}

func TestScreen_MismatchSaysTryAgain(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	n := len(f.speech.played)

	f.pick("1", t0)
	f.pick("2", t0)
	f.settle(t0.Add(time.Second))

	assert.Equal(t, []string{"1", "2", assets.TilesTryAgain}, f.spokenSince(n))
	assert.Equal(t, Hidden, f.screen.board.State(0))
	assert.Equal(t, Hidden, f.screen.board.State(1))
}

func TestScreen_EffectIsTruncated(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	f.pick("1", t0)

	require.Len(t, f.effects.played, 1)
	assert.Equal(t, 3*time.Second, f.effects.played[0].Duration())
}

func TestScreen_MatchedTileReplaysFirstChoice(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	f.pick("1", t0)
	f.pick("A", t0)
	f.settle(t0.Add(time.Second))

	f.pick("2", t0.Add(2*time.Second))
	n := len(f.speech.played)
	e := len(f.effects.played)

	f.pick("1", t0.Add(2*time.Second))
	assert.Equal(t, []string{"1", assets.TilesMatched, assets.TilesFirstChoice}, f.spokenSince(n))
	assert.Equal(t, []string{"Dog"}, f.effects.names()[e:])
	assert.Equal(t, OneSelected, f.screen.board.Phase())
}

func TestScreen_SameTileNotice(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	f.pick("Q", t0)
	n := len(f.speech.played)

	f.pick("Q", t0)
	assert.Equal(t, []string{"Q", assets.TilesSameTile}, f.spokenSince(n))
	assert.Equal(t, OneSelected, f.screen.board.Phase())
}

func TestScreen_ScoreKey(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)
	n := len(f.speech.played)

	f.pick("I", t0)
	assert.Equal(t, []string{assets.TilesScore, "0", assets.TilesOf, "8"}, f.spokenSince(n))
}

func TestScreen_MissingEffectIsSkipped(t *testing.T) {
	f := newFixture(t, "Cat")
	f.settle(t0)
	f.pick("1", t0)

	assert.Empty(t, f.effects.played)
	assert.Equal(t, Revealed, f.screen.board.State(0))
}

func TestScreen_EscapeStops(t *testing.T) {
	f := newFixture(t)
	f.screen.Update(t0)
	require.True(t, f.speech.Busy())

	f.screen.HandleKey(ui.KeyEscape)
	assert.True(t, f.screen.Done())
	assert.False(t, f.speech.Busy())
	assert.Zero(t, f.screen.deps.Speech.Pending())
}

func TestScreen_SpaceSilences(t *testing.T) {
	f := newFixture(t)
	f.screen.Update(t0)
	f.screen.HandleKey(ui.KeySpace)
	assert.False(t, f.screen.deps.Speech.Busy())
	assert.False(t, f.screen.Done())
}

func TestScreen_WinLeavesAfterVictory(t *testing.T) {
	f := newFixture(t)
	f.settle(t0)

	now := t0
	for i := 0; i < TotalPairs; i++ {
		f.pick(assets.TileKeys[i], now)
		f.pick(assets.TileKeys[i+TotalPairs], now)
		now = now.Add(time.Second)
		if i < TotalPairs-1 {
			f.settle(now)
		}
	}

	// resolve the last pair but keep the victory playing
	f.screen.Update(now)
	f.screen.Update(now)
	require.True(t, f.screen.board.Won())
	assert.False(t, f.screen.Done(), "victory is still queued")

	f.settle(now)
	assert.True(t, f.screen.Done())
	names := f.speech.names()
	assert.Equal(t, assets.TilesWin, names[len(names)-1])
}
