package routine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/assets"
)

var t0 = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func newGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(Levels, DefaultWait)
	require.NoError(t, err)
	return g
}

func TestLevels_Table(t *testing.T) {
	require.Len(t, Levels, 15)
	for i, l := range Levels {
		assert.NotEmpty(t, l.Prompt, "level %d", i)
		assert.True(t, Matches(l.Prompt, l.Accepted), "prompt of level %d names the accepted phrase", i)
		assert.NotEmpty(t, l.Success, "level %d", i)
		assert.NotEmpty(t, l.Fail, "level %d", i)
	}
}

func TestNewGame_NoLevels(t *testing.T) {
	_, err := NewGame(nil, time.Second)
	require.Error(t, err)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("please wake up now", "wake up"))
	assert.True(t, Matches("WAKE UP", "wake up"))
	assert.True(t, Matches("let me watch tv", "TV"))
	assert.False(t, Matches("sleep more", "wake up"))
	assert.False(t, Matches("", "brush"))
}

func TestGame_EachLevelPassesThroughPhasesOnce(t *testing.T) {
	transcripts := []string{"wake up", "", "nonsense", "BATH please"}
	g := newGame(t)
	now := t0

	for level := 0; level < len(transcripts); level++ {
		require.Equal(t, AwaitingPrompt, g.Phase())
		require.Equal(t, level, g.Index())

		cues := g.Tick(now)
		require.Equal(t, []Cue{{Category: assets.CategoryPrompt, Level: level}}, cues)
		require.Equal(t, Listening, g.Phase())
		require.Empty(t, g.Tick(now), "prompt is cued only once")

		_, ok := g.HandleTranscript(transcripts[level], now)
		require.True(t, ok)
		require.Equal(t, Resolved, g.Phase())

		// further transcripts are ignored until the next level
		_, ok = g.HandleTranscript("wake up brush bath", now)
		require.False(t, ok)

		now = now.Add(DefaultWait)
		g.Tick(now)
	}
}

func TestGame_FailScenario(t *testing.T) {
	g := newGame(t)
	g.Tick(t0)

	cue, ok := g.HandleTranscript("sleep more", t0)
	require.True(t, ok)
	assert.Equal(t, Cue{Category: assets.CategoryFail, Level: 0}, cue)
	assert.Equal(t, "You can't sleep more. Let's wake up now.", g.Display())
	assert.False(t, g.Matched())

	g.Tick(t0.Add(DefaultWait - time.Millisecond))
	assert.Equal(t, 0, g.Index(), "no advance before the wait period")
	assert.Equal(t, Resolved, g.Phase())

	g.Tick(t0.Add(DefaultWait))
	assert.Equal(t, 1, g.Index())
	assert.Equal(t, AwaitingPrompt, g.Phase())
	assert.Equal(t, "Say 'brush' or 'play'", g.Display())
}

func TestGame_SuccessScenario(t *testing.T) {
	g := newGame(t)
	g.Tick(t0)

	cue, ok := g.HandleTranscript("please wake up now", t0)
	require.True(t, ok)
	assert.Equal(t, assets.CategorySuccess, cue.Category)
	assert.True(t, g.Matched())
	assert.Equal(t, "Good morning! You woke up on time.", g.Display())
}

func TestGame_TranscriptBeforePromptIgnored(t *testing.T) {
	g := newGame(t)
	_, ok := g.HandleTranscript("wake up", t0)
	require.False(t, ok)
	require.Equal(t, AwaitingPrompt, g.Phase())
}

func TestGame_IndexMonotonicToGameOver(t *testing.T) {
	g := newGame(t)
	now := t0
	last := g.Index()

	for i := 0; i < 10*len(Levels) && g.Phase() != Finished; i++ {
		g.Tick(now)
		g.HandleTranscript("whatever", now)
		now = now.Add(time.Second)

		require.GreaterOrEqual(t, g.Index(), last)
		require.LessOrEqual(t, g.Index()-last, 1)
		require.Less(t, g.Index(), len(Levels))
		last = g.Index()
	}

	require.Equal(t, Finished, g.Phase())
	assert.Equal(t, GameOverText, g.Display())
	assert.False(t, g.Done(now))
	assert.True(t, g.Done(now.Add(DefaultWait)))

	_, ok := g.HandleTranscript("sleep", now)
	assert.False(t, ok)
}
