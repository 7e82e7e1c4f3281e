package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiogames/internal/audio"
)

// scriptedRecognizer финализирует фразу на каждом блоке с непустым текстом.
type scriptedRecognizer struct {
	failOn string
	closed bool
}

func (s *scriptedRecognizer) Accept(block []byte) (string, bool, error) {
	text := string(block)
	if s.failOn != "" && text == s.failOn {
		return "", false, errors.New("device lost")
	}
	return text, text != "", nil
}

func (s *scriptedRecognizer) Close()       { s.closed = true }
func (s *scriptedRecognizer) Name() string { return "scripted" }

func collect(t *testing.T, ch <-chan Command) []Command {
	t.Helper()
	var got []Command
	timeout := time.After(2 * time.Second)
	for {
		select {
		case cmd, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, cmd)
		case <-timeout:
			t.Fatal("listener did not finish")
		}
	}
}

func TestListener_PostsFinalTranscriptsInOrder(t *testing.T) {
	q := audio.NewQueue()
	q.Push([]byte("wake up"))
	q.Push([]byte(""))
	q.Push([]byte("brush"))
	q.Close()

	l := NewListener(q, &scriptedRecognizer{})
	go l.Run(context.Background())

	got := collect(t, l.Commands())
	require.Equal(t, []Command{{Transcript: "wake up"}, {Transcript: "brush"}}, got)
}

func TestListener_StopsOnRecognizerError(t *testing.T) {
	q := audio.NewQueue()
	q.Push([]byte("bath"))
	q.Push([]byte("boom"))
	q.Push([]byte("never"))

	l := NewListener(q, &scriptedRecognizer{failOn: "boom"})
	go l.Run(context.Background())

	got := collect(t, l.Commands())
	require.Len(t, got, 2)
	assert.Equal(t, "bath", got[0].Transcript)
	assert.ErrorIs(t, got[1].Err, ErrRecognitionStream)
	assert.Equal(t, 1, q.Len())
}

func TestListener_StopsOnCancel(t *testing.T) {
	q := audio.NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	l := NewListener(q, &scriptedRecognizer{})
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener ignored cancellation")
	}
}

func TestParseResult(t *testing.T) {
	text, err := parseResult(`{"text" : "  Wake UP  "}`)
	require.NoError(t, err)
	require.Equal(t, "wake up", text)

	_, err = parseResult("not json")
	require.ErrorIs(t, err, ErrRecognitionStream)
}

func TestWaveformStatus(t *testing.T) {
	final, err := waveformStatus(1)
	require.NoError(t, err)
	assert.True(t, final)

	final, err = waveformStatus(0)
	require.NoError(t, err)
	assert.False(t, final)

	final, err = waveformStatus(-1)
	require.ErrorIs(t, err, ErrRecognitionStream)
	assert.False(t, final)
}
