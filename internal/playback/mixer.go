package playback

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Mixer владеет единственным контекстом oto. Каналы смешиваются oto: речь
// и эффекты могут звучать вместе, но каждый канал только по одному клипу.
type Mixer struct {
	mu     sync.Mutex
	ctx    *oto.Context
	paused bool
}

// NewMixer открывает устройство вывода по умолчанию.
func NewMixer() (*Mixer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("audio output: %w", err)
	}
	<-ready
	return &Mixer{ctx: ctx}, nil
}

// NewChannel создаёт свободный канал вывода.
func (m *Mixer) NewChannel() Channel {
	return &otoChannel{ctx: m.ctx}
}

// Suspend ставит вывод на паузу. Клипы остаются Busy до Resume.
func (m *Mixer) Suspend() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
	return m.ctx.Suspend()
}

// Resume продолжает вывод после Suspend.
func (m *Mixer) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
	return m.ctx.Resume()
}

// TogglePause переключает паузу и возвращает новое состояние.
func (m *Mixer) TogglePause() (bool, error) {
	m.mu.Lock()
	paused := m.paused
	m.mu.Unlock()

	if paused {
		return false, m.Resume()
	}
	return true, m.Suspend()
}

type otoChannel struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

func (c *otoChannel) Play(clip Clip) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player != nil {
		c.player.Pause()
	}
	c.player = c.ctx.NewPlayer(bytes.NewReader(clip.PCM))
	c.player.Play()
}

func (c *otoChannel) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player != nil && c.player.IsPlaying()
}

func (c *otoChannel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player != nil {
		c.player.Pause()
		c.player = nil
	}
}
