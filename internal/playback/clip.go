// Package playback по очереди проигрывает готовые клипы на каналах вывода.
package playback

import "time"

const (
	// SampleRate декодированных клипов и контекста вывода.
	SampleRate = 44100
	// ChannelCount - стерео.
	ChannelCount = 2
	// bytesPerFrame - два сэмпла int16.
	bytesPerFrame = ChannelCount * 2
)

// Clip - декодированный PCM, 16 бит little-endian, стерео.
type Clip struct {
	Name string
	PCM  []byte
}

// Duration возвращает длительность клипа.
func (c Clip) Duration() time.Duration {
	frames := len(c.PCM) / bytesPerFrame
	return time.Duration(frames) * time.Second / SampleRate
}

// Truncate обрезает клип до d. При d <= 0 клип не меняется.
func (c Clip) Truncate(d time.Duration) Clip {
	if d <= 0 {
		return c
	}
	limit := int(d*SampleRate/time.Second) * bytesPerFrame
	if limit >= len(c.PCM) {
		return c
	}
	return Clip{Name: c.Name, PCM: c.PCM[:limit]}
}
