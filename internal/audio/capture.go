// Package audio предоставляет захват аудио с микрофона для распознавания.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации, которую ждёт Vosk.
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// BlockSize - кадров в одном блоке callback'а (0.5 сек при 16kHz).
	BlockSize = 8000
)

// Microphone - источник блоков PCM16 для очереди захвата.
type Microphone interface {
	// Start начинает писать блоки в очередь.
	Start(q *Queue) error
	// Stop останавливает захват.
	Stop()
	// Level возвращает громкость последнего блока [0, 1].
	Level() float32
}

// Capture пишет блоки с микрофона по умолчанию в Queue.
type Capture struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	sampleRate int
	blockSize  int
	level      float32
}

// NewCapture инициализирует portaudio.
// Нулевые sampleRate и blockSize заменяются значениями по умолчанию.
func NewCapture(sampleRate, blockSize int) (*Capture, error) {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if blockSize <= 0 {
		blockSize = BlockSize
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}
	return &Capture{sampleRate: sampleRate, blockSize: blockSize}, nil
}

// Start открывает входной поток. Каждый блок кладётся в q как little-endian PCM16.
func (c *Capture) Start(q *Queue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(
		Channels,
		0,
		float64(c.sampleRate),
		c.blockSize,
		func(in []int16) {
			q.Push(EncodePCM16(in))
			c.setLevel(RMS(in))
		},
	)
	if err != nil {
		return fmt.Errorf("не удалось открыть микрофон: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("не удалось запустить микрофон: %w", err)
	}

	c.stream = stream
	return nil
}

// Stop останавливает и закрывает поток.
func (c *Capture) Stop() {
	c.mu.Lock()
	stream := c.stream
	c.stream = nil
	c.level = 0
	c.mu.Unlock()

	if stream != nil {
		stream.Stop()
		stream.Close()
	}
}

// Level возвращает громкость последнего блока.
func (c *Capture) Level() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

func (c *Capture) setLevel(v float32) {
	c.mu.Lock()
	c.level = v
	c.mu.Unlock()
}

// Close освобождает portaudio.
func (c *Capture) Close() {
	c.Stop()
	portaudio.Terminate()
}

// EncodePCM16 упаковывает сэмплы в little-endian байты.
func EncodePCM16(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// RMS возвращает нормированную среднеквадратичную громкость блока.
func RMS(samples []int16) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms > 1 {
		rms = 1
	}
	return float32(rms)
}
