//go:build ignore

// Скрипт для генерации тоновых звуков плиток (заглушки вместо записей).
// Запуск: go run scripts/generate_tones.go [assets/sounds]
package main

import (
	"encoding/binary"
	"log"
	"math"
	"os"
	"path/filepath"
)

const (
	sampleRate = 44100
	duration   = 1.5 // секунды
)

func main() {
	dir := filepath.Join("assets", "sounds")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	tones := []struct {
		name string
		freq float64
	}{
		{"Cat", 880},
		{"Dog", 220},
		{"Bird", 1320},
		{"Cow", 165},
		{"Car", 330},
		{"Bell", 1047},
		{"Drum", 110},
		{"Duck", 587},
	}

	for _, tone := range tones {
		path := filepath.Join(dir, tone.name+".wav")
		if err := generateTone(path, tone.freq); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", tone.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

// generateTone пишет 16-bit mono WAV с затухающей синусоидой.
func generateTone(path string, freq float64) error {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / sampleRate
		env := math.Exp(-2 * t)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * env * 0.6 * math.MaxInt16)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dataSize := uint32(n * 2)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'}, 36 + dataSize, [4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '}, uint32(16), uint16(1), uint16(1),
		uint32(sampleRate), uint32(sampleRate * 2), uint16(2), uint16(16),
		[4]byte{'d', 'a', 't', 'a'}, dataSize,
	}
	for _, v := range header {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return binary.Write(f, binary.LittleEndian, samples)
}
