package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gcache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"audiogames/internal/playback"
)

var (
	// ErrAssetMissing: звука нет на диске. Вызывающий пишет в лог и продолжает.
	ErrAssetMissing = errors.New("asset not found")
	// ErrSpeechDirMissing: нет speech/, озвучивать нечего.
	ErrSpeechDirMissing = errors.New("speech directory not found")
)

// Каталоги внутри корня ассетов.
const (
	SpeechDir = "speech"
	SoundsDir = "sounds"
	VoiceDir  = "voice_lines"
)

// Расширения по приоритету.
var (
	speechExts = []string{".wav", ".mp3"}
	voiceExts  = []string{".ogg", ".wav", ".mp3"}
)

// Options описывают, что будут запрашивать игры.
type Options struct {
	Root      string   // корень ассетов
	Labels    []string // звуки плиток
	Levels    int      // число уровней Daily Routine
	CacheSize int      // сколько декодированных клипов держать в памяти
}

// Library - таблица ассетов, собранная один раз при запуске.
type Library struct {
	speech  map[string]string // имя фразы -> путь
	effects map[string]string // звук плитки -> путь
	voice   map[string]string // prompt_level0 -> путь
	missing []string
	cache   *gcache.Cache[string, []byte]
}

// Load сканирует корень ассетов, находит каждую объявленную фразу, звук
// плитки и реплику уровня и запоминает недостающие. Ошибка только при
// отсутствии каталога speech/.
func Load(ctx context.Context, opts Options) (*Library, error) {
	speechDir := filepath.Join(opts.Root, SpeechDir)
	if stat, err := os.Stat(speechDir); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSpeechDirMissing, speechDir)
	}

	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}

	l := &Library{
		speech:  make(map[string]string),
		effects: make(map[string]string),
		voice:   make(map[string]string),
		cache: gcache.NewContext[string, []byte](ctx,
			gcache.AsLRU[string, []byte](lru.WithCapacity(opts.CacheSize))),
	}

	if err := l.scanSpeech(speechDir); err != nil {
		return nil, err
	}
	for _, phrase := range Phrases() {
		if _, ok := l.speech[Sanitize(phrase)]; !ok {
			l.missing = append(l.missing, filepath.Join(SpeechDir, Sanitize(phrase)))
		}
	}

	for _, label := range opts.Labels {
		if path, ok := find(filepath.Join(opts.Root, SoundsDir), label, speechExts); ok {
			l.effects[label] = path
		} else {
			l.missing = append(l.missing, filepath.Join(SoundsDir, label))
		}
	}

	for level := 0; level < opts.Levels; level++ {
		for _, cat := range Categories {
			stem := VoiceLineName(cat, level)
			if path, ok := find(filepath.Join(opts.Root, VoiceDir), stem, voiceExts); ok {
				l.voice[stem] = path
			} else {
				l.missing = append(l.missing, filepath.Join(VoiceDir, stem))
			}
		}
	}

	sort.Strings(l.missing)
	for _, m := range l.missing {
		log.Printf("Предупреждение: нет звукового файла %s", m)
	}
	log.Printf("Ассеты: речь %d, эффекты %d, реплики %d, не найдено %d",
		len(l.speech), len(l.effects), len(l.voice), len(l.missing))

	return l, nil
}

func (l *Library) scanSpeech(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !contains(speechExts, ext) {
			continue
		}
		key := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		// .wav важнее .mp3 с тем же именем
		if prev, ok := l.speech[key]; ok && strings.EqualFold(filepath.Ext(prev), ".wav") {
			continue
		}
		l.speech[key] = filepath.Join(dir, e.Name())
	}
	return nil
}

func find(dir, stem string, exts []string) (string, bool) {
	for _, ext := range exts {
		path := filepath.Join(dir, stem+ext)
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			return path, true
		}
	}
	return "", false
}

// VoiceLineName возвращает имя файла реплики, например fail_level3.
func VoiceLineName(cat Category, level int) string {
	return fmt.Sprintf("%s_level%d", cat, level)
}

// Missing - объявленные, но не найденные при загрузке ассеты.
func (l *Library) Missing() []string {
	return append([]string(nil), l.missing...)
}

// Phrase возвращает клип фразы.
func (l *Library) Phrase(text string) (playback.Clip, error) {
	key := Sanitize(text)
	path, ok := l.speech[key]
	if !ok {
		return playback.Clip{}, fmt.Errorf("%w: speech %q", ErrAssetMissing, key)
	}
	return l.clip(key, path)
}

// Effect возвращает звук плитки.
func (l *Library) Effect(label string) (playback.Clip, error) {
	path, ok := l.effects[label]
	if !ok {
		return playback.Clip{}, fmt.Errorf("%w: sound %q", ErrAssetMissing, label)
	}
	return l.clip(label, path)
}

// VoiceLine возвращает реплику уровня.
func (l *Library) VoiceLine(cat Category, level int) (playback.Clip, error) {
	stem := VoiceLineName(cat, level)
	path, ok := l.voice[stem]
	if !ok {
		return playback.Clip{}, fmt.Errorf("%w: voice line %q", ErrAssetMissing, stem)
	}
	return l.clip(stem, path)
}

func (l *Library) clip(name, path string) (playback.Clip, error) {
	if pcm, ok := l.cache.Get(path); ok {
		return playback.Clip{Name: name, PCM: pcm}, nil
	}
	pcm, err := Decode(path)
	if err != nil {
		return playback.Clip{}, fmt.Errorf("decode %s: %w", path, err)
	}
	l.cache.Set(path, pcm)
	return playback.Clip{Name: name, PCM: pcm}, nil
}

// Decode читает wav, mp3 или ogg в 16-битный стерео PCM с частотой
// playback.SampleRate.
func Decode(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src := bytes.NewReader(raw)

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(playback.SampleRate, src)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(playback.SampleRate, src)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(playback.SampleRate, src)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}
