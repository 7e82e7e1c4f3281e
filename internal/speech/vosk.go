package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"
)

// VoskRecognizer реализует Recognizer через Vosk.
type VoskRecognizer struct {
	mu         sync.Mutex
	model      *vosk.VoskModel
	recognizer *vosk.VoskRecognizer
}

// voskResult структура для парсинга JSON результата от Vosk.
type voskResult struct {
	Text string `json:"text"`
}

func init() {
	// Vosk по умолчанию очень разговорчив в stderr
	vosk.SetLogLevel(-1)
}

// NewVosk создаёт VoskRecognizer из директории модели.
func NewVosk(modelPath string, sampleRate float64) (*VoskRecognizer, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
	}

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки модели Vosk: %w", err)
	}

	rec, err := vosk.NewRecognizer(model, sampleRate)
	if err != nil {
		model.Free()
		return nil, err
	}

	return &VoskRecognizer{
		model:      model,
		recognizer: rec,
	}, nil
}

// Name возвращает название движка.
func (v *VoskRecognizer) Name() string {
	return "vosk"
}

// Accept скармливает блок распознавателю.
func (v *VoskRecognizer) Accept(block []byte) (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recognizer == nil {
		return "", false, fmt.Errorf("%w: распознаватель закрыт", ErrRecognitionStream)
	}

	final, err := waveformStatus(v.recognizer.AcceptWaveform(block))
	if err != nil || !final {
		return "", false, err
	}

	text, err := parseResult(v.recognizer.Result())
	if err != nil {
		return "", false, err
	}
	return text, text != "", nil
}

// waveformStatus разбирает код AcceptWaveform: 1 - фраза закрыта по паузе,
// 0 - фраза продолжается, -1 - ошибка движка.
func waveformStatus(code int) (bool, error) {
	switch {
	case code < 0:
		return false, fmt.Errorf("%w: AcceptWaveform вернул %d", ErrRecognitionStream, code)
	case code == 0:
		return false, nil
	default:
		return true, nil
	}
}

func parseResult(raw string) (string, error) {
	var result voskResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognitionStream, err)
	}
	return strings.ToLower(strings.TrimSpace(result.Text)), nil
}

// Close освобождает ресурсы.
func (v *VoskRecognizer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recognizer != nil {
		v.recognizer.Free()
		v.recognizer = nil
	}

	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
}
