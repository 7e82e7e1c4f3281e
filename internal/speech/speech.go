// Package speech предоставляет абстракцию для движков распознавания речи.
package speech

import "errors"

var (
	// ErrModelNotFound - модель распознавания отсутствует на диске.
	// Фатально для старта игры, повторных попыток нет.
	ErrModelNotFound = errors.New("модель распознавания не найдена")

	// ErrRecognitionStream - сбой потока захвата или распознавателя.
	ErrRecognitionStream = errors.New("ошибка потока распознавания")
)

// Recognizer - потоковый распознаватель речи.
type Recognizer interface {
	// Accept принимает блок PCM16 (16kHz, mono, little-endian).
	// Когда движок находит конец фразы, возвращает текст в нижнем регистре
	// и final == true. Иначе final == false.
	Accept(block []byte) (text string, final bool, err error)

	// Close освобождает ресурсы движка.
	Close()

	// Name возвращает название движка (для логирования).
	Name() string
}
