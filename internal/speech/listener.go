package speech

import (
	"context"
	"errors"
	"fmt"
	"log"

	"audiogames/internal/audio"
)

// Command - результат работы воркера распознавания.
// Читает его только цикл отрисовки, воркер состояние игры не трогает.
type Command struct {
	Transcript string
	Err        error
}

// Listener вычитывает очередь захвата и публикует распознанные фразы.
type Listener struct {
	queue    *audio.Queue
	rec      Recognizer
	commands chan Command
}

// NewListener создаёт воркер поверх очереди и распознавателя.
func NewListener(queue *audio.Queue, rec Recognizer) *Listener {
	return &Listener{
		queue:    queue,
		rec:      rec,
		commands: make(chan Command, 8),
	}
}

// Commands возвращает канал распознанных команд.
// Канал закрывается, когда Run завершился.
func (l *Listener) Commands() <-chan Command {
	return l.commands
}

// Run крутит цикл Pop -> Accept до отмены ctx или закрытия очереди.
func (l *Listener) Run(ctx context.Context) {
	defer close(l.commands)

	for {
		block, err := l.queue.Pop(ctx)
		if err != nil {
			if !errors.Is(err, audio.ErrQueueClosed) && !errors.Is(err, context.Canceled) {
				log.Printf("Очередь захвата: %v", err)
			}
			return
		}

		text, final, err := l.rec.Accept(block)
		if err != nil {
			if !errors.Is(err, ErrRecognitionStream) {
				err = fmt.Errorf("%w: %v", ErrRecognitionStream, err)
			}
			log.Printf("Ошибка в потоке распознавания: %v", err)
			l.post(ctx, Command{Err: err})
			return
		}
		if !final {
			continue
		}

		log.Printf("Распознано (%s): %q", l.rec.Name(), text)
		if !l.post(ctx, Command{Transcript: text}) {
			return
		}
	}
}

func (l *Listener) post(ctx context.Context, cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	case <-ctx.Done():
		return false
	}
}
