package audio

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed возвращается из Pop после Close, когда очередь опустела.
var ErrQueueClosed = errors.New("очередь аудио закрыта")

// Queue - потокобезопасная FIFO очередь блоков PCM.
// Пишет callback микрофона, читает воркер распознавания.
// Размер не ограничен: блоки не теряются и не переупорядочиваются.
type Queue struct {
	mu     sync.Mutex
	blocks [][]byte
	closed bool
	notify chan struct{}
}

// NewQueue создаёт пустую очередь.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push добавляет копию блока в конец очереди.
// После Close блоки игнорируются.
func (q *Queue) Push(block []byte) {
	buf := make([]byte, len(block))
	copy(buf, block)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.blocks = append(q.blocks, buf)
	q.mu.Unlock()

	q.wake()
}

// Pop забирает самый старый блок, блокируясь пока очередь пуста.
// Возвращает ctx.Err() при отмене контекста и ErrQueueClosed после Close.
func (q *Queue) Pop(ctx context.Context) ([]byte, error) {
	for {
		q.mu.Lock()
		if len(q.blocks) > 0 {
			block := q.blocks[0]
			q.blocks[0] = nil
			q.blocks = q.blocks[1:]
			q.mu.Unlock()
			return block, nil
		}
		if q.closed {
			q.mu.Unlock()
			return nil, ErrQueueClosed
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len возвращает число блоков в очереди.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.blocks)
}

// Close закрывает очередь и будит ожидающего читателя.
// Оставшиеся блоки ещё можно вычитать.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wake()
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
