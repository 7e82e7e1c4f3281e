package playback

import "sync"

// Channel - один голос вывода. Одновременно на нём звучит не больше одного клипа.
type Channel interface {
	// Play запускает clip вместо текущего.
	Play(clip Clip)
	// Busy: клип ещё звучит.
	Busy() bool
	// Stop заглушает канал.
	Stop()
}

type announcement struct {
	clip Clip
	done chan struct{}
}

// Announcer - очередь клипов, которые по одному проигрываются на Channel.
// Владелец очереди вызывает Poll каждый кадр.
type Announcer struct {
	mu      sync.Mutex
	channel Channel
	queue   []announcement
	active  *announcement
}

// NewAnnouncer создаёт очередь поверх ch.
func NewAnnouncer(ch Channel) *Announcer {
	return &Announcer{channel: ch}
}

// Enqueue добавляет clip. Возвращённый канал закрывается, когда клип
// доиграл или был сброшен Stop.
func (a *Announcer) Enqueue(clip Clip) <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	item := announcement{clip: clip, done: make(chan struct{})}
	a.queue = append(a.queue, item)
	return item.done
}

// Poll завершает текущий клип, когда канал освободился, и запускает
// следующий.
func (a *Announcer) Poll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.channel.Busy() {
		return
	}
	if a.active != nil {
		close(a.active.done)
		a.active = nil
	}
	if len(a.queue) == 0 {
		return
	}

	next := a.queue[0]
	a.queue = a.queue[1:]
	a.active = &next
	a.channel.Play(next.clip)
}

// Busy: клип звучит или ждёт в очереди.
func (a *Announcer) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active != nil || len(a.queue) > 0 || a.channel.Busy()
}

// Pending возвращает число клипов в очереди без текущего.
func (a *Announcer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

// Stop заглушает канал и сбрасывает очередь.
func (a *Announcer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.channel.Stop()
	if a.active != nil {
		close(a.active.done)
		a.active = nil
	}
	for _, item := range a.queue {
		close(item.done)
	}
	a.queue = nil
}
