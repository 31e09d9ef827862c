package repository

import (
	"sync"
	"time"
)

// PhotoBatch is one Telegram album collected from a single user.
type PhotoBatch struct {
	GroupID string
	UserID  int64
	ChatID  int64
	FileIDs []string
}

// PhotoBatcher склеивает фото альбома: Telegram присылает их отдельными апдейтами,
// а проверять лимит нужно по альбому целиком.
type PhotoBatcher struct {
	mu       sync.Mutex
	delay    time.Duration
	batches  map[string]*pendingBatch
	flush    func(PhotoBatch)
	inflight sync.WaitGroup
	closed   bool
}

type pendingBatch struct {
	batch PhotoBatch
	timer *time.Timer
}

func NewPhotoBatcher(delay time.Duration, flush func(PhotoBatch)) *PhotoBatcher {
	return &PhotoBatcher{
		delay:   delay,
		batches: make(map[string]*pendingBatch),
		flush:   flush,
	}
}

// Add буферизует фото; каждый новый кадр альбома откладывает сброс на delay.
// Возвращает false после Close.
func (b *PhotoBatcher) Add(groupID string, userID, chatID int64, fileID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	if p, ok := b.batches[groupID]; ok {
		p.batch.FileIDs = append(p.batch.FileIDs, fileID)
		p.timer.Reset(b.delay)
		return true
	}

	p := &pendingBatch{batch: PhotoBatch{
		GroupID: groupID,
		UserID:  userID,
		ChatID:  chatID,
		FileIDs: []string{fileID},
	}}
	p.timer = time.AfterFunc(b.delay, func() { b.fire(groupID, p) })
	b.batches[groupID] = p
	return true
}

func (b *PhotoBatcher) fire(groupID string, p *pendingBatch) {
	b.mu.Lock()
	if b.batches[groupID] != p {
		// уже сброшен через Close или повторный Reset
		b.mu.Unlock()
		return
	}
	delete(b.batches, groupID)
	batch := p.batch
	b.inflight.Add(1)
	b.mu.Unlock()

	defer b.inflight.Done()
	b.flush(batch)
}

// Pending returns the number of albums still waiting for their debounce.
func (b *PhotoBatcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.batches)
}

// Close сбрасывает недособранные альбомы и ждет уже запущенные сбросы.
func (b *PhotoBatcher) Close() {
	b.mu.Lock()
	b.closed = true
	pending := make([]PhotoBatch, 0, len(b.batches))
	for id, p := range b.batches {
		p.timer.Stop()
		pending = append(pending, p.batch)
		delete(b.batches, id)
	}
	b.mu.Unlock()

	for _, batch := range pending {
		b.flush(batch)
	}
	b.inflight.Wait()
}
