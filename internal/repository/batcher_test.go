package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type batchSink struct {
	mu      sync.Mutex
	batches []PhotoBatch
	done    chan struct{}
}

func newBatchSink() *batchSink {
	return &batchSink{done: make(chan struct{}, 16)}
}

func (s *batchSink) flush(b PhotoBatch) {
	s.mu.Lock()
	s.batches = append(s.batches, b)
	s.mu.Unlock()
	s.done <- struct{}{}
}

func (s *batchSink) snapshot() []PhotoBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PhotoBatch, len(s.batches))
	copy(out, s.batches)
	return out
}

func TestPhotoBatcher_CoalescesAlbum(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sink := newBatchSink()
	b := NewPhotoBatcher(50*time.Millisecond, sink.flush)
	defer b.Close()

	require.True(t, b.Add("album-1", 7, 70, "p1"))
	require.True(t, b.Add("album-1", 7, 70, "p2"))
	require.True(t, b.Add("album-1", 7, 70, "p3"))
	assert.Equal(t, 1, b.Pending())

	select {
	case <-sink.done:
	case <-time.After(2 * time.Second):
		t.Fatal("album was not flushed")
	}

	batches := sink.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"p1", "p2", "p3"}, batches[0].FileIDs)
	assert.Equal(t, int64(7), batches[0].UserID)
	assert.Equal(t, int64(70), batches[0].ChatID)
	assert.Zero(t, b.Pending())
}

func TestPhotoBatcher_SeparateAlbums(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sink := newBatchSink()
	b := NewPhotoBatcher(20*time.Millisecond, sink.flush)
	defer b.Close()

	b.Add("a", 1, 1, "x")
	b.Add("b", 2, 2, "y")

	for i := 0; i < 2; i++ {
		select {
		case <-sink.done:
		case <-time.After(2 * time.Second):
			t.Fatal("albums were not flushed")
		}
	}
	assert.Len(t, sink.snapshot(), 2)
}

func TestPhotoBatcher_CloseFlushesPending(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sink := newBatchSink()
	b := NewPhotoBatcher(time.Hour, sink.flush)

	b.Add("slow", 3, 3, "only")
	b.Close()

	batches := sink.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"only"}, batches[0].FileIDs)

	assert.False(t, b.Add("late", 3, 3, "nope"))
	assert.Len(t, sink.snapshot(), 1)
}
