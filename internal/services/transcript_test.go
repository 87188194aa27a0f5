package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-assistant/internal/worker"
)

type memoryChatStore struct {
	mu        sync.Mutex
	exchanges []string
	err       error
	wrote     chan struct{}
}

func newMemoryChatStore() *memoryChatStore {
	return &memoryChatStore{wrote: make(chan struct{}, 10)}
}

func (s *memoryChatStore) AppendExchange(ctx context.Context, customerID int64, question, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.exchanges = append(s.exchanges, question+" | "+reply)
	s.wrote <- struct{}{}
	return nil
}

func (s *memoryChatStore) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.exchanges...)
}

type fullQueue struct{}

func (fullQueue) Submit(worker.Job) error { return worker.ErrQueueFull }

func TestTranscriptRecordedThroughPool(t *testing.T) {
	store := newMemoryChatStore()
	pool := worker.NewWorkerPool(1, 4, 0)
	pool.Start()
	defer pool.Shutdown(time.Second)

	NewTranscriptRecorder(store, pool).Record(context.Background(), 1, "баланс?", "100.00 KGS")

	select {
	case <-store.wrote:
	case <-time.After(5 * time.Second):
		t.Fatal("переписка не записана")
	}
	assert.Equal(t, []string{"баланс? | 100.00 KGS"}, store.all())
}

func TestTranscriptSurvivesRequestCancellation(t *testing.T) {
	store := newMemoryChatStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewTranscriptRecorder(store, nil).Record(ctx, 1, "q", "a")
	assert.Equal(t, []string{"q | a"}, store.all())
}

func TestTranscriptFallsBackToSyncWhenQueueFull(t *testing.T) {
	store := newMemoryChatStore()

	NewTranscriptRecorder(store, fullQueue{}).Record(context.Background(), 1, "q", "a")
	require.Len(t, store.all(), 1)
}

func TestTranscriptStoreErrorIsLoggedOnly(t *testing.T) {
	store := newMemoryChatStore()
	store.err = errors.New("disk full")

	assert.NotPanics(t, func() {
		NewTranscriptRecorder(store, nil).Record(context.Background(), 1, "q", "a")
	})
	assert.Empty(t, store.all())
}
