package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bank-assistant/internal/utils"
	"bank-assistant/internal/worker"
)

// ChatStore сохраняет реплики в открытый чат клиента, создавая его при необходимости.
type ChatStore interface {
	AppendExchange(ctx context.Context, customerID int64, question, reply string) error
}

// JobSubmitter: очередь фоновых задач.
type JobSubmitter interface {
	Submit(job worker.Job) error
}

const transcriptTimeout = 10 * time.Second

// TranscriptRecorder пишет переписку в фоне через пул воркеров.
// Если пул переполнен или не задан, запись выполняется синхронно.
type TranscriptRecorder struct {
	store ChatStore
	pool  JobSubmitter
}

func NewTranscriptRecorder(store ChatStore, pool JobSubmitter) *TranscriptRecorder {
	return &TranscriptRecorder{store: store, pool: pool}
}

func (r *TranscriptRecorder) Record(ctx context.Context, customerID int64, question, reply string) {
	// фоновая запись не должна умирать вместе с HTTP-запросом
	base := context.WithoutCancel(ctx)
	write := func() error {
		writeCtx, cancel := context.WithTimeout(base, transcriptTimeout)
		defer cancel()
		return r.store.AppendExchange(writeCtx, customerID, question, reply)
	}

	if r.pool == nil {
		r.writeSync(customerID, write)
		return
	}

	job := worker.Job{
		ID:   fmt.Sprintf("transcript-%d-%d", customerID, time.Now().UnixNano()),
		Task: write,
		RetryOn: func(err error) bool {
			return !errors.Is(err, ErrCustomerNotFound)
		},
	}
	if err := r.pool.Submit(job); err != nil {
		utils.LogWarning("Transcript", "Пул воркеров недоступен (%v), запись переписки выполняется синхронно", err)
		r.writeSync(customerID, write)
		return
	}
	utils.LogDebug("Transcript", "Запись переписки клиента %d добавлена в очередь", customerID)
}

func (r *TranscriptRecorder) writeSync(customerID int64, write func() error) {
	if err := write(); err != nil {
		utils.LogError("Transcript", fmt.Sprintf("Не удалось сохранить переписку клиента %d", customerID), err)
	}
}
