package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bank-assistant/internal/utils"
)

var (
	ErrQueueFull       = errors.New("очередь задач переполнена")
	ErrPoolClosed      = errors.New("пул воркеров остановлен")
	ErrShutdownTimeout = errors.New("превышен таймаут остановки пула")
)

// Job: фоновая задача пула.
type Job struct {
	ID      string
	Task    func() error
	RetryOn func(error) bool // nil: повторять любую ошибку
	OnDone  func(error)
}

// WorkerPool выполняет задачи фиксированным числом воркеров с повтором при ошибке.
type WorkerPool struct {
	workers    int
	maxRetries int
	backoff    time.Duration
	jobQueue   chan Job
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
	stats  PoolStats
}

type PoolStats struct {
	SubmittedJobs int64
	CompletedJobs int64
	FailedJobs    int64
	RetriedJobs   int64
	ActiveWorkers int
	QueuedJobs    int
}

func NewWorkerPool(workers int, queueSize int, maxRetries int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		workers:    workers,
		maxRetries: maxRetries,
		backoff:    100 * time.Millisecond,
		jobQueue:   make(chan Job, queueSize),
		ctx:        ctx,
		cancel:     cancel,
		stats: PoolStats{
			ActiveWorkers: workers,
		},
	}

	utils.LogSuccess("WorkerPool", "Создан пул воркеров: воркеров %d, очередь %d, повторов %d", workers, queueSize, maxRetries)
	return pool
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	utils.LogSuccess("WorkerPool", "Все воркеры запущены")
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			utils.LogDebug("WorkerPool", "Воркер #%d завершает работу", id)
			return

		case job, ok := <-p.jobQueue:
			if !ok {
				utils.LogDebug("WorkerPool", "Воркер #%d: очередь закрыта", id)
				return
			}
			p.executeJob(id, job)
		}
	}
}

// executeJob выполняет задачу, повторяя её с линейно растущей паузой.
func (p *WorkerPool) executeJob(workerID int, job Job) {
	startTime := time.Now()
	var err error

retry:
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			utils.LogWarning("WorkerPool", "Воркер #%d: повторная попытка #%d для задачи %s", workerID, attempt, job.ID)
			p.bump(func(s *PoolStats) { s.RetriedJobs++ })
			select {
			case <-time.After(p.backoff * time.Duration(attempt)):
			case <-p.ctx.Done():
				err = fmt.Errorf("%w: %v", ErrPoolClosed, err)
				break retry
			}
		}

		err = job.Task()
		if err == nil {
			p.bump(func(s *PoolStats) { s.CompletedJobs++ })
			utils.LogDebug("WorkerPool", "Воркер #%d: задача %s выполнена за %v", workerID, job.ID, time.Since(startTime))
			if job.OnDone != nil {
				job.OnDone(nil)
			}
			return
		}

		if job.RetryOn != nil && !job.RetryOn(err) {
			break retry
		}
	}

	p.bump(func(s *PoolStats) { s.FailedJobs++ })
	utils.LogError("WorkerPool", fmt.Sprintf("Воркер #%d: задача %s провалилась после %v", workerID, job.ID, time.Since(startTime)), err)
	if job.OnDone != nil {
		job.OnDone(err)
	}
}

// Submit ставит задачу в очередь без ожидания; при полной очереди возвращает ErrQueueFull.
func (p *WorkerPool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		p.stats.SubmittedJobs++
		utils.LogDebug("WorkerPool", "Задача %s добавлена в очередь (в очереди: %d)", job.ID, len(p.jobQueue))
		return nil
	default:
		utils.LogWarning("WorkerPool", "Очередь переполнена, задача %s отклонена", job.ID)
		return ErrQueueFull
	}
}

// Shutdown перестаёт принимать задачи и ждёт, пока воркеры доработают очередь.
func (p *WorkerPool) Shutdown(timeout time.Duration) error {
	utils.LogInfo("WorkerPool", "Начинается остановка пула воркеров...")

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		utils.LogSuccess("WorkerPool", "Все воркеры завершили работу")
		return nil

	case <-time.After(timeout):
		p.cancel()
		utils.LogWarning("WorkerPool", "Превышен таймаут остановки, принудительное завершение")
		return ErrShutdownTimeout
	}
}

func (p *WorkerPool) GetStats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := p.stats
	stats.QueuedJobs = len(p.jobQueue)
	return stats
}

func (p *WorkerPool) bump(fn func(s *PoolStats)) {
	p.mu.Lock()
	fn(&p.stats)
	p.mu.Unlock()
}
