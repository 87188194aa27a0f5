package commands

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bank-assistant/internal/catalog"
	"bank-assistant/internal/config"
	"bank-assistant/internal/llm"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/services"
	"bank-assistant/internal/tools"
	"bank-assistant/internal/utils"
	"bank-assistant/internal/worker"
)

// app: собранный граф зависимостей одного процесса.
type app struct {
	cfg        config.Config
	db         *pgxpool.Pool
	store      *repository.LedgerStore
	chats      *repository.ChatStore
	dispatcher *tools.Dispatcher
	assistant  *services.Assistant
	workers    *worker.WorkerPool
}

// newApp подключается к базе и связывает сервисы. Пул воркеров создаётся только при async.
func newApp(ctx context.Context, cfg config.Config, async bool) (*app, error) {
	db, err := repository.Connect(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}

	products, err := catalog.Load()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка загрузки каталога: %w", err)
	}

	store := repository.NewLedgerStore(db)
	chats := repository.NewChatStore(db)
	loc := services.LoadZone(cfg.LocalTZ)

	registry, err := tools.Build(
		services.NewQueryService(store, loc),
		services.NewTransferService(store),
		products,
	)
	if err != nil {
		db.Close()
		return nil, err
	}
	dispatcher := tools.NewDispatcher(registry)

	a := &app{cfg: cfg, db: db, store: store, chats: chats, dispatcher: dispatcher}

	var recorder *services.TranscriptRecorder
	if async {
		a.workers = worker.NewWorkerPool(cfg.Workers, cfg.WorkerQueue, cfg.WorkerRetries)
		a.workers.Start()
		recorder = services.NewTranscriptRecorder(chats, a.workers)
	} else {
		recorder = services.NewTranscriptRecorder(chats, nil)
	}

	model := llm.NewClient(llm.Config{
		URL:         cfg.LLMURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	})
	a.assistant = services.NewAssistant(store, model, llm.NewPromptBuilder(registry.Specs()), dispatcher, recorder)

	utils.LogSuccess("App", "Сервисы собраны: %d инструментов", len(registry.Specs()))
	return a, nil
}

func (a *app) close() {
	if a.workers != nil {
		if err := a.workers.Shutdown(shutdownTimeout); err != nil {
			utils.LogError("App", "Пул воркеров не остановился вовремя", err)
		}
	}
	a.db.Close()
}
