package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"bank-assistant/internal/config"
	"bank-assistant/internal/handlers"
	"bank-assistant/internal/i18n"
	"bank-assistant/internal/middleware"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/services"
	"bank-assistant/internal/utils"
)

const (
	shutdownTimeout = 10 * time.Second
	// запас сверх LLM_TIMEOUT на инструменты и запись в базу
	chatGrace = 15 * time.Second
)

func newServeCommand(conf func() config.Config) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер чата",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), conf(), skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "не применять миграции при старте")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, skipMigrate bool) error {
	if !skipMigrate {
		if err := repository.MigrateUp(cfg.DBURL); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.close()

	auth := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
	chatTimeout := cfg.LLMTimeout + chatGrace
	router := handlers.NewRouter(
		handlers.NewChatHandler(a.assistant, i18n.Lang(cfg.DefaultLang), chatTimeout),
		handlers.NewAuthHandler(auth, a.store, cfg.JWTTTL),
		middleware.NewAuthMiddleware(auth),
	)

	server := &fasthttp.Server{
		Handler:      router,
		Name:         "bank-assistant",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: chatTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Server", "Сервер запускается на %s", cfg.HTTPAddr)
		errCh <- server.ListenAndServe(cfg.HTTPAddr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("сервер остановился с ошибкой: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	utils.LogInfo("Server", "Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		utils.LogError("Server", "Сервер остановлен принудительно", err)
	}
	utils.LogSuccess("Server", "Сервер остановлен")
	return nil
}
