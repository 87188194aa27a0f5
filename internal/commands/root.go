// Package commands собирает CLI: сервер, миграции, демо-данные и отладочные команды.
package commands

import (
	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/utils"
)

func NewRootCommand() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:   "bank-assistant",
		Short: "Банковский ассистент: чат с моделью и банковскими инструментами",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			utils.SetLevel(cfg.LogLevel)
		},
	}

	conf := func() config.Config { return cfg }
	rootCmd.AddCommand(
		newServeCommand(conf),
		newMigrateCommand(conf),
		newSeedCommand(conf),
		newAskCommand(conf),
		newCallCommand(conf),
		newTokenCommand(conf),
		newHistoryCommand(conf),
	)

	return rootCmd
}
