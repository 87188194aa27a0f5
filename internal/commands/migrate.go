package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/repository"
)

func newMigrateCommand(conf func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Применить или откатить миграции схемы",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) > 0 {
				direction = args[0]
			}
			switch direction {
			case "up":
				return repository.MigrateUp(conf().DBURL)
			case "down":
				return repository.MigrateDown(conf().DBURL)
			default:
				return fmt.Errorf("неизвестное направление миграции %q", direction)
			}
		},
	}
}
