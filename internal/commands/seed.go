package commands

import (
	"time"

	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/services"
)

func newSeedCommand(conf func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Заполнить пустую базу демо-клиентами, счетами и транзакциями",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			db, err := repository.Connect(cmd.Context(), cfg.DBURL)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
			return repository.Seed(cmd.Context(), repository.NewLedgerStore(db), auth.HashPassword, time.Now())
		},
	}
}
