package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/services"
)

func newTokenCommand(conf func() config.Config) *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить Bearer-токен клиента для разработки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if customerID <= 0 {
				return errors.New("--customer должен быть положительным")
			}
			cfg := conf()
			token, err := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(customerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&customerID, "customer", 0, "id клиента (обязательно)")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}
