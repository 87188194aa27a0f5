package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/repository"
)

func newHistoryCommand(conf func() config.Config) *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Показать открытый чат клиента",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.Connect(cmd.Context(), conf().DBURL)
			if err != nil {
				return err
			}
			defer db.Close()

			msgs, err := repository.NewChatStore(db).Messages(cmd.Context(), customerID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, "Сообщений нет")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "[%s] %s: %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Role, m.Content)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&customerID, "customer", 0, "id клиента (обязательно)")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}
