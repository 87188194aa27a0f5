package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/i18n"
	"bank-assistant/internal/services"
	"bank-assistant/internal/toolcall"
)

// callerFlags: общие флаги команд, работающих от имени клиента.
type callerFlags struct {
	customerID int64
	lang       string
}

func (f *callerFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.customerID, "customer", 0, "id клиента (обязательно)")
	_ = cmd.MarkFlagRequired("customer")
	cmd.Flags().StringVar(&f.lang, "lang", "", "язык ответа: ky или ru (по умолчанию DEFAULT_LANG)")
}

func (f *callerFlags) caller(cfg config.Config) services.Caller {
	lang := f.lang
	if lang == "" {
		lang = cfg.DefaultLang
	}
	return services.Caller{CustomerID: f.customerID, Lang: i18n.Parse(lang)}
}

func newAskCommand(conf func() config.Config) *cobra.Command {
	var flags callerFlags

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Задать вопрос ассистенту от имени клиента (модель + инструменты)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			a, err := newApp(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.close()

			reply, err := a.assistant.Ask(cmd.Context(), flags.caller(cfg), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newCallCommand(conf func() config.Config) *cobra.Command {
	var flags callerFlags

	cmd := &cobra.Command{
		Use:   "call <call body | text with markers>",
		Short: "Выполнить вызовы инструментов напрямую, без модели",
		Example: `  bank-assistant call --customer 1 --lang ru "name=get_balance"
  bank-assistant call --customer 1 "name=transfer_money, to_name=Aigerim Sadykova, amount=100"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			a, err := newApp(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.close()

			text := markerText(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), services.Assemble(cmd.Context(), a.dispatcher, text, flags.caller(cfg)))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

// markerText оборачивает голое тело вызова в маркер.
func markerText(input string) string {
	input = strings.TrimSpace(input)
	if strings.Contains(input, toolcall.MarkerPrefix) {
		return input
	}
	return toolcall.MarkerPrefix + " " + input + "]"
}
