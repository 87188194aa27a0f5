package tools

import (
	"context"

	"bank-assistant/internal/i18n"
	"bank-assistant/internal/models"
	"bank-assistant/internal/services"
)

// Queries: чтение данных по счетам клиента.
type Queries interface {
	Balance(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)
	AccountsInfo(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)
	Transactions(ctx context.Context, customerID int64, limit int, lang i18n.Lang) (string, error)
	LastIncoming(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)
	PeriodSum(ctx context.Context, customerID int64, dir models.Direction, start, end string, lang i18n.Lang) (string, error)
	LastRecipients(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)
	LargestTransaction(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)
}

type Transfers interface {
	Transfer(ctx context.Context, req services.TransferRequest) (services.TransferResult, error)
}

// owner: привязка к клиенту, общая для всех личных инструментов.
type owner struct {
	CustomerID int64
	Lang       i18n.Lang
}

func bindOwner(args Args) (owner, error) {
	id, err := args.Int(ArgCustomerID, 0)
	if err != nil {
		return owner{}, err
	}
	if id <= 0 {
		return owner{}, &ArgError{Key: ArgCustomerID, Reason: "required"}
	}
	lang, err := args.Text(ArgLang, "")
	if err != nil {
		return owner{}, err
	}
	return owner{CustomerID: id, Lang: i18n.Parse(lang)}, nil
}

type transactionsParams struct {
	owner
	Limit int
}

type transferParams struct {
	owner
	ToName   string
	Amount   string
	Currency string
}

type periodParams struct {
	owner
	StartDate string
	EndDate   string
}

// PersonalTools: инструменты по счетам клиента.
func PersonalTools(q Queries, t Transfers) []Tool {
	simple := func(id ID, fn func(ctx context.Context, customerID int64, lang i18n.Lang) (string, error)) Tool {
		return newTool(id, func(ctx context.Context, args Args) (string, error) {
			o, err := bindOwner(args)
			if err != nil {
				return "", err
			}
			return fn(ctx, o.CustomerID, o.Lang)
		})
	}
	period := func(id ID, dir models.Direction) Tool {
		return newTool(id, func(ctx context.Context, args Args) (string, error) {
			p, err := bindPeriod(args)
			if err != nil {
				return "", err
			}
			return q.PeriodSum(ctx, p.CustomerID, dir, p.StartDate, p.EndDate, p.Lang)
		})
	}

	return []Tool{
		simple(GetBalance, q.Balance),
		newTool(GetTransactions, func(ctx context.Context, args Args) (string, error) {
			p, err := bindTransactions(args)
			if err != nil {
				return "", err
			}
			return q.Transactions(ctx, p.CustomerID, p.Limit, p.Lang)
		}),
		newTool(TransferMoney, func(ctx context.Context, args Args) (string, error) {
			p, err := bindTransfer(args)
			if err != nil {
				return "", err
			}
			res, err := t.Transfer(ctx, services.TransferRequest{
				FromCustomerID: p.CustomerID,
				ToName:         p.ToName,
				Amount:         p.Amount,
				Currency:       p.Currency,
				Lang:           p.Lang,
			})
			if err != nil {
				return "", err
			}
			return res.Message, nil
		}),
		simple(GetLastIncomingTransaction, q.LastIncoming),
		simple(GetAccountsInfo, q.AccountsInfo),
		period(GetIncomingSumForPeriod, models.DirectionIncoming),
		period(GetOutgoingSumForPeriod, models.DirectionOutgoing),
		simple(GetLast3TransferRecipients, q.LastRecipients),
		simple(GetLargestTransaction, q.LargestTransaction),
	}
}

func bindTransactions(args Args) (transactionsParams, error) {
	o, err := bindOwner(args)
	if err != nil {
		return transactionsParams{}, err
	}
	limit, err := args.Int(ArgLimit, services.DefaultTransactionsLimit)
	if err != nil {
		return transactionsParams{}, err
	}
	return transactionsParams{owner: o, Limit: services.ClampLimit(int(clamp64(limit)))}, nil
}

// bindTransfer: без суммы получится отказ need_amount, без валюты берётся KGS.
func bindTransfer(args Args) (transferParams, error) {
	o, err := bindOwner(args)
	if err != nil {
		return transferParams{}, err
	}
	toName, err := args.RequiredText(ArgToName)
	if err != nil {
		return transferParams{}, err
	}
	amount, err := args.Text(ArgAmount, "0")
	if err != nil {
		return transferParams{}, err
	}
	currency, err := args.Text(ArgCurrency, services.DefaultCurrency)
	if err != nil {
		return transferParams{}, err
	}
	return transferParams{owner: o, ToName: toName, Amount: amount, Currency: currency}, nil
}

// bindPeriod: отсутствующая дата даёт пустую строку и сообщение wrong_date.
func bindPeriod(args Args) (periodParams, error) {
	o, err := bindOwner(args)
	if err != nil {
		return periodParams{}, err
	}
	start, err := args.Text(ArgStartDate, "")
	if err != nil {
		return periodParams{}, err
	}
	end, err := args.Text(ArgEndDate, "")
	if err != nil {
		return periodParams{}, err
	}
	return periodParams{owner: o, StartDate: start, EndDate: end}, nil
}

func clamp64(n int64) int64 {
	const limit = 1 << 20
	switch {
	case n > limit:
		return limit
	case n < -limit:
		return -limit
	}
	return n
}
