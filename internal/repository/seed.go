package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bank-assistant/internal/models"
	"bank-assistant/internal/utils"
)

const demoPassword = "1234"

type seedTx struct {
	kind        models.TransactionType
	amount      string
	description string
	daysAgo     int
}

type seedAccount struct {
	number   string
	kind     models.AccountType
	currency string
	balance  string
	status   models.AccountStatus
	txs      []seedTx
}

type seedCustomer struct {
	customer models.Customer
	accounts []seedAccount
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var demoCustomers = []seedCustomer{
	{
		customer: models.Customer{
			FirstName: "Azamat", LastName: "Uulu", MiddleName: "Erkin",
			BirthDate: day(1995, time.May, 12), PassportNumber: "IDKG951205",
			PhoneNumber: "+996555000001", Email: "azamat@example.com",
			Address: "г. Бишкек, ул. Чуй, 123, кв. 45",
		},
		accounts: []seedAccount{
			{"KG43TEST0000000000000001", models.AccountTypeCurrent, "KGS", "12500.00", models.AccountStatusActive, []seedTx{
				{models.TransactionTypeDeposit, "15000.00", "Зачисление зарплаты", 10},
				{models.TransactionTypePayment, "2000.00", "Оплата коммунальных услуг", 9},
				{models.TransactionTypeTransfer, "500.00", "from Azamat Uulu to Aigerim Sadykova", 4},
			}},
			{"KG43TEST0000000000000002", models.AccountTypeSavings, "USD", "2300.50", models.AccountStatusActive, []seedTx{
				{models.TransactionTypeTransfer, "300.00", "Перевод на сберегательный счёт", 7},
			}},
		},
	},
	{
		customer: models.Customer{
			FirstName: "Aigerim", LastName: "Sadykova",
			BirthDate: day(1998, time.November, 3), PassportNumber: "IDKG981103",
			PhoneNumber: "+996555000002", Email: "aigerim@example.com",
			Address: "г. Ош, пр. Масалиева, 10",
		},
		accounts: []seedAccount{
			{"KG43TEST0000000000000003", models.AccountTypeCurrent, "KGS", "8200.00", models.AccountStatusActive, []seedTx{
				{models.TransactionTypeDeposit, "9000.00", "Стипендия", 20},
				{models.TransactionTypeWithdrawal, "800.00", "Снятие в банкомате", 19},
				{models.TransactionTypePayment, "1200.00", "Оплата телефона", 18},
				{models.TransactionTypeDeposit, "500.00", "from Azamat Uulu to Aigerim Sadykova", 4},
			}},
		},
	},
	{
		customer: models.Customer{
			FirstName: "Bakyt", LastName: "Toktogulov",
			BirthDate: day(1989, time.February, 22), PassportNumber: "IDKG890222",
			PhoneNumber: "+996555000003", Email: "bakyt@example.com",
			Address: "г. Каракол, ул. Абдрахманова, 7",
		},
		accounts: []seedAccount{
			{"KG43TEST0000000000000004", models.AccountTypeCurrent, "USD", "540.00", models.AccountStatusActive, []seedTx{
				{models.TransactionTypeDeposit, "500.00", "Пополнение счёта", 3},
				{models.TransactionTypePayment, "25.00", "Оплата подписки", 2},
			}},
			{"KG43TEST0000000000000005", models.AccountTypeCredit, "KGS", "0.00", models.AccountStatusFrozen, []seedTx{
				{models.TransactionTypeTransfer, "1000.00", "Перевод на кредитный счёт", 1},
			}},
		},
	},
}

// Seed заполняет пустую базу демо-данными. Если клиенты уже есть, ничего не делает.
func Seed(ctx context.Context, store *LedgerStore, hash func(string) (string, error), now time.Time) error {
	n, err := store.CountCustomers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		utils.LogInfo("Seed", "Клиенты уже есть (%d), заполнение пропущено", n)
		return nil
	}

	passwordHash, err := hash(demoPassword)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	for _, sc := range demoCustomers {
		c := sc.customer
		c.PasswordHash = passwordHash
		if err := store.CreateCustomer(ctx, &c); err != nil {
			return err
		}

		for _, sa := range sc.accounts {
			a := models.Account{
				CustomerID:    c.ID,
				AccountNumber: sa.number,
				Type:          sa.kind,
				Currency:      sa.currency,
				Balance:       decimal.RequireFromString(sa.balance),
				Status:        sa.status,
			}
			if err := store.CreateAccount(ctx, &a); err != nil {
				return err
			}

			for _, st := range sa.txs {
				at := now.Add(-time.Duration(st.daysAgo) * 24 * time.Hour).UTC()
				tr := models.Transaction{
					AccountID:   a.ID,
					Type:        st.kind,
					Amount:      decimal.RequireFromString(st.amount),
					Currency:    sa.currency,
					Description: st.description,
					Status:      models.TransactionStatusCompleted,
					CreatedAt:   at,
				}
				if err := store.AppendTransaction(ctx, &tr); err != nil {
					return err
				}
			}
		}
		utils.LogSuccess("Seed", "Клиент %s (ID: %d) создан", c.FullName(), c.ID)
	}
	return nil
}
