package tools

// ID: закрытый набор имён инструментов. Имена чувствительны к регистру.
type ID string

const (
	GetBalance                 ID = "get_balance"
	GetTransactions            ID = "get_transactions"
	TransferMoney              ID = "transfer_money"
	GetLastIncomingTransaction ID = "get_last_incoming_transaction"
	GetAccountsInfo            ID = "get_accounts_info"
	GetIncomingSumForPeriod    ID = "get_incoming_sum_for_period"
	GetOutgoingSumForPeriod    ID = "get_outgoing_sum_for_period"
	GetLast3TransferRecipients ID = "get_last_3_transfer_recipients"
	GetLargestTransaction      ID = "get_largest_transaction"

	ListAllCardNames      ID = "list_all_card_names"
	GetCardDetails        ID = "get_card_details"
	CompareCards          ID = "compare_cards"
	GetCardsByCurrency    ID = "get_cards_by_currency"
	GetCardsByType        ID = "get_cards_by_type"
	ListAllDepositNames   ID = "list_all_deposit_names"
	GetDepositDetails     ID = "get_deposit_details"
	GetDepositsByCurrency ID = "get_deposits_by_currency"
	GetBankInfo           ID = "get_bank_info"
	GetContactInfo        ID = "get_contact_info"
	GetFAQByCategory      ID = "get_faq_by_category"
)

// Имена аргументов.
const (
	ArgCustomerID  = "customer_id"
	ArgLang        = "lang"
	ArgLimit       = "limit"
	ArgToName      = "to_name"
	ArgAmount      = "amount"
	ArgCurrency    = "currency"
	ArgStartDate   = "start_date"
	ArgEndDate     = "end_date"
	ArgCardName    = "card_name"
	ArgCardNames   = "card_names"
	ArgCardType    = "card_type"
	ArgDepositName = "deposit_name"
	ArgCategory    = "category"
)

// Spec: описание инструмента: имя, разрешённые аргументы по порядку и подсказка для модели.
type Spec struct {
	ID      ID
	Params  []string
	Summary string
}

// specs: единственный источник allow-list'ов.
var specs = []Spec{
	{GetBalance, []string{ArgCustomerID, ArgLang}, "общий баланс по всем счетам клиента"},
	{GetTransactions, []string{ArgCustomerID, ArgLimit, ArgLang}, "последние транзакции клиента, limit от 1 до 50 (по умолчанию 5)"},
	{TransferMoney, []string{ArgCustomerID, ArgToName, ArgAmount, ArgCurrency, ArgLang}, "перевод денег другому клиенту по имени и фамилии; currency по умолчанию KGS"},
	{GetLastIncomingTransaction, []string{ArgCustomerID, ArgLang}, "последний входящий перевод и его отправитель"},
	{GetAccountsInfo, []string{ArgCustomerID, ArgLang}, "список счетов клиента: тип, номер, баланс, валюта, статус"},
	{GetIncomingSumForPeriod, []string{ArgCustomerID, ArgStartDate, ArgEndDate, ArgLang}, "сумма входящих за период, даты в формате YYYY-MM-DD включительно"},
	{GetOutgoingSumForPeriod, []string{ArgCustomerID, ArgStartDate, ArgEndDate, ArgLang}, "сумма исходящих за период, даты в формате YYYY-MM-DD включительно"},
	{GetLast3TransferRecipients, []string{ArgCustomerID, ArgLang}, "три последних получателя переводов"},
	{GetLargestTransaction, []string{ArgCustomerID, ArgLang}, "самая крупная транзакция клиента"},

	{ListAllCardNames, []string{ArgLang}, "названия всех карт банка"},
	{GetCardDetails, []string{ArgCardName, ArgLang}, "подробности о карте"},
	{CompareCards, []string{ArgCardNames, ArgLang}, `сравнение карт, card_names: JSON-список, например ["Visa Classic", "Элкарт"]`},
	{GetCardsByCurrency, []string{ArgCurrency, ArgLang}, "карты в указанной валюте"},
	{GetCardsByType, []string{ArgCardType, ArgLang}, "карты по типу: debit, credit, virtual"},
	{ListAllDepositNames, []string{ArgLang}, "названия всех депозитов"},
	{GetDepositDetails, []string{ArgDepositName, ArgLang}, "подробности о депозите"},
	{GetDepositsByCurrency, []string{ArgCurrency, ArgLang}, "депозиты в указанной валюте"},
	{GetBankInfo, []string{ArgLang}, "общая информация о банке"},
	{GetContactInfo, []string{ArgLang}, "контакты банка"},
	{GetFAQByCategory, []string{ArgCategory, ArgLang}, "частые вопросы по категории: cards, deposits, transfers, app"},
}

// Specs возвращает описания всех инструментов в порядке регистрации.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// SpecFor ищет описание по точному имени.
func SpecFor(name string) (Spec, bool) {
	for _, s := range specs {
		if string(s.ID) == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Allows сообщает, входит ли аргумент в allow-list инструмента.
func (s Spec) Allows(key string) bool {
	for _, p := range s.Params {
		if p == key {
			return true
		}
	}
	return false
}
