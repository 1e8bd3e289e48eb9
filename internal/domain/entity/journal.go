package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cuentas contables usadas por el motor.
const (
	AccountReceivable      = "Accounts Receivable"
	AccountRevenue         = "Revenue"
	AccountCOGS            = "Cost of Goods Sold"
	AccountInventory       = "Inventory"
	AccountCash            = "Cash"
	AccountUnearnedRevenue = "Customer Deposits (Unearned Revenue)"
	AccountDamageExpense   = "Damage Expense"
	AccountLossExpense     = "Loss Expense"
)

// JournalEntry es un asiento contable de partida doble, append-only.
// Invariante: la suma de débitos es igual a la suma de créditos.
type JournalEntry struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	Description   string             `json:"description"`
	ReferenceType string             `json:"reference_type"`
	ReferenceID   string             `json:"reference_id"`
	Items         []JournalEntryItem `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// JournalEntryItem es una línea del asiento: una cuenta con débito o crédito
// (magnitudes positivas, nunca ambos en la misma línea).
type JournalEntryItem struct {
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Debit construye una línea de débito.
func Debit(account string, amount decimal.Decimal) JournalEntryItem {
	return JournalEntryItem{AccountName: account, Debit: amount}
}

// Credit construye una línea de crédito.
func Credit(account string, amount decimal.Decimal) JournalEntryItem {
	return JournalEntryItem{AccountName: account, Credit: amount}
}

// Balanced verifica la partida doble: sum(Debit) == sum(Credit).
func (e JournalEntry) Balanced() bool {
	var debits, credits decimal.Decimal
	for _, item := range e.Items {
		debits = debits.Add(item.Debit)
		credits = credits.Add(item.Credit)
	}
	return debits.Equal(credits)
}
