package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. The reference data set only knows income and
// expense; sign interpretation of Amount is left to the caller.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DateLayout is the day-month-year format used when transactions are
// returned to clients.
const DateLayout = "02-01-2006"

// Transaction represents a single bookkeeping entry in the
// `transactions` table. Amounts are decimals end to end so currency
// values never pass through a float.
//
// Fields:
//  ID          – primary key identifier.
//  Type        – "income" or "expense".
//  Amount      – exact monetary amount (DECIMAL(14,2) in storage).
//  Description – optional free-form text.
//  Date        – calendar date of the entry (time component ignored).
//  UserID      – owner of the entry; rows cascade when the user is deleted.
type Transaction struct {
	ID          uint64          // transactions.id
	Type        string          // transactions.type
	Amount      decimal.Decimal // transactions.amount
	Description string          // transactions.description
	Date        time.Time       // transactions.date
	UserID      uint64          // transactions.user_id
}

// FormattedDate renders the entry date as DD-MM-YYYY.
func (t Transaction) FormattedDate() string {
	return t.Date.Format(DateLayout)
}

// ValidType reports whether s is one of the known transaction types.
func ValidType(s string) bool {
	return s == TypeIncome || s == TypeExpense
}
