package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord is one financial event (income, expense, savings or debt)
// in a user's ledger. Amounts use decimals to avoid float drift; payments and
// savings deductions are stored negative.
//
// RelatedDebtID links a debt payment back to the borrow record it reduces; it
// is a lookup key, not an ownership reference. Remaining is a snapshot taken
// at write time; derivations always recompute from payment history.
type FinancialRecord struct {
	ID            string              `gorm:"primaryKey;size:36"`
	UserID        uint                `gorm:"index;not null"`
	Name          string              `gorm:"size:255;not null"`
	Kind          string              `gorm:"size:16;index;not null"` // income / expense / savings / debt
	Amount        decimal.Decimal     `gorm:"type:numeric;not null"`
	Date          string              `gorm:"size:10;index;not null"` // YYYY-MM-DD
	Source        string              `gorm:"size:16"`                // current / savings (expense only)
	DebtAction    string              `gorm:"size:16"`                // borrow / pay (debt only)
	DebtDueDate   string              `gorm:"size:10"`
	DebtStatus    string              `gorm:"size:16"` // unpaid / paid (borrow only)
	RelatedDebtID string              `gorm:"size:36;index"`
	Remaining     decimal.NullDecimal `gorm:"type:numeric"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
