package ledger

import "github.com/shopspring/decimal"

// Kind discriminates the four categories of financial records.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSavings Kind = "savings"
	KindDebt    Kind = "debt"
)

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindSavings, KindDebt:
		return true
	}
	return false
}

// Source tells where an expense is paid from. Expense records only.
type Source string

const (
	SourceCurrent Source = "current"
	SourceSavings Source = "savings"
)

// DebtAction distinguishes a new liability from a payment against one.
type DebtAction string

const (
	ActionBorrow DebtAction = "borrow"
	ActionPay    DebtAction = "pay"
)

// DebtStatus is the stored settle flag on a borrow record. Derivations never
// trust it alone; remaining balance is always recomputed from payment history.
type DebtStatus string

const (
	StatusUnpaid DebtStatus = "unpaid"
	StatusPaid   DebtStatus = "paid"
)

// Record is one financial event in a user's ledger. Which optional fields are
// meaningful depends on Kind: Source for expenses, DebtAction/DebtDueDate/
// DebtStatus/RelatedDebtID/Remaining for debts. Zero values mean "not set".
//
// Sign convention: income, savings, expense and borrow amounts are stored
// positive; pay records and savings deductions are stored negative so that
// summing a kind nets inflows against outflows.
type Record struct {
	ID            string
	OwnerID       uint
	Name          string
	Kind          Kind
	Amount        decimal.Decimal
	Date          string // YYYY-MM-DD
	Source        Source
	DebtAction    DebtAction
	DebtDueDate   string
	DebtStatus    DebtStatus
	RelatedDebtID string
	Remaining     decimal.Decimal // snapshot at write time, not ground truth
}

// IsBorrow reports whether r establishes a new liability.
func (r Record) IsBorrow() bool {
	return r.Kind == KindDebt && r.DebtAction == ActionBorrow
}

// IsPayment reports whether r reduces a liability.
func (r Record) IsPayment() bool {
	return r.Kind == KindDebt && r.DebtAction == ActionPay
}

// Index is an id -> record lookup built once per operation, so cross-record
// references (pay -> borrow) are checked against a single snapshot.
type Index map[string]Record

// BuildIndex indexes records by id.
func BuildIndex(records []Record) Index {
	idx := make(Index, len(records))
	for _, r := range records {
		idx[r.ID] = r
	}
	return idx
}

// totalPaid sums the absolute amounts of all payments against debtID.
func totalPaid(records []Record, debtID string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.IsPayment() && r.RelatedDebtID == debtID {
			total = total.Add(r.Amount.Abs())
		}
	}
	return total
}

// RemainingDebt recomputes the outstanding balance of the given borrow record
// from its full payment history, clamped at zero.
func RemainingDebt(records []Record, borrow Record) decimal.Decimal {
	remaining := borrow.Amount.Sub(totalPaid(records, borrow.ID))
	if remaining.Sign() < 0 {
		return decimal.Zero
	}
	return remaining
}
