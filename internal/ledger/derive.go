package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals are the signed sums per kind for a record list. With the storage
// sign convention, Debt nets borrow amounts against payments and Savings nets
// contributions against deductions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
	Debt    decimal.Decimal
}

// CalculateTotals sums amounts grouped by kind.
func CalculateTotals(records []Record) Totals {
	t := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Savings: decimal.Zero,
		Debt:    decimal.Zero,
	}
	for _, r := range records {
		switch r.Kind {
		case KindIncome:
			t.Income = t.Income.Add(r.Amount)
		case KindExpense:
			t.Expense = t.Expense.Add(r.Amount)
		case KindSavings:
			t.Savings = t.Savings.Add(r.Amount)
		case KindDebt:
			t.Debt = t.Debt.Add(r.Amount)
		}
	}
	return t
}

// FilterByMonth keeps records whose date falls in month (YYYY-MM).
func FilterByMonth(records []Record, month string) []Record {
	return filterByPrefix(records, month)
}

// FilterByYear keeps records whose date falls in year (YYYY).
func FilterByYear(records []Record, year string) []Record {
	return filterByPrefix(records, year)
}

func filterByPrefix(records []Record, prefix string) []Record {
	out := []Record{}
	for _, r := range records {
		if len(r.Date) >= len(prefix) && r.Date[:len(prefix)] == prefix {
			out = append(out, r)
		}
	}
	return out
}

// FilterByKind keeps records of the given kind.
func FilterByKind(records []Record, kind Kind) []Record {
	out := []Record{}
	for _, r := range records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// AvailableMonths lists the distinct YYYY-MM values present, newest first.
func AvailableMonths(records []Record) []string {
	return availablePrefixes(records, 7)
}

// AvailableYears lists the distinct YYYY values present, newest first.
func AvailableYears(records []Record) []string {
	return availablePrefixes(records, 4)
}

func availablePrefixes(records []Record, n int) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range records {
		if len(r.Date) < n {
			continue
		}
		p := r.Date[:n]
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	// descending lexicographic == descending chronological for YYYY-MM dates
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// UnpaidDebts returns every borrow record still carrying an outstanding
// balance, with Remaining recomputed from payment history. The stored
// Remaining snapshot and DebtStatus flag are not trusted: a borrow whose
// recomputed remaining is zero is excluded even if its flag was never flipped.
func UnpaidDebts(records []Record) []Record {
	out := []Record{}
	for _, r := range records {
		if !r.IsBorrow() || r.DebtStatus == StatusPaid {
			continue
		}
		remaining := RemainingDebt(records, r)
		if remaining.Sign() <= 0 {
			continue
		}
		r.Remaining = remaining
		out = append(out, r)
	}
	return out
}

// TotalOutstanding sums the recomputed remaining balances of all unpaid debts.
func TotalOutstanding(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, d := range UnpaidDebts(records) {
		total = total.Add(d.Remaining)
	}
	return total
}

// Ratios relate each kind total to income. Every ratio is zero when income is
// zero; division by zero is defined away, not an error.
type Ratios struct {
	Expense decimal.Decimal
	Savings decimal.Decimal
	Debt    decimal.Decimal
}

// CalculateRatios derives expense/savings/debt ratios from totals.
func CalculateRatios(t Totals) Ratios {
	if t.Income.IsZero() {
		return Ratios{
			Expense: decimal.Zero,
			Savings: decimal.Zero,
			Debt:    decimal.Zero,
		}
	}
	return Ratios{
		Expense: t.Expense.Div(t.Income),
		Savings: t.Savings.Div(t.Income),
		Debt:    t.Debt.Div(t.Income),
	}
}
