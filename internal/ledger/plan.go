package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddInput is a requested financial event as entered by the user. Amount is
// always positive here; the planner applies the storage sign convention.
type AddInput struct {
	OwnerID       uint
	Name          string
	Kind          Kind
	Amount        decimal.Decimal
	Date          string
	Source        Source     // expense only
	DebtAction    DebtAction // debt only
	DebtDueDate   string     // borrow only
	RelatedDebtID string     // pay only
}

// Plan is the exact set of record mutations an operation must persist. All of
// a plan's writes belong to one logical operation and must be applied
// atomically.
type Plan struct {
	Inserts  []Record
	MarkPaid []string // borrow record ids whose debt status flips to paid
	Deletes  []string
	Outcome  Outcome
}

// Empty reports whether the plan carries no writes at all.
func (p Plan) Empty() bool {
	return len(p.Inserts) == 0 && len(p.MarkPaid) == 0 && len(p.Deletes) == 0
}

func validateDate(field, s string) error {
	if s == "" {
		return invalidf(field, "date is required")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return invalidf(field, "invalid date %q, want YYYY-MM-DD", s)
	}
	return nil
}

func (in AddInput) validate() error {
	if in.Name == "" {
		return invalidf("name", "name is required")
	}
	if !in.Kind.Valid() {
		return invalidf("kind", "unknown kind %q", string(in.Kind))
	}
	if in.Amount.Sign() <= 0 {
		return invalidf("amount", "amount must be positive")
	}
	if err := validateDate("date", in.Date); err != nil {
		return err
	}

	// kind-dependent fields: reject what does not belong to the declared kind
	if in.Kind != KindExpense && in.Source != "" {
		return invalidf("source", "source is only valid for expenses")
	}
	if in.Kind == KindExpense && in.Source != "" && in.Source != SourceCurrent && in.Source != SourceSavings {
		return invalidf("source", "unknown source %q", string(in.Source))
	}
	if in.Kind != KindDebt {
		if in.DebtAction != "" || in.DebtDueDate != "" || in.RelatedDebtID != "" {
			return invalidf("debt_action", "debt fields are only valid for debts")
		}
		return nil
	}

	switch in.DebtAction {
	case ActionBorrow:
		if in.RelatedDebtID != "" {
			return invalidf("related_debt_id", "borrow records cannot reference another debt")
		}
		if in.DebtDueDate != "" {
			if err := validateDate("debt_due_date", in.DebtDueDate); err != nil {
				return err
			}
		}
	case ActionPay:
		if in.RelatedDebtID == "" {
			return invalidf("related_debt_id", "payment requires the debt being paid")
		}
		if in.DebtDueDate != "" {
			return invalidf("debt_due_date", "due date is only valid for borrow records")
		}
	default:
		return invalidf("debt_action", "debt requires action borrow or pay")
	}
	return nil
}

// PlanAdd determines the record writes a requested event must produce, given
// the user's current record snapshot. It never mutates records.
func PlanAdd(in AddInput, records []Record) (Plan, error) {
	if err := in.validate(); err != nil {
		return Plan{}, err
	}

	base := Record{
		ID:      uuid.NewString(),
		OwnerID: in.OwnerID,
		Name:    in.Name,
		Kind:    in.Kind,
		Amount:  in.Amount,
		Date:    in.Date,
	}

	switch {
	case in.Kind == KindExpense && in.Source == SourceSavings:
		// the expense plus a synthetic savings deduction, as one atomic pair
		base.Source = SourceSavings
		deduction := Record{
			ID:      uuid.NewString(),
			OwnerID: in.OwnerID,
			Name:    "Deduction for: " + in.Name,
			Kind:    KindSavings,
			Amount:  in.Amount.Neg(),
			Date:    in.Date,
		}
		return Plan{Inserts: []Record{base, deduction}, Outcome: OutcomeRecorded}, nil

	case in.Kind == KindExpense:
		base.Source = SourceCurrent
		return Plan{Inserts: []Record{base}, Outcome: OutcomeRecorded}, nil

	case in.Kind == KindDebt && in.DebtAction == ActionBorrow:
		base.DebtAction = ActionBorrow
		base.DebtDueDate = in.DebtDueDate
		base.DebtStatus = StatusUnpaid
		base.Remaining = in.Amount
		return Plan{Inserts: []Record{base}, Outcome: OutcomeRecorded}, nil

	case in.Kind == KindDebt && in.DebtAction == ActionPay:
		return planPayment(base, in.RelatedDebtID, in.Amount, records)

	default:
		// plain income / savings
		return Plan{Inserts: []Record{base}, Outcome: OutcomeRecorded}, nil
	}
}

// PlanPayment plans a direct payment of amount against the borrow record
// debtID, dated today. If the debt is already settled the returned plan is an
// informational no-op (Outcome = AlreadySettled) carrying no writes.
func PlanPayment(debtID string, amount decimal.Decimal, records []Record) (Plan, error) {
	if amount.Sign() <= 0 {
		return Plan{}, invalidf("amount", "amount must be positive")
	}
	idx := BuildIndex(records)
	debt, ok := idx[debtID]
	if !ok || !debt.IsBorrow() {
		return Plan{}, &NotFoundError{ID: debtID}
	}

	if RemainingDebt(records, debt).Sign() <= 0 {
		return Plan{Outcome: OutcomeAlreadySettled}, nil
	}

	payment := Record{
		ID:      uuid.NewString(),
		OwnerID: debt.OwnerID,
		Name:    "Payment for: " + debt.Name,
		Kind:    KindDebt,
		Amount:  amount,
		Date:    time.Now().Format("2006-01-02"),
	}
	return planPayment(payment, debtID, amount, records)
}

// planPayment finishes a pay plan once the payment record skeleton is built.
// amount is the positive payment size; the stored record is negated.
func planPayment(payment Record, debtID string, amount decimal.Decimal, records []Record) (Plan, error) {
	idx := BuildIndex(records)
	debt, ok := idx[debtID]
	if !ok || !debt.IsBorrow() {
		return Plan{}, &NotFoundError{ID: debtID}
	}

	remainingBefore := debt.Amount.Sub(totalPaid(records, debtID))
	remainingAfter := remainingBefore.Sub(amount)

	payment.Amount = amount.Neg()
	payment.DebtAction = ActionPay
	payment.RelatedDebtID = debtID
	if remainingAfter.Sign() > 0 {
		payment.Remaining = remainingAfter
	} else {
		payment.Remaining = decimal.Zero // overpayment clamps at zero
	}

	plan := Plan{Inserts: []Record{payment}, Outcome: OutcomeRecorded}
	if remainingAfter.Sign() <= 0 {
		plan.MarkPaid = append(plan.MarkPaid, debtID)
		plan.Outcome = OutcomeSettled
	}
	return plan, nil
}

// PlanDelete determines the full deletion set for the given record. Deleting a
// borrow record cascades to every payment referencing it, so no orphaned
// payment survives.
func PlanDelete(id string, records []Record) (Plan, error) {
	idx := BuildIndex(records)
	target, ok := idx[id]
	if !ok {
		return Plan{}, &NotFoundError{ID: id}
	}

	deletes := []string{}
	if target.IsBorrow() {
		for _, r := range records {
			if r.RelatedDebtID == id {
				deletes = append(deletes, r.ID)
			}
		}
	}
	deletes = append(deletes, id)
	return Plan{Deletes: deletes, Outcome: OutcomeDeleted}, nil
}
