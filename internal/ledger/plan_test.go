package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func borrowRecord(id string, amount int64, date string) Record {
	return Record{
		ID:         id,
		OwnerID:    1,
		Name:       "Loan " + id,
		Kind:       KindDebt,
		Amount:     dec(amount),
		Date:       date,
		DebtAction: ActionBorrow,
		DebtStatus: StatusUnpaid,
		Remaining:  dec(amount),
	}
}

func paymentRecord(id, debtID string, amount int64, date string) Record {
	return Record{
		ID:            id,
		OwnerID:       1,
		Name:          "Payment " + id,
		Kind:          KindDebt,
		Amount:        dec(amount).Neg(),
		Date:          date,
		DebtAction:    ActionPay,
		RelatedDebtID: debtID,
		Remaining:     decimal.Zero,
	}
}

func TestPlanAdd_Income(t *testing.T) {
	plan, err := PlanAdd(AddInput{
		OwnerID: 1,
		Name:    "Salary",
		Kind:    KindIncome,
		Amount:  dec(5_000_000),
		Date:    "2024-01-25",
	}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 1)
	rec := plan.Inserts[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, KindIncome, rec.Kind)
	assert.True(t, rec.Amount.Equal(dec(5_000_000)))
	assert.Equal(t, OutcomeRecorded, plan.Outcome)
}

func TestPlanAdd_ExpenseDefaultsToCurrentFunds(t *testing.T) {
	plan, err := PlanAdd(AddInput{
		OwnerID: 1,
		Name:    "Lunch",
		Kind:    KindExpense,
		Amount:  dec(25_000),
		Date:    "2024-01-05",
	}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, SourceCurrent, plan.Inserts[0].Source)
}

func TestPlanAdd_ExpenseFromSavingsEmitsDeductionPair(t *testing.T) {
	plan, err := PlanAdd(AddInput{
		OwnerID: 1,
		Name:    "Groceries",
		Kind:    KindExpense,
		Amount:  dec(20_000),
		Date:    "2024-02-10",
		Source:  SourceSavings,
	}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 2)

	expense := plan.Inserts[0]
	assert.Equal(t, KindExpense, expense.Kind)
	assert.Equal(t, SourceSavings, expense.Source)
	assert.True(t, expense.Amount.Equal(dec(20_000)))

	deduction := plan.Inserts[1]
	assert.Equal(t, KindSavings, deduction.Kind)
	assert.Equal(t, "Deduction for: Groceries", deduction.Name)
	assert.True(t, deduction.Amount.Equal(dec(-20_000)))
	assert.Equal(t, expense.Date, deduction.Date)
}

func TestPlanAdd_BorrowStartsUnpaidWithFullRemaining(t *testing.T) {
	plan, err := PlanAdd(AddInput{
		OwnerID:     1,
		Name:        "Car loan",
		Kind:        KindDebt,
		Amount:      dec(100_000),
		Date:        "2024-01-05",
		DebtAction:  ActionBorrow,
		DebtDueDate: "2024-06-01",
	}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 1)
	rec := plan.Inserts[0]
	assert.Equal(t, StatusUnpaid, rec.DebtStatus)
	assert.True(t, rec.Remaining.Equal(dec(100_000)))
	assert.Equal(t, "2024-06-01", rec.DebtDueDate)
	assert.Empty(t, plan.MarkPaid)
}

func TestPlanAdd_PartialPayment(t *testing.T) {
	records := []Record{borrowRecord("d1", 100_000, "2024-01-05")}

	plan, err := PlanAdd(AddInput{
		OwnerID:       1,
		Name:          "First installment",
		Kind:          KindDebt,
		Amount:        dec(40_000),
		Date:          "2024-01-15",
		DebtAction:    ActionPay,
		RelatedDebtID: "d1",
	}, records)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 1)
	pay := plan.Inserts[0]
	assert.True(t, pay.Amount.Equal(dec(-40_000)), "payments are stored negative")
	assert.True(t, pay.Remaining.Equal(dec(60_000)))
	assert.Empty(t, plan.MarkPaid, "partial payment must not settle the debt")
	assert.Equal(t, OutcomeRecorded, plan.Outcome)
}

func TestPlanAdd_FinalPaymentSettlesDebt(t *testing.T) {
	records := []Record{
		borrowRecord("d1", 100_000, "2024-01-05"),
		paymentRecord("p1", "d1", 40_000, "2024-01-15"),
	}

	plan, err := PlanAdd(AddInput{
		OwnerID:       1,
		Name:          "Final installment",
		Kind:          KindDebt,
		Amount:        dec(60_000),
		Date:          "2024-01-20",
		DebtAction:    ActionPay,
		RelatedDebtID: "d1",
	}, records)
	require.NoError(t, err)

	require.Len(t, plan.Inserts, 1)
	assert.True(t, plan.Inserts[0].Remaining.IsZero())
	assert.Equal(t, []string{"d1"}, plan.MarkPaid)
	assert.Equal(t, OutcomeSettled, plan.Outcome)
}

func TestPlanAdd_OverpaymentClampsRemainingToZero(t *testing.T) {
	records := []Record{borrowRecord("d1", 50_000, "2024-01-05")}

	plan, err := PlanAdd(AddInput{
		OwnerID:       1,
		Name:          "Big payment",
		Kind:          KindDebt,
		Amount:        dec(80_000),
		Date:          "2024-01-15",
		DebtAction:    ActionPay,
		RelatedDebtID: "d1",
	}, records)
	require.NoError(t, err)

	assert.True(t, plan.Inserts[0].Remaining.IsZero())
	assert.Equal(t, []string{"d1"}, plan.MarkPaid)
}

func TestPlanAdd_PayUnknownDebt(t *testing.T) {
	_, err := PlanAdd(AddInput{
		OwnerID:       1,
		Name:          "Ghost payment",
		Kind:          KindDebt,
		Amount:        dec(10_000),
		Date:          "2024-01-15",
		DebtAction:    ActionPay,
		RelatedDebtID: "nope",
	}, nil)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.ID)
}

func TestPlanAdd_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   AddInput
	}{
		{"empty name", AddInput{Kind: KindIncome, Amount: dec(10), Date: "2024-01-01"}},
		{"unknown kind", AddInput{Name: "x", Kind: "loan", Amount: dec(10), Date: "2024-01-01"}},
		{"zero amount", AddInput{Name: "x", Kind: KindIncome, Amount: dec(0), Date: "2024-01-01"}},
		{"negative amount", AddInput{Name: "x", Kind: KindIncome, Amount: dec(-5), Date: "2024-01-01"}},
		{"bad date", AddInput{Name: "x", Kind: KindIncome, Amount: dec(10), Date: "01-01-2024"}},
		{"source on income", AddInput{Name: "x", Kind: KindIncome, Amount: dec(10), Date: "2024-01-01", Source: SourceSavings}},
		{"debt without action", AddInput{Name: "x", Kind: KindDebt, Amount: dec(10), Date: "2024-01-01"}},
		{"pay without related id", AddInput{Name: "x", Kind: KindDebt, Amount: dec(10), Date: "2024-01-01", DebtAction: ActionPay}},
		{"borrow with related id", AddInput{Name: "x", Kind: KindDebt, Amount: dec(10), Date: "2024-01-01", DebtAction: ActionBorrow, RelatedDebtID: "d1"}},
		{"debt action on savings", AddInput{Name: "x", Kind: KindSavings, Amount: dec(10), Date: "2024-01-01", DebtAction: ActionBorrow}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlanAdd(tc.in, nil)
			var v *ValidationError
			assert.ErrorAs(t, err, &v)
		})
	}
}

func TestPlanPayment_AlreadySettledIsInformationalNoOp(t *testing.T) {
	records := []Record{
		borrowRecord("d1", 100_000, "2024-01-05"),
		paymentRecord("p1", "d1", 100_000, "2024-01-20"),
	}

	plan, err := PlanPayment("d1", dec(10_000), records)
	require.NoError(t, err, "already settled is not an error")
	assert.True(t, plan.Empty(), "no writes for a settled debt")
	assert.Equal(t, OutcomeAlreadySettled, plan.Outcome)
}

func TestPlanPayment_SettledFlagNotTrusted(t *testing.T) {
	// debt fully paid by history but the stored flag was never flipped
	stale := borrowRecord("d1", 100_000, "2024-01-05")
	stale.DebtStatus = StatusUnpaid
	records := []Record{
		stale,
		paymentRecord("p1", "d1", 60_000, "2024-01-10"),
		paymentRecord("p2", "d1", 40_000, "2024-01-20"),
	}

	plan, err := PlanPayment("d1", dec(5_000), records)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySettled, plan.Outcome)
}

func TestPlanPayment_RejectsNonPositiveAmount(t *testing.T) {
	records := []Record{borrowRecord("d1", 100_000, "2024-01-05")}

	var v *ValidationError
	_, err := PlanPayment("d1", dec(0), records)
	assert.ErrorAs(t, err, &v)
	_, err = PlanPayment("d1", dec(-10), records)
	assert.ErrorAs(t, err, &v)
}

func TestPlanPayment_TargetMustBeBorrowRecord(t *testing.T) {
	records := []Record{
		borrowRecord("d1", 100_000, "2024-01-05"),
		paymentRecord("p1", "d1", 40_000, "2024-01-15"),
	}

	// paying "against" a payment record is a not-found, not a crash
	_, err := PlanPayment("p1", dec(10_000), records)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestPlanDelete_PlainRecord(t *testing.T) {
	records := []Record{
		{ID: "r1", Kind: KindIncome, Amount: dec(100), Date: "2024-01-01"},
		{ID: "r2", Kind: KindExpense, Amount: dec(50), Date: "2024-01-02"},
	}

	plan, err := PlanDelete("r2", records)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, plan.Deletes)
}

func TestPlanDelete_BorrowCascadesToPayments(t *testing.T) {
	records := []Record{
		borrowRecord("d1", 100_000, "2024-01-05"),
		paymentRecord("p1", "d1", 40_000, "2024-01-15"),
		paymentRecord("p2", "d1", 60_000, "2024-01-20"),
		borrowRecord("d2", 30_000, "2024-02-01"),
		paymentRecord("p3", "d2", 10_000, "2024-02-10"),
	}

	plan, err := PlanDelete("d1", records)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"d1", "p1", "p2"}, plan.Deletes)
	assert.NotContains(t, plan.Deletes, "p3", "other debts' payments survive")
}

func TestPlanDelete_UnknownRecord(t *testing.T) {
	_, err := PlanDelete("missing", nil)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

// Full lifecycle of one debt: borrow, pay in two installments, then try to
// overpay the settled debt, then delete with cascade.
func TestDebtLifecycle(t *testing.T) {
	records := []Record{borrowRecord("d1", 100_000, "2024-01-05")}

	// fresh borrow is fully outstanding
	debts := UnpaidDebts(records)
	require.Len(t, debts, 1)
	assert.True(t, debts[0].Remaining.Equal(dec(100_000)))

	// first installment: 40000
	plan, err := PlanAdd(AddInput{
		OwnerID: 1, Name: "Installment 1", Kind: KindDebt,
		Amount: dec(40_000), Date: "2024-01-15",
		DebtAction: ActionPay, RelatedDebtID: "d1",
	}, records)
	require.NoError(t, err)
	records = append(records, plan.Inserts...)

	debts = UnpaidDebts(records)
	require.Len(t, debts, 1)
	assert.True(t, debts[0].Remaining.Equal(dec(60_000)))
	assert.Equal(t, StatusUnpaid, debts[0].DebtStatus)

	monthTotals := CalculateTotals(FilterByMonth(records, "2024-01"))
	assert.True(t, monthTotals.Debt.Equal(dec(60_000)), "debt total nets borrow against payments")

	// second installment settles the debt
	plan, err = PlanAdd(AddInput{
		OwnerID: 1, Name: "Installment 2", Kind: KindDebt,
		Amount: dec(60_000), Date: "2024-01-20",
		DebtAction: ActionPay, RelatedDebtID: "d1",
	}, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, plan.MarkPaid)
	records = append(records, plan.Inserts...)

	assert.Empty(t, UnpaidDebts(records), "settled debt leaves the unpaid list")

	// further direct payment is a no-op
	plan, err = PlanPayment("d1", dec(10_000), records)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.Equal(t, OutcomeAlreadySettled, plan.Outcome)

	// cascade delete removes the whole history
	plan, err = PlanDelete("d1", records)
	require.NoError(t, err)
	assert.Len(t, plan.Deletes, 3)

	deleted := map[string]bool{}
	for _, id := range plan.Deletes {
		deleted[id] = true
	}
	var left []Record
	for _, r := range records {
		if !deleted[r.ID] {
			left = append(left, r)
		}
	}
	assert.Empty(t, left)
	assert.Empty(t, UnpaidDebts(left))
	assert.True(t, CalculateTotals(left).Debt.IsZero())
}
