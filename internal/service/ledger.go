package service

import (
	"context"

	"github.com/yeheskieltame/spend-save-analyze/internal/ledger"
	"github.com/yeheskieltame/spend-save-analyze/internal/notify"
	"github.com/yeheskieltame/spend-save-analyze/internal/store"

	"github.com/shopspring/decimal"
)

// LedgerService wires the pure ledger engine to the record store and the
// change hub: plan against a fresh snapshot, persist the plan in one
// transaction, then signal subscribers.
//
// Planning happens inside the write transaction on purpose. Two
// near-simultaneous payments against the same debt then serialize on the
// store instead of both deriving the same remaining balance from a stale
// snapshot.
type LedgerService struct {
	Store store.RecordStore
	Hub   *notify.Hub
}

func NewLedgerService(st store.RecordStore, hub *notify.Hub) *LedgerService {
	return &LedgerService{Store: st, Hub: hub}
}

// Records returns the user's full record snapshot.
func (s *LedgerService) Records(ctx context.Context, ownerID uint) ([]ledger.Record, error) {
	return s.Store.SelectAllForUser(ctx, ownerID)
}

// AddRecord plans and persists a requested financial event. The returned plan
// tells the caller what was written and how the operation ended.
func (s *LedgerService) AddRecord(ctx context.Context, in ledger.AddInput) (ledger.Plan, error) {
	var plan ledger.Plan
	err := s.Store.Atomic(ctx, func(tx store.RecordStore) error {
		records, err := tx.SelectAllForUser(ctx, in.OwnerID)
		if err != nil {
			return err
		}
		plan, err = ledger.PlanAdd(in, records)
		if err != nil {
			return err
		}
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return ledger.Plan{}, err
	}
	s.publish(in.OwnerID, plan)
	return plan, nil
}

// PayDebt records a direct payment against the given borrow record. An
// already-settled debt yields an informational no-op plan, not an error.
func (s *LedgerService) PayDebt(ctx context.Context, ownerID uint, debtID string, amount decimal.Decimal) (ledger.Plan, error) {
	var plan ledger.Plan
	err := s.Store.Atomic(ctx, func(tx store.RecordStore) error {
		records, err := tx.SelectAllForUser(ctx, ownerID)
		if err != nil {
			return err
		}
		plan, err = ledger.PlanPayment(debtID, amount, records)
		if err != nil {
			return err
		}
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return ledger.Plan{}, err
	}
	s.publish(ownerID, plan)
	return plan, nil
}

// DeleteRecord removes a record, cascading to the payment history when the
// target is a borrow record.
func (s *LedgerService) DeleteRecord(ctx context.Context, ownerID uint, id string) (ledger.Plan, error) {
	var plan ledger.Plan
	err := s.Store.Atomic(ctx, func(tx store.RecordStore) error {
		records, err := tx.SelectAllForUser(ctx, ownerID)
		if err != nil {
			return err
		}
		plan, err = ledger.PlanDelete(id, records)
		if err != nil {
			return err
		}
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return ledger.Plan{}, err
	}
	s.publish(ownerID, plan)
	return plan, nil
}

func applyPlan(ctx context.Context, tx store.RecordStore, plan ledger.Plan) error {
	if len(plan.Inserts) > 0 {
		if _, err := tx.InsertMany(ctx, plan.Inserts); err != nil {
			return err
		}
	}
	for _, id := range plan.MarkPaid {
		if err := tx.MarkDebtPaid(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range plan.Deletes {
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *LedgerService) publish(ownerID uint, plan ledger.Plan) {
	if s.Hub == nil || plan.Empty() {
		return
	}
	s.Hub.Publish(ownerID)
}
