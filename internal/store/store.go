package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeheskieltame/spend-save-analyze/internal/ledger"
	"github.com/yeheskieltame/spend-save-analyze/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record id does not exist in the store.
var ErrNotFound = errors.New("record not found")

// RecordStore persists financial records per user. Every operation is scoped
// by owner where it reads, and may fail with a transport/availability error
// which callers surface unchanged.
type RecordStore interface {
	SelectAllForUser(ctx context.Context, ownerID uint) ([]ledger.Record, error)
	Insert(ctx context.Context, rec ledger.Record) (ledger.Record, error)
	InsertMany(ctx context.Context, recs []ledger.Record) ([]ledger.Record, error)
	MarkDebtPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// Atomic runs fn against a store whose writes commit or roll back as one.
	Atomic(ctx context.Context, fn func(RecordStore) error) error
}

// GormStore is the SQLite-backed RecordStore.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) SelectAllForUser(ctx context.Context, ownerID uint) ([]ledger.Record, error) {
	var rows []models.FinancialRecord
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}

	out := make([]ledger.Record, 0, len(rows))
	for i := range rows {
		out = append(out, toDomain(&rows[i]))
	}
	return out, nil
}

func (s *GormStore) Insert(ctx context.Context, rec ledger.Record) (ledger.Record, error) {
	row := toModel(rec)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return ledger.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return toDomain(&row), nil
}

func (s *GormStore) InsertMany(ctx context.Context, recs []ledger.Record) ([]ledger.Record, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	rows := make([]models.FinancialRecord, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, toModel(r))
	}
	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}
	out := make([]ledger.Record, 0, len(rows))
	for i := range rows {
		out = append(out, toDomain(&rows[i]))
	}
	return out, nil
}

func (s *GormStore) MarkDebtPaid(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.FinancialRecord{}).
		Where("id = ?", id).
		Update("debt_status", string(ledger.StatusPaid))
	if res.Error != nil {
		return fmt.Errorf("update debt status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.FinancialRecord{}).Error; err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *GormStore) Atomic(ctx context.Context, fn func(RecordStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

// ---------- domain <-> model mapping ----------

func toModel(r ledger.Record) models.FinancialRecord {
	row := models.FinancialRecord{
		ID:            r.ID,
		UserID:        r.OwnerID,
		Name:          r.Name,
		Kind:          string(r.Kind),
		Amount:        r.Amount,
		Date:          r.Date,
		Source:        string(r.Source),
		DebtAction:    string(r.DebtAction),
		DebtDueDate:   r.DebtDueDate,
		DebtStatus:    string(r.DebtStatus),
		RelatedDebtID: r.RelatedDebtID,
	}
	if r.Kind == ledger.KindDebt {
		row.Remaining = decimal.NullDecimal{Decimal: r.Remaining, Valid: true}
	}
	return row
}

func toDomain(row *models.FinancialRecord) ledger.Record {
	rec := ledger.Record{
		ID:            row.ID,
		OwnerID:       row.UserID,
		Name:          row.Name,
		Kind:          ledger.Kind(row.Kind),
		Amount:        row.Amount,
		Date:          row.Date,
		Source:        ledger.Source(row.Source),
		DebtAction:    ledger.DebtAction(row.DebtAction),
		DebtDueDate:   row.DebtDueDate,
		DebtStatus:    ledger.DebtStatus(row.DebtStatus),
		RelatedDebtID: row.RelatedDebtID,
	}
	if row.Remaining.Valid {
		rec.Remaining = row.Remaining.Decimal
	}
	return rec
}
