package postgres

import (
	"fmt"

	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/pkg/apperr"
)

type bankProfileRepository struct {
	db *gorm.DB
}

// NewBankProfileRepository builds the BankProfile persistence adapter,
// including the row-lock primitive the nosso-número sequencer (C4) is
// built on.
func NewBankProfileRepository(db *gorm.DB) ports.BankProfileRepository {
	return &bankProfileRepository{db: db}
}

func (r *bankProfileRepository) Create(ctx context.Context, profile *entity.BankProfile) error {
	return dbFromContext(ctx, r.db).Create(profile).Error
}

func (r *bankProfileRepository) GetByID(ctx context.Context, id string) (*entity.BankProfile, error) {
	var profile entity.BankProfile
	if err := dbFromContext(ctx, r.db).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *bankProfileRepository) GetByTenantAndBank(ctx context.Context, tenantID string, bank entity.BankKind) (*entity.BankProfile, error) {
	var profile entity.BankProfile
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND bank = ?", tenantID, bank).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *bankProfileRepository) Update(ctx context.Context, profile *entity.BankProfile) error {
	return dbFromContext(ctx, r.db).Save(profile).Error
}

func (r *bankProfileRepository) List(ctx context.Context, tenantID string) ([]*entity.BankProfile, error) {
	var profiles []*entity.BankProfile
	err := dbFromContext(ctx, r.db).Where("tenant_id = ?", tenantID).Find(&profiles).Error
	return profiles, err
}

// LockForAllocation takes a SELECT ... FOR UPDATE row lock, the single
// serialization point spec.md §5 requires for nosso-número allocation.
// Must run inside the transaction opened by UnitOfWork.WithTransaction, or
// the lock is released the instant this call returns and offers no
// protection.
func (r *bankProfileRepository) LockForAllocation(ctx context.Context, tenantID string, bank entity.BankKind) (current, min, max int64, err error) {
	var profile entity.BankProfile
	err = dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND bank = ?", tenantID, bank).
		First(&profile).Error
	if err != nil {
		return 0, 0, 0, fmt.Errorf("lock bank profile for allocation: %w", err)
	}
	if !profile.Active {
		return 0, 0, 0, apperr.New(apperr.KindBankDisabled, "bank profile is not active")
	}
	return profile.CounterCurrent, profile.CounterMin, profile.CounterMax, nil
}

// AdvanceCounter persists the new current value for the profile locked by
// a prior LockForAllocation call in the same transaction.
func (r *bankProfileRepository) AdvanceCounter(ctx context.Context, tenantID string, bank entity.BankKind, newCurrent int64) error {
	return dbFromContext(ctx, r.db).
		Model(&entity.BankProfile{}).
		Where("tenant_id = ? AND bank = ?", tenantID, bank).
		Update("counter_current", newCurrent).Error
}
