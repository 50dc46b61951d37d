package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
)

// remittanceSequence tracks the per-(tenant, bank) file-sequential counter
// spec.md §6's filename convention is keyed on, independent of the
// nosso-número counter a BankProfile carries.
type remittanceSequence struct {
	TenantID string          `gorm:"type:varchar(36);primaryKey"`
	Bank     entity.BankKind `gorm:"type:varchar(10);primaryKey"`
	Current  int64
}

func (remittanceSequence) TableName() string {
	return "remittance_sequences"
}

type remittanceRepository struct {
	db *gorm.DB
}

// NewRemittanceRepository builds the RemittanceFile persistence adapter.
func NewRemittanceRepository(db *gorm.DB) ports.RemittanceRepository {
	return &remittanceRepository{db: db}
}

func (r *remittanceRepository) Create(ctx context.Context, file *entity.RemittanceFile) error {
	return dbFromContext(ctx, r.db).Omit("Content").Create(file).Error
}

func (r *remittanceRepository) GetByID(ctx context.Context, id string) (*entity.RemittanceFile, error) {
	var file entity.RemittanceFile
	if err := dbFromContext(ctx, r.db).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// UpdateStorageKey records where the worker uploaded the CNAB bytes.
func (r *remittanceRepository) UpdateStorageKey(ctx context.Context, id string, storageKey string) error {
	return dbFromContext(ctx, r.db).Model(&entity.RemittanceFile{}).
		Where("id = ?", id).
		Update("storage_key", storageKey).Error
}

// NextSequence locks and advances the per-(tenant, bank) remittance
// sequence. Must run inside the transaction that also flips every
// included boleto to REGISTERED, per spec.md §5's atomic-advance
// requirement.
func (r *remittanceRepository) NextSequence(ctx context.Context, tenantID string, bank entity.BankKind) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var seq remittanceSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND bank = ?", tenantID, bank).
		First(&seq).Error
	if err == gorm.ErrRecordNotFound {
		seq = remittanceSequence{TenantID: tenantID, Bank: bank, Current: 0}
		if err := db.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("seed remittance sequence: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("lock remittance sequence: %w", err)
	}

	next := seq.Current + 1
	if err := db.Model(&remittanceSequence{}).
		Where("tenant_id = ? AND bank = ?", tenantID, bank).
		Update("current", next).Error; err != nil {
		return 0, fmt.Errorf("advance remittance sequence: %w", err)
	}
	return next, nil
}
