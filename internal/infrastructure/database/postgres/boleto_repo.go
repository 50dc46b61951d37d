package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
)

type boletoRepository struct {
	db *gorm.DB
}

// NewBoletoRepository builds the Boleto persistence adapter.
func NewBoletoRepository(db *gorm.DB) ports.BoletoRepository {
	return &boletoRepository{db: db}
}

func (r *boletoRepository) Create(ctx context.Context, boleto *entity.Boleto) error {
	return dbFromContext(ctx, r.db).Create(boleto).Error
}

func (r *boletoRepository) GetByID(ctx context.Context, id string) (*entity.Boleto, error) {
	var boleto entity.Boleto
	if err := dbFromContext(ctx, r.db).First(&boleto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &boleto, nil
}

func (r *boletoRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Boleto, error) {
	var boletos []*entity.Boleto
	// Order by id to satisfy spec.md §5's stable-by-boleto-id CNAB record
	// ordering requirement.
	if err := dbFromContext(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&boletos).Error; err != nil {
		return nil, err
	}
	return boletos, nil
}

func (r *boletoRepository) Update(ctx context.Context, boleto *entity.Boleto) error {
	return dbFromContext(ctx, r.db).Save(boleto).Error
}

func (r *boletoRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Boleto, int, error) {
	var boletos []*entity.Boleto
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.Boleto{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&boletos).Error
	return boletos, int(total), err
}

func (r *boletoRepository) MarkRegisteredBatch(ctx context.Context, ids []string) error {
	return dbFromContext(ctx, r.db).Model(&entity.Boleto{}).
		Where("id IN ?", ids).
		Update("status", entity.BoletoStatusRegistered).Error
}
