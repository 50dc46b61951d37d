package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
)

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository builds the Tenant persistence adapter.
func NewTenantRepository(db *gorm.DB) ports.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	return dbFromContext(ctx, r.db).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var tenant entity.Tenant
	if err := dbFromContext(ctx, r.db).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	return dbFromContext(ctx, r.db).Save(tenant).Error
}

func (r *tenantRepository) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, int, error) {
	var tenants []*entity.Tenant
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.Tenant{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&tenants).Error
	return tenants, int(total), err
}
