package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/pkg/apperr"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository builds the Invoice persistence adapter.
func NewInvoiceRepository(db *gorm.DB) ports.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFromContext(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	if err := dbFromContext(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Invoice, error) {
	var invoices []*entity.Invoice
	if err := dbFromContext(ctx, r.db).Where("id IN ?", ids).Find(&invoices).Error; err != nil {
		return nil, err
	}
	if len(invoices) != len(ids) {
		return nil, apperr.New(apperr.KindMissingRequired, "one or more invoice ids do not exist")
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return dbFromContext(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, int, error) {
	var invoices []*entity.Invoice
	var total int64

	query := dbFromContext(ctx, r.db).Model(&entity.Invoice{}).Where("tenant_id = ? AND deleted_at IS NULL", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&invoices).Error
	return invoices, int(total), err
}

func (r *invoiceRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return dbFromContext(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": gorm.Expr("now()"), "deleted_by": actorID}).Error
}
