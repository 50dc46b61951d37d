package ports

import (
	"context"

	"github.com/fidc/receivables-core/internal/domain/entity"
)

// TenantRepository defines the persistence boundary for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, int, error)
}

// BankProfileRepository defines the persistence boundary for bank
// profiles, including the row-lock primitive C4 is built on.
type BankProfileRepository interface {
	Create(ctx context.Context, profile *entity.BankProfile) error
	GetByID(ctx context.Context, id string) (*entity.BankProfile, error)
	GetByTenantAndBank(ctx context.Context, tenantID string, bank entity.BankKind) (*entity.BankProfile, error)
	Update(ctx context.Context, profile *entity.BankProfile) error
	List(ctx context.Context, tenantID string) ([]*entity.BankProfile, error)

	// LockForAllocation acquires a row-level lock on the (tenant, bank)
	// profile for the duration of the enclosing transaction and returns
	// the locked current/min/max triple. Must be called inside a
	// transaction started via UnitOfWork.WithTransaction.
	LockForAllocation(ctx context.Context, tenantID string, bank entity.BankKind) (current, min, max int64, err error)

	// AdvanceCounter persists the new current value for the locked
	// profile. Must be called inside the same transaction as
	// LockForAllocation.
	AdvanceCounter(ctx context.Context, tenantID string, bank entity.BankKind, newCurrent int64) error
}

// InvoiceRepository defines the persistence boundary for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, int, error)
	SoftDelete(ctx context.Context, id, actorID string) error
}

// BoletoRepository defines the persistence boundary for boletos.
type BoletoRepository interface {
	Create(ctx context.Context, boleto *entity.Boleto) error
	GetByID(ctx context.Context, id string) (*entity.Boleto, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Boleto, error)
	Update(ctx context.Context, boleto *entity.Boleto) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Boleto, int, error)
	// MarkRegisteredBatch transitions every boleto in ids to REGISTERED
	// atomically with the remittance sequence advance that produced the
	// file; must run inside the same transaction.
	MarkRegisteredBatch(ctx context.Context, ids []string) error
}

// RemittanceRepository defines the persistence boundary for remittance
// files, including the per-(tenant, bank) sequence counter.
type RemittanceRepository interface {
	Create(ctx context.Context, file *entity.RemittanceFile) error
	GetByID(ctx context.Context, id string) (*entity.RemittanceFile, error)
	// NextSequence locks and advances the remittance sequence counter for
	// (tenantID, bank); must run inside the same transaction as the
	// boleto status transition it accompanies.
	NextSequence(ctx context.Context, tenantID string, bank entity.BankKind) (int64, error)
	// UpdateStorageKey records where the worker uploaded the CNAB bytes,
	// once the blob store write succeeds.
	UpdateStorageKey(ctx context.Context, id string, storageKey string) error
}

// EventRepository defines the persistence boundary for the audit trail.
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.Event, error)
}

// Tx defines the minimal transaction contract used by the service layer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWork starts a transaction and hands the caller repositories bound
// to it; fn's returned error rolls the transaction back, nil commits it.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
