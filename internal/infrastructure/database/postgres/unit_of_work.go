package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/fidc/receivables-core/internal/domain/ports"
)

type txKey struct{}

// unitOfWork starts a GORM transaction and stashes the bound *gorm.DB in
// ctx so repositories constructed against the outer db transparently pick
// up the transaction via dbFromContext.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork builds the transaction boundary every transactional
// operation in the use-case layer opens around its repository calls.
func NewUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction bound to ctx by WithTransaction, or
// fallback if none is bound — so every repository method works both inside
// and outside a transaction without a separate code path.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
