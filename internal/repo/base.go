package repo

import (
	"context"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// WithTx rebinds the repository to an open transaction. A nil tx keeps the
// current connection.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Scoped starts a query on model restricted to rows owned by store.
func (b Base) Scoped(ctx context.Context, model any, store enums.Store) *gorm.DB {
	return b.DB(ctx).Model(model).Where("store = ?", store)
}
