package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/internal/repo"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes store-scoped persistence for transactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.Transaction) error
	Save(ctx context.Context, record *models.Transaction) error
	FindByID(ctx context.Context, store enums.Store, id uuid.UUID) (*models.Transaction, error)
	ListActive(ctx context.Context, store enums.Store) ([]models.Transaction, error)
	ListTrashed(ctx context.Context, store enums.Store) ([]models.Transaction, error)
	SetDeletedAt(ctx context.Context, store enums.Store, id uuid.UUID, deletedAt *time.Time) error
	Delete(ctx context.Context, store enums.Store, id uuid.UUID) error
}

type repository struct {
	base repo.Base
}

// NewRepository returns a transactions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{base: r.base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, record *models.Transaction) error {
	return r.base.DB(ctx).Create(record).Error
}

func (r *repository) Save(ctx context.Context, record *models.Transaction) error {
	return r.base.DB(ctx).Save(record).Error
}

// FindByID loads a record regardless of its trash state.
func (r *repository) FindByID(ctx context.Context, store enums.Store, id uuid.UUID) (*models.Transaction, error) {
	var record models.Transaction
	err := r.base.Scoped(ctx, &models.Transaction{}, store).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListActive(ctx context.Context, store enums.Store) ([]models.Transaction, error) {
	var records []models.Transaction
	err := r.base.Scoped(ctx, &models.Transaction{}, store).
		Where("deleted_at IS NULL").
		Order("transaction_date DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) ListTrashed(ctx context.Context, store enums.Store) ([]models.Transaction, error) {
	var records []models.Transaction
	err := r.base.Scoped(ctx, &models.Transaction{}, store).
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) SetDeletedAt(ctx context.Context, store enums.Store, id uuid.UUID, deletedAt *time.Time) error {
	result := r.base.Scoped(ctx, &models.Transaction{}, store).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": deletedAt,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, store enums.Store, id uuid.UUID) error {
	result := r.base.DB(ctx).
		Where("store = ? AND id = ?", store, id).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
