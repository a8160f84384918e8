package phonemodels

import (
	"context"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/internal/repo"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the phone-model catalog.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]models.PhoneModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PhoneModel, error)
	Exists(ctx context.Context, brand, modelName string) (bool, error)
	Create(ctx context.Context, model *models.PhoneModel) error
	Save(ctx context.Context, model *models.PhoneModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	base repo.Base
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]models.PhoneModel, error) {
	query := r.base.DB(ctx).Model(&models.PhoneModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var out []models.PhoneModel
	err := query.Order("brand ASC, sort_order ASC, model_name ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PhoneModel, error) {
	var model models.PhoneModel
	if err := r.base.DB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *repository) Exists(ctx context.Context, brand, modelName string) (bool, error) {
	var count int64
	err := r.base.DB(ctx).Model(&models.PhoneModel{}).
		Where("brand = ? AND model_name = ?", brand, modelName).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, model *models.PhoneModel) error {
	return r.base.DB(ctx).Create(model).Error
}

func (r *repository) Save(ctx context.Context, model *models.PhoneModel) error {
	return r.base.DB(ctx).Save(model).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.base.DB(ctx).Where("id = ?", id).Delete(&models.PhoneModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
