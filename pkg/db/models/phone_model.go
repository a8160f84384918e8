package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhoneModel is a catalog entry offered when staff type a device model.
type PhoneModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Brand     string    `gorm:"column:brand;not null;uniqueIndex:ux_phone_models_brand_model,priority:1"`
	ModelName string    `gorm:"column:model_name;not null;uniqueIndex:ux_phone_models_brand_model,priority:2"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an id when the caller did not supply one.
func (p *PhoneModel) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DisplayName is the brand-qualified name shown in pickers.
func (p PhoneModel) DisplayName() string {
	if p.Brand == "" {
		return p.ModelName
	}
	return p.Brand + " " + p.ModelName
}
