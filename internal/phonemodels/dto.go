package phonemodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
)

// PhoneModelDTO is the API view of a catalog entry.
type PhoneModelDTO struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	ModelName   string    `json:"model_name"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput adds a catalog entry.
type CreateInput struct {
	Brand     string `json:"brand" validate:"required"`
	ModelName string `json:"model_name" validate:"required"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// UpdateInput edits a catalog entry. Nil fields are left unchanged.
type UpdateInput struct {
	Brand     *string `json:"brand"`
	ModelName *string `json:"model_name"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// FromModel maps the persisted entry into a DTO.
func FromModel(m *models.PhoneModel) PhoneModelDTO {
	return PhoneModelDTO{
		ID:          m.ID,
		Brand:       m.Brand,
		ModelName:   m.ModelName,
		DisplayName: m.DisplayName(),
		IsActive:    m.IsActive,
		SortOrder:   m.SortOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromModels(in []models.PhoneModel) []PhoneModelDTO {
	out := make([]PhoneModelDTO, 0, len(in))
	for i := range in {
		out = append(out, FromModel(&in[i]))
	}
	return out
}
