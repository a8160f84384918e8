package phonemodels

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/pkg/db"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/sahilm/fuzzy"
	"gorm.io/gorm"
)

const (
	DefaultSuggestLimit = 10
	MaxSuggestLimit     = 50
)

// Service manages the phone-model catalog.
type Service interface {
	List(ctx context.Context, activeOnly bool) ([]PhoneModelDTO, error)
	Suggest(ctx context.Context, query string, limit int) ([]PhoneModelDTO, error)
	Create(ctx context.Context, input CreateInput) (*PhoneModelDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*PhoneModelDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Seed(ctx context.Context, names []string) (SeedResult, error)
}

// SeedResult counts the outcome of a bulk catalog import.
type SeedResult struct {
	Inserted int
	Skipped  int
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "phone model repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]PhoneModelDTO, error) {
	list, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list phone models")
	}
	return fromModels(list), nil
}

// Suggest fuzzy-matches query against "{brand} {model}" of active entries.
// A blank query returns the first limit entries in catalog order.
func (s *service) Suggest(ctx context.Context, query string, limit int) ([]PhoneModelDTO, error) {
	limit = clampLimit(limit)
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list phone models")
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if len(list) > limit {
			list = list[:limit]
		}
		return fromModels(list), nil
	}

	targets := make([]string, len(list))
	for i := range list {
		targets[i] = strings.ToLower(list[i].DisplayName())
	}
	matches := fuzzy.Find(query, targets)
	out := make([]PhoneModelDTO, 0, min(limit, len(matches)))
	for _, match := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, FromModel(&list[match.Index]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*PhoneModelDTO, error) {
	model := &models.PhoneModel{
		Brand:     strings.TrimSpace(input.Brand),
		ModelName: strings.TrimSpace(input.ModelName),
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsActive != nil {
		model.IsActive = *input.IsActive
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, mapWriteError(err, "create phone model")
	}
	s.logg.Info(s.logg.WithField(ctx, "phone_model", model.DisplayName()), "phone model created")
	dto := FromModel(model)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*PhoneModelDTO, error) {
	model, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapWriteError(err, "load phone model")
	}
	if input.Brand != nil {
		model.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.ModelName != nil {
		model.ModelName = strings.TrimSpace(*input.ModelName)
	}
	if input.IsActive != nil {
		model.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		model.SortOrder = *input.SortOrder
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, model); err != nil {
		return nil, mapWriteError(err, "update phone model")
	}
	dto := FromModel(model)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "delete phone model")
	}
	s.logg.Info(s.logg.WithField(ctx, "phone_model_id", id.String()), "phone model deleted")
	return nil
}

// Seed imports marketing names, skipping blanks and entries already present.
func (s *service) Seed(ctx context.Context, names []string) (SeedResult, error) {
	var result SeedResult
	for _, name := range names {
		entry, ok := ParseCatalogEntry(name)
		if !ok {
			continue
		}
		exists, err := s.repo.Exists(ctx, entry.Brand, entry.ModelName)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check phone model")
		}
		if exists {
			result.Skipped++
			continue
		}
		model := &models.PhoneModel{Brand: entry.Brand, ModelName: entry.ModelName, IsActive: true}
		if err := s.repo.Create(ctx, model); err != nil {
			if db.IsUniqueViolation(err, "") {
				result.Skipped++
				continue
			}
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed phone model")
		}
		result.Inserted++
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
	}), "phone models seeded")
	return result, nil
}

func validateModel(model *models.PhoneModel) error {
	fields := pkgerrors.FieldErrors{}
	if !KnownBrand(model.Brand) {
		fields["brand"] = "must be one of " + strings.Join(Brands, ", ")
	}
	if model.ModelName == "" {
		fields["model_name"] = "is required"
	}
	if model.SortOrder < 0 {
		fields["sort_order"] = "must not be negative"
	}
	if len(fields) > 0 {
		return pkgerrors.Validation("invalid phone model", fields)
	}
	return nil
}

func mapWriteError(err error, message string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, "phone model not found")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.New(pkgerrors.CodeConflict, "phone model already exists")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		return MaxSuggestLimit
	}
	return limit
}
