package phonemodels

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.PhoneModel{}))

	svc, err := NewService(NewRepository(conn), logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc
}

func boolPtr(v bool) *bool { return &v }

func TestSeedSkipsExisting(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	result, err := svc.Seed(ctx, []string{"iPhone 15", "Samsung Galaxy S24", "", "iPhone 15"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	again, err := svc.Seed(ctx, []string{"Samsung Galaxy S24", "Google Pixel 8"})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Inserted)
	assert.Equal(t, 1, again.Skipped)
}

func TestListOrdersByBrandThenSortOrder(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Brand: "Samsung", ModelName: "Galaxy S23", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Brand: "Samsung", ModelName: "Galaxy S24", SortOrder: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Brand: "Apple", ModelName: "iPhone 12", IsActive: boolPtr(false)})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "iPhone 12", all[0].ModelName)
	assert.False(t, all[0].IsActive)
	assert.Equal(t, "Galaxy S24", all[1].ModelName)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestCreateRejectsUnknownBrandAndDuplicates(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Brand: "Nokia", ModelName: "3310"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, CreateInput{Brand: "Apple", ModelName: "iPhone 13"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Brand: "Apple", ModelName: "iPhone 13"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestSuggestFuzzyMatchesActiveModels(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	_, err := svc.Seed(ctx, []string{"iPhone 13", "iPhone 13 Pro", "Samsung Galaxy S24", "Google Pixel 8"})
	require.NoError(t, err)

	hits, err := svc.Suggest(ctx, "ip13", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, hit := range hits {
		assert.Contains(t, hit.ModelName, "iPhone 13")
	}

	hits, err = svc.Suggest(ctx, "galaxy", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Samsung Galaxy S24", hits[0].DisplayName)

	first, err := svc.Suggest(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Brand: "OPPO", ModelName: "Reno 10"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	hits, err := svc.Suggest(ctx, "reno", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Update(ctx, uuid.New(), UpdateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
