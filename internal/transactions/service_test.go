package transactions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/internal/stores"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/phonemechanic/repair-ledger/pkg/metrics"
	"github.com/phonemechanic/repair-ledger/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) InvoiceSequenceKey(store, day string) string {
	return "seq:" + store + ":" + day
}

func setupTransactionsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Transaction{}))
	return conn
}

func newTestService(t *testing.T, counter *fakeCounter) (Service, Repository) {
	t.Helper()
	repo := NewRepository(setupTransactionsDB(t))
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Counter: counter,
		Metrics: metrics.NewLedgerMetrics(prometheus.NewRegistry()),
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:     func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc, repo
}

func strPtr(v string) *string { return &v }

func validInput() CreateInput {
	return CreateInput{
		CustomerName:    "Jane Citizen",
		PhoneNumber:     strPtr("0412 345 678"),
		PhoneModel:      "iPhone 13",
		PhonePrice:      "220",
		RepairItems:     []string{"screen_repair"},
		WarrantyPeriod:  3,
		TransactionDate: "2024-03-01",
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestCreateAssignsSequentialInvoiceNumbers(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()

	first, err := svc.Create(ctx, enums.StoreEastwood, validInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, enums.StoreEastwood, validInput())
	require.NoError(t, err)
	other, err := svc.Create(ctx, enums.StoreParramatta, validInput())
	require.NoError(t, err)

	require.NotNil(t, first.InvoiceNumber)
	assert.Equal(t, "20240301-001", *first.InvoiceNumber)
	assert.Equal(t, "20240301-002", *second.InvoiceNumber)
	assert.Equal(t, "20240301-001", *other.InvoiceNumber)
	assert.Equal(t, "2024-03-01", first.TransactionDate)
	assert.Equal(t, []string{"Screen Repair"}, first.RepairDescription)
}

func TestCreateWithoutCounterLeavesNumberUnset(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{err: errors.New("redis down")})

	created, err := svc.Create(context.Background(), enums.StoreEastwood, validInput())
	require.NoError(t, err)
	assert.Nil(t, created.InvoiceNumber)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})

	input := validInput()
	input.CustomerName = "J"
	input.PhoneModel = " "
	input.PhoneIMEI = strPtr("1234567890123456")
	input.WarrantyPeriod = -1
	input.TransactionDate = "01/03/2024"
	input.PolicyType = strPtr("lifetime")

	_, err := svc.Create(context.Background(), enums.StoreEastwood, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(pkgerrors.FieldErrors)
	require.True(t, ok)
	for _, key := range []string{"customer_name", "phone_model", "phone_imei", "warranty_period", "transaction_date", "policy_type"} {
		assert.Contains(t, fields, key)
	}
}

func TestCreateRejectsZeroTotal(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})

	input := validInput()
	input.PhonePrice = "0"
	_, err := svc.Create(context.Background(), enums.StoreEastwood, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	input.Devices = []DeviceInput{{Model: "Galaxy S23", Price: "899"}}
	_, err = svc.Create(context.Background(), enums.StoreEastwood, input)
	require.NoError(t, err)
}

func TestCreateRejectsExponentPrices(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})

	input := validInput()
	input.PhonePrice = "1e20000000"
	input.Devices = []DeviceInput{{Model: "Galaxy S23", Price: "5E+3"}}
	input.RepairLineItems = []RepairLineInput{{Name: "Screen", Price: "2e9"}}
	_, err := svc.Create(context.Background(), enums.StoreEastwood, input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	fields, ok := typed.Details().(pkgerrors.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fields, "phone_price")
	assert.Contains(t, fields, "devices[0].price")
	assert.Contains(t, fields, "repair_line_items[0].price")
}

func TestCreateDropsCustomTextForTemplatePolicies(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})

	input := validInput()
	input.PolicyType = strPtr("water")
	input.CustomPolicyText = strPtr("ignored")
	created, err := svc.Create(context.Background(), enums.StoreEastwood, input)
	require.NoError(t, err)
	require.NotNil(t, created.PolicyType)
	assert.Equal(t, enums.PolicyTypeWater, *created.PolicyType)
	assert.Nil(t, created.CustomPolicyText)
}

func TestUpdateKeepsInvoiceNumber(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()
	created, err := svc.Create(ctx, enums.StoreEastwood, validInput())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, enums.StoreEastwood, created.ID, UpdateInput{
		CustomerName: strPtr("Jane Doe"),
		PhonePrice:   strPtr("250"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.CustomerName)
	assert.Equal(t, "250", updated.PhonePrice)
	assert.Equal(t, *created.InvoiceNumber, *updated.InvoiceNumber)
	assert.Equal(t, "iPhone 13", updated.PhoneModel)
}

func TestStoreScoping(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()
	created, err := svc.Create(ctx, enums.StoreEastwood, validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, enums.StoreParramatta, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	results, err := svc.Search(ctx, enums.StoreParramatta, "", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRanksActiveRecords(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()

	jane := validInput()
	_, err := svc.Create(ctx, enums.StoreEastwood, jane)
	require.NoError(t, err)

	bob := validInput()
	bob.CustomerName = "Bob Smith"
	bob.PhoneNumber = strPtr("0400 000 111")
	bob.TransactionDate = "2024-03-05"
	bobDTO, err := svc.Create(ctx, enums.StoreEastwood, bob)
	require.NoError(t, err)

	results, err := svc.Search(ctx, enums.StoreEastwood, "5678", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane Citizen", results[0].CustomerName)
	assert.Equal(t, 125, results[0].Score)

	all, err := svc.Search(ctx, enums.StoreEastwood, "  ", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bobDTO.ID, all[0].ID)

	require.NoError(t, svc.Trash(ctx, enums.StoreEastwood, bobDTO.ID))
	all, err = svc.Search(ctx, enums.StoreEastwood, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSuggest(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		input := validInput()
		input.CustomerName = fmt.Sprintf("Jane %d", i)
		_, err := svc.Create(ctx, enums.StoreEastwood, input)
		require.NoError(t, err)
	}

	none, err := svc.Suggest(ctx, enums.StoreEastwood, " j ")
	require.NoError(t, err)
	assert.Empty(t, none)

	hits, err := svc.Suggest(ctx, enums.StoreEastwood, "jane")
	require.NoError(t, err)
	assert.Len(t, hits, SuggestionLimit)
	assert.Equal(t, "iPhone 13", hits[0].PhoneModel)
}

func TestTrashRestorePurgeLifecycle(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()
	created, err := svc.Create(ctx, enums.StoreEastwood, validInput())
	require.NoError(t, err)

	_, err = svc.Restore(ctx, enums.StoreEastwood, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	err = svc.Purge(ctx, enums.StoreEastwood, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, svc.Trash(ctx, enums.StoreEastwood, created.ID))
	trashed, err := svc.ListTrashed(ctx, enums.StoreEastwood)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	require.NotNil(t, trashed[0].DeletedAt)

	_, err = svc.Update(ctx, enums.StoreEastwood, created.ID, UpdateInput{Notes: strPtr("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	restored, err := svc.Restore(ctx, enums.StoreEastwood, created.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	require.NoError(t, svc.Trash(ctx, enums.StoreEastwood, created.ID))
	require.NoError(t, svc.Purge(ctx, enums.StoreEastwood, created.ID))
	_, err = svc.Get(ctx, enums.StoreEastwood, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestInvoiceView(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()

	input := validInput()
	input.PolicyType = strPtr("standard")
	input.Devices = []DeviceInput{
		{Model: "iPhone 13", Price: "550", Storage: "128GB", PolicyType: strPtr("sale")},
		{Model: "iPhone 14", Price: "750", IMEI: "356789012345678", PolicyType: strPtr("standard")},
	}
	created, err := svc.Create(ctx, enums.StoreEastwood, input)
	require.NoError(t, err)

	view, err := svc.Invoice(ctx, enums.StoreEastwood, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stores.BusinessName, view.Header.BusinessName)
	assert.Equal(t, "20240301-001", view.InvoiceNumber)
	assert.Equal(t, enums.InvoiceSourceDevices, view.Source)
	require.Len(t, view.LineItems, 2)
	assert.Equal(t, "Device 1: iPhone 13 128GB", view.LineItems[0].Label)
	assert.Equal(t, "550.00", view.LineItems[0].Amount)
	assert.Equal(t, "Device 2: iPhone 14 (IMEI: 356789012345678)", view.LineItems[1].Label)
	assert.Equal(t, "1300.00", view.Total)
	assert.Equal(t, "1181.82", view.Subtotal)
	assert.Equal(t, "118.18", view.GST)
	assert.Nil(t, view.RepairTotal)
	assert.Equal(t, DefaultNotes, view.Notes)
	require.Len(t, view.Policies, 2)
	assert.Equal(t, enums.PolicyTypeStandard, view.Policies[0].Type)
	assert.Equal(t, enums.PolicyTypeSale, view.Policies[1].Type)
}

func TestBuildInvoiceFallbacks(t *testing.T) {
	header, err := stores.Lookup(enums.StoreParramatta)
	require.NoError(t, err)
	custom := enums.PolicyTypeCustom

	view := BuildInvoice(models.Transaction{
		Store:            enums.StoreParramatta,
		CustomerName:     "Sam",
		PhoneModel:       "Pixel 8",
		PhonePrice:       "0",
		RepairLineItems:  types.RepairLineItems{{Name: "Battery", Price: "90"}, {Name: "Free check", Price: "0"}},
		PolicyType:       &custom,
		CustomPolicyText: strPtr("30 day parts only"),
		Notes:            strPtr("Collected"),
		TransactionDate:  time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC),
	}, header)

	assert.Equal(t, "20240709-000", view.InvoiceNumber)
	assert.Equal(t, enums.InvoiceSourceRepairLines, view.Source)
	require.Len(t, view.LineItems, 1)
	require.NotNil(t, view.RepairTotal)
	assert.Equal(t, "90.00", *view.RepairTotal)
	assert.Equal(t, "Collected", view.Notes)
	require.Len(t, view.Policies, 1)
	assert.Equal(t, "30 day parts only", view.Policies[0].Text)
}

func TestMissingRecordMapsToNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeCounter{})
	ctx := context.Background()

	_, err := svc.Invoice(ctx, enums.StoreEastwood, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	err = svc.Trash(ctx, enums.StoreEastwood, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = svc.Get(ctx, enums.StoreEastwood, uuid.Nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
