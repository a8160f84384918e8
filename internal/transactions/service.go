package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/internal/invoice"
	"github.com/phonemechanic/repair-ledger/internal/policies"
	"github.com/phonemechanic/repair-ledger/internal/search"
	"github.com/phonemechanic/repair-ledger/internal/stores"
	"github.com/phonemechanic/repair-ledger/pkg/db"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/phonemechanic/repair-ledger/pkg/metrics"
	"gorm.io/gorm"
)

const (
	SuggestionMinRunes = 2
	SuggestionLimit    = 5

	DefaultNotes = "Thank you for your business."

	invoiceDayLayout     = "20060102"
	invoiceNumberRetries = 3
)

// Service defines the transaction ledger operations of one store counter.
type Service interface {
	Create(ctx context.Context, store enums.Store, input CreateInput) (*TransactionDTO, error)
	Update(ctx context.Context, store enums.Store, id uuid.UUID, input UpdateInput) (*TransactionDTO, error)
	Get(ctx context.Context, store enums.Store, id uuid.UUID) (*TransactionDTO, error)
	Search(ctx context.Context, store enums.Store, query string, limit int) ([]TransactionDTO, error)
	Suggest(ctx context.Context, store enums.Store, query string) ([]Suggestion, error)
	Trash(ctx context.Context, store enums.Store, id uuid.UUID) error
	ListTrashed(ctx context.Context, store enums.Store) ([]TransactionDTO, error)
	Restore(ctx context.Context, store enums.Store, id uuid.UUID) (*TransactionDTO, error)
	Purge(ctx context.Context, store enums.Store, id uuid.UUID) error
	Invoice(ctx context.Context, store enums.Store, id uuid.UUID) (*InvoiceView, error)
}

type sequenceCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
	InvoiceSequenceKey(store, day string) string
}

// ServiceParams wires the transaction service dependencies.
type ServiceParams struct {
	Repo    Repository
	Counter sequenceCounter
	Metrics *metrics.LedgerMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	repo    Repository
	counter sequenceCounter
	metrics *metrics.LedgerMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the transaction service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transactions repository required")
	}
	if params.Counter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoice sequence counter required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		counter: params.Counter,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, store enums.Store, input CreateInput) (*TransactionDTO, error) {
	if !store.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store")
	}
	record, fields := input.toModel(store)
	validateRecord(record, fields)
	if len(fields) > 0 {
		return nil, pkgerrors.Validation("invalid transaction", fields)
	}

	var lastErr error
	for attempt := 0; attempt < invoiceNumberRetries; attempt++ {
		record.ID = uuid.Nil
		record.InvoiceNumber = s.nextInvoiceNumber(ctx, store, record.TransactionDate)
		lastErr = s.repo.Create(ctx, record)
		if lastErr == nil {
			break
		}
		if record.InvoiceNumber == nil || !db.IsUniqueViolation(lastErr, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "create transaction")
		}
		s.logg.Warn(s.logg.WithField(ctx, "invoice_number", *record.InvoiceNumber), "invoice number already taken")
	}
	if lastErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "invoice number already assigned")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"transaction_id": record.ID.String(),
		"store":          store.String(),
	}), "transaction created")
	return FromModel(record), nil
}

// nextInvoiceNumber draws YYYYMMDD-NNN from the store's daily counter. A
// counter outage leaves the record unnumbered.
func (s *service) nextInvoiceNumber(ctx context.Context, store enums.Store, date time.Time) *string {
	day := date.Format(invoiceDayLayout)
	seq, err := s.counter.Incr(ctx, s.counter.InvoiceSequenceKey(store.String(), day))
	if err != nil {
		s.logg.Error(ctx, "invoice sequence unavailable", err)
		return nil
	}
	s.metrics.IncInvoiceNumber(store.String())
	number := fmt.Sprintf("%s-%03d", day, seq)
	return &number
}

func (s *service) Update(ctx context.Context, store enums.Store, id uuid.UUID, input UpdateInput) (*TransactionDTO, error) {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if record.IsTrashed() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is in the trash")
	}
	fields := input.apply(record)
	validateRecord(record, fields)
	if len(fields) > 0 {
		return nil, pkgerrors.Validation("invalid transaction", fields)
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
	}
	return FromModel(record), nil
}

func (s *service) Get(ctx context.Context, store enums.Store, id uuid.UUID) (*TransactionDTO, error) {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Search(ctx context.Context, store enums.Store, query string, limit int) ([]TransactionDTO, error) {
	results, err := s.rank(ctx, store, query, limit)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSearch("search", len(results))
	out := make([]TransactionDTO, 0, len(results))
	for i := range results {
		dto := FromModel(&results[i].Record)
		dto.Score = results[i].Score
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Suggest(ctx context.Context, store enums.Store, query string) ([]Suggestion, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < SuggestionMinRunes {
		return []Suggestion{}, nil
	}
	results, err := s.rank(ctx, store, query, SuggestionLimit)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSearch("suggest", len(results))
	out := make([]Suggestion, 0, len(results))
	for _, result := range results {
		out = append(out, Suggestion{
			ID:           result.Record.ID,
			CustomerName: result.Record.CustomerName,
			PhoneModel:   result.Record.PhoneModel,
		})
	}
	return out, nil
}

func (s *service) rank(ctx context.Context, store enums.Store, query string, limit int) ([]search.Result, error) {
	records, err := s.repo.ListActive(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return search.RankScored(records, query, limit), nil
}

func (s *service) Trash(ctx context.Context, store enums.Store, id uuid.UUID) error {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return err
	}
	if record.IsTrashed() {
		return nil
	}
	now := s.now().UTC()
	if err := s.repo.SetDeletedAt(ctx, store, id, &now); err != nil {
		return s.mapStorageError(err, "trash transaction")
	}
	s.logg.Info(s.logg.WithField(ctx, "transaction_id", id.String()), "transaction trashed")
	return nil
}

func (s *service) ListTrashed(ctx context.Context, store enums.Store) ([]TransactionDTO, error) {
	records, err := s.repo.ListTrashed(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trash")
	}
	return fromModels(records), nil
}

func (s *service) Restore(ctx context.Context, store enums.Store, id uuid.UUID) (*TransactionDTO, error) {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if !record.IsTrashed() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is not in the trash")
	}
	if err := s.repo.SetDeletedAt(ctx, store, id, nil); err != nil {
		return nil, s.mapStorageError(err, "restore transaction")
	}
	record.DeletedAt = nil
	s.logg.Info(s.logg.WithField(ctx, "transaction_id", id.String()), "transaction restored")
	return FromModel(record), nil
}

func (s *service) Purge(ctx context.Context, store enums.Store, id uuid.UUID) error {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return err
	}
	if !record.IsTrashed() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only trashed transactions can be deleted permanently")
	}
	if err := s.repo.Delete(ctx, store, id); err != nil {
		return s.mapStorageError(err, "purge transaction")
	}
	s.logg.Info(s.logg.WithField(ctx, "transaction_id", id.String()), "transaction purged")
	return nil
}

func (s *service) Invoice(ctx context.Context, store enums.Store, id uuid.UUID) (*InvoiceView, error) {
	record, err := s.load(ctx, store, id)
	if err != nil {
		return nil, err
	}
	header, err := stores.Lookup(record.Store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve store header")
	}
	view := BuildInvoice(*record, header)
	s.metrics.IncInvoice(view.Source.String())
	return view, nil
}

// BuildInvoice renders the printable invoice of record under header.
func BuildInvoice(record models.Transaction, header stores.Header) *InvoiceView {
	totals := invoice.ComputeTotals(record)

	lines := make([]InvoiceLine, 0, len(totals.LineItems))
	for _, item := range totals.LineItems {
		lines = append(lines, InvoiceLine{Label: item.Label, Amount: invoice.Money(item.Amount)})
	}

	number := record.TransactionDate.Format(invoiceDayLayout) + "-000"
	if record.InvoiceNumber != nil && *record.InvoiceNumber != "" {
		number = *record.InvoiceNumber
	}

	notes := DefaultNotes
	if record.Notes != nil && strings.TrimSpace(*record.Notes) != "" {
		notes = *record.Notes
	}

	customText := ""
	if record.CustomPolicyText != nil {
		customText = *record.CustomPolicyText
	}
	devicePolicies := make([]*enums.PolicyType, 0, len(record.Devices))
	for _, device := range record.Devices {
		devicePolicies = append(devicePolicies, device.PolicyType)
	}
	entries := policies.Collect(record.PolicyType, customText, devicePolicies)
	if entries == nil {
		entries = []policies.Entry{}
	}

	view := &InvoiceView{
		Header:          header,
		InvoiceNumber:   number,
		TransactionDate: record.TransactionDate.Format(DateLayout),
		CustomerName:    record.CustomerName,
		PhoneNumber:     record.PhoneNumber,
		PhoneModel:      record.PhoneModel,
		PhoneIMEI:       record.PhoneIMEI,
		PhoneStorage:    record.PhoneStorage,
		Source:          totals.Source,
		LineItems:       lines,
		Subtotal:        invoice.Money(totals.Subtotal),
		GST:             invoice.Money(totals.GST),
		Total:           invoice.Money(totals.Total),
		WarrantyMonths:  record.WarrantyPeriod,
		Notes:           notes,
		Policies:        entries,
	}
	if totals.RepairTotal != nil {
		repairTotal := invoice.Money(*totals.RepairTotal)
		view.RepairTotal = &repairTotal
	}
	return view
}

func (s *service) load(ctx context.Context, store enums.Store, id uuid.UUID) (*models.Transaction, error) {
	if !store.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	record, err := s.repo.FindByID(ctx, store, id)
	if err != nil {
		return nil, s.mapStorageError(err, "load transaction")
	}
	return record, nil
}

func (s *service) mapStorageError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
