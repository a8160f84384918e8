package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonemechanic/repair-ledger/api/middleware"
	"github.com/phonemechanic/repair-ledger/internal/phonemodels"
	"github.com/phonemechanic/repair-ledger/internal/staff"
	"github.com/phonemechanic/repair-ledger/internal/transactions"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

func withStaff(r *http.Request, store enums.Store) *http.Request {
	return r.WithContext(middleware.WithStaff(r.Context(), "session-1", store, enums.StaffRoleStaff))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type stubTransactionService struct {
	searchStore enums.Store
	searchQuery string
	searchLimit int
	results     []transactions.TransactionDTO
	suggestions []transactions.Suggestion
	record      *transactions.TransactionDTO
	created     transactions.CreateInput
	updated     transactions.UpdateInput
	invoice     *transactions.InvoiceView
	trashedID   uuid.UUID
	purgedID    uuid.UUID
	err         error
}

func (s *stubTransactionService) Create(ctx context.Context, store enums.Store, input transactions.CreateInput) (*transactions.TransactionDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubTransactionService) Update(ctx context.Context, store enums.Store, id uuid.UUID, input transactions.UpdateInput) (*transactions.TransactionDTO, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubTransactionService) Get(ctx context.Context, store enums.Store, id uuid.UUID) (*transactions.TransactionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubTransactionService) Search(ctx context.Context, store enums.Store, query string, limit int) ([]transactions.TransactionDTO, error) {
	s.searchStore, s.searchQuery, s.searchLimit = store, query, limit
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubTransactionService) Suggest(ctx context.Context, store enums.Store, query string) ([]transactions.Suggestion, error) {
	s.searchStore, s.searchQuery = store, query
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

func (s *stubTransactionService) Trash(ctx context.Context, store enums.Store, id uuid.UUID) error {
	s.trashedID = id
	return s.err
}

func (s *stubTransactionService) ListTrashed(ctx context.Context, store enums.Store) ([]transactions.TransactionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubTransactionService) Restore(ctx context.Context, store enums.Store, id uuid.UUID) (*transactions.TransactionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubTransactionService) Purge(ctx context.Context, store enums.Store, id uuid.UUID) error {
	s.purgedID = id
	return s.err
}

func (s *stubTransactionService) Invoice(ctx context.Context, store enums.Store, id uuid.UUID) (*transactions.InvoiceView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

type stubStaffService struct {
	login        staff.LoginRequest
	accessToken  string
	refreshToken string
	resp         *staff.SessionResponse
	err          error
}

func (s *stubStaffService) Login(ctx context.Context, req staff.LoginRequest) (*staff.SessionResponse, error) {
	s.login = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubStaffService) Refresh(ctx context.Context, accessToken, refreshToken string) (*staff.SessionResponse, error) {
	s.accessToken, s.refreshToken = accessToken, refreshToken
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubStaffService) Logout(ctx context.Context, accessToken string) error {
	s.accessToken = accessToken
	return s.err
}

type stubPhoneModelService struct {
	activeOnly  bool
	query       string
	limit       int
	list        []phonemodels.PhoneModelDTO
	created     *phonemodels.PhoneModelDTO
	deletedID   uuid.UUID
	listCalled  bool
	suggestUsed bool
	err         error
}

func (s *stubPhoneModelService) List(ctx context.Context, activeOnly bool) ([]phonemodels.PhoneModelDTO, error) {
	s.listCalled, s.activeOnly = true, activeOnly
	return s.list, s.err
}

func (s *stubPhoneModelService) Suggest(ctx context.Context, query string, limit int) ([]phonemodels.PhoneModelDTO, error) {
	s.suggestUsed, s.query, s.limit = true, query, limit
	return s.list, s.err
}

func (s *stubPhoneModelService) Create(ctx context.Context, input phonemodels.CreateInput) (*phonemodels.PhoneModelDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubPhoneModelService) Update(ctx context.Context, id uuid.UUID, input phonemodels.UpdateInput) (*phonemodels.PhoneModelDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubPhoneModelService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func (s *stubPhoneModelService) Seed(ctx context.Context, names []string) (phonemodels.SeedResult, error) {
	return phonemodels.SeedResult{}, s.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}
