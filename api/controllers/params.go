package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phonemechanic/repair-ledger/api/middleware"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
)

const maxQueryRunes = 200

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

func storeFromRequest(r *http.Request) (enums.Store, error) {
	store := middleware.StoreFromContext(r.Context())
	if !store.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	return store, nil
}
