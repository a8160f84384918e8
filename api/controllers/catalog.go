package controllers

import (
	"net/http"

	"github.com/phonemechanic/repair-ledger/api/responses"
	"github.com/phonemechanic/repair-ledger/internal/policies"
	"github.com/phonemechanic/repair-ledger/internal/repairs"
)

// RepairCategories serves the static repair taxonomy for the counter form.
func RepairCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, repairs.Tree())
	}
}

// PolicyTemplates serves the warranty policy texts keyed by policy type.
func PolicyTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, policies.Templates())
	}
}
