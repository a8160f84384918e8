package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phonemechanic/repair-ledger/api/controllers"
	"github.com/phonemechanic/repair-ledger/api/middleware"
	"github.com/phonemechanic/repair-ledger/internal/phonemodels"
	"github.com/phonemechanic/repair-ledger/internal/staff"
	"github.com/phonemechanic/repair-ledger/internal/transactions"
	"github.com/phonemechanic/repair-ledger/pkg/auth/session"
	"github.com/phonemechanic/repair-ledger/pkg/config"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Params carries everything the HTTP surface is built from.
type Params struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           controllers.Pinger
	Redis        controllers.Pinger
	RateLimiter  rateLimiter
	Sessions     session.AccessSessionChecker
	Gatherer     prometheus.Gatherer
	Staff        staff.Service
	Transactions transactions.Service
	PhoneModels  phonemodels.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.RateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"db":    p.DB,
			"redis": p.Redis,
		}, logg))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/staff/session", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, p.RateLimiter, logg)).Post("/", controllers.StaffLogin(p.Staff, logg))
		r.Post("/refresh", controllers.StaffRefresh(p.Staff, logg))
		r.Post("/logout", controllers.StaffLogout(p.Staff, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.StoreContext(logg))

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionSearch(p.Transactions, logg))
			r.Post("/", controllers.TransactionCreate(p.Transactions, logg))
			r.Get("/suggestions", controllers.TransactionSuggestions(p.Transactions, logg))
			r.Get("/{id}", controllers.TransactionGet(p.Transactions, logg))
			r.Patch("/{id}", controllers.TransactionUpdate(p.Transactions, logg))
			r.Delete("/{id}", controllers.TransactionTrash(p.Transactions, logg))
			r.Get("/{id}/invoice", controllers.TransactionInvoice(p.Transactions, logg))
		})

		r.Route("/trash", func(r chi.Router) {
			r.Get("/", controllers.TrashList(p.Transactions, logg))
			r.Post("/{id}/restore", controllers.TrashRestore(p.Transactions, logg))
			r.Delete("/{id}", controllers.TrashPurge(p.Transactions, logg))
		})

		r.Get("/repair-categories", controllers.RepairCategories())
		r.Get("/policies", controllers.PolicyTemplates())
		r.Get("/phone-models", controllers.PhoneModelList(p.PhoneModels, logg))

		r.Route("/admin/phone-models", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.StaffRoleAdmin, logg))
			r.Post("/", controllers.PhoneModelCreate(p.PhoneModels, logg))
			r.Patch("/{id}", controllers.PhoneModelUpdate(p.PhoneModels, logg))
			r.Delete("/{id}", controllers.PhoneModelDelete(p.PhoneModels, logg))
		})
	})

	return r
}
