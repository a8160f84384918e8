package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "repairs"

// LedgerMetrics counts search and invoice activity on the API.
type LedgerMetrics struct {
	searches       *prometheus.CounterVec
	searchResults  prometheus.Histogram
	invoices       *prometheus.CounterVec
	invoiceNumbers *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Transaction searches by kind.",
	}, []string{"kind"})
	searchResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of transactions returned per search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
	invoices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_rendered_total",
		Help:      "Invoices rendered by pricing source.",
	}, []string{"source"})
	invoiceNumbers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_numbers_assigned_total",
		Help:      "Invoice numbers assigned by store.",
	}, []string{"store"})
	reg.MustRegister(searches, searchResults, invoices, invoiceNumbers)
	return &LedgerMetrics{
		searches:       searches,
		searchResults:  searchResults,
		invoices:       invoices,
		invoiceNumbers: invoiceNumbers,
	}
}

// ObserveSearch records one search of the given kind and its result size.
func (m *LedgerMetrics) ObserveSearch(kind string, results int) {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.WithLabelValues(normalizeLabel(kind)).Inc()
	m.searchResults.Observe(float64(results))
}

// IncInvoice records one rendered invoice.
func (m *LedgerMetrics) IncInvoice(source string) {
	if m == nil || m.invoices == nil {
		return
	}
	m.invoices.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncInvoiceNumber records one assigned invoice number.
func (m *LedgerMetrics) IncInvoiceNumber(store string) {
	if m == nil || m.invoiceNumbers == nil {
		return
	}
	m.invoiceNumbers.WithLabelValues(normalizeLabel(store)).Inc()
}
