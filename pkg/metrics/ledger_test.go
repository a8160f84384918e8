package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLedgerMetricsCountsSearchesAndInvoices(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewLedgerMetrics(reg)
	metrics.ObserveSearch("search", 12)
	metrics.ObserveSearch("suggest", 3)
	metrics.ObserveSearch("search", 0)
	metrics.IncInvoice("devices")
	metrics.IncInvoiceNumber("EASTWOOD")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "repairs_search_requests_total", "kind", "search"); err != nil {
		t.Fatalf("fetch searches: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 searches, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "repairs_invoices_rendered_total", "source", "devices"); err != nil {
		t.Fatalf("fetch invoices: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 invoice, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "repairs_invoice_numbers_assigned_total", "store", "EASTWOOD"); err != nil {
		t.Fatalf("fetch invoice numbers: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 invoice number, got %f", got)
	}

	results := findMetricFamily(mfs, "repairs_search_results")
	if results == nil {
		t.Fatalf("expected search result histogram")
	}
	if got := results.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Fatalf("expected 3 observations, got %d", got)
	}
}
