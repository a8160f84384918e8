// Package invoice derives GST-inclusive totals and printable line items from a
// transaction.
package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phonemechanic/repair-ledger/internal/repairs"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

// FallbackLabel names the single line of a transaction with no repair items.
const FallbackLabel = "Phone Sale"

const legacyLabelSeparator = "; "

// gstDivisor extracts the 10% GST component from a GST-inclusive total.
var gstDivisor = decimal.RequireFromString("1.1")

// LineItem is one priced row of an invoice.
type LineItem struct {
	Label  string
	Amount decimal.Decimal
}

// Totals is the financial breakdown of a transaction. Amounts are unrounded.
type Totals struct {
	Source      enums.InvoiceSource
	LineItems   []LineItem
	Subtotal    decimal.Decimal
	GST         decimal.Decimal
	Total       decimal.Decimal
	RepairTotal *decimal.Decimal
}

// ComputeTotals selects the authoritative pricing representation of record and
// derives subtotal and GST from its total. Devices win over repair lines, which
// win over the flat legacy price.
func ComputeTotals(record models.Transaction) Totals {
	var totals Totals

	switch {
	case len(record.Devices) > 0:
		totals.Source = enums.InvoiceSourceDevices
		totals.LineItems = deviceLines(record)
	default:
		if lines := repairLines(record); len(lines) > 0 {
			totals.Source = enums.InvoiceSourceRepairLines
			totals.LineItems = lines
		} else {
			totals.Source = enums.InvoiceSourceLegacy
			totals.LineItems = []LineItem{legacyLine(record)}
		}
	}

	total := decimal.Zero
	for _, item := range totals.LineItems {
		total = total.Add(item.Amount)
	}
	totals.Total = total
	totals.Subtotal = total.Div(gstDivisor)
	totals.GST = total.Sub(totals.Subtotal)

	if totals.Source == enums.InvoiceSourceRepairLines {
		repairTotal := total
		totals.RepairTotal = &repairTotal
	}
	return totals
}

func deviceLines(record models.Transaction) []LineItem {
	lines := make([]LineItem, 0, len(record.Devices))
	for i, device := range record.Devices {
		label := fmt.Sprintf("Device %d: %s", i+1, device.Model)
		if storage := strings.TrimSpace(device.Storage); storage != "" {
			label += " " + storage
		}
		if imei := strings.TrimSpace(device.IMEI); imei != "" {
			label += fmt.Sprintf(" (IMEI: %s)", imei)
		}
		lines = append(lines, LineItem{Label: label, Amount: ParseAmount(device.Price)})
	}
	return lines
}

func repairLines(record models.Transaction) []LineItem {
	var lines []LineItem
	for _, item := range record.RepairLineItems {
		amount := ParseAmount(item.Price)
		if !amount.IsPositive() {
			continue
		}
		lines = append(lines, LineItem{Label: item.Name, Amount: amount})
	}
	return lines
}

func legacyLine(record models.Transaction) LineItem {
	label := strings.Join(repairs.Describe(record.RepairItems), legacyLabelSeparator)
	if label == "" {
		label = FallbackLabel
	}
	return LineItem{Label: label, Amount: ParseAmount(record.PhonePrice)}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// ParseAmount reads the leading decimal number of value, ignoring surrounding
// whitespace and any trailing text. Anything without a leading number is zero.
// Exponent notation is not read, so "1e3" is 1.
func ParseAmount(value string) decimal.Decimal {
	match := leadingNumber.FindString(strings.TrimSpace(value))
	if match == "" {
		return decimal.Zero
	}
	match = strings.TrimSuffix(strings.TrimPrefix(match, "+"), ".")
	amount, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Money formats an amount with two fraction digits.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
