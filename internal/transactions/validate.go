package transactions

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/phonemechanic/repair-ledger/internal/invoice"
	"github.com/phonemechanic/repair-ledger/internal/repairs"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	minNameLength  = 2
	minModelLength = 2
	maxIMEILength  = 15
)

func (in CreateInput) toModel(store enums.Store) (*models.Transaction, pkgerrors.FieldErrors) {
	fields := pkgerrors.FieldErrors{}
	record := &models.Transaction{
		Store:            store,
		CustomerName:     strings.TrimSpace(in.CustomerName),
		PhoneNumber:      optional(in.PhoneNumber),
		PhoneModel:       strings.TrimSpace(in.PhoneModel),
		PhoneIMEI:        optional(in.PhoneIMEI),
		PhoneStorage:     optional(in.PhoneStorage),
		PhonePrice:       strings.TrimSpace(in.PhonePrice),
		Devices:          toDevices(in.Devices, fields),
		RepairLineItems:  toRepairLines(in.RepairLineItems),
		RepairItems:      toRepairItems(in.RepairItems, fields),
		WarrantyPeriod:   in.WarrantyPeriod,
		Notes:            optional(in.Notes),
		CustomPolicyText: optional(in.CustomPolicyText),
	}
	record.PolicyType = parsePolicy(in.PolicyType, fields)
	if date, ok := parseDate(in.TransactionDate); ok {
		record.TransactionDate = date
	} else {
		fields["transaction_date"] = "must be a date formatted YYYY-MM-DD"
	}
	return record, fields
}

func (in UpdateInput) apply(record *models.Transaction) pkgerrors.FieldErrors {
	fields := pkgerrors.FieldErrors{}
	if in.CustomerName != nil {
		record.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.PhoneNumber != nil {
		record.PhoneNumber = optional(in.PhoneNumber)
	}
	if in.PhoneModel != nil {
		record.PhoneModel = strings.TrimSpace(*in.PhoneModel)
	}
	if in.PhoneIMEI != nil {
		record.PhoneIMEI = optional(in.PhoneIMEI)
	}
	if in.PhoneStorage != nil {
		record.PhoneStorage = optional(in.PhoneStorage)
	}
	if in.PhonePrice != nil {
		record.PhonePrice = strings.TrimSpace(*in.PhonePrice)
	}
	if in.Devices != nil {
		record.Devices = toDevices(*in.Devices, fields)
	}
	if in.RepairLineItems != nil {
		record.RepairLineItems = toRepairLines(*in.RepairLineItems)
	}
	if in.RepairItems != nil {
		record.RepairItems = toRepairItems(*in.RepairItems, fields)
	}
	if in.WarrantyPeriod != nil {
		record.WarrantyPeriod = *in.WarrantyPeriod
	}
	if in.Notes != nil {
		record.Notes = optional(in.Notes)
	}
	if in.PolicyType != nil {
		record.PolicyType = parsePolicy(in.PolicyType, fields)
	}
	if in.CustomPolicyText != nil {
		record.CustomPolicyText = optional(in.CustomPolicyText)
	}
	if in.TransactionDate != nil {
		if date, ok := parseDate(*in.TransactionDate); ok {
			record.TransactionDate = date
		} else {
			fields["transaction_date"] = "must be a date formatted YYYY-MM-DD"
		}
	}
	return fields
}

// validateRecord checks the counter-form rules on a fully assembled record.
func validateRecord(record *models.Transaction, fields pkgerrors.FieldErrors) {
	if utf8.RuneCountInString(record.CustomerName) < minNameLength {
		fields["customer_name"] = fmt.Sprintf("must be at least %d characters", minNameLength)
	}
	if utf8.RuneCountInString(record.PhoneModel) < minModelLength {
		fields["phone_model"] = fmt.Sprintf("must be at least %d characters", minModelLength)
	}
	if record.PhoneIMEI != nil && utf8.RuneCountInString(*record.PhoneIMEI) > maxIMEILength {
		fields["phone_imei"] = fmt.Sprintf("must be at most %d characters", maxIMEILength)
	}
	if record.WarrantyPeriod < 0 {
		fields["warranty_period"] = "must not be negative"
	}
	if !validPrice(record.PhonePrice) {
		fields["phone_price"] = "must be a decimal amount"
	}
	for i, line := range record.RepairLineItems {
		if !validPrice(line.Price) {
			fields[fmt.Sprintf("repair_line_items[%d].price", i)] = "must be a decimal amount"
		}
	}
	if record.PolicyType == nil || *record.PolicyType != enums.PolicyTypeCustom {
		record.CustomPolicyText = nil
	}
	if len(fields) == 0 && !invoice.ComputeTotals(*record).Total.IsPositive() {
		fields["phone_price"] = "price must be greater than zero"
	}
}

func toDevices(inputs []DeviceInput, fields pkgerrors.FieldErrors) types.Devices {
	if len(inputs) == 0 {
		return nil
	}
	out := make(types.Devices, 0, len(inputs))
	for i, in := range inputs {
		device := types.Device{
			Model:   strings.TrimSpace(in.Model),
			IMEI:    strings.TrimSpace(in.IMEI),
			Price:   strings.TrimSpace(in.Price),
			Storage: strings.TrimSpace(in.Storage),
		}
		prefix := fmt.Sprintf("devices[%d]", i)
		if utf8.RuneCountInString(device.Model) < minModelLength {
			fields[prefix+".model"] = fmt.Sprintf("must be at least %d characters", minModelLength)
		}
		if utf8.RuneCountInString(device.IMEI) > maxIMEILength {
			fields[prefix+".imei"] = fmt.Sprintf("must be at most %d characters", maxIMEILength)
		}
		if !validPrice(device.Price) {
			fields[prefix+".price"] = "must be a decimal amount"
		}
		device.PolicyType = parsePolicyField(in.PolicyType, prefix+".policy_type", fields)
		out = append(out, device)
	}
	return out
}

func toRepairLines(inputs []RepairLineInput) types.RepairLineItems {
	if len(inputs) == 0 {
		return nil
	}
	out := make(types.RepairLineItems, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		out = append(out, types.RepairLineItem{Name: name, Price: strings.TrimSpace(in.Price)})
	}
	return out
}

func toRepairItems(inputs []string, fields pkgerrors.FieldErrors) types.StringList {
	out := make(types.StringList, 0, len(inputs))
	seen := map[string]bool{}
	for _, raw := range inputs {
		item := strings.TrimSpace(raw)
		if item == "" || seen[item] {
			continue
		}
		if text, ok := repairs.CustomText(item); ok {
			if strings.TrimSpace(text) == "" {
				continue
			}
		} else if !repairs.Known(item) {
			fields["repair_items"] = fmt.Sprintf("unknown repair category %q", item)
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func parsePolicy(raw *string, fields pkgerrors.FieldErrors) *enums.PolicyType {
	return parsePolicyField(raw, "policy_type", fields)
}

func parsePolicyField(raw *string, field string, fields pkgerrors.FieldErrors) *enums.PolicyType {
	value := optional(raw)
	if value == nil {
		return nil
	}
	pt, err := enums.ParsePolicyType(*value)
	if err != nil {
		fields[field] = err.Error()
		return nil
	}
	return &pt
}

func parseDate(raw string) (time.Time, bool) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// validPrice accepts blank prices, which count as zero, and non-negative
// decimals written without an exponent.
func validPrice(raw string) bool {
	if raw == "" {
		return true
	}
	if strings.ContainsAny(raw, "eE") {
		return false
	}
	amount, err := decimal.NewFromString(raw)
	return err == nil && !amount.IsNegative()
}

func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
