package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/internal/policies"
	"github.com/phonemechanic/repair-ledger/internal/repairs"
	"github.com/phonemechanic/repair-ledger/internal/stores"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"github.com/phonemechanic/repair-ledger/pkg/types"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// DeviceInput is one sold device as submitted by the counter form.
type DeviceInput struct {
	Model      string  `json:"model" validate:"required,min=2"`
	IMEI       string  `json:"imei" validate:"omitempty,max=15"`
	Price      string  `json:"price" validate:"required"`
	Storage    string  `json:"storage"`
	PolicyType *string `json:"policy_type" validate:"omitempty,oneof=standard water mainboard sale custom"`
}

// RepairLineInput is one repair job as submitted by the counter form.
type RepairLineInput struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
}

// CreateInput carries a new transaction.
type CreateInput struct {
	CustomerName     string            `json:"customer_name" validate:"required,min=2"`
	PhoneNumber      *string           `json:"phone_number"`
	PhoneModel       string            `json:"phone_model" validate:"required,min=2"`
	PhoneIMEI        *string           `json:"phone_imei" validate:"omitempty,max=15"`
	PhoneStorage     *string           `json:"phone_storage"`
	PhonePrice       string            `json:"phone_price"`
	Devices          []DeviceInput     `json:"devices" validate:"omitempty,dive"`
	RepairLineItems  []RepairLineInput `json:"repair_line_items" validate:"omitempty,dive"`
	RepairItems      []string          `json:"repair_items"`
	WarrantyPeriod   int               `json:"warranty_period" validate:"gte=0"`
	Notes            *string           `json:"notes"`
	PolicyType       *string           `json:"policy_type" validate:"omitempty,oneof=standard water mainboard sale custom"`
	CustomPolicyText *string           `json:"custom_policy_text"`
	TransactionDate  string            `json:"transaction_date" validate:"required"`
}

// UpdateInput carries a partial edit. Nil fields are left unchanged.
type UpdateInput struct {
	CustomerName     *string            `json:"customer_name" validate:"omitempty,min=2"`
	PhoneNumber      *string            `json:"phone_number"`
	PhoneModel       *string            `json:"phone_model" validate:"omitempty,min=2"`
	PhoneIMEI        *string            `json:"phone_imei" validate:"omitempty,max=15"`
	PhoneStorage     *string            `json:"phone_storage"`
	PhonePrice       *string            `json:"phone_price"`
	Devices          *[]DeviceInput     `json:"devices" validate:"omitempty,dive"`
	RepairLineItems  *[]RepairLineInput `json:"repair_line_items" validate:"omitempty,dive"`
	RepairItems      *[]string          `json:"repair_items"`
	WarrantyPeriod   *int               `json:"warranty_period" validate:"omitempty,gte=0"`
	Notes            *string            `json:"notes"`
	PolicyType       *string            `json:"policy_type" validate:"omitempty,oneof=standard water mainboard sale custom"`
	CustomPolicyText *string            `json:"custom_policy_text"`
	TransactionDate  *string            `json:"transaction_date"`
}

// TransactionDTO is the API view of a stored transaction.
type TransactionDTO struct {
	ID                uuid.UUID             `json:"id"`
	Store             enums.Store           `json:"store"`
	CustomerName      string                `json:"customer_name"`
	PhoneNumber       *string               `json:"phone_number,omitempty"`
	PhoneModel        string                `json:"phone_model"`
	PhoneIMEI         *string               `json:"phone_imei,omitempty"`
	PhoneStorage      *string               `json:"phone_storage,omitempty"`
	PhonePrice        string                `json:"phone_price"`
	Devices           types.Devices         `json:"devices"`
	RepairLineItems   types.RepairLineItems `json:"repair_line_items"`
	RepairItems       []string              `json:"repair_items"`
	RepairDescription []string              `json:"repair_description"`
	WarrantyPeriod    int                   `json:"warranty_period"`
	Notes             *string               `json:"notes,omitempty"`
	PolicyType        *enums.PolicyType     `json:"policy_type,omitempty"`
	CustomPolicyText  *string               `json:"custom_policy_text,omitempty"`
	InvoiceNumber     *string               `json:"invoice_number,omitempty"`
	TransactionDate   string                `json:"transaction_date"`
	DeletedAt         *time.Time            `json:"deleted_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Score             int                   `json:"score,omitempty"`
}

// Suggestion is the compact search hit shown in the dashboard search box.
type Suggestion struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	PhoneModel   string    `json:"phone_model"`
}

// InvoiceLine is one rendered invoice row.
type InvoiceLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// InvoiceView is everything a tax invoice or receipt prints.
type InvoiceView struct {
	Header          stores.Header       `json:"header"`
	InvoiceNumber   string              `json:"invoice_number"`
	TransactionDate string              `json:"transaction_date"`
	CustomerName    string              `json:"customer_name"`
	PhoneNumber     *string             `json:"phone_number,omitempty"`
	PhoneModel      string              `json:"phone_model"`
	PhoneIMEI       *string             `json:"phone_imei,omitempty"`
	PhoneStorage    *string             `json:"phone_storage,omitempty"`
	Source          enums.InvoiceSource `json:"source"`
	LineItems       []InvoiceLine       `json:"line_items"`
	Subtotal        string              `json:"subtotal"`
	GST             string              `json:"gst"`
	Total           string              `json:"total"`
	RepairTotal     *string             `json:"repair_total,omitempty"`
	WarrantyMonths  int                 `json:"warranty_months"`
	Notes           string              `json:"notes"`
	Policies        []policies.Entry    `json:"policies"`
}

// FromModel maps the persisted transaction into a DTO.
func FromModel(m *models.Transaction) *TransactionDTO {
	if m == nil {
		return nil
	}
	items := []string(m.RepairItems)
	if items == nil {
		items = []string{}
	}
	devices := m.Devices
	if devices == nil {
		devices = types.Devices{}
	}
	lines := m.RepairLineItems
	if lines == nil {
		lines = types.RepairLineItems{}
	}
	return &TransactionDTO{
		ID:                m.ID,
		Store:             m.Store,
		CustomerName:      m.CustomerName,
		PhoneNumber:       m.PhoneNumber,
		PhoneModel:        m.PhoneModel,
		PhoneIMEI:         m.PhoneIMEI,
		PhoneStorage:      m.PhoneStorage,
		PhonePrice:        m.PhonePrice,
		Devices:           devices,
		RepairLineItems:   lines,
		RepairItems:       items,
		RepairDescription: repairs.Describe(items),
		WarrantyPeriod:    m.WarrantyPeriod,
		Notes:             m.Notes,
		PolicyType:        m.PolicyType,
		CustomPolicyText:  m.CustomPolicyText,
		InvoiceNumber:     m.InvoiceNumber,
		TransactionDate:   m.TransactionDate.Format(DateLayout),
		DeletedAt:         m.DeletedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromModels(records []models.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out
}
