package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"github.com/phonemechanic/repair-ledger/pkg/types"
)

// Transaction is one repair or device sale recorded at a store counter.
type Transaction struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Store            enums.Store           `gorm:"column:store;type:text;not null"`
	CustomerName     string                `gorm:"column:customer_name;not null"`
	PhoneNumber      *string               `gorm:"column:phone_number"`
	PhoneModel       string                `gorm:"column:phone_model;not null"`
	PhoneIMEI        *string               `gorm:"column:phone_imei"`
	PhoneStorage     *string               `gorm:"column:phone_storage"`
	PhonePrice       string                `gorm:"column:phone_price;not null;default:'0'"`
	Devices          types.Devices         `gorm:"column:devices;type:jsonb"`
	RepairLineItems  types.RepairLineItems `gorm:"column:repair_line_items;type:jsonb"`
	RepairItems      types.StringList      `gorm:"column:repair_items;type:jsonb"`
	WarrantyPeriod   int                   `gorm:"column:warranty_period;not null;default:0"`
	Notes            *string               `gorm:"column:notes"`
	PolicyType       *enums.PolicyType     `gorm:"column:policy_type;type:text"`
	CustomPolicyText *string               `gorm:"column:custom_policy_text"`
	InvoiceNumber    *string               `gorm:"column:invoice_number"`
	TransactionDate  time.Time             `gorm:"column:transaction_date;type:date;not null"`
	DeletedAt        *time.Time            `gorm:"column:deleted_at"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an id when the caller did not supply one.
func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsTrashed reports whether the record sits in the trash.
func (t Transaction) IsTrashed() bool {
	return t.DeletedAt != nil
}

// ArchivedTransaction is a transaction moved out of the working set by the
// archive job.
type ArchivedTransaction struct {
	Transaction `gorm:"embedded"`
	ArchivedAt  time.Time `gorm:"column:archived_at;not null"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
