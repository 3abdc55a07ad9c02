package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus is the persisted status label of a payment. It is a cache of
// what the classifier would compute; the classifier stays the source of truth.
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusLate      PaymentStatus = "late"
	PaymentStatusAdvanced  PaymentStatus = "advanced"
	PaymentStatusUndefined PaymentStatus = "undefined"
)

// PaymentType distinguishes the kind of obligation a payment settles.
type PaymentType string

const (
	PaymentTypeRent      PaymentType = "rent"
	PaymentTypeDeposit   PaymentType = "deposit"
	PaymentTypeAgencyFee PaymentType = "agency_fee"
	PaymentTypeOther     PaymentType = "other"
)

const DefaultPaymentMethod = "bank_transfer"

// Payment represents a single scheduled or recorded money movement tied to a
// lease: a rent installment, a deposit or an agency fee.
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	LeaseID         uint            `gorm:"index" json:"lease_id"`
	UUID            string          `gorm:"type:varchar(36);index" json:"uuid"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	DueDate         *time.Time      `gorm:"index" json:"due_date"`
	PaymentDate     *time.Time      `json:"payment_date"`
	PaymentType     PaymentType     `gorm:"type:varchar(20);index" json:"payment_type"`
	Status          PaymentStatus   `gorm:"type:varchar(20)" json:"status"`
	IsAutoGenerated bool            `gorm:"default:false" json:"is_auto_generated"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"payment_method"`
	Notes           string          `gorm:"type:text" json:"notes"`
	ProcessedBy     string          `gorm:"type:varchar(100)" json:"processed_by"`
	TransactionID   string          `gorm:"type:varchar(100)" json:"transaction_id"`

	// Relationships
	Lease      Lease       `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	Commission *Commission `gorm:"foreignKey:PaymentID" json:"commission,omitempty"`
}
