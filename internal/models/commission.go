package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionStatus tracks the settlement of the agency's cut.
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Commission records the agency's earned cut of a single rent payment.
// One commission per qualifying payment; rows are never recomputed when the
// configured rate changes later.
type Commission struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	PaymentID uint             `gorm:"index" json:"payment_id"`
	LeaseID   uint             `gorm:"index" json:"lease_id"`
	Amount    decimal.Decimal  `gorm:"type:decimal(15,2)" json:"amount"`
	Rate      decimal.Decimal  `gorm:"type:decimal(6,4)" json:"rate"`
	Status    CommissionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relationships
	Payment Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	Lease   Lease   `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}
