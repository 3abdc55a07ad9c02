package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property represents a managed rental unit. Its commission rate is the
// per-property override consulted when recording commissions on rent payments.
type Property struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name           string          `gorm:"type:varchar(255)" json:"name"`
	Address        string          `gorm:"type:text" json:"address"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(6,4)" json:"commission_rate"`

	// Relationships
	Leases []Lease `gorm:"foreignKey:PropertyID" json:"leases,omitempty"`
}
