package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaseStatus represents the lifecycle state of a lease.
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusExpired    LeaseStatus = "expired"
)

// DefaultGracePeriodDays is applied when a lease does not configure its own
// grace period for late-payment classification.
const DefaultGracePeriodDays = 5

// Lease represents a tenancy agreement between a tenant and a property,
// carrying the financial terms the scheduling core consumes. Generation calls
// treat a lease as an immutable input snapshot.
type Lease struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	PropertyID       uint            `gorm:"index" json:"property_id"`
	TenantID         uint            `gorm:"index" json:"tenant_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	MonthlyRent      decimal.Decimal `gorm:"type:decimal(15,2)" json:"monthly_rent"`
	PaymentFrequency string          `gorm:"type:varchar(255);default:'monthly'" json:"payment_frequency"`
	SecurityDeposit  decimal.Decimal `gorm:"type:decimal(15,2)" json:"security_deposit"`
	AgencyFee        decimal.Decimal `gorm:"type:decimal(15,2)" json:"agency_fee"`
	GracePeriodDays  int             `gorm:"default:5" json:"grace_period_days"`
	Status           LeaseStatus     `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relationships
	Property Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Payments []Payment `gorm:"foreignKey:LeaseID" json:"payments,omitempty"`
}

// Grace returns the lease's grace period, falling back to the default when
// unset.
func (l Lease) Grace() int {
	if l.GracePeriodDays <= 0 {
		return DefaultGracePeriodDays
	}
	return l.GracePeriodDays
}

// ObligationDate is the due/payment date used for initial obligations:
// the lease start date, or the record creation date when start is unset.
func (l Lease) ObligationDate() time.Time {
	if l.StartDate.IsZero() {
		return l.CreatedAt
	}
	return l.StartDate
}
