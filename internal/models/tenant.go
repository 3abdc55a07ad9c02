package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is the renting party on a lease.
type Tenant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name  string `gorm:"type:varchar(255)" json:"name"`
	Email string `gorm:"type:varchar(255);index" json:"email"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`

	// Relationships
	Leases []Lease `gorm:"foreignKey:TenantID" json:"leases,omitempty"`
}
