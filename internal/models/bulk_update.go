package models

import (
	"time"

	"gorm.io/gorm"
)

// BulkUpdateRecord captures one administrative batch status change across
// many payments. Immutable after creation.
type BulkUpdateRecord struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID        string        `gorm:"type:varchar(100)" json:"user_id"`
	PaymentsCount int           `json:"payments_count"`
	Status        PaymentStatus `gorm:"type:varchar(20)" json:"status"`
	Notes         string        `gorm:"type:text" json:"notes"`

	// Relationships
	Items []BulkUpdateItem `gorm:"foreignKey:BulkUpdateRecordID" json:"items,omitempty"`
}

// BulkUpdateItem records the before/after state of a single payment within a
// bulk update. The audit write is best-effort: a failure here never rolls
// back the status change itself.
type BulkUpdateItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	BulkUpdateRecordID uint          `gorm:"index" json:"bulk_update_record_id"`
	PaymentID          uint          `gorm:"index" json:"payment_id"`
	PreviousStatus     PaymentStatus `gorm:"type:varchar(20)" json:"previous_status"`
	NewStatus          PaymentStatus `gorm:"type:varchar(20)" json:"new_status"`
}
