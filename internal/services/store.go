package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk_app_echo/internal/models"
)

// PaymentFilter narrows a payment lookup. Zero-valued fields are ignored.
type PaymentFilter struct {
	IDs         []uint
	LeaseID     uint
	PaymentType models.PaymentType
	DueDate     *time.Time
}

// PaymentPatch is a partial update applied to a batch of payments. Nil fields
// are left untouched. PaymentDateFromDue back-dates each row's payment date
// to its own due date in a single statement, which historical backfill relies
// on.
type PaymentPatch struct {
	Status             *models.PaymentStatus
	PaymentDate        *time.Time
	PaymentDateFromDue bool
	Notes              *string
	ProcessedBy        *string
}

// PaymentStore is the persistence collaborator the scheduling core consumes.
// Every call is an I/O boundary; no transaction spans more than one call.
type PaymentStore interface {
	FindPayments(ctx context.Context, filter PaymentFilter) ([]models.Payment, error)
	InsertPayments(ctx context.Context, rows []models.Payment) ([]models.Payment, error)
	UpdatePayments(ctx context.Context, ids []uint, patch PaymentPatch) error
	DeletePayments(ctx context.Context, ids []uint) error

	InsertCommission(ctx context.Context, draft models.Commission) (models.Commission, error)
	FindCommission(ctx context.Context, paymentID uint) (*models.Commission, error)
	GetCommissionRate(ctx context.Context, leaseID uint) (decimal.Decimal, error)

	InsertBulkUpdateRecord(ctx context.Context, draft models.BulkUpdateRecord) (models.BulkUpdateRecord, error)
	InsertBulkUpdateItems(ctx context.Context, rows []models.BulkUpdateItem) error
}
