package handlers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk_app_echo/internal/models"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD request field.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// CreateLeaseRequest is the payload of the lease-creation workflow.
type CreateLeaseRequest struct {
	PropertyID       uint            `json:"property_id"`
	TenantID         uint            `json:"tenant_id"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
	PaymentFrequency string          `json:"payment_frequency"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit"`
	AgencyFee        decimal.Decimal `json:"agency_fee"`
	GracePeriodDays  int             `json:"grace_period_days"`
}

// CreateLeaseResponse reports the lease plus what generation produced.
type CreateLeaseResponse struct {
	Lease            models.Lease `json:"lease"`
	PaymentsCreated  int          `json:"payments_created"`
	BackfilledAsPaid int          `json:"backfilled_as_paid"`
}

// GenerateScheduleRequest drives explicit schedule generation for a lease.
type GenerateScheduleRequest struct {
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Amount      decimal.Decimal    `json:"amount"`
	Frequency   string             `json:"frequency"`
	PaymentType models.PaymentType `json:"payment_type"`
}

// BulkUpdateRequest is the payment-review workflow payload.
type BulkUpdateRequest struct {
	PaymentIDs  []uint               `json:"payment_ids"`
	Status      models.PaymentStatus `json:"status"`
	Notes       string               `json:"notes"`
	ProcessedBy string               `json:"processed_by"`
	UserID      string               `json:"user_id"`
}

// BulkDeleteRequest is the administrative escape hatch payload.
type BulkDeleteRequest struct {
	PaymentIDs []uint `json:"payment_ids"`
}

// PaymentView is a payment plus its freshly classified status, so reporting
// never leans on the persisted cache.
type PaymentView struct {
	models.Payment
	EffectiveStatus models.PaymentStatus `json:"effective_status"`
}
