package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rentdesk_app_echo/internal/models"
)

// CommissionService computes and records the agency's cut of rent payments.
type CommissionService struct {
	store PaymentStore
}

func NewCommissionService(store PaymentStore) *CommissionService {
	return &CommissionService{store: store}
}

// CalculateAndRecordCommission records a commission for a rent payment at the
// rate configured for the lease's property. Non-rent payments are a no-op:
// deposits and agency fees never earn commission.
//
// Callers are responsible for invoking this only on a genuine not-paid → paid
// transition; the calculator does not re-check for an existing commission.
func (s *CommissionService) CalculateAndRecordCommission(ctx context.Context, paymentID, leaseID uint, amount decimal.Decimal, paymentType models.PaymentType) (*models.Commission, error) {
	if paymentType != models.PaymentTypeRent {
		return nil, nil
	}

	rate, err := s.store.GetCommissionRate(ctx, leaseID)
	if err != nil {
		return nil, persistenceErr("commission rate lookup", err)
	}

	commission := models.Commission{
		PaymentID: paymentID,
		LeaseID:   leaseID,
		Amount:    amount.Mul(rate).Round(2),
		Rate:      rate,
		Status:    models.CommissionStatusPending,
	}

	created, err := s.store.InsertCommission(ctx, commission)
	if err != nil {
		return nil, persistenceErr("insert commission", err)
	}

	Logger().WithFields(logrus.Fields{
		"payment_id": paymentID,
		"lease_id":   leaseID,
		"amount":     created.Amount.String(),
		"rate":       rate.String(),
	}).Info("commission recorded")

	return &created, nil
}
