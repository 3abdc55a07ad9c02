package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rentdesk_app_echo/internal/models"
)

// PaymentService applies administrative status changes to payments and
// triggers commission recording on qualifying transitions.
type PaymentService struct {
	store       PaymentStore
	commissions *CommissionService
	cache       *RedisCache
	now         func() time.Time
}

func NewPaymentService(store PaymentStore, commissions *CommissionService, cache *RedisCache) *PaymentService {
	return &PaymentService{
		store:       store,
		commissions: commissions,
		cache:       cache,
		now:         time.Now,
	}
}

// BulkUpdateInput describes one batch status change requested by a reviewer.
type BulkUpdateInput struct {
	PaymentIDs  []uint
	Status      models.PaymentStatus
	Notes       string
	ProcessedBy string
	UserID      string
}

// UpdateBulkPayments applies one status across a batch of payments.
//
// The pre-update snapshot of each payment is the basis for commission
// eligibility: when the new status is "paid", a commission is recorded for
// every rent payment whose snapshotted status was not already paid. Deposits
// and agency fees never earn commission, even when bulk-marked paid.
//
// A persistence failure on the primary status write aborts the call before
// any commission work. The per-item audit trail is best-effort: a failure
// writing it is logged and swallowed, never rolled back into the status
// change. Individual commission failures are likewise logged and skipped.
func (s *PaymentService) UpdateBulkPayments(ctx context.Context, input BulkUpdateInput) error {
	if len(input.PaymentIDs) == 0 {
		return ErrEmptySelection
	}

	// Snapshot current state before the write; eligibility is judged on it.
	snapshot, err := s.store.FindPayments(ctx, PaymentFilter{IDs: input.PaymentIDs})
	if err != nil {
		return persistenceErr("snapshot payments", err)
	}

	record, err := s.store.InsertBulkUpdateRecord(ctx, models.BulkUpdateRecord{
		UserID:        input.UserID,
		PaymentsCount: len(input.PaymentIDs),
		Status:        input.Status,
		Notes:         input.Notes,
	})
	if err != nil {
		return persistenceErr("insert bulk update record", err)
	}

	patch := PaymentPatch{Status: &input.Status}
	if input.Notes != "" {
		patch.Notes = &input.Notes
	}
	if input.ProcessedBy != "" {
		patch.ProcessedBy = &input.ProcessedBy
	}
	if input.Status == models.PaymentStatusPaid {
		// Settlement is stamped at the moment of the bulk action, unlike
		// historical backfill which back-dates to the due date.
		today := calendarDate(s.now())
		patch.PaymentDate = &today
	}

	if err := s.store.UpdatePayments(ctx, input.PaymentIDs, patch); err != nil {
		return persistenceErr("bulk status update", err)
	}

	items := make([]models.BulkUpdateItem, 0, len(snapshot))
	for _, p := range snapshot {
		items = append(items, models.BulkUpdateItem{
			BulkUpdateRecordID: record.ID,
			PaymentID:          p.ID,
			PreviousStatus:     p.Status,
			NewStatus:          input.Status,
		})
	}
	if err := s.store.InsertBulkUpdateItems(ctx, items); err != nil {
		Logger().WithField("record_id", record.ID).WithError(err).Warn("bulk update audit items not written")
	}

	if input.Status == models.PaymentStatusPaid {
		for _, p := range snapshot {
			if p.Status == models.PaymentStatusPaid || p.PaymentType != models.PaymentTypeRent {
				continue
			}
			if _, err := s.commissions.CalculateAndRecordCommission(ctx, p.ID, p.LeaseID, p.Amount, p.PaymentType); err != nil {
				Logger().WithFields(logrus.Fields{
					"payment_id": p.ID,
					"lease_id":   p.LeaseID,
				}).WithError(err).Warn("commission calculation failed during bulk update")
			}
		}
	}

	s.invalidateStats(ctx, snapshot)
	return nil
}

// DeletePayments is the administrative escape hatch; payments are never
// physically deleted in the normal flow.
func (s *PaymentService) DeletePayments(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	targets, err := s.store.FindPayments(ctx, PaymentFilter{IDs: ids})
	if err != nil {
		return persistenceErr("find payments for delete", err)
	}
	if err := s.store.DeletePayments(ctx, ids); err != nil {
		return persistenceErr("delete payments", err)
	}
	s.invalidateStats(ctx, targets)
	return nil
}

func (s *PaymentService) invalidateStats(ctx context.Context, payments []models.Payment) {
	if s.cache == nil {
		return
	}
	leases := map[uint]bool{}
	for _, p := range payments {
		leases[p.LeaseID] = true
	}
	for leaseID := range leases {
		if err := s.cache.Delete(ctx, statsCacheKey(leaseID)); err != nil {
			Logger().WithError(err).Warn(fmt.Sprintf("stats cache invalidation failed for lease %d", leaseID))
		}
	}
}
