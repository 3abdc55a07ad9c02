package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"

	"rentdesk_app_echo/internal/models"
)

// generationBatchSize bounds how many payment drafts are submitted to the
// store per insert call. Large date ranges must never go out as one oversized
// write.
const generationBatchSize = 50

const dateKeyLayout = "2006-01-02"

// ScheduleService generates payment obligations for leases: recurring rent
// schedules, one-off initial obligations, and historical backfill for leases
// that started in the past.
type ScheduleService struct {
	store       PaymentStore
	commissions *CommissionService
	cache       *RedisCache
	now         func() time.Time
}

// NewScheduleService wires the generator. cache may be nil; it is only used
// to invalidate lease stats after writes.
func NewScheduleService(store PaymentStore, commissions *CommissionService, cache *RedisCache) *ScheduleService {
	return &ScheduleService{
		store:       store,
		commissions: commissions,
		cache:       cache,
		now:         time.Now,
	}
}

// GenerateSchedule produces every due date between start and end (inclusive)
// at the lease's cadence and persists one payment per date that does not
// already exist for (lease, payment type). Repeated invocation is idempotent:
// existing due dates are diffed out by calendar date before anything is
// written.
//
// A failure on one insert batch aborts the remaining batches; the rows
// created so far are returned alongside the error, and re-invocation safely
// fills the gap.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, leaseID uint, start, end time.Time, amount decimal.Decimal, frequencyName string, paymentType models.PaymentType) ([]models.Payment, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w (%s > %s)", ErrInvalidRange, start.Format(dateKeyLayout), end.Format(dateKeyLayout))
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidAmount, amount.String())
	}

	opt, err := ResolveFrequency(frequencyName)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = calendarDate(start)
	opt.Until = calendarDate(end)

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}
	dates := rule.All()

	existing, err := s.store.FindPayments(ctx, PaymentFilter{LeaseID: leaseID, PaymentType: paymentType})
	if err != nil {
		return nil, persistenceErr("find existing due dates", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		if p.DueDate != nil {
			seen[p.DueDate.Format(dateKeyLayout)] = true
		}
	}

	var drafts []models.Payment
	for _, d := range dates {
		due := calendarDate(d)
		if seen[due.Format(dateKeyLayout)] {
			continue
		}
		drafts = append(drafts, models.Payment{
			LeaseID:         leaseID,
			UUID:            uuid.New().String(),
			Amount:          amount,
			DueDate:         &due,
			PaymentType:     paymentType,
			Status:          models.PaymentStatusUndefined,
			IsAutoGenerated: true,
			PaymentMethod:   models.DefaultPaymentMethod,
		})
	}

	if len(drafts) == 0 {
		return []models.Payment{}, nil
	}

	created := make([]models.Payment, 0, len(drafts))
	for batchStart := 0; batchStart < len(drafts); batchStart += generationBatchSize {
		batchEnd := batchStart + generationBatchSize
		if batchEnd > len(drafts) {
			batchEnd = len(drafts)
		}
		inserted, err := s.store.InsertPayments(ctx, drafts[batchStart:batchEnd])
		if err != nil {
			return created, persistenceErr("insert payment batch", err)
		}
		created = append(created, inserted...)
	}

	s.invalidateStats(ctx, leaseID)

	Logger().WithFields(logrus.Fields{
		"lease_id":     leaseID,
		"payment_type": paymentType,
		"created":      len(created),
	}).Info("payment schedule generated")

	return created, nil
}

// GenerateInitialObligations creates the lease's one-off obligations: at most
// one security deposit and at most one agency fee, each guarded by an
// existence check and skipped when the lease amount is not positive. Both are
// due and settled on the lease start date. The check-then-create pair is not
// atomic against a concurrent duplicate call.
func (s *ScheduleService) GenerateInitialObligations(ctx context.Context, lease models.Lease) ([]models.Payment, error) {
	obligations := []struct {
		paymentType models.PaymentType
		amount      decimal.Decimal
		note        string
	}{
		{models.PaymentTypeDeposit, lease.SecurityDeposit, "Security deposit collected at lease start"},
		{models.PaymentTypeAgencyFee, lease.AgencyFee, "Agency fee collected at lease start"},
	}

	date := calendarDate(lease.ObligationDate())
	var created []models.Payment

	for _, ob := range obligations {
		if !ob.amount.IsPositive() {
			continue
		}

		existing, err := s.store.FindPayments(ctx, PaymentFilter{LeaseID: lease.ID, PaymentType: ob.paymentType})
		if err != nil {
			return created, persistenceErr("check existing obligation", err)
		}
		if len(existing) > 0 {
			continue
		}

		due := date
		paid := date
		inserted, err := s.store.InsertPayments(ctx, []models.Payment{{
			LeaseID:         lease.ID,
			UUID:            uuid.New().String(),
			Amount:          ob.amount,
			DueDate:         &due,
			PaymentDate:     &paid,
			PaymentType:     ob.paymentType,
			Status:          models.PaymentStatusUndefined,
			IsAutoGenerated: true,
			PaymentMethod:   models.DefaultPaymentMethod,
			Notes:           ob.note,
		}})
		if err != nil {
			return created, persistenceErr("insert initial obligation", err)
		}
		created = append(created, inserted...)
	}

	if len(created) > 0 {
		s.invalidateStats(ctx, lease.ID)
	}
	return created, nil
}

// GenerateHistoricalPayments backfills rent obligations for a lease that
// started in the past: it generates the schedule from start to today, then
// retroactively settles every installment except the chronologically last
// one, which stays open as the current outstanding obligation. Settlement is
// back-dated (payment date = due date) in a single batch update, and a
// commission is recorded per settled installment with a log-and-continue
// policy.
//
// Returns the full set of created payments with settlement reflected, plus
// the count of installments marked paid.
func (s *ScheduleService) GenerateHistoricalPayments(ctx context.Context, leaseID uint, amount decimal.Decimal, start time.Time, frequencyName string) ([]models.Payment, int, error) {
	if start.IsZero() {
		return nil, 0, fmt.Errorf("%w: start date is not set", ErrInvalidRange)
	}
	today := calendarDate(s.now())
	if calendarDate(start).After(today) {
		return nil, 0, fmt.Errorf("%w: start date is in the future", ErrInvalidRange)
	}

	created, err := s.GenerateSchedule(ctx, leaseID, start, today, amount, frequencyName, models.PaymentTypeRent)
	if err != nil {
		return created, 0, err
	}
	if len(created) <= 1 {
		return created, 0, nil
	}

	// Batched insert responses are not guaranteed to preserve submission
	// order; re-sort before applying the all-but-last rule.
	sort.Slice(created, func(i, j int) bool {
		return created[i].DueDate.Before(*created[j].DueDate)
	})

	settled := created[:len(created)-1]
	ids := make([]uint, len(settled))
	for i, p := range settled {
		ids[i] = p.ID
	}

	paidStatus := models.PaymentStatusPaid
	err = s.store.UpdatePayments(ctx, ids, PaymentPatch{
		Status:             &paidStatus,
		PaymentDateFromDue: true,
	})
	if err != nil {
		return created, 0, persistenceErr("mark historical payments paid", err)
	}

	for i := range settled {
		created[i].Status = models.PaymentStatusPaid
		created[i].PaymentDate = created[i].DueDate
	}

	for _, p := range settled {
		if _, err := s.commissions.CalculateAndRecordCommission(ctx, p.ID, p.LeaseID, p.Amount, p.PaymentType); err != nil {
			// A missing commission is reconcilable; never abort the backfill.
			Logger().WithFields(logrus.Fields{
				"payment_id": p.ID,
				"lease_id":   p.LeaseID,
			}).WithError(err).Warn("commission calculation failed during backfill")
		}
	}

	s.invalidateStats(ctx, leaseID)
	return created, len(settled), nil
}

func (s *ScheduleService) invalidateStats(ctx context.Context, leaseID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey(leaseID)); err != nil {
		Logger().WithField("lease_id", leaseID).WithError(err).Warn("stats cache invalidation failed")
	}
}
