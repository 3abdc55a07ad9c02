package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk_app_echo/internal/models"
)

// statsCacheTTL keeps cached aggregates fresh enough for dashboards while the
// write paths also invalidate eagerly.
const statsCacheTTL = 5 * time.Minute

func statsCacheKey(leaseID uint) string {
	return fmt.Sprintf("lease:%d:payment-stats", leaseID)
}

// LeasePaymentStats aggregates a lease's payments by classified status.
// Advanced payments count toward total paid as well as their own bucket.
type LeasePaymentStats struct {
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalDue       decimal.Decimal `json:"total_due"`
	Balance        decimal.Decimal `json:"balance"`
	PaidCount      int             `json:"paid_count"`
	PendingCount   int             `json:"pending_count"`
	LateCount      int             `json:"late_count"`
	AdvancedCount  int             `json:"advanced_count"`
	UndefinedCount int             `json:"undefined_count"`
}

// StatsService computes read-only payment aggregates for reporting views.
type StatsService struct {
	store PaymentStore
	cache *RedisCache
	now   func() time.Time
}

// NewStatsService wires the aggregator. cache may be nil, in which case every
// read recomputes from the store.
func NewStatsService(store PaymentStore, cache *RedisCache) *StatsService {
	return &StatsService{store: store, cache: cache, now: time.Now}
}

// GetLeasePaymentStats recomputes the lease's totals by classifying every
// payment fresh; the persisted status column is never trusted, since pending
// and late drift with the current date. Results satisfy
// balance == totalDue - totalPaid.
func (s *StatsService) GetLeasePaymentStats(ctx context.Context, leaseID uint) (LeasePaymentStats, error) {
	if s.cache != nil {
		var cached LeasePaymentStats
		if err := s.cache.Get(ctx, statsCacheKey(leaseID), &cached); err == nil {
			return cached, nil
		}
	}

	stats, err := s.computeStats(ctx, leaseID)
	if err != nil {
		return LeasePaymentStats{}, err
	}

	if s.cache != nil {
		// Cache set failures are ignored; the read already succeeded.
		_ = s.cache.Set(ctx, statsCacheKey(leaseID), stats, statsCacheTTL)
	}
	return stats, nil
}

func (s *StatsService) computeStats(ctx context.Context, leaseID uint) (LeasePaymentStats, error) {
	payments, err := s.store.FindPayments(ctx, PaymentFilter{LeaseID: leaseID})
	if err != nil {
		return LeasePaymentStats{}, persistenceErr("find lease payments", err)
	}

	now := s.now()
	stats := LeasePaymentStats{
		TotalPaid: decimal.Zero,
		TotalDue:  decimal.Zero,
		Balance:   decimal.Zero,
	}

	for _, p := range payments {
		stats.TotalDue = stats.TotalDue.Add(p.Amount)

		switch ClassifyPayment(p.DueDate, p.PaymentDate, models.DefaultGracePeriodDays, now) {
		case models.PaymentStatusPaid:
			stats.PaidCount++
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		case models.PaymentStatusAdvanced:
			stats.AdvancedCount++
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		case models.PaymentStatusPending:
			stats.PendingCount++
		case models.PaymentStatusLate:
			stats.LateCount++
		case models.PaymentStatusUndefined:
			stats.UndefinedCount++
		}
	}

	stats.Balance = stats.TotalDue.Sub(stats.TotalPaid)
	return stats, nil
}

// RefreshLeaseStatuses re-derives every payment's status through the
// classifier and persists the ones that drifted. Returns how many rows were
// rewritten. This is the explicit refresh of the denormalized status cache.
func (s *StatsService) RefreshLeaseStatuses(ctx context.Context, leaseID uint) (int, error) {
	payments, err := s.store.FindPayments(ctx, PaymentFilter{LeaseID: leaseID})
	if err != nil {
		return 0, persistenceErr("find lease payments", err)
	}

	now := s.now()
	drifted := map[models.PaymentStatus][]uint{}
	for _, p := range payments {
		fresh := ClassifyPayment(p.DueDate, p.PaymentDate, models.DefaultGracePeriodDays, now)
		if fresh != p.Status {
			drifted[fresh] = append(drifted[fresh], p.ID)
		}
	}

	refreshed := 0
	for status, ids := range drifted {
		st := status
		if err := s.store.UpdatePayments(ctx, ids, PaymentPatch{Status: &st}); err != nil {
			return refreshed, persistenceErr("refresh payment statuses", err)
		}
		refreshed += len(ids)
	}

	if refreshed > 0 && s.cache != nil {
		_ = s.cache.Delete(ctx, statsCacheKey(leaseID))
	}
	return refreshed, nil
}
