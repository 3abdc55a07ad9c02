package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk_app_echo/internal/models"
)

// memStore is an in-memory PaymentStore for service tests. Failure hooks let
// individual tests exercise the partial-failure contracts.
type memStore struct {
	mu sync.Mutex

	nextPaymentID uint
	nextRecordID  uint
	payments      map[uint]*models.Payment
	commissions   []models.Commission
	records       []models.BulkUpdateRecord
	items         []models.BulkUpdateItem
	rate          decimal.Decimal

	insertCalls     int
	failInsertAfter int // fail the Nth InsertPayments call; 0 disables
	failUpdate      bool
	failItems       bool
	failCommission  bool
}

func newMemStore() *memStore {
	return &memStore{
		payments: make(map[uint]*models.Payment),
		rate:     decimal.RequireFromString("0.1"),
	}
}

func (m *memStore) FindPayments(_ context.Context, filter PaymentFilter) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wantIDs := map[uint]bool{}
	for _, id := range filter.IDs {
		wantIDs[id] = true
	}

	var out []models.Payment
	for _, p := range m.payments {
		if len(wantIDs) > 0 && !wantIDs[p.ID] {
			continue
		}
		if filter.LeaseID > 0 && p.LeaseID != filter.LeaseID {
			continue
		}
		if filter.PaymentType != "" && p.PaymentType != filter.PaymentType {
			continue
		}
		if filter.DueDate != nil && (p.DueDate == nil || !sameCalendarDay(*p.DueDate, *filter.DueDate)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate == nil || out[j].DueDate == nil {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out, nil
}

func (m *memStore) InsertPayments(_ context.Context, rows []models.Payment) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.failInsertAfter > 0 && m.insertCalls >= m.failInsertAfter {
		return nil, errors.New("store unavailable")
	}

	inserted := make([]models.Payment, 0, len(rows))
	for _, row := range rows {
		m.nextPaymentID++
		row.ID = m.nextPaymentID
		row.CreatedAt = time.Now()
		p := row
		m.payments[row.ID] = &p
		inserted = append(inserted, row)
	}
	return inserted, nil
}

func (m *memStore) UpdatePayments(_ context.Context, ids []uint, patch PaymentPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failUpdate {
		return errors.New("store unavailable")
	}

	for _, id := range ids {
		p, ok := m.payments[id]
		if !ok {
			continue
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.PaymentDateFromDue {
			p.PaymentDate = p.DueDate
		} else if patch.PaymentDate != nil {
			d := *patch.PaymentDate
			p.PaymentDate = &d
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		if patch.ProcessedBy != nil {
			p.ProcessedBy = *patch.ProcessedBy
		}
	}
	return nil
}

func (m *memStore) DeletePayments(_ context.Context, ids []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.payments, id)
	}
	return nil
}

func (m *memStore) InsertCommission(_ context.Context, draft models.Commission) (models.Commission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCommission {
		return models.Commission{}, errors.New("store unavailable")
	}
	draft.ID = uint(len(m.commissions) + 1)
	m.commissions = append(m.commissions, draft)
	return draft, nil
}

func (m *memStore) FindCommission(_ context.Context, paymentID uint) (*models.Commission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.commissions {
		if m.commissions[i].PaymentID == paymentID {
			c := m.commissions[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetCommissionRate(_ context.Context, _ uint) (decimal.Decimal, error) {
	return m.rate, nil
}

func (m *memStore) InsertBulkUpdateRecord(_ context.Context, draft models.BulkUpdateRecord) (models.BulkUpdateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRecordID++
	draft.ID = m.nextRecordID
	m.records = append(m.records, draft)
	return draft, nil
}

func (m *memStore) InsertBulkUpdateItems(_ context.Context, rows []models.BulkUpdateItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failItems {
		return errors.New("store unavailable")
	}
	m.items = append(m.items, rows...)
	return nil
}

// commissionFor is a test helper to look up a commission by payment id.
func (m *memStore) commissionFor(paymentID uint) *models.Commission {
	c, _ := m.FindCommission(context.Background(), paymentID)
	return c
}

// date builds a UTC calendar date for tests.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
