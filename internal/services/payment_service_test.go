package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk_app_echo/internal/models"
)

func newPaymentService(store *memStore) *PaymentService {
	svc := NewPaymentService(store, NewCommissionService(store), nil)
	svc.now = func() time.Time { return date(2024, time.July, 1) }
	return svc
}

// seedPayment inserts one payment directly into the store.
func seedPayment(t *testing.T, store *memStore, leaseID uint, paymentType models.PaymentType, status models.PaymentStatus, amount int64, due time.Time) models.Payment {
	t.Helper()
	d := due
	inserted, err := store.InsertPayments(context.Background(), []models.Payment{{
		LeaseID:     leaseID,
		Amount:      decimal.NewFromInt(amount),
		DueDate:     &d,
		PaymentType: paymentType,
		Status:      status,
	}})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	return inserted[0]
}

func TestUpdateBulkPaymentsEmptySelection(t *testing.T) {
	svc := newPaymentService(newMemStore())
	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{Status: models.PaymentStatusPaid})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestUpdateBulkPaymentsMarksPaid(t *testing.T) {
	store := newMemStore()
	svc := newPaymentService(store)
	ctx := context.Background()

	p1 := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))
	p2 := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusLate, 500, date(2024, time.May, 1))

	err := svc.UpdateBulkPayments(ctx, BulkUpdateInput{
		PaymentIDs:  []uint{p1.ID, p2.ID},
		Status:      models.PaymentStatusPaid,
		Notes:       "reconciled June batch",
		ProcessedBy: "admin@agency.test",
		UserID:      "user-42",
	})
	require.NoError(t, err)

	updated, err := store.FindPayments(ctx, PaymentFilter{IDs: []uint{p1.ID, p2.ID}})
	require.NoError(t, err)
	for _, p := range updated {
		assert.Equal(t, models.PaymentStatusPaid, p.Status)
		require.NotNil(t, p.PaymentDate)
		assert.Equal(t, date(2024, time.July, 1), *p.PaymentDate, "settlement is stamped at the bulk action, not back-dated")
		assert.Equal(t, "reconciled June batch", p.Notes)
		assert.Equal(t, "admin@agency.test", p.ProcessedBy)
	}
}

func TestUpdateBulkPaymentsCommissionEligibility(t *testing.T) {
	store := newMemStore()
	svc := newPaymentService(store)
	ctx := context.Background()

	rentPending := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))
	rentLate := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusLate, 600, date(2024, time.May, 1))
	rentAlreadyPaid := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPaid, 500, date(2024, time.April, 1))
	deposit := seedPayment(t, store, 1, models.PaymentTypeDeposit, models.PaymentStatusPending, 1000, date(2024, time.June, 1))
	fee := seedPayment(t, store, 1, models.PaymentTypeAgencyFee, models.PaymentStatusPending, 300, date(2024, time.June, 1))

	err := svc.UpdateBulkPayments(ctx, BulkUpdateInput{
		PaymentIDs: []uint{rentPending.ID, rentLate.ID, rentAlreadyPaid.ID, deposit.ID, fee.ID},
		Status:     models.PaymentStatusPaid,
	})
	require.NoError(t, err)

	require.Len(t, store.commissions, 2, "only rent transitioning into paid earns commission")
	require.NotNil(t, store.commissionFor(rentPending.ID))
	require.NotNil(t, store.commissionFor(rentLate.ID))
	assert.Nil(t, store.commissionFor(rentAlreadyPaid.ID), "already-paid rent is not re-commissioned")
	assert.Nil(t, store.commissionFor(deposit.ID), "deposits never earn commission")
	assert.Nil(t, store.commissionFor(fee.ID), "agency fees never earn commission")

	c := store.commissionFor(rentLate.ID)
	assert.True(t, c.Amount.Equal(decimal.NewFromInt(60)))
}

func TestUpdateBulkPaymentsNonPaidStatusSkipsCommissions(t *testing.T) {
	store := newMemStore()
	svc := newPaymentService(store)

	p := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))

	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{
		PaymentIDs: []uint{p.ID},
		Status:     models.PaymentStatusLate,
	})
	require.NoError(t, err)
	assert.Empty(t, store.commissions)

	updated, _ := store.FindPayments(context.Background(), PaymentFilter{IDs: []uint{p.ID}})
	assert.Nil(t, updated[0].PaymentDate, "payment date is only stamped when marking paid")
}

func TestUpdateBulkPaymentsAuditTrail(t *testing.T) {
	store := newMemStore()
	svc := newPaymentService(store)

	p1 := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))
	p2 := seedPayment(t, store, 1, models.PaymentTypeDeposit, models.PaymentStatusLate, 1000, date(2024, time.May, 1))

	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{
		PaymentIDs: []uint{p1.ID, p2.ID},
		Status:     models.PaymentStatusPaid,
		UserID:     "user-42",
	})
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.Equal(t, "user-42", record.UserID)
	assert.Equal(t, 2, record.PaymentsCount)
	assert.Equal(t, models.PaymentStatusPaid, record.Status)

	require.Len(t, store.items, 2, "every payment gets an audit item regardless of type")
	byPayment := map[uint]models.BulkUpdateItem{}
	for _, item := range store.items {
		assert.Equal(t, record.ID, item.BulkUpdateRecordID)
		byPayment[item.PaymentID] = item
	}
	assert.Equal(t, models.PaymentStatusPending, byPayment[p1.ID].PreviousStatus)
	assert.Equal(t, models.PaymentStatusLate, byPayment[p2.ID].PreviousStatus)
	assert.Equal(t, models.PaymentStatusPaid, byPayment[p1.ID].NewStatus)
}

func TestUpdateBulkPaymentsAuditFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	store.failItems = true
	svc := newPaymentService(store)

	p := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))

	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{
		PaymentIDs: []uint{p.ID},
		Status:     models.PaymentStatusPaid,
	})
	require.NoError(t, err, "audit writes are best-effort")

	updated, _ := store.FindPayments(context.Background(), PaymentFilter{IDs: []uint{p.ID}})
	assert.Equal(t, models.PaymentStatusPaid, updated[0].Status, "the status change sticks")
	assert.Len(t, store.commissions, 1, "commission work still runs")
}

func TestUpdateBulkPaymentsPrimaryWriteFailureAborts(t *testing.T) {
	store := newMemStore()
	store.failUpdate = true
	svc := newPaymentService(store)

	p := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))

	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{
		PaymentIDs: []uint{p.ID},
		Status:     models.PaymentStatusPaid,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, store.commissions, "commission work never begins after a failed primary write")
	assert.Empty(t, store.items)
}

func TestUpdateBulkPaymentsCommissionFailureDoesNotFail(t *testing.T) {
	store := newMemStore()
	store.failCommission = true
	svc := newPaymentService(store)

	p := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))

	err := svc.UpdateBulkPayments(context.Background(), BulkUpdateInput{
		PaymentIDs: []uint{p.ID},
		Status:     models.PaymentStatusPaid,
	})
	require.NoError(t, err)

	updated, _ := store.FindPayments(context.Background(), PaymentFilter{IDs: []uint{p.ID}})
	assert.Equal(t, models.PaymentStatusPaid, updated[0].Status, "applied status changes are not rolled back")
}

func TestDeletePayments(t *testing.T) {
	store := newMemStore()
	svc := newPaymentService(store)
	ctx := context.Background()

	p := seedPayment(t, store, 1, models.PaymentTypeRent, models.PaymentStatusPending, 500, date(2024, time.June, 1))

	require.NoError(t, svc.DeletePayments(ctx, []uint{p.ID}))
	remaining, err := store.FindPayments(ctx, PaymentFilter{LeaseID: 1})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, svc.DeletePayments(ctx, nil), ErrEmptySelection)
}
