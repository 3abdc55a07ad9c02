package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentdesk_app_echo/internal/models"
)

// insertBatchSize bounds how many rows a single insert statement carries.
const insertBatchSize = 50

// GormStore implements PaymentStore on top of GORM/Postgres.
type GormStore struct {
	db          *gorm.DB
	defaultRate decimal.Decimal
}

// NewGormStore wraps a database handle. defaultRate is the flat commission
// rate applied when a property has no rate configured.
func NewGormStore(db *gorm.DB, defaultRate decimal.Decimal) *GormStore {
	return &GormStore{db: db, defaultRate: defaultRate}
}

func (s *GormStore) FindPayments(ctx context.Context, filter PaymentFilter) ([]models.Payment, error) {
	query := s.db.WithContext(ctx).Model(&models.Payment{})

	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.LeaseID > 0 {
		query = query.Where("lease_id = ?", filter.LeaseID)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.DueDate != nil {
		query = query.Where("due_date = ?", calendarDate(*filter.DueDate))
	}

	var payments []models.Payment
	if err := query.Order("due_date asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *GormStore) InsertPayments(ctx context.Context, rows []models.Payment) ([]models.Payment, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) UpdatePayments(ctx context.Context, ids []uint, patch PaymentPatch) error {
	if len(ids) == 0 {
		return nil
	}

	values := map[string]interface{}{}
	if patch.Status != nil {
		values["status"] = *patch.Status
	}
	if patch.PaymentDateFromDue {
		values["payment_date"] = gorm.Expr("due_date")
	} else if patch.PaymentDate != nil {
		values["payment_date"] = *patch.PaymentDate
	}
	if patch.Notes != nil {
		values["notes"] = *patch.Notes
	}
	if patch.ProcessedBy != nil {
		values["processed_by"] = *patch.ProcessedBy
	}
	if len(values) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id IN ?", ids).
		Updates(values).Error
}

func (s *GormStore) DeletePayments(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.Payment{}, ids).Error
}

func (s *GormStore) InsertCommission(ctx context.Context, draft models.Commission) (models.Commission, error) {
	if err := s.db.WithContext(ctx).Create(&draft).Error; err != nil {
		return models.Commission{}, err
	}
	return draft, nil
}

func (s *GormStore) FindCommission(ctx context.Context, paymentID uint) (*models.Commission, error) {
	var commission models.Commission
	err := s.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&commission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commission, nil
}

// GetCommissionRate resolves the commission rate for a lease's property,
// falling back to the flat default when the lease or property has none
// configured. Rate changes are prospective only; recorded commissions keep
// the rate they were computed with.
func (s *GormStore) GetCommissionRate(ctx context.Context, leaseID uint) (decimal.Decimal, error) {
	var lease models.Lease
	err := s.db.WithContext(ctx).Preload("Property").First(&lease, leaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultRate, nil
		}
		return decimal.Zero, err
	}

	if lease.Property.CommissionRate.IsPositive() {
		return lease.Property.CommissionRate, nil
	}
	return s.defaultRate, nil
}

func (s *GormStore) InsertBulkUpdateRecord(ctx context.Context, draft models.BulkUpdateRecord) (models.BulkUpdateRecord, error) {
	if err := s.db.WithContext(ctx).Create(&draft).Error; err != nil {
		return models.BulkUpdateRecord{}, err
	}
	return draft, nil
}

func (s *GormStore) InsertBulkUpdateItems(ctx context.Context, rows []models.BulkUpdateItem) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error
}
