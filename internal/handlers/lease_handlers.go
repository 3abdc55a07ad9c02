package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"rentdesk_app_echo/internal/models"
	"rentdesk_app_echo/internal/services"
)

type LeaseHandler struct {
	db        *gorm.DB
	schedules *services.ScheduleService
}

func NewLeaseHandler(db *gorm.DB, schedules *services.ScheduleService) *LeaseHandler {
	return &LeaseHandler{db: db, schedules: schedules}
}

// CreateLease stores a lease and runs the generation workflow: initial
// obligations first, then either the recurring schedule or — when the lease
// started in the past — a historical backfill up to today.
func (h *LeaseHandler) CreateLease(c echo.Context) error {
	var req CreateLeaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if endDate.Before(startDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "end date is before start date")
	}
	if !req.MonthlyRent.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "monthly rent must be greater than zero")
	}

	lease := models.Lease{
		PropertyID:       req.PropertyID,
		TenantID:         req.TenantID,
		StartDate:        startDate,
		EndDate:          endDate,
		MonthlyRent:      req.MonthlyRent,
		PaymentFrequency: req.PaymentFrequency,
		SecurityDeposit:  req.SecurityDeposit,
		AgencyFee:        req.AgencyFee,
		GracePeriodDays:  req.GracePeriodDays,
		Status:           models.LeaseStatusActive,
	}
	if err := h.db.Create(&lease).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create lease")
	}

	ctx := c.Request().Context()

	initial, err := h.schedules.GenerateInitialObligations(ctx, lease)
	if err != nil {
		return err
	}

	var created []models.Payment
	paidCount := 0
	if startDate.Before(time.Now().Truncate(24 * time.Hour)) {
		created, paidCount, err = h.schedules.GenerateHistoricalPayments(ctx, lease.ID, lease.MonthlyRent, startDate, lease.PaymentFrequency)
	} else {
		created, err = h.schedules.GenerateSchedule(ctx, lease.ID, startDate, endDate, lease.MonthlyRent, lease.PaymentFrequency, models.PaymentTypeRent)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateLeaseResponse{
		Lease:            lease,
		PaymentsCreated:  len(initial) + len(created),
		BackfilledAsPaid: paidCount,
	})
}

// GetLease returns one lease with its property, tenant and payments.
func (h *LeaseHandler) GetLease(c echo.Context) error {
	leaseID, err := parseLeaseID(c)
	if err != nil {
		return err
	}

	var lease models.Lease
	if err := h.db.Preload("Property").Preload("Tenant").Preload("Payments").First(&lease, leaseID).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lease)
}

// GeneratePayments runs explicit schedule generation for a lease. Repeating
// the call with the same range is safe; only genuinely new due dates are
// created.
func (h *LeaseHandler) GeneratePayments(c echo.Context) error {
	leaseID, err := parseLeaseID(c)
	if err != nil {
		return err
	}

	var req GenerateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeRent
	}

	created, err := h.schedules.GenerateSchedule(c.Request().Context(), leaseID, startDate, endDate, req.Amount, req.Frequency, paymentType)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"created_count": len(created),
		"payments":      created,
	})
}

func parseLeaseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid lease id")
	}
	return uint(id), nil
}
