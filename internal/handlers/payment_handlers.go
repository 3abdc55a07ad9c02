package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"rentdesk_app_echo/internal/models"
	"rentdesk_app_echo/internal/services"
)

type PaymentHandler struct {
	db       *gorm.DB
	payments *services.PaymentService
	stats    *services.StatsService
}

func NewPaymentHandler(db *gorm.DB, payments *services.PaymentService, stats *services.StatsService) *PaymentHandler {
	return &PaymentHandler{db: db, payments: payments, stats: stats}
}

// ListLeasePayments returns a lease's payments, each with its freshly
// classified effective status alongside the persisted one.
func (h *PaymentHandler) ListLeasePayments(c echo.Context) error {
	leaseID, err := parseLeaseID(c)
	if err != nil {
		return err
	}

	var lease models.Lease
	if err := h.db.First(&lease, leaseID).Error; err != nil {
		return err
	}

	var payments []models.Payment
	if err := h.db.Where("lease_id = ?", leaseID).Order("due_date asc").Find(&payments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch payments")
	}

	now := time.Now()
	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, PaymentView{
			Payment:         p,
			EffectiveStatus: services.ClassifyPayment(p.DueDate, p.PaymentDate, lease.Grace(), now),
		})
	}
	return c.JSON(http.StatusOK, views)
}

// GetLeaseStats serves the reporting aggregates for one lease.
func (h *PaymentHandler) GetLeaseStats(c echo.Context) error {
	leaseID, err := parseLeaseID(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.GetLeasePaymentStats(c.Request().Context(), leaseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// RefreshLeaseStatuses rewrites payments whose persisted status drifted from
// what the classifier derives today.
func (h *PaymentHandler) RefreshLeaseStatuses(c echo.Context) error {
	leaseID, err := parseLeaseID(c)
	if err != nil {
		return err
	}

	refreshed, err := h.stats.RefreshLeaseStatuses(c.Request().Context(), leaseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"refreshed_count": refreshed})
}

// BulkUpdatePayments applies one status change across a batch of payments,
// with per-item audit tracking and commission recording on qualifying
// transitions.
func (h *PaymentHandler) BulkUpdatePayments(c echo.Context) error {
	var req BulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.payments.UpdateBulkPayments(c.Request().Context(), services.BulkUpdateInput{
		PaymentIDs:  req.PaymentIDs,
		Status:      req.Status,
		Notes:       req.Notes,
		ProcessedBy: req.ProcessedBy,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// BulkDeletePayments is the administrative escape hatch.
func (h *PaymentHandler) BulkDeletePayments(c echo.Context) error {
	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.payments.DeletePayments(c.Request().Context(), req.PaymentIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
