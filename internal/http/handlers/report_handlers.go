package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/http/middleware"
	"github.com/CamiloBytes/reportesvc/internal/services"
)

// ReportHandlers handles report intake and triage HTTP requests
type ReportHandlers struct {
	reportSvc    domain.ReportService
	dashboardSvc *services.DashboardService
	reportRepo   domain.ReportRepository
	barrioRepo   domain.BarrioRepository
}

// NewReportHandlers creates new report handlers
func NewReportHandlers(
	reportSvc domain.ReportService,
	dashboardSvc *services.DashboardService,
	reportRepo domain.ReportRepository,
	barrioRepo domain.BarrioRepository,
) *ReportHandlers {
	return &ReportHandlers{
		reportSvc:    reportSvc,
		dashboardSvc: dashboardSvc,
		reportRepo:   reportRepo,
		barrioRepo:   barrioRepo,
	}
}

// SubmitRequest represents a report intake request
type SubmitRequest struct {
	CCUser       string `json:"ccUser" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Barrio       string `json:"barrio" binding:"required"`
	DamageType   string `json:"damageType"`
	Priority     string `json:"priority"`
	ContactPhone string `json:"contactPhone"`
}

// StatusRequest represents a status change request
type StatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// Submit handles report intake
func (h *ReportHandlers) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, damage, err := h.reportSvc.Submit(c.Request.Context(), domain.ReportIntake{
		CCUser:       req.CCUser,
		Address:      req.Address,
		Description:  req.Description,
		Barrio:       req.Barrio,
		DamageType:   req.DamageType,
		Priority:     req.Priority,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicatePending):
			c.JSON(http.StatusConflict, gin.H{"error": "A pending report already exists for this citizen"})
		case errors.Is(err, domain.ErrPartialUpdate):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Report stored incompletely, reconciliation required"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"report": report,
			"damage": damage,
		},
	})
}

// List handles listing reports, optionally filtered by citizen id
func (h *ReportHandlers) List(c *gin.Context) {
	ccUser := c.Query("ccUser")

	var (
		reports []domain.Report
		err     error
	)
	if ccUser != "" {
		reports, err = h.reportRepo.ListReportsByCC(c.Request.Context(), ccUser)
	} else {
		reports, err = h.reportRepo.ListReports(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// Get handles fetching one report
func (h *ReportHandlers) Get(c *gin.Context) {
	report, err := h.reportRepo.FindReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

// Advance handles moving a report to the next lifecycle state
func (h *ReportHandlers) Advance(c *gin.Context) {
	h.changeStatus(c, h.reportSvc.Advance)
}

// SetStatus handles setting a report's state directly
func (h *ReportHandlers) SetStatus(c *gin.Context) {
	h.changeStatus(c, h.reportSvc.SetStatus)
}

// Reconcile handles repairing a diverged report/damage pair
func (h *ReportHandlers) Reconcile(c *gin.Context) {
	report, damage, err := h.reportSvc.Reconcile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"report": report,
			"damage": damage,
		},
	})
}

// PatchDamageStatus handles the map view's status-only damage update
func (h *ReportHandlers) PatchDamageStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	damage, err := h.reportRepo.PatchDamageStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Damage record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update damage status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": damage})
}

// ListDamage handles listing the map projection
func (h *ReportHandlers) ListDamage(c *gin.Context) {
	damage, err := h.reportRepo.ListDamage(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list damage records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": damage})
}

// ListBarrios handles listing the intake form's neighborhoods
func (h *ReportHandlers) ListBarrios(c *gin.Context) {
	barrios, err := h.barrioRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list barrios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": barrios})
}

// Dashboard handles the triage view. It refreshes on demand; when a
// refresh is already in flight the previous snapshot is served instead of
// queueing a duplicate load.
func (h *ReportHandlers) Dashboard(c *gin.Context) {
	snap, err := h.dashboardSvc.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRefreshInFlight) {
			if stale := h.dashboardSvc.Snapshot(); stale != nil {
				c.JSON(http.StatusOK, gin.H{"data": dashboardBody(stale), "stale": true})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dashboard is loading, retry shortly"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dashboardBody(snap)})
}

func dashboardBody(snap *services.DashboardSnapshot) gin.H {
	return gin.H{
		"reports":   snap.Reports,
		"damage":    snap.Damage,
		"barrios":   snap.Barrios,
		"loaded_at": snap.LoadedAt,
	}
}

// changeStatus is the shared advance/set-status request path.
func (h *ReportHandlers) changeStatus(c *gin.Context, apply func(ctx context.Context, sess *domain.Session, id string, target domain.Status) (*domain.Report, error)) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.SessionFromGin(c)
	report, err := apply(c.Request.Context(), sess, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPartialUpdate):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update incomplete, reconciliation required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Status change failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
