package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
)

// payrollHandler handles HTTP requests related to payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers routes related to payroll.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/generate", h.generatePayroll)
		payroll.GET("", h.listPayroll)
		payroll.GET("/:id", h.getPayroll)
		payroll.POST("/:id/process", h.processPayroll)
	}
}

// generatePayroll godoc
// @Summary Generate payroll for a period
// @Description Creates pending records for the named employees, or for every eligible employee when none are named. Employees already covered for the period are skipped, so reruns are safe.
// @Tags payroll
// @Accept json
// @Produce json
// @Param period body dto.GeneratePayrollRequest true "Payroll period"
// @Success 200 {object} dto.GeneratePayrollResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /payroll/generate [post]
func (h *payrollHandler) generatePayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for generatePayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.payrollService.GeneratePayroll(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to generate payroll")
		return
	}

	logger.Info("Payroll generated",
		slog.Int("month", req.Month),
		slog.Int("year", req.Year),
		slog.Int("generated", resp.Generated),
		slog.Int("skipped", resp.Skipped))
	c.JSON(http.StatusOK, resp)
}

// listPayroll godoc
// @Summary List payroll records
// @Tags payroll
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param employeeID query string false "Filter by employee"
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.PayrollRecordResponse
// @Security BearerAuth
// @Router /payroll [get]
func (h *payrollHandler) listPayroll(c *gin.Context) {
	var params dto.ListPayrollParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.payrollService.ListPayroll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list payroll records")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponses(records))
}

// getPayroll godoc
// @Summary Get a payroll record by ID
// @Tags payroll
// @Produce json
// @Param id path string true "Payroll record ID"
// @Success 200 {object} dto.PayrollRecordResponse
// @Failure 404 {object} map[string]string "Payroll record not found"
// @Security BearerAuth
// @Router /payroll/{id} [get]
func (h *payrollHandler) getPayroll(c *gin.Context) {
	record, err := h.payrollService.GetPayrollByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve payroll record")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}

// processPayroll godoc
// @Summary Process a payroll record
// @Description Marks a pending record paid. Processing a paid record again is a no-op.
// @Tags payroll
// @Produce json
// @Param id path string true "Payroll record ID"
// @Success 200 {object} dto.PayrollRecordResponse
// @Failure 404 {object} map[string]string "Payroll record not found"
// @Security BearerAuth
// @Router /payroll/{id}/process [post]
func (h *payrollHandler) processPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.payrollService.ProcessPayroll(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to process payroll record")
		return
	}

	logger.Info("Payroll record processed", slog.String("payroll_id", record.PayrollID))
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}
