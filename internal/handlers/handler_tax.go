package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
)

// taxHandler handles HTTP requests for GST returns, TDS and the tax registry.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{taxService: ts}
}

// registerTaxRoutes registers routes related to taxation.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	gst := rg.Group("/gst")
	{
		gst.GET("/gstr1", h.generateGSTR1)
		gst.GET("/gstr3b", h.generateGSTR3B)
	}

	tds := rg.Group("/tds")
	{
		tds.POST("", h.recordTDSPayment)
		tds.GET("", h.listTDSRecords)
	}

	rates := rg.Group("/tax-rates")
	{
		rates.POST("", h.createTaxRate)
		rates.GET("", h.listTaxRates)
		rates.PUT("/:id", h.updateTaxRate)
		rates.DELETE("/:id", h.deactivateTaxRate)
	}
}

// generateGSTR1 godoc
// @Summary Generate the GSTR-1 outward supply return
// @Description Buckets the period's invoices into B2B, B2CL and B2CS sections
// @Tags gst
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.GSTR1Response
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /gst/gstr1 [get]
func (h *taxHandler) generateGSTR1(c *gin.Context) {
	var params dto.GSTRPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.taxService.GenerateGSTR1(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		respondError(c, err, "Failed to generate GSTR-1")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generateGSTR3B godoc
// @Summary Generate the GSTR-3B summary return
// @Description Nets output tax against input tax credit from approved expenses
// @Tags gst
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.GSTR3BResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /gst/gstr3b [get]
func (h *taxHandler) generateGSTR3B(c *gin.Context) {
	var params dto.GSTRPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.taxService.GenerateGSTR3B(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		respondError(c, err, "Failed to generate GSTR-3B")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// recordTDSPayment godoc
// @Summary Record a TDS deduction
// @Description Computes the deduction from amount and rate and persists the record in pending status
// @Tags tds
// @Accept json
// @Produce json
// @Param payment body dto.CreateTDSPaymentRequest true "Deduction details"
// @Success 201 {object} dto.TDSRecordResponse
// @Failure 400 {object} map[string]string "Invalid amount or rate"
// @Security BearerAuth
// @Router /tds [post]
func (h *taxHandler) recordTDSPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTDSPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordTDSPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.taxService.RecordTDSPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to record TDS payment")
		return
	}

	logger.Info("TDS payment recorded", slog.String("tds_record_id", record.TDSRecordID))
	c.JSON(http.StatusCreated, dto.ToTDSRecordResponse(record))
}

// listTDSRecords godoc
// @Summary List TDS records
// @Tags tds
// @Produce json
// @Success 200 {array} dto.TDSRecordResponse
// @Security BearerAuth
// @Router /tds [get]
func (h *taxHandler) listTDSRecords(c *gin.Context) {
	records, err := h.taxService.ListTDSRecords(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list TDS records")
		return
	}
	c.JSON(http.StatusOK, dto.ToTDSRecordResponses(records))
}

// createTaxRate godoc
// @Summary Add a tax rate to the registry
// @Tags tax-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateTaxRateRequest true "Rate details"
// @Success 201 {object} dto.TaxRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rate name already exists"
// @Security BearerAuth
// @Router /tax-rates [post]
func (h *taxHandler) createTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTaxRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.taxService.CreateTaxRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create tax rate")
		return
	}

	logger.Info("Tax rate created", slog.String("tax_rate_id", rate.TaxRateID))
	c.JSON(http.StatusCreated, dto.ToTaxRateResponse(rate))
}

// listTaxRates godoc
// @Summary List registry tax rates
// @Tags tax-rates
// @Produce json
// @Success 200 {array} dto.TaxRateResponse
// @Security BearerAuth
// @Router /tax-rates [get]
func (h *taxHandler) listTaxRates(c *gin.Context) {
	rates, err := h.taxService.ListTaxRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list tax rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxRateResponses(rates))
}

// updateTaxRate godoc
// @Summary Update a registry tax rate
// @Tags tax-rates
// @Accept json
// @Produce json
// @Param id path string true "Tax rate ID"
// @Param rate body dto.UpdateTaxRateRequest true "Fields to update"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Security BearerAuth
// @Router /tax-rates/{id} [put]
func (h *taxHandler) updateTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTaxRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.taxService.UpdateTaxRate(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update tax rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxRateResponse(rate))
}

// deactivateTaxRate godoc
// @Summary Deactivate a registry tax rate
// @Tags tax-rates
// @Param id path string true "Tax rate ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Security BearerAuth
// @Router /tax-rates/{id} [delete]
func (h *taxHandler) deactivateTaxRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.taxService.DeactivateTaxRate(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate tax rate")
		return
	}
	c.Status(http.StatusNoContent)
}
