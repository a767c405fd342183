package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
)

// attendanceHandler handles HTTP requests related to attendance tracking.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newAttendanceHandler(as portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: as}
}

// registerAttendanceRoutes registers routes related to attendance.
func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendance := rg.Group("/attendance")
	{
		attendance.POST("/clock-in", h.clockIn)
		attendance.POST("/clock-out", h.clockOut)
		attendance.POST("/mark", h.markAttendance)
		attendance.GET("", h.listAttendance)
	}
}

// clockIn godoc
// @Summary Clock in
// @Description Opens today's attendance record for an employee. A second clock-in the same day is a conflict.
// @Tags attendance
// @Accept json
// @Produce json
// @Param clockIn body dto.ClockInRequest true "Employee"
// @Success 201 {object} dto.AttendanceRecordResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 409 {object} map[string]string "Already clocked in today"
// @Failure 422 {object} map[string]string "Employee has exited"
// @Security BearerAuth
// @Router /attendance/clock-in [post]
func (h *attendanceHandler) clockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for clockIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockIn(c.Request.Context(), req.EmployeeID, userID)
	if err != nil {
		respondError(c, err, "Failed to clock in")
		return
	}

	logger.Info("Employee clocked in", slog.String("employee_id", req.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToAttendanceRecordResponse(record))
}

// clockOut godoc
// @Summary Clock out
// @Description Closes the open attendance record and derives worked hours and day status
// @Tags attendance
// @Accept json
// @Produce json
// @Param clockOut body dto.ClockOutRequest true "Employee"
// @Success 200 {object} dto.AttendanceRecordResponse
// @Failure 404 {object} map[string]string "No open record today"
// @Security BearerAuth
// @Router /attendance/clock-out [post]
func (h *attendanceHandler) clockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for clockOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockOut(c.Request.Context(), req.EmployeeID, userID)
	if err != nil {
		respondError(c, err, "Failed to clock out")
		return
	}

	logger.Info("Employee clocked out",
		slog.String("employee_id", req.EmployeeID),
		slog.String("hours", record.Hours.String()))
	c.JSON(http.StatusOK, dto.ToAttendanceRecordResponse(record))
}

// markAttendance godoc
// @Summary Mark attendance administratively
// @Description Records a day's status (absence, leave, holiday) without clock times
// @Tags attendance
// @Accept json
// @Produce json
// @Param mark body dto.MarkAttendanceRequest true "Day and status"
// @Success 201 {object} dto.AttendanceRecordResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 409 {object} map[string]string "Day already recorded"
// @Security BearerAuth
// @Router /attendance/mark [post]
func (h *attendanceHandler) markAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for markAttendance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.MarkAttendance(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to mark attendance")
		return
	}

	logger.Info("Attendance marked",
		slog.String("employee_id", req.EmployeeID),
		slog.String("status", string(req.Status)))
	c.JSON(http.StatusCreated, dto.ToAttendanceRecordResponse(record))
}

// listAttendance godoc
// @Summary List attendance records
// @Description Retrieves an employee's attendance in a date range
// @Tags attendance
// @Produce json
// @Param employeeID query string true "Employee ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Failure 400 {object} map[string]string "Missing employee ID"
// @Security BearerAuth
// @Router /attendance [get]
func (h *attendanceHandler) listAttendance(c *gin.Context) {
	var params dto.ListAttendanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.attendanceService.ListAttendance(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list attendance records")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceRecordResponses(records))
}
