package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
)

// employeeHandler handles HTTP requests related to the employee lifecycle.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers routes related to employees.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
		employees.PUT("/:id/status", h.transitionEmployee)
		employees.PUT("/:id/onboarding/tasks/:taskID", h.completeOnboardingTask)
		employees.POST("/:id/onboarding/complete", h.completeOnboarding)
		employees.POST("/:id/offboard", h.offboardEmployee)
	}
}

// createEmployee godoc
// @Summary Hire an employee
// @Description Creates an employee in Onboarding status with a seeded checklist
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown manager"
// @Failure 409 {object} map[string]string "Email already exists"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param department query string false "Filter by department"
// @Param search query string false "Substring match on name or email"
// @Success 200 {array} dto.EmployeeResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee
// @Description Updates mutable employee fields. Lifecycle status moves only through the transition and offboard endpoints.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// transitionEmployee godoc
// @Summary Transition an employee's lifecycle status
// @Description Moves an employee along an allowed lifecycle edge. Terminal statuses are reached only through offboarding.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param transition body dto.TransitionEmployeeRequest true "Target status"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /employees/{id}/status [put]
func (h *employeeHandler) transitionEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transitionEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.TransitionEmployee(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to transition employee")
		return
	}

	logger.Info("Employee transitioned",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("status", string(employee.Status)))
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// completeOnboardingTask godoc
// @Summary Mark or revert an onboarding checklist task
// @Description Completing the last task stamps the checklist done; reverting a task clears the stamp.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param taskID path string true "Checklist task ID"
// @Param task body dto.CompleteOnboardingTaskRequest false "Desired state (defaults to done)"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee or task not found"
// @Failure 422 {object} map[string]string "Employee is not onboarding"
// @Security BearerAuth
// @Router /employees/{id}/onboarding/tasks/{taskID} [put]
func (h *employeeHandler) completeOnboardingTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CompleteOnboardingTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for completeOnboardingTask", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	done := true
	if req.Done != nil {
		done = *req.Done
	}

	employee, err := h.employeeService.CompleteOnboardingTask(c.Request.Context(), c.Param("id"), c.Param("taskID"), done, userID)
	if err != nil {
		respondError(c, err, "Failed to update onboarding task")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// completeOnboarding godoc
// @Summary Complete onboarding in one step
// @Description Force-marks every checklist task done, stamps the checklist complete and activates the employee, even with tasks still open.
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 422 {object} map[string]string "Employee is not onboarding"
// @Security BearerAuth
// @Router /employees/{id}/onboarding/complete [post]
func (h *employeeHandler) completeOnboarding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.CompleteOnboarding(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to complete onboarding")
		return
	}

	logger.Info("Onboarding completed", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// offboardEmployee godoc
// @Summary Offboard an employee
// @Description Records an exit and moves the employee to a terminal status. This is the only path into Resigned or Terminated.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param exit body dto.OffboardEmployeeRequest true "Exit details"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 409 {object} map[string]string "Employee already offboarded"
// @Failure 422 {object} map[string]string "Exit not allowed from current status"
// @Security BearerAuth
// @Router /employees/{id}/offboard [post]
func (h *employeeHandler) offboardEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OffboardEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for offboardEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.OffboardEmployee(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to offboard employee")
		return
	}

	logger.Info("Employee offboarded",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("status", string(employee.Status)))
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
