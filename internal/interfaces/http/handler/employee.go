package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/mecanica/backend/internal/application/partner"
)

// EmployeeHandler handles employee API endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *partnerapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *partnerapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// RegisterRoutes registers employee routes
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.POST("", h.Create)
		employees.GET("", h.List)
		employees.GET("/:id", h.GetByID)
	}
}

// Create registers a new employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req partnerapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single employee
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	employeeID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return
	}

	resp, err := h.employeeService.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns employees, optionally filtered by role via the role query parameter
func (h *EmployeeHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	filter := listReq.ToFilter()
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	resp, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
