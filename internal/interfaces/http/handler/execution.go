package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	executionapp "github.com/mecanica/backend/internal/application/execution"
)

// ExecutionHandler handles service execution API endpoints
type ExecutionHandler struct {
	BaseHandler
	executionService *executionapp.ServiceExecutionService
}

// NewExecutionHandler creates a new ExecutionHandler
func NewExecutionHandler(executionService *executionapp.ServiceExecutionService) *ExecutionHandler {
	return &ExecutionHandler{
		executionService: executionService,
	}
}

// RegisterRoutes registers service execution routes
func (h *ExecutionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	executions := rg.Group("/service-executions")
	{
		executions.POST("", h.Create)
		executions.GET("", h.List)
		executions.GET("/:id", h.GetByID)
		executions.POST("/:id/assign-mechanic", h.AssignMechanic)
		executions.POST("/:id/start", h.Start)
		executions.POST("/:id/complete", h.Complete)
	}
}

// StatusChangeRequest identifies who is moving an execution forward
type StatusChangeRequest struct {
	ChangedBy uuid.UUID `json:"changed_by" binding:"required"`
}

// Create opens a service execution for an order
func (h *ExecutionHandler) Create(c *gin.Context) {
	var req executionapp.CreateExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.executionService.CreateForOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single service execution
func (h *ExecutionHandler) GetByID(c *gin.Context) {
	executionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service execution ID format")
		return
	}

	resp, err := h.executionService.GetByID(c.Request.Context(), executionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns executions filtered by service order or mechanic
func (h *ExecutionHandler) List(c *gin.Context) {
	if orderIDStr := c.Query("service_order_id"); orderIDStr != "" {
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid service order ID format")
			return
		}
		resp, err := h.executionService.GetByServiceOrderID(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	if mechanicIDStr := c.Query("mechanic_id"); mechanicIDStr != "" {
		mechanicID, err := uuid.Parse(mechanicIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid mechanic ID format")
			return
		}
		listReq, err := bindListRequest(c)
		if err != nil {
			h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
			return
		}
		resp, err := h.executionService.ListByMechanic(c.Request.Context(), mechanicID, listReq.ToFilter())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	h.BadRequest(c, "Either service_order_id or mechanic_id query parameter is required")
}

// AssignMechanic assigns a mechanic to a pending execution
func (h *ExecutionHandler) AssignMechanic(c *gin.Context) {
	executionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service execution ID format")
		return
	}

	var req executionapp.AssignMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.executionService.AssignMechanic(c.Request.Context(), executionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Start marks an execution as in progress
func (h *ExecutionHandler) Start(c *gin.Context) {
	h.changeStatus(c, h.executionService.Start)
}

// Complete marks an execution as completed
func (h *ExecutionHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.executionService.Complete)
}

func (h *ExecutionHandler) changeStatus(c *gin.Context, op func(ctx context.Context, executionID, changedBy uuid.UUID) (*executionapp.ServiceExecutionResponse, error)) {
	executionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service execution ID format")
		return
	}

	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := op(c.Request.Context(), executionID, req.ChangedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
