package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	budgetapp "github.com/mecanica/backend/internal/application/budget"
	"github.com/mecanica/backend/internal/domain/budget"
)

// BudgetHandler handles budget API endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *budgetapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *budgetapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.Generate)
		budgets.GET("", h.List)
		budgets.GET("/:id", h.GetByID)
		budgets.POST("/:id/send", h.Send)
		budgets.POST("/:id/mark-received", h.MarkAsReceived)
		budgets.POST("/:id/approve", h.Approve)
		budgets.POST("/:id/reject", h.Reject)
	}
}

// Generate creates a budget for a service order
func (h *BudgetHandler) Generate(c *gin.Context) {
	var req budgetapp.GenerateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.budgetService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single budget with its line items
func (h *BudgetHandler) GetByID(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	resp, err := h.budgetService.GetByID(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns budgets filtered by service order or status
func (h *BudgetHandler) List(c *gin.Context) {
	if orderIDStr := c.Query("service_order_id"); orderIDStr != "" {
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid service order ID format")
			return
		}
		resp, err := h.budgetService.GetByServiceOrderID(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	if statusStr := c.Query("status"); statusStr != "" {
		listReq, err := bindListRequest(c)
		if err != nil {
			h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
			return
		}
		resp, err := h.budgetService.ListByStatus(c.Request.Context(), budget.Status(statusStr), listReq.ToFilter())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	h.BadRequest(c, "Either service_order_id or status query parameter is required")
}

// Send marks a budget as sent to the client
func (h *BudgetHandler) Send(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	resp, err := h.budgetService.Send(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkAsReceived records the client's acknowledgement of a sent budget
func (h *BudgetHandler) MarkAsReceived(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	resp, err := h.budgetService.MarkAsReceived(c.Request.Context(), budgetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Approve records the client's approval of a budget
func (h *BudgetHandler) Approve(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req budgetapp.ApproveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.budgetService.Approve(c.Request.Context(), budgetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject records the client's rejection of a budget
func (h *BudgetHandler) Reject(c *gin.Context) {
	budgetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req budgetapp.RejectBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.budgetService.Reject(c.Request.Context(), budgetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
