package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	workorderapp "github.com/mecanica/backend/internal/application/workorder"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// ServiceOrderHandler handles service order API endpoints
type ServiceOrderHandler struct {
	BaseHandler
	orderService *workorderapp.ServiceOrderService
}

// NewServiceOrderHandler creates a new ServiceOrderHandler
func NewServiceOrderHandler(orderService *workorderapp.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers service order routes
func (h *ServiceOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/service-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/receive", h.Receive)
		orders.POST("/:id/start-diagnosis", h.StartDiagnosis)
		orders.POST("/:id/submit-for-approval", h.SubmitForApproval)
		orders.POST("/:id/approve", h.Approve)
		orders.POST("/:id/reject", h.Reject)
		orders.POST("/:id/schedule", h.Schedule)
		orders.POST("/:id/start-execution", h.StartExecution)
		orders.POST("/:id/finish", h.Finish)
		orders.POST("/:id/deliver", h.Deliver)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// Create opens a new service order
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var req workorderapp.CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns a single service order
func (h *ServiceOrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns service orders filtered by client or status
func (h *ServiceOrderHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}
	filter := listReq.ToFilter()

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid client ID format")
			return
		}
		orders, err := h.orderService.ListByClient(c.Request.Context(), clientID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, orders)
		return
	}

	if statusStr := c.Query("status"); statusStr != "" {
		orders, err := h.orderService.ListByStatus(c.Request.Context(), workorder.OrderStatus(statusStr), filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, orders)
		return
	}

	h.BadRequest(c, "Either client_id or status query parameter is required")
}

// Receive marks a vehicle as physically received at the workshop
func (h *ServiceOrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.orderService.Receive)
}

// StartDiagnosis moves an order into diagnosis
func (h *ServiceOrderHandler) StartDiagnosis(c *gin.Context) {
	h.transition(c, h.orderService.StartDiagnosis)
}

// SubmitForApproval moves an order into the approval stage
func (h *ServiceOrderHandler) SubmitForApproval(c *gin.Context) {
	h.transition(c, h.orderService.SubmitForApproval)
}

// Approve records an approval decision on an order
func (h *ServiceOrderHandler) Approve(c *gin.Context) {
	h.decide(c, h.orderService.Approve)
}

// Reject records a rejection decision on an order
func (h *ServiceOrderHandler) Reject(c *gin.Context) {
	h.decide(c, h.orderService.Reject)
}

// Schedule moves an approved order into the scheduled stage
func (h *ServiceOrderHandler) Schedule(c *gin.Context) {
	h.transition(c, h.orderService.Schedule)
}

// StartExecution marks the repair work as started
func (h *ServiceOrderHandler) StartExecution(c *gin.Context) {
	h.transition(c, h.orderService.StartExecution)
}

// Finish marks the repair work as finished
func (h *ServiceOrderHandler) Finish(c *gin.Context) {
	h.transition(c, h.orderService.Finish)
}

// Deliver marks the vehicle as returned to the client
func (h *ServiceOrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orderService.Deliver)
}

// Cancel cancels an order with a reason
func (h *ServiceOrderHandler) Cancel(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service order ID format")
		return
	}

	var req workorderapp.CancelServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// transition runs a body-less lifecycle operation against the :id order.
func (h *ServiceOrderHandler) transition(c *gin.Context, op func(ctx context.Context, orderID uuid.UUID) (*workorderapp.ServiceOrderResponse, error)) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service order ID format")
		return
	}

	order, err := op(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// decide runs an approval-decision operation against the :id order.
func (h *ServiceOrderHandler) decide(c *gin.Context, op func(ctx context.Context, orderID uuid.UUID, req workorderapp.ApprovalDecisionRequest) (*workorderapp.ServiceOrderResponse, error)) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service order ID format")
		return
	}

	var req workorderapp.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := op(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
