package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/mecanica/backend/internal/application/inventory"
)

// InventoryHandler handles stock item and movement API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock-items")
	{
		stock.POST("", h.Create)
		stock.GET("", h.List)
		stock.GET("/below-minimum", h.ListBelowMinimum)
		stock.GET("/:id", h.GetByID)
		stock.GET("/:id/movements", h.ListMovements)
		stock.POST("/decrease", h.Decrease)
		stock.POST("/increase", h.Increase)
		stock.POST("/adjust", h.Adjust)
	}
}

// Create registers a new stock item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.inventoryService.CreateStockItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single stock item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	resp, err := h.inventoryService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns stock items with optional search
func (h *InventoryHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	resp, err := h.inventoryService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListBelowMinimum returns stock items under their alert threshold
func (h *InventoryHandler) ListBelowMinimum(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	resp, err := h.inventoryService.ListBelowMinimum(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMovements returns the movement history of a stock item
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	resp, err := h.inventoryService.ListMovements(c.Request.Context(), itemID, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Decrease records an outbound stock movement
func (h *InventoryHandler) Decrease(c *gin.Context) {
	var req inventoryapp.DecreaseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.inventoryService.DecreaseStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Increase records an inbound stock movement
func (h *InventoryHandler) Increase(c *gin.Context) {
	var req inventoryapp.IncreaseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.inventoryService.IncreaseStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Adjust sets the stock level to a counted quantity
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.inventoryService.AdjustStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
