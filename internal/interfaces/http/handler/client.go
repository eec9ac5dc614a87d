package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/mecanica/backend/internal/application/partner"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService  *partnerapp.ClientService
	vehicleService *partnerapp.VehicleService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService, vehicleService *partnerapp.VehicleService) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		vehicleService: vehicleService,
	}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.GET("/:id/vehicles", h.ListVehicles)
	}
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single client
func (h *ClientHandler) GetByID(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	resp, err := h.clientService.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns clients with optional search
func (h *ClientHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	resp, err := h.clientService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListVehicles returns the vehicles registered to a client
func (h *ClientHandler) ListVehicles(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	resp, err := h.vehicleService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
