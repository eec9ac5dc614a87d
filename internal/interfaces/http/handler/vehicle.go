package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/mecanica/backend/internal/application/partner"
)

// VehicleHandler handles vehicle API endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *partnerapp.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *partnerapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// RegisterRoutes registers vehicle routes
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.Create)
		vehicles.GET("/:id", h.GetByID)
	}
}

// Create registers a new vehicle for a client
func (h *VehicleHandler) Create(c *gin.Context) {
	var req partnerapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.vehicleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single vehicle
func (h *VehicleHandler) GetByID(c *gin.Context) {
	vehicleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID format")
		return
	}

	resp, err := h.vehicleService.GetByID(c.Request.Context(), vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
