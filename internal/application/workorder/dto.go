package workorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/workorder"
)

// ServiceOrderResponse is the outward representation of a service order
type ServiceOrderResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Status             workorder.OrderStatus `json:"status"`
	RequestDate        time.Time             `json:"request_date"`
	DeliveryDate       *time.Time            `json:"delivery_date,omitempty"`
	CancellationReason string                `json:"cancellation_reason,omitempty"`
	ClientID           uuid.UUID             `json:"client_id"`
	VehicleID          uuid.UUID             `json:"vehicle_id"`
	Description        string                `json:"description,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// ToServiceOrderResponse converts a service order aggregate to its response
func ToServiceOrderResponse(o *workorder.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:                 o.ID,
		Status:             o.Status,
		RequestDate:        o.RequestDate,
		DeliveryDate:       o.DeliveryDate,
		CancellationReason: o.CancellationReason,
		ClientID:           o.ClientID,
		VehicleID:          o.VehicleID,
		Description:        o.Description,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// CreateServiceOrderRequest is the input for opening a service order
type CreateServiceOrderRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	VehicleID   uuid.UUID `json:"vehicle_id" binding:"required"`
	Description string    `json:"description" binding:"max=500"`
}

// ApprovalDecisionRequest is the input for approving or rejecting an order
type ApprovalDecisionRequest struct {
	ActorID uuid.UUID           `json:"actor_id" binding:"required"`
	Role    workorder.ActorRole `json:"role" binding:"required,oneof=CLIENT EMPLOYEE"`
}

// CancelServiceOrderRequest is the input for cancelling an order
type CancelServiceOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
