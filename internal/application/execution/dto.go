package execution

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/execution"
)

// ServiceExecutionResponse is the outward representation of an execution
type ServiceExecutionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ServiceOrderID  uuid.UUID                 `json:"service_order_id"`
	MechanicID      *uuid.UUID                `json:"mechanic_id,omitempty"`
	Status          execution.ExecutionStatus `json:"status"`
	StartTime       *time.Time                `json:"start_time,omitempty"`
	EndTime         *time.Time                `json:"end_time,omitempty"`
	DurationMinutes *int                      `json:"duration_minutes,omitempty"`
}

// ToServiceExecutionResponse converts an execution aggregate to its response
func ToServiceExecutionResponse(e *execution.ServiceExecution) ServiceExecutionResponse {
	return ServiceExecutionResponse{
		ID:              e.ID,
		ServiceOrderID:  e.ServiceOrderID,
		MechanicID:      e.MechanicID,
		Status:          e.Status,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes(),
	}
}

// CreateExecutionRequest is the input for creating an execution
type CreateExecutionRequest struct {
	ServiceOrderID uuid.UUID  `json:"service_order_id" binding:"required"`
	MechanicID     *uuid.UUID `json:"mechanic_id,omitempty"`
}

// AssignMechanicRequest is the input for assigning a mechanic
type AssignMechanicRequest struct {
	MechanicID uuid.UUID `json:"mechanic_id" binding:"required"`
}
