package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/partner"
)

// ClientResponse is the outward representation of a client
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Document  string    `json:"document,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponse converts a client aggregate to its response
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		CreatedAt: c.CreatedAt,
	}
}

// EmployeeResponse is the outward representation of an employee
type EmployeeResponse struct {
	ID     uuid.UUID            `json:"id"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Role   partner.EmployeeRole `json:"role"`
	Active bool                 `json:"active"`
}

// ToEmployeeResponse converts an employee aggregate to its response
func ToEmployeeResponse(e *partner.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:     e.ID,
		Name:   e.Name,
		Email:  e.Email,
		Role:   e.Role,
		Active: e.Active,
	}
}

// CreateClientRequest is the input for creating a client
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Document string `json:"document" binding:"omitempty,max=20"`
}

// CreateEmployeeRequest is the input for creating an employee
type CreateEmployeeRequest struct {
	Name  string               `json:"name" binding:"required,max=200"`
	Email string               `json:"email" binding:"required,email"`
	Role  partner.EmployeeRole `json:"role" binding:"required,oneof=MECHANIC ATTENDANT MANAGER"`
}

// VehicleResponse is the outward representation of a vehicle
type VehicleResponse struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Plate    string    `json:"plate"`
	Brand    string    `json:"brand"`
	Model    string    `json:"model"`
	Year     int       `json:"year"`
}

// ToVehicleResponse converts a vehicle aggregate to its response
func ToVehicleResponse(v *partner.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:       v.ID,
		ClientID: v.ClientID,
		Plate:    v.Plate,
		Brand:    v.Brand,
		Model:    v.Model,
		Year:     v.Year,
	}
}

// CreateVehicleRequest is the input for registering a vehicle
type CreateVehicleRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Plate    string    `json:"plate" binding:"required,max=10"`
	Brand    string    `json:"brand" binding:"required,max=50"`
	Model    string    `json:"model" binding:"required,max=50"`
	Year     int       `json:"year" binding:"required,min=1900"`
}
