package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// ClientService handles client lookups and registration.
// Lookups return a typed NotFoundError so callers can distinguish a missing
// client from an infrastructure failure.
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.Email, req.Phone, req.Document)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("saving client: %w", err)
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// GetByID finds a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "client", ID: id}
		}
		return nil, fmt.Errorf("looking up client %s: %w", id, err)
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// List returns clients with filtering
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses, nil
}
