package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/budget"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// BudgetService handles budget generation, delivery, and the client's
// approval decision. Lifecycle events are published after the budget is
// persisted.
type BudgetService struct {
	budgetRepo     budget.Repository
	orderRepo      workorder.Repository
	eventPublisher shared.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo budget.Repository, orderRepo workorder.Repository) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		orderRepo:  orderRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *BudgetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Generate creates a budget with its line items for a service order.
// The client is taken from the order; one order has one active budget.
func (s *BudgetService) Generate(ctx context.Context, req GenerateBudgetRequest) (*BudgetResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.ServiceOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "service order", ID: req.ServiceOrderID}
		}
		return nil, err
	}

	if _, err := s.budgetRepo.FindByServiceOrderID(ctx, req.ServiceOrderID); err == nil {
		return nil, shared.NewDomainError("BUDGET_EXISTS", fmt.Sprintf("Service order %s already has a budget", req.ServiceOrderID))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	b, err := budget.NewBudget(order.ID, order.ClientID, req.ValidityPeriodDays, req.DeliveryMethod)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := b.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	for _, item := range req.Items {
		if _, err := b.AddItem(item.Kind, item.StockItemID, item.Description, item.Quantity, valueobject.NewMoneyBRL(item.UnitPriceCents)); err != nil {
			return nil, err
		}
	}

	if err := s.budgetRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}

	if err := s.publishEvents(ctx, b); err != nil {
		return nil, err
	}

	resp := ToBudgetResponse(b)
	return &resp, nil
}

// Send marks the budget as sent to the client. The resulting BudgetSent event
// drives the order to AWAITING_APPROVAL and triggers the client notification.
func (s *BudgetService) Send(ctx context.Context, budgetID uuid.UUID) (*BudgetResponse, error) {
	return s.applyTransition(ctx, budgetID, (*budget.Budget).Send)
}

// MarkAsReceived records that the client confirmed receipt of the budget
func (s *BudgetService) MarkAsReceived(ctx context.Context, budgetID uuid.UUID) (*BudgetResponse, error) {
	return s.applyTransition(ctx, budgetID, (*budget.Budget).MarkAsReceived)
}

// Approve approves the budget on behalf of the given actor
func (s *BudgetService) Approve(ctx context.Context, budgetID uuid.UUID, req ApproveBudgetRequest) (*BudgetResponse, error) {
	return s.applyTransition(ctx, budgetID, func(b *budget.Budget) error {
		return b.Approve(req.ApprovedBy)
	})
}

// Reject rejects the budget on behalf of the given actor
func (s *BudgetService) Reject(ctx context.Context, budgetID uuid.UUID, req RejectBudgetRequest) (*BudgetResponse, error) {
	return s.applyTransition(ctx, budgetID, func(b *budget.Budget) error {
		return b.Reject(req.RejectedBy, req.Reason)
	})
}

// ExpireOverdue sweeps budgets whose validity period has elapsed and marks
// them EXPIRED. Each budget is handled independently; a failure on one does
// not stop the sweep. Returns the number of budgets expired.
func (s *BudgetService) ExpireOverdue(ctx context.Context, limit int) (int, error) {
	candidates, err := s.budgetRepo.FindExpiredCandidates(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("finding expired budgets: %w", err)
	}

	expired := 0
	var errs []error
	for i := range candidates {
		b := &candidates[i]
		if err := b.Expire(); err != nil {
			errs = append(errs, fmt.Errorf("budget %s: %w", b.ID, err))
			continue
		}
		if err := s.budgetRepo.Save(ctx, b); err != nil {
			errs = append(errs, fmt.Errorf("saving budget %s: %w", b.ID, err))
			continue
		}
		if err := s.publishEvents(ctx, b); err != nil {
			errs = append(errs, fmt.Errorf("publishing for budget %s: %w", b.ID, err))
			continue
		}
		expired++
	}
	return expired, errors.Join(errs...)
}

// GetByID finds a budget by ID with its line items loaded
func (s *BudgetService) GetByID(ctx context.Context, id uuid.UUID) (*BudgetResponse, error) {
	b, err := s.budgetRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "budget", ID: id}
		}
		return nil, err
	}

	resp := ToBudgetResponse(b)
	return &resp, nil
}

// GetByServiceOrderID finds the budget linked to a service order
func (s *BudgetService) GetByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*BudgetResponse, error) {
	b, err := s.budgetRepo.FindByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "budget", ID: serviceOrderID}
		}
		return nil, err
	}

	resp := ToBudgetResponse(b)
	return &resp, nil
}

// ListByStatus returns budgets in a given status
func (s *BudgetService) ListByStatus(ctx context.Context, status budget.Status, filter shared.Filter) ([]BudgetResponse, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown budget status: %s", status))
	}
	budgets, err := s.budgetRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = ToBudgetResponse(&budgets[i])
	}
	return responses, nil
}

// applyTransition loads the budget with items, runs the domain operation,
// saves, and publishes the recorded events
func (s *BudgetService) applyTransition(ctx context.Context, budgetID uuid.UUID, op func(*budget.Budget) error) (*BudgetResponse, error) {
	b, err := s.budgetRepo.FindByIDWithItems(ctx, budgetID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "budget", ID: budgetID}
		}
		return nil, err
	}

	if err := op(b); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}

	if err := s.publishEvents(ctx, b); err != nil {
		return nil, err
	}

	resp := ToBudgetResponse(b)
	return &resp, nil
}

func (s *BudgetService) publishEvents(ctx context.Context, b *budget.Budget) error {
	if s.eventPublisher == nil {
		return nil
	}
	events := b.GetDomainEvents()
	b.ClearDomainEvents()
	if len(events) == 0 {
		return nil
	}
	return s.eventPublisher.Publish(ctx, events...)
}
