package workorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appexecution "github.com/mecanica/backend/internal/application/execution"
	appinventory "github.com/mecanica/backend/internal/application/inventory"
	"github.com/mecanica/backend/internal/domain/budget"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// ExecutionCreator creates the execution record that tracks an approved order
type ExecutionCreator interface {
	CreateForOrder(ctx context.Context, req appexecution.CreateExecutionRequest) (*appexecution.ServiceExecutionResponse, error)
}

// StockDecreaser consumes stock reserved by approved budget lines
type StockDecreaser interface {
	DecreaseStock(ctx context.Context, req appinventory.DecreaseStockRequest) (*appinventory.StockMovementResponse, error)
}

// ServiceOrderApprovedHandler reacts to an approved service order by creating
// its execution record and depleting the stock its budget lines reserve.
type ServiceOrderApprovedHandler struct {
	logger           *zap.Logger
	budgetRepo       budget.Repository
	employeeRepo     partner.EmployeeRepository
	executionCreator ExecutionCreator
	stockDecreaser   StockDecreaser
}

// NewServiceOrderApprovedHandler creates a new handler for order approvals
func NewServiceOrderApprovedHandler(
	logger *zap.Logger,
	budgetRepo budget.Repository,
	employeeRepo partner.EmployeeRepository,
	executionCreator ExecutionCreator,
	stockDecreaser StockDecreaser,
) *ServiceOrderApprovedHandler {
	return &ServiceOrderApprovedHandler{
		logger:           logger,
		budgetRepo:       budgetRepo,
		employeeRepo:     employeeRepo,
		executionCreator: executionCreator,
		stockDecreaser:   stockDecreaser,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ServiceOrderApprovedHandler) EventTypes() []string {
	return []string{workorder.EventTypeServiceOrderApproved}
}

// Handle processes a ServiceOrderApprovedEvent. The execution record is
// created first; stock depletion then runs line by line, collecting failures
// so one missing part does not leave the remaining lines undepleted.
func (h *ServiceOrderApprovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approvedEvent, ok := event.(*workorder.ServiceOrderApprovedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", workorder.EventTypeServiceOrderApproved),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			workorder.EventTypeServiceOrderApproved, event.EventType())
	}

	h.logger.Info("service order approved, starting execution setup",
		zap.String("order_id", approvedEvent.OrderID.String()),
		zap.String("approved_by", approvedEvent.ApprovedBy.String()),
	)

	h.createExecution(ctx, approvedEvent.OrderID, approvedEvent.ApprovedBy)

	return h.depleteStock(ctx, approvedEvent.OrderID)
}

// createExecution creates the execution record when the approval came from an
// employee, with the approver carried over as the assigned mechanic. A client
// approval (or a failed lookup, treated the same way) means the shop has not
// picked the order up yet, so no execution is created. Creation failures are
// logged only; a missing execution record can be created manually and must
// not abort the stock depletion.
func (h *ServiceOrderApprovedHandler) createExecution(ctx context.Context, orderID, approvedBy uuid.UUID) {
	employee, err := h.employeeRepo.FindByID(ctx, approvedBy)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("employee lookup failed, treating approver as client",
				zap.String("approved_by", approvedBy.String()),
				zap.Error(err),
			)
		}
		h.logger.Info("order approved by client, no execution created",
			zap.String("order_id", orderID.String()),
		)
		return
	}

	if _, err := h.executionCreator.CreateForOrder(ctx, appexecution.CreateExecutionRequest{
		ServiceOrderID: orderID,
		MechanicID:     &employee.ID,
	}); err != nil {
		h.logger.Error("failed to create execution for approved order",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("execution created for approved order",
		zap.String("order_id", orderID.String()),
		zap.String("mechanic_id", employee.ID.String()),
	)
}

// depleteStock consumes one OUT movement per STOCK_ITEM budget line.
// Failures are collected so every line gets its attempt.
func (h *ServiceOrderApprovedHandler) depleteStock(ctx context.Context, orderID uuid.UUID) error {
	b, err := h.budgetRepo.FindByServiceOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Orders approved directly by an employee may have no budget yet
			h.logger.Warn("no budget found for approved order, skipping stock depletion",
				zap.String("order_id", orderID.String()),
			)
			return nil
		}
		return fmt.Errorf("loading budget for order %s: %w", orderID, err)
	}

	var errs []error
	for _, line := range b.StockLines() {
		if line.StockItemID == nil {
			continue
		}
		_, err := h.stockDecreaser.DecreaseStock(ctx, appinventory.DecreaseStockRequest{
			StockItemID: *line.StockItemID,
			Quantity:    line.Quantity,
			Reason:      fmt.Sprintf("Used for service order %s", orderID),
		})
		if err != nil {
			h.logger.Error("failed to deplete stock for budget line",
				zap.String("order_id", orderID.String()),
				zap.String("stock_item_id", line.StockItemID.String()),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("stock item %s: %w", *line.StockItemID, err))
			continue
		}
		h.logger.Info("stock depleted for budget line",
			zap.String("order_id", orderID.String()),
			zap.String("stock_item_id", line.StockItemID.String()),
			zap.Int("quantity", line.Quantity),
		)
	}
	return errors.Join(errs...)
}

// Ensure ServiceOrderApprovedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ServiceOrderApprovedHandler)(nil)
