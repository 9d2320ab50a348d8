package handlers

import (
	"context"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/assign"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/status"
)

type dispatchUsecase interface {
	Create(ctx context.Context, in domain.CreateInput) (domain.Broadcast, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	ListPending(ctx context.Context, retailerID string) ([]domain.Broadcast, error)
	ListForCustomer(ctx context.Context, customerID string, limit int) ([]domain.Broadcast, error)
	Accept(ctx context.Context, id uuid.UUID, retailerID string) (domain.AcceptResult, error)
	Reject(ctx context.Context, id uuid.UUID, retailerID string) (domain.Broadcast, error)
}

// NewDispatchUsecase wires a dispatch.Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type statusUsecase interface {
	Cancel(ctx context.Context, id uuid.UUID, customerID string) (domain.Broadcast, error)
	Advance(ctx context.Context, id uuid.UUID, actor domain.Actor, next domain.Status) (domain.Broadcast, error)
}

// NewStatusUsecase wires a status.Machine into a statusUsecase.
func NewStatusUsecase(m *status.Machine) statusUsecase {
	return m
}

type assignUsecase interface {
	AssignDelivery(ctx context.Context, id uuid.UUID, retailerID string) (domain.AcceptResult, error)
}

// NewAssignUsecase wires an assign.Assigner into an assignUsecase.
func NewAssignUsecase(a *assign.Assigner) assignUsecase {
	return a
}
