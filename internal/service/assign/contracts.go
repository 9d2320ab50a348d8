//go:generate mockgen -source=contracts.go -destination=assign_mocks_test.go -package=assign_test

package assign

import (
	"context"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
)

// AgentStore reserves and frees delivery agents with conditional updates.
type AgentStore interface {
	Reserve(ctx context.Context, retailerID string) (*domain.DeliveryAgent, error)
	Release(ctx context.Context, agentID string) (bool, error)
}

// BroadcastStore is the part of the broadcast store the assigner touches.
type BroadcastStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Broadcast, error)
	SetAssignedAgent(ctx context.Context, id uuid.UUID, agentID string) (domain.UpdateResult, error)
}
