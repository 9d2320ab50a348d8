//go:generate mockgen -source=contracts.go -destination=status_mocks_test.go -package=status_test

package status

import (
	"context"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
)

// BroadcastStore is the part of the broadcast store the status machine uses.
type BroadcastStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Broadcast, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.Status, now time.Time) (domain.UpdateResult, *domain.Broadcast, error)
}

// AgentReleaser frees a delivery agent once its broadcast reaches a releasing state.
type AgentReleaser interface {
	Release(ctx context.Context, agentID string) error
}
