//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

package events

import (
	"context"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
)

// StatusPort is the subset of the status machine the processor drives
type StatusPort interface {
	Advance(ctx context.Context, id uuid.UUID, actor domain.Actor, next domain.Status) (domain.Broadcast, error)
}
